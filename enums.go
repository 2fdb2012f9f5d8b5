package keyring

import "fmt"

// KeyStatus is the lifecycle state of a keyset entry.
type KeyStatus int32

const (
	UnknownStatus KeyStatus = 0
	Enabled       KeyStatus = 1
	Disabled      KeyStatus = 2
	// Destroyed entries keep their metadata but their key material may
	// already be gone; they are skipped during primitive assembly.
	Destroyed KeyStatus = 3
)

func (s KeyStatus) String() string {
	switch s {
	case Enabled:
		return "ENABLED"
	case Disabled:
		return "DISABLED"
	case Destroyed:
		return "DESTROYED"
	default:
		return "UNKNOWN_STATUS"
	}
}

// MarshalText renders the upper-case symbolic name, never the numeric value.
func (s KeyStatus) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

func (s *KeyStatus) UnmarshalText(text []byte) error {
	switch string(text) {
	case "ENABLED":
		*s = Enabled
	case "DISABLED":
		*s = Disabled
	case "DESTROYED":
		*s = Destroyed
	case "UNKNOWN_STATUS":
		*s = UnknownStatus
	default:
		return NewError(KindInvalidKeyset, fmt.Sprintf("unknown key status %q", text))
	}
	return nil
}

// OutputPrefixKind governs whether and how a key-identifying prefix is
// attached to that key's ciphertext/signature output.
type OutputPrefixKind int32

const (
	UnknownPrefix OutputPrefixKind = 0
	// TinkPrefix: 0x01 tag byte plus the 4-byte big-endian key id.
	TinkPrefix OutputPrefixKind = 1
	// LegacyPrefix and CrunchyPrefix share the 0x00-tagged 5-byte shape;
	// both are preserved for interoperability with older wire outputs.
	LegacyPrefix OutputPrefixKind = 2
	// RawPrefix: no prefix at all.
	RawPrefix     OutputPrefixKind = 3
	CrunchyPrefix OutputPrefixKind = 4
)

func (k OutputPrefixKind) String() string {
	switch k {
	case TinkPrefix:
		return "TINK"
	case LegacyPrefix:
		return "LEGACY"
	case RawPrefix:
		return "RAW"
	case CrunchyPrefix:
		return "CRUNCHY"
	default:
		return "UNKNOWN_PREFIX"
	}
}

func (k OutputPrefixKind) MarshalText() ([]byte, error) { return []byte(k.String()), nil }

func (k *OutputPrefixKind) UnmarshalText(text []byte) error {
	switch string(text) {
	case "TINK":
		*k = TinkPrefix
	case "LEGACY":
		*k = LegacyPrefix
	case "RAW":
		*k = RawPrefix
	case "CRUNCHY":
		*k = CrunchyPrefix
	case "UNKNOWN_PREFIX":
		*k = UnknownPrefix
	default:
		return NewError(KindUnsupportedOutputPrefixKind, fmt.Sprintf("unknown output prefix kind %q", text))
	}
	return nil
}

// KeyMaterialKind classifies key material sensitivity.
type KeyMaterialKind int32

const (
	UnknownKeyMaterial KeyMaterialKind = 0
	Symmetric          KeyMaterialKind = 1
	AsymmetricPrivate  KeyMaterialKind = 2
	AsymmetricPublic   KeyMaterialKind = 3
	// Remote marks material held by an external KMS; the bytes here are a
	// reference, not the key itself.
	Remote KeyMaterialKind = 4
)

func (m KeyMaterialKind) String() string {
	switch m {
	case Symmetric:
		return "SYMMETRIC"
	case AsymmetricPrivate:
		return "ASYMMETRIC_PRIVATE"
	case AsymmetricPublic:
		return "ASYMMETRIC_PUBLIC"
	case Remote:
		return "REMOTE"
	default:
		return "UNKNOWN_KEYMATERIAL"
	}
}

func (m KeyMaterialKind) MarshalText() ([]byte, error) { return []byte(m.String()), nil }

func (m *KeyMaterialKind) UnmarshalText(text []byte) error {
	switch string(text) {
	case "SYMMETRIC":
		*m = Symmetric
	case "ASYMMETRIC_PRIVATE":
		*m = AsymmetricPrivate
	case "ASYMMETRIC_PUBLIC":
		*m = AsymmetricPublic
	case "REMOTE":
		*m = Remote
	case "UNKNOWN_KEYMATERIAL":
		*m = UnknownKeyMaterial
	default:
		return NewError(KindInvalidKeyset, fmt.Sprintf("unknown key material kind %q", text))
	}
	return nil
}

// HashKind selects the hash function for parameterized key schemas.
type HashKind int32

const (
	UnknownHash HashKind = 0
	SHA1        HashKind = 1
	SHA384      HashKind = 2
	SHA256      HashKind = 3
	SHA512      HashKind = 4
	SHA224      HashKind = 5
	SHA3_256    HashKind = 6
)

func (h HashKind) String() string {
	switch h {
	case SHA1:
		return "SHA1"
	case SHA224:
		return "SHA224"
	case SHA256:
		return "SHA256"
	case SHA384:
		return "SHA384"
	case SHA512:
		return "SHA512"
	case SHA3_256:
		return "SHA3_256"
	default:
		return "UNKNOWN_HASH"
	}
}
