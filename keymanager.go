package keyring

// KeyData couples serialized key bytes with the type URL that names their
// schema and the sensitivity class of the material.
type KeyData struct {
	TypeURL         string
	Value           []byte
	KeyMaterialKind KeyMaterialKind
}

// KeyTemplate describes how to generate a fresh key: the target schema, the
// serialized key-format parameters, and the output prefix policy new keys
// should get.
type KeyTemplate struct {
	TypeURL          string
	Value            []byte
	OutputPrefixKind OutputPrefixKind
}

// KeyManager is implemented once per key type. It turns serialized key bytes
// into a Primitive and serialized key-format parameters into freshly
// generated key bytes.
//
// Implementations must be safe for concurrent use.
type KeyManager interface {
	// Primitive constructs a Primitive from serialized key bytes. It fails
	// with KindKeyMaterialInvalid if the bytes cannot be parsed as this
	// manager's schema or the embedded parameters are unsupported.
	Primitive(serializedKey []byte) (Primitive, error)

	// NewKey generates fresh, schema-valid key bytes from serialized
	// key-format parameters. Failure behavior is deterministic; successful
	// output uses fresh randomness per call.
	NewKey(serializedKeyFormat []byte) ([]byte, error)

	// DoesSupport reports whether this manager handles typeURL.
	DoesSupport(typeURL string) bool

	// TypeURL names the key schema this manager handles.
	TypeURL() string

	// KeyMaterialKind classifies the material this manager produces.
	KeyMaterialKind() KeyMaterialKind

	// SupportsPrivateKeys reports whether PublicKeyData is usable. This is
	// an explicit capability flag; callers must not probe with type
	// assertions.
	SupportsPrivateKeys() bool

	// PublicKeyData extracts the public KeyData embedded in serialized
	// private key bytes. Managers with SupportsPrivateKeys() == false
	// return an error.
	PublicKeyData(serializedPrivateKey []byte) (KeyData, error)
}

// NoPrivateKeys is the default no-op private-key capability. Key managers
// for symmetric or public key types embed it so only private-key managers
// spell out PublicKeyData.
type NoPrivateKeys struct{}

func (NoPrivateKeys) SupportsPrivateKeys() bool { return false }

func (NoPrivateKeys) PublicKeyData(serializedPrivateKey []byte) (KeyData, error) {
	return KeyData{}, NewError(KindKeyMaterialInvalid, "key manager does not support private keys")
}

// NewKeyData runs km.NewKey and wraps the result in a KeyData stamped with
// the manager's type URL and material kind.
func NewKeyData(km KeyManager, serializedKeyFormat []byte) (KeyData, error) {
	value, err := km.NewKey(serializedKeyFormat)
	if err != nil {
		return KeyData{}, err
	}
	return KeyData{
		TypeURL:         km.TypeURL(),
		Value:           value,
		KeyMaterialKind: km.KeyMaterialKind(),
	}, nil
}
