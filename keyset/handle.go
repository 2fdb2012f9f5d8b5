package keyset

import (
	"fmt"

	"xdao.co/keyring"
	"xdao.co/keyring/internal/insecureapi"
	"xdao.co/keyring/primitiveset"
	"xdao.co/keyring/registry"
)

// Handle wraps a keyset so that the key material itself stays out of reach
// of application code. Cleartext access goes through the explicit gate in
// the insecurecleartextkeyset package only.
type Handle struct {
	ks *Keyset
}

func init() {
	insecureapi.NewHandleFromKeyset = func(ks *Keyset) (*Handle, error) {
		return newHandle(ks)
	}
	insecureapi.KeysetMaterial = func(h *Handle) *Keyset {
		return h.ks
	}
}

func newHandle(ks *Keyset) (*Handle, error) {
	if err := Validate(ks); err != nil {
		return nil, err
	}
	return &Handle{ks: ks}, nil
}

// NewHandle generates a fresh single-key keyset from template and returns
// its handle. The new key is enabled and primary.
func NewHandle(template keyring.KeyTemplate) (*Handle, error) {
	m := NewManager()
	if err := m.Rotate(template); err != nil {
		return nil, err
	}
	return m.Handle()
}

// Primitives drives the registry and the per-type key managers to assemble
// this keyset into an immutable PrimitiveSet.
//
// Entries with status DESTROYED are skipped entirely; their key material may
// already be gone. Key manager parse failures are wrapped, not discarded.
func (h *Handle) Primitives() (*primitiveset.PrimitiveSet, error) {
	if err := Validate(h.ks); err != nil {
		return nil, err
	}
	b := primitiveset.NewBuilder(h.ks.PrimaryKeyID)
	for _, k := range h.ks.Keys {
		if k.Status == keyring.Destroyed {
			continue
		}
		p, err := registry.Primitive(k.KeyData.TypeURL, k.KeyData.Value)
		if err != nil {
			kind := keyring.ErrKind(err)
			if kind == "" {
				kind = keyring.KindKeyMaterialInvalid
			}
			return nil, keyring.WrapError(kind,
				fmt.Sprintf("keyset: cannot build primitive for key %d", k.KeyID), err)
		}
		if err := b.Add(p, k.KeyID, k.Status, k.OutputPrefixKind); err != nil {
			return nil, err
		}
	}
	return b.Build()
}

// Public derives the keyset of public keys for a keyset of private keys:
// every entry is mapped through its manager's PublicKeyData, keeping key id,
// status and output prefix kind.
func (h *Handle) Public() (*Handle, error) {
	pub := &Keyset{PrimaryKeyID: h.ks.PrimaryKeyID}
	for _, k := range h.ks.Keys {
		if k.KeyData.KeyMaterialKind != keyring.AsymmetricPrivate {
			return nil, keyring.NewError(keyring.KindKeyMaterialInvalid,
				fmt.Sprintf("keyset: key %d is not asymmetric private", k.KeyID))
		}
		km, err := registry.Lookup(k.KeyData.TypeURL)
		if err != nil {
			return nil, err
		}
		if !km.SupportsPrivateKeys() {
			return nil, keyring.NewError(keyring.KindKeyMaterialInvalid,
				fmt.Sprintf("keyset: manager for %q does not support private keys", k.KeyData.TypeURL))
		}
		pubData, err := km.PublicKeyData(k.KeyData.Value)
		if err != nil {
			return nil, keyring.WrapError(keyring.KindKeyMaterialInvalid,
				fmt.Sprintf("keyset: cannot extract public key for key %d", k.KeyID), err)
		}
		pub.Keys = append(pub.Keys, Key{
			KeyData:          pubData,
			Status:           k.Status,
			KeyID:            k.KeyID,
			OutputPrefixKind: k.OutputPrefixKind,
		})
	}
	return newHandle(pub)
}

// KeysetInfo returns the non-sensitive metadata of the wrapped keyset.
func (h *Handle) KeysetInfo() *Info {
	return InfoOf(h.ks)
}

// String renders the non-sensitive metadata only.
func (h *Handle) String() string {
	info := h.KeysetInfo()
	return fmt.Sprintf("primary:%d keys:%d", info.PrimaryKeyID, len(info.KeyInfo))
}

// Write encrypts the keyset with masterKey and writes the EncryptedKeyset
// through w, together with the non-sensitive keyset info.
func (h *Handle) Write(w Writer, masterKey keyring.AEAD) error {
	serialized, err := Marshal(h.ks)
	if err != nil {
		return err
	}
	encrypted, err := masterKey.Encrypt(serialized, nil)
	if err != nil {
		return keyring.WrapError(keyring.KindKeyMaterialInvalid, "keyset: encryption failed", err)
	}
	return w.WriteEncrypted(&EncryptedKeyset{
		EncryptedKeyset: encrypted,
		KeysetInfo:      h.KeysetInfo(),
	})
}

// Read reads an EncryptedKeyset through r, decrypts it with masterKey, and
// returns a handle over the recovered keyset.
func Read(r Reader, masterKey keyring.AEAD) (*Handle, error) {
	ek, err := r.ReadEncrypted()
	if err != nil {
		return nil, err
	}
	serialized, err := masterKey.Decrypt(ek.EncryptedKeyset, nil)
	if err != nil {
		return nil, keyring.WrapError(keyring.KindKeyMaterialInvalid, "keyset: decryption failed", err)
	}
	ks, err := Unmarshal(serialized)
	if err != nil {
		return nil, err
	}
	return newHandle(ks)
}
