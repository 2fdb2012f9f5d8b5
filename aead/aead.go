package aead

import (
	"xdao.co/keyring"
	"xdao.co/keyring/keyset"
	"xdao.co/keyring/primitiveset"
	"xdao.co/keyring/registry"
)

// Register binds this package's key managers into the global registry. The
// embedding application must call it before processing AEAD keysets; there
// is no registration on import.
func Register() error {
	if err := registry.Register(NewAESGCMKeyManager()); err != nil {
		return err
	}
	return registry.Register(NewChaCha20Poly1305KeyManager())
}

// New returns an AEAD backed by the keyset in h. Encrypt uses the primary
// key and prepends its output prefix; Decrypt tries every candidate key
// whose prefix matches the ciphertext's leading bytes, then the raw-prefix
// keys, and succeeds on the first key that authenticates.
func New(h *keyset.Handle) (keyring.AEAD, error) {
	ps, err := h.Primitives()
	if err != nil {
		return nil, err
	}
	if _, err := ps.Primary().Primitive.AEAD(); err != nil {
		return nil, err
	}
	return &wrappedAEAD{ps: ps}, nil
}

type wrappedAEAD struct {
	ps *primitiveset.PrimitiveSet
}

func (w *wrappedAEAD) Encrypt(plaintext, associatedData []byte) ([]byte, error) {
	primary := w.ps.Primary()
	a, err := primary.Primitive.AEAD()
	if err != nil {
		return nil, err
	}
	ct, err := a.Encrypt(plaintext, associatedData)
	if err != nil {
		return nil, err
	}
	return append([]byte(primary.Prefix), ct...), nil
}

func (w *wrappedAEAD) Decrypt(ciphertext, associatedData []byte) ([]byte, error) {
	for _, entry := range w.ps.EntriesForPayload(ciphertext) {
		if entry.Status != keyring.Enabled {
			continue
		}
		a, err := entry.Primitive.AEAD()
		if err != nil {
			continue
		}
		if pt, err := a.Decrypt(ciphertext[len(entry.Prefix):], associatedData); err == nil {
			return pt, nil
		}
	}
	return nil, keyring.NewError(keyring.KindNoMatchingKey, "aead: no key accepted the ciphertext")
}
