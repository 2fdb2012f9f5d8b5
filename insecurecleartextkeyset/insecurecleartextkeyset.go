// Package insecurecleartextkeyset provides cleartext access to keyset
// material. It exists as a separate, explicitly-imported capability gate:
// everything else in this module assumes key material is confidential at
// rest, and this package bypasses that. Depend on it only where persisting
// or loading unencrypted keysets is a deliberate decision.
package insecurecleartextkeyset

import (
	"xdao.co/keyring"
	"xdao.co/keyring/internal/insecureapi"
	"xdao.co/keyring/keyset"
)

var (
	newHandle      = insecureapi.NewHandleFromKeyset.(func(*keyset.Keyset) (*keyset.Handle, error))
	keysetMaterial = insecureapi.KeysetMaterial.(func(*keyset.Handle) *keyset.Keyset)
)

// Read reads a cleartext keyset through r and returns its handle.
func Read(r keyset.Reader) (*keyset.Handle, error) {
	ks, err := r.Read()
	if err != nil {
		return nil, err
	}
	return newHandle(ks)
}

// Write writes h's keyset through w in cleartext.
func Write(h *keyset.Handle, w keyset.Writer) error {
	if h == nil {
		return keyring.NewError(keyring.KindInvalidKeyset, "insecurecleartextkeyset: nil handle")
	}
	return w.Write(keysetMaterial(h))
}

// KeysetMaterial exposes the raw keyset behind a handle. The returned value
// shares memory with the handle; callers must not mutate it.
func KeysetMaterial(h *keyset.Handle) *keyset.Keyset {
	return keysetMaterial(h)
}

// FromKeyset returns a handle over ks without any encryption-at-rest
// guarantee. ks is validated first.
func FromKeyset(ks *keyset.Keyset) (*keyset.Handle, error) {
	return newHandle(ks)
}
