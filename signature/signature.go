package signature

import (
	"xdao.co/keyring"
	"xdao.co/keyring/keyset"
	"xdao.co/keyring/primitiveset"
	"xdao.co/keyring/registry"
)

// Register binds this package's key managers into the global registry. The
// embedding application must call it before processing signature keysets;
// there is no registration on import.
func Register() error {
	for _, km := range []keyring.KeyManager{
		NewEd25519SignerKeyManager(),
		NewEd25519VerifierKeyManager(),
		NewDilithium3SignerKeyManager(),
		NewDilithium3VerifierKeyManager(),
	} {
		if err := registry.Register(km); err != nil {
			return err
		}
	}
	return nil
}

// NewSigner returns a Signer backed by the private keyset in h. Sign uses
// the primary key and prepends its output prefix to the signature.
func NewSigner(h *keyset.Handle) (keyring.Signer, error) {
	ps, err := h.Primitives()
	if err != nil {
		return nil, err
	}
	if _, err := ps.Primary().Primitive.Signer(); err != nil {
		return nil, err
	}
	return &wrappedSigner{ps: ps}, nil
}

type wrappedSigner struct {
	ps *primitiveset.PrimitiveSet
}

func (w *wrappedSigner) Sign(data []byte) ([]byte, error) {
	primary := w.ps.Primary()
	s, err := primary.Primitive.Signer()
	if err != nil {
		return nil, err
	}
	sig, err := s.Sign(data)
	if err != nil {
		return nil, err
	}
	return append([]byte(primary.Prefix), sig...), nil
}

// NewVerifier returns a Verifier backed by the public keyset in h. Verify
// tries every candidate key whose prefix matches the signature's leading
// bytes, then the raw-prefix keys, and succeeds on the first key that
// accepts.
func NewVerifier(h *keyset.Handle) (keyring.Verifier, error) {
	ps, err := h.Primitives()
	if err != nil {
		return nil, err
	}
	if _, err := ps.Primary().Primitive.Verifier(); err != nil {
		return nil, err
	}
	return &wrappedVerifier{ps: ps}, nil
}

type wrappedVerifier struct {
	ps *primitiveset.PrimitiveSet
}

func (w *wrappedVerifier) Verify(signature, data []byte) error {
	for _, entry := range w.ps.EntriesForPayload(signature) {
		if entry.Status != keyring.Enabled {
			continue
		}
		v, err := entry.Primitive.Verifier()
		if err != nil {
			continue
		}
		if err := v.Verify(signature[len(entry.Prefix):], data); err == nil {
			return nil
		}
	}
	return keyring.NewError(keyring.KindNoMatchingKey, "signature: no key accepted the signature")
}
