package signature

import (
	"crypto/ed25519"
	"crypto/rand"

	"github.com/cloudflare/circl/sign/dilithium/mode3"

	"xdao.co/keyring"
	"xdao.co/keyring/subtle"
)

const (
	// Ed25519KeyVersion is the maximal version of Ed25519 keys this package
	// understands.
	Ed25519KeyVersion = 0
	// Ed25519SignerTypeURL identifies the Ed25519 private key schema.
	Ed25519SignerTypeURL = "type.xdao.co/xdao.keyring.Ed25519PrivateKey"
	// Ed25519VerifierTypeURL identifies the Ed25519 public key schema.
	Ed25519VerifierTypeURL = "type.xdao.co/xdao.keyring.Ed25519PublicKey"

	// Dilithium3KeyVersion is the maximal version of Dilithium3 keys this
	// package understands.
	Dilithium3KeyVersion = 0
	// Dilithium3SignerTypeURL identifies the Dilithium3 private key schema.
	Dilithium3SignerTypeURL = "type.xdao.co/xdao.keyring.Dilithium3PrivateKey"
	// Dilithium3VerifierTypeURL identifies the Dilithium3 public key schema.
	Dilithium3VerifierTypeURL = "type.xdao.co/xdao.keyring.Dilithium3PublicKey"
)

type ed25519SignerKeyManager struct{}

// NewEd25519SignerKeyManager returns the key manager for Ed25519 private
// keys.
func NewEd25519SignerKeyManager() keyring.KeyManager { return &ed25519SignerKeyManager{} }

func (km *ed25519SignerKeyManager) Primitive(serializedKey []byte) (keyring.Primitive, error) {
	key, err := UnmarshalEd25519PrivateKey(serializedKey)
	if err != nil {
		return keyring.Primitive{}, err
	}
	if err := subtle.ValidateKeyVersion(key.Version, Ed25519KeyVersion); err != nil {
		return keyring.Primitive{}, err
	}
	s, err := NewED25519SignerFromSeed(key.KeyValue)
	if err != nil {
		return keyring.Primitive{}, err
	}
	return keyring.NewSignerPrimitive(s), nil
}

func (km *ed25519SignerKeyManager) NewKey(serializedKeyFormat []byte) ([]byte, error) {
	format, err := UnmarshalEd25519KeyFormat(serializedKeyFormat)
	if err != nil {
		return nil, err
	}
	if err := subtle.ValidateKeyVersion(format.Version, Ed25519KeyVersion); err != nil {
		return nil, err
	}
	pub, priv, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		return nil, keyring.WrapError(keyring.KindInternal, "signature: ed25519 keygen failed", err)
	}
	return MarshalEd25519PrivateKey(&Ed25519PrivateKey{
		Version: Ed25519KeyVersion,
		PublicKey: Ed25519PublicKey{
			Version:  Ed25519KeyVersion,
			KeyValue: pub,
		},
		KeyValue: priv.Seed(),
	}), nil
}

func (km *ed25519SignerKeyManager) DoesSupport(typeURL string) bool {
	return typeURL == Ed25519SignerTypeURL
}

func (km *ed25519SignerKeyManager) TypeURL() string { return Ed25519SignerTypeURL }

func (km *ed25519SignerKeyManager) KeyMaterialKind() keyring.KeyMaterialKind {
	return keyring.AsymmetricPrivate
}

func (km *ed25519SignerKeyManager) SupportsPrivateKeys() bool { return true }

func (km *ed25519SignerKeyManager) PublicKeyData(serializedPrivateKey []byte) (keyring.KeyData, error) {
	key, err := UnmarshalEd25519PrivateKey(serializedPrivateKey)
	if err != nil {
		return keyring.KeyData{}, err
	}
	if err := subtle.ValidateKeyVersion(key.Version, Ed25519KeyVersion); err != nil {
		return keyring.KeyData{}, err
	}
	return keyring.KeyData{
		TypeURL:         Ed25519VerifierTypeURL,
		Value:           MarshalEd25519PublicKey(&key.PublicKey),
		KeyMaterialKind: keyring.AsymmetricPublic,
	}, nil
}

type ed25519VerifierKeyManager struct {
	keyring.NoPrivateKeys
}

// NewEd25519VerifierKeyManager returns the key manager for Ed25519 public
// keys.
func NewEd25519VerifierKeyManager() keyring.KeyManager { return &ed25519VerifierKeyManager{} }

func (km *ed25519VerifierKeyManager) Primitive(serializedKey []byte) (keyring.Primitive, error) {
	key, err := UnmarshalEd25519PublicKey(serializedKey)
	if err != nil {
		return keyring.Primitive{}, err
	}
	if err := subtle.ValidateKeyVersion(key.Version, Ed25519KeyVersion); err != nil {
		return keyring.Primitive{}, err
	}
	v, err := NewED25519Verifier(key.KeyValue)
	if err != nil {
		return keyring.Primitive{}, err
	}
	return keyring.NewVerifierPrimitive(v), nil
}

func (km *ed25519VerifierKeyManager) NewKey(serializedKeyFormat []byte) ([]byte, error) {
	return nil, keyring.NewError(keyring.KindKeyMaterialInvalid,
		"signature: public keys are derived from private keys, not generated")
}

func (km *ed25519VerifierKeyManager) DoesSupport(typeURL string) bool {
	return typeURL == Ed25519VerifierTypeURL
}

func (km *ed25519VerifierKeyManager) TypeURL() string { return Ed25519VerifierTypeURL }

func (km *ed25519VerifierKeyManager) KeyMaterialKind() keyring.KeyMaterialKind {
	return keyring.AsymmetricPublic
}

type dilithium3SignerKeyManager struct{}

// NewDilithium3SignerKeyManager returns the key manager for Dilithium3
// private keys.
func NewDilithium3SignerKeyManager() keyring.KeyManager { return &dilithium3SignerKeyManager{} }

func (km *dilithium3SignerKeyManager) Primitive(serializedKey []byte) (keyring.Primitive, error) {
	key, err := UnmarshalDilithium3PrivateKey(serializedKey)
	if err != nil {
		return keyring.Primitive{}, err
	}
	if err := subtle.ValidateKeyVersion(key.Version, Dilithium3KeyVersion); err != nil {
		return keyring.Primitive{}, err
	}
	s, err := NewDilithium3Signer(key.KeyValue, key.PublicKey.Params.Hash)
	if err != nil {
		return keyring.Primitive{}, err
	}
	return keyring.NewSignerPrimitive(s), nil
}

func (km *dilithium3SignerKeyManager) NewKey(serializedKeyFormat []byte) ([]byte, error) {
	format, err := UnmarshalDilithium3KeyFormat(serializedKeyFormat)
	if err != nil {
		return nil, err
	}
	if err := subtle.ValidateKeyVersion(format.Version, Dilithium3KeyVersion); err != nil {
		return nil, err
	}
	if err := validateDilithiumHash(format.Params.Hash); err != nil {
		return nil, err
	}
	pub, priv, err := mode3.GenerateKey(rand.Reader)
	if err != nil {
		return nil, keyring.WrapError(keyring.KindInternal, "signature: dilithium3 keygen failed", err)
	}
	pubBytes, err := pub.MarshalBinary()
	if err != nil {
		return nil, keyring.WrapError(keyring.KindInternal, "signature: dilithium3 public key encoding", err)
	}
	privBytes, err := priv.MarshalBinary()
	if err != nil {
		return nil, keyring.WrapError(keyring.KindInternal, "signature: dilithium3 private key encoding", err)
	}
	return MarshalDilithium3PrivateKey(&Dilithium3PrivateKey{
		Version: Dilithium3KeyVersion,
		PublicKey: Dilithium3PublicKey{
			Version:  Dilithium3KeyVersion,
			Params:   format.Params,
			KeyValue: pubBytes,
		},
		KeyValue: privBytes,
	}), nil
}

func (km *dilithium3SignerKeyManager) DoesSupport(typeURL string) bool {
	return typeURL == Dilithium3SignerTypeURL
}

func (km *dilithium3SignerKeyManager) TypeURL() string { return Dilithium3SignerTypeURL }

func (km *dilithium3SignerKeyManager) KeyMaterialKind() keyring.KeyMaterialKind {
	return keyring.AsymmetricPrivate
}

func (km *dilithium3SignerKeyManager) SupportsPrivateKeys() bool { return true }

func (km *dilithium3SignerKeyManager) PublicKeyData(serializedPrivateKey []byte) (keyring.KeyData, error) {
	key, err := UnmarshalDilithium3PrivateKey(serializedPrivateKey)
	if err != nil {
		return keyring.KeyData{}, err
	}
	if err := subtle.ValidateKeyVersion(key.Version, Dilithium3KeyVersion); err != nil {
		return keyring.KeyData{}, err
	}
	return keyring.KeyData{
		TypeURL:         Dilithium3VerifierTypeURL,
		Value:           MarshalDilithium3PublicKey(&key.PublicKey),
		KeyMaterialKind: keyring.AsymmetricPublic,
	}, nil
}

type dilithium3VerifierKeyManager struct {
	keyring.NoPrivateKeys
}

// NewDilithium3VerifierKeyManager returns the key manager for Dilithium3
// public keys.
func NewDilithium3VerifierKeyManager() keyring.KeyManager { return &dilithium3VerifierKeyManager{} }

func (km *dilithium3VerifierKeyManager) Primitive(serializedKey []byte) (keyring.Primitive, error) {
	key, err := UnmarshalDilithium3PublicKey(serializedKey)
	if err != nil {
		return keyring.Primitive{}, err
	}
	if err := subtle.ValidateKeyVersion(key.Version, Dilithium3KeyVersion); err != nil {
		return keyring.Primitive{}, err
	}
	v, err := NewDilithium3Verifier(key.KeyValue, key.Params.Hash)
	if err != nil {
		return keyring.Primitive{}, err
	}
	return keyring.NewVerifierPrimitive(v), nil
}

func (km *dilithium3VerifierKeyManager) NewKey(serializedKeyFormat []byte) ([]byte, error) {
	return nil, keyring.NewError(keyring.KindKeyMaterialInvalid,
		"signature: public keys are derived from private keys, not generated")
}

func (km *dilithium3VerifierKeyManager) DoesSupport(typeURL string) bool {
	return typeURL == Dilithium3VerifierTypeURL
}

func (km *dilithium3VerifierKeyManager) TypeURL() string { return Dilithium3VerifierTypeURL }

func (km *dilithium3VerifierKeyManager) KeyMaterialKind() keyring.KeyMaterialKind {
	return keyring.AsymmetricPublic
}
