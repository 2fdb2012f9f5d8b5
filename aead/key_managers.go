package aead

import (
	"golang.org/x/crypto/chacha20poly1305"

	"xdao.co/keyring"
	"xdao.co/keyring/subtle"
	"xdao.co/keyring/subtle/random"
)

const (
	// AESGCMKeyVersion is the maximal version of AES-GCM keys this package
	// understands.
	AESGCMKeyVersion = 0
	// AESGCMTypeURL identifies the AES-GCM key schema.
	AESGCMTypeURL = "type.xdao.co/xdao.keyring.AesGcmKey"

	// ChaCha20Poly1305KeyVersion is the maximal version of
	// ChaCha20-Poly1305 keys this package understands.
	ChaCha20Poly1305KeyVersion = 0
	// ChaCha20Poly1305TypeURL identifies the ChaCha20-Poly1305 key schema.
	ChaCha20Poly1305TypeURL = "type.xdao.co/xdao.keyring.ChaCha20Poly1305Key"
)

type aesGCMKeyManager struct {
	keyring.NoPrivateKeys
}

// NewAESGCMKeyManager returns the key manager for the AES-GCM key type.
func NewAESGCMKeyManager() keyring.KeyManager { return &aesGCMKeyManager{} }

func (km *aesGCMKeyManager) Primitive(serializedKey []byte) (keyring.Primitive, error) {
	key, err := UnmarshalAESGCMKey(serializedKey)
	if err != nil {
		return keyring.Primitive{}, err
	}
	if err := subtle.ValidateKeyVersion(key.Version, AESGCMKeyVersion); err != nil {
		return keyring.Primitive{}, err
	}
	a, err := NewAESGCM(key.KeyValue)
	if err != nil {
		return keyring.Primitive{}, err
	}
	return keyring.NewAEADPrimitive(a), nil
}

func (km *aesGCMKeyManager) NewKey(serializedKeyFormat []byte) ([]byte, error) {
	format, err := UnmarshalAESGCMKeyFormat(serializedKeyFormat)
	if err != nil {
		return nil, err
	}
	if err := subtle.ValidateKeyVersion(format.Version, AESGCMKeyVersion); err != nil {
		return nil, err
	}
	if err := ValidateAESKeySize(format.KeySize); err != nil {
		return nil, err
	}
	return MarshalAESGCMKey(&AESGCMKey{
		Version:  AESGCMKeyVersion,
		KeyValue: random.GetRandomBytes(format.KeySize),
	}), nil
}

func (km *aesGCMKeyManager) DoesSupport(typeURL string) bool { return typeURL == AESGCMTypeURL }

func (km *aesGCMKeyManager) TypeURL() string { return AESGCMTypeURL }

func (km *aesGCMKeyManager) KeyMaterialKind() keyring.KeyMaterialKind { return keyring.Symmetric }

type chaCha20Poly1305KeyManager struct {
	keyring.NoPrivateKeys
}

// NewChaCha20Poly1305KeyManager returns the key manager for the
// ChaCha20-Poly1305 key type.
func NewChaCha20Poly1305KeyManager() keyring.KeyManager { return &chaCha20Poly1305KeyManager{} }

func (km *chaCha20Poly1305KeyManager) Primitive(serializedKey []byte) (keyring.Primitive, error) {
	key, err := UnmarshalChaCha20Poly1305Key(serializedKey)
	if err != nil {
		return keyring.Primitive{}, err
	}
	if err := subtle.ValidateKeyVersion(key.Version, ChaCha20Poly1305KeyVersion); err != nil {
		return keyring.Primitive{}, err
	}
	if len(key.KeyValue) != chacha20poly1305.KeySize {
		return keyring.Primitive{}, keyring.NewError(keyring.KindKeyMaterialInvalid,
			"aead: invalid ChaCha20-Poly1305 key size")
	}
	c, err := NewChaCha20Poly1305(key.KeyValue)
	if err != nil {
		return keyring.Primitive{}, err
	}
	return keyring.NewAEADPrimitive(c), nil
}

func (km *chaCha20Poly1305KeyManager) NewKey(serializedKeyFormat []byte) ([]byte, error) {
	format, err := UnmarshalChaCha20Poly1305KeyFormat(serializedKeyFormat)
	if err != nil {
		return nil, err
	}
	if err := subtle.ValidateKeyVersion(format.Version, ChaCha20Poly1305KeyVersion); err != nil {
		return nil, err
	}
	return MarshalChaCha20Poly1305Key(&ChaCha20Poly1305Key{
		Version:  ChaCha20Poly1305KeyVersion,
		KeyValue: random.GetRandomBytes(chacha20poly1305.KeySize),
	}), nil
}

func (km *chaCha20Poly1305KeyManager) DoesSupport(typeURL string) bool {
	return typeURL == ChaCha20Poly1305TypeURL
}

func (km *chaCha20Poly1305KeyManager) TypeURL() string { return ChaCha20Poly1305TypeURL }

func (km *chaCha20Poly1305KeyManager) KeyMaterialKind() keyring.KeyMaterialKind {
	return keyring.Symmetric
}
