package mac

import (
	"xdao.co/keyring"
	"xdao.co/keyring/subtle"
	"xdao.co/keyring/subtle/random"
)

const (
	// HMACKeyVersion is the maximal version of HMAC keys this package
	// understands.
	HMACKeyVersion = 0
	// HMACTypeURL identifies the HMAC key schema.
	HMACTypeURL = "type.xdao.co/xdao.keyring.HmacKey"
)

// hmacKeyManager generates new HMAC keys and produces HMAC primitives.
type hmacKeyManager struct {
	keyring.NoPrivateKeys
}

// NewHMACKeyManager returns the key manager for the HMAC key type. Pass it
// to registry.Register before processing HMAC keysets.
func NewHMACKeyManager() keyring.KeyManager { return &hmacKeyManager{} }

func (km *hmacKeyManager) Primitive(serializedKey []byte) (keyring.Primitive, error) {
	key, err := UnmarshalHMACKey(serializedKey)
	if err != nil {
		return keyring.Primitive{}, err
	}
	if err := subtle.ValidateKeyVersion(key.Version, HMACKeyVersion); err != nil {
		return keyring.Primitive{}, err
	}
	h, err := NewHMAC(key.Params.Hash, key.KeyValue, key.Params.TagSize)
	if err != nil {
		return keyring.Primitive{}, err
	}
	return keyring.NewMACPrimitive(h), nil
}

func (km *hmacKeyManager) NewKey(serializedKeyFormat []byte) ([]byte, error) {
	format, err := UnmarshalHMACKeyFormat(serializedKeyFormat)
	if err != nil {
		return nil, err
	}
	if err := subtle.ValidateKeyVersion(format.Version, HMACKeyVersion); err != nil {
		return nil, err
	}
	if err := ValidateHMACParams(format.Params.Hash, format.KeySize, format.Params.TagSize); err != nil {
		return nil, err
	}
	return MarshalHMACKey(&HMACKey{
		Version:  HMACKeyVersion,
		Params:   format.Params,
		KeyValue: random.GetRandomBytes(format.KeySize),
	}), nil
}

func (km *hmacKeyManager) DoesSupport(typeURL string) bool { return typeURL == HMACTypeURL }

func (km *hmacKeyManager) TypeURL() string { return HMACTypeURL }

func (km *hmacKeyManager) KeyMaterialKind() keyring.KeyMaterialKind { return keyring.Symmetric }
