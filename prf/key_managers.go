package prf

import (
	"xdao.co/keyring"
	"xdao.co/keyring/subtle"
	"xdao.co/keyring/subtle/random"
)

const (
	// HKDFPRFKeyVersion is the maximal version of HKDF PRF keys this
	// package understands.
	HKDFPRFKeyVersion = 0
	// HKDFPRFTypeURL identifies the HKDF PRF key schema.
	HKDFPRFTypeURL = "type.xdao.co/xdao.keyring.HkdfPrfKey"

	// HMACPRFKeyVersion is the maximal version of HMAC PRF keys this
	// package understands.
	HMACPRFKeyVersion = 0
	// HMACPRFTypeURL identifies the HMAC PRF key schema.
	HMACPRFTypeURL = "type.xdao.co/xdao.keyring.HmacPrfKey"
)

type hkdfPRFKeyManager struct {
	keyring.NoPrivateKeys
}

// NewHKDFPRFKeyManager returns the key manager for the HKDF PRF key type.
func NewHKDFPRFKeyManager() keyring.KeyManager { return &hkdfPRFKeyManager{} }

func (km *hkdfPRFKeyManager) Primitive(serializedKey []byte) (keyring.Primitive, error) {
	key, err := UnmarshalHKDFPRFKey(serializedKey)
	if err != nil {
		return keyring.Primitive{}, err
	}
	if err := subtle.ValidateKeyVersion(key.Version, HKDFPRFKeyVersion); err != nil {
		return keyring.Primitive{}, err
	}
	p, err := NewHKDFPRF(key.Params.Hash, key.KeyValue, key.Params.Salt)
	if err != nil {
		return keyring.Primitive{}, err
	}
	return keyring.NewPRFPrimitive(p), nil
}

func (km *hkdfPRFKeyManager) NewKey(serializedKeyFormat []byte) ([]byte, error) {
	format, err := UnmarshalHKDFPRFKeyFormat(serializedKeyFormat)
	if err != nil {
		return nil, err
	}
	if err := subtle.ValidateKeyVersion(format.Version, HKDFPRFKeyVersion); err != nil {
		return nil, err
	}
	if err := validatePRFParams(format.Params.Hash, format.KeySize); err != nil {
		return nil, err
	}
	return MarshalHKDFPRFKey(&HKDFPRFKey{
		Version:  HKDFPRFKeyVersion,
		Params:   HKDFPRFParams{Hash: format.Params.Hash, Salt: format.Params.Salt},
		KeyValue: random.GetRandomBytes(format.KeySize),
	}), nil
}

func (km *hkdfPRFKeyManager) DoesSupport(typeURL string) bool { return typeURL == HKDFPRFTypeURL }

func (km *hkdfPRFKeyManager) TypeURL() string { return HKDFPRFTypeURL }

func (km *hkdfPRFKeyManager) KeyMaterialKind() keyring.KeyMaterialKind { return keyring.Symmetric }

type hmacPRFKeyManager struct {
	keyring.NoPrivateKeys
}

// NewHMACPRFKeyManager returns the key manager for the HMAC PRF key type.
func NewHMACPRFKeyManager() keyring.KeyManager { return &hmacPRFKeyManager{} }

func (km *hmacPRFKeyManager) Primitive(serializedKey []byte) (keyring.Primitive, error) {
	key, err := UnmarshalHMACPRFKey(serializedKey)
	if err != nil {
		return keyring.Primitive{}, err
	}
	if err := subtle.ValidateKeyVersion(key.Version, HMACPRFKeyVersion); err != nil {
		return keyring.Primitive{}, err
	}
	p, err := NewHMACPRF(key.Params.Hash, key.KeyValue)
	if err != nil {
		return keyring.Primitive{}, err
	}
	return keyring.NewPRFPrimitive(p), nil
}

func (km *hmacPRFKeyManager) NewKey(serializedKeyFormat []byte) ([]byte, error) {
	format, err := UnmarshalHMACPRFKeyFormat(serializedKeyFormat)
	if err != nil {
		return nil, err
	}
	if err := subtle.ValidateKeyVersion(format.Version, HMACPRFKeyVersion); err != nil {
		return nil, err
	}
	if err := validatePRFParams(format.Params.Hash, format.KeySize); err != nil {
		return nil, err
	}
	return MarshalHMACPRFKey(&HMACPRFKey{
		Version:  HMACPRFKeyVersion,
		Params:   HMACPRFParams{Hash: format.Params.Hash},
		KeyValue: random.GetRandomBytes(format.KeySize),
	}), nil
}

func (km *hmacPRFKeyManager) DoesSupport(typeURL string) bool { return typeURL == HMACPRFTypeURL }

func (km *hmacPRFKeyManager) TypeURL() string { return HMACPRFTypeURL }

func (km *hmacPRFKeyManager) KeyMaterialKind() keyring.KeyMaterialKind { return keyring.Symmetric }
