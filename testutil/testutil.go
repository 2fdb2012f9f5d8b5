// Package testutil provides fake primitives, key managers and keyset
// builders shared by tests across the module. Nothing in this package is
// cryptographically meaningful.
package testutil

import (
	"bytes"
	"fmt"

	"xdao.co/keyring"
	"xdao.co/keyring/keyset"
)

const (
	// DummyAEADTypeURL identifies the fake AEAD key schema.
	DummyAEADTypeURL = "type.xdao.co/xdao.keyring.test.DummyAeadKey"
	// DummyMACTypeURL identifies the fake MAC key schema.
	DummyMACTypeURL = "type.xdao.co/xdao.keyring.test.DummyMacKey"
)

// DummyAEAD is a fake AEAD that prepends its name to the plaintext. Two
// DummyAEADs are interchangeable iff their names match.
type DummyAEAD struct {
	Name string
}

func (a *DummyAEAD) Encrypt(plaintext, associatedData []byte) ([]byte, error) {
	return append([]byte(a.Name), plaintext...), nil
}

func (a *DummyAEAD) Decrypt(ciphertext, associatedData []byte) ([]byte, error) {
	if !bytes.HasPrefix(ciphertext, []byte(a.Name)) {
		return nil, keyring.NewError(keyring.KindNoMatchingKey, "dummy aead: name mismatch")
	}
	return ciphertext[len(a.Name):], nil
}

// DummyMAC is a fake MAC whose tag is its name appended to the data.
type DummyMAC struct {
	Name string
}

func (m *DummyMAC) ComputeMAC(data []byte) ([]byte, error) {
	return append(append([]byte(nil), data...), []byte(m.Name)...), nil
}

func (m *DummyMAC) VerifyMAC(mac, data []byte) error {
	expected, _ := m.ComputeMAC(data)
	if !bytes.Equal(mac, expected) {
		return keyring.NewError(keyring.KindNoMatchingKey, "dummy mac: tag mismatch")
	}
	return nil
}

// DummyAEADKeyManager serves DummyAEADTypeURL. The serialized key bytes are
// used verbatim as the fake AEAD's name.
type DummyAEADKeyManager struct {
	keyring.NoPrivateKeys
}

func (km *DummyAEADKeyManager) Primitive(serializedKey []byte) (keyring.Primitive, error) {
	return keyring.NewAEADPrimitive(&DummyAEAD{Name: string(serializedKey)}), nil
}

func (km *DummyAEADKeyManager) NewKey(serializedKeyFormat []byte) ([]byte, error) {
	return append([]byte(nil), serializedKeyFormat...), nil
}

func (km *DummyAEADKeyManager) DoesSupport(typeURL string) bool { return typeURL == DummyAEADTypeURL }

func (km *DummyAEADKeyManager) TypeURL() string { return DummyAEADTypeURL }

func (km *DummyAEADKeyManager) KeyMaterialKind() keyring.KeyMaterialKind { return keyring.Symmetric }

// DummyMACKeyManager serves DummyMACTypeURL the same way.
type DummyMACKeyManager struct {
	keyring.NoPrivateKeys
}

func (km *DummyMACKeyManager) Primitive(serializedKey []byte) (keyring.Primitive, error) {
	return keyring.NewMACPrimitive(&DummyMAC{Name: string(serializedKey)}), nil
}

func (km *DummyMACKeyManager) NewKey(serializedKeyFormat []byte) ([]byte, error) {
	return append([]byte(nil), serializedKeyFormat...), nil
}

func (km *DummyMACKeyManager) DoesSupport(typeURL string) bool { return typeURL == DummyMACTypeURL }

func (km *DummyMACKeyManager) TypeURL() string { return DummyMACTypeURL }

func (km *DummyMACKeyManager) KeyMaterialKind() keyring.KeyMaterialKind { return keyring.Symmetric }

// NewKeyData builds a KeyData for tests.
func NewKeyData(typeURL string, value []byte, kind keyring.KeyMaterialKind) keyring.KeyData {
	return keyring.KeyData{TypeURL: typeURL, Value: value, KeyMaterialKind: kind}
}

// NewKey builds a keyset Key for tests.
func NewKey(keyData keyring.KeyData, status keyring.KeyStatus, keyID uint32, prefixKind keyring.OutputPrefixKind) keyset.Key {
	return keyset.Key{
		KeyData:          keyData,
		Status:           status,
		KeyID:            keyID,
		OutputPrefixKind: prefixKind,
	}
}

// NewKeyset builds a keyset from keys with the given primary.
func NewKeyset(primaryKeyID uint32, keys []keyset.Key) *keyset.Keyset {
	return &keyset.Keyset{PrimaryKeyID: primaryKeyID, Keys: keys}
}

// NewTestKeyset builds a five-key keyset over the given key data: ids 42
// through 46 covering every output prefix kind, with key 42 (TINK prefix)
// as primary. Each key's serialized bytes get a distinct suffix so fake
// primitives built from them are distinguishable.
func NewTestKeyset(typeURL string, kind keyring.KeyMaterialKind) *keyset.Keyset {
	prefixKinds := []keyring.OutputPrefixKind{
		keyring.TinkPrefix,
		keyring.LegacyPrefix,
		keyring.RawPrefix,
		keyring.CrunchyPrefix,
		keyring.TinkPrefix,
	}
	keys := make([]keyset.Key, 0, len(prefixKinds))
	for i, pk := range prefixKinds {
		id := uint32(42 + i)
		kd := NewKeyData(typeURL, []byte(fmt.Sprintf("key-%d", id)), kind)
		keys = append(keys, NewKey(kd, keyring.Enabled, id, pk))
	}
	return NewKeyset(42, keys)
}
