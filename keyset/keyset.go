// Package keyset defines the keyset data model, its binary and JSON wire
// codecs, structural validation, and the assembly of keysets into immutable
// primitive sets via the registry.
package keyset

import "xdao.co/keyring"

// Key is one row of a keyset.
type Key struct {
	KeyData          keyring.KeyData
	Status           keyring.KeyStatus
	KeyID            uint32
	OutputPrefixKind keyring.OutputPrefixKind
}

// Keyset is an ordered collection of keys plus the designated primary key
// id. Exactly one key must carry the primary id, and that key must be
// enabled; Validate enforces this.
type Keyset struct {
	PrimaryKeyID uint32
	Keys         []Key
}

// EncryptedKeyset wraps an entire serialized keyset as opaque bytes, plus
// optional non-sensitive metadata.
type EncryptedKeyset struct {
	EncryptedKeyset []byte
	KeysetInfo      *Info
}

// Info is the non-sensitive projection of a keyset: everything except the
// key material itself.
type Info struct {
	PrimaryKeyID uint32
	KeyInfo      []KeyInfo
}

// KeyInfo is the non-sensitive projection of one key.
type KeyInfo struct {
	TypeURL          string
	Status           keyring.KeyStatus
	KeyID            uint32
	OutputPrefixKind keyring.OutputPrefixKind
}

// InfoOf projects ks onto its non-sensitive metadata.
func InfoOf(ks *Keyset) *Info {
	info := &Info{PrimaryKeyID: ks.PrimaryKeyID}
	for _, k := range ks.Keys {
		info.KeyInfo = append(info.KeyInfo, KeyInfo{
			TypeURL:          k.KeyData.TypeURL,
			Status:           k.Status,
			KeyID:            k.KeyID,
			OutputPrefixKind: k.OutputPrefixKind,
		})
	}
	return info
}
