// Package mac provides keyset-backed message authentication: an HMAC key
// type and a MAC wrapper that computes tags under the primary key and
// verifies tags against every candidate key of a keyset.
package mac

import (
	"crypto/hmac"
	"fmt"
	"hash"

	"xdao.co/keyring"
	"xdao.co/keyring/subtle"
)

const (
	minTagSize = 10
	minKeySize = 16
)

// HMAC is the underlying MAC capability implementation. The rest of the
// module only routes bytes through it.
type HMAC struct {
	hashFunc func() hash.Hash
	key      []byte
	tagSize  uint32
}

// NewHMAC returns an HMAC over the given hash kind, key and tag size.
func NewHMAC(hashKind keyring.HashKind, key []byte, tagSize uint32) (*HMAC, error) {
	if err := ValidateHMACParams(hashKind, uint32(len(key)), tagSize); err != nil {
		return nil, err
	}
	return &HMAC{
		hashFunc: subtle.HashFunc(hashKind),
		key:      append([]byte(nil), key...),
		tagSize:  tagSize,
	}, nil
}

// ValidateHMACParams checks hash kind, key size and tag size against the
// supported ranges.
func ValidateHMACParams(hashKind keyring.HashKind, keySize, tagSize uint32) error {
	digestSize := subtle.HashDigestSize(hashKind)
	if digestSize == 0 {
		return keyring.NewError(keyring.KindKeyMaterialInvalid,
			fmt.Sprintf("mac: unsupported hash %s", hashKind))
	}
	if keySize < minKeySize {
		return keyring.NewError(keyring.KindKeyMaterialInvalid,
			fmt.Sprintf("mac: key size %d below minimum %d", keySize, minKeySize))
	}
	if tagSize < minTagSize {
		return keyring.NewError(keyring.KindKeyMaterialInvalid,
			fmt.Sprintf("mac: tag size %d below minimum %d", tagSize, minTagSize))
	}
	if tagSize > digestSize {
		return keyring.NewError(keyring.KindKeyMaterialInvalid,
			fmt.Sprintf("mac: tag size %d exceeds %s digest size %d", tagSize, hashKind, digestSize))
	}
	return nil
}

// ComputeMAC computes the truncated HMAC tag for data.
func (h *HMAC) ComputeMAC(data []byte) ([]byte, error) {
	mh := hmac.New(h.hashFunc, h.key)
	mh.Write(data)
	return mh.Sum(nil)[:h.tagSize], nil
}

// VerifyMAC checks mac against data in constant time.
func (h *HMAC) VerifyMAC(mac, data []byte) error {
	expected, err := h.ComputeMAC(data)
	if err != nil {
		return err
	}
	if !hmac.Equal(mac, expected) {
		return keyring.NewError(keyring.KindNoMatchingKey, "mac: invalid MAC")
	}
	return nil
}
