// Package prf provides keyset-backed pseudorandom functions: HKDF and HMAC
// PRF key types and a set wrapper exposing every enabled key's PRF keyed by
// key id. PRF keys must use the RAW output prefix; PRF outputs are raw bytes
// with no room for a wire prefix.
package prf

import (
	"crypto/hmac"
	"fmt"
	"hash"
	"io"

	"golang.org/x/crypto/hkdf"

	"xdao.co/keyring"
	"xdao.co/keyring/subtle"
)

const minPRFKeySize = 16

// HKDFPRF is the HKDF capability implementation: the PRF input feeds the
// info parameter, the key is the HKDF secret.
type HKDFPRF struct {
	hashFunc   func() hash.Hash
	key        []byte
	salt       []byte
	maxOutSize uint32
}

// NewHKDFPRF returns an HKDF PRF over the given hash kind, key and salt.
func NewHKDFPRF(hashKind keyring.HashKind, key, salt []byte) (*HKDFPRF, error) {
	if err := validatePRFParams(hashKind, uint32(len(key))); err != nil {
		return nil, err
	}
	return &HKDFPRF{
		hashFunc:   subtle.HashFunc(hashKind),
		key:        append([]byte(nil), key...),
		salt:       append([]byte(nil), salt...),
		maxOutSize: 255 * subtle.HashDigestSize(hashKind),
	}, nil
}

func (p *HKDFPRF) ComputePRF(input []byte, outputLength uint32) ([]byte, error) {
	if outputLength == 0 || outputLength > p.maxOutSize {
		return nil, keyring.NewError(keyring.KindKeyMaterialInvalid,
			fmt.Sprintf("prf: output length %d out of range (max %d)", outputLength, p.maxOutSize))
	}
	out := make([]byte, outputLength)
	if _, err := io.ReadFull(hkdf.New(p.hashFunc, p.key, p.salt, input), out); err != nil {
		return nil, keyring.WrapError(keyring.KindInternal, "prf: hkdf expand failed", err)
	}
	return out, nil
}

// HMACPRF is the HMAC capability implementation: output is the HMAC digest
// truncated to the requested length.
type HMACPRF struct {
	hashFunc   func() hash.Hash
	key        []byte
	digestSize uint32
}

// NewHMACPRF returns an HMAC PRF over the given hash kind and key.
func NewHMACPRF(hashKind keyring.HashKind, key []byte) (*HMACPRF, error) {
	if err := validatePRFParams(hashKind, uint32(len(key))); err != nil {
		return nil, err
	}
	return &HMACPRF{
		hashFunc:   subtle.HashFunc(hashKind),
		key:        append([]byte(nil), key...),
		digestSize: subtle.HashDigestSize(hashKind),
	}, nil
}

func (p *HMACPRF) ComputePRF(input []byte, outputLength uint32) ([]byte, error) {
	if outputLength == 0 || outputLength > p.digestSize {
		return nil, keyring.NewError(keyring.KindKeyMaterialInvalid,
			fmt.Sprintf("prf: output length %d out of range (max %d)", outputLength, p.digestSize))
	}
	mh := hmac.New(p.hashFunc, p.key)
	mh.Write(input)
	return mh.Sum(nil)[:outputLength], nil
}

func validatePRFParams(hashKind keyring.HashKind, keySize uint32) error {
	if subtle.HashDigestSize(hashKind) == 0 {
		return keyring.NewError(keyring.KindKeyMaterialInvalid,
			fmt.Sprintf("prf: unsupported hash %s", hashKind))
	}
	if keySize < minPRFKeySize {
		return keyring.NewError(keyring.KindKeyMaterialInvalid,
			fmt.Sprintf("prf: key size %d below minimum %d", keySize, minPRFKeySize))
	}
	return nil
}
