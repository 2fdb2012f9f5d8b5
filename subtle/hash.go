// Package subtle carries small helpers shared by the per-family key type
// packages. Nothing here is a public security boundary.
package subtle

import (
	"crypto/sha1"
	"crypto/sha256"
	"crypto/sha512"
	"hash"

	"golang.org/x/crypto/sha3"

	"xdao.co/keyring"
)

// HashFunc maps a HashKind to its constructor, or nil for unsupported kinds.
func HashFunc(kind keyring.HashKind) func() hash.Hash {
	switch kind {
	case keyring.SHA1:
		return sha1.New
	case keyring.SHA224:
		return sha256.New224
	case keyring.SHA256:
		return sha256.New
	case keyring.SHA384:
		return sha512.New384
	case keyring.SHA512:
		return sha512.New
	case keyring.SHA3_256:
		return sha3.New256
	default:
		return nil
	}
}

// HashDigestSize returns the digest size in bytes for kind, or 0 if
// unsupported.
func HashDigestSize(kind keyring.HashKind) uint32 {
	switch kind {
	case keyring.SHA1:
		return 20
	case keyring.SHA224:
		return 28
	case keyring.SHA256, keyring.SHA3_256:
		return 32
	case keyring.SHA384:
		return 48
	case keyring.SHA512:
		return 64
	default:
		return 0
	}
}

// ValidateKeyVersion rejects key versions newer than this library supports.
func ValidateKeyVersion(version, maxExpected uint32) error {
	if version > maxExpected {
		return keyring.NewError(keyring.KindKeyMaterialInvalid,
			"key has version newer than supported")
	}
	return nil
}
