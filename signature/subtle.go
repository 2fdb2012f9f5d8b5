// Package signature provides keyset-backed digital signatures: Ed25519 and
// Dilithium3 key types with Signer/Verifier wrappers that route by output
// prefix. Both schemes sign a digest of the message rather than the message
// itself, so large payloads never cross the signing boundary.
package signature

import (
	"crypto/ed25519"
	"crypto/sha256"
	"fmt"

	"github.com/cloudflare/circl/sign/dilithium/mode3"

	"xdao.co/keyring"
	"xdao.co/keyring/subtle"
)

// ED25519Signer signs sha256(message) with an Ed25519 private key.
type ED25519Signer struct {
	privateKey ed25519.PrivateKey
}

// NewED25519Signer returns a signer for the given 64-byte private key.
func NewED25519Signer(privateKey []byte) (*ED25519Signer, error) {
	if len(privateKey) != ed25519.PrivateKeySize {
		return nil, keyring.NewError(keyring.KindKeyMaterialInvalid,
			fmt.Sprintf("signature: invalid ed25519 private key length %d", len(privateKey)))
	}
	return &ED25519Signer{privateKey: ed25519.PrivateKey(append([]byte(nil), privateKey...))}, nil
}

// NewED25519SignerFromSeed returns a signer for the given 32-byte seed.
func NewED25519SignerFromSeed(seed []byte) (*ED25519Signer, error) {
	if len(seed) != ed25519.SeedSize {
		return nil, keyring.NewError(keyring.KindKeyMaterialInvalid,
			fmt.Sprintf("signature: invalid ed25519 seed length %d", len(seed)))
	}
	return &ED25519Signer{privateKey: ed25519.NewKeyFromSeed(seed)}, nil
}

func (s *ED25519Signer) Sign(data []byte) ([]byte, error) {
	digest := sha256.Sum256(data)
	return ed25519.Sign(s.privateKey, digest[:]), nil
}

// ED25519Verifier checks Ed25519 signatures over sha256(message).
type ED25519Verifier struct {
	publicKey ed25519.PublicKey
}

// NewED25519Verifier returns a verifier for the given 32-byte public key.
func NewED25519Verifier(publicKey []byte) (*ED25519Verifier, error) {
	if len(publicKey) != ed25519.PublicKeySize {
		return nil, keyring.NewError(keyring.KindKeyMaterialInvalid,
			fmt.Sprintf("signature: invalid ed25519 public key length %d", len(publicKey)))
	}
	return &ED25519Verifier{publicKey: ed25519.PublicKey(append([]byte(nil), publicKey...))}, nil
}

func (v *ED25519Verifier) Verify(signature, data []byte) error {
	if len(signature) != ed25519.SignatureSize {
		return keyring.NewError(keyring.KindNoMatchingKey, "signature: invalid ed25519 signature length")
	}
	digest := sha256.Sum256(data)
	if !ed25519.Verify(v.publicKey, digest[:], signature) {
		return keyring.NewError(keyring.KindNoMatchingKey, "signature: ed25519 verification failed")
	}
	return nil
}

// Dilithium3Signer signs hash(message) with a Dilithium3 private key. The
// hash is a key parameter; sha256, sha512 and sha3-256 are supported.
type Dilithium3Signer struct {
	privateKey *mode3.PrivateKey
	hash       keyring.HashKind
}

// NewDilithium3Signer returns a signer for the given packed private key.
func NewDilithium3Signer(privateKey []byte, hash keyring.HashKind) (*Dilithium3Signer, error) {
	if err := validateDilithiumHash(hash); err != nil {
		return nil, err
	}
	var sk mode3.PrivateKey
	if err := sk.UnmarshalBinary(privateKey); err != nil {
		return nil, keyring.WrapError(keyring.KindKeyMaterialInvalid,
			"signature: invalid dilithium3 private key", err)
	}
	return &Dilithium3Signer{privateKey: &sk, hash: hash}, nil
}

func (s *Dilithium3Signer) Sign(data []byte) ([]byte, error) {
	digest, err := digestFor(s.hash, data)
	if err != nil {
		return nil, err
	}
	sig := make([]byte, mode3.SignatureSize)
	mode3.SignTo(s.privateKey, digest, sig)
	return sig, nil
}

// Dilithium3Verifier checks Dilithium3 signatures over hash(message).
type Dilithium3Verifier struct {
	publicKey *mode3.PublicKey
	hash      keyring.HashKind
}

// NewDilithium3Verifier returns a verifier for the given packed public key.
func NewDilithium3Verifier(publicKey []byte, hash keyring.HashKind) (*Dilithium3Verifier, error) {
	if err := validateDilithiumHash(hash); err != nil {
		return nil, err
	}
	var pk mode3.PublicKey
	if err := pk.UnmarshalBinary(publicKey); err != nil {
		return nil, keyring.WrapError(keyring.KindKeyMaterialInvalid,
			"signature: invalid dilithium3 public key", err)
	}
	return &Dilithium3Verifier{publicKey: &pk, hash: hash}, nil
}

func (v *Dilithium3Verifier) Verify(signature, data []byte) error {
	if len(signature) != mode3.SignatureSize {
		return keyring.NewError(keyring.KindNoMatchingKey, "signature: invalid dilithium3 signature length")
	}
	digest, err := digestFor(v.hash, data)
	if err != nil {
		return err
	}
	if !mode3.Verify(v.publicKey, digest, signature) {
		return keyring.NewError(keyring.KindNoMatchingKey, "signature: dilithium3 verification failed")
	}
	return nil
}

func validateDilithiumHash(hash keyring.HashKind) error {
	switch hash {
	case keyring.SHA256, keyring.SHA512, keyring.SHA3_256:
		return nil
	}
	return keyring.NewError(keyring.KindKeyMaterialInvalid,
		fmt.Sprintf("signature: unsupported dilithium3 hash %s", hash))
}

func digestFor(hash keyring.HashKind, message []byte) ([]byte, error) {
	hf := subtle.HashFunc(hash)
	if hf == nil {
		return nil, keyring.NewError(keyring.KindKeyMaterialInvalid,
			fmt.Sprintf("signature: unsupported hash %s", hash))
	}
	h := hf()
	h.Write(message)
	return h.Sum(nil), nil
}
