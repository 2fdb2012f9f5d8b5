// Package aead provides keyset-backed authenticated encryption: AES-GCM and
// ChaCha20-Poly1305 key types and an AEAD wrapper that encrypts under the
// primary key and decrypts against every candidate key of a keyset.
package aead

import (
	"crypto/aes"
	"crypto/cipher"
	"fmt"

	"golang.org/x/crypto/chacha20poly1305"

	"xdao.co/keyring"
	"xdao.co/keyring/subtle/random"
)

// AESGCM is the AES-GCM capability implementation. Ciphertexts carry the
// random nonce as their first 12 bytes.
type AESGCM struct {
	aead cipher.AEAD
}

// NewAESGCM returns an AESGCM for a 16- or 32-byte key.
func NewAESGCM(key []byte) (*AESGCM, error) {
	if err := ValidateAESKeySize(uint32(len(key))); err != nil {
		return nil, err
	}
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, keyring.WrapError(keyring.KindKeyMaterialInvalid, "aead: aes cipher", err)
	}
	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, keyring.WrapError(keyring.KindKeyMaterialInvalid, "aead: gcm mode", err)
	}
	return &AESGCM{aead: aead}, nil
}

// ValidateAESKeySize accepts AES-128 and AES-256 keys.
func ValidateAESKeySize(size uint32) error {
	if size != 16 && size != 32 {
		return keyring.NewError(keyring.KindKeyMaterialInvalid,
			fmt.Sprintf("aead: invalid AES key size %d, want 16 or 32", size))
	}
	return nil
}

func (a *AESGCM) Encrypt(plaintext, associatedData []byte) ([]byte, error) {
	nonce := random.GetRandomBytes(uint32(a.aead.NonceSize()))
	return a.aead.Seal(nonce, nonce, plaintext, associatedData), nil
}

func (a *AESGCM) Decrypt(ciphertext, associatedData []byte) ([]byte, error) {
	ns := a.aead.NonceSize()
	if len(ciphertext) < ns+a.aead.Overhead() {
		return nil, keyring.NewError(keyring.KindNoMatchingKey, "aead: ciphertext too short")
	}
	pt, err := a.aead.Open(nil, ciphertext[:ns], ciphertext[ns:], associatedData)
	if err != nil {
		return nil, keyring.WrapError(keyring.KindNoMatchingKey, "aead: decryption failed", err)
	}
	return pt, nil
}

// ChaCha20Poly1305 is the ChaCha20-Poly1305 capability implementation, with
// the same nonce-prefix ciphertext layout as AESGCM.
type ChaCha20Poly1305 struct {
	aead cipher.AEAD
}

// NewChaCha20Poly1305 returns a ChaCha20Poly1305 for a 32-byte key.
func NewChaCha20Poly1305(key []byte) (*ChaCha20Poly1305, error) {
	aead, err := chacha20poly1305.New(key)
	if err != nil {
		return nil, keyring.WrapError(keyring.KindKeyMaterialInvalid, "aead: chacha20poly1305", err)
	}
	return &ChaCha20Poly1305{aead: aead}, nil
}

func (c *ChaCha20Poly1305) Encrypt(plaintext, associatedData []byte) ([]byte, error) {
	nonce := random.GetRandomBytes(chacha20poly1305.NonceSize)
	return c.aead.Seal(nonce, nonce, plaintext, associatedData), nil
}

func (c *ChaCha20Poly1305) Decrypt(ciphertext, associatedData []byte) ([]byte, error) {
	ns := c.aead.NonceSize()
	if len(ciphertext) < ns+c.aead.Overhead() {
		return nil, keyring.NewError(keyring.KindNoMatchingKey, "aead: ciphertext too short")
	}
	pt, err := c.aead.Open(nil, ciphertext[:ns], ciphertext[ns:], associatedData)
	if err != nil {
		return nil, keyring.WrapError(keyring.KindNoMatchingKey, "aead: decryption failed", err)
	}
	return pt, nil
}
