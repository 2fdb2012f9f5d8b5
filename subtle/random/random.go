// Package random provides fresh random material for key generation.
package random

import (
	"crypto/rand"
	"encoding/binary"
)

// GetRandomBytes returns n bytes from the operating system's CSPRNG.
func GetRandomBytes(n uint32) []byte {
	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		// crypto/rand.Read never fails on supported platforms; if it does,
		// key generation must not proceed.
		panic(err)
	}
	return buf
}

// GetRandomUint32 returns a random 32-bit value.
func GetRandomUint32() uint32 {
	return binary.BigEndian.Uint32(GetRandomBytes(4))
}
