// Package cryptofmt implements the output-prefix convention that lets a
// verifier or decryptor find the right key among many without trial-running
// every one: each non-raw output starts with a short prefix derived from the
// producing key's id.
package cryptofmt

import (
	"encoding/binary"
	"fmt"

	"xdao.co/keyring"
)

const (
	// NonRawPrefixSize is the size of every non-raw prefix: one tag byte
	// plus the 4-byte big-endian key id.
	NonRawPrefixSize = 5
	// RawPrefixSize is zero; raw outputs carry no key-identifying prefix.
	RawPrefixSize = 0

	// TinkStartByte tags prefixes of TINK-prefixed outputs.
	TinkStartByte = byte(1)
	// LegacyStartByte tags LEGACY and CRUNCHY outputs; the two kinds are
	// indistinguishable on the wire, kept separate only at the enum level
	// for interoperability with older producers.
	LegacyStartByte = byte(0)
)

// OutputPrefix computes the prefix for a key with the given id under the
// given output prefix kind. The result is a string so it can index maps
// directly.
func OutputPrefix(kind keyring.OutputPrefixKind, keyID uint32) (string, error) {
	switch kind {
	case keyring.TinkPrefix:
		return createOutputPrefix(TinkStartByte, keyID), nil
	case keyring.LegacyPrefix, keyring.CrunchyPrefix:
		return createOutputPrefix(LegacyStartByte, keyID), nil
	case keyring.RawPrefix:
		return "", nil
	default:
		return "", keyring.NewError(keyring.KindUnsupportedOutputPrefixKind,
			fmt.Sprintf("unsupported output prefix kind %d", kind))
	}
}

// SplitPrefix splits payload into its leading prefixLen bytes and the
// remainder. It is the exact inverse of prepending an output prefix.
func SplitPrefix(payload []byte, prefixLen int) (prefix string, remainder []byte, err error) {
	if prefixLen < 0 || prefixLen > len(payload) {
		return "", nil, keyring.NewError(keyring.KindNoMatchingKey,
			fmt.Sprintf("payload too short for %d-byte prefix", prefixLen))
	}
	return string(payload[:prefixLen]), payload[prefixLen:], nil
}

func createOutputPrefix(startByte byte, keyID uint32) string {
	prefix := make([]byte, NonRawPrefixSize)
	prefix[0] = startByte
	binary.BigEndian.PutUint32(prefix[1:], keyID)
	return string(prefix)
}
