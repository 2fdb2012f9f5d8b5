package cryptofmt

import (
	"bytes"
	"testing"

	"xdao.co/keyring"
)

func TestOutputPrefix_Raw(t *testing.T) {
	for _, keyID := range []uint32{0, 42, 0xffffffff} {
		prefix, err := OutputPrefix(keyring.RawPrefix, keyID)
		if err != nil {
			t.Fatalf("OutputPrefix(RAW, %d): %v", keyID, err)
		}
		if prefix != "" {
			t.Fatalf("OutputPrefix(RAW, %d) = %q, want empty", keyID, prefix)
		}
	}
}

func TestOutputPrefix_Tink(t *testing.T) {
	prefix, err := OutputPrefix(keyring.TinkPrefix, 42)
	if err != nil {
		t.Fatalf("OutputPrefix(TINK, 42): %v", err)
	}
	if len(prefix) != NonRawPrefixSize {
		t.Fatalf("prefix length = %d, want %d", len(prefix), NonRawPrefixSize)
	}
	if prefix[0] != TinkStartByte {
		t.Fatalf("start byte = %#x, want %#x", prefix[0], TinkStartByte)
	}
	if !bytes.Equal([]byte(prefix[1:]), []byte{0, 0, 0, 42}) {
		t.Fatalf("key id bytes = %v, want big-endian 42", []byte(prefix[1:]))
	}
}

func TestOutputPrefix_LegacyAndCrunchyShareShape(t *testing.T) {
	legacy, err := OutputPrefix(keyring.LegacyPrefix, 0x01020304)
	if err != nil {
		t.Fatalf("legacy: %v", err)
	}
	crunchy, err := OutputPrefix(keyring.CrunchyPrefix, 0x01020304)
	if err != nil {
		t.Fatalf("crunchy: %v", err)
	}
	if legacy != crunchy {
		t.Fatalf("legacy prefix %x != crunchy prefix %x", legacy, crunchy)
	}
	if legacy[0] != LegacyStartByte {
		t.Fatalf("start byte = %#x, want %#x", legacy[0], LegacyStartByte)
	}
	if !bytes.Equal([]byte(legacy[1:]), []byte{1, 2, 3, 4}) {
		t.Fatalf("key id bytes = %v", []byte(legacy[1:]))
	}
}

func TestOutputPrefix_UnknownKind(t *testing.T) {
	_, err := OutputPrefix(keyring.UnknownPrefix, 1)
	if !keyring.IsKind(err, keyring.KindUnsupportedOutputPrefixKind) {
		t.Fatalf("err = %v, want UnsupportedOutputPrefixKind", err)
	}
}

func TestSplitPrefix(t *testing.T) {
	payload := []byte{1, 0, 0, 0, 42, 0xde, 0xad}
	prefix, rest, err := SplitPrefix(payload, NonRawPrefixSize)
	if err != nil {
		t.Fatalf("SplitPrefix: %v", err)
	}
	if prefix != string(payload[:5]) {
		t.Fatalf("prefix = %x", prefix)
	}
	if !bytes.Equal(rest, []byte{0xde, 0xad}) {
		t.Fatalf("remainder = %x", rest)
	}

	if _, _, err := SplitPrefix([]byte{1, 2}, NonRawPrefixSize); err == nil {
		t.Fatalf("expected error for short payload")
	}
}
