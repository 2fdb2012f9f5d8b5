package aead

import (
	"google.golang.org/protobuf/encoding/protowire"

	"xdao.co/keyring"
)

// AEAD key schemas, hand-assembled with protowire (no codegen).
//
// AESGCMKey:               1=version (varint), 2=key_value (bytes)
// AESGCMKeyFormat:         1=key_size (varint), 2=version (varint)
// ChaCha20Poly1305Key:     1=version (varint), 2=key_value (bytes)
// ChaCha20Poly1305KeyFormat: 1=version (varint)

// AESGCMKey is the serialized key schema for the AES-GCM key type.
type AESGCMKey struct {
	Version  uint32
	KeyValue []byte
}

// AESGCMKeyFormat describes how to generate fresh AES-GCM keys.
type AESGCMKeyFormat struct {
	KeySize uint32
	Version uint32
}

// ChaCha20Poly1305Key is the serialized key schema for the
// ChaCha20-Poly1305 key type.
type ChaCha20Poly1305Key struct {
	Version  uint32
	KeyValue []byte
}

// ChaCha20Poly1305KeyFormat describes how to generate fresh
// ChaCha20-Poly1305 keys. Key size is fixed at 32 bytes.
type ChaCha20Poly1305KeyFormat struct {
	Version uint32
}

func errSchema(msg string) error {
	return keyring.NewError(keyring.KindKeyMaterialInvalid, "aead: malformed "+msg)
}

// versionedKey is the shared shape of AEAD keys: a version and raw bytes.
func marshalVersionedKey(version uint32, keyValue []byte) []byte {
	var b []byte
	b = protowire.AppendTag(b, 1, protowire.VarintType)
	b = protowire.AppendVarint(b, uint64(version))
	b = protowire.AppendTag(b, 2, protowire.BytesType)
	b = protowire.AppendBytes(b, keyValue)
	return b
}

func unmarshalVersionedKey(data []byte) (version uint32, keyValue []byte, err error) {
	if len(data) == 0 {
		return 0, nil, errSchema("empty key")
	}
	for len(data) > 0 {
		num, typ, n := protowire.ConsumeTag(data)
		if n < 0 {
			return 0, nil, errSchema("key tag")
		}
		data = data[n:]
		switch {
		case num == 1 && typ == protowire.VarintType:
			v, n := protowire.ConsumeVarint(data)
			if n < 0 {
				return 0, nil, errSchema("key version")
			}
			version = uint32(v)
			data = data[n:]
		case num == 2 && typ == protowire.BytesType:
			v, n := protowire.ConsumeBytes(data)
			if n < 0 {
				return 0, nil, errSchema("key value")
			}
			keyValue = append([]byte(nil), v...)
			data = data[n:]
		default:
			n := protowire.ConsumeFieldValue(num, typ, data)
			if n < 0 {
				return 0, nil, errSchema("key field")
			}
			data = data[n:]
		}
	}
	return version, keyValue, nil
}

// MarshalAESGCMKey serializes an AESGCMKey.
func MarshalAESGCMKey(k *AESGCMKey) []byte {
	return marshalVersionedKey(k.Version, k.KeyValue)
}

// UnmarshalAESGCMKey parses an AESGCMKey.
func UnmarshalAESGCMKey(data []byte) (*AESGCMKey, error) {
	version, keyValue, err := unmarshalVersionedKey(data)
	if err != nil {
		return nil, err
	}
	return &AESGCMKey{Version: version, KeyValue: keyValue}, nil
}

// MarshalAESGCMKeyFormat serializes an AESGCMKeyFormat.
func MarshalAESGCMKeyFormat(f *AESGCMKeyFormat) []byte {
	var b []byte
	b = protowire.AppendTag(b, 1, protowire.VarintType)
	b = protowire.AppendVarint(b, uint64(f.KeySize))
	b = protowire.AppendTag(b, 2, protowire.VarintType)
	b = protowire.AppendVarint(b, uint64(f.Version))
	return b
}

// UnmarshalAESGCMKeyFormat parses an AESGCMKeyFormat.
func UnmarshalAESGCMKeyFormat(data []byte) (*AESGCMKeyFormat, error) {
	if len(data) == 0 {
		return nil, errSchema("empty key format")
	}
	f := &AESGCMKeyFormat{}
	for len(data) > 0 {
		num, typ, n := protowire.ConsumeTag(data)
		if n < 0 {
			return nil, errSchema("format tag")
		}
		data = data[n:]
		switch {
		case num == 1 && typ == protowire.VarintType:
			v, n := protowire.ConsumeVarint(data)
			if n < 0 {
				return nil, errSchema("format key size")
			}
			f.KeySize = uint32(v)
			data = data[n:]
		case num == 2 && typ == protowire.VarintType:
			v, n := protowire.ConsumeVarint(data)
			if n < 0 {
				return nil, errSchema("format version")
			}
			f.Version = uint32(v)
			data = data[n:]
		default:
			n := protowire.ConsumeFieldValue(num, typ, data)
			if n < 0 {
				return nil, errSchema("format field")
			}
			data = data[n:]
		}
	}
	return f, nil
}

// MarshalChaCha20Poly1305Key serializes a ChaCha20Poly1305Key.
func MarshalChaCha20Poly1305Key(k *ChaCha20Poly1305Key) []byte {
	return marshalVersionedKey(k.Version, k.KeyValue)
}

// UnmarshalChaCha20Poly1305Key parses a ChaCha20Poly1305Key.
func UnmarshalChaCha20Poly1305Key(data []byte) (*ChaCha20Poly1305Key, error) {
	version, keyValue, err := unmarshalVersionedKey(data)
	if err != nil {
		return nil, err
	}
	return &ChaCha20Poly1305Key{Version: version, KeyValue: keyValue}, nil
}

// MarshalChaCha20Poly1305KeyFormat serializes a ChaCha20Poly1305KeyFormat.
func MarshalChaCha20Poly1305KeyFormat(f *ChaCha20Poly1305KeyFormat) []byte {
	var b []byte
	b = protowire.AppendTag(b, 1, protowire.VarintType)
	b = protowire.AppendVarint(b, uint64(f.Version))
	return b
}

// UnmarshalChaCha20Poly1305KeyFormat parses a ChaCha20Poly1305KeyFormat.
// An empty input is accepted; the format carries only a version.
func UnmarshalChaCha20Poly1305KeyFormat(data []byte) (*ChaCha20Poly1305KeyFormat, error) {
	f := &ChaCha20Poly1305KeyFormat{}
	for len(data) > 0 {
		num, typ, n := protowire.ConsumeTag(data)
		if n < 0 {
			return nil, errSchema("format tag")
		}
		data = data[n:]
		switch {
		case num == 1 && typ == protowire.VarintType:
			v, n := protowire.ConsumeVarint(data)
			if n < 0 {
				return nil, errSchema("format version")
			}
			f.Version = uint32(v)
			data = data[n:]
		default:
			n := protowire.ConsumeFieldValue(num, typ, data)
			if n < 0 {
				return nil, errSchema("format field")
			}
			data = data[n:]
		}
	}
	return f, nil
}
