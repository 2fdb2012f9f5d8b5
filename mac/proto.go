package mac

import (
	"google.golang.org/protobuf/encoding/protowire"

	"xdao.co/keyring"
)

// HMAC key schema, hand-assembled with protowire (no codegen).
//
// HMACParams:    1=hash (varint), 2=tag_size (varint)
// HMACKey:       1=version (varint), 2=params (message), 3=key_value (bytes)
// HMACKeyFormat: 1=params (message), 2=key_size (varint), 3=version (varint)

// HMACParams are the algorithm parameters shared by keys and key formats.
type HMACParams struct {
	Hash    keyring.HashKind
	TagSize uint32
}

// HMACKey is the serialized key schema for the HMAC key type.
type HMACKey struct {
	Version  uint32
	Params   HMACParams
	KeyValue []byte
}

// HMACKeyFormat describes how to generate fresh HMAC keys.
type HMACKeyFormat struct {
	Params  HMACParams
	KeySize uint32
	Version uint32
}

func errSchema(msg string) error {
	return keyring.NewError(keyring.KindKeyMaterialInvalid, "mac: malformed "+msg)
}

func marshalParams(p *HMACParams) []byte {
	var b []byte
	b = protowire.AppendTag(b, 1, protowire.VarintType)
	b = protowire.AppendVarint(b, uint64(p.Hash))
	b = protowire.AppendTag(b, 2, protowire.VarintType)
	b = protowire.AppendVarint(b, uint64(p.TagSize))
	return b
}

func unmarshalParams(data []byte) (*HMACParams, error) {
	p := &HMACParams{}
	for len(data) > 0 {
		num, typ, n := protowire.ConsumeTag(data)
		if n < 0 {
			return nil, errSchema("params tag")
		}
		data = data[n:]
		switch {
		case num == 1 && typ == protowire.VarintType:
			v, n := protowire.ConsumeVarint(data)
			if n < 0 {
				return nil, errSchema("params hash")
			}
			p.Hash = keyring.HashKind(v)
			data = data[n:]
		case num == 2 && typ == protowire.VarintType:
			v, n := protowire.ConsumeVarint(data)
			if n < 0 {
				return nil, errSchema("params tag size")
			}
			p.TagSize = uint32(v)
			data = data[n:]
		default:
			n := protowire.ConsumeFieldValue(num, typ, data)
			if n < 0 {
				return nil, errSchema("params field")
			}
			data = data[n:]
		}
	}
	return p, nil
}

// MarshalHMACKey serializes an HMACKey.
func MarshalHMACKey(k *HMACKey) []byte {
	var b []byte
	b = protowire.AppendTag(b, 1, protowire.VarintType)
	b = protowire.AppendVarint(b, uint64(k.Version))
	b = protowire.AppendTag(b, 2, protowire.BytesType)
	b = protowire.AppendBytes(b, marshalParams(&k.Params))
	b = protowire.AppendTag(b, 3, protowire.BytesType)
	b = protowire.AppendBytes(b, k.KeyValue)
	return b
}

// UnmarshalHMACKey parses an HMACKey.
func UnmarshalHMACKey(data []byte) (*HMACKey, error) {
	if len(data) == 0 {
		return nil, errSchema("empty key")
	}
	k := &HMACKey{}
	for len(data) > 0 {
		num, typ, n := protowire.ConsumeTag(data)
		if n < 0 {
			return nil, errSchema("key tag")
		}
		data = data[n:]
		switch {
		case num == 1 && typ == protowire.VarintType:
			v, n := protowire.ConsumeVarint(data)
			if n < 0 {
				return nil, errSchema("key version")
			}
			k.Version = uint32(v)
			data = data[n:]
		case num == 2 && typ == protowire.BytesType:
			sub, n := protowire.ConsumeBytes(data)
			if n < 0 {
				return nil, errSchema("key params")
			}
			p, err := unmarshalParams(sub)
			if err != nil {
				return nil, err
			}
			k.Params = *p
			data = data[n:]
		case num == 3 && typ == protowire.BytesType:
			v, n := protowire.ConsumeBytes(data)
			if n < 0 {
				return nil, errSchema("key value")
			}
			k.KeyValue = append([]byte(nil), v...)
			data = data[n:]
		default:
			n := protowire.ConsumeFieldValue(num, typ, data)
			if n < 0 {
				return nil, errSchema("key field")
			}
			data = data[n:]
		}
	}
	return k, nil
}

// MarshalHMACKeyFormat serializes an HMACKeyFormat.
func MarshalHMACKeyFormat(f *HMACKeyFormat) []byte {
	var b []byte
	b = protowire.AppendTag(b, 1, protowire.BytesType)
	b = protowire.AppendBytes(b, marshalParams(&f.Params))
	b = protowire.AppendTag(b, 2, protowire.VarintType)
	b = protowire.AppendVarint(b, uint64(f.KeySize))
	b = protowire.AppendTag(b, 3, protowire.VarintType)
	b = protowire.AppendVarint(b, uint64(f.Version))
	return b
}

// UnmarshalHMACKeyFormat parses an HMACKeyFormat.
func UnmarshalHMACKeyFormat(data []byte) (*HMACKeyFormat, error) {
	if len(data) == 0 {
		return nil, errSchema("empty key format")
	}
	f := &HMACKeyFormat{}
	for len(data) > 0 {
		num, typ, n := protowire.ConsumeTag(data)
		if n < 0 {
			return nil, errSchema("format tag")
		}
		data = data[n:]
		switch {
		case num == 1 && typ == protowire.BytesType:
			sub, n := protowire.ConsumeBytes(data)
			if n < 0 {
				return nil, errSchema("format params")
			}
			p, err := unmarshalParams(sub)
			if err != nil {
				return nil, err
			}
			f.Params = *p
			data = data[n:]
		case num == 2 && typ == protowire.VarintType:
			v, n := protowire.ConsumeVarint(data)
			if n < 0 {
				return nil, errSchema("format key size")
			}
			f.KeySize = uint32(v)
			data = data[n:]
		case num == 3 && typ == protowire.VarintType:
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
