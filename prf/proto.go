package prf

import (
	"google.golang.org/protobuf/encoding/protowire"

	"xdao.co/keyring"
)

// PRF key schemas, hand-assembled with protowire (no codegen).
//
// HKDFPRFParams:    1=hash (varint), 2=salt (bytes)
// HKDFPRFKey:       1=version (varint), 2=params (message), 3=key_value (bytes)
// HKDFPRFKeyFormat: 1=params (message), 2=key_size (varint), 3=version (varint)
// HMACPRFParams:    1=hash (varint)
// HMACPRFKey:       1=version (varint), 2=params (message), 3=key_value (bytes)
// HMACPRFKeyFormat: 1=params (message), 2=key_size (varint), 3=version (varint)

// HKDFPRFParams are the HKDF algorithm parameters.
type HKDFPRFParams struct {
	Hash keyring.HashKind
	Salt []byte
}

// HKDFPRFKey is the serialized key schema for the HKDF PRF key type.
type HKDFPRFKey struct {
	Version  uint32
	Params   HKDFPRFParams
	KeyValue []byte
}

// HKDFPRFKeyFormat describes how to generate fresh HKDF PRF keys.
type HKDFPRFKeyFormat struct {
	Params  HKDFPRFParams
	KeySize uint32
	Version uint32
}

// HMACPRFParams are the HMAC PRF algorithm parameters.
type HMACPRFParams struct {
	Hash keyring.HashKind
}

// HMACPRFKey is the serialized key schema for the HMAC PRF key type.
type HMACPRFKey struct {
	Version  uint32
	Params   HMACPRFParams
	KeyValue []byte
}

// HMACPRFKeyFormat describes how to generate fresh HMAC PRF keys.
type HMACPRFKeyFormat struct {
	Params  HMACPRFParams
	KeySize uint32
	Version uint32
}

func errSchema(msg string) error {
	return keyring.NewError(keyring.KindKeyMaterialInvalid, "prf: malformed "+msg)
}

func marshalHKDFParams(p *HKDFPRFParams) []byte {
	var b []byte
	b = protowire.AppendTag(b, 1, protowire.VarintType)
	b = protowire.AppendVarint(b, uint64(p.Hash))
	b = protowire.AppendTag(b, 2, protowire.BytesType)
	b = protowire.AppendBytes(b, p.Salt)
	return b
}

func unmarshalHKDFParams(data []byte) (*HKDFPRFParams, error) {
	p := &HKDFPRFParams{}
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
		case num == 2 && typ == protowire.BytesType:
			v, n := protowire.ConsumeBytes(data)
			if n < 0 {
				return nil, errSchema("params salt")
			}
			p.Salt = append([]byte(nil), v...)
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

// keyShape marshals the shared {version, params, key_value} key layout.
func marshalKeyShape(version uint32, params, keyValue []byte) []byte {
	var b []byte
	b = protowire.AppendTag(b, 1, protowire.VarintType)
	b = protowire.AppendVarint(b, uint64(version))
	b = protowire.AppendTag(b, 2, protowire.BytesType)
	b = protowire.AppendBytes(b, params)
	b = protowire.AppendTag(b, 3, protowire.BytesType)
	b = protowire.AppendBytes(b, keyValue)
	return b
}

func unmarshalKeyShape(data []byte) (version uint32, params, keyValue []byte, err error) {
	if len(data) == 0 {
		return 0, nil, nil, errSchema("empty key")
	}
	for len(data) > 0 {
		num, typ, n := protowire.ConsumeTag(data)
		if n < 0 {
			return 0, nil, nil, errSchema("key tag")
		}
		data = data[n:]
		switch {
		case num == 1 && typ == protowire.VarintType:
			v, n := protowire.ConsumeVarint(data)
			if n < 0 {
				return 0, nil, nil, errSchema("key version")
			}
			version = uint32(v)
			data = data[n:]
		case num == 2 && typ == protowire.BytesType:
			v, n := protowire.ConsumeBytes(data)
			if n < 0 {
				return 0, nil, nil, errSchema("key params")
			}
			params = append([]byte(nil), v...)
			data = data[n:]
		case num == 3 && typ == protowire.BytesType:
			v, n := protowire.ConsumeBytes(data)
			if n < 0 {
				return 0, nil, nil, errSchema("key value")
			}
			keyValue = append([]byte(nil), v...)
			data = data[n:]
		default:
			n := protowire.ConsumeFieldValue(num, typ, data)
			if n < 0 {
				return 0, nil, nil, errSchema("key field")
			}
			data = data[n:]
		}
	}
	return version, params, keyValue, nil
}

// formatShape marshals the shared {params, key_size, version} format layout.
func marshalFormatShape(params []byte, keySize, version uint32) []byte {
	var b []byte
	b = protowire.AppendTag(b, 1, protowire.BytesType)
	b = protowire.AppendBytes(b, params)
	b = protowire.AppendTag(b, 2, protowire.VarintType)
	b = protowire.AppendVarint(b, uint64(keySize))
	b = protowire.AppendTag(b, 3, protowire.VarintType)
	b = protowire.AppendVarint(b, uint64(version))
	return b
}

func unmarshalFormatShape(data []byte) (params []byte, keySize, version uint32, err error) {
	if len(data) == 0 {
		return nil, 0, 0, errSchema("empty key format")
	}
	for len(data) > 0 {
		num, typ, n := protowire.ConsumeTag(data)
		if n < 0 {
			return nil, 0, 0, errSchema("format tag")
		}
		data = data[n:]
		switch {
		case num == 1 && typ == protowire.BytesType:
			v, n := protowire.ConsumeBytes(data)
			if n < 0 {
				return nil, 0, 0, errSchema("format params")
			}
			params = append([]byte(nil), v...)
			data = data[n:]
		case num == 2 && typ == protowire.VarintType:
			v, n := protowire.ConsumeVarint(data)
			if n < 0 {
				return nil, 0, 0, errSchema("format key size")
			}
			keySize = uint32(v)
			data = data[n:]
		case num == 3 && typ == protowire.VarintType:
			v, n := protowire.ConsumeVarint(data)
			if n < 0 {
				return nil, 0, 0, errSchema("format version")
			}
			version = uint32(v)
			data = data[n:]
		default:
			n := protowire.ConsumeFieldValue(num, typ, data)
			if n < 0 {
				return nil, 0, 0, errSchema("format field")
			}
			data = data[n:]
		}
	}
	return params, keySize, version, nil
}

// MarshalHKDFPRFKey serializes an HKDFPRFKey.
func MarshalHKDFPRFKey(k *HKDFPRFKey) []byte {
	return marshalKeyShape(k.Version, marshalHKDFParams(&k.Params), k.KeyValue)
}

// UnmarshalHKDFPRFKey parses an HKDFPRFKey.
func UnmarshalHKDFPRFKey(data []byte) (*HKDFPRFKey, error) {
	version, params, keyValue, err := unmarshalKeyShape(data)
	if err != nil {
		return nil, err
	}
	p, err := unmarshalHKDFParams(params)
	if err != nil {
		return nil, err
	}
	return &HKDFPRFKey{Version: version, Params: *p, KeyValue: keyValue}, nil
}

// MarshalHKDFPRFKeyFormat serializes an HKDFPRFKeyFormat.
func MarshalHKDFPRFKeyFormat(f *HKDFPRFKeyFormat) []byte {
	return marshalFormatShape(marshalHKDFParams(&f.Params), f.KeySize, f.Version)
}

// UnmarshalHKDFPRFKeyFormat parses an HKDFPRFKeyFormat.
func UnmarshalHKDFPRFKeyFormat(data []byte) (*HKDFPRFKeyFormat, error) {
	params, keySize, version, err := unmarshalFormatShape(data)
	if err != nil {
		return nil, err
	}
	p, err := unmarshalHKDFParams(params)
	if err != nil {
		return nil, err
	}
	return &HKDFPRFKeyFormat{Params: *p, KeySize: keySize, Version: version}, nil
}

func marshalHMACParams(p *HMACPRFParams) []byte {
	var b []byte
	b = protowire.AppendTag(b, 1, protowire.VarintType)
	b = protowire.AppendVarint(b, uint64(p.Hash))
	return b
}

func unmarshalHMACParams(data []byte) (*HMACPRFParams, error) {
	p := &HMACPRFParams{}
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

// MarshalHMACPRFKey serializes an HMACPRFKey.
func MarshalHMACPRFKey(k *HMACPRFKey) []byte {
	return marshalKeyShape(k.Version, marshalHMACParams(&k.Params), k.KeyValue)
}

// UnmarshalHMACPRFKey parses an HMACPRFKey.
func UnmarshalHMACPRFKey(data []byte) (*HMACPRFKey, error) {
	version, params, keyValue, err := unmarshalKeyShape(data)
	if err != nil {
		return nil, err
	}
	p, err := unmarshalHMACParams(params)
	if err != nil {
		return nil, err
	}
	return &HMACPRFKey{Version: version, Params: *p, KeyValue: keyValue}, nil
}

// MarshalHMACPRFKeyFormat serializes an HMACPRFKeyFormat.
func MarshalHMACPRFKeyFormat(f *HMACPRFKeyFormat) []byte {
	return marshalFormatShape(marshalHMACParams(&f.Params), f.KeySize, f.Version)
}

// UnmarshalHMACPRFKeyFormat parses an HMACPRFKeyFormat.
func UnmarshalHMACPRFKeyFormat(data []byte) (*HMACPRFKeyFormat, error) {
	params, keySize, version, err := unmarshalFormatShape(data)
	if err != nil {
		return nil, err
	}
	p, err := unmarshalHMACParams(params)
	if err != nil {
		return nil, err
	}
	return &HMACPRFKeyFormat{Params: *p, KeySize: keySize, Version: version}, nil
}
