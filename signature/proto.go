package signature

import (
	"google.golang.org/protobuf/encoding/protowire"

	"xdao.co/keyring"
)

// Signature key schemas, hand-assembled with protowire (no codegen).
//
// Ed25519PublicKey:     1=version (varint), 2=key_value (bytes)
// Ed25519PrivateKey:    1=version (varint), 2=public_key (message), 3=key_value (bytes, 32-byte seed)
// Ed25519KeyFormat:     1=version (varint)
// Dilithium3Params:     1=hash (varint)
// Dilithium3PublicKey:  1=version (varint), 2=params (message), 3=key_value (bytes)
// Dilithium3PrivateKey: 1=version (varint), 2=public_key (message), 3=key_value (bytes)
// Dilithium3KeyFormat:  1=version (varint), 2=params (message)

// Ed25519PublicKey is the serialized public half of an Ed25519 keypair.
type Ed25519PublicKey struct {
	Version  uint32
	KeyValue []byte
}

// Ed25519PrivateKey is the serialized Ed25519 private key. KeyValue holds
// the 32-byte seed; the full private key is re-derived on load.
type Ed25519PrivateKey struct {
	Version   uint32
	PublicKey Ed25519PublicKey
	KeyValue  []byte
}

// Ed25519KeyFormat describes how to generate fresh Ed25519 keypairs.
type Ed25519KeyFormat struct {
	Version uint32
}

// Dilithium3Params are the Dilithium3 algorithm parameters.
type Dilithium3Params struct {
	Hash keyring.HashKind
}

// Dilithium3PublicKey is the serialized public half of a Dilithium3 keypair.
type Dilithium3PublicKey struct {
	Version  uint32
	Params   Dilithium3Params
	KeyValue []byte
}

// Dilithium3PrivateKey is the serialized Dilithium3 private key. KeyValue
// holds the packed private key.
type Dilithium3PrivateKey struct {
	Version   uint32
	PublicKey Dilithium3PublicKey
	KeyValue  []byte
}

// Dilithium3KeyFormat describes how to generate fresh Dilithium3 keypairs.
type Dilithium3KeyFormat struct {
	Version uint32
	Params  Dilithium3Params
}

func errSchema(msg string) error {
	return keyring.NewError(keyring.KindKeyMaterialInvalid, "signature: malformed "+msg)
}

// versioned {version, message, bytes} triple shared by both private key
// shapes and, with an absent third field, the public key shapes.
func marshalTriple(version uint32, msg, value []byte) []byte {
	var b []byte
	b = protowire.AppendTag(b, 1, protowire.VarintType)
	b = protowire.AppendVarint(b, uint64(version))
	if msg != nil {
		b = protowire.AppendTag(b, 2, protowire.BytesType)
		b = protowire.AppendBytes(b, msg)
	}
	if value != nil {
		b = protowire.AppendTag(b, 3, protowire.BytesType)
		b = protowire.AppendBytes(b, value)
	}
	return b
}

func unmarshalTriple(data []byte, what string) (version uint32, msg, value []byte, err error) {
	if len(data) == 0 {
		return 0, nil, nil, errSchema("empty " + what)
	}
	for len(data) > 0 {
		num, typ, n := protowire.ConsumeTag(data)
		if n < 0 {
			return 0, nil, nil, errSchema(what + " tag")
		}
		data = data[n:]
		switch {
		case num == 1 && typ == protowire.VarintType:
			v, n := protowire.ConsumeVarint(data)
			if n < 0 {
				return 0, nil, nil, errSchema(what + " version")
			}
			version = uint32(v)
			data = data[n:]
		case num == 2 && typ == protowire.BytesType:
			v, n := protowire.ConsumeBytes(data)
			if n < 0 {
				return 0, nil, nil, errSchema(what + " field 2")
			}
			msg = append([]byte(nil), v...)
			data = data[n:]
		case num == 3 && typ == protowire.BytesType:
			v, n := protowire.ConsumeBytes(data)
			if n < 0 {
				return 0, nil, nil, errSchema(what + " field 3")
			}
			value = append([]byte(nil), v...)
			data = data[n:]
		default:
			n := protowire.ConsumeFieldValue(num, typ, data)
			if n < 0 {
				return 0, nil, nil, errSchema(what + " field")
			}
			data = data[n:]
		}
	}
	return version, msg, value, nil
}

// MarshalEd25519PublicKey serializes an Ed25519PublicKey.
func MarshalEd25519PublicKey(k *Ed25519PublicKey) []byte {
	var b []byte
	b = protowire.AppendTag(b, 1, protowire.VarintType)
	b = protowire.AppendVarint(b, uint64(k.Version))
	b = protowire.AppendTag(b, 2, protowire.BytesType)
	b = protowire.AppendBytes(b, k.KeyValue)
	return b
}

// UnmarshalEd25519PublicKey parses an Ed25519PublicKey.
func UnmarshalEd25519PublicKey(data []byte) (*Ed25519PublicKey, error) {
	version, keyValue, _, err := unmarshalTriple(data, "ed25519 public key")
	if err != nil {
		return nil, err
	}
	return &Ed25519PublicKey{Version: version, KeyValue: keyValue}, nil
}

// MarshalEd25519PrivateKey serializes an Ed25519PrivateKey.
func MarshalEd25519PrivateKey(k *Ed25519PrivateKey) []byte {
	return marshalTriple(k.Version, MarshalEd25519PublicKey(&k.PublicKey), k.KeyValue)
}

// UnmarshalEd25519PrivateKey parses an Ed25519PrivateKey.
func UnmarshalEd25519PrivateKey(data []byte) (*Ed25519PrivateKey, error) {
	version, pubBytes, keyValue, err := unmarshalTriple(data, "ed25519 private key")
	if err != nil {
		return nil, err
	}
	pub, err := UnmarshalEd25519PublicKey(pubBytes)
	if err != nil {
		return nil, err
	}
	return &Ed25519PrivateKey{Version: version, PublicKey: *pub, KeyValue: keyValue}, nil
}

// MarshalEd25519KeyFormat serializes an Ed25519KeyFormat.
func MarshalEd25519KeyFormat(f *Ed25519KeyFormat) []byte {
	var b []byte
	b = protowire.AppendTag(b, 1, protowire.VarintType)
	b = protowire.AppendVarint(b, uint64(f.Version))
	return b
}

// UnmarshalEd25519KeyFormat parses an Ed25519KeyFormat. An empty input is a
// valid zero-version format.
func UnmarshalEd25519KeyFormat(data []byte) (*Ed25519KeyFormat, error) {
	f := &Ed25519KeyFormat{}
	for len(data) > 0 {
		num, typ, n := protowire.ConsumeTag(data)
		if n < 0 {
			return nil, errSchema("ed25519 key format tag")
		}
		data = data[n:]
		switch {
		case num == 1 && typ == protowire.VarintType:
			v, n := protowire.ConsumeVarint(data)
			if n < 0 {
				return nil, errSchema("ed25519 key format version")
			}
			f.Version = uint32(v)
			data = data[n:]
		default:
			n := protowire.ConsumeFieldValue(num, typ, data)
			if n < 0 {
				return nil, errSchema("ed25519 key format field")
			}
			data = data[n:]
		}
	}
	return f, nil
}

func marshalDilithium3Params(p *Dilithium3Params) []byte {
	var b []byte
	b = protowire.AppendTag(b, 1, protowire.VarintType)
	b = protowire.AppendVarint(b, uint64(p.Hash))
	return b
}

func unmarshalDilithium3Params(data []byte) (*Dilithium3Params, error) {
	p := &Dilithium3Params{}
	for len(data) > 0 {
		num, typ, n := protowire.ConsumeTag(data)
		if n < 0 {
			return nil, errSchema("dilithium3 params tag")
		}
		data = data[n:]
		switch {
		case num == 1 && typ == protowire.VarintType:
			v, n := protowire.ConsumeVarint(data)
			if n < 0 {
				return nil, errSchema("dilithium3 params hash")
			}
			p.Hash = keyring.HashKind(v)
			data = data[n:]
		default:
			n := protowire.ConsumeFieldValue(num, typ, data)
			if n < 0 {
				return nil, errSchema("dilithium3 params field")
			}
			data = data[n:]
		}
	}
	return p, nil
}

// MarshalDilithium3PublicKey serializes a Dilithium3PublicKey.
func MarshalDilithium3PublicKey(k *Dilithium3PublicKey) []byte {
	return marshalTriple(k.Version, marshalDilithium3Params(&k.Params), k.KeyValue)
}

// UnmarshalDilithium3PublicKey parses a Dilithium3PublicKey.
func UnmarshalDilithium3PublicKey(data []byte) (*Dilithium3PublicKey, error) {
	version, params, keyValue, err := unmarshalTriple(data, "dilithium3 public key")
	if err != nil {
		return nil, err
	}
	p, err := unmarshalDilithium3Params(params)
	if err != nil {
		return nil, err
	}
	return &Dilithium3PublicKey{Version: version, Params: *p, KeyValue: keyValue}, nil
}

// MarshalDilithium3PrivateKey serializes a Dilithium3PrivateKey.
func MarshalDilithium3PrivateKey(k *Dilithium3PrivateKey) []byte {
	return marshalTriple(k.Version, MarshalDilithium3PublicKey(&k.PublicKey), k.KeyValue)
}

// UnmarshalDilithium3PrivateKey parses a Dilithium3PrivateKey.
func UnmarshalDilithium3PrivateKey(data []byte) (*Dilithium3PrivateKey, error) {
	version, pubBytes, keyValue, err := unmarshalTriple(data, "dilithium3 private key")
	if err != nil {
		return nil, err
	}
	pub, err := UnmarshalDilithium3PublicKey(pubBytes)
	if err != nil {
		return nil, err
	}
	return &Dilithium3PrivateKey{Version: version, PublicKey: *pub, KeyValue: keyValue}, nil
}

// MarshalDilithium3KeyFormat serializes a Dilithium3KeyFormat.
func MarshalDilithium3KeyFormat(f *Dilithium3KeyFormat) []byte {
	var b []byte
	b = protowire.AppendTag(b, 1, protowire.VarintType)
	b = protowire.AppendVarint(b, uint64(f.Version))
	b = protowire.AppendTag(b, 2, protowire.BytesType)
	b = protowire.AppendBytes(b, marshalDilithium3Params(&f.Params))
	return b
}

// UnmarshalDilithium3KeyFormat parses a Dilithium3KeyFormat.
func UnmarshalDilithium3KeyFormat(data []byte) (*Dilithium3KeyFormat, error) {
	if len(data) == 0 {
		return nil, errSchema("empty dilithium3 key format")
	}
	f := &Dilithium3KeyFormat{}
	for len(data) > 0 {
		num, typ, n := protowire.ConsumeTag(data)
		if n < 0 {
			return nil, errSchema("dilithium3 key format tag")
		}
		data = data[n:]
		switch {
		case num == 1 && typ == protowire.VarintType:
			v, n := protowire.ConsumeVarint(data)
			if n < 0 {
				return nil, errSchema("dilithium3 key format version")
			}
			f.Version = uint32(v)
			data = data[n:]
		case num == 2 && typ == protowire.BytesType:
			v, n := protowire.ConsumeBytes(data)
			if n < 0 {
				return nil, errSchema("dilithium3 key format params")
			}
			p, err := unmarshalDilithium3Params(v)
			if err != nil {
				return nil, err
			}
			f.Params = *p
			data = data[n:]
		default:
			n := protowire.ConsumeFieldValue(num, typ, data)
			if n < 0 {
				return nil, errSchema("dilithium3 key format field")
			}
			data = data[n:]
		}
	}
	return f, nil
}
