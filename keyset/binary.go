package keyset

import (
	"google.golang.org/protobuf/encoding/protowire"

	"xdao.co/keyring"
)

// Binary wire format, hand-assembled with protowire. We deliberately avoid a
// protoc/codegen toolchain; the messages are small and their field numbers
// are frozen here.
//
// Keyset:          1=primary_key_id (varint), 2=key (repeated message)
// Keyset.Key:      1=key_data (message), 2=status (varint),
//                  3=key_id (varint), 4=output_prefix_kind (varint)
// KeyData:         1=type_url (string), 2=value (bytes),
//                  3=key_material_kind (varint)
// EncryptedKeyset: 1=encrypted_keyset (bytes), 2=keyset_info (message)
// Info:            1=primary_key_id (varint), 2=key_info (repeated message)
// KeyInfo:         1=type_url (string), 2=status (varint),
//                  3=key_id (varint), 4=output_prefix_kind (varint)

func errMalformed(msg string) error {
	return keyring.NewError(keyring.KindInvalidKeyset, "keyset: malformed "+msg)
}

// Marshal serializes ks into the binary wire format.
func Marshal(ks *Keyset) ([]byte, error) {
	if ks == nil {
		return nil, errMalformed("nil keyset")
	}
	var b []byte
	b = protowire.AppendTag(b, 1, protowire.VarintType)
	b = protowire.AppendVarint(b, uint64(ks.PrimaryKeyID))
	for _, k := range ks.Keys {
		b = protowire.AppendTag(b, 2, protowire.BytesType)
		b = protowire.AppendBytes(b, marshalKey(&k))
	}
	return b, nil
}

func marshalKey(k *Key) []byte {
	var b []byte
	b = protowire.AppendTag(b, 1, protowire.BytesType)
	b = protowire.AppendBytes(b, marshalKeyData(&k.KeyData))
	b = protowire.AppendTag(b, 2, protowire.VarintType)
	b = protowire.AppendVarint(b, uint64(k.Status))
	b = protowire.AppendTag(b, 3, protowire.VarintType)
	b = protowire.AppendVarint(b, uint64(k.KeyID))
	b = protowire.AppendTag(b, 4, protowire.VarintType)
	b = protowire.AppendVarint(b, uint64(k.OutputPrefixKind))
	return b
}

func marshalKeyData(kd *keyring.KeyData) []byte {
	var b []byte
	b = protowire.AppendTag(b, 1, protowire.BytesType)
	b = protowire.AppendString(b, kd.TypeURL)
	b = protowire.AppendTag(b, 2, protowire.BytesType)
	b = protowire.AppendBytes(b, kd.Value)
	b = protowire.AppendTag(b, 3, protowire.VarintType)
	b = protowire.AppendVarint(b, uint64(kd.KeyMaterialKind))
	return b
}

// Unmarshal parses the binary wire format into a Keyset. It does not run
// Validate; parsing and structural validation are separate steps.
func Unmarshal(data []byte) (*Keyset, error) {
	ks := &Keyset{}
	for len(data) > 0 {
		num, typ, n := protowire.ConsumeTag(data)
		if n < 0 {
			return nil, errMalformed("field tag")
		}
		data = data[n:]
		switch {
		case num == 1 && typ == protowire.VarintType:
			v, n := protowire.ConsumeVarint(data)
			if n < 0 {
				return nil, errMalformed("primary key id")
			}
			ks.PrimaryKeyID = uint32(v)
			data = data[n:]
		case num == 2 && typ == protowire.BytesType:
			sub, n := protowire.ConsumeBytes(data)
			if n < 0 {
				return nil, errMalformed("key entry")
			}
			k, err := unmarshalKey(sub)
			if err != nil {
				return nil, err
			}
			ks.Keys = append(ks.Keys, *k)
			data = data[n:]
		default:
			n := protowire.ConsumeFieldValue(num, typ, data)
			if n < 0 {
				return nil, errMalformed("field value")
			}
			data = data[n:]
		}
	}
	return ks, nil
}

func unmarshalKey(data []byte) (*Key, error) {
	k := &Key{}
	for len(data) > 0 {
		num, typ, n := protowire.ConsumeTag(data)
		if n < 0 {
			return nil, errMalformed("key field tag")
		}
		data = data[n:]
		switch {
		case num == 1 && typ == protowire.BytesType:
			sub, n := protowire.ConsumeBytes(data)
			if n < 0 {
				return nil, errMalformed("key data")
			}
			kd, err := unmarshalKeyData(sub)
			if err != nil {
				return nil, err
			}
			k.KeyData = *kd
			data = data[n:]
		case num == 2 && typ == protowire.VarintType:
			v, n := protowire.ConsumeVarint(data)
			if n < 0 {
				return nil, errMalformed("key status")
			}
			k.Status = keyring.KeyStatus(v)
			data = data[n:]
		case num == 3 && typ == protowire.VarintType:
			v, n := protowire.ConsumeVarint(data)
			if n < 0 {
				return nil, errMalformed("key id")
			}
			k.KeyID = uint32(v)
			data = data[n:]
		case num == 4 && typ == protowire.VarintType:
			v, n := protowire.ConsumeVarint(data)
			if n < 0 {
				return nil, errMalformed("output prefix kind")
			}
			k.OutputPrefixKind = keyring.OutputPrefixKind(v)
			data = data[n:]
		default:
			n := protowire.ConsumeFieldValue(num, typ, data)
			if n < 0 {
				return nil, errMalformed("key field value")
			}
			data = data[n:]
		}
	}
	return k, nil
}

func unmarshalKeyData(data []byte) (*keyring.KeyData, error) {
	kd := &keyring.KeyData{}
	for len(data) > 0 {
		num, typ, n := protowire.ConsumeTag(data)
		if n < 0 {
			return nil, errMalformed("key data field tag")
		}
		data = data[n:]
		switch {
		case num == 1 && typ == protowire.BytesType:
			s, n := protowire.ConsumeString(data)
			if n < 0 {
				return nil, errMalformed("type URL")
			}
			kd.TypeURL = s
			data = data[n:]
		case num == 2 && typ == protowire.BytesType:
			v, n := protowire.ConsumeBytes(data)
			if n < 0 {
				return nil, errMalformed("key value")
			}
			kd.Value = append([]byte(nil), v...)
			data = data[n:]
		case num == 3 && typ == protowire.VarintType:
			v, n := protowire.ConsumeVarint(data)
			if n < 0 {
				return nil, errMalformed("key material kind")
			}
			kd.KeyMaterialKind = keyring.KeyMaterialKind(v)
			data = data[n:]
		default:
			n := protowire.ConsumeFieldValue(num, typ, data)
			if n < 0 {
				return nil, errMalformed("key data field value")
			}
			data = data[n:]
		}
	}
	return kd, nil
}

// MarshalEncrypted serializes an EncryptedKeyset.
func MarshalEncrypted(ek *EncryptedKeyset) ([]byte, error) {
	if ek == nil {
		return nil, errMalformed("nil encrypted keyset")
	}
	var b []byte
	b = protowire.AppendTag(b, 1, protowire.BytesType)
	b = protowire.AppendBytes(b, ek.EncryptedKeyset)
	if ek.KeysetInfo != nil {
		b = protowire.AppendTag(b, 2, protowire.BytesType)
		b = protowire.AppendBytes(b, marshalInfo(ek.KeysetInfo))
	}
	return b, nil
}

// UnmarshalEncrypted parses an EncryptedKeyset.
func UnmarshalEncrypted(data []byte) (*EncryptedKeyset, error) {
	ek := &EncryptedKeyset{}
	for len(data) > 0 {
		num, typ, n := protowire.ConsumeTag(data)
		if n < 0 {
			return nil, errMalformed("encrypted keyset tag")
		}
		data = data[n:]
		switch {
		case num == 1 && typ == protowire.BytesType:
			v, n := protowire.ConsumeBytes(data)
			if n < 0 {
				return nil, errMalformed("encrypted keyset bytes")
			}
			ek.EncryptedKeyset = append([]byte(nil), v...)
			data = data[n:]
		case num == 2 && typ == protowire.BytesType:
			sub, n := protowire.ConsumeBytes(data)
			if n < 0 {
				return nil, errMalformed("keyset info")
			}
			info, err := unmarshalInfo(sub)
			if err != nil {
				return nil, err
			}
			ek.KeysetInfo = info
			data = data[n:]
		default:
			n := protowire.ConsumeFieldValue(num, typ, data)
			if n < 0 {
				return nil, errMalformed("encrypted keyset field")
			}
			data = data[n:]
		}
	}
	return ek, nil
}

func marshalInfo(info *Info) []byte {
	var b []byte
	b = protowire.AppendTag(b, 1, protowire.VarintType)
	b = protowire.AppendVarint(b, uint64(info.PrimaryKeyID))
	for _, ki := range info.KeyInfo {
		var kb []byte
		kb = protowire.AppendTag(kb, 1, protowire.BytesType)
		kb = protowire.AppendString(kb, ki.TypeURL)
		kb = protowire.AppendTag(kb, 2, protowire.VarintType)
		kb = protowire.AppendVarint(kb, uint64(ki.Status))
		kb = protowire.AppendTag(kb, 3, protowire.VarintType)
		kb = protowire.AppendVarint(kb, uint64(ki.KeyID))
		kb = protowire.AppendTag(kb, 4, protowire.VarintType)
		kb = protowire.AppendVarint(kb, uint64(ki.OutputPrefixKind))
		b = protowire.AppendTag(b, 2, protowire.BytesType)
		b = protowire.AppendBytes(b, kb)
	}
	return b
}

func unmarshalInfo(data []byte) (*Info, error) {
	info := &Info{}
	for len(data) > 0 {
		num, typ, n := protowire.ConsumeTag(data)
		if n < 0 {
			return nil, errMalformed("info tag")
		}
		data = data[n:]
		switch {
		case num == 1 && typ == protowire.VarintType:
			v, n := protowire.ConsumeVarint(data)
			if n < 0 {
				return nil, errMalformed("info primary key id")
			}
			info.PrimaryKeyID = uint32(v)
			data = data[n:]
		case num == 2 && typ == protowire.BytesType:
			sub, n := protowire.ConsumeBytes(data)
			if n < 0 {
				return nil, errMalformed("key info")
			}
			ki, err := unmarshalKeyInfo(sub)
			if err != nil {
				return nil, err
			}
			info.KeyInfo = append(info.KeyInfo, *ki)
			data = data[n:]
		default:
			n := protowire.ConsumeFieldValue(num, typ, data)
			if n < 0 {
				return nil, errMalformed("info field")
			}
			data = data[n:]
		}
	}
	return info, nil
}

func unmarshalKeyInfo(data []byte) (*KeyInfo, error) {
	ki := &KeyInfo{}
	for len(data) > 0 {
		num, typ, n := protowire.ConsumeTag(data)
		if n < 0 {
			return nil, errMalformed("key info tag")
		}
		data = data[n:]
		switch {
		case num == 1 && typ == protowire.BytesType:
			s, n := protowire.ConsumeString(data)
			if n < 0 {
				return nil, errMalformed("key info type URL")
			}
			ki.TypeURL = s
			data = data[n:]
		case num == 2 && typ == protowire.VarintType:
			v, n := protowire.ConsumeVarint(data)
			if n < 0 {
				return nil, errMalformed("key info status")
			}
			ki.Status = keyring.KeyStatus(v)
			data = data[n:]
		case num == 3 && typ == protowire.VarintType:
			v, n := protowire.ConsumeVarint(data)
			if n < 0 {
				return nil, errMalformed("key info key id")
			}
			ki.KeyID = uint32(v)
			data = data[n:]
		case num == 4 && typ == protowire.VarintType:
			v, n := protowire.ConsumeVarint(data)
			if n < 0 {
				return nil, errMalformed("key info prefix kind")
			}
			ki.OutputPrefixKind = keyring.OutputPrefixKind(v)
			data = data[n:]
		default:
			n := protowire.ConsumeFieldValue(num, typ, data)
			if n < 0 {
				return nil, errMalformed("key info field")
			}
			data = data[n:]
		}
	}
	return ki, nil
}
