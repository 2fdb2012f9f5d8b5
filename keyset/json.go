package keyset

import (
	"encoding/json"

	"xdao.co/keyring"
)

// JSON representation: byte fields render as standard base64 (encoding/json
// default for []byte), enum fields render as their upper-case symbolic name
// via the enums' TextMarshaler, never their numeric value.

type jsonKeyset struct {
	PrimaryKeyID uint32    `json:"primaryKeyId"`
	Key          []jsonKey `json:"key"`
}

type jsonKey struct {
	KeyData          jsonKeyData              `json:"keyData"`
	Status           keyring.KeyStatus        `json:"status"`
	KeyID            uint32                   `json:"keyId"`
	OutputPrefixKind keyring.OutputPrefixKind `json:"outputPrefixKind"`
}

type jsonKeyData struct {
	TypeURL         string                  `json:"typeUrl"`
	Value           []byte                  `json:"value"`
	KeyMaterialKind keyring.KeyMaterialKind `json:"keyMaterialKind"`
}

type jsonEncryptedKeyset struct {
	EncryptedKeyset []byte    `json:"encryptedKeyset"`
	KeysetInfo      *jsonInfo `json:"keysetInfo,omitempty"`
}

type jsonInfo struct {
	PrimaryKeyID uint32        `json:"primaryKeyId"`
	KeyInfo      []jsonKeyInfo `json:"keyInfo"`
}

type jsonKeyInfo struct {
	TypeURL          string                   `json:"typeUrl"`
	Status           keyring.KeyStatus        `json:"status"`
	KeyID            uint32                   `json:"keyId"`
	OutputPrefixKind keyring.OutputPrefixKind `json:"outputPrefixKind"`
}

// MarshalJSON serializes ks into the JSON representation.
func MarshalJSON(ks *Keyset) ([]byte, error) {
	if ks == nil {
		return nil, errMalformed("nil keyset")
	}
	out := jsonKeyset{PrimaryKeyID: ks.PrimaryKeyID}
	for _, k := range ks.Keys {
		out.Key = append(out.Key, jsonKey{
			KeyData: jsonKeyData{
				TypeURL:         k.KeyData.TypeURL,
				Value:           k.KeyData.Value,
				KeyMaterialKind: k.KeyData.KeyMaterialKind,
			},
			Status:           k.Status,
			KeyID:            k.KeyID,
			OutputPrefixKind: k.OutputPrefixKind,
		})
	}
	return json.Marshal(out)
}

// UnmarshalJSON parses the JSON representation into a Keyset.
func UnmarshalJSON(data []byte) (*Keyset, error) {
	var in jsonKeyset
	if err := json.Unmarshal(data, &in); err != nil {
		return nil, keyring.WrapError(keyring.KindInvalidKeyset, "keyset: invalid JSON", err)
	}
	ks := &Keyset{PrimaryKeyID: in.PrimaryKeyID}
	for _, k := range in.Key {
		ks.Keys = append(ks.Keys, Key{
			KeyData: keyring.KeyData{
				TypeURL:         k.KeyData.TypeURL,
				Value:           k.KeyData.Value,
				KeyMaterialKind: k.KeyData.KeyMaterialKind,
			},
			Status:           k.Status,
			KeyID:            k.KeyID,
			OutputPrefixKind: k.OutputPrefixKind,
		})
	}
	return ks, nil
}

func marshalEncryptedJSON(ek *EncryptedKeyset) ([]byte, error) {
	if ek == nil {
		return nil, errMalformed("nil encrypted keyset")
	}
	out := jsonEncryptedKeyset{EncryptedKeyset: ek.EncryptedKeyset}
	if ek.KeysetInfo != nil {
		info := &jsonInfo{PrimaryKeyID: ek.KeysetInfo.PrimaryKeyID}
		for _, ki := range ek.KeysetInfo.KeyInfo {
			info.KeyInfo = append(info.KeyInfo, jsonKeyInfo(ki))
		}
		out.KeysetInfo = info
	}
	return json.Marshal(out)
}

func unmarshalEncryptedJSON(data []byte) (*EncryptedKeyset, error) {
	var in jsonEncryptedKeyset
	if err := json.Unmarshal(data, &in); err != nil {
		return nil, keyring.WrapError(keyring.KindInvalidKeyset, "keyset: invalid encrypted JSON", err)
	}
	ek := &EncryptedKeyset{EncryptedKeyset: in.EncryptedKeyset}
	if in.KeysetInfo != nil {
		info := &Info{PrimaryKeyID: in.KeysetInfo.PrimaryKeyID}
		for _, ki := range in.KeysetInfo.KeyInfo {
			info.KeyInfo = append(info.KeyInfo, KeyInfo(ki))
		}
		ek.KeysetInfo = info
	}
	return ek, nil
}
