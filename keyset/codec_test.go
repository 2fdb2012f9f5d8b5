package keyset

import (
	"bytes"
	"reflect"
	"strings"
	"testing"

	"xdao.co/keyring"
)

func codecKeyset() *Keyset {
	return &Keyset{
		PrimaryKeyID: 42,
		Keys: []Key{
			{
				KeyData: keyring.KeyData{
					TypeURL:         "type.xdao.co/test.Key",
					Value:           []byte{0x01, 0x02, 0xff},
					KeyMaterialKind: keyring.Symmetric,
				},
				Status:           keyring.Enabled,
				KeyID:            42,
				OutputPrefixKind: keyring.TinkPrefix,
			},
			{
				KeyData: keyring.KeyData{
					TypeURL:         "type.xdao.co/test.OtherKey",
					Value:           []byte("raw key bytes"),
					KeyMaterialKind: keyring.AsymmetricPrivate,
				},
				Status:           keyring.Disabled,
				KeyID:            43,
				OutputPrefixKind: keyring.CrunchyPrefix,
			},
		},
	}
}

func TestBinaryRoundTrip(t *testing.T) {
	ks := codecKeyset()
	data, err := Marshal(ks)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	got, err := Unmarshal(data)
	if err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if !reflect.DeepEqual(ks, got) {
		t.Fatalf("round trip mismatch:\n%+v\n%+v", ks, got)
	}
}

func TestUnmarshalGarbage(t *testing.T) {
	_, err := Unmarshal([]byte{0xff, 0xff, 0xff, 0xff})
	if !keyring.IsKind(err, keyring.KindInvalidKeyset) {
		t.Fatalf("got %v, want KindInvalidKeyset", err)
	}
}

func TestUnmarshalEmptyIsEmptyKeyset(t *testing.T) {
	ks, err := Unmarshal(nil)
	if err != nil {
		t.Fatalf("Unmarshal(nil): %v", err)
	}
	if ks.PrimaryKeyID != 0 || len(ks.Keys) != 0 {
		t.Fatalf("got %+v, want empty keyset", ks)
	}
}

func TestEncryptedRoundTrip(t *testing.T) {
	ek := &EncryptedKeyset{
		EncryptedKeyset: []byte("opaque blob"),
		KeysetInfo: &Info{
			PrimaryKeyID: 7,
			KeyInfo: []KeyInfo{
				{TypeURL: "type.xdao.co/test.Key", Status: keyring.Enabled, KeyID: 7, OutputPrefixKind: keyring.TinkPrefix},
			},
		},
	}
	data, err := MarshalEncrypted(ek)
	if err != nil {
		t.Fatalf("MarshalEncrypted: %v", err)
	}
	got, err := UnmarshalEncrypted(data)
	if err != nil {
		t.Fatalf("UnmarshalEncrypted: %v", err)
	}
	if !reflect.DeepEqual(ek, got) {
		t.Fatalf("round trip mismatch:\n%+v\n%+v", ek, got)
	}
}

func TestJSONRoundTrip(t *testing.T) {
	ks := codecKeyset()
	data, err := MarshalJSON(ks)
	if err != nil {
		t.Fatalf("MarshalJSON: %v", err)
	}
	got, err := UnmarshalJSON(data)
	if err != nil {
		t.Fatalf("UnmarshalJSON: %v", err)
	}
	if !reflect.DeepEqual(ks, got) {
		t.Fatalf("round trip mismatch:\n%+v\n%+v", ks, got)
	}
}

func TestJSONUsesSymbolicEnums(t *testing.T) {
	data, err := MarshalJSON(codecKeyset())
	if err != nil {
		t.Fatalf("MarshalJSON: %v", err)
	}
	s := string(data)
	for _, want := range []string{
		`"status":"ENABLED"`,
		`"status":"DISABLED"`,
		`"outputPrefixKind":"TINK"`,
		`"outputPrefixKind":"CRUNCHY"`,
		`"keyMaterialKind":"SYMMETRIC"`,
		`"primaryKeyId":42`,
	} {
		if !strings.Contains(s, want) {
			t.Fatalf("JSON %s missing %s", s, want)
		}
	}
}

func TestJSONInvalid(t *testing.T) {
	_, err := UnmarshalJSON([]byte(`{"primaryKeyId": "not a number"`))
	if !keyring.IsKind(err, keyring.KindInvalidKeyset) {
		t.Fatalf("got %v, want KindInvalidKeyset", err)
	}
}

func TestBinaryReaderWriter(t *testing.T) {
	ks := codecKeyset()
	var buf bytes.Buffer
	if err := NewBinaryWriter(&buf).Write(ks); err != nil {
		t.Fatalf("Write: %v", err)
	}
	got, err := NewBinaryReader(&buf).Read()
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if !reflect.DeepEqual(ks, got) {
		t.Fatal("binary reader/writer round trip mismatch")
	}
}

func TestJSONReaderWriter(t *testing.T) {
	ks := codecKeyset()
	var buf bytes.Buffer
	if err := NewJSONWriter(&buf).Write(ks); err != nil {
		t.Fatalf("Write: %v", err)
	}
	got, err := NewJSONReader(&buf).Read()
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if !reflect.DeepEqual(ks, got) {
		t.Fatal("JSON reader/writer round trip mismatch")
	}
}
