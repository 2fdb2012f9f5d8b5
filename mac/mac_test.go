package mac_test

import (
	"bytes"
	"testing"

	"xdao.co/keyring"
	"xdao.co/keyring/internal/cryptofmt"
	"xdao.co/keyring/keyset"
	"xdao.co/keyring/mac"
)

func TestHMACComputeAndVerify(t *testing.T) {
	key := bytes.Repeat([]byte{0xab}, 32)
	h, err := mac.NewHMAC(keyring.SHA256, key, 16)
	if err != nil {
		t.Fatalf("NewHMAC: %v", err)
	}
	data := []byte("some data to authenticate")
	tag, err := h.ComputeMAC(data)
	if err != nil {
		t.Fatalf("ComputeMAC: %v", err)
	}
	if len(tag) != 16 {
		t.Fatalf("tag length = %d, want 16", len(tag))
	}
	if err := h.VerifyMAC(tag, data); err != nil {
		t.Fatalf("VerifyMAC: %v", err)
	}
	tag[0] ^= 1
	if err := h.VerifyMAC(tag, data); !keyring.IsKind(err, keyring.KindNoMatchingKey) {
		t.Fatalf("tampered tag: got %v, want KindNoMatchingKey", err)
	}
}

func TestValidateHMACParams(t *testing.T) {
	cases := []struct {
		name    string
		hash    keyring.HashKind
		keySize uint32
		tagSize uint32
		ok      bool
	}{
		{"sha256 ok", keyring.SHA256, 32, 16, true},
		{"sha3-256 ok", keyring.SHA3_256, 32, 32, true},
		{"unsupported hash", keyring.UnknownHash, 32, 16, false},
		{"key too short", keyring.SHA256, 15, 16, false},
		{"tag too short", keyring.SHA256, 32, 9, false},
		{"tag exceeds digest", keyring.SHA256, 32, 33, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := mac.ValidateHMACParams(tc.hash, tc.keySize, tc.tagSize)
			if tc.ok && err != nil {
				t.Fatalf("ValidateHMACParams: %v", err)
			}
			if !tc.ok && !keyring.IsKind(err, keyring.KindKeyMaterialInvalid) {
				t.Fatalf("got %v, want KindKeyMaterialInvalid", err)
			}
		})
	}
}

func TestHMACKeyManager(t *testing.T) {
	km := mac.NewHMACKeyManager()
	if km.TypeURL() != mac.HMACTypeURL {
		t.Fatalf("TypeURL = %q", km.TypeURL())
	}
	if !km.DoesSupport(mac.HMACTypeURL) || km.DoesSupport("other") {
		t.Fatal("DoesSupport misroutes")
	}
	if km.SupportsPrivateKeys() {
		t.Fatal("HMAC manager claims private key support")
	}

	template := mac.HMACSHA256Tag128KeyTemplate()
	serialized, err := km.NewKey(template.Value)
	if err != nil {
		t.Fatalf("NewKey: %v", err)
	}
	key, err := mac.UnmarshalHMACKey(serialized)
	if err != nil {
		t.Fatalf("UnmarshalHMACKey: %v", err)
	}
	if len(key.KeyValue) != 32 {
		t.Fatalf("generated key size = %d, want 32", len(key.KeyValue))
	}

	other, err := km.NewKey(template.Value)
	if err != nil {
		t.Fatalf("NewKey: %v", err)
	}
	otherKey, err := mac.UnmarshalHMACKey(other)
	if err != nil {
		t.Fatalf("UnmarshalHMACKey: %v", err)
	}
	if bytes.Equal(key.KeyValue, otherKey.KeyValue) {
		t.Fatal("two generated keys are identical")
	}

	p, err := km.Primitive(serialized)
	if err != nil {
		t.Fatalf("Primitive: %v", err)
	}
	if _, err := p.MAC(); err != nil {
		t.Fatalf("MAC: %v", err)
	}

	if _, err := km.Primitive(nil); !keyring.IsKind(err, keyring.KindKeyMaterialInvalid) {
		t.Fatalf("Primitive(nil) = %v, want KindKeyMaterialInvalid", err)
	}
}

func TestKeysetMACRoundTrip(t *testing.T) {
	if err := mac.Register(); err != nil {
		t.Fatalf("Register: %v", err)
	}
	h, err := keyset.NewHandle(mac.HMACSHA256Tag128KeyTemplate())
	if err != nil {
		t.Fatalf("NewHandle: %v", err)
	}
	m, err := mac.New(h)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	data := []byte("authenticated payload")
	tag, err := m.ComputeMAC(data)
	if err != nil {
		t.Fatalf("ComputeMAC: %v", err)
	}
	if len(tag) != cryptofmt.NonRawPrefixSize+16 {
		t.Fatalf("tag length = %d, want prefix+16", len(tag))
	}
	if err := m.VerifyMAC(tag, data); err != nil {
		t.Fatalf("VerifyMAC: %v", err)
	}
	if err := m.VerifyMAC(tag, []byte("other payload")); !keyring.IsKind(err, keyring.KindNoMatchingKey) {
		t.Fatalf("wrong data: got %v, want KindNoMatchingKey", err)
	}
}

func TestMACSurvivesRotation(t *testing.T) {
	if err := mac.Register(); err != nil {
		t.Fatalf("Register: %v", err)
	}
	m1 := keyset.NewManager()
	if err := m1.Rotate(mac.HMACSHA256Tag128KeyTemplate()); err != nil {
		t.Fatalf("Rotate: %v", err)
	}
	h1, err := m1.Handle()
	if err != nil {
		t.Fatalf("Handle: %v", err)
	}
	oldMAC, err := mac.New(h1)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	data := []byte("tagged before rotation")
	oldTag, err := oldMAC.ComputeMAC(data)
	if err != nil {
		t.Fatalf("ComputeMAC: %v", err)
	}

	if err := m1.Rotate(mac.HMACSHA512Tag256KeyTemplate()); err != nil {
		t.Fatalf("Rotate: %v", err)
	}
	h2, err := m1.Handle()
	if err != nil {
		t.Fatalf("Handle: %v", err)
	}
	newMAC, err := mac.New(h2)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	// The old key stays in the keyset, so its tag still verifies.
	if err := newMAC.VerifyMAC(oldTag, data); err != nil {
		t.Fatalf("old tag after rotation: %v", err)
	}
	// New tags come from the new primary and differ in shape.
	newTag, err := newMAC.ComputeMAC(data)
	if err != nil {
		t.Fatalf("ComputeMAC: %v", err)
	}
	if bytes.Equal(newTag, oldTag) {
		t.Fatal("rotation did not change the tagging key")
	}
	if err := oldMAC.VerifyMAC(newTag, data); !keyring.IsKind(err, keyring.KindNoMatchingKey) {
		t.Fatalf("pre-rotation keyset accepted post-rotation tag: %v", err)
	}
}

func TestRawKeyMAC(t *testing.T) {
	if err := mac.Register(); err != nil {
		t.Fatalf("Register: %v", err)
	}
	template := mac.HMACSHA256Tag128KeyTemplate()
	template.OutputPrefixKind = keyring.RawPrefix
	h, err := keyset.NewHandle(template)
	if err != nil {
		t.Fatalf("NewHandle: %v", err)
	}
	m, err := mac.New(h)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	data := []byte("raw tagged payload")
	tag, err := m.ComputeMAC(data)
	if err != nil {
		t.Fatalf("ComputeMAC: %v", err)
	}
	if len(tag) != 16 {
		t.Fatalf("raw tag length = %d, want 16", len(tag))
	}
	if err := m.VerifyMAC(tag, data); err != nil {
		t.Fatalf("VerifyMAC: %v", err)
	}
}
