package prf_test

import (
	"bytes"
	"testing"

	"xdao.co/keyring"
	"xdao.co/keyring/keyset"
	"xdao.co/keyring/prf"
)

func TestHKDFPRFDeterministic(t *testing.T) {
	key := bytes.Repeat([]byte{0x5a}, 32)
	p, err := prf.NewHKDFPRF(keyring.SHA256, key, []byte("salt"))
	if err != nil {
		t.Fatalf("NewHKDFPRF: %v", err)
	}
	out1, err := p.ComputePRF([]byte("input"), 32)
	if err != nil {
		t.Fatalf("ComputePRF: %v", err)
	}
	out2, err := p.ComputePRF([]byte("input"), 32)
	if err != nil {
		t.Fatalf("ComputePRF: %v", err)
	}
	if !bytes.Equal(out1, out2) {
		t.Fatal("PRF is not deterministic")
	}
	other, err := p.ComputePRF([]byte("other input"), 32)
	if err != nil {
		t.Fatalf("ComputePRF: %v", err)
	}
	if bytes.Equal(out1, other) {
		t.Fatal("distinct inputs produced identical output")
	}
	// A longer output extends the shorter one.
	long, err := p.ComputePRF([]byte("input"), 64)
	if err != nil {
		t.Fatalf("ComputePRF: %v", err)
	}
	if !bytes.Equal(long[:32], out1) {
		t.Fatal("HKDF output streams are inconsistent")
	}
}

func TestHKDFPRFOutputBounds(t *testing.T) {
	key := bytes.Repeat([]byte{0x5a}, 32)
	p, err := prf.NewHKDFPRF(keyring.SHA256, key, nil)
	if err != nil {
		t.Fatalf("NewHKDFPRF: %v", err)
	}
	if _, err := p.ComputePRF([]byte("x"), 0); err == nil {
		t.Fatal("accepted zero output length")
	}
	if _, err := p.ComputePRF([]byte("x"), 255*32+1); err == nil {
		t.Fatal("accepted output beyond HKDF bound")
	}
}

func TestHMACPRF(t *testing.T) {
	key := bytes.Repeat([]byte{0x33}, 32)
	p, err := prf.NewHMACPRF(keyring.SHA256, key)
	if err != nil {
		t.Fatalf("NewHMACPRF: %v", err)
	}
	out, err := p.ComputePRF([]byte("input"), 16)
	if err != nil {
		t.Fatalf("ComputePRF: %v", err)
	}
	if len(out) != 16 {
		t.Fatalf("output length = %d, want 16", len(out))
	}
	full, err := p.ComputePRF([]byte("input"), 32)
	if err != nil {
		t.Fatalf("ComputePRF: %v", err)
	}
	if !bytes.Equal(full[:16], out) {
		t.Fatal("truncated output is not a prefix of the full output")
	}
	if _, err := p.ComputePRF([]byte("input"), 33); err == nil {
		t.Fatal("accepted output beyond digest size")
	}
}

func TestPRFRejectsShortKeys(t *testing.T) {
	if _, err := prf.NewHMACPRF(keyring.SHA256, make([]byte, 15)); !keyring.IsKind(err, keyring.KindKeyMaterialInvalid) {
		t.Fatalf("got %v, want KindKeyMaterialInvalid", err)
	}
	if _, err := prf.NewHKDFPRF(keyring.SHA256, make([]byte, 15), nil); !keyring.IsKind(err, keyring.KindKeyMaterialInvalid) {
		t.Fatalf("got %v, want KindKeyMaterialInvalid", err)
	}
}

func TestKeysetPRFSet(t *testing.T) {
	if err := prf.Register(); err != nil {
		t.Fatalf("Register: %v", err)
	}
	for _, template := range []keyring.KeyTemplate{
		prf.HKDFSHA256PRFKeyTemplate(),
		prf.HMACSHA256PRFKeyTemplate(),
		prf.HMACSHA512PRFKeyTemplate(),
	} {
		h, err := keyset.NewHandle(template)
		if err != nil {
			t.Fatalf("NewHandle: %v", err)
		}
		set, err := prf.NewSet(h)
		if err != nil {
			t.Fatalf("NewSet: %v", err)
		}
		if len(set.PRFs) != 1 {
			t.Fatalf("set has %d PRFs, want 1", len(set.PRFs))
		}
		out, err := set.ComputePrimaryPRF([]byte("input"), 16)
		if err != nil {
			t.Fatalf("ComputePrimaryPRF: %v", err)
		}
		if len(out) != 16 {
			t.Fatalf("output length = %d, want 16", len(out))
		}
		if _, ok := set.PRFs[set.PrimaryID]; !ok {
			t.Fatal("primary id missing from PRFs map")
		}
	}
}

func TestPRFSetKeepsOldKeysAfterRotation(t *testing.T) {
	if err := prf.Register(); err != nil {
		t.Fatalf("Register: %v", err)
	}
	m := keyset.NewManager()
	if err := m.Rotate(prf.HMACSHA256PRFKeyTemplate()); err != nil {
		t.Fatalf("Rotate: %v", err)
	}
	h1, err := m.Handle()
	if err != nil {
		t.Fatalf("Handle: %v", err)
	}
	set1, err := prf.NewSet(h1)
	if err != nil {
		t.Fatalf("NewSet: %v", err)
	}
	oldID := set1.PrimaryID
	oldOut, err := set1.ComputePrimaryPRF([]byte("derive"), 32)
	if err != nil {
		t.Fatalf("ComputePrimaryPRF: %v", err)
	}

	if err := m.Rotate(prf.HMACSHA256PRFKeyTemplate()); err != nil {
		t.Fatalf("Rotate: %v", err)
	}
	h2, err := m.Handle()
	if err != nil {
		t.Fatalf("Handle: %v", err)
	}
	set2, err := prf.NewSet(h2)
	if err != nil {
		t.Fatalf("NewSet: %v", err)
	}
	if set2.PrimaryID == oldID {
		t.Fatal("rotation did not change the primary")
	}
	// The old key's PRF is still reachable by id and agrees with its old
	// outputs.
	old, ok := set2.PRFs[oldID]
	if !ok {
		t.Fatal("old key missing from rotated set")
	}
	got, err := old.ComputePRF([]byte("derive"), 32)
	if err != nil {
		t.Fatalf("ComputePRF: %v", err)
	}
	if !bytes.Equal(got, oldOut) {
		t.Fatal("old key's PRF output changed after rotation")
	}
}

func TestPRFSetRejectsPrefixedKeys(t *testing.T) {
	if err := prf.Register(); err != nil {
		t.Fatalf("Register: %v", err)
	}
	template := prf.HMACSHA256PRFKeyTemplate()
	template.OutputPrefixKind = keyring.TinkPrefix
	h, err := keyset.NewHandle(template)
	if err != nil {
		t.Fatalf("NewHandle: %v", err)
	}
	_, err = prf.NewSet(h)
	if !keyring.IsKind(err, keyring.KindUnsupportedOutputPrefixKind) {
		t.Fatalf("got %v, want KindUnsupportedOutputPrefixKind", err)
	}
}
