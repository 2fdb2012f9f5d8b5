package keyset_test

import (
	"testing"

	"xdao.co/keyring"
	"xdao.co/keyring/insecurecleartextkeyset"
	"xdao.co/keyring/keyset"
)

func TestManagerRotate(t *testing.T) {
	mustRegisterDummies(t)
	m := keyset.NewManager()
	if err := m.Rotate(dummyTemplate()); err != nil {
		t.Fatalf("Rotate: %v", err)
	}
	h1, err := m.Handle()
	if err != nil {
		t.Fatalf("Handle: %v", err)
	}
	firstPrimary := h1.KeysetInfo().PrimaryKeyID

	if err := m.Rotate(dummyTemplate()); err != nil {
		t.Fatalf("second Rotate: %v", err)
	}
	h2, err := m.Handle()
	if err != nil {
		t.Fatalf("Handle: %v", err)
	}
	info := h2.KeysetInfo()
	if len(info.KeyInfo) != 2 {
		t.Fatalf("rotated keyset has %d keys, want 2", len(info.KeyInfo))
	}
	if info.PrimaryKeyID == firstPrimary {
		t.Fatal("rotation did not change the primary")
	}
	// The old key stays enabled so old payloads remain processable.
	for _, ki := range info.KeyInfo {
		if ki.KeyID == firstPrimary && ki.Status != keyring.Enabled {
			t.Fatalf("old primary status = %v", ki.Status)
		}
	}
	// The earlier handle is unaffected by the rotation.
	if got := len(h1.KeysetInfo().KeyInfo); got != 1 {
		t.Fatalf("earlier handle now has %d keys", got)
	}
}

func TestManagerSetPrimary(t *testing.T) {
	mustRegisterDummies(t)
	m := keyset.NewManager()
	if err := m.Rotate(dummyTemplate()); err != nil {
		t.Fatalf("Rotate: %v", err)
	}
	newID, err := m.Add(dummyTemplate())
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	if err := m.SetPrimary(newID); err != nil {
		t.Fatalf("SetPrimary: %v", err)
	}
	h, err := m.Handle()
	if err != nil {
		t.Fatalf("Handle: %v", err)
	}
	if h.KeysetInfo().PrimaryKeyID != newID {
		t.Fatal("SetPrimary did not take effect")
	}

	if err := m.SetPrimary(9999); !keyring.IsKind(err, keyring.KindInvalidKeyset) {
		t.Fatalf("SetPrimary(absent) = %v, want KindInvalidKeyset", err)
	}
}

func TestManagerDisableAndDestroy(t *testing.T) {
	mustRegisterDummies(t)
	m := keyset.NewManager()
	if err := m.Rotate(dummyTemplate()); err != nil {
		t.Fatalf("Rotate: %v", err)
	}
	oldID, err := m.Add(dummyTemplate())
	if err != nil {
		t.Fatalf("Add: %v", err)
	}

	if err := m.Disable(oldID); err != nil {
		t.Fatalf("Disable: %v", err)
	}
	if err := m.Destroy(oldID); err != nil {
		t.Fatalf("Destroy: %v", err)
	}
	h, err := m.Handle()
	if err != nil {
		t.Fatalf("Handle: %v", err)
	}
	ks := insecurecleartextkeyset.KeysetMaterial(h)
	for _, k := range ks.Keys {
		if k.KeyID == oldID {
			if k.Status != keyring.Destroyed {
				t.Fatalf("destroyed key status = %v", k.Status)
			}
			if k.KeyData.Value != nil {
				t.Fatal("destroyed key kept its material")
			}
		}
	}
}

func TestManagerProtectsPrimary(t *testing.T) {
	mustRegisterDummies(t)
	m := keyset.NewManager()
	if err := m.Rotate(dummyTemplate()); err != nil {
		t.Fatalf("Rotate: %v", err)
	}
	h, err := m.Handle()
	if err != nil {
		t.Fatalf("Handle: %v", err)
	}
	primary := h.KeysetInfo().PrimaryKeyID

	if err := m.Disable(primary); !keyring.IsKind(err, keyring.KindInvalidKeyset) {
		t.Fatalf("Disable(primary) = %v, want KindInvalidKeyset", err)
	}
	if err := m.Destroy(primary); !keyring.IsKind(err, keyring.KindInvalidKeyset) {
		t.Fatalf("Destroy(primary) = %v, want KindInvalidKeyset", err)
	}
}

func TestManagerRejectsBadTemplate(t *testing.T) {
	mustRegisterDummies(t)
	m := keyset.NewManager()
	bad := dummyTemplate()
	bad.OutputPrefixKind = keyring.OutputPrefixKind(99)
	if _, err := m.Add(bad); !keyring.IsKind(err, keyring.KindUnsupportedOutputPrefixKind) {
		t.Fatalf("Add = %v, want KindUnsupportedOutputPrefixKind", err)
	}

	unknown := dummyTemplate()
	unknown.TypeURL = "type.xdao.co/xdao.keyring.test.UnregisteredKey"
	if _, err := m.Add(unknown); !keyring.IsKind(err, keyring.KindUnknownTypeURL) {
		t.Fatalf("Add = %v, want KindUnknownTypeURL", err)
	}
}

func TestManagerFromHandle(t *testing.T) {
	mustRegisterDummies(t)
	h, err := keyset.NewHandle(dummyTemplate())
	if err != nil {
		t.Fatalf("NewHandle: %v", err)
	}
	m := keyset.NewManagerFromHandle(h)
	if err := m.Rotate(dummyTemplate()); err != nil {
		t.Fatalf("Rotate: %v", err)
	}
	h2, err := m.Handle()
	if err != nil {
		t.Fatalf("Handle: %v", err)
	}
	if got := len(h2.KeysetInfo().KeyInfo); got != 2 {
		t.Fatalf("rotated copy has %d keys, want 2", got)
	}
	if got := len(h.KeysetInfo().KeyInfo); got != 1 {
		t.Fatalf("source handle has %d keys, want 1", got)
	}
}
