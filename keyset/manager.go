package keyset

import (
	"fmt"

	"xdao.co/keyring"
	"xdao.co/keyring/registry"
	"xdao.co/keyring/subtle/random"
)

// Manager mutates a keyset under construction: generating keys from
// templates, rotating the primary, and changing entry status. Handles it
// hands out wrap copies, so a finished handle is unaffected by further
// manager calls.
type Manager struct {
	ks *Keyset
}

// NewManager returns a Manager over an empty keyset.
func NewManager() *Manager {
	return &Manager{ks: &Keyset{}}
}

// NewManagerFromHandle returns a Manager seeded with a copy of h's keyset,
// for rotating an existing keyset.
func NewManagerFromHandle(h *Handle) *Manager {
	ks := &Keyset{PrimaryKeyID: h.ks.PrimaryKeyID}
	ks.Keys = append(ks.Keys, h.ks.Keys...)
	return &Manager{ks: ks}
}

// Add generates a fresh key from template and appends it enabled but
// non-primary. It returns the new key id.
func (m *Manager) Add(template keyring.KeyTemplate) (uint32, error) {
	keyData, err := registry.NewKeyData(template)
	if err != nil {
		return 0, err
	}
	switch template.OutputPrefixKind {
	case keyring.TinkPrefix, keyring.LegacyPrefix, keyring.CrunchyPrefix, keyring.RawPrefix:
	default:
		return 0, keyring.NewError(keyring.KindUnsupportedOutputPrefixKind,
			fmt.Sprintf("keyset: template has unsupported output prefix kind %d", template.OutputPrefixKind))
	}
	keyID := m.newKeyID()
	m.ks.Keys = append(m.ks.Keys, Key{
		KeyData:          keyData,
		Status:           keyring.Enabled,
		KeyID:            keyID,
		OutputPrefixKind: template.OutputPrefixKind,
	})
	return keyID, nil
}

// Rotate generates a fresh key from template and makes it the primary.
// Existing keys keep their status, so payloads produced under the old
// primary remain processable.
func (m *Manager) Rotate(template keyring.KeyTemplate) error {
	keyID, err := m.Add(template)
	if err != nil {
		return err
	}
	m.ks.PrimaryKeyID = keyID
	return nil
}

// SetPrimary promotes an existing enabled key to primary.
func (m *Manager) SetPrimary(keyID uint32) error {
	for _, k := range m.ks.Keys {
		if k.KeyID != keyID {
			continue
		}
		if k.Status != keyring.Enabled {
			return keyring.NewError(keyring.KindInvalidKeyset,
				fmt.Sprintf("keyset: key %d is not enabled", keyID))
		}
		m.ks.PrimaryKeyID = keyID
		return nil
	}
	return keyring.NewError(keyring.KindInvalidKeyset,
		fmt.Sprintf("keyset: no key with id %d", keyID))
}

// Disable marks a non-primary key disabled.
func (m *Manager) Disable(keyID uint32) error {
	if keyID == m.ks.PrimaryKeyID {
		return keyring.NewError(keyring.KindInvalidKeyset,
			fmt.Sprintf("keyset: cannot disable primary key %d", keyID))
	}
	for i, k := range m.ks.Keys {
		if k.KeyID == keyID {
			m.ks.Keys[i].Status = keyring.Disabled
			return nil
		}
	}
	return keyring.NewError(keyring.KindInvalidKeyset,
		fmt.Sprintf("keyset: no key with id %d", keyID))
}

// Destroy marks a non-primary key destroyed and drops its key material.
func (m *Manager) Destroy(keyID uint32) error {
	if keyID == m.ks.PrimaryKeyID {
		return keyring.NewError(keyring.KindInvalidKeyset,
			fmt.Sprintf("keyset: cannot destroy primary key %d", keyID))
	}
	for i, k := range m.ks.Keys {
		if k.KeyID == keyID {
			m.ks.Keys[i].Status = keyring.Destroyed
			m.ks.Keys[i].KeyData.Value = nil
			return nil
		}
	}
	return keyring.NewError(keyring.KindInvalidKeyset,
		fmt.Sprintf("keyset: no key with id %d", keyID))
}

// Handle returns a handle over a copy of the managed keyset.
func (m *Manager) Handle() (*Handle, error) {
	ks := &Keyset{PrimaryKeyID: m.ks.PrimaryKeyID}
	ks.Keys = append(ks.Keys, m.ks.Keys...)
	return newHandle(ks)
}

func (m *Manager) newKeyID() uint32 {
	for {
		id := random.GetRandomUint32()
		if id == 0 {
			continue
		}
		taken := false
		for _, k := range m.ks.Keys {
			if k.KeyID == id {
				taken = true
				break
			}
		}
		if !taken {
			return id
		}
	}
}
