package mac

import (
	"xdao.co/keyring"
	"xdao.co/keyring/keyset"
	"xdao.co/keyring/primitiveset"
	"xdao.co/keyring/registry"
)

// Register binds this package's key managers into the global registry. The
// embedding application must call it before processing MAC keysets; there is
// no registration on import.
func Register() error {
	return registry.Register(NewHMACKeyManager())
}

// New returns a MAC backed by the keyset in h. ComputeMAC uses the primary
// key and prepends its output prefix; VerifyMAC tries every candidate key
// whose prefix matches, then the raw-prefix keys.
func New(h *keyset.Handle) (keyring.MAC, error) {
	ps, err := h.Primitives()
	if err != nil {
		return nil, err
	}
	if _, err := ps.Primary().Primitive.MAC(); err != nil {
		return nil, err
	}
	return &wrappedMAC{ps: ps}, nil
}

type wrappedMAC struct {
	ps *primitiveset.PrimitiveSet
}

func (w *wrappedMAC) ComputeMAC(data []byte) ([]byte, error) {
	primary := w.ps.Primary()
	m, err := primary.Primitive.MAC()
	if err != nil {
		return nil, err
	}
	tag, err := m.ComputeMAC(data)
	if err != nil {
		return nil, err
	}
	return append([]byte(primary.Prefix), tag...), nil
}

func (w *wrappedMAC) VerifyMAC(mac, data []byte) error {
	for _, entry := range w.ps.EntriesForPayload(mac) {
		if entry.Status != keyring.Enabled {
			continue
		}
		m, err := entry.Primitive.MAC()
		if err != nil {
			continue
		}
		if m.VerifyMAC(mac[len(entry.Prefix):], data) == nil {
			return nil
		}
	}
	return keyring.NewError(keyring.KindNoMatchingKey, "mac: no key accepted the MAC")
}
