package prf

import (
	"xdao.co/keyring"
	"xdao.co/keyring/keyset"
	"xdao.co/keyring/registry"
)

// Register binds this package's key managers into the global registry. The
// embedding application must call it before processing PRF keysets; there is
// no registration on import.
func Register() error {
	if err := registry.Register(NewHKDFPRFKeyManager()); err != nil {
		return err
	}
	return registry.Register(NewHMACPRFKeyManager())
}

// Set is a collection of PRFs sharing a keyset, indexed by key id. Callers
// that only need the current key use ComputePrimaryPRF; callers verifying
// values produced under older keys pick the producing key's PRF from PRFs.
type Set struct {
	// PrimaryID is the key id of the keyset's primary key.
	PrimaryID uint32
	// PRFs maps each enabled key id to its PRF.
	PRFs map[uint32]keyring.PRF
}

// NewSet returns the PRF set backed by the keyset in h. Every enabled key
// must use the RAW output prefix; PRF outputs carry no room for a prefix.
func NewSet(h *keyset.Handle) (*Set, error) {
	ps, err := h.Primitives()
	if err != nil {
		return nil, err
	}
	if _, err := ps.Primary().Primitive.PRF(); err != nil {
		return nil, err
	}
	prfs := make(map[uint32]keyring.PRF)
	for _, entries := range ps.All() {
		for _, entry := range entries {
			if entry.OutputPrefixKind != keyring.RawPrefix {
				return nil, keyring.NewError(keyring.KindUnsupportedOutputPrefixKind,
					"prf: all PRF keys must use the RAW output prefix")
			}
			p, err := entry.Primitive.PRF()
			if err != nil {
				return nil, err
			}
			prfs[entry.KeyID] = p
		}
	}
	return &Set{PrimaryID: ps.Primary().KeyID, PRFs: prfs}, nil
}

// ComputePrimaryPRF evaluates the primary key's PRF.
func (s *Set) ComputePrimaryPRF(input []byte, outputLength uint32) ([]byte, error) {
	p, ok := s.PRFs[s.PrimaryID]
	if !ok {
		return nil, keyring.NewError(keyring.KindNoPrimaryKey, "prf: primary key missing from set")
	}
	return p.ComputePRF(input, outputLength)
}
