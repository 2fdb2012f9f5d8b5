package keyset

import (
	"fmt"

	"xdao.co/keyring"
)

// Validate enforces the structural invariants of a keyset: non-empty, unique
// non-zero key ids, a recognized output prefix kind on every key, key data
// on every key, and exactly one enabled key carrying the primary id.
//
// A malformed keyset is never silently repaired.
func Validate(ks *Keyset) error {
	if ks == nil || len(ks.Keys) == 0 {
		return keyring.NewError(keyring.KindInvalidKeyset, "keyset: empty keyset")
	}

	seen := make(map[uint32]bool, len(ks.Keys))
	primaryFound := false
	for i, k := range ks.Keys {
		if k.KeyID == 0 {
			return keyring.NewError(keyring.KindInvalidKeyset,
				fmt.Sprintf("keyset: key at index %d has zero key id", i))
		}
		if seen[k.KeyID] {
			return keyring.NewError(keyring.KindInvalidKeyset,
				fmt.Sprintf("keyset: duplicate key id %d", k.KeyID))
		}
		seen[k.KeyID] = true

		switch k.OutputPrefixKind {
		case keyring.TinkPrefix, keyring.LegacyPrefix, keyring.CrunchyPrefix, keyring.RawPrefix:
		default:
			return keyring.NewError(keyring.KindInvalidKeyset,
				fmt.Sprintf("keyset: key %d has unrecognized output prefix kind %d", k.KeyID, k.OutputPrefixKind))
		}

		switch k.Status {
		case keyring.Enabled, keyring.Disabled, keyring.Destroyed:
		default:
			return keyring.NewError(keyring.KindInvalidKeyset,
				fmt.Sprintf("keyset: key %d has unrecognized status %d", k.KeyID, k.Status))
		}

		if k.KeyData.TypeURL == "" {
			return keyring.NewError(keyring.KindInvalidKeyset,
				fmt.Sprintf("keyset: key %d has no type URL", k.KeyID))
		}

		if k.KeyID == ks.PrimaryKeyID {
			if k.Status != keyring.Enabled {
				return keyring.NewError(keyring.KindInvalidKeyset,
					fmt.Sprintf("keyset: primary key %d is not enabled", k.KeyID))
			}
			primaryFound = true
		}
	}
	if !primaryFound {
		return keyring.NewError(keyring.KindInvalidKeyset,
			fmt.Sprintf("keyset: no key with primary id %d", ks.PrimaryKeyID))
	}
	return nil
}
