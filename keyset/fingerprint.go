package keyset

import (
	"github.com/ipfs/go-cid"
	"github.com/multiformats/go-multihash"

	"xdao.co/keyring"
)

// Fingerprint returns a stable content identifier for the handle's keyset:
// a CIDv1 (raw multicodec, sha2-256 multihash) over the serialized
// non-sensitive keyset info. Two keysets with the same key metadata share a
// fingerprint; key material never enters the digest, so fingerprints are
// safe for audit logs and cache keys.
func (h *Handle) Fingerprint() (string, error) {
	serialized := marshalInfo(h.KeysetInfo())
	sum, err := multihash.Sum(serialized, multihash.SHA2_256, -1)
	if err != nil {
		// multihash.Sum only errors for invalid inputs; with SHA2_256 and
		// default length this should be unreachable.
		return "", keyring.WrapError(keyring.KindInternal, "keyset: fingerprint failed", err)
	}
	return cid.NewCidV1(cid.Raw, sum).String(), nil
}
