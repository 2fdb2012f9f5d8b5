// Package primitiveset assembles the primitives of a keyset into a queryable
// runtime structure: one primary entry for single-key operations, and
// prefix-indexed lookup over all entries for multi-key decrypt/verify.
package primitiveset

import (
	"fmt"

	"xdao.co/keyring"
	"xdao.co/keyring/internal/cryptofmt"
)

// Entry is one keyset entry resolved to its primitive, key id, status and
// wire prefix. Entries are owned by the set that created them.
type Entry struct {
	Primitive        keyring.Primitive
	KeyID            uint32
	Status           keyring.KeyStatus
	OutputPrefixKind keyring.OutputPrefixKind
	Prefix           string
}

// Builder accumulates entries and produces an immutable PrimitiveSet.
type Builder struct {
	primaryKeyID uint32
	primary      *Entry
	entries      map[string][]*Entry
}

// NewBuilder returns a Builder for a keyset whose declared primary key id is
// primaryKeyID.
func NewBuilder(primaryKeyID uint32) *Builder {
	return &Builder{
		primaryKeyID: primaryKeyID,
		entries:      map[string][]*Entry{},
	}
}

// Add computes the entry's wire prefix and inserts it. The entry whose key
// id equals the declared primary id is recorded as primary if it is enabled.
//
// Colliding prefixes are tolerated: entries accumulate in insertion order
// under their prefix and are tried in that order at match time.
func (b *Builder) Add(p keyring.Primitive, keyID uint32, status keyring.KeyStatus, kind keyring.OutputPrefixKind) error {
	if p.IsZero() {
		return keyring.NewError(keyring.KindInternal, "primitiveset: zero primitive")
	}
	prefix, err := cryptofmt.OutputPrefix(kind, keyID)
	if err != nil {
		return err
	}
	entry := &Entry{
		Primitive:        p,
		KeyID:            keyID,
		Status:           status,
		OutputPrefixKind: kind,
		Prefix:           prefix,
	}
	b.entries[prefix] = append(b.entries[prefix], entry)
	if keyID == b.primaryKeyID && status == keyring.Enabled {
		b.primary = entry
	}
	return nil
}

// Build finalizes the set. It fails with KindNoPrimaryKey if no added entry
// matched the declared primary id with status ENABLED.
func (b *Builder) Build() (*PrimitiveSet, error) {
	if b.primary == nil {
		return nil, keyring.NewError(keyring.KindNoPrimaryKey,
			fmt.Sprintf("primitiveset: no enabled entry with key id %d", b.primaryKeyID))
	}
	return &PrimitiveSet{primary: b.primary, entries: b.entries}, nil
}

// PrimitiveSet is the finished, immutable set. It is safe to share across
// concurrent readers without locking.
type PrimitiveSet struct {
	primary *Entry
	entries map[string][]*Entry
}

// Primary returns the designated entry for single-key operations
// (encrypt, sign, primary PRF output).
func (ps *PrimitiveSet) Primary() *Entry { return ps.primary }

// EntriesForPrefix returns the entries sharing the given wire prefix, in
// insertion order. Prefix uniqueness is never assumed.
func (ps *PrimitiveSet) EntriesForPrefix(prefix string) []*Entry {
	return ps.entries[prefix]
}

// RawEntries returns the entries carrying no prefix.
func (ps *PrimitiveSet) RawEntries() []*Entry {
	return ps.entries[""]
}

// EntriesForPayload returns the candidate entries for a payload, in match
// order: entries whose 5-byte prefix matches the payload's leading bytes
// first, then all raw entries. Callers try each candidate and treat
// exhaustion as KindNoMatchingKey.
func (ps *PrimitiveSet) EntriesForPayload(payload []byte) []*Entry {
	var out []*Entry
	if len(payload) >= cryptofmt.NonRawPrefixSize {
		prefix, _, err := cryptofmt.SplitPrefix(payload, cryptofmt.NonRawPrefixSize)
		if err == nil {
			out = append(out, ps.entries[prefix]...)
		}
	}
	return append(out, ps.entries[""]...)
}

// All returns every entry in the set, grouped by prefix. The returned slices
// must not be mutated.
func (ps *PrimitiveSet) All() map[string][]*Entry { return ps.entries }
