// Package keyring is a keyset-based key management core: it turns opaque,
// serialized key material into ready-to-use cryptographic operations, and
// assembles multi-key keysets into runtime objects that support rotation.
//
// The package itself carries no algorithm implementations; those live in the
// per-family packages (mac, aead, prf, signature), which delegate the math
// to external crypto libraries. This package defines the contracts that let
// heterogeneous key types flow through one pipeline.
package keyring

// AEAD is an authenticated cipher with associated data.
type AEAD interface {
	// Encrypt encrypts plaintext binding associatedData into the tag.
	Encrypt(plaintext, associatedData []byte) ([]byte, error)
	// Decrypt reverses Encrypt; it fails if the ciphertext or the
	// associated data was tampered with.
	Decrypt(ciphertext, associatedData []byte) ([]byte, error)
}

// DeterministicAEAD is an AEAD whose ciphertext is a deterministic function
// of the inputs (no per-call randomness).
type DeterministicAEAD interface {
	EncryptDeterministically(plaintext, associatedData []byte) ([]byte, error)
	DecryptDeterministically(ciphertext, associatedData []byte) ([]byte, error)
}

// MAC computes and verifies message authentication codes.
type MAC interface {
	ComputeMAC(data []byte) ([]byte, error)
	VerifyMAC(mac, data []byte) error
}

// PRF is a pseudorandom function keyed by key material.
type PRF interface {
	// ComputePRF returns outputLength pseudorandom bytes derived from input.
	ComputePRF(input []byte, outputLength uint32) ([]byte, error)
}

// Signer produces digital signatures.
type Signer interface {
	Sign(data []byte) ([]byte, error)
}

// Verifier checks digital signatures.
type Verifier interface {
	Verify(signature, data []byte) error
}

// PrimitiveKind tags the variants of the Primitive union.
type PrimitiveKind int

const (
	PrimitiveUnknown PrimitiveKind = iota
	PrimitiveAEAD
	PrimitiveDeterministicAEAD
	PrimitiveMAC
	PrimitivePRF
	PrimitiveSigner
	PrimitiveVerifier
)

func (k PrimitiveKind) String() string {
	switch k {
	case PrimitiveAEAD:
		return "AEAD"
	case PrimitiveDeterministicAEAD:
		return "DeterministicAEAD"
	case PrimitiveMAC:
		return "MAC"
	case PrimitivePRF:
		return "PRF"
	case PrimitiveSigner:
		return "Signer"
	case PrimitiveVerifier:
		return "Verifier"
	default:
		return "Unknown"
	}
}

// Primitive is a closed tagged union over the supported capability
// categories. Adding a category means extending this union; third parties
// cannot add categories externally, which is an accepted trade-off.
//
// A Primitive is immutable and safe to share across goroutines once
// constructed.
type Primitive struct {
	kind     PrimitiveKind
	aead     AEAD
	daead    DeterministicAEAD
	mac      MAC
	prf      PRF
	signer   Signer
	verifier Verifier
}

// NewAEADPrimitive wraps an AEAD capability handle.
func NewAEADPrimitive(a AEAD) Primitive { return Primitive{kind: PrimitiveAEAD, aead: a} }

// NewDeterministicAEADPrimitive wraps a DeterministicAEAD capability handle.
func NewDeterministicAEADPrimitive(d DeterministicAEAD) Primitive {
	return Primitive{kind: PrimitiveDeterministicAEAD, daead: d}
}

// NewMACPrimitive wraps a MAC capability handle.
func NewMACPrimitive(m MAC) Primitive { return Primitive{kind: PrimitiveMAC, mac: m} }

// NewPRFPrimitive wraps a PRF capability handle.
func NewPRFPrimitive(p PRF) Primitive { return Primitive{kind: PrimitivePRF, prf: p} }

// NewSignerPrimitive wraps a Signer capability handle.
func NewSignerPrimitive(s Signer) Primitive { return Primitive{kind: PrimitiveSigner, signer: s} }

// NewVerifierPrimitive wraps a Verifier capability handle.
func NewVerifierPrimitive(v Verifier) Primitive {
	return Primitive{kind: PrimitiveVerifier, verifier: v}
}

// Kind reports which variant the union holds.
func (p Primitive) Kind() PrimitiveKind { return p.kind }

// IsZero reports whether the union holds no variant.
func (p Primitive) IsZero() bool { return p.kind == PrimitiveUnknown }

// AEAD returns the AEAD handle, or an error if the union holds another variant.
func (p Primitive) AEAD() (AEAD, error) {
	if p.kind != PrimitiveAEAD {
		return nil, NewError(KindInternal, "primitive is "+p.kind.String()+", not AEAD")
	}
	return p.aead, nil
}

// DeterministicAEAD returns the DeterministicAEAD handle.
func (p Primitive) DeterministicAEAD() (DeterministicAEAD, error) {
	if p.kind != PrimitiveDeterministicAEAD {
		return nil, NewError(KindInternal, "primitive is "+p.kind.String()+", not DeterministicAEAD")
	}
	return p.daead, nil
}

// MAC returns the MAC handle.
func (p Primitive) MAC() (MAC, error) {
	if p.kind != PrimitiveMAC {
		return nil, NewError(KindInternal, "primitive is "+p.kind.String()+", not MAC")
	}
	return p.mac, nil
}

// PRF returns the PRF handle.
func (p Primitive) PRF() (PRF, error) {
	if p.kind != PrimitivePRF {
		return nil, NewError(KindInternal, "primitive is "+p.kind.String()+", not PRF")
	}
	return p.prf, nil
}

// Signer returns the Signer handle.
func (p Primitive) Signer() (Signer, error) {
	if p.kind != PrimitiveSigner {
		return nil, NewError(KindInternal, "primitive is "+p.kind.String()+", not Signer")
	}
	return p.signer, nil
}

// Verifier returns the Verifier handle.
func (p Primitive) Verifier() (Verifier, error) {
	if p.kind != PrimitiveVerifier {
		return nil, NewError(KindInternal, "primitive is "+p.kind.String()+", not Verifier")
	}
	return p.verifier, nil
}
