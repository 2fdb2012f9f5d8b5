// Package insecureapi bridges the keyset package and the explicit cleartext
// gate in insecurecleartextkeyset without exposing cleartext construction on
// the keyset package's public surface.
//
// The hooks are typed as any to break the import cycle; the keyset package
// sets them at init and insecurecleartextkeyset asserts the function types.
package insecureapi

var (
	// NewHandleFromKeyset is func(*keyset.Keyset) (*keyset.Handle, error).
	NewHandleFromKeyset any
	// KeysetMaterial is func(*keyset.Handle) *keyset.Keyset.
	KeysetMaterial any
)
