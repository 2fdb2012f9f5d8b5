package signature

import "xdao.co/keyring"

// ED25519KeyTemplate generates Ed25519 keypairs with a TINK output prefix.
func ED25519KeyTemplate() keyring.KeyTemplate {
	format := &Ed25519KeyFormat{Version: Ed25519KeyVersion}
	return keyring.KeyTemplate{
		TypeURL:          Ed25519SignerTypeURL,
		Value:            MarshalEd25519KeyFormat(format),
		OutputPrefixKind: keyring.TinkPrefix,
	}
}

// ED25519RawKeyTemplate generates Ed25519 keypairs with no output prefix,
// for interoperability with systems that consume bare signatures.
func ED25519RawKeyTemplate() keyring.KeyTemplate {
	t := ED25519KeyTemplate()
	t.OutputPrefixKind = keyring.RawPrefix
	return t
}

// Dilithium3SHA256KeyTemplate generates Dilithium3 keypairs signing sha256
// digests, with a TINK output prefix.
func Dilithium3SHA256KeyTemplate() keyring.KeyTemplate {
	return dilithium3Template(keyring.SHA256)
}

// Dilithium3SHA3256KeyTemplate generates Dilithium3 keypairs signing
// sha3-256 digests, with a TINK output prefix.
func Dilithium3SHA3256KeyTemplate() keyring.KeyTemplate {
	return dilithium3Template(keyring.SHA3_256)
}

func dilithium3Template(hash keyring.HashKind) keyring.KeyTemplate {
	format := &Dilithium3KeyFormat{
		Version: Dilithium3KeyVersion,
		Params:  Dilithium3Params{Hash: hash},
	}
	return keyring.KeyTemplate{
		TypeURL:          Dilithium3SignerTypeURL,
		Value:            MarshalDilithium3KeyFormat(format),
		OutputPrefixKind: keyring.TinkPrefix,
	}
}
