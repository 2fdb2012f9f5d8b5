package aead

import "xdao.co/keyring"

// AES128GCMKeyTemplate generates 16-byte AES-GCM keys with a TINK output
// prefix.
func AES128GCMKeyTemplate() keyring.KeyTemplate {
	return aesGCMTemplate(16, keyring.TinkPrefix)
}

// AES256GCMKeyTemplate generates 32-byte AES-GCM keys with a TINK output
// prefix.
func AES256GCMKeyTemplate() keyring.KeyTemplate {
	return aesGCMTemplate(32, keyring.TinkPrefix)
}

// AES256GCMNoPrefixKeyTemplate generates 32-byte AES-GCM keys with no output
// prefix, for interoperability with systems that consume bare ciphertexts.
func AES256GCMNoPrefixKeyTemplate() keyring.KeyTemplate {
	return aesGCMTemplate(32, keyring.RawPrefix)
}

// ChaCha20Poly1305KeyTemplate generates ChaCha20-Poly1305 keys with a TINK
// output prefix.
func ChaCha20Poly1305KeyTemplate() keyring.KeyTemplate {
	format := &ChaCha20Poly1305KeyFormat{Version: ChaCha20Poly1305KeyVersion}
	return keyring.KeyTemplate{
		TypeURL:          ChaCha20Poly1305TypeURL,
		Value:            MarshalChaCha20Poly1305KeyFormat(format),
		OutputPrefixKind: keyring.TinkPrefix,
	}
}

func aesGCMTemplate(keySize uint32, prefix keyring.OutputPrefixKind) keyring.KeyTemplate {
	format := &AESGCMKeyFormat{KeySize: keySize, Version: AESGCMKeyVersion}
	return keyring.KeyTemplate{
		TypeURL:          AESGCMTypeURL,
		Value:            MarshalAESGCMKeyFormat(format),
		OutputPrefixKind: prefix,
	}
}
