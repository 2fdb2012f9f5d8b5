package mac

import "xdao.co/keyring"

// HMACSHA256Tag128KeyTemplate generates 32-byte HMAC-SHA256 keys with
// 16-byte tags and a TINK output prefix.
func HMACSHA256Tag128KeyTemplate() keyring.KeyTemplate {
	return hmacTemplate(keyring.SHA256, 32, 16, keyring.TinkPrefix)
}

// HMACSHA256Tag256KeyTemplate generates 32-byte HMAC-SHA256 keys with
// full-length tags and a TINK output prefix.
func HMACSHA256Tag256KeyTemplate() keyring.KeyTemplate {
	return hmacTemplate(keyring.SHA256, 32, 32, keyring.TinkPrefix)
}

// HMACSHA512Tag256KeyTemplate generates 64-byte HMAC-SHA512 keys with
// 32-byte tags and a TINK output prefix.
func HMACSHA512Tag256KeyTemplate() keyring.KeyTemplate {
	return hmacTemplate(keyring.SHA512, 64, 32, keyring.TinkPrefix)
}

// HMACSHA3256Tag256KeyTemplate generates 32-byte HMAC-SHA3-256 keys with
// full-length tags and a TINK output prefix.
func HMACSHA3256Tag256KeyTemplate() keyring.KeyTemplate {
	return hmacTemplate(keyring.SHA3_256, 32, 32, keyring.TinkPrefix)
}

func hmacTemplate(hash keyring.HashKind, keySize, tagSize uint32, prefix keyring.OutputPrefixKind) keyring.KeyTemplate {
	format := &HMACKeyFormat{
		Params:  HMACParams{Hash: hash, TagSize: tagSize},
		KeySize: keySize,
		Version: HMACKeyVersion,
	}
	return keyring.KeyTemplate{
		TypeURL:          HMACTypeURL,
		Value:            MarshalHMACKeyFormat(format),
		OutputPrefixKind: prefix,
	}
}
