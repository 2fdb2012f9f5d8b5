package prf

import "xdao.co/keyring"

// HKDFSHA256PRFKeyTemplate generates 32-byte HKDF-SHA256 PRF keys with no
// salt. PRF templates always use the RAW output prefix.
func HKDFSHA256PRFKeyTemplate() keyring.KeyTemplate {
	format := &HKDFPRFKeyFormat{
		Params:  HKDFPRFParams{Hash: keyring.SHA256},
		KeySize: 32,
		Version: HKDFPRFKeyVersion,
	}
	return keyring.KeyTemplate{
		TypeURL:          HKDFPRFTypeURL,
		Value:            MarshalHKDFPRFKeyFormat(format),
		OutputPrefixKind: keyring.RawPrefix,
	}
}

// HMACSHA256PRFKeyTemplate generates 32-byte HMAC-SHA256 PRF keys.
func HMACSHA256PRFKeyTemplate() keyring.KeyTemplate {
	return hmacPRFTemplate(keyring.SHA256, 32)
}

// HMACSHA512PRFKeyTemplate generates 64-byte HMAC-SHA512 PRF keys.
func HMACSHA512PRFKeyTemplate() keyring.KeyTemplate {
	return hmacPRFTemplate(keyring.SHA512, 64)
}

func hmacPRFTemplate(hash keyring.HashKind, keySize uint32) keyring.KeyTemplate {
	format := &HMACPRFKeyFormat{
		Params:  HMACPRFParams{Hash: hash},
		KeySize: keySize,
		Version: HMACPRFKeyVersion,
	}
	return keyring.KeyTemplate{
		TypeURL:          HMACPRFTypeURL,
		Value:            MarshalHMACPRFKeyFormat(format),
		OutputPrefixKind: keyring.RawPrefix,
	}
}
