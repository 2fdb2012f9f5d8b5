package signature_test

import (
	"bytes"
	"crypto/ed25519"
	"crypto/rand"
	"testing"

	"xdao.co/keyring"
	"xdao.co/keyring/internal/cryptofmt"
	"xdao.co/keyring/keyset"
	"xdao.co/keyring/signature"
)

func TestED25519SignVerify(t *testing.T) {
	pub, priv, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		t.Fatalf("GenerateKey: %v", err)
	}
	s, err := signature.NewED25519Signer(priv)
	if err != nil {
		t.Fatalf("NewED25519Signer: %v", err)
	}
	v, err := signature.NewED25519Verifier(pub)
	if err != nil {
		t.Fatalf("NewED25519Verifier: %v", err)
	}
	data := []byte("message to sign")
	sig, err := s.Sign(data)
	if err != nil {
		t.Fatalf("Sign: %v", err)
	}
	if err := v.Verify(sig, data); err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if err := v.Verify(sig, []byte("other message")); !keyring.IsKind(err, keyring.KindNoMatchingKey) {
		t.Fatalf("wrong data: got %v, want KindNoMatchingKey", err)
	}
	sig[0] ^= 1
	if err := v.Verify(sig, data); !keyring.IsKind(err, keyring.KindNoMatchingKey) {
		t.Fatalf("tampered signature: got %v, want KindNoMatchingKey", err)
	}
}

func TestED25519SignerFromSeed(t *testing.T) {
	_, priv, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		t.Fatalf("GenerateKey: %v", err)
	}
	s1, err := signature.NewED25519Signer(priv)
	if err != nil {
		t.Fatalf("NewED25519Signer: %v", err)
	}
	s2, err := signature.NewED25519SignerFromSeed(priv.Seed())
	if err != nil {
		t.Fatalf("NewED25519SignerFromSeed: %v", err)
	}
	data := []byte("deterministic scheme")
	sig1, err := s1.Sign(data)
	if err != nil {
		t.Fatalf("Sign: %v", err)
	}
	sig2, err := s2.Sign(data)
	if err != nil {
		t.Fatalf("Sign: %v", err)
	}
	if !bytes.Equal(sig1, sig2) {
		t.Fatal("seed-derived signer disagrees with full-key signer")
	}
}

func TestED25519RejectsBadKeyLengths(t *testing.T) {
	if _, err := signature.NewED25519Signer(make([]byte, 63)); !keyring.IsKind(err, keyring.KindKeyMaterialInvalid) {
		t.Fatalf("got %v, want KindKeyMaterialInvalid", err)
	}
	if _, err := signature.NewED25519Verifier(make([]byte, 31)); !keyring.IsKind(err, keyring.KindKeyMaterialInvalid) {
		t.Fatalf("got %v, want KindKeyMaterialInvalid", err)
	}
}

func TestDilithium3SignVerify(t *testing.T) {
	km := signature.NewDilithium3SignerKeyManager()
	serialized, err := km.NewKey(signature.Dilithium3SHA256KeyTemplate().Value)
	if err != nil {
		t.Fatalf("NewKey: %v", err)
	}
	key, err := signature.UnmarshalDilithium3PrivateKey(serialized)
	if err != nil {
		t.Fatalf("UnmarshalDilithium3PrivateKey: %v", err)
	}
	s, err := signature.NewDilithium3Signer(key.KeyValue, keyring.SHA256)
	if err != nil {
		t.Fatalf("NewDilithium3Signer: %v", err)
	}
	v, err := signature.NewDilithium3Verifier(key.PublicKey.KeyValue, keyring.SHA256)
	if err != nil {
		t.Fatalf("NewDilithium3Verifier: %v", err)
	}
	data := []byte("post-quantum signed message")
	sig, err := s.Sign(data)
	if err != nil {
		t.Fatalf("Sign: %v", err)
	}
	if err := v.Verify(sig, data); err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if err := v.Verify(sig, []byte("other")); !keyring.IsKind(err, keyring.KindNoMatchingKey) {
		t.Fatalf("wrong data: got %v, want KindNoMatchingKey", err)
	}
}

func TestDilithium3RejectsUnsupportedHash(t *testing.T) {
	if _, err := signature.NewDilithium3Signer(nil, keyring.SHA1); !keyring.IsKind(err, keyring.KindKeyMaterialInvalid) {
		t.Fatalf("got %v, want KindKeyMaterialInvalid", err)
	}
}

func TestKeysetSignVerify(t *testing.T) {
	if err := signature.Register(); err != nil {
		t.Fatalf("Register: %v", err)
	}
	for _, template := range []keyring.KeyTemplate{
		signature.ED25519KeyTemplate(),
		signature.Dilithium3SHA256KeyTemplate(),
	} {
		priv, err := keyset.NewHandle(template)
		if err != nil {
			t.Fatalf("NewHandle: %v", err)
		}
		s, err := signature.NewSigner(priv)
		if err != nil {
			t.Fatalf("NewSigner: %v", err)
		}
		pub, err := priv.Public()
		if err != nil {
			t.Fatalf("Public: %v", err)
		}
		v, err := signature.NewVerifier(pub)
		if err != nil {
			t.Fatalf("NewVerifier: %v", err)
		}

		data := []byte("keyset signed payload")
		sig, err := s.Sign(data)
		if err != nil {
			t.Fatalf("Sign: %v", err)
		}
		if sig[0] != cryptofmt.TinkStartByte {
			t.Fatalf("signature start byte = %#x", sig[0])
		}
		if err := v.Verify(sig, data); err != nil {
			t.Fatalf("Verify: %v", err)
		}
		if err := v.Verify(sig, []byte("other payload")); !keyring.IsKind(err, keyring.KindNoMatchingKey) {
			t.Fatalf("wrong data: got %v, want KindNoMatchingKey", err)
		}
	}
}

func TestPublicKeysetMirrorsPrivate(t *testing.T) {
	if err := signature.Register(); err != nil {
		t.Fatalf("Register: %v", err)
	}
	priv, err := keyset.NewHandle(signature.ED25519KeyTemplate())
	if err != nil {
		t.Fatalf("NewHandle: %v", err)
	}
	pub, err := priv.Public()
	if err != nil {
		t.Fatalf("Public: %v", err)
	}
	privInfo := priv.KeysetInfo()
	pubInfo := pub.KeysetInfo()
	if pubInfo.PrimaryKeyID != privInfo.PrimaryKeyID {
		t.Fatal("public keyset has different primary id")
	}
	if len(pubInfo.KeyInfo) != len(privInfo.KeyInfo) {
		t.Fatal("public keyset has different key count")
	}
	for i := range pubInfo.KeyInfo {
		if pubInfo.KeyInfo[i].KeyID != privInfo.KeyInfo[i].KeyID {
			t.Fatal("public keyset reorders key ids")
		}
		if pubInfo.KeyInfo[i].TypeURL != signature.Ed25519VerifierTypeURL {
			t.Fatalf("public key type URL = %q", pubInfo.KeyInfo[i].TypeURL)
		}
	}
}

func TestVerifySurvivesRotation(t *testing.T) {
	if err := signature.Register(); err != nil {
		t.Fatalf("Register: %v", err)
	}
	m := keyset.NewManager()
	if err := m.Rotate(signature.ED25519KeyTemplate()); err != nil {
		t.Fatalf("Rotate: %v", err)
	}
	h1, err := m.Handle()
	if err != nil {
		t.Fatalf("Handle: %v", err)
	}
	s1, err := signature.NewSigner(h1)
	if err != nil {
		t.Fatalf("NewSigner: %v", err)
	}
	data := []byte("signed before rotation")
	oldSig, err := s1.Sign(data)
	if err != nil {
		t.Fatalf("Sign: %v", err)
	}

	if err := m.Rotate(signature.ED25519KeyTemplate()); err != nil {
		t.Fatalf("Rotate: %v", err)
	}
	h2, err := m.Handle()
	if err != nil {
		t.Fatalf("Handle: %v", err)
	}
	pub2, err := h2.Public()
	if err != nil {
		t.Fatalf("Public: %v", err)
	}
	v2, err := signature.NewVerifier(pub2)
	if err != nil {
		t.Fatalf("NewVerifier: %v", err)
	}
	if err := v2.Verify(oldSig, data); err != nil {
		t.Fatalf("old signature after rotation: %v", err)
	}
}

func TestRawKeySignature(t *testing.T) {
	if err := signature.Register(); err != nil {
		t.Fatalf("Register: %v", err)
	}
	priv, err := keyset.NewHandle(signature.ED25519RawKeyTemplate())
	if err != nil {
		t.Fatalf("NewHandle: %v", err)
	}
	s, err := signature.NewSigner(priv)
	if err != nil {
		t.Fatalf("NewSigner: %v", err)
	}
	data := []byte("raw signed payload")
	sig, err := s.Sign(data)
	if err != nil {
		t.Fatalf("Sign: %v", err)
	}
	if len(sig) != ed25519.SignatureSize {
		t.Fatalf("raw signature length = %d", len(sig))
	}
	pub, err := priv.Public()
	if err != nil {
		t.Fatalf("Public: %v", err)
	}
	v, err := signature.NewVerifier(pub)
	if err != nil {
		t.Fatalf("NewVerifier: %v", err)
	}
	if err := v.Verify(sig, data); err != nil {
		t.Fatalf("Verify: %v", err)
	}
}

func TestSignerRejectsPublicKeyset(t *testing.T) {
	if err := signature.Register(); err != nil {
		t.Fatalf("Register: %v", err)
	}
	priv, err := keyset.NewHandle(signature.ED25519KeyTemplate())
	if err != nil {
		t.Fatalf("NewHandle: %v", err)
	}
	pub, err := priv.Public()
	if err != nil {
		t.Fatalf("Public: %v", err)
	}
	if _, err := signature.NewSigner(pub); err == nil {
		t.Fatal("NewSigner accepted a public keyset")
	}
	if _, err := signature.NewVerifier(priv); err == nil {
		t.Fatal("NewVerifier accepted a private keyset")
	}
}
