package keys

import (
	"bytes"
	"crypto/ed25519"
	"strings"
	"testing"

	"ldcraft.io/ldcraft/lderr"
)

func mustPair(t *testing.T, seedByte byte) KeyPair {
	t.Helper()
	seed := bytes.Repeat([]byte{seedByte}, ed25519.SeedSize)
	kp, err := GenerateFromSeed(seed)
	if err != nil {
		t.Fatalf("GenerateFromSeed: %v", err)
	}
	return kp
}

func TestGenerate_FreshPairs(t *testing.T) {
	a, err := Generate()
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	b, err := Generate()
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if len(a.Private) != ed25519.SeedSize || len(a.Public) != ed25519.PublicKeySize {
		t.Fatalf("unexpected sizes: %d/%d", len(a.Private), len(a.Public))
	}
	if bytes.Equal(a.Private, b.Private) {
		t.Fatalf("two generated seeds are identical")
	}
	if bytes.Equal(a.Public, b.Public) {
		t.Fatalf("two generated public keys are identical")
	}
}

func TestGenerateFromSeed_Deterministic(t *testing.T) {
	a := mustPair(t, 0xA1)
	b := mustPair(t, 0xA1)
	if !bytes.Equal(a.Public, b.Public) {
		t.Fatalf("same seed produced different public keys")
	}
	want := ed25519.NewKeyFromSeed(a.Private).Public().(ed25519.PublicKey)
	if !bytes.Equal(a.Public, want) {
		t.Fatalf("public key does not match ed25519 derivation")
	}
}

func TestGenerateFromSeed_CopiesSeed(t *testing.T) {
	seed := bytes.Repeat([]byte{0x42}, ed25519.SeedSize)
	kp, err := GenerateFromSeed(seed)
	if err != nil {
		t.Fatalf("GenerateFromSeed: %v", err)
	}
	seed[0] = 0xFF
	if kp.Private[0] != 0x42 {
		t.Fatalf("key pair aliases the caller's seed slice")
	}
}

func TestGenerateFromSeed_RejectsBadLength(t *testing.T) {
	_, err := GenerateFromSeed([]byte{1, 2, 3})
	if err == nil {
		t.Fatalf("expected error")
	}
	if !lderr.IsKind(err, lderr.KindKeyFormat) {
		t.Fatalf("expected KindKeyFormat, got %v", err)
	}
	if lderr.RuleID(err) != "LDC-KEY-101" {
		t.Fatalf("rule = %s", lderr.RuleID(err))
	}
}

func TestSigner_ProducesWorkingKey(t *testing.T) {
	kp := mustPair(t, 0x07)
	signer, err := kp.Signer()
	if err != nil {
		t.Fatalf("Signer: %v", err)
	}
	msg := []byte("payload bytes")
	sig := ed25519.Sign(signer, msg)
	if !ed25519.Verify(ed25519.PublicKey(kp.Public), msg, sig) {
		t.Fatalf("signature does not verify against pair's public key")
	}
}

func TestMethodID_Shape(t *testing.T) {
	kp := mustPair(t, 0x31)
	id := MethodID(kp.Public)
	if !strings.HasPrefix(id, "key-") {
		t.Fatalf("MethodID = %q", id)
	}
	if len(id) != len("key-")+8 {
		t.Fatalf("MethodID length = %d, want %d", len(id), len("key-")+8)
	}
	if id != MethodID(kp.Public) {
		t.Fatalf("MethodID not deterministic")
	}
}
