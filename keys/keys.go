package keys

import (
	"crypto/ed25519"
	"crypto/rand"
	"fmt"

	"ldcraft.io/ldcraft/lderr"
)

// KeyPair holds raw Ed25519 key material: the 32-byte private seed and the
// matching 32-byte public key. It is opaque to the rest of the library
// except for generation and encoding.
type KeyPair struct {
	Private []byte
	Public  []byte
}

// Generate draws a fresh 32-byte seed from the process CSPRNG and derives
// the matching public key. Two calls never yield the same pair.
func Generate() (KeyPair, error) {
	seed := make([]byte, ed25519.SeedSize)
	if _, err := rand.Read(seed); err != nil {
		return KeyPair{}, lderr.Wrap(lderr.KindInternal, "LDC-KEY-100",
			"entropy source unavailable", err)
	}
	return GenerateFromSeed(seed)
}

// GenerateFromSeed derives a key pair deterministically from a 32-byte seed.
// The seed is copied; the caller's slice is not retained.
func GenerateFromSeed(seed []byte) (KeyPair, error) {
	if len(seed) != ed25519.SeedSize {
		return KeyPair{}, lderr.New(lderr.KindKeyFormat, "LDC-KEY-101",
			fmt.Sprintf("seed must be %d bytes, got %d", ed25519.SeedSize, len(seed)))
	}
	priv := ed25519.NewKeyFromSeed(seed)
	pub := priv.Public().(ed25519.PublicKey)
	kp := KeyPair{
		Private: make([]byte, ed25519.SeedSize),
		Public:  make([]byte, ed25519.PublicKeySize),
	}
	copy(kp.Private, seed)
	copy(kp.Public, pub)
	return kp, nil
}

// Signer expands the seed into the ed25519 signing key.
func (kp KeyPair) Signer() (ed25519.PrivateKey, error) {
	if len(kp.Private) != ed25519.SeedSize {
		return nil, lderr.New(lderr.KindKeyFormat, "LDC-KEY-101",
			fmt.Sprintf("seed must be %d bytes, got %d", ed25519.SeedSize, len(kp.Private)))
	}
	return ed25519.NewKeyFromSeed(kp.Private), nil
}
