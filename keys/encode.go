package keys

import (
	"crypto/ed25519"
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/multiformats/go-multibase"

	"ldcraft.io/ldcraft/lderr"
)

// publicKeyPrefix is the canonical key-string form: "ed25519:" + base64(pub).
const publicKeyPrefix = "ed25519:"

// ed25519Multicodec is the multicodec varint prefix for an Ed25519 public
// key (0xed), as used in publicKeyMultibase strings.
var ed25519Multicodec = []byte{0xed, 0x01}

// EncodePublicKey renders a public key as "ed25519:" + base64(pub).
func EncodePublicKey(pub []byte) string {
	return publicKeyPrefix + base64.StdEncoding.EncodeToString(pub)
}

// PublicKeyMultibase renders a public key in publicKeyMultibase form:
// base58btc ("z" prefix) over the ed25519 multicodec tag plus the raw key.
func PublicKeyMultibase(pub []byte) (string, error) {
	if len(pub) != ed25519.PublicKeySize {
		return "", lderr.New(lderr.KindKeyFormat, "LDC-KEY-105",
			fmt.Sprintf("public key must be %d bytes, got %d", ed25519.PublicKeySize, len(pub)))
	}
	payload := make([]byte, 0, len(ed25519Multicodec)+len(pub))
	payload = append(payload, ed25519Multicodec...)
	payload = append(payload, pub...)
	s, err := multibase.Encode(multibase.Base58BTC, payload)
	if err != nil {
		return "", lderr.Wrap(lderr.KindInternal, "LDC-KEY-109", "multibase encode failed", err)
	}
	return s, nil
}

// ParsePublicKey accepts a public key in any of the interchange forms:
// "ed25519:" + base64, multibase base58btc ("z…") with the ed25519
// multicodec tag, or bare base64 (padded or unpadded).
func ParsePublicKey(s string) (ed25519.PublicKey, error) {
	if s == "" {
		return nil, lderr.New(lderr.KindKeyFormat, "LDC-KEY-107", "empty public key string")
	}
	var raw []byte
	switch {
	case strings.HasPrefix(s, publicKeyPrefix):
		b, err := decodeBase64(strings.TrimPrefix(s, publicKeyPrefix))
		if err != nil {
			return nil, lderr.Wrap(lderr.KindKeyFormat, "LDC-KEY-104",
				"invalid public key encoding", err)
		}
		raw = b
	case strings.HasPrefix(s, "z"):
		enc, b, err := multibase.Decode(s)
		if err != nil {
			return nil, lderr.Wrap(lderr.KindKeyFormat, "LDC-KEY-104",
				"invalid multibase public key", err)
		}
		if enc != multibase.Base58BTC {
			return nil, lderr.New(lderr.KindKeyFormat, "LDC-KEY-106",
				"public key multibase must be base58btc")
		}
		if len(b) != len(ed25519Multicodec)+ed25519.PublicKeySize ||
			b[0] != ed25519Multicodec[0] || b[1] != ed25519Multicodec[1] {
			return nil, lderr.New(lderr.KindKeyFormat, "LDC-KEY-106",
				"multibase public key is not an ed25519 multicodec payload")
		}
		raw = b[len(ed25519Multicodec):]
	default:
		b, err := decodeBase64(s)
		if err != nil {
			return nil, lderr.Wrap(lderr.KindKeyFormat, "LDC-KEY-104",
				"invalid public key encoding", err)
		}
		raw = b
	}
	if len(raw) != ed25519.PublicKeySize {
		return nil, lderr.New(lderr.KindKeyFormat, "LDC-KEY-105",
			fmt.Sprintf("public key must be %d bytes, got %d", ed25519.PublicKeySize, len(raw)))
	}
	return ed25519.PublicKey(raw), nil
}

// EncodePrivateKey renders a 32-byte seed as padded base64.
func EncodePrivateKey(seed []byte) string {
	return base64.StdEncoding.EncodeToString(seed)
}

// ParsePrivateKey decodes a base64 seed string and checks its length.
func ParsePrivateKey(s string) ([]byte, error) {
	if s == "" {
		return nil, lderr.New(lderr.KindKeyFormat, "LDC-KEY-107", "empty private key string")
	}
	b, err := decodeBase64(s)
	if err != nil {
		return nil, lderr.Wrap(lderr.KindKeyFormat, "LDC-KEY-102",
			"invalid private key encoding", err)
	}
	if len(b) != ed25519.SeedSize {
		return nil, lderr.New(lderr.KindKeyFormat, "LDC-KEY-103",
			fmt.Sprintf("private key must be %d bytes, got %d", ed25519.SeedSize, len(b)))
	}
	return b, nil
}

// MethodID derives the default verification-method fragment for a public
// key: "key-" followed by the first eight characters of its base64 form.
func MethodID(pub []byte) string {
	b64 := base64.StdEncoding.EncodeToString(pub)
	if len(b64) > 8 {
		b64 = b64[:8]
	}
	return "key-" + b64
}

// decodeBase64 accepts padded base64 first, then the unpadded form.
func decodeBase64(s string) ([]byte, error) {
	if b, err := base64.StdEncoding.DecodeString(s); err == nil {
		return b, nil
	}
	return base64.RawStdEncoding.DecodeString(s)
}
