package proof

import (
	"crypto/ed25519"
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/multiformats/go-multibase"

	"ldcraft.io/ldcraft/lderr"
	"ldcraft.io/ldcraft/model"
)

// Verify checks doc's proof against the 32-byte public key.
//
// A well-formed proof whose signature simply does not match the payload
// yields (false, nil): a mismatch is an expected outcome, not a defect.
// Errors are reserved for structural problems — a missing or ill-formed
// proof (KindMalformedProof) or key material of the wrong length
// (KindKeyFormat). The result depends only on the canonical payload bytes,
// the decoded signature, and the key; host map iteration order cannot
// influence it.
func Verify(doc model.Document, pub []byte, opts Options) (bool, error) {
	if len(pub) != ed25519.PublicKeySize {
		return false, lderr.New(lderr.KindKeyFormat, "LDC-KEY-105",
			fmt.Sprintf("public key must be %d bytes, got %d", ed25519.PublicKeySize, len(pub)))
	}
	p, err := FromDocument(doc)
	if err != nil {
		return false, err
	}
	if p.Type != TypeEd25519Signature2020 {
		return false, lderr.New(lderr.KindMalformedProof, "LDC-PROOF-213",
			fmt.Sprintf("unrecognized proof type %q", p.Type))
	}
	sig, err := DecodeProofValue(p.ProofValue)
	if err != nil {
		return false, err
	}

	payload, err := opts.canonicalize()(model.WithoutProof(doc))
	if err != nil {
		return false, err
	}
	return ed25519.Verify(ed25519.PublicKey(pub), payload, sig), nil
}

// DecodeProofValue decodes a proofValue string back into signature bytes.
// The canonical form is multibase base58btc ("z…"); padded and unpadded
// std base64 are accepted for artifacts produced before the multibase form.
func DecodeProofValue(s string) ([]byte, error) {
	if s == "" {
		return nil, lderr.New(lderr.KindMalformedProof, "LDC-PROOF-214", "empty proofValue")
	}
	var sig []byte
	if strings.HasPrefix(s, "z") {
		enc, b, err := multibase.Decode(s)
		if err != nil {
			return nil, lderr.Wrap(lderr.KindMalformedProof, "LDC-PROOF-214",
				"invalid multibase proofValue", err)
		}
		if enc != multibase.Base58BTC {
			return nil, lderr.New(lderr.KindMalformedProof, "LDC-PROOF-214",
				"proofValue multibase must be base58btc")
		}
		sig = b
	} else {
		b, err := base64.StdEncoding.DecodeString(s)
		if err != nil {
			b, err = base64.RawStdEncoding.DecodeString(s)
		}
		if err != nil {
			return nil, lderr.Wrap(lderr.KindMalformedProof, "LDC-PROOF-214",
				"invalid proofValue encoding", err)
		}
		sig = b
	}
	if len(sig) != ed25519.SignatureSize {
		return nil, lderr.New(lderr.KindMalformedProof, "LDC-PROOF-215",
			fmt.Sprintf("signature must be %d bytes, got %d", ed25519.SignatureSize, len(sig)))
	}
	return sig, nil
}
