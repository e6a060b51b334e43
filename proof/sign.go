package proof

import (
	"crypto/ed25519"
	"fmt"

	"github.com/multiformats/go-multibase"

	"ldcraft.io/ldcraft/keys"
	"ldcraft.io/ldcraft/lderr"
	"ldcraft.io/ldcraft/model"
)

// Sign canonicalizes doc, signs the payload bytes with the pair's private
// seed, and returns a new document carrying the resulting proof. The input
// document is never mutated.
//
// A document that already carries a proof is rejected: re-signing a signed
// artifact must be an explicit caller decision (strip the proof first), never
// an accident. Signing is over the raw canonical payload, with no digest
// step, so identical (seed, payload) always produce an identical proofValue.
func Sign(doc model.Document, kp keys.KeyPair, opts Options) (model.Document, error) {
	if model.HasProof(doc) {
		return nil, lderr.New(lderr.KindMalformedProof, "LDC-PROOF-200",
			"document already carries a proof; strip it before signing again")
	}
	if opts.VerificationMethod == "" {
		return nil, lderr.New(lderr.KindMalformedProof, "LDC-PROOF-201",
			"signing requires a verificationMethod")
	}
	signer, err := kp.Signer()
	if err != nil {
		return nil, err
	}

	payload, err := opts.canonicalize()(doc)
	if err != nil {
		return nil, err
	}
	sig := ed25519.Sign(signer, payload)

	value, err := EncodeProofValue(sig)
	if err != nil {
		return nil, err
	}
	p := Proof{
		Type:               TypeEd25519Signature2020,
		Created:            opts.created(),
		VerificationMethod: opts.VerificationMethod,
		ProofPurpose:       opts.purpose(),
		ProofValue:         value,
	}

	signed := model.CloneDocument(doc)
	signed[model.ProofField] = p.AsMap()
	return signed, nil
}

// EncodeProofValue renders a 64-byte Ed25519 signature in multibase
// base58btc ("z…") form.
func EncodeProofValue(sig []byte) (string, error) {
	if len(sig) != ed25519.SignatureSize {
		return "", lderr.New(lderr.KindMalformedProof, "LDC-PROOF-215",
			fmt.Sprintf("signature must be %d bytes, got %d", ed25519.SignatureSize, len(sig)))
	}
	s, err := multibase.Encode(multibase.Base58BTC, sig)
	if err != nil {
		return "", lderr.Wrap(lderr.KindInternal, "LDC-PROOF-219", "multibase encode failed", err)
	}
	return s, nil
}
