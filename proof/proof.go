// Package proof builds and verifies Ed25519Signature2020 integrity proofs
// over canonical document bytes.
//
// A proof is always a sibling of the payload it certifies, stored under the
// document's "proof" key. The signable payload is the document without that
// key; signing is deterministic (no digest step, no randomness) so identical
// payload bytes and key always yield an identical proof value.
package proof

import (
	"fmt"

	"ldcraft.io/ldcraft/lderr"
	"ldcraft.io/ldcraft/model"
)

// TypeEd25519Signature2020 is the only recognized proof type.
const TypeEd25519Signature2020 = "Ed25519Signature2020"

// DefaultProofPurpose is used when signing options leave the purpose empty.
const DefaultProofPurpose = "assertionMethod"

// Proof is the typed view of a document's proof entry.
type Proof struct {
	Type               string `json:"type"`
	Created            string `json:"created,omitempty"`
	VerificationMethod string `json:"verificationMethod"`
	ProofPurpose       string `json:"proofPurpose"`
	ProofValue         string `json:"proofValue"`
}

// AsMap renders the proof as the plain map stored inside documents.
func (p Proof) AsMap() map[string]any {
	m := map[string]any{
		"type":               p.Type,
		"verificationMethod": p.VerificationMethod,
		"proofPurpose":       p.ProofPurpose,
		"proofValue":         p.ProofValue,
	}
	if p.Created != "" {
		m["created"] = p.Created
	}
	return m
}

// FromDocument extracts the typed proof carried by doc. Structural problems
// (no proof, wrong shape, missing fields) fail with KindMalformedProof.
func FromDocument(doc model.Document) (Proof, error) {
	raw, ok := doc[model.ProofField]
	if !ok {
		return Proof{}, lderr.New(lderr.KindMalformedProof, "LDC-PROOF-210",
			"document has no proof")
	}
	pm, ok := raw.(map[string]any)
	if !ok {
		return Proof{}, lderr.New(lderr.KindMalformedProof, "LDC-PROOF-211",
			fmt.Sprintf("proof must be a map, got %T", raw))
	}
	return proofFromMap(pm)
}

func proofFromMap(pm map[string]any) (Proof, error) {
	var p Proof
	for _, req := range []struct {
		key string
		dst *string
	}{
		{"type", &p.Type},
		{"verificationMethod", &p.VerificationMethod},
		{"proofPurpose", &p.ProofPurpose},
		{"proofValue", &p.ProofValue},
	} {
		raw, ok := pm[req.key]
		if !ok {
			return Proof{}, lderr.New(lderr.KindMalformedProof, "LDC-PROOF-212",
				fmt.Sprintf("proof missing %q", req.key))
		}
		s, ok := raw.(string)
		if !ok || s == "" {
			return Proof{}, lderr.New(lderr.KindMalformedProof, "LDC-PROOF-216",
				fmt.Sprintf("proof field %q must be a non-empty string", req.key))
		}
		*req.dst = s
	}
	if raw, ok := pm["created"]; ok {
		s, isStr := raw.(string)
		if !isStr {
			return Proof{}, lderr.New(lderr.KindMalformedProof, "LDC-PROOF-216",
				"proof field \"created\" must be a string")
		}
		p.Created = s
	}
	return p, nil
}
