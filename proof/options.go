package proof

import (
	"time"

	"ldcraft.io/ldcraft/canon"
)

// Options configures Sign and Verify. The zero value is usable for Verify;
// Sign additionally requires VerificationMethod.
type Options struct {
	// VerificationMethod names the key the proof points at, typically a
	// keys.MethodID fragment or a resolvable key IRI. Required for Sign.
	VerificationMethod string

	// ProofPurpose defaults to DefaultProofPurpose when empty.
	ProofPurpose string

	// Created stamps the proof; the zero value means time.Now. Always
	// rendered as RFC 3339 UTC at seconds precision.
	Created time.Time

	// Now supplies the clock when Created is zero. Tests inject it; nil
	// means time.Now.
	Now func() time.Time

	// Canonicalize produces the signable payload bytes. Nil means
	// canon.Marshal. Sign and Verify must agree on this function for a
	// signature to check out.
	Canonicalize func(any) ([]byte, error)
}

func (o Options) canonicalize() func(any) ([]byte, error) {
	if o.Canonicalize != nil {
		return o.Canonicalize
	}
	return canon.Marshal
}

func (o Options) purpose() string {
	if o.ProofPurpose != "" {
		return o.ProofPurpose
	}
	return DefaultProofPurpose
}

func (o Options) created() string {
	t := o.Created
	if t.IsZero() {
		if o.Now != nil {
			t = o.Now()
		} else {
			t = time.Now()
		}
	}
	return t.UTC().Truncate(time.Second).Format(time.RFC3339)
}
