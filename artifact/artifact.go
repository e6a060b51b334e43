// Package artifact wraps a value's canonical bytes with their content ID.
//
// The CID is always computed over canonical bytes: two structurally equal
// values share one CID no matter how they were built, and an indented
// rendering never changes identity.
package artifact

import (
	"bytes"
	"encoding/json"

	"ldcraft.io/ldcraft/canon"
	"ldcraft.io/ldcraft/cidutil"
	"ldcraft.io/ldcraft/lderr"
)

// Artifact is a canonical serialization plus its CIDv1 (raw, sha2-256).
type Artifact struct {
	Bytes []byte
	CID   string
}

// New canonicalizes v and attaches the CID of those bytes.
func New(v any) (*Artifact, error) {
	b, err := canon.Marshal(v)
	if err != nil {
		return nil, err
	}
	return &Artifact{Bytes: b, CID: cidutil.CIDv1RawSHA256(b)}, nil
}

// Indented re-renders the canonical bytes with two-space indentation for
// human consumption. Key order is preserved from the canonical form, so the
// output is deterministic too; only the canonical bytes carry identity.
func (a *Artifact) Indented() ([]byte, error) {
	var buf bytes.Buffer
	if err := json.Indent(&buf, a.Bytes, "", "  "); err != nil {
		return nil, lderr.Wrap(lderr.KindInternal, "LDC-ARTIFACT-560",
			"canonical bytes are not valid JSON", err)
	}
	return buf.Bytes(), nil
}
