package cidutil

import (
	"testing"

	"github.com/ipfs/go-cid"
	"github.com/multiformats/go-multihash"
)

func TestCIDv1RawSHA256_Deterministic(t *testing.T) {
	a := CIDv1RawSHA256([]byte("hello"))
	b := CIDv1RawSHA256([]byte("hello"))
	if a == "" || a != b {
		t.Fatalf("same bytes produced CIDs %q and %q", a, b)
	}
	if CIDv1RawSHA256([]byte("world")) == a {
		t.Fatalf("different bytes share a CID")
	}
}

func TestCIDv1RawSHA256CID_Shape(t *testing.T) {
	c, err := CIDv1RawSHA256CID([]byte("hello"))
	if err != nil {
		t.Fatalf("CIDv1RawSHA256CID: %v", err)
	}
	if c.Version() != 1 {
		t.Fatalf("version = %d, want 1", c.Version())
	}
	if c.Type() != cid.Raw {
		t.Fatalf("codec = %d, want raw", c.Type())
	}
	decoded, err := multihash.Decode(c.Hash())
	if err != nil {
		t.Fatalf("decode multihash: %v", err)
	}
	if decoded.Code != multihash.SHA2_256 {
		t.Fatalf("hash code = %d, want sha2-256", decoded.Code)
	}
	if c.String() != CIDv1RawSHA256([]byte("hello")) {
		t.Fatalf("string forms disagree")
	}
}
