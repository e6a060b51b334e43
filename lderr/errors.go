// Package lderr defines the structured error type shared by every ldcraft
// package.
package lderr

import "errors"

// Kind is a stable category for programmatic error handling.
//
// These categories are intended to remain stable across versions.
// Callers should branch on Kind/RuleID rather than matching error strings.
//
// NOTE: Error() strings are intentionally kept human-readable and may evolve.
// Use errors.As to extract *Error for structured handling.
type Kind string

const (
	// KindSerialization marks values with no defined canonical form.
	KindSerialization Kind = "Serialization"
	// KindContextConflict marks incompatible prefix/term/base/vocab
	// redefinitions found while merging context definitions.
	KindContextConflict Kind = "ContextConflict"
	// KindContextInvalid marks boundary context documents that violate the
	// keyword whitelist or keyword value rules.
	KindContextInvalid Kind = "ContextInvalid"
	// KindMalformedProof marks structurally broken proofs, as opposed to
	// proofs that are well-formed but do not verify.
	KindMalformedProof Kind = "MalformedProof"
	// KindKeyFormat marks key material of the wrong length or encoding.
	KindKeyFormat Kind = "KeyFormat"
	// KindGraph marks invalid graph assembly inputs.
	KindGraph Kind = "Graph"
	// KindModel marks invalid record type declarations or instance values.
	KindModel Kind = "Model"
	// KindShacl marks shape export failures.
	KindShacl Kind = "Shacl"
	// KindManifest marks modelfile parse failures.
	KindManifest Kind = "Manifest"
	// KindConformance marks external-processor check failures.
	KindConformance Kind = "Conformance"
	// KindInternal marks invariant violations that should be unreachable.
	KindInternal Kind = "Internal"
)

// Error is the library's structured error type.
//
// RuleID is a stable identifier (e.g., LDC-CANON-001, LDC-CTX-021,
// LDC-PROOF-204) that names the violated invariant or validation rule.
//
// Message is intended for humans; do not match on it.
type Error struct {
	Kind    Kind
	RuleID  string
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Cause
}

// New returns a structured error with no cause.
func New(kind Kind, ruleID, msg string) error {
	return &Error{Kind: kind, RuleID: ruleID, Message: msg}
}

// Wrap returns a structured error wrapping cause. A nil cause is equivalent
// to New.
func Wrap(kind Kind, ruleID, msg string, cause error) error {
	if cause == nil {
		return New(kind, ruleID, msg)
	}
	return &Error{Kind: kind, RuleID: ruleID, Message: msg, Cause: cause}
}

// IsKind reports whether err is (or wraps) a *Error with the given Kind.
func IsKind(err error, kind Kind) bool {
	var e *Error
	if !errors.As(err, &e) {
		return false
	}
	return e.Kind == kind
}

// RuleID returns the stable RuleID for a structured error, or "" if unknown.
func RuleID(err error) string {
	var e *Error
	if !errors.As(err, &e) {
		return ""
	}
	return e.RuleID
}
