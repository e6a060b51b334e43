// Package conformance checks exported artifacts against a standards-
// conformant external JSON-LD processor.
//
// The core packages guarantee syntactic validity of their artifacts; RDF
// semantics belong to the processor. This package feeds an artifact to
// github.com/piprate/json-gold and records evidence-style verdicts: each
// check names what was attempted and whether the processor accepted it.
// Nothing in the core data path depends on this package.
package conformance

import (
	"fmt"

	"github.com/piprate/json-gold/ld"

	"ldcraft.io/ldcraft/lderr"
	"ldcraft.io/ldcraft/model"
)

// Mode selects how much processor work an artifact must survive.
type Mode int

const (
	// Permissive requires only that JSON-LD expansion succeeds.
	Permissive Mode = iota
	// Strict additionally requires URDNA2015 normalization to succeed and
	// produce at least one quad.
	Strict
)

func (m Mode) String() string {
	switch m {
	case Permissive:
		return "permissive"
	case Strict:
		return "strict"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// Options configures a conformance check.
type Options struct {
	Mode Mode

	// DocumentLoader resolves remote context IRIs for the processor. Nil
	// means the refusing loader: remote resolution is network I/O, which
	// stays outside this library, so artifacts referencing remote contexts
	// fail their checks unless the caller supplies a loader.
	DocumentLoader ld.DocumentLoader
}

// CheckResult is one verdict: the check's name, whether it passed, and a
// human-readable detail line.
type CheckResult struct {
	Name   string
	Passed bool
	Detail string
}

// Report collects the verdicts for one artifact.
type Report struct {
	Mode   Mode
	Checks []CheckResult
}

// Passed reports whether every check passed.
func (r *Report) Passed() bool {
	for _, c := range r.Checks {
		if !c.Passed {
			return false
		}
	}
	return true
}

// Check runs the external processor over the artifact and reports verdicts.
// A failing check is recorded in the report, not returned as an error;
// errors are reserved for unusable input.
func Check(doc model.Document, opts Options) (*Report, error) {
	if doc == nil {
		return nil, lderr.New(lderr.KindConformance, "LDC-CONF-550", "no document to check")
	}

	loader := opts.DocumentLoader
	if loader == nil {
		loader = refusingLoader{}
	}
	proc := ld.NewJsonLdProcessor()

	report := &Report{Mode: opts.Mode}

	ldOpts := ld.NewJsonLdOptions("")
	ldOpts.DocumentLoader = loader
	expanded, err := proc.Expand(map[string]interface{}(doc), ldOpts)
	if err != nil {
		report.Checks = append(report.Checks, CheckResult{
			Name:   "expand",
			Detail: fmt.Sprintf("processor rejected the artifact: %v", err),
		})
		return report, nil
	}
	report.Checks = append(report.Checks, CheckResult{
		Name:   "expand",
		Passed: true,
		Detail: fmt.Sprintf("expanded to %d top-level nodes", len(expanded)),
	})

	if opts.Mode == Strict {
		normOpts := ld.NewJsonLdOptions("")
		normOpts.DocumentLoader = loader
		normOpts.Algorithm = ld.AlgorithmURDNA2015
		normOpts.Format = "application/n-quads"
		normalized, err := proc.Normalize(map[string]interface{}(doc), normOpts)
		switch {
		case err != nil:
			report.Checks = append(report.Checks, CheckResult{
				Name:   "normalize",
				Detail: fmt.Sprintf("URDNA2015 normalization failed: %v", err),
			})
		default:
			quads, _ := normalized.(string)
			if quads == "" {
				report.Checks = append(report.Checks, CheckResult{
					Name:   "normalize",
					Detail: "normalization produced no quads; the artifact maps to an empty dataset",
				})
			} else {
				report.Checks = append(report.Checks, CheckResult{
					Name:   "normalize",
					Passed: true,
					Detail: "URDNA2015 normalization produced quads",
				})
			}
		}
	}
	return report, nil
}

// refusingLoader is the default document loader: it refuses every remote
// IRI, keeping network access outside the library.
type refusingLoader struct{}

func (refusingLoader) LoadDocument(u string) (*ld.RemoteDocument, error) {
	return nil, lderr.New(lderr.KindConformance, "LDC-CONF-551",
		fmt.Sprintf("remote context %q not loaded: supply a DocumentLoader to resolve remote IRIs", u))
}
