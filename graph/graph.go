// Package graph assembles record instances into named-graph documents.
//
// A NamedGraph groups instance documents under one identifier with shared
// metadata and a single context. The single-model entry point takes the
// context as given; the mixed-model entry point merges the distinct per-model
// contexts through ldcontext.Merge and fails closed on any conflict — the
// assembler never resolves conflicts itself.
package graph

import (
	"fmt"
	"strings"
	"time"

	"ldcraft.io/ldcraft/ldcontext"
	"ldcraft.io/ldcraft/lderr"
	"ldcraft.io/ldcraft/model"
)

// DefaultGraphType is the @type given to assembled graph documents.
const DefaultGraphType = "Dataset"

// NamedGraph is an assembled graph: ordered instance documents plus the
// context and metadata they share. Graph order equals input order.
type NamedGraph struct {
	ID       string
	Type     string
	Graph    []model.Document
	Metadata map[string]any
	Context  ldcontext.Definition
}

// Options configures graph assembly.
type Options struct {
	// GraphID identifies the graph. Empty means a synthesized default:
	// "<lowercased-type-name>-graph" for a single-model graph,
	// "mixed-graph-<UTC timestamp>" for a mixed one.
	GraphID string

	// GraphType defaults to DefaultGraphType.
	GraphType string

	// TypeName names the record type. Required for Export; it seeds both
	// synthesized instance ids and the default graph id.
	TypeName string

	// Metadata is merged into the top level of the rendered artifact. Keys
	// must not begin with "@"; the JSON-LD keyword slots belong to the
	// assembler.
	Metadata map[string]any

	// Now supplies the clock for the mixed-graph default id. Nil means
	// time.Now.
	Now func() time.Time
}

// Source pairs one instance with its record type name and context, for
// mixed-model assembly.
type Source struct {
	Doc      model.Document
	TypeName string
	Context  ldcontext.Definition
}

// Export assembles instances of a single record type into a named graph.
// The context is taken directly, without merging. Instances are deep-copied;
// any instance lacking "@id" gets "<lowercased-type-name>-<n>" where n is
// its 1-based position.
func Export(instances []model.Document, ctx ldcontext.Definition, opts Options) (*NamedGraph, error) {
	if len(instances) == 0 {
		return nil, lderr.New(lderr.KindGraph, "LDC-GRAPH-302", "cannot assemble an empty graph")
	}
	if opts.TypeName == "" {
		return nil, lderr.New(lderr.KindGraph, "LDC-GRAPH-300", "single-model export requires a type name")
	}
	if err := checkMetadata(opts.Metadata); err != nil {
		return nil, err
	}

	lower := strings.ToLower(opts.TypeName)
	g := &NamedGraph{
		ID:       opts.GraphID,
		Type:     opts.GraphType,
		Graph:    make([]model.Document, 0, len(instances)),
		Metadata: copyMetadata(opts.Metadata),
		Context:  ctx.Clone(),
	}
	if g.ID == "" {
		g.ID = lower + "-graph"
	}
	if g.Type == "" {
		g.Type = DefaultGraphType
	}
	for i, inst := range instances {
		g.Graph = append(g.Graph, withID(inst, lower, i+1))
	}
	return g, nil
}

// ExportMixed assembles instances of several record types into one graph.
// The distinct contexts, in first-seen order, are merged via ldcontext.Merge;
// a merge conflict propagates unchanged. Ids are synthesized per instance
// from its own type name, with the index counting across the whole graph.
func ExportMixed(sources []Source, opts Options) (*NamedGraph, error) {
	if len(sources) == 0 {
		return nil, lderr.New(lderr.KindGraph, "LDC-GRAPH-302", "cannot assemble an empty graph")
	}
	if err := checkMetadata(opts.Metadata); err != nil {
		return nil, err
	}

	var distinct []ldcontext.Definition
	for _, src := range sources {
		if src.TypeName == "" {
			return nil, lderr.New(lderr.KindGraph, "LDC-GRAPH-301",
				"mixed-model export requires a type name per source")
		}
		seen := false
		for _, d := range distinct {
			if d.Equal(src.Context) {
				seen = true
				break
			}
		}
		if !seen {
			distinct = append(distinct, src.Context)
		}
	}
	merged, err := ldcontext.Merge(distinct)
	if err != nil {
		return nil, err
	}

	g := &NamedGraph{
		ID:       opts.GraphID,
		Type:     opts.GraphType,
		Graph:    make([]model.Document, 0, len(sources)),
		Metadata: copyMetadata(opts.Metadata),
		Context:  merged,
	}
	if g.ID == "" {
		now := time.Now
		if opts.Now != nil {
			now = opts.Now
		}
		g.ID = "mixed-graph-" + now().UTC().Format("20060102150405")
	}
	if g.Type == "" {
		g.Type = DefaultGraphType
	}
	for i, src := range sources {
		g.Graph = append(g.Graph, withID(src.Doc, strings.ToLower(src.TypeName), i+1))
	}
	return g, nil
}

// AsDocument renders the boundary artifact: the context document's @context,
// then @id, @type, @graph, then the metadata entries at top level.
func (g *NamedGraph) AsDocument() (model.Document, error) {
	ctxDoc, err := ldcontext.BuildContextDocument(g.Context)
	if err != nil {
		return nil, err
	}
	doc := model.Document{
		ldcontext.KeywordContext: ctxDoc[ldcontext.KeywordContext],
		ldcontext.KeywordID:      g.ID,
		ldcontext.KeywordType:    g.Type,
		ldcontext.KeywordGraph:   append([]model.Document(nil), g.Graph...),
	}
	for k, v := range g.Metadata {
		doc[k] = v
	}
	return doc, nil
}

func withID(doc model.Document, lowerType string, index int) model.Document {
	out := model.CloneDocument(doc)
	if _, ok := out[model.IDField]; !ok {
		out[model.IDField] = fmt.Sprintf("%s-%d", lowerType, index)
	}
	return out
}

func checkMetadata(md map[string]any) error {
	for k := range md {
		if strings.HasPrefix(k, "@") {
			return lderr.New(lderr.KindGraph, "LDC-GRAPH-303",
				fmt.Sprintf("metadata key %q: @-prefixed keys are reserved", k))
		}
	}
	return nil
}

func copyMetadata(md map[string]any) map[string]any {
	if md == nil {
		return nil
	}
	out := make(map[string]any, len(md))
	for k, v := range md {
		out[k] = v
	}
	return out
}
