// Command ldcraft exports JSON-LD artifacts from a modelfile: one context
// document and one SHACL shape document per declared record type, plus an
// inspection view for quick review.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"ldcraft.io/ldcraft/artifact"
	"ldcraft.io/ldcraft/ldcontext"
	"ldcraft.io/ldcraft/manifest"
	"ldcraft.io/ldcraft/model"
	"ldcraft.io/ldcraft/shacl"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, out io.Writer, errOut io.Writer) int {
	if len(args) == 0 {
		printUsage(errOut)
		return 2
	}
	switch args[0] {
	case "export-contexts":
		return cmdExportContexts(args[1:], out, errOut)
	case "export-shacl":
		return cmdExportShacl(args[1:], out, errOut)
	case "inspect":
		return cmdInspect(args[1:], out, errOut)
	case "help", "-h", "--help":
		printUsage(out)
		return 0
	default:
		fmt.Fprintf(errOut, "unknown command: %s\n\n", args[0])
		printUsage(errOut)
		return 2
	}
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, "ldcraft: JSON-LD context/shape exporter for modelfiles")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  ldcraft export-contexts --manifest <file> [--out <dir>] [--indent] [--validate] [--cid]")
	fmt.Fprintln(w, "  ldcraft export-shacl --manifest <file> [--out <dir>] [--indent] [--cid]")
	fmt.Fprintln(w, "  ldcraft inspect --manifest <file>")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Notes:")
	fmt.Fprintln(w, "  - without --out, artifacts print to stdout")
	fmt.Fprintln(w, "  - --cid prints each artifact's CIDv1 over its canonical bytes")
	fmt.Fprintln(w, "  - --validate checks exported contexts against the keyword whitelist")
}

func cmdExportContexts(args []string, out io.Writer, errOut io.Writer) int {
	fs := flag.NewFlagSet("export-contexts", flag.ContinueOnError)
	fs.SetOutput(errOut)
	manifestPath := fs.String("manifest", "", "modelfile to export from")
	outDir := fs.String("out", "", "directory for <Name>.context.jsonld files")
	indent := fs.Bool("indent", false, "write indented JSON")
	validate := fs.Bool("validate", false, "validate exported contexts")
	printCID := fs.Bool("cid", false, "print each artifact's CID")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if *manifestPath == "" {
		fmt.Fprintln(errOut, "usage: ldcraft export-contexts --manifest <file> [--out <dir>] [--indent] [--validate] [--cid]")
		return 2
	}

	types, err := manifest.ParseFile(*manifestPath)
	if err != nil {
		fmt.Fprintf(errOut, "parse manifest: %v\n", err)
		return 1
	}
	for _, typ := range types {
		doc, err := typ.ContextDocument()
		if err != nil {
			fmt.Fprintf(errOut, "%s: build context: %v\n", typ.Name(), err)
			return 1
		}
		if *validate {
			if err := ldcontext.ValidateContextDocument(doc); err != nil {
				fmt.Fprintf(errOut, "%s: invalid context: %v\n", typ.Name(), err)
				return 1
			}
		}
		if code := emit(doc, typ.Name()+".context.jsonld", *outDir, *indent, *printCID, out, errOut); code != 0 {
			return code
		}
	}
	return 0
}

func cmdExportShacl(args []string, out io.Writer, errOut io.Writer) int {
	fs := flag.NewFlagSet("export-shacl", flag.ContinueOnError)
	fs.SetOutput(errOut)
	manifestPath := fs.String("manifest", "", "modelfile to export from")
	outDir := fs.String("out", "", "directory for <Name>.shacl.jsonld files")
	indent := fs.Bool("indent", false, "write indented JSON")
	printCID := fs.Bool("cid", false, "print each artifact's CID")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if *manifestPath == "" {
		fmt.Fprintln(errOut, "usage: ldcraft export-shacl --manifest <file> [--out <dir>] [--indent] [--cid]")
		return 2
	}

	types, err := manifest.ParseFile(*manifestPath)
	if err != nil {
		fmt.Fprintf(errOut, "parse manifest: %v\n", err)
		return 1
	}
	for _, typ := range types {
		doc, err := shacl.Export(typ)
		if err != nil {
			fmt.Fprintf(errOut, "%s: build shape: %v\n", typ.Name(), err)
			return 1
		}
		if code := emit(doc, typ.Name()+".shacl.jsonld", *outDir, *indent, *printCID, out, errOut); code != 0 {
			return code
		}
	}
	return 0
}

func cmdInspect(args []string, out io.Writer, errOut io.Writer) int {
	fs := flag.NewFlagSet("inspect", flag.ContinueOnError)
	fs.SetOutput(errOut)
	manifestPath := fs.String("manifest", "", "modelfile to inspect")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if *manifestPath == "" {
		fmt.Fprintln(errOut, "usage: ldcraft inspect --manifest <file>")
		return 2
	}

	types, err := manifest.ParseFile(*manifestPath)
	if err != nil {
		fmt.Fprintf(errOut, "parse manifest: %v\n", err)
		return 1
	}
	for i, typ := range types {
		if i > 0 {
			fmt.Fprintln(out)
		}
		if code := inspectType(typ, out, errOut); code != 0 {
			return code
		}
	}
	return 0
}

func inspectType(typ *model.Type, out io.Writer, errOut io.Writer) int {
	_, _ = io.WriteString(out, typ.Describe())

	doc, err := typ.ContextDocument()
	if err != nil {
		fmt.Fprintf(errOut, "%s: build context: %v\n", typ.Name(), err)
		return 1
	}
	a, err := artifact.New(doc)
	if err != nil {
		fmt.Fprintf(errOut, "%s: canonicalize context: %v\n", typ.Name(), err)
		return 1
	}
	fmt.Fprintf(out, "  context-cid %s\n", a.CID)
	return 0
}

// emit writes one artifact either to <outDir>/<filename> or to out, printing
// the CID first when asked. The CID is always over canonical bytes, even
// when the written form is indented.
func emit(doc model.Document, filename, outDir string, indent, printCID bool, out io.Writer, errOut io.Writer) int {
	a, err := artifact.New(doc)
	if err != nil {
		fmt.Fprintf(errOut, "%s: canonicalize: %v\n", filename, err)
		return 1
	}
	rendered := a.Bytes
	if indent {
		rendered, err = a.Indented()
		if err != nil {
			fmt.Fprintf(errOut, "%s: render: %v\n", filename, err)
			return 1
		}
	}
	if printCID {
		fmt.Fprintf(out, "%s %s\n", a.CID, filename)
	}
	if outDir == "" {
		_, _ = out.Write(rendered)
		fmt.Fprintln(out)
		return 0
	}
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		fmt.Fprintf(errOut, "create %s: %v\n", outDir, err)
		return 1
	}
	path := filepath.Join(outDir, filename)
	if err := os.WriteFile(path, append(rendered, '\n'), 0o644); err != nil {
		fmt.Fprintf(errOut, "write %s: %v\n", path, err)
		return 1
	}
	return 0
}
