package harvest

import (
	"fmt"
	"io"
	"strings"

	"judidoc/internal/extract"
	"judidoc/internal/scope"
)

// Pipeline wires identifier extraction, documentation lookup, and report
// assembly for a single source file. A fresh run shares no state with any
// previous one.
type Pipeline struct {
	extractor *extract.Extractor
	scopes    *scope.Chain
}

// NewPipeline creates a pipeline over the given extractor and scope chain.
func NewPipeline(ext *extract.Extractor, chain *scope.Chain) *Pipeline {
	return &Pipeline{extractor: ext, scopes: chain}
}

// Result holds the assembled report and the identifiers that resolved, in
// processing order.
type Result struct {
	Report      string
	Identifiers []string
}

// Run extracts call-like identifiers from source, resolves each against the
// scope chain, and assembles one normalized report section per resolved
// identifier. Identifiers without documentation contribute nothing; a lookup
// failure on one identifier never aborts the rest.
func (p *Pipeline) Run(source string) Result {
	idents := p.extractor.Identifiers(source)

	var sections []string
	var found []string
	for _, ident := range idents {
		doc := p.scopes.Lookup(ident)
		if strings.TrimSpace(doc) == "" {
			continue
		}

		body := Normalize(doc)
		if !strings.HasSuffix(body, "\n") {
			body += "\n"
		}
		sections = append(sections, "# "+ident+"\n"+body)
		found = append(found, ident)
	}

	return Result{
		Report:      strings.Join(sections, "\n"),
		Identifiers: found,
	}
}

// WriteOutput prints a result in the marker-framed format downstream tooling
// parses: the identifier list after a FUNCTION NAMES: line, then the report
// after a DOCUMENTATION line. An empty identifier list prints as the Julia
// empty-array rendering.
func WriteOutput(w io.Writer, res Result) error {
	names := "String[]"
	if len(res.Identifiers) > 0 {
		quoted := make([]string, len(res.Identifiers))
		for i, ident := range res.Identifiers {
			quoted[i] = `"` + ident + `"`
		}
		names = "[" + strings.Join(quoted, ", ") + "]"
	}

	_, err := fmt.Fprintf(w, "FUNCTION NAMES:\n%s\nDOCUMENTATION\n%s", names, res.Report)
	return err
}
