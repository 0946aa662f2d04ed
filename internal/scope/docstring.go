package scope

import (
	"fmt"
	"regexp"
	"strings"

	"judidoc/internal/crawler"
)

// Table is an in-memory symbol table mapping identifiers to the docstrings
// attached to their definitions. It implements Scope.
type Table struct {
	name string
	docs map[string]DocValue
}

func (t *Table) Name() string { return t.name }

func (t *Table) IsDefined(ident string) bool {
	_, ok := t.docs[ident]
	return ok
}

func (t *Table) Doc(ident string) (DocValue, error) {
	doc, ok := t.docs[ident]
	if !ok {
		return DocValue{}, fmt.Errorf("no documentation for %q in scope %s", ident, t.name)
	}
	return doc, nil
}

// Len reports how many documented symbols the table holds.
func (t *Table) Len() int { return len(t.docs) }

// NewSourceScope builds the local scope from a single file's text: the
// docstrings the harvested file defines itself.
func NewSourceScope(source string) *Table {
	return &Table{name: "source", docs: ScanDocstrings(source)}
}

// NewPackageScope builds the library scope by crawling a Julia project's
// source tree for docstring-annotated definitions. A file that cannot be
// read is skipped; the first definition of a symbol wins.
func NewPackageScope(root string) (*Table, error) {
	docs := make(map[string]DocValue)

	c := crawler.New()
	err := c.ScanProject(root, func(path, source string) {
		for ident, doc := range ScanDocstrings(source) {
			if _, exists := docs[ident]; !exists {
				docs[ident] = doc
			}
		}
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan project %s: %w", root, err)
	}

	return &Table{name: "package", docs: docs}, nil
}

var (
	defFunction  = regexp.MustCompile(`^function\s+(?:[A-Za-z_][A-Za-z0-9_]*\.)*([A-Za-z_][A-Za-z0-9_]*)`)
	defMacro     = regexp.MustCompile(`^macro\s+([A-Za-z_][A-Za-z0-9_]*)`)
	defStruct    = regexp.MustCompile(`^(?:mutable\s+)?struct\s+([A-Za-z_][A-Za-z0-9_]*)`)
	defShortForm = regexp.MustCompile(`^([A-Za-z_][A-Za-z0-9_]*)(?:\{[^}]*\})?\(.*\)\s*=[^=]`)
	docMacroLine = regexp.MustCompile(`^@doc\s+(raw)?("(?:[^"\\]|\\.)*")\s+([A-Za-z_][A-Za-z0-9_]*)\s*$`)
)

// ScanDocstrings pairs each docstring in source with the definition that
// immediately follows it. Docstrings not followed by a recognizable
// definition are dropped.
func ScanDocstrings(source string) map[string]DocValue {
	docs := make(map[string]DocValue)
	lines := strings.Split(source, "\n")

	for i := 0; i < len(lines); i++ {
		line := strings.TrimSpace(lines[i])

		// One-line @doc binding carries its own target name.
		if m := docMacroLine.FindStringSubmatch(line); m != nil {
			if _, exists := docs[m[3]]; !exists {
				docs[m[3]] = DocValue{Kind: DocLiteral, Raw: m[1] + m[2]}
			}
			continue
		}

		var doc DocValue
		var ok bool
		switch {
		case strings.HasPrefix(line, `"""`):
			doc, i, ok = scanTripleQuoted(lines, i)
		case len(line) >= 2 && strings.HasPrefix(line, `"`) && strings.HasSuffix(line, `"`):
			doc, ok = DocValue{Kind: DocLiteral, Raw: line}, true
		}
		if !ok {
			continue
		}

		ident := nextDefinitionName(lines, i+1)
		if ident == "" {
			continue
		}
		if _, exists := docs[ident]; !exists {
			docs[ident] = doc
		}
	}

	return docs
}

// scanTripleQuoted consumes a triple-quoted string starting at line start and
// returns the literal (delimiters included), the index of its closing line,
// and whether a closing delimiter was found.
func scanTripleQuoted(lines []string, start int) (DocValue, int, bool) {
	first := strings.TrimSpace(lines[start])
	if rest := first[3:]; strings.Contains(rest, `"""`) {
		end := strings.Index(rest, `"""`) + 3
		return DocValue{Kind: DocLiteral, Raw: first[:3+end]}, start, true
	}

	var body []string
	body = append(body, first)
	for j := start + 1; j < len(lines); j++ {
		body = append(body, lines[j])
		if strings.Contains(lines[j], `"""`) {
			return DocValue{Kind: DocLiteral, Raw: strings.Join(body, "\n")}, j, true
		}
	}
	return DocValue{}, start, false
}

// nextDefinitionName finds the symbol defined by the first non-blank,
// non-comment line at or after index from.
func nextDefinitionName(lines []string, from int) string {
	for j := from; j < len(lines); j++ {
		line := strings.TrimSpace(lines[j])
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		for _, re := range []*regexp.Regexp{defFunction, defMacro, defStruct, defShortForm} {
			if m := re.FindStringSubmatch(line); m != nil {
				return m[1]
			}
		}
		return ""
	}
	return ""
}
