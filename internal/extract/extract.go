package extract

import (
	"regexp"
)

// callPattern matches a maximal identifier run immediately followed by an
// opening parenthesis, ignoring intervening whitespace. The word boundary
// keeps the match anchored to the start of the run, so "foo_bar(" yields
// "foo_bar" and never "bar".
var callPattern = regexp.MustCompile(`\b([A-Za-z_][A-Za-z0-9_]*)\s*\(`)

// reservedWords are Julia keywords that can legally precede "(" in source
// text but never name a callable symbol.
var reservedWords = map[string]struct{}{
	"baremodule": {},
	"begin":      {},
	"break":      {},
	"catch":      {},
	"const":      {},
	"continue":   {},
	"do":         {},
	"else":       {},
	"elseif":     {},
	"end":        {},
	"export":     {},
	"false":      {},
	"finally":    {},
	"for":        {},
	"function":   {},
	"global":     {},
	"if":         {},
	"import":     {},
	"in":         {},
	"isa":        {},
	"let":        {},
	"local":      {},
	"macro":      {},
	"module":     {},
	"mutable":    {},
	"nothing":    {},
	"quote":      {},
	"return":     {},
	"struct":     {},
	"true":       {},
	"try":        {},
	"using":      {},
	"where":      {},
	"while":      {},
}

// Extractor collects call-like identifiers from raw source text. It is a
// deliberately syntax-free heuristic: the text does not need to parse, and a
// malformed input simply yields fewer identifiers.
type Extractor struct {
	deny map[string]struct{}
}

// NewExtractor creates an extractor with the default Julia keyword denylist.
func NewExtractor() *Extractor {
	return &Extractor{deny: reservedWords}
}

// NewExtractorWithDenylist creates an extractor that excludes exactly the
// given words instead of the default keyword set.
func NewExtractorWithDenylist(words []string) *Extractor {
	deny := make(map[string]struct{}, len(words))
	for _, w := range words {
		deny[w] = struct{}{}
	}
	return &Extractor{deny: deny}
}

// Identifiers returns the candidate identifiers found in source, deduplicated
// and in first-seen order.
func (e *Extractor) Identifiers(source string) []string {
	matches := callPattern.FindAllStringSubmatch(source, -1)

	seen := make(map[string]struct{}, len(matches))
	var out []string
	for _, m := range matches {
		ident := m[1]
		if _, denied := e.deny[ident]; denied {
			continue
		}
		if _, dup := seen[ident]; dup {
			continue
		}
		seen[ident] = struct{}{}
		out = append(out, ident)
	}
	return out
}
