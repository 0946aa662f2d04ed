package scope

import (
	"strings"
)

// DocKind tags the shape a documentation value was retrieved in.
type DocKind int

const (
	// DocPlain is already-plain documentation text.
	DocPlain DocKind = iota
	// DocLiteral is a Julia string literal (single or triple quoted) whose
	// delimiters still surround the text.
	DocLiteral
	// DocUnknown is anything else; it is rendered best-effort and accepted
	// only when the rendering is non-empty and not a nil sentinel.
	DocUnknown
)

// DocValue is a retrieved documentation value before unwrapping.
type DocValue struct {
	Kind DocKind
	Raw  string
}

// Unwrap reduces a DocValue to plain documentation text. It returns "" when
// the value carries no usable documentation.
func (d DocValue) Unwrap() string {
	switch d.Kind {
	case DocPlain:
		return d.Raw
	case DocLiteral:
		return stripStringDelimiters(d.Raw)
	default:
		rendered := d.Raw
		switch strings.ToLower(strings.TrimSpace(rendered)) {
		case "", "nothing", "none":
			return ""
		}
		return rendered
	}
}

func stripStringDelimiters(s string) string {
	t := strings.TrimSpace(s)
	t = strings.TrimPrefix(t, "raw")
	if strings.HasPrefix(t, `"""`) {
		// A triple-quote opener never falls through to the single-quote
		// branch, so a bare or unterminated delimiter passes unchanged.
		if strings.HasSuffix(t, `"""`) && len(t) >= 6 {
			t = t[3 : len(t)-3]
			// Triple-quoted docstrings conventionally start on the line
			// after the opening delimiter.
			return strings.TrimPrefix(t, "\n")
		}
		return s
	}
	if strings.HasPrefix(t, `"`) && strings.HasSuffix(t, `"`) && len(t) >= 2 {
		return t[1 : len(t)-1]
	}
	return s
}

// Scope is one symbol-resolution context. Implementations must be read-only
// and safe to probe repeatedly.
type Scope interface {
	Name() string
	IsDefined(ident string) bool
	Doc(ident string) (DocValue, error)
}

// Chain is an ordered list of scopes searched front to back. The order is an
// explicit input, never a hidden default, so tests can substitute fakes.
type Chain struct {
	scopes []Scope
}

func NewChain(scopes ...Scope) *Chain {
	return &Chain{scopes: scopes}
}

// Lookup returns the documentation bound to ident in the first scope that
// yields a non-empty result. A failure while probing one scope is treated as
// "not found there" and never suppresses a hit in a later scope. Returns ""
// when no scope resolves the identifier.
func (c *Chain) Lookup(ident string) string {
	for _, s := range c.scopes {
		if !s.IsDefined(ident) {
			continue
		}
		doc, err := s.Doc(ident)
		if err != nil {
			continue
		}
		text := doc.Unwrap()
		if strings.TrimSpace(text) == "" {
			continue
		}
		return text
	}
	return ""
}
