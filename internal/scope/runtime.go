package scope

import (
	"context"
	"fmt"
	"strings"

	"judidoc/internal/julia"
)

// RuntimeScope resolves documentation by probing a live Julia session for one
// module. Subprocess failures of any kind surface as "not defined" or an
// error, so a broken module never blocks later scopes in the chain.
type RuntimeScope struct {
	runner *julia.Runner
	module string
}

// NewRuntimeScope creates a scope backed by the given runner that probes
// symbols inside module (e.g. "Main" or "JUDI").
func NewRuntimeScope(r *julia.Runner, module string) *RuntimeScope {
	return &RuntimeScope{runner: r, module: module}
}

func (s *RuntimeScope) Name() string { return "runtime:" + s.module }

func (s *RuntimeScope) IsDefined(ident string) bool {
	code := fmt.Sprintf(`%sprint(isdefined(%s, :%s))`, s.using(), s.module, ident)
	res, err := s.runner.Eval(context.Background(), code)
	if err != nil {
		return false
	}
	return strings.TrimSpace(res.Stdout) == "true"
}

func (s *RuntimeScope) Doc(ident string) (DocValue, error) {
	code := fmt.Sprintf(`%sprint(string(Base.Docs.doc(%s.%s)))`, s.using(), s.module, ident)
	res, err := s.runner.Eval(context.Background(), code)
	if err != nil {
		// Surface the Julia-side error with interop frames filtered out.
		if msg := julia.FormatError(res.Stderr); msg != "" {
			return DocValue{}, fmt.Errorf("doc retrieval for %s.%s failed: %s", s.module, ident, msg)
		}
		return DocValue{}, fmt.Errorf("doc retrieval for %s.%s failed: %w", s.module, ident, err)
	}
	// Whatever the session printed is only accepted downstream if it is a
	// real docstring, not a "nothing" rendering.
	return DocValue{Kind: DocUnknown, Raw: res.Stdout}, nil
}

func (s *RuntimeScope) using() string {
	if s.module == "Main" {
		return ""
	}
	return fmt.Sprintf("using %s; ", s.module)
}
