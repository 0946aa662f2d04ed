package lint

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"

	"judidoc/internal/julia"
)

// startMarker separates the lint toolchain's own loading chatter from the
// diagnostics payload.
const startMarker = "STARTING LINT:"

// Severity follows the language-server numbering.
type Severity int

const (
	SeverityError Severity = iota + 1
	SeverityWarning
	SeverityInformation
	SeverityHint
)

func (s Severity) String() string {
	switch s {
	case SeverityError:
		return "Error"
	case SeverityWarning:
		return "Warning"
	case SeverityInformation:
		return "Information"
	case SeverityHint:
		return "Hint"
	default:
		return fmt.Sprintf("Severity(%d)", int(s))
	}
}

// Position is 1-based in the reporting convention.
type Position struct {
	Line      int `json:"line"`
	Character int `json:"character"`
}

type Range struct {
	Start Position `json:"start"`
	End   Position `json:"end"`
}

type Diagnostic struct {
	Severity Severity `json:"severity"`
	Range    Range    `json:"range"`
	Message  string   `json:"message"`
}

// diagnosticsSchema validates the payload before decoding, so a misbehaving
// toolchain degrades to raw-text passthrough instead of garbage diagnostics.
const diagnosticsSchema = `{
	"$schema": "https://json-schema.org/draft/2020-12/schema",
	"type": "array",
	"items": {
		"type": "object",
		"required": ["severity", "range", "message"],
		"properties": {
			"severity": {"type": "integer", "minimum": 1, "maximum": 4},
			"message": {"type": "string"},
			"range": {
				"type": "object",
				"required": ["start", "end"],
				"properties": {
					"start": {"$ref": "#/$defs/position"},
					"end": {"$ref": "#/$defs/position"}
				}
			}
		}
	},
	"$defs": {
		"position": {
			"type": "object",
			"required": ["line", "character"],
			"properties": {
				"line": {"type": "integer", "minimum": 1},
				"character": {"type": "integer", "minimum": 1}
			}
		}
	}
}`

var (
	schemaOnce     sync.Once
	compiledSchema *jsonschema.Schema
	schemaErr      error
)

func loadSchema() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		compiler := jsonschema.NewCompiler()
		if err := compiler.AddResource("diagnostics.json", strings.NewReader(diagnosticsSchema)); err != nil {
			schemaErr = err
			return
		}
		compiledSchema, schemaErr = compiler.Compile("diagnostics.json")
	})
	return compiledSchema, schemaErr
}

// ParseOutput extracts the diagnostics payload that follows the lint marker.
// ok is false when the marker never appeared, meaning the toolchain failed
// before reaching the lint pass.
func ParseOutput(stdout string) (payload string, ok bool) {
	idx := strings.Index(stdout, startMarker)
	if idx < 0 {
		return "", false
	}
	rest := stdout[idx+len(startMarker):]
	if nl := strings.IndexByte(rest, '\n'); nl >= 0 {
		rest = rest[nl+1:]
	} else {
		rest = ""
	}
	return strings.TrimSpace(rest), true
}

// DecodeDiagnostics validates payload against the diagnostics schema and
// decodes it.
func DecodeDiagnostics(payload string) ([]Diagnostic, error) {
	schema, err := loadSchema()
	if err != nil {
		return nil, fmt.Errorf("failed to compile diagnostics schema: %w", err)
	}

	var generic interface{}
	if err := json.Unmarshal([]byte(payload), &generic); err != nil {
		return nil, fmt.Errorf("diagnostics payload is not JSON: %w", err)
	}
	if err := schema.Validate(generic); err != nil {
		return nil, fmt.Errorf("diagnostics payload failed validation: %w", err)
	}

	var diags []Diagnostic
	if err := json.Unmarshal([]byte(payload), &diags); err != nil {
		return nil, fmt.Errorf("failed to decode diagnostics: %w", err)
	}
	return diags, nil
}

// Render formats diagnostics one per line in the 1-based reporting
// convention.
func Render(diags []Diagnostic) string {
	var b strings.Builder
	for _, d := range diags {
		fmt.Fprintf(&b, "%s %d:%d-%d:%d %s\n",
			d.Severity,
			d.Range.Start.Line, d.Range.Start.Character,
			d.Range.End.Line, d.Range.End.Character,
			d.Message)
	}
	return b.String()
}

// Report is the outcome of one lint invocation. Exactly one of Diagnostics,
// Raw, or TimedOut carries the result; an all-zero Report means a clean pass.
type Report struct {
	Diagnostics []Diagnostic
	Raw         string // unstructured passthrough when no valid payload arrived
	TimedOut    bool
}

// Run lints code through the external toolchain. Linting never fails the
// workflow: timeouts, crashes, and non-zero exits all degrade to whatever the
// toolchain managed to print. Loading JUDI routinely exceeds small deadlines,
// so a timeout in particular is a skip, not a failure.
func Run(ctx context.Context, runner *julia.Runner, script, code string) Report {
	res, err := runner.RunScript(ctx, script, code)
	if errors.Is(err, julia.ErrTimeout) {
		return Report{TimedOut: true}
	}

	// A non-zero exit does not invalidate diagnostics the toolchain printed
	// before dying, so stdout is parsed regardless of exit status.
	if payload, ok := ParseOutput(res.Stdout); ok {
		if payload == "" {
			return Report{}
		}
		if diags, derr := DecodeDiagnostics(payload); derr == nil {
			return Report{Diagnostics: diags}
		}
		return Report{Raw: payload}
	}

	// No marker: the toolchain failed before the lint pass. Surface partial
	// stdout, then the filtered stderr, then the invocation error itself.
	if raw := strings.TrimSpace(res.Stdout); raw != "" {
		return Report{Raw: raw}
	}
	if msg := julia.FormatError(res.Stderr); msg != "" {
		return Report{Raw: msg}
	}
	if err != nil {
		return Report{Raw: fmt.Sprintf("linter unavailable: %v", err)}
	}
	return Report{}
}
