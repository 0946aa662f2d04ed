package lint

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeverity_String(t *testing.T) {
	assert.Equal(t, "Error", SeverityError.String())
	assert.Equal(t, "Warning", SeverityWarning.String())
	assert.Equal(t, "Information", SeverityInformation.String())
	assert.Equal(t, "Hint", SeverityHint.String())
	assert.Equal(t, "Severity(9)", Severity(9).String())
}

func TestParseOutput(t *testing.T) {
	t.Run("Payload after marker", func(t *testing.T) {
		stdout := "Loading symbol server...\nSTARTING LINT:\n[{\"x\": 1}]\n"
		payload, ok := ParseOutput(stdout)
		require.True(t, ok)
		assert.Equal(t, `[{"x": 1}]`, payload)
	})

	t.Run("Missing marker", func(t *testing.T) {
		_, ok := ParseOutput("the toolchain crashed early")
		assert.False(t, ok)
	})

	t.Run("Marker with nothing after it", func(t *testing.T) {
		payload, ok := ParseOutput("STARTING LINT:\n")
		require.True(t, ok)
		assert.Empty(t, payload)
	})
}

func TestDecodeDiagnostics(t *testing.T) {
	t.Run("Valid payload", func(t *testing.T) {
		payload := `[
			{"severity": 1, "range": {"start": {"line": 3, "character": 5}, "end": {"line": 3, "character": 9}}, "message": "undefined variable"},
			{"severity": 2, "range": {"start": {"line": 7, "character": 1}, "end": {"line": 7, "character": 4}}, "message": "unused binding"}
		]`

		diags, err := DecodeDiagnostics(payload)
		require.NoError(t, err)
		require.Len(t, diags, 2)
		assert.Equal(t, SeverityError, diags[0].Severity)
		assert.Equal(t, 3, diags[0].Range.Start.Line)
		assert.Equal(t, "undefined variable", diags[0].Message)
		assert.Equal(t, SeverityWarning, diags[1].Severity)
	})

	t.Run("Empty array", func(t *testing.T) {
		diags, err := DecodeDiagnostics("[]")
		require.NoError(t, err)
		assert.Empty(t, diags)
	})

	t.Run("Not JSON", func(t *testing.T) {
		_, err := DecodeDiagnostics("ERROR: LoadError")
		assert.Error(t, err)
	})

	t.Run("Schema violation", func(t *testing.T) {
		// severity outside the 1-4 range
		payload := `[{"severity": 7, "range": {"start": {"line": 1, "character": 1}, "end": {"line": 1, "character": 2}}, "message": "x"}]`
		_, err := DecodeDiagnostics(payload)
		assert.Error(t, err)
	})

	t.Run("Missing required field", func(t *testing.T) {
		payload := `[{"severity": 1, "message": "no range"}]`
		_, err := DecodeDiagnostics(payload)
		assert.Error(t, err)
	})
}

func TestRender(t *testing.T) {
	diags := []Diagnostic{
		{
			Severity: SeverityError,
			Range:    Range{Start: Position{Line: 3, Character: 5}, End: Position{Line: 3, Character: 9}},
			Message:  "undefined variable",
		},
		{
			Severity: SeverityHint,
			Range:    Range{Start: Position{Line: 10, Character: 1}, End: Position{Line: 10, Character: 2}},
			Message:  "consider a docstring",
		},
	}

	out := Render(diags)

	assert.Equal(t, "Error 3:5-3:9 undefined variable\nHint 10:1-10:2 consider a docstring\n", out)
}

func TestRender_Empty(t *testing.T) {
	assert.Empty(t, Render(nil))
}
