package harvest

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"judidoc/internal/extract"
	"judidoc/internal/scope"
)

// stubScope implements scope.Scope over a plain string map.
type stubScope struct {
	name string
	docs map[string]string
	fail map[string]bool
}

func (s *stubScope) Name() string { return s.name }

func (s *stubScope) IsDefined(ident string) bool {
	if s.fail[ident] {
		return true
	}
	_, ok := s.docs[ident]
	return ok
}

func (s *stubScope) Doc(ident string) (scope.DocValue, error) {
	if s.fail[ident] {
		return scope.DocValue{}, errors.New("retrieval failed")
	}
	doc, ok := s.docs[ident]
	if !ok {
		return scope.DocValue{}, errors.New("undefined")
	}
	return scope.DocValue{Kind: scope.DocPlain, Raw: doc}, nil
}

func newTestPipeline(scopes ...scope.Scope) *Pipeline {
	return NewPipeline(extract.NewExtractor(), scope.NewChain(scopes...))
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "comment marker doubled and lines left-trimmed",
			in:   "# foo\n   bar\n",
			want: "## foo\nbar\n",
		},
		{
			name: "relative indentation is not preserved",
			in:   "    a\n        b\n",
			want: "a\nb\n",
		},
		{
			name: "marker only doubled at line start",
			in:   "see issue #42\n",
			want: "see issue #42\n",
		},
		{
			name: "tabs are trimmed too",
			in:   "\t# note\n",
			want: "## note\n",
		},
		{
			name: "empty input",
			in:   "",
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.in))
		})
	}
}

func TestPipeline_EndToEnd(t *testing.T) {
	// Only bar has documentation; foo resolves nowhere.
	p := newTestPipeline(&stubScope{
		name: "lib",
		docs: map[string]string{"bar": "  # Adds one.\n"},
	})

	res := p.Run("function foo(x) y = bar(x) + 1 end")

	assert.Equal(t, []string{"bar"}, res.Identifiers)
	assert.Equal(t, "# bar\n## Adds one.\n", res.Report)
}

func TestPipeline_SubsetProperty(t *testing.T) {
	source := "a(1); b(2); c(3)"
	p := newTestPipeline(&stubScope{
		name: "lib",
		docs: map[string]string{"a": "doc a", "c": "doc c", "unrelated": "doc"},
	})

	res := p.Run(source)

	extracted := extract.NewExtractor().Identifiers(source)
	for _, ident := range res.Identifiers {
		assert.Contains(t, extracted, ident)
	}
	assert.Equal(t, []string{"a", "c"}, res.Identifiers)
}

func TestPipeline_NoDuplicates(t *testing.T) {
	p := newTestPipeline(&stubScope{
		name: "lib",
		docs: map[string]string{"foo": "the doc"},
	})

	res := p.Run("foo(1); foo(2); foo(3)")

	assert.Equal(t, []string{"foo"}, res.Identifiers)
	assert.Equal(t, 1, strings.Count(res.Report, "# foo\n"))
}

func TestPipeline_Idempotence(t *testing.T) {
	source := "ricker(f); shift(tr); undocumented(x)"
	p := newTestPipeline(&stubScope{
		name: "lib",
		docs: map[string]string{"ricker": "wavelet doc", "shift": "shift doc"},
	})

	first := p.Run(source)
	for i := 0; i < 5; i++ {
		again := p.Run(source)
		assert.Equal(t, first.Report, again.Report)
		assert.Equal(t, first.Identifiers, again.Identifiers)
	}
}

func TestPipeline_FailureIsolation(t *testing.T) {
	// bad fails in the only scope; good must still resolve.
	p := newTestPipeline(&stubScope{
		name: "lib",
		docs: map[string]string{"good": "good doc"},
		fail: map[string]bool{"bad": true},
	})

	res := p.Run("bad(1); good(2)")

	assert.Equal(t, []string{"good"}, res.Identifiers)
	assert.NotContains(t, res.Report, "bad")
}

func TestPipeline_SectionPerIdentifier(t *testing.T) {
	p := newTestPipeline(&stubScope{
		name: "lib",
		docs: map[string]string{"one": "first doc", "two": "second doc"},
	})

	res := p.Run("one(); two()")

	require.Equal(t, []string{"one", "two"}, res.Identifiers)
	for _, ident := range res.Identifiers {
		assert.Equal(t, 1, strings.Count(res.Report, "# "+ident+"\n"))
	}
}

func TestWriteOutput(t *testing.T) {
	t.Run("With identifiers", func(t *testing.T) {
		var b strings.Builder
		err := WriteOutput(&b, Result{
			Report:      "# bar\n## Adds one.\n",
			Identifiers: []string{"bar"},
		})
		require.NoError(t, err)
		assert.Equal(t, "FUNCTION NAMES:\n[\"bar\"]\nDOCUMENTATION\n# bar\n## Adds one.\n", b.String())
	})

	t.Run("Empty result", func(t *testing.T) {
		var b strings.Builder
		err := WriteOutput(&b, Result{})
		require.NoError(t, err)
		assert.Equal(t, "FUNCTION NAMES:\nString[]\nDOCUMENTATION\n", b.String())
	})
}
