package flow

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/flowboard/pkg/errors"
)

const sampleFlow = `!Flow
with:
  logserver: "true"
  board:
    canvas:
      encoder:
        x: 10.7
        y: "20"
pods:
  encoder:
    uses: encode.yml
    parallel: 2
  indexer:
    needs: encoder
    read_only: true
  ranker:
    needs: [encoder, indexer]
  join: ~
`

func TestParse(t *testing.T) {
	f, err := Parse([]byte(sampleFlow))
	require.NoError(t, err)

	assert.Equal(t, []string{"encoder", "indexer", "ranker", "join"}, f.PodNames())

	enc, ok := f.Pod("encoder")
	require.True(t, ok)
	assert.Nil(t, enc.Needs)
	uses, _ := enc.Properties.Get("uses")
	assert.Equal(t, "encode.yml", uses)
	parallel, _ := enc.Properties.Get("parallel")
	assert.Equal(t, "2", parallel, "scalars are kept as their text")

	idx, _ := f.Pod("indexer")
	assert.Equal(t, []string{"encoder"}, idx.Needs)
	_, hasNeeds := idx.Properties.Get(NeedsKey)
	assert.False(t, hasNeeds, "needs is not a property")
	ro, _ := idx.Properties.Get("read_only")
	assert.Equal(t, "true", ro)

	ranker, _ := f.Pod("ranker")
	assert.Equal(t, []string{"encoder", "indexer"}, ranker.Needs)

	join, _ := f.Pod("join")
	assert.Equal(t, 0, join.Properties.Len())

	logserver, ok := f.With.Get("logserver")
	require.True(t, ok)
	assert.Equal(t, "true", logserver)
	assert.Equal(t, "logserver", f.With.Oldest().Key)
}

func TestParseStripsFirstTagOnly(t *testing.T) {
	f, err := Parse([]byte("pods:\n  a:\n    note: x\n!Flow\n"))
	require.NoError(t, err)
	assert.Equal(t, []string{"a"}, f.PodNames())

	f, err = Parse([]byte("!Flow\npods:\n  a:\n    note: \"!Flow\"\n"))
	require.NoError(t, err)
	note, _ := f.Pods[0].Properties.Get("note")
	assert.Equal(t, "!Flow", note)
}

func TestParseNeedsForms(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want []string
	}{
		{"absent", "pods:\n  a: {}\n", nil},
		{"null", "pods:\n  a:\n    needs: ~\n", nil},
		{"empty string", "pods:\n  a:\n    needs: \"\"\n", nil},
		{"scalar", "pods:\n  a:\n    needs: b\n", []string{"b"}},
		{"list", "pods:\n  a:\n    needs: [b, c]\n", []string{"b", "c"}},
		{"explicit empty list", "pods:\n  a:\n    needs: []\n", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := Parse([]byte(tt.doc))
			require.NoError(t, err)
			require.Len(t, f.Pods, 1)
			assert.Equal(t, tt.want, f.Pods[0].Needs)
			assert.Equal(t, tt.want == nil, f.Pods[0].Needs == nil)
		})
	}
}

func TestParseEmpty(t *testing.T) {
	for _, doc := range []string{"", "!Flow", "!Flow\n", "~"} {
		f, err := Parse([]byte(doc))
		require.NoError(t, err, "doc %q", doc)
		assert.Empty(t, f.Pods)
		assert.Equal(t, 0, f.With.Len())
	}
}

func TestParseAliases(t *testing.T) {
	doc := "pods:\n  a: &base\n    uses: x.yml\n  b: *base\n"
	f, err := Parse([]byte(doc))
	require.NoError(t, err)
	uses, ok := f.Pods[1].Properties.Get("uses")
	require.True(t, ok)
	assert.Equal(t, "x.yml", uses)
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		code errors.Code
	}{
		{"malformed", "pods:\n  a: [\n", errors.ErrCodeInvalidYAML},
		{"not a mapping", "- a\n- b\n", errors.ErrCodeInvalidYAML},
		{"pods not a mapping", "pods: [a, b]\n", errors.ErrCodeInvalidYAML},
		{"pod not a mapping", "pods:\n  a: hello\n", errors.ErrCodeInvalidYAML},
		{"duplicate pod", "pods:\n  a: {}\n  a: {}\n", errors.ErrCodeInvalidYAML},
		{"needs mapping", "pods:\n  a:\n    needs: {b: 1}\n", errors.ErrCodeInvalidYAML},
		{"needs nested list", "pods:\n  a:\n    needs: [[b]]\n", errors.ErrCodeInvalidYAML},
		{"list property", "pods:\n  a:\n    volumes: [x, y]\n", errors.ErrCodeInvalidProperty},
		{"with not a mapping", "with: 3\n", errors.ErrCodeInvalidYAML},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := Parse([]byte(tt.doc))
			require.Error(t, err)
			assert.Nil(t, f)
			assert.True(t, errors.Is(err, tt.code), "got %v", err)
		})
	}
}

func TestRead(t *testing.T) {
	f, err := Read(strings.NewReader(sampleFlow))
	require.NoError(t, err)
	assert.Len(t, f.Pods, 4)
}

func TestReadFileMissing(t *testing.T) {
	_, err := ReadFile(t.TempDir() + "/missing.yml")
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrCodeFileNotFound))
}
