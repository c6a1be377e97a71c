package diff

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	gerrors "github.com/matzehuels/gdiff/pkg/errors"
	"github.com/matzehuels/gdiff/pkg/graph"
)

func TestParseMode(t *testing.T) {
	for _, m := range Modes {
		got, err := ParseMode(string(m))
		require.NoError(t, err)
		assert.Equal(t, m, got)
	}
	_, err := ParseMode("intersection")
	require.Error(t, err)
	assert.Equal(t, gerrors.ErrCodeInvalidMode, gerrors.GetCode(err))
	assert.Contains(t, err.Error(), "matrix, union")
}

func TestRunMatrix(t *testing.T) {
	cfg := DefaultRunConfig()
	out, err := Run(mapA(), mapB(), cfg)
	require.NoError(t, err)

	require.NotNil(t, out.Forward)
	require.NotNil(t, out.Reverse)
	require.NotNil(t, out.RecoloredA)
	require.NotNil(t, out.RecoloredB)
	assert.Nil(t, out.Union)
	assert.Equal(t, ModeMatrix, out.Mode)

	// Forward keeps mapA's structure, reverse keeps mapB's.
	assert.Equal(t, mapA().Len(), out.Forward.Document.Len())
	assert.Equal(t, mapB().Len(), out.Reverse.Document.Len())

	assert.Equal(t, DefaultSourceOnly[graph.ClassSpecies], at(out.Forward.Document, "Grb2").Style.Fill)
	assert.Equal(t, DefaultOtherOnly[graph.ClassSpecies], at(out.Reverse.Document, "Shc").Style.Fill)
	assert.Equal(t, DefaultIntersect[graph.ClassComponent], at(out.Reverse.Document, "EGFR", "L").Style.Fill)

	assert.Equal(t, DefaultSourceOnly[graph.ClassState], at(out.RecoloredA, "EGFR", "Y1068", "P").Style.Fill)
	assert.Equal(t, DefaultOtherOnly[graph.ClassComponent], at(out.RecoloredB, "Shc", "PTB").Style.Fill)

	want := graph.DefaultFontSize + DefaultFontDelta
	for _, d := range []*graph.Document{out.Forward.Document, out.Reverse.Document, out.RecoloredA, out.RecoloredB} {
		for _, n := range d.Walk() {
			require.Equal(t, want, n.Style.FontSize, "node %s", n.ID)
		}
	}
	assert.Empty(t, out.Warnings())
}

func TestRunUnion(t *testing.T) {
	cfg := DefaultRunConfig()
	cfg.Mode = ModeUnion
	out, err := Run(mapA(), mapB(), cfg)
	require.NoError(t, err)

	require.NotNil(t, out.Union)
	assert.Nil(t, out.Forward)
	assert.Nil(t, out.RecoloredA)
	assert.Equal(t, 12, out.Union.Document.Len())
	for _, n := range out.Union.Document.Walk() {
		require.Equal(t, graph.DefaultFontSize+DefaultFontDelta, n.Style.FontSize)
	}
}

func TestRunNormalizesPalette(t *testing.T) {
	cfg := DefaultRunConfig()
	cfg.Palette.SourceOnly = Tiers{"#ABC", "#DDEEFF", "#123456"}
	out, err := Run(mapA(), mapB(), cfg)
	require.NoError(t, err)
	assert.Equal(t, "#aabbcc", at(out.Forward.Document, "Grb2").Style.Fill)
	assert.Equal(t, "#ddeeff", at(out.RecoloredA, "EGFR", "L").Style.Fill)
}

func TestRunErrors(t *testing.T) {
	tests := []struct {
		name string
		edit func(*RunConfig)
		a, b *graph.Document
		code gerrors.Code
	}{
		{
			name: "invalid mode",
			edit: func(c *RunConfig) { c.Mode = "both" },
			code: gerrors.ErrCodeInvalidMode,
		},
		{
			name: "invalid palette",
			edit: func(c *RunConfig) { c.Palette.Intersect[0] = "green" },
			code: gerrors.ErrCodeInvalidPalette,
		},
		{
			name: "ambiguous labels",
			edit: func(c *RunConfig) {},
			b: graph.Build([]*graph.Node{
				graph.Leaf("n0", "EGFR", graph.ClassSpecies),
				graph.Leaf("n1", "EGFR", graph.ClassSpecies),
			}),
			code: gerrors.ErrCodeAmbiguousLabel,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultRunConfig()
			tt.edit(&cfg)
			a, b := tt.a, tt.b
			if a == nil {
				a = mapA()
			}
			if b == nil {
				b = mapB()
			}
			out, err := Run(a, b, cfg)
			require.Error(t, err)
			assert.Nil(t, out)
			assert.Equal(t, tt.code, gerrors.GetCode(err))
		})
	}
}
