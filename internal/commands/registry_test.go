package commands

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultTraits(t *testing.T) {
	r := Default()

	brief, ok := r.Lookup("brief")
	require.True(t, ok)
	assert.True(t, brief.IsBlock())
	assert.True(t, brief.HasFlag(FlagBrief))
	assert.False(t, brief.IsParam())

	param, ok := r.Lookup("param")
	require.True(t, ok)
	assert.True(t, param.IsBlock())
	assert.True(t, param.IsParam())
	assert.True(t, param.TakesDirection())

	tparam, ok := r.Lookup("tparam")
	require.True(t, ok)
	assert.True(t, tparam.IsParam())
	assert.False(t, tparam.TakesDirection())

	b, ok := r.Lookup("b")
	require.True(t, ok)
	assert.True(t, b.IsInline())
	assert.Equal(t, 1, b.NumArgs)
	assert.Equal(t, RenderBold, b.Render)

	verb, ok := r.Lookup("verbatim")
	require.True(t, ok)
	assert.True(t, verb.IsVerbatimBlock())
	assert.Equal(t, "endverbatim", verb.EndName)

	fdollar, ok := r.Lookup("f$")
	require.True(t, ok)
	assert.Equal(t, "f$", fdollar.EndName)

	fn, ok := r.Lookup("fn")
	require.True(t, ok)
	assert.True(t, fn.IsVerbatimLine())
}

func TestUnknownCommandIsInline(t *testing.T) {
	r := Default()
	tr, ok := r.Lookup("frobnicate")
	assert.False(t, ok)
	assert.Equal(t, "frobnicate", tr.Name)
	assert.True(t, tr.IsInline())
	assert.Zero(t, tr.NumArgs)

	var nilRegistry *Registry
	tr, ok = nilRegistry.Lookup("brief")
	assert.False(t, ok)
	assert.True(t, tr.IsInline())
}

func TestDefaultReturnsFreshCopies(t *testing.T) {
	a := Default()
	require.NoError(t, a.RegisterBlock("retval"))
	_, ok := Default().Lookup("retval")
	assert.False(t, ok, "Default must not share state between calls")
}

func TestRegisterValidation(t *testing.T) {
	r := New()
	tests := []struct {
		name   string
		traits Traits
	}{
		{"empty name", Traits{}},
		{"bad chars", Traits{Name: "a-b", Kind: KindBlock}},
		{"too many args", Traits{Name: "x", NumArgs: 2}},
		{"verbatim without end", Traits{Name: "x", Kind: KindVerbatimBlock}},
		{"end on block", Traits{Name: "x", Kind: KindBlock, EndName: "endx"}},
		{"direction on block", Traits{Name: "x", Kind: KindBlock, Flags: FlagTakesDirection}},
		{"unknown kind", Traits{Name: "x", Kind: Kind(42)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, r.Register(tt.traits), ErrInvalidTraits)
		})
	}
	assert.Zero(t, r.Len())
}

func TestRegisterHelpers(t *testing.T) {
	r := New()
	require.NoError(t, r.RegisterParam("arg", true))
	require.NoError(t, r.RegisterInline("ref2", 1))
	require.NoError(t, r.RegisterVerbatimBlock("startuml", "enduml"))
	require.NoError(t, r.RegisterVerbatimLine("file"))

	arg, _ := r.Lookup("arg")
	assert.True(t, arg.TakesDirection())
	uml, _ := r.Lookup("startuml")
	assert.Equal(t, "enduml", uml.EndName)
	assert.Equal(t, 4, r.Len())
}

func TestSpecsSortedAndFingerprintStable(t *testing.T) {
	r := Default()
	specs := r.Specs()
	require.Len(t, specs, len(builtins))
	for i := 1; i < len(specs); i++ {
		require.Less(t, specs[i-1].Name, specs[i].Name)
	}

	fp := r.Fingerprint()
	assert.Equal(t, fp, Default().Fingerprint())

	c := r.Clone()
	require.NoError(t, c.RegisterBlock("retval"))
	assert.NotEqual(t, fp, c.Fingerprint())
	assert.Equal(t, fp, r.Fingerprint(), "Clone must not alias the original")
}

func TestBuiltinsAreValid(t *testing.T) {
	seen := map[string]bool{}
	for _, b := range builtins {
		require.NoError(t, validate(b), b.Name)
		require.False(t, seen[b.Name], "duplicate builtin %q", b.Name)
		seen[b.Name] = true
	}
}

func TestVerbatimBlockFor(t *testing.T) {
	r := Default()

	code, ok := r.VerbatimBlockFor("endcode")
	require.True(t, ok)
	assert.Equal(t, "code", code.Name)

	formula, ok := r.VerbatimBlockFor("f$")
	require.True(t, ok)
	assert.Equal(t, "f$", formula.Name)

	_, ok = r.VerbatimBlockFor("brief")
	assert.False(t, ok)
	_, ok = r.VerbatimBlockFor("")
	assert.False(t, ok)

	var nilReg *Registry
	_, ok = nilReg.VerbatimBlockFor("endcode")
	assert.False(t, ok)
}
