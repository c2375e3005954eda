package pathresolve

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/alexisbeaulieu97/weave/internal/value"
)

type stubLookup struct {
	components map[string]value.Value
}

func (s *stubLookup) Get(name string) (value.Value, bool) {
	v, ok := s.components[name]
	return v, ok
}

func newFixture() (context, input, srcObject value.Value) {
	return value.NewObject(), value.NewObject(), value.NewObject()
}

func TestResolveNumberLiteral(t *testing.T) {
	t.Parallel()

	r := New(&stubLookup{})
	ctx, in, this := newFixture()

	v, err := r.Resolve("42", ctx, in, this)
	require.NoError(t, err)
	require.Equal(t, float64(42), v.Number())
}

func TestResolveQuotedStringLiteralStripsOuterQuotes(t *testing.T) {
	t.Parallel()

	r := New(&stubLookup{})
	ctx, in, this := newFixture()

	v, err := r.Resolve(`"Ada Lovelace"`, ctx, in, this)
	require.NoError(t, err)
	require.Equal(t, "Ada Lovelace", v.String())
}

func TestResolveBooleanLiteral(t *testing.T) {
	t.Parallel()

	r := New(&stubLookup{})
	ctx, in, this := newFixture()

	v, err := r.Resolve("true", ctx, in, this)
	require.NoError(t, err)
	require.True(t, v.Bool())
}

func TestSetAndResolveInputPath(t *testing.T) {
	t.Parallel()

	r := New(&stubLookup{})
	ctx, in, this := newFixture()

	require.NoError(t, r.SetValue("input.count", "0", ctx, in, this))
	v, err := r.Resolve("input.count", ctx, in, this)
	require.NoError(t, err)
	require.Equal(t, float64(0), v.Number())
}

func TestResolveMissingIntermediatePathFails(t *testing.T) {
	t.Parallel()

	r := New(&stubLookup{})
	ctx, in, this := newFixture()

	_, err := r.Resolve("input.a.b", ctx, in, this)
	require.Error(t, err)
}

func TestResolveMissingFinalSegmentIsAbsentNotError(t *testing.T) {
	t.Parallel()

	r := New(&stubLookup{})
	ctx, in, this := newFixture()

	v, err := r.Resolve("input.missing", ctx, in, this)
	require.NoError(t, err)
	require.True(t, v.IsNull())
}

func TestIncValueDefaultsToOne(t *testing.T) {
	t.Parallel()

	r := New(&stubLookup{})
	ctx, in, this := newFixture()

	require.NoError(t, r.SetValue("input.count", "0", ctx, in, this))
	require.NoError(t, r.IncValue("input.count", "", ctx, in, this))
	require.NoError(t, r.IncValue("input.count", "", ctx, in, this))

	v, err := r.Resolve("input.count", ctx, in, this)
	require.NoError(t, err)
	require.Equal(t, float64(2), v.Number())
}

func TestDecValueWithExplicitAmount(t *testing.T) {
	t.Parallel()

	r := New(&stubLookup{})
	ctx, in, this := newFixture()

	require.NoError(t, r.SetValue("input.count", "10", ctx, in, this))
	require.NoError(t, r.DecValue("input.count", "3", ctx, in, this))

	v, err := r.Resolve("input.count", ctx, in, this)
	require.NoError(t, err)
	require.Equal(t, float64(7), v.Number())
}

func TestDeleteValueRemovesLeaf(t *testing.T) {
	t.Parallel()

	r := New(&stubLookup{})
	ctx, in, this := newFixture()

	require.NoError(t, r.SetValue("input.count", "1", ctx, in, this))
	require.NoError(t, r.DeleteValue("input.count", ctx, in, this))

	v, err := r.Resolve("input.count", ctx, in, this)
	require.NoError(t, err)
	require.True(t, v.IsNull())
}

func TestGetValueDefaultsToFloating(t *testing.T) {
	t.Parallel()

	r := New(&stubLookup{})
	ctx, in, this := newFixture()

	ctx.Object().Set("floating", value.Bool(true))
	v, err := r.GetValue("", ctx, in, this)
	require.NoError(t, err)
	require.True(t, v.Bool())
}

func TestEqValueWritesContextFloating(t *testing.T) {
	t.Parallel()

	r := New(&stubLookup{})
	ctx, in, this := newFixture()

	require.NoError(t, r.SetValue("input.x", "5", ctx, in, this))
	result, err := r.EqValue("input.x", "5", ctx, in, this)
	require.NoError(t, err)
	require.True(t, result)

	floating, _ := ctx.Object().Get("floating")
	require.True(t, floating.Bool())
}

func TestComparisonMismatchedKindsIsFalse(t *testing.T) {
	t.Parallel()

	r := New(&stubLookup{})
	ctx, in, this := newFixture()

	gt, err := r.GtValue("5", `"5"`, ctx, in, this)
	require.NoError(t, err)
	require.False(t, gt)
}

func TestReferenceResolvesRegisteredComponent(t *testing.T) {
	t.Parallel()

	greeter := value.NewComponent(memberStub{"hello": value.NewFunc(func(input value.Value, args ...value.Value) (value.Value, error) {
		return value.String("hi " + args[0].String()), nil
	})})
	r := New(&stubLookup{components: map[string]value.Value{"greeter": greeter}})
	ctx, in, this := newFixture()

	res, err := r.ResolveWithType("greeter.hello", ctx, in, this)
	require.NoError(t, err)
	require.Equal(t, KindFunction, res.Kind)
}

type memberStub map[string]value.Value

func (m memberStub) Member(name string) (value.Value, bool) {
	v, ok := m[name]
	return v, ok
}
