package value

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestObjectPreservesInsertionOrder(t *testing.T) {
	t.Parallel()

	obj := NewOrderedObject()
	obj.Set("count", Number(0))
	obj.Set("name", String("Ada"))
	obj.Set("count", Number(3))

	require.Equal(t, []string{"count", "name"}, obj.Keys())

	got, ok := obj.Get("count")
	require.True(t, ok)
	require.Equal(t, float64(3), got.Number())
}

func TestObjectDeleteRemovesKeyAndOrderSlot(t *testing.T) {
	t.Parallel()

	obj := NewOrderedObject()
	obj.Set("a", Number(1))
	obj.Set("b", Number(2))
	obj.Delete("a")

	require.Equal(t, []string{"b"}, obj.Keys())
	_, ok := obj.Get("a")
	require.False(t, ok)
}

func TestEqualStructuralAcrossKinds(t *testing.T) {
	t.Parallel()

	require.True(t, Equal(Number(5), Number(5)))
	require.True(t, Equal(String("a"), String("a")))
	require.True(t, Equal(Bool(true), Bool(true)))
	require.True(t, Equal(Null(), Null()))
	require.False(t, Equal(Number(5), String("5")))
}

func TestLessDefinedOnlyForNumbersAndStrings(t *testing.T) {
	t.Parallel()

	require.True(t, Less(Number(1), Number(2)))
	require.True(t, Less(String("a"), String("b")))
	require.False(t, Less(Number(1), String("2")))
	require.False(t, Less(Bool(false), Bool(true)))
}

func TestTruthy(t *testing.T) {
	t.Parallel()

	require.True(t, Bool(true).Truthy())
	require.False(t, Bool(false).Truthy())
	require.False(t, Null().Truthy())
	require.False(t, Number(0).Truthy())
	require.True(t, Number(1).Truthy())
}

func TestMarshalOrderedPreservesKeyOrder(t *testing.T) {
	t.Parallel()

	obj := NewOrderedObject()
	obj.Set("count", Number(3))
	obj.Set("hit", Bool(true))

	out := MarshalOrdered(FromObject(obj))
	require.Equal(t, `{"count":3,"hit":true}`, out)
}

func TestFromAnyToAnyRoundTrip(t *testing.T) {
	t.Parallel()

	in := map[string]any{"x": float64(5), "y": "str", "z": true}
	v := FromAny(in)
	out := ToAny(v)
	require.Equal(t, in, out)
}
