package registry

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/alexisbeaulieu97/weave/internal/compiler"
	"github.com/alexisbeaulieu97/weave/internal/value"
)

func TestWildcardLookupMatchesStrictRegistration(t *testing.T) {
	t.Parallel()

	r := New(nil)
	greeter := value.NewComponent(struct{}{})
	r.Register("token-xx", greeter, true)

	strict, ok := r.Get("token-xx")
	require.True(t, ok)

	wild, ok := r.Get("token-*")
	require.True(t, ok)
	require.Equal(t, strict.Component(), wild.Component())
}

func TestWildcardCacheInvalidatedOnNewRegistration(t *testing.T) {
	t.Parallel()

	r := New(nil)
	r.Register("token-xx", value.NewComponent("xx"), true)

	first, ok := r.Get("token-*")
	require.True(t, ok)
	require.Equal(t, "xx", first.Component())

	r.Register("token-abc", value.NewComponent("abc"), true)

	second, ok := r.Get("token-*")
	require.True(t, ok)
	require.Equal(t, "xx", second.Component())
}

func TestRegisterThenGetIsIdempotentAndClearsCache(t *testing.T) {
	t.Parallel()

	r := New(nil)
	r.Register("widget-a", value.NewComponent("a"), true)
	_, _ = r.Get("widget-*")
	require.NotEmpty(t, r.cacheBestKeys)

	r.Register("widget-b", value.NewComponent("b"), true)
	require.Empty(t, r.cacheBestKeys)

	first, ok := r.Get("widget-a")
	require.True(t, ok)
	second, ok := r.Get("widget-a")
	require.True(t, ok)
	require.Equal(t, first.Component(), second.Component())
}

type settingsCounter struct {
	applied int
}

func (s *settingsCounter) Member(name string) (value.Value, bool) {
	if name != "applySettings" {
		return value.Null(), false
	}
	return value.NewFunc(func(input value.Value, args ...value.Value) (value.Value, error) {
		s.applied++
		return value.Null(), nil
	}), true
}

func TestSingletonApplySettingsInvokedOnEveryGetButReturnsSameInstance(t *testing.T) {
	t.Parallel()

	r := New(nil)
	counter := &settingsCounter{}
	r.Register("configurable", value.NewComponent(counter), true)

	first, ok := r.GetWithSettings("configurable", value.String("cfg1"))
	require.True(t, ok)
	second, ok := r.GetWithSettings("configurable", value.String("cfg2"))
	require.True(t, ok)

	require.Same(t, counter, first.Component().(*settingsCounter))
	require.Same(t, counter, second.Component().(*settingsCounter))
	require.Equal(t, 2, counter.applied)
}

func TestNonSingletonConstructsFreshInstanceEachGet(t *testing.T) {
	t.Parallel()

	r := New(nil)
	calls := 0
	r.Register("transient", Constructor(func(settings value.Value, container *Registry) value.Value {
		calls++
		return value.Number(float64(calls))
	}), false)

	first, ok := r.Get("transient")
	require.True(t, ok)
	second, ok := r.Get("transient")
	require.True(t, ok)

	require.Equal(t, float64(1), first.Number())
	require.Equal(t, float64(2), second.Number())
}

func TestParentFallbackWhenChildMisses(t *testing.T) {
	t.Parallel()

	parent := New(nil)
	parent.Register("shared", value.NewComponent("from-parent"), true)
	child := New(parent)

	v, ok := child.Get("shared")
	require.True(t, ok)
	require.Equal(t, "from-parent", v.Component())
}

func TestToJSONFromJSONRoundTripStripsClassName(t *testing.T) {
	t.Parallel()

	r := New(nil)
	r.AddClass("Widget", func(settings value.Value, container *Registry) value.Value {
		return value.NewObject()
	})

	instance := value.NewObject()
	instance.Object().Set("label", value.String("gear"))
	instance.Object().Set("count", value.Number(3))

	serialized := ToJSON(instance, "Widget")
	_, hasClassName := serialized.Object().Get(classNameField)
	require.True(t, hasClassName)

	restored, err := r.FromJSON(serialized, value.Null())
	require.NoError(t, err)
	_, hasClassNameAfter := restored.Object().Get(classNameField)
	require.False(t, hasClassNameAfter)

	label, _ := restored.Object().Get("label")
	require.Equal(t, "gear", label.String())
	count, _ := restored.Object().Get("count")
	require.Equal(t, float64(3), count.Number())
}

func TestComponentNamesAndPipelineTagsReportInsertionOrder(t *testing.T) {
	t.Parallel()

	r := New(nil)
	r.RegisterCompiler(compiler.DefaultName, testCompiler{name: compiler.DefaultName})
	r.Register("b-component", value.NewComponent("b"), true)
	r.Register("a-component", value.NewComponent("a"), true)
	require.NoError(t, r.RegisterPipeline("greet", []string{"get input"}, true))
	require.NoError(t, r.RegisterPipeline("farewell", []string{"get input"}, true))

	require.Equal(t, []string{"b-component", "a-component"}, r.ComponentNames())
	require.Equal(t, []string{"greet", "farewell"}, r.PipelineTags())
}

func TestConfigurationRegistrationRespectsOverwriteFlag(t *testing.T) {
	t.Parallel()

	r := New(nil)
	r.RegisterConfiguration("db", value.String("v1"), true)
	r.RegisterConfiguration("db", value.String("v2"), false)

	cfg, ok := r.GetConfiguration("db")
	require.True(t, ok)
	require.Equal(t, "v1", cfg.String())
}
