package pathresolve

import (
	"github.com/alexisbeaulieu97/weave/internal/value"
	werrors "github.com/alexisbeaulieu97/weave/pkg/errors"
)

// splitLast separates a dotted path into its parent path and final
// segment. A bare name (no dot) has an empty parent path, meaning
// "resolve the root itself".
func splitLast(path string) (parent, last string) {
	idx := -1
	for i := len(path) - 1; i >= 0; i-- {
		if path[i] == '.' {
			idx = i
			break
		}
	}
	if idx < 0 {
		return "", path
	}
	return path[:idx], path[idx+1:]
}

// resolveParent returns the mutable object the final segment of path
// should be applied to. A bare name with no dot has no explicit root
// prefix, so — mirroring the "any other name" root rule used for reads
// — it is set directly on the context object, the same place a bare
// getValue("someKey") would read it back from.
func (r *Resolver) resolveParent(path string, context, input, srcObject value.Value) (value.Value, string, error) {
	parent, last := splitLast(path)
	if parent == "" {
		return context, last, nil
	}
	parentVal, err := r.Resolve(parent, context, input, srcObject)
	if err != nil {
		return value.Value{}, "", err
	}
	if parentVal.Kind() != value.KindObject {
		return value.Value{}, "", werrors.NewPathNotFound(path)
	}
	return parentVal, last, nil
}

// SetValue assigns resolvePath(valuePath) to path.
func (r *Resolver) SetValue(path, valuePath string, context, input, srcObject value.Value) error {
	v, err := r.Resolve(valuePath, context, input, srcObject)
	if err != nil {
		return err
	}
	return r.SetLiteral(path, v, context, input, srcObject)
}

// SetLiteral assigns an already-resolved Value to path, used by set
// when the caller has the Value in hand (and by inc/dec after
// computing the new number).
func (r *Resolver) SetLiteral(path string, v value.Value, context, input, srcObject value.Value) error {
	parent, last, err := r.resolveParent(path, context, input, srcObject)
	if err != nil {
		return err
	}
	if parent.Kind() != value.KindObject {
		return werrors.NewPathNotFound(path)
	}
	parent.Object().Set(last, v)
	return nil
}

// DeleteValue removes the leaf named by path.
func (r *Resolver) DeleteValue(path string, context, input, srcObject value.Value) error {
	parent, last, err := r.resolveParent(path, context, input, srcObject)
	if err != nil {
		return err
	}
	if parent.Kind() != value.KindObject {
		return werrors.NewPathNotFound(path)
	}
	parent.Object().Delete(last)
	return nil
}

// IncValue adds resolvePath(valuePath or "1") to the number at path.
func (r *Resolver) IncValue(path, valuePath string, context, input, srcObject value.Value) error {
	return r.step(path, valuePath, context, input, srcObject, 1)
}

// DecValue subtracts resolvePath(valuePath or "1") from the number at
// path.
func (r *Resolver) DecValue(path, valuePath string, context, input, srcObject value.Value) error {
	return r.step(path, valuePath, context, input, srcObject, -1)
}

func (r *Resolver) step(path, valuePath string, context, input, srcObject value.Value, sign float64) error {
	if valuePath == "" {
		valuePath = "1"
	}
	delta, err := r.Resolve(valuePath, context, input, srcObject)
	if err != nil {
		return err
	}
	current, err := r.Resolve(path, context, input, srcObject)
	if err != nil {
		return err
	}
	next := value.Number(current.Number() + sign*delta.Number())
	return r.SetLiteral(path, next, context, input, srcObject)
}

// GetValue resolves path, defaulting to "floating" when path is empty.
func (r *Resolver) GetValue(path string, context, input, srcObject value.Value) (value.Value, error) {
	if path == "" {
		path = "floating"
	}
	return r.Resolve(path, context, input, srcObject)
}

// comparison is shared by Eq/Neq/Gt/Ge/Lt/Le: resolve both operands,
// compute the boolean, and write it into context.floating.
func (r *Resolver) comparison(pathA, pathB string, context, input, srcObject value.Value, cmp func(a, b value.Value) bool) (bool, error) {
	a, err := r.Resolve(pathA, context, input, srcObject)
	if err != nil {
		return false, err
	}
	b, err := r.Resolve(pathB, context, input, srcObject)
	if err != nil {
		return false, err
	}
	result := cmp(a, b)
	if context.Kind() == value.KindObject {
		context.Object().Set("floating", value.Bool(result))
	}
	return result, nil
}

// EqValue writes context.floating = (a == b).
func (r *Resolver) EqValue(pathA, pathB string, context, input, srcObject value.Value) (bool, error) {
	return r.comparison(pathA, pathB, context, input, srcObject, value.Equal)
}

// NeqValue writes context.floating = (a != b).
func (r *Resolver) NeqValue(pathA, pathB string, context, input, srcObject value.Value) (bool, error) {
	return r.comparison(pathA, pathB, context, input, srcObject, func(a, b value.Value) bool { return !value.Equal(a, b) })
}

// GtValue writes context.floating = (a > b).
func (r *Resolver) GtValue(pathA, pathB string, context, input, srcObject value.Value) (bool, error) {
	return r.comparison(pathA, pathB, context, input, srcObject, value.Greater)
}

// GeValue writes context.floating = (a >= b).
func (r *Resolver) GeValue(pathA, pathB string, context, input, srcObject value.Value) (bool, error) {
	return r.comparison(pathA, pathB, context, input, srcObject, value.GreaterOrEqual)
}

// LtValue writes context.floating = (a < b).
func (r *Resolver) LtValue(pathA, pathB string, context, input, srcObject value.Value) (bool, error) {
	return r.comparison(pathA, pathB, context, input, srcObject, value.Less)
}

// LeValue writes context.floating = (a <= b).
func (r *Resolver) LeValue(pathA, pathB string, context, input, srcObject value.Value) (bool, error) {
	return r.comparison(pathA, pathB, context, input, srcObject, value.LessOrEqual)
}
