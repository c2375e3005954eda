// Package pathresolve implements the dotted-path resolution algorithm
// shared by every compiler: splitting a step on ".", choosing one of the
// four roots (context, this, input/output, registry), walking the
// remaining tokens, and recognising literal forms.
package pathresolve

import (
	"strconv"
	"strings"

	"github.com/alexisbeaulieu97/weave/internal/value"
	werrors "github.com/alexisbeaulieu97/weave/pkg/errors"
)

// Subtype distinguishes the literal forms a path can resolve to.
type Subtype int

// Literal subtypes.
const (
	SubtypeNumber Subtype = iota
	SubtypeString
	SubtypeBoolean
)

// Kind distinguishes the three shapes resolvePathWithType can return.
type Kind int

// Result kinds.
const (
	KindLiteral Kind = iota
	KindReference
	KindFunction
)

// Resolved is the tagged result of resolvePathWithType.
type Resolved struct {
	Kind    Kind
	Subtype Subtype
	Src     string
	Value   value.Value
}

// Members lets a registered component (a value.KindComponent payload)
// expose dotted-path members and bind callables to itself. Components
// that do not implement Members are treated as opaque leaves: a path
// that tries to walk into one is absent.
type Members interface {
	Member(name string) (value.Value, bool)
}

// Lookup is the subset of the registry the resolver needs: strict then
// wildcard "get by name", used for both the "any other name" root rule
// and bare references to registered components.
type Lookup interface {
	Get(name string) (value.Value, bool)
}

// Resolver resolves dotted paths against the four roots and mutates
// context/input/this through setters.
type Resolver struct {
	Registry Lookup
}

// New constructs a Resolver bound to the given component lookup.
func New(lookup Lookup) *Resolver {
	return &Resolver{Registry: lookup}
}

// ResolveWithType is the full algorithm described in §4.B.
func (r *Resolver) ResolveWithType(step string, context, input, srcObject value.Value) (Resolved, error) {
	tokens := strings.Split(step, ".")
	head := strings.TrimSpace(tokens[0])

	if head == "" {
		if strings.HasPrefix(step, ".") {
			head = "this"
		} else {
			head = "context"
		}
	}

	if lit, ok := buildLiteral(head); ok {
		lit.Src = step
		return lit, nil
	}

	var root value.Value
	switch head {
	case "input", "output":
		root = input
	case "this":
		root = srcObject
	case "context":
		root = context
	default:
		if v, ok := r.lookupRegistry(head); ok {
			root = v
		} else {
			root = memberOrAbsent(context, head)
		}
	}

	rest := tokens[1:]
	final, err := walk(root, rest, step)
	if err != nil {
		return Resolved{}, err
	}

	kind := KindReference
	if final.Callable() || componentCallable(final) {
		kind = KindFunction
	}
	return Resolved{Kind: kind, Src: step, Value: final}, nil
}

// Resolve projects ResolveWithType onto its Value.
func (r *Resolver) Resolve(step string, context, input, srcObject value.Value) (value.Value, error) {
	res, err := r.ResolveWithType(step, context, input, srcObject)
	if err != nil {
		return value.Null(), err
	}
	return res.Value, nil
}

func (r *Resolver) lookupRegistry(name string) (value.Value, bool) {
	if r == nil || r.Registry == nil {
		return value.Null(), false
	}
	return r.Registry.Get(name)
}

func memberOrAbsent(context value.Value, key string) value.Value {
	if context.Kind() != value.KindObject {
		return value.Null()
	}
	v, _ := context.Object().Get(key)
	return v
}

// walk applies the remaining dotted tokens to root, per the rule: a
// break before the final token is PathNotFound, a break at the final
// token yields an absent reference.
func walk(root value.Value, rest []string, step string) (value.Value, error) {
	cur := root
	for i, tok := range rest {
		isLast := i == len(rest)-1
		child, ok := member(cur, tok)
		if !ok {
			if isLast {
				return value.Null(), nil
			}
			return value.Value{}, werrors.NewPathNotFound(step)
		}
		cur = child
	}
	return cur, nil
}

func member(cur value.Value, tok string) (value.Value, bool) {
	switch cur.Kind() {
	case value.KindObject:
		return cur.Object().Get(tok)
	case value.KindArray:
		idx, err := strconv.Atoi(tok)
		if err != nil || idx < 0 || idx >= len(cur.Array()) {
			return value.Null(), false
		}
		return cur.Array()[idx], true
	case value.KindComponent:
		if m, ok := cur.Component().(Members); ok {
			return m.Member(tok)
		}
		return value.Null(), false
	default:
		return value.Null(), false
	}
}

func componentCallable(v value.Value) bool {
	return v.Kind() == value.KindFunc && v.Func() != nil
}

// buildLiteral recognises the numeric/quoted/boolean literal forms.
// Exported as BuildLiteral for compilers that want to classify a raw
// operand word ahead of time (e.g. to pick an argument Subtype without
// a full resolve).
func buildLiteral(head string) (Resolved, bool) {
	if head == "true" || head == "false" {
		return Resolved{Kind: KindLiteral, Subtype: SubtypeBoolean, Value: value.Bool(head == "true")}, true
	}
	if n, err := strconv.ParseFloat(head, 64); err == nil {
		return Resolved{Kind: KindLiteral, Subtype: SubtypeNumber, Value: value.Number(n)}, true
	}
	if len(head) >= 2 {
		first, last := head[0], head[len(head)-1]
		if (first == '"' && last == '"') || (first == '\'' && last == '\'') {
			return Resolved{Kind: KindLiteral, Subtype: SubtypeString, Value: value.String(head[1 : len(head)-1])}, true
		}
	}
	return Resolved{}, false
}

// BuildLiteral exposes buildLiteral for the compiler plug-in contract.
func BuildLiteral(head string) (Resolved, bool) {
	return buildLiteral(head)
}
