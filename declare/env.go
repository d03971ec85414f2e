package declare

import (
	"fmt"

	"github.com/regenlang/regen/pattern"
)

// UnknownNameError is returned when a pattern references a Class name with
// no matching declaration visible from its scope.
type UnknownNameError struct {
	Name string
}

func (e *UnknownNameError) Error() string {
	return fmt.Sprintf("declare: undeclared name %q", e.Name)
}

// Env is a lexically scoped name to resolved-pattern environment. A child
// scope extends its parent without mutating it: lookups walk up the parent
// chain, but Declare only ever writes into the scope it was called on.
//
// The type scope holds declarations from the enclosing type's top-level
// declare(...) attribute; each variant gets its own child scope holding
// that variant's local declare(...), so a variant's local names may shadow,
// but never mutate, a type-level name of the same spelling.
type Env[T any] struct {
	parent *Env[T]
	vars   map[string]Resolved[T]
}

// NewEnv returns a new root scope with no parent.
func NewEnv[T any]() *Env[T] {
	return &Env[T]{vars: make(map[string]Resolved[T])}
}

// Child returns a new scope whose lookups fall back to e.
func (e *Env[T]) Child() *Env[T] {
	return &Env[T]{parent: e, vars: make(map[string]Resolved[T])}
}

// Declare resolves pat under e as it stands (so pat may reference any name
// already declared in e or an ancestor scope, but not names declared later
// in the same batch, nor itself) and binds the result to name in e.
//
// Declaring the same name twice in one scope overwrites the earlier
// binding; since declarations are processed in source order and each RHS
// is resolved against the environment as built so far, an already-resolved
// reference to the old binding is unaffected by a later overwrite.
func (e *Env[T]) Declare(name string, pat pattern.Pattern[T]) error {
	r, err := Resolve(e, pat)
	if err != nil {
		return err
	}
	e.vars[name] = r
	return nil
}

// lookup searches e and its ancestors for name.
func (e *Env[T]) lookup(name string) (Resolved[T], bool) {
	for s := e; s != nil; s = s.parent {
		if r, ok := s.vars[name]; ok {
			return r, true
		}
	}
	return Resolved[T]{}, false
}

// Resolve walks pat, substituting every Class reference with its binding in
// env. An unresolvable name is reported via UnknownNameError.
func Resolve[T any](env *Env[T], pat pattern.Pattern[T]) (Resolved[T], error) {
	switch pat.Kind {
	case pattern.KindAtom:
		return Resolved[T]{
			Kind:     KindAtom,
			AtomKind: pat.AtomKind,
			Value:    pat.Value,
			Lo:       pat.Lo,
			Hi:       pat.Hi,
		}, nil

	case pattern.KindClass:
		r, ok := env.lookup(pat.ClassName)
		if !ok {
			return Resolved[T]{}, &UnknownNameError{Name: pat.ClassName}
		}
		return r, nil

	case pattern.KindSeq:
		seq := make([]Resolved[T], len(pat.Seq))
		for i, p := range pat.Seq {
			r, err := Resolve(env, p)
			if err != nil {
				return Resolved[T]{}, err
			}
			seq[i] = r
		}
		return Resolved[T]{Kind: KindSeq, Seq: seq}, nil

	case pattern.KindJoin:
		lhs, err := Resolve(env, *pat.LHS)
		if err != nil {
			return Resolved[T]{}, err
		}
		rhs, err := Resolve(env, *pat.RHS)
		if err != nil {
			return Resolved[T]{}, err
		}
		return Resolved[T]{Kind: KindJoin, LHS: &lhs, RHS: &rhs}, nil

	case pattern.KindOr:
		lhs, err := Resolve(env, *pat.LHS)
		if err != nil {
			return Resolved[T]{}, err
		}
		rhs, err := Resolve(env, *pat.RHS)
		if err != nil {
			return Resolved[T]{}, err
		}
		return Resolved[T]{Kind: KindOr, LHS: &lhs, RHS: &rhs}, nil

	case pattern.KindRepeat:
		body, err := Resolve(env, *pat.Body)
		if err != nil {
			return Resolved[T]{}, err
		}
		return Resolved[T]{Kind: KindRepeat, Body: &body, RepeatLo: pat.RepeatLo, RepeatHi: pat.RepeatHi}, nil

	case pattern.KindCollect:
		body, err := Resolve(env, *pat.Body)
		if err != nil {
			return Resolved[T]{}, err
		}
		return Resolved[T]{Kind: KindCollect, Field: pat.Field, Body: &body}, nil

	default:
		return Resolved[T]{}, fmt.Errorf("declare: unknown pattern kind %v", pat.Kind)
	}
}
