package regen

import (
	"cmp"
	"fmt"

	"github.com/google/uuid"

	"github.com/regenlang/regen/declare"
	"github.com/regenlang/regen/dfa"
	"github.com/regenlang/regen/literal"
	"github.com/regenlang/regen/match"
	"github.com/regenlang/regen/nfa"
	"github.com/regenlang/regen/pattern"
	"github.com/regenlang/regen/token"
)

// Compile parses, resolves, and lowers every variant's pattern into one
// Automaton over alphabet T. typeDeclare holds type-level declare(...) names
// shared by every variant, resolved in list order so later declarations may
// reference earlier ones (nil or empty is fine); newBuilder dispatches a
// fresh field builder for each collect site as the matcher walks into it.
func Compile[T cmp.Ordered, V any](
	alpha token.Literal[T],
	typeDeclare []Declaration,
	variants []VariantPattern[T, V],
	newBuilder match.NewBuilderFunc[T],
	cfg Config,
) (*Automaton[T, V], error) {
	auto, _, err := compile(alpha, typeDeclare, variants, newBuilder, cfg)
	return auto, err
}

// CompileBytes is Compile specialized to the byte alphabet, additionally
// building a literal.PrefixHint from every variant's mandatory literal
// prefix when one can be built (see literal.NewPrefixHint). Use this over
// Compile whenever T is byte and a prefilter is wanted.
func CompileBytes[V any](
	typeDeclare []Declaration,
	variants []VariantPattern[byte, V],
	newBuilder match.NewBuilderFunc[byte],
	cfg Config,
) (*Automaton[byte, V], error) {
	auto, resolved, err := compile[byte, V](token.Byte{}, typeDeclare, variants, newBuilder, cfg)
	if err != nil {
		return nil, err
	}

	prefixes := make([][]byte, len(resolved))
	for i, r := range resolved {
		prefixes[i] = literal.MandatoryPrefix(r)
	}
	if hint, ok := literal.NewPrefixHint(prefixes); ok {
		auto.prefix = hint
	}
	return auto, nil
}

// compile does the shared parse/resolve/lower/determinize work and also
// hands back each variant's resolved pattern, which CompileBytes needs for
// prefix extraction but Compile's public signature has no use for.
func compile[T cmp.Ordered, V any](
	alpha token.Literal[T],
	typeDeclare []Declaration,
	variants []VariantPattern[T, V],
	newBuilder match.NewBuilderFunc[T],
	cfg Config,
) (*Automaton[T, V], []declare.Resolved[T], error) {
	typeEnv := declare.NewEnv[T]()
	for _, d := range typeDeclare {
		pat, err := pattern.Parse[T](d.Source, alpha)
		if err != nil {
			return nil, nil, fmt.Errorf("regen: declare %q: %w", d.Name, err)
		}
		if err := typeEnv.Declare(d.Name, pat); err != nil {
			return nil, nil, fmt.Errorf("regen: declare %q: %w", d.Name, err)
		}
	}

	builder := nfa.NewBuilder[T](alpha)
	variantFuncs := make([]match.VariantFunc[V], len(variants))
	resolved := make([]declare.Resolved[T], len(variants))

	for assoc, v := range variants {
		env := typeEnv
		if len(v.Declare) > 0 {
			env = typeEnv.Child()
			for _, d := range v.Declare {
				pat, err := pattern.Parse[T](d.Source, alpha)
				if err != nil {
					return nil, nil, fmt.Errorf("regen: variant %d declare %q: %w", assoc, d.Name, err)
				}
				if err := env.Declare(d.Name, pat); err != nil {
					return nil, nil, fmt.Errorf("regen: variant %d declare %q: %w", assoc, d.Name, err)
				}
			}
		}

		pat, err := pattern.Parse[T](v.Source, alpha)
		if err != nil {
			return nil, nil, fmt.Errorf("regen: variant %d pattern: %w", assoc, err)
		}
		r, err := declare.Resolve(env, pat)
		if err != nil {
			return nil, nil, fmt.Errorf("regen: variant %d: %w", assoc, err)
		}

		builder.Add(assoc, r)
		variantFuncs[assoc] = v.Build
		resolved[assoc] = r
	}

	graph, err := dfa.FromNFA(builder.Build(), cfg.AllowConflict)
	if err != nil {
		return nil, nil, err
	}

	return &Automaton[T, V]{
		id:         uuid.New(),
		graph:      graph,
		newBuilder: newBuilder,
		variants:   variantFuncs,
	}, resolved, nil
}
