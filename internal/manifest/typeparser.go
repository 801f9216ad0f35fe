package manifest

import (
	"fmt"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"

	"github.com/strut-dev/strut/internal/poet"
)

// Type expressions in the manifest use Go syntax with fully qualified named
// types, e.g. "*github.com/acme/app/config.Config" or
// "map[string][]github.com/acme/app/di.Plugin".

type typeExpr struct {
	Pointer *typeExpr  `parser:"  Star @@"`
	Slice   *typeExpr  `parser:"| Slice @@"`
	Map     *mapExpr   `parser:"| @@"`
	Named   *namedExpr `parser:"| @@"`
}

type mapExpr struct {
	Key   *typeExpr `parser:"Map LBracket @@ RBracket"`
	Value *typeExpr `parser:"@@"`
}

type namedExpr struct {
	Qualified string      `parser:"@Qual"`
	TypeArgs  []*typeExpr `parser:"(LBracket @@ (Comma @@)* RBracket)?"`
}

var typeLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Map", Pattern: `map\b`},
	{Name: "Qual", Pattern: `[a-zA-Z_][a-zA-Z0-9_\-./]*`},
	{Name: "Star", Pattern: `\*`},
	{Name: "Slice", Pattern: `\[\]`},
	{Name: "LBracket", Pattern: `\[`},
	{Name: "RBracket", Pattern: `\]`},
	{Name: "Comma", Pattern: `,`},
	{Name: "Whitespace", Pattern: `\s+`},
})

var typeParser = participle.MustBuild[typeExpr](
	participle.Lexer(typeLexer),
	participle.Elide("Whitespace"),
	participle.UseLookahead(2),
)

// ParseTypeName parses a manifest type expression into a poet.TypeName
func ParseTypeName(expr string) (*poet.TypeName, error) {
	parsed, err := typeParser.ParseString("", expr)
	if err != nil {
		return nil, fmt.Errorf("failed to parse type expression %q: %w", expr, err)
	}
	return buildTypeName(parsed)
}

func buildTypeName(expr *typeExpr) (*poet.TypeName, error) {
	switch {
	case expr.Pointer != nil:
		elem, err := buildTypeName(expr.Pointer)
		if err != nil {
			return nil, err
		}
		return poet.PointerTo(elem), nil
	case expr.Slice != nil:
		elem, err := buildTypeName(expr.Slice)
		if err != nil {
			return nil, err
		}
		return poet.SliceOf(elem), nil
	case expr.Map != nil:
		key, err := buildTypeName(expr.Map.Key)
		if err != nil {
			return nil, err
		}
		value, err := buildTypeName(expr.Map.Value)
		if err != nil {
			return nil, err
		}
		return poet.MapOf(key, value), nil
	case expr.Named != nil:
		name := splitQualified(expr.Named.Qualified)
		for _, arg := range expr.Named.TypeArgs {
			argName, err := buildTypeName(arg)
			if err != nil {
				return nil, err
			}
			name.TypeArgs = append(name.TypeArgs, argName)
		}
		return name, nil
	default:
		return nil, fmt.Errorf("empty type expression")
	}
}

// splitQualified separates a qualified name into import path and simple name.
// The simple name starts after the last dot that follows the last slash;
// names without a dot are builtins or local types.
func splitQualified(qualified string) *poet.TypeName {
	dot := strings.LastIndex(qualified, ".")
	if dot <= strings.LastIndex(qualified, "/") || dot < 0 {
		return poet.Local(qualified)
	}
	return poet.Named(qualified[:dot], qualified[dot+1:])
}
