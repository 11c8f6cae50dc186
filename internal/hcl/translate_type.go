// This file contains the logic for parsing HCL type expressions (e.g. `u32`,
// `enum("fresh", "dried")`) into column types.

package hcl

import (
	"context"
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/vk/tabgrid/internal/ctxlog"
	"github.com/vk/tabgrid/internal/variant"
	"github.com/zclconf/go-cty/cty"
)

// typeExprToVariantType converts an HCL type expression into a column type.
// A missing expression means string. Enum variants take the column name as
// the enum name.
func typeExprToVariantType(ctx context.Context, expr hcl.Expression, column string) (variant.Type, error) {
	logger := ctxlog.FromContext(ctx)

	if !isExprDefined(expr) {
		logger.Debug("Type expression is missing, defaulting to string.", "column", column)
		return variant.Str, nil
	}

	switch v := expr.(type) {
	case *hclsyntax.FunctionCallExpr:
		logger.Debug("Parsing type expression as a function call.", "call", v.Name)
		switch v.Name {
		case "list":
			if len(v.Args) != 1 {
				return variant.Type{}, fmt.Errorf("the list() type constructor requires exactly one argument, got %d", len(v.Args))
			}
			elem, err := typeExprToVariantType(ctx, v.Args[0], column)
			if err != nil {
				return variant.Type{}, err
			}
			if elem.Kind != variant.KindStr {
				return variant.Type{}, fmt.Errorf("only list(string) is supported, got list(%s)", elem)
			}
			return variant.StrList, nil

		case "enum":
			if len(v.Args) == 0 {
				return variant.Type{}, fmt.Errorf("the enum() type constructor requires at least one variant")
			}
			def := &variant.EnumDef{Name: column}
			seen := make(map[string]bool, len(v.Args))
			for i, arg := range v.Args {
				val, diags := arg.Value(nil)
				if diags.HasErrors() {
					return variant.Type{}, fmt.Errorf("enum variant %d: %w", i, diags)
				}
				if val.IsNull() || !val.Type().Equals(cty.String) {
					return variant.Type{}, fmt.Errorf("enum variant %d must be a string literal", i)
				}
				name := val.AsString()
				if seen[name] {
					return variant.Type{}, fmt.Errorf("enum variant %q is declared twice", name)
				}
				seen[name] = true
				def.Variants = append(def.Variants, name)
			}
			logger.Debug("Parsed enum type.", "variants", len(def.Variants))
			return variant.EnumOf(def), nil

		default:
			return variant.Type{}, fmt.Errorf("unknown type constructor function %q", v.Name)
		}

	case *hclsyntax.ScopeTraversalExpr:
		if len(v.Traversal) != 1 {
			return variant.Type{}, fmt.Errorf("invalid type keyword: traversal path is not a single identifier")
		}
		rootName := v.Traversal.RootName()
		logger.Debug("Parsing type expression as a primitive.", "keyword", rootName)
		switch rootName {
		case "string", "str":
			return variant.Str, nil
		case "bool":
			return variant.Bool, nil
		case "u32":
			return variant.U32, nil
		case "u64":
			return variant.U64, nil
		default:
			return variant.Type{}, fmt.Errorf("unknown primitive type %q", rootName)
		}

	default:
		return variant.Type{}, fmt.Errorf("unsupported expression for type definition: %T", v)
	}
}

// isExprDefined reports whether an optional attribute was present in the
// source. gohcl fills omitted expression fields with zero-width
// placeholders, so a nil check is not enough.
func isExprDefined(expr hcl.Expression) bool {
	if expr == nil {
		return false
	}
	r := expr.Range()
	return r.End.Byte > r.Start.Byte
}
