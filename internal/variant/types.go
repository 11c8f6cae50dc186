package variant

import (
	"fmt"
	"strings"

	"github.com/zclconf/go-cty/cty"
)

// Kind is the discriminant of a Value.
type Kind uint8

const (
	KindEmpty Kind = iota
	KindBool
	KindStr
	KindU32
	KindU64
	KindEnum
	KindStrList
	KindNever
)

var kindNames = map[Kind]string{
	KindEmpty:   "empty",
	KindBool:    "bool",
	KindStr:     "str",
	KindU32:     "u32",
	KindU64:     "u64",
	KindEnum:    "enum",
	KindStrList: "list(str)",
	KindNever:   "never",
}

func (k Kind) String() string {
	if n, ok := kindNames[k]; ok {
		return n
	}
	return fmt.Sprintf("kind(%d)", uint8(k))
}

// EnumDef names the variants of an enumerated type. The discriminant of a
// variant is its index in Variants.
type EnumDef struct {
	Name     string
	Variants []string
}

// Lookup finds a variant by name, case-insensitively.
func (e *EnumDef) Lookup(name string) (uint32, bool) {
	for i, v := range e.Variants {
		if strings.EqualFold(v, name) {
			return uint32(i), true
		}
	}
	return 0, false
}

// VariantName returns the name of discriminant d.
func (e *EnumDef) VariantName(d uint32) (string, bool) {
	if int(d) >= len(e.Variants) {
		return "", false
	}
	return e.Variants[d], true
}

// Type is the declared type of a column. Enum is only set for KindEnum.
type Type struct {
	Kind Kind
	Enum *EnumDef
}

var (
	Empty   = Type{Kind: KindEmpty}
	Bool    = Type{Kind: KindBool}
	Str     = Type{Kind: KindStr}
	U32     = Type{Kind: KindU32}
	U64     = Type{Kind: KindU64}
	StrList = Type{Kind: KindStrList}
	Never   = Type{Kind: KindNever}
)

// EnumOf returns the type of values of enum def.
func EnumOf(def *EnumDef) Type {
	return Type{Kind: KindEnum, Enum: def}
}

func (t Type) String() string {
	if t.Kind == KindEnum && t.Enum != nil {
		return "enum(" + t.Enum.Name + ")"
	}
	return t.Kind.String()
}

// CtyType is the cty type backing values of t.
func (t Type) CtyType() cty.Type {
	switch t.Kind {
	case KindBool:
		return cty.Bool
	case KindStr:
		return cty.String
	case KindU32, KindU64, KindEnum:
		return cty.Number
	case KindStrList:
		return cty.List(cty.String)
	default:
		return cty.DynamicPseudoType
	}
}

// ParseTypeName parses the short type names used on the command line and in
// error messages. Enum types can only be declared in table definition files.
func ParseTypeName(name string) (Type, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "bool":
		return Bool, nil
	case "str", "string":
		return Str, nil
	case "u32":
		return U32, nil
	case "u64":
		return U64, nil
	case "list(str)", "list(string)", "strlist":
		return StrList, nil
	default:
		return Type{}, fmt.Errorf("unknown type name %q", name)
	}
}
