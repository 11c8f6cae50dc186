package variant

import (
	"strconv"
	"strings"

	"github.com/zclconf/go-cty/cty"
)

// Value is an immutable typed cell value. The zero Value is Empty.
type Value struct {
	kind Kind
	enum *EnumDef
	val  cty.Value
}

func EmptyVal() Value { return Value{} }

func NeverVal() Value { return Value{kind: KindNever} }

func BoolVal(b bool) Value { return Value{kind: KindBool, val: cty.BoolVal(b)} }

func StrVal(s string) Value { return Value{kind: KindStr, val: cty.StringVal(s)} }

func U32Val(n uint32) Value { return Value{kind: KindU32, val: cty.NumberUIntVal(uint64(n))} }

func U64Val(n uint64) Value { return Value{kind: KindU64, val: cty.NumberUIntVal(n)} }

// EnumVal returns discriminant d of def. The discriminant is not checked
// against def so that values loaded from newer data survive a round trip.
func EnumVal(def *EnumDef, d uint32) Value {
	return Value{kind: KindEnum, enum: def, val: cty.NumberUIntVal(uint64(d))}
}

func StrListVal(items []string) Value {
	if len(items) == 0 {
		return Value{kind: KindStrList, val: cty.ListValEmpty(cty.String)}
	}
	vals := make([]cty.Value, len(items))
	for i, s := range items {
		vals[i] = cty.StringVal(s)
	}
	return Value{kind: KindStrList, val: cty.ListVal(vals)}
}

func (v Value) Kind() Kind { return v.kind }

func (v Value) Type() Type { return Type{Kind: v.kind, Enum: v.enum} }

func (v Value) IsEmpty() bool { return v.kind == KindEmpty }

func (v Value) IsNever() bool { return v.kind == KindNever }

// Cty returns the backing cty value. Empty and Never are null.
func (v Value) Cty() cty.Value {
	if v.kind == KindEmpty || v.kind == KindNever {
		return cty.NullVal(cty.DynamicPseudoType)
	}
	return v.val
}

// AsBool returns the boolean payload, false for other kinds.
func (v Value) AsBool() bool {
	return v.kind == KindBool && v.val.True()
}

// AsString returns the string payload of a Str value. Other kinds are
// stringified.
func (v Value) AsString() string {
	if v.kind == KindStr {
		return v.val.AsString()
	}
	return v.String()
}

// AsUint returns the numeric payload of U32, U64 and Enum values.
func (v Value) AsUint() (uint64, bool) {
	switch v.kind {
	case KindU32, KindU64, KindEnum:
		n, _ := v.val.AsBigFloat().Uint64()
		return n, true
	}
	return 0, false
}

// AsStrList returns the items of a StrList value.
func (v Value) AsStrList() []string {
	if v.kind != KindStrList || v.val.LengthInt() == 0 {
		return nil
	}
	out := make([]string, 0, v.val.LengthInt())
	for _, item := range v.val.AsValueSlice() {
		out = append(out, item.AsString())
	}
	return out
}

// String renders the value the way it is shown in a cell and copied to the
// clipboard.
func (v Value) String() string {
	switch v.kind {
	case KindBool:
		return strconv.FormatBool(v.val.True())
	case KindStr:
		return v.val.AsString()
	case KindU32, KindU64:
		return v.val.AsBigFloat().Text('f', 0)
	case KindEnum:
		d, _ := v.AsUint()
		if v.enum != nil {
			if name, ok := v.enum.VariantName(uint32(d)); ok {
				return name
			}
		}
		return "#" + strconv.FormatUint(d, 10)
	case KindStrList:
		return strings.Join(v.AsStrList(), ", ")
	default:
		return ""
	}
}

// Equals compares kind and payload.
func (v Value) Equals(o Value) bool {
	if v.kind != o.kind {
		return false
	}
	switch v.kind {
	case KindEmpty, KindNever:
		return true
	case KindEnum:
		if v.enum != o.enum {
			return false
		}
	}
	return v.val.RawEquals(o.val)
}
