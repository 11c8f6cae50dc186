package variant

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
	"github.com/zclconf/go-cty/cty/gocty"
)

// ErrUnconvertible is returned by Parse when text cannot be coerced to the
// requested type.
var ErrUnconvertible = errors.New("value cannot be converted")

// Parse coerces text into a value of type t. Surrounding whitespace is
// ignored. Blank text is an empty string for string columns and Empty for
// every other type.
func Parse(text string, t Type) (Value, error) {
	text = strings.TrimSpace(text)
	if t.Kind == KindStr || t.Kind == KindEmpty {
		return StrVal(text), nil
	}
	if text == "" {
		return EmptyVal(), nil
	}
	switch t.Kind {
	case KindBool:
		b, err := parseBool(text)
		if err != nil {
			return Value{}, err
		}
		return BoolVal(b), nil
	case KindU32:
		var n uint32
		if err := parseUint(text, &n); err != nil {
			return Value{}, err
		}
		return U32Val(n), nil
	case KindU64:
		var n uint64
		if err := parseUint(text, &n); err != nil {
			return Value{}, err
		}
		return U64Val(n), nil
	case KindEnum:
		return parseEnum(text, t.Enum)
	case KindStrList:
		parts := strings.Split(text, ",")
		items := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				items = append(items, p)
			}
		}
		return StrListVal(items), nil
	case KindNever:
		return Value{}, fmt.Errorf("%w: cells of type never hold no data", ErrUnconvertible)
	}
	return Value{}, fmt.Errorf("%w: unsupported type %s", ErrUnconvertible, t)
}

// FromText is the permissive form of Parse used by paste and import: when
// text does not fit t it is kept as a raw string and ok is false.
func FromText(text string, t Type) (v Value, ok bool) {
	v, err := Parse(text, t)
	if err != nil {
		return StrVal(strings.TrimSpace(text)), false
	}
	return v, true
}

// DefaultOf returns the value an editor starts from when a cell has no entry.
func DefaultOf(t Type) Value {
	switch t.Kind {
	case KindBool:
		return BoolVal(false)
	case KindStr:
		return StrVal("")
	case KindU32:
		return U32Val(0)
	case KindU64:
		return U64Val(0)
	case KindEnum:
		return EnumVal(t.Enum, 0)
	case KindStrList:
		return StrListVal(nil)
	case KindNever:
		return NeverVal()
	}
	return EmptyVal()
}

// FromCty converts a value decoded from configuration into type t.
func FromCty(val cty.Value, t Type) (Value, error) {
	if val.IsNull() {
		return EmptyVal(), nil
	}
	if !val.IsWhollyKnown() {
		return Value{}, fmt.Errorf("%w: value is not known", ErrUnconvertible)
	}
	if t.Kind == KindEnum && val.Type() == cty.String {
		return parseEnum(val.AsString(), t.Enum)
	}
	if t.Kind == KindStrList {
		list, err := convert.Convert(val, cty.List(cty.String))
		if err != nil {
			return Value{}, fmt.Errorf("%w: %s", ErrUnconvertible, err)
		}
		return Value{kind: KindStrList, val: list}, nil
	}
	if val.Type() == cty.String {
		return Parse(val.AsString(), t)
	}
	converted, err := convert.Convert(val, cty.String)
	if err != nil {
		return Value{}, fmt.Errorf("%w: %s", ErrUnconvertible, err)
	}
	return Parse(converted.AsString(), t)
}

func parseBool(text string) (bool, error) {
	switch strings.ToLower(text) {
	case "yes", "y", "on":
		return true, nil
	case "no", "n", "off":
		return false, nil
	}
	b, err := strconv.ParseBool(text)
	if err != nil {
		return false, fmt.Errorf("%w: %q is not a bool", ErrUnconvertible, text)
	}
	return b, nil
}

// parseUint converts text to a cty number and decodes it into target, which
// must be a pointer to an unsigned integer. gocty enforces whole numbers and
// the target's range.
func parseUint(text string, target any) error {
	num, err := convert.Convert(cty.StringVal(text), cty.Number)
	if err != nil {
		return fmt.Errorf("%w: %q is not a number", ErrUnconvertible, text)
	}
	if num.AsBigFloat().Sign() < 0 {
		return fmt.Errorf("%w: %q is negative", ErrUnconvertible, text)
	}
	if err := gocty.FromCtyValue(num, target); err != nil {
		return fmt.Errorf("%w: %q: %s", ErrUnconvertible, text, err)
	}
	return nil
}

func parseEnum(text string, def *EnumDef) (Value, error) {
	if def == nil {
		return Value{}, fmt.Errorf("%w: enum type has no definition", ErrUnconvertible)
	}
	if d, ok := def.Lookup(text); ok {
		return EnumVal(def, d), nil
	}
	if d, err := strconv.ParseUint(strings.TrimPrefix(text, "#"), 10, 32); err == nil && int(d) < len(def.Variants) {
		return EnumVal(def, uint32(d)), nil
	}
	return Value{}, fmt.Errorf("%w: %q is not a variant of %s", ErrUnconvertible, text, def.Name)
}
