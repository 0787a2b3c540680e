package compiler

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/roach88/vecwrap/internal/ir"
)

// scalarTypes maps non-numeric type names to their argument kind. Body and
// frame identifiers are passed through the native boundary as plain ints or
// strings.
var scalarTypes = map[string]ir.ArgKind{
	"int":        ir.KindInt,
	"body_code":  ir.KindInt,
	"frame_code": ir.KindInt,
	"bool":       ir.KindBool,
	"string":     ir.KindText,
	"body_name":  ir.KindText,
	"frame_name": ir.KindText,
}

// numericBases may carry an item shape in brackets.
var numericBases = map[string]bool{
	"float":  true,
	"time":   true,
	"rotmat": true,
	"state":  true,
}

// ParseArgType builds the argument descriptor for a declared type string.
//
//	int, bool, string        scalar non-numeric arguments
//	float, time              rank-0 numeric
//	float[3], rotmat[3,3]    fixed item shape
//	float[*]                 wildcard axis of any length
func ParseArgType(name, typ string) (ir.ArgDesc, error) {
	desc := ir.ArgDesc{Name: name, Type: typ}
	t := strings.TrimSpace(typ)
	if kind, ok := scalarTypes[t]; ok {
		desc.Kind = kind
		return desc, nil
	}

	base, dims, hasDims := strings.Cut(t, "[")
	base = strings.TrimSpace(base)
	if !numericBases[base] {
		return desc, fmt.Errorf("argument %s: unknown type %q", name, typ)
	}
	desc.Kind = ir.KindNumeric
	if !hasDims {
		return desc, nil
	}

	inner, ok := strings.CutSuffix(dims, "]")
	if !ok {
		return desc, fmt.Errorf("argument %s: unterminated shape in %q", name, typ)
	}
	for _, field := range strings.Split(inner, ",") {
		field = strings.TrimSpace(field)
		if field == "*" {
			desc.ItemShape = append(desc.ItemShape, 0)
			continue
		}
		n, err := strconv.Atoi(field)
		if err != nil || n <= 0 {
			return desc, fmt.Errorf("argument %s: invalid dimension %q in %q", name, field, typ)
		}
		desc.ItemShape = append(desc.ItemShape, n)
	}
	return desc, nil
}
