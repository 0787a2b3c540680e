package compiler

import (
	"fmt"
	"slices"
	"strings"

	"github.com/roach88/vecwrap/internal/ir"
)

// MacroError reports a malformed vectorization macro name.
type MacroError struct {
	Macro   string
	Message string
}

func (e *MacroError) Error() string {
	return fmt.Sprintf("macro %s: %s", e.Macro, e.Message)
}

// paramLetters are the output letters bound as parameters when an entry
// point is instantiated.
const paramLetters = "IJKLMN"

// ParseMacro expands a macro name such as "VECTORIZE_dX_2d__RETURN_d" into
// its input and output arguments.
//
// Grammar:
//
//	macro := "VECTORIZE_" list "__" ["RETURN_"] list
//	list  := part ("_" part)*
//	part  := [2-9]? token
//
// Input tokens are "s", "i", "b" or "d"/"e" followed by letters; output
// tokens are "i", "b" or "d" followed by letters. Letters are all uppercase
// (fixed axes) or all lowercase (variable axes shared by letter). The token
// length is the rank including the leading vector axis.
func ParseMacro(name string) (*ir.MacroSig, error) {
	fail := func(format string, args ...any) (*ir.MacroSig, error) {
		return nil, &MacroError{Macro: name, Message: fmt.Sprintf(format, args...)}
	}

	if !strings.HasPrefix(name, ir.MacroPrefix) {
		return fail("name must start with %q", ir.MacroPrefix)
	}
	halves := strings.Split(name[len(ir.MacroPrefix):], "__")
	if len(halves) != 2 {
		return fail("exactly one \"__\" must separate inputs from outputs")
	}

	sig := &ir.MacroSig{Name: name}
	outStr := halves[1]
	if rest, ok := strings.CutPrefix(outStr, "RETURN_"); ok {
		sig.Return = true
		outStr = rest
	}

	inKeys, err := expandParts(halves[0])
	if err != nil {
		return fail("inputs: %v", err)
	}
	outKeys, err := expandParts(outStr)
	if err != nil {
		return fail("outputs: %v", err)
	}

	// Counters are per (class, rank) so "d" and "e" tokens of equal rank
	// never produce the same name.
	counter := map[string]int{}
	next := func(class string, rank int) int {
		k := fmt.Sprintf("%s%d", class, rank)
		counter[k]++
		return counter[k]
	}
	ijk := map[byte]string{}

	for _, key := range inKeys {
		arg := ir.MacroArg{Key: key}
		switch {
		case key == "s":
			arg.Name = fmt.Sprintf("str%d", next("s", 0))
		case key == "i":
			arg.Name = fmt.Sprintf("k%d", next("i", 0))
		case key == "b":
			arg.Name = fmt.Sprintf("b%d", next("b", 0))
		case key[0] == 'd' || key[0] == 'e':
			letters := key[1:]
			variable, err := letterCase(letters)
			if err != nil {
				return fail("input %q: %v", key, err)
			}
			arg.Rank = len(key)
			arg.Name = fmt.Sprintf("in%d%d", arg.Rank, next("num", arg.Rank))
			arg.Variable = variable
			arg.Mutable = key[0] == 'e'
			arg.DimNames = dimNames(arg.Name, arg.Rank)
			if variable {
				for i := 0; i < len(letters); i++ {
					ijk[letters[i]] = arg.DimNames[i+1]
				}
			}
		default:
			return fail("unrecognized input token %q", key)
		}
		sig.Inputs = append(sig.Inputs, arg)
	}

	for _, key := range outKeys {
		arg := ir.MacroArg{Key: key}
		switch {
		case key == "i":
			arg.Name = fmt.Sprintf("int%d", next("int", 1))
			arg.Rank = 1
		case key == "b":
			arg.Name = fmt.Sprintf("bool%d", next("bool", 1))
			arg.Rank = 1
		case key[0] == 'd':
			letters := key[1:]
			variable, err := letterCase(letters)
			if err != nil {
				return fail("output %q: %v", key, err)
			}
			arg.Rank = len(key)
			arg.Name = fmt.Sprintf("out%d%d", arg.Rank, next("out", arg.Rank))
			arg.Variable = variable
		default:
			return fail("unrecognized output token %q", key)
		}
		arg.DimNames = dimNames(arg.Name, arg.Rank)
		arg.DimValues = []string{"maxdim"}
		for i := 1; i < len(key); i++ {
			c := key[i]
			switch {
			case arg.Variable:
				src, ok := ijk[c]
				if !ok {
					return fail("output %q: letter %q is not defined by any input", key, string(c))
				}
				arg.DimValues = append(arg.DimValues, src)
			case strings.IndexByte(paramLetters, c) >= 0:
				arg.DimValues = append(arg.DimValues, string(c))
				sig.Params = append(sig.Params, string(c))
			default:
				return fail("output %q: fixed letter %q must be one of %s", key, string(c), paramLetters)
			}
		}
		sig.Outputs = append(sig.Outputs, arg)
	}

	if !slices.IsSorted(sig.Params) {
		return fail("output letters %v are not sorted", sig.Params)
	}
	sig.Params = slices.Compact(sig.Params)

	if len(sig.Sizers()) == 0 {
		return fail("at least one floating-point input is required")
	}
	if len(sig.Outputs) == 0 {
		return fail("at least one output is required")
	}
	if sig.Return {
		if len(sig.Outputs) != 1 || sig.Outputs[0].Rank != 1 {
			return fail("RETURN requires exactly one rank-1 output")
		}
	}
	return sig, nil
}

// expandParts splits a token list and applies repeat counts.
func expandParts(s string) ([]string, error) {
	if s == "" {
		return nil, fmt.Errorf("empty argument list")
	}
	var keys []string
	for _, part := range strings.Split(s, "_") {
		if part == "" {
			return nil, fmt.Errorf("empty token in %q", s)
		}
		count := 1
		if part[0] >= '2' && part[0] <= '9' {
			count = int(part[0] - '0')
			part = part[1:]
			if part == "" {
				return nil, fmt.Errorf("repeat count without token in %q", s)
			}
		}
		for i := 0; i < count; i++ {
			keys = append(keys, part)
		}
	}
	return keys, nil
}

// letterCase reports whether letters name variable (lowercase) axes.
func letterCase(letters string) (bool, error) {
	if letters == "" {
		return false, nil
	}
	lower, upper := 0, 0
	for i := 0; i < len(letters); i++ {
		c := letters[i]
		switch {
		case c >= 'a' && c <= 'z':
			lower++
		case c >= 'A' && c <= 'Z':
			upper++
		default:
			return false, fmt.Errorf("unexpected character %q", string(c))
		}
	}
	if lower > 0 && upper > 0 {
		return false, fmt.Errorf("mixed case letters %q", letters)
	}
	return lower > 0, nil
}

func dimNames(name string, rank int) []string {
	out := make([]string, rank)
	for i := range out {
		out[i] = fmt.Sprintf("%sDim%d", name, i+1)
	}
	return out
}
