// Package codegen emits the Go source of vectorized entry points. Each macro
// family gets a loop function holding the broadcast-free iteration and a
// factory that binds a native routine and its params into a vector.Func.
package codegen

import (
	"bytes"
	"fmt"
	"go/format"
	"sort"
	"strings"

	"github.com/roach88/vecwrap/internal/compiler"
	"github.com/roach88/vecwrap/internal/ir"
)

// Generator renders one Go file for a catalog.
type Generator struct {
	// Package is the package clause of the emitted file.
	Package string
}

// New returns a generator for the named package.
func New(pkg string) *Generator {
	return &Generator{Package: pkg}
}

// Families parses the distinct macros of a catalog, sorted by name.
func Families(cat *ir.Catalog) ([]*ir.MacroSig, error) {
	names := cat.Macros()
	sort.Strings(names)
	sigs := make([]*ir.MacroSig, 0, len(names))
	for _, name := range names {
		sig, err := compiler.ParseMacro(name)
		if err != nil {
			return nil, err
		}
		sigs = append(sigs, sig)
	}
	return sigs, nil
}

// Generate returns the formatted source for every vectorized routine in cat.
// The catalog must validate; the first validation error is returned.
func (g *Generator) Generate(cat *ir.Catalog) ([]byte, error) {
	if errs := compiler.Validate(cat); len(errs) > 0 {
		return nil, errs[0]
	}
	sigs, err := Families(cat)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, "// Code generated by vecwrap generate; DO NOT EDIT.\n\n")
	fmt.Fprintf(&buf, "package %s\n\n", g.Package)
	fmt.Fprintf(&buf, "import (\n")
	fmt.Fprintf(&buf, "\t\"github.com/roach88/vecwrap/internal/native\"\n")
	fmt.Fprintf(&buf, "\t\"github.com/roach88/vecwrap/internal/vector\"\n")
	fmt.Fprintf(&buf, ")\n\n")

	fmt.Fprintf(&buf, "// registerVectorized passes every generated vector entry point to add.\n")
	fmt.Fprintf(&buf, "func registerVectorized(add func(name string, fn vector.Func)) {\n")
	for _, r := range cat.Routines {
		if !r.Vectorized() {
			continue
		}
		sig, err := compiler.ParseMacro(r.Vectorize)
		if err != nil {
			return nil, err
		}
		args := []string{fmt.Sprintf("%q", r.Name), r.Name}
		for _, p := range r.Params {
			args = append(args, fmt.Sprint(p))
		}
		fmt.Fprintf(&buf, "\tadd(%q, vectorize_%s(%s))\n", r.Name, sig.Family(), strings.Join(args, ", "))
	}
	fmt.Fprintf(&buf, "}\n")

	for _, sig := range sigs {
		buf.WriteString("\n")
		writeFactory(&buf, sig)
		buf.WriteString("\n")
		writeLoop(&buf, sig)
	}

	src, err := format.Source(buf.Bytes())
	if err != nil {
		return nil, fmt.Errorf("format generated source: %w", err)
	}
	return src, nil
}

// fnType is the Go type of the native function a family wraps.
func fnType(sig *ir.MacroSig) string {
	var params []string
	for _, in := range sig.Inputs {
		switch {
		case in.Key == "s":
			params = append(params, in.Name+" string")
		case in.Key == "i":
			params = append(params, in.Name+" int64")
		case in.Key == "b":
			params = append(params, in.Name+" bool")
		case in.Rank == 1:
			params = append(params, in.Name+" float64")
		default:
			params = append(params, in.Name+" []float64")
			params = append(params, variableDims(in, "int")...)
		}
	}
	ret := ""
	if sig.Return {
		ret = " " + elemType(sig.Outputs[0])
	} else {
		for _, out := range sig.Outputs {
			if out.Rank == 1 {
				params = append(params, out.Name+" *"+elemType(out))
				continue
			}
			params = append(params, out.Name+" []float64")
			params = append(params, variableDims(out, "int")...)
		}
	}
	return "func(" + strings.Join(params, ", ") + ")" + ret
}

func elemType(out ir.MacroArg) string {
	switch out.Key {
	case "i":
		return "int64"
	case "b":
		return "bool"
	}
	return "float64"
}

// variableDims lists the lowercase-letter axes of a token, with an
// optional type suffix.
func variableDims(arg ir.MacroArg, typ string) []string {
	if !arg.Variable {
		return nil
	}
	var dims []string
	for _, d := range arg.DimNames[1:] {
		if typ != "" {
			d += " " + typ
		}
		dims = append(dims, d)
	}
	return dims
}

func paramList(sig *ir.MacroSig) string {
	var out []string
	for _, p := range sig.Params {
		out = append(out, p+" int")
	}
	return strings.Join(out, ", ")
}

func writeFactory(buf *bytes.Buffer, sig *ir.MacroSig) {
	family := sig.Family()
	params := "name string, fn " + fnType(sig)
	if p := paramList(sig); p != "" {
		params += ", " + p
	}

	fmt.Fprintf(buf, "// vectorize_%s returns the vector entry point of a routine declared\n", family)
	fmt.Fprintf(buf, "// with %s.\n", sig.Name)
	fmt.Fprintf(buf, "func vectorize_%s(%s) vector.Func {\n", family, params)
	fmt.Fprintf(buf, "\treturn func(args []any) ([]any, error) {\n")
	fmt.Fprintf(buf, "\t\tentry := name + \"_vector\"\n")
	fmt.Fprintf(buf, "\t\tin, err := vector.NewInputs(entry, args, %d)\n", len(sig.Inputs))
	writeErrCheck(buf)

	callArgs := []string{"name", "fn"}
	callArgs = append(callArgs, sig.Params...)
	callArgs = append(callArgs, "arena")

	for k, in := range sig.Inputs {
		switch {
		case in.Key == "s":
			fmt.Fprintf(buf, "\t\t%s, err := in.String(%d)\n", in.Name, k)
			callArgs = append(callArgs, in.Name)
		case in.Key == "i":
			fmt.Fprintf(buf, "\t\t%s, err := in.Int(%d)\n", in.Name, k)
			callArgs = append(callArgs, in.Name)
		case in.Key == "b":
			fmt.Fprintf(buf, "\t\t%s, err := in.Bool(%d)\n", in.Name, k)
			callArgs = append(callArgs, in.Name)
		default:
			fmt.Fprintf(buf, "\t\t%s, %sDims, err := in.Float(%d, %d)\n", in.Name, in.Name, k, in.Rank)
			callArgs = append(callArgs, in.Name)
			for d := 0; d < in.Rank; d++ {
				callArgs = append(callArgs, fmt.Sprintf("%sDims[%d]", in.Name, d))
			}
		}
		writeErrCheck(buf)
		if in.Mutable {
			fmt.Fprintf(buf, "\t\t%s = vector.Clone(%s)\n", in.Name, in.Name)
		}
	}

	fmt.Fprintf(buf, "\t\tarena := vector.NewArena()\n")
	fmt.Fprintf(buf, "\t\tdefer arena.Release()\n")
	var results []string
	for _, out := range sig.Outputs {
		fmt.Fprintf(buf, "\t\tvar %s []%s\n", out.Name, elemType(out))
		fmt.Fprintf(buf, "\t\tvar %s int\n", strings.Join(out.DimNames, ", "))
		callArgs = append(callArgs, "&"+out.Name)
		for _, d := range out.DimNames {
			callArgs = append(callArgs, "&"+d)
		}
		switch out.Key {
		case "i":
			results = append(results, fmt.Sprintf("vector.IntResult(%s, %s)", out.Name, out.DimNames[0]))
		case "b":
			results = append(results, fmt.Sprintf("vector.BoolResult(%s, %s)", out.Name, out.DimNames[0]))
		default:
			results = append(results, fmt.Sprintf("vector.FloatResult(%s, %s)", out.Name, strings.Join(out.DimNames, ", ")))
		}
	}
	fmt.Fprintf(buf, "\t\tloop_%s(%s)\n", family, strings.Join(callArgs, ", "))
	fmt.Fprintf(buf, "\t\tif native.Failed() {\n")
	fmt.Fprintf(buf, "\t\t\treturn nil, native.ErrFailed\n")
	fmt.Fprintf(buf, "\t\t}\n")
	fmt.Fprintf(buf, "\t\treturn []any{%s}, nil\n", strings.Join(results, ", "))
	fmt.Fprintf(buf, "\t}\n")
	fmt.Fprintf(buf, "}\n")
}

func writeErrCheck(buf *bytes.Buffer) {
	fmt.Fprintf(buf, "\t\tif err != nil {\n")
	fmt.Fprintf(buf, "\t\t\treturn nil, err\n")
	fmt.Fprintf(buf, "\t\t}\n")
}

func writeLoop(buf *bytes.Buffer, sig *ir.MacroSig) {
	family := sig.Family()
	params := []string{"name string", "fn " + fnType(sig)}
	for _, p := range sig.Params {
		params = append(params, p+" int")
	}
	params = append(params, "arena *vector.Arena")
	for _, in := range sig.Inputs {
		switch {
		case in.Key == "s":
			params = append(params, in.Name+" string")
		case in.Key == "i":
			params = append(params, in.Name+" int64")
		case in.Key == "b":
			params = append(params, in.Name+" bool")
		default:
			params = append(params, in.Name+" []float64")
			for _, d := range in.DimNames {
				params = append(params, d+" int")
			}
		}
	}
	for _, out := range sig.Outputs {
		params = append(params, out.Name+" *[]"+elemType(out))
		for _, d := range out.DimNames {
			params = append(params, d+" *int")
		}
	}

	sizers := sig.Sizers()
	multi := len(sizers) > 1

	fmt.Fprintf(buf, "func loop_%s(%s) {\n", family, strings.Join(params, ", "))
	fmt.Fprintf(buf, "\tmaxdim := %s\n", sizers[0].DimNames[0])
	for _, s := range sizers[1:] {
		fmt.Fprintf(buf, "\tif %s > maxdim {\n", s.DimNames[0])
		fmt.Fprintf(buf, "\t\tmaxdim = %s\n", s.DimNames[0])
		fmt.Fprintf(buf, "\t}\n")
	}
	fmt.Fprintf(buf, "\tsize := maxdim\n")
	fmt.Fprintf(buf, "\tif size == 0 {\n")
	fmt.Fprintf(buf, "\t\tsize = 1\n")
	fmt.Fprintf(buf, "\t}\n")
	if multi {
		for _, s := range sizers {
			fmt.Fprintf(buf, "\tif %s == 0 {\n", s.DimNames[0])
			fmt.Fprintf(buf, "\t\t%s = 1\n", s.DimNames[0])
			fmt.Fprintf(buf, "\t}\n")
		}
	}
	for _, s := range sizers {
		if s.Rank > 1 {
			fmt.Fprintf(buf, "\t%sSize := %s\n", s.Name, strings.Join(s.DimNames[1:], " * "))
		}
	}

	for _, out := range sig.Outputs {
		for j, d := range out.DimNames {
			fmt.Fprintf(buf, "\t*%s = %s\n", d, out.DimValues[j])
		}
	}
	for _, out := range sig.Outputs {
		alloc := "Float64"
		switch out.Key {
		case "i":
			alloc = "Int64"
		case "b":
			alloc = "Bool"
		}
		if out.Rank == 1 {
			fmt.Fprintf(buf, "\t%sBuf := arena.%s(size)\n", out.Name, alloc)
			continue
		}
		fmt.Fprintf(buf, "\t%sSize := %s\n", out.Name, strings.Join(out.DimValues[1:], " * "))
		fmt.Fprintf(buf, "\t%sLen := size * %sSize\n", out.Name, out.Name)
		fmt.Fprintf(buf, "\t%sBuf := arena.%s(%sLen)\n", out.Name, alloc, out.Name)
	}
	fmt.Fprintf(buf, "\tif arena.Failed() {\n")
	fmt.Fprintf(buf, "\t\tnative.HandleMallocFailure(name + \"_vector\")\n")
	fmt.Fprintf(buf, "\t\treturn\n")
	fmt.Fprintf(buf, "\t}\n")
	for _, out := range sig.Outputs {
		fmt.Fprintf(buf, "\t*%s = %sBuf\n", out.Name, out.Name)
	}

	fmt.Fprintf(buf, "\tfor i := 0; i < size; i++ {\n")
	var args []string
	for _, in := range sig.Inputs {
		switch {
		case in.Rank == 0:
			args = append(args, in.Name)
		case in.Rank == 1 && multi:
			fmt.Fprintf(buf, "\t\t%sOff := i %% %s\n", in.Name, in.DimNames[0])
			args = append(args, fmt.Sprintf("%s[%sOff]", in.Name, in.Name))
		case in.Rank == 1:
			args = append(args, in.Name+"[i]")
		default:
			if multi {
				fmt.Fprintf(buf, "\t\t%sOff := i %% %s\n", in.Name, in.DimNames[0])
				fmt.Fprintf(buf, "\t\t%sOff *= %sSize\n", in.Name, in.Name)
			} else {
				fmt.Fprintf(buf, "\t\t%sOff := i * %sSize\n", in.Name, in.Name)
			}
			fmt.Fprintf(buf, "\t\t%sEnd := %sOff + %sSize\n", in.Name, in.Name, in.Name)
			args = append(args, fmt.Sprintf("%s[%sOff:%sEnd]", in.Name, in.Name, in.Name))
			args = append(args, variableDims(in, "")...)
		}
	}
	if !sig.Return {
		for _, out := range sig.Outputs {
			if out.Rank == 1 {
				args = append(args, fmt.Sprintf("&%sBuf[i]", out.Name))
				continue
			}
			fmt.Fprintf(buf, "\t\t%sOff := i * %sSize\n", out.Name, out.Name)
			fmt.Fprintf(buf, "\t\t%sEnd := %sOff + %sSize\n", out.Name, out.Name, out.Name)
			args = append(args, fmt.Sprintf("%sBuf[%sOff:%sEnd]", out.Name, out.Name, out.Name))
			if out.Variable {
				args = append(args, out.DimValues[1:]...)
			}
		}
	}
	call := fmt.Sprintf("fn(%s)", strings.Join(args, ", "))
	if sig.Return {
		fmt.Fprintf(buf, "\t\t%sBuf[i] = %s\n", sig.Outputs[0].Name, call)
	} else {
		fmt.Fprintf(buf, "\t\t%s\n", call)
	}
	fmt.Fprintf(buf, "\t\tif native.Failed() {\n")
	fmt.Fprintf(buf, "\t\t\treturn\n")
	fmt.Fprintf(buf, "\t\t}\n")
	fmt.Fprintf(buf, "\t}\n")
	fmt.Fprintf(buf, "}\n")
}
