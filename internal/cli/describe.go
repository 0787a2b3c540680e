package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/vecwrap/internal/ir"
	"github.com/roach88/vecwrap/internal/registry"
)

// VariantInfo describes one distinct variant of a routine.
type VariantInfo struct {
	Name      string `json:"name"`
	Mode      string `json:"mode"`
	Form      string `json:"form"`
	Signature string `json:"signature"`
	Default   bool   `json:"default,omitempty"`
}

// DescribeResult is the variant row of a routine.
type DescribeResult struct {
	Routine   string        `json:"routine"`
	Abstract  string        `json:"abstract,omitempty"`
	Vectorize string        `json:"vectorize,omitempty"`
	Condition string        `json:"condition,omitempty"`
	Variants  []VariantInfo `json:"variants"`
}

// NewDescribeCommand creates the describe command.
func NewDescribeCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "describe <routine>",
		Short: "Show every variant of a routine with its signature",
		Long: `Show the distinct variants of a routine in the built-in library.

Vector forms take one leading axis ("float[_,3]"), array forms any number
of leading axes ("float[...,3]"). Error variants drop the flag output and
raise the routine's condition instead. The variant a bare routine name
resolves to is marked as the default.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDescribe(rootOpts, args[0], cmd)
		},
	}

	return cmd
}

func runDescribe(opts *RootOptions, name string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	reg, err := opts.newRegistry()
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to build registry", err)
	}

	result, err := Describe(reg, name)
	if err != nil {
		_ = formatter.Error(ErrCodeUnknownRoutine, err.Error(), nil)
		return WrapExitError(ExitCommandError, "describe failed", err)
	}

	if opts.Format == "json" {
		return formatter.Success(result)
	}

	w := formatter.Writer
	fmt.Fprintf(w, "%s", result.Routine)
	if result.Abstract != "" {
		fmt.Fprintf(w, " - %s", result.Abstract)
	}
	fmt.Fprintln(w)
	if result.Vectorize != "" {
		fmt.Fprintf(w, "  macro: %s\n", result.Vectorize)
	}
	if result.Condition != "" {
		fmt.Fprintf(w, "  raises: %s\n", result.Condition)
	}
	fmt.Fprintln(w)
	for _, v := range result.Variants {
		marker := " "
		if v.Default {
			marker = "*"
		}
		fmt.Fprintf(w, "%s %-22s %s\n", marker, v.Name, v.Signature)
	}
	return nil
}

// Describe collects the variant row of the routine a name resolves to.
// Suffixed names ("bodn2c_flag") describe their base routine.
func Describe(reg *registry.Registry, name string) (*DescribeResult, error) {
	v, err := reg.Lookup(name)
	if err != nil {
		if errors.Is(err, registry.ErrUnknownRoutine) {
			return nil, fmt.Errorf("unknown routine %q", name)
		}
		return nil, err
	}
	base := v.Base()

	def, err := reg.Default(base)
	if err != nil {
		return nil, err
	}
	versions, err := reg.Versions(base)
	if err != nil {
		return nil, err
	}

	result := &DescribeResult{Routine: base}
	if spec, ok := reg.Spec(base); ok {
		result.Abstract = spec.Abstract
		result.Vectorize = spec.Vectorize
		if spec.Error != nil {
			result.Condition = spec.Error.Condition
		}
	}
	defaultName := ""
	if dv, err := reg.Resolve(base, def); err == nil {
		defaultName = dv.Name()
	}
	for _, ver := range versions {
		k := ver.Kind()
		result.Variants = append(result.Variants, VariantInfo{
			Name:      ver.Name(),
			Mode:      k.Mode.String(),
			Form:      k.Form.String(),
			Signature: FormatSignature(ver.Name(), ver.Signature(), k.Form),
			Default:   ver.Name() == defaultName,
		})
	}
	return result, nil
}

// FormatSignature renders a variant signature, e.g.
// "vnorm_array(v1: float[...,3]) -> (vnorm: float[...])".
func FormatSignature(name string, sig *ir.Signature, form registry.Form) string {
	render := func(args []ir.ArgDesc) string {
		parts := make([]string, len(args))
		for i, a := range args {
			typ := a.Type
			switch form {
			case registry.Vector:
				typ = leadingType(a, "_")
			case registry.Array:
				typ = leadingType(a, "...")
			}
			parts[i] = a.Name + ": " + typ
		}
		return strings.Join(parts, ", ")
	}
	return fmt.Sprintf("%s(%s) -> (%s)", name, render(sig.Inputs), render(sig.Outputs))
}

// leadingType adds the leading axes a vectorized form gives an argument.
// Strings and ints are passed through once per call.
func leadingType(a ir.ArgDesc, leading string) string {
	switch {
	case a.IsNumeric():
		return a.VectorType(leading)
	case a.Kind == ir.KindBool:
		return a.Type + "[" + leading + "]"
	}
	return a.Type
}
