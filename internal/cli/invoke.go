package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/vecwrap/internal/broadcast"
	"github.com/roach88/vecwrap/internal/ir"
	"github.com/roach88/vecwrap/internal/mathlib"
	"github.com/roach88/vecwrap/internal/native"
	"github.com/roach88/vecwrap/internal/store"
	"github.com/roach88/vecwrap/internal/vector"
)

// InvokeOptions holds flags for the invoke command.
type InvokeOptions struct {
	*RootOptions
	Args     string
	Named    string
	Database string
	Session  string
}

// OutputValue is one result of an invoked routine.
type OutputValue struct {
	Name  string `json:"name"`
	Shape string `json:"shape"`
	Value any    `json:"value"`
}

// InvokeResult is the outcome of a successful call.
type InvokeResult struct {
	Routine string        `json:"routine"`
	Variant string        `json:"variant"`
	Outputs []OutputValue `json:"outputs"`
	CallID  string        `json:"call_id,omitempty"`
	Seq     int64         `json:"seq,omitempty"`
}

// NewInvokeCommand creates the invoke command.
func NewInvokeCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &InvokeOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "invoke <routine>",
		Short: "Call a routine variant from the built-in library",
		Long: `Call a routine or a suffixed variant with JSON arguments.

Nested JSON lists become arrays and broadcast over their leading axes.
With --db the call is journaled, including failures.

Examples:
  vecwrap invoke vnorm --args '[[[3,4,0],[0,0,1]]]'
  vecwrap invoke convrt --args '[1]' --named '{"in":"DEGREES","out":"RADIANS"}'
  vecwrap invoke bodn2c_flag --args '["EARTH"]' --db ./vecwrap.db`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInvoke(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Args, "args", "[]", "positional arguments as a JSON array")
	cmd.Flags().StringVar(&opts.Named, "named", "", "named arguments as a JSON object")
	cmd.Flags().StringVar(&opts.Database, "db", "", "journal the call into this SQLite database")
	cmd.Flags().StringVar(&opts.Session, "session", "", "journal session (default: a new UUIDv7)")

	return cmd
}

func runInvoke(opts *InvokeOptions, name string, cmd *cobra.Command) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	var positional []any
	if err := json.Unmarshal([]byte(opts.Args), &positional); err != nil {
		_ = formatter.Error(ErrCodeInvalidArgs, fmt.Sprintf("invalid --args JSON: %v", err), nil)
		return WrapExitError(ExitCommandError, "invalid --args JSON", err)
	}
	var named map[string]any
	if opts.Named != "" {
		if err := json.Unmarshal([]byte(opts.Named), &named); err != nil {
			_ = formatter.Error(ErrCodeInvalidArgs, fmt.Sprintf("invalid --named JSON: %v", err), nil)
			return WrapExitError(ExitCommandError, "invalid --named JSON", err)
		}
	}

	reg, err := opts.newRegistry()
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to build registry", err)
	}
	v, err := reg.Lookup(name)
	if err != nil {
		_ = formatter.Error(ErrCodeUnknownRoutine, err.Error(), nil)
		return WrapExitError(ExitCommandError, "lookup failed", err)
	}
	formatter.VerboseLog("Resolved %s to %s", name, v.Name())

	var journal *store.Journal
	if opts.Database != "" {
		st, err := store.Open(opts.Database)
		if err != nil {
			_ = formatter.Error(ErrCodeDatabase, err.Error(), nil)
			return WrapExitError(ExitCommandError, "failed to open database", err)
		}
		defer st.Close()
		journal, err = openJournal(ctx, st, opts.Session)
		if err != nil {
			_ = formatter.Error(ErrCodeDatabase, err.Error(), nil)
			return WrapExitError(ExitCommandError, "failed to start journal", err)
		}
	}

	var out []any
	bound, callErr := broadcast.Bind(v.Signature(), positional, named)
	if callErr == nil {
		out, callErr = v.Call(ctx, bound...)
	} else {
		bound = positional
	}

	result := InvokeResult{Routine: v.Base(), Variant: v.Name()}
	session := ""
	if journal != nil {
		call, err := journal.Record(ctx, store.Entry{
			Routine: v.Base(),
			Variant: v.Name(),
			Args:    bound,
			Results: out,
			Err:     callErr,
		})
		if err != nil {
			_ = formatter.Error(ErrCodeDatabase, err.Error(), nil)
			return WrapExitError(ExitCommandError, "failed to journal call", err)
		}
		result.CallID = call.ID
		result.Seq = call.Seq
		session = journal.Session()
		formatter.VerboseLog("Journaled call %s (session %s, seq %d)", call.ID, session, call.Seq)
	}

	if callErr != nil {
		return outputCallError(formatter, callErr, session)
	}

	outs := v.Signature().Outputs
	shapes := store.Shapes(out)
	for i, val := range out {
		name := fmt.Sprintf("out%d", i)
		if i < len(outs) {
			name = outs[i].Name
		}
		result.Outputs = append(result.Outputs, OutputValue{Name: name, Shape: shapes[i], Value: val})
	}

	if opts.Format == "json" {
		return formatter.Result(result, session)
	}

	w := formatter.Writer
	for _, o := range result.Outputs {
		data, err := json.Marshal(o.Value)
		if err != nil {
			return fmt.Errorf("encode %s: %w", o.Name, err)
		}
		fmt.Fprintf(w, "%s %s = %s\n", o.Name, o.Shape, data)
	}
	if session != "" {
		fmt.Fprintf(w, "journaled as seq %d in session %s\n", result.Seq, session)
	}
	return nil
}

// openJournal starts a journal session stamped with the built-in catalog's
// hash.
func openJournal(ctx context.Context, st *store.Store, session string) (*store.Journal, error) {
	cat, err := mathlib.Catalog()
	if err != nil {
		return nil, err
	}
	hash, err := ir.CatalogHash(cat)
	if err != nil {
		return nil, err
	}
	if session == "" {
		session = store.UUIDv7Sessions{}.Generate()
	}
	return store.NewJournal(ctx, st, session, hash)
}

// outputCallError reports a failed call. Native conditions are call
// failures (exit code 1); argument mistakes are command errors.
func outputCallError(formatter *OutputFormatter, err error, session string) error {
	var nerr *native.Error
	if errors.As(err, &nerr) {
		_ = formatter.Condition(nerr, session)
		return WrapExitError(ExitFailure, "call failed", err)
	}
	var aerr *vector.ArgError
	if errors.As(err, &aerr) {
		_ = formatter.Error(ErrCodeInvalidArgs, aerr.Error(), nil)
		return WrapExitError(ExitCommandError, "invalid arguments", err)
	}
	_ = formatter.Error(ErrCodeGeneric, err.Error(), nil)
	return WrapExitError(ExitFailure, "call failed", err)
}
