package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/vecwrap/internal/store"
)

// TraceOptions holds flags for the trace command.
type TraceOptions struct {
	*RootOptions
	Database string
	Session  string
	Routine  string // optional - filter to one routine
}

// TraceEvent is one journaled call in a session timeline.
type TraceEvent struct {
	Seq          int64    `json:"seq"`
	ID           string   `json:"id"`
	Routine      string   `json:"routine"`
	Variant      string   `json:"variant"`
	Status       string   `json:"status"`
	InputShapes  []string `json:"input_shapes"`
	OutputShapes []string `json:"output_shapes"`
	Short        string   `json:"short,omitempty"`
	Long         string   `json:"long,omitempty"`
	Traceback    string   `json:"traceback,omitempty"`
	Args         []any    `json:"args,omitempty"`
	Results      []any    `json:"results,omitempty"`
}

// TraceResult holds the timeline of one session.
type TraceResult struct {
	Session  string       `json:"session"`
	Timeline []TraceEvent `json:"timeline"`
	Stats    TraceStats   `json:"stats"`
}

// TraceStats holds summary statistics for the trace.
type TraceStats struct {
	Calls     int `json:"calls"`
	OK        int `json:"ok"`
	Failed    int `json:"failed"`
	ArgErrors int `json:"arg_errors"`
}

// NewTraceCommand creates the trace command.
func NewTraceCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &TraceOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "trace",
		Short: "List journaled calls",
		Long: `List the calls journaled by invoke --db.

Without --session, lists every session with its call counts. With
--session, shows the session's calls in sequence order: the variant
called, argument and result shapes, and for failures the condition and
traceback. With --verbose the decoded arguments and results are shown.

Examples:
  vecwrap trace --db ./vecwrap.db
  vecwrap trace --db ./vecwrap.db --session 01928c1e-...
  vecwrap trace --db ./vecwrap.db --session 01928c1e-... --routine invert --format json`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTrace(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "path to SQLite database (required)")
	_ = cmd.MarkFlagRequired("db")
	cmd.Flags().StringVar(&opts.Session, "session", "", "session to show (default: list sessions)")
	cmd.Flags().StringVar(&opts.Routine, "routine", "", "filter to one routine")

	return cmd
}

func runTrace(opts *TraceOptions, cmd *cobra.Command) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	// Opening creates a missing file; a trace of nothing is a mistake.
	if _, err := os.Stat(opts.Database); err != nil {
		return WrapExitError(ExitCommandError, "database not found", err)
	}
	st, err := store.Open(opts.Database)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to open database", err)
	}
	defer st.Close()

	if opts.Session == "" {
		return listSessions(ctx, st, opts, cmd)
	}

	calls, err := st.ReadCalls(ctx, opts.Session)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to read calls", err)
	}

	result, err := buildTrace(opts.Session, calls, opts.Routine, opts.Verbose)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to decode payload", err)
	}

	if opts.Format == "json" {
		return outputTraceJSON(cmd, result)
	}
	if len(calls) == 0 {
		fmt.Fprintf(cmd.OutOrStdout(), "No calls found for session: %s\n", opts.Session)
		return nil
	}
	return outputTraceText(cmd.OutOrStdout(), result)
}

// buildTrace converts journaled calls into a timeline. Payloads are only
// decoded when withPayload is set.
func buildTrace(session string, calls []store.Call, routine string, withPayload bool) (TraceResult, error) {
	result := TraceResult{Session: session, Timeline: []TraceEvent{}}
	for _, c := range calls {
		if routine != "" && c.Routine != routine {
			continue
		}
		ev := TraceEvent{
			Seq:          c.Seq,
			ID:           c.ID,
			Routine:      c.Routine,
			Variant:      c.Variant,
			Status:       c.Status,
			InputShapes:  c.InputShapes,
			OutputShapes: c.OutputShapes,
			Short:        c.ShortMsg,
			Long:         c.LongMsg,
			Traceback:    c.Traceback,
		}
		if withPayload {
			p, err := store.DecodePayload(c.Payload)
			if err != nil {
				return TraceResult{}, fmt.Errorf("call %s: %w", c.ID, err)
			}
			ev.Args = p.Args
			ev.Results = p.Results
		}
		result.Timeline = append(result.Timeline, ev)

		result.Stats.Calls++
		switch c.Status {
		case store.StatusOK:
			result.Stats.OK++
		case store.StatusArgError:
			result.Stats.ArgErrors++
		default:
			result.Stats.Failed++
		}
	}
	return result, nil
}

func listSessions(ctx context.Context, st *store.Store, opts *TraceOptions, cmd *cobra.Command) error {
	sessions, err := st.Sessions(ctx)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to list sessions", err)
	}

	if opts.Format == "json" {
		type sessionJSON struct {
			ID       string `json:"id"`
			Calls    int    `json:"calls"`
			Failed   int    `json:"failed"`
			FirstSeq int64  `json:"first_seq"`
			LastSeq  int64  `json:"last_seq"`
		}
		out := make([]sessionJSON, len(sessions))
		for i, s := range sessions {
			out[i] = sessionJSON(s)
		}
		return outputTraceJSON(cmd, map[string]any{"sessions": out})
	}

	w := cmd.OutOrStdout()
	if len(sessions) == 0 {
		fmt.Fprintln(w, "No sessions found")
		return nil
	}
	fmt.Fprintln(w, "=== Sessions ===")
	for _, s := range sessions {
		fmt.Fprintf(w, "  %s  %d call(s), %d failed, seq %d-%d\n", s.ID, s.Calls, s.Failed, s.FirstSeq, s.LastSeq)
	}
	return nil
}

// outputTraceJSON outputs the trace result as JSON.
func outputTraceJSON(cmd *cobra.Command, data any) error {
	response := CLIResponse{
		Status: "ok",
		Data:   data,
	}

	encoder := json.NewEncoder(cmd.OutOrStdout())
	encoder.SetIndent("", "  ")
	return encoder.Encode(response)
}

// outputTraceText outputs the trace result as text.
func outputTraceText(w io.Writer, result TraceResult) error {
	fmt.Fprintf(w, "Trace for Session: %s\n", result.Session)
	fmt.Fprintln(w)

	fmt.Fprintln(w, "=== Timeline ===")
	if len(result.Timeline) == 0 {
		fmt.Fprintln(w, "  (no calls)")
	}
	for _, ev := range result.Timeline {
		fmt.Fprintf(w, "  [%d] %s %s -> %s %s\n", ev.Seq, ev.Variant,
			shapeList(ev.InputShapes), shapeList(ev.OutputShapes), ev.Status)
		if ev.Short != "" {
			fmt.Fprintf(w, "       %s\n", ev.Short)
		}
		if ev.Long != "" {
			fmt.Fprintf(w, "       %s\n", ev.Long)
		}
		if ev.Traceback != "" {
			fmt.Fprintf(w, "       Traceback: %s\n", ev.Traceback)
		}
		if ev.Args != nil {
			fmt.Fprintf(w, "       Args: %s\n", formatValue(ev.Args))
			fmt.Fprintf(w, "       Results: %s\n", formatValue(ev.Results))
		}
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "=== Stats ===")
	fmt.Fprintf(w, "  Calls:      %d\n", result.Stats.Calls)
	fmt.Fprintf(w, "  OK:         %d\n", result.Stats.OK)
	fmt.Fprintf(w, "  Failed:     %d\n", result.Stats.Failed)
	fmt.Fprintf(w, "  Arg errors: %d\n", result.Stats.ArgErrors)

	return nil
}

func shapeList(shapes []string) string {
	return "[" + strings.Join(shapes, ", ") + "]"
}

// formatValue renders a decoded payload value compactly.
func formatValue(v any) string {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprintf("%v", v)
	}
	return string(data)
}
