package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/roach88/vecwrap/internal/ir"
	"github.com/roach88/vecwrap/internal/native"
	"github.com/roach88/vecwrap/internal/vector"
)

// Entry is what a caller knows about a finished call.
type Entry struct {
	Routine string
	Variant string
	Args    []any
	Results []any
	Err     error
}

// Journal appends the calls of one session to a store.
type Journal struct {
	store       *Store
	clock       Sequencer
	session     string
	catalogHash string
}

// JournalOption configures a Journal.
type JournalOption func(*Journal)

// WithClock replaces the clock. The default continues after the store's
// highest seq.
func WithClock(c Sequencer) JournalOption {
	return func(j *Journal) { j.clock = c }
}

// NewJournal starts a session on s. Calls are stamped with catalogHash.
func NewJournal(ctx context.Context, s *Store, session, catalogHash string, opts ...JournalOption) (*Journal, error) {
	if session == "" {
		return nil, errors.New("journal: empty session")
	}
	j := &Journal{store: s, session: session, catalogHash: catalogHash}
	for _, opt := range opts {
		opt(j)
	}
	if j.clock == nil {
		seq, err := s.MaxSeq(ctx)
		if err != nil {
			return nil, fmt.Errorf("journal: %w", err)
		}
		j.clock = NewClockAt(seq)
	}
	return j, nil
}

// Session returns the session token.
func (j *Journal) Session() string {
	return j.session
}

// Record writes one call and returns the stored row.
func (j *Journal) Record(ctx context.Context, e Entry) (Call, error) {
	seq := j.clock.Next()
	c := Call{
		Seq:          seq,
		ID:           ir.CallID(j.session, e.Variant, seq),
		Session:      j.session,
		Routine:      e.Routine,
		Variant:      e.Variant,
		InputShapes:  Shapes(e.Args),
		OutputShapes: Shapes(e.Results),
		Status:       StatusOK,
		CatalogHash:  j.catalogHash,
	}

	var nerr *native.Error
	var aerr *vector.ArgError
	switch {
	case e.Err == nil:
	case errors.As(e.Err, &nerr):
		c.Status = StatusFailed
		c.ShortMsg = nerr.Short
		c.LongMsg = nerr.Long
		c.Traceback = nerr.Traceback
	case errors.As(e.Err, &aerr):
		c.Status = StatusArgError
		c.LongMsg = aerr.Error()
	default:
		c.Status = StatusFailed
		c.LongMsg = e.Err.Error()
	}

	payload, err := EncodePayload(e.Args, e.Results)
	if err != nil {
		return Call{}, fmt.Errorf("journal %s: %w", e.Variant, err)
	}
	c.Payload = payload

	if err := j.store.WriteCall(ctx, c); err != nil {
		return Call{}, err
	}
	return c, nil
}
