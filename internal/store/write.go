package store

import (
	"context"
	"fmt"
)

// Call outcomes.
const (
	StatusOK       = "ok"
	StatusFailed   = "failed"
	StatusArgError = "arg_error"
)

// Call is one journaled variant call.
type Call struct {
	Seq          int64
	ID           string
	Session      string
	Routine      string
	Variant      string
	InputShapes  []string
	OutputShapes []string
	Status       string
	ShortMsg     string
	LongMsg      string
	Traceback    string
	Payload      []byte
	CatalogHash  string
}

// WriteCall inserts a call record.
// Uses ON CONFLICT(id) DO NOTHING for idempotency - duplicate IDs are silently ignored.
func (s *Store) WriteCall(ctx context.Context, c Call) error {
	in, err := marshalShapes(c.InputShapes)
	if err != nil {
		return fmt.Errorf("write call: %w", err)
	}
	out, err := marshalShapes(c.OutputShapes)
	if err != nil {
		return fmt.Errorf("write call: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO calls
		(seq, id, session, routine, variant, input_shapes, output_shapes,
		 status, short_msg, long_msg, traceback, payload, catalog_hash)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO NOTHING
	`,
		c.Seq,
		c.ID,
		c.Session,
		c.Routine,
		c.Variant,
		in,
		out,
		c.Status,
		c.ShortMsg,
		c.LongMsg,
		c.Traceback,
		c.Payload,
		c.CatalogHash,
	)
	if err != nil {
		return fmt.Errorf("write call: %w", err)
	}

	return nil
}
