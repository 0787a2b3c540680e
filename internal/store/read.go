package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// ErrNotFound is returned by ReadCall for an unknown id.
var ErrNotFound = errors.New("call not found")

const callColumns = `seq, id, session, routine, variant, input_shapes, output_shapes,
	status, short_msg, long_msg, traceback, payload, catalog_hash`

// Session summarizes the calls of one session.
type Session struct {
	ID       string
	Calls    int
	Failed   int
	FirstSeq int64
	LastSeq  int64
}

// ReadCalls returns every call of a session in seq order.
// Returns an empty slice (not nil) if the session has no calls.
func (s *Store) ReadCalls(ctx context.Context, session string) ([]Call, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+callColumns+`
		FROM calls
		WHERE session = ?
		ORDER BY seq ASC, id COLLATE BINARY ASC
	`, session)
	if err != nil {
		return nil, fmt.Errorf("query calls: %w", err)
	}
	defer rows.Close()

	calls := []Call{}
	for rows.Next() {
		c, err := scanCall(rows)
		if err != nil {
			return nil, err
		}
		calls = append(calls, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate calls: %w", err)
	}
	return calls, nil
}

// ReadCall returns one call by id.
func (s *Store) ReadCall(ctx context.Context, id string) (Call, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+callColumns+` FROM calls WHERE id = ?`, id)
	c, err := scanCall(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Call{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return c, err
}

// Sessions lists every session ordered by its first call.
func (s *Store) Sessions(ctx context.Context) ([]Session, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT session, COUNT(*), SUM(status != 'ok'), MIN(seq), MAX(seq)
		FROM calls
		GROUP BY session
		ORDER BY MIN(seq) ASC, session COLLATE BINARY ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("query sessions: %w", err)
	}
	defer rows.Close()

	sessions := []Session{}
	for rows.Next() {
		var sess Session
		if err := rows.Scan(&sess.ID, &sess.Calls, &sess.Failed, &sess.FirstSeq, &sess.LastSeq); err != nil {
			return nil, fmt.Errorf("scan session: %w", err)
		}
		sessions = append(sessions, sess)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate sessions: %w", err)
	}
	return sessions, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanCall(row scanner) (Call, error) {
	var c Call
	var in, out string
	err := row.Scan(&c.Seq, &c.ID, &c.Session, &c.Routine, &c.Variant, &in, &out,
		&c.Status, &c.ShortMsg, &c.LongMsg, &c.Traceback, &c.Payload, &c.CatalogHash)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Call{}, err
		}
		return Call{}, fmt.Errorf("scan call: %w", err)
	}
	if c.InputShapes, err = unmarshalShapes(in); err != nil {
		return Call{}, err
	}
	if c.OutputShapes, err = unmarshalShapes(out); err != nil {
		return Call{}, err
	}
	return c, nil
}
