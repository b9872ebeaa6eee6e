package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"
	json "github.com/goccy/go-json"

	"github.com/abhisek/ideaboard/internal/xapi"
)

// QueryOpts configures statement queries with filtering and pagination.
type QueryOpts struct {
	Limit int   // max results (0 = unlimited)
	After int64 // sequence > After
	Verb  string
}

// LoggedStatement is a statement with its place in the log.
type LoggedStatement struct {
	Sequence  int64
	ContentID string
	Statement xapi.Statement
}

// StatementRepo is the append-only xAPI statement log.
type StatementRepo interface {
	// Append logs st for contentID and returns its sequence number.
	Append(ctx context.Context, contentID string, st xapi.Statement) (int64, error)

	// List returns the statements of contentID in sequence order.
	List(ctx context.Context, contentID string, opts QueryOpts) ([]LoggedStatement, error)
}

type statementRepo struct {
	db  *sql.DB
	seq *sequenceCounter
}

func (r *statementRepo) Append(ctx context.Context, contentID string, st xapi.Statement) (int64, error) {
	data, err := json.Marshal(st)
	if err != nil {
		return 0, fmt.Errorf("marshal statement: %w", err)
	}

	seq, err := r.seq.Next(ctx)
	if err != nil {
		return 0, err
	}

	ts := st.Timestamp
	if ts.IsZero() {
		ts = time.Now()
	}

	query, args := builder().Insert(tableStatements).
		Columns(colSequence, colContentID, colVerb, colData, colTimestamp).
		Values(seq, contentID, st.Verb.Short(), data, ts.UnixMilli()).
		Query()

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return 0, fmt.Errorf("append statement: %w", err)
	}
	return seq, nil
}

func (r *statementRepo) List(ctx context.Context, contentID string, opts QueryOpts) ([]LoggedStatement, error) {
	preds := []*entsql.Predicate{entsql.EQ(colContentID, contentID)}
	if opts.After > 0 {
		preds = append(preds, entsql.GT(colSequence, opts.After))
	}
	if opts.Verb != "" {
		preds = append(preds, entsql.EQ(colVerb, opts.Verb))
	}

	sel := builder().Select(colSequence, colData).
		From(entsql.Table(tableStatements)).
		Where(entsql.And(preds...)).
		OrderBy(entsql.Asc(colSequence))
	if opts.Limit > 0 {
		sel = sel.Limit(opts.Limit)
	}
	query, args := sel.Query()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query statements: %w", err)
	}
	defer rows.Close()

	var out []LoggedStatement
	for rows.Next() {
		var (
			seq  int64
			data []byte
		)
		if err := rows.Scan(&seq, &data); err != nil {
			return nil, fmt.Errorf("scan statement: %w", err)
		}
		ls := LoggedStatement{Sequence: seq, ContentID: contentID}
		if err := json.Unmarshal(data, &ls.Statement); err != nil {
			return nil, fmt.Errorf("decode statement %d: %w", seq, err)
		}
		out = append(out, ls)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate statements: %w", err)
	}
	return out, nil
}
