package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"
)

// SavedState is a persisted exercise state for one learner.
type SavedState struct {
	ContentID string
	UserID    string
	Data      []byte
	UpdatedAt time.Time
}

// StateRepo keeps the latest exercise state per content and learner.
type StateRepo interface {
	// Save stores data as the state of contentID for userID, replacing any
	// earlier state.
	Save(ctx context.Context, contentID, userID string, data []byte) error

	// Latest returns the saved state, or nil if there is none.
	Latest(ctx context.Context, contentID, userID string) (*SavedState, error)

	// Delete removes the saved state and reports whether there was one.
	Delete(ctx context.Context, contentID, userID string) (bool, error)
}

type stateRepo struct {
	db  *sql.DB
	now func() time.Time
}

func (r *stateRepo) clock() time.Time {
	if r.now != nil {
		return r.now()
	}
	return time.Now()
}

func (r *stateRepo) Save(ctx context.Context, contentID, userID string, data []byte) error {
	query, args := builder().Insert(tableStates).
		Columns(colContentID, colUserID, colData, colUpdatedAt).
		Values(contentID, userID, data, r.clock().UnixMilli()).
		OnConflict(
			entsql.ConflictColumns(colContentID, colUserID),
			entsql.ResolveWithNewValues(),
		).
		Query()

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("save state: %w", err)
	}
	return nil
}

func (r *stateRepo) Latest(ctx context.Context, contentID, userID string) (*SavedState, error) {
	query, args := builder().Select(colData, colUpdatedAt).
		From(entsql.Table(tableStates)).
		Where(entsql.And(
			entsql.EQ(colContentID, contentID),
			entsql.EQ(colUserID, userID),
		)).
		Limit(1).
		Query()

	var (
		data    []byte
		updated int64
	)
	err := r.db.QueryRowContext(ctx, query, args...).Scan(&data, &updated)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("query state: %w", err)
	}

	return &SavedState{
		ContentID: contentID,
		UserID:    userID,
		Data:      data,
		UpdatedAt: time.UnixMilli(updated).UTC(),
	}, nil
}

func (r *stateRepo) Delete(ctx context.Context, contentID, userID string) (bool, error) {
	query, args := builder().Delete(tableStates).
		Where(entsql.And(
			entsql.EQ(colContentID, contentID),
			entsql.EQ(colUserID, userID),
		)).
		Query()

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("delete state: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("delete state: %w", err)
	}
	return n > 0, nil
}
