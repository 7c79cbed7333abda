package synclog

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"sync"
	"time"

	repository "github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect"
)

// AttemptRecord is the persisted row of one sync attempt. Rows are grouped by
// LogKey; Seq increases by one per append within a key.
type AttemptRecord struct {
	bun.BaseModel `bun:"table:media_sync_logs,alias:msl"`

	ID             uuid.UUID `bun:",pk,type:uuid"                json:"id"`
	LogKey         string    `bun:"log_key,notnull"              json:"log_key"`
	Seq            int64     `bun:"seq,notnull"                  json:"seq"`
	RecordedAt     time.Time `bun:"recorded_at,notnull"          json:"recorded_at"`
	SubjectAssetID string    `bun:"subject_asset_id,notnull"     json:"subject_asset_id"`
	TriggerAssetID string    `bun:"trigger_asset_id,notnull"     json:"trigger_asset_id"`
	Status         string    `bun:"status,notnull"               json:"status"`
	Reason         string    `bun:"reason"                       json:"reason,omitempty"`
}

// NewAttemptRepository builds the go-repository-bun repository for attempt rows.
func NewAttemptRepository(db *bun.DB) repository.Repository[*AttemptRecord] {
	return repository.MustNewRepository(db, repository.ModelHandlers[*AttemptRecord]{
		NewRecord: func() *AttemptRecord { return &AttemptRecord{} },
		GetID: func(r *AttemptRecord) uuid.UUID {
			return r.ID
		},
		SetID: func(r *AttemptRecord, id uuid.UUID) {
			r.ID = id
		},
		GetIdentifier: func() string {
			return "id"
		},
		GetIdentifierValue: func(r *AttemptRecord) string {
			if r == nil {
				return ""
			}
			return r.ID.String()
		},
	})
}

// BunStore persists the capped log in a database table shared by every log
// key. Appends run inside one transaction so the read-insert-truncate
// sequence is atomic. On Postgres the transaction takes an advisory lock on
// the key, so stores in different processes can append to the same key.
// SQLite locks the whole database for a writing transaction; processes
// sharing one file should open it with _txlock=immediate so a second writer
// waits instead of failing with SQLITE_BUSY.
type BunStore struct {
	mu       sync.Mutex
	db       *bun.DB
	repo     repository.Repository[*AttemptRecord]
	key      string
	capacity int
}

var _ Store = (*BunStore)(nil)

// NewBunStore constructs a store for the log named key.
func NewBunStore(db *bun.DB, key string, capacity int) (*BunStore, error) {
	if db == nil {
		return nil, errors.New("synclog: bun store requires a database")
	}
	key = strings.TrimSpace(key)
	if key == "" {
		return nil, ErrKeyRequired
	}
	if capacity <= 0 {
		return nil, ErrInvalidCapacity
	}
	return &BunStore{
		db:       db,
		repo:     NewAttemptRepository(db),
		key:      key,
		capacity: capacity,
	}, nil
}

// Append inserts the attempt as the newest row of the key and deletes rows
// that fall outside the capacity window.
func (s *BunStore) Append(ctx context.Context, attempt Attempt) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	record := recordFromAttempt(s.key, attempt)
	return s.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		if query := keyLockQuery(s.db.Dialect().Name()); query != "" {
			if _, err := tx.ExecContext(ctx, query, s.key); err != nil {
				return err
			}
		}

		var last sql.NullInt64
		if err := tx.NewSelect().
			Model((*AttemptRecord)(nil)).
			ColumnExpr("MAX(seq)").
			Where("log_key = ?", s.key).
			Scan(ctx, &last); err != nil {
			return err
		}
		record.Seq = last.Int64 + 1

		if _, err := tx.NewInsert().Model(record).Exec(ctx); err != nil {
			return err
		}

		_, err := tx.NewDelete().
			Model((*AttemptRecord)(nil)).
			Where("log_key = ?", s.key).
			Where("seq <= ?", record.Seq-int64(s.capacity)).
			Exec(ctx)
		return err
	})
}

// keyLockQuery returns the statement that serializes appends to one key
// across connections, or "" when the dialect needs none.
func keyLockQuery(name dialect.Name) string {
	if name == dialect.PG {
		return "SELECT pg_advisory_xact_lock(hashtext(?))"
	}
	return ""
}

// ReadAll returns the retained attempts of the key, newest first.
func (s *BunStore) ReadAll(ctx context.Context) ([]Attempt, error) {
	records, _, err := s.repo.List(ctx,
		repository.SelectRawProcessor(func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.Where("?TableAlias.log_key = ?", s.key)
		}),
		repository.SelectRawProcessor(func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.OrderExpr("?TableAlias.seq DESC")
		}),
		repository.SelectPaginate(s.capacity, 0),
	)
	if err != nil {
		return nil, err
	}
	out := make([]Attempt, 0, len(records))
	for _, record := range records {
		out = append(out, attemptFromRecord(record))
	}
	return out, nil
}

// Key returns the log name the store is bound to.
func (s *BunStore) Key() string {
	return s.key
}

func recordFromAttempt(key string, attempt Attempt) *AttemptRecord {
	id := attempt.ID
	if id == uuid.Nil {
		id = uuid.New()
	}
	return &AttemptRecord{
		ID:             id,
		LogKey:         key,
		RecordedAt:     attempt.Timestamp.UTC(),
		SubjectAssetID: attempt.SubjectAssetID,
		TriggerAssetID: attempt.TriggerAssetID,
		Status:         string(attempt.Outcome.Status),
		Reason:         attempt.Outcome.Reason,
	}
}

func attemptFromRecord(record *AttemptRecord) Attempt {
	return Attempt{
		ID:             record.ID,
		Timestamp:      record.RecordedAt,
		SubjectAssetID: record.SubjectAssetID,
		TriggerAssetID: record.TriggerAssetID,
		Outcome: Outcome{
			Status: Status(record.Status),
			Reason: record.Reason,
		},
	}
}
