package persist

import (
	"context"
	"fmt"
	"time"

	goerrors "github.com/goliatone/go-errors"
	repository "github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Blob is the single-row model holding the serialized grid snapshot.
type Blob struct {
	bun.BaseModel `bun:"table:dashboard_blobs,alias:db"`

	ID      uuid.UUID `bun:",pk,type:uuid" json:"id"`
	Key     string    `bun:"key,notnull,unique" json:"key"`
	Payload []byte    `bun:"payload,notnull" json:"payload"`
	SavedAt time.Time `bun:"saved_at,nullzero,default:current_timestamp" json:"saved_at"`
}

// NewBlobRepository creates a repository for snapshot blobs.
func NewBlobRepository(db *bun.DB) repository.Repository[*Blob] {
	return repository.MustNewRepository(db, repository.ModelHandlers[*Blob]{
		NewRecord: func() *Blob { return &Blob{} },
		GetID: func(b *Blob) uuid.UUID {
			return b.ID
		},
		SetID: func(b *Blob, id uuid.UUID) {
			b.ID = id
		},
		GetIdentifier: func() string {
			return "key"
		},
		GetIdentifierValue: func(b *Blob) string {
			return b.Key
		},
	})
}

// BunStore persists the snapshot blob in a relational table keyed by the
// storage key, one row per key.
type BunStore struct {
	db   *bun.DB
	repo repository.Repository[*Blob]
	key  string
	now  func() time.Time
}

// BunStoreOption configures the bun-backed store.
type BunStoreOption func(*BunStore)

// BunStoreWithKey overrides the storage key.
func BunStoreWithKey(key string) BunStoreOption {
	return func(s *BunStore) {
		if key != "" {
			s.key = key
		}
	}
}

// BunStoreWithClock injects the clock used for row timestamps.
func BunStoreWithClock(now func() time.Time) BunStoreOption {
	return func(s *BunStore) {
		if now != nil {
			s.now = now
		}
	}
}

// NewBunStore builds a blob store over the given database handle.
func NewBunStore(db *bun.DB, opts ...BunStoreOption) *BunStore {
	s := &BunStore{
		db:   db,
		repo: NewBlobRepository(db),
		key:  StorageKey,
		now:  time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Init creates the backing table when it does not exist yet.
func (s *BunStore) Init(ctx context.Context) error {
	if _, err := s.db.NewCreateTable().Model((*Blob)(nil)).IfNotExists().Exec(ctx); err != nil {
		return fmt.Errorf("persist: create blob table: %w", err)
	}
	return nil
}

func (s *BunStore) Read(ctx context.Context) ([]byte, bool, error) {
	record, err := s.repo.GetByIdentifier(ctx, s.key)
	if err != nil {
		if goerrors.IsCategory(err, repository.CategoryDatabaseNotFound) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("persist: read blob %q: %w", s.key, err)
	}
	return record.Payload, true, nil
}

func (s *BunStore) Write(ctx context.Context, data []byte) error {
	record, err := s.repo.GetByIdentifier(ctx, s.key)
	if err != nil {
		if !goerrors.IsCategory(err, repository.CategoryDatabaseNotFound) {
			return fmt.Errorf("persist: write blob %q: %w", s.key, err)
		}
		record = &Blob{
			ID:      uuid.New(),
			Key:     s.key,
			Payload: data,
			SavedAt: s.now().UTC(),
		}
		if _, err := s.repo.Create(ctx, record); err != nil {
			return fmt.Errorf("persist: create blob %q: %w", s.key, err)
		}
		return nil
	}

	record.Payload = data
	record.SavedAt = s.now().UTC()
	if _, err := s.repo.Update(ctx, record); err != nil {
		return fmt.Errorf("persist: update blob %q: %w", s.key, err)
	}
	return nil
}
