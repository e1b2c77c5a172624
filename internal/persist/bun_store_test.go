package persist

import (
	"bytes"
	"context"
	"database/sql"
	"testing"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
)

func newTestDB(t *testing.T) *bun.DB {
	t.Helper()

	sqldb, err := sql.Open("sqlite3", "file:persist_test?mode=memory&cache=shared&_fk=1")
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { _ = sqldb.Close() })

	db := bun.NewDB(sqldb, sqlitedialect.New())
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func newTestBunStore(t *testing.T, opts ...BunStoreOption) *BunStore {
	t.Helper()

	store := NewBunStore(newTestDB(t), opts...)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := store.Init(ctx); err != nil {
		t.Fatalf("init: %v", err)
	}
	return store
}

func TestBunStoreReadBeforeWrite(t *testing.T) {
	store := newTestBunStore(t)

	data, found, err := store.Read(context.Background())
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if found || data != nil {
		t.Fatalf("empty table reported a blob: %v %v", data, found)
	}
}

func TestBunStoreWriteReadRoundTrip(t *testing.T) {
	store := newTestBunStore(t)
	ctx := context.Background()

	payload := []byte(`{"version":"1.0","widgets":[]}`)
	if err := store.Write(ctx, payload); err != nil {
		t.Fatalf("write: %v", err)
	}

	data, found, err := store.Read(ctx)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if !found {
		t.Fatalf("blob missing after write")
	}
	if !bytes.Equal(data, payload) {
		t.Fatalf("data = %s, want %s", data, payload)
	}
}

func TestBunStoreWriteUpdatesInPlace(t *testing.T) {
	store := newTestBunStore(t)
	ctx := context.Background()

	if err := store.Write(ctx, []byte(`first`)); err != nil {
		t.Fatalf("first write: %v", err)
	}
	if err := store.Write(ctx, []byte(`second`)); err != nil {
		t.Fatalf("second write: %v", err)
	}

	data, found, err := store.Read(ctx)
	if err != nil || !found {
		t.Fatalf("read: %v found=%v", err, found)
	}
	if string(data) != "second" {
		t.Fatalf("data = %s, want second", data)
	}

	count, err := store.db.NewSelect().Model((*Blob)(nil)).Count(ctx)
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 1 {
		t.Fatalf("rows = %d, want 1", count)
	}
}

func TestBunStoreKeysAreIndependent(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	primary := NewBunStore(db)
	if err := primary.Init(ctx); err != nil {
		t.Fatalf("init: %v", err)
	}
	secondary := NewBunStore(db, BunStoreWithKey("scratchBoard"))

	if err := primary.Write(ctx, []byte(`main`)); err != nil {
		t.Fatalf("write primary: %v", err)
	}
	if err := secondary.Write(ctx, []byte(`scratch`)); err != nil {
		t.Fatalf("write secondary: %v", err)
	}

	data, _, err := primary.Read(ctx)
	if err != nil {
		t.Fatalf("read primary: %v", err)
	}
	if string(data) != "main" {
		t.Fatalf("primary data = %s", data)
	}
}
