package offline

import (
	"encoding/json"
	"io"
	"path/filepath"
	"testing"
	"time"
)

func openTestStore(t *testing.T) Store {
	t.Helper()
	store, err := OpenSQLite(filepath.Join(t.TempDir(), "queue.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() {
		if closer, ok := store.(io.Closer); ok {
			closer.Close()
		}
	})
	return store
}

func TestSQLiteStore_RoundTrip(t *testing.T) {
	store := openTestStore(t)

	at := time.Date(2026, 8, 20, 9, 30, 0, 0, time.UTC)
	ops := []Operation{
		{ID: "op-1", Type: OpAdd, Data: json.RawMessage(`{"productId":"wreath-1"}`), Timestamp: at, MaxRetries: 3},
		{ID: "op-2", Type: OpUpdate, ItemID: "item-1", Data: json.RawMessage(`{"quantity":2}`), Timestamp: at.Add(time.Second), MaxRetries: 3},
		{ID: "op-3", Type: OpRemove, ItemID: "item-2", Timestamp: at.Add(2 * time.Second), MaxRetries: 3, Priority: 5},
	}
	for _, op := range ops {
		if err := store.Append(op); err != nil {
			t.Fatalf("append %s: %v", op.ID, err)
		}
	}

	listed, err := store.List()
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(listed) != 3 {
		t.Fatalf("expected 3 ops, got %d", len(listed))
	}
	// Insertion order, regardless of priority.
	for i, want := range []string{"op-1", "op-2", "op-3"} {
		if listed[i].ID != want {
			t.Fatalf("position %d: expected %s, got %s", i, want, listed[i].ID)
		}
	}
	if listed[0].Type != OpAdd || string(listed[0].Data) != `{"productId":"wreath-1"}` {
		t.Fatalf("unexpected op-1 payload: %+v", listed[0])
	}
	if !listed[0].Timestamp.Equal(at) {
		t.Fatalf("expected timestamp %v, got %v", at, listed[0].Timestamp)
	}
	if listed[2].Priority != 5 || listed[2].ItemID != "item-2" {
		t.Fatalf("unexpected op-3 fields: %+v", listed[2])
	}
}

func TestSQLiteStore_RemoveAndBump(t *testing.T) {
	store := openTestStore(t)

	for _, id := range []string{"op-1", "op-2"} {
		if err := store.Append(Operation{ID: id, Type: OpRemove, ItemID: "x", Timestamp: time.Now(), MaxRetries: 3}); err != nil {
			t.Fatalf("append: %v", err)
		}
	}

	if err := store.BumpRetry("op-2"); err != nil {
		t.Fatalf("bump: %v", err)
	}
	if err := store.Remove("op-1"); err != nil {
		t.Fatalf("remove: %v", err)
	}

	listed, err := store.List()
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(listed) != 1 || listed[0].ID != "op-2" {
		t.Fatalf("expected only op-2, got %+v", listed)
	}
	if listed[0].RetryCount != 1 {
		t.Fatalf("expected retryCount 1, got %d", listed[0].RetryCount)
	}
}

func TestSQLiteStore_Clear(t *testing.T) {
	store := openTestStore(t)

	if err := store.Append(Operation{ID: "op-1", Type: OpAdd, Timestamp: time.Now(), MaxRetries: 3}); err != nil {
		t.Fatalf("append: %v", err)
	}
	if err := store.Clear(); err != nil {
		t.Fatalf("clear: %v", err)
	}
	listed, err := store.List()
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(listed) != 0 {
		t.Fatalf("expected empty queue, got %d ops", len(listed))
	}
}

func TestSQLiteStore_DuplicateIDRejected(t *testing.T) {
	store := openTestStore(t)

	op := Operation{ID: "op-1", Type: OpAdd, Timestamp: time.Now(), MaxRetries: 3}
	if err := store.Append(op); err != nil {
		t.Fatalf("append: %v", err)
	}
	if err := store.Append(op); err == nil {
		t.Fatalf("expected unique constraint violation")
	}
}
