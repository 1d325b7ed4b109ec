package sqlite

import (
	"context"
	"path/filepath"
	"testing"
)

func TestKV_GetSet(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "data", "ledger.db")

	kv, err := Open(ctx, path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}

	if _, found, err := kv.Get(ctx, "expenses"); err != nil || found {
		t.Fatalf("fresh db: found=%v err=%v", found, err)
	}

	if err := kv.Set(ctx, "expenses", []byte(`[1]`)); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := kv.Set(ctx, "expenses", []byte(`[1,2]`)); err != nil {
		t.Fatalf("overwrite: %v", err)
	}
	if err := kv.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	reopened, err := Open(ctx, path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer reopened.Close()

	v, found, err := reopened.Get(ctx, "expenses")
	if err != nil || !found {
		t.Fatalf("get: found=%v err=%v", found, err)
	}
	if string(v) != `[1,2]` {
		t.Errorf("got %s, want [1,2]", v)
	}
}
