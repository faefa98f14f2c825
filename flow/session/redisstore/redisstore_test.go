package redisstore

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/redis/go-redis/v9"

	"github.com/ivaflow/flowcore/flow"
	"github.com/ivaflow/flowcore/flow/session"
)

// newTestStore connects to a Redis instance addressed by TEST_REDIS_ADDR.
// Skipped when that variable is unset, since the test needs a live Redis
// server.
func newTestStore(t *testing.T) *Store {
	t.Helper()
	addr := os.Getenv("TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("skipping: TEST_REDIS_ADDR not set")
	}
	rdb := redis.NewClient(&redis.Options{Addr: addr})
	t.Cleanup(func() { rdb.Close() })
	return New(rdb, WithKeyPrefix("flowcore-test:session:"))
}

func TestStoreGetSetDelete(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)

	if _, err := st.Get(ctx, "missing"); !errors.Is(err, session.ErrNotFound) {
		t.Fatalf("Get(missing) error = %v, want ErrNotFound", err)
	}

	sess := &flow.Session{ID: "s1", CurrentNodeID: "n1", Variables: map[string]interface{}{"a": float64(1)}}
	if err := st.Set(ctx, sess); err != nil {
		t.Fatalf("Set error: %v", err)
	}
	t.Cleanup(func() { st.Delete(ctx, "s1") })

	got, err := st.Get(ctx, "s1")
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if got.CurrentNodeID != "n1" || got.Variables["a"] != float64(1) {
		t.Errorf("unexpected round-tripped session: %+v", got)
	}

	if err := st.Delete(ctx, "s1"); err != nil {
		t.Fatalf("Delete error: %v", err)
	}
	if _, err := st.Get(ctx, "s1"); !errors.Is(err, session.ErrNotFound) {
		t.Fatalf("Get after Delete error = %v, want ErrNotFound", err)
	}
}
