package session

import (
	"context"
	"errors"
	"os"
	"reflect"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/spigell/hirely/internal/classifier"
	"github.com/spigell/hirely/internal/interview"
)

func sampleSession(id string) *interview.Session {
	return &interview.Session{
		ID:                 id,
		Phase:              interview.PhaseTechnicalQA,
		Profile:            &interview.Profile{FullName: "Ada", TechStack: []string{"Go"}},
		TechnicalQuestions: []string{"Q1", "Q2"},
		ProjectQuestions:   []string{"P1"},
		TechnicalAnswers: map[int]interview.AnswerRecord{
			0: {Index: 0, Question: "Q1", Answer: "A1", Analysis: classifier.Analysis{Correctness: classifier.CorrectnessCorrect}},
		},
		ProjectAnswers:  map[int]interview.AnswerRecord{},
		TechnicalCursor: 1,
		PendingMessage:  "hello",
		CreatedAt:       time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC),
		UpdatedAt:       time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC),
	}
}

func exerciseStore(t *testing.T, store Store) {
	t.Helper()
	ctx := context.Background()

	if _, err := store.Get(ctx, "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	original := sampleSession("abc")
	if err := store.Save(ctx, original); err != nil {
		t.Fatalf("save: %v", err)
	}

	loaded, err := store.Get(ctx, "abc")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if !reflect.DeepEqual(original, loaded) {
		t.Fatalf("loaded session differs:\nwant %+v\ngot  %+v", original, loaded)
	}

	loaded.TechnicalAnswers[1] = interview.AnswerRecord{Index: 1}
	again, err := store.Get(ctx, "abc")
	if err != nil {
		t.Fatalf("get again: %v", err)
	}
	if len(again.TechnicalAnswers) != 1 {
		t.Fatalf("stored session was mutated through a loaded copy: %v", again.TechnicalAnswers)
	}

	if err := store.Delete(ctx, "abc"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := store.Get(ctx, "abc"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
}

func TestMemoryStore(t *testing.T) {
	t.Parallel()
	exerciseStore(t, NewMemory(0))
}

func TestMemoryStoreExpiry(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	store := NewMemory(time.Minute)
	store.now = func() time.Time { return now }

	if err := store.Save(context.Background(), sampleSession("ttl")); err != nil {
		t.Fatalf("save: %v", err)
	}

	now = now.Add(59 * time.Second)
	if _, err := store.Get(context.Background(), "ttl"); err != nil {
		t.Fatalf("expected session before expiry, got %v", err)
	}

	now = now.Add(time.Second)
	if _, err := store.Get(context.Background(), "ttl"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound after expiry, got %v", err)
	}
}

func TestDecodeFillsAnswerMaps(t *testing.T) {
	t.Parallel()

	s, err := decode([]byte(`{"id":"x","phase":"welcome"}`))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if s.TechnicalAnswers == nil || s.ProjectAnswers == nil {
		t.Fatal("expected answer maps to be initialised")
	}

	if _, err := decode([]byte(`{`)); err == nil {
		t.Fatal("expected error for truncated JSON")
	}
}

// TestRedisStore needs a reachable server in HIRELY_TEST_REDIS_ADDR.
func TestRedisStore(t *testing.T) {
	addr := os.Getenv("HIRELY_TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("HIRELY_TEST_REDIS_ADDR is not set")
	}

	ctx := context.Background()
	client := redis.NewClient(&redis.Options{Addr: addr})
	t.Cleanup(func() { _ = client.Close() })
	if err := client.Ping(ctx).Err(); err != nil {
		t.Fatalf("ping redis: %v", err)
	}

	store := NewRedis(client, time.Minute)
	exerciseStore(t, store)

	if err := store.Save(ctx, sampleSession("ttl")); err != nil {
		t.Fatalf("save: %v", err)
	}
	ttl, err := client.TTL(ctx, key("ttl")).Result()
	if err != nil {
		t.Fatalf("ttl: %v", err)
	}
	if ttl <= 0 {
		t.Fatalf("expected positive ttl, got %s", ttl)
	}
	if err := store.Delete(ctx, "ttl"); err != nil {
		t.Fatalf("delete: %v", err)
	}
}

func TestRedisKey(t *testing.T) {
	t.Parallel()

	if got := key("42"); got != "hirely:session:42" {
		t.Fatalf("unexpected key: %s", got)
	}
}
