package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	// recentLimit caps the per-variant list of recent results kept in Redis.
	recentLimit = 50
	// seenTTL is how long a recorded result ID is remembered.
	seenTTL = 7 * 24 * time.Hour
)

// RedisMirror publishes results to Redis so several SSH hosts can share a
// leaderboard. Tallies live in a hash per variant, recent games in a list.
type RedisMirror struct {
	client *redis.Client
	prefix string
}

// NewRedisMirror connects to Redis and verifies the connection.
func NewRedisMirror(ctx context.Context, addr, prefix string) (*RedisMirror, error) {
	conn := redis.NewClient(&redis.Options{
		Addr: addr,
	})

	if _, err := conn.Ping(ctx).Result(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	if prefix == "" {
		prefix = "tictactoe"
	}
	return &RedisMirror{client: conn, prefix: prefix}, nil
}

func (m *RedisMirror) tallyKey(variant string) string {
	return m.prefix + ":tally:" + variant
}

func (m *RedisMirror) recentKey(variant string) string {
	return m.prefix + ":recent:" + variant
}

func (m *RedisMirror) seenKey(id string) string {
	return m.prefix + ":seen:" + id
}

// Record increments the variant's tallies and pushes the result onto its
// recent list. A result ID already mirrored is ignored.
func (m *RedisMirror) Record(ctx context.Context, r Result) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	payload, err := json.Marshal(r)
	if err != nil {
		return fmt.Errorf("could not marshal result: %w", err)
	}

	fresh, err := m.client.SetNX(ctx, m.seenKey(r.ID), 1, seenTTL).Result()
	if err != nil {
		return fmt.Errorf("failed to mirror result: %w", err)
	}
	if !fresh {
		return nil
	}

	field := "win:" + r.Winner
	if r.Outcome == "draw" {
		field = "draw"
	}

	_, err = m.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.HIncrBy(ctx, m.tallyKey(r.Variant), "games", 1)
		pipe.HIncrBy(ctx, m.tallyKey(r.Variant), field, 1)
		if r.Outcome == "timeout" {
			pipe.HIncrBy(ctx, m.tallyKey(r.Variant), "timeout", 1)
		}
		pipe.LPush(ctx, m.recentKey(r.Variant), payload)
		pipe.LTrim(ctx, m.recentKey(r.Variant), 0, recentLimit-1)
		return nil
	})
	if err != nil {
		// Let a retry record it.
		m.client.Del(context.WithoutCancel(ctx), m.seenKey(r.ID))
		return fmt.Errorf("failed to mirror result: %w", err)
	}
	return nil
}

// Tally reads the mirrored tallies of one variant.
func (m *RedisMirror) Tally(ctx context.Context, variant string) (*Tally, error) {
	fields, err := m.client.HGetAll(ctx, m.tallyKey(variant)).Result()
	if err != nil && !errors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("failed to read tally: %w", err)
	}

	t := &Tally{Variant: variant, Wins: make(map[string]int)}
	for k, v := range fields {
		n, err := strconv.Atoi(v)
		if err != nil {
			continue
		}
		switch {
		case k == "games":
			t.Games = n
		case k == "draw":
			t.Draws = n
		case k == "timeout":
			t.Timeouts = n
		case len(k) > 4 && k[:4] == "win:":
			t.Wins[k[4:]] = n
		}
	}
	return t, nil
}

// Recent returns the mirrored recent results of one variant, newest first.
func (m *RedisMirror) Recent(ctx context.Context, variant string, limit int) ([]Result, error) {
	if limit <= 0 || limit > recentLimit {
		limit = recentLimit
	}
	raw, err := m.client.LRange(ctx, m.recentKey(variant), 0, int64(limit-1)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read recent results: %w", err)
	}

	results := make([]Result, 0, len(raw))
	for _, s := range raw {
		var r Result
		if err := json.Unmarshal([]byte(s), &r); err != nil {
			return nil, fmt.Errorf("failed to unmarshal result: %w", err)
		}
		results = append(results, r)
	}
	return results, nil
}

// Clear removes everything mirrored for a variant.
func (m *RedisMirror) Clear(ctx context.Context, variant string) error {
	if err := m.client.Del(ctx, m.tallyKey(variant), m.recentKey(variant)).Err(); err != nil {
		return fmt.Errorf("failed to clear variant: %w", err)
	}
	return nil
}

// Close closes the Redis connection.
func (m *RedisMirror) Close() error {
	return m.client.Close()
}

// Fanout records to a primary store and best-effort to mirrors. Only the
// primary's error is returned; mirror failures are logged.
type Fanout struct {
	Primary Recorder
	Mirrors []Recorder
	Logger  *log.Logger
}

func (f *Fanout) Record(ctx context.Context, r Result) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	if f.Primary != nil {
		if err := f.Primary.Record(ctx, r); err != nil {
			return err
		}
	}
	for _, m := range f.Mirrors {
		if err := m.Record(ctx, r); err != nil && f.Logger != nil {
			f.Logger.Warn("mirror failed", "variant", r.Variant, "err", err)
		}
	}
	return nil
}

// NewRecorder combines an optional store and an optional mirror. It returns
// nil when both are nil.
func NewRecorder(store *Store, mirror *RedisMirror, logger *log.Logger) Recorder {
	f := &Fanout{Logger: logger}
	if store != nil {
		f.Primary = store
	}
	if mirror != nil {
		f.Mirrors = append(f.Mirrors, mirror)
	}
	if f.Primary == nil && len(f.Mirrors) == 0 {
		return nil
	}
	return f
}
