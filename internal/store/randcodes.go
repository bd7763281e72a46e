package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/lzjever/open189/internal/core"
)

const schemaSQL = `
CREATE TABLE IF NOT EXISTS open189_randcodes (
	identifier  TEXT PRIMARY KEY,
	rand_code   TEXT NOT NULL,
	received_at TIMESTAMPTZ NOT NULL DEFAULT now()
)`

// CodeStore keeps platform-generated verification codes in Postgres.
type CodeStore struct {
	pool *pgxpool.Pool
	ttl  time.Duration
	now  func() time.Time
}

// NewCodeStore returns a store on pool. Rows older than ttl are deleted on
// each Put; a non-positive ttl keeps them forever.
func NewCodeStore(pool *pgxpool.Pool, ttl time.Duration) *CodeStore {
	return &CodeStore{pool: pool, ttl: ttl, now: time.Now}
}

// EnsureSchema creates the randcode table if needed.
func (s *CodeStore) EnsureSchema(ctx context.Context) error {
	if _, err := s.pool.Exec(ctx, schemaSQL); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	return nil
}

// Put stores r, replacing an earlier delivery for the same identifier, and
// deletes expired rows.
func (s *CodeStore) Put(ctx context.Context, r core.Randcode) error {
	if s.ttl > 0 {
		cutoff := s.now().Add(-s.ttl)
		if _, err := s.pool.Exec(ctx,
			`DELETE FROM open189_randcodes WHERE received_at < $1`, cutoff); err != nil {
			return fmt.Errorf("prune randcodes: %w", err)
		}
	}
	_, err := s.pool.Exec(ctx, `
		INSERT INTO open189_randcodes (identifier, rand_code, received_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (identifier) DO UPDATE
		SET rand_code = EXCLUDED.rand_code, received_at = EXCLUDED.received_at`,
		r.Identifier, r.Code, r.ReceivedAt)
	if err != nil {
		return fmt.Errorf("put randcode: %w", err)
	}
	return nil
}

// Get returns the code stored for identifier or core.ErrRandcodeNotFound.
func (s *CodeStore) Get(ctx context.Context, identifier string) (core.Randcode, error) {
	r := core.Randcode{Identifier: identifier}
	err := s.pool.QueryRow(ctx,
		`SELECT rand_code, received_at FROM open189_randcodes WHERE identifier = $1`,
		identifier).Scan(&r.Code, &r.ReceivedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return core.Randcode{}, core.ErrRandcodeNotFound
	}
	if err != nil {
		return core.Randcode{}, fmt.Errorf("get randcode: %w", err)
	}
	return r, nil
}

func (s *CodeStore) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}
