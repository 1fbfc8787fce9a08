package storage

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"golang.org/x/sync/singleflight"

	"costconnect/internal/core"
)

// Pool owns the process-wide repository handle. The handle is established
// lazily on first use and reused afterwards. Acquisition is idempotent:
// concurrent callers before the first successful open share a single
// in-flight attempt, and a failed attempt is simply retried by the next
// caller instead of taking the process down.
type Pool struct {
	dbPath string

	mu   sync.Mutex
	repo *Repository

	group singleflight.Group
	open  func(string) (*Repository, error)
}

// NewPool prepares a pool for the database at dbPath. Nothing is opened
// until the first Acquire.
func NewPool(dbPath string) *Pool {
	return &Pool{dbPath: dbPath, open: NewRepository}
}

// Acquire returns the shared repository, opening it if this is the first
// use. On failure the error is reported and cached state stays empty, so
// the next request retries.
func (p *Pool) Acquire(ctx context.Context) (*Repository, error) {
	p.mu.Lock()
	repo := p.repo
	p.mu.Unlock()
	if repo != nil {
		return repo, nil
	}

	v, err, _ := p.group.Do("open", func() (any, error) {
		// Re-check: another flight may have just finished.
		p.mu.Lock()
		if p.repo != nil {
			r := p.repo
			p.mu.Unlock()
			return r, nil
		}
		p.mu.Unlock()

		r, err := p.open(p.dbPath)
		if err != nil {
			return nil, err
		}

		p.mu.Lock()
		p.repo = r
		p.mu.Unlock()

		slog.InfoContext(ctx, "Database connection established", "path", p.dbPath)
		return r, nil
	})
	if err != nil {
		slog.ErrorContext(ctx, "Database connection failed", "error", err, "path", p.dbPath)
		return nil, fmt.Errorf("%w: %v", core.ErrStorageUnready, err)
	}
	return v.(*Repository), nil
}

// Ready pings the store, acquiring it first if needed.
func (p *Pool) Ready(ctx context.Context) error {
	repo, err := p.Acquire(ctx)
	if err != nil {
		return err
	}
	if err := repo.Ping(ctx); err != nil {
		return fmt.Errorf("%w: %v", core.ErrStorageUnready, err)
	}
	return nil
}

// Close releases the handle if one was ever opened.
func (p *Pool) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.repo == nil {
		return nil
	}
	err := p.repo.Close()
	p.repo = nil
	return err
}
