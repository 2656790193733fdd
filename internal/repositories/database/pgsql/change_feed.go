package pgsql

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/cleanit/cleanit_admin/internal/core/domain"
	portsrepo "github.com/cleanit/cleanit_admin/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ChangeChannel is the NOTIFY channel written by the change triggers. Payloads are
// "<table>:<id>".
const ChangeChannel = "cleanit_changes"

const (
	minReconnectDelay = time.Second
	maxReconnectDelay = 30 * time.Second
)

// PgxChangeFeed turns Postgres notifications into change events. It holds one pooled
// connection for the lifetime of Listen and reconnects with backoff when it drops.
type PgxChangeFeed struct {
	pool   *pgxpool.Pool
	logger *slog.Logger
}

func newPgxChangeFeed(pool *pgxpool.Pool, logger *slog.Logger) portsrepo.ChangeFeed {
	return &PgxChangeFeed{pool: pool, logger: logger}
}

var _ portsrepo.ChangeFeed = (*PgxChangeFeed)(nil)

func parseChangePayload(payload string) (domain.ChangeEvent, bool) {
	table, id, ok := strings.Cut(payload, ":")
	if !ok {
		return domain.ChangeEvent{}, false
	}
	for _, c := range domain.Collections {
		if string(c) == table {
			return domain.ChangeEvent{Collection: c, DocumentID: id, At: time.Now()}, true
		}
	}
	return domain.ChangeEvent{}, false
}

func (f *PgxChangeFeed) Listen(ctx context.Context, handle func(domain.ChangeEvent)) error {
	delay := minReconnectDelay
	for {
		err := f.listenOnce(ctx, handle, func() { delay = minReconnectDelay })
		if ctx.Err() != nil {
			return nil
		}
		f.logger.Warn("Change feed connection lost, reconnecting",
			slog.String("error", err.Error()),
			slog.Duration("retry_in", delay))
		select {
		case <-ctx.Done():
			return nil
		case <-time.After(delay):
		}
		delay = min(delay*2, maxReconnectDelay)
	}
}

func (f *PgxChangeFeed) listenOnce(ctx context.Context, handle func(domain.ChangeEvent), connected func()) error {
	conn, err := f.pool.Acquire(ctx)
	if err != nil {
		return fmt.Errorf("failed to acquire listener connection: %w", err)
	}
	// A LISTEN session must not go back to the pool.
	listener := conn.Hijack()
	defer listener.Close(context.Background())

	if _, err := listener.Exec(ctx, "LISTEN "+ChangeChannel); err != nil {
		return fmt.Errorf("failed to listen on %s: %w", ChangeChannel, err)
	}
	connected()
	f.logger.Info("Change feed listening", slog.String("channel", ChangeChannel))

	for {
		n, err := listener.WaitForNotification(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return err
			}
			return fmt.Errorf("failed waiting for notification: %w", err)
		}
		ev, ok := parseChangePayload(n.Payload)
		if !ok {
			f.logger.Debug("Ignoring change notification", slog.String("payload", n.Payload))
			continue
		}
		handle(ev)
	}
}
