package pgsql

import (
	"context"
	"fmt"
	"sync"

	portsrepo "github.com/invoiceai/invoice_archive_app/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// invoicesChannel is the LISTEN/NOTIFY channel fired by the invoices table
// trigger on every insert, update and delete.
const invoicesChannel = "invoices_changed"

// pgxChangeListener holds one dedicated connection on LISTEN. The pool's
// regular connections are not usable for this: notifications arrive only on
// the connection that issued LISTEN, so the listener pins one for itself.
type pgxChangeListener struct {
	pool *pgxpool.Pool

	mu   sync.Mutex
	conn *pgxpool.Conn
}

var _ portsrepo.InvoiceChangeListener = (*pgxChangeListener)(nil)

func newPgxChangeListener(pool *pgxpool.Pool) portsrepo.InvoiceChangeListener {
	return &pgxChangeListener{pool: pool}
}

// WaitForChange blocks until the next notification on the invoices channel
// or until ctx is done. On connection failure the pinned connection is
// dropped, so the next call re-establishes LISTEN from scratch.
func (l *pgxChangeListener) WaitForChange(ctx context.Context) error {
	conn, err := l.listeningConn(ctx)
	if err != nil {
		return err
	}

	if _, err := conn.Conn().WaitForNotification(ctx); err != nil {
		l.dropConn()
		return fmt.Errorf("failed waiting for invoice change notification: %w", err)
	}
	return nil
}

func (l *pgxChangeListener) listeningConn(ctx context.Context) (*pgxpool.Conn, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.conn != nil {
		return l.conn, nil
	}

	conn, err := l.pool.Acquire(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to acquire listener connection: %w", err)
	}
	if _, err := conn.Exec(ctx, fmt.Sprintf("LISTEN %s;", pgx.Identifier{invoicesChannel}.Sanitize())); err != nil {
		conn.Release()
		return nil, fmt.Errorf("failed to LISTEN on %s: %w", invoicesChannel, err)
	}
	l.conn = conn
	return conn, nil
}

func (l *pgxChangeListener) dropConn() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.conn != nil {
		l.conn.Release()
		l.conn = nil
	}
}
