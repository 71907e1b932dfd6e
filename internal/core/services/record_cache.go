package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/invoiceai/invoice_archive_app/internal/apperrors"
	"github.com/invoiceai/invoice_archive_app/internal/core/domain"
	portsrepo "github.com/invoiceai/invoice_archive_app/internal/core/ports/repositories"
)

// listenRetryDelay is the pause before re-arming the change listener after a
// failure, so a flapping database connection does not spin the loop.
const listenRetryDelay = 5 * time.Second

// InvoiceCache is the single in-memory view of the invoice table. It is
// mutated only by Refresh, which replaces the whole snapshot with a fresh
// fetch: after any change notification or local write the store's view wins
// over whatever was cached. All read paths go through it.
type InvoiceCache struct {
	repo     portsrepo.InvoiceReader
	listener portsrepo.InvoiceChangeListener
	logger   *slog.Logger

	mu      sync.RWMutex
	records []domain.Invoice
	loaded  bool

	subMu   sync.Mutex
	subs    map[int]chan struct{}
	nextSub int
}

var _ portsrepo.InvoiceReadCache = (*InvoiceCache)(nil)

// NewInvoiceCache creates the cache. Call Refresh once for the initial load
// and Run in a goroutine to follow store change notifications.
func NewInvoiceCache(repo portsrepo.InvoiceReader, listener portsrepo.InvoiceChangeListener, logger *slog.Logger) *InvoiceCache {
	return &InvoiceCache{
		repo:     repo,
		listener: listener,
		logger:   logger,
		subs:     make(map[int]chan struct{}),
	}
}

// Refresh re-fetches the full record list and replaces the snapshot.
// Applying the same fetch result twice leaves the cache unchanged.
func (c *InvoiceCache) Refresh(ctx context.Context) error {
	records, err := c.repo.ListInvoices(ctx)
	if err != nil {
		return fmt.Errorf("failed to refresh invoice cache: %w", err)
	}

	c.mu.Lock()
	c.records = records
	c.loaded = true
	c.mu.Unlock()

	c.notifySubscribers()
	return nil
}

// ListInvoices returns a copy of the cached record list, loading it first if
// the cache is still cold.
func (c *InvoiceCache) ListInvoices(ctx context.Context) ([]domain.Invoice, error) {
	c.mu.RLock()
	loaded := c.loaded
	c.mu.RUnlock()

	if !loaded {
		if err := c.Refresh(ctx); err != nil {
			return nil, err
		}
	}

	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]domain.Invoice, len(c.records))
	copy(out, c.records)
	return out, nil
}

// FindInvoiceByID returns the cached record with the given ID.
func (c *InvoiceCache) FindInvoiceByID(ctx context.Context, invoiceID string) (*domain.Invoice, error) {
	records, err := c.ListInvoices(ctx)
	if err != nil {
		return nil, err
	}
	for i := range records {
		if records[i].InvoiceID == invoiceID {
			return &records[i], nil
		}
	}
	return nil, apperrors.ErrNotFound
}

// Subscribe registers for change ticks. The channel has capacity one and
// ticks are dropped rather than queued when the subscriber lags; a tick only
// means "re-read the cache".
func (c *InvoiceCache) Subscribe() (<-chan struct{}, func()) {
	c.subMu.Lock()
	defer c.subMu.Unlock()

	id := c.nextSub
	c.nextSub++
	ch := make(chan struct{}, 1)
	c.subs[id] = ch

	unsubscribe := func() {
		c.subMu.Lock()
		defer c.subMu.Unlock()
		delete(c.subs, id)
	}
	return ch, unsubscribe
}

// Run follows store change notifications until ctx is done, re-fetching the
// full list on every signal.
func (c *InvoiceCache) Run(ctx context.Context) {
	for {
		if err := c.listener.WaitForChange(ctx); err != nil {
			if ctx.Err() != nil || errors.Is(err, context.Canceled) {
				return
			}
			c.logger.Error("Invoice change listener failed, retrying",
				slog.String("error", err.Error()),
				slog.Duration("retry_in", listenRetryDelay))
			select {
			case <-ctx.Done():
				return
			case <-time.After(listenRetryDelay):
			}
			continue
		}

		if err := c.Refresh(ctx); err != nil {
			if ctx.Err() != nil {
				return
			}
			c.logger.Error("Invoice cache refresh failed after change notification",
				slog.String("error", err.Error()))
		}
	}
}

func (c *InvoiceCache) notifySubscribers() {
	c.subMu.Lock()
	defer c.subMu.Unlock()
	for _, ch := range c.subs {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
}
