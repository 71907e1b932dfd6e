package services_test

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/invoiceai/invoice_archive_app/internal/apperrors"
	"github.com/invoiceai/invoice_archive_app/internal/core/domain"
	"github.com/invoiceai/invoice_archive_app/internal/core/services"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock InvoiceReader ---
type MockInvoiceReader struct {
	mock.Mock
}

func (m *MockInvoiceReader) ListInvoices(ctx context.Context) ([]domain.Invoice, error) {
	args := m.Called(ctx)
	var invoices []domain.Invoice
	if args.Get(0) != nil {
		invoices = args.Get(0).([]domain.Invoice)
	}
	return invoices, args.Error(1)
}

func (m *MockInvoiceReader) FindInvoiceByID(ctx context.Context, invoiceID string) (*domain.Invoice, error) {
	args := m.Called(ctx, invoiceID)
	var inv *domain.Invoice
	if args.Get(0) != nil {
		inv = args.Get(0).(*domain.Invoice)
	}
	return inv, args.Error(1)
}

// --- Mock InvoiceChangeListener ---
type MockChangeListener struct {
	mock.Mock
}

func (m *MockChangeListener) WaitForChange(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// newTestInvoice builds a verified invoice for cache and service tests.
func newTestInvoice(vendor string, date time.Time, amount string, status domain.InvoiceStatus) domain.Invoice {
	amt, _ := decimal.NewFromString(amount)
	return domain.Invoice{
		InvoiceID:     uuid.NewString(),
		InvoiceNumber: "INV-" + uuid.NewString()[:8],
		Vendor:        vendor,
		Date:          date,
		Amount:        amt,
		CurrencyCode:  "EUR",
		FileName:      "fattura.pdf",
		Status:        status,
		AuditFields: domain.AuditFields{
			CreatedAt:     date,
			LastUpdatedAt: date,
		},
	}
}

// --- Test Suite ---
type InvoiceCacheTestSuite struct {
	suite.Suite
	mockReader   *MockInvoiceReader
	mockListener *MockChangeListener
	cache        *services.InvoiceCache
}

func (suite *InvoiceCacheTestSuite) SetupTest() {
	suite.mockReader = new(MockInvoiceReader)
	suite.mockListener = new(MockChangeListener)
	suite.cache = services.NewInvoiceCache(suite.mockReader, suite.mockListener, slog.Default())
}

func (suite *InvoiceCacheTestSuite) TestRefresh_ReplacesSnapshot() {
	ctx := context.Background()
	first := []domain.Invoice{newTestInvoice("ACME SRL", time.Now(), "100", domain.StatusVerified)}
	second := []domain.Invoice{
		newTestInvoice("ACME SRL", time.Now(), "100", domain.StatusVerified),
		newTestInvoice("Beta SpA", time.Now(), "50", domain.StatusDraft),
	}

	suite.mockReader.On("ListInvoices", ctx).Return(first, nil).Once()
	suite.Require().NoError(suite.cache.Refresh(ctx))

	records, err := suite.cache.ListInvoices(ctx)
	suite.Require().NoError(err)
	suite.Len(records, 1)

	// A second refresh replaces the whole snapshot, it does not merge.
	suite.mockReader.On("ListInvoices", ctx).Return(second, nil).Once()
	suite.Require().NoError(suite.cache.Refresh(ctx))

	records, err = suite.cache.ListInvoices(ctx)
	suite.Require().NoError(err)
	suite.Len(records, 2)

	suite.mockReader.AssertExpectations(suite.T())
}

func (suite *InvoiceCacheTestSuite) TestListInvoices_LazyLoadsOnce() {
	ctx := context.Background()
	records := []domain.Invoice{newTestInvoice("ACME SRL", time.Now(), "100", domain.StatusVerified)}

	suite.mockReader.On("ListInvoices", ctx).Return(records, nil).Once()

	got, err := suite.cache.ListInvoices(ctx)
	suite.Require().NoError(err)
	suite.Len(got, 1)

	// Second read is served from the snapshot, no second fetch.
	got, err = suite.cache.ListInvoices(ctx)
	suite.Require().NoError(err)
	suite.Len(got, 1)

	suite.mockReader.AssertExpectations(suite.T())
}

func (suite *InvoiceCacheTestSuite) TestListInvoices_ReturnsCopy() {
	ctx := context.Background()
	records := []domain.Invoice{newTestInvoice("ACME SRL", time.Now(), "100", domain.StatusVerified)}

	suite.mockReader.On("ListInvoices", ctx).Return(records, nil).Once()

	got, err := suite.cache.ListInvoices(ctx)
	suite.Require().NoError(err)
	got[0].Vendor = "mutated"

	again, err := suite.cache.ListInvoices(ctx)
	suite.Require().NoError(err)
	suite.Equal("ACME SRL", again[0].Vendor)
}

func (suite *InvoiceCacheTestSuite) TestFindInvoiceByID_NotFound() {
	ctx := context.Background()
	suite.mockReader.On("ListInvoices", ctx).Return([]domain.Invoice{}, nil).Once()

	inv, err := suite.cache.FindInvoiceByID(ctx, uuid.NewString())
	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.Nil(inv)
}

func (suite *InvoiceCacheTestSuite) TestSubscribe_TickOnRefresh() {
	ctx := context.Background()
	suite.mockReader.On("ListInvoices", ctx).Return([]domain.Invoice{}, nil)

	ticks, unsubscribe := suite.cache.Subscribe()
	defer unsubscribe()

	suite.Require().NoError(suite.cache.Refresh(ctx))

	select {
	case <-ticks:
	case <-time.After(time.Second):
		suite.Fail("expected a tick after refresh")
	}
}

func (suite *InvoiceCacheTestSuite) TestSubscribe_DroppedTicksDoNotBlock() {
	ctx := context.Background()
	suite.mockReader.On("ListInvoices", ctx).Return([]domain.Invoice{}, nil)

	ticks, unsubscribe := suite.cache.Subscribe()
	defer unsubscribe()

	// Nobody reads between refreshes; the second tick is dropped, not queued.
	suite.Require().NoError(suite.cache.Refresh(ctx))
	suite.Require().NoError(suite.cache.Refresh(ctx))

	<-ticks
	select {
	case <-ticks:
		suite.Fail("expected at most one queued tick")
	default:
	}
}

func TestInvoiceCacheTestSuite(t *testing.T) {
	suite.Run(t, new(InvoiceCacheTestSuite))
}
