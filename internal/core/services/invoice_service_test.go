package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/invoiceai/invoice_archive_app/internal/apperrors"
	"github.com/invoiceai/invoice_archive_app/internal/core/domain"
	"github.com/invoiceai/invoice_archive_app/internal/core/services"
	"github.com/invoiceai/invoice_archive_app/internal/dto"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock InvoiceReadCache ---
type MockInvoiceCache struct {
	mock.Mock
}

func (m *MockInvoiceCache) ListInvoices(ctx context.Context) ([]domain.Invoice, error) {
	args := m.Called(ctx)
	var invoices []domain.Invoice
	if args.Get(0) != nil {
		invoices = args.Get(0).([]domain.Invoice)
	}
	return invoices, args.Error(1)
}

func (m *MockInvoiceCache) FindInvoiceByID(ctx context.Context, invoiceID string) (*domain.Invoice, error) {
	args := m.Called(ctx, invoiceID)
	var inv *domain.Invoice
	if args.Get(0) != nil {
		inv = args.Get(0).(*domain.Invoice)
	}
	return inv, args.Error(1)
}

func (m *MockInvoiceCache) Refresh(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockInvoiceCache) Subscribe() (<-chan struct{}, func()) {
	args := m.Called()
	return args.Get(0).(<-chan struct{}), args.Get(1).(func())
}

// --- Mock InvoiceWriter ---
type MockInvoiceWriter struct {
	mock.Mock
}

func (m *MockInvoiceWriter) SaveInvoices(ctx context.Context, invoices []domain.Invoice) error {
	args := m.Called(ctx, invoices)
	return args.Error(0)
}

func (m *MockInvoiceWriter) UpdateInvoice(ctx context.Context, invoice domain.Invoice) error {
	args := m.Called(ctx, invoice)
	return args.Error(0)
}

func (m *MockInvoiceWriter) DeleteInvoice(ctx context.Context, invoiceID string) error {
	args := m.Called(ctx, invoiceID)
	return args.Error(0)
}

// --- Test Suite ---
type InvoiceServiceTestSuite struct {
	suite.Suite
	mockCache  *MockInvoiceCache
	mockWriter *MockInvoiceWriter
	service    *services.InvoiceService
}

func (suite *InvoiceServiceTestSuite) SetupTest() {
	suite.mockCache = new(MockInvoiceCache)
	suite.mockWriter = new(MockInvoiceWriter)
	suite.service = services.NewInvoiceService(suite.mockCache, suite.mockWriter)
}

func (suite *InvoiceServiceTestSuite) TestConfirmInvoice_Success() {
	ctx := context.Background()
	inv := newTestInvoice(domain.UnknownVendor, time.Now(), "0", domain.StatusDraft)
	inv.InvoiceNumber = domain.PlaceholderInvoiceNumber

	req := dto.ConfirmInvoiceRequest{
		InvoiceNumber: "2025/042",
		Vendor:        "ACME SRL",
		Date:          "2025-08-01",
		Amount:        decimal.NewFromInt(120),
		CurrencyCode:  "EUR",
	}

	suite.mockCache.On("FindInvoiceByID", ctx, inv.InvoiceID).Return(&inv, nil).Once()
	suite.mockWriter.On("UpdateInvoice", ctx, mock.MatchedBy(func(u domain.Invoice) bool {
		return u.Status == domain.StatusVerified && u.Vendor == "ACME SRL" && u.InvoiceNumber == "2025/042"
	})).Return(nil).Once()
	suite.mockCache.On("Refresh", ctx).Return(nil).Once()

	updated, err := suite.service.ConfirmInvoice(ctx, inv.InvoiceID, req, "user-1")

	suite.Require().NoError(err)
	suite.Equal(domain.StatusVerified, updated.Status)
	suite.Equal("ACME SRL", updated.Vendor)
	suite.Equal("user-1", updated.LastUpdatedBy)
	suite.mockWriter.AssertExpectations(suite.T())
	suite.mockCache.AssertExpectations(suite.T())
}

func (suite *InvoiceServiceTestSuite) TestConfirmInvoice_VerifiedRecordStaysEditable() {
	ctx := context.Background()
	inv := newTestInvoice("ACME SRL", time.Now(), "100", domain.StatusVerified)

	req := dto.ConfirmInvoiceRequest{
		InvoiceNumber: "2025/099",
		Vendor:        "ACME SRL",
		Date:          "2025-08-10",
		Amount:        decimal.NewFromInt(210),
	}

	suite.mockCache.On("FindInvoiceByID", ctx, inv.InvoiceID).Return(&inv, nil).Once()
	suite.mockWriter.On("UpdateInvoice", ctx, mock.AnythingOfType("domain.Invoice")).Return(nil).Once()
	suite.mockCache.On("Refresh", ctx).Return(nil).Once()

	updated, err := suite.service.ConfirmInvoice(ctx, inv.InvoiceID, req, "user-1")

	suite.Require().NoError(err)
	suite.Equal(domain.StatusVerified, updated.Status)
	// Currency not sent: the stored currency is kept.
	suite.Equal("EUR", updated.CurrencyCode)
}

func (suite *InvoiceServiceTestSuite) TestConfirmInvoice_RejectsInvalidInputBeforeStore() {
	ctx := context.Background()
	invoiceID := uuid.NewString()

	cases := []dto.ConfirmInvoiceRequest{
		{Vendor: "", Date: "2025-08-01", Amount: decimal.NewFromInt(10)},
		{Vendor: "ACME SRL", Date: "", Amount: decimal.NewFromInt(10)},
		{Vendor: "ACME SRL", Date: "2025-08-01", Amount: decimal.Zero},
		{Vendor: "ACME SRL", Date: "2025-08-01", Amount: decimal.NewFromInt(-5)},
	}
	for _, req := range cases {
		_, err := suite.service.ConfirmInvoice(ctx, invoiceID, req, "user-1")
		suite.Require().Error(err)
		suite.ErrorIs(err, apperrors.ErrValidation)
	}

	// No store access for any rejected request.
	suite.mockCache.AssertNotCalled(suite.T(), "FindInvoiceByID", mock.Anything, mock.Anything)
	suite.mockWriter.AssertNotCalled(suite.T(), "UpdateInvoice", mock.Anything, mock.Anything)
}

func (suite *InvoiceServiceTestSuite) TestQuickApprove_Success() {
	ctx := context.Background()
	inv := newTestInvoice("ACME SRL", time.Now(), "100", domain.StatusDraft)

	suite.mockCache.On("FindInvoiceByID", ctx, inv.InvoiceID).Return(&inv, nil).Once()
	suite.mockWriter.On("UpdateInvoice", ctx, mock.MatchedBy(func(u domain.Invoice) bool {
		return u.Status == domain.StatusVerified && u.Vendor == "ACME SRL"
	})).Return(nil).Once()
	suite.mockCache.On("Refresh", ctx).Return(nil).Once()

	updated, err := suite.service.QuickApprove(ctx, inv.InvoiceID, "user-1")
	suite.Require().NoError(err)
	suite.Equal(domain.StatusVerified, updated.Status)
}

func (suite *InvoiceServiceTestSuite) TestQuickApprove_RejectsUnknownVendor() {
	ctx := context.Background()
	inv := newTestInvoice(domain.UnknownVendor, time.Now(), "0", domain.StatusDraft)

	suite.mockCache.On("FindInvoiceByID", ctx, inv.InvoiceID).Return(&inv, nil).Once()

	_, err := suite.service.QuickApprove(ctx, inv.InvoiceID, "user-1")
	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockWriter.AssertNotCalled(suite.T(), "UpdateInvoice", mock.Anything, mock.Anything)
}

func (suite *InvoiceServiceTestSuite) TestQuickApprove_RejectsVerifiedRecord() {
	ctx := context.Background()
	inv := newTestInvoice("ACME SRL", time.Now(), "100", domain.StatusVerified)

	suite.mockCache.On("FindInvoiceByID", ctx, inv.InvoiceID).Return(&inv, nil).Once()

	_, err := suite.service.QuickApprove(ctx, inv.InvoiceID, "user-1")
	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *InvoiceServiceTestSuite) TestNextDraft_SkipsAfterID() {
	ctx := context.Background()
	now := time.Now()
	current := newTestInvoice("ACME SRL", now, "10", domain.StatusDraft)
	other := newTestInvoice("Beta SpA", now.Add(-time.Hour), "20", domain.StatusDraft)
	verified := newTestInvoice("Gamma", now, "30", domain.StatusVerified)

	suite.mockCache.On("ListInvoices", ctx).Return([]domain.Invoice{verified, current, other}, nil).Once()

	next, err := suite.service.NextDraft(ctx, current.InvoiceID)
	suite.Require().NoError(err)
	suite.Require().NotNil(next)
	suite.Equal(other.InvoiceID, next.InvoiceID)
}

func (suite *InvoiceServiceTestSuite) TestNextDraft_NilWhenNoneRemain() {
	ctx := context.Background()
	verified := newTestInvoice("ACME SRL", time.Now(), "10", domain.StatusVerified)

	suite.mockCache.On("ListInvoices", ctx).Return([]domain.Invoice{verified}, nil).Once()

	next, err := suite.service.NextDraft(ctx, "")
	suite.Require().NoError(err)
	suite.Nil(next)
}

func (suite *InvoiceServiceTestSuite) TestDeleteInvoice_ReturnsNextDraft() {
	ctx := context.Background()
	now := time.Now()
	toDelete := newTestInvoice("ACME SRL", now, "10", domain.StatusDraft)
	remaining := newTestInvoice("Beta SpA", now.Add(-time.Hour), "20", domain.StatusDraft)

	suite.mockCache.On("FindInvoiceByID", ctx, toDelete.InvoiceID).Return(&toDelete, nil).Once()
	suite.mockWriter.On("DeleteInvoice", ctx, toDelete.InvoiceID).Return(nil).Once()
	suite.mockCache.On("Refresh", ctx).Return(nil).Once()
	suite.mockCache.On("ListInvoices", ctx).Return([]domain.Invoice{remaining}, nil).Once()

	next, err := suite.service.DeleteInvoice(ctx, toDelete.InvoiceID, "user-1")
	suite.Require().NoError(err)
	suite.Require().NotNil(next)
	suite.Equal(remaining.InvoiceID, next.InvoiceID)
	suite.mockWriter.AssertExpectations(suite.T())
}

func (suite *InvoiceServiceTestSuite) TestDeleteInvoice_NotFound() {
	ctx := context.Background()
	invoiceID := uuid.NewString()

	suite.mockCache.On("FindInvoiceByID", ctx, invoiceID).Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.DeleteInvoice(ctx, invoiceID, "user-1")
	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockWriter.AssertNotCalled(suite.T(), "DeleteInvoice", mock.Anything, mock.Anything)
}

func TestInvoiceServiceTestSuite(t *testing.T) {
	suite.Run(t, new(InvoiceServiceTestSuite))
}
