package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/invoiceai/invoice_archive_app/internal/core/domain"
	"github.com/invoiceai/invoice_archive_app/internal/core/services"
	"github.com/stretchr/testify/suite"
)

type VendorServiceTestSuite struct {
	suite.Suite
	mockReader *MockInvoiceReader
	service    *services.VendorService
}

func (suite *VendorServiceTestSuite) SetupTest() {
	suite.mockReader = new(MockInvoiceReader)
	suite.service = services.NewVendorService(suite.mockReader)
}

func (suite *VendorServiceTestSuite) TestDistinctVendors_ExcludesUnknownPlaceholder() {
	ctx := context.Background()
	now := time.Now()
	records := []domain.Invoice{
		newTestInvoice("ACME SRL", now, "100", domain.StatusVerified),
		newTestInvoice(domain.UnknownVendor, now, "0", domain.StatusDraft),
		newTestInvoice("Beta SpA", now, "50", domain.StatusVerified),
	}
	suite.mockReader.On("ListInvoices", ctx).Return(records, nil).Once()

	vendors, err := suite.service.DistinctVendors(ctx, false)
	suite.Require().NoError(err)
	suite.Equal([]string{"ACME SRL", "Beta SpA"}, vendors)
}

func (suite *VendorServiceTestSuite) TestDistinctVendors_CaseAndWhitespaceStayDistinct() {
	ctx := context.Background()
	now := time.Now()
	records := []domain.Invoice{
		newTestInvoice("ACME SRL", now, "100", domain.StatusVerified),
		newTestInvoice("Acme Srl", now, "100", domain.StatusVerified),
		newTestInvoice("ACME SRL ", now, "100", domain.StatusVerified),
	}
	suite.mockReader.On("ListInvoices", ctx).Return(records, nil).Once()

	vendors, err := suite.service.DistinctVendors(ctx, false)
	suite.Require().NoError(err)
	suite.Len(vendors, 3)
}

func (suite *VendorServiceTestSuite) TestDistinctVendors_VerifiedOnlySkipsDrafts() {
	ctx := context.Background()
	now := time.Now()
	records := []domain.Invoice{
		newTestInvoice("ACME SRL", now, "100", domain.StatusVerified),
		newTestInvoice("Draft Vendor", now, "10", domain.StatusDraft),
	}
	suite.mockReader.On("ListInvoices", ctx).Return(records, nil).Once()

	vendors, err := suite.service.DistinctVendors(ctx, true)
	suite.Require().NoError(err)
	suite.Equal([]string{"ACME SRL"}, vendors)
}

func (suite *VendorServiceTestSuite) TestSuggest_CaseInsensitiveContains() {
	ctx := context.Background()
	now := time.Now()
	records := []domain.Invoice{
		newTestInvoice("ACME SRL", now, "100", domain.StatusVerified),
		newTestInvoice("Beta SpA", now, "50", domain.StatusVerified),
		newTestInvoice("Gamma Acmetrics", now, "20", domain.StatusVerified),
	}
	suite.mockReader.On("ListInvoices", ctx).Return(records, nil).Once()

	matches, err := suite.service.Suggest(ctx, "acme")
	suite.Require().NoError(err)
	suite.Equal([]string{"ACME SRL", "Gamma Acmetrics"}, matches)
}

func (suite *VendorServiceTestSuite) TestHintRecords_VerifiedNewestFirstClamped() {
	ctx := context.Background()
	base := time.Now()
	records := []domain.Invoice{}
	for i := 0; i < 8; i++ {
		inv := newTestInvoice("Vendor", base.Add(time.Duration(i)*time.Hour), "10", domain.StatusVerified)
		inv.CreatedAt = base.Add(time.Duration(i) * time.Hour)
		records = append(records, inv)
	}
	draft := newTestInvoice("Draft Vendor", base.Add(100*time.Hour), "10", domain.StatusDraft)
	draft.CreatedAt = base.Add(100 * time.Hour)
	records = append(records, draft)

	suite.mockReader.On("ListInvoices", ctx).Return(records, nil).Once()

	hints, err := suite.service.HintRecords(ctx, 50)
	suite.Require().NoError(err)
	suite.Len(hints, 5)
	for _, h := range hints {
		suite.Equal(domain.StatusVerified, h.Status)
	}
	// Newest verified record comes first.
	suite.Equal(base.Add(7*time.Hour), hints[0].CreatedAt)
}

func TestVendorServiceTestSuite(t *testing.T) {
	suite.Run(t, new(VendorServiceTestSuite))
}
