package services_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/invoiceai/invoice_archive_app/internal/core/domain"
	portsrepo "github.com/invoiceai/invoice_archive_app/internal/core/ports/repositories"
	portssvc "github.com/invoiceai/invoice_archive_app/internal/core/ports/services"
	"github.com/invoiceai/invoice_archive_app/internal/core/services"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock ReportingRepository ---
type MockReportingRepo struct {
	mock.Mock
}

func (m *MockReportingRepo) GetVendorSpend(ctx context.Context, filter portsrepo.ReportingFilter) ([]domain.VendorSpend, error) {
	args := m.Called(ctx, filter)
	var rows []domain.VendorSpend
	if args.Get(0) != nil {
		rows = args.Get(0).([]domain.VendorSpend)
	}
	return rows, args.Error(1)
}

func (m *MockReportingRepo) GetMonthlySpend(ctx context.Context, year int) ([]domain.MonthlySpend, error) {
	args := m.Called(ctx, year)
	var rows []domain.MonthlySpend
	if args.Get(0) != nil {
		rows = args.Get(0).([]domain.MonthlySpend)
	}
	return rows, args.Error(1)
}

// --- Test Suite ---
type ReportingServiceTestSuite struct {
	suite.Suite
	mockReader *MockInvoiceReader
	mockRepo   *MockReportingRepo
	service    portssvc.ReportingSvcFacade
}

func (suite *ReportingServiceTestSuite) SetupTest() {
	suite.mockReader = new(MockInvoiceReader)
	suite.mockRepo = new(MockReportingRepo)
	suite.service = services.NewReportingService(suite.mockReader, suite.mockRepo)
}

func (suite *ReportingServiceTestSuite) TestSummary_Computation() {
	ctx := context.Background()
	now := time.Now()
	lastYear := now.AddDate(-1, 0, 0)

	records := []domain.Invoice{
		newTestInvoice("ACME SRL", now, "100.00", domain.StatusVerified),
		newTestInvoice("Beta SpA", now, "50.00", domain.StatusVerified),
		newTestInvoice(domain.UnknownVendor, lastYear, "25.00", domain.StatusDraft),
	}
	suite.mockReader.On("ListInvoices", ctx).Return(records, nil).Once()

	summary, err := suite.service.Summary(ctx)

	suite.Require().NoError(err)
	suite.Equal("175", summary.TotalSpent.String())
	suite.Equal("150", summary.TotalThisMonth.String())
	// The unknown-vendor placeholder does not count as a vendor.
	suite.Equal(2, summary.DistinctVendors)
	suite.Equal(1, summary.DraftCount)
	suite.Equal(3, summary.InvoiceCount)
	suite.Equal("58.33", summary.AverageInvoice.String())
}

func (suite *ReportingServiceTestSuite) TestSummary_EmptyArchive() {
	ctx := context.Background()
	suite.mockReader.On("ListInvoices", ctx).Return([]domain.Invoice{}, nil).Once()

	summary, err := suite.service.Summary(ctx)

	suite.Require().NoError(err)
	suite.True(summary.TotalSpent.IsZero())
	suite.True(summary.AverageInvoice.IsZero())
	suite.Zero(summary.InvoiceCount)
}

func (suite *ReportingServiceTestSuite) TestVendorSpend_DelegatesFilter() {
	ctx := context.Background()
	filter := portsrepo.ReportingFilter{Vendor: "ACME SRL", Year: 2025}
	rows := []domain.VendorSpend{{Vendor: "ACME SRL", Total: decimal.NewFromInt(300), InvoiceCount: 3}}

	suite.mockRepo.On("GetVendorSpend", ctx, filter).Return(rows, nil).Once()

	got, err := suite.service.VendorSpend(ctx, filter)
	suite.Require().NoError(err)
	suite.Equal(rows, got)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *ReportingServiceTestSuite) TestMonthlySpend_Delegates() {
	ctx := context.Background()
	rows := []domain.MonthlySpend{
		{Month: "2025-01", Total: decimal.NewFromInt(120)},
		{Month: "2025-02", Total: decimal.NewFromInt(80)},
	}

	suite.mockRepo.On("GetMonthlySpend", ctx, 2025).Return(rows, nil).Once()

	got, err := suite.service.MonthlySpend(ctx, 2025)
	suite.Require().NoError(err)
	suite.Equal(rows, got)
}

func (suite *ReportingServiceTestSuite) TestExportCSV_Format() {
	ctx := context.Background()
	inv := newTestInvoice(`Rossi "e figli" SRL`, time.Date(2025, 8, 14, 0, 0, 0, 0, time.UTC), "1250.50", domain.StatusVerified)
	inv.InvoiceNumber = "2025/042"

	suite.mockReader.On("ListInvoices", ctx).Return([]domain.Invoice{inv}, nil).Once()

	data, fileName, err := suite.service.ExportCSV(ctx)
	suite.Require().NoError(err)

	content := string(data)
	suite.True(strings.HasPrefix(content, "\xEF\xBB\xBF"), "export must start with a UTF-8 BOM")

	lines := strings.Split(strings.TrimPrefix(content, "\xEF\xBB\xBF"), "\n")
	suite.Require().GreaterOrEqual(len(lines), 2)
	suite.Equal("ID,Data,Fornitore,Numero,Importo,Valuta", lines[0])

	expectedRow := inv.InvoiceID + `,2025-08-14,"Rossi ""e figli"" SRL",2025/042,1250.5,EUR`
	suite.Equal(expectedRow, lines[1])

	suite.True(strings.HasPrefix(fileName, "report_fatture_"))
	suite.True(strings.HasSuffix(fileName, ".csv"))
}

func (suite *ReportingServiceTestSuite) TestExportCSV_VendorAlwaysQuoted() {
	ctx := context.Background()
	inv := newTestInvoice("ACME SRL", time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC), "10", domain.StatusVerified)

	suite.mockReader.On("ListInvoices", ctx).Return([]domain.Invoice{inv}, nil).Once()

	data, _, err := suite.service.ExportCSV(ctx)
	suite.Require().NoError(err)
	suite.Contains(string(data), `,"ACME SRL",`)
}

func TestReportingServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ReportingServiceTestSuite))
}
