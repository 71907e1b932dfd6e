package services

import (
	portsrepo "github.com/invoiceai/invoice_archive_app/internal/core/ports/repositories"
	portssvc "github.com/invoiceai/invoice_archive_app/internal/core/ports/services"
	"github.com/invoiceai/invoice_archive_app/internal/extraction"
	"github.com/invoiceai/invoice_archive_app/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider, cache portsrepo.InvoiceReadCache, extractor extraction.Extractor) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	container.User = NewUserService(repos.UserRepo)
	container.Token = NewTokenService(cfg)
	container.GoogleOAuth = NewGoogleOAuthService(cfg)

	// Vendor index is derived from the cached record list; the ingestion
	// service uses it for extraction hints.
	container.Vendor = NewVendorService(cache)
	container.Invoice = NewInvoiceService(cache, repos.InvoiceRepo)
	container.Ingestion = NewIngestionService(extractor, repos.InvoiceRepo, cache, container.Vendor, cfg.DefaultCurrency)
	container.Reporting = NewReportingService(cache, repos.ReportingRepo)

	return container
}
