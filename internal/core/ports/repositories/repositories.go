package repositories

// RepositoryProvider holds instances of all repositories, for dependency
// injection into the service layer.
type RepositoryProvider struct {
	InvoiceRepo    InvoiceRepositoryWithTx
	UserRepo       UserRepositoryFacade
	ReportingRepo  ReportingRepository
	ChangeListener InvoiceChangeListener
}
