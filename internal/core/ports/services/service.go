package services

// ServiceContainer holds instances of all the application services.
// This is the main entry point for accessing service functionality and
// is used throughout the application, particularly in the handlers.
// User and Session are nil when the application runs without accounts.
type ServiceContainer struct {
	Transaction  TransactionSvcFacade
	Summary      SummarySvc
	User         UserSvcFacade
	Session      SessionSvcFacade
	LegacyImport LegacyImportSvc
}
