package repositories

// RepositoryProvider holds all repository interfaces needed by services.
// This makes passing dependencies to the service container constructor cleaner.
type RepositoryProvider struct {
	JobRepo          JobRepositoryFacade
	BuildingRepo     BuildingReader
	UserRepo         UserRepositoryFacade
	ReviewRepo       ReviewRepositoryFacade
	NotificationRepo NotificationWriter
	ChangeFeed       ChangeFeed
}
