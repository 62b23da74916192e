package repositories

// RepositoryProvider holds all repository interfaces needed by services.
// This makes passing dependencies to the service container constructor cleaner.
type RepositoryProvider struct {
	OpportunityRepo OpportunityRepositoryFacade
	HistoryRepo     HistoryRepositoryFacade
	CommentRepo     CommentRepositoryFacade
	SettingRepo     SettingReader
}
