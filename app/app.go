package app

import (
	"log/slog"

	"labrain/database"
	"labrain/services"
)

// App holds all application dependencies
// This struct is the central point for dependency injection
type App struct {
	Store  *database.Store
	Repo   *database.Repository
	Notes  *services.NoteService
	Logger *slog.Logger
}

// New creates a new App instance around an opened store. The App takes
// over the caller's store reference; Close releases it.
func New(store *database.Store, logger *slog.Logger) *App {
	repo := database.NewRepository(store)
	return &App{
		Store:  store,
		Repo:   repo,
		Notes:  services.NewNoteService(repo, logger),
		Logger: logger,
	}
}

// Open opens the store in dataDir (or the platform data directory) and
// wires the application around it.
func Open(dataDir string, logger *slog.Logger) (*App, error) {
	store, err := database.Open(dataDir)
	if err != nil {
		return nil, err
	}

	path, _ := store.Path()
	logger.Debug("database initialized", "path", path)

	return New(store, logger), nil
}

// Close releases the App's reference to the store.
func (a *App) Close() error {
	return a.Store.Release()
}
