// Package cli is the interactive terminal surface of Stillwater: a small
// REPL over the application services.
package cli

import (
	"bufio"
	"context"
	"database/sql"
	"log/slog"
	"os"

	"github.com/stillwater-app/stillwater/internal/client"
	"github.com/stillwater-app/stillwater/internal/config"
	"github.com/stillwater-app/stillwater/internal/cryptox"
	"github.com/stillwater-app/stillwater/internal/keystore"
	"github.com/stillwater-app/stillwater/internal/logging"
	"github.com/stillwater-app/stillwater/internal/remote"
	"github.com/stillwater-app/stillwater/internal/repositories/checkins"
	"github.com/stillwater-app/stillwater/internal/repositories/favorites"
	"github.com/stillwater-app/stillwater/internal/repositories/journal"
	"github.com/stillwater-app/stillwater/internal/repositories/reflections"
	"github.com/stillwater-app/stillwater/internal/repositories/stepwork"
	"github.com/stillwater-app/stillwater/internal/repositories/syncqueue"
	"github.com/stillwater-app/stillwater/internal/services"
	"github.com/stillwater-app/stillwater/internal/syncx"
)

type App struct {
	config *config.Config
	db     *sql.DB
	log    logging.Logger

	session     services.SessionService
	journal     services.JournalService
	checkins    services.CheckinService
	stepWork    services.StepWorkService
	favorites   services.FavoriteService
	reflections services.ReflectionService
	status      services.SyncStatusService
	engine      *syncx.Engine

	reader *bufio.Reader
}

// NewApp wires the full client: local store, key store, cipher, services,
// and the sync engine.
func NewApp(c *config.Config) (*App, error) {
	ctx := context.Background()

	logger := logging.NewSlogLogger(slog.New(slog.NewJSONHandler(os.Stderr, nil)))

	db, err := client.InitDatabase(ctx, c.DatabasePath)
	if err != nil {
		return nil, err
	}

	secrets, err := keystore.NewFileSecretStore(c.KeyStoreDir)
	if err != nil {
		return nil, err
	}
	keys := keystore.New(secrets)
	cipher := cryptox.New(keys)

	session := services.NewSessionService(db, keys, logger)
	if err := session.EnsureKey(ctx); err != nil {
		return nil, err
	}

	userID, err := session.LocalUserID(ctx)
	if err != nil {
		return nil, err
	}

	store := remote.NewHTTPStore(c.RemoteBaseURL, c.RemoteAPIKey, session)
	engine := syncx.NewEngine(syncqueue.NewSQLiteRepository(db), store, userID, logger, &syncx.Options{
		BatchSize:   c.SyncBatchSize,
		BaseBackoff: c.SyncBaseBackoff,
		CallTimeout: c.RemoteCallTimeout,
	})
	engine.Register(syncx.NewJournalSyncer(journal.NewSQLiteRepository(db)))
	engine.Register(syncx.NewStepWorkSyncer(stepwork.NewSQLiteRepository(db)))
	engine.Register(syncx.NewCheckinSyncer(checkins.NewSQLiteRepository(db)))
	engine.Register(syncx.NewFavoriteSyncer(favorites.NewSQLiteRepository(db)))
	engine.Register(syncx.NewReflectionSyncer(reflections.NewSQLiteRepository(db)))

	return &App{
		config:      c,
		db:          db,
		log:         logger,
		session:     session,
		journal:     services.NewJournalService(db, cipher, userID, logger),
		checkins:    services.NewCheckinService(db, cipher, userID, logger),
		stepWork:    services.NewStepWorkService(db, cipher, userID, logger),
		favorites:   services.NewFavoriteService(db, cipher, userID, logger),
		reflections: services.NewReflectionService(db, cipher, userID, logger),
		status:      services.NewSyncStatusService(db),
		engine:      engine,
		reader:      bufio.NewReader(os.Stdin),
	}, nil
}

func (a *App) Run(ctx context.Context) {
	defer a.db.Close()
	a.Root(ctx)
}
