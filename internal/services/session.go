package services

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/stillwater-app/stillwater/internal/common"
	"github.com/stillwater-app/stillwater/internal/dbx"
	"github.com/stillwater-app/stillwater/internal/keystore"
	"github.com/stillwater-app/stillwater/internal/logging"
	"github.com/stillwater-app/stillwater/internal/repositories/metadata"
)

// SessionService manages the encryption-key lifecycle and the cached remote
// session. It also implements remote.TokenProvider.
type SessionService interface {
	// EnsureKey creates the content key on first use. Safe to call on every
	// startup; an existing key is left untouched.
	EnsureKey(ctx context.Context) error

	// Login caches the remote identity and access token locally.
	Login(ctx context.Context, userID, accessToken string) error

	// UserID returns the cached remote user id, or "" when logged out.
	UserID(ctx context.Context) (string, error)

	// LocalUserID returns the stable installation-local user id, creating
	// it on first call. Domain records are owned by this id until a remote
	// identity exists.
	LocalUserID(ctx context.Context) (string, error)

	// AccessToken returns the cached token for remote calls.
	AccessToken(ctx context.Context) (string, error)

	// Logout destroys the encryption key and wipes all local content. After
	// logout every encrypted column in existence is unrecoverable, which is
	// the point.
	Logout(ctx context.Context) error
}

type sessionService struct {
	db   *sql.DB
	keys *keystore.KeyStore
	log  logging.Logger
}

func NewSessionService(db *sql.DB, keys *keystore.KeyStore, log logging.Logger) SessionService {
	return &sessionService{db: db, keys: keys, log: log}
}

func (s *sessionService) EnsureKey(ctx context.Context) error {
	ok, err := s.keys.HasKey()
	if err != nil {
		return err
	}
	if ok {
		return nil
	}
	if _, err := s.keys.GenerateKey(); err != nil {
		return fmt.Errorf("generating content key: %w", err)
	}
	s.log.Info(ctx, "content encryption key created")
	return nil
}

func newMetadataRepo(db dbx.DBTX) metadata.Repository {
	return metadata.NewSQLiteRepository(db)
}

func (s *sessionService) Login(ctx context.Context, userID, accessToken string) error {
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := newMetadataRepo(tx)
		if err := repo.Set(ctx, common.MetaRemoteUserID, []byte(userID)); err != nil {
			return err
		}
		return repo.Set(ctx, common.MetaAccessToken, []byte(accessToken))
	})
}

func (s *sessionService) LocalUserID(ctx context.Context) (string, error) {
	repo := newMetadataRepo(s.db)
	v, err := repo.Get(ctx, common.MetaLocalUserID)
	if err != nil {
		return "", err
	}
	if len(v) > 0 {
		return string(v), nil
	}
	id := uuid.NewString()
	if err := repo.Set(ctx, common.MetaLocalUserID, []byte(id)); err != nil {
		return "", err
	}
	return id, nil
}

func (s *sessionService) UserID(ctx context.Context) (string, error) {
	v, err := newMetadataRepo(s.db).Get(ctx, common.MetaRemoteUserID)
	if err != nil {
		return "", err
	}
	return string(v), nil
}

func (s *sessionService) AccessToken(ctx context.Context) (string, error) {
	v, err := newMetadataRepo(s.db).Get(ctx, common.MetaAccessToken)
	if err != nil {
		return "", err
	}
	return string(v), nil
}

// wipedTables is every local table holding user content or sync state.
var wipedTables = []string{
	common.TableJournalEntries,
	common.TableStepWork,
	common.TableDailyCheckins,
	common.TableFavoriteMeetings,
	common.TableReadingReflections,
	"sync_queue",
}

func (s *sessionService) Logout(ctx context.Context) error {
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		for _, table := range wipedTables {
			if _, err := tx.ExecContext(ctx, `DELETE FROM `+table); err != nil {
				return fmt.Errorf("wiping %s: %w", table, err)
			}
		}
		return newMetadataRepo(tx).Clear(ctx)
	})
	if err != nil {
		return err
	}

	if err := s.keys.DeleteKey(); err != nil {
		return err
	}
	s.log.Info(ctx, "logged out, local data wiped")
	return nil
}
