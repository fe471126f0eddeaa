// Package credentials persists the session credential (access token plus
// cached user record) across client restarts.
//
// Token and user are stored under fixed keys of the metadata table and are
// always written and cleared together. Load never fails: anything missing,
// partial or unparsable reads as "no credential", so a damaged record cannot
// block startup.
package credentials

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/hirepad/internal/client/models"
	"github.com/dmitrijs2005/hirepad/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/hirepad/internal/dbx"
	"github.com/dmitrijs2005/hirepad/internal/logging"
)

const (
	KeyAccessToken = "access_token"
	KeyUser        = "user"
)

// Store is the contract the session manager depends on.
type Store interface {
	Save(ctx context.Context, cred models.Credential) error
	Load(ctx context.Context) (models.Credential, bool)
	Clear(ctx context.Context) error
}

// SQLiteStore implements Store on top of the metadata repository.
type SQLiteStore struct {
	db     *sql.DB
	logger logging.Logger
}

func NewSQLiteStore(db *sql.DB, logger logging.Logger) *SQLiteStore {
	return &SQLiteStore{db: db, logger: logger}
}

// Save overwrites any previous credential. The token is not validated.
func (s *SQLiteStore) Save(ctx context.Context, cred models.Credential) error {
	user, err := json.Marshal(cred.User)
	if err != nil {
		return fmt.Errorf("encode user: %w", err)
	}

	return dbx.WithTx(ctx, s.db, func(ctx context.Context, tx dbx.DBTX) error {
		repo := metadata.NewSQLiteRepository(tx)
		if err := repo.Set(ctx, KeyAccessToken, []byte(cred.Token)); err != nil {
			return err
		}
		return repo.Set(ctx, KeyUser, user)
	})
}

// Load returns the last saved credential, or false when there is none or
// it cannot be read.
func (s *SQLiteStore) Load(ctx context.Context) (models.Credential, bool) {
	repo := metadata.NewSQLiteRepository(s.db)

	token, tokenErr := repo.Get(ctx, KeyAccessToken)
	rawUser, userErr := repo.Get(ctx, KeyUser)

	if errors.Is(tokenErr, metadata.ErrNotFound) && errors.Is(userErr, metadata.ErrNotFound) {
		return models.Credential{}, false
	}
	if err := errors.Join(tokenErr, userErr); err != nil {
		s.logger.Warn(ctx, "stored credential unreadable, ignoring", "error", err)
		return models.Credential{}, false
	}
	if len(token) == 0 {
		s.logger.Warn(ctx, "stored credential has empty token, ignoring")
		return models.Credential{}, false
	}

	var user models.User
	if err := json.Unmarshal(rawUser, &user); err != nil {
		s.logger.Warn(ctx, "stored user record corrupted, ignoring", "error", err)
		return models.Credential{}, false
	}

	return models.Credential{Token: string(token), User: user}, true
}

// Clear removes token and user together.
func (s *SQLiteStore) Clear(ctx context.Context) error {
	return metadata.NewSQLiteRepository(s.db).Delete(ctx, KeyAccessToken, KeyUser)
}
