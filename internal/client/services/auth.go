// Package services contains the application services of the roomadmin
// CLI. They sit between the commands and the REST client, keep the local
// query cache coherent and turn partial failures into notifications.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/roomadmin/internal/client/client"
	"github.com/dmitrijs2005/roomadmin/internal/client/models"
	"github.com/dmitrijs2005/roomadmin/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/roomadmin/internal/client/repositories/querycache"
	"github.com/dmitrijs2005/roomadmin/internal/common"
	"github.com/dmitrijs2005/roomadmin/internal/dbx"
	"github.com/dmitrijs2005/roomadmin/internal/logging"
)

// AuthService logs the CLI user in and out.
//
// Tokens live in the HTTP client only; the local database keeps the
// username so the prompt can show who is logged in.
type AuthService interface {
	Login(ctx context.Context, username, password string) (*models.User, error)
	Logout(ctx context.Context) error
	// CurrentUser returns the remembered username, or "" when nobody is
	// logged in.
	CurrentUser(ctx context.Context) (string, error)
	LoggedIn() bool
}

type authService struct {
	client client.Client
	db     *sql.DB
	cache  querycache.Repository
	logger logging.Logger
	now    func() time.Time
}

func NewAuthService(c client.Client, db *sql.DB, cache querycache.Repository, logger logging.Logger) AuthService {
	if logger == nil {
		logger = logging.Discard()
	}
	return &authService{client: c, db: db, cache: cache, logger: logger, now: time.Now}
}

func (a *authService) Login(ctx context.Context, username, password string) (*models.User, error) {
	if username == "" || password == "" {
		return nil, fmt.Errorf("%w: username and password are required", common.ErrorValidation)
	}

	resp, err := a.client.Login(ctx, models.Credentials{Username: username, Password: password})
	if err != nil {
		return nil, fmt.Errorf("login error: %w", err)
	}

	user := models.User{Name: username}
	if resp.User != nil {
		user = *resp.User
	}

	if err := a.saveSession(ctx, username, user); err != nil {
		return nil, fmt.Errorf("session saving error: %w", err)
	}
	a.logger.Info(ctx, "logged in", "username", username)
	return &user, nil
}

func (a *authService) saveSession(ctx context.Context, username string, user models.User) error {
	return dbx.WithTx(ctx, a.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := metadata.NewSQLiteRepository(tx)
		if err := repo.Set(ctx, metadata.KeyUsername, username); err != nil {
			return err
		}
		if err := repo.Set(ctx, metadata.KeyUserID, user.ID); err != nil {
			return err
		}
		return repo.Set(ctx, metadata.KeyLastLoginAt, a.now().UTC().Format(time.RFC3339))
	})
}

// Logout forgets the tokens, the session metadata and every cached query,
// which belonged to the previous user.
func (a *authService) Logout(ctx context.Context) error {
	a.client.ClearTokens()

	var errs []error
	if err := metadata.NewSQLiteRepository(a.db).Clear(ctx); err != nil {
		errs = append(errs, err)
	}
	for _, prefix := range []string{querycache.RoomsPrefix, querycache.AmenitiesList, querycache.AvailabilityPrefix} {
		if err := a.cache.Remove(ctx, prefix); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (a *authService) CurrentUser(ctx context.Context) (string, error) {
	if !a.client.HasTokens() {
		return "", nil
	}
	name, _, err := metadata.NewSQLiteRepository(a.db).Get(ctx, metadata.KeyUsername)
	return name, err
}

func (a *authService) LoggedIn() bool {
	return a.client.HasTokens()
}
