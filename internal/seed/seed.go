package seed

import (
	"context"
	"errors"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	appModels "github.com/pintando7/escolinha/internal/app/models"
	appRepos "github.com/pintando7/escolinha/internal/app/repositories"
	"github.com/pintando7/escolinha/internal/pkg/apperrors"
	pkgAuth "github.com/pintando7/escolinha/internal/pkg/auth"
)

// CreateDefaultData seeds a default managed operator account when the
// users table is empty. The local override credential works without it,
// but a managed account is needed for refresh tokens and per-operator
// identity.
func CreateDefaultData(ctx context.Context, dbPool *pgxpool.Pool, lgr zerolog.Logger) error {
	userRepo := appRepos.NewUserRepository(dbPool)

	count, err := userRepo.Count(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		lgr.Debug().Int("users", count).Msg("Operator accounts present, skipping seed")
		return nil
	}

	email := os.Getenv("SEED_OPERATOR_EMAIL")
	password := os.Getenv("SEED_OPERATOR_PASSWORD")
	if email == "" || password == "" {
		lgr.Info().Msg("No seed operator configured, skipping default account")
		return nil
	}

	hash, err := pkgAuth.HashPassword(password)
	if err != nil {
		return err
	}

	user := &appModels.User{
		Email:    email,
		Password: hash,
		Name:     "Operador",
		RoleType: appModels.RoleAdmin,
		IsActive: true,
	}

	if _, err := userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, apperrors.ErrEmailAlreadyExists) {
			return nil
		}
		return err
	}

	lgr.Info().Str("email", email).Msg("Default operator account created")
	return nil
}
