package services

import (
	"context"
	"regexp"
	"time"

	"github.com/pintando7/escolinha/internal/app/models"
	"github.com/pintando7/escolinha/internal/app/models/dto"
	"github.com/pintando7/escolinha/internal/config"
	"github.com/pintando7/escolinha/internal/pkg/apperrors"
	"github.com/pintando7/escolinha/internal/pkg/auth"
	"github.com/pintando7/escolinha/internal/pkg/logger"
	"github.com/pintando7/escolinha/internal/pkg/sessionstore"
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// localUserID identifies the synthetic operator created by an
// override login. It never exists in the users table.
const localUserID = "local-admin"

// AuthService handles both managed accounts and the local override
// credential. The override bypasses the user store entirely and its
// session is persisted to disk so it survives restarts.
type AuthService struct {
	cfg      *config.Config
	users    UserStore
	tokens   TokenStore
	jwt      *auth.JWTService
	sessions *sessionstore.Store
}

// NewAuthService creates a new auth service
func NewAuthService(cfg *config.Config, users UserStore, tokens TokenStore,
	jwt *auth.JWTService, sessions *sessionstore.Store) *AuthService {
	return &AuthService{
		cfg:      cfg,
		users:    users,
		tokens:   tokens,
		jwt:      jwt,
		sessions: sessions,
	}
}

// Login authenticates either the local override credential or a
// managed account. The override wins when both could match.
func (s *AuthService) Login(ctx context.Context, req dto.LoginRequest) (*dto.TokenResponse, error) {
	if s.cfg.Auth.LocalOverrideEnabled &&
		req.Username == s.cfg.Auth.LocalOverrideUsername &&
		req.Password == s.cfg.Auth.LocalOverridePassword {
		return s.loginLocal()
	}

	user, err := s.users.GetByEmail(ctx, req.Username)
	if err != nil {
		return nil, apperrors.NewCustomError(apperrors.ErrInvalidCredentials, "Usuário ou senha incorretos")
	}
	if !user.IsActive {
		return nil, apperrors.NewCustomError(apperrors.ErrAccountDisabled, "Conta desativada")
	}
	if !auth.CheckPassword(user.Password, req.Password) {
		return nil, apperrors.NewCustomError(apperrors.ErrInvalidCredentials, "Usuário ou senha incorretos")
	}

	// A managed login replaces any persisted override session
	if err := s.sessions.Clear(); err != nil {
		logger.Warn().Err(err).Msg("Failed to clear local session on managed login")
	}

	if err := s.users.TouchLastLogin(ctx, user.ID, time.Now()); err != nil {
		logger.Warn().Err(err).Str("userId", user.ID).Msg("Failed to record last login")
	}

	return s.issueTokens(ctx, user)
}

// loginLocal creates the override session, persists it and issues an
// access token. No refresh token exists; the session file on disk is
// what keeps the operator signed in.
func (s *AuthService) loginLocal() (*dto.TokenResponse, error) {
	session := &models.LocalSession{
		UserID:    localUserID,
		Username:  s.cfg.Auth.LocalOverrideUsername,
		Name:      "Administrador",
		Role:      models.RoleAdmin,
		CreatedAt: time.Now(),
	}

	if err := s.sessions.Save(session); err != nil {
		return nil, err
	}

	accessToken, err := s.jwt.GenerateLocalToken(session)
	if err != nil {
		return nil, err
	}

	logger.Info().Str("username", session.Username).Msg("Local override login")

	return &dto.TokenResponse{
		AccessToken: accessToken,
		ExpiresIn:   s.jwt.GetAccessTokenExpirySeconds(),
		User:        localSessionUser(session),
	}, nil
}

// RestoreSession resumes a persisted override session, issuing a fresh
// access token. Returns ErrTokenNotFound when no session file exists.
func (s *AuthService) RestoreSession(ctx context.Context) (*dto.TokenResponse, error) {
	session, err := s.sessions.Load()
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, apperrors.ErrTokenNotFound
	}

	accessToken, err := s.jwt.GenerateLocalToken(session)
	if err != nil {
		return nil, err
	}

	return &dto.TokenResponse{
		AccessToken: accessToken,
		ExpiresIn:   s.jwt.GetAccessTokenExpirySeconds(),
		User:        localSessionUser(session),
	}, nil
}

// Register creates a managed operator account and signs it in.
func (s *AuthService) Register(ctx context.Context, req dto.RegisterRequest) (*dto.TokenResponse, error) {
	if !emailRegex.MatchString(req.Email) {
		return nil, apperrors.NewCustomError(apperrors.ErrInvalidEmail, "Email inválido")
	}
	if len(req.Password) < 6 {
		return nil, apperrors.NewCustomError(apperrors.ErrWeakPassword, "A senha deve ter pelo menos 6 caracteres")
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Email:    req.Email,
		Password: hash,
		Name:     req.Name,
		RoleType: models.RoleAdmin,
		IsActive: true,
	}

	if _, err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	// Registration signs the account in, so it also replaces any
	// persisted override session
	if err := s.sessions.Clear(); err != nil {
		logger.Warn().Err(err).Msg("Failed to clear local session on registration")
	}

	logger.Info().Str("email", user.Email).Msg("Operator account created")
	return s.issueTokens(ctx, user)
}

// RefreshToken rotates the access token using a stored refresh token.
func (s *AuthService) RefreshToken(ctx context.Context, refreshToken string) (*dto.TokenResponse, error) {
	userID, err := s.tokens.Validate(ctx, refreshToken)
	if err != nil {
		return nil, err
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !user.IsActive {
		return nil, apperrors.NewCustomError(apperrors.ErrAccountDisabled, "Conta desativada")
	}

	// Rotate: the presented token stops working once exchanged
	if err := s.tokens.Revoke(ctx, refreshToken); err != nil {
		logger.Warn().Err(err).Msg("Failed to revoke exchanged refresh token")
	}

	return s.issueTokens(ctx, user)
}

// Logout revokes the account's refresh tokens and clears any persisted
// override session. Both halves run even when one fails.
func (s *AuthService) Logout(ctx context.Context, refreshToken string) error {
	if refreshToken != "" {
		if userID, err := s.tokens.Validate(ctx, refreshToken); err == nil {
			// Logout ends the account's session everywhere, not just
			// the one presented token
			if err := s.tokens.RevokeAllForUser(ctx, userID); err != nil {
				logger.Warn().Err(err).Msg("Failed to revoke refresh tokens on logout")
			}
		} else if err := s.tokens.Revoke(ctx, refreshToken); err != nil &&
			err != apperrors.ErrTokenNotFound {
			logger.Warn().Err(err).Msg("Failed to revoke refresh token on logout")
		}
	}
	return s.sessions.Clear()
}

func (s *AuthService) issueTokens(ctx context.Context, user *models.User) (*dto.TokenResponse, error) {
	accessToken, refreshToken, expiresIn, refreshExpiresIn, err := s.jwt.GenerateTokenPair(user)
	if err != nil {
		return nil, err
	}

	if err := s.tokens.Store(ctx, user.ID, refreshToken, s.jwt.GetRefreshTokenExpiry()); err != nil {
		return nil, err
	}

	return &dto.TokenResponse{
		AccessToken:      accessToken,
		RefreshToken:     refreshToken,
		ExpiresIn:        expiresIn,
		RefreshExpiresIn: refreshExpiresIn,
		User: dto.SessionUser{
			ID:       user.ID,
			Username: user.Email,
			Name:     user.Name,
			Role:     user.RoleType,
		},
	}, nil
}

func localSessionUser(session *models.LocalSession) dto.SessionUser {
	return dto.SessionUser{
		ID:       session.UserID,
		Username: session.Username,
		Name:     session.Name,
		Role:     session.Role,
		Local:    true,
	}
}
