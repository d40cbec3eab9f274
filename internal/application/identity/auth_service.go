package identity

import (
	"context"
	"errors"

	"github.com/wms/backend/internal/domain/identity"
	"github.com/wms/backend/internal/domain/shared"
	"github.com/wms/backend/internal/infrastructure/auth"
	"github.com/wms/backend/internal/infrastructure/config"
	"go.uber.org/zap"
)

// ErrInvalidCredentials is returned for both unknown usernames and wrong
// passwords so the response does not leak which accounts exist.
var ErrInvalidCredentials = shared.NewDomainError("INVALID_CREDENTIALS", "Invalid username or password")

// ErrAccountLocked is returned when the account is locked out
var ErrAccountLocked = shared.NewDomainError("ACCOUNT_LOCKED", "Account is locked, try again later")

// AuthService handles login, token refresh, and logout
type AuthService struct {
	userRepo   identity.UserRepository
	jwtService *auth.JWTService
	blacklist  auth.TokenBlacklist
	authCfg    config.AuthConfig
	logger     *zap.Logger
}

// NewAuthService creates a new AuthService
func NewAuthService(
	userRepo identity.UserRepository,
	jwtService *auth.JWTService,
	blacklist auth.TokenBlacklist,
	authCfg config.AuthConfig,
	logger *zap.Logger,
) *AuthService {
	return &AuthService{
		userRepo:   userRepo,
		jwtService: jwtService,
		blacklist:  blacklist,
		authCfg:    authCfg,
		logger:     logger,
	}
}

// Login authenticates a user and issues a token pair
func (s *AuthService) Login(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	user, err := s.userRepo.FindByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if user.Status == identity.UserStatusDeactivated {
		return nil, ErrInvalidCredentials
	}
	if user.IsLocked() {
		return nil, ErrAccountLocked
	}

	if !user.VerifyPassword(req.Password) {
		locked := user.RecordLoginFailure(s.authCfg.MaxLoginAttempts, s.authCfg.LockoutDuration)
		if err := s.userRepo.Save(ctx, user); err != nil {
			return nil, err
		}
		if locked {
			s.logger.Warn("account locked after repeated login failures",
				zap.String("username", user.Username),
				zap.String("client_ip", req.ClientIP))
			return nil, ErrAccountLocked
		}
		return nil, ErrInvalidCredentials
	}

	// A correct password on an expired lock clears the lockout
	if user.Status == identity.UserStatusLocked {
		if err := user.Unlock(); err != nil {
			return nil, err
		}
	}

	user.RecordLoginSuccess(req.ClientIP)
	if err := s.userRepo.Save(ctx, user); err != nil {
		return nil, err
	}

	tokens, err := s.jwtService.GenerateTokenPair(auth.GenerateTokenInput{
		UserID:   user.ID,
		Username: user.Username,
		Role:     string(user.Role),
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("user logged in",
		zap.String("username", user.Username),
		zap.String("role", string(user.Role)))

	return &LoginResponse{
		User:   ToUserResponse(user),
		Tokens: tokens,
	}, nil
}

// Refresh exchanges a valid refresh token for a new token pair.
// The old refresh token is revoked so it cannot be replayed.
func (s *AuthService) Refresh(ctx context.Context, req RefreshRequest) (*auth.TokenPair, error) {
	claims, err := s.jwtService.ValidateRefreshToken(req.RefreshToken)
	if err != nil {
		return nil, err
	}

	if err := s.checkRevocation(ctx, claims); err != nil {
		return nil, err
	}

	userID, err := claims.GetUserUUID()
	if err != nil {
		return nil, auth.ErrInvalidClaims
	}

	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, auth.ErrInvalidToken
		}
		return nil, err
	}
	if !user.CanLogin() {
		return nil, auth.ErrTokenBlacklisted
	}

	// Role is read fresh so a role change takes effect on the next refresh
	tokens, err := s.jwtService.RefreshTokenPair(req.RefreshToken, string(user.Role))
	if err != nil {
		return nil, err
	}

	if err := s.blacklist.Revoke(ctx, claims.ID, claims.GetRemainingTTL()); err != nil {
		s.logger.Warn("failed to revoke rotated refresh token", zap.Error(err))
	}

	return tokens, nil
}

// Logout revokes the presented access token and, when supplied, the
// refresh token.
func (s *AuthService) Logout(ctx context.Context, req LogoutRequest) error {
	claims, err := s.jwtService.ValidateAccessToken(req.AccessToken)
	if err != nil {
		// Expired tokens need no revocation
		if errors.Is(err, auth.ErrExpiredToken) {
			return nil
		}
		return err
	}

	if err := s.blacklist.Revoke(ctx, claims.ID, claims.GetRemainingTTL()); err != nil {
		return err
	}

	if req.RefreshToken != "" {
		refreshClaims, err := s.jwtService.ValidateRefreshToken(req.RefreshToken)
		if err == nil {
			if err := s.blacklist.Revoke(ctx, refreshClaims.ID, refreshClaims.GetRemainingTTL()); err != nil {
				return err
			}
		}
	}

	s.logger.Info("user logged out", zap.String("username", claims.Username))
	return nil
}

// Authenticate validates an access token against signature, expiry, and the
// blacklist. Used by the HTTP middleware.
func (s *AuthService) Authenticate(ctx context.Context, accessToken string) (*auth.Claims, error) {
	claims, err := s.jwtService.ValidateAccessToken(accessToken)
	if err != nil {
		return nil, err
	}

	if err := s.checkRevocation(ctx, claims); err != nil {
		return nil, err
	}

	return claims, nil
}

func (s *AuthService) checkRevocation(ctx context.Context, claims *auth.Claims) error {
	revoked, err := s.blacklist.IsRevoked(ctx, claims.ID)
	if err != nil {
		return err
	}
	if revoked {
		return auth.ErrTokenBlacklisted
	}

	userRevoked, err := s.blacklist.IsUserRevoked(ctx, claims.UserID, claims.GetIssuedAtTime())
	if err != nil {
		return err
	}
	if userRevoked {
		return auth.ErrTokenBlacklisted
	}

	return nil
}
