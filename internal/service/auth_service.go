package service

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"

	"choosecare-bff/internal/models"
	"choosecare-bff/internal/repository"
	"choosecare-bff/internal/upstream"
	"choosecare-bff/pkg/utils"

	"github.com/rs/zerolog"
)

// ErrUnknownRole is returned when a token's role has no home screen.
var ErrUnknownRole = errors.New("role has no home screen")

// Home screens a role lands on after login.
const (
	HomePatient       = "patient-home"
	HomeReception     = "reception-home"
	HomeHospitalAdmin = "hospital-admin-home"
	HomeSuperAdmin    = "super-admin-home"
)

// HomeFor routes a role claim to its home screen.
func HomeFor(role string) (string, error) {
	switch role {
	case models.RolePatient:
		return HomePatient, nil
	case models.RoleReceptionist:
		return HomeReception, nil
	case models.RoleHospitalAdmin, models.RoleAdmin:
		return HomeHospitalAdmin, nil
	case models.RoleSuperAdmin:
		return HomeSuperAdmin, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownRole, role)
	}
}

// Authenticator is the slice of the upstream client used for login.
type Authenticator interface {
	Login(ctx context.Context, email, password string) (string, error)
}

type AuthService struct {
	api       Authenticator
	tokens    *repository.TokenRepository
	jwtSecret string
	logger    zerolog.Logger
}

func NewAuthService(api Authenticator, tokens *repository.TokenRepository, jwtSecret string, logger zerolog.Logger) *AuthService {
	return &AuthService{
		api:       api,
		tokens:    tokens,
		jwtSecret: jwtSecret,
		logger:    logger.With().Str("component", "auth").Logger(),
	}
}

// Login authenticates against the upstream API, stores the token for the
// device and resolves the home screen from the role claim.
func (s *AuthService) Login(ctx context.Context, deviceID, email, password string) (*models.Session, error) {
	token, err := s.api.Login(ctx, email, password)
	if err != nil {
		return nil, err
	}

	claims, err := utils.ParseClaims(token, s.jwtSecret)
	if err != nil {
		return nil, fmt.Errorf("failed to read access token: %w", err)
	}
	home, err := HomeFor(claims.Role)
	if err != nil {
		return nil, err
	}

	if deviceID == "" {
		// Nothing is kept for a caller that did not name its device.
		s.logger.Debug().Msg("login without device id, token not stored")
	} else if err := s.tokens.SaveToken(ctx, deviceID, token); err != nil {
		// The device still gets its token back and sends it as a bearer header.
		s.logger.Warn().Err(err).Str("device", deviceID).Msg("failed to store access token")
	}

	s.logger.Info().Str("device", deviceID).Str("role", claims.Role).Msg("user logged in")
	return &models.Session{Token: token, Role: claims.Role, Home: home}, nil
}

// Logout forgets the device's saved token, but only when it is the token
// the caller presented. Storage failures are logged only.
func (s *AuthService) Logout(ctx context.Context, deviceID, token string) {
	if deviceID == "" || token == "" {
		return
	}
	stored, ok := s.storedToken(ctx, deviceID)
	if !ok {
		return
	}
	if subtle.ConstantTimeCompare([]byte(stored), []byte(token)) != 1 {
		s.logger.Warn().Str("device", deviceID).Msg("logout with a token the device does not hold, ignored")
		return
	}
	if err := s.tokens.DeleteToken(ctx, deviceID); err != nil {
		s.logger.Warn().Err(err).Str("device", deviceID).Msg("failed to delete access token")
		return
	}
	s.logger.Info().Str("device", deviceID).Msg("device logged out")
}

func (s *AuthService) storedToken(ctx context.Context, deviceID string) (string, bool) {
	token, err := s.tokens.FindToken(ctx, deviceID)
	if err != nil {
		if !errors.Is(err, repository.ErrNoToken) {
			s.logger.Warn().Err(err).Str("device", deviceID).Msg("failed to read access token")
		}
		return "", false
	}
	return token, true
}

// Claims decodes a token with the configured verification policy.
func (s *AuthService) Claims(token string) (*utils.Claims, error) {
	return utils.ParseClaims(token, s.jwtSecret)
}

// logoutOnUnauthorized ends the device's session when a call made with its
// token was rejected. It returns err unchanged.
func (s *AuthService) logoutOnUnauthorized(ctx context.Context, deviceID, token string, err error) error {
	if errors.Is(err, upstream.ErrUnauthorized) {
		s.Logout(ctx, deviceID, token)
	}
	return err
}
