package services

import (
	"io"
	"log/slog"
	"testing"
	"time"

	"fintrack/internal/config"
	"fintrack/internal/database"
	"fintrack/internal/dto"
	"fintrack/internal/models"
	"fintrack/internal/repositories"

	"github.com/stretchr/testify/suite"
	"golang.org/x/crypto/bcrypt"
)

type AuthServiceTestSuite struct {
	suite.Suite
	db               *database.DB
	service          AuthServiceInterface
	tokenService     TokenServiceInterface
	refreshTokenRepo repositories.RefreshTokenRepositoryInterface
	userRepo         repositories.UserRepositoryInterface
}

func (s *AuthServiceTestSuite) SetupTest() {
	s.db = database.SetupTestDB(s.T())

	s.userRepo = repositories.NewUserRepository(s.db.DB)
	s.refreshTokenRepo = repositories.NewRefreshTokenRepository(s.db.DB)

	privateKey, publicKey, err := config.GenerateRSAKeyPair()
	s.Require().NoError(err)

	s.tokenService = NewTokenService(&config.JWTConfig{
		PrivateKey:           privateKey,
		PublicKey:            publicKey,
		Issuer:               "fintrack-test",
		AccessTokenDuration:  15 * time.Minute,
		RefreshTokenDuration: 7 * 24 * time.Hour,
	})
	passwordService := NewPasswordService(bcrypt.MinCost, 8)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	s.service = NewAuthService(s.userRepo, s.refreshTokenRepo, passwordService, s.tokenService, logger)
}

func (s *AuthServiceTestSuite) TearDownTest() {
	database.CleanupTestDB(s.T(), s.db)
}

func (s *AuthServiceTestSuite) registerUser() *models.User {
	user, err := s.service.Register(&dto.RegisterRequest{
		Email:     "maria@example.com",
		Password:  "super-secret-1",
		FirstName: "Maria",
		LastName:  "Lopez",
	})
	s.Require().NoError(err)
	return user
}

func (s *AuthServiceTestSuite) TestRegister() {
	user := s.registerUser()

	s.Equal("maria@example.com", user.Email)
	s.Equal(models.RoleUser, user.Role)
	s.NotEqual("super-secret-1", user.PasswordHash)

	stored, err := s.userRepo.GetByEmail("maria@example.com")
	s.Require().NoError(err)
	s.Equal(user.ID, stored.ID)
}

func (s *AuthServiceTestSuite) TestRegister_DuplicateEmail() {
	s.registerUser()

	_, err := s.service.Register(&dto.RegisterRequest{
		Email:     "maria@example.com",
		Password:  "another-secret-1",
		FirstName: "Maria",
		LastName:  "Lopez",
	})
	s.ErrorIs(err, ErrUserAlreadyExists)
}

func (s *AuthServiceTestSuite) TestRegister_WeakPassword() {
	_, err := s.service.Register(&dto.RegisterRequest{
		Email:     "maria@example.com",
		Password:  "short",
		FirstName: "Maria",
		LastName:  "Lopez",
	})
	s.ErrorIs(err, ErrPasswordTooShort)
}

func (s *AuthServiceTestSuite) TestLogin() {
	user := s.registerUser()

	tokens, err := s.service.Login(&dto.LoginRequest{
		Email:    "maria@example.com",
		Password: "super-secret-1",
	})
	s.Require().NoError(err)

	s.NotEmpty(tokens.AccessToken)
	s.NotEmpty(tokens.RefreshToken)
	s.Equal("Bearer", tokens.TokenType)
	s.True(tokens.ExpiresAt.After(time.Now()))

	// The refresh token is stored hashed, never raw.
	stored, err := s.refreshTokenRepo.GetByTokenHash(hashToken(tokens.RefreshToken))
	s.Require().NoError(err)
	s.Equal(user.ID, stored.UserID)
	s.True(stored.IsActive())
	s.NotEqual(tokens.RefreshToken, stored.TokenHash)
}

func (s *AuthServiceTestSuite) TestLogin_WrongPassword() {
	s.registerUser()

	_, err := s.service.Login(&dto.LoginRequest{
		Email:    "maria@example.com",
		Password: "wrong-password",
	})
	s.ErrorIs(err, ErrInvalidCredentials)
}

func (s *AuthServiceTestSuite) TestLogin_UnknownEmail() {
	_, err := s.service.Login(&dto.LoginRequest{
		Email:    "nobody@example.com",
		Password: "whatever-password",
	})
	s.ErrorIs(err, ErrInvalidCredentials)
}

func (s *AuthServiceTestSuite) TestRefreshTokens_RotatesToken() {
	s.registerUser()
	tokens, err := s.service.Login(&dto.LoginRequest{
		Email:    "maria@example.com",
		Password: "super-secret-1",
	})
	s.Require().NoError(err)

	renewed, err := s.service.RefreshTokens(tokens.RefreshToken)
	s.Require().NoError(err)
	s.NotEmpty(renewed.AccessToken)
	s.NotEqual(tokens.RefreshToken, renewed.RefreshToken)

	// The used token is revoked; replaying it fails.
	_, err = s.service.RefreshTokens(tokens.RefreshToken)
	s.ErrorIs(err, ErrInvalidRefreshToken)

	// The replacement still works.
	_, err = s.service.RefreshTokens(renewed.RefreshToken)
	s.NoError(err)
}

func (s *AuthServiceTestSuite) TestRefreshTokens_Garbage() {
	_, err := s.service.RefreshTokens("not-a-token")
	s.ErrorIs(err, ErrInvalidRefreshToken)
}

func (s *AuthServiceTestSuite) TestRefreshTokens_UnknownToken() {
	user := s.registerUser()

	// A validly signed refresh token that was never stored is rejected.
	token, _, err := s.tokenService.GenerateRefreshToken(user.ID)
	s.Require().NoError(err)

	_, err = s.service.RefreshTokens(token)
	s.ErrorIs(err, ErrInvalidRefreshToken)
}

func (s *AuthServiceTestSuite) TestLogout_RevokesAllTokens() {
	s.registerUser()
	first, err := s.service.Login(&dto.LoginRequest{
		Email:    "maria@example.com",
		Password: "super-secret-1",
	})
	s.Require().NoError(err)
	second, err := s.service.Login(&dto.LoginRequest{
		Email:    "maria@example.com",
		Password: "super-secret-1",
	})
	s.Require().NoError(err)

	s.Require().NoError(s.service.Logout(first.RefreshToken))

	_, err = s.service.RefreshTokens(first.RefreshToken)
	s.ErrorIs(err, ErrInvalidRefreshToken)
	_, err = s.service.RefreshTokens(second.RefreshToken)
	s.ErrorIs(err, ErrInvalidRefreshToken)
}

func (s *AuthServiceTestSuite) TestLogout_InvalidTokenIsSilent() {
	s.NoError(s.service.Logout("not-a-token"))
}

func TestAuthServiceTestSuite(t *testing.T) {
	suite.Run(t, new(AuthServiceTestSuite))
}
