package services

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/suite"
	"golang.org/x/crypto/bcrypt"
)

// PasswordServiceTestSuite defines the test suite for PasswordService
type PasswordServiceTestSuite struct {
	suite.Suite
	service PasswordServiceInterface
}

// SetupTest runs before each test
func (s *PasswordServiceTestSuite) SetupTest() {
	// MinCost keeps hashing fast in tests; production uses a higher cost.
	s.service = NewPasswordService(bcrypt.MinCost, 8)
}

// TestPasswordServiceSuite runs the test suite
func TestPasswordServiceSuite(t *testing.T) {
	suite.Run(t, new(PasswordServiceTestSuite))
}

func (s *PasswordServiceTestSuite) TestValidatePassword_Valid() {
	s.NoError(s.service.ValidatePassword("correct horse battery"))
}

func (s *PasswordServiceTestSuite) TestValidatePassword_Empty() {
	s.ErrorIs(s.service.ValidatePassword(""), ErrPasswordEmpty)
}

func (s *PasswordServiceTestSuite) TestValidatePassword_TooShort() {
	s.ErrorIs(s.service.ValidatePassword("short1"), ErrPasswordTooShort)
}

func (s *PasswordServiceTestSuite) TestValidatePassword_TooLong() {
	s.ErrorIs(s.service.ValidatePassword(strings.Repeat("a", 73)), ErrPasswordTooLong)
}

func (s *PasswordServiceTestSuite) TestValidatePassword_MaxLengthAccepted() {
	s.NoError(s.service.ValidatePassword(strings.Repeat("a", 72)))
}

func (s *PasswordServiceTestSuite) TestHashAndComparePassword() {
	hash, err := s.service.HashPassword("my-secret-password")
	s.Require().NoError(err)
	s.NotEqual("my-secret-password", hash)

	s.True(s.service.ComparePassword("my-secret-password", hash))
	s.False(s.service.ComparePassword("wrong-password", hash))
}

func (s *PasswordServiceTestSuite) TestHashPassword_RejectsInvalid() {
	_, err := s.service.HashPassword("short")
	s.ErrorIs(err, ErrPasswordTooShort)
}

func (s *PasswordServiceTestSuite) TestComparePassword_MalformedHash() {
	s.False(s.service.ComparePassword("my-secret-password", "not-a-bcrypt-hash"))
}

func (s *PasswordServiceTestSuite) TestNewPasswordService_ClampsInvalidConfig() {
	service := NewPasswordService(-1, 0).(*PasswordService)
	s.Equal(DefaultBCryptCost, service.cost)
	s.Equal(DefaultMinPasswordLength, service.minLength)
}
