package loginwithemail

import (
	"context"
	"errors"
	c "passreset/internal/core/domain/common"
	e "passreset/internal/core/domain/errors"
	"passreset/internal/core/domain/logging"
	"passreset/internal/core/domain/user"
	"passreset/internal/core/services"
	"testing"

	"github.com/stretchr/testify/suite"
)

const (
	EMAIL        = c.Email("a@x.com")
	RAW_PASSWORD = user.RawPassword("P@ss1")
)

type testSuite struct {
	suite.Suite
	Logger         *logging.FakeLogger
	UserRepository *user.FakeUserRepository
	PasswordHasher *user.FakePasswordHasher
	Service        services.Service[Input, Result]
	User           user.User
}

func (suite *testSuite) SetupTest() {
	suite.Logger = logging.NewFakeLogger()
	suite.UserRepository = user.NewFakeUserRepository()
	suite.PasswordHasher = user.NewFakePasswordHasher()
	suite.Service = New(suite.Logger, suite.UserRepository, suite.PasswordHasher)

	hash, err := suite.PasswordHasher.HashPassword(RAW_PASSWORD)
	suite.Require().Nil(err)
	suite.User, err = suite.UserRepository.Create(context.Background(), user.CreateUserInput{
		ID:           "1",
		Username:     "alice",
		Email:        EMAIL,
		PasswordHash: hash,
	})
	suite.Require().Nil(err)
}

func TestLogInWithEmailService(t *testing.T) {
	suite.Run(t, new(testSuite))
}

func (suite *testSuite) TestSuccess() {
	result, err := suite.Service.Run(context.Background(), Input{Email: EMAIL, Password: RAW_PASSWORD})

	assert := suite.Require()
	assert.Nil(err)
	assert.Equal(suite.User.ID, result.User.ID)
}

func (suite *testSuite) TestInvalidPassword() {
	_, err := suite.Service.Run(context.Background(), Input{Email: EMAIL, Password: "wrong"})

	assert := suite.Require()
	assert.True(errors.Is(err, user.ErrInvalidCredentials))
	assert.True(errors.Is(err, e.ErrValidation))
}

func (suite *testSuite) TestUnknownEmail() {
	_, err := suite.Service.Run(context.Background(), Input{Email: "b@x.com", Password: RAW_PASSWORD})

	assert := suite.Require()
	assert.True(errors.Is(err, user.ErrUserDoesNotExist))
	assert.True(errors.Is(err, e.ErrNotFound))
}

func (suite *testSuite) TestRepositoryError() {
	suite.UserRepository.ReturnError = true
	_, err := suite.Service.Run(context.Background(), Input{Email: EMAIL, Password: RAW_PASSWORD})

	assert := suite.Require()
	assert.NotNil(err)
	assert.False(errors.Is(err, user.ErrInvalidCredentials))
	assert.Equal(1, suite.Logger.Count(logging.ERROR))
}
