package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"

	"billfold/internal/config"
	"billfold/internal/domain"
	"billfold/internal/service"
	"billfold/mocks"
)

func testUser(hash string) *domain.User {
	return &domain.User{
		ID:           uuid.New(),
		Email:        "jane@studio.dev",
		PasswordHash: hash,
		FullName:     "Jane Doe",
	}
}

func testJWTConfig() config.JWTConfig {
	return config.JWTConfig{
		Secret:             "test-secret",
		AccessTokenExpiry:  15 * time.Minute,
		RefreshTokenExpiry: 7 * 24 * time.Hour,
		Issuer:             "billfold-test",
	}
}

func TestAuthService_Register_HashesPassword(t *testing.T) {
	repo := new(mocks.MockUserRepo)
	svc := service.NewAuthService(repo, testJWTConfig())

	repo.On("Create", mock.Anything, mock.AnythingOfType("*domain.User")).Return(nil)

	user, err := svc.Register(context.Background(), service.RegisterInput{
		Email:    "jane@studio.dev",
		Password: "supersecret123",
		FullName: "Jane Doe",
	})

	assert.NoError(t, err)
	assert.Equal(t, "jane@studio.dev", user.Email)
	assert.NotEqual(t, "supersecret123", user.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("supersecret123")))
	repo.AssertExpectations(t)
}

func TestAuthService_Register_DuplicateEmail(t *testing.T) {
	repo := new(mocks.MockUserRepo)
	svc := service.NewAuthService(repo, testJWTConfig())

	repo.On("Create", mock.Anything, mock.AnythingOfType("*domain.User")).Return(domain.ErrDuplicateEmail)

	user, err := svc.Register(context.Background(), service.RegisterInput{
		Email:    "jane@studio.dev",
		Password: "supersecret123",
		FullName: "Jane Doe",
	})

	assert.Nil(t, user)
	assert.ErrorIs(t, err, domain.ErrDuplicateEmail)
}

func TestAuthService_Login_Success(t *testing.T) {
	repo := new(mocks.MockUserRepo)
	svc := service.NewAuthService(repo, testJWTConfig())

	hash, _ := bcrypt.GenerateFromPassword([]byte("supersecret123"), bcrypt.MinCost)
	user := testUser(string(hash))
	repo.On("GetByEmail", mock.Anything, "jane@studio.dev").Return(user, nil)

	pair, err := svc.Login(context.Background(), service.LoginInput{
		Email:    "jane@studio.dev",
		Password: "supersecret123",
	})

	assert.NoError(t, err)
	assert.NotEmpty(t, pair.AccessToken)
	assert.NotEmpty(t, pair.RefreshToken)
	assert.True(t, pair.ExpiresAt.After(time.Now()))
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	repo := new(mocks.MockUserRepo)
	svc := service.NewAuthService(repo, testJWTConfig())

	hash, _ := bcrypt.GenerateFromPassword([]byte("supersecret123"), bcrypt.MinCost)
	repo.On("GetByEmail", mock.Anything, "jane@studio.dev").Return(testUser(string(hash)), nil)

	pair, err := svc.Login(context.Background(), service.LoginInput{
		Email:    "jane@studio.dev",
		Password: "wrongpassword",
	})

	assert.Nil(t, pair)
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestAuthService_Login_UnknownEmail(t *testing.T) {
	repo := new(mocks.MockUserRepo)
	svc := service.NewAuthService(repo, testJWTConfig())

	repo.On("GetByEmail", mock.Anything, "nobody@studio.dev").Return(nil, domain.ErrNotFound)

	pair, err := svc.Login(context.Background(), service.LoginInput{
		Email:    "nobody@studio.dev",
		Password: "supersecret123",
	})

	assert.Nil(t, pair)
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestAuthService_ValidateToken_RoundTrip(t *testing.T) {
	repo := new(mocks.MockUserRepo)
	svc := service.NewAuthService(repo, testJWTConfig())

	hash, _ := bcrypt.GenerateFromPassword([]byte("supersecret123"), bcrypt.MinCost)
	user := testUser(string(hash))
	repo.On("GetByEmail", mock.Anything, "jane@studio.dev").Return(user, nil)

	pair, err := svc.Login(context.Background(), service.LoginInput{
		Email:    "jane@studio.dev",
		Password: "supersecret123",
	})
	assert.NoError(t, err)

	claims, err := svc.ValidateToken(pair.AccessToken)
	assert.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, "jane@studio.dev", claims.Email)
}

func TestAuthService_ValidateToken_RejectsRefreshToken(t *testing.T) {
	repo := new(mocks.MockUserRepo)
	svc := service.NewAuthService(repo, testJWTConfig())

	hash, _ := bcrypt.GenerateFromPassword([]byte("supersecret123"), bcrypt.MinCost)
	repo.On("GetByEmail", mock.Anything, "jane@studio.dev").Return(testUser(string(hash)), nil)

	pair, err := svc.Login(context.Background(), service.LoginInput{
		Email:    "jane@studio.dev",
		Password: "supersecret123",
	})
	assert.NoError(t, err)

	_, err = svc.ValidateToken(pair.RefreshToken)
	assert.Error(t, err)
}

func TestAuthService_ValidateToken_Garbage(t *testing.T) {
	svc := service.NewAuthService(new(mocks.MockUserRepo), testJWTConfig())

	_, err := svc.ValidateToken("not-a-jwt")
	assert.Error(t, err)
}

func TestAuthService_RefreshToken_IssuesNewPair(t *testing.T) {
	repo := new(mocks.MockUserRepo)
	svc := service.NewAuthService(repo, testJWTConfig())

	hash, _ := bcrypt.GenerateFromPassword([]byte("supersecret123"), bcrypt.MinCost)
	user := testUser(string(hash))
	repo.On("GetByEmail", mock.Anything, "jane@studio.dev").Return(user, nil)
	repo.On("GetByID", mock.Anything, user.ID).Return(user, nil)

	pair, err := svc.Login(context.Background(), service.LoginInput{
		Email:    "jane@studio.dev",
		Password: "supersecret123",
	})
	assert.NoError(t, err)

	fresh, err := svc.RefreshToken(context.Background(), pair.RefreshToken)
	assert.NoError(t, err)
	assert.NotEmpty(t, fresh.AccessToken)
	assert.NotEmpty(t, fresh.RefreshToken)
}

func TestAuthService_RefreshToken_RejectsAccessToken(t *testing.T) {
	repo := new(mocks.MockUserRepo)
	svc := service.NewAuthService(repo, testJWTConfig())

	hash, _ := bcrypt.GenerateFromPassword([]byte("supersecret123"), bcrypt.MinCost)
	repo.On("GetByEmail", mock.Anything, "jane@studio.dev").Return(testUser(string(hash)), nil)

	pair, err := svc.Login(context.Background(), service.LoginInput{
		Email:    "jane@studio.dev",
		Password: "supersecret123",
	})
	assert.NoError(t, err)

	_, err = svc.RefreshToken(context.Background(), pair.AccessToken)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}
