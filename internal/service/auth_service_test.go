package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"bookcopy-server/internal/model"
	"bookcopy-server/internal/service"
	"bookcopy-server/internal/service/mocks"
)

const testJWTSecret = "test-secret-for-unit-tests"

type authFixture struct {
	userRepo  *mocks.MockUserRepository
	tokenRepo *mocks.MockTokenRepository
	svc       *service.AuthService
}

func newAuthFixture() *authFixture {
	f := &authFixture{
		userRepo:  &mocks.MockUserRepository{},
		tokenRepo: &mocks.MockTokenRepository{},
	}
	f.svc = service.NewAuthService(f.userRepo, f.tokenRepo, service.AuthConfig{
		JWTSecret:       testJWTSecret,
		AccessTokenTTL:  time.Hour,
		RefreshTokenTTL: 7 * 24 * time.Hour,
	}, zap.NewNop())
	return f
}

func TestAuthService_Register_Success(t *testing.T) {
	f := newAuthFixture()

	f.userRepo.On("GetByUsername", mock.Anything, "reader").
		Return(model.User{}, model.ErrUserNotFound).Once()
	f.userRepo.On("GetByEmail", mock.Anything, "reader@example.com").
		Return(model.User{}, model.ErrUserNotFound).Once()
	f.userRepo.On("Create", mock.Anything, mock.MatchedBy(func(u model.User) bool {
		// Пароль хешируется до записи
		return u.Username == "reader" &&
			u.Email == "reader@example.com" &&
			u.PasswordHash != "password123" &&
			bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("password123")) == nil
	})).Return(model.User{ID: uuid.New(), Username: "reader", Email: "reader@example.com"}, nil).Once()

	user, err := f.svc.Register(context.Background(), "reader", "Reader@Example.com", "password123")
	require.NoError(t, err)
	assert.Equal(t, "reader", user.Username)
	f.userRepo.AssertExpectations(t)
}

func TestAuthService_Register_DuplicateUsername(t *testing.T) {
	f := newAuthFixture()

	f.userRepo.On("GetByUsername", mock.Anything, "reader").
		Return(model.User{ID: uuid.New(), Username: "reader"}, nil).Once()

	_, err := f.svc.Register(context.Background(), "reader", "reader@example.com", "password123")
	assert.ErrorIs(t, err, model.ErrUserAlreadyExists)
	f.userRepo.AssertNotCalled(t, "Create")
}

func TestAuthService_Register_InvalidEmail(t *testing.T) {
	f := newAuthFixture()

	_, err := f.svc.Register(context.Background(), "reader", "not-an-email", "password123")
	assert.ErrorIs(t, err, model.ErrInvalidInput)
	f.userRepo.AssertNotCalled(t, "Create")
}

func TestAuthService_Login_Success(t *testing.T) {
	f := newAuthFixture()
	userID := uuid.New()

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	require.NoError(t, err)

	f.userRepo.On("GetByUsername", mock.Anything, "reader").
		Return(model.User{ID: userID, Username: "reader", PasswordHash: string(hash)}, nil).Once()
	f.tokenRepo.On("SetToken", mock.Anything, userID, mock.Anything).Return(nil).Once()

	td, user, err := f.svc.Login(context.Background(), "reader", "password123")
	require.NoError(t, err)
	assert.Equal(t, userID, user.ID)
	assert.NotEmpty(t, td.AccessToken)
	assert.NotEmpty(t, td.RefreshToken)
	assert.NotEqual(t, td.AccessUUID, td.RefreshUUID)
	f.tokenRepo.AssertExpectations(t)
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	f := newAuthFixture()

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	require.NoError(t, err)

	f.userRepo.On("GetByUsername", mock.Anything, "reader").
		Return(model.User{ID: uuid.New(), Username: "reader", PasswordHash: string(hash)}, nil).Once()

	_, _, err = f.svc.Login(context.Background(), "reader", "wrong-password")
	assert.ErrorIs(t, err, model.ErrInvalidCredentials)
	f.tokenRepo.AssertNotCalled(t, "SetToken")
}

func TestAuthService_Login_UnknownUser(t *testing.T) {
	f := newAuthFixture()

	f.userRepo.On("GetByUsername", mock.Anything, "ghost").
		Return(model.User{}, model.ErrUserNotFound).Once()

	_, _, err := f.svc.Login(context.Background(), "ghost", "password123")
	// Несуществующий пользователь неотличим от неверного пароля
	assert.ErrorIs(t, err, model.ErrInvalidCredentials)
}

func TestAuthService_VerifyAccessToken_RoundTrip(t *testing.T) {
	f := newAuthFixture()
	userID := uuid.New()

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	require.NoError(t, err)

	f.userRepo.On("GetByUsername", mock.Anything, "reader").
		Return(model.User{ID: userID, Username: "reader", PasswordHash: string(hash)}, nil).Once()

	var savedTD *model.TokenDetails
	f.tokenRepo.On("SetToken", mock.Anything, userID, mock.Anything).
		Run(func(args mock.Arguments) {
			savedTD = args.Get(2).(*model.TokenDetails)
		}).Return(nil).Once()

	td, _, err := f.svc.Login(context.Background(), "reader", "password123")
	require.NoError(t, err)
	require.NotNil(t, savedTD)

	f.tokenRepo.On("GetUserIDByAccessUUID", mock.Anything, savedTD.AccessUUID).
		Return(userID, nil).Once()

	gotID, err := f.svc.VerifyAccessToken(context.Background(), td.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, userID, gotID)
}

func TestAuthService_VerifyAccessToken_Revoked(t *testing.T) {
	f := newAuthFixture()
	userID := uuid.New()

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	require.NoError(t, err)

	f.userRepo.On("GetByUsername", mock.Anything, "reader").
		Return(model.User{ID: userID, Username: "reader", PasswordHash: string(hash)}, nil).Once()
	f.tokenRepo.On("SetToken", mock.Anything, userID, mock.Anything).Return(nil).Once()

	td, _, err := f.svc.Login(context.Background(), "reader", "password123")
	require.NoError(t, err)

	// Токен валиден, но отозван (отсутствует в хранилище)
	f.tokenRepo.On("GetUserIDByAccessUUID", mock.Anything, mock.Anything).
		Return(uuid.Nil, model.ErrTokenNotFound).Once()

	_, err = f.svc.VerifyAccessToken(context.Background(), td.AccessToken)
	assert.ErrorIs(t, err, model.ErrTokenNotFound)
}

func TestAuthService_VerifyAccessToken_Garbage(t *testing.T) {
	f := newAuthFixture()

	_, err := f.svc.VerifyAccessToken(context.Background(), "not.a.jwt")
	assert.Error(t, err)
	f.tokenRepo.AssertNotCalled(t, "GetUserIDByAccessUUID")
}
