package service

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"bookcopy-server/internal/model"
)

const tokenIssuer = "bookcopy-server"

// UserRepository описывает хранилище пользователей, необходимое AuthService.
type UserRepository interface {
	Create(ctx context.Context, user model.User) (model.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (model.User, error)
	GetByUsername(ctx context.Context, username string) (model.User, error)
	GetByEmail(ctx context.Context, email string) (model.User, error)
}

// TokenRepository описывает хранилище выданных токенов.
type TokenRepository interface {
	SetToken(ctx context.Context, userID uuid.UUID, td *model.TokenDetails) error
	GetUserIDByAccessUUID(ctx context.Context, accessUUID string) (uuid.UUID, error)
	GetUserIDByRefreshUUID(ctx context.Context, refreshUUID string) (uuid.UUID, error)
	DeleteTokens(ctx context.Context, accessUUID, refreshUUID string) (int64, error)
}

// AuthConfig содержит настройки выпуска токенов.
type AuthConfig struct {
	JWTSecret       string
	AccessTokenTTL  time.Duration
	RefreshTokenTTL time.Duration
}

// AuthService отвечает за регистрацию, вход и работу с токенами.
type AuthService struct {
	userRepo  UserRepository
	tokenRepo TokenRepository
	cfg       AuthConfig
	logger    *zap.Logger
}

// NewAuthService создает новый AuthService.
func NewAuthService(userRepo UserRepository, tokenRepo TokenRepository, cfg AuthConfig, logger *zap.Logger) *AuthService {
	return &AuthService{
		userRepo:  userRepo,
		tokenRepo: tokenRepo,
		cfg:       cfg,
		logger:    logger.Named("AuthService"),
	}
}

// Register creates a new user.
func (s *AuthService) Register(ctx context.Context, username, email, password string) (model.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	username = strings.TrimSpace(username)

	logFields := []zap.Field{zap.String("username", username), zap.String("email", email)}
	s.logger.Info("Registering new user", logFields...)

	if _, err := mail.ParseAddress(email); err != nil {
		s.logger.Warn("Registration attempt with invalid email format", append(logFields, zap.Error(err))...)
		return model.User{}, fmt.Errorf("invalid email format: %w", model.ErrInvalidInput)
	}

	if username == "" || password == "" {
		s.logger.Warn("Registration attempt with empty username or password", logFields...)
		return model.User{}, model.ErrInvalidInput
	}

	// Проверка существования пользователя по username
	if _, err := s.userRepo.GetByUsername(ctx, username); err == nil {
		s.logger.Warn("Registration attempt for existing username", logFields...)
		return model.User{}, model.ErrUserAlreadyExists
	} else if !errors.Is(err, model.ErrUserNotFound) {
		s.logger.Error("Error checking existing username during registration", append(logFields, zap.Error(err))...)
		return model.User{}, fmt.Errorf("error checking existing username: %w", err)
	}

	// Проверка существования пользователя по email
	if _, err := s.userRepo.GetByEmail(ctx, email); err == nil {
		s.logger.Warn("Registration attempt for existing email", logFields...)
		return model.User{}, model.ErrEmailAlreadyExists
	} else if !errors.Is(err, model.ErrUserNotFound) {
		s.logger.Error("Error checking existing email during registration", append(logFields, zap.Error(err))...)
		return model.User{}, fmt.Errorf("error checking existing email: %w", err)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		s.logger.Error("Failed to hash password during registration", append(logFields, zap.Error(err))...)
		return model.User{}, fmt.Errorf("failed to hash password: %w", err)
	}

	user, err := s.userRepo.Create(ctx, model.User{
		Username:     username,
		Email:        email,
		PasswordHash: string(hashedPassword),
	})
	if err != nil {
		if !errors.Is(err, model.ErrUserAlreadyExists) && !errors.Is(err, model.ErrEmailAlreadyExists) {
			s.logger.Error("Failed to create user via repository", append(logFields, zap.Error(err))...)
		}
		return model.User{}, err
	}

	s.logger.Info("User registered successfully", zap.String("userID", user.ID.String()), zap.String("username", user.Username))
	return user, nil
}

// Login authenticates a user and returns token details.
func (s *AuthService) Login(ctx context.Context, username, password string) (*model.TokenDetails, model.User, error) {
	s.logger.Info("Login attempt", zap.String("username", username))

	user, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, model.ErrUserNotFound) {
			s.logger.Warn("Login failed: user not found", zap.String("username", username))
			return nil, model.User{}, model.ErrInvalidCredentials
		}
		s.logger.Error("Login failed: error getting user from repository", zap.Error(err), zap.String("username", username))
		return nil, model.User{}, fmt.Errorf("failed to get user: %w", err)
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		s.logger.Warn("Login failed: invalid password", zap.String("username", username), zap.String("userID", user.ID.String()))
		return nil, model.User{}, model.ErrInvalidCredentials
	}

	td, err := s.createTokens(user.ID)
	if err != nil {
		s.logger.Error("Failed to create tokens during login", zap.Error(err), zap.String("userID", user.ID.String()))
		return nil, model.User{}, fmt.Errorf("failed to create tokens: %w", err)
	}

	if err := s.tokenRepo.SetToken(ctx, user.ID, td); err != nil {
		s.logger.Error("Failed to save token details during login", zap.Error(err), zap.String("userID", user.ID.String()))
		return nil, model.User{}, fmt.Errorf("failed to save token details: %w", err)
	}

	s.logger.Info("User logged in successfully", zap.String("userID", user.ID.String()))
	return td, user, nil
}

// Refresh issues new access and refresh tokens based on a valid refresh token.
func (s *AuthService) Refresh(ctx context.Context, refreshTokenString string) (*model.TokenDetails, error) {
	s.logger.Info("Token refresh attempt") // Сам токен не логируем

	claims, err := s.parseToken(refreshTokenString)
	if err != nil {
		return nil, err
	}

	refreshUUID := claims.ID
	userID, err := s.tokenRepo.GetUserIDByRefreshUUID(ctx, refreshUUID)
	if err != nil {
		if errors.Is(err, model.ErrTokenNotFound) {
			s.logger.Warn("Refresh attempt with revoked token", zap.String("refreshUUID", refreshUUID))
			return nil, model.ErrTokenNotFound
		}
		return nil, fmt.Errorf("error checking refresh token existence: %w", err)
	}

	if userID != claims.UserID {
		s.logger.Error("Refresh token user ID mismatch",
			zap.String("tokenUserID", claims.UserID.String()),
			zap.String("repoUserID", userID.String()),
			zap.String("refreshUUID", refreshUUID))
		return nil, model.ErrTokenInvalid
	}

	newTd, err := s.createTokens(claims.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to create new tokens during refresh: %w", err)
	}

	// Старый refresh токен отзываем; сбой удаления некритичен для пользователя
	if _, delErr := s.tokenRepo.DeleteTokens(ctx, "", refreshUUID); delErr != nil {
		s.logger.Error("Non-critical: failed to delete old refresh token", zap.Error(delErr), zap.String("refreshUUID", refreshUUID))
	}

	if err := s.tokenRepo.SetToken(ctx, claims.UserID, newTd); err != nil {
		s.logger.Error("Failed to save new token details during refresh", zap.Error(err), zap.String("userID", claims.UserID.String()))
		return nil, fmt.Errorf("failed to save new token details: %w", err)
	}

	s.logger.Info("Tokens refreshed successfully", zap.String("userID", claims.UserID.String()))
	return newTd, nil
}

// Logout removes the access and refresh tokens from the store.
// Успешно завершается, даже если токены уже удалены или истекли.
func (s *AuthService) Logout(ctx context.Context, accessTokenString, refreshTokenString string) error {
	var accessUUID, refreshUUID string

	if claims, err := s.parseToken(accessTokenString); err == nil {
		accessUUID = claims.ID
	}
	if claims, err := s.parseToken(refreshTokenString); err == nil {
		refreshUUID = claims.ID
	}

	deleted, err := s.tokenRepo.DeleteTokens(ctx, accessUUID, refreshUUID)
	if err != nil {
		// Логируем, но наружу не отдаем: токены могли уже быть удалены
		s.logger.Error("Failed to delete tokens during logout", zap.Error(err))
	}
	s.logger.Info("Logout processed", zap.Int64("deletedTokens", deleted))
	return nil
}

// VerifyAccessToken проверяет access токен и возвращает ID пользователя.
// Токен должен быть валиден и присутствовать в хранилище (не отозван).
func (s *AuthService) VerifyAccessToken(ctx context.Context, tokenString string) (uuid.UUID, error) {
	claims, err := s.parseToken(tokenString)
	if err != nil {
		return uuid.Nil, err
	}

	userID, err := s.tokenRepo.GetUserIDByAccessUUID(ctx, claims.ID)
	if err != nil {
		if errors.Is(err, model.ErrTokenNotFound) {
			return uuid.Nil, model.ErrTokenNotFound
		}
		return uuid.Nil, fmt.Errorf("error checking access token existence: %w", err)
	}

	if userID != claims.UserID {
		s.logger.Error("Access token user ID mismatch",
			zap.String("tokenUserID", claims.UserID.String()),
			zap.String("repoUserID", userID.String()))
		return uuid.Nil, model.ErrTokenInvalid
	}

	return userID, nil
}

// GetUser возвращает пользователя по ID.
func (s *AuthService) GetUser(ctx context.Context, userID uuid.UUID) (model.User, error) {
	return s.userRepo.GetByID(ctx, userID)
}

// parseToken разбирает и валидирует JWT, возвращая его клеймы.
func (s *AuthService) parseToken(tokenString string) (*model.Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &model.Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.cfg.JWTSecret), nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, model.ErrTokenExpired
		}
		if errors.Is(err, jwt.ErrTokenMalformed) {
			return nil, model.ErrTokenMalformed
		}
		return nil, model.ErrTokenInvalid
	}

	claims, ok := token.Claims.(*model.Claims)
	if !ok || !token.Valid {
		return nil, model.ErrTokenInvalid
	}
	return claims, nil
}

// createTokens generates new access and refresh tokens for a user.
func (s *AuthService) createTokens(userID uuid.UUID) (*model.TokenDetails, error) {
	td := &model.TokenDetails{}
	now := time.Now()

	td.AtExpires = now.Add(s.cfg.AccessTokenTTL).Unix()
	td.AccessUUID = uuid.New().String()
	td.RtExpires = now.Add(s.cfg.RefreshTokenTTL).Unix()
	td.RefreshUUID = uuid.New().String()

	acClaims := &model.Claims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        td.AccessUUID,
			ExpiresAt: jwt.NewNumericDate(time.Unix(td.AtExpires, 0)),
			Subject:   userID.String(),
			Issuer:    tokenIssuer,
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	acToken := jwt.NewWithClaims(jwt.SigningMethodHS256, acClaims)
	var err error
	td.AccessToken, err = acToken.SignedString([]byte(s.cfg.JWTSecret))
	if err != nil {
		return nil, fmt.Errorf("failed to sign access token: %w", err)
	}

	rcClaims := &model.Claims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        td.RefreshUUID,
			ExpiresAt: jwt.NewNumericDate(time.Unix(td.RtExpires, 0)),
			Subject:   userID.String(),
			Issuer:    tokenIssuer,
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	rtToken := jwt.NewWithClaims(jwt.SigningMethodHS256, rcClaims)
	td.RefreshToken, err = rtToken.SignedString([]byte(s.cfg.JWTSecret))
	if err != nil {
		return nil, fmt.Errorf("failed to sign refresh token: %w", err)
	}

	return td, nil
}
