package auth

import (
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// Credentials is what the repository hands back for a login attempt.
type Credentials struct {
	User         User
	PasswordHash string
	Verified     bool
}

type UserRepository interface {
	GetCredentialsByEmail(email string) (*Credentials, error)
	GetUserByID(userID int64) (*User, error)
}

type TokenGenerator interface {
	GenerateAccessToken(userID, email, role string) (string, error)
	GenerateRefreshToken(userID, email, role string) (string, error)
	ValidateAccessToken(tokenString string) (*Claims, error)
	ValidateRefreshToken(tokenString string) (*Claims, error)
}

// Service performs authentication and session resolution.
type Service struct {
	userRepo       UserRepository
	tokenGenerator TokenGenerator
	logger         *slog.Logger
}

func NewService(userRepo UserRepository, tokenGen TokenGenerator, logger *slog.Logger) *Service {
	return &Service{
		userRepo:       userRepo,
		tokenGenerator: tokenGen,
		logger:         logger,
	}
}

func NewJWTTokenGenerator(accessSecret, refreshSecret string, accessTTL, refreshTTL time.Duration) *JWTTokenGenerator {
	if accessTTL <= 0 {
		accessTTL = 15 * time.Minute
	}
	if refreshTTL <= 0 {
		refreshTTL = 7 * 24 * time.Hour
	}
	return &JWTTokenGenerator{
		AccessTokenSecret:  []byte(accessSecret),
		RefreshTokenSecret: []byte(refreshSecret),
		AccessTokenTTL:     accessTTL,
		RefreshTokenTTL:    refreshTTL,
	}
}

// Authenticate validates credentials and opens a session.
func (s *Service) Authenticate(dto LoginDTO) (*Session, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	creds, err := s.userRepo.GetCredentialsByEmail(dto.Email)
	if err != nil {
		s.logger.Warn("login failed: unknown email", "email", dto.Email)
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(creds.PasswordHash), []byte(dto.Password)); err != nil {
		s.logger.Warn("login failed: bad password", "user_id", creds.User.ID)
		return nil, ErrInvalidCredentials
	}

	if !creds.Verified {
		return nil, ErrUserNotVerified
	}

	tokens, err := s.issueTokens(creds.User)
	if err != nil {
		return nil, err
	}

	s.logger.Info("session opened", "user_id", creds.User.ID, "role", creds.User.Role)

	return &Session{
		User:     creds.User,
		Tokens:   tokens,
		HomePath: HomePathForRole(creds.User.Role),
	}, nil
}

// RefreshTokens validates a refresh token and rotates both tokens. The
// user record is re-read so a role change takes effect on refresh.
func (s *Service) RefreshTokens(refreshToken string) (*Session, error) {
	claims, err := s.tokenGenerator.ValidateRefreshToken(refreshToken)
	if err != nil {
		return nil, err
	}

	userID, err := strconv.ParseInt(claims.UserID, 10, 64)
	if err != nil {
		return nil, ErrInvalidToken
	}

	user, err := s.userRepo.GetUserByID(userID)
	if err != nil {
		s.logger.Warn("refresh failed: user no longer resolvable", "user_id", userID, "error", err)
		return nil, ErrInvalidToken
	}

	tokens, err := s.issueTokens(*user)
	if err != nil {
		return nil, err
	}

	return &Session{
		User:     *user,
		Tokens:   tokens,
		HomePath: HomePathForRole(user.Role),
	}, nil
}

// ValidateAccessToken validates access token and returns claims
func (s *Service) ValidateAccessToken(tokenString string) (*Claims, error) {
	return s.tokenGenerator.ValidateAccessToken(tokenString)
}

// ResolveUser loads the session user for validated claims.
func (s *Service) ResolveUser(claims *Claims) (*User, error) {
	userID, err := strconv.ParseInt(claims.UserID, 10, 64)
	if err != nil {
		return nil, ErrInvalidToken
	}
	return s.userRepo.GetUserByID(userID)
}

func (s *Service) issueTokens(user User) (AuthTokens, error) {
	id := strconv.FormatInt(user.ID, 10)

	accessToken, err := s.tokenGenerator.GenerateAccessToken(id, user.Email, string(user.Role))
	if err != nil {
		return AuthTokens{}, err
	}

	refreshToken, err := s.tokenGenerator.GenerateRefreshToken(id, user.Email, string(user.Role))
	if err != nil {
		return AuthTokens{}, err
	}

	return AuthTokens{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

// GenerateAccessToken creates a new access token
func (j *JWTTokenGenerator) GenerateAccessToken(userID, email, role string) (string, error) {
	return j.signToken(userID, email, role, j.AccessTokenSecret, j.AccessTokenTTL)
}

// GenerateRefreshToken creates a new refresh token
func (j *JWTTokenGenerator) GenerateRefreshToken(userID, email, role string) (string, error) {
	return j.signToken(userID, email, role, j.RefreshTokenSecret, j.RefreshTokenTTL)
}

func (j *JWTTokenGenerator) signToken(userID, email, role string, secret []byte, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := &Claims{
		UserID: userID,
		Email:  email,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			Subject:   userID,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret)
}

func (j *JWTTokenGenerator) ValidateAccessToken(tokenString string) (*Claims, error) {
	return j.parseToken(tokenString, j.AccessTokenSecret)
}

func (j *JWTTokenGenerator) ValidateRefreshToken(tokenString string) (*Claims, error) {
	return j.parseToken(tokenString, j.RefreshTokenSecret)
}

func (j *JWTTokenGenerator) parseToken(tokenString string, secret []byte) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return secret, nil
	})

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrInvalidToken
	}

	if claims, ok := token.Claims.(*Claims); ok && token.Valid {
		return claims, nil
	}

	return nil, ErrInvalidToken
}
