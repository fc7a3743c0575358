package auth

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// Role is the single coarse-grained access level carried by a session.
type Role string

const (
	RoleAdmin    Role = "ADMIN"
	RoleFinance  Role = "FINANCE"
	RoleEmployee Role = "EMPLOYEE"
)

// Area home routes, used by clients to redirect after login and on
// wrong-role access.
const (
	LoginPath       = "/login"
	AdminHomePath   = "/admin/home"
	FinanceHomePath = "/finance"
)

// HomePathForRole returns the landing route for a role. Unknown roles
// land on the public login route.
func HomePathForRole(role Role) string {
	switch role {
	case RoleAdmin:
		return AdminHomePath
	case RoleFinance:
		return FinanceHomePath
	default:
		return LoginPath
	}
}

func ValidRole(role Role) bool {
	switch role {
	case RoleAdmin, RoleFinance, RoleEmployee:
		return true
	}
	return false
}

// User is the session-scoped view of an account, loaded once per
// request by the auth middleware and read by every guarded handler.
type User struct {
	ID       int64  `json:"id"`
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	Role     Role   `json:"role"`
}

func (u *User) HasRole(roles ...Role) bool {
	for _, r := range roles {
		if u.Role == r {
			return true
		}
	}
	return false
}

func (u *User) IsAdmin() bool   { return u.Role == RoleAdmin }
func (u *User) IsFinance() bool { return u.Role == RoleFinance }

type ctxKey string

const ContextUserKey ctxKey = "user"

func UserFromContext(ctx context.Context) (*User, bool) {
	u, ok := ctx.Value(ContextUserKey).(*User)
	return u, ok
}

func ContextWithUser(ctx context.Context, u *User) context.Context {
	return context.WithValue(ctx, ContextUserKey, u)
}

type AuthTokens struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// Session is what a successful login hands back: the user record the
// dashboards display plus the tokens and the role's home route.
type Session struct {
	User     User       `json:"user"`
	Tokens   AuthTokens `json:"tokens"`
	HomePath string     `json:"home_path"`
}

// Claims represents JWT token claims
type Claims struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

type JWTTokenGenerator struct {
	AccessTokenSecret  []byte
	RefreshTokenSecret []byte
	AccessTokenTTL     time.Duration
	RefreshTokenTTL    time.Duration
}

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid token")
	ErrTokenExpired       = errors.New("token expired")
	ErrUserNotVerified    = errors.New("user is not verified")
)

func VerifyPassword(hashedPassword, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
}

func HashPassword(password string, cost int) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
