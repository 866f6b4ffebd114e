package jwt

import (
	"context"
	"errors"
	"time"

	"github.com/cmlabs-hris/presensi-payroll-go/internal/domain/user"
	"github.com/go-chi/jwtauth/v5"
	"github.com/lestrrat-go/jwx/v2/jwt"
)

const (
	TokenTypeAccess = "access"
	TokenTypeSSE    = "sse"

	sseTokenTTL = 5 * time.Minute
)

var ErrInvalidClaims = errors.New("token claims are missing or invalid")

// Claims is the identity carried by an access token. EmployeeID is set for
// employees only and equals UserID.
type Claims struct {
	UserID     string
	Email      string
	Role       user.Role
	AdminID    string
	EmployeeID string
}

type Service interface {
	GenerateAccessToken(c Claims) (token string, expiresIn int64, err error)
	GenerateSSEToken(userID string) (token string, expiresIn int64, err error)
	ValidateSSEToken(tokenString string) (userID string, err error)
	JWTAuth() *jwtauth.JWTAuth
}

type JWTService struct {
	accessTokenExpiration time.Duration
	tokenAuth             *jwtauth.JWTAuth
	now                   func() time.Time
}

func NewJWTService(secretKey string, accessTokenExpirationTime string) (Service, error) {
	exp, err := time.ParseDuration(accessTokenExpirationTime)
	if err != nil {
		return nil, err
	}
	return &JWTService{
		accessTokenExpiration: exp,
		tokenAuth:             jwtauth.New("HS256", []byte(secretKey), nil, jwt.WithAcceptableSkew(30*time.Second)),
		now:                   time.Now,
	}, nil
}

func (j *JWTService) JWTAuth() *jwtauth.JWTAuth {
	return j.tokenAuth
}

func (j *JWTService) GenerateAccessToken(c Claims) (token string, expiresIn int64, err error) {
	expiresAt := j.now().Add(j.accessTokenExpiration).Unix()

	claims := map[string]interface{}{
		"user_id":     c.UserID,
		"email":       c.Email,
		"role":        string(c.Role),
		"admin_id":    c.AdminID,
		"employee_id": valueOrNil(c.EmployeeID),
		"type":        TokenTypeAccess,
		"exp":         expiresAt,
	}

	_, tokenString, err := j.tokenAuth.Encode(claims)
	return tokenString, int64(j.accessTokenExpiration.Seconds()), err
}

// GenerateSSEToken generates a short-lived token for SSE connections
func (j *JWTService) GenerateSSEToken(userID string) (token string, expiresIn int64, err error) {
	_, tokenString, err := j.tokenAuth.Encode(map[string]interface{}{
		"user_id": userID,
		"type":    TokenTypeSSE,
		"exp":     j.now().Add(sseTokenTTL).Unix(),
	})
	if err != nil {
		return "", 0, err
	}
	return tokenString, int64(sseTokenTTL.Seconds()), nil
}

// ValidateSSEToken validates an SSE token and returns the user ID
func (j *JWTService) ValidateSSEToken(tokenString string) (userID string, err error) {
	token, err := jwtauth.VerifyToken(j.tokenAuth, tokenString)
	if err != nil {
		return "", err
	}

	tokenType, ok := token.Get("type")
	if !ok || tokenType != TokenTypeSSE {
		return "", jwt.ErrInvalidJWT()
	}

	userIDVal, ok := token.Get("user_id")
	if !ok {
		return "", jwt.ErrInvalidJWT()
	}
	userID, ok = userIDVal.(string)
	if !ok || userID == "" {
		return "", jwt.ErrInvalidJWT()
	}

	return userID, nil
}

// GetClaims reads the verified access token claims from the request context.
func GetClaims(ctx context.Context) (Claims, error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return Claims{}, err
	}

	if t, _ := claims["type"].(string); t != TokenTypeAccess {
		return Claims{}, ErrInvalidClaims
	}

	var c Claims
	c.UserID, _ = claims["user_id"].(string)
	c.Email, _ = claims["email"].(string)
	role, _ := claims["role"].(string)
	c.Role = user.Role(role)
	c.AdminID, _ = claims["admin_id"].(string)
	c.EmployeeID, _ = claims["employee_id"].(string)

	if c.UserID == "" || c.AdminID == "" || !c.Role.IsValid() {
		return Claims{}, ErrInvalidClaims
	}
	return c, nil
}

func valueOrNil(value string) interface{} {
	if value == "" {
		return nil
	}
	return value
}
