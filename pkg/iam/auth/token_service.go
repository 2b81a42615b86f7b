package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/maprecruit/platform/pkg/kernel"
)

// AuthContext is the authenticated identity attached to a request. The
// active company travels in the token so every downstream decision scopes to
// the same tenant the session committed to.
type AuthContext struct {
	UserID    kernel.UserID
	RoleID    kernel.RoleID
	CompanyID kernel.CompanyID
	SessionID kernel.SessionID
}

// TokenService issues and validates session tokens
type TokenService interface {
	// GenerateAccessToken issues a short-lived token for the given identity
	GenerateAccessToken(authCtx AuthContext) (string, error)

	// ValidateToken parses and verifies a token, returning the identity it carries
	ValidateToken(token string) (*AuthContext, error)
}

type sessionClaims struct {
	RoleID    string `json:"role_id"`
	CompanyID string `json:"company_id"`
	SessionID string `json:"session_id"`
	jwt.RegisteredClaims
}

// JWTService implements TokenService with HMAC-signed JWTs
type JWTService struct {
	secretKey []byte
	accessTTL time.Duration
	issuer    string
}

// NewJWTService creates a new JWT token service
func NewJWTService(secretKey string, accessTTL time.Duration, issuer string) *JWTService {
	return &JWTService{
		secretKey: []byte(secretKey),
		accessTTL: accessTTL,
		issuer:    issuer,
	}
}

// GenerateAccessToken issues a signed access token
func (s *JWTService) GenerateAccessToken(authCtx AuthContext) (string, error) {
	now := time.Now()
	claims := sessionClaims{
		RoleID:    authCtx.RoleID.String(),
		CompanyID: authCtx.CompanyID.String(),
		SessionID: authCtx.SessionID.String(),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   authCtx.UserID.String(),
			Issuer:    s.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.accessTTL)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secretKey)
	if err != nil {
		return "", ErrTokenGeneration().WithCause(err)
	}
	return signed, nil
}

// ValidateToken verifies signature, expiry and issuer
func (s *JWTService) ValidateToken(tokenString string) (*AuthContext, error) {
	var claims sessionClaims
	token, err := jwt.ParseWithClaims(tokenString, &claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken().WithDetail("alg", t.Method.Alg())
		}
		return s.secretKey, nil
	}, jwt.WithIssuer(s.issuer), jwt.WithExpirationRequired())
	if err != nil {
		return nil, ErrInvalidToken().WithCause(err)
	}
	if !token.Valid {
		return nil, ErrInvalidToken()
	}

	return &AuthContext{
		UserID:    kernel.UserID(claims.Subject),
		RoleID:    kernel.RoleID(claims.RoleID),
		CompanyID: kernel.CompanyID(claims.CompanyID),
		SessionID: kernel.SessionID(claims.SessionID),
	}, nil
}
