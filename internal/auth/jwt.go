package auth

import (
	"errors"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"honestspace/server/internal/apperrors"
)

// Token kinds carried in the custom claim so a refresh token can never be
// presented where an access token is expected.
const (
	TokenKindAccess  = "access"
	TokenKindRefresh = "refresh"
)

// Claims are the JWT claims for both access and refresh tokens.
type Claims struct {
	UserID    string `json:"user_id"`
	TokenKind string `json:"token_kind"`
	jwt.RegisteredClaims
}

// JWTService issues and validates signed tokens.
type JWTService struct {
	signingKey []byte
	issuer     string
	accessTTL  time.Duration
	refreshTTL time.Duration
}

func NewJWTService(signingKey string, accessTTL, refreshTTL time.Duration) *JWTService {
	return &JWTService{
		signingKey: []byte(signingKey),
		issuer:     "honestspace",
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
	}
}

// TokenPair bundles the two tokens returned by login and refresh.
type TokenPair struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}

// GeneratePair issues a fresh access/refresh token pair for a user.
func (s *JWTService) GeneratePair(userID uint) (*TokenPair, error) {
	access, err := s.generate(userID, TokenKindAccess, s.accessTTL)
	if err != nil {
		return nil, err
	}
	refresh, err := s.generate(userID, TokenKindRefresh, s.refreshTTL)
	if err != nil {
		return nil, err
	}
	return &TokenPair{Access: access, Refresh: refresh}, nil
}

func (s *JWTService) generate(userID uint, kind string, ttl time.Duration) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		UserID:    strconv.FormatUint(uint64(userID), 10),
		TokenKind: kind,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    s.issuer,
			ID:        uuid.NewString(),
		},
	})
	return token.SignedString(s.signingKey)
}

// ValidateToken parses and verifies a token of the expected kind.
func (s *JWTService) ValidateToken(tokenString, kind string) (*Claims, error) {
	parsed, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrTokenUnverifiable
		}
		return s.signingKey, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, apperrors.New(apperrors.CodeAuthentication, "token has expired")
		}
		return nil, apperrors.New(apperrors.CodeAuthentication, "invalid token")
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return nil, apperrors.New(apperrors.CodeAuthentication, "invalid token claims")
	}
	if claims.TokenKind != kind {
		return nil, apperrors.New(apperrors.CodeAuthentication, "wrong token type")
	}
	return claims, nil
}

// UserIDFromClaims decodes the numeric user id out of validated claims.
func UserIDFromClaims(claims *Claims) (uint, error) {
	id, err := strconv.ParseUint(claims.UserID, 10, 64)
	if err != nil {
		return 0, apperrors.New(apperrors.CodeAuthentication, "invalid token subject")
	}
	return uint(id), nil
}
