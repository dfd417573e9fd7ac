package jwt

import (
	"context"
	"errors"
	"math"
	"regexp"
	"strconv"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/lestrrat-go/jwx/v2/jwt"
)

const (
	defaultExpiry = 86400 * time.Second
	tokenType     = "access"
)

var ErrInvalidClaims = errors.New("token is missing required claims")

// Claims is the identity carried by an access token.
type Claims struct {
	ID    string
	Email string
	Name  string
}

type Service interface {
	GenerateToken(claims Claims) (token string, expiresAt int64, err error)
	ParseToken(token string) (Claims, error)
	JWTAuth() *jwtauth.JWTAuth
	ExpiresIn() time.Duration
}

type JWTService struct {
	tokenAuth *jwtauth.JWTAuth
	expiresIn time.Duration
}

func NewJWTService(secretKey string, expiresIn string) Service {
	return &JWTService{
		tokenAuth: jwtauth.New("HS256", []byte(secretKey), nil, jwt.WithAcceptableSkew(30*time.Second)),
		expiresIn: ParseExpiresIn(expiresIn),
	}
}

func (j *JWTService) JWTAuth() *jwtauth.JWTAuth {
	return j.tokenAuth
}

func (j *JWTService) ExpiresIn() time.Duration {
	return j.expiresIn
}

func (j *JWTService) GenerateToken(claims Claims) (token string, expiresAt int64, err error) {
	expiresAt = time.Now().Add(j.expiresIn).Unix()

	_, tokenString, err := j.tokenAuth.Encode(map[string]interface{}{
		"id":    claims.ID,
		"email": claims.Email,
		"name":  claims.Name,
		"type":  tokenType,
		"iat":   time.Now().Unix(),
		"exp":   expiresAt,
	})
	return tokenString, expiresAt, err
}

// ParseToken verifies signature and expiry and returns the embedded claims.
func (j *JWTService) ParseToken(tokenString string) (Claims, error) {
	token, err := jwtauth.VerifyToken(j.tokenAuth, tokenString)
	if err != nil {
		return Claims{}, err
	}
	return claimsFromToken(token)
}

// ClaimsFromContext reads the claims of the token verified by jwtauth.Verifier.
func ClaimsFromContext(ctx context.Context) (Claims, error) {
	token, _, err := jwtauth.FromContext(ctx)
	if err != nil {
		return Claims{}, err
	}
	if token == nil {
		return Claims{}, ErrInvalidClaims
	}
	return claimsFromToken(token)
}

func claimsFromToken(token jwt.Token) (Claims, error) {
	if typ, _ := stringClaim(token, "type"); typ != tokenType {
		return Claims{}, ErrInvalidClaims
	}

	id, ok := stringClaim(token, "id")
	if !ok || id == "" {
		return Claims{}, ErrInvalidClaims
	}
	email, _ := stringClaim(token, "email")
	name, _ := stringClaim(token, "name")

	return Claims{ID: id, Email: email, Name: name}, nil
}

func stringClaim(token jwt.Token, key string) (string, bool) {
	v, ok := token.Get(key)
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

var expiresInRegex = regexp.MustCompile(`^(\d+)([smhd])$`)

// ParseExpiresIn accepts values like "30s", "15m", "12h" or "7d". Anything else
// yields 24 hours, as does a value too large for a time.Duration.
func ParseExpiresIn(value string) time.Duration {
	match := expiresInRegex.FindStringSubmatch(value)
	if match == nil {
		return defaultExpiry
	}

	n, err := strconv.Atoi(match[1])
	if err != nil {
		return defaultExpiry
	}

	var unit time.Duration
	switch match[2] {
	case "s":
		unit = time.Second
	case "m":
		unit = time.Minute
	case "h":
		unit = time.Hour
	case "d":
		unit = 24 * time.Hour
	}
	if unit == 0 || int64(n) > math.MaxInt64/int64(unit) {
		return defaultExpiry
	}
	return time.Duration(n) * unit
}
