package utils // package utils provides helpers for operator access tokens

import (
    "errors"
    "fmt"
    "time"

    "github.com/golang-jwt/jwt/v5" // JWT library for creating and parsing signed tokens

    "github.com/iliyamo/eventflow-booking/internal/model"
)

// ErrInvalidToken is returned for any token that fails signature, expiry or
// claim checks.  Callers translate it to 401.
var ErrInvalidToken = errors.New("invalid token")

// AccessToken represents a signed JWT access token along with its expiry.
type AccessToken struct {
    Token string    // the serialized JWT string
    Exp   time.Time // the UTC expiration time
}

// Claims carried by operator tokens.  Subject identifies the operator and
// Role is one of the non-anonymous model roles.
type Claims struct {
    Role model.Role `json:"role"`
    jwt.RegisteredClaims
}

// NewAccessToken builds and signs an HS256 JWT for an operator.  The token
// includes the standard claims sub, exp and iat plus the role.
func NewAccessToken(secret, subject string, role model.Role, ttl time.Duration) (AccessToken, error) {
    if !role.Valid() {
        return AccessToken{}, fmt.Errorf("cannot issue token for role %q", role)
    }
    if subject == "" {
        return AccessToken{}, errors.New("subject is required")
    }
    now := time.Now().UTC()
    exp := now.Add(ttl)
    claims := Claims{
        Role: role,
        RegisteredClaims: jwt.RegisteredClaims{
            Subject:   subject,
            IssuedAt:  jwt.NewNumericDate(now),
            ExpiresAt: jwt.NewNumericDate(exp),
        },
    }
    signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
    if err != nil {
        return AccessToken{}, err
    }
    return AccessToken{Token: signed, Exp: exp}, nil
}

// ParseAccessToken validates raw against secret and returns the identity it
// carries.  Only HS256 is accepted and the role must be a known operator
// role.
func ParseAccessToken(secret, raw string) (model.Identity, error) {
    var claims Claims
    tok, err := jwt.ParseWithClaims(raw, &claims, func(t *jwt.Token) (interface{}, error) {
        return []byte(secret), nil
    }, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())
    if err != nil || !tok.Valid {
        return model.Anonymous, fmt.Errorf("%w: %v", ErrInvalidToken, err)
    }
    if claims.Subject == "" || !claims.Role.Valid() {
        return model.Anonymous, fmt.Errorf("%w: missing subject or role", ErrInvalidToken)
    }
    return model.Identity{Subject: claims.Subject, Role: claims.Role}, nil
}
