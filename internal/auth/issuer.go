package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// TokenTTL is the validity window of every issued credential.
const TokenTTL = 10 * 24 * time.Hour

const EmailClaim = "email"

// Issuer mints and verifies HS256 credentials with a process-wide secret.
type Issuer struct {
	secret        []byte
	ttl           time.Duration
	now           func() time.Time
	issuerKeyHash []byte
}

type Option func(*Issuer)

// WithIssuerKeyHash requires callers of Issue endpoints to present a key
// matching the given bcrypt hash. An empty hash leaves issuance open.
func WithIssuerKeyHash(hash string) Option {
	return func(i *Issuer) {
		if hash != "" {
			i.issuerKeyHash = []byte(hash)
		}
	}
}

func WithClock(now func() time.Time) Option {
	return func(i *Issuer) { i.now = now }
}

func NewIssuer(secret string, opts ...Option) (*Issuer, error) {
	if secret == "" {
		return nil, ErrSecretNotSet
	}

	i := &Issuer{
		secret: []byte(secret),
		ttl:    TokenTTL,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(i)
	}
	return i, nil
}

// Issue signs the caller-supplied claims. The payload is embedded as-is;
// exp and iat are always set by the issuer.
func (i *Issuer) Issue(claims map[string]any) (string, error) {
	if claims == nil {
		return "", ErrClaimsNotAnObject
	}

	now := i.now()
	mc := jwt.MapClaims{}
	for k, v := range claims {
		mc[k] = v
	}
	mc["iat"] = now.Unix()
	mc["exp"] = now.Add(i.ttl).Unix()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, mc)
	signed, err := token.SignedString(i.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Parse verifies signature and expiry and returns the embedded claims.
// Every failure is reported as ErrInvalidToken wrapping the cause.
func (i *Issuer) Parse(tokenStr string) (jwt.MapClaims, error) {
	if tokenStr == "" {
		return nil, ErrUnauthenticated
	}

	token, err := jwt.Parse(
		tokenStr,
		func(token *jwt.Token) (interface{}, error) {
			return i.secret, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(i.now),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

func (i *Issuer) RequiresIssuerKey() bool {
	return len(i.issuerKeyHash) > 0
}

// CheckIssuerKey is a no-op unless an issuer key hash was configured.
func (i *Issuer) CheckIssuerKey(key string) error {
	if !i.RequiresIssuerKey() {
		return nil
	}
	if key == "" || bcrypt.CompareHashAndPassword(i.issuerKeyHash, []byte(key)) != nil {
		return ErrInvalidIssuerKey
	}
	return nil
}

// EmailFromClaims returns the identity claim used by the role gate.
func EmailFromClaims(claims jwt.MapClaims) string {
	email, _ := claims[EmailClaim].(string)
	return email
}

func HashIssuerKey(key string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(key), bcrypt.DefaultCost)
	return string(b), err
}
