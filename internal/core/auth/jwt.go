package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const DefaultTTL = 24 * time.Hour

var ErrInvalidToken = errors.New("invalid token")

// Claims is the token payload: {id, iat, exp}.
type Claims struct {
	ID int64 `json:"id"`
	jwt.RegisteredClaims
}

type JWTer struct {
	Secret []byte
	TTL    time.Duration
	Now    func() time.Time // nil means time.Now
}

func (j *JWTer) now() time.Time {
	if j.Now != nil {
		return j.Now()
	}
	return time.Now()
}

func (j *JWTer) ttl() time.Duration {
	if j.TTL <= 0 {
		return DefaultTTL
	}
	return j.TTL
}

// Issue signs a token for uid. exp is rounded up to a whole second so the
// token never lives shorter than the TTL.
func (j *JWTer) Issue(uid int64) (string, error) {
	now := j.now()
	exp := now.Add(j.ttl())
	if s := exp.Truncate(time.Second); s.Before(exp) {
		exp = s.Add(time.Second)
	}
	claims := Claims{
		ID: uid,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(j.Secret)
}

func (j *JWTer) Parse(tokenStr string) (*Claims, error) {
	t, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, fmt.Errorf("unexpected alg %v", token.Header["alg"])
		}
		return j.Secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		// valid through exp itself: now <= exp
		jwt.WithLeeway(time.Nanosecond),
		jwt.WithTimeFunc(j.now),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}
	if c, ok := t.Claims.(*Claims); ok && t.Valid {
		return c, nil
	}
	return nil, ErrInvalidToken
}

// Verify resolves a token to the user id it was issued for.
func (j *JWTer) Verify(tokenStr string) (int64, error) {
	c, err := j.Parse(tokenStr)
	if err != nil {
		return 0, err
	}
	if c.ID <= 0 {
		return 0, fmt.Errorf("%w: missing id", ErrInvalidToken)
	}
	return c.ID, nil
}
