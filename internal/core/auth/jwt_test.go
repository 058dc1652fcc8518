package auth

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedClock(t time.Time) func() time.Time { return func() time.Time { return t } }

func TestIssueAndVerify(t *testing.T) {
	issued := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	j := &JWTer{Secret: []byte("s3cret"), Now: fixedClock(issued)}

	tok, err := j.Issue(42)
	require.NoError(t, err)

	c, err := j.Parse(tok)
	require.NoError(t, err)
	assert.Equal(t, int64(42), c.ID)
	assert.Equal(t, issued.Add(24*time.Hour).Unix(), c.ExpiresAt.Unix())

	j.Now = fixedClock(issued.Add(24*time.Hour - time.Second))
	id, err := j.Verify(tok)
	require.NoError(t, err)
	assert.Equal(t, int64(42), id)
}

func TestVerifyExpired(t *testing.T) {
	issued := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	j := &JWTer{Secret: []byte("s3cret"), TTL: time.Hour, Now: fixedClock(issued)}
	tok, err := j.Issue(7)
	require.NoError(t, err)

	j.Now = fixedClock(issued.Add(time.Hour + time.Second))
	_, err = j.Verify(tok)
	assert.ErrorIs(t, err, ErrInvalidToken)
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)
}

func TestVerifyAtExpiryBoundary(t *testing.T) {
	issued := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	j := &JWTer{Secret: []byte("s3cret"), Now: fixedClock(issued)}
	tok, err := j.Issue(9)
	require.NoError(t, err)

	j.Now = fixedClock(issued.Add(DefaultTTL))
	id, err := j.Verify(tok)
	require.NoError(t, err)
	assert.Equal(t, int64(9), id)

	j.Now = fixedClock(issued.Add(DefaultTTL).Add(time.Nanosecond))
	_, err = j.Verify(tok)
	assert.ErrorIs(t, err, ErrInvalidToken)
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)
}

func TestIssueRoundsExpiryUp(t *testing.T) {
	issued := time.Date(2026, 3, 1, 12, 0, 0, 700_000_000, time.UTC)
	j := &JWTer{Secret: []byte("s3cret"), TTL: time.Hour, Now: fixedClock(issued)}
	tok, err := j.Issue(9)
	require.NoError(t, err)

	c, err := j.Parse(tok)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 3, 1, 13, 0, 1, 0, time.UTC).Unix(), c.ExpiresAt.Unix())

	j.Now = fixedClock(issued.Add(time.Hour))
	_, err = j.Verify(tok)
	require.NoError(t, err)

	j.Now = fixedClock(time.Date(2026, 3, 1, 13, 0, 1, 1, time.UTC))
	_, err = j.Verify(tok)
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)
}

func TestVerifyRejectsForeignSignature(t *testing.T) {
	a := &JWTer{Secret: []byte("one")}
	b := &JWTer{Secret: []byte("two")}
	tok, err := a.Issue(1)
	require.NoError(t, err)

	_, err = b.Verify(tok)
	assert.ErrorIs(t, err, ErrInvalidToken)

	parts := strings.Split(tok, ".")
	sig := []byte(parts[2])
	if sig[0] == 'A' {
		sig[0] = 'B'
	} else {
		sig[0] = 'A'
	}
	_, err = a.Verify(parts[0] + "." + parts[1] + "." + string(sig))
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyRejectsMalformed(t *testing.T) {
	j := &JWTer{Secret: []byte("s3cret")}
	for _, tok := range []string{"", "abc", "a.b.c"} {
		_, err := j.Verify(tok)
		assert.ErrorIs(t, err, ErrInvalidToken, tok)
	}
}

func TestVerifyRejectsMissingIDAndExpiry(t *testing.T) {
	j := &JWTer{Secret: []byte("s3cret")}

	noID, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"exp": time.Now().Add(time.Hour).Unix(),
	}).SignedString(j.Secret)
	require.NoError(t, err)
	_, err = j.Verify(noID)
	assert.ErrorIs(t, err, ErrInvalidToken)

	noExp, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"id": 3}).SignedString(j.Secret)
	require.NoError(t, err)
	_, err = j.Verify(noExp)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyRejectsOtherAlgorithms(t *testing.T) {
	j := &JWTer{Secret: []byte("s3cret")}
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS512, Claims{
		ID:               5,
		RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour))},
	}).SignedString(j.Secret)
	require.NoError(t, err)

	_, err = j.Verify(tok)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
