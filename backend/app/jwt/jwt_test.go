package jwtutil

import (
	"errors"
	"strings"
	"testing"
	"time"

	"inkpost/backend/app/authz"

	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var alice = authz.Identity{ID: "3f0c1a52-7e0b-4c1e-9d7a-7b1f5b7d2a10", Username: "alice", Email: "alice@example.com", Role: "READER"}

func newSigner(secret string) *Signer {
	return &Signer{Secret: []byte(secret), Issuer: "inkpost", ExpMin: 60}
}

func TestSignParseRoundTrip(t *testing.T) {
	s := newSigner("s3cret")
	tok, err := s.Sign(alice)
	require.NoError(t, err)

	claims, err := s.Parse(tok)
	require.NoError(t, err)
	assert.Equal(t, alice, claims.Identity())
	assert.Equal(t, time.Hour, claims.ExpiresAt.Sub(claims.IssuedAt.Time))
}

func TestParseRejectsExpired(t *testing.T) {
	issued := time.Now().Add(-2 * time.Hour)
	s := newSigner("s3cret")
	s.Now = func() time.Time { return issued }
	tok, err := s.Sign(alice)
	require.NoError(t, err)

	s.Now = nil
	_, err = s.Parse(tok)
	require.ErrorIs(t, err, ErrInvalidToken)
	assert.True(t, errors.Is(err, jwt.ErrTokenExpired))
}

func TestParseRejectsForeignSecret(t *testing.T) {
	tok, err := newSigner("one").Sign(alice)
	require.NoError(t, err)

	_, err = newSigner("two").Parse(tok)
	require.ErrorIs(t, err, ErrInvalidToken)
	assert.True(t, errors.Is(err, jwt.ErrTokenSignatureInvalid))
}

func TestParseRejectsMalformed(t *testing.T) {
	s := newSigner("s3cret")
	for _, tok := range []string{"", "abc", "a.b.c", strings.Repeat("x", 40)} {
		_, err := s.Parse(tok)
		assert.ErrorIs(t, err, ErrInvalidToken, tok)
	}
}

func TestParseRejectsNoneAlgorithm(t *testing.T) {
	claims := Claims{UserID: alice.ID, Role: "AUTHOR", RegisteredClaims: jwt.RegisteredClaims{
		Issuer:    "inkpost",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}}
	tok, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = newSigner("s3cret").Parse(tok)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseRejectsOtherIssuer(t *testing.T) {
	other := &Signer{Secret: []byte("s3cret"), Issuer: "elsewhere"}
	tok, err := other.Sign(alice)
	require.NoError(t, err)

	_, err = newSigner("s3cret").Parse(tok)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenLifetimeDefaultsToOneHour(t *testing.T) {
	now := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	for _, expMin := range []int{0, -5, 60} {
		s := &Signer{Secret: []byte("k"), Issuer: "inkpost", ExpMin: expMin, Now: func() time.Time { return now }}
		assert.Equal(t, time.Hour, s.TTL())

		token, err := s.Sign(alice)
		require.NoError(t, err)
		claims, err := s.Parse(token)
		require.NoError(t, err)
		assert.Equal(t, now.Add(time.Hour), claims.ExpiresAt.Time.UTC())
	}
}
