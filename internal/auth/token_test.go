package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/spec-kit/insurance-crm/internal/domain"
)

type fakeClock struct{ t time.Time }

func (c *fakeClock) Now() time.Time { return c.t }
func (c *fakeClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

func testUser() *domain.StaffUser {
	return &domain.StaffUser{ID: 7, Username: "jdoe", Role: domain.StaffRoleAgent, IsActive: true}
}

func TestTokenManager(t *testing.T) {
	t.Run("Should round-trip access token claims", func(t *testing.T) {
		tm := NewTokenManager("secret", time.Hour, 24*time.Hour)
		token, expiresAt, err := tm.IssueAccessToken(testUser())
		require.NoError(t, err)
		assert.WithinDuration(t, time.Now().Add(time.Hour), expiresAt, 5*time.Second)

		claims, err := tm.ParseAccessToken(token)
		require.NoError(t, err)
		assert.Equal(t, int64(7), claims.UserID)
		assert.Equal(t, "jdoe", claims.Username)
		assert.Equal(t, domain.StaffRoleAgent, claims.Role)
		assert.Equal(t, TokenTypeAccess, claims.Type)
	})
	t.Run("Should reject a token after its expiry elapses", func(t *testing.T) {
		clock := &fakeClock{t: time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)}
		tm := NewTokenManager("secret", time.Second, time.Hour).WithClock(clock.Now)
		token, _, err := tm.IssueAccessToken(testUser())
		require.NoError(t, err)

		_, err = tm.ParseAccessToken(token)
		require.NoError(t, err)

		clock.Advance(2 * time.Second)
		_, err = tm.ParseAccessToken(token)
		assert.ErrorIs(t, err, ErrTokenExpired)
	})
	t.Run("Should not accept a refresh token as an access token", func(t *testing.T) {
		tm := NewTokenManager("secret", time.Hour, 24*time.Hour)
		refresh, _, err := tm.IssueRefreshToken(testUser())
		require.NoError(t, err)

		_, err = tm.ParseAccessToken(refresh)
		assert.ErrorIs(t, err, ErrWrongTokenType)

		claims, err := tm.ParseRefreshToken(refresh)
		require.NoError(t, err)
		assert.Equal(t, int64(7), claims.UserID)
		assert.Empty(t, claims.Username)
	})
	t.Run("Should not accept an access token as a refresh token", func(t *testing.T) {
		tm := NewTokenManager("secret", time.Hour, 24*time.Hour)
		access, _, err := tm.IssueAccessToken(testUser())
		require.NoError(t, err)
		_, err = tm.ParseRefreshToken(access)
		assert.ErrorIs(t, err, ErrWrongTokenType)
	})
	t.Run("Should reject tokens signed with another secret", func(t *testing.T) {
		token, _, err := NewTokenManager("one", time.Hour, time.Hour).IssueAccessToken(testUser())
		require.NoError(t, err)
		_, err = NewTokenManager("two", time.Hour, time.Hour).ParseAccessToken(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})
	t.Run("Should reject garbage", func(t *testing.T) {
		_, err := NewTokenManager("secret", time.Hour, time.Hour).ParseAccessToken("not.a.token")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})
	t.Run("Should default non-positive TTLs", func(t *testing.T) {
		tm := NewTokenManager("secret", 0, -1)
		assert.Equal(t, 24*time.Hour, tm.AccessTTL())
	})
}

func TestPasswordHasher(t *testing.T) {
	h := NewPasswordHasher(bcrypt.MinCost)

	t.Run("Should verify the original password only", func(t *testing.T) {
		hash, err := h.Hash("s3cret!")
		require.NoError(t, err)
		assert.NotEqual(t, "s3cret!", hash)
		assert.True(t, h.Compare(hash, "s3cret!"))
		assert.False(t, h.Compare(hash, "wrong"))
	})
	t.Run("Should salt every hash", func(t *testing.T) {
		a, err := h.Hash("same")
		require.NoError(t, err)
		b, err := h.Hash("same")
		require.NoError(t, err)
		assert.NotEqual(t, a, b)
	})
	t.Run("Should fall back to the default cost when out of range", func(t *testing.T) {
		assert.Equal(t, bcrypt.DefaultCost, NewPasswordHasher(1).cost)
	})
	t.Run("Should not panic comparing against a missing account", func(t *testing.T) {
		assert.NotPanics(t, func() { h.CompareMissing("anything") })
	})
}
