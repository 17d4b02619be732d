package token_test

import (
	"testing"

	"github.com/MorgandeCesso/regulus-back/config"
	"github.com/MorgandeCesso/regulus-back/pkg/token"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() config.JWT {
	return config.JWT{
		AccessSecret:     "access-secret",
		RefreshSecret:    "refresh-secret",
		AccessExpiresIn:  15,
		RefreshExpiresIn: 7,
	}
}

func TestManager_AccessToken(t *testing.T) {
	m := token.NewManager(testConfig())

	tok, err := m.GenerateAccessToken("alice")
	require.NoError(t, err)
	require.NotEmpty(t, tok)

	subject, err := m.ParseAccessToken(tok)
	require.NoError(t, err)
	assert.Equal(t, "alice", subject)

	t.Run("wrong secret is rejected", func(t *testing.T) {
		cfg := testConfig()
		cfg.AccessSecret = "someone-elses-secret"
		other := token.NewManager(cfg)

		_, err := other.ParseAccessToken(tok)
		assert.Error(t, err)
	})

	t.Run("access token is not a refresh token", func(t *testing.T) {
		_, err := m.ParseRefreshToken(tok)
		assert.Error(t, err)
	})

	t.Run("garbage is rejected", func(t *testing.T) {
		_, err := m.ParseAccessToken("not-a-jwt")
		assert.Error(t, err)
	})
}

func TestManager_ExpiredAccessToken(t *testing.T) {
	cfg := testConfig()
	cfg.AccessExpiresIn = -1 // already expired at issuance
	expired := token.NewManager(cfg)

	tok, err := expired.GenerateAccessToken("alice")
	require.NoError(t, err)

	m := token.NewManager(testConfig())

	_, err = m.ParseAccessToken(tok)
	assert.Error(t, err, "expired token must fail normal verification")

	subject, err := m.Subject(tok)
	require.NoError(t, err, "Subject must ignore expiry")
	assert.Equal(t, "alice", subject)
}

func TestManager_RefreshToken(t *testing.T) {
	m := token.NewManager(testConfig())

	tok, err := m.GenerateRefreshToken("bob")
	require.NoError(t, err)

	subject, err := m.ParseRefreshToken(tok)
	require.NoError(t, err)
	assert.Equal(t, "bob", subject)

	t.Run("expired refresh token is rejected", func(t *testing.T) {
		cfg := testConfig()
		cfg.RefreshExpiresIn = -1
		expired := token.NewManager(cfg)

		tok, err := expired.GenerateRefreshToken("bob")
		require.NoError(t, err)

		_, err = m.ParseRefreshToken(tok)
		assert.Error(t, err)
	})
}
