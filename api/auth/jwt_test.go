package auth_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tauraamui/photoframed/api/auth"
)

func TestGenTokenAndValidateRoundTrip(t *testing.T) {
	token, err := auth.GenToken("testsecret", "testclient")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	client, err := auth.ValidateToken("testsecret", token)
	require.NoError(t, err)
	assert.Equal(t, "testclient", client)
}

func TestValidateTokenWithWrongSecretFails(t *testing.T) {
	token, err := auth.GenToken("testsecret", "testclient")
	require.NoError(t, err)

	client, err := auth.ValidateToken("wrongsecret", token)
	assert.Error(t, err)
	assert.Empty(t, client)
}

func TestValidateTokenRejectsGarbage(t *testing.T) {
	client, err := auth.ValidateToken("testsecret", "not.a.token")
	assert.Error(t, err)
	assert.Empty(t, client)
}

func TestValidateExpiredTokenFails(t *testing.T) {
	oldTimeNow := auth.TimeNow
	defer func() { auth.TimeNow = oldTimeNow }()

	auth.TimeNow = func() time.Time {
		return time.Now().Add(-time.Minute * 30)
	}
	token, err := auth.GenToken("testsecret", "testclient")
	require.NoError(t, err)

	auth.TimeNow = oldTimeNow
	client, err := auth.ValidateToken("testsecret", token)
	assert.Error(t, err)
	assert.Empty(t, client)
}
