package auth

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHasher_Hash(t *testing.T) {
	hasher := NewHasher()

	t.Run("produces PHC encoded argon2id hash", func(t *testing.T) {
		hash, err := hasher.Hash("Password123!")
		require.NoError(t, err)

		assert.True(t, strings.HasPrefix(hash, "$argon2id$"))
		assert.Len(t, strings.Split(hash, "$"), 6)
		assert.NotContains(t, hash, "Password123!")
	})

	t.Run("different salts for the same password", func(t *testing.T) {
		first, err := hasher.Hash("samepassword")
		require.NoError(t, err)

		second, err := hasher.Hash("samepassword")
		require.NoError(t, err)

		assert.NotEqual(t, first, second)
	})

	t.Run("empty password is rejected", func(t *testing.T) {
		_, err := hasher.Hash("")

		assert.ErrorIs(t, err, ErrEmptyPassword)
	})
}

func TestHasher_Verify(t *testing.T) {
	hasher := NewHasher()

	hash, err := hasher.Hash("correct-password")
	require.NoError(t, err)

	tests := []struct {
		name          string
		password      string
		encodedHash   string
		expectedMatch bool
		expectedError bool
	}{
		{
			name:          "matching password",
			password:      "correct-password",
			encodedHash:   hash,
			expectedMatch: true,
		},
		{
			name:          "wrong password is a normal false result",
			password:      "wrong-password",
			encodedHash:   hash,
			expectedMatch: false,
		},
		{
			name:          "empty stored hash verifies false without error",
			password:      "correct-password",
			encodedHash:   "",
			expectedMatch: false,
		},
		{
			name:          "malformed hash",
			password:      "correct-password",
			encodedHash:   "not-a-phc-string",
			expectedMatch: false,
			expectedError: true,
		},
		{
			name:          "unsupported algorithm",
			password:      "correct-password",
			encodedHash:   "$bcrypt$v=19$m=65536,t=1,p=4$c2FsdA$aGFzaA",
			expectedMatch: false,
			expectedError: true,
		},
		{
			name:          "invalid salt encoding",
			password:      "correct-password",
			encodedHash:   "$argon2id$v=19$m=65536,t=1,p=4$!!!$aGFzaA",
			expectedMatch: false,
			expectedError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			match, err := hasher.Verify(tt.password, tt.encodedHash)

			if tt.expectedError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, tt.expectedMatch, match)
		})
	}
}

func TestHasher_VerifyDistinguishesPasswords(t *testing.T) {
	hasher := NewHasher()

	hash, err := hasher.Hash("first-password")
	require.NoError(t, err)

	matchFirst, err := hasher.Verify("first-password", hash)
	require.NoError(t, err)
	matchSecond, err := hasher.Verify("second-password", hash)
	require.NoError(t, err)

	assert.True(t, matchFirst)
	assert.False(t, matchSecond)
}
