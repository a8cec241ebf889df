package utils_test

import (
	"testing"

	"github.com/SscSPs/blog_backend/internal/utils"
	"github.com/stretchr/testify/assert"
)

func TestMakeSalt_Unique(t *testing.T) {
	seen := make(map[string]struct{})
	for i := 0; i < 50; i++ {
		s := utils.MakeSalt()
		assert.NotEmpty(t, s)
		_, dup := seen[s]
		assert.False(t, dup, "salt repeated: %s", s)
		seen[s] = struct{}{}
	}
}

func TestEncryptPassword(t *testing.T) {
	s1, s2 := utils.MakeSalt(), utils.MakeSalt()

	h1 := utils.EncryptPassword("secret1", s1)
	assert.NotEmpty(t, h1)
	assert.Equal(t, h1, utils.EncryptPassword("secret1", s1), "must be deterministic")
	assert.NotEqual(t, h1, utils.EncryptPassword("secret1", s2), "different salts must give different hashes")
	assert.NotEqual(t, "secret1", h1)

	assert.Equal(t, "", utils.EncryptPassword("", s1))
	assert.Equal(t, "", utils.EncryptPassword("secret1", ""))
}

func TestAuthenticate(t *testing.T) {
	salt := utils.MakeSalt()
	for _, p := range []string{"secret1", "a", "pässwörd with spaces"} {
		hash := utils.EncryptPassword(p, salt)
		assert.True(t, utils.Authenticate(p, salt, hash), p)
		assert.False(t, utils.Authenticate(p+"x", salt, hash), p)
	}
	assert.False(t, utils.Authenticate("", salt, ""))
	assert.False(t, utils.Authenticate("secret1", salt, ""))
}
