package mapping_test

import (
	"testing"
	"time"

	"github.com/SscSPs/blog_backend/internal/core/domain"
	"github.com/SscSPs/blog_backend/internal/models"
	"github.com/SscSPs/blog_backend/internal/utils/mapping"
	"github.com/stretchr/testify/assert"
)

func TestUserMapping_RoundTripKeepsCredentialPair(t *testing.T) {
	now := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	d := domain.User{
		UserID:                "u1",
		Username:              "abcdef123456",
		Name:                  "Alice",
		Email:                 "a@x.com",
		Role:                  domain.RoleAdmin,
		Salt:                  "salt",
		HashedPassword:        "hash",
		AuthProvider:          domain.AuthProviderGoogle,
		PasswordLoginDisabled: true,
		ResetPasswordLink:     "link",
		AuditFields:           domain.AuditFields{CreatedAt: now, LastUpdatedAt: now},
	}
	m := mapping.ToModelUser(d)
	assert.Equal(t, int16(1), m.Role)
	assert.Equal(t, "google", m.AuthProvider)
	assert.Equal(t, d, mapping.ToDomainUser(m))
}

func TestToDomainBlog_Author(t *testing.T) {
	withAuthor := mapping.ToDomainBlog(models.Blog{BlogID: "b1", AuthorID: "u1", AuthorName: "Alice", AuthorUsername: "alice1"})
	if assert.NotNil(t, withAuthor.Author) {
		assert.Equal(t, "alice1", withAuthor.Author.Username)
	}
	assert.NotNil(t, withAuthor.Categories)
	assert.NotNil(t, withAuthor.Tags)

	assert.Nil(t, mapping.ToDomainBlog(models.Blog{BlogID: "b2"}).Author)
}
