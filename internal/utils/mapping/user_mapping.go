package mapping

import (
	"github.com/SscSPs/blog_backend/internal/core/domain"
	"github.com/SscSPs/blog_backend/internal/models"
)

// ToModelUser converts a domain User to a model User
func ToModelUser(d domain.User) models.User {
	return models.User{
		UserID:                d.UserID,
		Username:              d.Username,
		Name:                  d.Name,
		Email:                 d.Email,
		Profile:               d.Profile,
		About:                 d.About,
		Role:                  int16(d.Role),
		Salt:                  d.Salt,
		HashedPassword:        d.HashedPassword,
		AuthProvider:          string(d.AuthProvider),
		ProviderUserID:        d.ProviderUserID,
		PasswordLoginDisabled: d.PasswordLoginDisabled,
		ResetPasswordLink:     d.ResetPasswordLink,
		IsAuthorOfTheMonth:    d.IsAuthorOfTheMonth,
		AuditFields:           ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainUser converts a model User to a domain User
func ToDomainUser(m models.User) domain.User {
	return domain.User{
		UserID:                m.UserID,
		Username:              m.Username,
		Name:                  m.Name,
		Email:                 m.Email,
		Profile:               m.Profile,
		About:                 m.About,
		Role:                  domain.Role(m.Role),
		Salt:                  m.Salt,
		HashedPassword:        m.HashedPassword,
		AuthProvider:          domain.AuthProvider(m.AuthProvider),
		ProviderUserID:        m.ProviderUserID,
		PasswordLoginDisabled: m.PasswordLoginDisabled,
		ResetPasswordLink:     m.ResetPasswordLink,
		IsAuthorOfTheMonth:    m.IsAuthorOfTheMonth,
		AuditFields:           ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainUserSlice converts a slice of model Users to a slice of domain Users
func ToDomainUserSlice(ms []models.User) []domain.User {
	ds := make([]domain.User, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainUser(m)
	}
	return ds
}

// ToAuthorRef summarizes a user for embedding in blog listings.
func ToAuthorRef(d domain.User) domain.AuthorRef {
	return domain.AuthorRef{
		UserID:   d.UserID,
		Name:     d.Name,
		Username: d.Username,
		Profile:  d.Profile,
		About:    d.About,
	}
}
