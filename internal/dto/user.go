package dto

import (
	"github.com/SscSPs/blog_backend/internal/core/domain"
)

// UpdateProfileForm is the multipart form of a profile update.
// Pointers distinguish omitted fields from empty ones; the photo part is read separately.
type UpdateProfileForm struct {
	Name     *string `form:"name" binding:"omitempty,min=1,max=64"`
	Username *string `form:"username" binding:"omitempty,username"`
	About    *string `form:"about" binding:"omitempty,max=1000"`
	Password *string `form:"password" binding:"omitempty,min=6"`
}

// ToDomain converts the form to the whitelisted update.
func (f UpdateProfileForm) ToDomain(photo *domain.Photo) domain.UpdateProfile {
	return domain.UpdateProfile{
		Name:     f.Name,
		Username: f.Username,
		About:    f.About,
		Password: f.Password,
		Photo:    photo,
	}
}

// UserResponse is a user as shown to the user themselves. Credentials never appear.
type UserResponse struct {
	UserID             string      `json:"_id"`
	Username           string      `json:"username"`
	Name               string      `json:"name"`
	Email              string      `json:"email"`
	Profile            string      `json:"profile"`
	About              string      `json:"about,omitempty"`
	Role               domain.Role `json:"role"`
	IsAuthorOfTheMonth bool        `json:"isAuthorOfTheMonth"`
	domain.AuditFields
}

// ToUserResponse converts a domain.User to a UserResponse DTO
func ToUserResponse(user *domain.User) UserResponse {
	return UserResponse{
		UserID:             user.UserID,
		Username:           user.Username,
		Name:               user.Name,
		Email:              user.Email,
		Profile:            user.Profile,
		About:              user.About,
		Role:               user.Role,
		IsAuthorOfTheMonth: user.IsAuthorOfTheMonth,
		AuditFields:        user.AuditFields,
	}
}

// PublicProfileResponse is a user's public page.
type PublicProfileResponse struct {
	User  domain.AuthorRef `json:"user"`
	Blogs []domain.Blog    `json:"blogs"`
}
