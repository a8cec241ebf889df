package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/SscSPs/blog_backend/internal/apperrors"
	"github.com/SscSPs/blog_backend/internal/core/domain"
	portsrepo "github.com/SscSPs/blog_backend/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/blog_backend/internal/core/ports/services"
	"github.com/SscSPs/blog_backend/internal/platform/config"
)

// publicProfileBlogLimit caps the blogs returned with a public profile.
const publicProfileBlogLimit = 10

type userService struct {
	BaseService
	cfg    *config.Config
	users  portsrepo.UserRepositoryFacade
	blogs  portsrepo.BlogReader
	photos portsrepo.PhotoRepositoryFacade
	now    func() time.Time
}

func NewUserService(
	cfg *config.Config,
	users portsrepo.UserRepositoryFacade,
	blogs portsrepo.BlogReader,
	photos portsrepo.PhotoRepositoryFacade,
) portssvc.UserSvcFacade {
	return &userService{
		cfg:    cfg,
		users:  users,
		blogs:  blogs,
		photos: photos,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

func (s *userService) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	user, err := s.users.FindUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewNotFoundError("User not found!")
		}
		s.LogError(ctx, err, "Failed to get user", slog.String("user_id", userID))
		return nil, fmt.Errorf("failed to get user by ID in service: %w", err)
	}
	return user, nil
}

func (s *userService) GetPublicProfile(ctx context.Context, username string) (*domain.User, []domain.Blog, error) {
	user, err := s.users.FindUserByUsername(ctx, strings.ToLower(username))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, nil, apperrors.NewNotFoundError("User not found")
		}
		return nil, nil, fmt.Errorf("failed to get public profile: %w", err)
	}
	blogs, err := s.blogs.ListBlogs(ctx, domain.BlogFilter{AuthorID: user.UserID, Limit: publicProfileBlogLimit})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list profile blogs: %w", err)
	}
	return user, blogs, nil
}

func (s *userService) GetProfilePhoto(ctx context.Context, userID string) (*domain.Photo, error) {
	photo, err := s.photos.GetPhoto(ctx, domain.PhotoOwnerUser, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewNotFoundError("Photo not found")
		}
		return nil, fmt.Errorf("failed to get profile photo: %w", err)
	}
	return photo, nil
}

// UpdateProfile only touches name, username, about, password and photo.
func (s *userService) UpdateProfile(ctx context.Context, userID string, update domain.UpdateProfile) (*domain.User, error) {
	user, err := s.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if update.Name != nil {
		user.Name = strings.TrimSpace(*update.Name)
	}
	if update.Username != nil {
		user.Username = strings.ToLower(strings.TrimSpace(*update.Username))
		user.Profile = domain.ProfileURL(s.cfg.ClientURL, user.Username)
	}
	if update.About != nil {
		user.About = *update.About
	}
	if update.Password != nil && *update.Password != "" {
		if err := user.SetPassword(*update.Password); err != nil {
			return nil, apperrors.NewBadRequestError("Password should be min 6 characters long")
		}
	}
	user.Touch(s.now())

	if err := s.users.UpdateUser(ctx, *user); err != nil {
		s.LogError(ctx, err, "Failed to update profile", slog.String("user_id", userID))
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}

	if update.Photo != nil {
		if err := s.photos.PutPhoto(ctx, domain.PhotoOwnerUser, user.UserID, *update.Photo); err != nil {
			s.LogError(ctx, err, "Failed to store profile photo", slog.String("user_id", userID))
			return nil, fmt.Errorf("failed to store profile photo: %w", err)
		}
	}
	return user, nil
}

func (s *userService) PromoteAdmin(ctx context.Context, email string) error {
	if err := s.users.UpdateRole(ctx, domain.NormalizeEmail(email), domain.RoleAdmin); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return apperrors.NewNotFoundError("User with that email does not exist")
		}
		return fmt.Errorf("failed to promote admin: %w", err)
	}
	s.LogInfo(ctx, "User promoted to admin")
	return nil
}
