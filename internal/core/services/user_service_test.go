package services_test

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/SscSPs/blog_backend/internal/apperrors"
	"github.com/SscSPs/blog_backend/internal/core/domain"
	portssvc "github.com/SscSPs/blog_backend/internal/core/ports/services"
	"github.com/SscSPs/blog_backend/internal/core/services"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type UserServiceTestSuite struct {
	suite.Suite
	ctx    context.Context
	users  *memUserRepo
	blogs  *MockBlogRepository
	photos *memPhotoRepo
	svc    portssvc.UserSvcFacade
	alice  domain.User
}

func (s *UserServiceTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.users = newMemUserRepo()
	s.blogs = new(MockBlogRepository)
	s.photos = newMemPhotoRepo()
	s.svc = services.NewUserService(testConfig(), s.users, s.blogs, s.photos)

	s.alice = domain.User{
		UserID:   "u-alice",
		Username: "alice123",
		Name:     "Alice",
		Email:    "alice@example.com",
		Profile:  "http://client.test/profile/alice123",
		Role:     domain.RoleRegular,
	}
	s.Require().NoError(s.alice.SetPassword("original-secret"))
	s.Require().NoError(s.users.SaveUser(s.ctx, s.alice))
}

func TestUserServiceTestSuite(t *testing.T) {
	suite.Run(t, new(UserServiceTestSuite))
}

func (s *UserServiceTestSuite) TestGetUserByID_NotFound() {
	_, err := s.svc.GetUserByID(s.ctx, "nobody")
	s.Equal(http.StatusNotFound, apperrors.StatusOf(err))
	s.Equal("User not found!", apperrors.MessageOf(err))
}

func (s *UserServiceTestSuite) TestGetPublicProfile() {
	s.blogs.On("ListBlogs", mock.Anything, domain.BlogFilter{AuthorID: "u-alice", Limit: 10}).
		Return([]domain.Blog{{BlogID: "b1"}}, nil)

	user, blogs, err := s.svc.GetPublicProfile(s.ctx, "Alice123")
	s.Require().NoError(err)
	s.Equal("u-alice", user.UserID)
	s.Len(blogs, 1)

	_, _, err = s.svc.GetPublicProfile(s.ctx, "ghost")
	s.Equal("User not found", apperrors.MessageOf(err))
}

func (s *UserServiceTestSuite) TestUpdateProfile_Whitelist() {
	name, username, about, password := "Alice B", "  AliceB99 ", "Writes about Go", "brand-new-secret"
	updated, err := s.svc.UpdateProfile(s.ctx, "u-alice", domain.UpdateProfile{
		Name:     &name,
		Username: &username,
		About:    &about,
		Password: &password,
		Photo:    &domain.Photo{Data: []byte{0xff}, ContentType: "image/jpeg"},
	})
	s.Require().NoError(err)
	s.Equal("Alice B", updated.Name)
	s.Equal("aliceb99", updated.Username)
	s.Equal("http://client.test/profile/aliceb99", updated.Profile)
	s.Equal("Writes about Go", updated.About)

	stored, err := s.users.FindUserByID(s.ctx, "u-alice")
	s.Require().NoError(err)
	s.Equal("alice@example.com", stored.Email)
	s.Equal(domain.RoleRegular, stored.Role)
	s.True(stored.Authenticate("brand-new-secret"))
	s.False(stored.Authenticate("original-secret"))
	s.NotEqual(s.alice.Salt, stored.Salt)
	s.WithinDuration(time.Now(), stored.LastUpdatedAt, time.Minute)

	photo, err := s.svc.GetProfilePhoto(s.ctx, "u-alice")
	s.Require().NoError(err)
	s.Equal("image/jpeg", photo.ContentType)
}

func (s *UserServiceTestSuite) TestUpdateProfile_EmptyPasswordKeepsCredential() {
	empty := ""
	_, err := s.svc.UpdateProfile(s.ctx, "u-alice", domain.UpdateProfile{Password: &empty})
	s.Require().NoError(err)
	stored, _ := s.users.FindUserByID(s.ctx, "u-alice")
	s.True(stored.Authenticate("original-secret"))
}

func (s *UserServiceTestSuite) TestUpdateProfile_UsernameTaken() {
	s.Require().NoError(s.users.SaveUser(s.ctx, domain.User{UserID: "u-bob", Username: "bobby1", Email: "bob@example.com"}))
	taken := "bobby1"
	_, err := s.svc.UpdateProfile(s.ctx, "u-alice", domain.UpdateProfile{Username: &taken})
	s.Equal(http.StatusConflict, apperrors.StatusOf(err))
	s.Equal("Username already exists", apperrors.MessageOf(err))
}

func (s *UserServiceTestSuite) TestGetProfilePhoto_Missing() {
	_, err := s.svc.GetProfilePhoto(s.ctx, "u-alice")
	s.Equal("Photo not found", apperrors.MessageOf(err))
}

func (s *UserServiceTestSuite) TestPromoteAdmin() {
	s.Require().NoError(s.svc.PromoteAdmin(s.ctx, " ALICE@example.com "))
	stored, _ := s.users.FindUserByID(s.ctx, "u-alice")
	s.True(stored.IsAdmin())

	err := s.svc.PromoteAdmin(s.ctx, "ghost@example.com")
	s.Equal(http.StatusNotFound, apperrors.StatusOf(err))
}
