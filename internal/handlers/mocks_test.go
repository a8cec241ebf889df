package handlers_test

import (
	"context"

	"github.com/SscSPs/blog_backend/internal/core/domain"
	portssvc "github.com/SscSPs/blog_backend/internal/core/ports/services"
	"github.com/stretchr/testify/mock"
)

// --- Mock AuthService ---
type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) RequestSignup(ctx context.Context, name, email, password string) error {
	return m.Called(ctx, name, email, password).Error(0)
}
func (m *MockAuthService) CompleteSignup(ctx context.Context, token string) (*domain.User, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockAuthService) RequestPasswordReset(ctx context.Context, email string) error {
	return m.Called(ctx, email).Error(0)
}
func (m *MockAuthService) CompletePasswordReset(ctx context.Context, token, newPassword string) error {
	return m.Called(ctx, token, newPassword).Error(0)
}
func (m *MockAuthService) SignIn(ctx context.Context, email, password string) (*domain.Session, error) {
	args := m.Called(ctx, email, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Session), args.Error(1)
}
func (m *MockAuthService) GoogleLogin(ctx context.Context, idToken string) (*domain.Session, error) {
	args := m.Called(ctx, idToken)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Session), args.Error(1)
}
func (m *MockAuthService) GoogleExchangeCode(ctx context.Context, code string) (*domain.Session, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Session), args.Error(1)
}

var _ portssvc.AuthSvcFacade = (*MockAuthService)(nil)

// --- Mock UserService ---
type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserService) GetPublicProfile(ctx context.Context, username string) (*domain.User, []domain.Blog, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).(*domain.User), args.Get(1).([]domain.Blog), args.Error(2)
}
func (m *MockUserService) GetProfilePhoto(ctx context.Context, userID string) (*domain.Photo, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Photo), args.Error(1)
}
func (m *MockUserService) UpdateProfile(ctx context.Context, userID string, update domain.UpdateProfile) (*domain.User, error) {
	args := m.Called(ctx, userID, update)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserService) PromoteAdmin(ctx context.Context, email string) error {
	return m.Called(ctx, email).Error(0)
}

var _ portssvc.UserSvcFacade = (*MockUserService)(nil)

// --- Mock BlogService ---
type MockBlogService struct {
	mock.Mock
}

func (m *MockBlogService) blog(args mock.Arguments) (*domain.Blog, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Blog), args.Error(1)
}
func (m *MockBlogService) blogs(args mock.Arguments) ([]domain.Blog, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Blog), args.Error(1)
}
func (m *MockBlogService) GetBlog(ctx context.Context, slug string) (*domain.Blog, error) {
	return m.blog(m.Called(ctx, slug))
}
func (m *MockBlogService) GetBlogPhoto(ctx context.Context, slug string) (*domain.Photo, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Photo), args.Error(1)
}
func (m *MockBlogService) ListBlogs(ctx context.Context) ([]domain.Blog, error) {
	return m.blogs(m.Called(ctx))
}
func (m *MockBlogService) ListBlogsWithTaxonomies(ctx context.Context, limit, skip int) (*domain.BlogListing, error) {
	args := m.Called(ctx, limit, skip)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BlogListing), args.Error(1)
}
func (m *MockBlogService) CountBlogs(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}
func (m *MockBlogService) ListFeatured(ctx context.Context) ([]domain.Blog, error) {
	return m.blogs(m.Called(ctx))
}
func (m *MockBlogService) ListRelated(ctx context.Context, blogID string, categoryIDs []string, limit int) ([]domain.Blog, error) {
	return m.blogs(m.Called(ctx, blogID, categoryIDs, limit))
}
func (m *MockBlogService) SearchBlogs(ctx context.Context, query string) ([]domain.Blog, error) {
	return m.blogs(m.Called(ctx, query))
}
func (m *MockBlogService) ListBlogsByUser(ctx context.Context, username string) ([]domain.Blog, error) {
	return m.blogs(m.Called(ctx, username))
}
func (m *MockBlogService) CreateBlog(ctx context.Context, authorID string, input domain.BlogInput) (*domain.Blog, error) {
	return m.blog(m.Called(ctx, authorID, input))
}
func (m *MockBlogService) UpdateBlog(ctx context.Context, slug string, input domain.BlogInput) (*domain.Blog, error) {
	return m.blog(m.Called(ctx, slug, input))
}
func (m *MockBlogService) DeleteBlog(ctx context.Context, slug string) error {
	return m.Called(ctx, slug).Error(0)
}
func (m *MockBlogService) AuthorOfTheMonth(ctx context.Context) ([]domain.AuthorRef, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.AuthorRef), args.Error(1)
}
func (m *MockBlogService) Statistics(ctx context.Context) (*domain.Statistics, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Statistics), args.Error(1)
}

var _ portssvc.BlogSvcFacade = (*MockBlogService)(nil)

// --- Mock TaxonomyService ---
type MockTaxonomyService struct {
	mock.Mock
	kind domain.TaxonomyKind
}

func (m *MockTaxonomyService) Kind() domain.TaxonomyKind { return m.kind }
func (m *MockTaxonomyService) CreateTerm(ctx context.Context, name string) (*domain.Term, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Term), args.Error(1)
}
func (m *MockTaxonomyService) ListTerms(ctx context.Context) ([]domain.Term, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Term), args.Error(1)
}
func (m *MockTaxonomyService) GetTerm(ctx context.Context, slug string, skip, limit int) (*domain.TermWithBlogs, error) {
	args := m.Called(ctx, slug, skip, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TermWithBlogs), args.Error(1)
}
func (m *MockTaxonomyService) DeleteTerm(ctx context.Context, slug string) error {
	return m.Called(ctx, slug).Error(0)
}

var _ portssvc.TaxonomySvcFacade = (*MockTaxonomyService)(nil)

// --- Mock ContactService ---
type MockContactService struct {
	mock.Mock
}

func (m *MockContactService) Contact(ctx context.Context, msg portssvc.ContactMessage) error {
	return m.Called(ctx, msg).Error(0)
}
func (m *MockContactService) ContactAuthor(ctx context.Context, authorEmail string, msg portssvc.ContactMessage) error {
	return m.Called(ctx, authorEmail, msg).Error(0)
}

var _ portssvc.ContactSvcFacade = (*MockContactService)(nil)
