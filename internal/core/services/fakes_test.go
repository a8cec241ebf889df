package services_test

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/SscSPs/blog_backend/internal/apperrors"
	"github.com/SscSPs/blog_backend/internal/core/domain"
	portsrepo "github.com/SscSPs/blog_backend/internal/core/ports/repositories"
	"github.com/SscSPs/blog_backend/internal/platform/config"
	"github.com/stretchr/testify/mock"
)

func testConfig() *config.Config {
	return &config.Config{
		JWTSecret:               "session-secret",
		JWTExpiryDuration:       240 * time.Hour,
		JWTIssuer:               "blog-test",
		AccountActivationSecret: "activation-secret",
		AccountActivationExpiry: 10 * time.Minute,
		ResetPasswordSecret:     "reset-secret",
		ResetPasswordExpiry:     10 * time.Minute,
		ClientURL:               "http://client.test",
		AppName:                 "Blog",
		EmailFrom:               "noreply@blog.test",
		EmailTo:                 "admin@blog.test",
	}
}

// memUserRepo enforces the same unique constraints as the users table.
type memUserRepo struct {
	mu    sync.Mutex
	users map[string]domain.User
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{users: map[string]domain.User{}}
}

var _ portsrepo.UserRepositoryFacade = (*memUserRepo)(nil)

func (r *memUserRepo) find(match func(domain.User) bool) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if match(u) {
			found := u
			return &found, nil
		}
	}
	return nil, fmt.Errorf("find user: %w", apperrors.ErrNotFound)
}

func (r *memUserRepo) FindUserByID(_ context.Context, id string) (*domain.User, error) {
	return r.find(func(u domain.User) bool { return u.UserID == id })
}

func (r *memUserRepo) FindUserByEmail(_ context.Context, email string) (*domain.User, error) {
	return r.find(func(u domain.User) bool { return strings.EqualFold(u.Email, email) })
}

func (r *memUserRepo) FindUserByUsername(_ context.Context, username string) (*domain.User, error) {
	return r.find(func(u domain.User) bool { return u.Username == username })
}

func (r *memUserRepo) FindUserByResetLink(_ context.Context, link string) (*domain.User, error) {
	if link == "" {
		return nil, apperrors.ErrNotFound
	}
	return r.find(func(u domain.User) bool { return u.ResetPasswordLink == link })
}

func (r *memUserRepo) FindAuthorsOfTheMonth(_ context.Context, limit int) ([]domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.User
	for _, u := range r.users {
		if u.IsAuthorOfTheMonth {
			out = append(out, u)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].LastUpdatedAt.After(out[j].LastUpdatedAt) })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *memUserRepo) conflict(u domain.User) error {
	for id, other := range r.users {
		if id == u.UserID {
			continue
		}
		if strings.EqualFold(other.Email, u.Email) {
			return apperrors.NewConflictError("Email already exists")
		}
		if other.Username == u.Username {
			return apperrors.NewConflictError("Username already exists")
		}
	}
	return nil
}

func (r *memUserRepo) SaveUser(_ context.Context, u domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.conflict(u); err != nil {
		return err
	}
	r.users[u.UserID] = u
	return nil
}

func (r *memUserRepo) UpdateUser(_ context.Context, u domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	existing, ok := r.users[u.UserID]
	if !ok {
		return apperrors.ErrNotFound
	}
	if err := r.conflict(u); err != nil {
		return err
	}
	u.Email, u.Role = existing.Email, existing.Role
	r.users[u.UserID] = u
	return nil
}

func (r *memUserRepo) SetResetPasswordLink(_ context.Context, userID, link string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[userID]
	if !ok {
		return apperrors.ErrNotFound
	}
	u.ResetPasswordLink = link
	r.users[userID] = u
	return nil
}

func (r *memUserRepo) UpdateRole(_ context.Context, email string, role domain.Role) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, u := range r.users {
		if strings.EqualFold(u.Email, email) {
			u.Role = role
			r.users[id] = u
			return nil
		}
	}
	return apperrors.ErrNotFound
}

func (r *memUserRepo) CountUsers(context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.users)), nil
}

func (r *memUserRepo) CountAuthorsOfTheMonth(ctx context.Context) (int64, error) {
	authors, _ := r.FindAuthorsOfTheMonth(ctx, 1<<30)
	return int64(len(authors)), nil
}

// memPhotoRepo keeps photos in a map.
type memPhotoRepo struct {
	mu     sync.Mutex
	photos map[string]domain.Photo
}

func newMemPhotoRepo() *memPhotoRepo {
	return &memPhotoRepo{photos: map[string]domain.Photo{}}
}

func (r *memPhotoRepo) PutPhoto(_ context.Context, owner domain.PhotoOwner, id string, p domain.Photo) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.photos[string(owner)+"/"+id] = p
	return nil
}

func (r *memPhotoRepo) GetPhoto(_ context.Context, owner domain.PhotoOwner, id string) (*domain.Photo, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.photos[string(owner)+"/"+id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &p, nil
}

func (r *memPhotoRepo) DeletePhoto(_ context.Context, owner domain.PhotoOwner, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.photos, string(owner)+"/"+id)
	return nil
}

// MockBlogRepository mocks the blog repository.
type MockBlogRepository struct {
	mock.Mock
}

func (m *MockBlogRepository) FindBlogBySlug(ctx context.Context, slug string) (*domain.Blog, error) {
	args := m.Called(ctx, slug)
	if b := args.Get(0); b != nil {
		return b.(*domain.Blog), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockBlogRepository) ListBlogs(ctx context.Context, filter domain.BlogFilter) ([]domain.Blog, error) {
	args := m.Called(ctx, filter)
	if b := args.Get(0); b != nil {
		return b.([]domain.Blog), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockBlogRepository) SaveBlog(ctx context.Context, blog domain.Blog) error {
	return m.Called(ctx, blog).Error(0)
}

func (m *MockBlogRepository) UpdateBlog(ctx context.Context, blog domain.Blog) error {
	return m.Called(ctx, blog).Error(0)
}

func (m *MockBlogRepository) DeleteBlogBySlug(ctx context.Context, slug string) (*domain.Blog, error) {
	args := m.Called(ctx, slug)
	if b := args.Get(0); b != nil {
		return b.(*domain.Blog), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockBlogRepository) CountBlogs(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockBlogRepository) CountDistinctAuthors(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockBlogRepository) CountFeaturedBlogs(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

// MockTaxonomyRepository mocks one kind of term repository.
type MockTaxonomyRepository struct {
	mock.Mock
	kind domain.TaxonomyKind
}

func (m *MockTaxonomyRepository) Kind() domain.TaxonomyKind { return m.kind }

func (m *MockTaxonomyRepository) SaveTerm(ctx context.Context, term domain.Term) error {
	return m.Called(ctx, term).Error(0)
}

func (m *MockTaxonomyRepository) FindTermBySlug(ctx context.Context, slug string) (*domain.Term, error) {
	args := m.Called(ctx, slug)
	if t := args.Get(0); t != nil {
		return t.(*domain.Term), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockTaxonomyRepository) ListTerms(ctx context.Context) ([]domain.Term, error) {
	args := m.Called(ctx)
	if t := args.Get(0); t != nil {
		return t.([]domain.Term), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockTaxonomyRepository) DeleteTermBySlug(ctx context.Context, slug string) error {
	return m.Called(ctx, slug).Error(0)
}

func (m *MockTaxonomyRepository) CountTerms(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

// recordingMailer keeps every message and fails when err is set.
type recordingMailer struct {
	mu   sync.Mutex
	sent []domain.Email
	err  error
}

func (m *recordingMailer) Send(_ context.Context, email domain.Email) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, email)
	return nil
}

func (m *recordingMailer) last() domain.Email {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.sent) == 0 {
		return domain.Email{}
	}
	return m.sent[len(m.sent)-1]
}

var linkTokenRe = regexp.MustCompile(`/auth/(?:account/activate|password/reset)/([A-Za-z0-9_\-.]+)`)

// tokenFromEmail extracts the token embedded in an activation or reset link.
func tokenFromEmail(email domain.Email) string {
	m := linkTokenRe.FindStringSubmatch(email.HTML)
	if m == nil {
		return ""
	}
	return m[1]
}

// fakeIdentity answers VerifyIDToken from a fixed table.
type fakeIdentity struct {
	identities  map[string]*domain.GoogleIdentity
	exchanged   map[string]string
	exchangeErr error
}

func (f *fakeIdentity) VerifyIDToken(_ context.Context, idToken string) (*domain.GoogleIdentity, error) {
	id, ok := f.identities[idToken]
	if !ok {
		return nil, errors.New("idtoken: invalid token")
	}
	return id, nil
}

func (f *fakeIdentity) ExchangeCode(_ context.Context, code string) (string, error) {
	if f.exchangeErr != nil {
		return "", f.exchangeErr
	}
	return f.exchanged[code], nil
}
