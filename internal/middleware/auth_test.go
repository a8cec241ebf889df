package middleware_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/SscSPs/blog_backend/internal/apperrors"
	"github.com/SscSPs/blog_backend/internal/core/domain"
	"github.com/SscSPs/blog_backend/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockTokenSvc struct{ mock.Mock }

func (m *mockTokenSvc) IssueActivationToken(ctx context.Context, p domain.PendingRegistration) (string, error) {
	panic("not used")
}
func (m *mockTokenSvc) VerifyActivationToken(ctx context.Context, token string) (*domain.PendingRegistration, error) {
	panic("not used")
}
func (m *mockTokenSvc) IssueResetToken(ctx context.Context, userID string) (string, error) {
	panic("not used")
}
func (m *mockTokenSvc) VerifyResetToken(ctx context.Context, token string) (string, error) {
	panic("not used")
}
func (m *mockTokenSvc) GenerateAccessToken(ctx context.Context, user *domain.User) (string, time.Time, error) {
	panic("not used")
}
func (m *mockTokenSvc) ValidateAccessToken(ctx context.Context, token string) (string, error) {
	args := m.Called(token)
	return args.String(0), args.Error(1)
}

type mockUserReader struct{ mock.Mock }

func (m *mockUserReader) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(userID)
	if u := args.Get(0); u != nil {
		return u.(*domain.User), args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockUserReader) GetPublicProfile(ctx context.Context, username string) (*domain.User, []domain.Blog, error) {
	panic("not used")
}
func (m *mockUserReader) GetProfilePhoto(ctx context.Context, userID string) (*domain.Photo, error) {
	panic("not used")
}

type mockBlogReader struct{ mock.Mock }

func (m *mockBlogReader) GetBlog(ctx context.Context, slug string) (*domain.Blog, error) {
	args := m.Called(slug)
	if b := args.Get(0); b != nil {
		return b.(*domain.Blog), args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockBlogReader) GetBlogPhoto(ctx context.Context, slug string) (*domain.Photo, error) {
	panic("not used")
}
func (m *mockBlogReader) ListBlogs(ctx context.Context) ([]domain.Blog, error) { panic("not used") }
func (m *mockBlogReader) ListBlogsWithTaxonomies(ctx context.Context, limit, skip int) (*domain.BlogListing, error) {
	panic("not used")
}
func (m *mockBlogReader) CountBlogs(ctx context.Context) (int64, error)          { panic("not used") }
func (m *mockBlogReader) ListFeatured(ctx context.Context) ([]domain.Blog, error) { panic("not used") }
func (m *mockBlogReader) ListRelated(ctx context.Context, blogID string, categoryIDs []string, limit int) ([]domain.Blog, error) {
	panic("not used")
}
func (m *mockBlogReader) SearchBlogs(ctx context.Context, query string) ([]domain.Blog, error) {
	panic("not used")
}
func (m *mockBlogReader) ListBlogsByUser(ctx context.Context, username string) ([]domain.Blog, error) {
	panic("not used")
}

func errorBody(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body["error"]
}

func newRouter(handlers ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	all := append(handlers, func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"ok": true}) })
	r.PUT("/user/blog/:slug", all...)
	r.GET("/private", all...)
	return r
}

func TestRequireSignin(t *testing.T) {
	tokens := new(mockTokenSvc)
	tokens.On("ValidateAccessToken", "good").Return("u1", nil)
	tokens.On("ValidateAccessToken", "bad").Return("", apperrors.ErrUnauthorized)

	r := newRouter(middleware.RequireSignin(tokens, "token"), func(c *gin.Context) {
		id, ok := middleware.GetUserIDFromContext(c)
		if !ok || id != "u1" {
			c.AbortWithStatus(http.StatusTeapot)
		}
	})

	t.Run("missing token", func(t *testing.T) {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/private", nil))
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("bearer header", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/private", nil)
		req.Header.Set("Authorization", "Bearer good")
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("session cookie", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/private", nil)
		req.AddCookie(&http.Cookie{Name: "token", Value: "good"})
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("invalid token", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/private", nil)
		req.Header.Set("Authorization", "Bearer bad")
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, "Invalid or expired token", errorBody(t, w))
	})
}

func TestAuthMiddleware_UserNotFound(t *testing.T) {
	tokens := new(mockTokenSvc)
	tokens.On("ValidateAccessToken", "t").Return("ghost", nil)
	users := new(mockUserReader)
	users.On("GetUserByID", "ghost").Return(nil, apperrors.ErrNotFound)

	r := newRouter(middleware.RequireSignin(tokens, "token"), middleware.AuthMiddleware(users))
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/private", nil)
	req.Header.Set("Authorization", "Bearer t")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "User not found!", errorBody(t, w))
}

func TestAdminMiddleware(t *testing.T) {
	tokens := new(mockTokenSvc)
	tokens.On("ValidateAccessToken", "regular").Return("u1", nil)
	tokens.On("ValidateAccessToken", "admin").Return("a1", nil)
	users := new(mockUserReader)
	users.On("GetUserByID", "u1").Return(&domain.User{UserID: "u1", Role: domain.RoleRegular}, nil)
	users.On("GetUserByID", "a1").Return(&domain.User{UserID: "a1", Role: domain.RoleAdmin}, nil)

	r := newRouter(middleware.RequireSignin(tokens, "token"), middleware.AdminMiddleware(users))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/private", nil)
	req.Header.Set("Authorization", "Bearer regular")
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "Admin resource. Access denied.", errorBody(t, w))

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/private", nil)
	req.Header.Set("Authorization", "Bearer admin")
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestCanUpdateDeleteBlog(t *testing.T) {
	tokens := new(mockTokenSvc)
	users := new(mockUserReader)
	blogs := new(mockBlogReader)
	blogs.On("GetBlog", "mine").Return(&domain.Blog{BlogID: "b1", Slug: "mine", AuthorID: "author"}, nil)
	blogs.On("GetBlog", "gone").Return(nil, fmt.Errorf("find blog: %w", apperrors.ErrNotFound))

	cases := []struct {
		name   string
		userID string
		role   domain.Role
		slug   string
		want   int
	}{
		{"author may edit", "author", domain.RoleRegular, "mine", http.StatusOK},
		{"other regular user denied", "intruder", domain.RoleRegular, "mine", http.StatusForbidden},
		{"admin who is not the author denied", "boss", domain.RoleAdmin, "mine", http.StatusForbidden},
		{"missing blog", "author", domain.RoleRegular, "gone", http.StatusNotFound},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			token := "tok-" + tc.userID
			tokens.On("ValidateAccessToken", token).Return(tc.userID, nil)
			users.On("GetUserByID", tc.userID).Return(&domain.User{UserID: tc.userID, Role: tc.role}, nil)

			r := newRouter(
				middleware.RequireSignin(tokens, "token"),
				middleware.AuthMiddleware(users),
				middleware.CanUpdateDeleteBlog(blogs),
			)
			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPut, "/user/blog/"+tc.slug, nil)
			req.Header.Set("Authorization", "Bearer "+token)
			r.ServeHTTP(w, req)

			assert.Equal(t, tc.want, w.Code)
			if tc.want == http.StatusForbidden {
				assert.Equal(t, "You are not authorized", errorBody(t, w))
			}
		})
	}
}
