package services

import (
	"github.com/SscSPs/blog_backend/internal/core/ports/gateways"
	portsrepo "github.com/SscSPs/blog_backend/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/blog_backend/internal/core/ports/services"
	"github.com/SscSPs/blog_backend/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(
	cfg *config.Config,
	repos portsrepo.RepositoryProvider,
	mailer gateways.Mailer,
	identity gateways.IdentityVerifier,
) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	// Token service first since auth depends on it
	container.Token = NewTokenService(cfg)
	container.Auth = NewAuthService(cfg, repos.UserRepo, container.Token, mailer, identity)

	container.User = NewUserService(cfg, repos.UserRepo, repos.BlogRepo, repos.PhotoRepo)
	container.Blog = NewBlogService(cfg, repos)
	container.Category = NewTaxonomyService(repos.CategoryRepo, repos.BlogRepo)
	container.Tag = NewTaxonomyService(repos.TagRepo, repos.BlogRepo)
	container.Contact = NewContactService(cfg, mailer)

	return container
}

// Helper to check interface implementations at compile time
var (
	_ portssvc.AuthSvcFacade     = (*authService)(nil)
	_ portssvc.TokenSvcFacade    = (*tokenService)(nil)
	_ portssvc.UserSvcFacade     = (*userService)(nil)
	_ portssvc.BlogSvcFacade     = (*blogService)(nil)
	_ portssvc.TaxonomySvcFacade = (*taxonomyService)(nil)
	_ portssvc.ContactSvcFacade  = (*contactService)(nil)
)
