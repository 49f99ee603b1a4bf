package handlers

import (
	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/yukikurage/saas-starter-api/internal/constants"
	apierrors "github.com/yukikurage/saas-starter-api/internal/errors"
	"github.com/yukikurage/saas-starter-api/internal/middleware"
	"github.com/yukikurage/saas-starter-api/internal/services"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Deps is everything the router wires into handlers.
type Deps struct {
	Logger       *zap.Logger
	DB           *gorm.DB
	SessionStore sessions.Store
	BaseURL      string
	// ServiceName enables tracing when set.
	ServiceName string

	Auth          *services.AuthService
	Users         *services.UserService
	Organizations *services.OrganizationService
	Memberships   *services.MembershipService
	InviteLinks   *services.InviteLinkService
	Billing       *services.BillingService
}

// NewRouter builds the engine with every page route.
func NewRouter(deps Deps) *gin.Engine {
	r := gin.New()
	r.HandleMethodNotAllowed = true

	if deps.ServiceName != "" {
		r.Use(otelgin.Middleware(deps.ServiceName))
	}
	r.Use(
		middleware.Recovery(deps.Logger),
		middleware.Logger(deps.Logger),
		middleware.Metrics(),
		sessions.Sessions(constants.SessionCookieName, deps.SessionStore),
	)

	r.NoRoute(func(c *gin.Context) {
		apierrors.Abort(c, apierrors.NotFound(""))
	})
	r.NoMethod(func(c *gin.Context) {
		apierrors.Abort(c, apierrors.MethodNotAllowed())
	})

	h := func(fn HandlerFunc) gin.HandlerFunc {
		return Handle(deps.Logger, fn)
	}

	authHandler := NewAuthHandler(deps.Auth, deps.InviteLinks)
	onboardingHandler := NewOnboardingHandler(deps.Users, deps.Organizations)
	orgHandler := NewOrganizationHandler(deps.Organizations, deps.Memberships, deps.InviteLinks, deps.Billing, deps.BaseURL)
	inviteHandler := NewInviteLinkHandler(deps.InviteLinks)
	accountHandler := NewAccountHandler(deps.Users)
	webhookHandler := NewBillingWebhookHandler(deps.Billing, deps.Logger)
	healthHandler := NewHealthHandler(deps.DB)

	requireUser := middleware.RequireUserIsAuthenticated(deps.Auth)
	requireAnonymous := middleware.RequireAnonymous(deps.Auth)
	requireOnboarded := middleware.RequireOnboardedUser(deps.Organizations)
	optionalUser := middleware.OptionalUser(deps.Auth)

	// Infrastructure
	r.GET("/healthcheck", healthHandler.Healthcheck)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	r.POST("/api/stripe/webhooks", h(webhookHandler.Webhook))

	// Authentication
	r.GET("/", optionalUser, h(authHandler.Root))
	r.GET(constants.LoginPath, requireAnonymous, h(authHandler.LoginPage))
	r.POST(constants.LoginPath, requireAnonymous, h(authHandler.Login))
	r.GET(constants.RegisterPath, requireAnonymous, h(authHandler.RegisterPage))
	r.POST(constants.RegisterPath, requireAnonymous, h(authHandler.Register))
	r.POST("/logout", h(authHandler.Logout))

	// Onboarding
	onboarding := r.Group("/onboarding", requireUser)
	{
		onboarding.GET("/user-account", h(onboardingHandler.UserAccountPage))
		onboarding.POST("/user-account", h(onboardingHandler.UserAccount))
		onboarding.GET("/organization", h(onboardingHandler.OrganizationPage))
		onboarding.POST("/organization", h(onboardingHandler.CreateOrganization))
	}

	// Account settings
	settings := r.Group("/settings", requireUser)
	{
		settings.GET("/account", h(accountHandler.AccountPage))
		settings.POST("/account", h(accountHandler.Account))
	}

	// Invite links are public; the action reads the session when present
	r.GET("/organizations/invite-link", h(inviteHandler.InvitationPage))
	r.POST("/organizations/invite-link", optionalUser, h(inviteHandler.AcceptInvite))

	orgs := r.Group(constants.OrganizationsPath, requireUser, requireOnboarded)
	{
		orgs.GET("", h(orgHandler.ListOrganizations))
		orgs.GET("/new", h(orgHandler.NewOrganizationPage))
		orgs.POST("/new", h(onboardingHandler.CreateOrganization))

		org := orgs.Group("/:slug", middleware.RequireOrganizationMembership(deps.Organizations))
		{
			org.GET("/dashboard", h(orgHandler.Dashboard))
			org.GET("/settings/general", h(orgHandler.GeneralSettingsPage))
			org.POST("/settings/general", h(orgHandler.GeneralSettings))
			org.GET("/settings/team-members", h(orgHandler.TeamMembersPage))
			org.POST("/settings/team-members", h(orgHandler.TeamMembers))
			org.GET("/settings/billing", h(orgHandler.BillingPage))
		}
	}

	return r
}
