package handlers

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"github.com/yukikurage/saas-starter-api/internal/config"
	"github.com/yukikurage/saas-starter-api/internal/database"
	"github.com/yukikurage/saas-starter-api/internal/id"
	"github.com/yukikurage/saas-starter-api/internal/middleware"
	"github.com/yukikurage/saas-starter-api/internal/models"
	"github.com/yukikurage/saas-starter-api/internal/repository"
	"github.com/yukikurage/saas-starter-api/internal/services"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

const (
	testPassword      = "supersecret"
	testWebhookSecret = "whsec_handler_test"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type testEnv struct {
	db     *gorm.DB
	store  repository.Store
	deps   Deps
	server *httptest.Server
}

func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()
	require.NoError(t, id.Init(1))

	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{
		NowFunc: func() time.Time { return time.Now().UTC() },
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(database.Models()...))

	sqlDB, err := db.DB()
	require.NoError(t, err)

	sessionStore, err := middleware.NewSessionStore(&config.Config{
		Env:           "test",
		SessionSecret: "test-session-secret",
	})
	require.NoError(t, err)

	store := repository.NewStore(db)
	logger := zap.NewNop()
	deps := Deps{
		Logger:        logger,
		DB:            db,
		SessionStore:  sessionStore,
		BaseURL:       "http://localhost:8080",
		Auth:          services.NewAuthService(store, services.WithBcryptCost(bcrypt.MinCost)),
		Users:         services.NewUserService(store),
		Organizations: services.NewOrganizationService(store),
		Memberships:   services.NewMembershipService(store),
		InviteLinks:   services.NewInviteLinkService(store),
		Billing:       services.NewBillingService(store, testWebhookSecret, logger),
	}

	server := httptest.NewServer(NewRouter(deps))
	t.Cleanup(func() {
		server.Close()
		sqlDB.Close()
	})

	return &testEnv{db: db, store: store, deps: deps, server: server}
}

// client is a browser stand-in: it keeps cookies and does not follow redirects.
type client struct {
	t    *testing.T
	base string
	http *http.Client
}

func (e *testEnv) newClient(t *testing.T) *client {
	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	return &client{
		t:    t,
		base: e.server.URL,
		http: &http.Client{
			Jar: jar,
			CheckRedirect: func(*http.Request, []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
	}
}

type response struct {
	Status   int
	Location string
	Body     []byte
}

func (r response) JSON(t *testing.T, v any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(r.Body, v), string(r.Body))
}

func (c *client) do(req *http.Request) response {
	c.t.Helper()
	resp, err := c.http.Do(req)
	require.NoError(c.t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(c.t, err)
	return response{Status: resp.StatusCode, Location: resp.Header.Get("Location"), Body: body}
}

func (c *client) get(path string) response {
	c.t.Helper()
	req, err := http.NewRequest(http.MethodGet, c.base+path, nil)
	require.NoError(c.t, err)
	return c.do(req)
}

func (c *client) post(path string, form url.Values) response {
	c.t.Helper()
	req, err := http.NewRequest(http.MethodPost, c.base+path, strings.NewReader(form.Encode()))
	require.NoError(c.t, err)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return c.do(req)
}

// createUser registers a fully named user.
func (e *testEnv) createUser(t *testing.T, email string) *models.User {
	t.Helper()
	ctx := context.Background()

	user, err := e.deps.Auth.Register(ctx, services.RegisterInput{Email: email, Password: testPassword})
	require.NoError(t, err)
	user, err = e.deps.Users.UpdateAccount(ctx, services.UpdateAccountInput{UserID: user.ID, Name: "User " + email})
	require.NoError(t, err)
	return user
}

func (e *testEnv) createOrganization(t *testing.T, name string, owner *models.User) *models.Organization {
	t.Helper()
	org, err := e.deps.Organizations.CreateOrganization(context.Background(), services.CreateOrganizationInput{
		Name:    name,
		OwnerID: owner.ID,
	})
	require.NoError(t, err)
	return org
}

func (e *testEnv) addMember(t *testing.T, org *models.Organization, user *models.User, role models.Role) {
	t.Helper()
	require.NoError(t, e.store.Memberships().Create(context.Background(), &models.OrganizationMembership{
		OrganizationID: org.ID,
		UserID:         user.ID,
		Role:           role,
	}))
}

// login signs a fresh client in as user.
func (e *testEnv) login(t *testing.T, user *models.User) *client {
	t.Helper()
	c := e.newClient(t)
	resp := c.post("/login", url.Values{"email": {user.Email}, "password": {testPassword}})
	require.Equal(t, http.StatusFound, resp.Status, string(resp.Body))
	return c
}

type errorBody struct {
	Message string            `json:"message"`
	Errors  map[string]string `json:"errors"`
}
