package handlers

import (
	"context"
	"net/http"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuth_LoginRedirects(t *testing.T) {
	env := setupTestEnv(t)
	user := env.createUser(t, "alice@example.com")
	env.createOrganization(t, "Acme", user)

	c := env.newClient(t)
	resp := c.post("/login?redirectTo=%2Forganizations%2Facme%2Fsettings%2Fgeneral", url.Values{
		"email":    {"ALICE@example.com"},
		"password": {testPassword},
	})
	require.Equal(t, http.StatusFound, resp.Status)
	assert.Equal(t, "/organizations/acme/settings/general", resp.Location)

	resp = c.get("/organizations/acme/settings/general")
	assert.Equal(t, http.StatusOK, resp.Status)

	// Signed-in users are kept away from the login page
	resp = c.get("/login")
	assert.Equal(t, http.StatusFound, resp.Status)
	assert.Equal(t, "/organizations", resp.Location)
}

func TestAuth_LoginIgnoresExternalRedirect(t *testing.T) {
	env := setupTestEnv(t)
	user := env.createUser(t, "alice@example.com")

	c := env.newClient(t)
	resp := c.post("/login", url.Values{
		"email":      {user.Email},
		"password":   {testPassword},
		"redirectTo": {"//evil.example.com"},
	})
	require.Equal(t, http.StatusFound, resp.Status)
	assert.Equal(t, "/organizations", resp.Location)
}

func TestAuth_LoginFailures(t *testing.T) {
	env := setupTestEnv(t)
	user := env.createUser(t, "alice@example.com")
	c := env.newClient(t)

	resp := c.post("/login", url.Values{"email": {user.Email}, "password": {"wrong-password"}})
	require.Equal(t, http.StatusBadRequest, resp.Status)

	resp = c.post("/login", url.Values{"email": {"not-an-email"}, "password": {"x"}})
	require.Equal(t, http.StatusBadRequest, resp.Status)
	var body errorBody
	resp.JSON(t, &body)
	assert.Equal(t, "Validation failed", body.Message)
	assert.Contains(t, body.Errors, "email")
}

func TestAuth_RegisterWalksThroughOnboarding(t *testing.T) {
	env := setupTestEnv(t)
	c := env.newClient(t)

	resp := c.post("/register", url.Values{"email": {"new@example.com"}, "password": {testPassword}})
	require.Equal(t, http.StatusFound, resp.Status, string(resp.Body))
	assert.Equal(t, "/onboarding/user-account", resp.Location)

	// Not onboarded yet
	resp = c.get("/organizations")
	require.Equal(t, http.StatusFound, resp.Status)
	assert.Equal(t, "/onboarding/user-account", resp.Location)

	resp = c.post("/onboarding/user-account", url.Values{"intent": {"update"}, "name": {"N"}})
	require.Equal(t, http.StatusBadRequest, resp.Status)

	resp = c.post("/onboarding/user-account", url.Values{"intent": {"update"}, "name": {"New User"}})
	require.Equal(t, http.StatusFound, resp.Status)
	assert.Equal(t, "/onboarding/organization", resp.Location)

	resp = c.get("/organizations")
	require.Equal(t, http.StatusFound, resp.Status)
	assert.Equal(t, "/onboarding/organization", resp.Location)

	resp = c.post("/onboarding/organization", url.Values{"intent": {"create"}, "name": {"Acme Inc"}})
	require.Equal(t, http.StatusFound, resp.Status, string(resp.Body))
	assert.Equal(t, "/organizations/acme-inc/dashboard", resp.Location)

	resp = c.get("/organizations")
	require.Equal(t, http.StatusFound, resp.Status)
	assert.Equal(t, "/organizations/acme-inc/dashboard", resp.Location)

	var dashboard struct {
		YourRole string   `json:"your_role"`
		Notices  []string `json:"notices"`
	}
	resp = c.get("/organizations/acme-inc/dashboard")
	require.Equal(t, http.StatusOK, resp.Status)
	resp.JSON(t, &dashboard)
	assert.Equal(t, "owner", dashboard.YourRole)
	assert.Equal(t, []string{"organization-created"}, dashboard.Notices)
}

func TestAuth_RegisterDuplicateEmail(t *testing.T) {
	env := setupTestEnv(t)
	env.createUser(t, "alice@example.com")

	resp := env.newClient(t).post("/register", url.Values{"email": {"alice@example.com"}, "password": {testPassword}})
	require.Equal(t, http.StatusBadRequest, resp.Status)

	var body errorBody
	resp.JSON(t, &body)
	assert.Contains(t, body.Errors, "email")
}

func TestAuth_LogoutAndRoot(t *testing.T) {
	env := setupTestEnv(t)
	user := env.createUser(t, "alice@example.com")
	c := env.login(t, user)

	resp := c.get("/")
	require.Equal(t, http.StatusFound, resp.Status)
	assert.Equal(t, "/organizations", resp.Location)

	resp = c.post("/logout", nil)
	require.Equal(t, http.StatusFound, resp.Status)
	assert.Equal(t, "/login", resp.Location)

	resp = c.get("/")
	require.Equal(t, http.StatusFound, resp.Status)
	assert.Equal(t, "/login", resp.Location)
}

func TestAuth_DeletedUserSessionIsRejected(t *testing.T) {
	env := setupTestEnv(t)
	user := env.createUser(t, "alice@example.com")
	c := env.login(t, user)

	require.NoError(t, env.store.Users().Delete(context.Background(), user.ID))

	resp := c.get("/settings/account")
	require.Equal(t, http.StatusFound, resp.Status)
	assert.Equal(t, "/login?redirectTo=%2Fsettings%2Faccount", resp.Location)
}
