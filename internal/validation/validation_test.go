package validation

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yukikurage/saas-starter-api/internal/dto"
	apierrors "github.com/yukikurage/saas-starter-api/internal/errors"
	"github.com/yukikurage/saas-starter-api/internal/models"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func formContext(values url.Values) *gin.Context {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	c.Request = req
	return c
}

func jsonContext(body string) *gin.Context {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	c.Request = req
	return c
}

func TestBind_OrganizationName(t *testing.T) {
	tests := []struct {
		name      string
		value     string
		wantField string
	}{
		{name: "valid", value: "Acme Inc"},
		{name: "trimmed before validation", value: "  ab  ", wantField: "name"},
		{name: "missing", value: "", wantField: "name"},
		{name: "too long", value: strings.Repeat("a", 256), wantField: "name"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := formContext(url.Values{"name": {tt.value}})

			var form dto.OrganizationForm
			err := Bind(c, &form)
			if tt.wantField == "" {
				require.NoError(t, err)
				assert.Equal(t, strings.TrimSpace(tt.value), form.Name)
				return
			}

			var apiErr *apierrors.APIError
			require.ErrorAs(t, err, &apiErr)
			assert.Equal(t, http.StatusBadRequest, apiErr.Status)
			assert.Equal(t, MessageValidationFailed, apiErr.Message)
			assert.Contains(t, apiErr.Errors, tt.wantField)
		})
	}
}

func TestBind_ChangeRoleRejectsUnknownRole(t *testing.T) {
	c := formContext(url.Values{"userId": {"42"}, "role": {"superuser"}})

	var form dto.ChangeRoleForm
	err := Bind(c, &form)

	var apiErr *apierrors.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "Invalid role", apiErr.Errors["role"])
	assert.NotContains(t, apiErr.Errors, "userId")
}

func TestBind_ChangeRoleAcceptsDeactivated(t *testing.T) {
	c := jsonContext(`{"intent":"changeRole","userId":"42","role":"deactivated"}`)

	intent, err := Intent(c)
	require.NoError(t, err)
	assert.Equal(t, models.IntentChangeRole, intent)

	// The body stays readable after the intent was read
	var form dto.ChangeRoleForm
	require.NoError(t, Bind(c, &form))
	assert.EqualValues(t, 42, form.UserID)
	assert.Equal(t, "deactivated", form.Role)
}

func TestBind_EmailAndLogo(t *testing.T) {
	c := formContext(url.Values{"name": {"Acme"}, "logoUrl": {"not a url"}})
	var org dto.OrganizationForm
	var apiErr *apierrors.APIError
	require.ErrorAs(t, Bind(c, &org), &apiErr)
	assert.Equal(t, "Invalid URL", apiErr.Errors["logoUrl"])

	c = formContext(url.Values{"email": {"nope"}, "password": {"short"}})
	var reg dto.RegisterForm
	require.ErrorAs(t, Bind(c, &reg), &apiErr)
	assert.Equal(t, "Invalid email address", apiErr.Errors["email"])
	assert.Equal(t, "Must be at least 8 characters", apiErr.Errors["password"])
}

func TestIntent(t *testing.T) {
	c := formContext(url.Values{"intent": {"createNewInviteLink"}})
	intent, err := Intent(c)
	require.NoError(t, err)
	assert.Equal(t, models.IntentCreateNewInviteLink, intent)

	for _, bad := range []string{"", "dropTables", "CREATE"} {
		c := formContext(url.Values{"intent": {bad}})
		_, err := Intent(c)

		var apiErr *apierrors.APIError
		require.ErrorAs(t, err, &apiErr, bad)
		assert.Equal(t, http.StatusBadRequest, apiErr.Status)
		assert.Equal(t, "Invalid intent", apiErr.Message)
	}
}

func TestBind_PasswordsAreNotTrimmed(t *testing.T) {
	c := formContext(url.Values{"email": {"  jane@example.com "}, "password": {" secret12 "}})

	var form dto.RegisterForm
	require.NoError(t, Bind(c, &form))
	assert.Equal(t, "jane@example.com", form.Email)
	assert.Equal(t, " secret12 ", form.Password)

	c = formContext(url.Values{"email": {"jane@example.com"}, "password": {"  hunter2  "}})
	var login dto.LoginForm
	require.NoError(t, Bind(c, &login))
	assert.Equal(t, "  hunter2  ", login.Password)
}

func TestBind_OptionalLogoURL(t *testing.T) {
	var form dto.OrganizationForm
	require.NoError(t, Bind(formContext(url.Values{"name": {"Acme"}}), &form))
	assert.Nil(t, form.LogoURL)

	form = dto.OrganizationForm{}
	require.NoError(t, Bind(formContext(url.Values{"name": {"Acme"}, "logoUrl": {" https://example.com/a.png "}}), &form))
	require.NotNil(t, form.LogoURL)
	assert.Equal(t, "https://example.com/a.png", *form.LogoURL)
}
