package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/padhaihub/padhai_backend/models"
)

func invokeWithUserType(t *testing.T, mw echo.MiddlewareFunc, userType string) (*httptest.ResponseRecorder, bool) {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if userType != "" {
		c.Set("userType", userType)
	}

	reached := false
	handler := mw(func(c echo.Context) error {
		reached = true
		return c.NoContent(http.StatusOK)
	})

	require.NoError(t, handler(c))
	return rec, reached
}

func TestRequireUserType_AllowsListedType(t *testing.T) {
	mw := RequireUserType(string(models.RoleFieldEmployee), string(models.RoleTeamLeader))

	rec, reached := invokeWithUserType(t, mw, string(models.RoleTeamLeader))
	assert.True(t, reached)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRequireUserType_RejectsOtherType(t *testing.T) {
	mw := RequireUserType(string(models.RoleFieldEmployee))

	rec, reached := invokeWithUserType(t, mw, string(models.RoleStudent))
	assert.False(t, reached)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestRequireUserType_RejectsMissingType(t *testing.T) {
	mw := RequireUserType(string(models.RoleFieldEmployee))

	rec, reached := invokeWithUserType(t, mw, "")
	assert.False(t, reached)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireAdmin(t *testing.T) {
	mw := RequireAdmin()

	t.Run("admin passes", func(t *testing.T) {
		rec, reached := invokeWithUserType(t, mw, string(models.RoleAdmin))
		assert.True(t, reached)
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("super admin passes", func(t *testing.T) {
		_, reached := invokeWithUserType(t, mw, string(models.RoleSuperAdmin))
		assert.True(t, reached)
	})

	t.Run("coordinator rejected", func(t *testing.T) {
		rec, reached := invokeWithUserType(t, mw, string(models.RoleCoordinator))
		assert.False(t, reached)
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})
}
