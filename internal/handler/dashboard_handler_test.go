package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/school-admin-api/internal/middleware"
	"github.com/noah-isme/school-admin-api/internal/models"
	"github.com/noah-isme/school-admin-api/internal/service"
)

type fixedCounts struct {
	counts *models.DashboardCounts
	err    error
}

func (f fixedCounts) Counts(context.Context) (*models.DashboardCounts, error) {
	return f.counts, f.err
}

func dashboardContext(staff *models.Staff) (*gin.Context, *httptest.ResponseRecorder) {
	gin.SetMode(gin.TestMode)
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/api/dashboard", nil)
	if staff != nil {
		c.Set(middleware.ContextStaffKey, staff)
	}
	return c, rec
}

func TestDashboardHandlerSummary(t *testing.T) {
	first := "Ada"
	svc := service.NewDashboardService(fixedCounts{counts: &models.DashboardCounts{StudentCount: 12, ScheduleCount: 4, StaffCount: 2}}, nil, 0, nil)
	c, rec := dashboardContext(&models.Staff{ID: "s1", Username: "ada", FirstName: &first, Role: models.RoleRegistrar})

	NewDashboardHandler(svc).Summary(c)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "MISS", rec.Header().Get("X-Cache"))
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "Ada", body["staffName"])
	assert.Equal(t, "registrar", body["role"])
	assert.EqualValues(t, 12, body["studentCount"])
}

func TestDashboardHandlerWithoutStaff(t *testing.T) {
	svc := service.NewDashboardService(fixedCounts{}, nil, 0, nil)
	c, rec := dashboardContext(nil)

	NewDashboardHandler(svc).Summary(c)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestDashboardHandlerStoreFailure(t *testing.T) {
	svc := service.NewDashboardService(fixedCounts{err: errors.New("db down")}, nil, 0, nil)
	c, rec := dashboardContext(&models.Staff{ID: "s1", Username: "ada"})

	NewDashboardHandler(svc).Summary(c)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "db down")
}
