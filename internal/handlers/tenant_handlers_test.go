package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"saasnotes/internal/common"
	"saasnotes/internal/models"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type TenantHandlersTestSuite struct {
	suite.Suite
	tenantService *MockTenantService
	handlers      *TenantHandlers
	echo          *echo.Echo
	admin         *common.Identity
}

func (suite *TenantHandlersTestSuite) SetupTest() {
	suite.tenantService = &MockTenantService{}
	suite.handlers = NewTenantHandlers(suite.tenantService)
	suite.echo = echo.New()
	suite.echo.HTTPErrorHandler = HTTPErrorHandler
	suite.admin = &common.Identity{
		UserID:     uuid.New(),
		Email:      "admin@acme.test",
		Role:       models.RoleAdmin,
		TenantID:   uuid.New(),
		TenantSlug: "acme",
	}
}

func (suite *TenantHandlersTestSuite) TearDownTest() {
	suite.tenantService.AssertExpectations(suite.T())
}

func TestTenantHandlersTestSuite(t *testing.T) {
	suite.Run(t, new(TenantHandlersTestSuite))
}

func (suite *TenantHandlersTestSuite) upgrade(slug string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/tenants/"+url.PathEscape(slug)+"/upgrade", nil)
	req = req.WithContext(common.WithIdentity(req.Context(), suite.admin))
	rec := httptest.NewRecorder()
	c := suite.echo.NewContext(req, rec)
	c.SetParamNames("slug")
	c.SetParamValues(slug)

	if err := suite.handlers.UpgradeTenant(c); err != nil {
		suite.echo.HTTPErrorHandler(err, c)
	}
	return rec
}

func (suite *TenantHandlersTestSuite) TestUpgradeTenant_Success() {
	summary := &models.TenantSummary{ID: suite.admin.TenantID, Name: "Acme Corporation", Slug: "acme", Plan: models.PlanPro}
	suite.tenantService.On("Upgrade", mock.Anything, suite.admin, "acme").Return(summary, nil)

	rec := suite.upgrade("acme")
	assert.Equal(suite.T(), http.StatusOK, rec.Code)

	var resp UpgradeResponse
	assert.NoError(suite.T(), json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(suite.T(), "Tenant upgraded to Pro successfully", resp.Message)
	assert.Equal(suite.T(), models.PlanPro, resp.Tenant.Plan)
}

func (suite *TenantHandlersTestSuite) TestUpgradeTenant_MalformedSlug() {
	rec := suite.upgrade("Not A Slug!")
	assert.Equal(suite.T(), http.StatusNotFound, rec.Code)

	var body common.ErrorResponse
	assert.NoError(suite.T(), json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(suite.T(), "Tenant not found", body.Error)
}

func (suite *TenantHandlersTestSuite) TestUpgradeTenant_OtherTenant() {
	suite.tenantService.On("Upgrade", mock.Anything, suite.admin, "globex").
		Return(nil, models.ErrNotOwnTenant)

	rec := suite.upgrade("globex")
	assert.Equal(suite.T(), http.StatusForbidden, rec.Code)

	var body common.ErrorResponse
	assert.NoError(suite.T(), json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(suite.T(), "Forbidden: You can only upgrade your own tenant", body.Error)
}

func (suite *TenantHandlersTestSuite) TestUpgradeTenant_AlreadyPro() {
	suite.tenantService.On("Upgrade", mock.Anything, suite.admin, "acme").
		Return(nil, models.ErrAlreadyPro)

	rec := suite.upgrade("acme")
	assert.Equal(suite.T(), http.StatusBadRequest, rec.Code)

	var body common.ErrorResponse
	assert.NoError(suite.T(), json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(suite.T(), "Tenant is already on Pro plan", body.Error)
}
