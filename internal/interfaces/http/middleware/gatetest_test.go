package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	entitlementUC "tavern/internal/application/entitlement/usecases"
	"tavern/internal/domain/entitlement"
	"tavern/internal/shared/constants"
	"tavern/internal/shared/logger"
	"tavern/internal/shared/utils"
)

func init() {
	gin.SetMode(gin.TestMode)
}

var (
	anyCtx  = mock.Anything
	anyUint = mock.AnythingOfType("uint")
)

// identity is the authenticated actor injected ahead of the gate under test
type identity struct {
	userID uint
	role   string
	plan   string
}

func injectIdentity(id *identity) gin.HandlerFunc {
	return func(c *gin.Context) {
		if id != nil {
			c.Set(constants.ContextKeyUserID, id.userID)
			c.Set(constants.ContextKeyUserRole, id.role)
			c.Set(constants.ContextKeyUserPlan, id.plan)
		}
		c.Next()
	}
}

// runGate sends a request through the gate and reports whether it reached
// the downstream handler.
func runGate(t *testing.T, gate gin.HandlerFunc, id *identity, method, path, body string) (*httptest.ResponseRecorder, bool) {
	t.Helper()

	reached := false
	router := gin.New()
	downstream := func(c *gin.Context) {
		reached = true
		c.JSON(http.StatusOK, gin.H{"success": true})
	}
	router.Handle(method, "/r/:id", injectIdentity(id), gate, downstream)
	router.Handle(method, "/r", injectIdentity(id), gate, downstream)

	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w, reached
}

func decodeResponse(t *testing.T, w *httptest.ResponseRecorder) utils.APIResponse {
	t.Helper()
	var resp utils.APIResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

// limitsUseCase builds a resolver backed by fixed per-user limit rows
func limitsUseCase(limits map[uint]entitlement.UserLimits) *entitlementUC.GetUserLimitsUseCase {
	repo := new(mockUserLimitsRepository)
	repo.On("EnsureDefaults", anyCtx, anyUint).Return(nil)
	for userID := range limits {
		row := limits[userID]
		repo.On("GetByUserID", anyCtx, userID).Return(&row, nil)
	}
	repo.On("GetByUserID", anyCtx, anyUint).Return(nil, nil)
	return entitlementUC.NewGetUserLimitsUseCase(repo, logger.NewLogger())
}
