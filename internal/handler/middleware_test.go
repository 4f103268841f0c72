package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/finops-engine/backend/internal/model"
)

func newRoleTestRouter(operator *model.AuthOperator) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/seed",
		func(c *gin.Context) {
			if operator != nil {
				c.Set(authOperatorKey, operator)
			}
			c.Next()
		},
		RequireRole(model.RoleAdmin),
		func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "success"}) },
	)
	return r
}

func TestRequireRoleAllowsAdmin(t *testing.T) {
	r := newRoleTestRouter(&model.AuthOperator{ID: 1, LoginID: "cost-admin", Role: model.RoleAdmin})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/seed", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
}

func TestRequireRoleRejectsAnalyst(t *testing.T) {
	r := newRoleTestRouter(&model.AuthOperator{ID: 2, LoginID: "analyst-1", Role: model.RoleAnalyst})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/seed", nil))

	if w.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", w.Code)
	}
}

func TestRequireRoleRejectsMissingOperator(t *testing.T) {
	r := newRoleTestRouter(nil)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/seed", nil))

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
}
