package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"clinic-backend/internal/model"
	"clinic-backend/internal/token"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

func newGateRouter(t *testing.T, issuer *token.Issuer, allowed ...string) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/guarded", RequireRole(issuer, allowed...), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"user_id": c.GetString(ContextUserID)})
	})
	return router
}

func doGet(router *gin.Engine, bearer string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/guarded", nil)
	if bearer != "" {
		req.Header.Set("Authorization", bearer)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestRequireRoleAllowsIntersectingRoleSet(t *testing.T) {
	issuer := token.NewIssuer([]byte("secret"), time.Hour, time.Hour)
	router := newGateRouter(t, issuer, model.RoleAdmin, model.RoleSuperAdmin)

	tok, err := issuer.IssueAccessToken(uuid.New(), "alice", []string{model.RoleDoctor, model.RoleAdmin})
	if err != nil {
		t.Fatalf("IssueAccessToken: %v", err)
	}
	if w := doGet(router, "Bearer "+tok); w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
}

func TestRequireRoleDeniesDisjointRoleSet(t *testing.T) {
	issuer := token.NewIssuer([]byte("secret"), time.Hour, time.Hour)
	router := newGateRouter(t, issuer, model.RoleAdmin)

	tok, err := issuer.IssueAccessToken(uuid.New(), "bob", []string{model.RoleDoctor, model.RoleNurse})
	if err != nil {
		t.Fatalf("IssueAccessToken: %v", err)
	}
	if w := doGet(router, "Bearer "+tok); w.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want 403", w.Code)
	}
}

func TestRequireRoleHasNoHierarchy(t *testing.T) {
	issuer := token.NewIssuer([]byte("secret"), time.Hour, time.Hour)
	// ADMIN-only gate: SUPERADMIN is not implicitly granted.
	router := newGateRouter(t, issuer, model.RoleAdmin)

	tok, err := issuer.IssueAccessToken(uuid.New(), "root", []string{model.RoleSuperAdmin})
	if err != nil {
		t.Fatalf("IssueAccessToken: %v", err)
	}
	if w := doGet(router, "Bearer "+tok); w.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want 403 for unlisted SUPERADMIN", w.Code)
	}
}

func TestRequireRoleRejectsBadTokens(t *testing.T) {
	issuer := token.NewIssuer([]byte("secret"), time.Hour, time.Hour)
	router := newGateRouter(t, issuer, model.RoleAdmin)

	if w := doGet(router, ""); w.Code != http.StatusUnauthorized {
		t.Fatalf("missing header: status = %d, want 401", w.Code)
	}
	if w := doGet(router, "Token abc"); w.Code != http.StatusUnauthorized {
		t.Fatalf("bad scheme: status = %d, want 401", w.Code)
	}
	if w := doGet(router, "Bearer not-a-token"); w.Code != http.StatusUnauthorized {
		t.Fatalf("garbage token: status = %d, want 401", w.Code)
	}

	expired := token.NewIssuer([]byte("secret"), -time.Minute, time.Hour)
	tok, err := expired.IssueAccessToken(uuid.New(), "carol", []string{model.RoleAdmin})
	if err != nil {
		t.Fatalf("IssueAccessToken: %v", err)
	}
	if w := doGet(router, "Bearer "+tok); w.Code != http.StatusUnauthorized {
		t.Fatalf("expired token: status = %d, want 401", w.Code)
	}
}

func TestAuthenticateAttachesIdentity(t *testing.T) {
	issuer := token.NewIssuer([]byte("secret"), time.Hour, time.Hour)
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/me", Authenticate(issuer), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"user_id":  c.GetString(ContextUserID),
			"username": c.GetString(ContextUsername),
		})
	})

	userID := uuid.New()
	tok, err := issuer.IssueAccessToken(userID, "dave", []string{model.RolePatient})
	if err != nil {
		t.Fatalf("IssueAccessToken: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer "+tok)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	body := w.Body.String()
	if !strings.Contains(body, userID.String()) || !strings.Contains(body, "dave") {
		t.Fatalf("identity not attached to context: %s", body)
	}
}
