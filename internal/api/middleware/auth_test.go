package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Eriw/podcast-transcriber/internal/auth"
)

func protectedEcho(t *testing.T) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims := GetClaims(r)
		if claims == nil {
			t.Error("no claims in request context")
			return
		}
		w.Write([]byte(claims.Username))
	}
}

func TestAuthMiddleware(t *testing.T) {
	jwtService := auth.NewJWTService("middleware-test")
	token, err := jwtService.GenerateToken(1, "admin", "admin")
	if err != nil {
		t.Fatal(err)
	}
	handler := AuthMiddleware(jwtService)(protectedEcho(t))

	tests := []struct {
		name   string
		header string
		status int
	}{
		{"no header", "", http.StatusUnauthorized},
		{"wrong scheme", "Basic " + token, http.StatusUnauthorized},
		{"garbage token", "Bearer not.a.token", http.StatusUnauthorized},
		{"valid token", "Bearer " + token, http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/api/auth/me", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)
			if rec.Code != tt.status {
				t.Fatalf("status = %d, want %d", rec.Code, tt.status)
			}
			if tt.status == http.StatusOK && rec.Body.String() != "admin" {
				t.Errorf("claims username = %q", rec.Body.String())
			}
		})
	}
}

func TestRequireRole(t *testing.T) {
	jwtService := auth.NewJWTService("middleware-test")
	adminToken, _ := jwtService.GenerateToken(1, "root", "admin")
	viewerToken, _ := jwtService.GenerateToken(2, "guest", "viewer")

	var chain http.Handler = protectedEcho(t)
	chain = RequireRole("admin")(chain)
	chain = AuthMiddleware(jwtService)(chain)

	req := httptest.NewRequest("GET", "/api/settings", nil)
	req.Header.Set("Authorization", "Bearer "+adminToken)
	rec := httptest.NewRecorder()
	chain.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("admin status = %d", rec.Code)
	}

	req = httptest.NewRequest("GET", "/api/settings", nil)
	req.Header.Set("Authorization", "Bearer "+viewerToken)
	rec = httptest.NewRecorder()
	chain.ServeHTTP(rec, req)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("viewer status = %d, want 403", rec.Code)
	}
}
