package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/hairsol/booking-engine/internal/identity"
)

const testSecret = "test-secret"

func signed(t *testing.T, claims jwt.MapClaims, secret string) string {
	t.Helper()
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	return tok
}

func newAuthRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(AuthMiddleware(testSecret))
	r.GET("/whoami", func(c *gin.Context) {
		p := PrincipalFrom(c)
		c.JSON(http.StatusOK, gin.H{"id": p.UserID, "type": p.UserType})
	})
	return r
}

func TestAuthMiddleware(t *testing.T) {
	r := newAuthRouter()

	cases := []struct {
		name   string
		header string
		status int
	}{
		{"missing header", "", http.StatusUnauthorized},
		{"not bearer", "Token abc", http.StatusUnauthorized},
		{"garbage token", "Bearer abc", http.StatusUnauthorized},
		{"wrong secret", "Bearer " + signed(t, jwt.MapClaims{"sub": 1, "user_type": "client"}, "other"), http.StatusUnauthorized},
		{"unknown user type", "Bearer " + signed(t, jwt.MapClaims{"sub": 1, "user_type": "robot"}, testSecret), http.StatusUnauthorized},
		{"missing sub", "Bearer " + signed(t, jwt.MapClaims{"user_type": "client"}, testSecret), http.StatusUnauthorized},
		{"valid client", "Bearer " + signed(t, jwt.MapClaims{"sub": 7, "user_type": "client"}, testSecret), http.StatusOK},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			if w.Code != tc.status {
				t.Fatalf("expected %d, got %d: %s", tc.status, w.Code, w.Body.String())
			}
		})
	}
}

func TestAuthMiddlewareSetsPrincipal(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(AuthMiddleware(testSecret))

	var got identity.Principal
	r.GET("/whoami", func(c *gin.Context) {
		got = PrincipalFrom(c)
		c.Status(http.StatusNoContent)
	})

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", "Bearer "+signed(t, jwt.MapClaims{"sub": 42, "user_type": "professional"}, testSecret))
	r.ServeHTTP(httptest.NewRecorder(), req)

	if got.UserID != 42 || got.UserType != identity.UserTypeProfessional {
		t.Fatalf("unexpected principal %+v", got)
	}
}

func TestCORSMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(CORSMiddleware([]string{"https://app.example"}))
	r.GET("/x", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodOptions, "/x", nil)
	req.Header.Set("Origin", "https://app.example")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusNoContent || w.Header().Get("Access-Control-Allow-Origin") != "https://app.example" {
		t.Fatalf("unexpected preflight %d %v", w.Code, w.Header())
	}

	req = httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set("Origin", "https://evil.example")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Header().Get("Access-Control-Allow-Origin") != "" {
		t.Fatal("foreign origin must not be allowed")
	}
}
