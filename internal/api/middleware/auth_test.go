package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
)

const testSecret = "test-secret"

func newAuthRouter(secret string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(JWTAuth(secret))
	r.GET("/whoami", func(c *gin.Context) {
		userID, _ := GetUserID(c)
		c.JSON(http.StatusOK, gin.H{"user_id": userID})
	})
	return r
}

func TestJWTAuthValidToken(t *testing.T) {
	token, err := IssueToken("user-1", "user", testSecret, time.Hour)
	if err != nil {
		t.Fatalf("IssueToken: %v", err)
	}

	r := newAuthRouter(testSecret)
	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
}

func TestJWTAuthRejects(t *testing.T) {
	goodToken, _ := IssueToken("user-1", "user", testSecret, time.Hour)
	expiredToken, _ := IssueToken("user-1", "user", testSecret, -time.Hour)
	wrongSecretToken, _ := IssueToken("user-1", "user", "other-secret", time.Hour)

	tests := []struct {
		name   string
		header string
	}{
		{"missing header", ""},
		{"not a bearer token", goodToken},
		{"garbage token", "Bearer not.a.jwt"},
		{"expired token", "Bearer " + expiredToken},
		{"wrong secret", "Bearer " + wrongSecretToken},
	}

	r := newAuthRouter(testSecret)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			if w.Code != http.StatusUnauthorized {
				t.Errorf("status = %d, want 401", w.Code)
			}
		})
	}
}

func TestParseTokenRoundTrip(t *testing.T) {
	token, err := IssueToken("user-7", "admin", testSecret, time.Hour)
	if err != nil {
		t.Fatalf("IssueToken: %v", err)
	}

	claims, err := ParseToken(token, testSecret)
	if err != nil {
		t.Fatalf("ParseToken: %v", err)
	}
	if claims.UserID != "user-7" {
		t.Errorf("UserID = %q, want user-7", claims.UserID)
	}
	if claims.Role != "admin" {
		t.Errorf("Role = %q, want admin", claims.Role)
	}
}
