package middleware

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"finire/internal/testutil"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

var testSecret = []byte("test-secret")

func signToken(t *testing.T, subject, email string, secret []byte) string {
	t.Helper()
	claims := &Claims{
		Email: email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
	assert.NoError(t, err)
	return token
}

func TestAuth_ValidToken(t *testing.T) {
	userID := uuid.NewString()
	users := new(testutil.MockUserRepository)
	users.On("EnsureUser", userID, "writer@example.com").Return(nil)

	var gotUserID string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUserID = UserID(r)
	})

	handler := Auth(testSecret, users, testutil.NewTestLogger())(next)

	req := httptest.NewRequest(http.MethodGet, "/api/days", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, userID, "writer@example.com", testSecret))
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, userID, gotUserID)
	users.AssertExpectations(t)
}

func TestAuth_Rejections(t *testing.T) {
	users := new(testutil.MockUserRepository)
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("next handler must not run")
	})
	handler := Auth(testSecret, users, testutil.NewTestLogger())(next)

	tests := []struct {
		name   string
		header string
	}{
		{name: "missing header", header: ""},
		{name: "not a bearer token", header: "Basic abc"},
		{name: "garbage token", header: "Bearer not.a.token"},
		{name: "wrong secret", header: "Bearer " + signToken(t, uuid.NewString(), "a@b.c", []byte("other-secret"))},
		{name: "non-uuid subject", header: "Bearer " + signToken(t, "admin", "a@b.c", testSecret)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/days", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, req)

			assert.Equal(t, http.StatusUnauthorized, rec.Code)
		})
	}
}

func TestAuth_MirrorFailure(t *testing.T) {
	userID := uuid.NewString()
	users := new(testutil.MockUserRepository)
	users.On("EnsureUser", userID, "writer@example.com").Return(fmt.Errorf("connection refused"))

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("next handler must not run")
	})
	handler := Auth(testSecret, users, testutil.NewTestLogger())(next)

	req := httptest.NewRequest(http.MethodGet, "/api/days", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, userID, "writer@example.com", testSecret))
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
