package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Dosada05/tournament-predictor/models"
)

var secret = []byte("test-secret")

func signed(t *testing.T, claims jwt.MapClaims, key []byte) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(key)
	require.NoError(t, err)
	return token
}

func protected(roles ...models.UserRole) http.Handler {
	ok := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, err := GetUserIDFromContext(r.Context())
		if err != nil {
			w.WriteHeader(http.StatusTeapot)
			return
		}
		w.Header().Set("X-User", strconv.Itoa(id))
		w.WriteHeader(http.StatusOK)
	})
	return Authenticate(secret)(RequireRole(roles...)(ok))
}

func TestAuthenticate(t *testing.T) {
	exp := time.Now().Add(time.Hour).Unix()
	tests := []struct {
		name   string
		header string
		roles  []models.UserRole
		want   int
	}{
		{"no header", "", []models.UserRole{models.RolePlayer}, http.StatusUnauthorized},
		{"not bearer", "Basic abc", []models.UserRole{models.RolePlayer}, http.StatusUnauthorized},
		{"wrong key", "Bearer " + signed(t, jwt.MapClaims{"user_id": 1, "role": "player", "exp": exp}, []byte("other")), []models.UserRole{models.RolePlayer}, http.StatusUnauthorized},
		{"expired", "Bearer " + signed(t, jwt.MapClaims{"user_id": 1, "role": "player", "exp": time.Now().Add(-time.Hour).Unix()}, secret), []models.UserRole{models.RolePlayer}, http.StatusUnauthorized},
		{"wrong role", "Bearer " + signed(t, jwt.MapClaims{"user_id": 1, "role": "player", "exp": exp}, secret), []models.UserRole{models.RoleAdmin}, http.StatusForbidden},
		{"unknown role", "Bearer " + signed(t, jwt.MapClaims{"user_id": 1, "role": "guest", "exp": exp}, secret), []models.UserRole{models.RolePlayer}, http.StatusUnauthorized},
		{"player", "Bearer " + signed(t, jwt.MapClaims{"user_id": 7, "role": "player", "exp": exp}, secret), []models.UserRole{models.RolePlayer, models.RoleAdmin}, http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()

			protected(tt.roles...).ServeHTTP(rec, req)

			assert.Equal(t, tt.want, rec.Code)
			if tt.want == http.StatusOK {
				assert.Equal(t, "7", rec.Header().Get("X-User"))
			}
		})
	}
}

func TestGetUserIDFromContext(t *testing.T) {
	ctx := WithClaims(context.Background(), jwt.MapClaims{"user_id": float64(42), "role": "admin"})
	id, err := GetUserIDFromContext(ctx)
	require.NoError(t, err)
	assert.Equal(t, 42, id)
	role, err := GetUserRoleFromContext(ctx)
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, role)

	_, err = GetUserIDFromContext(WithClaims(context.Background(), jwt.MapClaims{"user_id": "x"}))
	assert.Error(t, err)
	_, err = GetUserIDFromContext(WithClaims(context.Background(), jwt.MapClaims{"user_id": float64(-1)}))
	assert.Error(t, err)
	_, err = GetUserIDFromContext(context.Background())
	assert.Error(t, err)
}
