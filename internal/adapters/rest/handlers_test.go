// internal/adapters/rest/handlers_test.go
package rest

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/mahabubulhasibshawon/rider-tracker/internal/adapters/inmem"
	"github.com/mahabubulhasibshawon/rider-tracker/internal/adapters/repository"
	"github.com/mahabubulhasibshawon/rider-tracker/internal/application"
	"github.com/mahabubulhasibshawon/rider-tracker/internal/domain"
	"github.com/mahabubulhasibshawon/rider-tracker/internal/logger"
	"github.com/mahabubulhasibshawon/rider-tracker/pkg/auth"
)

type envelope struct {
	Data  json.RawMessage `json:"data"`
	Meta  map[string]any  `json:"meta"`
	Error *AppError       `json:"error"`
}

func setupRouter(t *testing.T) (*gin.Engine, *Handler) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	lg := logger.Nop()
	store := application.NewUserStore(repository.NewMemoryRepository(), lg, application.WithHashCost(bcrypt.MinCost))
	authService := application.NewAuthService(store, auth.NewManager("test-secret", time.Hour), inmem.NewRevocationList())
	progress := application.NewProgressService(store, inmem.NewCache(time.Minute), store.Events(), lg)
	t.Cleanup(progress.Close)
	h := NewHandler(store, authService, progress, lg)
	return NewRouter(h, lg, "development", []string{"http://localhost:3000"}), h
}

func do(t *testing.T, r *gin.Engine, method, path, token, body string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	var env envelope
	if w.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	}
	return w, env
}

func signupAndLogin(t *testing.T, r *gin.Engine, username string) string {
	t.Helper()
	w, _ := do(t, r, "POST", "/api/v1/auth/signup", "", `{"username":"`+username+`","password":"123","name":"Juma","daily_target":2}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w, env := do(t, r, "POST", "/api/v1/auth/login", "", `{"username":"`+username+`","password":"123"}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var data struct {
		AccessToken string `json:"access_token"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &data))
	require.NotEmpty(t, data.AccessToken)
	return data.AccessToken
}

func TestSignupAndLogin(t *testing.T) {
	r, _ := setupRouter(t)

	tests := []struct {
		name       string
		path       string
		body       string
		wantStatus int
		wantField  string
	}{
		{name: "Signup ok", path: "/api/v1/auth/signup", body: `{"username":"rider","password":"123","name":"Juma"}`, wantStatus: 201},
		{name: "Signup duplicate", path: "/api/v1/auth/signup", body: `{"username":"rider","password":"123","name":"Juma"}`, wantStatus: 409},
		{name: "Signup bad json", path: "/api/v1/auth/signup", body: `{"username":`, wantStatus: 400},
		{name: "Signup negative target", path: "/api/v1/auth/signup", body: `{"username":"rider2","password":"123","name":"Juma","daily_target":-1}`, wantStatus: 422, wantField: "daily_target"},
		{name: "Signup bad vehicle", path: "/api/v1/auth/signup", body: `{"username":"rider3","password":"123","name":"Juma","vehicle_type":"boat"}`, wantStatus: 422, wantField: "vehicle_type"},
		{name: "Login wrong password", path: "/api/v1/auth/login", body: `{"username":"rider","password":"nope"}`, wantStatus: 401},
		{name: "Login missing fields", path: "/api/v1/auth/login", body: `{"username":"rider"}`, wantStatus: 400},
		{name: "Login ok", path: "/api/v1/auth/login", body: `{"username":"rider","password":"123"}`, wantStatus: 200},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, env := do(t, r, "POST", tt.path, "", tt.body)
			assert.Equal(t, tt.wantStatus, w.Code, w.Body.String())
			if tt.wantField != "" {
				require.NotNil(t, env.Error)
				assert.Equal(t, tt.wantField, env.Error.Field)
			}
			assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
		})
	}
}

func TestAuthRequired(t *testing.T) {
	r, _ := setupRouter(t)

	for _, path := range []string{"/api/v1/profile", "/api/v1/deliveries", "/api/v1/progress", "/api/v1/achievements"} {
		w, _ := do(t, r, "GET", path, "", "")
		assert.Equal(t, http.StatusUnauthorized, w.Code, path)
		w, _ = do(t, r, "GET", path, "garbage", "")
		assert.Equal(t, http.StatusUnauthorized, w.Code, path)
	}
}

func TestDeliveryLifecycle(t *testing.T) {
	r, _ := setupRouter(t)
	token := signupAndLogin(t, r, "rider")

	w, env := do(t, r, "POST", "/api/v1/deliveries", token, `{"payload":"Asha|1200"}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var d domain.Delivery
	require.NoError(t, json.Unmarshal(env.Data, &d))
	assert.Equal(t, "Asha", d.CustomerName)
	assert.Equal(t, 1200.0, d.TotalAmount)
	assert.Equal(t, domain.StatusOngoing, d.Status)

	w, _ = do(t, r, "POST", "/api/v1/deliveries", token, `{"payload":"Asha|twelve"}`)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	w, env = do(t, r, "POST", "/api/v1/deliveries/"+d.ID+"/complete", token, `{"confirmation":"Asha|1200"}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var done domain.Delivery
	require.NoError(t, json.Unmarshal(env.Data, &done))
	assert.Equal(t, domain.StatusCompleted, done.Status)
	require.NotNil(t, done.DeliveryTime)

	w, _ = do(t, r, "POST", "/api/v1/deliveries/"+d.ID+"/cancel", token, "")
	assert.Equal(t, http.StatusConflict, w.Code)

	w, _ = do(t, r, "POST", "/api/v1/deliveries/missing/cancel", token, "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w, env = do(t, r, "GET", "/api/v1/deliveries?limit=5&page=1", token, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.EqualValues(t, 1, env.Meta["total"])

	today := time.Now().Format(time.DateOnly)
	w, env = do(t, r, "GET", "/api/v1/deliveries?date="+today, token, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.EqualValues(t, 1, env.Meta["total"])

	w, _ = do(t, r, "GET", "/api/v1/deliveries?date=yesterday", token, "")
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	w, env = do(t, r, "GET", "/api/v1/progress", token, "")
	require.Equal(t, http.StatusOK, w.Code)
	var summary domain.ProgressSummary
	require.NoError(t, json.Unmarshal(env.Data, &summary))
	assert.Equal(t, 1, summary.Daily.Completed)
	assert.Equal(t, 50, summary.Daily.Percent)

	w, env = do(t, r, "GET", "/api/v1/achievements", token, "")
	require.Equal(t, http.StatusOK, w.Code)
	var labels []string
	require.NoError(t, json.Unmarshal(env.Data, &labels))
	assert.Equal(t, []string{domain.AchievementFirstDelivery}, labels)
}

func TestListDeliveriesPaging(t *testing.T) {
	r, _ := setupRouter(t)
	token := signupAndLogin(t, r, "juma")
	for _, payload := range []string{"Asha|100", "Baraka|200", "Chausiku|300"} {
		w, _ := do(t, r, "POST", "/api/v1/deliveries", token, `{"payload":"`+payload+`"}`)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	}

	tests := []struct {
		name     string
		query    string
		wantLen  int
		wantPer  float64
		wantPage float64
		wantLast float64
	}{
		{name: "Defaults", query: "", wantLen: 3, wantPer: 10, wantPage: 1, wantLast: 1},
		{name: "Second page", query: "?limit=2&page=2", wantLen: 1, wantPer: 2, wantPage: 2, wantLast: 2},
		{name: "Page past the end", query: "?limit=2&page=9", wantLen: 0, wantPer: 2, wantPage: 9, wantLast: 2},
		{name: "Huge limit", query: "?limit=9223372036854775807&page=2", wantLen: 0, wantPer: 100, wantPage: 2, wantLast: 1},
		{name: "Huge page", query: "?limit=10&page=9223372036854775807", wantLen: 0, wantPer: 10, wantPage: 9223372036854775807, wantLast: 1},
		{name: "Malformed", query: "?limit=abc&page=-3", wantLen: 3, wantPer: 10, wantPage: 1, wantLast: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, env := do(t, r, "GET", "/api/v1/deliveries"+tt.query, token, "")
			require.Equal(t, http.StatusOK, w.Code, w.Body.String())
			var items []domain.Delivery
			require.NoError(t, json.Unmarshal(env.Data, &items))
			assert.Len(t, items, tt.wantLen)
			assert.Equal(t, float64(3), env.Meta["total"])
			assert.Equal(t, tt.wantPer, env.Meta["per_page"])
			assert.Equal(t, tt.wantPage, env.Meta["current_page"])
			assert.Equal(t, tt.wantLast, env.Meta["last_page"])
		})
	}
}

func TestDeliveriesAreScopedToOwner(t *testing.T) {
	r, _ := setupRouter(t)
	alice := signupAndLogin(t, r, "alice")
	bob := signupAndLogin(t, r, "bob")

	w, env := do(t, r, "POST", "/api/v1/deliveries", alice, `{"payload":"ORD-1|Asha|10"}`)
	require.Equal(t, http.StatusCreated, w.Code)
	var d domain.Delivery
	require.NoError(t, json.Unmarshal(env.Data, &d))

	w, _ = do(t, r, "GET", "/api/v1/deliveries/"+d.ID, bob, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	w, _ = do(t, r, "POST", "/api/v1/deliveries/"+d.ID+"/complete", bob, `{"confirmation":"ORD-1"}`)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w, _ = do(t, r, "GET", "/api/v1/deliveries/"+d.ID, alice, "")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestProfileAndTarget(t *testing.T) {
	r, _ := setupRouter(t)
	token := signupAndLogin(t, r, "rider")

	w, env := do(t, r, "PUT", "/api/v1/profile/target", token, `{"daily_target":8}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var u domain.User
	require.NoError(t, json.Unmarshal(env.Data, &u))
	assert.Equal(t, 8, u.DailyTarget)

	w, _ = do(t, r, "PUT", "/api/v1/profile/target", token, `{"daily_target":-3}`)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	w, env = do(t, r, "PUT", "/api/v1/profile", token, `{"name":"Juma Hamisi","email":"juma@example.com","vehicle_type":"truck","capacity_tons":3}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	require.NoError(t, json.Unmarshal(env.Data, &u))
	assert.Equal(t, "Juma Hamisi", u.Name)
	assert.Equal(t, 8, u.DailyTarget)
	assert.NotContains(t, string(env.Data), "password")

	w, _ = do(t, r, "PUT", "/api/v1/profile", token, `{"name":"Juma","email":"nope"}`)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestMarkAchievement(t *testing.T) {
	r, _ := setupRouter(t)
	token := signupAndLogin(t, r, "rider")

	type unlock struct {
		Label         string `json:"label"`
		NewlyUnlocked bool   `json:"newly_unlocked"`
	}
	w, env := do(t, r, "POST", "/api/v1/achievements", token, `{"label":"Assessment Completed"}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var got unlock
	require.NoError(t, json.Unmarshal(env.Data, &got))
	assert.Equal(t, unlock{Label: domain.AchievementAssessment, NewlyUnlocked: true}, got)

	w, env = do(t, r, "POST", "/api/v1/achievements", token, `{"label":"Assessment Completed"}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	require.NoError(t, json.Unmarshal(env.Data, &got))
	assert.False(t, got.NewlyUnlocked)

	w, env = do(t, r, "POST", "/api/v1/achievements", token, `{"label":"First Delivery"}`)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	require.NotNil(t, env.Error)
	assert.Equal(t, "label", env.Error.Field)

	w, _ = do(t, r, "POST", "/api/v1/achievements", token, `{}`)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	w, _ = do(t, r, "POST", "/api/v1/achievements", "", `{"label":"Assessment Completed"}`)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w, env = do(t, r, "GET", "/api/v1/achievements", token, "")
	require.Equal(t, http.StatusOK, w.Code)
	var labels []string
	require.NoError(t, json.Unmarshal(env.Data, &labels))
	assert.Equal(t, []string{domain.AchievementAssessment}, labels)
}

func TestLogoutRevokesToken(t *testing.T) {
	r, _ := setupRouter(t)
	token := signupAndLogin(t, r, "rider")

	w, _ := do(t, r, "POST", "/api/v1/auth/logout", token, "")
	assert.Equal(t, http.StatusNoContent, w.Code)

	w, _ = do(t, r, "GET", "/api/v1/profile", token, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestHealthAndReadiness(t *testing.T) {
	r, h := setupRouter(t)

	w, _ := do(t, r, "GET", "/healthz", "", "")
	assert.Equal(t, http.StatusOK, w.Code)
	w, _ = do(t, r, "GET", "/readyz", "", "")
	assert.Equal(t, http.StatusOK, w.Code)

	h.WithReadiness(func(ctx context.Context) error { return errors.New("redis down") })
	w, _ = do(t, r, "GET", "/readyz", "", "")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestCORS(t *testing.T) {
	r, _ := setupRouter(t)

	req := httptest.NewRequest(http.MethodOptions, "/api/v1/profile", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", "PUT")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "http://localhost:3000", w.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set("Origin", "http://evil.example")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusForbidden, w.Code)

	assert.True(t, corsConfig(nil).AllowAllOrigins)
	assert.True(t, corsConfig([]string{"*"}).AllowAllOrigins)
	assert.False(t, corsConfig([]string{"*"}).AllowCredentials)
}

func TestStatusFor(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{domain.NewValidationError("x", "bad"), 422},
		{domain.ErrInvalidPayload, 422},
		{domain.ErrNotFound, 404},
		{domain.ErrInvalidTransition, 409},
		{domain.ErrConflict, 409},
		{domain.ErrInvalidCredentials, 401},
		{errors.New("boom"), 500},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, StatusFor(tt.err), tt.err.Error())
	}
}
