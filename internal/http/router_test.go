package http_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/till/internal/export"
	tillhttp "github.com/MrJamesThe3rd/till/internal/http"
	"github.com/MrJamesThe3rd/till/internal/http/auth"
	ledgerhttp "github.com/MrJamesThe3rd/till/internal/http/ledger"
	"github.com/MrJamesThe3rd/till/internal/ledger"
)

const restaurantID = "8c7e2f0e-4d1b-4b43-9a55-0f3d2d1c9b7a"

func newRouter(t *testing.T, secret string, setupMock func(m *ledger.MockRepository)) http.Handler {
	t.Helper()

	repo := ledger.NewMockRepository(gomock.NewController(t))
	if setupMock != nil {
		setupMock(repo)
	}

	svc := ledger.NewService(repo)

	return tillhttp.New(ledgerhttp.NewHandler(svc, export.NewService(svc), time.UTC), tillhttp.Options{
		AllowedOrigins: []string{"https://admin.example"},
		JWTSecret:      secret,
	})
}

func TestRouter_RequiresToken(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/restaurants/"+restaurantID+"/till/snapshot", nil)
	rec := httptest.NewRecorder()

	newRouter(t, "s3cret", nil).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRouter_AuthorizedSnapshot(t *testing.T) {
	srv := newRouter(t, "s3cret", func(m *ledger.MockRepository) {
		m.EXPECT().ListMovements(gomock.Any(), gomock.Any()).Return(nil, nil)
	})

	tok, err := auth.Sign("s3cret", restaurantID, time.Minute)
	assert.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/restaurants/"+restaurantID+"/till/snapshot", nil)
	req.Header.Set("Authorization", "Bearer "+tok)

	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"total_revenue":0`)
}

func TestRouter_CORSPreflight(t *testing.T) {
	req := httptest.NewRequest(http.MethodOptions, "/api/v1/restaurants/"+restaurantID+"/till/open", nil)
	req.Header.Set("Origin", "https://admin.example")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)

	rec := httptest.NewRecorder()
	newRouter(t, "s3cret", nil).ServeHTTP(rec, req)

	assert.Equal(t, "https://admin.example", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestRouter_Healthz(t *testing.T) {
	rec := httptest.NewRecorder()
	newRouter(t, "", nil).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	assert.Equal(t, http.StatusNoContent, rec.Code)
}
