package routes

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/personal/coffee-catalog-backend/internal/auth"
	"github.com/personal/coffee-catalog-backend/internal/coffees"
	pkgAuth "github.com/personal/coffee-catalog-backend/pkg/auth"
	"github.com/personal/coffee-catalog-backend/pkg/config"
	"github.com/personal/coffee-catalog-backend/pkg/enums"
	"github.com/personal/coffee-catalog-backend/pkg/logger"
	"github.com/personal/coffee-catalog-backend/pkg/pagination"
)

type stubPinger struct{}

func (stubPinger) Ping(context.Context) error {
	return nil
}

type stubAuthService struct{}

func (stubAuthService) Register(_ context.Context, req auth.RegisterRequest) (*auth.AuthResponse, error) {
	return &auth.AuthResponse{AccessToken: "tok", Email: req.Email, Role: enums.RoleUser}, nil
}

func (stubAuthService) Login(_ context.Context, req auth.LoginRequest) (*auth.AuthResponse, error) {
	return &auth.AuthResponse{AccessToken: "tok", Email: req.Email, Role: enums.RoleUser}, nil
}

type stubCoffeeService struct{}

func (stubCoffeeService) List(_ context.Context, input coffees.ListInput) (*pagination.Page[coffees.CoffeeDTO], error) {
	return pagination.NewPage([]coffees.CoffeeDTO{}, input.Pagination, 0), nil
}

func (stubCoffeeService) Get(_ context.Context, id uuid.UUID) (*coffees.CoffeeDTO, error) {
	return &coffees.CoffeeDTO{ID: id, IsActive: true}, nil
}

func (stubCoffeeService) Create(_ context.Context, req coffees.CreateCoffeeRequest) (*coffees.CoffeeDTO, error) {
	return &coffees.CoffeeDTO{ID: uuid.New(), Name: req.Name, IsActive: true}, nil
}

func (stubCoffeeService) Update(_ context.Context, id uuid.UUID, _ coffees.UpdateCoffeeRequest) (*coffees.CoffeeDTO, error) {
	return &coffees.CoffeeDTO{ID: id, IsActive: true}, nil
}

func (stubCoffeeService) Deactivate(_ context.Context, id uuid.UUID) (*coffees.CoffeeDTO, error) {
	return &coffees.CoffeeDTO{ID: id}, nil
}

func (stubCoffeeService) Delete(_ context.Context, id uuid.UUID) (*coffees.CoffeeDTO, error) {
	return &coffees.CoffeeDTO{ID: id}, nil
}

func testConfig() *config.Config {
	return &config.Config{
		App: config.AppConfig{Env: "dev", Port: "8080"},
		JWT: config.JWTConfig{Secret: "router-secret", Issuer: "coffee-catalog", ExpirationMinutes: 60},
	}
}

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()
	logg := logger.New(logger.Options{ServiceName: "router-test", Level: logger.ParseLevel("debug"), Output: io.Discard})
	return NewRouter(testConfig(), logg, stubPinger{}, nil, stubAuthService{}, stubCoffeeService{})
}

func mintToken(t *testing.T, role enums.Role) string {
	t.Helper()
	token, err := pkgAuth.MintAccessToken(testConfig().JWT, time.Now(), pkgAuth.AccessTokenPayload{
		UserID: uuid.New(),
		Email:  "router@example.com",
		Role:   role,
	})
	if err != nil {
		t.Fatalf("mint token: %v", err)
	}
	return token
}

func TestHealthEndpointsArePublic(t *testing.T) {
	router := newTestRouter(t)

	for _, path := range []string{"/health/live", "/health/ready"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("%s expected 200 got %d", path, rec.Code)
		}
	}
}

func TestAuthEndpointsArePublic(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/api/auth/register",
		strings.NewReader(`{"email":"a@example.com","password":"secret123","firstName":"A","lastName":"B"}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("register expected 200 got %d body %s", rec.Code, rec.Body.String())
	}

	req = httptest.NewRequest(http.MethodPost, "/api/auth/login",
		strings.NewReader(`{"email":"a@example.com","password":"secret123"}`))
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("login expected 200 got %d", rec.Code)
	}
}

func TestCatalogReadsRequireToken(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/coffee", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token got %d", rec.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/coffee", nil)
	req.Header.Set("Authorization", "Bearer "+mintToken(t, enums.RoleUser))
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 with USER token got %d body %s", rec.Code, rec.Body.String())
	}
}

func TestCatalogMutationsRequireAdmin(t *testing.T) {
	router := newTestRouter(t)
	id := uuid.NewString()
	payload := `{"name":"Kenya AA","originCountry":"Kenya","roastLevel":"Medium","price":12.5}`

	cases := []struct {
		method string
		path   string
		body   string
	}{
		{http.MethodPost, "/api/coffee", payload},
		{http.MethodPatch, "/api/coffee/" + id, `{"name":"Renamed"}`},
		{http.MethodPatch, "/api/coffee/" + id + "/deactivate", ""},
		{http.MethodDelete, "/api/coffee/" + id, ""},
	}

	for _, tc := range cases {
		req := httptest.NewRequest(tc.method, tc.path, strings.NewReader(tc.body))
		req.Header.Set("Authorization", "Bearer "+mintToken(t, enums.RoleUser))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		if rec.Code != http.StatusForbidden {
			t.Fatalf("%s %s with USER token expected 403 got %d", tc.method, tc.path, rec.Code)
		}

		req = httptest.NewRequest(tc.method, tc.path, strings.NewReader(tc.body))
		req.Header.Set("Authorization", "Bearer "+mintToken(t, enums.RoleAdmin))
		rec = httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("%s %s with ADMIN token expected 200 got %d body %s", tc.method, tc.path, rec.Code, rec.Body.String())
		}
	}
}

func TestGetCoffeeWithToken(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/coffee/"+uuid.NewString(), nil)
	req.Header.Set("Authorization", "Bearer "+mintToken(t, enums.RoleUser))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", rec.Code)
	}
}
