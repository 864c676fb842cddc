package httpserver

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/xxpisal/flower-shop/internal/models"
	"github.com/xxpisal/flower-shop/internal/repo"
	"github.com/xxpisal/flower-shop/internal/service"
	"github.com/xxpisal/flower-shop/internal/session"
)

type testEnv struct {
	T        *testing.T
	E        *echo.Echo
	DB       *gorm.DB
	Sessions *session.GormStore
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to connect to in-memory db: %v", err)
	}
	if err := db.AutoMigrate(&models.User{}, &models.Flower{}, &models.Order{}, &models.Session{}); err != nil {
		t.Fatalf("failed to migrate tables: %v", err)
	}

	gormRepo := repo.New(db)
	sessions := session.NewGormStore(db, []byte("test-session-secret"))

	e := echo.New()
	Register(e, &Deps{
		AuthHandler:    &AuthHTTP{Svc: &service.AuthService{Repo: gormRepo, Sessions: sessions}},
		CatalogHandler: &CatalogHTTP{Svc: &service.CatalogService{Repo: gormRepo}},
		OrderHandler:   &OrderHTTP{Svc: &service.OrderService{Repo: gormRepo}},
		HealthHandler:  &HealthHTTP{DB: db},
		Auth:           &SessionAuth{Sessions: sessions},
	})

	return &testEnv{T: t, E: e, DB: db, Sessions: sessions}
}

func (env *testEnv) doJSONRequest(method, path string, payload interface{}, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	env.T.Helper()

	var body *bytes.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		require.NoError(env.T, err)
		body = bytes.NewReader(data)
	} else {
		body = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, body)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	for _, ck := range cookies {
		req.AddCookie(ck)
	}

	rec := httptest.NewRecorder()
	env.E.ServeHTTP(rec, req)
	return rec
}

// signup registers a user through the HTTP surface and returns the session
// cookie the server handed back.
func (env *testEnv) signup(name, email, password string) *http.Cookie {
	env.T.Helper()

	rec := env.doJSONRequest(http.MethodPost, "/api/auth/signup", map[string]string{
		"name":     name,
		"email":    email,
		"password": password,
	})
	require.Equal(env.T, http.StatusCreated, rec.Code)

	return sessionCookie(env.T, rec)
}

func sessionCookie(t *testing.T, rec *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, ck := range rec.Result().Cookies() {
		if ck.Name == session.CookieName && ck.Value != "" {
			return ck
		}
	}
	t.Fatalf("no %s cookie in response", session.CookieName)
	return nil
}

func (env *testEnv) seedFlower(name string, price float64) models.Flower {
	env.T.Helper()

	flower := models.Flower{Name: name, Price: price, ImageURL: "/img/" + name + ".jpg"}
	require.NoError(env.T, env.DB.Create(&flower).Error)
	return flower
}

func decodeJSON(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}
