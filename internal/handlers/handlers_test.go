package handlers

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/Skotchmaster/ecommerce_backend/internal/models"
	"github.com/Skotchmaster/ecommerce_backend/internal/repo"
	authsvc "github.com/Skotchmaster/ecommerce_backend/internal/service/auth"
	cartsvc "github.com/Skotchmaster/ecommerce_backend/internal/service/cart"
	catalogsvc "github.com/Skotchmaster/ecommerce_backend/internal/service/catalog"
	"github.com/Skotchmaster/ecommerce_backend/internal/validation"
)

type testEnv struct {
	T       *testing.T
	E       *echo.Echo
	DB      *gorm.DB
	Auth    *AuthHandler
	Product *ProductHandler
	Cart    *CartHandler
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Product{}, &models.User{}, &models.CartLine{}))

	e := echo.New()
	e.Validator = validation.New()

	store := &repo.GormRepo{DB: db}
	return &testEnv{
		T:       t,
		E:       e,
		DB:      db,
		Auth:    &AuthHandler{Svc: &authsvc.Service{Repo: store}},
		Product: &ProductHandler{Svc: &catalogsvc.Service{Repo: store}},
		Cart:    &CartHandler{Svc: &cartsvc.Service{Repo: store}},
	}
}

func (env *testEnv) doJSONRequest(method, path string, body interface{}) (*httptest.ResponseRecorder, echo.Context) {
	var buf bytes.Buffer
	if body != nil {
		require.NoError(env.T, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := env.E.NewContext(req, rec)
	return rec, c
}

func (env *testEnv) seedUser(email string) *models.User {
	env.T.Helper()
	user := &models.User{Email: email, Password: "secret"}
	require.NoError(env.T, env.DB.Create(user).Error)
	return user
}

func (env *testEnv) seedProduct(name string, price models.Cents) *models.Product {
	env.T.Helper()
	product := &models.Product{Name: name, Description: "test product", Price: price}
	require.NoError(env.T, env.DB.Create(product).Error)
	return product
}

func requireHTTPError(t *testing.T, err error, code int) {
	t.Helper()
	var he *echo.HTTPError
	require.ErrorAs(t, err, &he)
	require.Equal(t, code, he.Code)
}
