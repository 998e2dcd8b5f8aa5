package cart

import (
	"context"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/Skotchmaster/ecommerce_backend/internal/models"
	"github.com/Skotchmaster/ecommerce_backend/internal/repo"
)

func newTestService(t *testing.T) *Service {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Product{}, &models.User{}, &models.CartLine{}))

	return &Service{Repo: &repo.GormRepo{DB: db}}
}

func seedUser(t *testing.T, svc *Service) *models.User {
	t.Helper()

	user := &models.User{Email: "shopper@example.com", Password: "secret"}
	require.NoError(t, svc.Repo.DB.Create(user).Error)
	return user
}

func seedProduct(t *testing.T, svc *Service, price models.Cents) *models.Product {
	t.Helper()

	product := &models.Product{
		Name:        "mug",
		Description: "ceramic mug",
		Price:       price,
		Image:       "https://example.com/mug.png",
	}
	require.NoError(t, svc.Repo.DB.Create(product).Error)
	return product
}

func countLines(t *testing.T, svc *Service) int64 {
	t.Helper()

	var n int64
	require.NoError(t, svc.Repo.DB.Model(&models.CartLine{}).Count(&n).Error)
	return n
}

func TestAddToCartAccumulates(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	user := seedUser(t, svc)
	product := seedProduct(t, svc, 999)

	_, err := svc.AddToCart(ctx, user.ID, product.ID, 2)
	require.NoError(t, err)
	_, err = svc.AddToCart(ctx, user.ID, product.ID, 3)
	require.NoError(t, err)

	require.EqualValues(t, 1, countLines(t, svc))

	var line models.CartLine
	require.NoError(t, svc.Repo.DB.Where("user_id = ?", user.ID).First(&line).Error)
	require.EqualValues(t, 5, line.Quantity)
	require.Equal(t, product.ID, line.ProductID)
}

func TestAddToCartRejectsNonPositiveQuantity(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	user := seedUser(t, svc)
	product := seedProduct(t, svc, 999)

	for _, q := range []int{0, -3} {
		_, err := svc.AddToCart(ctx, user.ID, product.ID, q)
		require.ErrorIs(t, err, ErrInvalidQuantity)
	}
	require.EqualValues(t, 0, countLines(t, svc))
}

func TestAddToCartUnknownUser(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	product := seedProduct(t, svc, 999)

	_, err := svc.AddToCart(ctx, uuid.NewString(), product.ID, 1)
	require.ErrorIs(t, err, ErrUserNotFound)

	_, err = svc.AddToCart(ctx, "not-an-id", product.ID, 1)
	require.ErrorIs(t, err, ErrUserNotFound)
}

func TestAddToCartUnknownProduct(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	user := seedUser(t, svc)

	_, err := svc.AddToCart(ctx, user.ID, uuid.NewString(), 2)
	require.ErrorIs(t, err, ErrProductNotFound)
	require.EqualValues(t, 0, countLines(t, svc))
}

func TestAddToCartChecksProductBeforeQuantity(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	user := seedUser(t, svc)

	_, err := svc.AddToCart(ctx, user.ID, uuid.NewString(), 0)
	require.ErrorIs(t, err, ErrProductNotFound)
}

func TestGetCartUnknownUserIsEmpty(t *testing.T) {
	svc := newTestService(t)

	lines, err := svc.GetCart(context.Background(), uuid.NewString())
	require.NoError(t, err)
	require.Empty(t, lines)
}

func TestGetCartMalformedID(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.GetCart(context.Background(), "not-an-id")
	require.ErrorIs(t, err, ErrBadUserID)
}

func TestGetCartSkipsStaleLines(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	user := seedUser(t, svc)
	product := seedProduct(t, svc, 999)

	_, err := svc.AddToCart(ctx, user.ID, product.ID, 2)
	require.NoError(t, err)

	stale := &models.CartLine{UserID: user.ID, ProductID: uuid.NewString(), Quantity: 4}
	require.NoError(t, svc.Repo.DB.Create(stale).Error)

	lines, err := svc.GetCart(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, lines, 1)
	require.Equal(t, product.ID, lines[0].ProductID)
	require.Equal(t, product.Name, lines[0].Name)
	require.Equal(t, product.Price, lines[0].Price)
	require.EqualValues(t, 2, lines[0].Quantity)
}

func TestCheckoutEmptyCart(t *testing.T) {
	svc := newTestService(t)
	user := seedUser(t, svc)

	_, err := svc.Checkout(context.Background(), user.ID)
	require.ErrorIs(t, err, ErrEmptyCart)
}

func TestCheckoutMalformedID(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.Checkout(context.Background(), "not-an-id")
	require.ErrorIs(t, err, ErrBadUserID)
}

func TestCheckoutTotals(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	user := seedUser(t, svc)
	product := seedProduct(t, svc, 999) // 9.99

	_, err := svc.AddToCart(ctx, user.ID, product.ID, 2)
	require.NoError(t, err)
	_, err = svc.AddToCart(ctx, user.ID, product.ID, 3)
	require.NoError(t, err)

	result, err := svc.Checkout(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, result.Items, 1)
	require.Equal(t, product.ID, result.Items[0].ProductID)
	require.EqualValues(t, 5, result.Items[0].Quantity)
	require.Equal(t, models.Cents(4995), result.Items[0].Subtotal) // 49.95
	require.Equal(t, models.Cents(4995), result.Total)
}

func TestCheckoutSkipsStaleLines(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	user := seedUser(t, svc)
	product := seedProduct(t, svc, 500)

	_, err := svc.AddToCart(ctx, user.ID, product.ID, 2)
	require.NoError(t, err)

	stale := &models.CartLine{UserID: user.ID, ProductID: uuid.NewString(), Quantity: 7}
	require.NoError(t, svc.Repo.DB.Create(stale).Error)

	result, err := svc.Checkout(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, result.Items, 1)
	require.Equal(t, models.Cents(1000), result.Total)
}

func TestCheckoutIsReadOnly(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	user := seedUser(t, svc)
	product := seedProduct(t, svc, 500)

	_, err := svc.AddToCart(ctx, user.ID, product.ID, 2)
	require.NoError(t, err)

	_, err = svc.Checkout(ctx, user.ID)
	require.NoError(t, err)

	// The cart survives checkout untouched.
	require.EqualValues(t, 1, countLines(t, svc))
	result, err := svc.Checkout(ctx, user.ID)
	require.NoError(t, err)
	require.Equal(t, models.Cents(1000), result.Total)
}
