package cart

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Skotchmaster/ecommerce_backend/internal/logging"
	"github.com/Skotchmaster/ecommerce_backend/internal/models"
	"github.com/Skotchmaster/ecommerce_backend/internal/repo"
)

var (
	ErrUserNotFound    = errors.New("user not found")
	ErrProductNotFound = errors.New("product not found")
	ErrInvalidQuantity = errors.New("quantity must be at least 1")
	ErrEmptyCart       = errors.New("no items in cart")
	ErrBadUserID       = errors.New("invalid user id")
)

type Service struct {
	Repo *repo.GormRepo
}

// Line is one cart entry joined with its product.
type Line struct {
	ID        string       `json:"id"`
	ProductID string       `json:"product_id"`
	Name      string       `json:"name"`
	Price     models.Cents `json:"price"`
	Quantity  uint         `json:"quantity"`
}

type CheckoutItem struct {
	ProductID string       `json:"product_id"`
	Name      string       `json:"name"`
	Price     models.Cents `json:"price"`
	Quantity  uint         `json:"quantity"`
	Subtotal  models.Cents `json:"subtotal"`
}

type CheckoutResult struct {
	Items []CheckoutItem `json:"cart_items"`
	Total models.Cents   `json:"total"`
}

// AddToCart increments the (user, product) line by quantity, creating it on
// first add. Preconditions are checked in order: user, product, quantity.
func (s *Service) AddToCart(ctx context.Context, userID, productID string, quantity int) (*models.CartLine, error) {
	l := logging.FromContext(ctx).With("svc", "cart.add")

	if err := s.userExists(ctx, userID); err != nil {
		return nil, err
	}
	if err := s.productExists(ctx, productID); err != nil {
		return nil, err
	}
	if quantity < 1 {
		return nil, ErrInvalidQuantity
	}

	line := &models.CartLine{
		UserID:    userID,
		ProductID: productID,
		Quantity:  uint(quantity),
	}
	if err := s.Repo.UpsertCartLine(ctx, line); err != nil {
		return nil, err
	}

	l.Info("cart_item_added", "userID", userID, "productID", productID, "quantity", quantity)
	return line, nil
}

// GetCart joins the user's lines against the product collection. The user id
// only has to be well formed: an unknown user simply has an empty cart.
// Lines whose product no longer resolves are left out of the result.
func (s *Service) GetCart(ctx context.Context, userID string) ([]Line, error) {
	if _, err := uuid.Parse(userID); err != nil {
		return nil, ErrBadUserID
	}

	items, err := s.Repo.CartLines(ctx, userID)
	if err != nil {
		return nil, err
	}

	lines := make([]Line, 0, len(items))
	for _, item := range items {
		product, err := s.resolveProduct(ctx, item)
		if err != nil {
			return nil, err
		}
		if product == nil {
			continue
		}
		lines = append(lines, Line{
			ID:        item.ID,
			ProductID: product.ID,
			Name:      product.Name,
			Price:     product.Price,
			Quantity:  item.Quantity,
		})
	}
	return lines, nil
}

// Checkout computes the itemized total from current cart lines and live
// product prices. Read only: the cart is not cleared and no order is written.
func (s *Service) Checkout(ctx context.Context, userID string) (*CheckoutResult, error) {
	if _, err := uuid.Parse(userID); err != nil {
		return nil, ErrBadUserID
	}

	items, err := s.Repo.CartLines(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, ErrEmptyCart
	}

	result := &CheckoutResult{Items: make([]CheckoutItem, 0, len(items))}
	for _, item := range items {
		product, err := s.resolveProduct(ctx, item)
		if err != nil {
			return nil, err
		}
		if product == nil {
			continue
		}

		subtotal := product.Price * models.Cents(item.Quantity)
		result.Total += subtotal
		result.Items = append(result.Items, CheckoutItem{
			ProductID: product.ID,
			Name:      product.Name,
			Price:     product.Price,
			Quantity:  item.Quantity,
			Subtotal:  subtotal,
		})
	}
	return result, nil
}

// resolveProduct returns nil without error for a stale reference, so callers
// can drop the line and keep going.
func (s *Service) resolveProduct(ctx context.Context, item models.CartLine) (*models.Product, error) {
	product, err := s.Repo.GetProduct(ctx, item.ProductID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logging.FromContext(ctx).Debug("cart_line_skipped", "lineID", item.ID, "productID", item.ProductID)
			return nil, nil
		}
		return nil, err
	}
	return product, nil
}

func (s *Service) userExists(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return ErrUserNotFound
	}
	if _, err := s.Repo.GetUser(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return err
	}
	return nil
}

func (s *Service) productExists(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return ErrProductNotFound
	}
	if _, err := s.Repo.GetProduct(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrProductNotFound
		}
		return err
	}
	return nil
}
