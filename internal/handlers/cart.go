package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/ecommerce_backend/internal/logging"
	"github.com/Skotchmaster/ecommerce_backend/internal/mykafka"
	"github.com/Skotchmaster/ecommerce_backend/internal/service/cart"
)

type CartHandler struct {
	Svc      *cart.Service
	Producer *mykafka.Producer
}

func (h *CartHandler) AddToCart(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "add_to_cart")

	var req struct {
		UserID    string `json:"user_id" validate:"required"`
		ProductID string `json:"product_id" validate:"required"`
		Quantity  int    `json:"quantity"`
	}
	if err := c.Bind(&req); err != nil {
		l.Warn("add_to_cart_error", "status", 400, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	if err := c.Validate(&req); err != nil {
		l.Warn("add_to_cart_error", "status", 400, "error", err)
		return err
	}

	line, err := h.Svc.AddToCart(ctx, req.UserID, req.ProductID, req.Quantity)
	if err != nil {
		switch {
		case errors.Is(err, cart.ErrUserNotFound):
			return echo.NewHTTPError(http.StatusNotFound, "User not found")
		case errors.Is(err, cart.ErrProductNotFound):
			return echo.NewHTTPError(http.StatusNotFound, "Product not found")
		case errors.Is(err, cart.ErrInvalidQuantity):
			return echo.NewHTTPError(http.StatusBadRequest, "Quantity must be at least 1")
		}
		l.Error("add_to_cart_failed", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	publish(c, h.Producer, "cart_events", req.UserID, map[string]interface{}{
		"type":      "cart_item_added",
		"userID":    req.UserID,
		"productID": req.ProductID,
		"lineID":    line.ID,
		"quantity":  req.Quantity,
	})

	return c.JSON(http.StatusOK, echo.Map{
		"message": fmt.Sprintf("%d item(s) added to cart", req.Quantity),
	})
}

func (h *CartHandler) GetCart(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "get_cart")

	lines, err := h.Svc.GetCart(ctx, c.Param("user_id"))
	if err != nil {
		if errors.Is(err, cart.ErrBadUserID) {
			return echo.NewHTTPError(http.StatusBadRequest, "Invalid user ID format")
		}
		l.Error("get_cart_error", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	return c.JSON(http.StatusOK, echo.Map{"cart_items": lines})
}

func (h *CartHandler) Checkout(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "checkout")

	userID := c.Param("user_id")
	result, err := h.Svc.Checkout(ctx, userID)
	if err != nil {
		switch {
		case errors.Is(err, cart.ErrBadUserID):
			return echo.NewHTTPError(http.StatusBadRequest, "Invalid user ID format")
		case errors.Is(err, cart.ErrEmptyCart):
			return echo.NewHTTPError(http.StatusNotFound, "No items in cart")
		}
		l.Error("checkout_error", "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	publish(c, h.Producer, "cart_events", userID, map[string]interface{}{
		"type":   "checkout",
		"userID": userID,
		"total":  result.Total,
		"items":  len(result.Items),
	})

	return c.JSON(http.StatusOK, result)
}
