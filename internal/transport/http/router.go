package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/Skotchmaster/ecommerce_backend/internal/handlers"
)

type Deps struct {
	DB             *gorm.DB
	ProductHandler *handlers.ProductHandler
	AuthHandler    *handlers.AuthHandler
	CartHandler    *handlers.CartHandler
	SearchHandler  *handlers.SearchHandler
}

func Register(e *echo.Echo, d *Deps) {
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(200) })
	e.GET("/health/ready", func(c echo.Context) error { return c.NoContent(200) })

	e.GET("/", func(c echo.Context) error {
		return c.JSON(http.StatusOK, echo.Map{"message": "Welcome to our ecommerce site"})
	})

	e.GET("/products", d.ProductHandler.GetProducts)
	e.POST("/products", d.ProductHandler.CreateProduct)
	e.GET("/products/search", d.SearchHandler.Search)
	e.GET("/products/:id", d.ProductHandler.GetProduct)

	e.GET("/users", d.AuthHandler.GetUsers)
	e.POST("/register", d.AuthHandler.Register)
	e.POST("/login", d.AuthHandler.Login)

	e.POST("/cart", d.CartHandler.AddToCart)
	e.GET("/cart/:user_id", d.CartHandler.GetCart)
	e.POST("/checkout/:user_id", d.CartHandler.Checkout)
}
