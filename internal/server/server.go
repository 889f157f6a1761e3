package server

import (
	"tienda/internal/handler"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

// New assembles the Echo instance with middleware and all routes. Kept
// separate from Start so tests can drive it with httptest.
func New(productH *handler.ProductHandler, cartH *handler.CartHandler) *echo.Echo {
	e := echo.New()
	e.HideBanner = true

	e.Use(middleware.RequestID())
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())

	RegisterRoutes(e, productH, cartH)
	return e
}

func Start(e *echo.Echo, addr string) error {
	return e.Start(addr)
}
