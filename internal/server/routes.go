package server

import (
	"net/http"

	"tienda/internal/handler"

	"github.com/labstack/echo/v4"
)

func RegisterRoutes(e *echo.Echo, productH *handler.ProductHandler, cartH *handler.CartHandler) {
	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	productH.RegisterRoutes(e)
	cartH.RegisterRoutes(e)
}
