package handler

import (
	"net/http"

	"tienda/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// /api/carts
type CartHandler struct {
	uc *usecase.CartUsecase
}

// DI
func NewCartHandler(uc *usecase.CartUsecase) *CartHandler {
	return &CartHandler{uc: uc}
}

type AddProductRequest struct {
	Quantity *int64 `json:"quantity"`
}

type UpdateLineRequest struct {
	Quantity int64 `json:"quantity"`
}

type ReplaceCartRequest struct {
	Products []usecase.LineInput `json:"products"`
}

func (h *CartHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/api/carts")
	g.POST("", h.create)
	g.GET("/:cid", h.get)
	g.PUT("/:cid", h.replace)
	g.DELETE("/:cid", h.clear)
	g.POST("/:cid/products/:pid", h.addProduct)
	g.PUT("/:cid/products/:pid", h.updateLine)
	g.DELETE("/:cid/products/:pid", h.removeLine)
}

func (h *CartHandler) create(c echo.Context) error {
	out, err := h.uc.CreateCart(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusCreated, out)
}

func (h *CartHandler) get(c echo.Context) error {
	cid, ok := parseCartID(c)
	if !ok {
		return invalidInput(c, "invalid cart id")
	}

	out, err := h.uc.GetCart(c.Request().Context(), cid)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, out)
}

func (h *CartHandler) addProduct(c echo.Context) error {
	cid, ok := parseCartID(c)
	if !ok {
		return invalidInput(c, "invalid cart id")
	}
	pid, ok := parseProductID(c)
	if !ok {
		return invalidInput(c, "invalid product id")
	}

	// Body is optional; a bare POST adds one unit.
	qty := int64(1)
	var req AddProductRequest
	if err := c.Bind(&req); err != nil {
		return invalidInput(c, "invalid body")
	}
	if req.Quantity != nil {
		qty = *req.Quantity
	}

	out, err := h.uc.AddProduct(c.Request().Context(), cid, pid, qty)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, out)
}

func (h *CartHandler) updateLine(c echo.Context) error {
	cid, ok := parseCartID(c)
	if !ok {
		return invalidInput(c, "invalid cart id")
	}
	pid, ok := parseProductID(c)
	if !ok {
		return invalidInput(c, "invalid product id")
	}

	var req UpdateLineRequest
	if err := c.Bind(&req); err != nil {
		return invalidInput(c, "invalid body")
	}

	out, err := h.uc.UpdateQuantity(c.Request().Context(), cid, pid, req.Quantity)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, out)
}

func (h *CartHandler) removeLine(c echo.Context) error {
	cid, ok := parseCartID(c)
	if !ok {
		return invalidInput(c, "invalid cart id")
	}
	pid, ok := parseProductID(c)
	if !ok {
		return invalidInput(c, "invalid product id")
	}

	out, err := h.uc.RemoveProduct(c.Request().Context(), cid, pid)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, out)
}

func (h *CartHandler) clear(c echo.Context) error {
	cid, ok := parseCartID(c)
	if !ok {
		return invalidInput(c, "invalid cart id")
	}

	out, err := h.uc.ClearCart(c.Request().Context(), cid)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, out)
}

func (h *CartHandler) replace(c echo.Context) error {
	cid, ok := parseCartID(c)
	if !ok {
		return invalidInput(c, "invalid cart id")
	}

	var req ReplaceCartRequest
	if err := c.Bind(&req); err != nil {
		return invalidInput(c, "invalid body")
	}

	out, err := h.uc.ReplaceAll(c.Request().Context(), cid, req.Products)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, out)
}

// Cart ids are UUIDs; syntax is checked here so the core only ever sees
// well-formed ids.
func parseCartID(c echo.Context) (string, bool) {
	cid := c.Param("cid")
	if _, err := uuid.Parse(cid); err != nil {
		return "", false
	}
	return cid, true
}
