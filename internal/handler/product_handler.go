package handler

import (
	"net/http"
	"strconv"

	"tienda/internal/domain/model"
	"tienda/internal/events"
	"tienda/internal/usecase"

	"github.com/labstack/echo/v4"
)

type ErrorResponse struct {
	Error string `json:"error"`
	Kind  string `json:"kind,omitempty"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

// writeError maps error kinds to HTTP statuses. Anything untyped is a 500.
func writeError(c echo.Context, err error) error {
	if err == nil {
		return nil
	}
	if e, ok := usecase.AsError(err); ok {
		return c.JSON(statusForKind(e.Kind), ErrorResponse{Error: e.Message, Kind: string(e.Kind)})
	}

	return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
}

func statusForKind(kind usecase.Kind) int {
	switch kind {
	case usecase.KindNotFound,
		usecase.KindProductNotFound,
		usecase.KindCartNotFound,
		usecase.KindLineNotFound:
		return http.StatusNotFound
	case usecase.KindValidation,
		usecase.KindDuplicateCode,
		usecase.KindAlreadyDeleted,
		usecase.KindInvalidQuantity,
		usecase.KindInactiveProduct,
		usecase.KindPageOutOfRange:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func invalidInput(c echo.Context, msg string) error {
	return c.JSON(http.StatusBadRequest, ErrorResponse{Error: msg, Kind: string(usecase.KindValidation)})
}

// /api/products
type ProductHandler struct {
	uc     *usecase.ProductUsecase
	events events.Publisher
}

// DI
func NewProductHandler(uc *usecase.ProductUsecase, pub events.Publisher) *ProductHandler {
	return &ProductHandler{uc: uc, events: pub}
}

func (h *ProductHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/api/products")
	g.GET("", h.list)
	g.GET("/categories", h.categories)
	g.GET("/:pid", h.detail)
	g.POST("", h.create)
	g.PUT("/:pid", h.update)
	g.DELETE("/:pid", h.remove)
}

func (h *ProductHandler) list(c echo.Context) error {
	page := 0
	if v := c.QueryParam("page"); v != "" {
		p, err := strconv.Atoi(v)
		if err != nil {
			return invalidInput(c, "invalid page")
		}
		page = p
	}

	limit := 0
	if v := c.QueryParam("limit"); v != "" {
		l, err := strconv.Atoi(v)
		if err != nil {
			return invalidInput(c, "invalid limit")
		}
		limit = l
	}

	out, err := h.uc.Query(c.Request().Context(), usecase.QueryInput{
		Filter: c.QueryParam("query"),
		Sort:   c.QueryParam("sort"),
		Page:   page,
		Limit:  limit,
	})
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, out)
}

func (h *ProductHandler) categories(c echo.Context) error {
	return c.JSON(http.StatusOK, model.Categories())
}

func (h *ProductHandler) detail(c echo.Context) error {
	pid, ok := parseProductID(c)
	if !ok {
		return invalidInput(c, "invalid product id")
	}

	p, err := h.uc.Get(c.Request().Context(), pid)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, p)
}

func (h *ProductHandler) create(c echo.Context) error {
	var in usecase.CreateProductInput
	if err := c.Bind(&in); err != nil {
		return invalidInput(c, "invalid body")
	}

	p, err := h.uc.Create(c.Request().Context(), in)
	if err != nil {
		return writeError(c, err)
	}

	events.Emit(h.events, events.ActionCreated, p.ID)
	return c.JSON(http.StatusCreated, p)
}

func (h *ProductHandler) update(c echo.Context) error {
	pid, ok := parseProductID(c)
	if !ok {
		return invalidInput(c, "invalid product id")
	}

	var in usecase.UpdateProductInput
	if err := c.Bind(&in); err != nil {
		return invalidInput(c, "invalid body")
	}

	p, err := h.uc.Update(c.Request().Context(), pid, in)
	if err != nil {
		return writeError(c, err)
	}

	events.Emit(h.events, events.ActionUpdated, p.ID)
	return c.JSON(http.StatusOK, p)
}

func (h *ProductHandler) remove(c echo.Context) error {
	pid, ok := parseProductID(c)
	if !ok {
		return invalidInput(c, "invalid product id")
	}

	p, err := h.uc.Delete(c.Request().Context(), pid)
	if err != nil {
		return writeError(c, err)
	}

	events.Emit(h.events, events.ActionDeleted, p.ID)
	return c.JSON(http.StatusOK, MessageResponse{Message: "product " + strconv.FormatInt(p.ID, 10) + " deleted"})
}

// Product ids are positive int64s; anything else is rejected before the
// core sees it.
func parseProductID(c echo.Context) (int64, bool) {
	pid, err := strconv.ParseInt(c.Param("pid"), 10, 64)
	if err != nil || pid <= 0 {
		return 0, false
	}
	return pid, true
}
