package validator

import (
	"fmt"
	"strings"

	playground "github.com/go-playground/validator/v10"

	"tienda/internal/usecase"
)

type productValidator struct {
	v *playground.Validate
}

// NewProductValidator builds the struct-tag based validator the catalog
// usecase depends on.
func NewProductValidator() usecase.ProductValidator {
	return &productValidator{
		v: playground.New(playground.WithRequiredStructEnabled()),
	}
}

func (pv *productValidator) ValidateCreate(in usecase.CreateProductInput) error {
	if err := pv.v.Struct(in); err != nil {
		return usecase.NewError(usecase.KindValidation, describe(err))
	}
	return nil
}

func (pv *productValidator) ValidateUpdate(in usecase.UpdateProductInput) error {
	if err := pv.v.Struct(in); err != nil {
		return usecase.NewError(usecase.KindValidation, describe(err))
	}
	return nil
}

// describe flattens tag violations into one human-readable message.
func describe(err error) string {
	verrs, ok := err.(playground.ValidationErrors)
	if !ok {
		return "invalid input"
	}

	parts := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		field := strings.ToLower(fe.Field())
		switch fe.Tag() {
		case "required":
			parts = append(parts, fmt.Sprintf("%s is required", field))
		case "gte":
			parts = append(parts, fmt.Sprintf("%s must be >= %s", field, fe.Param()))
		case "min":
			parts = append(parts, fmt.Sprintf("%s must not be empty", field))
		case "oneof":
			parts = append(parts, fmt.Sprintf("%s must be one of: %s", field, fe.Param()))
		case "uri":
			parts = append(parts, fmt.Sprintf("%s must contain valid URLs", field))
		default:
			parts = append(parts, fmt.Sprintf("%s is invalid", field))
		}
	}
	return strings.Join(parts, "; ")
}
