package response

import (
	"errors"
	"net/http"

	domainErrors "github.com/donbacco/pos-service/internal/domain/errors"
)

type ErrorMapping struct {
	HTTPStatus int
	Status     Status
	Message    string
}

var errorMappings = map[error]ErrorMapping{
	domainErrors.ErrProductNotFound: {
		HTTPStatus: http.StatusNotFound,
		Status:     StatusNotFound,
		Message:    "Product not found",
	},
	domainErrors.ErrLineNotFound: {
		HTTPStatus: http.StatusNotFound,
		Status:     StatusNotFound,
		Message:    "Product not in cart",
	},
	domainErrors.ErrProductOutOfStock: {
		HTTPStatus: http.StatusConflict,
		Status:     StatusConflict,
		Message:    "Product has no stock available",
	},
	domainErrors.ErrSaleNotFound: {
		HTTPStatus: http.StatusNotFound,
		Status:     StatusNotFound,
		Message:    "Sale not found",
	},
	domainErrors.ErrUnknownPaymentMethod: {
		HTTPStatus: http.StatusBadRequest,
		Status:     StatusValidationError,
		Message:    "Unknown payment method",
	},
	domainErrors.ErrUnknownCategory: {
		HTTPStatus: http.StatusBadRequest,
		Status:     StatusValidationError,
		Message:    "Unknown product category",
	},
	domainErrors.ErrCheckoutInProgress: {
		HTTPStatus: http.StatusConflict,
		Status:     StatusConflict,
		Message:    "Another checkout is already validating",
	},
	domainErrors.ErrUnknownProduct: {
		HTTPStatus: http.StatusConflict,
		Status:     StatusConflict,
		Message:    "Sold line references a product missing from the catalog",
	},
	domainErrors.ErrInsufficientStock: {
		HTTPStatus: http.StatusConflict,
		Status:     StatusConflict,
		Message:    "Sold quantity exceeds available stock",
	},
	domainErrors.ErrSaleIDCollision: {
		HTTPStatus: http.StatusConflict,
		Status:     StatusConflict,
		Message:    "Sale id already present in ledger",
	},
}

func MapDomainError(err error) (int, *ErrorResponse) {
	for domainErr, mapping := range errorMappings {
		if errors.Is(err, domainErr) {
			return mapping.HTTPStatus, &ErrorResponse{
				Status:  mapping.Status,
				Message: mapping.Message,
			}
		}
	}

	return http.StatusInternalServerError, &ErrorResponse{
		Status:  StatusInternalError,
		Message: "Internal server error",
	}
}

func WriteDomainError(w http.ResponseWriter, err error) {
	statusCode, resp := MapDomainError(err)
	WriteJSON(w, statusCode, resp)
}
