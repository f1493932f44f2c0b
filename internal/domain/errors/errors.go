package errors

import (
	"errors"
)

var (
	ErrProductNotFound   = errors.New("product not found in catalog")
	ErrLineNotFound      = errors.New("product not in cart")
	ErrProductOutOfStock = errors.New("product has no stock available")

	ErrUnknownPaymentMethod = errors.New("unknown payment method")
	ErrUnknownCategory      = errors.New("unknown product category")

	ErrCheckoutInProgress = errors.New("another checkout is already validating")

	ErrUnknownProduct    = errors.New("sold line references a product missing from the catalog")
	ErrInsufficientStock = errors.New("sold quantity exceeds available stock")
	ErrSaleIDCollision   = errors.New("sale id already present in ledger")
	ErrSaleNotFound      = errors.New("sale not found")

	ErrFormattingDegraded = errors.New("document rendering failed, plain-text summary only")
)
