package sale

import (
	domainErrors "github.com/donbacco/pos-service/internal/domain/errors"
)

type PaymentMethod int

const (
	PaymentCash PaymentMethod = iota
	PaymentCard
	PaymentTransfer
	PaymentMobileWallet
)

var paymentNames = map[PaymentMethod]string{
	PaymentCash:         "Efectivo",
	PaymentCard:         "Tarjeta",
	PaymentTransfer:     "Transferencia",
	PaymentMobileWallet: "Yape/Plin",
}

var paymentsByName = map[string]PaymentMethod{
	"Efectivo":      PaymentCash,
	"Tarjeta":       PaymentCard,
	"Transferencia": PaymentTransfer,
	"Yape/Plin":     PaymentMobileWallet,
}

func (m PaymentMethod) String() string {
	if name, ok := paymentNames[m]; ok {
		return name
	}
	return "Efectivo"
}

// RequiresTender reports whether the method collects cash up front. Only cash
// does; every other method bypasses tender entry and validation entirely.
func (m PaymentMethod) RequiresTender() bool {
	return m == PaymentCash
}

// ParsePaymentMethod resolves the display name at the boundary, keeping
// string-keyed dispatch out of the core.
func ParsePaymentMethod(name string) (PaymentMethod, error) {
	if m, ok := paymentsByName[name]; ok {
		return m, nil
	}
	return PaymentCash, domainErrors.ErrUnknownPaymentMethod
}
