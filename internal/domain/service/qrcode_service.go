package service

import "campuseats/internal/domain/entity"

// PaymentQRService renders the manual payment step for an order.
type PaymentQRService interface {
	// PaymentURI returns the UPI deep link encoded in the QR code.
	PaymentURI(order *entity.Order) string

	// GeneratePaymentQR returns a PNG QR code for the order's payment URI.
	GeneratePaymentQR(order *entity.Order) ([]byte, error)
}
