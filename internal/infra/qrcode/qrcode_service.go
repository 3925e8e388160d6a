package qrcode

import (
	"net/url"
	"strconv"

	"campuseats/config"
	"campuseats/internal/domain/entity"
	"campuseats/internal/domain/service"
	"campuseats/internal/errors"

	"github.com/skip2/go-qrcode"
)

const (
	defaultQRSize    = 256
	defaultPayeeName = "Campus Eats"
	upiCurrency      = "INR"
)

type paymentQRService struct {
	vpa                  string
	payeeName            string
	size                 int
	errorCorrectionLevel qrcode.RecoveryLevel
}

// NewPaymentQRService creates the payment QR service from the payment config section
func NewPaymentQRService(cfg *config.Config) (service.PaymentQRService, error) {
	if cfg.Payment == nil || cfg.Payment.VPA == "" {
		return nil, errors.New("payment.vpa must be configured")
	}

	return NewQRCodeService(cfg.Payment.VPA, cfg.Payment.PayeeName, cfg.Payment.QRSize, cfg.Payment.ErrorCorrectionLevel), nil
}

// NewQRCodeService creates a new QR code service instance
func NewQRCodeService(vpa, payeeName string, size int, errorCorrectionLevel string) service.PaymentQRService {
	// Set error correction level
	var level qrcode.RecoveryLevel
	switch errorCorrectionLevel {
	case "L":
		level = qrcode.Low
	case "M":
		level = qrcode.Medium
	case "Q":
		level = qrcode.High
	case "H":
		level = qrcode.Highest
	default:
		level = qrcode.Medium
	}

	if size <= 0 {
		size = defaultQRSize
	}
	if payeeName == "" {
		payeeName = defaultPayeeName
	}

	return &paymentQRService{
		vpa:                  vpa,
		payeeName:            payeeName,
		size:                 size,
		errorCorrectionLevel: level,
	}
}

// PaymentURI builds the UPI deep link for the order total, noting the pickup token.
func (s *paymentQRService) PaymentURI(order *entity.Order) string {
	q := url.Values{}
	q.Set("pa", s.vpa)
	q.Set("pn", s.payeeName)
	q.Set("am", strconv.FormatInt(order.TotalAmount, 10)+".00")
	q.Set("cu", upiCurrency)
	q.Set("tn", "Order "+order.TokenNumber)

	return "upi://pay?" + q.Encode()
}

// GeneratePaymentQR renders the payment URI as a PNG
func (s *paymentQRService) GeneratePaymentQR(order *entity.Order) ([]byte, error) {
	qrCode, err := qrcode.New(s.PaymentURI(order), s.errorCorrectionLevel)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create QR code")
	}

	pngBytes, err := qrCode.PNG(s.size)
	if err != nil {
		return nil, errors.Wrap(err, "failed to generate PNG")
	}

	return pngBytes, nil
}
