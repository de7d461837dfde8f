// Package payqr renders payment QR codes. The payload is a Short Payment
// Descriptor (SPAYD) string; building it is a pure function of the account
// reference, amount, and message, and rendering is delegated to go-qrcode.
package payqr

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/skip2/go-qrcode"
)

// Payload carries everything that ends up inside the QR code.
type Payload struct {
	Account        string
	Amount         decimal.Decimal
	Currency       string
	VariableSymbol string
	Message        string
}

// String encodes the payload in SPAYD format
// (SPD*1.0*ACC:...*AM:...*CC:...*X-VS:...*MSG:...).
func (p Payload) String() string {
	var b strings.Builder

	b.WriteString("SPD*1.0")
	b.WriteString("*ACC:" + sanitize(p.Account))
	b.WriteString("*AM:" + p.Amount.StringFixed(2))
	b.WriteString("*CC:" + sanitize(strings.ToUpper(p.Currency)))

	if p.VariableSymbol != "" {
		b.WriteString("*X-VS:" + sanitize(p.VariableSymbol))
	}

	if p.Message != "" {
		b.WriteString("*MSG:" + sanitize(p.Message))
	}

	return b.String()
}

// PNG renders the payload as a QR code image.
func PNG(p Payload) ([]byte, error) {
	png, err := qrcode.Encode(p.String(), qrcode.Medium, 256)
	if err != nil {
		return nil, fmt.Errorf("encoding payment qr: %w", err)
	}

	return png, nil
}

// sanitize strips the SPAYD field separator from free-text values.
func sanitize(s string) string {
	return strings.ReplaceAll(s, "*", " ")
}
