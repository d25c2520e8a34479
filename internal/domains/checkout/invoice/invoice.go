// Package invoice renders a booking invoice as HTML. It reads no state and writes none.
package invoice

import (
	"bytes"
	_ "embed"
	"fmt"
	"html/template"
	settingsModel "hotelier/internal/domains/settings/model"

	"github.com/shopspring/decimal"
)

const amountPlaces = 2

//go:embed invoice.html.tmpl
var source string

var page = template.Must(template.New("invoice").Parse(source))

type Stay struct {
	Resource string
	CheckIn  string
	CheckOut string
	Status   string
}

type Payment struct {
	Method  string
	Date    string
	Amount  string
	Deposit bool
}

type Data struct {
	Number        string
	IssuedAt      string
	GuestName     string
	GuestPhone    string
	BookingType   string
	CheckIn       string
	CheckOut      string
	Adults        int
	Kids          int
	Stays         []Stay
	Payments      []Payment
	Total         string
	Extra         string
	GrandTotal    string
	Paid          string
	Balance       string
	PaymentStatus string
}

type view struct {
	Data
	Hotel settingsModel.AppConfig
}

// Amount formats a decimal the way invoices print money.
func Amount(value decimal.Decimal) string {
	return value.StringFixed(amountPlaces)
}

func Number(bookingID int64) string {
	return fmt.Sprintf("INV-%06d", bookingID)
}

func Render(hotel settingsModel.AppConfig, data Data) (string, error) {
	var buf bytes.Buffer

	if err := page.Execute(&buf, view{Data: data, Hotel: hotel}); err != nil {
		return "", fmt.Errorf("failed to render invoice: %w", err)
	}

	return buf.String(), nil
}
