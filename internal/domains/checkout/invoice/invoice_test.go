package invoice_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hotelier/internal/domains/checkout/invoice"
	settingsModel "hotelier/internal/domains/settings/model"
)

func TestRender(t *testing.T) {
	hotel := settingsModel.AppConfig{HotelName: "Seaside <Inn>", CurrencySymbol: "Rs"}
	data := invoice.Data{
		Number:    invoice.Number(12),
		GuestName: "Ayesha Khan",
		Stays:     []invoice.Stay{{Resource: "room 101", Status: "checked_out"}},
		Payments: []invoice.Payment{
			{Method: "cash", Amount: invoice.Amount(decimal.NewFromInt(50)), Deposit: true},
			{Method: "card", Amount: invoice.Amount(decimal.NewFromInt(170))},
		},
		Total:         invoice.Amount(decimal.NewFromInt(200)),
		Extra:         invoice.Amount(decimal.NewFromInt(20)),
		GrandTotal:    invoice.Amount(decimal.NewFromInt(220)),
		Paid:          invoice.Amount(decimal.NewFromInt(220)),
		Balance:       invoice.Amount(decimal.Zero),
		PaymentStatus: "success",
	}

	html, err := invoice.Render(hotel, data)

	require.NoError(t, err)
	assert.Contains(t, html, "INV-000012")
	assert.Contains(t, html, "Seaside &lt;Inn&gt;")
	assert.Contains(t, html, "Security deposit")
	assert.Contains(t, html, "Rs200.00")
	assert.Contains(t, html, "<td>Extra charges</td><td class=\"amount\">Rs20.00</td>")
	assert.Contains(t, html, "<td><strong>Grand total</strong></td><td class=\"amount\"><strong>Rs220.00</strong></td>")
	assert.Contains(t, html, "room 101")
	assert.NotContains(t, html, "No resource assigned")
}

func TestRender_NoStays(t *testing.T) {
	html, err := invoice.Render(settingsModel.AppConfig{HotelName: "Hotel", CurrencySymbol: "$"}, invoice.Data{Number: invoice.Number(1)})

	require.NoError(t, err)
	assert.Contains(t, html, "No resource assigned")
}
