package Invoice

import (
	"testing"
	"time"

	"Nova/Models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func sampleBill() *Models.Bill {
	return &Models.Bill{
		Model:         gorm.Model{ID: 1, CreatedAt: time.Date(2026, 8, 14, 12, 30, 0, 0, time.UTC)},
		BillID:        "BILL-20260814123000-a1b2c3",
		Subtotal:      150,
		Tax:           15,
		Discount:      5,
		Total:         160,
		PaymentStatus: Models.PaymentStatusPaid,
		PaymentMethod: "card",
		Cashier:       Models.User{Model: gorm.Model{ID: 2}, FirstName: "Priya", LastName: "K"},
		Customer:      &Models.Customer{Name: "Asha", ContactNumber: "9000000001"},
		Items: []Models.BillItem{
			{Qty: 2, Price: 50, Product: Models.Product{Name: "Cola 500ml"}},
			{Qty: 1, Price: 50, Product: Models.Product{Name: "Chips"}},
		},
	}
}

func TestLines(t *testing.T) {
	lines := Lines(sampleBill())
	require.Len(t, lines, 2)
	assert.Equal(t, "Cola 500ml", lines[0].Product)
	assert.Equal(t, 100.0, lines[0].Total)
	assert.Equal(t, 50.0, lines[1].Total)
}

func TestRenderProducesPDF(t *testing.T) {
	out, err := Render(sampleBill())
	require.NoError(t, err)
	require.NotEmpty(t, out)
	assert.Equal(t, "%PDF", string(out[:4]))
}
