package Invoice

import (
	"bytes"
	"fmt"

	"Nova/Models"

	"github.com/jung-kurt/gofpdf"
)

// Line is one printable invoice row.
type Line struct {
	Product   string
	Qty       int
	UnitPrice float64
	Total     float64
}

// Lines flattens a bill's items into printable rows.
func Lines(bill *Models.Bill) []Line {
	lines := make([]Line, 0, len(bill.Items))
	for _, item := range bill.Items {
		lines = append(lines, Line{
			Product:   item.Product.Name,
			Qty:       item.Qty,
			UnitPrice: item.Price,
			Total:     float64(item.Qty) * item.Price,
		})
	}
	return lines
}

// Render produces the invoice PDF for a paid bill.
func Render(bill *Models.Bill) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Invoice "+bill.BillID, false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, "Invoice")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 10)
	pdf.Cell(0, 6, "Bill No: "+bill.BillID)
	pdf.Ln(6)
	pdf.Cell(0, 6, "Date: "+bill.CreatedAt.Format("02 Jan 2006 15:04"))
	pdf.Ln(6)
	if bill.Customer != nil {
		pdf.Cell(0, 6, "Customer: "+bill.Customer.Name)
		pdf.Ln(6)
		if bill.Customer.ContactNumber != "" {
			pdf.Cell(0, 6, "Contact: "+bill.Customer.ContactNumber)
			pdf.Ln(6)
		}
	}
	if bill.Cashier.ID != 0 {
		pdf.Cell(0, 6, "Served by: "+bill.Cashier.FirstName+" "+bill.Cashier.LastName)
		pdf.Ln(6)
	}
	pdf.Ln(4)

	// Items table
	pdf.SetFont("Helvetica", "B", 10)
	pdf.SetFillColor(230, 230, 230)
	pdf.CellFormat(90, 8, "Item", "1", 0, "L", true, 0, "")
	pdf.CellFormat(25, 8, "Qty", "1", 0, "R", true, 0, "")
	pdf.CellFormat(35, 8, "Unit Price", "1", 0, "R", true, 0, "")
	pdf.CellFormat(40, 8, "Amount", "1", 1, "R", true, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	for _, line := range Lines(bill) {
		pdf.CellFormat(90, 8, line.Product, "1", 0, "L", false, 0, "")
		pdf.CellFormat(25, 8, fmt.Sprintf("%d", line.Qty), "1", 0, "R", false, 0, "")
		pdf.CellFormat(35, 8, fmt.Sprintf("%.2f", line.UnitPrice), "1", 0, "R", false, 0, "")
		pdf.CellFormat(40, 8, fmt.Sprintf("%.2f", line.Total), "1", 1, "R", false, 0, "")
	}

	// Totals block, right aligned under the table
	writeTotal := func(label string, value float64, bold bool) {
		style := ""
		if bold {
			style = "B"
		}
		pdf.SetFont("Helvetica", style, 10)
		pdf.CellFormat(115, 7, "", "", 0, "", false, 0, "")
		pdf.CellFormat(35, 7, label, "", 0, "R", false, 0, "")
		pdf.CellFormat(40, 7, fmt.Sprintf("%.2f", value), "", 1, "R", false, 0, "")
	}
	pdf.Ln(2)
	writeTotal("Subtotal", bill.Subtotal, false)
	writeTotal("Tax", bill.Tax, false)
	if bill.Discount > 0 {
		writeTotal("Discount", -bill.Discount, false)
	}
	writeTotal("Total", bill.Total, true)

	pdf.Ln(6)
	pdf.SetFont("Helvetica", "", 9)
	method := bill.PaymentMethod
	if method == "" {
		method = "cash"
	}
	pdf.Cell(0, 6, fmt.Sprintf("Paid via %s", method))
	pdf.Ln(10)
	pdf.SetFont("Helvetica", "I", 9)
	pdf.Cell(0, 6, "Thank you for your business.")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
