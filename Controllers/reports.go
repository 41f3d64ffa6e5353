package Controllers

import (
	"fmt"
	"strconv"
	"time"

	"Nova/Models"

	"github.com/gofiber/fiber/v2"
	"github.com/xuri/excelize/v2"
	"golang.org/x/exp/slices"
	"gorm.io/gorm"
)

// ReportController handles read-only sales and stock reports
type ReportController struct {
	DB *gorm.DB
}

// NewReportController creates a new ReportController
func NewReportController(db *gorm.DB) *ReportController {
	return &ReportController{DB: db}
}

// Daily returns per-day sales totals for a date range.
// GET /api/reports/daily?start_date=2026-08-01&end_date=2026-08-31
func (c *ReportController) Daily(ctx *fiber.Ctx) error {
	type DailyRow struct {
		Date       string  `json:"date"`
		TotalSales float64 `json:"total_sales"`
		BillCount  int64   `json:"bill_count"`
	}

	now := time.Now()
	start := ctx.Query("start_date", now.Format("2006-01")+"-01")
	end := ctx.Query("end_date", now.Format("2006-01-02"))

	var rows []DailyRow
	err := c.DB.Raw(`
		SELECT
			DATE(created_at) as date,
			SUM(total) as total_sales,
			COUNT(id) as bill_count
		FROM bills
		WHERE deleted_at IS NULL
		AND DATE(created_at) BETWEEN ? AND ?
		GROUP BY DATE(created_at)
		ORDER BY date
	`, start, end).Scan(&rows).Error
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to build daily report"})
	}

	return ctx.JSON(rows)
}

// Monthly returns per-month sales totals for a year.
// GET /api/reports/monthly?year=2026
func (c *ReportController) Monthly(ctx *fiber.Ctx) error {
	type MonthlyRow struct {
		Month      string  `json:"month"`
		TotalSales float64 `json:"total_sales"`
		BillCount  int     `json:"bill_count"`
	}

	year, err := strconv.Atoi(ctx.Query("year", time.Now().Format("2006")))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "year must be a number"})
	}
	yearStart := time.Date(year, 1, 1, 0, 0, 0, 0, time.Local)

	// Query the year's bills and group them in Go rather than fighting with
	// SQL date formatting differences between sqlite and mysql.
	var bills []Models.Bill
	result := c.DB.Where("created_at >= ? AND created_at < ?",
		yearStart, yearStart.AddDate(1, 0, 0)).Find(&bills)
	if result.Error != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to build monthly report"})
	}

	summary := make(map[string]*MonthlyRow)
	for _, bill := range bills {
		key := bill.CreatedAt.Format("2006-01")
		row, exists := summary[key]
		if !exists {
			row = &MonthlyRow{Month: key}
			summary[key] = row
		}
		row.TotalSales += bill.Total
		row.BillCount++
	}

	response := make([]MonthlyRow, 0, len(summary))
	for _, row := range summary {
		response = append(response, *row)
	}
	slices.SortFunc(response, func(a, b MonthlyRow) int {
		if a.Month < b.Month {
			return -1
		}
		if a.Month > b.Month {
			return 1
		}
		return 0
	})

	return ctx.JSON(response)
}

// MostSold returns the ten best-selling products by quantity.
func (c *ReportController) MostSold(ctx *fiber.Ctx) error {
	type MostSoldRow struct {
		Product    string  `json:"product"`
		TotalQty   int64   `json:"total_qty"`
		TotalSales float64 `json:"total_sales"`
	}

	var rows []MostSoldRow
	err := c.DB.Raw(`
		SELECT
			p.name as product,
			SUM(bi.qty) as total_qty,
			SUM(bi.qty * bi.price) as total_sales
		FROM bill_items bi
		JOIN products p ON p.id = bi.product_id
		WHERE bi.deleted_at IS NULL
		GROUP BY p.id, p.name
		ORDER BY total_qty DESC
		LIMIT 10
	`).Scan(&rows).Error
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to build most-sold report"})
	}

	return ctx.JSON(rows)
}

// Profit reports per-product profit against the current cost price, split
// by the price each line was actually sold at.
func (c *ReportController) Profit(ctx *fiber.Ctx) error {
	type profitRow struct {
		Product      string  `json:"product"`
		CostPrice    float64 `json:"cost_price"`
		SellingPrice float64 `json:"selling_price"`
		TotalQtySold int64   `json:"total_qty_sold"`
		TotalProfit  float64 `json:"total_profit"`
	}

	var rows []profitRow
	err := c.DB.Raw(`
		SELECT
			p.name as product,
			p.cost_price,
			bi.price as selling_price,
			SUM(bi.qty) as total_qty_sold
		FROM bill_items bi
		JOIN products p ON p.id = bi.product_id
		WHERE bi.deleted_at IS NULL
		GROUP BY p.id, p.name, p.cost_price, bi.price
	`).Scan(&rows).Error
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to build profit report"})
	}

	for i := range rows {
		rows[i].TotalProfit = (rows[i].SellingPrice - rows[i].CostPrice) * float64(rows[i].TotalQtySold)
	}

	return ctx.JSON(rows)
}

type stockStatementRow struct {
	Product      string `json:"product"`
	OpeningStock int64  `json:"opening_stock"`
	ClosingStock int64  `json:"closing_stock"`
	TotalSold    int64  `json:"total_sold"`
}

func (c *ReportController) stockStatement() ([]stockStatementRow, error) {
	var rows []stockStatementRow
	err := c.DB.Raw(`
		SELECT
			p.name as product,
			p.quantity as closing_stock,
			COALESCE(SUM(bi.qty), 0) as total_sold
		FROM products p
		LEFT JOIN bill_items bi ON bi.product_id = p.id AND bi.deleted_at IS NULL
		WHERE p.deleted_at IS NULL
		GROUP BY p.id, p.name, p.quantity
		ORDER BY p.name
	`).Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	for i := range rows {
		rows[i].OpeningStock = rows[i].ClosingStock + rows[i].TotalSold
	}
	return rows, nil
}

// StockStatement reports opening/closing stock per product, treating
// everything sold so far as movement against the current stock level.
func (c *ReportController) StockStatement(ctx *fiber.Ctx) error {
	rows, err := c.stockStatement()
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to build stock statement"})
	}
	return ctx.JSON(rows)
}

// StockStatementExport serves the stock statement as an xlsx download.
// GET /api/reports/stock-statement/export
func (c *ReportController) StockStatementExport(ctx *fiber.Ctx) error {
	rows, err := c.stockStatement()
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to build stock statement"})
	}

	f := excelize.NewFile()
	defer f.Close()

	sheet := "Sheet1"
	headers := []string{"Product", "Opening Stock", "Closing Stock", "Total Sold"}
	for i, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, header)
	}
	for i, row := range rows {
		f.SetCellValue(sheet, fmt.Sprintf("A%d", i+2), row.Product)
		f.SetCellValue(sheet, fmt.Sprintf("B%d", i+2), row.OpeningStock)
		f.SetCellValue(sheet, fmt.Sprintf("C%d", i+2), row.ClosingStock)
		f.SetCellValue(sheet, fmt.Sprintf("D%d", i+2), row.TotalSold)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to write spreadsheet"})
	}

	ctx.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	ctx.Set(fiber.HeaderContentDisposition, `attachment; filename="stock_statement.xlsx"`)
	return ctx.Send(buf.Bytes())
}

// Margin reports the percentage margin per product, highest first. Products
// with no cost basis are skipped.
func (c *ReportController) Margin(ctx *fiber.Ctx) error {
	type MarginRow struct {
		Product       string  `json:"product"`
		MarginPercent float64 `json:"margin_percent"`
	}

	var products []Models.Product
	if result := c.DB.Find(&products); result.Error != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to build margin report"})
	}

	rows := make([]MarginRow, 0, len(products))
	for _, p := range products {
		if p.CostPrice <= 0 {
			continue
		}
		margin := (p.SellingPrice - p.CostPrice) / p.CostPrice * 100
		rows = append(rows, MarginRow{Product: p.Name, MarginPercent: float64(int(margin*100+0.5)) / 100})
	}
	slices.SortFunc(rows, func(a, b MarginRow) int {
		switch {
		case a.MarginPercent > b.MarginPercent:
			return -1
		case a.MarginPercent < b.MarginPercent:
			return 1
		}
		return 0
	})

	return ctx.JSON(rows)
}

// Manufacturer reports product count and stock value grouped by manufacturer.
func (c *ReportController) Manufacturer(ctx *fiber.Ctx) error {
	type ManufacturerRow struct {
		Manufacturer    string  `json:"manufacturer"`
		TotalProducts   int64   `json:"total_products"`
		TotalStockValue float64 `json:"total_stock_value"`
	}

	var rows []ManufacturerRow
	err := c.DB.Raw(`
		SELECT
			manufacturer,
			COUNT(id) as total_products,
			SUM(quantity * selling_price) as total_stock_value
		FROM products
		WHERE deleted_at IS NULL
		GROUP BY manufacturer
		ORDER BY manufacturer
	`).Scan(&rows).Error
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to build manufacturer report"})
	}

	return ctx.JSON(rows)
}

// Purchases reports purchase orders in a date range with the grand total.
// GET /api/reports/purchases?start_date=...&end_date=...
func (c *ReportController) Purchases(ctx *fiber.Ctx) error {
	type PurchaseRow struct {
		OrderID   string    `json:"order_id"`
		Supplier  string    `json:"supplier"`
		Product   string    `json:"product"`
		Quantity  int       `json:"quantity"`
		CostPrice float64   `json:"cost_price"`
		Total     float64   `json:"total"`
		CreatedAt time.Time `json:"created_at"`
	}

	now := time.Now()
	start := ctx.Query("start_date", now.Format("2006-01")+"-01")
	end := ctx.Query("end_date", now.Format("2006-01-02"))

	var rows []PurchaseRow
	err := c.DB.Raw(`
		SELECT
			po.order_id,
			s.name as supplier,
			p.name as product,
			po.quantity,
			po.cost_price,
			po.total,
			po.created_at
		FROM purchase_orders po
		JOIN suppliers s ON s.id = po.supplier_id
		JOIN products p ON p.id = po.product_id
		WHERE po.deleted_at IS NULL
		AND DATE(po.created_at) BETWEEN ? AND ?
		ORDER BY po.created_at DESC
	`, start, end).Scan(&rows).Error
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to build purchase report"})
	}

	var grandTotal float64
	for _, row := range rows {
		grandTotal += row.Total
	}

	return ctx.JSON(fiber.Map{
		"purchases":   rows,
		"grand_total": grandTotal,
		"count":       len(rows),
	})
}
