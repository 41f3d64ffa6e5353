package FiberConfig

import (
	"fmt"
	"time"

	"Nova/Config"
	"Nova/Controllers"
	"Nova/Models"
	"Nova/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/template/html"
	"gorm.io/gorm"
)

func SetupRoutes(app *fiber.App, db *gorm.DB) {
	// Initialize handlers
	productController := Controllers.NewProductController(db)
	stockController := Controllers.NewStockController(db)
	customerController := Controllers.NewCustomerController(db)
	billController := Controllers.NewBillController(db)
	paymentController := Controllers.NewPaymentController(db)
	supplierController := Controllers.NewSupplierController(db)
	purchaseOrderController := Controllers.NewPurchaseOrderController(db)
	reportController := Controllers.NewReportController(db)

	// Auth routes
	app.Post("/api/register", Controllers.Register)
	app.Post("/api/login", Controllers.Login)
	app.Post("/api/token/refresh", Controllers.RefreshToken)
	app.Get("/api/validate-token", middleware.Verify(), Controllers.ValidateToken)
	app.Get("/api/user", middleware.Verify(), Controllers.User)
	app.Post("/api/logout", Controllers.Logout)

	// User management, admin only
	app.Get("/api/users", middleware.Verify(Models.RoleAdmin), Controllers.FetchUsers)
	app.Patch("/api/users/:id", middleware.Verify(Models.RoleAdmin), Controllers.UpdateUser)
	app.Delete("/api/users/:id", middleware.Verify(Models.RoleAdmin), Controllers.DeleteUser)

	// API group
	api := app.Group("/api")

	// Product routes. Reads are open to any logged-in user, writes need a
	// manager or admin.
	products := api.Group("/products", middleware.Verify())
	products.Get("/", productController.GetProducts)
	products.Get("/low-stock", productController.LowStock)
	products.Get("/:id", productController.GetProduct)
	products.Post("/", middleware.Verify(Models.RoleManager, Models.RoleAdmin), productController.CreateProduct)
	products.Put("/:id", middleware.Verify(Models.RoleManager, Models.RoleAdmin), productController.UpdateProduct)
	products.Delete("/:id", middleware.Verify(Models.RoleManager, Models.RoleAdmin), productController.DeleteProduct)
	products.Post("/:id/image", middleware.Verify(Models.RoleManager, Models.RoleAdmin), productController.UploadImage)

	// Category routes
	categories := api.Group("/categories", middleware.Verify())
	categories.Get("/", productController.GetCategories)
	categories.Post("/", middleware.Verify(Models.RoleManager, Models.RoleAdmin), productController.CreateCategory)

	// Stock entry routes
	stocks := api.Group("/stocks", middleware.Verify(Models.RoleManager, Models.RoleAdmin))
	stocks.Get("/", stockController.GetStockEntries)
	stocks.Post("/", stockController.CreateStockEntry)

	// Customer routes
	customers := api.Group("/customers", middleware.Verify())
	customers.Get("/", customerController.GetCustomers)
	customers.Get("/search", customerController.SearchCustomers)
	customers.Post("/", customerController.CreateCustomer)
	customers.Get("/:id", customerController.GetCustomer)
	customers.Put("/:id", customerController.UpdateCustomer)
	customers.Delete("/:id", middleware.Verify(Models.RoleManager, Models.RoleAdmin), customerController.DeleteCustomer)
	customers.Get("/:id/loyalty", customerController.GetLoyalty)
	customers.Get("/:id/purchase-history", customerController.GetPurchaseHistory)

	// Bill routes
	bills := api.Group("/bills", middleware.Verify())
	bills.Get("/", billController.GetBills)
	bills.Post("/", billController.CreateBill)
	bills.Get("/:id", billController.GetBill)
	bills.Put("/:id/mark-paid", billController.MarkPaid)
	bills.Get("/:id/invoice", billController.InvoicePDF)
	bills.Get("/:id/invoice/html", billController.InvoiceHTML)

	// Payment routes
	payments := api.Group("/payments", middleware.Verify())
	payments.Get("/", middleware.Verify(Models.RoleManager, Models.RoleAdmin), paymentController.GetPayments)
	payments.Post("/", paymentController.CreatePayment)
	payments.Patch("/:transaction_id", paymentController.UpdatePaymentStatus)
	payments.Patch("/:transaction_id/link_bill", paymentController.LinkBill)

	// Supplier routes, manager or admin
	suppliers := api.Group("/suppliers", middleware.Verify(Models.RoleManager, Models.RoleAdmin))
	suppliers.Get("/", supplierController.GetSuppliers)
	suppliers.Get("/autocomplete", supplierController.Autocomplete)
	suppliers.Post("/", supplierController.CreateSupplier)
	suppliers.Get("/:id", supplierController.GetSupplier)
	suppliers.Put("/:id", supplierController.UpdateSupplier)
	suppliers.Delete("/:id", supplierController.DeleteSupplier)

	// Purchase order routes, manager or admin
	orders := api.Group("/purchase-orders", middleware.Verify(Models.RoleManager, Models.RoleAdmin))
	orders.Get("/", purchaseOrderController.GetPurchaseOrders)
	orders.Post("/", purchaseOrderController.CreatePurchaseOrder)
	orders.Get("/:id", purchaseOrderController.GetPurchaseOrder)
	orders.Put("/:id", purchaseOrderController.UpdatePurchaseOrder)
	orders.Delete("/:id", purchaseOrderController.DeletePurchaseOrder)

	// Report routes, manager or admin
	reports := api.Group("/reports", middleware.Verify(Models.RoleManager, Models.RoleAdmin))
	reports.Get("/daily", reportController.Daily)
	reports.Get("/monthly", reportController.Monthly)
	reports.Get("/most-sold", reportController.MostSold)
	reports.Get("/profit", reportController.Profit)
	reports.Get("/stock-statement", reportController.StockStatement)
	reports.Get("/stock-statement/export", reportController.StockStatementExport)
	reports.Get("/margin", reportController.Margin)
	reports.Get("/manufacturer", reportController.Manufacturer)
	reports.Get("/purchases", reportController.Purchases)
}

func FiberConfig() {
	fmt.Println("Server Up...")
	engine := html.New("./Templates", ".html")
	// Html Template engine
	app := fiber.New(fiber.Config{
		Views: engine,
	})
	app.Use(middleware.RequestLogger())
	app.Use(compress.New(compress.Config{
		Level: compress.LevelBestCompression, // 2
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins:     "*",
		AllowMethods:     "GET,POST,PUT,DELETE,OPTIONS,PATCH",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization, X-Requested-With",
		AllowCredentials: true, // Important for cookies
		MaxAge:           300,
	}))

	SetupRoutes(app, Models.DB)

	// Serve product images
	app.Static("/media", "./"+Config.Current.MediaDir, fiber.Static{Compress: true, CacheDuration: time.Second * 10})

	app.Listen(Config.Current.ListenAddress)
}
