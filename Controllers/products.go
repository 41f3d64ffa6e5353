package Controllers

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"Nova/Config"
	"Nova/Models"

	"github.com/disintegration/imaging"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// ProductController handles catalog API endpoints
type ProductController struct {
	DB *gorm.DB
}

// NewProductController creates a new ProductController
func NewProductController(db *gorm.DB) *ProductController {
	return &ProductController{DB: db}
}

// GetProducts retrieves the catalog, optionally filtered by search text or
// category.
func (c *ProductController) GetProducts(ctx *fiber.Ctx) error {
	query := c.DB.Model(&Models.Product{}).Order("created_at DESC")

	if search := ctx.Query("search"); search != "" {
		like := "%" + search + "%"
		query = query.Where("name LIKE ? OR code LIKE ?", like, like)
	}
	if category := ctx.Query("category"); category != "" {
		query = query.Where("category = ?", category)
	}

	var products []Models.Product
	if result := query.Find(&products); result.Error != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to retrieve products"})
	}
	return ctx.JSON(products)
}

// GetProduct retrieves a single product by ID
func (c *ProductController) GetProduct(ctx *fiber.Ctx) error {
	id, err := strconv.Atoi(ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid product ID"})
	}

	var product Models.Product
	if result := c.DB.Preload("Supplier").First(&product, id); result.Error != nil {
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Product not found"})
	}
	return ctx.JSON(product)
}

type ProductInput struct {
	Name              string  `json:"name" validate:"required"`
	Category          string  `json:"category"`
	Manufacturer      string  `json:"manufacturer"`
	SupplierID        *uint   `json:"supplier_id"`
	Quantity          int     `json:"quantity" validate:"gte=0"`
	CostPrice         float64 `json:"cost_price" validate:"gte=0"`
	SellingPrice      float64 `json:"selling_price" validate:"gte=0"`
	LowStockThreshold int     `json:"low_stock_threshold" validate:"gte=0"`
}

// CreateProduct adds a product to the catalog. The code is generated on
// creation and never changes afterwards.
func (c *ProductController) CreateProduct(ctx *fiber.Ctx) error {
	var input ProductInput
	if err := ctx.BodyParser(&input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	if err := validate.Struct(input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(validationError(err))
	}

	if input.SupplierID != nil {
		var supplier Models.Supplier
		if result := c.DB.First(&supplier, *input.SupplierID); result.Error != nil {
			return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Supplier not found"})
		}
	}

	threshold := input.LowStockThreshold
	if threshold == 0 {
		threshold = Config.Current.LowStockThreshold
	}

	product := Models.Product{
		Name:              input.Name,
		Category:          input.Category,
		Manufacturer:      input.Manufacturer,
		SupplierID:        input.SupplierID,
		Quantity:          input.Quantity,
		CostPrice:         input.CostPrice,
		SellingPrice:      input.SellingPrice,
		LowStockThreshold: threshold,
	}
	if err := c.DB.Create(&product).Error; err != nil {
		if Models.IsDuplicateKey(err) {
			return ctx.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "A product with this code already exists"})
		}
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create product"})
	}

	return ctx.Status(fiber.StatusCreated).JSON(product)
}

// UpdateProduct edits catalog fields. The generated code is immutable and
// stock is only changed through billing, stock entries and purchase orders.
func (c *ProductController) UpdateProduct(ctx *fiber.Ctx) error {
	id, err := strconv.Atoi(ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid product ID"})
	}

	var product Models.Product
	if result := c.DB.First(&product, id); result.Error != nil {
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Product not found"})
	}

	var input ProductInput
	if err := ctx.BodyParser(&input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	if err := validate.Struct(input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(validationError(err))
	}

	product.Name = input.Name
	product.Category = input.Category
	product.Manufacturer = input.Manufacturer
	product.SupplierID = input.SupplierID
	product.CostPrice = input.CostPrice
	product.SellingPrice = input.SellingPrice
	if input.LowStockThreshold > 0 {
		product.LowStockThreshold = input.LowStockThreshold
	}

	if err := c.DB.Save(&product).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update product"})
	}
	return ctx.JSON(product)
}

// DeleteProduct soft deletes a product
func (c *ProductController) DeleteProduct(ctx *fiber.Ctx) error {
	id, err := strconv.Atoi(ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid product ID"})
	}

	var product Models.Product
	if result := c.DB.First(&product, id); result.Error != nil {
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Product not found"})
	}

	c.DB.Delete(&product)

	return ctx.JSON(fiber.Map{"message": "Product deleted successfully"})
}

// LowStock returns products at or below the stock threshold.
// GET /api/products/low-stock?threshold=5
func (c *ProductController) LowStock(ctx *fiber.Ctx) error {
	threshold, err := strconv.Atoi(ctx.Query("threshold", ""))
	if err != nil {
		threshold = Config.Current.LowStockThreshold
	}

	var products []Models.Product
	if result := c.DB.Where("quantity <= ?", threshold).Order("quantity ASC").Find(&products); result.Error != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to retrieve products"})
	}
	return ctx.JSON(products)
}

// UploadImage stores a product photo plus a 200px thumbnail under the media
// directory.
// POST /api/products/:id/image
func (c *ProductController) UploadImage(ctx *fiber.Ctx) error {
	id, err := strconv.Atoi(ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid product ID"})
	}

	var product Models.Product
	if result := c.DB.First(&product, id); result.Error != nil {
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Product not found"})
	}

	file, err := ctx.FormFile("image")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "image file is required"})
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	if ext != ".jpg" && ext != ".jpeg" && ext != ".png" {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Only jpg and png images are accepted"})
	}

	name := fmt.Sprintf("product_%d%s", product.ID, ext)
	dest := filepath.Join(Config.Current.MediaDir, name)
	if err := ctx.SaveFile(file, dest); err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to store image"})
	}

	img, err := imaging.Open(dest)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Uploaded file is not a readable image"})
	}
	thumb := imaging.Thumbnail(img, 200, 200, imaging.Lanczos)
	thumbPath := filepath.Join(Config.Current.MediaDir, fmt.Sprintf("product_%d_thumb%s", product.ID, ext))
	if err := imaging.Save(thumb, thumbPath); err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to write thumbnail"})
	}

	product.ImagePath = dest
	if err := c.DB.Save(&product).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update product"})
	}

	return ctx.JSON(fiber.Map{
		"message":   "Image uploaded successfully",
		"image":     dest,
		"thumbnail": thumbPath,
	})
}

// GetCategories lists all categories
func (c *ProductController) GetCategories(ctx *fiber.Ctx) error {
	var categories []Models.Category
	if result := c.DB.Order("name ASC").Find(&categories); result.Error != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to retrieve categories"})
	}
	return ctx.JSON(categories)
}

// CreateCategory adds a category
func (c *ProductController) CreateCategory(ctx *fiber.Ctx) error {
	var input Models.Category
	if err := ctx.BodyParser(&input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	if input.Name == "" {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "name is required"})
	}

	category := Models.Category{Name: input.Name}
	if err := c.DB.Create(&category).Error; err != nil {
		if Models.IsDuplicateKey(err) {
			return ctx.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "A category with this name already exists"})
		}
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create category"})
	}
	return ctx.Status(fiber.StatusCreated).JSON(category)
}
