package Controllers

import (
	"strconv"
	"time"

	"Nova/Models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// CustomerController handles customer-related API endpoints
type CustomerController struct {
	DB *gorm.DB
}

// NewCustomerController creates a new CustomerController
func NewCustomerController(db *gorm.DB) *CustomerController {
	return &CustomerController{DB: db}
}

// GetCustomers retrieves all customers
func (c *CustomerController) GetCustomers(ctx *fiber.Ctx) error {
	var customers []Models.Customer
	result := c.DB.Preload("Loyalty").Order("created_at DESC").Find(&customers)
	if result.Error != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to retrieve customers"})
	}
	return ctx.JSON(customers)
}

// GetCustomer retrieves a single customer by ID
func (c *CustomerController) GetCustomer(ctx *fiber.Ctx) error {
	id, err := strconv.Atoi(ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid customer ID"})
	}

	var customer Models.Customer
	if result := c.DB.Preload("Loyalty").First(&customer, id); result.Error != nil {
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Customer not found"})
	}
	return ctx.JSON(customer)
}

type CustomerInput struct {
	Name          string `json:"name" validate:"required"`
	ContactNumber string `json:"contact_number" validate:"required"`
	Email         string `json:"email" validate:"omitempty,email"`
	Address       string `json:"address"`
	DateOfBirth   string `json:"date_of_birth"`
}

func (in CustomerInput) dateOfBirth() (*datatypes.Date, error) {
	if in.DateOfBirth == "" {
		return nil, nil
	}
	t, err := time.Parse("2006-01-02", in.DateOfBirth)
	if err != nil {
		return nil, err
	}
	d := datatypes.Date(t)
	return &d, nil
}

// CreateCustomer creates a new customer; the loyalty record is opened with it.
func (c *CustomerController) CreateCustomer(ctx *fiber.Ctx) error {
	var input CustomerInput
	if err := ctx.BodyParser(&input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	if err := validate.Struct(input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(validationError(err))
	}

	dob, err := input.dateOfBirth()
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "date_of_birth must be in YYYY-MM-DD format"})
	}

	customer := Models.Customer{
		Name:          input.Name,
		ContactNumber: input.ContactNumber,
		Email:         input.Email,
		Address:       input.Address,
		DateOfBirth:   dob,
	}
	if err := c.DB.Create(&customer).Error; err != nil {
		if Models.IsDuplicateKey(err) {
			return ctx.Status(fiber.StatusConflict).JSON(fiber.Map{
				"error": "A customer with this contact number already exists",
			})
		}
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create customer"})
	}

	c.DB.Preload("Loyalty").First(&customer, customer.ID)
	return ctx.Status(fiber.StatusCreated).JSON(customer)
}

// UpdateCustomer updates an existing customer
func (c *CustomerController) UpdateCustomer(ctx *fiber.Ctx) error {
	id, err := strconv.Atoi(ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid customer ID"})
	}

	var customer Models.Customer
	if result := c.DB.First(&customer, id); result.Error != nil {
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Customer not found"})
	}

	var input CustomerInput
	if err := ctx.BodyParser(&input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	if input.Name != "" {
		customer.Name = input.Name
	}
	if input.ContactNumber != "" {
		customer.ContactNumber = input.ContactNumber
	}
	if input.Email != "" {
		customer.Email = input.Email
	}
	if input.Address != "" {
		customer.Address = input.Address
	}
	if input.DateOfBirth != "" {
		dob, err := input.dateOfBirth()
		if err != nil {
			return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "date_of_birth must be in YYYY-MM-DD format"})
		}
		customer.DateOfBirth = dob
	}

	if err := c.DB.Save(&customer).Error; err != nil {
		if Models.IsDuplicateKey(err) {
			return ctx.Status(fiber.StatusConflict).JSON(fiber.Map{
				"error": "A customer with this contact number already exists",
			})
		}
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update customer"})
	}
	return ctx.JSON(customer)
}

// DeleteCustomer soft deletes a customer
func (c *CustomerController) DeleteCustomer(ctx *fiber.Ctx) error {
	id, err := strconv.Atoi(ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid customer ID"})
	}

	var customer Models.Customer
	if result := c.DB.First(&customer, id); result.Error != nil {
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Customer not found"})
	}

	c.DB.Delete(&customer)

	return ctx.JSON(fiber.Map{"message": "Customer deleted successfully"})
}

// SearchCustomers finds customers by name or contact number.
// GET /api/customers/search?q=
func (c *CustomerController) SearchCustomers(ctx *fiber.Ctx) error {
	q := ctx.Query("q")
	if q == "" {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "q query parameter is required"})
	}

	like := "%" + q + "%"
	var customers []Models.Customer
	result := c.DB.Preload("Loyalty").
		Where("name LIKE ? OR contact_number LIKE ?", like, like).
		Limit(20).Find(&customers)
	if result.Error != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to search customers"})
	}
	return ctx.JSON(customers)
}

// GetLoyalty returns the loyalty record for a customer.
// GET /api/customers/:id/loyalty
func (c *CustomerController) GetLoyalty(ctx *fiber.Ctx) error {
	id, err := strconv.Atoi(ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid customer ID"})
	}

	var loyalty Models.CustomerLoyalty
	if result := c.DB.Where("customer_id = ?", id).First(&loyalty); result.Error != nil {
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Loyalty record not found"})
	}
	return ctx.JSON(loyalty)
}

// GetPurchaseHistory returns a customer's bills plus spend aggregates.
// GET /api/customers/:id/purchase-history
func (c *CustomerController) GetPurchaseHistory(ctx *fiber.Ctx) error {
	id, err := strconv.Atoi(ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid customer ID"})
	}

	var customer Models.Customer
	if result := c.DB.First(&customer, id); result.Error != nil {
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Customer not found"})
	}

	var bills []Models.Bill
	result := c.DB.Preload("Items.Product").
		Where("customer_id = ?", id).
		Order("created_at DESC").Find(&bills)
	if result.Error != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to retrieve purchase history"})
	}

	var totalSpent float64
	for _, bill := range bills {
		totalSpent += bill.Total
	}

	return ctx.JSON(fiber.Map{
		"customer":    customer,
		"bills":       bills,
		"visit_count": len(bills),
		"total_spent": totalSpent,
	})
}
