package Controllers

import (
	"fmt"
	"net/http/httptest"
	"strings"
	"testing"

	"Nova/Models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newControllerDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, Models.Migrate(db))
	return db
}

func TestUpdateSupplierDuplicateNameConflicts(t *testing.T) {
	db := newControllerDB(t)
	require.NoError(t, db.Create(&Models.Supplier{Name: "Acme Traders"}).Error)
	second := &Models.Supplier{Name: "Beta Wholesale"}
	require.NoError(t, db.Create(second).Error)

	controller := NewSupplierController(db)
	app := fiber.New()
	app.Put("/api/suppliers/:id", controller.UpdateSupplier)

	req := httptest.NewRequest("PUT", fmt.Sprintf("/api/suppliers/%d", second.ID),
		strings.NewReader(`{"name":"Acme Traders"}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)

	var reloaded Models.Supplier
	require.NoError(t, db.First(&reloaded, second.ID).Error)
	assert.Equal(t, "Beta Wholesale", reloaded.Name)
}

func TestUpdateSupplierEditsFields(t *testing.T) {
	db := newControllerDB(t)
	supplier := &Models.Supplier{Name: "Acme Traders"}
	require.NoError(t, db.Create(supplier).Error)

	controller := NewSupplierController(db)
	app := fiber.New()
	app.Put("/api/suppliers/:id", controller.UpdateSupplier)

	req := httptest.NewRequest("PUT", fmt.Sprintf("/api/suppliers/%d", supplier.ID),
		strings.NewReader(`{"name":"Acme Trading Co","phone":"044-1234"}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var reloaded Models.Supplier
	require.NoError(t, db.First(&reloaded, supplier.ID).Error)
	assert.Equal(t, "Acme Trading Co", reloaded.Name)
	assert.Equal(t, "044-1234", reloaded.Phone)
}
