package Models

import (
	"log"
	"os"

	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

var DB *gorm.DB

func Connect() {
	var (
		connection *gorm.DB
		err        error
	)

	if dsn := os.Getenv("DB_DSN"); dsn != "" {
		connection, err = gorm.Open(mysql.Open(dsn), &gorm.Config{})
	} else {
		connection, err = gorm.Open(sqlite.Open("database.db"), &gorm.Config{})
	}
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}
	DB = connection

	if err := Migrate(DB); err != nil {
		log.Fatal("Failed to migrate database:", err)
	}

	seedAdmin(DB)
}

// Migrate runs AutoMigrate in dependency order.
func Migrate(db *gorm.DB) error {
	// 1. Base records with no foreign keys
	if err := db.AutoMigrate(
		&User{},
		&Category{},
		&Supplier{},
		&Customer{},
	); err != nil {
		return err
	}

	// 2. Records referencing the base set
	if err := db.AutoMigrate(
		&CustomerLoyalty{},
		&Product{},
	); err != nil {
		return err
	}

	// 3. Everything hanging off products and users
	return db.AutoMigrate(
		&StockEntry{},
		&Bill{},
		&BillItem{},
		&Payment{},
		&PurchaseOrder{},
	)
}

// seedAdmin bootstraps the first admin account from the environment so a
// fresh install is reachable without manual SQL.
func seedAdmin(db *gorm.DB) {
	email := os.Getenv("ADMIN_EMAIL")
	password := os.Getenv("ADMIN_PASSWORD")
	if email == "" || password == "" {
		return
	}

	var count int64
	db.Model(&User{}).Where("email = ?", email).Count(&count)
	if count > 0 {
		return
	}

	admin := User{Email: email, Role: RoleAdmin, FirstName: "Admin"}
	if err := admin.SetPassword(password); err != nil {
		log.Printf("Error hashing admin password: %v", err)
		return
	}
	if err := db.Create(&admin).Error; err != nil {
		log.Printf("Error seeding admin user: %v", err)
	}
}
