package backend

import (
	"errors"
	"fmt"
	"strings"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// Open connects to the store's database. Supported drivers are sqlite
// (pure Go, the default) and postgres.
func Open(driver, dsn string) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch strings.ToLower(strings.TrimSpace(driver)) {
	case "", "sqlite":
		dialector = sqlite.Open(dsn)
	case "postgres", "postgresql":
		dialector = postgres.Open(dsn)
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("gorm.Open: %w", err)
	}

	if dialector.Name() == "sqlite" {
		sqlDB, err := db.DB()
		if err != nil {
			return nil, fmt.Errorf("db.DB: %w", err)
		}
		sqlDB.SetMaxOpenConns(1)
	}

	return db, nil
}

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&User{},
		&Product{},
		&CartEntry{},
		&Order{},
		&OrderItem{},
		&Payment{},
	)
}

// Seed inserts the demo catalogue when no product exists yet. It returns
// the number of products inserted.
func Seed(db *gorm.DB) (int, error) {
	var count int64
	if err := db.Model(&Product{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("count products: %w", err)
	}
	if count > 0 {
		return 0, nil
	}

	products := demoProducts()
	if err := db.Create(&products).Error; err != nil {
		return 0, fmt.Errorf("create products: %w", err)
	}
	return len(products), nil
}

func demoProducts() []Product {
	p := func(name, desc, price string, category int64, stock int, image string) Product {
		return Product{
			Name:          name,
			Description:   desc,
			Price:         NewMoney(decimal.RequireFromString(price)),
			CategoryID:    category,
			StockQuantity: stock,
			ImageURL:      image,
		}
	}

	return []Product{
		p("Wireless Mouse", "Ergonomic 2.4GHz wireless mouse", "149.99", 1, 120, "https://images.unsplash.com/photo-1527864550417-7fd91fc51a46?w=400"),
		p("Mechanical Keyboard", "Hot-swappable keyboard with brown switches", "2499.00", 1, 40, "https://images.unsplash.com/photo-1511467687858-23d96c32e4ae?w=400"),
		p("USB-C Hub", "7-in-1 hub with HDMI and card reader", "1299.00", 1, 75, "https://images.unsplash.com/photo-1625948515291-69613efd103f?w=400"),
		p("Cotton T-Shirt", "Regular fit crew neck", "399.00", 2, 300, "https://images.unsplash.com/photo-1521572163474-6864f9cf17ab?w=400"),
		p("Running Shoes", "Lightweight mesh running shoes", "2899.00", 2, 60, "https://images.unsplash.com/photo-1542291026-7eec264c27ff?w=400"),
		p("Ceramic Mug", "350ml stoneware mug", "249.00", 3, 200, "https://images.unsplash.com/photo-1514228742587-6b1558fcca3d?w=400"),
		p("Desk Lamp", "LED lamp with three colour temperatures", "499.50", 3, 90, "https://images.unsplash.com/photo-1507473885765-e6ed057f782c?w=400"),
		p("Notebook Set", "Three A5 dotted notebooks", "199.00", 4, 500, "https://images.unsplash.com/photo-1531346878377-a5be20888e57?w=400"),
	}
}

func isNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
