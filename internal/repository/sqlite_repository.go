package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/nikolayk812/cartsync-demo/internal/domain"
	"github.com/nikolayk812/cartsync-demo/internal/port"
	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// localCartLine is the embedded-database row of one cart line.
type localCartLine struct {
	StorageKey    string          `gorm:"primaryKey;size:64"`
	ProductID     int64           `gorm:"primaryKey;autoIncrement:false"`
	Position      int             `gorm:"not null"`
	CartEntryID   int64           `gorm:"not null;default:0"`
	Code          string          `gorm:"not null;default:''"`
	Name          string          `gorm:"not null"`
	Description   string          `gorm:"not null;default:''"`
	ImageURL      string          `gorm:"not null;default:''"`
	PriceAmount   decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	PriceCurrency string          `gorm:"size:3;not null"`
	Quantity      int             `gorm:"not null"`
	SavedAt       time.Time       `gorm:"not null"`
}

func (localCartLine) TableName() string {
	return "local_cart_lines"
}

type sqliteCartRepository struct {
	db  *gorm.DB
	key string
}

// OpenSQLite opens (creating when needed) the embedded cart database file.
func OpenSQLite(dsn string) (*gorm.DB, error) {
	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("gorm.Open: %w", err)
	}

	sqlDB, err := gdb.DB()
	if err != nil {
		return nil, fmt.Errorf("gdb.DB: %w", err)
	}
	sqlDB.SetMaxOpenConns(1)

	return gdb, nil
}

func NewSQLiteCart(gdb *gorm.DB, key string) (port.CartStore, error) {
	if gdb == nil {
		return nil, fmt.Errorf("db is nil")
	}
	if strings.TrimSpace(key) == "" {
		return nil, fmt.Errorf("storage key is empty")
	}

	if err := gdb.AutoMigrate(&localCartLine{}); err != nil {
		return nil, fmt.Errorf("gdb.AutoMigrate: %w", err)
	}

	return &sqliteCartRepository{db: gdb, key: key}, nil
}

func (r *sqliteCartRepository) Load(ctx context.Context) ([]domain.CartLine, error) {
	var rows []localCartLine
	err := r.db.WithContext(ctx).
		Where("storage_key = ?", r.key).
		Order("position").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("db.Find: %w", err)
	}

	lines := make([]domain.CartLine, 0, len(rows))
	for _, row := range rows {
		unit, err := currency.ParseISO(row.PriceCurrency)
		if err != nil {
			return nil, fmt.Errorf("currency[%s] is not valid: %w", row.PriceCurrency, err)
		}

		lines = append(lines, domain.CartLine{
			ProductID:   row.ProductID,
			CartEntryID: row.CartEntryID,
			Code:        row.Code,
			Name:        row.Name,
			Description: row.Description,
			ImageURL:    row.ImageURL,
			UnitPrice:   domain.Money{Amount: row.PriceAmount, Currency: unit},
			Quantity:    row.Quantity,
		})
	}

	return lines, nil
}

func (r *sqliteCartRepository) Save(ctx context.Context, lines []domain.CartLine) error {
	now := time.Now().UTC()

	rows := make([]localCartLine, 0, len(lines))
	for i, line := range lines {
		rows = append(rows, localCartLine{
			StorageKey:    r.key,
			ProductID:     line.ProductID,
			Position:      i,
			CartEntryID:   line.CartEntryID,
			Code:          line.Code,
			Name:          line.Name,
			Description:   line.Description,
			ImageURL:      line.ImageURL,
			PriceAmount:   line.UnitPrice.Amount,
			PriceCurrency: line.UnitPrice.Currency.String(),
			Quantity:      line.Quantity,
			SavedAt:       now,
		})
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("storage_key = ?", r.key).Delete(&localCartLine{}).Error; err != nil {
			return fmt.Errorf("tx.Delete: %w", err)
		}
		if len(rows) == 0 {
			return nil
		}
		if err := tx.Create(&rows).Error; err != nil {
			return fmt.Errorf("tx.Create: %w", err)
		}
		return nil
	})
}
