package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nikolayk812/cartsync-demo/internal/db"
	"github.com/nikolayk812/cartsync-demo/internal/domain"
	"github.com/nikolayk812/cartsync-demo/internal/port"
	"golang.org/x/text/currency"
)

type cartRepository struct {
	q    *db.Queries
	pool *pgxpool.Pool
	key  string
}

func NewCart(pool *pgxpool.Pool, key string) (port.CartStore, error) {
	if pool == nil {
		return nil, fmt.Errorf("pool is nil")
	}
	if strings.TrimSpace(key) == "" {
		return nil, fmt.Errorf("storage key is empty")
	}

	return &cartRepository{
		q:    db.New(pool),
		pool: pool,
		key:  key,
	}, nil
}

func NewCartWithTx(tx pgx.Tx, key string) port.CartStore {
	return &cartRepository{
		q:    db.New(tx),
		pool: nil, // use provided transaction instead
		key:  key,
	}
}

func (r *cartRepository) Load(ctx context.Context) ([]domain.CartLine, error) {
	rows, err := r.q.GetCartLines(ctx, r.key)
	if err != nil {
		return nil, fmt.Errorf("q.GetCartLines: %w", err)
	}

	lines, err := mapGetCartLinesRowsToDomain(rows)
	if err != nil {
		return nil, fmt.Errorf("mapGetCartLinesRowsToDomain: %w", err)
	}

	return lines, nil
}

func (r *cartRepository) Save(ctx context.Context, lines []domain.CartLine) error {
	_, err := withTx(ctx, r.pool, r.q, func(q *db.Queries) (struct{}, error) {
		if _, err := q.DeleteCartLines(ctx, r.key); err != nil {
			return struct{}{}, fmt.Errorf("q.DeleteCartLines: %w", err)
		}

		for i, line := range lines {
			if err := q.InsertCartLine(ctx, mapDomainToInsertParams(r.key, i, line)); err != nil {
				return struct{}{}, fmt.Errorf("q.InsertCartLine[%d]: %w", line.ProductID, err)
			}
		}

		return struct{}{}, nil
	})
	return err
}

func mapDomainToInsertParams(key string, position int, line domain.CartLine) db.InsertCartLineParams {
	return db.InsertCartLineParams{
		StorageKey:    key,
		ProductID:     line.ProductID,
		Position:      int32(position),
		CartEntryID:   line.CartEntryID,
		Code:          line.Code,
		Name:          line.Name,
		Description:   line.Description,
		ImageUrl:      line.ImageURL,
		PriceAmount:   line.UnitPrice.Amount,
		PriceCurrency: line.UnitPrice.Currency.String(),
		Quantity:      int32(line.Quantity),
	}
}

func mapGetCartLinesRowToDomain(row db.GetCartLinesRow) (domain.CartLine, error) {
	parsedCurrency, err := currency.ParseISO(strings.TrimSpace(row.PriceCurrency))
	if err != nil {
		return domain.CartLine{}, fmt.Errorf("currency[%s] is not valid: %w", row.PriceCurrency, err)
	}

	return domain.CartLine{
		ProductID:   row.ProductID,
		CartEntryID: row.CartEntryID,
		Code:        row.Code,
		Name:        row.Name,
		Description: row.Description,
		ImageURL:    row.ImageUrl,
		UnitPrice:   domain.Money{Amount: row.PriceAmount, Currency: parsedCurrency},
		Quantity:    int(row.Quantity),
	}, nil
}

func mapGetCartLinesRowsToDomain(rows []db.GetCartLinesRow) ([]domain.CartLine, error) {
	var lines []domain.CartLine

	for _, row := range rows {
		line, err := mapGetCartLinesRowToDomain(row)
		if err != nil {
			return nil, fmt.Errorf("mapGetCartLinesRowToDomain: %w", err)
		}

		lines = append(lines, line)
	}

	return lines, nil
}
