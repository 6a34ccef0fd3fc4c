package remote

import (
	"context"
	"net/http"
	"strconv"

	"github.com/nikolayk812/cartsync-demo/internal/domain"
)

func (c *Client) GetProduct(ctx context.Context, productID int64) (domain.Product, error) {
	var out productEnvelope
	if err := c.do(ctx, "GetProduct", http.MethodGet, "/api/products/"+strconv.FormatInt(productID, 10), nil, nil, &out); err != nil {
		return domain.Product{}, err
	}
	return c.mapProduct(out.Product), nil
}

func (c *Client) ListProducts(ctx context.Context) ([]domain.Product, error) {
	var out productsEnvelope
	if err := c.do(ctx, "ListProducts", http.MethodGet, "/api/products", nil, nil, &out); err != nil {
		return nil, err
	}

	products := make([]domain.Product, 0, len(out.Products))
	for _, p := range out.Products {
		products = append(products, c.mapProduct(p))
	}
	return products, nil
}

func (c *Client) CreateProduct(ctx context.Context, product domain.Product) (domain.Product, error) {
	var out productEnvelope
	if err := c.do(ctx, "CreateProduct", http.MethodPost, "/api/products", nil, toProductDTO(product), &out); err != nil {
		return domain.Product{}, err
	}
	return c.mapProduct(out.Product), nil
}

func (c *Client) UpdateProduct(ctx context.Context, product domain.Product) (domain.Product, error) {
	var out productEnvelope
	path := "/api/products/" + strconv.FormatInt(product.ID, 10)
	if err := c.do(ctx, "UpdateProduct", http.MethodPut, path, nil, toProductDTO(product), &out); err != nil {
		return domain.Product{}, err
	}
	return c.mapProduct(out.Product), nil
}

func (c *Client) DeleteProduct(ctx context.Context, productID int64) error {
	var out envelope
	return c.do(ctx, "DeleteProduct", http.MethodDelete, "/api/products/"+strconv.FormatInt(productID, 10), nil, nil, &out)
}

func (c *Client) mapProduct(p productDTO) domain.Product {
	return domain.Product{
		ID:            p.ProductID,
		Name:          p.Name,
		Description:   p.Description,
		Price:         c.money(p.Price),
		CategoryID:    p.CategoryID,
		StockQuantity: p.StockQuantity,
		ImageURL:      p.ImageURL,
	}
}

func toProductDTO(p domain.Product) productDTO {
	return productDTO{
		ProductID:     p.ID,
		Name:          p.Name,
		Description:   p.Description,
		Price:         jsonAmount{p.Price.Amount},
		CategoryID:    p.CategoryID,
		StockQuantity: p.StockQuantity,
		ImageURL:      p.ImageURL,
	}
}
