package api

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/colorindo-sonhos/storefront-client/internal/domain/product"
)

// ListParams are the catalog listing query parameters. Zero values are
// omitted from the request, which the service reads as "no filter" and its
// own default page size.
type ListParams struct {
	Page        int
	MaxResults  int
	Category    string
	Subcategory string
}

func (p ListParams) encode() string {
	q := url.Values{}
	if p.Page > 0 {
		q.Set("page", strconv.Itoa(p.Page))
	}
	if p.MaxResults > 0 {
		q.Set("maxResults", strconv.Itoa(p.MaxResults))
	}
	if p.Category != "" {
		q.Set("category", p.Category)
	}
	if p.Subcategory != "" {
		q.Set("subcategory", p.Subcategory)
	}
	if len(q) == 0 {
		return ""
	}
	return "?" + q.Encode()
}

// ListProducts fetches a catalog page and normalizes it. Records without a
// usable identifier are excluded from the result.
func (c *Client) ListProducts(ctx context.Context, params ListParams) (product.ListResult, error) {
	raw, err := c.do(ctx, http.MethodGet, "/products"+params.encode(), nil)
	if err != nil {
		return product.ListResult{}, err
	}
	return product.NormalizeList(raw)
}

// GetProduct fetches a single product by identifier.
func (c *Client) GetProduct(ctx context.Context, id string) (product.Product, error) {
	raw, err := c.do(ctx, http.MethodGet, "/products/"+url.PathEscape(id), nil)
	if err != nil {
		return product.Product{}, err
	}
	p, err := product.Normalize(raw)
	if err != nil {
		return product.Product{}, err
	}
	if !p.Valid() {
		// A record we cannot identify is as good as absent.
		return product.Product{}, product.ErrNotFound
	}
	return p, nil
}

// ProductDraft is the admin create/update payload. Free-text fields are
// sanitized before leaving the client; Image is optional.
type ProductDraft struct {
	Name        string
	Price       decimal.Decimal
	Category    string
	Subcategory string
	Description string
	Image       *FormFile
}

func (d ProductDraft) form() Form {
	fields := map[string]string{
		"name":     truncate(sanitizeText(d.Name), 200),
		"price":    d.Price.String(),
		"category": truncate(sanitizeText(d.Category), 100),
	}
	if d.Subcategory != "" {
		fields["subcategory"] = truncate(sanitizeText(d.Subcategory), 100)
	}
	if d.Description != "" {
		fields["description"] = truncate(sanitizeText(d.Description), 2000)
	}
	return Form{Fields: fields, File: d.Image}
}

// CreateProduct submits a new catalog item as multipart form data.
func (c *Client) CreateProduct(ctx context.Context, draft ProductDraft) (product.Product, error) {
	raw, err := c.doMultipart(ctx, http.MethodPost, "/products", draft.form())
	if err != nil {
		return product.Product{}, err
	}
	return product.Normalize(raw)
}

// UpdateProduct replaces an existing catalog item.
func (c *Client) UpdateProduct(ctx context.Context, id string, draft ProductDraft) (product.Product, error) {
	raw, err := c.doMultipart(ctx, http.MethodPut, "/products/"+url.PathEscape(id), draft.form())
	if err != nil {
		return product.Product{}, err
	}
	return product.Normalize(raw)
}

// DeleteProduct removes a catalog item. The service answers 204 on success.
func (c *Client) DeleteProduct(ctx context.Context, id string) error {
	_, err := c.do(ctx, http.MethodDelete, "/products/"+url.PathEscape(id), nil)
	return err
}
