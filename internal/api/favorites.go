package api

import (
	"context"
	"net/http"
	"net/url"

	"github.com/colorindo-sonhos/storefront-client/internal/domain/product"
)

// ListFavorites fetches the authenticated user's favorited products.
func (c *Client) ListFavorites(ctx context.Context) ([]product.Product, error) {
	raw, err := c.do(ctx, http.MethodGet, "/favorites", nil)
	if err != nil {
		return nil, err
	}
	res, err := product.NormalizeList(raw)
	if err != nil {
		return nil, err
	}
	return res.Products, nil
}

// AddFavorite marks a product as favorited.
func (c *Client) AddFavorite(ctx context.Context, productID string) error {
	body := map[string]string{"productId": productID}
	_, err := c.do(ctx, http.MethodPost, "/favorites", body)
	return err
}

// RemoveFavorite unmarks a favorited product.
func (c *Client) RemoveFavorite(ctx context.Context, productID string) error {
	_, err := c.do(ctx, http.MethodDelete, "/favorites/"+url.PathEscape(productID), nil)
	return err
}

// CheckFavorite reports whether the given product is favorited.
func (c *Client) CheckFavorite(ctx context.Context, productID string) (bool, error) {
	var resp struct {
		IsFavorite bool `json:"isFavorite"`
	}
	err := c.doJSON(ctx, http.MethodGet, "/favorites/check/"+url.PathEscape(productID), nil, &resp)
	return resp.IsFavorite, err
}

// CountFavorites returns the number of favorited products.
func (c *Client) CountFavorites(ctx context.Context) (int, error) {
	var resp struct {
		Count int `json:"count"`
	}
	err := c.doJSON(ctx, http.MethodGet, "/favorites/count", nil, &resp)
	return resp.Count, err
}

// ClearFavorites removes every favorite for the authenticated user.
func (c *Client) ClearFavorites(ctx context.Context) error {
	_, err := c.do(ctx, http.MethodDelete, "/favorites", nil)
	return err
}
