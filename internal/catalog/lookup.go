package catalog

import (
	"context"

	"github.com/go-faster/sdk/zctx"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/colorindo-sonhos/storefront-client/internal/api"
	"github.com/colorindo-sonhos/storefront-client/internal/domain/product"
)

// Getter is the product read surface consumed by Lookup. *api.Client
// satisfies it.
type Getter interface {
	GetProduct(ctx context.Context, id string) (product.Product, error)
	ListProducts(ctx context.Context, params api.ListParams) (product.ListResult, error)
}

// Lookup fetches single products, tolerating a backend that cannot serve
// direct-by-id retrieval for every record: when the direct fetch fails, the
// full listing is scanned client-side for a matching identifier. Only a
// found match short-circuits the original failure, so genuine not-found is
// never masked as success.
type Lookup struct {
	client Getter
	group  singleflight.Group
}

// NewLookup creates a Lookup over the given client.
func NewLookup(client Getter) *Lookup {
	return &Lookup{client: client}
}

// GetByID returns the product with the given canonical identifier.
// Concurrent lookups of the same id are collapsed into one fetch.
func (l *Lookup) GetByID(ctx context.Context, id string) (product.Product, error) {
	v, err, _ := l.group.Do(id, func() (any, error) {
		return l.getByID(ctx, id)
	})
	if err != nil {
		return product.Product{}, err
	}
	return v.(product.Product), nil
}

func (l *Lookup) getByID(ctx context.Context, id string) (product.Product, error) {
	p, err := l.client.GetProduct(ctx, id)
	if err == nil {
		return p, nil
	}

	zctx.From(ctx).Debug("Direct product fetch failed, scanning listing",
		zap.String("product_id", id), zap.Error(err))

	// Degraded fallback: the unpaginated listing, searched client-side.
	res, listErr := l.client.ListProducts(ctx, api.ListParams{})
	if listErr != nil {
		return product.Product{}, err
	}
	for _, candidate := range res.Products {
		if candidate.ID == id {
			return candidate, nil
		}
	}
	return product.Product{}, err
}
