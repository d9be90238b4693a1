package catalog

import "github.com/colorindo-sonhos/storefront-client/internal/domain/product"

// Featured selects up to n items for the home-page highlight strip. Items
// explicitly flagged as featured come first, in listing order; the rest of
// the strip is filled from the top of the listing.
func Featured(items []product.Product, n int) []product.Product {
	if n <= 0 {
		return nil
	}

	picked := make([]product.Product, 0, n)
	seen := make(map[string]struct{}, n)
	for _, p := range items {
		if len(picked) == n {
			return picked
		}
		if p.Featured {
			picked = append(picked, p)
			seen[p.ID] = struct{}{}
		}
	}
	for _, p := range items {
		if len(picked) == n {
			break
		}
		if _, ok := seen[p.ID]; !ok {
			picked = append(picked, p)
		}
	}
	return picked
}
