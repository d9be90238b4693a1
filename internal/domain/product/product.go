package product

import (
	"time"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"
)

// ErrNotFound is returned when a requested product does not exist.
var ErrNotFound = errors.New("product not found")

// PlaceholderImage is substituted at presentation time for products whose
// record carries no image reference. The model itself keeps the field empty.
const PlaceholderImage = "/placeholder-product.jpg"

// Product is the canonical catalog item shape. Every read path passes server
// records through Normalize before exposing them as Products, so an ID here
// is always the resolved identifier regardless of which field the server
// used to carry it.
type Product struct {
	ID          string
	Name        string
	Price       decimal.Decimal
	Category    string
	Subcategory string
	ImageURL    string
	Description string
	CreatedAt   time.Time
	Featured    bool
}

// Valid reports whether the record carries a usable identifier. Records that
// fail normalization are excluded from display, never surfaced as errors.
func (p Product) Valid() bool {
	return p.ID != ""
}

// DisplayImage returns the image reference to render, falling back to the
// placeholder when the record has none.
func (p Product) DisplayImage() string {
	if p.ImageURL == "" {
		return PlaceholderImage
	}
	return p.ImageURL
}

// DisplayPrice renders the price with two fractional digits.
func (p Product) DisplayPrice() string {
	return p.Price.StringFixed(2)
}
