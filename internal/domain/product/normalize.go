package product

import (
	"strings"
	"time"

	"github.com/go-faster/errors"
	"github.com/go-faster/jx"
	"github.com/shopspring/decimal"
)

// Server payloads are not consistent about field naming: depending on the
// backing store the identifier arrives as "id", "_id" or "uuid", the image
// as "image_url", "image" or "imageUrl", and prices as either numbers or
// numeric strings. Normalize folds all of those into the canonical Product.
//
// idFields is the accepted identifier source fields in priority order; the
// first present wins.
var idFields = []string{"id", "_id", "uuid"}

// Normalize canonicalizes a single raw server record. A record carrying none
// of the known identifier fields yields a Product with an empty ID (Valid()
// reports false); callers exclude such records instead of failing.
func Normalize(raw []byte) (Product, error) {
	d := jx.DecodeBytes(raw)
	return normalizeObj(d)
}

// ListResult is a normalized catalog listing: the displayable records plus
// the server-reported total for pagination. The two are always produced
// together.
type ListResult struct {
	Products []Product
	Total    int
}

// NormalizeList canonicalizes a catalog listing payload. It accepts both a
// bare array of records and an envelope object ({products|items|data: [...],
// total|totalCount|count: n}). Records without a usable identifier are
// excluded. When the payload carries no total, the count of valid records is
// used.
func NormalizeList(raw []byte) (ListResult, error) {
	d := jx.DecodeBytes(raw)

	switch d.Next() {
	case jx.Array:
		items, err := normalizeArr(d)
		if err != nil {
			return ListResult{}, err
		}
		return ListResult{Products: items, Total: len(items)}, nil

	case jx.Object:
		var (
			items    []Product
			total    = -1
			arrSeen  bool
			arrError error
		)
		err := d.Obj(func(d *jx.Decoder, key string) error {
			switch key {
			case "products", "items", "data":
				arrSeen = true
				items, arrError = normalizeArr(d)
				return arrError
			case "total", "totalCount", "count":
				n, err := d.Int()
				if err != nil {
					return errors.Wrap(err, "decode total")
				}
				total = n
				return nil
			default:
				return d.Skip()
			}
		})
		if err != nil {
			return ListResult{}, errors.Wrap(err, "decode listing envelope")
		}
		if !arrSeen {
			return ListResult{}, errors.New("listing envelope has no product array")
		}
		if total < 0 {
			total = len(items)
		}
		return ListResult{Products: items, Total: total}, nil

	default:
		return ListResult{}, errors.New("unexpected listing payload shape")
	}
}

func normalizeArr(d *jx.Decoder) ([]Product, error) {
	var items []Product
	err := d.Arr(func(d *jx.Decoder) error {
		p, err := normalizeObj(d)
		if err != nil {
			return err
		}
		if p.Valid() {
			items = append(items, p)
		}
		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "decode product array")
	}
	return items, nil
}

func normalizeObj(d *jx.Decoder) (Product, error) {
	var (
		p      Product
		idRank = len(idFields)
	)
	err := d.Obj(func(d *jx.Decoder, key string) error {
		if rank := idFieldRank(key); rank >= 0 {
			id, err := decodeStringy(d)
			if err != nil {
				return errors.Wrapf(err, "decode %s", key)
			}
			if rank < idRank && id != "" {
				p.ID = id
				idRank = rank
			}
			return nil
		}

		switch key {
		case "name":
			return into(&p.Name, d)
		case "price":
			price, err := decodePrice(d)
			if err != nil {
				return err
			}
			p.Price = price
			return nil
		case "category":
			return into(&p.Category, d)
		case "subcategory":
			return into(&p.Subcategory, d)
		case "image_url", "image", "imageUrl":
			// First non-empty alias wins.
			s, err := decodeStringy(d)
			if err != nil {
				return err
			}
			if p.ImageURL == "" {
				p.ImageURL = s
			}
			return nil
		case "description":
			return into(&p.Description, d)
		case "created_at", "createdAt":
			s, err := decodeStringy(d)
			if err != nil {
				return err
			}
			// Unparseable timestamps are dropped, not fatal.
			if ts, err := time.Parse(time.RFC3339Nano, s); err == nil {
				p.CreatedAt = ts
			}
			return nil
		case "featured", "is_featured":
			if d.Next() != jx.Bool {
				return d.Skip()
			}
			b, err := d.Bool()
			if err != nil {
				return err
			}
			p.Featured = b
			return nil
		default:
			return d.Skip()
		}
	})
	if err != nil {
		return Product{}, errors.Wrap(err, "decode product record")
	}
	return p, nil
}

func idFieldRank(key string) int {
	for i, f := range idFields {
		if f == key {
			return i
		}
	}
	return -1
}

// decodeStringy reads a string value, tolerating numeric identifiers and
// nulls the way loosely-typed backends emit them.
func decodeStringy(d *jx.Decoder) (string, error) {
	switch d.Next() {
	case jx.String:
		return d.Str()
	case jx.Number:
		n, err := d.Num()
		if err != nil {
			return "", err
		}
		return strings.Trim(n.String(), `"`), nil
	case jx.Null:
		return "", d.Null()
	default:
		return "", d.Skip()
	}
}

// decodePrice accepts both JSON numbers and numeric strings. A negative or
// unparseable price clamps to zero rather than poisoning the record.
func decodePrice(d *jx.Decoder) (decimal.Decimal, error) {
	s, err := decodeStringy(d)
	if err != nil {
		return decimal.Zero, errors.Wrap(err, "decode price")
	}
	price, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil || price.IsNegative() {
		return decimal.Zero, nil
	}
	return price, nil
}

func into(dst *string, d *jx.Decoder) error {
	s, err := decodeStringy(d)
	if err != nil {
		return err
	}
	*dst = s
	return nil
}
