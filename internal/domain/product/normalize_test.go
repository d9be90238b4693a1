package product

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize_IdentifierAliases(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"canonical id", `{"id":"p1","name":"Pulseira"}`, "p1"},
		{"underscore id only", `{"_id":"64fa0c","name":"Pulseira"}`, "64fa0c"},
		{"uuid only", `{"uuid":"4be0643f","name":"Pulseira"}`, "4be0643f"},
		{"id wins over _id", `{"_id":"mongo","id":"p1"}`, "p1"},
		{"priority independent of key order", `{"uuid":"u","_id":"m","id":"p1"}`, "p1"},
		{"numeric id", `{"id":7,"name":"Tiara"}`, "7"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := Normalize([]byte(tt.raw))
			require.NoError(t, err)
			assert.Equal(t, tt.want, p.ID)
			assert.True(t, p.Valid())
		})
	}
}

func TestNormalize_NoIdentifier(t *testing.T) {
	p, err := Normalize([]byte(`{"name":"Orfã","price":10}`))
	require.NoError(t, err)
	assert.False(t, p.Valid(), "record without any identifier field is excluded, not an error")
}

func TestNormalize_Price(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want decimal.Decimal
	}{
		{"number", `{"id":"p","price":49.9}`, decimal.RequireFromString("49.9")},
		{"numeric string", `{"id":"p","price":"49.90"}`, decimal.RequireFromString("49.90")},
		{"negative clamps to zero", `{"id":"p","price":-5}`, decimal.Zero},
		{"garbage clamps to zero", `{"id":"p","price":"abc"}`, decimal.Zero},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := Normalize([]byte(tt.raw))
			require.NoError(t, err)
			assert.True(t, tt.want.Equal(p.Price), "want %s, got %s", tt.want, p.Price)
		})
	}
}

func TestNormalize_FullRecord(t *testing.T) {
	raw := `{
		"id": "p42",
		"name": "Pulseira Arco-Íris",
		"price": "35.00",
		"category": "Pulseiras",
		"subcategory": "Infantil",
		"image_url": "/img/p42.jpg",
		"description": "Feita à mão",
		"created_at": "2025-03-01T12:30:00Z",
		"featured": true,
		"stock_hint": {"ignored": [1,2,3]}
	}`
	p, err := Normalize([]byte(raw))
	require.NoError(t, err)

	assert.Equal(t, "p42", p.ID)
	assert.Equal(t, "Pulseira Arco-Íris", p.Name)
	assert.Equal(t, "35.00", p.DisplayPrice())
	assert.Equal(t, "Pulseiras", p.Category)
	assert.Equal(t, "Infantil", p.Subcategory)
	assert.Equal(t, "/img/p42.jpg", p.ImageURL)
	assert.Equal(t, "Feita à mão", p.Description)
	assert.Equal(t, time.Date(2025, 3, 1, 12, 30, 0, 0, time.UTC), p.CreatedAt)
	assert.True(t, p.Featured)
}

func TestNormalize_ImageAliases(t *testing.T) {
	p, err := Normalize([]byte(`{"id":"p","imageUrl":"/a.jpg"}`))
	require.NoError(t, err)
	assert.Equal(t, "/a.jpg", p.ImageURL)

	p, err = Normalize([]byte(`{"id":"p","image":null}`))
	require.NoError(t, err)
	assert.Equal(t, PlaceholderImage, p.DisplayImage())
}

func TestNormalizeList_BareArray(t *testing.T) {
	raw := `[
		{"id":"a","name":"A","price":1},
		{"name":"corrupt, no id"},
		{"_id":"b","name":"B","price":2}
	]`
	res, err := NormalizeList([]byte(raw))
	require.NoError(t, err)

	require.Len(t, res.Products, 2, "corrupt record is excluded")
	assert.Equal(t, "a", res.Products[0].ID)
	assert.Equal(t, "b", res.Products[1].ID)
	assert.Equal(t, 2, res.Total)
}

func TestNormalizeList_Envelope(t *testing.T) {
	raw := `{"page":3,"products":[{"id":"a"},{"id":"b"}],"total":57}`
	res, err := NormalizeList([]byte(raw))
	require.NoError(t, err)

	assert.Len(t, res.Products, 2)
	assert.Equal(t, 57, res.Total, "server-reported total drives pagination")
}

func TestNormalizeList_EnvelopeWithoutTotal(t *testing.T) {
	res, err := NormalizeList([]byte(`{"items":[{"id":"a"}]}`))
	require.NoError(t, err)
	assert.Equal(t, 1, res.Total)
}

func TestNormalizeList_Malformed(t *testing.T) {
	_, err := NormalizeList([]byte(`"just a string"`))
	assert.Error(t, err)

	_, err = NormalizeList([]byte(`{"page":1}`))
	assert.Error(t, err, "envelope without a product array is malformed")
}
