package importer_test

import (
	"testing"

	"github.com/Maharshi2203/Sattys-main/importer"
	"github.com/stretchr/testify/assert"
)

func TestNormalizeKey(t *testing.T) {
	cases := map[string]string{
		"Base Price":    "base_price",
		"base_price":    "base_price",
		" BASE-PRICE ":  "base_price",
		"GST %":         "gst__",
		"Product Name":  "product_name",
		"Image URL":     "image_url",
		"Shelf Life(d)": "shelf_life_d_",
	}
	for in, want := range cases {
		assert.Equal(t, want, importer.NormalizeKey(in), in)
	}
}

func TestNormalizeRow_FirstPresentValueWins(t *testing.T) {
	row := importer.Row{
		"Base Price": "",
		"base price": "120",
		"Name":       "Salt",
	}
	norm := importer.NormalizeRow(row)

	assert.Equal(t, "120", norm["base_price"])
	assert.Equal(t, "Salt", norm["name"])
}

func TestParsePrice(t *testing.T) {
	cases := []struct {
		in   any
		want float64
	}{
		{"₹1,234.50", 1234.5},
		{"Rs. 99", 99},
		{"$ 10.25", 10.25},
		{"18%", 18},
		{"  42 ", 42},
		{"abc", 0},
		{"", 0},
		{nil, 0},
		{12.5, 12.5},
		{7, 7},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, importer.ParsePrice(tc.in), "%v", tc.in)
	}
}
