package importer

import (
	"errors"
	"strings"

	"github.com/Maharshi2203/Sattys-main/models"
)

// ErrMissingName rejects a row whose name is empty under every alias.
var ErrMissingName = errors.New("missing product name")

// DefaultBrand is used when a row has no brand.
const DefaultBrand = "Generic"

// ProductDraft is a product assembled from one row, before its category is
// resolved.
type ProductDraft struct {
	ProductCode   string
	Name          string
	BrandName     string
	CompanyName   string
	CategoryName  string
	CaseSize      string
	PackSize      string
	ShelfLife     string
	BasePrice     float64
	GSTPercentage float64
	FinalPrice    float64
	Description   string
	StockStatus   models.StockStatus
	ImageURL      string
}

// RowMapper turns raw rows into product drafts using an alias table.
type RowMapper struct {
	aliases AliasTable
}

// NewRowMapper returns a mapper over the given aliases, or DefaultAliases when nil.
func NewRowMapper(aliases AliasTable) *RowMapper {
	if aliases == nil {
		aliases = DefaultAliases
	}
	return &RowMapper{aliases: aliases}
}

// Map builds a draft from a raw row. The only failure is ErrMissingName.
func (m *RowMapper) Map(raw Row) (ProductDraft, error) {
	norm := NormalizeRow(raw)

	text := func(f Field) string {
		v, _ := m.aliases.Lookup(f, raw, norm)
		return strings.TrimSpace(cellString(v))
	}
	amount := func(f Field) float64 {
		v, _ := m.aliases.Lookup(f, raw, norm)
		return ParsePrice(v)
	}

	d := ProductDraft{
		ProductCode:   text(FieldProductCode),
		Name:          text(FieldName),
		BrandName:     text(FieldBrand),
		CompanyName:   text(FieldCompany),
		CategoryName:  text(FieldCategory),
		CaseSize:      text(FieldCaseSize),
		PackSize:      text(FieldPackSize),
		ShelfLife:     text(FieldShelfLife),
		BasePrice:     amount(FieldBasePrice),
		GSTPercentage: amount(FieldGST),
		Description:   text(FieldDescription),
		StockStatus:   models.ParseStockStatus(text(FieldStock)),
		ImageURL:      text(FieldImage),
	}
	if d.BrandName == "" {
		d.BrandName = DefaultBrand
	}

	d.FinalPrice = amount(FieldFinalPrice)
	if d.FinalPrice == 0 {
		d.FinalPrice = models.DeriveFinalPrice(d.BasePrice, d.GSTPercentage)
	}

	if d.Name == "" {
		return d, ErrMissingName
	}
	return d, nil
}

// Product converts the draft into a storable product.
func (d ProductDraft) Product(categoryID *uint) *models.Product {
	p := &models.Product{
		ProductCode:   optional(d.ProductCode),
		Name:          d.Name,
		BrandName:     optional(d.BrandName),
		CompanyName:   optional(d.CompanyName),
		CategoryID:    categoryID,
		CaseSize:      optional(d.CaseSize),
		PackSize:      optional(d.PackSize),
		ShelfLife:     optional(d.ShelfLife),
		BasePrice:     d.BasePrice,
		GSTPercentage: d.GSTPercentage,
		FinalPrice:    d.FinalPrice,
		Description:   optional(d.Description),
		ImageURL:      optional(d.ImageURL),
		StockStatus:   d.StockStatus,
		IsActive:      true,
	}
	if d.ImageURL != "" {
		p.Images = []string{d.ImageURL}
	}
	return p
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
