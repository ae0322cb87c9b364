package importer

// Field is a canonical product attribute a spreadsheet column can feed.
type Field string

const (
	FieldProductCode Field = "product_code"
	FieldName        Field = "name"
	FieldBrand       Field = "brand_name"
	FieldCompany     Field = "company_name"
	FieldCategory    Field = "category"
	FieldCaseSize    Field = "case_size"
	FieldPackSize    Field = "pack_size"
	FieldShelfLife   Field = "shelf_life"
	FieldBasePrice   Field = "base_price"
	FieldGST         Field = "gst_percentage"
	FieldFinalPrice  Field = "final_price"
	FieldDescription Field = "description"
	FieldStock       Field = "stock_status"
	FieldImage       Field = "image_url"
)

// FieldAliases lists the headers accepted for one field, highest priority first.
type FieldAliases struct {
	Field   Field
	Aliases []string
}

// AliasTable is an ordered set of field aliases.
type AliasTable []FieldAliases

// DefaultAliases is the header vocabulary of the catalog spreadsheets. Each
// alias also matches its normalized spelling, so "Product Code" covers
// "product_code" and "PRODUCT CODE".
var DefaultAliases = AliasTable{
	{FieldProductCode, []string{"Product Code", "SKU", "Code"}},
	{FieldName, []string{"Product Name", "Name"}},
	{FieldBrand, []string{"Brand", "Brand Name"}},
	{FieldCompany, []string{"Company", "Company Name"}},
	{FieldCategory, []string{"Category", "Collection"}},
	{FieldCaseSize, []string{"Case Size"}},
	{FieldPackSize, []string{"Pack Size"}},
	{FieldShelfLife, []string{"Shelf Life"}},
	{FieldBasePrice, []string{"Base Price", "BasePrice", "Price"}},
	{FieldGST, []string{"GST", "GST %", "GST Percentage"}},
	{FieldFinalPrice, []string{"Final Price", "FinalPrice"}},
	{FieldDescription, []string{"Description"}},
	{FieldStock, []string{"Stock", "Stock Status"}},
	{FieldImage, []string{"Image", "Image URL"}},
}

// Aliases returns the alias list for a field, or nil if the table has none.
func (t AliasTable) Aliases(field Field) []string {
	for _, fa := range t {
		if fa.Field == field {
			return fa.Aliases
		}
	}
	return nil
}

// Lookup returns the first non-empty cell for a field. Every raw header is
// tried in priority order before any normalized spelling, so a literal
// "Name" column beats a "product_name" one.
func (t AliasTable) Lookup(field Field, raw, normalized Row) (any, bool) {
	aliases := t.Aliases(field)
	for _, alias := range aliases {
		if v, ok := raw[alias]; ok && present(v) {
			return v, true
		}
	}
	for _, alias := range aliases {
		if v, ok := normalized[NormalizeKey(alias)]; ok && present(v) {
			return v, true
		}
	}
	return nil, false
}
