package product

import "example.com/fieldops/internal/domain/listquery"

type Status string

const (
	StatusAvailable    Status = "available"
	StatusOutOfStock   Status = "out_of_stock"
	StatusDiscontinued Status = "discontinued"
)

type Product struct {
	ID             int64   `json:"id"`
	Name           string  `json:"name"`
	Model          string  `json:"model"`
	Brand          string  `json:"brand"`
	Price          float64 `json:"price"`
	WarrantyMonths int     `json:"warranty_months"`
	Status         Status  `json:"status"`
}

type CreateInput struct {
	Name           string  `json:"name" validate:"required,min=2,max=120"`
	Model          string  `json:"model" validate:"required,max=120"`
	Brand          string  `json:"brand" validate:"max=120"`
	Price          float64 `json:"price" validate:"gt=0"`
	WarrantyMonths int     `json:"warranty_months" validate:"gte=0,lte=120"`
}

var StatusLabels = listquery.Lookup(
	listquery.Option{Label: "Available", Value: listquery.String(string(StatusAvailable))},
	listquery.Option{Label: "Out of stock", Value: listquery.String(string(StatusOutOfStock))},
	listquery.Option{Label: "Discontinued", Value: listquery.String(string(StatusDiscontinued))},
)

var Mapping = listquery.Mapping{
	SortKey: "order_dir",
	Status:  &listquery.Field{Key: "status", Transform: StatusLabels},
	Columns: []listquery.ColumnField{
		{Column: "name", Key: "name", Transform: listquery.Raw()},
		{Column: "model", Key: "model", Transform: listquery.Raw()},
		{Column: "brand", Key: "brand", Transform: listquery.Raw()},
		{Column: "warranty_months", Key: "warranty_months", Transform: listquery.Numeric()},
	},
}
