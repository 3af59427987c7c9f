package part

import "example.com/fieldops/internal/domain/listquery"

type StockStatus string

const (
	StockIn  StockStatus = "in_stock"
	StockLow StockStatus = "low_stock"
	StockOut StockStatus = "out_of_stock"
)

// Part is one inventory line of spare parts.
type Part struct {
	ID          int64       `json:"id"`
	Name        string      `json:"name"`
	PartNumber  string      `json:"part_number"`
	ProductID   int64       `json:"product_id"`
	ProductName string      `json:"product_name"`
	Quantity    int         `json:"quantity"`
	MinQuantity int         `json:"min_quantity"`
	UnitPrice   float64     `json:"unit_price"`
	StockStatus StockStatus `json:"stock_status"`
}

type CreateInput struct {
	Name        string  `json:"name" validate:"required,min=2,max=120"`
	PartNumber  string  `json:"part_number" validate:"required,max=64"`
	ProductID   int64   `json:"product_id" validate:"gt=0"`
	Quantity    int     `json:"quantity" validate:"gte=0"`
	MinQuantity int     `json:"min_quantity" validate:"gte=0"`
	UnitPrice   float64 `json:"unit_price" validate:"gte=0"`
}

var StockLabels = listquery.Lookup(
	listquery.Option{Label: "In stock", Value: listquery.String(string(StockIn))},
	listquery.Option{Label: "Low stock", Value: listquery.String(string(StockLow))},
	listquery.Option{Label: "Out of stock", Value: listquery.String(string(StockOut))},
)

var Mapping = listquery.Mapping{
	SortKey: "order_dir",
	Status:  &listquery.Field{Key: "stock_status", Transform: StockLabels},
	Columns: []listquery.ColumnField{
		{Column: "name", Key: "name", Transform: listquery.Raw()},
		{Column: "part_number", Key: "part_number", Transform: listquery.Raw()},
		{Column: "quantity", Key: "quantity", Transform: listquery.Numeric()},
		{Column: "product_id", Key: "product_id", Transform: listquery.Numeric()},
	},
}
