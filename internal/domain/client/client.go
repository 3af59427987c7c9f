package client

import "example.com/fieldops/internal/domain/listquery"

type Client struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Address   string `json:"address"`
	City      string `json:"city"`
	IsActive  bool   `json:"is_active"`
	CreatedAt string `json:"created_at"`
}

type CreateInput struct {
	Name    string `json:"name" validate:"required,min=2,max=120"`
	Email   string `json:"email" validate:"required,email"`
	Phone   string `json:"phone" validate:"required,min=6,max=32"`
	Address string `json:"address" validate:"max=255"`
	City    string `json:"city" validate:"max=120"`
}

// ActiveStatus translates the status filter to the backend's is_active flag.
var ActiveStatus = listquery.BoolLookup("Active", "Inactive")

var Mapping = listquery.Mapping{
	SortKey: "order",
	Status:  &listquery.Field{Key: "is_active", Transform: ActiveStatus},
	Columns: []listquery.ColumnField{
		{Column: "name", Key: "name", Transform: listquery.Raw()},
		{Column: "email", Key: "email", Transform: listquery.Raw()},
		{Column: "phone", Key: "phone", Transform: listquery.Raw()},
		{Column: "city", Key: "city", Transform: listquery.Raw()},
	},
}
