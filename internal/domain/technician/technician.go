package technician

import "example.com/fieldops/internal/domain/listquery"

type Technician struct {
	ID             int64  `json:"id"`
	Name           string `json:"name"`
	Email          string `json:"email"`
	Phone          string `json:"phone"`
	Specialization string `json:"specialization"`
	IsActive       bool   `json:"is_active"`
	JobsCompleted  int    `json:"jobs_completed"`
}

type CreateInput struct {
	Name           string `json:"name" validate:"required,min=2,max=120"`
	Email          string `json:"email" validate:"required,email"`
	Phone          string `json:"phone" validate:"required,min=6,max=32"`
	Specialization string `json:"specialization" validate:"required,oneof=installation maintenance repair general"`
	Password       string `json:"password" validate:"required,min=8"`
}

var ActiveStatus = listquery.BoolLookup("Active", "Inactive")

var Mapping = listquery.Mapping{
	SortKey: "order",
	Status:  &listquery.Field{Key: "is_active", Transform: ActiveStatus},
	Columns: []listquery.ColumnField{
		{Column: "name", Key: "name", Transform: listquery.Raw()},
		{Column: "email", Key: "email", Transform: listquery.Raw()},
		{Column: "phone", Key: "phone", Transform: listquery.Raw()},
		{Column: "specialization", Key: "specialization", Transform: listquery.Raw()},
	},
}
