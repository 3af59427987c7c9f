package http

import (
	"strconv"

	"example.com/fieldops/internal/domain/client"
	"example.com/fieldops/internal/domain/job"
	"example.com/fieldops/internal/domain/listquery"
	"example.com/fieldops/internal/domain/notification"
	"example.com/fieldops/internal/domain/part"
	"example.com/fieldops/internal/domain/product"
	"example.com/fieldops/internal/domain/technician"
	"example.com/fieldops/internal/interface/http/table"
)

const defaultLimit = 10

func idColumn[T any](path string, id func(T) int64) table.Column[T] {
	return table.Column[T]{
		Header: "ID",
		Accessor: table.Func(func(row T) table.Cell {
			n := strconv.FormatInt(id(row), 10)
			return table.Link(n, path+"/"+n)
		}),
		ClassName: "num",
	}
}

func activeBadge(active bool) table.Cell {
	if active {
		return table.StatusBadge("Active", "active", activeTones)
	}
	return table.StatusBadge("Inactive", "inactive", activeTones)
}

var activeTones = map[string]string{"active": table.ToneGreen, "inactive": table.ToneGray}

var (
	productTones = map[string]string{
		string(product.StatusAvailable):    table.ToneGreen,
		string(product.StatusOutOfStock):   table.ToneRed,
		string(product.StatusDiscontinued): table.ToneGray,
	}
	stockTones = map[string]string{
		string(part.StockIn):  table.ToneGreen,
		string(part.StockLow): table.ToneYellow,
		string(part.StockOut): table.ToneRed,
	}
	jobTones = map[string]string{
		string(job.StatusAssign):     table.ToneYellow,
		string(job.StatusAssigned):   table.ToneBlue,
		string(job.StatusInProgress): table.ToneBlue,
		string(job.StatusCompleted):  table.ToneGreen,
		string(job.StatusCancelled):  table.ToneGray,
	}
)

// lookupBadge shows the display label of a backend value, falling back to
// the value itself.
func lookupBadge(l *listquery.LookupTransform, value string, tones map[string]string) table.Cell {
	label, ok := l.Label(listquery.String(value))
	if !ok {
		label = value
	}
	return table.StatusBadge(label, value, tones)
}

var clientColumns = []table.Column[client.Client]{
	idColumn("/clients", func(c client.Client) int64 { return c.ID }),
	{Header: "Name", Accessor: table.Field[client.Client]("name")},
	{Header: "Email", Accessor: table.Field[client.Client]("email")},
	{Header: "Phone", Accessor: table.Field[client.Client]("phone")},
	{Header: "City", Accessor: table.Field[client.Client]("city")},
	{Header: "Status", Accessor: table.Func(func(c client.Client) table.Cell { return activeBadge(c.IsActive) })},
}

var clientsPage = listPage[client.Client]{
	key:      "clients",
	title:    "Clients",
	noun:     "Client",
	path:     "/clients",
	endpoint: "/clients",
	mapping:  client.Mapping,
	limit:    defaultLimit,
	columns:  clientColumns,
	details: append(clientColumns[1:len(clientColumns):len(clientColumns)],
		table.Column[client.Client]{Header: "Address", Accessor: table.Field[client.Client]("address")},
		table.Column[client.Client]{Header: "Created", Accessor: table.Field[client.Client]("created_at")},
	),
	id:        func(c client.Client) int64 { return c.ID },
	creatable: true,
}

var clientsForm = createForm[client.Client, client.CreateInput]{
	title: "New client",
	fields: []formField{
		{Name: "name", Label: "Name", Type: "text"},
		{Name: "email", Label: "Email", Type: "email"},
		{Name: "phone", Label: "Phone", Type: "tel"},
		{Name: "address", Label: "Address", Type: "text"},
		{Name: "city", Label: "City", Type: "text"},
	},
}

var technicianColumns = []table.Column[technician.Technician]{
	idColumn("/technicians", func(t technician.Technician) int64 { return t.ID }),
	{Header: "Name", Accessor: table.Field[technician.Technician]("name")},
	{Header: "Email", Accessor: table.Field[technician.Technician]("email")},
	{Header: "Phone", Accessor: table.Field[technician.Technician]("phone")},
	{Header: "Specialization", Accessor: table.Field[technician.Technician]("specialization")},
	{Header: "Status", Accessor: table.Func(func(t technician.Technician) table.Cell { return activeBadge(t.IsActive) })},
}

var techniciansPage = listPage[technician.Technician]{
	key:      "technicians",
	title:    "Technicians",
	noun:     "Technician",
	path:     "/technicians",
	endpoint: "/technicians",
	mapping:  technician.Mapping,
	limit:    defaultLimit,
	columns:  technicianColumns,
	details: append(technicianColumns[1:len(technicianColumns):len(technicianColumns)],
		table.Column[technician.Technician]{Header: "Jobs completed", Accessor: table.Field[technician.Technician]("jobs_completed")},
	),
	id:        func(t technician.Technician) int64 { return t.ID },
	creatable: true,
}

var techniciansForm = createForm[technician.Technician, technician.CreateInput]{
	title: "New technician",
	fields: []formField{
		{Name: "name", Label: "Name", Type: "text"},
		{Name: "email", Label: "Email", Type: "email"},
		{Name: "phone", Label: "Phone", Type: "tel"},
		{Name: "specialization", Label: "Specialization", Options: []string{"installation", "maintenance", "repair", "general"}},
		{Name: "password", Label: "Initial password", Type: "password"},
	},
}

var productColumns = []table.Column[product.Product]{
	idColumn("/products", func(p product.Product) int64 { return p.ID }),
	{Header: "Name", Accessor: table.Field[product.Product]("name")},
	{Header: "Model", Accessor: table.Field[product.Product]("model")},
	{Header: "Brand", Accessor: table.Field[product.Product]("brand")},
	{Header: "Price", Accessor: table.Field[product.Product]("price"), ClassName: "num"},
	{Header: "Warranty (months)", Accessor: table.Field[product.Product]("warranty_months"), ClassName: "num"},
	{Header: "Status", Accessor: table.Func(func(p product.Product) table.Cell {
		return lookupBadge(product.StatusLabels, string(p.Status), productTones)
	})},
}

var productsPage = listPage[product.Product]{
	key:       "products",
	title:     "Products",
	noun:      "Product",
	path:      "/products",
	endpoint:  "/products",
	mapping:   product.Mapping,
	limit:     defaultLimit,
	columns:   productColumns,
	details:   productColumns[1:],
	id:        func(p product.Product) int64 { return p.ID },
	creatable: true,
}

var productsForm = createForm[product.Product, product.CreateInput]{
	title: "New product",
	fields: []formField{
		{Name: "name", Label: "Name", Type: "text"},
		{Name: "model", Label: "Model", Type: "text"},
		{Name: "brand", Label: "Brand", Type: "text"},
		{Name: "price", Label: "Price", Type: "number"},
		{Name: "warranty_months", Label: "Warranty (months)", Type: "number"},
	},
}

var partColumns = []table.Column[part.Part]{
	idColumn("/parts", func(p part.Part) int64 { return p.ID }),
	{Header: "Name", Accessor: table.Field[part.Part]("name")},
	{Header: "Part number", Accessor: table.Field[part.Part]("part_number")},
	{Header: "Product", Accessor: table.Field[part.Part]("product_name")},
	{Header: "Quantity", Accessor: table.Field[part.Part]("quantity"), ClassName: "num"},
	{Header: "Stock", Accessor: table.Func(func(p part.Part) table.Cell {
		return lookupBadge(part.StockLabels, string(p.StockStatus), stockTones)
	})},
}

var partsPage = listPage[part.Part]{
	key:      "parts",
	title:    "Parts",
	noun:     "Part",
	path:     "/parts",
	endpoint: "/parts",
	mapping:  part.Mapping,
	limit:    defaultLimit,
	columns:  partColumns,
	details: append(partColumns[1:len(partColumns):len(partColumns)],
		table.Column[part.Part]{Header: "Minimum quantity", Accessor: table.Field[part.Part]("min_quantity")},
		table.Column[part.Part]{Header: "Unit price", Accessor: table.Field[part.Part]("unit_price")},
	),
	id:        func(p part.Part) int64 { return p.ID },
	creatable: true,
}

var partsForm = createForm[part.Part, part.CreateInput]{
	title: "New part",
	fields: []formField{
		{Name: "name", Label: "Name", Type: "text"},
		{Name: "part_number", Label: "Part number", Type: "text"},
		{Name: "product_id", Label: "Product ID", Type: "number"},
		{Name: "quantity", Label: "Quantity", Type: "number"},
		{Name: "min_quantity", Label: "Minimum quantity", Type: "number"},
		{Name: "unit_price", Label: "Unit price", Type: "number"},
	},
}

func jobStatusColumn() table.Column[job.Job] {
	return table.Column[job.Job]{Header: "Status", Accessor: table.Func(func(j job.Job) table.Cell {
		return table.StatusBadge(j.Status.Label(), string(j.Status), jobTones)
	})}
}

func jobID(j job.Job) int64 { return j.ID }

var jobDetails = []table.Column[job.Job]{
	{Header: "Type", Accessor: table.Text(func(j job.Job) string { return jobTypeLabel(j.Type) })},
	{Header: "Client", Accessor: table.Field[job.Job]("client_name")},
	{Header: "Technician", Accessor: table.Field[job.Job]("technician_name")},
	{Header: "Product", Accessor: table.Field[job.Job]("product_name")},
	{Header: "Issue", Accessor: table.Field[job.Job]("issue")},
	{Header: "Address", Accessor: table.Field[job.Job]("address")},
	{Header: "Scheduled", Accessor: table.Field[job.Job]("scheduled_at")},
	jobStatusColumn(),
}

func jobTypeLabel(t job.Type) string {
	if l, ok := job.TypeLabels.Label(listquery.String(string(t))); ok {
		return l
	}
	return string(t)
}

var installationsPage = listPage[job.Job]{
	key:      "installations",
	title:    "Installations",
	noun:     "Installation",
	path:     "/installations",
	endpoint: "/installations",
	mapping:  job.InstallationMapping,
	limit:    defaultLimit,
	columns: []table.Column[job.Job]{
		idColumn("/installations", jobID),
		{Header: "Client", Accessor: table.Field[job.Job]("client_name")},
		{Header: "Technician", Accessor: table.Field[job.Job]("technician_name")},
		{Header: "Product", Accessor: table.Field[job.Job]("product_name")},
		{Header: "Scheduled", Accessor: table.Field[job.Job]("scheduled_at")},
		jobStatusColumn(),
	},
	details: jobDetails,
	id:      jobID,
}

var maintenancePage = listPage[job.Job]{
	key:      "maintenance",
	title:    "Maintenance",
	noun:     "Maintenance visit",
	path:     "/maintenance",
	endpoint: "/maintenance",
	mapping:  job.MaintenanceMapping,
	limit:    defaultLimit,
	columns: []table.Column[job.Job]{
		idColumn("/maintenance", jobID),
		{Header: "Client", Accessor: table.Field[job.Job]("client_name")},
		{Header: "Product", Accessor: table.Field[job.Job]("product_name")},
		{Header: "Technician", Accessor: table.Field[job.Job]("technician_name")},
		{Header: "Scheduled", Accessor: table.Field[job.Job]("scheduled_at")},
		jobStatusColumn(),
	},
	details: jobDetails,
	id:      jobID,
}

var repairsPage = listPage[job.Job]{
	key:      "repairs",
	title:    "Repairs",
	noun:     "Repair",
	path:     "/repairs",
	endpoint: "/repairs",
	mapping:  job.RepairMapping,
	limit:    defaultLimit,
	columns: []table.Column[job.Job]{
		idColumn("/repairs", jobID),
		{Header: "Client", Accessor: table.Field[job.Job]("client_name")},
		{Header: "Issue", Accessor: table.Field[job.Job]("issue")},
		{Header: "Technician", Accessor: table.Field[job.Job]("technician_name")},
		{Header: "Scheduled", Accessor: table.Field[job.Job]("scheduled_at")},
		jobStatusColumn(),
	},
	details: jobDetails,
	id:      jobID,
}

var assignedJobsPage = listPage[job.Job]{
	key:      "jobs",
	title:    "My jobs",
	noun:     "Job",
	path:     "/technician/jobs",
	endpoint: "/jobs/assigned",
	mapping:  job.AssignedMapping,
	limit:    defaultLimit,
	columns: []table.Column[job.Job]{
		{Header: "ID", Accessor: table.Field[job.Job]("id"), ClassName: "num"},
		{Header: "Type", Accessor: table.Text(func(j job.Job) string { return jobTypeLabel(j.Type) })},
		{Header: "Client", Accessor: table.Field[job.Job]("client_name")},
		{Header: "Address", Accessor: table.Field[job.Job]("address")},
		{Header: "Scheduled", Accessor: table.Field[job.Job]("scheduled_at")},
		jobStatusColumn(),
	},
	id: jobID,
}

var notificationsPage = listPage[notification.Notification]{
	key:      "notifications",
	title:    "Notifications",
	noun:     "Notification",
	path:     "/notifications",
	endpoint: "/notifications",
	mapping:  notification.Mapping,
	limit:    notification.DefaultLimit,
	columns: []table.Column[notification.Notification]{
		{Header: "Title", Accessor: table.Field[notification.Notification]("title")},
		{Header: "Message", Accessor: table.Field[notification.Notification]("message")},
		{Header: "Type", Accessor: table.Field[notification.Notification]("type")},
		{Header: "Status", Accessor: table.Func(func(n notification.Notification) table.Cell {
			if n.IsRead {
				return table.StatusBadge("Read", "read", readTones)
			}
			return table.StatusBadge("Unread", "unread", readTones)
		})},
		{Header: "Received", Accessor: table.Field[notification.Notification]("created_at")},
	},
	id: func(n notification.Notification) int64 { return n.ID },
}

var readTones = map[string]string{"read": table.ToneGray, "unread": table.ToneBlue}
