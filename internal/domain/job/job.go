package job

import "example.com/fieldops/internal/domain/listquery"

// Status is the backend value of a job's lifecycle state.
type Status string

const (
	StatusAssign     Status = "assign"
	StatusAssigned   Status = "assigned"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
	StatusCancelled  Status = "cancelled"
)

func (s Status) IsValid() bool {
	switch s {
	case StatusAssign, StatusAssigned, StatusInProgress, StatusCompleted, StatusCancelled:
		return true
	default:
		return false
	}
}

// Label is the display label for s, or s itself when unknown.
func (s Status) Label() string {
	if l, ok := StatusLabels.Label(listquery.String(string(s))); ok {
		return l
	}
	return string(s)
}

type Type string

const (
	TypeInstallation Type = "installation"
	TypeMaintenance  Type = "maintenance"
	TypeRepair       Type = "repair"
)

// Job is an installation, maintenance visit or repair assigned to a
// technician.
type Job struct {
	ID             int64  `json:"id"`
	Type           Type   `json:"job_type"`
	ClientID       int64  `json:"client_id"`
	ClientName     string `json:"client_name"`
	TechnicianID   int64  `json:"technician_id"`
	TechnicianName string `json:"technician_name"`
	ProductName    string `json:"product_name"`
	Issue          string `json:"issue"`
	Status         Status `json:"status"`
	ScheduledAt    string `json:"scheduled_at"`
	Address        string `json:"address"`
}

// StatusLabels is shared by every job endpoint. "pending" jobs are the ones
// still waiting for assignment on the backend.
var StatusLabels = listquery.Lookup(
	listquery.Option{Label: "pending", Value: listquery.String(string(StatusAssign))},
	listquery.Option{Label: "Assigned", Value: listquery.String(string(StatusAssigned))},
	listquery.Option{Label: "In progress", Value: listquery.String(string(StatusInProgress))},
	listquery.Option{Label: "Completed", Value: listquery.String(string(StatusCompleted))},
	listquery.Option{Label: "Cancelled", Value: listquery.String(string(StatusCancelled))},
)

var TypeLabels = listquery.Lookup(
	listquery.Option{Label: "Installation", Value: listquery.String(string(TypeInstallation))},
	listquery.Option{Label: "Maintenance", Value: listquery.String(string(TypeMaintenance))},
	listquery.Option{Label: "Repair", Value: listquery.String(string(TypeRepair))},
)

func statusField() *listquery.Field {
	return &listquery.Field{Key: "status", Transform: StatusLabels}
}

var InstallationMapping = listquery.Mapping{
	SortKey: "order",
	Status:  statusField(),
	Columns: []listquery.ColumnField{
		{Column: "client_name", Key: "client_name", Transform: listquery.Raw()},
		{Column: "technician_name", Key: "technician_name", Transform: listquery.Raw()},
		{Column: "client_id", Key: "client_id", Transform: listquery.Numeric()},
	},
}

// MaintenanceMapping sorts with order_dir and filters the visit type under
// "type"; both names are what the maintenance endpoint expects.
var MaintenanceMapping = listquery.Mapping{
	SortKey: "order_dir",
	Status:  statusField(),
	JobType: &listquery.Field{Key: "type", Transform: listquery.Raw()},
	Columns: []listquery.ColumnField{
		{Column: "client_name", Key: "client_name", Transform: listquery.Raw()},
		{Column: "product_name", Key: "product_name", Transform: listquery.Raw()},
	},
}

var RepairMapping = listquery.Mapping{
	SortKey: "order",
	Status:  statusField(),
	Columns: []listquery.ColumnField{
		{Column: "client_name", Key: "client_name", Transform: listquery.Raw()},
		{Column: "issue", Key: "issue", Transform: listquery.Raw()},
		{Column: "technician_id", Key: "technician_id", Transform: listquery.Numeric()},
	},
}

// AssignedMapping queries the jobs assigned to the signed-in technician.
var AssignedMapping = listquery.Mapping{
	SortKey: "order",
	Status:  statusField(),
	JobType: &listquery.Field{Key: "job_type", Transform: TypeLabels},
	Columns: []listquery.ColumnField{
		{Column: "client_name", Key: "client_name", Transform: listquery.Raw()},
	},
}
