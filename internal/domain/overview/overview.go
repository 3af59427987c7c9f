package overview

type MonthCount struct {
	Month string `json:"month"`
	Count int    `json:"count"`
}

// Stats is the payload of the backend's overview endpoint.
type Stats struct {
	TotalClients     int          `json:"total_clients"`
	TotalTechnicians int          `json:"total_technicians"`
	PendingJobs      int          `json:"pending_jobs"`
	ActiveJobs       int          `json:"active_jobs"`
	CompletedJobs    int          `json:"completed_jobs"`
	LowStockParts    int          `json:"low_stock_parts"`
	Revenue          float64      `json:"revenue"`
	JobsByMonth      []MonthCount `json:"jobs_by_month"`
}

// MaxMonthCount is the largest month count, used to scale the chart.
func (s Stats) MaxMonthCount() int {
	top := 0
	for _, m := range s.JobsByMonth {
		if m.Count > top {
			top = m.Count
		}
	}
	return top
}
