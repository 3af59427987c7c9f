package notification

import "example.com/fieldops/internal/domain/listquery"

type Notification struct {
	ID        int64  `json:"id"`
	Title     string `json:"title"`
	Message   string `json:"message"`
	Type      string `json:"type"`
	IsRead    bool   `json:"is_read"`
	CreatedAt string `json:"created_at"`
}

const DefaultLimit = 20

var ReadStatus = listquery.BoolLookup("Read", "Unread")

var Mapping = listquery.Mapping{
	SortKey:  "order",
	Status:   &listquery.Field{Key: "is_read", Transform: ReadStatus},
	Defaults: []listquery.Default{{Key: "sort_by", Value: listquery.String("created_at")}},
	Columns: []listquery.ColumnField{
		{Column: "type", Key: "type", Transform: listquery.Raw()},
	},
}

// UnreadFilter selects unread notifications only.
func UnreadFilter() listquery.FilterState {
	return listquery.FilterState{StatusFilter: "Unread"}
}
