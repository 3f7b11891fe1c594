package types

// FilterSelection is the finalized snapshot of one filter submission.
// It is immutable once produced; report views read it for display until
// the next submission or reset replaces it.
type FilterSelection struct {
	StartDate    string     `json:"startDate"` // YYYY-MM-DD, inclusive
	EndDate      string     `json:"endDate"`   // YYYY-MM-DD, inclusive
	Days         []string   `json:"days"`
	WeekendsOnly bool       `json:"weekendsOnly"`
	Shifts       []Shift    `json:"shifts"`
	Categories   []Category `json:"categories"`
	Agents       []string   `json:"agents"`
}

// FilterSummary describes the active filters and their effect, for the
// summary banner every report page shows.
type FilterSummary struct {
	DatasetID      string     `json:"datasetId"`
	DateRange      [2]string  `json:"dateRange"`
	Days           []string   `json:"days"`
	Shifts         []Shift    `json:"shifts"`
	Categories     []Category `json:"categories"`
	AgentsSelected int        `json:"agentsSelected"`
	AgentsTotal    int        `json:"agentsTotal"`
	FilteredRows   int        `json:"filteredRows"`
	TotalRows      int        `json:"totalRows"`
	DroppedRows    int        `json:"droppedRows"` // unparsable timestamps removed at ingest
}
