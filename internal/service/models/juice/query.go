package juice

// QueryJuicesModel represents filter parameters for querying juices
type QueryJuicesModel struct {
	Ids          []int64 `json:"ids,omitempty"`
	Category     string  `json:"category,omitempty"`
	Availability *bool   `json:"availability,omitempty"`
	Featured     *bool   `json:"featured,omitempty"`
	Search       string  `json:"search,omitempty"`
	Limit        int     `json:"limit,omitempty"`
	Offset       int     `json:"offset,omitempty"`
}
