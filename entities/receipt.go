package entities

// Receipt aggregates all shopping activity for one calendar day. There is at
// most one Receipt per date; repeat ingestions on the same day accumulate
// into it.
type Receipt struct {
	ID        string   `json:"id"`
	Date      string   `json:"date"`
	TotalCost float64  `json:"total_cost"`
	ImageRefs []string `json:"image_refs"`
	ItemCount int      `json:"item_count"`
}
