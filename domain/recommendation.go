package domain

// TopPreferences holds the top-K labels per signal, in accumulation order.
type TopPreferences struct {
	Categories []string `json:"categories"`
	Colors     []string `json:"colors"`
	Tags       []string `json:"tags"`
}

// Recommendation is one scored candidate. Score is an integer in [0,100].
type Recommendation struct {
	ProductID uint64 `json:"product_id"`
	Score     int    `json:"score"`
	Reason    string `json:"reason"`
}
