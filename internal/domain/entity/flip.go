package entity

// Flip is an auction priced far enough below its statistical baseline
// to be worth reselling.
type Flip struct {
	ItemName string
	UUID     string
	Price    int64

	// Baseline figures from the ended-auctions statistics at detection time.
	Baseline float64
	Profit   float64
	Median   float64
	IQR      float64
}
