package uber

// Typed views of the v1 response bodies. The client never decodes into these
// itself; use Payload.Decode.

// Product is an entry of GET /products.
type Product struct {
	ProductID   string `json:"product_id"`
	DisplayName string `json:"display_name"`
	Description string `json:"description"`
	Capacity    int    `json:"capacity"`
	Image       string `json:"image"`
}

// ProductList is the body of GET /products.
type ProductList struct {
	Products []Product `json:"products"`
}

// PriceEstimate is an entry of GET /estimates/price. Estimate is the formatted
// range including the localized currency symbol.
type PriceEstimate struct {
	ProductID       string   `json:"product_id"`
	DisplayName     string   `json:"display_name"`
	CurrencyCode    string   `json:"currency_code"`
	Estimate        string   `json:"estimate"`
	LowEstimate     *float64 `json:"low_estimate"`
	HighEstimate    *float64 `json:"high_estimate"`
	SurgeMultiplier float64  `json:"surge_multiplier"`
	Duration        int      `json:"duration"`
	Distance        float64  `json:"distance"`
}

// PriceEstimateList is the body of GET /estimates/price.
type PriceEstimateList struct {
	Prices []PriceEstimate `json:"prices"`
}

// TimeEstimate is an entry of GET /estimates/time; Estimate is in seconds.
type TimeEstimate struct {
	ProductID   string `json:"product_id"`
	DisplayName string `json:"display_name"`
	Estimate    int    `json:"estimate"`
}

// TimeEstimateList is the body of GET /estimates/time.
type TimeEstimateList struct {
	Times []TimeEstimate `json:"times"`
}
