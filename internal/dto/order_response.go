package dto

type OrderResponse struct {
	ID         string            `json:"id"`
	Owner      string            `json:"owner"`
	Status     string            `json:"status"`
	Quantity   int64             `json:"quantity"`
	TotalPrice *float64          `json:"total_price,omitempty"`
	Products   []ProductResponse `json:"products"`
}

type TotalPriceRequest struct {
	TotalPrice float64 `json:"total_price"`
}
