package dto

type ReviewResponse struct {
	Note      string `json:"note"`
	Owner     string `json:"owner"`
	CreatedAt int64  `json:"created_at"`
}

type ProductResponse struct {
	ID          string           `json:"id"`
	Name        string           `json:"name"`
	Description string           `json:"description"`
	Category    string           `json:"category"`
	Price       float64          `json:"price"`
	Stock       int64            `json:"stock"`
	ImageURL    string           `json:"image_url"`
	Owner       string           `json:"owner"`
	Reviews     []ReviewResponse `json:"reviews"`
}
