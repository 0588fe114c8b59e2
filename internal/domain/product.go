package domain

import "go.mongodb.org/mongo-driver/bson/primitive"

const (
	CategoryElectronics  = "electronics"
	CategoryCollectibles = "collectibles"
	CategoryClothing     = "clothing"
	CategoryOther        = "other"
)

func IsValidCategory(category string) bool {
	switch category {
	case CategoryElectronics, CategoryCollectibles, CategoryClothing, CategoryOther:
		return true
	}
	return false
}

type Review struct {
	Note      string `bson:"note" json:"note"`
	Owner     string `bson:"owner" json:"owner"`
	CreatedAt int64  `bson:"created_at" json:"created_at"`
}

type Product struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name        string             `bson:"name" json:"name"`
	Description string             `bson:"description" json:"description"`
	Category    string             `bson:"category" json:"category"`
	Price       float64            `bson:"price" json:"price"`
	Stock       int64              `bson:"stock" json:"stock"`
	ImageURL    string             `bson:"image_url" json:"image_url"`
	Owner       string             `bson:"owner" json:"owner"`
	Reviews     []Review           `bson:"reviews" json:"reviews"`
	Version     int64              `bson:"version" json:"-"`
	CreatedAt   int64              `bson:"created_at" json:"created_at"`
	UpdatedAt   int64              `bson:"updated_at" json:"updated_at"`
}
