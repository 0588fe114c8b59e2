package domain

import "go.mongodb.org/mongo-driver/bson/primitive"

const (
	OrderStatusOpen   = "open"
	OrderStatusPlaced = "placed"
)

// Order is a user's cart. An owner has at most one order with status "open";
// every unit sitting in the cart is one entry in OrderedProducts. Version
// guards every mutation so concurrent writers never clobber each other.
type Order struct {
	ID              primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	Owner           string               `bson:"owner" json:"owner"`
	OrderedProducts []primitive.ObjectID `bson:"ordered_products" json:"ordered_products"`
	Quantity        int64                `bson:"quantity" json:"quantity"`
	TotalPrice      *float64             `bson:"total_price,omitempty" json:"total_price,omitempty"`
	Status          string               `bson:"status" json:"status"`
	Version         int64                `bson:"version" json:"-"`
	CreatedAt       int64                `bson:"created_at" json:"created_at"`
	UpdatedAt       int64                `bson:"updated_at" json:"updated_at"`
}
