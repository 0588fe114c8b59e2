package domain

import "go.mongodb.org/mongo-driver/bson/primitive"

const (
	PaymentStatusPending = "pending"
	PaymentStatusSuccess = "success"
	PaymentStatusFailed  = "failed"
	PaymentStatusExpired = "expired"
)

type Payment struct {
	ID                primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	TransactionNumber string             `bson:"transaction_number" json:"transaction_number"`
	OrderID           primitive.ObjectID `bson:"order_id" json:"order_id"`
	Owner             string             `bson:"owner" json:"owner"`
	Email             string             `bson:"email" json:"email"`
	Amount            float64            `bson:"amount" json:"amount"`
	Status            string             `bson:"status" json:"status"`
	ExpiredAt         int64              `bson:"expired_at" json:"expired_at"`
	CreatedAt         int64              `bson:"created_at" json:"created_at"`
	UpdatedAt         int64              `bson:"updated_at" json:"updated_at"`
}
