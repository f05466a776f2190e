package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Order statuses. Transitions are not sequenced: an admin may set any
// status from any prior value, only out-of-enum values are rejected.
const (
	OrderStatusPending    = "pending"
	OrderStatusConfirmed  = "confirmed"
	OrderStatusProcessing = "processing"
	OrderStatusShipped    = "shipped"
	OrderStatusDelivered  = "delivered"
	OrderStatusCancelled  = "cancelled"
)

// RevenueStatuses are the statuses whose orders count toward revenue.
var RevenueStatuses = []string{
	OrderStatusConfirmed,
	OrderStatusProcessing,
	OrderStatusShipped,
	OrderStatusDelivered,
}

// ValidOrderStatus reports whether s is one of the known statuses.
func ValidOrderStatus(s string) bool {
	switch s {
	case OrderStatusPending, OrderStatusConfirmed, OrderStatusProcessing,
		OrderStatusShipped, OrderStatusDelivered, OrderStatusCancelled:
		return true
	}
	return false
}

// OrderItem is a single line item with the price read at purchase time.
type OrderItem struct {
	ProductID primitive.ObjectID `json:"productId" bson:"productId"`
	Product   *ProductSummary    `json:"product,omitempty" bson:"-"`
	Quantity  int                `json:"quantity" bson:"quantity"`
	Price     float64            `json:"price" bson:"price"`
}

// ShippingAddress is the delivery address captured at checkout.
type ShippingAddress struct {
	Street  string `json:"street" bson:"street" binding:"required"`
	City    string `json:"city" bson:"city" binding:"required"`
	State   string `json:"state" bson:"state" binding:"required"`
	ZipCode string `json:"zipCode" bson:"zipCode" binding:"required"`
	Country string `json:"country" bson:"country" binding:"required"`
}

// Order defines the structure for a persisted checkout submission.
type Order struct {
	ID              primitive.ObjectID `json:"_id,omitempty" bson:"_id,omitempty"`
	UserID          primitive.ObjectID `json:"userId" bson:"userId"`
	User            *UserSummary       `json:"user,omitempty" bson:"-"`
	Products        []OrderItem        `json:"products" bson:"products"`
	ShippingAddress ShippingAddress    `json:"shippingAddress" bson:"shippingAddress"`
	TotalAmount     float64            `json:"totalAmount" bson:"totalAmount"`
	Status          string             `json:"status" bson:"status"`
	CreatedAt       time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt       time.Time          `json:"updatedAt" bson:"updatedAt"`
}

// OrderItemInput is one (product, quantity) pair of a checkout payload.
type OrderItemInput struct {
	ProductID string `json:"productId" binding:"required"`
	Quantity  int    `json:"quantity" binding:"required,gt=0"`
}

// CreateOrderRequest defines the structure for a checkout submission.
type CreateOrderRequest struct {
	Products        []OrderItemInput `json:"products" binding:"required,min=1,dive"`
	ShippingAddress ShippingAddress  `json:"shippingAddress" binding:"required"`
}

// StatusInput defines the structure for an order status change.
type StatusInput struct {
	Status string `json:"status" binding:"required"`
}
