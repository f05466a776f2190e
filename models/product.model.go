package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// DefaultProductImage is stored when a product is created without one.
const DefaultProductImage = "/images/placeholder.jpg"

// Product defines the structure for a catalog product.
type Product struct {
	ID          primitive.ObjectID `json:"_id,omitempty" bson:"_id,omitempty"`
	Name        string             `json:"name" bson:"name"`
	Description string             `json:"description" bson:"description"`
	Price       float64            `json:"price" bson:"price"`
	Image       string             `json:"image" bson:"image"`
	CategoryID  primitive.ObjectID `json:"categoryId" bson:"categoryId"`
	Category    *CategoryRef       `json:"category,omitempty" bson:"-"`
	Stock       int                `json:"stock" bson:"stock"`
	IsActive    bool               `json:"isActive" bson:"isActive"`
	CreatedAt   time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt   time.Time          `json:"updatedAt" bson:"updatedAt"`
}

// ProductSummary is the populated shape attached to order line items.
type ProductSummary struct {
	ID    primitive.ObjectID `json:"_id" bson:"_id"`
	Name  string             `json:"name" bson:"name"`
	Image string             `json:"image" bson:"image"`
}

// ProductInput defines the structure for creating a product.
type ProductInput struct {
	Name        string  `json:"name" binding:"required"`
	Description string  `json:"description" binding:"required"`
	Price       float64 `json:"price" binding:"required,gt=0"`
	Image       string  `json:"image"`
	ImageBase64 string  `json:"image_base64"`
	CategoryID  string  `json:"categoryId" binding:"required"`
	Stock       *int    `json:"stock" binding:"required,gte=0"`
}

// ProductUpdate defines the structure for a partial product update.
// Pointer fields distinguish "absent" from zero values.
type ProductUpdate struct {
	Name        *string  `json:"name"`
	Description *string  `json:"description"`
	Price       *float64 `json:"price"`
	Image       *string  `json:"image"`
	ImageBase64 string   `json:"image_base64"`
	CategoryID  *string  `json:"categoryId"`
	Stock       *int     `json:"stock"`
	IsActive    *bool    `json:"isActive"`
}
