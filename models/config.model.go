package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Defaults applied when the config document is created lazily.
const (
	DefaultSiteName     = "Elango Home Made Products"
	DefaultDescription  = "Premium quality home made products"
	DefaultContactEmail = "info@elangoproducts.com"
	DefaultContactPhone = "+91-9876543210"
)

// Config is the singleton document holding site-wide display settings.
// Singleton is a fixed key under a unique index so that concurrent
// first reads cannot create more than one document.
type Config struct {
	ID           primitive.ObjectID `json:"_id,omitempty" bson:"_id,omitempty"`
	Singleton    bool               `json:"-" bson:"singleton"`
	SiteName     string             `json:"site_name" bson:"site_name"`
	Description  string             `json:"description" bson:"description"`
	ContactEmail string             `json:"contact_email" bson:"contact_email"`
	ContactPhone string             `json:"contact_phone" bson:"contact_phone"`
	CreatedAt    time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt    time.Time          `json:"updatedAt" bson:"updatedAt"`
}

// ConfigInput defines the structure for a partial config update. Only
// fields present in the request are persisted.
type ConfigInput struct {
	SiteName     *string `json:"site_name"`
	Description  *string `json:"description"`
	ContactEmail *string `json:"contact_email"`
	ContactPhone *string `json:"contact_phone"`
}

// SiteNameInput defines the structure for the site-name update.
type SiteNameInput struct {
	SiteName string `json:"site_name" binding:"required"`
}
