package controllers

import (
	"context"
	"net/http"
	"strings"
	"time"

	"elango-backend/models"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// upsertConfig applies set to the singleton config document in one
// atomic step, inserting defaults for every field the write does not
// touch. Reads pass an empty set. Mongo rejects an update where $set
// and $setOnInsert share a path, so defaults are dropped for fields
// the write carries. Behind the unique singleton index, concurrent
// first accesses create exactly one document.
func (ctrl *Controller) upsertConfig(ctx context.Context, set bson.M) (models.Config, error) {
	defaults := bson.M{
		"site_name":     models.DefaultSiteName,
		"description":   models.DefaultDescription,
		"contact_email": models.DefaultContactEmail,
		"contact_phone": models.DefaultContactPhone,
		"updatedAt":     time.Now(),
	}
	setOnInsert := bson.M{"createdAt": time.Now()}
	for field, value := range defaults {
		if _, present := set[field]; !present {
			setOnInsert[field] = value
		}
	}

	update := bson.M{"$setOnInsert": setOnInsert}
	if len(set) > 0 {
		update["$set"] = set
	}

	var config models.Config
	err := ctrl.DB.Collection("config").FindOneAndUpdate(ctx,
		bson.M{"singleton": true},
		update,
		options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After),
	).Decode(&config)
	return config, err
}

// GetSiteName handles the public site-name read, creating the default
// config lazily.
func (ctrl *Controller) GetSiteName(c *gin.Context) {
	ctx, cancel := requestContext()
	defer cancel()

	config, err := ctrl.upsertConfig(ctx, nil)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"site_name": config.SiteName})
}

// UpdateSiteName handles the admin site-name write.
func (ctrl *Controller) UpdateSiteName(c *gin.Context) {
	ctx, cancel := requestContext()
	defer cancel()

	var input models.SiteNameInput
	if err := c.ShouldBindJSON(&input); err != nil {
		bindError(c, err)
		return
	}

	siteName := strings.TrimSpace(input.SiteName)
	if siteName == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Site name is required"})
		return
	}

	config, err := ctrl.upsertConfig(ctx, bson.M{
		"site_name": siteName,
		"updatedAt": time.Now(),
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":   "Site name updated successfully",
		"site_name": config.SiteName,
	})
}

// GetConfig handles the public read of the full settings document.
func (ctrl *Controller) GetConfig(c *gin.Context) {
	ctx, cancel := requestContext()
	defer cancel()

	config, err := ctrl.upsertConfig(ctx, nil)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}

	c.JSON(http.StatusOK, config)
}

// UpdateConfig handles the admin settings write. Only fields present
// in the request are persisted, trimmed; the rest stay unchanged.
func (ctrl *Controller) UpdateConfig(c *gin.Context) {
	ctx, cancel := requestContext()
	defer cancel()

	var input models.ConfigInput
	if err := c.ShouldBindJSON(&input); err != nil {
		bindError(c, err)
		return
	}

	set := bson.M{"updatedAt": time.Now()}
	if input.SiteName != nil {
		set["site_name"] = strings.TrimSpace(*input.SiteName)
	}
	if input.Description != nil {
		set["description"] = strings.TrimSpace(*input.Description)
	}
	if input.ContactEmail != nil {
		set["contact_email"] = strings.TrimSpace(*input.ContactEmail)
	}
	if input.ContactPhone != nil {
		set["contact_phone"] = strings.TrimSpace(*input.ContactPhone)
	}

	config, err := ctrl.upsertConfig(ctx, set)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Configuration updated successfully",
		"config":  config,
	})
}
