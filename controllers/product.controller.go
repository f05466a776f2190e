package controllers

import (
	"net/http"
	"regexp"
	"strconv"

	"elango-backend/models"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// containsPattern matches value as a case-insensitive substring.
func containsPattern(value string) primitive.Regex {
	return primitive.Regex{Pattern: regexp.QuoteMeta(value), Options: "i"}
}

// exactPattern matches value as a case-insensitive whole string.
func exactPattern(value string) primitive.Regex {
	return primitive.Regex{Pattern: "^" + regexp.QuoteMeta(value) + "$", Options: "i"}
}

// pageParams reads page/limit query values, falling back to defaults
// on absent or unparseable input.
func pageParams(c *gin.Context, defaultLimit int64) (page, limit int64) {
	page, _ = strconv.ParseInt(c.DefaultQuery("page", "1"), 10, 64)
	if page < 1 {
		page = 1
	}
	limit, _ = strconv.ParseInt(c.DefaultQuery("limit", strconv.FormatInt(defaultLimit, 10)), 10, 64)
	if limit < 1 {
		limit = defaultLimit
	}
	return page, limit
}

// totalPages is the ceiling of total/limit.
func totalPages(total, limit int64) int64 {
	if limit <= 0 {
		return 0
	}
	return (total + limit - 1) / limit
}

// GetProducts handles the public catalog listing: active products only,
// optional category and free-text filters, newest first, paginated.
func (ctrl *Controller) GetProducts(c *gin.Context) {
	ctx, cancel := requestContext()
	defer cancel()

	query := bson.M{"isActive": true}

	// A category name that resolves filters the set. An unresolvable
	// name leaves the query unfiltered rather than erroring; a failed
	// lookup is still a server error.
	if category := c.Query("category"); category != "" {
		var categoryDoc models.Category
		err := ctrl.DB.Collection("categories").
			FindOne(ctx, bson.M{"name": containsPattern(category)}).
			Decode(&categoryDoc)
		switch err {
		case nil:
			query["categoryId"] = categoryDoc.ID
		case mongo.ErrNoDocuments:
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
			return
		}
	}

	if search := c.Query("search"); search != "" {
		query["$or"] = []bson.M{
			{"name": containsPattern(search)},
			{"description": containsPattern(search)},
		}
	}

	page, limit := pageParams(c, 20)

	collection := ctrl.DB.Collection("products")
	findOpts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetSkip((page - 1) * limit).
		SetLimit(limit)

	cursor, err := collection.Find(ctx, query, findOpts)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}
	products := []models.Product{}
	if err = cursor.All(ctx, &products); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}

	total, err := collection.CountDocuments(ctx, query)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}

	if err = ctrl.attachCategories(ctx, products); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"products":    products,
		"totalPages":  totalPages(total, limit),
		"currentPage": page,
		"total":       total,
	})
}

// GetProduct handles fetching one product by ID.
func (ctrl *Controller) GetProduct(c *gin.Context) {
	ctx, cancel := requestContext()
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Product not found"})
		return
	}

	var product models.Product
	err = ctrl.DB.Collection("products").FindOne(ctx, bson.M{"_id": objectID}).Decode(&product)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, gin.H{"message": "Product not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}

	products := []models.Product{product}
	if err = ctrl.attachCategories(ctx, products); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}

	c.JSON(http.StatusOK, products[0])
}

// GetProductsByCategory handles listing the active products of one
// category, resolved by case-insensitive name.
func (ctrl *Controller) GetProductsByCategory(c *gin.Context) {
	ctx, cancel := requestContext()
	defer cancel()

	var category models.Category
	err := ctrl.DB.Collection("categories").
		FindOne(ctx, bson.M{"name": containsPattern(c.Param("categoryName"))}).
		Decode(&category)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, gin.H{"message": "Category not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}

	cursor, err := ctrl.DB.Collection("products").Find(ctx, bson.M{
		"categoryId": category.ID,
		"isActive":   true,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}
	products := []models.Product{}
	if err = cursor.All(ctx, &products); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}

	if err = ctrl.attachCategories(ctx, products); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"category": category.Name,
		"products": products,
	})
}
