package controllers

import (
	"log"
	"net/http"
	"strings"
	"time"

	"elango-backend/models"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// categoryExists checks that a category id resolves to a document.
func (ctrl *Controller) categoryExists(c *gin.Context, id primitive.ObjectID) bool {
	ctx, cancel := requestContext()
	defer cancel()

	err := ctrl.DB.Collection("categories").FindOne(ctx, bson.M{"_id": id}).Err()
	if err != nil {
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Category not found"})
			return false
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return false
	}
	return true
}

// CreateProduct handles adding a product to the catalog. The category
// must resolve; a base64 payload is pushed to Cloudinary when present.
func (ctrl *Controller) CreateProduct(c *gin.Context) {
	ctx, cancel := requestContext()
	defer cancel()

	var input models.ProductInput
	if err := c.ShouldBindJSON(&input); err != nil {
		bindError(c, err)
		return
	}

	categoryID, err := primitive.ObjectIDFromHex(input.CategoryID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Valid category ID is required"})
		return
	}
	if !ctrl.categoryExists(c, categoryID) {
		return
	}

	image := input.Image
	if input.ImageBase64 != "" && ctrl.Cld != nil {
		uploaded, err := ctrl.uploadProductImage(input.ImageBase64)
		if err != nil {
			log.Println("Cloudinary upload error:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to upload image"})
			return
		}
		image = uploaded
	}
	if image == "" {
		image = models.DefaultProductImage
	}

	now := time.Now()
	product := models.Product{
		Name:        strings.TrimSpace(input.Name),
		Description: strings.TrimSpace(input.Description),
		Price:       input.Price,
		Image:       image,
		CategoryID:  categoryID,
		Stock:       *input.Stock,
		IsActive:    true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	result, err := ctrl.DB.Collection("products").InsertOne(ctx, product)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}
	product.ID = result.InsertedID.(primitive.ObjectID)

	products := []models.Product{product}
	if err = ctrl.attachCategories(ctx, products); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}

	c.JSON(http.StatusCreated, products[0])
}

// UpdateProduct handles a partial product update. Only fields present
// in the request are written.
func (ctrl *Controller) UpdateProduct(c *gin.Context) {
	ctx, cancel := requestContext()
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Product not found"})
		return
	}

	var input models.ProductUpdate
	if err := c.ShouldBindJSON(&input); err != nil {
		bindError(c, err)
		return
	}

	set := bson.M{"updatedAt": time.Now()}
	if input.Name != nil {
		set["name"] = strings.TrimSpace(*input.Name)
	}
	if input.Description != nil {
		set["description"] = strings.TrimSpace(*input.Description)
	}
	if input.Price != nil {
		if *input.Price <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Price must be greater than zero"})
			return
		}
		set["price"] = *input.Price
	}
	if input.Image != nil {
		set["image"] = *input.Image
	}
	if input.ImageBase64 != "" && ctrl.Cld != nil {
		uploaded, err := ctrl.uploadProductImage(input.ImageBase64)
		if err != nil {
			log.Println("Cloudinary upload error:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to upload image"})
			return
		}
		set["image"] = uploaded
	}
	if input.CategoryID != nil {
		categoryID, err := primitive.ObjectIDFromHex(*input.CategoryID)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Valid category ID is required"})
			return
		}
		if !ctrl.categoryExists(c, categoryID) {
			return
		}
		set["categoryId"] = categoryID
	}
	if input.Stock != nil {
		if *input.Stock < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Stock cannot be negative"})
			return
		}
		set["stock"] = *input.Stock
	}
	if input.IsActive != nil {
		set["isActive"] = *input.IsActive
	}

	collection := ctrl.DB.Collection("products")
	result, err := collection.UpdateOne(ctx, bson.M{"_id": objectID}, bson.M{"$set": set})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}
	if result.MatchedCount == 0 {
		c.JSON(http.StatusNotFound, gin.H{"message": "Product not found"})
		return
	}

	var product models.Product
	if err = collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&product); err != nil {
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

// DeleteProduct handles removing a product from the catalog.
func (ctrl *Controller) DeleteProduct(c *gin.Context) {
	ctx, cancel := requestContext()
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Product not found"})
		return
	}

	result, err := ctrl.DB.Collection("products").DeleteOne(ctx, bson.M{"_id": objectID})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}
	if result.DeletedCount == 0 {
		c.JSON(http.StatusNotFound, gin.H{"message": "Product not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Product deleted successfully"})
}

// GetAllProducts handles the admin catalog listing, inactive products
// included.
func (ctrl *Controller) GetAllProducts(c *gin.Context) {
	ctx, cancel := requestContext()
	defer cancel()

	cursor, err := ctrl.DB.Collection("products").Find(ctx, bson.M{},
		options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
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

	c.JSON(http.StatusOK, products)
}

// CreateCategory handles adding a category. Names are unique
// case-insensitively.
func (ctrl *Controller) CreateCategory(c *gin.Context) {
	ctx, cancel := requestContext()
	defer cancel()

	var input models.CategoryInput
	if err := c.ShouldBindJSON(&input); err != nil {
		bindError(c, err)
		return
	}

	name := strings.TrimSpace(input.Name)
	if name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Category name is required"})
		return
	}

	collection := ctrl.DB.Collection("categories")
	err := collection.FindOne(ctx, bson.M{"name": exactPattern(name)}).Err()
	if err == nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Category already exists"})
		return
	}
	if err != mongo.ErrNoDocuments {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}

	category := models.Category{
		Name:        name,
		Description: strings.TrimSpace(input.Description),
		CreatedAt:   time.Now(),
	}
	result, err := collection.InsertOne(ctx, category)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}
	category.ID = result.InsertedID.(primitive.ObjectID)

	c.JSON(http.StatusCreated, category)
}

// GetOrders handles the admin order listing with optional status
// filter and pagination.
func (ctrl *Controller) GetOrders(c *gin.Context) {
	ctx, cancel := requestContext()
	defer cancel()

	query := bson.M{}
	if status := c.Query("status"); status != "" {
		query["status"] = status
	}

	page, limit := pageParams(c, 50)

	collection := ctrl.DB.Collection("orders")
	cursor, err := collection.Find(ctx, query, options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetSkip((page-1)*limit).
		SetLimit(limit))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}
	orders := []models.Order{}
	if err = cursor.All(ctx, &orders); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}

	total, err := collection.CountDocuments(ctx, query)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}

	if err = ctrl.attachOrderRefs(ctx, orders); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"orders":      orders,
		"totalPages":  totalPages(total, limit),
		"currentPage": page,
		"total":       total,
	})
}

// UpdateOrderStatus handles an order status change. Any status inside
// the enum may replace any other; out-of-enum values are rejected
// before the write.
func (ctrl *Controller) UpdateOrderStatus(c *gin.Context) {
	ctx, cancel := requestContext()
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Order not found"})
		return
	}

	var input models.StatusInput
	if err := c.ShouldBindJSON(&input); err != nil {
		bindError(c, err)
		return
	}
	if !models.ValidOrderStatus(input.Status) {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid status"})
		return
	}

	collection := ctrl.DB.Collection("orders")
	var order models.Order
	err = collection.FindOneAndUpdate(ctx,
		bson.M{"_id": objectID},
		bson.M{"$set": bson.M{"status": input.Status, "updatedAt": time.Now()}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&order)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, gin.H{"message": "Order not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}

	orders := []models.Order{order}
	if err = ctrl.attachOrderRefs(ctx, orders); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}

	c.JSON(http.StatusOK, orders[0])
}

// GetStats handles the dashboard aggregate: point-in-time counts and
// the revenue sum over orders that count as sold.
func (ctrl *Controller) GetStats(c *gin.Context) {
	ctx, cancel := requestContext()
	defer cancel()

	ordersCollection := ctrl.DB.Collection("orders")

	totalProducts, err := ctrl.DB.Collection("products").CountDocuments(ctx, bson.M{"isActive": true})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}
	totalOrders, err := ordersCollection.CountDocuments(ctx, bson.M{})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}
	totalUsers, err := ctrl.DB.Collection("users").CountDocuments(ctx, bson.M{"role": models.RoleUser})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}
	pendingOrders, err := ordersCollection.CountDocuments(ctx, bson.M{"status": models.OrderStatusPending})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}

	pipeline := []bson.M{
		{"$match": bson.M{"status": bson.M{"$in": models.RevenueStatuses}}},
		{"$group": bson.M{"_id": nil, "totalRevenue": bson.M{"$sum": "$totalAmount"}}},
	}
	cursor, err := ordersCollection.Aggregate(ctx, pipeline)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}
	defer cursor.Close(ctx)

	var totalRevenue float64
	var result []bson.M
	if err = cursor.All(ctx, &result); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}
	if len(result) > 0 {
		switch v := result[0]["totalRevenue"].(type) {
		case float64:
			totalRevenue = v
		case int32:
			totalRevenue = float64(v)
		case int64:
			totalRevenue = float64(v)
		}
	}

	c.JSON(http.StatusOK, models.Stats{
		TotalProducts: totalProducts,
		TotalOrders:   totalOrders,
		TotalUsers:    totalUsers,
		PendingOrders: pendingOrders,
		TotalRevenue:  totalRevenue,
	})
}
