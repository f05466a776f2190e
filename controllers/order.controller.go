package controllers

import (
	"net/http"
	"time"

	"elango-backend/middleware"
	"elango-backend/models"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// CreateOrder handles checkout. Every referenced product must exist,
// be active, and have enough stock; the whole submission fails if any
// line item does not. Prices are read from the product documents at
// submission time, not trusted from the client. Stock is validated but
// not decremented, so concurrent checkouts can oversubscribe it.
func (ctrl *Controller) CreateOrder(c *gin.Context) {
	ctx, cancel := requestContext()
	defer cancel()

	userID, err := primitive.ObjectIDFromHex(c.GetString(middleware.CtxUserID))
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Token is not valid"})
		return
	}

	var req models.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	products := ctrl.DB.Collection("products")
	items := make([]models.OrderItem, 0, len(req.Products))
	var total float64

	for _, line := range req.Products {
		productID, err := primitive.ObjectIDFromHex(line.ProductID)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"message": "Product not found: " + line.ProductID})
			return
		}

		var product models.Product
		err = products.FindOne(ctx, bson.M{"_id": productID}).Decode(&product)
		if err != nil {
			if err == mongo.ErrNoDocuments {
				c.JSON(http.StatusNotFound, gin.H{"message": "Product not found: " + line.ProductID})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
			return
		}

		if !product.IsActive {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Product is not available: " + product.Name})
			return
		}
		if line.Quantity > product.Stock {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Insufficient stock for " + product.Name})
			return
		}

		items = append(items, models.OrderItem{
			ProductID: product.ID,
			Quantity:  line.Quantity,
			Price:     product.Price,
		})
		total += product.Price * float64(line.Quantity)
	}

	now := time.Now()
	order := models.Order{
		UserID:          userID,
		Products:        items,
		ShippingAddress: req.ShippingAddress,
		TotalAmount:     total,
		Status:          models.OrderStatusPending,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	result, err := ctrl.DB.Collection("orders").InsertOne(ctx, order)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}
	order.ID = result.InsertedID.(primitive.ObjectID)

	orders := []models.Order{order}
	if err = ctrl.attachOrderRefs(ctx, orders); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Order placed successfully",
		"order":   orders[0],
	})
}

// GetMyOrders handles listing the caller's own orders, newest first.
func (ctrl *Controller) GetMyOrders(c *gin.Context) {
	ctx, cancel := requestContext()
	defer cancel()

	userID, err := primitive.ObjectIDFromHex(c.GetString(middleware.CtxUserID))
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Token is not valid"})
		return
	}

	cursor, err := ctrl.DB.Collection("orders").Find(ctx, bson.M{"userId": userID},
		options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}
	orders := []models.Order{}
	if err = cursor.All(ctx, &orders); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}

	if err = ctrl.attachOrderRefs(ctx, orders); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}

	c.JSON(http.StatusOK, orders)
}

// GetOrder handles fetching one order. Only the owning user or an
// admin may read it.
func (ctrl *Controller) GetOrder(c *gin.Context) {
	ctx, cancel := requestContext()
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Order not found"})
		return
	}

	var order models.Order
	err = ctrl.DB.Collection("orders").FindOne(ctx, bson.M{"_id": objectID}).Decode(&order)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, gin.H{"message": "Order not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}

	if order.UserID.Hex() != c.GetString(middleware.CtxUserID) &&
		c.GetString(middleware.CtxRole) != models.RoleAdmin {
		c.JSON(http.StatusForbidden, gin.H{"message": "Access denied"})
		return
	}

	orders := []models.Order{order}
	if err = ctrl.attachOrderRefs(ctx, orders); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}

	c.JSON(http.StatusOK, orders[0])
}
