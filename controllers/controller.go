package controllers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"elango-backend/models"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// Controller holds the dependencies shared by all handlers.
type Controller struct {
	DB              *mongo.Database
	Cld             *cloudinary.Cloudinary
	PasetoSecretKey []byte
}

// requestContext returns the per-request database context.
func requestContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), 10*time.Second)
}

// bindError translates a gin binding failure into the API error body:
// field-level messages for validation failures, a plain message
// otherwise.
func bindError(c *gin.Context, err error) {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		fieldErrors := make([]gin.H, 0, len(verrs))
		for _, fe := range verrs {
			fieldErrors = append(fieldErrors, gin.H{
				"field":   fe.Field(),
				"message": fe.Field() + " failed on " + fe.Tag(),
			})
		}
		c.JSON(http.StatusBadRequest, gin.H{"errors": fieldErrors})
		return
	}
	c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
}

// HealthCheck reports the database connection status.
func (ctrl *Controller) HealthCheck(c *gin.Context) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	dbStatus := "connected"
	if err := ctrl.DB.Client().Ping(ctx, nil); err != nil {
		dbStatus = "disconnected"
	}

	c.JSON(http.StatusOK, gin.H{
		"status":    "ok",
		"database":  dbStatus,
		"timestamp": time.Now().Unix(),
	})
}

// uploadProductImage pushes a base64 image to Cloudinary and returns
// its secure URL.
func (ctrl *Controller) uploadProductImage(imageBase64 string) (string, error) {
	if ctrl.Cld == nil {
		return "", errors.New("image upload is not configured")
	}
	result, err := ctrl.Cld.Upload.Upload(
		context.Background(),
		imageBase64,
		uploader.UploadParams{Folder: "elango/products"},
	)
	if err != nil {
		return "", err
	}
	return result.SecureURL, nil
}

// attachCategories resolves category names for a batch of products.
func (ctrl *Controller) attachCategories(ctx context.Context, products []models.Product) error {
	if len(products) == 0 {
		return nil
	}

	seen := make(map[primitive.ObjectID]bool)
	ids := make([]primitive.ObjectID, 0, len(products))
	for _, p := range products {
		if !seen[p.CategoryID] {
			seen[p.CategoryID] = true
			ids = append(ids, p.CategoryID)
		}
	}

	cursor, err := ctrl.DB.Collection("categories").Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return err
	}
	var categories []models.Category
	if err = cursor.All(ctx, &categories); err != nil {
		return err
	}

	byID := make(map[primitive.ObjectID]*models.CategoryRef, len(categories))
	for i := range categories {
		byID[categories[i].ID] = &models.CategoryRef{ID: categories[i].ID, Name: categories[i].Name}
	}
	for i := range products {
		products[i].Category = byID[products[i].CategoryID]
	}
	return nil
}

// attachOrderRefs resolves user and product summaries for a batch of
// orders.
func (ctrl *Controller) attachOrderRefs(ctx context.Context, orders []models.Order) error {
	if len(orders) == 0 {
		return nil
	}

	userSeen := make(map[primitive.ObjectID]bool)
	productSeen := make(map[primitive.ObjectID]bool)
	var userIDs, productIDs []primitive.ObjectID
	for _, o := range orders {
		if !userSeen[o.UserID] {
			userSeen[o.UserID] = true
			userIDs = append(userIDs, o.UserID)
		}
		for _, item := range o.Products {
			if !productSeen[item.ProductID] {
				productSeen[item.ProductID] = true
				productIDs = append(productIDs, item.ProductID)
			}
		}
	}

	cursor, err := ctrl.DB.Collection("users").Find(ctx, bson.M{"_id": bson.M{"$in": userIDs}})
	if err != nil {
		return err
	}
	var users []models.User
	if err = cursor.All(ctx, &users); err != nil {
		return err
	}
	usersByID := make(map[primitive.ObjectID]*models.UserSummary, len(users))
	for i := range users {
		usersByID[users[i].ID] = &models.UserSummary{
			ID:    users[i].ID,
			Name:  users[i].Name,
			Email: users[i].Email,
		}
	}

	cursor, err = ctrl.DB.Collection("products").Find(ctx, bson.M{"_id": bson.M{"$in": productIDs}})
	if err != nil {
		return err
	}
	var products []models.Product
	if err = cursor.All(ctx, &products); err != nil {
		return err
	}
	productsByID := make(map[primitive.ObjectID]*models.ProductSummary, len(products))
	for i := range products {
		productsByID[products[i].ID] = &models.ProductSummary{
			ID:    products[i].ID,
			Name:  products[i].Name,
			Image: products[i].Image,
		}
	}

	for i := range orders {
		orders[i].User = usersByID[orders[i].UserID]
		for j := range orders[i].Products {
			orders[i].Products[j].Product = productsByID[orders[i].Products[j].ProductID]
		}
	}
	return nil
}
