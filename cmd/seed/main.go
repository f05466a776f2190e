// Command seed wipes the database and loads the demo dataset: an admin
// and a test user, three categories, nine products, and the default
// site configuration.
package main

import (
	"context"
	"log"
	"time"

	"elango-backend/config"
	"elango-backend/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"
)

func main() {
	cfg := config.Load()

	client, err := config.ConnectDB(cfg.MongoURI, cfg.MongoMode)
	if err != nil {
		log.Fatal(err)
	}
	defer client.Disconnect(context.Background())

	db := client.Database(cfg.DBName)
	if err := config.EnsureIndexes(db); err != nil {
		log.Fatal(err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	for _, name := range []string{"users", "categories", "products", "orders", "config"} {
		if _, err := db.Collection(name).DeleteMany(ctx, bson.M{}); err != nil {
			log.Fatalf("Error clearing %s: %v", name, err)
		}
	}
	log.Println("Cleared existing data")

	seedUsers(ctx, db)
	categoryIDs := seedCategories(ctx, db)
	seedProducts(ctx, db, categoryIDs)
	seedConfig(ctx, db)

	log.Println("Seed data created successfully!")
	log.Println("Admin: admin@elangoproducts.com / admin123")
	log.Println("User:  user@test.com / user123")
}

func mustHash(password string) string {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatal("Error hashing password:", err)
	}
	return string(hashed)
}

func seedUsers(ctx context.Context, db *mongo.Database) {
	users := []interface{}{
		models.User{
			Name:      "Admin",
			Email:     "admin@elangoproducts.com",
			Password:  mustHash("admin123"),
			Role:      models.RoleAdmin,
			CreatedAt: time.Now(),
		},
		models.User{
			Name:      "Test User",
			Email:     "user@test.com",
			Password:  mustHash("user123"),
			Role:      models.RoleUser,
			CreatedAt: time.Now(),
		},
	}
	if _, err := db.Collection("users").InsertMany(ctx, users); err != nil {
		log.Fatal("Error creating users:", err)
	}
	log.Println("Created users")
}

func seedCategories(ctx context.Context, db *mongo.Database) map[string]primitive.ObjectID {
	categories := []models.Category{
		{Name: "Masala Items", Description: "Traditional spice blends and masalas", CreatedAt: time.Now()},
		{Name: "Milk Products", Description: "Fresh dairy products and milk-based items", CreatedAt: time.Now()},
		{Name: "Grocery Items", Description: "Essential grocery items and staples", CreatedAt: time.Now()},
	}

	ids := make(map[string]primitive.ObjectID, len(categories))
	for _, category := range categories {
		result, err := db.Collection("categories").InsertOne(ctx, category)
		if err != nil {
			log.Fatal("Error creating category:", err)
		}
		ids[category.Name] = result.InsertedID.(primitive.ObjectID)
	}
	log.Println("Created categories")
	return ids
}

func seedProducts(ctx context.Context, db *mongo.Database, categoryIDs map[string]primitive.ObjectID) {
	type entry struct {
		name, description, image, category string
		price                              float64
		stock                              int
	}
	entries := []entry{
		{"Sambhar Masala", "Authentic South Indian sambhar masala powder made with traditional spices", "/images/sambhar-masala.jpg", "Masala Items", 120, 50},
		{"Rasam Powder", "Tangy and flavorful rasam powder for the perfect South Indian rasam", "/images/rasam-powder.jpg", "Masala Items", 100, 40},
		{"Turmeric Powder", "Pure and organic turmeric powder with natural color and aroma", "/images/turmeric-powder.jpg", "Masala Items", 80, 60},
		{"Pure Ghee", "Traditional homemade ghee from pure cow milk", "/images/ghee.jpg", "Milk Products", 500, 25},
		{"Fresh Paneer", "Soft and fresh paneer made from pure milk", "/images/paneer.jpg", "Milk Products", 200, 15},
		{"Khoya", "Rich and creamy khoya perfect for sweets and desserts", "/images/khoya.jpg", "Milk Products", 300, 20},
		{"Basmati Rice", "Premium quality basmati rice with long grains and aromatic fragrance", "/images/basmati-rice.jpg", "Grocery Items", 150, 100},
		{"Toor Dal", "High-quality toor dal (pigeon peas) rich in protein", "/images/toor-dal.jpg", "Grocery Items", 120, 80},
		{"Urad Dal", "Premium urad dal perfect for making dosa, idli, and vada", "/images/urad-dal.jpg", "Grocery Items", 130, 70},
	}

	now := time.Now()
	products := make([]interface{}, 0, len(entries))
	for _, e := range entries {
		products = append(products, models.Product{
			Name:        e.name,
			Description: e.description,
			Price:       e.price,
			Image:       e.image,
			CategoryID:  categoryIDs[e.category],
			Stock:       e.stock,
			IsActive:    true,
			CreatedAt:   now,
			UpdatedAt:   now,
		})
	}
	if _, err := db.Collection("products").InsertMany(ctx, products); err != nil {
		log.Fatal("Error creating products:", err)
	}
	log.Println("Created products")
}

func seedConfig(ctx context.Context, db *mongo.Database) {
	now := time.Now()
	cfg := models.Config{
		Singleton:    true,
		SiteName:     models.DefaultSiteName,
		Description:  models.DefaultDescription,
		ContactEmail: models.DefaultContactEmail,
		ContactPhone: models.DefaultContactPhone,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if _, err := db.Collection("config").InsertOne(ctx, cfg); err != nil {
		log.Fatal("Error creating config:", err)
	}
	log.Println("Created config")
}
