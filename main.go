package main

import (
	"context"
	"fmt"
	"log"

	"elango-backend/config"
	"elango-backend/controllers"
	"elango-backend/routes"

	"github.com/cloudinary/cloudinary-go/v2"
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

	var cld *cloudinary.Cloudinary
	if cfg.CloudinaryURL != "" {
		cld, err = cloudinary.NewFromURL(cfg.CloudinaryURL)
		if err != nil {
			log.Fatal("Failed to initialize Cloudinary:", err)
		}
	} else {
		log.Println("CLOUDINARY_URL not set, image upload disabled")
	}

	ctrl := &controllers.Controller{
		DB:              db,
		Cld:             cld,
		PasetoSecretKey: cfg.PasetoSecretKey,
	}

	r := routes.Setup(ctrl, cfg.Env)

	fmt.Printf("🚀 Server running on http://localhost:%s\n", cfg.Port)
	log.Fatal(r.Run(":" + cfg.Port))
}
