package main

import (
	"fmt"
	"log"
	"os"

	"repairhub-backend/config"
	"repairhub-backend/models"
	"repairhub-backend/routes"
	"repairhub-backend/services"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func init() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}
	config.ConnectDB()

	config.DB.AutoMigrate(
		&models.User{},
		&models.Customer{},
		&models.ProductType{},
		&models.Shelf{},
		&models.Ticket{},
		&models.Product{},
		&models.MessageLog{},
	)
}

func main() {
	if os.Getenv("TWILIO_ACCOUNT_SID") != "" {
		services.Default = services.NewNotificationService(config.DB, services.NewTwilioSender())
		services.Default.StartScheduler()
	} else {
		log.Println("TWILIO_ACCOUNT_SID not set, WhatsApp notifications disabled")
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	r := routes.SetupRouter()
	printRoutes(r)
	r.Run(":" + port)
}

func printRoutes(r *gin.Engine) {
	routes := r.Routes()
	for _, route := range routes {
		fmt.Printf("%-6s %s\n", route.Method, route.Path)
	}
}
