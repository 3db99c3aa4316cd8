package routes

import (
	"os"
	"strings"

	"repairhub-backend/config"
	"repairhub-backend/controllers"
	"repairhub-backend/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func SetupRouter() *gin.Engine {
	r := gin.Default()

	allowedOrigins := []string{"http://localhost:3000"}
	if env := os.Getenv("CORS_ORIGINS"); env != "" {
		allowedOrigins = strings.Split(env, ",")
	}

	r.Use(cors.New(cors.Config{
		AllowOrigins:     allowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}))

	r.Use(config.PerformanceLogger())

	auth := r.Group("/auth")
	{
		auth.POST("/register", controllers.Register)
		auth.POST("/login", controllers.Login)

		auth.Use(utils.AuthMiddleware())
		auth.GET("/me", controllers.Me)
	}

	api := r.Group("/api")
	api.Use(utils.AuthMiddleware())
	{
		// Customer routes
		customers := api.Group("/customers")
		{
			customers.POST("", controllers.CreateCustomer)
			customers.GET("", controllers.GetCustomers)
			customers.GET("/:id", controllers.GetCustomer)
			customers.PUT("/:id", controllers.UpdateCustomer)
			customers.DELETE("/:id", controllers.DeleteCustomer)
		}

		// Catalog routes
		productTypes := api.Group("/product-types")
		{
			productTypes.POST("", controllers.CreateProductType)
			productTypes.GET("", controllers.GetProductTypes)
			productTypes.PUT("/:id", controllers.UpdateProductType)
			productTypes.DELETE("/:id", controllers.DeleteProductType)
		}

		shelves := api.Group("/shelves")
		{
			shelves.POST("", controllers.CreateShelf)
			shelves.GET("", controllers.GetShelves)
			shelves.PUT("/:id", controllers.UpdateShelf)
			shelves.DELETE("/:id", controllers.DeleteShelf)
		}

		// Ticket lifecycle routes
		tickets := api.Group("/tickets")
		{
			tickets.POST("", controllers.CreateTicket)
			tickets.GET("", controllers.GetTickets)
			tickets.GET("/:id", controllers.GetTicket)
			tickets.PUT("/:id", controllers.UpdateTicket)
			tickets.DELETE("/:id", controllers.DeleteTicket)
			tickets.POST("/:id/close", controllers.CloseTicket)
			tickets.POST("/:id/reopen", controllers.ReopenTicket)
			tickets.POST("/:id/cancel", controllers.CancelTicket)
			tickets.POST("/:id/products", controllers.AddProduct)
		}

		// Product routes
		products := api.Group("/products")
		{
			products.PUT("/:id", controllers.UpdateProduct)
			products.PUT("/:id/move", controllers.MoveProduct)
			products.DELETE("/:id", controllers.DeleteProduct)
		}

		// Inventory routes
		api.GET("/inventory", controllers.GetShelfInventory)

		// Report routes
		reportController := controllers.ReportController{}
		reports := api.Group("/reports")
		{
			reports.GET("/summary", reportController.GetSummary)
			reports.GET("/daily-trend", reportController.GetDailyTrend)
			reports.GET("/top-customers", reportController.GetTopCustomers)
			reports.GET("/product-types", reportController.GetProductTypeStats)
			reports.GET("/monthly", reportController.GetMonthlyComparison)
		}
	}

	return r
}
