package main

import (
	"os"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/medinatrips/medina-api/initializers"
	"github.com/medinatrips/medina-api/routes"
)

func init() {
	initializers.LoadEnv()
	initializers.ConnectToDB()
	initializers.SyncDatabase()
}

func main() {
	server := gin.Default()

	allowOrigins := []string{"http://localhost:3000"}
	if origins := os.Getenv("ALLOWED_ORIGINS"); origins != "" {
		allowOrigins = strings.Split(origins, ",")
	}
	server.Use(cors.New(cors.Config{
		AllowOrigins:     allowOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	routes.DefaultRoutes(server)
	routes.AuthRoutes(server)
	routes.ExcursionRoutes(server)
	routes.ServiceRoutes(server)
	routes.CartRoutes(server)
	routes.OrderRoutes(server)
	routes.PaymentRoutes(server)
	routes.SettingRoutes(server)
	routes.UserRoutes(server)

	server.Run()
}
