package main

import (
	_ "fotostudio/docs"
	"fotostudio/internal/adapter/http/routes"

	_ "github.com/joho/godotenv/autoload"
)

// @title           Fotostudio Contracts API
// @version         1.0
// @description     Electronic contract service (templates, OTP-gated signing) backed by DynamoDB.

// @host localhost:8080

// @BasePath  /v1

// @securityDefinitions.apikey Bearer
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	routes.Run()
}
