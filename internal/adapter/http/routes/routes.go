package routes

import (
	"log"
	"os"
	"strconv"
	"time"

	_ "fotostudio/docs" // This will be auto-generated
	"fotostudio/internal/adapter/http/handlers"
	"fotostudio/internal/adapter/http/middleware"
	repository2 "fotostudio/internal/adapter/persistence/repository"
	"fotostudio/internal/auth"
	"fotostudio/internal/infrastructure/database"
	"fotostudio/internal/infrastructure/notifications"
	"fotostudio/internal/infrastructure/rendering"
	"fotostudio/internal/usecase"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

var router = gin.Default()

const PORT = 8080

// Run will start the server
func Run() {
	setMiddlewares()

	// Swagger documentation endpoint
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	getRoutes()

	err := router.Run(":" + strconv.Itoa(PORT))
	if err != nil {
		log.Fatalf("Failed to startup the application: %v", err.Error())
	}
}

func getRoutes() {
	ddb := database.ConnectDynamoDB()

	templateRepo := repository2.NewTemplateDynamoRepository(ddb)
	contractRepo := repository2.NewContractDynamoRepository(ddb)
	clientRepo := repository2.NewClientDynamoRepository(ddb)

	notifier, err := notifications.NewMailGatewayFromEnv()
	if err != nil {
		log.Fatalf("Mail gateway not configured: %v", err)
	}
	renderer := rendering.NewFPDFRendererFromEnv()

	templateUseCase := usecase.NewTemplateUseCase(templateRepo, contractRepo)
	contractUseCase := usecase.NewContractUseCase(contractRepo, templateRepo, clientRepo, notifier, renderer, usecase.NewOTPIssuerFromEnv())
	clientUseCase := usecase.NewClientUseCase(clientRepo)

	templateHandler := handlers.NewTemplateHandler(templateUseCase)
	contractHandler := handlers.NewContractHandler(contractUseCase)
	clientHandler := handlers.NewClientHandler(clientUseCase)

	jwtManager := auth.NewJWTManager(
		os.Getenv("JWT_SECRET"),
		getenvDefault("JWT_ISSUER", "fotostudio"),
		accessTTLFromEnv(),
	)

	v1 := router.Group("/v1")
	addPingRoutes(v1)

	secured := v1.Group("", middleware.Authenticate(jwtManager))
	addContractRoutes(secured, templateHandler, contractHandler)
	addClientRoutes(secured, clientHandler)
}

func setMiddlewares() {
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.Use(gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		log.Printf("Recovered from panic: %v", recovered)
		c.AbortWithStatus(500)
	}))
}

func accessTTLFromEnv() time.Duration {
	if v, err := strconv.Atoi(os.Getenv("JWT_ACCESS_TTL_MINUTES")); err == nil && v > 0 {
		return time.Duration(v) * time.Minute
	}
	return 60 * time.Minute
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
