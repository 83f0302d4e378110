package routes

import (
	"fotostudio/internal/adapter/http/handlers"
	"fotostudio/internal/adapter/http/middleware"

	"github.com/gin-gonic/gin"
)

const (
	PathContracts = "/contracts"
	PathClients   = "/clients"
)

func addContractRoutes(rg *gin.RouterGroup, templateHandler *handlers.TemplateHandler, contractHandler *handlers.ContractHandler) {
	contracts := rg.Group(PathContracts)

	templates := contracts.Group("/templates", middleware.RequireOperator())
	{
		templates.GET("", templateHandler.ListTemplates)
		templates.POST("", templateHandler.CreateTemplate)
		templates.GET("/:id", templateHandler.GetTemplate)
		templates.PUT("/:id", templateHandler.UpdateTemplate)
		templates.DELETE("/:id", templateHandler.DeleteTemplate)
	}

	contracts.POST("/send", middleware.RequireOperator(), contractHandler.SendContract)
	contracts.GET("/admin/list", middleware.RequireOperator(), contractHandler.ListAllContracts)
	contracts.GET("/client/:client_id", middleware.RequireOperatorOrClientParam("client_id"), contractHandler.ListClientContracts)

	// Ownership on id-keyed routes is checked in the handler once the
	// contract's client is known.
	contracts.GET("/:id", contractHandler.GetContract)
	contracts.PUT("/:id/fill", contractHandler.FillContract)
	contracts.POST("/:id/request-otp", contractHandler.RequestOtp)
	contracts.POST("/:id/sign", contractHandler.SignContract)
}

func addClientRoutes(rg *gin.RouterGroup, clientHandler *handlers.ClientHandler) {
	clients := rg.Group(PathClients, middleware.RequireOperator())
	{
		clients.GET("", clientHandler.ListClients)
		clients.POST("", clientHandler.CreateClient)
		clients.GET("/:id", clientHandler.GetClient)
	}
}
