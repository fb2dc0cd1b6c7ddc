package routes

import (
	"net/http"

	coreport "github.com/devshark/function-dynamodb-task/internal/domain/port/core"
	"github.com/devshark/function-dynamodb-task/internal/infrastructure/adapter/api/handler"
	"github.com/devshark/function-dynamodb-task/internal/infrastructure/adapter/api/middleware"
	"github.com/gin-gonic/gin"
)

// SetupRoutes configures all the routes for the API
func SetupRoutes(
	router *gin.Engine,
	balanceHandler *handler.BalanceHandler,
	transactionHandler *handler.TransactionHandler,
) {
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// User routes
	userRoutes := router.Group("/user")
	{
		// GET /user/:userId/balance
		userRoutes.GET("/:userId/balance", balanceHandler.GetBalance)

		// POST /user/:userId/transaction
		userRoutes.POST("/:userId/transaction", transactionHandler.RecordTransaction)
	}
}

// SetupMiddlewares configures global middlewares for the API
func SetupMiddlewares(router *gin.Engine, logger coreport.Logger) {
	router.Use(middleware.ErrorHandler(logger))
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger(logger))
	router.Use(middleware.CORS())
}
