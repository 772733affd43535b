package router

import (
	"github.com/gofiber/fiber/v2"

	"github.com/omkarh25/som/internal/cache"
	"github.com/omkarh25/som/internal/config"
	"github.com/omkarh25/som/internal/handler"
	"github.com/omkarh25/som/internal/repository"
	"github.com/omkarh25/som/internal/schema"
	"github.com/omkarh25/som/internal/service"
	"github.com/omkarh25/som/internal/utils"
)

// Setup registers every route on app. lookupCache may be nil.
func Setup(app *fiber.App, store repository.Store, lookupCache *cache.LookupCache, cfg *config.Config) {
	registry := schema.Default()

	// Initialize services
	records := service.NewRecordService(store, lookupCache, utils.GetLogger())
	excelService := service.NewExcelService(registry)

	// Initialize handlers
	transactionHandler := handler.NewTransactionHandler(records, excelService, cfg.ExportMaxRows)
	accountHandler := handler.NewAccountHandler(records, excelService, cfg.ExportMaxRows)
	metadataHandler := handler.NewMetadataHandler(registry, records, cfg)

	app.Get("/", metadataHandler.Root)

	// Transactions; static paths before :trno
	transactions := app.Group("/transactions")
	transactions.Get("/", transactionHandler.GetTransactions)
	transactions.Post("/", transactionHandler.CreateTransaction)
	transactions.Get("/export", transactionHandler.ExportTransactions)
	transactions.Get("/:trno", transactionHandler.GetTransaction)

	// Accounts; static paths before :accid
	accounts := app.Group("/accounts")
	accounts.Get("/", accountHandler.GetAccounts)
	accounts.Get("/freedom", accountHandler.GetFreedom)
	accounts.Get("/export", accountHandler.ExportAccounts)
	accounts.Get("/:accid", accountHandler.GetAccount)

	// Metadata
	metadata := app.Group("/metadata")
	metadata.Get("/tables/:name", metadataHandler.DescribeTable)
	metadata.Get("/database", metadataHandler.DescribeDatabase)
	metadata.Get("/health", metadataHandler.Health)
}
