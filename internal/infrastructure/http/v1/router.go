// Package v1 provides HTTP API version 1.
package v1

import (
	"context"

	"github.com/gin-gonic/gin"

	"ledgerhouse/internal/core/id"
	"ledgerhouse/internal/domain"
	"ledgerhouse/internal/domain/auth"
	"ledgerhouse/internal/domain/catalogs/account"
	"ledgerhouse/internal/domain/catalogs/contact"
	"ledgerhouse/internal/domain/catalogs/customer"
	"ledgerhouse/internal/domain/catalogs/location"
	"ledgerhouse/internal/domain/catalogs/product"
	"ledgerhouse/internal/domain/catalogs/vendor"
	"ledgerhouse/internal/domain/crm"
	"ledgerhouse/internal/domain/documents/invoice"
	"ledgerhouse/internal/domain/documents/purchaseorder"
	"ledgerhouse/internal/domain/documents/quote"
	"ledgerhouse/internal/domain/documents/vendorbill"
	"ledgerhouse/internal/domain/inventory"
	"ledgerhouse/internal/domain/ledger"
	"ledgerhouse/internal/domain/payment"
	"ledgerhouse/internal/domain/reports"
	"ledgerhouse/internal/infrastructure/http/v1/handlers"
	"ledgerhouse/internal/infrastructure/http/v1/middleware"
	"ledgerhouse/internal/infrastructure/storage/postgres"
	"ledgerhouse/internal/infrastructure/storage/postgres/catalog_repo"
	"ledgerhouse/internal/infrastructure/storage/postgres/crm_repo"
	"ledgerhouse/internal/infrastructure/storage/postgres/document_repo"
	"ledgerhouse/internal/infrastructure/storage/postgres/inventory_repo"
	"ledgerhouse/internal/infrastructure/storage/postgres/report_repo"
	"ledgerhouse/pkg/logger"
	"ledgerhouse/pkg/numerator"
)

// RouterConfig holds everything the router needs to assemble the API.
type RouterConfig struct {
	// Pool is the database connection pool (used by health checks)
	Pool *postgres.Pool

	// TxManager runs repository operations and transactions
	TxManager *postgres.TxManager

	// Logger for request logging
	Logger *logger.Logger

	// JWTValidator for token validation
	JWTValidator middleware.JWTValidator

	// AuthService for authentication endpoints
	AuthService *auth.Service

	// Numerator for document number generation
	Numerator *numerator.Service

	// Audit records entity change history; nil disables auditing
	Audit *postgres.AuditService

	// SystemAccounts are the resolved posting accounts
	SystemAccounts ledger.SystemAccounts
}

// NewRouter creates and configures the Gin router.
func NewRouter(cfg RouterConfig) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()

	// Global middleware (order matters)
	router.Use(middleware.Recovery())
	router.Use(middleware.Trace())
	router.Use(middleware.Logger(cfg.Logger))
	router.Use(middleware.ErrorHandler())

	// Health endpoints (no auth)
	healthHandler := handlers.NewHealthHandler(cfg.Pool)
	health := router.Group("/health")
	{
		health.GET("/live", healthHandler.Live)
		health.GET("/ready", healthHandler.Ready)
		health.GET("/info", healthHandler.Info)
	}

	// API v1
	v1 := router.Group("/api/v1")
	{
		registerAuthRoutes(v1, cfg)

		protected := v1.Group("")
		protected.Use(middleware.Auth(cfg.JWTValidator))

		deps := buildDomain(cfg)
		registerCatalogRoutes(protected, deps)
		registerDocumentRoutes(protected, deps)
		registerOperationalRoutes(protected, deps)
	}

	return router
}

// domainServices holds the wired domain layer. Repos and services are
// stateless between requests, so everything is built once at startup.
type domainServices struct {
	customers      *customer.Service
	vendors        *vendor.Service
	products       *product.Service
	locations      *location.Service
	accounts       *account.Service
	contacts       *contact.Service
	invoices       *invoice.Service
	quotes         *quote.Service
	purchaseOrders *purchaseorder.Service
	vendorBills    *vendorbill.Service
	payments       *payment.Service
	stock          *inventory.Service
	journal        *ledger.Service
	reports        *reports.Service
	crm            *crm.Service
}

func buildDomain(cfg RouterConfig) *domainServices {
	txm := cfg.TxManager
	num := cfg.Numerator

	customerRepo := catalog_repo.NewCustomerRepo(txm)
	vendorRepo := catalog_repo.NewVendorRepo(txm)
	productRepo := catalog_repo.NewProductRepo(txm)
	locationRepo := catalog_repo.NewLocationRepo(txm)
	accountRepo := catalog_repo.NewAccountRepo(txm)
	contactRepo := catalog_repo.NewContactRepo(txm)

	journalRepo := document_repo.NewJournalEntryRepo(txm)
	journalSvc := ledger.NewService(journalRepo, accountRepo, productRepo, cfg.SystemAccounts, num, txm)

	invoiceRepo := document_repo.NewInvoiceRepo(txm)
	invoiceSvc := invoice.NewService(invoiceRepo, customerRepo, journalSvc, num, txm)

	inventoryRepo := inventory_repo.NewInventoryRepo(txm)
	stockSvc := inventory.NewService(inventoryRepo, productRepo, locationRepo, txm)

	svcs := &domainServices{
		customers:      customer.NewService(customerRepo, txm, num),
		vendors:        vendor.NewService(vendorRepo, txm, num),
		products:       product.NewService(productRepo, txm, num),
		locations:      location.NewService(locationRepo, txm, num),
		accounts:       account.NewService(accountRepo, txm),
		contacts:       contact.NewService(contactRepo, txm, num),
		invoices:       invoiceSvc,
		quotes:         quote.NewService(document_repo.NewQuoteRepo(txm), invoiceSvc, num, txm),
		purchaseOrders: purchaseorder.NewService(document_repo.NewPurchaseOrderRepo(txm), stockSvc, num, txm),
		vendorBills:    vendorbill.NewService(document_repo.NewVendorBillRepo(txm), journalSvc, num, txm),
		payments:       payment.NewService(document_repo.NewPaymentRepo(txm), invoiceRepo, journalSvc, num, txm),
		stock:          stockSvc,
		journal:        journalSvc,
		reports:        reports.NewService(report_repo.NewReportRepo(txm)),
		crm:            crm.NewService(crm_repo.NewOpportunityRepo(txm), crm_repo.NewActivityRepo(txm), customerRepo, txm),
	}

	if cfg.Audit != nil {
		registerAuditHooks(svcs, cfg.Audit)
	}

	return svcs
}

// registerAuditHooks wires change-history recording onto the mutating
// services. Hooks run inside the operation's transaction, so the change
// and its audit record commit together.
func registerAuditHooks(svcs *domainServices, audit *postgres.AuditService) {
	auditCatalog(svcs.customers.Hooks(), audit, "customer", func(c *customer.Customer) (id.ID, map[string]any) {
		return c.ID, map[string]any{"code": c.Code, "name": c.Name}
	})
	auditCatalog(svcs.vendors.Hooks(), audit, "vendor", func(v *vendor.Vendor) (id.ID, map[string]any) {
		return v.ID, map[string]any{"code": v.Code, "name": v.Name}
	})
	auditCatalog(svcs.products.Hooks(), audit, "product", func(p *product.Product) (id.ID, map[string]any) {
		return p.ID, map[string]any{"code": p.Code, "name": p.Name, "sku": p.SKU}
	})
	auditCatalog(svcs.accounts.Hooks(), audit, "account", func(a *account.Account) (id.ID, map[string]any) {
		return a.ID, map[string]any{"code": a.Code, "name": a.Name, "type": a.Type}
	})

	svcs.invoices.Hooks().OnAfterCreate(func(ctx context.Context, inv *invoice.Invoice) error {
		return audit.LogChange(ctx, "invoice", inv.ID, postgres.AuditActionCreate, map[string]any{
			"number":     inv.Number,
			"customerId": inv.CustomerID.String(),
			"total":      inv.TotalAmount,
		})
	})
	svcs.invoices.Hooks().OnAfterUpdate(func(ctx context.Context, inv *invoice.Invoice) error {
		return audit.LogChange(ctx, "invoice", inv.ID, postgres.AuditActionUpdate, map[string]any{
			"number": inv.Number,
			"status": inv.Status,
			"total":  inv.TotalAmount,
		})
	})
}

// auditCatalog registers create/update/delete audit hooks for one catalog.
func auditCatalog[T any](
	hooks *domain.HookRegistry[T],
	audit *postgres.AuditService,
	entityType string,
	describe func(T) (id.ID, map[string]any),
) {
	hooks.OnAfterCreate(func(ctx context.Context, e T) error {
		entityID, changes := describe(e)
		return audit.LogChange(ctx, entityType, entityID, postgres.AuditActionCreate, changes)
	})
	hooks.OnAfterUpdate(func(ctx context.Context, e T) error {
		entityID, changes := describe(e)
		return audit.LogChange(ctx, entityType, entityID, postgres.AuditActionUpdate, changes)
	})
	hooks.OnAfterDelete(func(ctx context.Context, e T) error {
		entityID, _ := describe(e)
		return audit.LogChange(ctx, entityType, entityID, postgres.AuditActionDelete, nil)
	})
}

// registerAuthRoutes registers authentication endpoints.
func registerAuthRoutes(rg *gin.RouterGroup, cfg RouterConfig) {
	if cfg.AuthService == nil {
		return
	}

	baseHandler := handlers.NewBaseHandler()
	authHandler := handlers.NewAuthHandler(baseHandler, cfg.AuthService)

	publicAuth := rg.Group("/auth")

	protectedAuth := rg.Group("/auth")
	protectedAuth.Use(middleware.Auth(cfg.JWTValidator))

	authHandler.RegisterRoutes(publicAuth, protectedAuth)
}

// registerCatalogRoutes registers master-data endpoints.
func registerCatalogRoutes(rg *gin.RouterGroup, svcs *domainServices) {
	base := handlers.NewBaseHandler()

	handlers.NewCustomerHandler(base, svcs.customers).RegisterRoutes(rg.Group("/customers"))
	handlers.NewVendorHandler(base, svcs.vendors).RegisterRoutes(rg.Group("/vendors"))
	handlers.NewProductHandler(base, svcs.products).RegisterRoutes(rg.Group("/products"))
	handlers.NewLocationHandler(base, svcs.locations).RegisterRoutes(rg.Group("/locations"))
	handlers.NewAccountHandler(base, svcs.accounts).RegisterRoutes(rg.Group("/accounts"))
	handlers.NewContactHandler(base, svcs.contacts).RegisterRoutes(rg.Group("/contacts"))
}

// registerDocumentRoutes registers document endpoints.
func registerDocumentRoutes(rg *gin.RouterGroup, svcs *domainServices) {
	base := handlers.NewBaseHandler()

	handlers.NewInvoiceHandler(base, svcs.invoices).RegisterRoutes(rg.Group("/invoices"))
	handlers.NewQuoteHandler(base, svcs.quotes).RegisterRoutes(rg.Group("/quotes"))
	handlers.NewPurchaseOrderHandler(base, svcs.purchaseOrders).RegisterRoutes(rg.Group("/purchase-orders"))
	handlers.NewVendorBillHandler(base, svcs.vendorBills).RegisterRoutes(rg.Group("/vendor-bills"))
	handlers.NewPaymentHandler(base, svcs.payments).RegisterRoutes(rg.Group("/payments"))
}

// registerOperationalRoutes registers inventory, ledger, report and CRM
// endpoints.
func registerOperationalRoutes(rg *gin.RouterGroup, svcs *domainServices) {
	base := handlers.NewBaseHandler()

	handlers.NewInventoryHandler(base, svcs.stock).RegisterRoutes(rg.Group("/inventory"))
	handlers.NewLedgerHandler(base, svcs.journal).RegisterRoutes(rg.Group("/journal-entries"))
	handlers.NewReportsHandler(base, svcs.reports).RegisterRoutes(rg.Group("/reports"))
	handlers.NewCRMHandler(base, svcs.crm).RegisterRoutes(rg.Group("/crm"))
}
