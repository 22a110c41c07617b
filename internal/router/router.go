package router

import (
	"time"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/vitorduarteebb/otica2/internal/config"
	"github.com/vitorduarteebb/otica2/internal/handler"
	"github.com/vitorduarteebb/otica2/internal/middleware"
	"github.com/vitorduarteebb/otica2/internal/model"
	"github.com/vitorduarteebb/otica2/internal/repository"
	"github.com/vitorduarteebb/otica2/internal/service"
	"github.com/vitorduarteebb/otica2/internal/worker"
)

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Repository ← DB/Redis
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware chain (order matters)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.RateLimiter(1000, time.Minute)) // 1000 req/min per IP

	// ── Repositories ─────────────────────────────────────────────────────────
	userRepo := repository.NewUserRepository(db)
	storeRepo := repository.NewStoreRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	productRepo := repository.NewProductRepository(db)
	stockRepo := repository.NewStockRepository(db)
	tillRepo := repository.NewTillRepository(db)
	saleRepo := repository.NewSaleRepository(db)
	sellerRepo := repository.NewSellerRepository(db)
	customerRepo := repository.NewCustomerRepository(db)
	supplierRepo := repository.NewSupplierRepository(db)
	employeeRepo := repository.NewEmployeeRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	reportRepo := repository.NewReportRepository(db)

	// Worker dispatcher — injected into services that enqueue async jobs
	dispatcher := worker.NewDispatcher(rdb)

	// ── Services ─────────────────────────────────────────────────────────────
	authSvc := service.NewAuthService(userRepo, cfg)
	userSvc := service.NewUserService(userRepo, storeRepo)
	storeSvc := service.NewStoreService(storeRepo, userRepo)
	categorySvc := service.NewCategoryService(categoryRepo)
	productSvc := service.NewProductService(productRepo, stockRepo, categoryRepo)
	stockSvc := service.NewStockService(stockRepo, productRepo, storeRepo)
	tillSvc := service.NewTillService(tillRepo, saleRepo)
	saleSvc := service.NewSaleService(saleRepo, stockRepo, tillRepo, productRepo, customerRepo, sellerRepo, dispatcher)
	sellerSvc := service.NewSellerService(sellerRepo, storeRepo)
	customerSvc := service.NewCustomerService(customerRepo)
	supplierSvc := service.NewSupplierService(supplierRepo)
	employeeSvc := service.NewEmployeeService(employeeRepo, storeRepo)
	orderSvc := service.NewOrderService(orderRepo, sellerRepo)
	reportSvc := service.NewReportService(reportRepo, tillRepo)

	// ── Handlers ─────────────────────────────────────────────────────────────
	authH := handler.NewAuthHandler(authSvc)
	usersH := handler.NewUsersHandler(userSvc)
	storesH := handler.NewStoresHandler(storeSvc)
	categoriesH := handler.NewCategoriesHandler(categorySvc)
	productsH := handler.NewProductsHandler(productSvc)
	stockH := handler.NewStockHandler(stockSvc)
	tillH := handler.NewTillHandler(tillSvc)
	salesH := handler.NewSalesHandler(saleSvc)
	sellersH := handler.NewSellersHandler(sellerSvc)
	customersH := handler.NewCustomersHandler(customerSvc)
	suppliersH := handler.NewSuppliersHandler(supplierSvc)
	employeesH := handler.NewEmployeesHandler(employeeSvc)
	ordersH := handler.NewOrdersHandler(orderSvc)
	reportsH := handler.NewReportsHandler(reportSvc)

	// ── Routes ───────────────────────────────────────────────────────────────

	// Public
	r.GET("/health", handler.Health(db, rdb))

	auth := r.Group("/v1/auth")
	{
		auth.POST("/login", middleware.LoginRateLimiter(), authH.Login)
		auth.POST("/refresh", authH.Refresh)
	}

	// Protected routes — both roles unless narrowed below
	jwtMW := middleware.JWTAuth(cfg.JWTSecret)
	anyRole := middleware.RequireRole(model.RoleAdmin, model.RoleGerente)
	adminOnly := middleware.RequireRole(model.RoleAdmin)

	v1 := r.Group("/v1", jwtMW)
	{
		v1.GET("/auth/me", anyRole, usersH.Me)
		v1.POST("/auth/change-password", anyRole, authH.ChangePassword)

		sales := v1.Group("/sales", anyRole)
		{
			sales.POST("", salesH.Create)
			sales.GET("", salesH.List)
			sales.GET("/:id", salesH.GetByID)
		}

		till := v1.Group("/cash-till-sessions", anyRole)
		{
			till.POST("/open", tillH.Open)
			till.POST("/:id/close", tillH.Close)
			till.GET("/status", tillH.Status)
			till.GET("", tillH.History)
			till.GET("/:id", tillH.GetSession)
		}

		stock := v1.Group("", anyRole)
		{
			stock.POST("/stock-movements", stockH.Record)
			stock.GET("/stock-movements", stockH.ListMovements)
			stock.GET("/store-products", stockH.ListForStore)
			stock.PATCH("/store-products", stockH.Record) // audited adjustment, same body as a movement
			stock.GET("/products/:id/stock", stockH.ListForProduct)
		}

		products := v1.Group("/products", anyRole)
		{
			products.GET("", productsH.List)
			products.GET("/:id", productsH.GetByID)
			products.GET("/code/:code", productsH.GetByCode)
			products.POST("", productsH.Create)
			products.PUT("/:id", productsH.Update)
			products.DELETE("/:id", adminOnly, productsH.Delete)
		}

		// Categorias — leitura para todos, escrita restrita a admin
		v1.GET("/categories", anyRole, categoriesH.List)
		categories := v1.Group("/categories", adminOnly)
		{
			categories.POST("", categoriesH.Create)
			categories.PUT("/:id", categoriesH.Update)
			categories.DELETE("/:id", categoriesH.Deactivate)
		}

		v1.GET("/stores", anyRole, storesH.List)
		v1.GET("/stores/:id", anyRole, storesH.GetByID)
		stores := v1.Group("/stores", adminOnly)
		{
			stores.POST("", storesH.Create)
			stores.PUT("/:id", storesH.Update)
			stores.DELETE("/:id", storesH.Delete)
		}

		sellers := v1.Group("/sellers", anyRole)
		{
			sellers.POST("", sellersH.Create)
			sellers.GET("", sellersH.List)
			sellers.GET("/:id", sellersH.GetByID)
			sellers.PUT("/:id", sellersH.Update)
			sellers.DELETE("/:id", adminOnly, sellersH.Delete)
		}

		customers := v1.Group("/customers", anyRole)
		{
			customers.POST("", customersH.Create)
			customers.GET("", customersH.List)
			customers.GET("/:id", customersH.GetByID)
			customers.PUT("/:id", customersH.Update)
			customers.DELETE("/:id", adminOnly, customersH.Delete)
		}

		suppliers := v1.Group("/suppliers", anyRole)
		{
			suppliers.POST("", suppliersH.Create)
			suppliers.GET("", suppliersH.List)
			suppliers.GET("/:id", suppliersH.GetByID)
			suppliers.PUT("/:id", suppliersH.Update)
			suppliers.DELETE("/:id", adminOnly, suppliersH.Deactivate)
		}

		employees := v1.Group("/employees", anyRole)
		{
			employees.POST("", employeesH.Create)
			employees.GET("", employeesH.List)
			employees.GET("/:id", employeesH.GetByID)
			employees.PUT("/:id", employeesH.Update)
		}

		payrolls := v1.Group("/payrolls", anyRole)
		{
			payrolls.POST("", employeesH.CreatePayroll)
			payrolls.GET("", employeesH.ListPayrolls)
			payrolls.PATCH("/:id", employeesH.UpdatePayroll)
			payrolls.PATCH("/:id/pay", employeesH.MarkPayrollPaid)
		}

		orders := v1.Group("/orders", anyRole)
		{
			orders.POST("", ordersH.Create)
			orders.GET("", ordersH.List)
			orders.GET("/:id", ordersH.GetByID)
			orders.PUT("/:id", ordersH.Update)
			orders.PATCH("/:id/status", ordersH.UpdateStatus)
			orders.DELETE("/:id", adminOnly, ordersH.Delete)
		}

		reports := v1.Group("/reports", anyRole)
		{
			reports.GET("/sales", reportsH.Sales)
			reports.GET("/products", reportsH.TopProducts)
			reports.GET("/products/least", reportsH.LeastProducts)
			reports.GET("/dashboard", reportsH.Dashboard)
			reports.GET("/cash-flow", reportsH.CashFlow)
		}

		users := v1.Group("/users", adminOnly)
		{
			users.POST("", usersH.Create)
			users.GET("", usersH.List)
			users.GET("/:id", usersH.GetByID)
			users.PUT("/:id", usersH.Update)
			users.DELETE("/:id", usersH.Deactivate)
		}
	}

	// Swagger UI — only enabled outside production
	if cfg.Env != "production" {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	return r
}
