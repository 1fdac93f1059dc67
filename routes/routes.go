package routes

import (
	"cobbler-shop/controllers/auth"
	"cobbler-shop/controllers/billing"
	"cobbler-shop/controllers/completed"
	"cobbler-shop/controllers/dashboard"
	"cobbler-shop/controllers/delivery"
	"cobbler-shop/controllers/enquiry"
	"cobbler-shop/controllers/expense"
	"cobbler-shop/controllers/inventory"
	"cobbler-shop/controllers/pickup"
	"cobbler-shop/controllers/service"
	"cobbler-shop/logger"
	"cobbler-shop/middleware"
	"cobbler-shop/types"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func SetupRoutes(app *fiber.App, db *gorm.DB) {
	asyncLogger := logger.NewAsyncLogger(db)
	authController := auth.NewAuthController(db)
	enquiryController := enquiry.NewEnquiryController(db)
	pickupController := pickup.NewPickupController(db)
	serviceController := service.NewServiceController(db)
	billingController := billing.NewBillingController(db)
	deliveryController := delivery.NewDeliveryController(db)
	completedController := completed.NewCompletedController(db)
	inventoryController := inventory.NewInventoryController(db)
	expenseController := expense.NewExpenseController(db)
	dashboardController := dashboard.NewDashboardController(db)

	// Start the async logger processing goroutine
	go asyncLogger.ProcessLog()

	app.Use(middleware.RequestLogger(asyncLogger))

	// Uploaded bill images are served straight from disk
	app.Static("/public", "./public")

	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(types.OkMessage(nil, "cobbler shop api"))
	})

	/*=============================================================================
	| Public Routes
	===============================================================================*/
	api := app.Group("/api")
	api.Post("/auth/register", authController.Register)
	api.Post("/auth/login", authController.Login)

	/*=============================================================================
	| Protected Routes
	===============================================================================*/
	protected := api.Use(middleware.IsAuthenticated(db))

	authGroup := protected.Group("/auth")
	authGroup.Get("/profile", authController.Profile)
	authGroup.Post("/logout", authController.Logout)

	/*=============================================================================
	| Enquiry Routes
	===============================================================================*/
	enquiries := protected.Group("/enquiries")
	enquiries.Get("/stats", enquiryController.Stats)
	enquiries.Get("/", enquiryController.List)
	enquiries.Post("/", enquiryController.Create)
	enquiries.Get("/:id", enquiryController.Get)
	enquiries.Put("/:id", enquiryController.Update)
	enquiries.Delete("/:id", enquiryController.Delete)
	enquiries.Patch("/:id/contacted", enquiryController.MarkContacted)
	enquiries.Patch("/:id/convert", enquiryController.Convert)

	/*=============================================================================
	| Pickup Stage Routes
	===============================================================================*/
	pickupGroup := protected.Group("/pickup")
	pickupGroup.Get("/stats", pickupController.Stats)
	pickupGroup.Get("/enquiries", pickupController.ListEnquiries)
	pickupGroup.Get("/enquiries/:id", pickupController.GetEnquiry)
	pickupGroup.Patch("/enquiries/:id/schedule", pickupController.Schedule)
	pickupGroup.Patch("/enquiries/:id/assign", pickupController.Assign)
	pickupGroup.Patch("/enquiries/:id/collect", pickupController.Collect)
	pickupGroup.Patch("/enquiries/:id/receive", pickupController.Receive)

	/*=============================================================================
	| Service Stage Routes
	===============================================================================*/
	serviceGroup := protected.Group("/service")
	serviceGroup.Get("/enquiries", serviceController.ListEnquiries)
	serviceGroup.Get("/enquiries/:id", serviceController.GetEnquiry)
	serviceGroup.Post("/enquiries/:id/types", serviceController.AddType)
	serviceGroup.Patch("/enquiries/:id/types/:typeId/status", serviceController.UpdateTypeStatus)
	serviceGroup.Patch("/enquiries/:id/cost", serviceController.UpdateCost)
	serviceGroup.Patch("/enquiries/:id/complete", serviceController.Complete)

	/*=============================================================================
	| Billing Stage Routes
	===============================================================================*/
	billingGroup := protected.Group("/billing")
	billingGroup.Get("/enquiries", billingController.ListEnquiries)
	billingGroup.Get("/enquiries/:id", billingController.GetEnquiry)
	billingGroup.Post("/enquiries/:id/invoice", billingController.GenerateInvoice)
	billingGroup.Patch("/enquiries/:id/move-to-delivery", billingController.MoveToDelivery)

	/*=============================================================================
	| Delivery Stage Routes
	===============================================================================*/
	deliveryGroup := protected.Group("/delivery")
	deliveryGroup.Get("/stats", deliveryController.Stats)
	deliveryGroup.Get("/enquiries", deliveryController.ListEnquiries)
	deliveryGroup.Get("/enquiries/:id", deliveryController.GetEnquiry)
	deliveryGroup.Patch("/enquiries/:id/schedule", deliveryController.Schedule)
	deliveryGroup.Patch("/enquiries/:id/out-for-delivery", deliveryController.OutForDelivery)
	deliveryGroup.Patch("/enquiries/:id/complete", deliveryController.Complete)

	/*=============================================================================
	| Completed Routes
	===============================================================================*/
	completedGroup := protected.Group("/completed")
	completedGroup.Get("/stats", completedController.Stats)
	completedGroup.Get("/enquiries", completedController.ListEnquiries)
	completedGroup.Get("/enquiries/:id", completedController.GetEnquiry)

	/*=============================================================================
	| Inventory Routes
	===============================================================================*/
	inventoryGroup := protected.Group("/inventory")
	inventoryGroup.Get("/stats", inventoryController.Stats)
	inventoryGroup.Get("/search", inventoryController.Search)
	inventoryGroup.Get("/items", inventoryController.ListItems)
	inventoryGroup.Post("/items", inventoryController.CreateItem)
	inventoryGroup.Get("/items/:id", inventoryController.GetItem)
	inventoryGroup.Put("/items/:id", inventoryController.UpdateItem)
	inventoryGroup.Delete("/items/:id", inventoryController.DeleteItem)

	/*=============================================================================
	| Expense & Employee Routes
	===============================================================================*/
	expenseGroup := protected.Group("/expenses")
	expenseGroup.Get("/stats", expenseController.Stats)
	expenseGroup.Post("/parse-bill", expenseController.ParseBill)
	expenseGroup.Get("/employees/all", expenseController.ListEmployees)
	expenseGroup.Post("/employees", expenseController.CreateEmployee)
	expenseGroup.Put("/employees/:id", expenseController.UpdateEmployee)
	expenseGroup.Delete("/employees/:id", expenseController.DeleteEmployee)
	expenseGroup.Get("/", expenseController.List)
	expenseGroup.Post("/", expenseController.Create)
	expenseGroup.Get("/:id", expenseController.Get)
	expenseGroup.Put("/:id", expenseController.Update)
	expenseGroup.Delete("/:id", expenseController.Delete)

	/*=============================================================================
	| Dashboard Routes
	===============================================================================*/
	dashboardGroup := protected.Group("/dashboard")
	dashboardGroup.Get("/counts", dashboardController.Counts)
	dashboardGroup.Get("/", dashboardController.Overview)
}
