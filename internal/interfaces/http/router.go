package http

import (
	"github.com/gofiber/fiber/v2"

	appanalytics "github.com/jhoicas/megastore-web/internal/application/analytics"
	"github.com/jhoicas/megastore-web/internal/application/auth"
	"github.com/jhoicas/megastore-web/internal/application/usecase"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	Guard      *SessionGuard
	AuthUC     *auth.AuthUseCase
	CatalogUC  *usecase.CatalogUseCase
	CartUC     *usecase.CartUseCase
	CheckoutUC *usecase.CheckoutUseCase
	ProfileUC  *usecase.ProfileUseCase
	ProductsUC *usecase.ProductAdminUseCase
	TaxonomyUC *usecase.TaxonomyUseCase
	UsersUC    *usecase.UserUseCase
	SalesUC    *usecase.SalesUseCase
	StatsUC    *appanalytics.DashboardUseCase
	DebounceMS int
}

// Router registra las rutas de la tienda, el panel y los view models JSON.
func Router(app *fiber.App, deps RouterDeps) {
	guard := deps.Guard
	app.Use(guard.Load())

	// Tienda (público)
	catalogHandler := NewCatalogHandler(deps.CatalogUC, guard, deps.DebounceMS)
	app.Get("/", catalogHandler.Home)
	app.Get("/products/:id", catalogHandler.Product)
	app.Post("/products/:id/cart", catalogHandler.AddToCart)

	// Auth (público)
	authGroup := app.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC, guard)
	authGroup.Get("/login", authHandler.LoginPage)
	authGroup.Post("/login", authHandler.Login)
	authGroup.Get("/register", authHandler.RegisterPage)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Get("/reset", authHandler.ResetPage)
	authGroup.Post("/reset", authHandler.SendResetToken)
	authGroup.Post("/reset/confirm", authHandler.ResetPassword)
	authGroup.Post("/logout", authHandler.Logout)

	// Carrito, checkout y perfil (requieren sesión)
	cart := app.Group("/cart", guard.RequireSession())
	cartHandler := NewCartHandler(deps.CartUC, guard)
	cart.Get("/", cartHandler.View)
	cart.Post("/items/:variantId/increment", cartHandler.Increment)
	cart.Post("/items/:variantId/decrement", cartHandler.Decrement)
	cart.Post("/items/:variantId/quantity", cartHandler.SetQuantity)
	cart.Post("/items/:variantId/remove", cartHandler.Remove)

	checkout := app.Group("/checkout", guard.RequireSession())
	checkoutHandler := NewCheckoutHandler(deps.CheckoutUC, guard)
	checkout.Get("/", checkoutHandler.Page)
	checkout.Post("/", checkoutHandler.Submit)
	checkout.Get("/confirmation/:id", checkoutHandler.Confirmation)
	checkout.Get("/confirmation/:id/receipt.pdf", checkoutHandler.Receipt)

	profile := app.Group("/profile", guard.RequireSession())
	profileHandler := NewProfileHandler(deps.ProfileUC, guard)
	profile.Get("/", profileHandler.View)
	profile.Get("/edit", profileHandler.EditPage)
	profile.Post("/edit", profileHandler.Update)

	// View models JSON (la sesión la validan los casos de uso)
	vm := app.Group("/vm")
	vmHandler := NewVMHandler(deps.CatalogUC, deps.CartUC, guard)
	vm.Get("/catalog/search", vmHandler.Search)
	vm.Get("/cart", vmHandler.Cart)
	vm.Put("/cart/items/:variantId", vmHandler.UpdateLine)

	// Panel (ADMIN)
	dash := app.Group("/dashboard", guard.RequireAdmin())
	dashboardHandler := NewDashboardHandler(deps.StatsUC, deps.SalesUC, guard)
	dash.Get("/", dashboardHandler.Home)
	dash.Get("/stats", dashboardHandler.Stats)
	dash.Get("/stats/export.pdf", dashboardHandler.ExportStats)
	dash.Get("/sales", dashboardHandler.Sales)
	dash.Get("/sales/:id", dashboardHandler.Sale)
	dash.Get("/sales/:id/transition", dashboardHandler.ConfirmTransition)
	dash.Post("/sales/:id/transition", dashboardHandler.Transition)

	products := dash.Group("/products")
	productHandler := NewProductAdminHandler(deps.ProductsUC, guard)
	products.Get("/", productHandler.List)
	products.Get("/deleted", productHandler.Deleted)
	products.Get("/new", productHandler.NewPage)
	products.Post("/new", productHandler.Create)
	products.Get("/:id/edit", productHandler.EditPage)
	products.Post("/:id/edit", productHandler.Update)
	products.Get("/:id/delete", productHandler.ConfirmDelete)
	products.Post("/:id/delete", productHandler.Delete)
	products.Get("/:id/restore", productHandler.ConfirmRestore)
	products.Post("/:id/restore", productHandler.Restore)
	products.Get("/:id/variants", productHandler.Variants)
	products.Get("/:id/variants/new", productHandler.NewVariantPage)
	products.Post("/:id/variants/new", productHandler.CreateVariant)
	products.Get("/:id/variants/:variantId/edit", productHandler.EditVariantPage)
	products.Post("/:id/variants/:variantId/edit", productHandler.UpdateVariant)
	products.Get("/:id/variants/:variantId/delete", productHandler.ConfirmDeleteVariant)
	products.Post("/:id/variants/:variantId/delete", productHandler.DeleteVariant)

	taxonomyHandler := NewTaxonomyHandler(deps.TaxonomyUC, guard)
	categories := dash.Group("/categories")
	categories.Get("/", taxonomyHandler.Categories)
	categories.Get("/new", taxonomyHandler.CategoryPage)
	categories.Post("/new", taxonomyHandler.SaveCategory)
	categories.Get("/:id/edit", taxonomyHandler.CategoryPage)
	categories.Post("/:id/edit", taxonomyHandler.SaveCategory)
	categories.Get("/:id/delete", taxonomyHandler.ConfirmDeleteCategory)
	categories.Post("/:id/delete", taxonomyHandler.DeleteCategory)

	subcategories := dash.Group("/subcategories")
	subcategories.Get("/", taxonomyHandler.Subcategories)
	subcategories.Get("/new", taxonomyHandler.SubcategoryPage)
	subcategories.Post("/new", taxonomyHandler.SaveSubcategory)
	subcategories.Get("/:id/edit", taxonomyHandler.SubcategoryPage)
	subcategories.Post("/:id/edit", taxonomyHandler.SaveSubcategory)
	subcategories.Get("/:id/delete", taxonomyHandler.ConfirmDeleteSubcategory)
	subcategories.Post("/:id/delete", taxonomyHandler.DeleteSubcategory)

	brands := dash.Group("/brands")
	brands.Get("/", taxonomyHandler.Brands)
	brands.Get("/new", taxonomyHandler.BrandPage)
	brands.Post("/new", taxonomyHandler.SaveBrand)
	brands.Get("/:id/edit", taxonomyHandler.BrandPage)
	brands.Post("/:id/edit", taxonomyHandler.SaveBrand)
	brands.Get("/:id/delete", taxonomyHandler.ConfirmDeleteBrand)
	brands.Post("/:id/delete", taxonomyHandler.DeleteBrand)

	users := dash.Group("/users")
	userHandler := NewUserHandler(deps.UsersUC, guard)
	users.Get("/", userHandler.List)
	users.Get("/new", userHandler.NewPage)
	users.Post("/new", userHandler.Create)
	users.Get("/:id/edit", userHandler.EditPage)
	users.Post("/:id/edit", userHandler.Update)
	users.Get("/:id/delete", userHandler.ConfirmDelete)
	users.Post("/:id/delete", userHandler.Delete)
}
