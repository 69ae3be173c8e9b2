package http

import (
	"github.com/gofiber/fiber/v2"

	appcatalog "github.com/jhoicas/catalogo-api/internal/application/catalog"
	"github.com/jhoicas/catalogo-api/internal/application/usecase"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	CategoryUC    *usecase.CategoryUseCase
	AttributeUC   *usecase.AttributeUseCase
	ProductUC     *usecase.ProductUseCase
	SetAttributes *appcatalog.SetAttributesUseCase
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Categories
	categories := api.Group("/categories")
	categoryHandler := NewCategoryHandler(deps.CategoryUC)
	categories.Post("/", categoryHandler.Create)
	categories.Get("/", categoryHandler.List)
	categories.Get("/:id", categoryHandler.GetByID)
	categories.Put("/:id", categoryHandler.Update)
	categories.Delete("/:id", categoryHandler.Delete)

	// Esquema de atributos por categoría
	attributeHandler := NewAttributeHandler(deps.AttributeUC)
	categories.Post("/:id/attributes", attributeHandler.Create)
	categories.Get("/:id/attributes", attributeHandler.List)
	categories.Put("/:id/attributes/:attrID", attributeHandler.Update)
	categories.Delete("/:id/attributes/:attrID", attributeHandler.Delete)

	// Products
	products := api.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC, deps.SetAttributes)
	products.Post("/", productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", productHandler.Update)
	products.Delete("/:id", productHandler.Delete)
	products.Put("/:id/category", productHandler.SetCategory)
	products.Put("/:id/attributes", productHandler.SetAttributes)
	products.Get("/:id/sheet.pdf", productHandler.Sheet)

	// Exportaciones
	api.Get("/feed.xml", productHandler.Feed)
}
