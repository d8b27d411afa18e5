package handlers

import (
	"log"

	"warung/internal/middleware"
	"warung/internal/models"
	"warung/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// MenuHandler handles HTTP requests for menu items and categories. Listing
// is public; mutations are admin-only.
type MenuHandler struct {
	menuService *services.MenuService
	validate    *validator.Validate
}

// NewMenuHandler creates a new MenuHandler.
func NewMenuHandler(menuService *services.MenuService) *MenuHandler {
	return &MenuHandler{
		menuService: menuService,
		validate:    validator.New(),
	}
}

// RegisterPublicRoutes registers the unauthenticated browse routes.
func (h *MenuHandler) RegisterPublicRoutes(router fiber.Router) {
	router.Get("/menu", h.HandleGetMenu)
	router.Get("/categories", h.HandleGetCategories)
}

// RegisterAdminRoutes registers the menu management routes. The router
// passed in must already require authentication.
func (h *MenuHandler) RegisterAdminRoutes(router fiber.Router) {
	adminOnly := middleware.RequireRoles(models.RoleAdmin)
	router.Post("/menu", adminOnly, h.HandleCreateMenuItem)
	router.Put("/menu/:id", adminOnly, h.HandleUpdateMenuItem)
	router.Delete("/menu/:id", adminOnly, h.HandleDeleteMenuItem)
	router.Post("/categories", adminOnly, h.HandleCreateCategory)
	router.Delete("/categories/:id", adminOnly, h.HandleDeleteCategory)
}

// HandleGetMenu returns all menu items.
func (h *MenuHandler) HandleGetMenu(c *fiber.Ctx) error {
	items, err := h.menuService.GetAllMenuItems()
	if err != nil {
		log.Printf("Error getting menu items: %v", err)
		return serviceError(c, err)
	}
	return c.JSON(items)
}

// HandleGetCategories returns all categories.
func (h *MenuHandler) HandleGetCategories(c *fiber.Ctx) error {
	categories, err := h.menuService.GetAllCategories()
	if err != nil {
		log.Printf("Error getting categories: %v", err)
		return serviceError(c, err)
	}
	return c.JSON(categories)
}

// HandleCreateMenuItem creates a new menu item.
func (h *MenuHandler) HandleCreateMenuItem(c *fiber.Ctx) error {
	var item models.MenuItem
	if err := c.BodyParser(&item); err != nil {
		log.Printf("Error parsing menu item body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	if err := h.validate.Struct(item); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": validationMessage(err),
		})
	}

	if err := h.menuService.CreateMenuItem(&item); err != nil {
		log.Printf("Error creating menu item: %v", err)
		return serviceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(item)
}

// HandleUpdateMenuItem updates an existing menu item.
func (h *MenuHandler) HandleUpdateMenuItem(c *fiber.Ctx) error {
	var item models.MenuItem
	if err := c.BodyParser(&item); err != nil {
		log.Printf("Error parsing menu item body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	item.ID = c.Params("id")

	if err := h.validate.Struct(item); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": validationMessage(err),
		})
	}

	if err := h.menuService.UpdateMenuItem(&item); err != nil {
		log.Printf("Error updating menu item %s: %v", item.ID, err)
		return serviceError(c, err)
	}
	return c.JSON(item)
}

// HandleDeleteMenuItem deletes a menu item.
func (h *MenuHandler) HandleDeleteMenuItem(c *fiber.Ctx) error {
	id := c.Params("id")
	if err := h.menuService.DeleteMenuItem(id); err != nil {
		log.Printf("Error deleting menu item %s: %v", id, err)
		return serviceError(c, err)
	}
	return c.JSON(fiber.Map{
		"message": "Menu item deleted",
	})
}

// HandleCreateCategory creates a new category.
func (h *MenuHandler) HandleCreateCategory(c *fiber.Ctx) error {
	var category models.Category
	if err := c.BodyParser(&category); err != nil {
		log.Printf("Error parsing category body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	if err := h.validate.Struct(category); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": validationMessage(err),
		})
	}

	if err := h.menuService.CreateCategory(&category); err != nil {
		log.Printf("Error creating category: %v", err)
		return serviceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(category)
}

// HandleDeleteCategory deletes a category.
func (h *MenuHandler) HandleDeleteCategory(c *fiber.Ctx) error {
	id := c.Params("id")
	if err := h.menuService.DeleteCategory(id); err != nil {
		log.Printf("Error deleting category %s: %v", id, err)
		return serviceError(c, err)
	}
	return c.JSON(fiber.Map{
		"message": "Category deleted",
	})
}
