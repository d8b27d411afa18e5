package services

import (
	"warung/internal/models"
	"warung/internal/repositories"
)

// MenuService handles business logic for menu items and categories.
type MenuService struct {
	menuRepo     repositories.MenuRepository
	categoryRepo repositories.CategoryRepository
}

// NewMenuService creates a new MenuService.
func NewMenuService(menuRepo repositories.MenuRepository, categoryRepo repositories.CategoryRepository) *MenuService {
	return &MenuService{
		menuRepo:     menuRepo,
		categoryRepo: categoryRepo,
	}
}

// GetAllMenuItems retrieves all menu items.
func (s *MenuService) GetAllMenuItems() ([]models.MenuItem, error) {
	return s.menuRepo.GetAll()
}

// GetMenuItemByID retrieves a single menu item by its ID.
func (s *MenuService) GetMenuItemByID(id string) (*models.MenuItem, error) {
	return s.menuRepo.GetByID(id)
}

// CreateMenuItem creates a new menu item.
func (s *MenuService) CreateMenuItem(item *models.MenuItem) error {
	return s.menuRepo.Create(item)
}

// UpdateMenuItem updates an existing menu item.
func (s *MenuService) UpdateMenuItem(item *models.MenuItem) error {
	return s.menuRepo.Update(item)
}

// DeleteMenuItem deletes a menu item by its ID.
func (s *MenuService) DeleteMenuItem(id string) error {
	return s.menuRepo.Delete(id)
}

// GetAllCategories retrieves all categories.
func (s *MenuService) GetAllCategories() ([]models.Category, error) {
	return s.categoryRepo.GetAll()
}

// CreateCategory creates a new category.
func (s *MenuService) CreateCategory(category *models.Category) error {
	return s.categoryRepo.Create(category)
}

// DeleteCategory deletes a category by its ID.
func (s *MenuService) DeleteCategory(id string) error {
	return s.categoryRepo.Delete(id)
}
