package repositories

import (
	"github.com/nikhilmekle/mern-ecommerce-app/app/models"
	"gorm.io/gorm"
)

// CategoryRepository handles database operations for Category.
type CategoryRepository struct {
	db *gorm.DB
}

func NewCategoryRepository(db *gorm.DB) *CategoryRepository {
	return &CategoryRepository{db: db}
}

func (r *CategoryRepository) Create(category *models.Category) error {
	return r.db.Create(category).Error
}

func (r *CategoryRepository) Update(category *models.Category) error {
	return r.db.Save(category).Error
}

func (r *CategoryRepository) Delete(id uint) error {
	return r.db.Delete(&models.Category{}, id).Error
}

// All returns every category, newest first.
func (r *CategoryRepository) All() ([]models.Category, error) {
	var categories []models.Category
	err := r.db.Order("created_at DESC").Find(&categories).Error
	return categories, err
}

func (r *CategoryRepository) FindByID(id uint) (models.Category, error) {
	var category models.Category
	err := r.db.First(&category, id).Error
	return category, err
}

// FindBySlug returns the most recently created category with this slug.
// Slugs are not unique; ties go to the newest row.
func (r *CategoryRepository) FindBySlug(slug string) (models.Category, error) {
	var category models.Category
	err := r.db.Where("slug = ?", slug).Order("created_at DESC").First(&category).Error
	return category, err
}
