package services

import (
	"errors"
	"fmt"

	"github.com/nikhilmekle/mern-ecommerce-app/app/models"
	"github.com/nikhilmekle/mern-ecommerce-app/app/repositories"
	"github.com/nikhilmekle/mern-ecommerce-app/pkg/cache"
	"gorm.io/gorm"
)

// ErrCategoryNotFound is returned for lookups on missing categories.
var ErrCategoryNotFound = errors.New("category not found")

const categoryCacheKey = "categories:all"

// CategoryService implements category CRUD with slug derivation and cache
// invalidation.
type CategoryService struct {
	categories *repositories.CategoryRepository
}

func NewCategoryService(categories *repositories.CategoryRepository) *CategoryService {
	return &CategoryService{categories: categories}
}

func (s *CategoryService) Create(name string) (models.Category, error) {
	category := models.Category{Name: name, Slug: Slugify(name)}
	if err := s.categories.Create(&category); err != nil {
		return models.Category{}, fmt.Errorf("category: create: %w", err)
	}
	cache.Del(categoryCacheKey)
	return category, nil
}

func (s *CategoryService) Update(id uint, name string) (models.Category, error) {
	category, err := s.categories.FindByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.Category{}, ErrCategoryNotFound
	}
	if err != nil {
		return models.Category{}, fmt.Errorf("category: find: %w", err)
	}

	category.Name = name
	category.Slug = Slugify(name)
	if err := s.categories.Update(&category); err != nil {
		return models.Category{}, fmt.Errorf("category: update: %w", err)
	}
	cache.Del(categoryCacheKey)
	return category, nil
}

func (s *CategoryService) Delete(id uint) error {
	if _, err := s.categories.FindByID(id); errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrCategoryNotFound
	} else if err != nil {
		return fmt.Errorf("category: find: %w", err)
	}

	if err := s.categories.Delete(id); err != nil {
		return fmt.Errorf("category: delete: %w", err)
	}
	cache.Del(categoryCacheKey)
	return nil
}

// All returns every category, served from cache when warm.
func (s *CategoryService) All() ([]models.Category, error) {
	var categories []models.Category
	if cacheHit(categoryCacheKey, &categories) {
		return categories, nil
	}

	categories, err := s.categories.All()
	if err != nil {
		return nil, fmt.Errorf("category: list: %w", err)
	}
	cacheStore(categoryCacheKey, categories)
	return categories, nil
}

func (s *CategoryService) BySlug(slug string) (models.Category, error) {
	category, err := s.categories.FindBySlug(slug)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.Category{}, ErrCategoryNotFound
	}
	if err != nil {
		return models.Category{}, fmt.Errorf("category: find by slug: %w", err)
	}
	return category, nil
}
