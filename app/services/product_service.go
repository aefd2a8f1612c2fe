package services

import (
	"encoding/base64"
	"errors"
	"fmt"

	"github.com/nikhilmekle/mern-ecommerce-app/app/models"
	"github.com/nikhilmekle/mern-ecommerce-app/app/repositories"
	"github.com/nikhilmekle/mern-ecommerce-app/pkg/cache"
	"gorm.io/gorm"
)

var (
	ErrProductNotFound = errors.New("product not found")
	ErrPhotoTooLarge   = fmt.Errorf("photo must be at most %d bytes", models.MaxPhotoBytes)
	ErrPhotoMissing    = errors.New("product has no photo")
	ErrBadPhoto        = errors.New("photo must be base64 encoded")
)

// ProductInput is the validated payload for product create/update. Photo is
// base64 so the whole product travels as one JSON document.
type ProductInput struct {
	Name             string  `json:"name"        validate:"required,max=255"`
	Description      string  `json:"description" validate:"required"`
	Price            float64 `json:"price"       validate:"required,numeric,gte=0"`
	Quantity         int     `json:"quantity"    validate:"required,integer,gte=0"`
	CategoryID       uint    `json:"category_id" validate:"required"`
	Shipping         bool    `json:"shipping"    validate:"nullable,boolean"`
	Photo            string  `json:"photo"       validate:"nullable"`
	PhotoContentType string  `json:"photo_content_type" validate:"nullable,max=100"`
}

// ProductService implements catalogue management and the storefront read
// paths, with Redis caching on the hot listing queries.
type ProductService struct {
	products *repositories.ProductRepository
}

func NewProductService(products *repositories.ProductRepository) *ProductService {
	return &ProductService{products: products}
}

// decodePhoto validates and decodes the base64 photo, enforcing the size
// cap before anything touches the database.
func decodePhoto(in ProductInput) ([]byte, error) {
	if in.Photo == "" {
		return nil, nil
	}
	// Reject oversized uploads from the encoded length alone, so a huge
	// photo is never even decoded. base64 inflates by 4/3.
	if len(in.Photo) > models.MaxPhotoBytes*4/3+4 {
		return nil, ErrPhotoTooLarge
	}
	photo, err := base64.StdEncoding.DecodeString(in.Photo)
	if err != nil {
		return nil, ErrBadPhoto
	}
	if len(photo) > models.MaxPhotoBytes {
		return nil, ErrPhotoTooLarge
	}
	return photo, nil
}

func invalidateProductCache() {
	cache.DelPattern("products:*")
}

func (s *ProductService) Create(in ProductInput) (models.Product, error) {
	photo, err := decodePhoto(in)
	if err != nil {
		return models.Product{}, err
	}

	product := models.Product{
		Name:             in.Name,
		Slug:             Slugify(in.Name),
		Description:      in.Description,
		Price:            in.Price,
		Quantity:         in.Quantity,
		Shipping:         in.Shipping,
		Photo:            photo,
		PhotoContentType: in.PhotoContentType,
		CategoryID:       in.CategoryID,
	}
	if err := s.products.Create(&product); err != nil {
		return models.Product{}, fmt.Errorf("product: create: %w", err)
	}
	invalidateProductCache()
	product.Photo = nil
	return product, nil
}

func (s *ProductService) Update(id uint, in ProductInput) (models.Product, error) {
	product, err := s.products.FindByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.Product{}, ErrProductNotFound
	}
	if err != nil {
		return models.Product{}, fmt.Errorf("product: find: %w", err)
	}

	photo, err := decodePhoto(in)
	if err != nil {
		return models.Product{}, err
	}

	product.Name = in.Name
	product.Slug = Slugify(in.Name)
	product.Description = in.Description
	product.Price = in.Price
	product.Quantity = in.Quantity
	product.Shipping = in.Shipping
	product.CategoryID = in.CategoryID
	if photo != nil {
		product.Photo = photo
		product.PhotoContentType = in.PhotoContentType
	}

	if err := s.products.Update(&product); err != nil {
		return models.Product{}, fmt.Errorf("product: update: %w", err)
	}
	invalidateProductCache()
	product.Photo = nil
	return product, nil
}

func (s *ProductService) Delete(id uint) error {
	if _, err := s.products.FindByID(id); errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrProductNotFound
	} else if err != nil {
		return fmt.Errorf("product: find: %w", err)
	}

	if err := s.products.Delete(id); err != nil {
		return fmt.Errorf("product: delete: %w", err)
	}
	invalidateProductCache()
	return nil
}

// All returns the latest 12 products for the storefront landing view.
func (s *ProductService) All() ([]models.Product, error) {
	const key = "products:all"
	var products []models.Product
	if cacheHit(key, &products) {
		return products, nil
	}

	products, err := s.products.All(12)
	if err != nil {
		return nil, fmt.Errorf("product: list: %w", err)
	}
	cacheStore(key, products)
	return products, nil
}

// Page returns one storefront page.
func (s *ProductService) Page(page int) ([]models.Product, error) {
	key := fmt.Sprintf("products:page:%d", page)
	var products []models.Product
	if cacheHit(key, &products) {
		return products, nil
	}

	products, err := s.products.Page(page)
	if err != nil {
		return nil, fmt.Errorf("product: page: %w", err)
	}
	cacheStore(key, products)
	return products, nil
}

func (s *ProductService) Count() (int64, error) {
	n, err := s.products.Count()
	if err != nil {
		return 0, fmt.Errorf("product: count: %w", err)
	}
	return n, nil
}

func (s *ProductService) BySlug(slug string) (models.Product, error) {
	product, err := s.products.FindBySlug(slug)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.Product{}, ErrProductNotFound
	}
	if err != nil {
		return models.Product{}, fmt.Errorf("product: find by slug: %w", err)
	}
	return product, nil
}

// Photo returns the raw photo bytes and content type for serving.
func (s *ProductService) Photo(id uint) ([]byte, string, error) {
	photo, contentType, err := s.products.Photo(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, "", ErrProductNotFound
	}
	if err != nil {
		return nil, "", fmt.Errorf("product: photo: %w", err)
	}
	if len(photo) == 0 {
		return nil, "", ErrPhotoMissing
	}
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	return photo, contentType, nil
}

func (s *ProductService) Filter(f repositories.ProductFilter) ([]models.Product, error) {
	products, err := s.products.Filter(f)
	if err != nil {
		return nil, fmt.Errorf("product: filter: %w", err)
	}
	return products, nil
}

func (s *ProductService) Search(keyword string) ([]models.Product, error) {
	products, err := s.products.Search(keyword)
	if err != nil {
		return nil, fmt.Errorf("product: search: %w", err)
	}
	return products, nil
}

func (s *ProductService) Related(productID, categoryID uint) ([]models.Product, error) {
	products, err := s.products.Related(productID, categoryID)
	if err != nil {
		return nil, fmt.Errorf("product: related: %w", err)
	}
	return products, nil
}

// ByCategorySlug resolves the category then lists its products.
func (s *ProductService) ByCategory(category models.Category) ([]models.Product, error) {
	products, err := s.products.ByCategory(category.ID)
	if err != nil {
		return nil, fmt.Errorf("product: by category: %w", err)
	}
	return products, nil
}
