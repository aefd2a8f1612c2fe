package repositories

import (
	"github.com/nikhilmekle/mern-ecommerce-app/app/models"
	"gorm.io/gorm"
)

// PageSize is the number of products per page on the storefront listing.
const PageSize = 6

// listColumns is every product column except the photo blob. Listing
// queries must use it so a page of products doesn't drag megabytes of
// image data out of the database.
var listColumns = []string{
	"id", "created_at", "updated_at", "deleted_at",
	"name", "slug", "description", "price", "quantity", "shipping",
	"photo_content_type", "category_id",
}

// ProductFilter is the storefront filter input: any number of category IDs
// and an optional inclusive price range.
type ProductFilter struct {
	CategoryIDs []uint
	PriceMin    *float64
	PriceMax    *float64
}

// ProductRepository handles database operations for Product.
type ProductRepository struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) *ProductRepository {
	return &ProductRepository{db: db}
}

func (r *ProductRepository) Create(product *models.Product) error {
	return r.db.Create(product).Error
}

func (r *ProductRepository) Update(product *models.Product) error {
	return r.db.Save(product).Error
}

func (r *ProductRepository) Delete(id uint) error {
	return r.db.Delete(&models.Product{}, id).Error
}

func (r *ProductRepository) FindByID(id uint) (models.Product, error) {
	var product models.Product
	err := r.db.Select(listColumns).Preload("Category").First(&product, id).Error
	return product, err
}

// FindBySlug returns the most recent product with this slug, with its
// category populated and the photo excluded.
func (r *ProductRepository) FindBySlug(slug string) (models.Product, error) {
	var product models.Product
	err := r.db.Select(listColumns).Preload("Category").
		Where("slug = ?", slug).Order("created_at DESC").First(&product).Error
	return product, err
}

// All returns up to limit products, newest first, categories populated,
// photos excluded.
func (r *ProductRepository) All(limit int) ([]models.Product, error) {
	var products []models.Product
	err := r.db.Select(listColumns).Preload("Category").
		Order("created_at DESC").Limit(limit).Find(&products).Error
	return products, err
}

// Page returns one storefront page of PageSize products, newest first.
// Pages are 1-based; anything below 1 is treated as page 1.
func (r *ProductRepository) Page(page int) ([]models.Product, error) {
	if page < 1 {
		page = 1
	}
	var products []models.Product
	err := r.db.Select(listColumns).Preload("Category").
		Order("created_at DESC").
		Offset((page - 1) * PageSize).Limit(PageSize).
		Find(&products).Error
	return products, err
}

// Count returns the total number of products, for pagination controls.
func (r *ProductRepository) Count() (int64, error) {
	var n int64
	err := r.db.Model(&models.Product{}).Count(&n).Error
	return n, err
}

// Filter returns products matching the given category and price criteria.
// Empty criteria match everything.
func (r *ProductRepository) Filter(f ProductFilter) ([]models.Product, error) {
	q := r.db.Select(listColumns).Preload("Category")
	if len(f.CategoryIDs) > 0 {
		q = q.Where("category_id IN ?", f.CategoryIDs)
	}
	if f.PriceMin != nil {
		q = q.Where("price >= ?", *f.PriceMin)
	}
	if f.PriceMax != nil {
		q = q.Where("price <= ?", *f.PriceMax)
	}

	var products []models.Product
	err := q.Order("created_at DESC").Find(&products).Error
	return products, err
}

// Search matches keyword case-insensitively against product names and
// descriptions.
func (r *ProductRepository) Search(keyword string) ([]models.Product, error) {
	pattern := "%" + keyword + "%"
	var products []models.Product
	err := r.db.Select(listColumns).Preload("Category").
		Where("name LIKE ? OR description LIKE ?", pattern, pattern).
		Order("created_at DESC").Find(&products).Error
	return products, err
}

// Related returns up to 3 other products in the same category.
func (r *ProductRepository) Related(productID, categoryID uint) ([]models.Product, error) {
	var products []models.Product
	err := r.db.Select(listColumns).Preload("Category").
		Where("category_id = ? AND id <> ?", categoryID, productID).
		Order("created_at DESC").Limit(3).Find(&products).Error
	return products, err
}

// ByCategory returns every product in the given category, photos excluded.
func (r *ProductRepository) ByCategory(categoryID uint) ([]models.Product, error) {
	var products []models.Product
	err := r.db.Select(listColumns).Preload("Category").
		Where("category_id = ?", categoryID).
		Order("created_at DESC").Find(&products).Error
	return products, err
}

// Photo returns just the photo blob and its content type for one product.
func (r *ProductRepository) Photo(id uint) ([]byte, string, error) {
	var product models.Product
	err := r.db.Select("photo", "photo_content_type").First(&product, id).Error
	if err != nil {
		return nil, "", err
	}
	return product.Photo, product.PhotoContentType, nil
}
