package services_test

import (
	"encoding/base64"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/nikhilmekle/mern-ecommerce-app/app/models"
	"github.com/nikhilmekle/mern-ecommerce-app/app/repositories"
	"github.com/nikhilmekle/mern-ecommerce-app/app/services"
)

func newCatalogFixture(t *testing.T) (*services.ProductService, *services.CategoryService, *gorm.DB, models.Category) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Category{}, &models.Product{}))

	categorySvc := services.NewCategoryService(repositories.NewCategoryRepository(db))
	cat, err := categorySvc.Create("Electronics")
	require.NoError(t, err)
	require.Equal(t, "electronics", cat.Slug)

	productSvc := services.NewProductService(repositories.NewProductRepository(db))
	return productSvc, categorySvc, db, cat
}

func productInput(categoryID uint) services.ProductInput {
	return services.ProductInput{
		Name:        "Gaming Laptop",
		Description: "Fast machine",
		Price:       1299.99,
		Quantity:    5,
		CategoryID:  categoryID,
		Shipping:    true,
	}
}

func TestProductCreateDerivesSlug(t *testing.T) {
	svc, _, db, cat := newCatalogFixture(t)

	product, err := svc.Create(productInput(cat.ID))
	require.NoError(t, err)
	require.Equal(t, "gaming-laptop", product.Slug)

	var stored models.Product
	require.NoError(t, db.First(&stored, product.ID).Error)
	require.Equal(t, "gaming-laptop", stored.Slug)
}

func TestProductPhotoStoredAndServed(t *testing.T) {
	svc, _, _, cat := newCatalogFixture(t)

	in := productInput(cat.ID)
	raw := []byte{0xFF, 0xD8, 0xFF, 0xE0, 0x01, 0x02}
	in.Photo = base64.StdEncoding.EncodeToString(raw)
	in.PhotoContentType = "image/jpeg"

	product, err := svc.Create(in)
	require.NoError(t, err)
	require.Nil(t, product.Photo, "responses never carry the blob")

	photo, contentType, err := svc.Photo(product.ID)
	require.NoError(t, err)
	require.Equal(t, raw, photo)
	require.Equal(t, "image/jpeg", contentType)
}

func TestProductPhotoTooLargeRejectedAtomically(t *testing.T) {
	svc, _, db, cat := newCatalogFixture(t)

	in := productInput(cat.ID)
	oversized := strings.Repeat("A", models.MaxPhotoBytes+1)
	in.Photo = base64.StdEncoding.EncodeToString([]byte(oversized))

	_, err := svc.Create(in)
	require.ErrorIs(t, err, services.ErrPhotoTooLarge)

	var n int64
	require.NoError(t, db.Model(&models.Product{}).Count(&n).Error)
	require.Zero(t, n, "an oversized photo must not leave a partial product behind")
}

func TestProductPhotoBadEncoding(t *testing.T) {
	svc, _, _, cat := newCatalogFixture(t)

	in := productInput(cat.ID)
	in.Photo = "not valid base64 !!!"
	_, err := svc.Create(in)
	require.ErrorIs(t, err, services.ErrBadPhoto)
}

func TestProductUpdateKeepsPhotoWhenOmitted(t *testing.T) {
	svc, _, _, cat := newCatalogFixture(t)

	in := productInput(cat.ID)
	raw := []byte{0xFF, 0xD8}
	in.Photo = base64.StdEncoding.EncodeToString(raw)
	in.PhotoContentType = "image/jpeg"
	product, err := svc.Create(in)
	require.NoError(t, err)

	update := productInput(cat.ID)
	update.Name = "Gaming Laptop Pro"
	updated, err := svc.Update(product.ID, update)
	require.NoError(t, err)
	require.Equal(t, "gaming-laptop-pro", updated.Slug)

	photo, _, err := svc.Photo(product.ID)
	require.NoError(t, err)
	require.Equal(t, raw, photo, "an update without a photo keeps the old one")
}

func TestProductMissingPhoto(t *testing.T) {
	svc, _, _, cat := newCatalogFixture(t)

	product, err := svc.Create(productInput(cat.ID))
	require.NoError(t, err)

	_, _, err = svc.Photo(product.ID)
	require.ErrorIs(t, err, services.ErrPhotoMissing)

	_, _, err = svc.Photo(9999)
	require.ErrorIs(t, err, services.ErrProductNotFound)
}

func TestCategoryUpdateReslug(t *testing.T) {
	_, categorySvc, _, cat := newCatalogFixture(t)

	updated, err := categorySvc.Update(cat.ID, "Home Audio")
	require.NoError(t, err)
	require.Equal(t, "home-audio", updated.Slug)

	_, err = categorySvc.Update(cat.ID+100, "Nope")
	require.ErrorIs(t, err, services.ErrCategoryNotFound)
}

func TestProductDelete(t *testing.T) {
	svc, _, _, cat := newCatalogFixture(t)

	product, err := svc.Create(productInput(cat.ID))
	require.NoError(t, err)

	require.NoError(t, svc.Delete(product.ID))
	require.ErrorIs(t, svc.Delete(product.ID), services.ErrProductNotFound)

	_, err = svc.BySlug("gaming-laptop")
	require.ErrorIs(t, err, services.ErrProductNotFound)
}
