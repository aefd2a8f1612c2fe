package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/nikhilmekle/mern-ecommerce-app/app/repositories"
	"github.com/nikhilmekle/mern-ecommerce-app/app/services"
	"github.com/nikhilmekle/mern-ecommerce-app/pkg/bind"
	"github.com/nikhilmekle/mern-ecommerce-app/pkg/logger"
	"github.com/nikhilmekle/mern-ecommerce-app/pkg/response"
)

// ProductController handles catalogue management and the storefront read
// paths: listing, pagination, photos, search, filters, related products.
type ProductController struct {
	products   *services.ProductService
	categories *services.CategoryService
}

func NewProductController(products *services.ProductService, categories *services.CategoryService) *ProductController {
	return &ProductController{products: products, categories: categories}
}

func (c *ProductController) photoError(w http.ResponseWriter, err error) bool {
	switch {
	case errors.Is(err, services.ErrPhotoTooLarge):
		response.ValidationError(w, map[string]string{"photo": "Photo should be less than 1MB"})
	case errors.Is(err, services.ErrBadPhoto):
		response.ValidationError(w, map[string]string{"photo": "Photo must be base64 encoded"})
	default:
		return false
	}
	return true
}

func (c *ProductController) Create(w http.ResponseWriter, r *http.Request) {
	var in services.ProductInput
	errs, err := bind.JSON(r, &in)
	if err != nil {
		response.Fail(w, http.StatusBadRequest, err.Error())
		return
	}
	if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	product, err := c.products.Create(in)
	if err != nil {
		if c.photoError(w, err) {
			return
		}
		logger.WithCtx(r.Context()).Error("product create failed", "error", err)
		response.ServerError(w, "Error in creating product")
		return
	}

	response.Created(w, "Product created successfully", response.Payload{"product": product})
}

func (c *ProductController) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := uintParam(r, "pid")
	if !ok {
		response.NotFound(w, "Product not found")
		return
	}

	var in services.ProductInput
	errs, err := bind.JSON(r, &in)
	if err != nil {
		response.Fail(w, http.StatusBadRequest, err.Error())
		return
	}
	if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	product, err := c.products.Update(id, in)
	if errors.Is(err, services.ErrProductNotFound) {
		response.NotFound(w, "Product not found")
		return
	}
	if err != nil {
		if c.photoError(w, err) {
			return
		}
		logger.WithCtx(r.Context()).Error("product update failed", "error", err)
		response.ServerError(w, "Error in updating product")
		return
	}

	response.OK(w, "Product updated successfully", response.Payload{"product": product})
}

func (c *ProductController) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := uintParam(r, "pid")
	if !ok {
		response.NotFound(w, "Product not found")
		return
	}

	err := c.products.Delete(id)
	if errors.Is(err, services.ErrProductNotFound) {
		response.NotFound(w, "Product not found")
		return
	}
	if err != nil {
		logger.WithCtx(r.Context()).Error("product delete failed", "error", err)
		response.ServerError(w, "Error while deleting product")
		return
	}

	response.OK(w, "Product deleted successfully", nil)
}

// All returns the latest products for the landing view, photos excluded.
func (c *ProductController) All(w http.ResponseWriter, r *http.Request) {
	products, err := c.products.All()
	if err != nil {
		logger.WithCtx(r.Context()).Error("product list failed", "error", err)
		response.ServerError(w, "Error in getting products")
		return
	}

	response.OK(w, "All products", response.Payload{
		"count":    len(products),
		"products": products,
	})
}

func (c *ProductController) BySlug(w http.ResponseWriter, r *http.Request) {
	product, err := c.products.BySlug(chi.URLParam(r, "slug"))
	if errors.Is(err, services.ErrProductNotFound) {
		response.NotFound(w, "Product not found")
		return
	}
	if err != nil {
		logger.WithCtx(r.Context()).Error("product lookup failed", "error", err)
		response.ServerError(w, "Error while getting single product")
		return
	}

	response.OK(w, "Single product fetched", response.Payload{"product": product})
}

// Photo serves the raw photo blob with its stored content type.
func (c *ProductController) Photo(w http.ResponseWriter, r *http.Request) {
	id, ok := uintParam(r, "pid")
	if !ok {
		response.NotFound(w, "Product not found")
		return
	}

	photo, contentType, err := c.products.Photo(id)
	if errors.Is(err, services.ErrProductNotFound) || errors.Is(err, services.ErrPhotoMissing) {
		response.NotFound(w, "Photo not found")
		return
	}
	if err != nil {
		logger.WithCtx(r.Context()).Error("product photo failed", "error", err)
		response.ServerError(w, "Error while getting photo")
		return
	}

	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(http.StatusOK)
	w.Write(photo)
}

type filterInput struct {
	Checked []uint    `json:"checked"`
	Radio   []float64 `json:"radio"` // [min, max]
}

// Filter returns products matching the checked categories and price range.
func (c *ProductController) Filter(w http.ResponseWriter, r *http.Request) {
	var in filterInput
	if _, err := bind.JSON(r, &in); err != nil {
		response.Fail(w, http.StatusBadRequest, err.Error())
		return
	}

	f := repositories.ProductFilter{CategoryIDs: in.Checked}
	if len(in.Radio) == 2 {
		f.PriceMin = &in.Radio[0]
		f.PriceMax = &in.Radio[1]
	}

	products, err := c.products.Filter(f)
	if err != nil {
		logger.WithCtx(r.Context()).Error("product filter failed", "error", err)
		response.ServerError(w, "Error while filtering products")
		return
	}

	response.OK(w, "Filtered products", response.Payload{"products": products})
}

// Count returns the product total for pagination controls.
func (c *ProductController) Count(w http.ResponseWriter, r *http.Request) {
	total, err := c.products.Count()
	if err != nil {
		logger.WithCtx(r.Context()).Error("product count failed", "error", err)
		response.ServerError(w, "Error in product count")
		return
	}

	response.OK(w, "Product count", response.Payload{"total": total})
}

// Page returns one storefront page of products.
func (c *ProductController) Page(w http.ResponseWriter, r *http.Request) {
	page, err := strconv.Atoi(chi.URLParam(r, "page"))
	if err != nil || page < 1 {
		page = 1
	}

	products, perr := c.products.Page(page)
	if perr != nil {
		logger.WithCtx(r.Context()).Error("product page failed", "error", perr)
		response.ServerError(w, "Error in per page ctrl")
		return
	}

	response.OK(w, "Product page", response.Payload{
		"page":     page,
		"products": products,
	})
}

// Search matches the keyword against product names and descriptions.
func (c *ProductController) Search(w http.ResponseWriter, r *http.Request) {
	products, err := c.products.Search(chi.URLParam(r, "keyword"))
	if err != nil {
		logger.WithCtx(r.Context()).Error("product search failed", "error", err)
		response.ServerError(w, "Error in search product")
		return
	}

	response.OK(w, "Search results", response.Payload{"products": products})
}

// Related returns up to 3 other products from the same category.
func (c *ProductController) Related(w http.ResponseWriter, r *http.Request) {
	pid, ok := uintParam(r, "pid")
	if !ok {
		response.NotFound(w, "Product not found")
		return
	}
	cid, ok := uintParam(r, "cid")
	if !ok {
		response.NotFound(w, "Category not found")
		return
	}

	products, err := c.products.Related(pid, cid)
	if err != nil {
		logger.WithCtx(r.Context()).Error("related products failed", "error", err)
		response.ServerError(w, "Error while getting related products")
		return
	}

	response.OK(w, "Related products", response.Payload{"products": products})
}

// ByCategory resolves a category by slug and lists its products.
func (c *ProductController) ByCategory(w http.ResponseWriter, r *http.Request) {
	category, err := c.categories.BySlug(chi.URLParam(r, "slug"))
	if errors.Is(err, services.ErrCategoryNotFound) {
		response.NotFound(w, "Category not found")
		return
	}
	if err != nil {
		logger.WithCtx(r.Context()).Error("category lookup failed", "error", err)
		response.ServerError(w, "Error while getting products")
		return
	}

	products, err := c.products.ByCategory(category)
	if err != nil {
		logger.WithCtx(r.Context()).Error("products by category failed", "error", err)
		response.ServerError(w, "Error while getting products")
		return
	}

	response.OK(w, "Products by category", response.Payload{
		"category": category,
		"products": products,
	})
}
