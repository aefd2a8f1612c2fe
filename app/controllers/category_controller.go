package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/nikhilmekle/mern-ecommerce-app/app/services"
	"github.com/nikhilmekle/mern-ecommerce-app/pkg/bind"
	"github.com/nikhilmekle/mern-ecommerce-app/pkg/logger"
	"github.com/nikhilmekle/mern-ecommerce-app/pkg/response"
)

// CategoryController handles category management and public lookups.
type CategoryController struct {
	categories *services.CategoryService
}

func NewCategoryController(categories *services.CategoryService) *CategoryController {
	return &CategoryController{categories: categories}
}

type categoryInput struct {
	Name string `json:"name" validate:"required,max=255"`
}

// uintParam parses a numeric URL parameter. Returns 0, false on garbage.
func uintParam(r *http.Request, key string) (uint, bool) {
	n, err := strconv.ParseUint(chi.URLParam(r, key), 10, 32)
	if err != nil {
		return 0, false
	}
	return uint(n), true
}

func (c *CategoryController) Create(w http.ResponseWriter, r *http.Request) {
	var in categoryInput
	errs, err := bind.JSON(r, &in)
	if err != nil {
		response.Fail(w, http.StatusBadRequest, err.Error())
		return
	}
	if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	category, err := c.categories.Create(in.Name)
	if err != nil {
		logger.WithCtx(r.Context()).Error("category create failed", "error", err)
		response.ServerError(w, "Error in category")
		return
	}

	response.Created(w, "New category created", response.Payload{"category": category})
}

func (c *CategoryController) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := uintParam(r, "id")
	if !ok {
		response.NotFound(w, "Category not found")
		return
	}

	var in categoryInput
	errs, err := bind.JSON(r, &in)
	if err != nil {
		response.Fail(w, http.StatusBadRequest, err.Error())
		return
	}
	if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	category, err := c.categories.Update(id, in.Name)
	if errors.Is(err, services.ErrCategoryNotFound) {
		response.NotFound(w, "Category not found")
		return
	}
	if err != nil {
		logger.WithCtx(r.Context()).Error("category update failed", "error", err)
		response.ServerError(w, "Error while updating category")
		return
	}

	response.OK(w, "Category updated successfully", response.Payload{"category": category})
}

func (c *CategoryController) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := uintParam(r, "id")
	if !ok {
		response.NotFound(w, "Category not found")
		return
	}

	err := c.categories.Delete(id)
	if errors.Is(err, services.ErrCategoryNotFound) {
		response.NotFound(w, "Category not found")
		return
	}
	if err != nil {
		logger.WithCtx(r.Context()).Error("category delete failed", "error", err)
		response.ServerError(w, "Error while deleting category")
		return
	}

	response.OK(w, "Category deleted successfully", nil)
}

func (c *CategoryController) All(w http.ResponseWriter, r *http.Request) {
	categories, err := c.categories.All()
	if err != nil {
		logger.WithCtx(r.Context()).Error("category list failed", "error", err)
		response.ServerError(w, "Error while getting all categories")
		return
	}

	response.OK(w, "All categories list", response.Payload{"categories": categories})
}

func (c *CategoryController) BySlug(w http.ResponseWriter, r *http.Request) {
	category, err := c.categories.BySlug(chi.URLParam(r, "slug"))
	if errors.Is(err, services.ErrCategoryNotFound) {
		response.NotFound(w, "Category not found")
		return
	}
	if err != nil {
		logger.WithCtx(r.Context()).Error("category lookup failed", "error", err)
		response.ServerError(w, "Error while getting single category")
		return
	}

	response.OK(w, "Get single category successfully", response.Payload{"category": category})
}
