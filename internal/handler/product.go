package handler

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/glowcart/glowcart-api/internal/model"
	"github.com/glowcart/glowcart-api/internal/payload"
	"github.com/glowcart/glowcart-api/internal/repository"
	"github.com/glowcart/glowcart-api/internal/usecase"
	"github.com/glowcart/glowcart-api/shared/httpx"
	"github.com/glowcart/glowcart-api/shared/validation"
)

// ProductHandler exposes the product catalog over HTTP.
type ProductHandler struct {
	productUsecase usecase.ProductUsecase
	validator      *validation.Validator
	logger         *zerolog.Logger
}

func NewProductHandler(
	productUsecase usecase.ProductUsecase,
	validator *validation.Validator,
	logger *zerolog.Logger,
) *ProductHandler {
	return &ProductHandler{
		productUsecase: productUsecase,
		validator:      validator,
		logger:         logger,
	}
}

// Create handles POST /api/product/create.
func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req payload.CreateProductRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Fail(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if fields := h.validator.Struct(req); fields != nil {
		httpx.FailFields(w, fields)
		return
	}

	product, err := h.productUsecase.CreateProduct(r.Context(), &model.Product{
		Name:        req.Name,
		Price:       req.Price,
		Category:    req.Category,
		SkinType:    req.SkinType,
		Description: req.Description,
		Image:       req.Image,
		Quantity:    req.Quantity,
	})
	if err != nil {
		respondError(w, h.logger, err)
		return
	}

	httpx.Success(w, http.StatusCreated, "Product created", httpx.Envelope{
		"product": product,
	})
}

// List handles GET /api/product/get_all_products.
func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	products, err := h.productUsecase.ListProducts(r.Context())
	if err != nil {
		respondError(w, h.logger, err)
		return
	}

	httpx.Success(w, http.StatusOK, "Products fetched", httpx.Envelope{
		"products": products,
	})
}

// Get handles GET /api/product/get_single_product/{id}.
func (h *ProductHandler) Get(w http.ResponseWriter, r *http.Request) {
	product, err := h.productUsecase.GetProduct(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, h.logger, err)
		return
	}

	httpx.Success(w, http.StatusOK, "Product fetched", httpx.Envelope{
		"product": product,
	})
}

// Paginate handles GET /api/product/pagination?page=N.
func (h *ProductHandler) Paginate(w http.ResponseWriter, r *http.Request) {
	page, err := strconv.ParseInt(r.URL.Query().Get("page"), 10, 64)
	if err != nil || page < 1 {
		page = 1
	}

	products, total, err := h.productUsecase.PaginateProducts(r.Context(), page)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}

	totalPages := total / usecase.ProductsPerPage
	if total%usecase.ProductsPerPage != 0 {
		totalPages++
	}

	httpx.Success(w, http.StatusOK, "Products fetched", httpx.Envelope{
		"products":   products,
		"page":       page,
		"totalPages": totalPages,
		"totalCount": total,
	})
}

// Filter handles GET /api/product/filter?category=X.
func (h *ProductHandler) Filter(w http.ResponseWriter, r *http.Request) {
	products, err := h.productUsecase.FilterProducts(r.Context(), r.URL.Query().Get("category"))
	if err != nil {
		respondError(w, h.logger, err)
		return
	}

	httpx.Success(w, http.StatusOK, "Products fetched", httpx.Envelope{
		"products": products,
	})
}

// Search handles GET /api/product/search?q=X&category=Y.
func (h *ProductHandler) Search(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	products, err := h.productUsecase.SearchProducts(r.Context(), query.Get("q"), query.Get("category"))
	if err != nil {
		respondError(w, h.logger, err)
		return
	}

	httpx.Success(w, http.StatusOK, "Products fetched", httpx.Envelope{
		"products": products,
	})
}

// Update handles PUT /api/product/update_product/{id}.
func (h *ProductHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req payload.UpdateProductRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Fail(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if fields := h.validator.Struct(req); fields != nil {
		httpx.FailFields(w, fields)
		return
	}

	product, err := h.productUsecase.UpdateProduct(r.Context(), chi.URLParam(r, "id"), repository.UpdateProductParams{
		Name:        req.Name,
		Price:       req.Price,
		Category:    req.Category,
		SkinType:    req.SkinType,
		Description: req.Description,
		Image:       req.Image,
		Quantity:    req.Quantity,
	})
	if err != nil {
		respondError(w, h.logger, err)
		return
	}

	httpx.Success(w, http.StatusOK, "Product updated", httpx.Envelope{
		"product": product,
	})
}

// Delete handles DELETE /api/product/delete_product/{id}.
func (h *ProductHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.productUsecase.DeleteProduct(r.Context(), chi.URLParam(r, "id")); err != nil {
		respondError(w, h.logger, err)
		return
	}

	httpx.Success(w, http.StatusOK, "Product deleted", nil)
}
