package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/donbacco/pos-service/internal/application/ports"
	"github.com/donbacco/pos-service/internal/domain/catalog"
	"github.com/donbacco/pos-service/internal/infrastructure/http/response"
	"github.com/donbacco/pos-service/internal/pkg/logger"
)

type ProductsHandler struct {
	catalog ports.CatalogStore
	log     *logger.Logger
}

func NewProductsHandler(catalogStore ports.CatalogStore, log *logger.Logger) *ProductsHandler {
	return &ProductsHandler{
		catalog: catalogStore,
		log:     log,
	}
}

type productView struct {
	ID       string          `json:"id"`
	Name     string          `json:"name"`
	Brand    string          `json:"brand"`
	Category string          `json:"category"`
	Capacity string          `json:"capacity"`
	Price    decimal.Decimal `json:"price"`
	Cost     decimal.Decimal `json:"cost"`
	Stock    int             `json:"stock"`
	MinStock int             `json:"min_stock"`
	ImageURL string          `json:"image_url,omitempty"`
	IsPromo  bool            `json:"is_promo"`
	Critical bool            `json:"critical"`
}

func newProductView(p catalog.Product) productView {
	return productView{
		ID:       p.ID,
		Name:     p.Name,
		Brand:    p.Brand,
		Category: p.Category.String(),
		Capacity: p.Capacity,
		Price:    p.Price,
		Cost:     p.Cost,
		Stock:    p.Stock,
		MinStock: p.MinStock,
		ImageURL: p.ImageURL,
		IsPromo:  p.IsPromo,
		Critical: p.IsCritical(),
	}
}

// HandleList serves the browsable catalog with the terminal's search and
// category filters.
func (h *ProductsHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	products, err := h.catalog.List(r.Context())
	if err != nil {
		h.log.Error("Failed to list products", "error", err)
		response.WriteDomainError(w, err)
		return
	}

	term := r.URL.Query().Get("search")
	var category *catalog.Category
	if name := r.URL.Query().Get("category"); name != "" {
		c, err := catalog.ParseCategory(name)
		if err != nil {
			response.WriteDomainError(w, err)
			return
		}
		category = &c
	}

	filtered := catalog.Filter(products, term, category)
	views := make([]productView, 0, len(filtered))
	for _, p := range filtered {
		views = append(views, newProductView(p))
	}

	response.WriteSuccess(w, views)
}

type productRequest struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Brand    string `json:"brand"`
	Category string `json:"category"`
	Capacity string `json:"capacity"`
	Price    string `json:"price"`
	Cost     string `json:"cost"`
	Stock    int    `json:"stock"`
	MinStock int    `json:"min_stock"`
	ImageURL string `json:"image_url"`
	IsPromo  bool   `json:"is_promo"`
}

// HandleUpsert accepts externally-validated catalog maintenance. The core
// only checks shape; ownership of the product list stays with the caller.
func (h *ProductsHandler) HandleUpsert(w http.ResponseWriter, r *http.Request) {
	var req productRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.WriteValidationError(w, "Invalid request body", nil)
		return
	}

	errors := make(map[string]string)
	if req.ID == "" {
		errors["id"] = "id is required"
	}
	if req.Name == "" {
		errors["name"] = "name is required"
	}
	price, err := decimal.NewFromString(req.Price)
	if err != nil || price.IsNegative() {
		errors["price"] = "price must be a non-negative decimal"
	}
	cost := decimal.Zero
	if req.Cost != "" {
		if cost, err = decimal.NewFromString(req.Cost); err != nil || cost.IsNegative() {
			errors["cost"] = "cost must be a non-negative decimal"
		}
	}
	if req.Stock < 0 {
		errors["stock"] = "stock must be non-negative"
	}
	if req.MinStock < 0 {
		errors["min_stock"] = "min_stock must be non-negative"
	}
	if len(errors) > 0 {
		response.WriteValidationError(w, "Validation failed", errors)
		return
	}

	category, err := catalog.ParseCategory(req.Category)
	if err != nil {
		response.WriteDomainError(w, err)
		return
	}

	p := catalog.Product{
		ID:       req.ID,
		Name:     req.Name,
		Brand:    req.Brand,
		Category: category,
		Capacity: req.Capacity,
		Price:    price,
		Cost:     cost,
		Stock:    req.Stock,
		MinStock: req.MinStock,
		ImageURL: req.ImageURL,
		IsPromo:  req.IsPromo,
	}

	if err := h.catalog.Save(r.Context(), p); err != nil {
		h.log.Error("Failed to save product", "error", err, "product_id", p.ID)
		response.WriteDomainError(w, err)
		return
	}

	response.WriteSuccess(w, newProductView(p))
}

func (h *ProductsHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimPrefix(r.URL.Path, "/admin/products/")
	if id == "" {
		response.WriteValidationError(w, "Validation failed", map[string]string{
			"id": "product id is required in the path",
		})
		return
	}

	if err := h.catalog.Delete(r.Context(), id); err != nil {
		response.WriteDomainError(w, err)
		return
	}

	response.WriteSuccess(w, map[string]string{"deleted": id})
}
