package api

import (
	"log/slog"
	"net/http"

	"github.com/phrazzld/marketplace-api/internal/api/shared"
	"github.com/phrazzld/marketplace-api/internal/domain"
	"github.com/phrazzld/marketplace-api/internal/platform/logger"
	"github.com/phrazzld/marketplace-api/internal/service"
	"github.com/phrazzld/marketplace-api/internal/store"
)

// ProductHandler serves the /api/products endpoints.
type ProductHandler struct {
	productService service.ProductService
	logger         *slog.Logger
}

// NewProductHandler creates a new ProductHandler.
func NewProductHandler(productService service.ProductService, logger *slog.Logger) *ProductHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &ProductHandler{
		productService: productService,
		logger:         logger.With(slog.String("component", "product_handler")),
	}
}

// CreateProduct handles POST /api/products.
func (h *ProductHandler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, ok := getUserIDFromContext(r)
	if !ok {
		log.Warn("user ID not found in request context")
		shared.RespondWithError(w, r, http.StatusUnauthorized, shared.MsgNoToken)
		return
	}

	var in domain.ProductInput
	if err := shared.DecodeJSON(w, r, &in); err != nil {
		log.Debug("failed to decode product", slog.String("error", err.Error()))
		shared.RespondWithError(w, r, http.StatusBadRequest, shared.MsgInvalidRequest)
		return
	}

	product, err := h.productService.CreateProduct(r.Context(), userID, in)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	log.Info("product created",
		slog.String("product_id", product.ID),
		slog.String("seller_id", product.SellerID))

	shared.RespondWithJSON(w, r, http.StatusCreated, newProductResponse(product))
}

// ListProducts handles GET /api/products with the optional search and category
// query parameters.
func (h *ProductHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	filter := store.ProductFilter{
		Search:   query.Get("search"),
		Category: query.Get("category"),
	}

	products, err := h.productService.ListProducts(r.Context(), filter)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, newProductResponses(products))
}

// GetProduct handles GET /api/products/{id}.
func (h *ProductHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	id, err := getPathID(r, "id")
	if err != nil {
		shared.RespondWithError(w, r, http.StatusNotFound, shared.MsgProductNotFound)
		return
	}

	product, err := h.productService.GetProduct(r.Context(), id)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, newProductResponse(product))
}

// UpdateProduct handles PUT /api/products/{id}. Only the fields present in the
// body are changed.
func (h *ProductHandler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, id, ok := handleUserIDAndPathID(w, r, "id", log)
	if !ok {
		return
	}

	var patch domain.ProductPatch
	if err := shared.DecodeJSON(w, r, &patch); err != nil {
		log.Debug("failed to decode product patch", slog.String("error", err.Error()))
		shared.RespondWithError(w, r, http.StatusBadRequest, shared.MsgInvalidRequest)
		return
	}

	product, err := h.productService.UpdateProduct(r.Context(), userID, id, patch)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	log.Info("product updated", slog.String("product_id", product.ID))
	shared.RespondWithJSON(w, r, http.StatusOK, newProductResponse(product))
}

// DeleteProduct handles DELETE /api/products/{id}.
func (h *ProductHandler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, id, ok := handleUserIDAndPathID(w, r, "id", log)
	if !ok {
		return
	}

	if err := h.productService.DeleteProduct(r.Context(), userID, id); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	log.Info("product removed", slog.String("product_id", id))
	shared.RespondWithJSON(w, r, http.StatusOK, shared.MessageResponse{Message: shared.MsgProductRemoved})
}
