package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	portssvc "github.com/pardisco/shop_ledger_app/internal/core/ports/services"
	"github.com/pardisco/shop_ledger_app/internal/dto"
	"github.com/pardisco/shop_ledger_app/internal/middleware"
)

// inventoryHandler handles HTTP requests for phones and products.
type inventoryHandler struct {
	inventoryService portssvc.InventorySvcFacade
}

func newInventoryHandler(is portssvc.InventorySvcFacade) *inventoryHandler {
	return &inventoryHandler{inventoryService: is}
}

// registerInventoryRoutes registers phone and product routes.
func registerInventoryRoutes(rg *gin.RouterGroup, inventoryService portssvc.InventorySvcFacade) {
	h := newInventoryHandler(inventoryService)

	phones := rg.Group("/phones")
	{
		phones.POST("", h.addPhone)
		phones.GET("", h.listPhones)
		phones.GET("/:id", h.getPhone)
		phones.GET("/imei/:imei", h.getPhoneByIMEI)
		phones.POST("/:id/return", h.returnPhone)
	}

	products := rg.Group("/products")
	{
		products.POST("", h.addProduct)
		products.GET("", h.listProducts)
		products.GET("/:id", h.getProduct)
		products.PUT("/:id", h.updateProduct)
	}
}

func (h *inventoryHandler) addPhone(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreatePhoneRequest
	if !bindJSONOrAbort(c, &req) {
		return
	}

	phone, err := h.inventoryService.AddPhone(c.Request.Context(), req)
	if err != nil {
		respondWithError(c, err, "Failed to add phone")
		return
	}

	logger.Info("Phone added", slog.String("phone_id", phone.PhoneID), slog.String("imei", phone.IMEI))
	c.JSON(http.StatusCreated, dto.ToPhoneResponse(phone))
}

func (h *inventoryHandler) getPhone(c *gin.Context) {
	phone, err := h.inventoryService.GetPhoneByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondWithError(c, err, "Failed to retrieve phone")
		return
	}
	c.JSON(http.StatusOK, dto.ToPhoneResponse(phone))
}

func (h *inventoryHandler) getPhoneByIMEI(c *gin.Context) {
	phone, err := h.inventoryService.GetPhoneByIMEI(c.Request.Context(), c.Param("imei"))
	if err != nil {
		respondWithError(c, err, "Failed to retrieve phone")
		return
	}
	c.JSON(http.StatusOK, dto.ToPhoneResponse(phone))
}

func (h *inventoryHandler) listPhones(c *gin.Context) {
	var params dto.ListPhonesParams
	if !bindQueryOrAbort(c, &params) {
		return
	}

	phones, err := h.inventoryService.ListPhones(c.Request.Context(), params)
	if err != nil {
		respondWithError(c, err, "Failed to list phones")
		return
	}
	c.JSON(http.StatusOK, gin.H{"phones": dto.ToListPhonesResponse(phones)})
}

func (h *inventoryHandler) returnPhone(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	phone, err := h.inventoryService.ReturnPhone(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondWithError(c, err, "Failed to return phone")
		return
	}

	logger.Info("Phone returned", slog.String("phone_id", phone.PhoneID))
	c.JSON(http.StatusOK, dto.ToPhoneResponse(phone))
}

func (h *inventoryHandler) addProduct(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateProductRequest
	if !bindJSONOrAbort(c, &req) {
		return
	}

	product, err := h.inventoryService.AddProduct(c.Request.Context(), req)
	if err != nil {
		respondWithError(c, err, "Failed to add product")
		return
	}

	logger.Info("Product added", slog.String("product_id", product.ProductID))
	c.JSON(http.StatusCreated, dto.ToProductResponse(product))
}

func (h *inventoryHandler) getProduct(c *gin.Context) {
	product, err := h.inventoryService.GetProductByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondWithError(c, err, "Failed to retrieve product")
		return
	}
	c.JSON(http.StatusOK, dto.ToProductResponse(product))
}

func (h *inventoryHandler) listProducts(c *gin.Context) {
	var params dto.ListProductsParams
	if !bindQueryOrAbort(c, &params) {
		return
	}

	products, err := h.inventoryService.ListProducts(c.Request.Context(), params)
	if err != nil {
		respondWithError(c, err, "Failed to list products")
		return
	}
	c.JSON(http.StatusOK, gin.H{"products": dto.ToListProductsResponse(products)})
}

func (h *inventoryHandler) updateProduct(c *gin.Context) {
	var req dto.UpdateProductRequest
	if !bindJSONOrAbort(c, &req) {
		return
	}

	product, err := h.inventoryService.UpdateProduct(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		respondWithError(c, err, "Failed to update product")
		return
	}
	c.JSON(http.StatusOK, dto.ToProductResponse(product))
}
