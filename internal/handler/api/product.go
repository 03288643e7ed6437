package api

import (
	"errors"
	"net/http"

	"metromobiles/internal/domain/catalog"
	reqdto "metromobiles/internal/handler/dto/request"
	resdto "metromobiles/internal/handler/dto/response"
	"metromobiles/internal/handler/httperr"
	"metromobiles/internal/usecase/commands"
	"metromobiles/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type ProductHandler struct {
	cmds commands.ProductCommands
	q    queries.ProductQueries
}

func NewProductHandler(cmds commands.ProductCommands, q queries.ProductQueries) *ProductHandler {
	return &ProductHandler{cmds: cmds, q: q}
}

// @Summary List products
// @Description List the catalog with optional brand, search and sort
// @Tags products
// @Produce json
// @Param brand query string false "Filter by brand"
// @Param q query string false "Search by name or brand"
// @Param sort query string false "Sort order (price-low, price-high, name)"
// @Success 200 {array} resdto.ProductResponse
// @Router /products [get]
func (h *ProductHandler) List(c *gin.Context) {
	filter := queries.ProductFilter{
		Brand: c.Query("brand"),
		Query: c.Query("q"),
		Sort:  queries.NewProductSort(c.Query("sort")),
	}

	products, err := h.q.ListProducts(c.Request.Context(), filter)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to list products", nil)
		return
	}
	c.JSON(http.StatusOK, resdto.FromProductList(products))
}

// @Summary Get product
// @Description Get a product by id or slug
// @Tags products
// @Produce json
// @Param id path string true "Product id or slug"
// @Success 200 {object} resdto.ProductResponse
// @Failure 404 {object} map[string]string
// @Router /products/{id} [get]
func (h *ProductHandler) Get(c *gin.Context) {
	id := catalog.NormalizeID(c.Param("id"))

	product, err := h.q.GetProduct(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, queries.ErrProductNotFound) {
			httperr.AbortWithError(c, http.StatusNotFound, err, "Product not found", nil)
			return
		}
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to get product", nil)
		return
	}
	c.JSON(http.StatusOK, resdto.FromProduct(product))
}

// @Summary Create product
// @Description Create a product with up to 10 images (admin only)
// @Tags products
// @Accept mpfd
// @Produce json
// @Security BearerAuth
// @Param name formData string true "Product name"
// @Success 201 {object} resdto.ProductResponse
// @Failure 400 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /products [post]
func (h *ProductHandler) Create(c *gin.Context) {
	var form reqdto.ProductForm
	if err := c.ShouldBind(&form); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request format", nil)
		return
	}

	product, err := h.cmds.Create(c.Request.Context(), form.ToInput())
	if err != nil {
		switch {
		case errors.Is(err, commands.ErrDuplicateSlug):
			httperr.AbortWithError(c, http.StatusConflict, err, "A product with this name already exists", nil)
		case errors.Is(err, commands.ErrProductValidation):
			httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid product data", nil)
		case errors.Is(err, commands.ErrImageUpload):
			httperr.AbortWithError(c, http.StatusBadRequest, err, "Image upload failed", nil)
		default:
			httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to create product", nil)
		}
		return
	}
	c.JSON(http.StatusCreated, resdto.FromProduct(product))
}

// @Summary Update product
// @Description Replace a product; new images replace the gallery (admin only)
// @Tags products
// @Accept mpfd
// @Produce json
// @Security BearerAuth
// @Param id path string true "Product id or slug"
// @Success 200 {object} resdto.ProductResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /products/{id} [put]
func (h *ProductHandler) Update(c *gin.Context) {
	id := catalog.NormalizeID(c.Param("id"))

	var form reqdto.ProductForm
	if err := c.ShouldBind(&form); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request format", nil)
		return
	}

	product, err := h.cmds.Update(c.Request.Context(), id, form.ToInput())
	if err != nil {
		switch {
		case errors.Is(err, commands.ErrProductNotFound):
			httperr.AbortWithError(c, http.StatusNotFound, err, "Product not found", nil)
		case errors.Is(err, commands.ErrDuplicateSlug):
			httperr.AbortWithError(c, http.StatusConflict, err, "A product with this name already exists", nil)
		case errors.Is(err, commands.ErrProductValidation):
			httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid product data", nil)
		case errors.Is(err, commands.ErrImageUpload):
			httperr.AbortWithError(c, http.StatusBadRequest, err, "Image upload failed", nil)
		default:
			httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to update product", nil)
		}
		return
	}
	c.JSON(http.StatusOK, resdto.FromProduct(product))
}

// @Summary Delete product
// @Description Delete a product and its stored images (admin only)
// @Tags products
// @Security BearerAuth
// @Param id path string true "Product id or slug"
// @Success 204 "No Content"
// @Failure 404 {object} map[string]string
// @Router /products/{id} [delete]
func (h *ProductHandler) Delete(c *gin.Context) {
	id := catalog.NormalizeID(c.Param("id"))

	if err := h.cmds.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, commands.ErrProductNotFound) {
			httperr.AbortWithError(c, http.StatusNotFound, err, "Product not found", nil)
			return
		}
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to delete product", nil)
		return
	}
	c.Status(http.StatusNoContent)
}
