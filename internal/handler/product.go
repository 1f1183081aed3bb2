package handler

import (
	"errors"
	"net/http"

	"github.com/deppfellow/product-catalog/internal/model"
	"github.com/deppfellow/product-catalog/internal/server"
	"github.com/deppfellow/product-catalog/internal/service"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

const (
	// MsgProductNotFound is the plain-text body of every product 404.
	MsgProductNotFound = "PRODUCT NOT FOUND"
	// MsgProductDeleted is the plain-text body of a successful delete.
	MsgProductDeleted = "PRODUCT DELETED"
)

var validate = validator.New()

// ListProductsRequest has no inputs.
type ListProductsRequest struct{}

func (r *ListProductsRequest) Validate() error { return nil }

func NewListProductsRequest() *ListProductsRequest { return &ListProductsRequest{} }

// ProductIDRequest addresses a single product by path id.
type ProductIDRequest struct {
	ID int64 `param:"id"`
}

func (r *ProductIDRequest) Validate() error {
	return validate.Struct(r)
}

func NewProductIDRequest() *ProductIDRequest { return &ProductIDRequest{} }

// CreateProductRequest is a ProductDTO body.
type CreateProductRequest struct {
	model.ProductDTO
}

func (r *CreateProductRequest) Validate() error {
	return validate.Struct(r)
}

func NewCreateProductRequest() *CreateProductRequest { return &CreateProductRequest{} }

// UpdateProductRequest is a ProductDTO body for the product at the path id.
// An "id" key in the body is ignored.
type UpdateProductRequest struct {
	ID int64 `param:"id" json:"-"`
	model.ProductDTO
}

func (r *UpdateProductRequest) Validate() error {
	return validate.Struct(r)
}

func NewUpdateProductRequest() *UpdateProductRequest { return &UpdateProductRequest{} }

// ProductHandler serves the /products resource.
type ProductHandler struct {
	Handler
	products *service.ProductService
}

func NewProductHandler(s *server.Server, products *service.ProductService) *ProductHandler {
	return &ProductHandler{
		Handler:  NewHandler(s),
		products: products,
	}
}

// List returns every product.
func (h *ProductHandler) List(c echo.Context, _ *ListProductsRequest) ([]model.Product, error) {
	return h.products.List(c.Request().Context())
}

// Get answers 302 with the product, or 404 PRODUCT NOT FOUND.
func (h *ProductHandler) Get(c echo.Context, req *ProductIDRequest) (Reply, error) {
	product, err := h.products.Get(c.Request().Context(), req.ID)
	if err != nil {
		return notFoundOr(err)
	}
	return Reply{Status: http.StatusFound, Body: product}, nil
}

// Create answers 201 with the persisted product and its assigned id.
func (h *ProductHandler) Create(c echo.Context, req *CreateProductRequest) (*model.Product, error) {
	return h.products.Create(c.Request().Context(), req.ProductDTO)
}

// Update answers 200 with the updated product, or 404 PRODUCT NOT FOUND.
func (h *ProductHandler) Update(c echo.Context, req *UpdateProductRequest) (Reply, error) {
	product, err := h.products.Update(c.Request().Context(), req.ID, req.ProductDTO)
	if err != nil {
		return notFoundOr(err)
	}
	return Reply{Status: http.StatusOK, Body: product}, nil
}

// Delete answers 200 PRODUCT DELETED, or 404 PRODUCT NOT FOUND.
func (h *ProductHandler) Delete(c echo.Context, req *ProductIDRequest) (Reply, error) {
	if err := h.products.Delete(c.Request().Context(), req.ID); err != nil {
		return notFoundOr(err)
	}
	return Reply{Status: http.StatusOK, Body: MsgProductDeleted}, nil
}

// notFoundOr turns service.ErrProductNotFound into the plain-text 404 reply
// and passes every other error on to the global error handler.
func notFoundOr(err error) (Reply, error) {
	if errors.Is(err, service.ErrProductNotFound) {
		return Reply{Status: http.StatusNotFound, Body: MsgProductNotFound}, nil
	}
	return Reply{}, err
}
