package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/cloudnative-labs/microservices/internal/core/domain/product"
)

type productListResponse struct {
	Success  bool               `json:"success"`
	Category string             `json:"category,omitempty"`
	Count    int                `json:"count"`
	Data     []*product.Product `json:"data"`
}

func (s *Server) listProducts(c echo.Context) error {
	filter, err := parseProductFilter(c)
	if err != nil {
		return err
	}
	products, err := s.productService.ListProducts(c.Request().Context(), filter)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, productListResponse{Success: true, Count: len(products), Data: products})
}

func (s *Server) listProductsByCategory(c echo.Context) error {
	category := c.Param("category")
	products, err := s.productService.ListByCategory(c.Request().Context(), category)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, productListResponse{Success: true, Category: category, Count: len(products), Data: products})
}

func (s *Server) getProduct(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	p, err := s.productService.GetProduct(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, dataResponse{Success: true, Data: p})
}

func (s *Server) createProduct(c echo.Context) error {
	var req product.CreateProductRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	created, err := s.productService.CreateProduct(c.Request().Context(), &req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, dataResponse{Success: true, Message: "product created", Data: created})
}

// updateProduct applies a partial update: only the fields present in the body
// are written, and an explicit null clears description or category.
func (s *Server) updateProduct(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	var req product.UpdateProductRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	updated, err := s.productService.UpdateProduct(c.Request().Context(), id, &req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, dataResponse{Success: true, Message: "product updated", Data: updated})
}

func (s *Server) deleteProduct(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	deleted, err := s.productService.DeleteProduct(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, dataResponse{Success: true, Message: "product deleted", Data: deleted})
}
