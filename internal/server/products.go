package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (s *Server) createProduct(c *gin.Context) {
	var req createProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	product, err := req.toModel()
	if err != nil {
		badRequest(c, err)
		return
	}

	if err := s.products.Create(c.Request.Context(), product); err != nil {
		s.renderError(c, err)
		return
	}

	c.JSON(http.StatusCreated, product)
}

func (s *Server) listProducts(c *gin.Context) {
	list, err := s.products.FindAll(c.Request.Context())
	if err != nil {
		s.renderError(c, err)
		return
	}

	c.JSON(http.StatusOK, list)
}

func (s *Server) getProduct(c *gin.Context) {
	product, err := s.products.FindOne(c.Request.Context(), c.Param("id"))
	if err != nil {
		s.renderError(c, err)
		return
	}

	c.JSON(http.StatusOK, product)
}

func (s *Server) updateProduct(c *gin.Context) {
	var req updateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	product, err := s.products.FindOne(c.Request.Context(), c.Param("id"))
	if err != nil {
		s.renderError(c, err)
		return
	}

	if err := req.apply(product); err != nil {
		badRequest(c, err)
		return
	}

	if err := s.products.Update(c.Request.Context(), product); err != nil {
		s.renderError(c, err)
		return
	}

	c.JSON(http.StatusOK, product)
}

func (s *Server) deleteProduct(c *gin.Context) {
	if err := s.products.Remove(c.Request.Context(), c.Param("id")); err != nil {
		s.renderError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
