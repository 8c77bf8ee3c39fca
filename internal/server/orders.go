package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (s *Server) createOrder(c *gin.Context) {
	var req createOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	in, err := req.toInput()
	if err != nil {
		badRequest(c, err)
		return
	}

	order, err := s.orders.Create(c.Request.Context(), in)
	if err != nil {
		s.renderError(c, err)
		return
	}

	c.JSON(http.StatusCreated, order)
}

func (s *Server) listOrders(c *gin.Context) {
	list, err := s.orders.FindAll(c.Request.Context())
	if err != nil {
		s.renderError(c, err)
		return
	}

	c.JSON(http.StatusOK, list)
}

func (s *Server) getOrder(c *gin.Context) {
	order, err := s.orders.FindOne(c.Request.Context(), c.Param("id"))
	if err != nil {
		s.renderError(c, err)
		return
	}

	c.JSON(http.StatusOK, order)
}

func (s *Server) updateOrder(c *gin.Context) {
	var req updateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	order, err := s.orders.Update(c.Request.Context(), c.Param("id"), req.toInput())
	if err != nil {
		s.renderError(c, err)
		return
	}

	c.JSON(http.StatusOK, order)
}

func (s *Server) deleteOrder(c *gin.Context) {
	if err := s.orders.Remove(c.Request.Context(), c.Param("id")); err != nil {
		s.renderError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
