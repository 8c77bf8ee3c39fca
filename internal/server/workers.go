package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (s *Server) createWorker(c *gin.Context) {
	var req createWorkerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	worker := req.toModel()
	if err := s.workers.Create(c.Request.Context(), worker); err != nil {
		s.renderError(c, err)
		return
	}

	c.JSON(http.StatusCreated, worker)
}

func (s *Server) listWorkers(c *gin.Context) {
	list, err := s.workers.FindAll(c.Request.Context())
	if err != nil {
		s.renderError(c, err)
		return
	}

	c.JSON(http.StatusOK, list)
}

func (s *Server) getWorker(c *gin.Context) {
	worker, err := s.workers.FindOne(c.Request.Context(), c.Param("id"))
	if err != nil {
		s.renderError(c, err)
		return
	}

	c.JSON(http.StatusOK, worker)
}

func (s *Server) updateWorker(c *gin.Context) {
	var req updateWorkerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	worker, err := s.workers.FindOne(c.Request.Context(), c.Param("id"))
	if err != nil {
		s.renderError(c, err)
		return
	}

	req.apply(worker)
	if err := s.workers.Update(c.Request.Context(), worker); err != nil {
		s.renderError(c, err)
		return
	}

	c.JSON(http.StatusOK, worker)
}

func (s *Server) deleteWorker(c *gin.Context) {
	if err := s.workers.Remove(c.Request.Context(), c.Param("id")); err != nil {
		s.renderError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
