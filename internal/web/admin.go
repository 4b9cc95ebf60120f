package web

import (
	"net/http"
	"net/url"
	"strconv"

	"github.com/gin-gonic/gin"

	"adboard/internal/apperr"
	"adboard/internal/models"
)

func (s *Server) moderationList(c *gin.Context) {
	status := models.StatusPending
	if v := c.Query("status"); v != "" {
		st, err := models.ParseStatus(v)
		if err != nil {
			fail(c, apperr.New(err, http.StatusBadRequest, "Unknown status"))
			return
		}
		status = st
	}
	items, err := s.products.ListByStatus(c.Request.Context(), status)
	if err != nil {
		fail(c, err)
		return
	}
	s.render(c, http.StatusOK, "admin_products.tmpl", ViewData{
		"Products": items,
		"Status":   status,
		"Statuses": models.AllStatuses(),
	})
}

// changeStatus moves a listing to the submitted moderation status.
func (s *Server) changeStatus(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		fail(c, apperr.ErrNotFound)
		return
	}
	status, err := models.ParseStatus(c.PostForm("status"))
	if err != nil {
		fail(c, apperr.New(err, http.StatusBadRequest, "Unknown status"))
		return
	}
	p, err := s.products.Find(c.Request.Context(), uint(id))
	if err != nil {
		fail(c, err)
		return
	}
	if err := s.products.SetStatus(c.Request.Context(), p.ID, status); err != nil {
		fail(c, err)
		return
	}
	s.addFlash(c, p.Name+" marked as "+status.String())

	back := "/admin/products"
	if from := c.PostForm("from"); from != "" {
		back += "?" + url.Values{"status": {from}}.Encode()
	}
	c.Redirect(http.StatusSeeOther, back)
}
