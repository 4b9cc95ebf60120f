package web

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// home lists approved ads, optionally for one category.
func (s *Server) home(c *gin.Context) {
	ctx := c.Request.Context()

	var categoryID uint
	if v, err := strconv.ParseUint(c.Query("category"), 10, 64); err == nil {
		categoryID = uint(v)
	}
	items, err := s.products.ListApproved(ctx, categoryID)
	if err != nil {
		fail(c, err)
		return
	}
	cats, err := s.categories.List(ctx)
	if err != nil {
		fail(c, err)
		return
	}
	s.render(c, http.StatusOK, "home.tmpl", ViewData{
		"Products":   items,
		"Categories": cats,
		"CategoryID": categoryID,
	})
}
