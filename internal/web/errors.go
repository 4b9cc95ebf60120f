package web

import (
	"github.com/gin-gonic/gin"

	"adboard/internal/apperr"
)

// fail records err for handleErrors and stops the chain.
func fail(c *gin.Context, err error) {
	_ = c.Error(err)
	c.Abort()
}

// handleErrors renders the last recorded error when nothing was written yet.
func (s *Server) handleErrors() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()
		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}
		appErr := apperr.From(c.Errors.Last().Err)
		if appErr.Status >= 500 {
			s.log.WithError(appErr.Err).WithField("path", c.Request.URL.Path).Error("Request failed")
		}
		s.render(c, appErr.Status, "error.tmpl", ViewData{
			"Status":  appErr.Status,
			"Message": appErr.Message,
		})
	}
}
