package web

import (
	"errors"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"

	"adboard/internal/apperr"
	"adboard/internal/models"
)

const (
	sessionUserKey = "user_id"
	flashSuccess   = "success"
	currentUserKey = "currentUser"
)

// loadUser resolves the session user once per request. A session pointing
// at a removed user is cleared.
func (s *Server) loadUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := sessions.Default(c)
		id, ok := sess.Get(sessionUserKey).(uint)
		if !ok {
			c.Next()
			return
		}
		u, err := s.users.FindByID(c.Request.Context(), id)
		switch {
		case errors.Is(err, apperr.ErrNotFound):
			sess.Delete(sessionUserKey)
			_ = sess.Save()
		case err != nil:
			s.log.WithError(err).Error("Failed to load session user")
		default:
			c.Set(currentUserKey, u)
			c.Set("userID", u.ID)
		}
		c.Next()
	}
}

// currentUser returns the authenticated user or nil.
func currentUser(c *gin.Context) *models.User {
	if v, ok := c.Get(currentUserKey); ok {
		if u, ok := v.(*models.User); ok {
			return u
		}
	}
	return nil
}

func mustLogin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if currentUser(c) == nil {
			_ = c.Error(apperr.AccessDenied())
			c.Abort()
			return
		}
		c.Next()
	}
}

func mustAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !currentUser(c).IsAdmin() {
			_ = c.Error(apperr.AccessDenied())
			c.Abort()
			return
		}
		c.Next()
	}
}

// authenticate starts a session for u.
func (s *Server) authenticate(c *gin.Context, u *models.User) error {
	sess := sessions.Default(c)
	sess.Clear()
	sess.Set(sessionUserKey, u.ID)
	if err := sess.Save(); err != nil {
		return err
	}
	c.Set(currentUserKey, u)
	c.Set("userID", u.ID)
	s.log.Infof("User %d signed in", u.ID)
	return nil
}

func (s *Server) addFlash(c *gin.Context, msg string) {
	sess := sessions.Default(c)
	sess.AddFlash(msg, flashSuccess)
	if err := sess.Save(); err != nil {
		s.log.WithError(err).Warn("Failed to save flash message")
	}
}
