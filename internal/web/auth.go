package web

import (
	"errors"
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"

	"adboard/internal/apperr"
	"adboard/internal/forms"
	"adboard/internal/models"
	"adboard/internal/repository"
)

const (
	afterLoginPath = "/user/products"
	emailTakenMsg  = "There is already an account with this email"
)

func (s *Server) showRegister(c *gin.Context) {
	s.render(c, http.StatusOK, "register.tmpl", ViewData{"Form": forms.Registration{}})
}

// register hashes the password, stores the user and signs them in.
func (s *Server) register(c *gin.Context) {
	ctx := c.Request.Context()

	var f forms.Registration
	errs := forms.Bind(c, &f)
	if !errs.Any() {
		taken, err := s.users.EmailTaken(ctx, f.Email)
		if err != nil {
			fail(c, err)
			return
		}
		if taken {
			errs.Add("email", emailTakenMsg)
		}
	}
	if errs.Any() {
		s.render(c, http.StatusUnprocessableEntity, "register.tmpl", ViewData{"Form": f, "Errors": errs})
		return
	}

	hash, err := models.HashPassword(f.PlainPassword)
	if err != nil {
		fail(c, err)
		return
	}
	u := &models.User{Email: f.Email, PasswordHash: hash, Role: models.RoleUser}
	if err := s.users.Add(ctx, u); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			errs.Add("email", emailTakenMsg)
			s.render(c, http.StatusUnprocessableEntity, "register.tmpl", ViewData{"Form": f, "Errors": errs})
			return
		}
		fail(c, err)
		return
	}
	if err := s.authenticate(c, u); err != nil {
		fail(c, err)
		return
	}
	c.Redirect(http.StatusSeeOther, afterLoginPath)
}

func (s *Server) showLogin(c *gin.Context) {
	if currentUser(c) != nil {
		c.Redirect(http.StatusSeeOther, afterLoginPath)
		return
	}
	s.render(c, http.StatusOK, "login.tmpl", ViewData{"Form": forms.Login{}})
}

func (s *Server) login(c *gin.Context) {
	var f forms.Login
	errs := forms.Bind(c, &f)
	if errs.Any() {
		s.render(c, http.StatusUnprocessableEntity, "login.tmpl", ViewData{"Form": f, "Errors": errs})
		return
	}

	u, err := s.users.FindByEmail(c.Request.Context(), f.Email)
	if err != nil && !errors.Is(err, apperr.ErrNotFound) {
		fail(c, err)
		return
	}
	if u == nil || !models.CheckPassword(u.PasswordHash, f.Password) {
		s.log.Warnf("Failed sign in for %s", f.Email)
		s.render(c, http.StatusUnauthorized, "login.tmpl", ViewData{"Form": f, "Error": "Invalid credentials."})
		return
	}
	if err := s.authenticate(c, u); err != nil {
		fail(c, err)
		return
	}
	c.Redirect(http.StatusSeeOther, afterLoginPath)
}

func (s *Server) logout(c *gin.Context) {
	sess := sessions.Default(c)
	sess.Clear()
	sess.Options(sessions.Options{Path: "/", MaxAge: -1})
	_ = sess.Save()
	c.Redirect(http.StatusSeeOther, "/")
}
