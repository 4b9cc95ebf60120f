package web

import (
	"embed"
	"html/template"
	"slices"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"golang.org/x/text/currency"

	"adboard/internal/forms"
	"adboard/internal/models"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

//go:embed static
var assets embed.FS

// ViewData is the data passed to a template.
type ViewData map[string]any

// currencies offered by the product form.
var currencies = []string{"USD", "EUR", "GBP", "UAH", "PLN"}

// currencyOptions returns the offered currencies plus any valid codes
// missing from them, so a product keeps its currency when edited.
func currencyOptions(codes ...string) []string {
	opts := slices.Clone(currencies)
	for _, code := range codes {
		unit, err := currency.ParseISO(code)
		if err != nil || slices.Contains(opts, unit.String()) {
			continue
		}
		opts = append(opts, unit.String())
	}
	return opts
}

func (s *Server) templates() (*template.Template, error) {
	return template.New("").Funcs(template.FuncMap{
		"imageURL": func(name *string) string {
			if name == nil || *name == "" {
				return ""
			}
			return s.images.URL(*name)
		},
		"statusClass": func(st models.Status) string {
			switch st {
			case models.StatusApproved:
				return "success"
			case models.StatusCancelled:
				return "danger"
			default:
				return "warning"
			}
		},
	}).ParseFS(templateFS, "templates/*.tmpl")
}

// withUser adds the signed-in user and pending flash messages to data.
func (s *Server) withUser(c *gin.Context, data ViewData) ViewData {
	if data == nil {
		data = ViewData{}
	}
	if u := currentUser(c); u != nil {
		data["CurrentUser"] = u
	}
	if _, ok := data["Errors"]; !ok {
		data["Errors"] = forms.Errors{}
	}

	sess := sessions.Default(c)
	var flashes []string
	for _, f := range sess.Flashes(flashSuccess) {
		if msg, ok := f.(string); ok {
			flashes = append(flashes, msg)
		}
	}
	if len(flashes) > 0 {
		if err := sess.Save(); err != nil {
			s.log.WithError(err).Warn("Failed to consume flash messages")
		}
	}
	data["Flashes"] = flashes
	return data
}

func (s *Server) render(c *gin.Context, status int, name string, data ViewData) {
	c.HTML(status, name, s.withUser(c, data))
}
