// Package web is the HTTP side of the marketplace: routes, sessions,
// handlers and the embedded templates and assets.
package web

import (
	"io/fs"
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"adboard/internal/config"
	"adboard/internal/forms"
	"adboard/internal/images"
	"adboard/internal/logging"
	"adboard/internal/repository"
)

const sessionName = "mp_session"

type Server struct {
	cfg        *config.Config
	db         *gorm.DB
	users      *repository.Users
	products   *repository.Products
	categories *repository.Categories
	images     *images.Store
	log        *logrus.Logger
}

func New(cfg *config.Config, db *gorm.DB, store *images.Store, log *logrus.Logger) *Server {
	return &Server{
		cfg:        cfg,
		db:         db,
		users:      repository.NewUsers(db, log),
		products:   repository.NewProducts(db, log),
		categories: repository.NewCategories(db, log),
		images:     store,
		log:        log,
	}
}

// Router builds the gin engine with every route registered.
func (s *Server) Router() (*gin.Engine, error) {
	forms.Register()

	r := gin.New()
	r.Use(gin.Recovery(), logging.RequestLogger(s.log))
	r.MaxMultipartMemory = images.MaxSize + 1<<20

	tmpl, err := s.templates()
	if err != nil {
		return nil, err
	}
	r.SetHTMLTemplate(tmpl)

	static, err := fs.Sub(assets, "static")
	if err != nil {
		return nil, err
	}
	r.StaticFS("/static", http.FS(static))
	r.Static("/uploads", s.images.Dir())

	store := cookie.NewStore([]byte(s.cfg.SessionSecret))
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   30 * 24 * 3600,
		HttpOnly: true,
		Secure:   s.cfg.Environment().IsProduction(),
		SameSite: http.SameSiteLaxMode,
	})
	r.Use(sessions.Sessions(sessionName, store))
	r.Use(s.loadUser(), s.handleErrors())

	r.GET("/health", s.health)
	r.GET("/", s.home)

	r.GET("/register", s.showRegister)
	r.POST("/register", s.register)
	r.GET("/login", s.showLogin)
	r.POST("/login", s.login)
	r.GET("/logout", s.logout)

	r.GET("/user/products", mustLogin(), s.userProducts)
	r.GET("/user/product/add", mustLogin(), s.showAddProduct)
	r.POST("/user/product/add", mustLogin(), s.addProduct)
	r.GET("/user/product/edit/:id", s.editProduct)
	r.POST("/user/product/edit/:id", s.editProduct)
	r.GET("/user/product/delete", s.deleteProduct)

	admin := r.Group("/admin", mustLogin(), mustAdmin())
	admin.GET("/products", s.moderationList)
	admin.POST("/product/:id/status", s.changeStatus)

	return r, nil
}

func (s *Server) health(c *gin.Context) {
	sqlDB, err := s.db.DB()
	if err == nil {
		err = sqlDB.PingContext(c.Request.Context())
	}
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"ok": false, "db": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}
