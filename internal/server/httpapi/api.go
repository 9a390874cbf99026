// Package httpapi exposes the REST surface of the lab website: public
// content reads, authenticated admin CRUD, the login endpoint, upload
// presigning, and the first-run install wizard.
package httpapi

import (
	"database/sql"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rz2606/lab-website-sub002/internal/common"
	"github.com/rz2606/lab-website-sub002/internal/dbx"
	"github.com/rz2606/lab-website-sub002/internal/logging"
	"github.com/rz2606/lab-website-sub002/internal/server/config"
	"github.com/rz2606/lab-website-sub002/internal/server/install"
	"github.com/rz2606/lab-website-sub002/internal/server/models"
	"github.com/rz2606/lab-website-sub002/internal/server/repositories/repomanager"
	"github.com/rz2606/lab-website-sub002/internal/server/services"
)

// API bundles everything the handlers need. Content handlers talk to
// repositories directly; users, uploads, and install go through their
// services.
type API struct {
	cfg       *config.Config
	logger    logging.Logger
	holder    *dbx.Holder
	repos     repomanager.RepositoryManager
	users     *services.UserService
	uploads   *services.UploadService
	installer *install.Installer
	state     *install.State
	version   string
}

func New(
	cfg *config.Config,
	logger logging.Logger,
	holder *dbx.Holder,
	repos repomanager.RepositoryManager,
	users *services.UserService,
	uploads *services.UploadService,
	installer *install.Installer,
	state *install.State,
	version string,
) *API {
	return &API{
		cfg:       cfg,
		logger:    logger.With("component", "httpapi"),
		holder:    holder,
		repos:     repos,
		users:     users,
		uploads:   uploads,
		installer: installer,
		state:     state,
		version:   version,
	}
}

// db returns the attached database handle or answers 503 and reports false.
func (a *API) db(c *gin.Context) (*sql.DB, bool) {
	db := a.holder.Get()
	if db == nil {
		writeError(c, common.ErrNotInstalled)
		return nil, false
	}
	return db, true
}

// Router builds the gin engine with the full middleware chain and route
// table.
func (a *API) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(RequestLogger(a.logger))
	r.Use(CORS(a.cfg.CORSOrigins))
	r.Use(InstallGate(a.state))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Page rendering lives in the frontend; these placeholders exist so the
	// install gate has concrete targets to redirect to.
	r.GET("/", func(c *gin.Context) {
		c.Data(http.StatusOK, "text/html; charset=utf-8", []byte("<!DOCTYPE html><title>Lab</title>"))
	})
	r.GET("/install", func(c *gin.Context) {
		c.Data(http.StatusOK, "text/html; charset=utf-8", []byte("<!DOCTYPE html><title>Install</title>"))
	})

	authed := RequireAuth(a.cfg)
	adminOnly := RequireRole(models.RoleAdmin)

	api := r.Group("/api")

	api.POST("/users/login", a.login)
	api.GET("/users/me", authed, a.me)

	users := api.Group("/users", authed, adminOnly)
	users.GET("", a.listUsers)
	users.GET("/:id", a.getUser)
	users.POST("", a.createUser)
	users.PUT("/:id", a.updateUser)
	users.DELETE("/:id", a.deleteUser)

	a.contentRoutes(api, authed, adminOnly)

	api.POST("/uploads/presign", authed, a.presignUpload)
	api.GET("/uploads/url", a.uploadURL)

	inst := api.Group("/install")
	inst.GET("/status", a.installStatus)
	inst.POST("/database/test", a.installTestDatabase)
	inst.POST("/database", a.installSaveDatabase)
	inst.POST("/migrate", a.installMigrate)
	inst.POST("/admin", a.installCreateAdmin)
	inst.POST("/complete", a.installComplete)

	return r
}

// contentRoutes wires the public-read, admin-write pattern shared by every
// content entity.
func (a *API) contentRoutes(api *gin.RouterGroup, authed, adminOnly gin.HandlerFunc) {
	type entity struct {
		path   string
		list   gin.HandlerFunc
		get    gin.HandlerFunc
		create gin.HandlerFunc
		update gin.HandlerFunc
		del    gin.HandlerFunc
	}

	entities := []entity{
		{"/news", a.listNews, a.getNews, a.createNews, a.updateNews, a.deleteNews},
		{"/publications", a.listPublications, a.getPublication, a.createPublication, a.updatePublication, a.deletePublication},
		{"/tools", a.listTools, a.getTool, a.createTool, a.updateTool, a.deleteTool},
		{"/members", a.listMembers, a.getMember, a.createMember, a.updateMember, a.deleteMember},
		{"/awards", a.listAwards, a.getAward, a.createAward, a.updateAward, a.deleteAward},
	}

	for _, e := range entities {
		g := api.Group(e.path)
		g.GET("", e.list)
		g.GET("/:id", e.get)

		mut := g.Group("", authed, adminOnly)
		mut.POST("", e.create)
		mut.PUT("/:id", e.update)
		mut.DELETE("/:id", e.del)
	}
}
