package httpapi

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rz2606/lab-website-sub002/internal/common"
)

// writeInstallError treats connection failures as user-fixable input: the
// wizard shows the driver message so the operator can correct the DSN.
func writeInstallError(c *gin.Context, err error) {
	if errors.Is(err, common.ErrAlreadyInstalled) || errors.Is(err, common.ErrValidation) {
		writeError(c, err)
		return
	}
	badRequest(c, err.Error())
}

// installStatus lets the wizard frontend decide which step to show.
func (a *API) installStatus(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"installed": a.state.Installed(),
		"version":   a.version,
	})
}

type installDatabaseRequest struct {
	DSN string `json:"dsn"`
}

func (a *API) installTestDatabase(c *gin.Context) {
	var req installDatabaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body")
		return
	}

	if err := a.installer.TestDatabase(c.Request.Context(), req.DSN); err != nil {
		writeInstallError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func (a *API) installSaveDatabase(c *gin.Context) {
	var req installDatabaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body")
		return
	}

	if err := a.installer.SaveDatabase(c.Request.Context(), req.DSN); err != nil {
		writeInstallError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func (a *API) installMigrate(c *gin.Context) {
	if err := a.installer.ApplySchema(c.Request.Context()); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

type installAdminRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (a *API) installCreateAdmin(c *gin.Context) {
	var req installAdminRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body")
		return
	}

	user, err := a.installer.CreateAdmin(c.Request.Context(), req.Username, req.Email, req.Password)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, user)
}

func (a *API) installComplete(c *gin.Context) {
	if err := a.installer.Complete(c.Request.Context()); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"installed": true})
}
