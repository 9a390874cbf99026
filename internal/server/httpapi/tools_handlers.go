package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rz2606/lab-website-sub002/internal/server/models"
)

type toolRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	RepoURL     string `json:"repoUrl"`
	HomepageURL string `json:"homepageUrl"`
	IconKey     string `json:"iconKey"`
}

func (a *API) listTools(c *gin.Context) {
	db, ok := a.db(c)
	if !ok {
		return
	}
	p := listParams(c)
	items, total, err := a.repos.Tools(db).List(c.Request.Context(), p)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.Page[models.Tool]{Items: items, Total: total, Page: p.Page, PageSize: p.PageSize})
}

func (a *API) getTool(c *gin.Context) {
	db, ok := a.db(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}
	item, err := a.repos.Tools(db).GetByID(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

func (a *API) createTool(c *gin.Context) {
	db, ok := a.db(c)
	if !ok {
		return
	}
	var req toolRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body")
		return
	}
	if req.Name == "" {
		badRequest(c, "name is required")
		return
	}

	claims := claimsFrom(c)
	item := &models.Tool{
		Name:        req.Name,
		Description: req.Description,
		RepoURL:     req.RepoURL,
		HomepageURL: req.HomepageURL,
		IconKey:     req.IconKey,
		CreatedBy:   claims.UserID,
		UpdatedBy:   claims.UserID,
	}

	item, err := a.repos.Tools(db).Create(c.Request.Context(), item)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, item)
}

func (a *API) updateTool(c *gin.Context) {
	db, ok := a.db(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req toolRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body")
		return
	}
	if req.Name == "" {
		badRequest(c, "name is required")
		return
	}

	repo := a.repos.Tools(db)
	item, err := repo.GetByID(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}

	item.Name = req.Name
	item.Description = req.Description
	item.RepoURL = req.RepoURL
	item.HomepageURL = req.HomepageURL
	item.IconKey = req.IconKey
	item.UpdatedBy = claimsFrom(c).UserID

	if err := repo.Update(c.Request.Context(), item); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

func (a *API) deleteTool(c *gin.Context) {
	db, ok := a.db(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := a.repos.Tools(db).Delete(c.Request.Context(), id); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
