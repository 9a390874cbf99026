package httpapi

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/rz2606/lab-website-sub002/internal/server/models"
)

type newsRequest struct {
	Title       string     `json:"title"`
	Summary     string     `json:"summary"`
	Content     string     `json:"content"`
	CoverURL    string     `json:"coverUrl"`
	PublishedAt *time.Time `json:"publishedAt"`
}

func (a *API) listNews(c *gin.Context) {
	db, ok := a.db(c)
	if !ok {
		return
	}
	p := listParams(c)
	items, total, err := a.repos.News(db).List(c.Request.Context(), p)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.Page[models.News]{Items: items, Total: total, Page: p.Page, PageSize: p.PageSize})
}

func (a *API) getNews(c *gin.Context) {
	db, ok := a.db(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}
	item, err := a.repos.News(db).GetByID(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

func (a *API) createNews(c *gin.Context) {
	db, ok := a.db(c)
	if !ok {
		return
	}
	var req newsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body")
		return
	}
	if req.Title == "" {
		badRequest(c, "title is required")
		return
	}

	claims := claimsFrom(c)
	item := &models.News{
		Title:       req.Title,
		Summary:     req.Summary,
		Content:     req.Content,
		CoverURL:    req.CoverURL,
		PublishedAt: req.PublishedAt,
		CreatedBy:   claims.UserID,
		UpdatedBy:   claims.UserID,
	}

	item, err := a.repos.News(db).Create(c.Request.Context(), item)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, item)
}

func (a *API) updateNews(c *gin.Context) {
	db, ok := a.db(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req newsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body")
		return
	}
	if req.Title == "" {
		badRequest(c, "title is required")
		return
	}

	repo := a.repos.News(db)
	item, err := repo.GetByID(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}

	item.Title = req.Title
	item.Summary = req.Summary
	item.Content = req.Content
	item.CoverURL = req.CoverURL
	item.PublishedAt = req.PublishedAt
	item.UpdatedBy = claimsFrom(c).UserID

	if err := repo.Update(c.Request.Context(), item); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

func (a *API) deleteNews(c *gin.Context) {
	db, ok := a.db(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := a.repos.News(db).Delete(c.Request.Context(), id); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
