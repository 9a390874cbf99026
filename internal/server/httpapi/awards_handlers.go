package httpapi

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/rz2606/lab-website-sub002/internal/server/models"
)

type awardRequest struct {
	Title     string     `json:"title"`
	Recipient string     `json:"recipient"`
	Level     string     `json:"level"`
	AwardedAt *time.Time `json:"awardedAt"`
}

func (a *API) listAwards(c *gin.Context) {
	db, ok := a.db(c)
	if !ok {
		return
	}
	p := listParams(c)
	items, total, err := a.repos.Awards(db).List(c.Request.Context(), p)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.Page[models.Award]{Items: items, Total: total, Page: p.Page, PageSize: p.PageSize})
}

func (a *API) getAward(c *gin.Context) {
	db, ok := a.db(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}
	item, err := a.repos.Awards(db).GetByID(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

func (a *API) createAward(c *gin.Context) {
	db, ok := a.db(c)
	if !ok {
		return
	}
	var req awardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body")
		return
	}
	if req.Title == "" {
		badRequest(c, "title is required")
		return
	}

	claims := claimsFrom(c)
	item := &models.Award{
		Title:     req.Title,
		Recipient: req.Recipient,
		Level:     req.Level,
		AwardedAt: req.AwardedAt,
		CreatedBy: claims.UserID,
		UpdatedBy: claims.UserID,
	}

	item, err := a.repos.Awards(db).Create(c.Request.Context(), item)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, item)
}

func (a *API) updateAward(c *gin.Context) {
	db, ok := a.db(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req awardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body")
		return
	}
	if req.Title == "" {
		badRequest(c, "title is required")
		return
	}

	repo := a.repos.Awards(db)
	item, err := repo.GetByID(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}

	item.Title = req.Title
	item.Recipient = req.Recipient
	item.Level = req.Level
	item.AwardedAt = req.AwardedAt
	item.UpdatedBy = claimsFrom(c).UserID

	if err := repo.Update(c.Request.Context(), item); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

func (a *API) deleteAward(c *gin.Context) {
	db, ok := a.db(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := a.repos.Awards(db).Delete(c.Request.Context(), id); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
