package httpapi

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/rz2606/lab-website-sub002/internal/server/models"
)

type publicationRequest struct {
	Title   string `json:"title"`
	Authors string `json:"authors"`
	Venue   string `json:"venue"`
	Year    int    `json:"year"`
	DOI     string `json:"doi"`
	PDFKey  string `json:"pdfKey"`
}

func (r publicationRequest) validate() string {
	if r.Title == "" {
		return "title is required"
	}
	if r.Authors == "" {
		return "authors is required"
	}
	if r.Year != 0 && (r.Year < 1900 || r.Year > time.Now().Year()+1) {
		return "year out of range"
	}
	return ""
}

func (a *API) listPublications(c *gin.Context) {
	db, ok := a.db(c)
	if !ok {
		return
	}
	p := listParams(c)
	items, total, err := a.repos.Publications(db).List(c.Request.Context(), p)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.Page[models.Publication]{Items: items, Total: total, Page: p.Page, PageSize: p.PageSize})
}

func (a *API) getPublication(c *gin.Context) {
	db, ok := a.db(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}
	item, err := a.repos.Publications(db).GetByID(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

func (a *API) createPublication(c *gin.Context) {
	db, ok := a.db(c)
	if !ok {
		return
	}
	var req publicationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body")
		return
	}
	if msg := req.validate(); msg != "" {
		badRequest(c, msg)
		return
	}

	claims := claimsFrom(c)
	item := &models.Publication{
		Title:     req.Title,
		Authors:   req.Authors,
		Venue:     req.Venue,
		Year:      req.Year,
		DOI:       req.DOI,
		PDFKey:    req.PDFKey,
		CreatedBy: claims.UserID,
		UpdatedBy: claims.UserID,
	}

	item, err := a.repos.Publications(db).Create(c.Request.Context(), item)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, item)
}

func (a *API) updatePublication(c *gin.Context) {
	db, ok := a.db(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req publicationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body")
		return
	}
	if msg := req.validate(); msg != "" {
		badRequest(c, msg)
		return
	}

	repo := a.repos.Publications(db)
	item, err := repo.GetByID(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}

	item.Title = req.Title
	item.Authors = req.Authors
	item.Venue = req.Venue
	item.Year = req.Year
	item.DOI = req.DOI
	item.PDFKey = req.PDFKey
	item.UpdatedBy = claimsFrom(c).UserID

	if err := repo.Update(c.Request.Context(), item); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

func (a *API) deletePublication(c *gin.Context) {
	db, ok := a.db(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := a.repos.Publications(db).Delete(c.Request.Context(), id); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
