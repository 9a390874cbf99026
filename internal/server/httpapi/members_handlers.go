package httpapi

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/rz2606/lab-website-sub002/internal/server/models"
)

type memberRequest struct {
	Name        string     `json:"name"`
	MemberType  string     `json:"memberType"`
	Title       string     `json:"title"`
	Email       string     `json:"email"`
	AvatarKey   string     `json:"avatarKey"`
	Bio         string     `json:"bio"`
	JoinedAt    *time.Time `json:"joinedAt"`
	GraduatedAt *time.Time `json:"graduatedAt"`
}

func (r memberRequest) validate() string {
	if r.Name == "" {
		return "name is required"
	}
	if !models.ValidMemberType(r.MemberType) {
		return "invalid memberType"
	}
	return ""
}

// listMembers additionally accepts a memberType filter so the team page can
// render PI, researcher, and graduate sections separately.
func (a *API) listMembers(c *gin.Context) {
	db, ok := a.db(c)
	if !ok {
		return
	}

	memberType := c.Query("memberType")
	if memberType != "" && !models.ValidMemberType(memberType) {
		badRequest(c, "invalid memberType")
		return
	}

	p := listParams(c)
	items, total, err := a.repos.Members(db).List(c.Request.Context(), p, memberType)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.Page[models.Member]{Items: items, Total: total, Page: p.Page, PageSize: p.PageSize})
}

func (a *API) getMember(c *gin.Context) {
	db, ok := a.db(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}
	item, err := a.repos.Members(db).GetByID(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

func (a *API) createMember(c *gin.Context) {
	db, ok := a.db(c)
	if !ok {
		return
	}
	var req memberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body")
		return
	}
	if msg := req.validate(); msg != "" {
		badRequest(c, msg)
		return
	}

	claims := claimsFrom(c)
	item := &models.Member{
		Name:        req.Name,
		MemberType:  req.MemberType,
		Title:       req.Title,
		Email:       req.Email,
		AvatarKey:   req.AvatarKey,
		Bio:         req.Bio,
		JoinedAt:    req.JoinedAt,
		GraduatedAt: req.GraduatedAt,
		CreatedBy:   claims.UserID,
		UpdatedBy:   claims.UserID,
	}

	item, err := a.repos.Members(db).Create(c.Request.Context(), item)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, item)
}

func (a *API) updateMember(c *gin.Context) {
	db, ok := a.db(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req memberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body")
		return
	}
	if msg := req.validate(); msg != "" {
		badRequest(c, msg)
		return
	}

	repo := a.repos.Members(db)
	item, err := repo.GetByID(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}

	item.Name = req.Name
	item.MemberType = req.MemberType
	item.Title = req.Title
	item.Email = req.Email
	item.AvatarKey = req.AvatarKey
	item.Bio = req.Bio
	item.JoinedAt = req.JoinedAt
	item.GraduatedAt = req.GraduatedAt
	item.UpdatedBy = claimsFrom(c).UserID

	if err := repo.Update(c.Request.Context(), item); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

func (a *API) deleteMember(c *gin.Context) {
	db, ok := a.db(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := a.repos.Members(db).Delete(c.Request.Context(), id); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
