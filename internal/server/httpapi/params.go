package httpapi

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/rz2606/lab-website-sub002/internal/server/models"
)

// listParams reads the shared pagination, search, and sort query parameters.
// Unparseable numbers fall back to the defaults via Normalize.
func listParams(c *gin.Context) models.ListParams {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("pageSize", strconv.Itoa(models.DefaultPageSize)))

	p := models.ListParams{
		Page:     page,
		PageSize: pageSize,
		Search:   strings.TrimSpace(c.Query("search")),
		SortBy:   c.Query("sortBy"),
		Desc:     strings.EqualFold(c.Query("order"), "desc"),
	}
	return p.Normalize()
}

func pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id < 1 {
		badRequest(c, "invalid id")
		return 0, false
	}
	return id, true
}
