package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// presignUpload hands out a fresh object key and a presigned PUT URL.
func (a *API) presignUpload(c *gin.Context) {
	key, url, err := a.uploads.PresignPut(c.Request.Context())
	if err != nil {
		a.logger.Error(c.Request.Context(), "presign put failed", "error", err)
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"key": key, "url": url})
}

// uploadURL resolves a stored object key to a presigned GET URL.
func (a *API) uploadURL(c *gin.Context) {
	url, err := a.uploads.PresignGet(c.Request.Context(), c.Query("key"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"url": url})
}
