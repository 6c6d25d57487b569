package utils

import (
	"net/http"

	"github.com/adelinv/replyscore/internal/models"
	"github.com/gin-gonic/gin"
)

// HTMLResponse sends a sidebar fragment back to Help Scout. Always
// HTTP 200: the embedding iframe has no way to handle other codes, so
// every failure path still goes through here with a degraded fragment.
func HTMLResponse(c *gin.Context, html string) {
	c.JSON(http.StatusOK, models.WebhookResponse{HTML: html})
}
