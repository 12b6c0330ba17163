package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"catalog-admin/internal/models"
)

// submitError maps a failed submit onto the two alert kinds the form
// shows: a validation message keeps the editor open with 422, a
// rejected remote write surfaces the raw store error with 502. In
// both cases the editor session stays registered so the operator can
// fix the form or just retry.
func submitError(c *gin.Context, err error) {
	var ve *models.ValidationError
	if errors.As(err, &ve) {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": ve.Msg})
		return
	}
	c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
}

func notFound(c *gin.Context, what string) {
	c.JSON(http.StatusNotFound, gin.H{"error": what + " not found"})
}

func streamDown(c *gin.Context, err error) {
	c.JSON(http.StatusServiceUnavailable, gin.H{"error": "collection stream failed: " + err.Error()})
}
