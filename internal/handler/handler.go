package handler

import (
	"net/http"

	"backend/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// parseUUID reads a path parameter as a UUID, writing the error response
// itself so callers just return on false.
func parseUUID(c *gin.Context, param string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(param))
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid "+param+": "+err.Error()))
		return uuid.Nil, false
	}
	return id, true
}
