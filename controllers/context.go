package controllers

import (
	"net/http"

	"repairhub-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// actorID pulls the authenticated actor out of the gin context. It writes the
// error response itself so handlers can bail with a bare return.
func actorID(c *gin.Context) (uuid.UUID, bool) {
	v, exists := c.Get("userId")
	if !exists {
		utils.RespondWithError(c, http.StatusUnauthorized, "User ID not found in context")
		return uuid.Nil, false
	}

	s, ok := v.(string)
	if !ok {
		utils.RespondWithError(c, http.StatusUnauthorized, "Invalid user ID in context")
		return uuid.Nil, false
	}

	id, err := uuid.Parse(s)
	if err != nil {
		utils.RespondWithError(c, http.StatusUnauthorized, "Invalid user ID format")
		return uuid.Nil, false
	}

	return id, true
}

// pathUUID parses the :id route parameter.
func pathUUID(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid "+name+" format")
		return uuid.Nil, false
	}
	return id, true
}
