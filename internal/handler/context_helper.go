package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/noah-isme/itinerary-planner-api/internal/middleware"
	"github.com/noah-isme/itinerary-planner-api/internal/models"
	"github.com/noah-isme/itinerary-planner-api/internal/service"
	appErrors "github.com/noah-isme/itinerary-planner-api/pkg/errors"
	"github.com/noah-isme/itinerary-planner-api/pkg/response"
)

func claimsFromContext(c *gin.Context) *models.JWTClaims {
	value, exists := c.Get(middleware.ContextUserKey)
	if !exists {
		return nil
	}
	claims, ok := value.(*models.JWTClaims)
	if !ok {
		return nil
	}
	return claims
}

// requireActor resolves the caller or writes a 401 and returns false.
func requireActor(c *gin.Context) (service.Actor, bool) {
	claims := claimsFromContext(c)
	if claims == nil || claims.UserID == "" {
		response.Error(c, appErrors.ErrUnauthorized)
		return service.Actor{}, false
	}
	return service.Actor{UserID: claims.UserID, Role: claims.Role}, true
}
