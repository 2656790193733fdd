package handlers

import (
	"net/http"

	"github.com/cleanit/cleanit_admin/internal/core/domain"
	portssvc "github.com/cleanit/cleanit_admin/internal/core/ports/services"
	"github.com/cleanit/cleanit_admin/internal/dto"
	"github.com/gin-gonic/gin"
)

type directoryHandler struct {
	directoryService portssvc.DirectorySvc
}

func registerDirectoryRoutes(rg *gin.RouterGroup, directoryService portssvc.DirectorySvc) {
	h := &directoryHandler{directoryService: directoryService}

	rg.GET("/buildings", h.listBuildings)
	rg.GET("/users", h.listUsers)
}

// listBuildings godoc
// @Summary List buildings
// @Tags directory
// @Produce json
// @Success 200 {array} dto.BuildingResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /buildings [get]
func (h *directoryHandler) listBuildings(c *gin.Context) {
	buildings, err := h.directoryService.ListBuildings(c.Request.Context())
	if err != nil {
		respondError(c, err, "Failed to list buildings")
		return
	}
	c.JSON(http.StatusOK, dto.ToBuildingResponses(buildings))
}

// listUsers godoc
// @Summary List users
// @Description Lists marketplace users, optionally of one role. Profiles follow the role.
// @Tags directory
// @Produce json
// @Param role query string false "client, worker or manager"
// @Success 200 {array} dto.UserResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /users [get]
func (h *directoryHandler) listUsers(c *gin.Context) {
	var params dto.ListUsersParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondBindError(c, err)
		return
	}

	users, err := h.directoryService.ListUsers(c.Request.Context(), domain.Role(params.Role))
	if err != nil {
		respondError(c, err, "Failed to list users")
		return
	}
	c.JSON(http.StatusOK, dto.ToUserResponses(users))
}
