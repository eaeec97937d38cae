package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/unlockhq/unlock-backend/internal/core/domain"
	portsrepo "github.com/unlockhq/unlock-backend/internal/core/ports/repositories"
	portssvc "github.com/unlockhq/unlock-backend/internal/core/ports/services"
	"github.com/unlockhq/unlock-backend/internal/dto"
	"github.com/unlockhq/unlock-backend/internal/middleware"
)

// taxonomyHandler serves the admin registry CRUD and the public dropdown
// option endpoints. All routes carry the registry kind as a path parameter;
// an unknown kind is a 404.
type taxonomyHandler struct {
	taxonomyService portssvc.TaxonomySvcFacade
}

func newTaxonomyHandler(ts portssvc.TaxonomySvcFacade) *taxonomyHandler {
	return &taxonomyHandler{taxonomyService: ts}
}

// registerMetaRoutes registers the public option and field-descriptor routes.
func registerMetaRoutes(r *gin.Engine, ts portssvc.TaxonomySvcFacade) {
	h := newTaxonomyHandler(ts)

	meta := r.Group("/api/v1/meta")
	{
		meta.GET("/registries/:registry", h.listOptions)
		meta.GET("/listing-fields/:typeTag", h.listFieldDescriptors)
	}
}

// registerAdminTaxonomyRoutes registers the registry management routes.
func registerAdminTaxonomyRoutes(rg *gin.RouterGroup, ts portssvc.TaxonomySvcFacade) {
	h := newTaxonomyHandler(ts)

	taxonomy := rg.Group("/taxonomy/:registry")
	{
		taxonomy.GET("", h.listEntries)
		taxonomy.POST("", h.createEntry)
		taxonomy.PUT("/:id", h.updateEntry)
		taxonomy.POST("/:id/activate", h.activateEntry)
		taxonomy.POST("/:id/deactivate", h.deactivateEntry)
		taxonomy.DELETE("/:id", h.deleteEntry)
	}
}

func registryKind(c *gin.Context) domain.RegistryKind {
	return domain.RegistryKind(c.Param("registry"))
}

// listOptions godoc
// @Summary List active registry options
// @Description The option source for dropdowns; inactive entries are hidden.
// @Tags meta
// @Produce json
// @Param registry path string true "Registry kind"
// @Success 200 {array} domain.TaxonomyEntry
// @Failure 404 {object} ErrorResponse "Unknown registry"
// @Router /meta/registries/{registry} [get]
func (h *taxonomyHandler) listOptions(c *gin.Context) {
	entries, err := h.taxonomyService.ListActiveEntries(c.Request.Context(), registryKind(c))
	if err != nil {
		respondError(c, err, "Failed to list options")
		return
	}
	c.JSON(http.StatusOK, entries)
}

// listFieldDescriptors godoc
// @Summary List the field descriptors of a listing type
// @Description Forms render from these; the same descriptors drive payload validation.
// @Tags meta
// @Produce json
// @Param typeTag path string true "Listing type"
// @Success 200 {array} domain.FieldDescriptor
// @Failure 404 {object} ErrorResponse "Unknown listing type"
// @Router /meta/listing-fields/{typeTag} [get]
func (h *taxonomyHandler) listFieldDescriptors(c *gin.Context) {
	typeTag := domain.ListingType(c.Param("typeTag"))
	if !typeTag.IsValid() {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "Not found"})
		return
	}
	c.JSON(http.StatusOK, domain.FieldsFor(typeTag))
}

// listEntries godoc
// @Summary List registry entries
// @Tags admin-taxonomy
// @Produce json
// @Param registry path string true "Registry kind"
// @Param status query string false "active or inactive; empty for all"
// @Param q query string false "Substring over name"
// @Success 200 {array} domain.TaxonomyEntry
// @Failure 404 {object} ErrorResponse "Unknown registry"
// @Security BearerAuth
// @Router /admin/taxonomy/{registry} [get]
func (h *taxonomyHandler) listEntries(c *gin.Context) {
	var params dto.ListTaxonomyParams
	if err := c.ShouldBindQuery(&params); err != nil {
		bindError(c, err)
		return
	}

	filter := portsrepo.TaxonomyFilter{Query: params.Query}
	switch params.Status {
	case "active":
		active := true
		filter.ActiveOnly = &active
	case "inactive":
		active := false
		filter.ActiveOnly = &active
	}

	entries, err := h.taxonomyService.ListEntries(c.Request.Context(), registryKind(c), filter)
	if err != nil {
		respondError(c, err, "Failed to list entries")
		return
	}
	c.JSON(http.StatusOK, entries)
}

// createEntry godoc
// @Summary Create a registry entry
// @Tags admin-taxonomy
// @Accept json
// @Produce json
// @Param registry path string true "Registry kind"
// @Param entry body dto.TaxonomyEntryRequest true "Entry"
// @Success 201 {object} domain.TaxonomyEntry
// @Failure 400 {object} ErrorResponse "Blank name"
// @Failure 404 {object} ErrorResponse "Unknown registry"
// @Failure 409 {object} ErrorResponse "Name already used in this registry"
// @Security BearerAuth
// @Router /admin/taxonomy/{registry} [post]
func (h *taxonomyHandler) createEntry(c *gin.Context) {
	actorID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	var req dto.TaxonomyEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	entry, err := h.taxonomyService.CreateEntry(c.Request.Context(), registryKind(c), req, actorID)
	if err != nil {
		respondError(c, err, "Failed to create entry")
		return
	}
	c.JSON(http.StatusCreated, entry)
}

// updateEntry godoc
// @Summary Rename or re-describe a registry entry
// @Tags admin-taxonomy
// @Accept json
// @Produce json
// @Param registry path string true "Registry kind"
// @Param id path string true "Entry ID"
// @Param entry body dto.TaxonomyEntryRequest true "Entry"
// @Success 200 {object} domain.TaxonomyEntry
// @Failure 400 {object} ErrorResponse "Blank name"
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Name already used in this registry"
// @Security BearerAuth
// @Router /admin/taxonomy/{registry}/{id} [put]
func (h *taxonomyHandler) updateEntry(c *gin.Context) {
	actorID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	var req dto.TaxonomyEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	entry, err := h.taxonomyService.UpdateEntry(c.Request.Context(), registryKind(c), c.Param("id"), req, actorID)
	if err != nil {
		respondError(c, err, "Failed to update entry")
		return
	}
	c.JSON(http.StatusOK, entry)
}

func (h *taxonomyHandler) setEntryActive(c *gin.Context, active bool) {
	actorID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	entry, err := h.taxonomyService.SetEntryActive(c.Request.Context(), registryKind(c), c.Param("id"), active, actorID)
	if err != nil {
		respondError(c, err, "Failed to update entry")
		return
	}
	c.JSON(http.StatusOK, entry)
}

// activateEntry godoc
// @Summary Restore a retired registry entry
// @Tags admin-taxonomy
// @Produce json
// @Param registry path string true "Registry kind"
// @Param id path string true "Entry ID"
// @Success 200 {object} domain.TaxonomyEntry
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /admin/taxonomy/{registry}/{id}/activate [post]
func (h *taxonomyHandler) activateEntry(c *gin.Context) {
	h.setEntryActive(c, true)
}

// deactivateEntry godoc
// @Summary Retire a registry entry
// @Description Retired entries disappear from dropdown options; existing references keep working.
// @Tags admin-taxonomy
// @Produce json
// @Param registry path string true "Registry kind"
// @Param id path string true "Entry ID"
// @Success 200 {object} domain.TaxonomyEntry
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /admin/taxonomy/{registry}/{id}/deactivate [post]
func (h *taxonomyHandler) deactivateEntry(c *gin.Context) {
	h.setEntryActive(c, false)
}

// deleteEntry godoc
// @Summary Delete a registry entry outright
// @Tags admin-taxonomy
// @Param registry path string true "Registry kind"
// @Param id path string true "Entry ID"
// @Success 204 "Deleted"
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /admin/taxonomy/{registry}/{id} [delete]
func (h *taxonomyHandler) deleteEntry(c *gin.Context) {
	if err := h.taxonomyService.DeleteEntry(c.Request.Context(), registryKind(c), c.Param("id")); err != nil {
		respondError(c, err, "Failed to delete entry")
		return
	}
	c.Status(http.StatusNoContent)
}
