package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/SscSPs/referral_pipeline/internal/core/ports/services"
	"github.com/SscSPs/referral_pipeline/internal/dto"
	"github.com/SscSPs/referral_pipeline/internal/middleware"
)

// opportunityHandler handles HTTP requests related to opportunities.
type opportunityHandler struct {
	opportunityService portssvc.OpportunitySvcFacade
}

func newOpportunityHandler(os portssvc.OpportunitySvcFacade) *opportunityHandler {
	return &opportunityHandler{opportunityService: os}
}

// registerOpportunityRoutes registers opportunity routes under an organization.
func registerOpportunityRoutes(orgRoutes *gin.RouterGroup, opportunityService portssvc.OpportunitySvcFacade) {
	h := newOpportunityHandler(opportunityService)

	opportunities := orgRoutes.Group("/opportunities")
	{
		opportunities.POST("", h.createOpportunity)
		opportunities.GET("", h.listOpportunities)
		opportunities.GET("/:opportunityID", h.getOpportunity)
		opportunities.PATCH("/:opportunityID", h.updateOpportunity)
		opportunities.DELETE("/:opportunityID", h.deleteOpportunity)
		opportunities.GET("/:opportunityID/history", h.listHistory)
	}
}

// createOpportunity godoc
// @Summary Create an opportunity
// @Description Opens a new opportunity in draft or opportunity status. Financial inputs are scored immediately.
// @Tags opportunities
// @Accept  json
// @Produce  json
// @Param   organizationID path string true "Organization ID"
// @Param   opportunity body dto.CreateOpportunityRequest true "Opportunity details"
// @Success 201 {object} dto.OpportunityResponse
// @Failure 400 {object} map[string]string "Invalid input or initial status"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to create opportunity"
// @Security BearerAuth
// @Router /organizations/{organizationID}/opportunities [post]
func (h *opportunityHandler) createOpportunity(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	mctx, ok := middleware.MutationContextFromGin(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req dto.CreateOpportunityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateOpportunity", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	opp, err := h.opportunityService.CreateOpportunity(c.Request.Context(), c.Param("organizationID"), req, mctx)
	if err != nil && !auditOnly(err) {
		respondWithError(c, logger, err, "Failed to create opportunity")
		return
	}

	logger.Info("Opportunity created", slog.String("opportunity_id", opp.ID), slog.String("opportunity_number", opp.OpportunityNumber))
	c.JSON(http.StatusCreated, dto.ToOpportunityResponse(opp))
}

// getOpportunity godoc
// @Summary Get an opportunity
// @Tags opportunities
// @Produce  json
// @Param   organizationID path string true "Organization ID"
// @Param   opportunityID path string true "Opportunity ID"
// @Success 200 {object} dto.OpportunityResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Opportunity not found"
// @Failure 500 {object} map[string]string "Failed to retrieve opportunity"
// @Security BearerAuth
// @Router /organizations/{organizationID}/opportunities/{opportunityID} [get]
func (h *opportunityHandler) getOpportunity(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	orgID := c.Param("organizationID")
	oppID := c.Param("opportunityID")

	opp, err := h.opportunityService.GetOpportunityByID(c.Request.Context(), orgID, oppID)
	if err != nil {
		respondWithError(c, logger.With(slog.String("opportunity_id", oppID)), err, "Failed to retrieve opportunity")
		return
	}
	c.JSON(http.StatusOK, dto.ToOpportunityResponse(opp))
}

// listOpportunities godoc
// @Summary List opportunities
// @Description Lists the organization's opportunities, newest first, optionally filtered by status.
// @Tags opportunities
// @Produce  json
// @Param   organizationID path string true "Organization ID"
// @Param   status query string false "Status filter"
// @Param   limit query int false "Page size" default(20)
// @Param   nextToken query string false "Token from the previous page"
// @Success 200 {object} dto.ListOpportunitiesResponse
// @Failure 400 {object} map[string]string "Invalid query parameters"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to list opportunities"
// @Security BearerAuth
// @Router /organizations/{organizationID}/opportunities [get]
func (h *opportunityHandler) listOpportunities(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	orgID := c.Param("organizationID")

	var params dto.ListOpportunitiesParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query params for ListOpportunities", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	opps, next, err := h.opportunityService.ListOpportunities(c.Request.Context(), orgID, params)
	if err != nil {
		respondWithError(c, logger, err, "Failed to list opportunities")
		return
	}
	logger.Debug("Opportunities listed", slog.Int("count", len(opps)))
	c.JSON(http.StatusOK, dto.ToListOpportunitiesResponse(opps, next))
}

// updateOpportunity godoc
// @Summary Update an opportunity
// @Description Applies a partial change. Status moves are checked by the transition policy and every change is recorded in the history.
// @Tags opportunities
// @Accept  json
// @Produce  json
// @Param   organizationID path string true "Organization ID"
// @Param   opportunityID path string true "Opportunity ID"
// @Param   changes body dto.UpdateOpportunityRequest true "Fields to change"
// @Success 200 {object} dto.OpportunityResponse
// @Failure 400 {object} map[string]string "Invalid input, transition or missing reason"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Opportunity not found"
// @Failure 409 {object} map[string]string "Changed by someone else"
// @Failure 500 {object} map[string]string "Failed to update opportunity"
// @Security BearerAuth
// @Router /organizations/{organizationID}/opportunities/{opportunityID} [patch]
func (h *opportunityHandler) updateOpportunity(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	oppID := c.Param("opportunityID")
	mctx, ok := middleware.MutationContextFromGin(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req dto.UpdateOpportunityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for UpdateOpportunity", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}
	patch, err := req.ToPatch()
	if err != nil {
		respondWithError(c, logger, err, "Failed to update opportunity")
		return
	}

	logger = logger.With(slog.String("opportunity_id", oppID))
	opp, err := h.opportunityService.ApplyMutation(c.Request.Context(), c.Param("organizationID"), oppID, patch, mctx)
	if err != nil && !auditOnly(err) {
		respondWithError(c, logger, err, "Failed to update opportunity")
		return
	}

	logger.Info("Opportunity updated", slog.String("status", string(opp.Status)), slog.Int64("version", opp.Version))
	c.JSON(http.StatusOK, dto.ToOpportunityResponse(opp))
}

// deleteOpportunity godoc
// @Summary Delete an opportunity
// @Description Removes the opportunity. Its history is kept.
// @Tags opportunities
// @Param   organizationID path string true "Organization ID"
// @Param   opportunityID path string true "Opportunity ID"
// @Success 204 "No Content"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Opportunity not found"
// @Failure 500 {object} map[string]string "Failed to delete opportunity"
// @Security BearerAuth
// @Router /organizations/{organizationID}/opportunities/{opportunityID} [delete]
func (h *opportunityHandler) deleteOpportunity(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	oppID := c.Param("opportunityID")
	mctx, ok := middleware.MutationContextFromGin(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	logger = logger.With(slog.String("opportunity_id", oppID))
	err := h.opportunityService.DeleteOpportunity(c.Request.Context(), c.Param("organizationID"), oppID, mctx)
	if err != nil && !auditOnly(err) {
		respondWithError(c, logger, err, "Failed to delete opportunity")
		return
	}

	logger.Info("Opportunity deleted")
	c.Status(http.StatusNoContent)
}

// listHistory godoc
// @Summary List an opportunity's history
// @Description Returns the append-only change history, newest first.
// @Tags opportunities
// @Produce  json
// @Param   organizationID path string true "Organization ID"
// @Param   opportunityID path string true "Opportunity ID"
// @Param   limit query int false "Page size" default(50)
// @Param   nextToken query string false "Token from the previous page"
// @Success 200 {object} dto.ListHistoryResponse
// @Failure 400 {object} map[string]string "Invalid query parameters"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Opportunity not found"
// @Failure 500 {object} map[string]string "Failed to list history"
// @Security BearerAuth
// @Router /organizations/{organizationID}/opportunities/{opportunityID}/history [get]
func (h *opportunityHandler) listHistory(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	orgID := c.Param("organizationID")
	oppID := c.Param("opportunityID")

	var params dto.ListHistoryParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query params for ListHistory", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	entries, next, err := h.opportunityService.ListHistory(c.Request.Context(), orgID, oppID, params)
	if err != nil {
		respondWithError(c, logger.With(slog.String("opportunity_id", oppID)), err, "Failed to list history")
		return
	}
	c.JSON(http.StatusOK, dto.ToListHistoryResponse(entries, next))
}
