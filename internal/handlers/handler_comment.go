package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/SscSPs/referral_pipeline/internal/core/ports/services"
	"github.com/SscSPs/referral_pipeline/internal/dto"
	"github.com/SscSPs/referral_pipeline/internal/middleware"
)

type commentHandler struct {
	commentService portssvc.CommentSvcFacade
}

func newCommentHandler(cs portssvc.CommentSvcFacade) *commentHandler {
	return &commentHandler{commentService: cs}
}

func registerCommentRoutes(orgRoutes *gin.RouterGroup, commentService portssvc.CommentSvcFacade) {
	h := newCommentHandler(commentService)

	comments := orgRoutes.Group("/opportunities/:opportunityID/comments")
	{
		comments.POST("", h.createComment)
		comments.GET("", h.listComments)
		comments.PUT("/:commentID", h.updateComment)
		comments.DELETE("/:commentID", h.deleteComment)
	}
}

// createComment godoc
// @Summary Add a comment to an opportunity
// @Tags comments
// @Accept  json
// @Produce  json
// @Param   organizationID path string true "Organization ID"
// @Param   opportunityID path string true "Opportunity ID"
// @Param   comment body dto.CreateCommentRequest true "Comment"
// @Success 201 {object} dto.CommentResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Opportunity not found"
// @Security BearerAuth
// @Router /organizations/{organizationID}/opportunities/{opportunityID}/comments [post]
func (h *commentHandler) createComment(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	oppID := c.Param("opportunityID")
	mctx, ok := middleware.MutationContextFromGin(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req dto.CreateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateComment", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	comment, err := h.commentService.CreateComment(c.Request.Context(), c.Param("organizationID"), oppID, req, mctx)
	if err != nil && !auditOnly(err) {
		respondWithError(c, logger.With(slog.String("opportunity_id", oppID)), err, "Failed to create comment")
		return
	}
	c.JSON(http.StatusCreated, dto.ToCommentResponse(comment))
}

// listComments godoc
// @Summary List comments on an opportunity
// @Tags comments
// @Produce  json
// @Param   organizationID path string true "Organization ID"
// @Param   opportunityID path string true "Opportunity ID"
// @Success 200 {array} dto.CommentResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Opportunity not found"
// @Security BearerAuth
// @Router /organizations/{organizationID}/opportunities/{opportunityID}/comments [get]
func (h *commentHandler) listComments(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	oppID := c.Param("opportunityID")

	comments, err := h.commentService.ListComments(c.Request.Context(), c.Param("organizationID"), oppID)
	if err != nil {
		respondWithError(c, logger.With(slog.String("opportunity_id", oppID)), err, "Failed to list comments")
		return
	}
	c.JSON(http.StatusOK, dto.ToListCommentResponse(comments))
}

// updateComment godoc
// @Summary Edit a comment
// @Tags comments
// @Accept  json
// @Produce  json
// @Param   organizationID path string true "Organization ID"
// @Param   opportunityID path string true "Opportunity ID"
// @Param   commentID path string true "Comment ID"
// @Param   comment body dto.UpdateCommentRequest true "New body"
// @Success 200 {object} dto.CommentResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 403 {object} map[string]string "Comment belongs to another organization"
// @Failure 404 {object} map[string]string "Comment not found"
// @Failure 409 {object} map[string]string "Changed by someone else"
// @Security BearerAuth
// @Router /organizations/{organizationID}/opportunities/{opportunityID}/comments/{commentID} [put]
func (h *commentHandler) updateComment(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	oppID := c.Param("opportunityID")
	commentID := c.Param("commentID")
	mctx, ok := middleware.MutationContextFromGin(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req dto.UpdateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for UpdateComment", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	comment, err := h.commentService.UpdateComment(c.Request.Context(), c.Param("organizationID"), oppID, commentID, req, mctx)
	if err != nil && !auditOnly(err) {
		respondWithError(c, logger.With(slog.String("comment_id", commentID)), err, "Failed to update comment")
		return
	}
	c.JSON(http.StatusOK, dto.ToCommentResponse(comment))
}

// deleteComment godoc
// @Summary Delete a comment
// @Tags comments
// @Param   organizationID path string true "Organization ID"
// @Param   opportunityID path string true "Opportunity ID"
// @Param   commentID path string true "Comment ID"
// @Success 204 "No Content"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Comment belongs to another organization"
// @Failure 404 {object} map[string]string "Comment not found"
// @Security BearerAuth
// @Router /organizations/{organizationID}/opportunities/{opportunityID}/comments/{commentID} [delete]
func (h *commentHandler) deleteComment(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	oppID := c.Param("opportunityID")
	commentID := c.Param("commentID")
	mctx, ok := middleware.MutationContextFromGin(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	err := h.commentService.DeleteComment(c.Request.Context(), c.Param("organizationID"), oppID, commentID, mctx)
	if err != nil && !auditOnly(err) {
		respondWithError(c, logger.With(slog.String("comment_id", commentID)), err, "Failed to delete comment")
		return
	}
	c.Status(http.StatusNoContent)
}
