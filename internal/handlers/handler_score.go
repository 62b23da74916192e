package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/SscSPs/referral_pipeline/internal/core/ports/services"
	"github.com/SscSPs/referral_pipeline/internal/dto"
	"github.com/SscSPs/referral_pipeline/internal/middleware"
)

type scoreHandler struct {
	scoreService portssvc.ScorePreviewSvc
}

func registerScoreRoutes(rg *gin.RouterGroup, scoreService portssvc.ScorePreviewSvc) {
	h := &scoreHandler{scoreService: scoreService}
	rg.POST("/score/preview", h.previewScore)
}

// previewScore godoc
// @Summary Preview a risk score
// @Description Computes ICR, LVR and the outcome band for the given inputs without saving anything.
// @Tags score
// @Accept  json
// @Produce  json
// @Param   inputs body dto.ScorePreviewRequest true "Financial inputs and risk answers"
// @Success 200 {object} dto.ScoreResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Security BearerAuth
// @Router /score/preview [post]
func (h *scoreHandler) previewScore(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.ScorePreviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for PreviewScore", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	score, rate, err := h.scoreService.PreviewScore(c.Request.Context(), req)
	if err != nil {
		respondWithError(c, logger, err, "Failed to compute score")
		return
	}
	c.JSON(http.StatusOK, dto.ToScoreResponse(score, rate))
}
