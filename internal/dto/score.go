package dto

import (
	"github.com/SscSPs/referral_pipeline/internal/core/domain"
)

// ScorePreviewRequest scores a set of inputs without saving anything.
type ScorePreviewRequest struct {
	FinancialInputsRequest
	RiskFlagsRequest
}

// ScoreResponse defines the data returned for a computed score.
type ScoreResponse struct {
	ICR                 float64             `json:"icr"`
	LVR                 float64             `json:"lvr"`
	OutcomeLevel        domain.OutcomeLevel `json:"outcomeLevel"`
	Outcome             string              `json:"outcome"`
	InterestRatePercent float64             `json:"interestRatePercent"`
}

// ToScoreResponse converts a domain.Score and the rate it was computed with.
func ToScoreResponse(s domain.Score, interestRatePercent float64) ScoreResponse {
	return ScoreResponse{
		ICR:                 s.ICR,
		LVR:                 s.LVR,
		OutcomeLevel:        s.OutcomeLevel,
		Outcome:             s.OutcomeLevel.String(),
		InterestRatePercent: interestRatePercent,
	}
}
