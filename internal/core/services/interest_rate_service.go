package services

import (
	"context"
	"errors"
	"log/slog"
	"strconv"
	"strings"

	"github.com/SscSPs/referral_pipeline/internal/apperrors"
	portsrepo "github.com/SscSPs/referral_pipeline/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/referral_pipeline/internal/core/ports/services"
	"github.com/SscSPs/referral_pipeline/internal/utils/scoring"
)

// SettingInterestRatePercent is the app_settings key holding the proposed loan interest rate.
const SettingInterestRatePercent = "interest_rate_percent"

// interestRateService reads the administrator-maintained interest rate.
type interestRateService struct {
	BaseService
	settingRepo portsrepo.SettingReader
	fallback    float64
}

// NewInterestRateService creates a provider backed by the settings table. fallback is used
// when no usable value is stored; a non-positive fallback means the built-in default.
func NewInterestRateService(settingRepo portsrepo.SettingReader, fallback float64) portssvc.InterestRateProvider {
	if fallback <= 0 || !scoring.ValidInterestRate(fallback) {
		fallback = scoring.DefaultInterestRatePercent
	}
	return &interestRateService{settingRepo: settingRepo, fallback: fallback}
}

func (s *interestRateService) GetInterestRatePercent(ctx context.Context) float64 {
	if s.settingRepo == nil {
		return s.fallback
	}
	raw, err := s.settingRepo.GetSetting(ctx, SettingInterestRatePercent)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to read interest rate setting, using fallback",
				slog.Float64("fallback", s.fallback))
		}
		return s.fallback
	}

	rate, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || !scoring.ValidInterestRate(rate) {
		s.LogWarn(ctx, "Ignoring invalid interest rate setting",
			slog.String("value", raw),
			slog.Float64("fallback", s.fallback))
		return s.fallback
	}
	return rate
}
