package pricing

import (
	"fmt"
	"math"

	"github.com/hirelink/points/internal/domain"
)

// Engine computes point costs. It is pure: no I/O, no clock, no randomness,
// so identical inputs always produce identical results. Safe for concurrent
// use by any number of callers.
type Engine struct {
	table *Table
}

// NewEngine creates a pricing engine over a table.
func NewEngine(table *Table) *Engine {
	return &Engine{table: table}
}

// Table returns the engine's pricing table for read-only display.
func (e *Engine) Table() *Table {
	return e.table
}

// Price computes the final point cost of one action against a subject
// profile. FinalCost is the per-action cost: base cost times the applied
// multipliers, reduced by the bulk/promo discount, rounded to the nearest
// integer and then clamped to the category cap. Clamping happens after
// rounding so a value that rounds above the cap is truncated to it.
func (e *Engine) Price(subject domain.SubjectProfile, action domain.ActionRequest) (*domain.PricingResult, error) {
	if action.Quantity < 1 {
		return nil, fmt.Errorf("%w: quantity must be at least 1, got %d", domain.ErrInvalidInput, action.Quantity)
	}

	switch action.Type {
	case domain.ActionResumeAccess:
		return e.priceResumeAccess(subject, action)
	case domain.ActionJobApplication:
		return e.priceJobApplication(action)
	case domain.ActionCompanyAccess:
		base, err := e.table.CompanyAccessBaseCost(action.Feature)
		if err != nil {
			return nil, err
		}
		return e.finalize(base, nil, action, e.table.Caps.CompanyAccess)
	case domain.ActionPremiumFeature:
		base, err := e.table.PremiumFeatureBaseCost(action.Feature)
		if err != nil {
			return nil, err
		}
		return e.finalize(base, nil, action, e.table.Caps.PremiumFeature)
	default:
		return nil, fmt.Errorf("%w: unknown action type %q", domain.ErrInvalidInput, action.Type)
	}
}

// priceResumeAccess applies the subject-quality pricing model: the single
// most valuable matched skill dominates (multipliers never stack across
// skills), then each quality signal multiplies in independently.
func (e *Engine) priceResumeAccess(subject domain.SubjectProfile, action domain.ActionRequest) (*domain.PricingResult, error) {
	tier := subject.ExperienceTier
	if action.Tier != "" {
		tier = action.Tier
	}
	if !tier.IsValid() {
		return nil, fmt.Errorf("%w: %q", domain.ErrInvalidTier, tier)
	}

	base, err := e.table.ResumeBaseCost(tier)
	if err != nil {
		return nil, err
	}

	// Freshers are always free. No multipliers, no discounts - short
	// circuit before anything else can push the price off zero.
	if base == 0 {
		return &domain.PricingResult{
			BaseCost:  0,
			FinalCost: 0,
			Cap:       e.table.Caps.ResumeAccess,
		}, nil
	}

	var applied []domain.AppliedMultiplier

	if factor := e.maxSkillMultiplier(subject.Skills); factor > 1.0 {
		applied = append(applied, domain.AppliedMultiplier{Name: MultiplierSkill, Factor: factor})
	}
	if subject.HasPortfolio {
		applied = append(applied, domain.AppliedMultiplier{Name: MultiplierPortfolio, Factor: e.table.Quality.Portfolio})
	}
	if subject.CertificationCount > 0 {
		applied = append(applied, domain.AppliedMultiplier{Name: MultiplierCertifications, Factor: e.table.Quality.Certifications})
	}
	if subject.QualityScore >= e.table.HighQualityScore {
		applied = append(applied, domain.AppliedMultiplier{Name: MultiplierAIOptimized, Factor: e.table.Quality.AIOptimized})
	}

	return e.finalize(base, applied, action, e.table.Caps.ResumeAccess)
}

func (e *Engine) priceJobApplication(action domain.ActionRequest) (*domain.PricingResult, error) {
	base, err := e.table.JobApplicationBaseCost(action.EmployerSize)
	if err != nil {
		return nil, err
	}

	var applied []domain.AppliedMultiplier
	if action.IsPremium {
		applied = append(applied, domain.AppliedMultiplier{
			Name:   MultiplierPremium,
			Factor: 1.0 + e.table.PremiumSurcharge,
		})
	}
	return e.finalize(base, applied, action, e.table.Caps.JobApplication)
}

// finalize composes multipliers and discount, rounds, and clamps.
func (e *Engine) finalize(base int, applied []domain.AppliedMultiplier, action domain.ActionRequest, cap int) (*domain.PricingResult, error) {
	discount, err := Discount(action.Quantity, action.PromoCode)
	if err != nil {
		return nil, err
	}

	cost := float64(base)
	for _, m := range applied {
		cost *= m.Factor
	}
	cost *= 1.0 - discount

	final := int(math.Round(cost))
	capped := final > cap
	if capped {
		final = cap
	}
	if final < 0 {
		final = 0
	}

	return &domain.PricingResult{
		BaseCost:           base,
		AppliedMultipliers: applied,
		Discount:           discount,
		FinalCost:          final,
		Cap:                cap,
		Capped:             capped,
	}, nil
}

// maxSkillMultiplier returns the largest configured multiplier across the
// subject's skills.
func (e *Engine) maxSkillMultiplier(skills []string) float64 {
	max := DefaultSkillMultiplier
	for _, skill := range skills {
		if factor := e.table.SkillMultiplier(skill); factor > max {
			max = factor
		}
	}
	return max
}
