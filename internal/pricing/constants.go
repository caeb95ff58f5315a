package pricing

// DefaultSkillMultiplier is applied when a skill has no configured
// multiplier. Documented fallback, never an error.
const DefaultSkillMultiplier = 1.0

// Bulk discount thresholds. Evaluated highest first; lower bounds are
// inclusive.
const (
	BulkThresholdLarge = 10
	BulkThresholdSmall = 5

	BulkDiscountLarge = 0.20
	BulkDiscountSmall = 0.10
)

// Multiplier names recorded in PricingResult.AppliedMultipliers.
const (
	MultiplierSkill          = "skill"
	MultiplierPortfolio      = "portfolio"
	MultiplierCertifications = "certifications"
	MultiplierAIOptimized    = "ai_optimized"
	MultiplierPremium        = "premium"
)
