package pricing

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
	"golang.org/x/text/cases"

	"github.com/hirelink/points/internal/domain"
)

// QualityMultipliers are the independent multiplicative quality signals.
type QualityMultipliers struct {
	Portfolio      float64 `toml:"portfolio"`
	Certifications float64 `toml:"certifications"`
	AIOptimized    float64 `toml:"ai_optimized"`
}

// Caps are the per-category maximum costs. A computed price is clamped to
// the cap after rounding, never raised to it.
type Caps struct {
	ResumeAccess   int `toml:"resume_access"`
	JobApplication int `toml:"job_application"`
	CompanyAccess  int `toml:"company_access"`
	PremiumFeature int `toml:"premium_feature"`
}

// Table is the static pricing configuration: base costs per tier/category,
// skill and quality multipliers, and per-category caps. Read-only after
// construction; lookups never mutate it.
type Table struct {
	ResumeAccess     map[string]int     `toml:"resume_access"`
	JobApplications  map[string]int     `toml:"job_applications"`
	CompanyAccess    map[string]int     `toml:"company_access"`
	PremiumFeatures  map[string]int     `toml:"premium_features"`
	SkillMultipliers map[string]float64 `toml:"skill_multipliers"`
	Quality          QualityMultipliers `toml:"quality_multipliers"`
	Caps             Caps               `toml:"caps"`

	// PremiumSurcharge is the additive surcharge for premium job
	// applications (0.3 means +30%).
	PremiumSurcharge float64 `toml:"premium_surcharge"`

	// HighQualityScore is the quality score threshold at which the
	// ai_optimized multiplier applies.
	HighQualityScore int `toml:"high_quality_score"`
}

// folder lowercases skill names for case-insensitive matching.
var folder = cases.Fold()

// DefaultTable returns the built-in pricing configuration.
func DefaultTable() *Table {
	return &Table{
		ResumeAccess: map[string]int{
			string(domain.TierFresher): 0, // always free
			string(domain.TierJunior):  4,
			string(domain.TierMid):     10,
			string(domain.TierSenior):  18,
			string(domain.TierExpert):  30,
		},
		JobApplications: map[string]int{
			string(domain.EmployerStartup):    2,
			string(domain.EmployerMid):        6,
			string(domain.EmployerEnterprise): 12,
		},
		CompanyAccess: map[string]int{
			domain.CompanyFeatureBasicInfo:       0,
			domain.CompanyFeatureDetailedProfile: 4,
			domain.CompanyFeatureEmployeeReviews: 9,
			domain.CompanyFeatureSalaryInsights:  15,
		},
		PremiumFeatures: map[string]int{
			domain.PremiumFeatureProfileBoost:        20,
			domain.PremiumFeaturePriorityApplication: 16,
			domain.PremiumFeatureDirectMessage:       12,
			domain.PremiumFeatureAnalyticsAccess:     8,
		},
		SkillMultipliers: map[string]float64{
			"ai/ml":            1.3,
			"machine learning": 1.3,
			"data science":     1.2,
			"cloud computing":  1.2,
			"aws":              1.2,
			"azure":            1.2,
			"react":            1.1,
			"angular":          1.1,
			"vue":              1.1,
			"node.js":          1.1,
			"python":           1.1,
			"java":             1.0,
			"javascript":       1.0,
		},
		Quality: QualityMultipliers{
			Portfolio:      1.10,
			Certifications: 1.15,
			AIOptimized:    1.20,
		},
		Caps: Caps{
			ResumeAccess:   35,
			JobApplication: 20,
			CompanyAccess:  18,
			PremiumFeature: 25,
		},
		PremiumSurcharge: 0.3,
		HighQualityScore: 8,
	}
}

// LoadTable reads a pricing table from a TOML file. A missing path returns
// the defaults; a present but unreadable or invalid file is an error so a
// broken deploy fails loudly instead of silently pricing from defaults.
func LoadTable(path string) (*Table, error) {
	if path == "" {
		return DefaultTable(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultTable(), nil
		}
		return nil, fmt.Errorf("failed to read pricing config: %w", err)
	}

	table := DefaultTable()
	if err := toml.Unmarshal(data, table); err != nil {
		return nil, fmt.Errorf("failed to parse pricing config %s: %w", path, err)
	}
	if err := table.Validate(); err != nil {
		return nil, fmt.Errorf("invalid pricing config %s: %w", path, err)
	}
	return table, nil
}

// Validate checks structural sanity of a loaded table.
func (t *Table) Validate() error {
	for tier, cost := range t.ResumeAccess {
		if cost < 0 {
			return fmt.Errorf("resume_access.%s: negative base cost %d", tier, cost)
		}
	}
	for size, cost := range t.JobApplications {
		if cost < 0 {
			return fmt.Errorf("job_applications.%s: negative base cost %d", size, cost)
		}
	}
	for name, factor := range t.SkillMultipliers {
		if factor < 1.0 {
			return fmt.Errorf("skill_multipliers.%s: factor %v below 1.0", name, factor)
		}
	}
	if t.PremiumSurcharge < 0 {
		return fmt.Errorf("premium_surcharge: negative value %v", t.PremiumSurcharge)
	}
	return nil
}

// ResumeBaseCost returns the base cost for accessing a resume at the given
// tier. A missing tier entry is a configuration bug.
func (t *Table) ResumeBaseCost(tier domain.ExperienceTier) (int, error) {
	cost, ok := t.ResumeAccess[string(tier)]
	if !ok {
		return 0, fmt.Errorf("%w: resume_access tier %q", domain.ErrMissingPrice, tier)
	}
	return cost, nil
}

// JobApplicationBaseCost returns the base cost for applying to an employer
// of the given size class.
func (t *Table) JobApplicationBaseCost(size domain.EmployerSize) (int, error) {
	cost, ok := t.JobApplications[string(size)]
	if !ok {
		return 0, fmt.Errorf("%w: job_applications size %q", domain.ErrMissingPrice, size)
	}
	return cost, nil
}

// CompanyAccessBaseCost returns the base cost of one company data feature.
func (t *Table) CompanyAccessBaseCost(feature string) (int, error) {
	cost, ok := t.CompanyAccess[feature]
	if !ok {
		return 0, fmt.Errorf("%w: company_access feature %q", domain.ErrMissingPrice, feature)
	}
	return cost, nil
}

// PremiumFeatureBaseCost returns the base cost of one premium feature.
func (t *Table) PremiumFeatureBaseCost(feature string) (int, error) {
	cost, ok := t.PremiumFeatures[feature]
	if !ok {
		return 0, fmt.Errorf("%w: premium_features feature %q", domain.ErrMissingPrice, feature)
	}
	return cost, nil
}

// SkillMultiplier returns the multiplier for one skill, matched
// case-insensitively. Unknown skills fall back to 1.0 rather than failing:
// skills are free-form user input, not configuration.
func (t *Table) SkillMultiplier(skill string) float64 {
	if factor, ok := t.SkillMultipliers[folder.String(skill)]; ok {
		return factor
	}
	return DefaultSkillMultiplier
}

// Cap returns the published cap for an action type.
func (t *Table) Cap(action domain.ActionType) int {
	switch action {
	case domain.ActionResumeAccess:
		return t.Caps.ResumeAccess
	case domain.ActionJobApplication:
		return t.Caps.JobApplication
	case domain.ActionCompanyAccess:
		return t.Caps.CompanyAccess
	case domain.ActionPremiumFeature:
		return t.Caps.PremiumFeature
	}
	return 0
}
