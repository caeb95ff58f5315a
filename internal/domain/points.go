package domain

import "time"

// Role identifies what kind of account holds the wallet.
type Role string

const (
	RoleCandidate    Role = "candidate"
	RoleRecruiter    Role = "recruiter"
	RoleOrganization Role = "organization"
)

// ValidRoles lists every recognized account role.
var ValidRoles = []Role{RoleCandidate, RoleRecruiter, RoleOrganization}

// IsValid reports whether the role is one of the declared values.
func (r Role) IsValid() bool {
	for _, v := range ValidRoles {
		if r == v {
			return true
		}
	}
	return false
}

// ExperienceTier is the ordered experience classification used as the
// primary pricing key for resume access. Fresher is always free.
type ExperienceTier string

const (
	TierFresher ExperienceTier = "fresher"
	TierJunior  ExperienceTier = "junior"
	TierMid     ExperienceTier = "mid"
	TierSenior  ExperienceTier = "senior"
	TierExpert  ExperienceTier = "expert"
)

// ValidTiers lists tiers in ascending order.
var ValidTiers = []ExperienceTier{TierFresher, TierJunior, TierMid, TierSenior, TierExpert}

// IsValid reports whether the tier is one of the declared values.
func (t ExperienceTier) IsValid() bool {
	for _, v := range ValidTiers {
		if t == v {
			return true
		}
	}
	return false
}

// EmployerSize classifies the employer for job application pricing.
type EmployerSize string

const (
	EmployerStartup    EmployerSize = "startup"
	EmployerMid        EmployerSize = "mid"
	EmployerEnterprise EmployerSize = "enterprise"
)

// ActionType identifies what the caller is spending points on.
type ActionType string

const (
	ActionResumeAccess   ActionType = "resume_access"
	ActionJobApplication ActionType = "job_application"
	ActionCompanyAccess  ActionType = "company_access"
	ActionPremiumFeature ActionType = "premium_feature"
)

// Company access feature names.
const (
	CompanyFeatureBasicInfo       = "basic_info"
	CompanyFeatureDetailedProfile = "detailed_profile"
	CompanyFeatureEmployeeReviews = "employee_reviews"
	CompanyFeatureSalaryInsights  = "salary_insights"
)

// Premium feature names.
const (
	PremiumFeatureProfileBoost        = "profile_boost_24h"
	PremiumFeaturePriorityApplication = "priority_application"
	PremiumFeatureDirectMessage       = "direct_message"
	PremiumFeatureAnalyticsAccess     = "analytics_access"
)

// SubjectProfile describes the entity whose access is being priced, e.g. a
// candidate whose resume a recruiter wants to open.
type SubjectProfile struct {
	ID                 string         `json:"id"`
	ExperienceTier     ExperienceTier `json:"experience_tier"`
	Skills             []string       `json:"skills"`
	HasPortfolio       bool           `json:"has_portfolio"`
	CertificationCount int            `json:"certification_count"`
	QualityScore       int            `json:"quality_score"` // 1-10 scale
}

// ActionRequest is a request to spend points on one action type. The
// action-specific fields form a tagged union keyed by Type: EmployerSize is
// meaningful only for job applications, Feature only for company access and
// premium features.
type ActionRequest struct {
	Type ActionType `json:"action_type"`

	// Tier overrides the subject's experience tier as the resume access
	// pricing key when set.
	Tier         ExperienceTier `json:"tier,omitempty"`
	EmployerSize EmployerSize   `json:"employer_size,omitempty"`
	Feature      string         `json:"feature,omitempty"`
	IsPremium    bool           `json:"is_premium,omitempty"`
	Quantity     int            `json:"quantity"`
	PromoCode    string         `json:"promo_code,omitempty"`
}

// AppliedMultiplier records one multiplier that actually contributed to a
// price, in application order, for display and audit.
type AppliedMultiplier struct {
	Name   string  `json:"name"`
	Factor float64 `json:"factor"`
}

// PricingResult is the full output of a pricing computation.
type PricingResult struct {
	BaseCost           int                 `json:"base_cost"`
	AppliedMultipliers []AppliedMultiplier `json:"applied_multipliers"`
	Discount           float64             `json:"discount"`
	FinalCost          int                 `json:"final_cost"`
	Cap                int                 `json:"cap"`
	Capped             bool                `json:"capped"`
}

// EntryKind classifies a ledger entry by its effect on the balance.
type EntryKind string

const (
	EntryEarned    EntryKind = "earned"
	EntrySpent     EntryKind = "spent"
	EntryPurchased EntryKind = "purchased"
	EntryRefunded  EntryKind = "refunded"
)

// IsCredit reports whether the kind increases the balance.
func (k EntryKind) IsCredit() bool {
	return k == EntryEarned || k == EntryPurchased || k == EntryRefunded
}

// EntryStatus is the ledger entry lifecycle state. The only legal transition
// is pending -> completed or pending -> failed; completed and failed are
// terminal.
type EntryStatus string

const (
	StatusCompleted EntryStatus = "completed"
	StatusPending   EntryStatus = "pending"
	StatusFailed    EntryStatus = "failed"
)

// Ledger entry categories.
const (
	CategoryResumeAccess   = "resume_access"
	CategoryJobApplication = "job_application"
	CategoryCompanyAccess  = "company_access"
	CategoryPremiumFeature = "premium_feature"
	CategoryPurchase       = "purchase"
	CategoryBonus          = "bonus"
	CategoryRefund         = "refund"
)

// WalletAccount is one user's points wallet. CurrentPoints is mutated only
// by the wallet ledger as the side effect of committing an entry, and always
// equals TotalEarned - TotalSpent.
type WalletAccount struct {
	AccountID     string    `json:"account_id"`
	Role          Role      `json:"role"`
	CurrentPoints int       `json:"current_points"`
	TotalEarned   int       `json:"total_earned"`
	TotalSpent    int       `json:"total_spent"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// LedgerEntry is one immutable balance-affecting event. Amount is always
// positive; the sign is carried by Kind.
type LedgerEntry struct {
	EntryID     string      `json:"entry_id"`
	AccountID   string      `json:"account_id"`
	Kind        EntryKind   `json:"kind"`
	Amount      int         `json:"amount"`
	Category    string      `json:"category"`
	Description string      `json:"description"`
	Status      EntryStatus `json:"status"`
	CreatedAt   time.Time   `json:"created_at"`
}

// PointsPackage is a purchasable bundle of points from the catalog.
type PointsPackage struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Points      int      `json:"points"`
	PriceUSD    float64  `json:"price_usd"`
	TargetRoles []Role   `json:"target_roles"`
	Discount    float64  `json:"discount,omitempty"`
	BonusPoints int      `json:"bonus_points,omitempty"`
	Popular     bool     `json:"popular,omitempty"`
	Features    []string `json:"features,omitempty"`
}

// CategoryTotal is one row of a spending breakdown.
type CategoryTotal struct {
	Category string `json:"category"`
	Amount   int    `json:"amount"`
}

// WalletStats summarizes an account's ledger history.
type WalletStats struct {
	AccountID         string          `json:"account_id"`
	TotalEarned       int             `json:"total_earned"`
	TotalSpent        int             `json:"total_spent"`
	TotalPurchased    int             `json:"total_purchased"`
	TransactionCount  int             `json:"transaction_count"`
	SpendingBreakdown []CategoryTotal `json:"spending_breakdown"`
}
