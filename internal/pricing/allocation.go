package pricing

import "github.com/hirelink/points/internal/domain"

// Recruiter and organization signup tiers. Candidates use their experience
// tier instead.
const (
	RecruiterTierStartup   = "startup"
	RecruiterTierCorporate = "corporate"
	RecruiterTierPremium   = "premium"

	OrgTierStartup    = "startup"
	OrgTierMid        = "mid"
	OrgTierEnterprise = "enterprise"
)

var candidateAllocations = map[string]int{
	string(domain.TierFresher): 20,
	string(domain.TierJunior):  30,
	string(domain.TierMid):     40,
	string(domain.TierSenior):  50,
	string(domain.TierExpert):  60,
}

var recruiterAllocations = map[string]int{
	RecruiterTierStartup:   60,
	RecruiterTierCorporate: 80,
	RecruiterTierPremium:   100,
}

var organizationAllocations = map[string]int{
	OrgTierStartup:    70,
	OrgTierMid:        85,
	OrgTierEnterprise: 100,
}

// InitialAllocation returns the points a new account starts with, keyed by
// role and the tier declared at signup. An unknown tier falls back to the
// role's smallest allocation; the result is never negative.
func InitialAllocation(role domain.Role, tier string) int {
	tier = folder.String(tier)
	switch role {
	case domain.RoleCandidate:
		if points, ok := candidateAllocations[tier]; ok {
			return points
		}
		return candidateAllocations[string(domain.TierFresher)]
	case domain.RoleRecruiter:
		if points, ok := recruiterAllocations[tier]; ok {
			return points
		}
		return recruiterAllocations[RecruiterTierStartup]
	case domain.RoleOrganization:
		if points, ok := organizationAllocations[tier]; ok {
			return points
		}
		return organizationAllocations[OrgTierStartup]
	default:
		return candidateAllocations[string(domain.TierFresher)]
	}
}
