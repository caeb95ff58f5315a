package wallet

import (
	"time"

	"github.com/hirelink/points/internal/domain"
)

// SignupBonusDescription labels the allocation entry every new account gets.
const SignupBonusDescription = "Signup allocation"

// Account cache sizing. Entries are small; the TTL is a safety net on top
// of explicit invalidation after every committed mutation.
const (
	defaultCacheSize = 4096
	defaultCacheTTL  = 5 * time.Minute
)

// expireBatchSize bounds one settlement sweep; a backlog larger than this
// drains over successive runs.
const expireBatchSize = 100

// spendingCategories fixes the order of the stats breakdown.
var spendingCategories = []string{
	domain.CategoryResumeAccess,
	domain.CategoryJobApplication,
	domain.CategoryCompanyAccess,
	domain.CategoryPremiumFeature,
}
