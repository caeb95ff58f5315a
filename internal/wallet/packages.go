package wallet

import (
	"fmt"

	"github.com/hirelink/points/internal/domain"
)

// Catalog holds the purchasable points packages. Read-only after
// construction, like the pricing table.
type Catalog struct {
	packages map[string]domain.PointsPackage
	ordered  []domain.PointsPackage
}

// NewCatalog builds a catalog from a package list.
func NewCatalog(packages []domain.PointsPackage) *Catalog {
	c := &Catalog{
		packages: make(map[string]domain.PointsPackage, len(packages)),
		ordered:  packages,
	}
	for _, pkg := range packages {
		c.packages[pkg.ID] = pkg
	}
	return c
}

// Get resolves a package by ID.
func (c *Catalog) Get(id string) (domain.PointsPackage, error) {
	pkg, ok := c.packages[id]
	if !ok {
		return domain.PointsPackage{}, fmt.Errorf("%w: %q", domain.ErrPackageNotFound, id)
	}
	return pkg, nil
}

// List returns all packages, optionally filtered by target role.
func (c *Catalog) List(role domain.Role) []domain.PointsPackage {
	if role == "" {
		return c.ordered
	}
	var out []domain.PointsPackage
	for _, pkg := range c.ordered {
		for _, target := range pkg.TargetRoles {
			if target == role {
				out = append(out, pkg)
				break
			}
		}
	}
	return out
}

// DefaultCatalog returns the built-in package catalog.
func DefaultCatalog() *Catalog {
	return NewCatalog([]domain.PointsPackage{
		{
			ID:          "starter_pack",
			Name:        "Starter Pack",
			Points:      25,
			PriceUSD:    2.99,
			TargetRoles: []domain.Role{domain.RoleCandidate},
			Features:    []string{"Access 5-8 mid-level resumes", "Apply to 8-10 startup jobs"},
		},
		{
			ID:          "professional_pack",
			Name:        "Professional Pack",
			Points:      50,
			PriceUSD:    4.99,
			TargetRoles: []domain.Role{domain.RoleCandidate},
			Discount:    0.10,
			Popular:     true,
			Features:    []string{"Access 3-5 senior resumes", "Apply to 4-6 enterprise jobs", "1 profile boost"},
		},
		{
			ID:          "premium_pack",
			Name:        "Premium Pack",
			Points:      100,
			PriceUSD:    8.99,
			TargetRoles: []domain.Role{domain.RoleCandidate},
			Discount:    0.15,
			BonusPoints: 10,
			Features:    []string{"Access expert resumes", "Premium job applications", "Analytics access", "2 profile boosts"},
		},
		{
			ID:          "recruiter_basic",
			Name:        "Recruiter Basic",
			Points:      60,
			PriceUSD:    9.99,
			TargetRoles: []domain.Role{domain.RoleRecruiter},
			Features:    []string{"Access 15-20 candidate resumes", "Company insights", "Basic analytics"},
		},
		{
			ID:          "recruiter_pro",
			Name:        "Recruiter Professional",
			Points:      120,
			PriceUSD:    17.99,
			TargetRoles: []domain.Role{domain.RoleRecruiter},
			Discount:    0.12,
			Popular:     true,
			Features:    []string{"Access 40+ candidate resumes", "Advanced analytics", "Priority hiring"},
		},
		{
			ID:          "org_growth",
			Name:        "Growth Plan",
			Points:      150,
			PriceUSD:    24.99,
			TargetRoles: []domain.Role{domain.RoleOrganization},
			Features:    []string{"Bulk resume access", "Company branding", "Employee insights", "Salary benchmarks"},
		},
		{
			ID:          "org_enterprise",
			Name:        "Enterprise Plan",
			Points:      300,
			PriceUSD:    49.99,
			TargetRoles: []domain.Role{domain.RoleOrganization},
			Discount:    0.20,
			BonusPoints: 50,
			Popular:     true,
			Features:    []string{"Unlimited access", "Custom analytics", "Dedicated support", "API access"},
		},
	})
}
