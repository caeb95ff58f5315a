package handler

import (
	"net/http"

	"github.com/hirelink/points/internal/domain"
	"github.com/hirelink/points/internal/wallet"
)

// PackagesResponse lists purchasable point packages.
type PackagesResponse struct {
	Packages []domain.PointsPackage `json:"packages"`
}

// HandleListPackages lists the purchasable package catalog
// @Summary List point packages
// @Description Returns the package catalog, optionally filtered by target role.
// @Tags packages
// @Produce json
// @Param role query string false "Role filter (candidate, recruiter, organization)"
// @Success 200 {object} PackagesResponse
// @Router /packages [get]
func HandleListPackages(catalog *wallet.Catalog) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		role := domain.Role(r.URL.Query().Get("role"))
		respondJSON(w, http.StatusOK, PackagesResponse{Packages: catalog.List(role)})
	}
}
