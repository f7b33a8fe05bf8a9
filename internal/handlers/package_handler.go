package handlers

import (
	"net/http"

	"solverpro/internal/models"
	"solverpro/internal/pricing"
	"solverpro/internal/utils"
)

type PackageHandler struct {
	catalog *pricing.Catalog
}

func NewPackageHandler(catalog *pricing.Catalog) *PackageHandler {
	return &PackageHandler{catalog: catalog}
}

func (h *PackageHandler) ListHandler(w http.ResponseWriter, r *http.Request) {
	packages := h.catalog.Packages()
	views := make([]models.PackageView, 0, len(packages))
	for _, pkg := range packages {
		views = append(views, models.PackageView{
			Quantity:        pkg.Quantity,
			Label:           pkg.Label,
			UnitListPrice:   pkg.UnitListPrice,
			DiscountPercent: pkg.DiscountPercent,
			Price:           pkg.EffectivePrice(),
		})
	}
	utils.JSON(w, http.StatusOK, views)
}
