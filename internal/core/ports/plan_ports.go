package ports

import (
	"github.com/castvox/castvox/internal/core/domain"
)

// PlanCatalog resolves a subscription plan code into its feature set. The
// billing subsystem owns plan state; from here the catalog is read-only.
type PlanCatalog interface {
	Features(plan string) domain.PlanFeatures
}
