package api

import (
	"net/http"

	"github.com/phrazzld/zen-api/internal/api/shared"
	"github.com/phrazzld/zen-api/internal/domain"
	"github.com/phrazzld/zen-api/internal/domain/oracle"
)

// CatalogHandler serves the public card and plan catalogs.
type CatalogHandler struct {
	deck   *oracle.Deck
	policy oracle.QuotaPolicy
}

// NewCatalogHandler creates a new CatalogHandler.
func NewCatalogHandler(deck *oracle.Deck, policy oracle.QuotaPolicy) *CatalogHandler {
	if deck == nil {
		deck = oracle.NewDeck(nil)
	}
	return &CatalogHandler{deck: deck, policy: policy}
}

// Cards handles GET /api/cards. The optional q parameter fuzzy-matches card
// names and keys.
func (h *CatalogHandler) Cards(w http.ResponseWriter, r *http.Request) {
	cards := oracle.SearchCards(h.deck.Cards(), r.URL.Query().Get("q"))
	shared.RespondWithJSON(w, r, http.StatusOK, CardsResponse{Cards: cards})
}

// Plans handles GET /api/plans.
func (h *CatalogHandler) Plans(w http.ResponseWriter, r *http.Request) {
	plans := make([]PlanResponse, 0, len(domain.Plans))
	for _, p := range domain.Plans {
		resp := PlanResponse{Plan: p}
		if limit := h.policy.WeeklyLimit(p); limit == oracle.Unlimited {
			resp.Unlimited = true
		} else {
			resp.WeeklyLimit = &limit
		}
		plans = append(plans, resp)
	}
	shared.RespondWithJSON(w, r, http.StatusOK, PlansResponse{Plans: plans})
}
