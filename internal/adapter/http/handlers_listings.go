package adapthttp

import (
	"errors"
	"net/http"

	"vbay/internal/app"
	"vbay/internal/domain"

	"github.com/gorilla/mux"
)

func (s *Server) handleListListings(w http.ResponseWriter, r *http.Request) {
	q := domain.Query{
		Text:      r.URL.Query().Get("q"),
		Category:  r.URL.Query().Get("category"),
		Condition: r.URL.Query().Get("condition"),
		Sort:      sortQuery(r),
	}

	items, err := s.listings.List(r.Context(), q)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": items})
}

func (s *Server) handleGetListing(w http.ResponseWriter, r *http.Request) {
	listing, err := s.listings.Get(r.Context(), mux.Vars(r)["id"])
	if errors.Is(err, app.ErrListingNotFound) {
		writeError(w, http.StatusNotFound, err)
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, listing)
}

func (s *Server) handleCreateListing(w http.ResponseWriter, r *http.Request) {
	var input app.ListingInput
	if err := parseJSON(r, &input); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	listing, err := s.listings.Create(r.Context(), userFrom(r), input)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	writeJSON(w, http.StatusCreated, listing)
}

func (s *Server) handleUpdateListing(w http.ResponseWriter, r *http.Request) {
	var input app.ListingInput
	if err := parseJSON(r, &input); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	listing, err := s.listings.Update(r.Context(), userFrom(r), mux.Vars(r)["id"], input)
	switch {
	case errors.Is(err, app.ErrListingNotFound):
		writeError(w, http.StatusNotFound, err)
	case errors.Is(err, app.ErrNotOwner):
		writeError(w, http.StatusForbidden, err)
	case err != nil:
		writeError(w, http.StatusBadRequest, err)
	default:
		writeJSON(w, http.StatusOK, listing)
	}
}

func sortQuery(r *http.Request) domain.SortMode {
	switch v := domain.SortMode(r.URL.Query().Get("sort")); v {
	case domain.SortPriceAsc, domain.SortPriceDesc:
		return v
	default:
		return domain.SortNewest
	}
}
