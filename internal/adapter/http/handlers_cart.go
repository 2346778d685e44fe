package adapthttp

import (
	"errors"
	"net/http"

	"vbay/internal/app"
	"vbay/internal/domain"

	"github.com/gorilla/mux"
)

func (s *Server) handleGetCart(w http.ResponseWriter, r *http.Request) {
	items, err := s.cart.Items(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	total, err := s.cart.Total(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": items, "total": total})
}

func (s *Server) handleAddToCart(w http.ResponseWriter, r *http.Request) {
	listing, err := s.listings.Get(r.Context(), mux.Vars(r)["id"])
	if errors.Is(err, app.ErrListingNotFound) {
		writeError(w, http.StatusNotFound, err)
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	item, err := s.cart.Add(r.Context(), userFrom(r), *listing)
	switch {
	case errors.Is(err, app.ErrAlreadyInCart):
		writeError(w, http.StatusConflict, err)
	case errors.Is(err, app.ErrLoginRequired):
		writeError(w, http.StatusUnauthorized, err)
	case err != nil:
		writeError(w, http.StatusInternalServerError, err)
	default:
		writeJSON(w, http.StatusCreated, item)
	}
}

func (s *Server) handleRemoveFromCart(w http.ResponseWriter, r *http.Request) {
	if err := s.cart.Remove(r.Context(), mux.Vars(r)["id"]); err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"ok": true})
}

func (s *Server) handleContactSeller(w http.ResponseWriter, r *http.Request) {
	items, err := s.cart.Items(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	id := mux.Vars(r)["id"]
	for _, item := range items {
		if item.ID == id {
			link := domain.ContactSellerLink(item.Listing, userFrom(r).Name)
			writeJSON(w, http.StatusOK, map[string]any{"mailto": link})
			return
		}
	}
	writeError(w, http.StatusNotFound, app.ErrListingNotFound)
}

func (s *Server) handleContactAll(w http.ResponseWriter, r *http.Request) {
	items, err := s.cart.Items(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"mailto": domain.ContactAllSellersLink(items)})
}
