package handlers

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/vinted-clone/marketplace-backend/internal/middleware"
	"github.com/vinted-clone/marketplace-backend/internal/models"
	"github.com/vinted-clone/marketplace-backend/internal/services"
)

// offerForm covers publish (title) and update (id, name).
type offerForm struct {
	ID          string `schema:"id"`
	Title       string `schema:"title"`
	Name        string `schema:"name"`
	Description string `schema:"description"`
	Price       string `schema:"price"`
	Brand       string `schema:"brand"`
	Size        string `schema:"size"`
	Condition   string `schema:"condition"`
	Color       string `schema:"color"`
	City        string `schema:"city"`
}

func (f offerForm) input(name string) (services.OfferInput, error) {
	in := services.OfferInput{
		Name:        optional(name),
		Description: optional(f.Description),
		Details: models.ProductDetails{
			Brand:     optional(f.Brand),
			Size:      optional(f.Size),
			Condition: optional(f.Condition),
			Color:     optional(f.Color),
			Location:  optional(f.City),
		},
	}
	if f.Price != "" {
		price, err := strconv.ParseFloat(f.Price, 64)
		if err != nil {
			return in, services.ErrInvalidPrice
		}
		in.Price = &price
	}
	return in, nil
}

type updateResponse struct {
	Message string        `json:"message"`
	Offer   *models.Offer `json:"offer"`
}

type deleteResponse struct {
	Message      string        `json:"message"`
	OfferDeleted *models.Offer `json:"offerDeleted"`
}

// decodeOffer parses the listing form and opens the optional picture.
// The returned closer is never nil.
func (h *Handler) decodeOffer(w http.ResponseWriter, r *http.Request) (offerForm, io.Reader, func(), error) {
	noop := func() {}

	var form offerForm
	if err := h.decodeForm(w, r, &form); err != nil {
		return form, nil, noop, err
	}
	picture, err := formFile(r, "picture")
	if err != nil || picture == nil {
		return form, nil, noop, err
	}
	return form, picture, func() { picture.Close() }, nil
}

// Publish handles POST /offer/publish.
func (h *Handler) Publish(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.UserFromContext(r.Context())

	form, picture, closePicture, err := h.decodeOffer(w, r)
	defer closePicture()
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err)
		return
	}
	in, err := form.input(form.Title)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err)
		return
	}
	in.Picture = picture

	offer, err := h.offers.Publish(r.Context(), user, in)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err)
		return
	}
	writeJSON(w, http.StatusOK, offer)
}

// Search handles GET /offers.
func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	q, err := services.NewOfferQuery(services.SearchParams{
		Title:    query.Get("title"),
		PriceMin: query.Get("priceMin"),
		PriceMax: query.Get("priceMax"),
		Sort:     query.Get("sort"),
		Page:     query.Get("page"),
		Limit:    query.Get("limit"),
	})
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err)
		return
	}

	res, err := h.offers.Search(r.Context(), q)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// GetOffer handles GET /offer/{id}.
func (h *Handler) GetOffer(w http.ResponseWriter, r *http.Request) {
	offer, err := h.offers.Get(r.Context(), chi.URLParam(r, "id"))
	if errors.Is(err, services.ErrOfferNotFound) {
		writeJSON(w, http.StatusUnauthorized, messageResponse{Message: "No result"})
		return
	}
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err)
		return
	}
	writeJSON(w, http.StatusOK, offer)
}

// UpdateOffer handles PUT /offer/update.
func (h *Handler) UpdateOffer(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.UserFromContext(r.Context())

	form, picture, closePicture, err := h.decodeOffer(w, r)
	defer closePicture()
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err)
		return
	}
	in, err := form.input(form.Name)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err)
		return
	}
	in.Picture = picture

	offer, err := h.offers.Update(r.Context(), user, form.ID, in)
	if errors.Is(err, services.ErrOfferNotFound) {
		writeJSON(w, http.StatusBadRequest, messageResponse{Message: "Offer not found"})
		return
	}
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err)
		return
	}
	writeJSON(w, http.StatusOK, updateResponse{Message: "Update OK", Offer: offer})
}

// DeleteOffer handles DELETE /offer/delete/{id}.
func (h *Handler) DeleteOffer(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.UserFromContext(r.Context())

	deleted, err := h.offers.Delete(r.Context(), user, chi.URLParam(r, "id"))
	if errors.Is(err, services.ErrOfferNotFound) {
		writeJSON(w, http.StatusBadRequest, messageResponse{Message: "Offer not found"})
		return
	}
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err)
		return
	}
	writeJSON(w, http.StatusOK, deleteResponse{Message: "Offer deleted", OfferDeleted: deleted})
}
