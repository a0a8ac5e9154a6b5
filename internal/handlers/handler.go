// Package handlers is the HTTP front door: it decodes requests, calls the
// services and maps their results and errors onto status codes.
package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"net/url"

	"github.com/gorilla/schema"

	"github.com/vinted-clone/marketplace-backend/internal/logging"
	"github.com/vinted-clone/marketplace-backend/internal/models"
	"github.com/vinted-clone/marketplace-backend/internal/services"
	"github.com/vinted-clone/marketplace-backend/internal/store"
)

type UserService interface {
	Signup(ctx context.Context, in services.SignupInput) (*services.SignupResult, error)
	Login(ctx context.Context, email, password string) (*services.LoginResult, error)
}

type OfferService interface {
	Publish(ctx context.Context, owner *models.User, in services.OfferInput) (*models.Offer, error)
	Search(ctx context.Context, q store.OfferQuery) (*services.SearchResult, error)
	Get(ctx context.Context, id string) (*models.Offer, error)
	Update(ctx context.Context, owner *models.User, id string, in services.OfferInput) (*models.Offer, error)
	Delete(ctx context.Context, owner *models.User, id string) (*models.Offer, error)
}

type PaymentService interface {
	Charge(ctx context.Context, req services.ChargeRequest) (json.RawMessage, error)
}

type Handler struct {
	users          UserService
	offers         OfferService
	payments       PaymentService // nil when payments are not configured
	maxUploadBytes int64
	decoder        *schema.Decoder
}

func New(users UserService, offers OfferService, payments PaymentService, maxUploadBytes int64) *Handler {
	decoder := schema.NewDecoder()
	decoder.IgnoreUnknownKeys(true)

	return &Handler{
		users:          users,
		offers:         offers,
		payments:       payments,
		maxUploadBytes: maxUploadBytes,
		decoder:        decoder,
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

type errorResponse struct {
	Error string `json:"error"`
}

type messageResponse struct {
	Message string `json:"message"`
}

func writeError(w http.ResponseWriter, r *http.Request, status int, err error) {
	if status >= http.StatusInternalServerError {
		logging.FromContext(r.Context()).Error("request failed", "error", err)
	}
	writeJSON(w, status, errorResponse{Error: err.Error()})
}

// decodeForm fills dst from a multipart, urlencoded or JSON body.
func (h *Handler) decodeForm(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadBytes)

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	var values url.Values
	switch mediaType {
	case "multipart/form-data":
		if err := r.ParseMultipartForm(h.maxUploadBytes); err != nil {
			return fmt.Errorf("invalid form: %w", err)
		}
		values = r.PostForm
	case "application/json":
		var err error
		if values, err = jsonValues(r.Body); err != nil {
			return err
		}
	default:
		if err := r.ParseForm(); err != nil {
			return fmt.Errorf("invalid form: %w", err)
		}
		values = r.PostForm
	}

	if err := h.decoder.Decode(dst, values); err != nil {
		return fmt.Errorf("invalid form: %w", err)
	}
	return nil
}

// jsonValues flattens a JSON object of scalars into form values.
func jsonValues(body io.Reader) (url.Values, error) {
	var fields map[string]any
	if err := json.NewDecoder(body).Decode(&fields); err != nil {
		if errors.Is(err, io.EOF) {
			return url.Values{}, nil
		}
		return nil, fmt.Errorf("invalid JSON body: %w", err)
	}

	values := url.Values{}
	for k, v := range fields {
		switch v := v.(type) {
		case nil:
		case string:
			values.Set(k, v)
		case float64, bool:
			values.Set(k, fmt.Sprint(v))
		default:
			return nil, fmt.Errorf("invalid JSON body: field %q must be a scalar", k)
		}
	}
	return values, nil
}

// formFile returns the named upload, or nil when the request carries none.
func formFile(r *http.Request, field string) (multipart.File, error) {
	if r.MultipartForm == nil {
		return nil, nil
	}
	file, _, err := r.FormFile(field)
	if errors.Is(err, http.ErrMissingFile) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return file, nil
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
