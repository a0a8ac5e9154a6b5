package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/vinted-clone/marketplace-backend/internal/models"
	"github.com/vinted-clone/marketplace-backend/internal/store"
)

const DefaultPageSize = 10

type OfferRepository interface {
	Insert(ctx context.Context, offer *models.Offer) error
	Search(ctx context.Context, q store.OfferQuery) ([]models.Offer, error)
	Count(ctx context.Context, q store.OfferQuery) (int64, error)
	FindByID(ctx context.Context, id string) (*models.Offer, error)
	FindOwned(ctx context.Context, id string, owner primitive.ObjectID) (*models.Offer, error)
	UpdateOwned(ctx context.Context, id, owner primitive.ObjectID, changes store.OfferChanges) (*models.Offer, error)
	DeleteOwned(ctx context.Context, id string, owner primitive.ObjectID) (*models.Offer, error)
}

// OfferInput carries the listing fields of a publish or update request.
// Nil fields were not supplied.
type OfferInput struct {
	Name        *string
	Description *string
	Price       *float64
	Details     models.ProductDetails
	Picture     io.Reader
}

// SearchParams are the raw query parameters of a listing search.
type SearchParams struct {
	Title    string
	PriceMin string
	PriceMax string
	Sort     string
	Page     string
	Limit    string
}

type SearchResult struct {
	Count  int64          `json:"count"`
	Offers []models.Offer `json:"offers"`
}

// NewOfferQuery validates search parameters and translates them into a store query.
func NewOfferQuery(p SearchParams) (store.OfferQuery, error) {
	q := store.OfferQuery{Title: p.Title, Limit: DefaultPageSize}

	var err error
	if q.PriceMin, err = parseOptionalFloat("priceMin", p.PriceMin); err != nil {
		return q, err
	}
	if q.PriceMax, err = parseOptionalFloat("priceMax", p.PriceMax); err != nil {
		return q, err
	}

	switch p.Sort {
	case "":
	case "price-asc":
		q.SortPrice = 1
	case "price-desc":
		q.SortPrice = -1
	default:
		return q, badRequest("sort must be price-asc or price-desc")
	}

	if p.Limit != "" {
		limit, err := strconv.ParseInt(p.Limit, 10, 64)
		if err != nil {
			return q, badRequest("limit must be an integer")
		}
		if limit > 0 {
			q.Limit = limit
		}
	}
	if p.Page != "" {
		page, err := strconv.ParseInt(p.Page, 10, 64)
		if err != nil {
			return q, badRequest("page must be an integer")
		}
		if page > 0 {
			if page-1 > math.MaxInt64/q.Limit {
				return q, badRequest("page is out of range")
			}
			q.Skip = q.Limit * (page - 1)
		}
	}
	return q, nil
}

func parseOptionalFloat(name, raw string) (*float64, error) {
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, badRequest(name + " must be a number")
	}
	return &v, nil
}

func badRequest(msg string) *ValidationError {
	return &ValidationError{Status: 400, Message: msg}
}

type OfferService struct {
	offers     OfferRepository
	uploader   AssetUploader // nil when uploads are not configured
	folderRoot string
}

func NewOfferService(offers OfferRepository, uploader AssetUploader, folderRoot string) *OfferService {
	return &OfferService{
		offers:     offers,
		uploader:   uploader,
		folderRoot: folderRoot,
	}
}

// Publish creates a listing owned by owner. The picture, if any, is uploaded
// under the pre-assigned offer id before the single insert.
func (s *OfferService) Publish(ctx context.Context, owner *models.User, in OfferInput) (*models.Offer, error) {
	offer := &models.Offer{
		ID:    primitive.NewObjectID(),
		Owner: models.Populated(owner),
	}
	s.apply(offer, in)

	if err := s.attachPicture(ctx, offer, in.Picture); err != nil {
		return nil, err
	}
	if err := s.offers.Insert(ctx, offer); err != nil {
		return nil, err
	}
	return offer, nil
}

func (s *OfferService) Search(ctx context.Context, q store.OfferQuery) (*SearchResult, error) {
	offers, err := s.offers.Search(ctx, q)
	if err != nil {
		return nil, err
	}
	count, err := s.offers.Count(ctx, q)
	if err != nil {
		return nil, err
	}
	return &SearchResult{Count: count, Offers: offers}, nil
}

func (s *OfferService) Get(ctx context.Context, id string) (*models.Offer, error) {
	offer, err := s.offers.FindByID(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrOfferNotFound
	}
	return offer, err
}

// Update sets the supplied fields on the caller's offer and leaves the rest of the
// stored document alone. Offers owned by someone else are reported as not found.
func (s *OfferService) Update(ctx context.Context, owner *models.User, id string, in OfferInput) (*models.Offer, error) {
	offer, err := s.offers.FindOwned(ctx, id, owner.ID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrOfferNotFound
	}
	if err != nil {
		return nil, err
	}

	changes := store.OfferChanges{Name: in.Name, Description: in.Description, Price: in.Price}
	details := offer.ProductDetails
	if details.Merge(in.Details) {
		changes.Details = &details
	}
	if in.Picture != nil {
		if changes.Image, err = s.upload(ctx, offer.ID, in.Picture); err != nil {
			return nil, err
		}
	}
	if changes.Empty() {
		return offer, nil
	}

	updated, err := s.offers.UpdateOwned(ctx, offer.ID, owner.ID, changes)
	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrOfferNotFound
	}
	return updated, err
}

func (s *OfferService) Delete(ctx context.Context, owner *models.User, id string) (*models.Offer, error) {
	deleted, err := s.offers.DeleteOwned(ctx, id, owner.ID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrOfferNotFound
	}
	return deleted, err
}

func (s *OfferService) apply(offer *models.Offer, in OfferInput) {
	if in.Name != nil {
		offer.ProductName = *in.Name
	}
	if in.Description != nil {
		offer.ProductDescription = *in.Description
	}
	if in.Price != nil {
		price := *in.Price
		offer.ProductPrice = &price
	}
	offer.ProductDetails.Merge(in.Details)
}

func (s *OfferService) attachPicture(ctx context.Context, offer *models.Offer, picture io.Reader) error {
	if picture == nil {
		return nil
	}
	asset, err := s.upload(ctx, offer.ID, picture)
	if err != nil {
		return err
	}
	offer.ProductImage = asset
	return nil
}

func (s *OfferService) upload(ctx context.Context, id primitive.ObjectID, picture io.Reader) (*models.Asset, error) {
	if s.uploader == nil {
		return nil, ErrUploadsUnavailable
	}
	asset, err := s.uploader.Upload(ctx, picture, OfferFolder(s.folderRoot, id))
	if err != nil {
		return nil, fmt.Errorf("picture: %w", err)
	}
	return asset, nil
}
