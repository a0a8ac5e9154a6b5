package store

import (
	"context"
	"errors"
	"fmt"
	"regexp"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/vinted-clone/marketplace-backend/internal/database"
	"github.com/vinted-clone/marketplace-backend/internal/models"
)

// OfferQuery is a listing search translated from request parameters.
type OfferQuery struct {
	Title     string   // case-insensitive substring of the description
	PriceMin  *float64 // inclusive
	PriceMax  *float64 // inclusive
	SortPrice int      // 1 ascending, -1 descending, 0 natural order
	Skip      int64
	Limit     int64
}

// Filter ignores pagination and sort so it can also drive the count.
func (q OfferQuery) Filter() bson.M {
	filter := bson.M{}
	if q.Title != "" {
		filter["product_description"] = bson.M{"$regex": regexp.QuoteMeta(q.Title), "$options": "i"}
	}
	price := bson.M{}
	if q.PriceMin != nil {
		price["$gte"] = *q.PriceMin
	}
	if q.PriceMax != nil {
		price["$lte"] = *q.PriceMax
	}
	if len(price) > 0 {
		filter["product_price"] = price
	}
	return filter
}

// Pipeline is the aggregation used by Search: match, sort, page, then populate owners.
func (q OfferQuery) Pipeline() mongo.Pipeline {
	pipeline := mongo.Pipeline{{{Key: "$match", Value: q.Filter()}}}
	if q.SortPrice != 0 {
		pipeline = append(pipeline, bson.D{{Key: "$sort", Value: bson.D{
			{Key: "product_price", Value: q.SortPrice},
			{Key: "_id", Value: 1},
		}}})
	}
	if q.Skip > 0 {
		pipeline = append(pipeline, bson.D{{Key: "$skip", Value: q.Skip}})
	}
	if q.Limit > 0 {
		pipeline = append(pipeline, bson.D{{Key: "$limit", Value: q.Limit}})
	}
	return append(pipeline, populateOwner()...)
}

func populateOwner() mongo.Pipeline {
	return mongo.Pipeline{
		{{Key: "$lookup", Value: bson.D{
			{Key: "from", Value: database.UsersCollection},
			{Key: "localField", Value: "owner"},
			{Key: "foreignField", Value: "_id"},
			{Key: "as", Value: "owner"},
		}}},
		{{Key: "$unwind", Value: bson.D{
			{Key: "path", Value: "$owner"},
			{Key: "preserveNullAndEmptyArrays", Value: true},
		}}},
		{{Key: "$project", Value: bson.D{
			{Key: "owner.hash", Value: 0},
			{Key: "owner.salt", Value: 0},
			{Key: "owner.token", Value: 0},
		}}},
	}
}

type OfferStore struct {
	coll *mongo.Collection
}

func NewOfferStore(db *mongo.Database) *OfferStore {
	return &OfferStore{coll: db.Collection(database.OffersCollection)}
}

func (s *OfferStore) Insert(ctx context.Context, offer *models.Offer) error {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	if _, err := s.coll.InsertOne(ctx, offer); err != nil {
		return fmt.Errorf("insert offer: %w", err)
	}
	return nil
}

func (s *OfferStore) Search(ctx context.Context, q OfferQuery) ([]models.Offer, error) {
	return s.aggregate(ctx, q.Pipeline())
}

func (s *OfferStore) Count(ctx context.Context, q OfferQuery) (int64, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	n, err := s.coll.CountDocuments(ctx, q.Filter())
	if err != nil {
		return 0, fmt.Errorf("count offers: %w", err)
	}
	return n, nil
}

// FindByID returns the offer with its owner populated.
func (s *OfferStore) FindByID(ctx context.Context, id string) (*models.Offer, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}
	pipeline := append(mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"_id": oid}}},
		{{Key: "$limit", Value: 1}},
	}, populateOwner()...)

	offers, err := s.aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	if len(offers) == 0 {
		return nil, ErrNotFound
	}
	return &offers[0], nil
}

// FindOwned returns the offer only when owner owns it.
func (s *OfferStore) FindOwned(ctx context.Context, id string, owner primitive.ObjectID) (*models.Offer, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	var offer models.Offer
	err = s.coll.FindOne(ctx, bson.M{"_id": oid, "owner": owner}).Decode(&offer)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find offer: %w", err)
	}
	return &offer, nil
}

// OfferChanges lists the fields an update sets. Nil fields keep their stored value.
type OfferChanges struct {
	Name        *string
	Description *string
	Price       *float64
	Details     *models.ProductDetails // written as a whole array
	Image       *models.Asset
}

func (c OfferChanges) Empty() bool {
	return c.Name == nil && c.Description == nil && c.Price == nil && c.Details == nil && c.Image == nil
}

// Set is the $set document for the supplied fields only.
func (c OfferChanges) Set() bson.D {
	set := bson.D{}
	if c.Name != nil {
		set = append(set, bson.E{Key: "product_name", Value: *c.Name})
	}
	if c.Description != nil {
		set = append(set, bson.E{Key: "product_description", Value: *c.Description})
	}
	if c.Price != nil {
		set = append(set, bson.E{Key: "product_price", Value: *c.Price})
	}
	if c.Details != nil {
		set = append(set, bson.E{Key: "product_details", Value: *c.Details})
	}
	if c.Image != nil {
		set = append(set, bson.E{Key: "product_image", Value: c.Image})
	}
	return set
}

// Apply mirrors Set on an in-memory offer.
func (c OfferChanges) Apply(offer *models.Offer) {
	if c.Name != nil {
		offer.ProductName = *c.Name
	}
	if c.Description != nil {
		offer.ProductDescription = *c.Description
	}
	if c.Price != nil {
		price := *c.Price
		offer.ProductPrice = &price
	}
	if c.Details != nil {
		offer.ProductDetails = *c.Details
	}
	if c.Image != nil {
		offer.ProductImage = c.Image
	}
}

// UpdateOwned sets the changed fields on the owner's offer and returns the stored version.
// Fields outside changes, including ones this package does not model, are left untouched.
func (s *OfferStore) UpdateOwned(ctx context.Context, id, owner primitive.ObjectID, changes OfferChanges) (*models.Offer, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	filter := bson.M{"_id": id, "owner": owner}
	update := bson.D{{Key: "$set", Value: changes.Set()}}

	var updated models.Offer
	err := s.coll.FindOneAndUpdate(ctx, filter, update, opts).Decode(&updated)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("update offer: %w", err)
	}
	return &updated, nil
}

func (s *OfferStore) DeleteOwned(ctx context.Context, id string, owner primitive.ObjectID) (*models.Offer, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	var deleted models.Offer
	err = s.coll.FindOneAndDelete(ctx, bson.M{"_id": oid, "owner": owner}).Decode(&deleted)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("delete offer: %w", err)
	}
	return &deleted, nil
}

func (s *OfferStore) aggregate(ctx context.Context, pipeline mongo.Pipeline) ([]models.Offer, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	cursor, err := s.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("aggregate offers: %w", err)
	}
	defer cursor.Close(ctx)

	offers := make([]models.Offer, 0)
	if err := cursor.All(ctx, &offers); err != nil {
		return nil, fmt.Errorf("decode offers: %w", err)
	}
	return offers, nil
}
