package services

import (
	"context"
	"errors"
	"io"
	"sync"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/vinted-clone/marketplace-backend/internal/models"
	"github.com/vinted-clone/marketplace-backend/internal/store"
)

type fakeUsers struct {
	mu      sync.Mutex
	byEmail map[string]*models.User
	findErr error
	insErr  error
}

func newFakeUsers() *fakeUsers {
	return &fakeUsers{byEmail: map[string]*models.User{}}
}

func (f *fakeUsers) FindByEmail(_ context.Context, email string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.findErr != nil {
		return nil, f.findErr
	}
	u, ok := f.byEmail[email]
	if !ok {
		return nil, store.ErrNotFound
	}
	return u, nil
}

func (f *fakeUsers) Insert(_ context.Context, user *models.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.insErr != nil {
		return f.insErr
	}
	if _, ok := f.byEmail[user.Email]; ok {
		return store.ErrDuplicateUser
	}
	f.byEmail[user.Email] = user
	return nil
}

type fakeUploader struct {
	calls   []string
	content []string
	err     error
}

func (f *fakeUploader) Upload(_ context.Context, file io.Reader, folder string) (*models.Asset, error) {
	f.calls = append(f.calls, folder)
	if f.err != nil {
		return nil, f.err
	}
	data, err := io.ReadAll(file)
	if err != nil {
		return nil, err
	}
	f.content = append(f.content, string(data))
	return &models.Asset{
		PublicID:  folder + "/img",
		SecureURL: "https://img.example.com/" + folder + "/img.jpg",
		Folder:    folder,
	}, nil
}

type fakeOffers struct {
	mu     sync.Mutex
	offers  map[primitive.ObjectID]models.Offer
	last    store.OfferQuery
	updates []store.OfferChanges
}

func newFakeOffers(seed ...models.Offer) *fakeOffers {
	f := &fakeOffers{offers: map[primitive.ObjectID]models.Offer{}}
	for _, o := range seed {
		f.offers[o.ID] = o
	}
	return f
}

func (f *fakeOffers) Insert(_ context.Context, offer *models.Offer) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.offers[offer.ID] = *offer
	return nil
}

func (f *fakeOffers) Search(_ context.Context, q store.OfferQuery) ([]models.Offer, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.last = q
	out := make([]models.Offer, 0)
	for _, o := range f.offers {
		out = append(out, o)
	}
	return out, nil
}

func (f *fakeOffers) Count(_ context.Context, _ store.OfferQuery) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return int64(len(f.offers)), nil
}

func (f *fakeOffers) FindByID(_ context.Context, id string) (*models.Offer, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, store.ErrNotFound
	}
	o, ok := f.offers[oid]
	if !ok {
		return nil, store.ErrNotFound
	}
	return &o, nil
}

func (f *fakeOffers) FindOwned(ctx context.Context, id string, owner primitive.ObjectID) (*models.Offer, error) {
	o, err := f.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if o.Owner.ID != owner {
		return nil, store.ErrNotFound
	}
	return o, nil
}

func (f *fakeOffers) UpdateOwned(_ context.Context, id, owner primitive.ObjectID, changes store.OfferChanges) (*models.Offer, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	cur, ok := f.offers[id]
	if !ok || cur.Owner.ID != owner {
		return nil, store.ErrNotFound
	}
	f.updates = append(f.updates, changes)
	changes.Apply(&cur)
	f.offers[id] = cur
	return &cur, nil
}

func (f *fakeOffers) DeleteOwned(ctx context.Context, id string, owner primitive.ObjectID) (*models.Offer, error) {
	o, err := f.FindOwned(ctx, id, owner)
	if err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.offers, o.ID)
	return o, nil
}

var errBoom = errors.New("boom")
