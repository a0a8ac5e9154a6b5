package models

import (
	"encoding/json"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsontype"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Offer struct {
	ID                 primitive.ObjectID `bson:"_id" json:"_id"`
	ProductName        string             `bson:"product_name,omitempty" json:"product_name,omitempty"`
	ProductDescription string             `bson:"product_description,omitempty" json:"product_description,omitempty"`
	ProductPrice       *float64           `bson:"product_price,omitempty" json:"product_price,omitempty"`
	ProductDetails     ProductDetails     `bson:"product_details" json:"product_details"`
	ProductImage       *Asset             `bson:"product_image,omitempty" json:"product_image,omitempty"`
	Owner              OwnerRef           `bson:"owner" json:"owner"`
}

// detailLabels are the wire keys of the five detail slots, in slot order.
// Existing documents and clients depend on this exact text.
var detailLabels = [5]string{"MARQUE", "TAILLE", "ÉTAT", "COULEUR", "EMPLACEMENT"}

// ProductDetails is the fixed five-slot detail list of an offer. On the wire it
// is an array of single-key documents; an unset slot is an empty document.
type ProductDetails struct {
	Brand     *string
	Size      *string
	Condition *string
	Color     *string
	Location  *string
}

func (d *ProductDetails) slots() [5]**string {
	return [5]**string{&d.Brand, &d.Size, &d.Condition, &d.Color, &d.Location}
}

// Merge overwrites the slots set in patch and reports whether any slot was set.
func (d *ProductDetails) Merge(patch ProductDetails) bool {
	changed := false
	dst := d.slots()
	for i, src := range patch.slots() {
		if *src != nil {
			*dst[i] = *src
			changed = true
		}
	}
	return changed
}

func (d ProductDetails) wire() []map[string]string {
	out := make([]map[string]string, 0, len(detailLabels))
	for i, slot := range d.slots() {
		entry := map[string]string{}
		if *slot != nil {
			entry[detailLabels[i]] = **slot
		}
		out = append(out, entry)
	}
	return out
}

func (d ProductDetails) MarshalBSONValue() (bsontype.Type, []byte, error) {
	arr := make(bson.A, 0, len(detailLabels))
	for _, entry := range d.wire() {
		doc := bson.D{}
		for k, v := range entry {
			doc = append(doc, bson.E{Key: k, Value: v})
		}
		arr = append(arr, doc)
	}
	return bson.MarshalValue(arr)
}

// UnmarshalBSONValue decodes slots by position and ignores the label text.
func (d *ProductDetails) UnmarshalBSONValue(t bsontype.Type, data []byte) error {
	*d = ProductDetails{}
	switch t {
	case bsontype.Null, bsontype.Undefined:
		return nil
	case bsontype.Array:
	default:
		return fmt.Errorf("cannot decode %s into ProductDetails", t)
	}

	var entries []bson.M
	if err := bson.UnmarshalValue(t, data, &entries); err != nil {
		return err
	}
	slots := d.slots()
	for i, entry := range entries {
		if i >= len(slots) {
			break
		}
		for _, v := range entry {
			if v == nil {
				continue
			}
			s, ok := v.(string)
			if !ok {
				s = fmt.Sprint(v)
			}
			*slots[i] = &s
		}
	}
	return nil
}

func (d ProductDetails) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.wire())
}

// OwnerRef references the offer's owner and carries the full user record when populated.
type OwnerRef struct {
	ID   primitive.ObjectID
	User *User
}

// Populated builds a reference that renders as the given user.
func Populated(u *User) OwnerRef {
	return OwnerRef{ID: u.ID, User: u}
}

func (o OwnerRef) MarshalBSONValue() (bsontype.Type, []byte, error) {
	return bson.MarshalValue(o.ID)
}

// UnmarshalBSONValue accepts a bare ObjectID or the embedded user document a $lookup produces.
func (o *OwnerRef) UnmarshalBSONValue(t bsontype.Type, data []byte) error {
	*o = OwnerRef{}
	switch t {
	case bsontype.Null, bsontype.Undefined:
		return nil
	case bsontype.ObjectID:
		return bson.UnmarshalValue(t, data, &o.ID)
	case bsontype.EmbeddedDocument:
		var u User
		if err := bson.Unmarshal(data, &u); err != nil {
			return err
		}
		o.ID = u.ID
		o.User = &u
		return nil
	default:
		return fmt.Errorf("cannot decode %s into OwnerRef", t)
	}
}

func (o OwnerRef) MarshalJSON() ([]byte, error) {
	if o.User != nil {
		return json.Marshal(o.User)
	}
	return json.Marshal(o.ID)
}
