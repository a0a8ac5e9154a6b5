package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Account struct {
	Username string `bson:"username" json:"username"`
	Phone    string `bson:"phone" json:"phone"`
	Avatar   *Asset `bson:"avatar" json:"avatar"` // null until an avatar is uploaded
}

// User is a marketplace member. Hash, salt and token never leave the server
// through this type's JSON form; responses that carry the token build it explicitly.
type User struct {
	ID      primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Email   string             `bson:"email,omitempty" json:"email,omitempty"`
	Account Account            `bson:"account" json:"account"`
	Token   string             `bson:"token,omitempty" json:"-"`
	Hash    string             `bson:"hash,omitempty" json:"-"`
	Salt    string             `bson:"salt,omitempty" json:"-"`
}
