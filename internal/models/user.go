package models

import "time"

// User is a stored credential record.
// PasswordHash is the bcrypt digest of the login password. The legacy listing
// endpoint serializes it (kept for wire compatibility), hence no json:"-".
type User struct {
	ID           string    `bson:"_id,omitempty" json:"id"`
	Email        string    `bson:"email" json:"email"`
	PasswordHash string    `bson:"password" json:"password"`
	CreatedAt    time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time `bson:"updatedAt" json:"updatedAt"`
}

// Claims is the identity payload embedded in an access token.
type Claims struct {
	Subject string `json:"sub"`
	Email   string `json:"email"`
}
