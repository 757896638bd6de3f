package entity

import (
	"time"
)

type User struct {
	ID        string `json:"id" firestore:"id"`
	Email     string `json:"email" firestore:"email"`
	FullName  string `json:"full_name,omitempty" firestore:"fullName,omitempty"`
	Bio       string `json:"bio,omitempty" firestore:"bio,omitempty"`
	Phone     string `json:"phone,omitempty" firestore:"phone,omitempty"`
	AvatarURL string `json:"avatar_url,omitempty" firestore:"avatarURL,omitempty"`

	CreatedAt time.Time `json:"created_at" firestore:"createdAt"`
	UpdatedAt time.Time `json:"updated_at" firestore:"updatedAt"`
}

// DisplayName is what other users see in conversation lists and ratings.
func (u *User) DisplayName() string {
	if u.FullName != "" {
		return u.FullName
	}
	return u.Email
}
