package domain

import "time"

// User is an authenticated account of the app.
type User struct {
	ID             string    `bson:"_id" json:"id"`
	Email          string    `bson:"email" json:"email"`
	Name           string    `bson:"name" json:"name"`
	GoogleID       string    `bson:"googleId,omitempty" json:"googleId"`
	ProfilePicture string    `bson:"profilePicture,omitempty" json:"profilePicture,omitempty"`
	PictureKey     string    `bson:"pictureKey,omitempty" json:"-"`     // Object key of an uploaded picture
	PendingPicture string    `bson:"pendingPicture,omitempty" json:"-"` // Key handed out for an upload not yet seen
	PasswordHash   string    `bson:"passwordHash,omitempty" json:"-"`   // Only for email/password accounts
	CreatedAt      time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt      time.Time `bson:"updatedAt" json:"updatedAt"`
}

// AuthResponse is returned by every sign-in endpoint.
type AuthResponse struct {
	AccessToken string `json:"access_token"`
	User        User   `json:"user"`
}

// GoogleSignIn is the body of POST /auth/google/verify.
// IDToken is the identity-provider token; the profile fields are hints used
// only when the token does not carry them.
type GoogleSignIn struct {
	IDToken        string `json:"idToken"`
	GoogleID       string `json:"googleId,omitempty"`
	Email          string `json:"email,omitempty"`
	Name           string `json:"name,omitempty"`
	ProfilePicture string `json:"profilePicture,omitempty"`
}

// Credentials is the body of the email/password endpoints.
type Credentials struct {
	Name     string `json:"name,omitempty"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// PictureUpload tells the client where to PUT a new profile picture.
type PictureUpload struct {
	UploadURL   string `json:"uploadUrl"`
	ObjectKey   string `json:"objectKey"`
	ContentType string `json:"contentType"`
}
