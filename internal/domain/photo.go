package domain

import "time"

type User struct {
	ID             int64     `json:"id"`
	FullName       string    `json:"fullName"`
	Email          string    `json:"email"`
	ProfilePicture string    `json:"profilePicture,omitempty"`
	CreatedAt      time.Time `json:"createdAt"`
}

type Author struct {
	ID             int64  `json:"id"`
	FullName       string `json:"fullName"`
	ProfilePicture string `json:"profilePicture,omitempty"`
}

type Photo struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	ImageURL    string    `json:"imageUrl"`
	UserID      int64     `json:"userId"`
	Author      Author    `json:"author"`
	LikesCount  int       `json:"likesCount"`
	IsLiked     bool      `json:"isLiked"`
	IsFavorited bool      `json:"isFavorited"`
	CreatedAt   time.Time `json:"createdAt"`
}

// IsOwnedBy reports whether the photo was uploaded by userID.
func (p Photo) IsOwnedBy(userID int64) bool {
	return userID != 0 && p.UserID == userID
}

type PhotoPage struct {
	Photos     []Photo    `json:"data"`
	Pagination Pagination `json:"pagination"`
}

// PhotoUpdate is pushed over the live channel when a photo's state changes
// for the connected user.
type PhotoUpdate struct {
	Type       string `json:"type"`
	PhotoID    int64  `json:"photoId"`
	Liked      bool   `json:"liked"`
	LikesCount int    `json:"likesCount"`
	Favorited  bool   `json:"favorited"`
}

const PhotoUpdatedMessage = "photo_updated"

// ClientMessage is sent by the client over the live channel.
type ClientMessage struct {
	Type string `json:"type"`
	JWT  string `json:"jwt,omitempty"`
}

type ErrorMessage struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}
