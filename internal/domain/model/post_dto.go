package model

// CreatePostDTO carries the fields for post creation. OwnerID is a pointer so
// a missing owner is distinguishable from user id zero.
type CreatePostDTO struct {
	Title   string `json:"title"`
	Content string `json:"content"`
	OwnerID *uint  `json:"ownerId"`
}

// UpdatePostDTO carries the mutable fields for a full-replace post update.
type UpdatePostDTO struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}
