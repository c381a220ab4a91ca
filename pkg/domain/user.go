package domain

// User is a registered account as the user endpoints return it.
type User struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email,omitempty"`
	Image    string `json:"image,omitempty"`
}

// UserPage is one slice of the paginated user listing.
type UserPage struct {
	Content    []User `json:"content"`
	Page       int    `json:"page"`
	Size       int    `json:"size"`
	TotalPages int    `json:"totalPages"`
}
