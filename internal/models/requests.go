package models

// LoginRequest contains the credentials submitted to the login endpoint
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponse contains the session token and the authenticated user
type LoginResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

// CreateUserRequest contains the fields for creating a user account
type CreateUserRequest struct {
	Username   string `json:"username"`
	Password   string `json:"password"`
	UserTypeID int    `json:"userTypeId"`
}

// CreateAuthorRequest contains the fields for creating an author
type CreateAuthorRequest struct {
	Surname    string `json:"surname"`
	GivenNames string `json:"givenNames"`
	BirthDate  string `json:"birthDate"`
}

// CreateBookRequest contains the fields for creating a book
type CreateBookRequest struct {
	ISBN         string  `json:"isbn"`
	Title        string  `json:"title"`
	AuthorID     int     `json:"authorId"`
	EditionYear  int     `json:"editionYear"`
	EditionPrice float64 `json:"editionPrice"`
}
