package models

// Author represents a book author
type Author struct {
	ID         int    `json:"id"`
	Surname    string `json:"surname"`
	GivenNames string `json:"givenNames"`
	// BirthDate is stored exactly as provided by the caller (e.g. "1927-03-06")
	BirthDate string `json:"birthDate"`
}
