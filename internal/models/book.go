package models

// Book represents a catalog entry. Books are keyed by their ISBN, not by a
// surrogate id, and always reference an existing author.
type Book struct {
	ISBN         string  `json:"isbn"`
	Title        string  `json:"title"`
	AuthorID     int     `json:"authorId"`
	EditionYear  int     `json:"editionYear"`
	EditionPrice float64 `json:"editionPrice"`
}
