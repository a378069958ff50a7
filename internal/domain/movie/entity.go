package movie

import "errors"

// ErrNotFound indicates a movie could not be located.
var ErrNotFound = errors.New("movie not found")

// Genre is the genre sub-document embedded in a movie.
type Genre struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// Director is the director sub-document embedded in a movie.
type Director struct {
	Name string `json:"name"`
	Bio  string `json:"bio"`
}

// Movie captures a catalog entry. The API never mutates movies; the catalog
// is seeded out-of-band.
type Movie struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Genre       Genre    `json:"genre"`
	Director    Director `json:"director"`
	Actors      []string `json:"actors"`
	ImagePath   string   `json:"imagePath,omitempty"`
	Featured    bool     `json:"featured"`
}
