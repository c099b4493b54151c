package author

import "github.com/taibuivan/librarium/internal/platform/page"

// Author is a writer as served by the catalog API.
type Author struct {
	ID       int64  `json:"id"`
	FullName string `json:"fullName"`
}

// Book is the part of a book shown next to its author.
type Book struct {
	ID    int64  `json:"id"`
	Title string `json:"title"`
}

// Row is one line of the author list.
type Row struct {
	Author Author
	Books  []Book
}

// Details is everything the author card shows.
type Details struct {
	Author Author
	Books  []Book
}

// Input is a submitted author form.
type Input struct {
	FullName string
}

// Payload is the JSON body of a create or update.
type Payload struct {
	FullName string `json:"fullName"`
}

// Global field names for validation
const (
	FieldFullName = "fullName"
)

const listURL = "/authors"

var (
	listBinding = page.Binding{Name: "authors", Banner: true}
	formBinding = page.Binding{Name: "author-form", Fields: []string{FieldFullName}}
)
