package book

import (
	"fmt"

	"github.com/taibuivan/librarium/internal/catalog/author"
	"github.com/taibuivan/librarium/internal/catalog/comment"
	"github.com/taibuivan/librarium/internal/catalog/genre"
	"github.com/taibuivan/librarium/internal/platform/page"
)

type Book struct {
	ID       int64             `json:"id"`
	Title    string            `json:"title"`
	Author   *author.Author    `json:"author"`
	Genres   []genre.Genre     `json:"genres"`
	Comments []comment.Comment `json:"comments"`
}

// Details is everything the book card shows.
type Details struct {
	Book     Book
	Comments []comment.Comment
}

// Options are the choices of the book form.
type Options struct {
	Authors []author.Author
	Genres  []genre.Genre
}

type Input struct {
	Title    string
	AuthorID int64
	GenreIDs []int64
}

type Payload struct {
	Title    string  `json:"title"`
	AuthorID int64   `json:"authorId"`
	GenreIDs []int64 `json:"genreIds"`
}

const (
	FieldTitle    = "title"
	FieldAuthorID = "authorId"
	FieldGenreIDs = "genreIds"
)

const listURL = "/books"

var (
	listBinding = page.Binding{Name: "books", Banner: true}
	formBinding = page.Binding{Name: "book-form", Fields: []string{FieldTitle, FieldAuthorID, FieldGenreIDs}}
)

func detailsURL(id int64) string { return fmt.Sprintf("%s/%d/details", listURL, id) }
func editURL(id int64) string    { return fmt.Sprintf("%s/%d/edit", listURL, id) }
func deleteURL(id int64) string  { return fmt.Sprintf("%s/%d/delete", listURL, id) }

func genreDeleteURL(bookID, genreID int64) string {
	return fmt.Sprintf("%s/genres/%d/delete", detailsURL(bookID), genreID)
}

func commentDeleteURL(bookID, commentID int64) string {
	return fmt.Sprintf("%s/comments/%d/delete", detailsURL(bookID), commentID)
}
