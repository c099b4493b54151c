package comment

import (
	"fmt"

	"github.com/taibuivan/librarium/internal/platform/page"
)

type Comment struct {
	ID        int64  `json:"id"`
	Text      string `json:"text"`
	BookID    int64  `json:"bookId,omitempty"`
	BookTitle string `json:"bookTitle,omitempty"`
}

// BookRef is the part of a book shown above its comments.
type BookRef struct {
	ID    int64  `json:"id"`
	Title string `json:"title"`
}

// Thread is the comment list of one book.
type Thread struct {
	Book     *BookRef
	Comments []Comment
}

type Input struct {
	Text string
}

type Payload struct {
	Text string `json:"text"`
}

const FieldText = "text"

// Query parameter naming the book of a list delete.
const queryBookID = "bookId"

var (
	listBinding = page.Binding{Name: "comments", Banner: true}
	formBinding = page.Binding{Name: "comment-form", Fields: []string{FieldText}}
)

// ListURL is the comment list of a book.
func ListURL(bookID int64) string { return fmt.Sprintf("/books/%d/comments", bookID) }

// DetailsURL is the card of one comment.
func DetailsURL(bookID, commentID int64) string {
	return fmt.Sprintf("%s/%d/details", ListURL(bookID), commentID)
}

func editURL(bookID, commentID int64) string {
	return fmt.Sprintf("%s/%d/edit", ListURL(bookID), commentID)
}

func deleteURL(bookID, commentID int64) string {
	return fmt.Sprintf("%s/%d/delete", ListURL(bookID), commentID)
}

func listDeleteURL(bookID, commentID int64) string {
	return page.WithQuery(fmt.Sprintf("/comments/%d/delete", commentID), queryBookID, fmt.Sprint(bookID))
}
