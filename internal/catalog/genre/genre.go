package genre

import "github.com/taibuivan/librarium/internal/platform/page"

type Genre struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type Input struct {
	Name string
}

type Payload struct {
	Name string `json:"name"`
}

const FieldName = "name"

const listURL = "/genres"

var (
	listBinding = page.Binding{Name: "genres", Banner: true}
	formBinding = page.Binding{Name: "genre-form", Fields: []string{FieldName}}
)
