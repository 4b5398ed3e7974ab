package entities

type Post struct {
	Id      int    `json:"id"`
	Title   string `json:"title"`
	Content string `json:"content"`
}

func NewPost(id int, title, content string) *Post {
	return &Post{
		Id:      id,
		Title:   title,
		Content: content,
	}
}

// PostPatch carries the fields of a partial update. A nil field was either
// absent from the request or explicitly null and is left untouched.
type PostPatch struct {
	Title   *string `json:"title"`
	Content *string `json:"content"`
}

// Apply writes every non-nil field of the patch onto p.
func (pp PostPatch) Apply(p *Post) {
	if pp.Title != nil {
		p.Title = *pp.Title
	}
	if pp.Content != nil {
		p.Content = *pp.Content
	}
}
