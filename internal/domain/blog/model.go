package blog

// PostMeta is the frontmatter summary shown in post listings.
type PostMeta struct {
	Slug        string `json:"slug"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Date        string `json:"date"`
}

// Post is a single post with its markdown body.
type Post struct {
	PostMeta
	Content string `json:"content"`
}
