package metadata

// Result is the link preview record returned for a URL.
type Result struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Favicon     string `json:"favicon"`
	OGImage     string `json:"ogImage"`
	URL         string `json:"url"`
}

// Page is a fetched HTML document with its body already decoded to UTF-8.
type Page struct {
	Body        []byte
	ContentType string
	FinalURL    string
}
