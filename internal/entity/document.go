package entity

// Document is one fetched article before scoring. Ephemeral: only Content
// feeds the classifiers, the rest is carried through into storage.
type Document struct {
	Title       string `json:"title"`
	Content     string `json:"content"`
	Description string `json:"description"`
	URL         string `json:"url"`
	Source      string `json:"source"`
	Author      string `json:"author"`
	PublishedAt string `json:"published_at"`
}
