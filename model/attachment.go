package model

// Attachment is a media item as it exists on a destination site.
type Attachment struct {
	ID  int64  `json:"id" mapstructure:"id"`
	URL string `json:"url" mapstructure:"url"`
}

// Record is the {id, url} shape media and gallery fields store.
func (a Attachment) Record() map[string]any {
	return map[string]any{
		"id":  a.ID,
		"url": a.URL,
	}
}
