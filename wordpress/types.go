package wordpress

import "fmt"

// Media is the part of a wp/v2/media response we use
type Media struct {
	ID        int64  `json:"id"`
	SourceURL string `json:"source_url"`
	MimeType  string `json:"mime_type,omitempty"`
}

type Product struct {
	ID   int64  `json:"id"`
	SKU  string `json:"sku"`
	Name string `json:"name,omitempty"`
}

type User struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

/*
The REST API reports failures as:

	{"code": "rest_forbidden", "message": "Sorry, you are not allowed to do that.", "data": {"status": 403}}

StatusCode is filled from the HTTP response, not the body.
*/
type APIError struct {
	Code       string `json:"code"`
	Message    string `json:"message"`
	StatusCode int    `json:"-"`
}

func (e *APIError) Error() string {
	if e.Code == "" {
		return fmt.Sprintf("wordpress API returned %d", e.StatusCode)
	}
	return fmt.Sprintf("wordpress API returned %d (%s): %s", e.StatusCode, e.Code, e.Message)
}
