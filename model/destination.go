package model

import "errors"

// Destination identifies the site a payload is being crossposted to.
// Only the services that talk to the site look inside it.
type Destination struct {
	Handle string `json:"handle"`
	URL    string `json:"url,omitempty"`
}

// ErrDestinationInvalid means the destination itself can't be used (unknown site,
// rejected credentials). Unlike a missing attachment or post, it aborts the whole payload.
var ErrDestinationInvalid = errors.New("destination invalid")
