// Package wordpress talks to a destination site's REST API.
package wordpress

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"time"

	"github.com/dghubble/oauth1"
	"github.com/pkg/errors"
	"github.com/truemediaorg/crosspostfields/model"
)

type Credentials struct {
	// Application password, used for the core endpoints
	UserName            string
	ApplicationPassword string
	// Commerce REST API keys
	ConsumerKey    string
	ConsumerSecret string
}

type Client struct {
	baseURL     string
	credentials Credentials
	// signs commerce requests when the site isn't served over https
	signed     bool
	HTTPClient *http.Client
	// Used for the commerce endpoints
	CommerceClient *http.Client
}

func NewClient(ctx context.Context, baseURL url.URL, credentials Credentials, timeout time.Duration) *Client {
	httpClient := &http.Client{Timeout: timeout}
	client := &Client{
		baseURL:        baseURL.String(),
		credentials:    credentials,
		HTTPClient:     httpClient,
		CommerceClient: httpClient,
	}
	// The commerce API only accepts its keys as basic auth over https.
	// Plain http needs one-legged OAuth 1.0a signatures instead.
	if baseURL.Scheme == "http" && credentials.ConsumerKey != "" {
		config := oauth1.NewConfig(credentials.ConsumerKey, credentials.ConsumerSecret)
		ctx = context.WithValue(ctx, oauth1.HTTPClient, httpClient)
		client.CommerceClient = config.Client(ctx, oauth1.NewToken("", ""))
		client.signed = true
	}
	return client
}

// UploadMedia creates a media item on the site from the file in body.
func (c *Client) UploadMedia(ctx context.Context, fileName string, mimeType string, body io.Reader) (*Media, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/wp-json/wp/v2/media", body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", mimeType)
	req.Header.Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": fileName}))
	req.SetBasicAuth(c.credentials.UserName, c.credentials.ApplicationPassword)

	var media Media
	if err := c.do(c.HTTPClient, req, &media); err != nil {
		return nil, errors.Wrapf(err, "uploading %s", fileName)
	}
	return &media, nil
}

// FindProductBySKU returns the ID of the product with the given SKU, or 0.
func (c *Client) FindProductBySKU(ctx context.Context, sku string) (int64, error) {
	u, err := url.Parse(c.baseURL + "/wp-json/wc/v3/products")
	if err != nil {
		return 0, err
	}
	q := u.Query()
	q.Add("sku", sku)
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return 0, err
	}
	if !c.signed {
		req.SetBasicAuth(c.credentials.ConsumerKey, c.credentials.ConsumerSecret)
	}

	var products []Product
	if err := c.do(c.CommerceClient, req, &products); err != nil {
		return 0, errors.Wrapf(err, "looking up sku %s", sku)
	}
	if len(products) == 0 {
		return 0, nil
	}
	return products[0].ID, nil
}

// CurrentUser returns the user the application password belongs to.
func (c *Client) CurrentUser(ctx context.Context) (*User, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/wp-json/wp/v2/users/me", nil)
	if err != nil {
		return nil, err
	}
	req.SetBasicAuth(c.credentials.UserName, c.credentials.ApplicationPassword)

	var user User
	if err := c.do(c.HTTPClient, req, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// Download fetches a file, normally from the source site. The caller closes the body.
func (c *Client) Download(ctx context.Context, fileURL string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fileURL, nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("downloading %s: status %d", fileURL, resp.StatusCode)
	}
	return resp.Body, nil
}

func (c *Client) do(httpClient *http.Client, req *http.Request, out any) error {
	resp, err := httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	if resp.StatusCode >= http.StatusBadRequest {
		apiError := &APIError{StatusCode: resp.StatusCode}
		// The body is usually a JSON error but a proxy may have answered instead
		_ = json.Unmarshal(body, apiError)
		if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
			return errors.Wrap(model.ErrDestinationInvalid, apiError.Error())
		}
		return apiError
	}

	if err = json.Unmarshal(body, out); err != nil {
		return err
	}
	return nil
}
