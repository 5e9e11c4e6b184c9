package wordpress

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/truemediaorg/crosspostfields/model"
)

var credentials = Credentials{
	UserName:            "crossposter",
	ApplicationPassword: "abcd efgh ijkl",
	ConsumerKey:         "ck_123",
	ConsumerSecret:      "cs_456",
}

func newTestClient(t *testing.T, server *httptest.Server) *Client {
	baseURL, err := url.Parse(server.URL)
	require.NoError(t, err)
	client := NewClient(context.TODO(), *baseURL, credentials, 5*time.Second)
	if baseURL.Scheme == "https" {
		client.HTTPClient = server.Client()
		client.CommerceClient = server.Client()
	}
	return client
}

func TestUploadMedia(t *testing.T) {
	t.Run("posts the file with its name and type", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "/wp-json/wp/v2/media", r.URL.Path)
			assert.Equal(t, "image/jpeg", r.Header.Get("Content-Type"))
			assert.Equal(t, `attachment; filename=cover.jpg`, r.Header.Get("Content-Disposition"))
			user, password, ok := r.BasicAuth()
			assert.True(t, ok)
			assert.Equal(t, credentials.UserName, user)
			assert.Equal(t, credentials.ApplicationPassword, password)
			body, _ := io.ReadAll(r.Body)
			assert.Equal(t, "jpeg bytes", string(body))

			w.WriteHeader(http.StatusCreated)
			io.WriteString(w, `{"id": 99, "source_url": "https://dest.test/uploads/cover.jpg", "mime_type": "image/jpeg"}`)
		}))
		defer server.Close()

		media, err := newTestClient(t, server).UploadMedia(context.TODO(), "cover.jpg", "image/jpeg", strings.NewReader("jpeg bytes"))
		require.NoError(t, err)
		assert.Equal(t, int64(99), media.ID)
		assert.Equal(t, "https://dest.test/uploads/cover.jpg", media.SourceURL)
	})

	t.Run("rejected credentials mean the destination is invalid", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
			io.WriteString(w, `{"code": "rest_not_logged_in", "message": "You are not currently logged in.", "data": {"status": 401}}`)
		}))
		defer server.Close()

		_, err := newTestClient(t, server).UploadMedia(context.TODO(), "cover.jpg", "image/jpeg", strings.NewReader("x"))
		assert.ErrorIs(t, err, model.ErrDestinationInvalid)
		assert.Contains(t, err.Error(), "rest_not_logged_in")
	})

	t.Run("other failures are API errors", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
			io.WriteString(w, "<html>bad gateway</html>")
		}))
		defer server.Close()

		_, err := newTestClient(t, server).UploadMedia(context.TODO(), "cover.jpg", "image/jpeg", strings.NewReader("x"))
		require.Error(t, err)
		assert.NotErrorIs(t, err, model.ErrDestinationInvalid)
		assert.Contains(t, err.Error(), "502")
	})
}

func TestFindProductBySKU(t *testing.T) {
	t.Run("signs requests to plain http sites", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/wp-json/wc/v3/products", r.URL.Path)
			assert.Equal(t, "TSHIRT-1", r.URL.Query().Get("sku"))
			assert.True(t, strings.HasPrefix(r.Header.Get("Authorization"), "OAuth "))
			assert.Contains(t, r.Header.Get("Authorization"), `oauth_consumer_key="ck_123"`)
			io.WriteString(w, `[{"id": 501, "sku": "TSHIRT-1"}]`)
		}))
		defer server.Close()

		id, err := newTestClient(t, server).FindProductBySKU(context.TODO(), "TSHIRT-1")
		require.NoError(t, err)
		assert.Equal(t, int64(501), id)
	})

	t.Run("uses basic auth over https", func(t *testing.T) {
		server := httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, password, ok := r.BasicAuth()
			assert.True(t, ok)
			assert.Equal(t, credentials.ConsumerKey, user)
			assert.Equal(t, credentials.ConsumerSecret, password)
			io.WriteString(w, `[]`)
		}))
		defer server.Close()

		id, err := newTestClient(t, server).FindProductBySKU(context.TODO(), "TSHIRT-1")
		require.NoError(t, err)
		assert.Equal(t, int64(0), id)
	})
}

func TestDownload(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/missing.jpg" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		io.WriteString(w, "file contents")
	}))
	defer server.Close()
	client := newTestClient(t, server)

	t.Run("returns the body", func(t *testing.T) {
		body, err := client.Download(context.TODO(), server.URL+"/a.jpg")
		require.NoError(t, err)
		defer body.Close()
		contents, err := io.ReadAll(body)
		require.NoError(t, err)
		assert.Equal(t, "file contents", string(contents))
	})

	t.Run("fails for missing files", func(t *testing.T) {
		_, err := client.Download(context.TODO(), server.URL+"/missing.jpg")
		assert.Error(t, err)
	})
}
