// HTTP implementation of the catalog, auth, and collection interfaces.
package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/Flammans/artanova/internal/models"
	"github.com/Flammans/artanova/internal/shared"
)

const defaultBaseURL = "http://localhost:4000"

// Client talks to the Artanova API. It implements [Catalog],
// [Authenticator], and [CollectionAPI].
type Client struct {
	baseURL    string
	httpClient *http.Client
	tokens     TokenSource
}

// NewClient creates a new API client. The token source may be nil for a
// client that only performs unauthorized reads.
func NewClient(baseURL string, client *http.Client, tokens TokenSource) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	if client == nil {
		client = http.DefaultClient
	}

	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: client,
		tokens:     tokens,
	}
}

// apiMessage is the error payload shape the server returns on failures.
type apiMessage struct {
	Message string `json:"message"`
}

// doRequest performs an HTTP request against the API and decodes the JSON
// response into result when it is non-nil. The bearer token is read from the
// token source at call time, never captured earlier.
func (c *Client) doRequest(ctx context.Context, method, endpoint string, body any, result any) error {
	apiURL := c.baseURL + endpoint

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, apiURL, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-Id", shared.GenerateID())
	if c.tokens != nil {
		if token := c.tokens.Token(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if IsCanceled(err) || ctx.Err() != nil {
			return context.Canceled
		}
		return fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		if IsCanceled(err) || ctx.Err() != nil {
			return context.Canceled
		}
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var msg apiMessage
		_ = json.Unmarshal(raw, &msg)
		return &StatusError{Code: resp.StatusCode, Message: msg.Message}
	}

	if result != nil {
		if err := json.Unmarshal(raw, result); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}

	return nil
}

// SearchArtworks fetches one page of artworks for the given parameters.
// Responses are validated at the boundary; a record failing validation
// poisons the whole page rather than passing bad data downstream.
func (c *Client) SearchArtworks(ctx context.Context, params SearchParams) ([]models.Artwork, error) {
	values := url.Values{}
	if params.Search != "" {
		values.Set("search", params.Search)
	}
	if params.Sort != "" {
		values.Set("sort", params.Sort)
	}
	if params.Order != "" {
		values.Set("order", params.Order)
	}
	if len(params.Types) > 0 {
		values.Set("types", strings.Join(params.Types, ","))
	}
	if len(params.Origins) > 0 {
		values.Set("origins", strings.Join(params.Origins, ","))
	}
	if params.Limit > 0 {
		values.Set("limit", strconv.Itoa(params.Limit))
	}
	if params.Cursor > 0 {
		values.Set("cursor", strconv.Itoa(params.Cursor))
	}

	endpoint := "/artworks"
	if encoded := values.Encode(); encoded != "" {
		endpoint += "?" + encoded
	}

	var artworks []models.Artwork
	if err := c.doRequest(ctx, http.MethodGet, endpoint, nil, &artworks); err != nil {
		return nil, err
	}

	for _, artwork := range artworks {
		if err := artwork.Validate(); err != nil {
			return nil, fmt.Errorf("failed to decode response: %w", err)
		}
	}

	return artworks, nil
}

// ArtworkTypes fetches the {type: count} facet map.
func (c *Client) ArtworkTypes(ctx context.Context) (models.FacetMap, error) {
	var facets models.FacetMap
	if err := c.doRequest(ctx, http.MethodGet, "/artworks/types", nil, &facets); err != nil {
		return nil, err
	}
	return facets, nil
}

// ArtworkOrigins fetches the {origin: count} facet map.
func (c *Client) ArtworkOrigins(ctx context.Context) (models.FacetMap, error) {
	var facets models.FacetMap
	if err := c.doRequest(ctx, http.MethodGet, "/artworks/origins", nil, &facets); err != nil {
		return nil, err
	}
	return facets, nil
}

// Login exchanges email and password for an authenticated session.
func (c *Client) Login(ctx context.Context, email, password string) (models.Session, error) {
	var session models.Session
	body := map[string]string{"email": email, "password": password}
	if err := c.doRequest(ctx, http.MethodPost, "/auth/login", body, &session); err != nil {
		return models.Session{}, err
	}
	if err := session.Validate(); err != nil {
		return models.Session{}, fmt.Errorf("%w: %v", shared.ErrAuthFailed, err)
	}
	return session, nil
}

// Join registers a new account and returns its authenticated session.
func (c *Client) Join(ctx context.Context, name, email, password string) (models.Session, error) {
	var session models.Session
	body := map[string]string{"name": name, "email": email, "password": password}
	if err := c.doRequest(ctx, http.MethodPost, "/auth/join", body, &session); err != nil {
		return models.Session{}, err
	}
	if err := session.Validate(); err != nil {
		return models.Session{}, fmt.Errorf("%w: %v", shared.ErrAuthFailed, err)
	}
	return session, nil
}

// Collections fetches all collections visible to the current session.
func (c *Client) Collections(ctx context.Context) ([]models.Collection, error) {
	var collections []models.Collection
	if err := c.doRequest(ctx, http.MethodGet, "/collections", nil, &collections); err != nil {
		return nil, err
	}
	return collections, nil
}

// Collection fetches a single collection with its elements.
func (c *Client) Collection(ctx context.Context, uuid string) (*models.Collection, error) {
	var collection models.Collection
	endpoint := fmt.Sprintf("/collections/%s", url.PathEscape(uuid))
	if err := c.doRequest(ctx, http.MethodGet, endpoint, nil, &collection); err != nil {
		return nil, err
	}
	return &collection, nil
}

// CreateCollection creates a collection owned by the current user.
func (c *Client) CreateCollection(ctx context.Context, title string) (models.Collection, error) {
	var collection models.Collection
	body := map[string]string{"title": title}
	if err := c.doRequest(ctx, http.MethodPost, "/collections", body, &collection); err != nil {
		return models.Collection{}, err
	}
	return collection, nil
}

// DeleteCollection deletes a collection. Ownership is enforced server-side.
func (c *Client) DeleteCollection(ctx context.Context, uuid string) error {
	endpoint := fmt.Sprintf("/collections/%s", url.PathEscape(uuid))
	return c.doRequest(ctx, http.MethodDelete, endpoint, nil, nil)
}

// AddArtwork adds an artwork to a collection.
func (c *Client) AddArtwork(ctx context.Context, uuid string, artworkID int) error {
	endpoint := fmt.Sprintf("/collections/%s", url.PathEscape(uuid))
	body := map[string]int{"artworkId": artworkID}
	return c.doRequest(ctx, http.MethodPost, endpoint, body, nil)
}

// RemoveArtwork removes an artwork's membership row from a collection.
// The response does not carry the updated element list; callers refetch
// the collection detail afterwards.
func (c *Client) RemoveArtwork(ctx context.Context, uuid string, artworkID int) error {
	endpoint := fmt.Sprintf("/collections/%s/artworks/%d", url.PathEscape(uuid), artworkID)
	return c.doRequest(ctx, http.MethodDelete, endpoint, nil, nil)
}
