package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"

	"github.com/PebblesProgramming/miso-headless-cms-core/internal/constants"
	"github.com/PebblesProgramming/miso-headless-cms-core/internal/http"
	"github.com/PebblesProgramming/miso-headless-cms-core/pkg/cms"
)

// PostsClient implements cms.PostsClient.
type PostsClient struct {
	httpClient *http.Client
}

// NewPostsClient creates a new posts client.
func NewPostsClient(httpClient *http.Client) *PostsClient {
	return &PostsClient{
		httpClient: httpClient,
	}
}

// List implements cms.PostsClient.List.
func (c *PostsClient) List(ctx context.Context, params *cms.PostsParams) (*cms.PostsResponse, error) {
	var queryParams url.Values
	if params != nil {
		queryParams = params.ToValues()
	}

	resp, err := c.httpClient.Get(ctx, constants.PostsPath, queryParams)
	if err != nil {
		return nil, fmt.Errorf("listing posts: %w", err)
	}

	var list cms.PostsResponse

	err = json.Unmarshal(resp.Body, &list)
	if err != nil {
		return nil, fmt.Errorf("parsing posts list: %w", err)
	}

	return &list, nil
}

// Get implements cms.PostsClient.Get.
func (c *PostsClient) Get(ctx context.Context, slug string) (*cms.Post, error) {
	path, err := slugPath(constants.PostsPath, slug)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Get(ctx, path, nil)
	if err != nil {
		return nil, fmt.Errorf("getting post: %w", err)
	}

	var post cms.Post

	err = decodeResource(resp.Body, &post)
	if err != nil {
		return nil, fmt.Errorf("parsing post: %w", err)
	}

	return &post, nil
}
