package client

import (
	"context"
	"fmt"

	"github.com/PebblesProgramming/miso-headless-cms-core/internal/constants"
	"github.com/PebblesProgramming/miso-headless-cms-core/internal/http"
	"github.com/PebblesProgramming/miso-headless-cms-core/pkg/cms"
)

// PagesClient implements cms.PagesClient.
type PagesClient struct {
	httpClient *http.Client
}

// NewPagesClient creates a new pages client.
func NewPagesClient(httpClient *http.Client) *PagesClient {
	return &PagesClient{
		httpClient: httpClient,
	}
}

// Get implements cms.PagesClient.Get.
func (c *PagesClient) Get(ctx context.Context, slug string) (*cms.Page, error) {
	path, err := slugPath(constants.PagesPath, slug)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Get(ctx, path, nil)
	if err != nil {
		return nil, fmt.Errorf("getting page: %w", err)
	}

	var page cms.Page

	err = decodeResource(resp.Body, &page)
	if err != nil {
		return nil, fmt.Errorf("parsing page: %w", err)
	}

	return &page, nil
}
