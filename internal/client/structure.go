package client

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/PebblesProgramming/miso-headless-cms-core/internal/http"
	"github.com/PebblesProgramming/miso-headless-cms-core/pkg/cms"
)

// StructureClient implements cms.StructureClient.
type StructureClient struct {
	httpClient *http.Client
	path       string
}

// NewStructureClient creates a structure client posting to path.
func NewStructureClient(httpClient *http.Client, path string) *StructureClient {
	return &StructureClient{
		httpClient: httpClient,
		path:       path,
	}
}

// Sync implements cms.StructureClient.Sync.
func (c *StructureClient) Sync(ctx context.Context, structure *cms.Structure) (*cms.SyncResponse, error) {
	if structure == nil {
		structure = &cms.Structure{}
	}

	resp, err := c.httpClient.Post(ctx, c.path, structure)
	if err != nil {
		return nil, fmt.Errorf("syncing structure: %w", err)
	}

	var result cms.SyncResponse

	if len(resp.Body) == 0 {
		return &result, nil
	}

	err = json.Unmarshal(resp.Body, &result)
	if err != nil {
		return nil, fmt.Errorf("parsing sync response: %w", err)
	}

	return &result, nil
}
