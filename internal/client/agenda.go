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

// AgendaClient implements cms.AgendaClient.
type AgendaClient struct {
	httpClient *http.Client
}

// NewAgendaClient creates a new agenda client.
func NewAgendaClient(httpClient *http.Client) *AgendaClient {
	return &AgendaClient{
		httpClient: httpClient,
	}
}

// List implements cms.AgendaClient.List.
func (c *AgendaClient) List(ctx context.Context, params *cms.AgendaEventsParams) (*cms.AgendaEventsResponse, error) {
	var queryParams url.Values
	if params != nil {
		queryParams = params.ToValues()
	}

	resp, err := c.httpClient.Get(ctx, constants.AgendaPath, queryParams)
	if err != nil {
		return nil, fmt.Errorf("listing agenda events: %w", err)
	}

	var list cms.AgendaEventsResponse

	err = json.Unmarshal(resp.Body, &list)
	if err != nil {
		return nil, fmt.Errorf("parsing agenda events list: %w", err)
	}

	return &list, nil
}

// Get implements cms.AgendaClient.Get.
func (c *AgendaClient) Get(ctx context.Context, slug string) (*cms.AgendaEvent, error) {
	path, err := slugPath(constants.AgendaPath, slug)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Get(ctx, path, nil)
	if err != nil {
		return nil, fmt.Errorf("getting agenda event: %w", err)
	}

	var event cms.AgendaEvent

	err = decodeResource(resp.Body, &event)
	if err != nil {
		return nil, fmt.Errorf("parsing agenda event: %w", err)
	}

	return &event, nil
}
