package client

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/PebblesProgramming/miso-headless-cms-core/internal/constants"
	"github.com/PebblesProgramming/miso-headless-cms-core/internal/http"
	"github.com/PebblesProgramming/miso-headless-cms-core/pkg/cms"
)

// FormsClient implements cms.FormsClient.
type FormsClient struct {
	httpClient *http.Client
}

// NewFormsClient creates a new forms client.
func NewFormsClient(httpClient *http.Client) *FormsClient {
	return &FormsClient{
		httpClient: httpClient,
	}
}

// Get implements cms.FormsClient.Get.
func (c *FormsClient) Get(ctx context.Context, slug string) (*cms.FormDefinition, error) {
	path, err := slugPath(constants.FormsPath, slug)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Get(ctx, path, nil)
	if err != nil {
		return nil, fmt.Errorf("getting form: %w", err)
	}

	var definition cms.FormDefinition

	err = decodeResource(resp.Body, &definition)
	if err != nil {
		return nil, fmt.Errorf("parsing form: %w", err)
	}

	return &definition, nil
}

// Submit implements cms.FormsClient.Submit. The value map is posted as is;
// checkbox values travel as JSON booleans.
func (c *FormsClient) Submit(ctx context.Context, slug string, values cms.FieldValues) (*cms.FormSubmitResponse, error) {
	path, err := slugPath(constants.FormsPath, slug)
	if err != nil {
		return nil, err
	}

	if values == nil {
		values = cms.FieldValues{}
	}

	resp, err := c.httpClient.Post(ctx, path+"/submit", values)
	if err != nil {
		return nil, fmt.Errorf("submitting form: %w", err)
	}

	var result cms.FormSubmitResponse

	if len(resp.Body) == 0 {
		return &result, nil
	}

	err = json.Unmarshal(resp.Body, &result)
	if err != nil {
		return nil, fmt.Errorf("parsing form submission response: %w", err)
	}

	return &result, nil
}
