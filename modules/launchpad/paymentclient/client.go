package paymentclient

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/cockroachdb/errors"
	"github.com/gaze-network/uint128"
	"github.com/google/uuid"
	"github.com/runeforge-network/launchpad/modules/launchpad/config"
	"github.com/runeforge-network/launchpad/pkg/httpclient"
)

// Contract is the outbound surface of the external payment-token service.
// Submitting a transfer only enqueues it; the outcome arrives later through
// the transfer-result callback, keyed by TransferRequest.ID.
type Contract interface {
	Transfer(ctx context.Context, req TransferRequest) error
}

type TransferRequest struct {
	ID        uuid.UUID
	Recipient string
	Amount    uint128.Uint128
	Memo      string
}

type Client struct {
	httpClient *httpclient.Client
}

var _ Contract = (*Client)(nil)

func New(conf config.PaymentService) (*Client, error) {
	if conf.BaseURL == "" {
		return nil, errors.New("payment.base_url config is required")
	}
	headers := make(map[string]string)
	if conf.AuthToken != "" {
		headers["Authorization"] = "Bearer " + conf.AuthToken
	}
	httpClient, err := httpclient.New(conf.BaseURL, httpclient.Config{Headers: headers})
	if err != nil {
		return nil, errors.Wrap(err, "can't create http client")
	}
	return &Client{httpClient: httpClient}, nil
}

type transferPayload struct {
	RequestID string `json:"requestId"`
	Recipient string `json:"recipient"`
	Amount    string `json:"amount"`
	Memo      string `json:"memo,omitempty"`
}

func (c *Client) Transfer(ctx context.Context, req TransferRequest) error {
	body, err := json.Marshal(transferPayload{
		RequestID: req.ID.String(),
		Recipient: req.Recipient,
		Amount:    req.Amount.String(),
		Memo:      req.Memo,
	})
	if err != nil {
		return errors.Wrap(err, "can't marshal payload")
	}
	resp, err := c.httpClient.Post(ctx, "/v1/transfers", httpclient.RequestOptions{
		Body: body,
	})
	if err != nil {
		return errors.Wrap(err, "can't send request")
	}
	if resp.StatusCode() >= http.StatusBadRequest {
		return errors.Errorf("payment service rejected transfer request: status %d, body %q", resp.StatusCode(), string(resp.Body()))
	}
	return nil
}
