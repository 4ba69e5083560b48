package signerclient

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"sync"

	"github.com/cockroachdb/errors"
	"github.com/runeforge-network/launchpad/modules/launchpad/config"
	"github.com/runeforge-network/launchpad/pkg/httpclient"
)

// PayloadSize is the fixed size of a signable payload.
const PayloadSize = 32

// Contract is the external threshold-signature service. It derives a key from
// the given path and signs the payload with it.
type Contract interface {
	Sign(ctx context.Context, req SignRequest) (*SignResponse, error)
	// SetAccount repoints the client at another signer account.
	SetAccount(account string)
	Account() string
}

type SignRequest struct {
	// Payload must be exactly PayloadSize bytes.
	Payload        []byte
	DerivationPath string
	KeyVersion     uint32
}

type SignResponse struct {
	// Signature encoding is opaque to this service; it is returned to the
	// caller verbatim.
	Signature json.RawMessage `json:"signature"`
	RequestID string          `json:"requestId,omitempty"`
}

type Client struct {
	httpClient *httpclient.Client

	mu      sync.RWMutex
	account string
}

var _ Contract = (*Client)(nil)

func New(conf config.Signer) (*Client, error) {
	if conf.BaseURL == "" {
		return nil, errors.New("signer.base_url config is required")
	}
	headers := make(map[string]string)
	if conf.AuthToken != "" {
		headers["Authorization"] = "Bearer " + conf.AuthToken
	}
	httpClient, err := httpclient.New(conf.BaseURL, httpclient.Config{Headers: headers})
	if err != nil {
		return nil, errors.Wrap(err, "can't create http client")
	}
	return &Client{httpClient: httpClient, account: conf.Account}, nil
}

func (c *Client) SetAccount(account string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.account = account
}

func (c *Client) Account() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.account
}

type signPayload struct {
	Account        string `json:"account"`
	Payload        string `json:"payload"`
	DerivationPath string `json:"path"`
	KeyVersion     uint32 `json:"keyVersion"`
}

func (c *Client) Sign(ctx context.Context, req SignRequest) (*SignResponse, error) {
	if len(req.Payload) != PayloadSize {
		return nil, errors.Errorf("payload must be exactly %d bytes, got %d", PayloadSize, len(req.Payload))
	}
	body, err := json.Marshal(signPayload{
		Account:        c.Account(),
		Payload:        base64.StdEncoding.EncodeToString(req.Payload),
		DerivationPath: req.DerivationPath,
		KeyVersion:     req.KeyVersion,
	})
	if err != nil {
		return nil, errors.Wrap(err, "can't marshal payload")
	}
	resp, err := c.httpClient.Post(ctx, "/v1/sign", httpclient.RequestOptions{
		Body: body,
	})
	if err != nil {
		return nil, errors.Wrap(err, "can't send request")
	}
	if resp.StatusCode() >= http.StatusBadRequest {
		return nil, errors.Errorf("signer rejected request: status %d, body %q", resp.StatusCode(), string(resp.Body()))
	}
	var result SignResponse
	if err := resp.UnmarshalBody(&result); err != nil {
		return nil, errors.Wrap(err, "can't unmarshal signer response")
	}
	return &result, nil
}
