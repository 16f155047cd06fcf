package paypal

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/fornello/payment-service/internal/config"
)

// Client is the port the orchestration services speak to the gateway
// through. Implemented by HTTPPayPalClient and the retry decorator.
type Client interface {
	GetAccessToken(ctx context.Context) (*AccessToken, error)
	CreateOrder(ctx context.Context, token AccessToken, req CreateOrderRequest) (*CreateOrderResponse, error)
	CaptureOrder(ctx context.Context, token AccessToken, gatewayOrderID string) (*CaptureOrderResponse, error)
}

type HTTPPayPalClient struct {
	baseURL      string
	clientID     string
	clientSecret string
	httpClient   *http.Client
}

func NewClient(cfg config.PayPalConfig) *HTTPPayPalClient {
	return &HTTPPayPalClient{
		baseURL:      cfg.APIBaseURL(),
		clientID:     cfg.ClientID,
		clientSecret: cfg.ClientSecret,
		httpClient: &http.Client{
			// Hard per-attempt budget. Retries wrap this client, so each
			// attempt gets a fresh timeout.
			Timeout: cfg.ConnTimeout,
		},
	}
}

// GetAccessToken exchanges the configured credentials for a short-lived
// bearer token via the client-credentials grant. Fails fast without a
// network call when either credential is missing.
func (c *HTTPPayPalClient) GetAccessToken(ctx context.Context) (*AccessToken, error) {
	if c.clientID == "" || c.clientSecret == "" {
		return nil, ErrMissingCredentials
	}

	form := url.Values{}
	form.Set("grant_type", "client_credentials")

	endpoint := fmt.Sprintf("%s/v1/oauth2/token", c.baseURL)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("error creating token request: %w", err)
	}
	httpReq.SetBasicAuth(c.clientID, c.clientSecret)
	httpReq.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("error making token request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, newAPIError(resp)
	}

	var tokenResp tokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&tokenResp); err != nil {
		return nil, fmt.Errorf("error decoding token response: %w", err)
	}
	if tokenResp.AccessToken == "" {
		return nil, fmt.Errorf("token response missing access_token")
	}

	return &AccessToken{Value: tokenResp.AccessToken}, nil
}

func (c *HTTPPayPalClient) CreateOrder(ctx context.Context, token AccessToken, req CreateOrderRequest) (*CreateOrderResponse, error) {
	endpoint := fmt.Sprintf("%s/v2/checkout/orders", c.baseURL)
	return sendRequest[CreateOrderRequest, CreateOrderResponse](c, ctx, endpoint, token, &req)
}

// CaptureOrder posts the capture call for a previously approved order. The
// gateway expects an empty JSON body.
func (c *HTTPPayPalClient) CaptureOrder(ctx context.Context, token AccessToken, gatewayOrderID string) (*CaptureOrderResponse, error) {
	endpoint := fmt.Sprintf("%s/v2/checkout/orders/%s/capture", c.baseURL, gatewayOrderID)
	return sendRequest[struct{}, CaptureOrderResponse](c, ctx, endpoint, token, nil)
}

func sendRequest[Req any, Resp any](c *HTTPPayPalClient, ctx context.Context, endpoint string, token AccessToken, reqBody *Req) (*Resp, error) {
	var bodyReader io.Reader
	if reqBody != nil {
		jsonData, err := json.Marshal(reqBody)
		if err != nil {
			return nil, fmt.Errorf("error marshalling json: %w", err)
		}
		bodyReader = bytes.NewReader(jsonData)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("error creating request: %w", err)
	}

	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+token.Value)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("error making request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, newAPIError(resp)
	}

	var gatewayResp Resp
	if err := json.NewDecoder(resp.Body).Decode(&gatewayResp); err != nil {
		return nil, fmt.Errorf("error decoding json response: %w", err)
	}

	return &gatewayResp, nil
}

func newAPIError(resp *http.Response) *APIError {
	body, _ := io.ReadAll(resp.Body)

	apiErr := &APIError{
		StatusCode: resp.StatusCode,
		Body:       string(body),
	}

	var parsed apiErrorResponse
	if err := json.Unmarshal(body, &parsed); err == nil {
		apiErr.Code = parsed.Name
		if apiErr.Code == "" {
			apiErr.Code = parsed.Error
		}
		apiErr.Message = parsed.Message
	}
	if apiErr.Code == "" {
		apiErr.Code = http.StatusText(resp.StatusCode)
	}
	if apiErr.Message == "" {
		apiErr.Message = string(body)
	}

	return apiErr
}

var _ Client = (*HTTPPayPalClient)(nil)
