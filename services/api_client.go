package services

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"

	"github.com/devlink/desktop/internal/auth"
	"github.com/devlink/desktop/internal/json"
)

const tracerName = "github.com/devlink/desktop/services"

// ApiClient sends JSON requests to the DevLink API. It holds no per-call
// state and is safe for concurrent use.
type ApiClient struct {
	BaseURL string
	resty   *resty.Client
}

// NewApiClient returns a client for baseURL. A zero timeout leaves requests
// unbounded unless the caller's context says otherwise. Requests are never
// retried.
func NewApiClient(baseURL string, timeout time.Duration) *ApiClient {
	return &ApiClient{
		BaseURL: strings.TrimRight(baseURL, "/"),
		resty: resty.New().
			SetTimeout(timeout).
			SetRetryCount(0),
	}
}

// PostJSON posts payload to endpoint and normalises the response: a 2xx body
// is decoded and returned verbatim, whatever JSON value it holds; anything
// else becomes an *auth.Error.
func (c *ApiClient) PostJSON(ctx context.Context, op, endpoint string, payload interface{}) (auth.Result, error) {
	ctx, span := otel.Tracer(tracerName).Start(ctx, "auth."+op,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("http.request.method", http.MethodPost),
			attribute.String("url.path", endpoint),
		),
	)
	defer span.End()

	req, err := c.prepareRequest(ctx, payload)
	if err != nil {
		span.RecordError(err)
		return auth.Result{}, err
	}

	resp, err := req.Post(c.BaseURL + endpoint)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "request failed")
		return auth.Result{}, fmt.Errorf("failed to send request: %w", err)
	}

	span.SetAttributes(attribute.Int("http.response.status_code", resp.StatusCode()))

	if !resp.IsSuccess() {
		apiErr := newApiError(op, resp.StatusCode(), resp.Body())
		span.SetStatus(codes.Error, apiErr.Message)
		return auth.Result{}, apiErr
	}

	var body interface{}
	if err := json.Unmarshal(resp.Body(), &body); err != nil {
		span.RecordError(err)
		return auth.Result{}, fmt.Errorf("failed to parse response JSON: %w: %v", auth.ErrMalformedResponse, err)
	}

	return auth.NewResult(body), nil
}

// prepareRequest creates a new request with proper headers for JSON data
func (c *ApiClient) prepareRequest(ctx context.Context, payload interface{}) (*resty.Request, error) {
	req := c.resty.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json")

	if payload != nil {
		jsonData, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request data: %w", err)
		}
		req.SetBody(jsonData)
	}

	otel.GetTextMapPropagator().Inject(ctx, propagation.HeaderCarrier(req.Header))

	return req, nil
}

// newApiError builds the error for a non-2xx response. The server's "message"
// wins when it is a non-empty string; otherwise the op's default is used,
// including when the body is not JSON at all. A non-string message such as
// {"message":42} is not stringified: the default is shown instead.
func newApiError(op string, status int, body []byte) *auth.Error {
	apiErr := &auth.Error{
		Op:      op,
		Status:  status,
		Message: auth.DefaultMessage(op),
	}

	var payload map[string]interface{}
	if err := json.Unmarshal(body, &payload); err != nil {
		apiErr.Err = fmt.Errorf("%w: %v", auth.ErrMalformedResponse, err)
		return apiErr
	}

	if msg, ok := payload["message"].(string); ok && msg != "" {
		apiErr.Message = msg
	}
	apiErr.Detail, _ = payload["error"].(string)

	return apiErr
}
