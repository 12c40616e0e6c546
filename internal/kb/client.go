package kb

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"

	"github.com/SAHU-01/VisaVerse/internal/errors"
	"github.com/SAHU-01/VisaVerse/internal/logging"
	"github.com/SAHU-01/VisaVerse/internal/random"
)

// Degraded answer served when the knowledge base cannot be reached.
const (
	degradedSummary     = "Sorry, I encountered an error while fetching the information. Please try again."
	degradedLimitations = "Unable to connect to the knowledge base."
)

const correlationIDLength = 12

// Client talks to the external answer-retrieval service. It issues one
// request per question with no retries; timeouts are the transport's
// concern.
type Client struct {
	endpoint string
	client   *http.Client
	logger   *slog.Logger
}

// NewClient creates a client for the knowledge-base endpoint. The endpoint
// is fixed configuration, not user-configurable at runtime.
func NewClient(endpoint string, logger *slog.Logger) *Client {
	return &Client{
		endpoint: endpoint,
		client:   &http.Client{},
		logger:   logger.With("source", "kb.Client"),
	}
}

// DegradedResult is the total-failure answer: a fixed apology with no
// sections, citations or evidence.
func DegradedResult() AnswerResult {
	return AnswerResult{
		Answer: Answer{
			Summary:     degradedSummary,
			Sections:    []AnswerSection{},
			Limitations: degradedLimitations,
			Citations:   []string{},
		},
		Evidence: []Evidence{},
	}
}

// Ask sends the query to the knowledge base and returns its answer.
//
// Transport failures never propagate: a failed or non-success response is
// logged and converted into [DegradedResult]. Each request carries a
// correlation id so concurrent in-flight questions map to their responses
// without assuming FIFO completion.
func (c *Client) Ask(ctx context.Context, query Query) AnswerResult {
	correlationID, err := random.Letters(correlationIDLength)
	if err != nil {
		// Extremely unlikely; the request is still worth sending.
		c.logger.LogAttrs(ctx, slog.LevelWarn, "could not generate correlation id", errors.SlogError(err))
	}
	ctx = logging.WithAttrs(ctx, slog.String("correlation_id", correlationID))

	result, err := c.do(ctx, correlationID, query)
	if err != nil {
		c.logger.LogAttrs(ctx, slog.LevelError, "knowledge base request failed", errors.SlogError(err))
		return DegradedResult()
	}
	return result
}

func (c *Client) do(ctx context.Context, correlationID string, query Query) (AnswerResult, error) {
	var result AnswerResult

	body, err := json.Marshal(query)
	if err != nil {
		return result, errors.Wrap(err, "marshal query")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return result, errors.Wrap(err, "create request")
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-ID", correlationID)

	resp, err := c.client.Do(req)
	if err != nil {
		return result, errors.Wrap(err, "post query")
	}
	defer func() {
		if err = resp.Body.Close(); err != nil {
			c.logger.LogAttrs(ctx, slog.LevelError, "could not close response body", errors.SlogError(err))
		}
	}()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		// The response is not partially consumed on failure; drain it for
		// connection reuse and report the status.
		_, _ = io.Copy(io.Discard, resp.Body)
		return result, errors.New("knowledge base returned non-success status",
			slog.Int("status", resp.StatusCode))
	}

	if err = json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return result, errors.Wrap(err, "decode answer")
	}
	return result, nil
}
