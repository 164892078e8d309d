package meet

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/oauth2"
	meetapi "google.golang.org/api/meet/v2"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"

	"github.com/Mobinshahidi/google-meet-generator/internal/google"
	"github.com/Mobinshahidi/google-meet-generator/internal/instrumentation"
	"github.com/Mobinshahidi/google-meet-generator/internal/logging"
)

// Config configures a Client.
type Config struct {
	// TokenSource authorizes every request. Use google.TokenSource to back
	// it with a CredentialManager.
	TokenSource oauth2.TokenSource

	Metrics *instrumentation.Metrics
	Logger  *slog.Logger

	// Options are appended to the service options (e.g., an endpoint
	// override).
	Options []option.ClientOption
}

// Client wraps the Google Meet service
type Client struct {
	svc     *meetapi.Service
	metrics *instrumentation.Metrics
	logger  *slog.Logger
}

// NewClient creates a Meet client whose requests carry tokens from
// cfg.TokenSource.
func NewClient(ctx context.Context, cfg Config) (*Client, error) {
	if cfg.TokenSource == nil {
		return nil, errors.New("meet: token source is required")
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	httpClient := &http.Client{
		Transport: &oauth2.Transport{
			Source: oauth2.ReuseTokenSource(nil, cfg.TokenSource),
			Base:   otelhttp.NewTransport(http.DefaultTransport),
		},
	}
	opts := append([]option.ClientOption{option.WithHTTPClient(httpClient)}, cfg.Options...)
	svc, err := meetapi.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create Meet service: %w", err)
	}

	return &Client{
		svc:     svc,
		metrics: cfg.Metrics,
		logger:  logging.WithService(logger, instrumentation.ServiceMeet),
	}, nil
}

// CreateOpenSpace creates a space anyone with the link can join without
// host approval. It issues exactly one request and never retries.
//
// Credential failures are returned as *google.AuthError; every other
// failure, including a response without a meeting URI, is a
// *RemoteServiceError.
func (c *Client) CreateOpenSpace(ctx context.Context) (*Space, error) {
	const op = instrumentation.OperationCreateSpace

	ctx, span := instrumentation.StartGoogleAPISpan(ctx, instrumentation.ServiceMeet, op)
	defer span.End()
	start := time.Now()

	created, err := c.svc.Spaces.Create(&meetapi.Space{
		Config: &meetapi.SpaceConfig{
			AccessType:       AccessTypeOpen,
			EntryPointAccess: EntryPointAccessAll,
		},
	}).Context(ctx).Do()
	if err == nil && created.MeetingUri == "" {
		err = &RemoteServiceError{Op: op, Err: errors.New("response has no meeting URI")}
	}
	if err != nil {
		err = classify(op, err)
		c.metrics.RecordGoogleAPIOperation(ctx, instrumentation.ServiceMeet, op, instrumentation.StatusError, time.Since(start))
		instrumentation.SetSpanError(span, err)
		c.logger.ErrorContext(ctx, "space creation failed",
			logging.Operation(op),
			slog.Duration(logging.KeyDuration, time.Since(start)),
			logging.Err(err))
		return nil, err
	}

	c.metrics.RecordGoogleAPIOperation(ctx, instrumentation.ServiceMeet, op, instrumentation.StatusSuccess, time.Since(start))
	instrumentation.AddSpanEvent(span, "space.created", attribute.String(instrumentation.SpanAttrSpaceName, created.Name))
	instrumentation.SetSpanSuccess(span)
	c.logger.InfoContext(ctx, "created open space",
		logging.Operation(op),
		slog.String("space", created.Name),
		slog.String("meeting_code", created.MeetingCode),
		slog.Duration(logging.KeyDuration, time.Since(start)))

	return toSpace(created), nil
}

// classify keeps credential failures intact and wraps everything else.
func classify(op string, err error) error {
	var authErr *google.AuthError
	if errors.As(err, &authErr) {
		return authErr
	}
	var remoteErr *RemoteServiceError
	if errors.As(err, &remoteErr) {
		return remoteErr
	}

	rse := &RemoteServiceError{Op: op, Err: err}
	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		rse.StatusCode = apiErr.Code
	}
	return rse
}

// toSpace converts a Meet API Space to our Space type
func toSpace(s *meetapi.Space) *Space {
	space := &Space{
		Name:        s.Name,
		MeetingURI:  s.MeetingUri,
		MeetingCode: s.MeetingCode,
	}
	if s.Config != nil {
		space.Config = &SpaceConfig{
			AccessType:       s.Config.AccessType,
			EntryPointAccess: s.Config.EntryPointAccess,
		}
	}
	return space
}
