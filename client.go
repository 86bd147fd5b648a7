package replitdb

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/AdguardTeam/golibs/errors"
	"github.com/AdguardTeam/golibs/ioutil"
	"github.com/AdguardTeam/golibs/logutil/slogutil"
	"github.com/AdguardTeam/golibs/netutil"
	"github.com/AdguardTeam/golibs/validate"
	"github.com/AdguardTeam/replitdb/internal/rdbhttp"
	"github.com/AdguardTeam/replitdb/keycodec"
	"github.com/c2h5oh/datasize"
	"golang.org/x/time/rate"
)

// DefaultMaxRespSize is the default maximum size of a response body.
const DefaultMaxRespSize = 64 * datasize.MB

// ClientConfig is the configuration structure for [Client].  Only URL is
// required.
type ClientConfig struct {
	// URL is the base URL of the database.  It must be an absolute HTTP(S) URL
	// without a query or a fragment.
	URL *url.URL

	// HTTPClient is the HTTP client used for requests.  If it is nil, a new
	// client with Timeout is created.  It may be shared between clients.
	HTTPClient *http.Client

	// Logger is used to log requests.  If it is nil, nothing is logged.
	Logger *slog.Logger

	// Metrics is used to collect statistics.  If it is nil, [EmptyMetrics] is
	// used.
	Metrics Metrics

	// Limiter, if not nil, limits the rate of the requests to the database.
	// Every request, including the ones made by GetAll and Empty, waits for
	// it.
	Limiter *rate.Limiter

	// Timeout is the timeout for HTTP requests.  It is only used when
	// HTTPClient is nil; zero means no timeout.  It must not be negative.
	Timeout time.Duration

	// MaxRespSize is the maximum size of a response body.  If it is zero,
	// [DefaultMaxRespSize] is used.
	MaxRespSize datasize.ByteSize

	// MaxConcurrency is the maximum number of requests GetAll and Empty make
	// in parallel.  Values less than or equal to 1 mean that the requests are
	// made one by one in the listing order.  It must not be negative.
	MaxConcurrency int
}

// type check
var _ validate.Interface = (*ClientConfig)(nil)

// Validate implements the [validate.Interface] interface for *ClientConfig.
func (conf *ClientConfig) Validate() (err error) {
	if conf == nil {
		return errNilConfig
	}

	errs := []error{
		validate.NotNegative("MaxConcurrency", conf.MaxConcurrency),
	}

	if conf.Timeout < 0 {
		errs = append(errs, fmt.Errorf("Timeout: negative value %s", conf.Timeout))
	}

	err = rdbhttp.ValidateHTTPURL(conf.URL)
	if err != nil {
		errs = append(errs, fmt.Errorf("URL: %w", err))
	} else if conf.URL.RawQuery != "" || conf.URL.Fragment != "" {
		errs = append(errs, errors.Error("URL: must not have a query or a fragment"))
	}

	return errors.Join(errs...)
}

// Client is the blocking Replit database client.
type Client struct {
	url         *url.URL
	http        *rdbhttp.Client
	logger      *slog.Logger
	metrics     Metrics
	limiter     *rate.Limiter
	maxRespSize datasize.ByteSize
	maxConc     int
}

// NewClient returns a new properly initialized *Client.  Any error returned
// has the type [*ConfigurationError].
func NewClient(conf *ClientConfig) (c *Client, err error) {
	err = conf.Validate()
	if err != nil {
		return nil, &ConfigurationError{Err: err}
	}

	u := netutil.CloneURL(conf.URL)
	u.Path = strings.TrimSuffix(u.Path, "/")
	u.RawPath = strings.TrimSuffix(u.RawPath, "/")

	c = &Client{
		url: u,
		http: rdbhttp.NewClient(&rdbhttp.ClientConfig{
			HTTP:    conf.HTTPClient,
			Timeout: conf.Timeout,
		}),
		logger:      conf.Logger,
		metrics:     conf.Metrics,
		limiter:     conf.Limiter,
		maxRespSize: conf.MaxRespSize,
		maxConc:     conf.MaxConcurrency,
	}

	if c.logger == nil {
		c.logger = slogutil.NewDiscardLogger()
	}

	if c.metrics == nil {
		c.metrics = EmptyMetrics{}
	}

	if c.maxRespSize == 0 {
		c.maxRespSize = DefaultMaxRespSize
	}

	return c, nil
}

// type check
var _ Interface = (*Client)(nil)

// Get implements the [Interface] interface for *Client.  ok is false if the
// database responds with 404.
func (c *Client) Get(ctx context.Context, key string) (val string, ok bool, err error) {
	start := time.Now()
	defer func() { c.observe(ctx, OpGet, start, err) }()

	u := c.keyURL(key)
	code, body, err := c.roundTrip(ctx, OpGet, http.MethodGet, u, "")
	if err != nil {
		return "", false, err
	}

	switch {
	case rdbhttp.IsSuccess(code):
		c.metrics.IncrementLookups(ctx, true)

		return body, true, nil
	case code == http.StatusNotFound:
		c.metrics.IncrementLookups(ctx, false)

		return "", false, nil
	default:
		return "", false, &RemoteError{Body: body, StatusCode: code}
	}
}

// Set implements the [Interface] interface for *Client.  Both key and val are
// percent-encoded into a single URL-encoded form field.
func (c *Client) Set(ctx context.Context, key, val string) (err error) {
	start := time.Now()
	defer func() { c.observe(ctx, OpSet, start, err) }()

	form := keycodec.Encode(key) + "=" + keycodec.Encode(val)
	code, body, err := c.roundTrip(ctx, OpSet, http.MethodPost, c.url, form)
	if err != nil {
		return err
	}

	if !rdbhttp.IsSuccess(code) {
		return &RemoteError{Body: body, StatusCode: code}
	}

	return nil
}

// Delete implements the [Interface] interface for *Client.
func (c *Client) Delete(ctx context.Context, key string) (err error) {
	start := time.Now()
	defer func() { c.observe(ctx, OpDelete, start, err) }()

	u := c.keyURL(key)
	code, body, err := c.roundTrip(ctx, OpDelete, http.MethodDelete, u, "")
	if err != nil {
		return err
	}

	if !rdbhttp.IsSuccess(code) && code != http.StatusNotFound {
		return &RemoteError{Body: body, StatusCode: code}
	}

	return nil
}

// List implements the [Interface] interface for *Client.
func (c *Client) List(ctx context.Context) (keys []string, err error) {
	return c.ListPrefix(ctx, "")
}

// ListPrefix implements the [Interface] interface for *Client.  The keys are
// returned in the order of the response.
func (c *Client) ListPrefix(ctx context.Context, prefix string) (keys []string, err error) {
	start := time.Now()
	defer func() { c.observe(ctx, OpList, start, err) }()

	u := netutil.CloneURL(c.url)
	u.RawQuery = url.Values{
		"encode": []string{"true"},
		"prefix": []string{prefix},
	}.Encode()

	code, body, err := c.roundTrip(ctx, OpList, http.MethodGet, u, "")
	if err != nil {
		return nil, err
	}

	if !rdbhttp.IsSuccess(code) {
		return nil, &RemoteError{Body: body, StatusCode: code}
	}

	return parseKeys(body)
}

// parseKeys decodes the newline-separated list of encoded keys.  An empty
// body contains no keys.
func parseKeys(body string) (keys []string, err error) {
	if body == "" {
		return []string{}, nil
	}

	lines := strings.Split(body, "\n")
	keys = make([]string, 0, len(lines))
	for i, line := range lines {
		var key string
		key, err = keycodec.Decode(line)
		if err != nil {
			return nil, fmt.Errorf("listing line at index %d: %w", i, err)
		}

		keys = append(keys, key)
	}

	return keys, nil
}

// keyURL returns the URL of the key.
func (c *Client) keyURL(key string) (u *url.URL) {
	u, err := rdbhttp.JoinEscaped(c.url, keycodec.Encode(key))
	if err != nil {
		// Shouldn't happen, since the encoded key is always a valid segment.
		panic(fmt.Errorf("building url for key %q: %w", key, err))
	}

	return u
}

// roundTrip waits for the limiter, sends a request, and reads the response.
// body is only sent with POST requests.  Transport errors have the type
// [*TransportError].
func (c *Client) roundTrip(
	ctx context.Context,
	op Op,
	method string,
	u *url.URL,
	body string,
) (code int, respBody string, err error) {
	if c.limiter != nil {
		err = c.limiter.Wait(ctx)
		if err != nil {
			return 0, "", fmt.Errorf("%w: %w", ErrRateLimited, err)
		}
	}

	var resp *http.Response
	switch method {
	case http.MethodGet:
		resp, err = c.http.Get(ctx, u)
	case http.MethodPost:
		resp, err = c.http.Post(
			ctx,
			u,
			rdbhttp.HdrValApplicationFormURLEncoded,
			strings.NewReader(body),
		)
	case http.MethodDelete:
		resp, err = c.http.Delete(ctx, u)
	default:
		panic(fmt.Errorf("method: %w: %q", errors.ErrBadEnumValue, method))
	}
	if err != nil {
		return 0, "", &TransportError{Err: err}
	}
	defer func() { err = errors.WithDeferred(err, resp.Body.Close()) }()

	limitReader := ioutil.LimitReader(resp.Body, c.maxRespSize.Bytes())
	b, err := io.ReadAll(limitReader)
	if err != nil {
		return 0, "", &TransportError{Err: fmt.Errorf("reading response body: %w", err)}
	}

	c.logger.DebugContext(
		ctx,
		"request done",
		"op", op,
		"method", method,
		"status", resp.StatusCode,
		"resp_size", len(b),
	)

	return resp.StatusCode, string(b), nil
}

// observe reports the operation started at start to the metrics.
func (c *Client) observe(ctx context.Context, op Op, start time.Time, err error) {
	c.metrics.ObserveOperation(ctx, op, time.Since(start), err)
}
