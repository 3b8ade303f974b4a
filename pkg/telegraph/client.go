package telegraph

import (
	"context"
	"fmt"
	"io"
	"math/rand"
	"net/http"
	"net/url"
	"strings"
	"time"

	"telegraphdl/pkg/config"
	"telegraphdl/pkg/errors"
	"telegraphdl/pkg/logger"
)

const (
	// DefaultBaseURL is the origin image references are resolved against
	DefaultBaseURL = "https://telegra.ph"
	// DefaultReferer is sent with every request
	DefaultReferer = "https://telegra.ph/"

	filePrefix = "/file/"
)

// Client fetches telegraph pages and images over one shared http.Client
type Client struct {
	httpClient *http.Client
	headers    *HeaderGenerator
	baseURL    string
	host       string
	logger     logger.Logger
}

// NewClient creates a client resolving references against baseURL
func NewClient(httpClient *http.Client, headers *HeaderGenerator, baseURL string, log logger.Logger) (*Client, error) {
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	if log == nil {
		log = logger.GetLogger()
	}

	baseURL = strings.TrimRight(baseURL, "/")
	u, err := url.Parse(baseURL)
	if err != nil || u.Host == "" {
		return nil, fmt.Errorf("invalid base URL %q", baseURL)
	}

	return &Client{
		httpClient: httpClient,
		headers:    headers,
		baseURL:    baseURL,
		host:       u.Host,
		logger:     log,
	}, nil
}

// NewClientFromConfig builds the HTTP session and header generator from cfg.
// A zero Download.Timeout leaves requests unbounded.
func NewClientFromConfig(cfg *config.Config, log logger.Logger) (*Client, error) {
	headers, err := NewHeaderGenerator(
		rand.NewSource(time.Now().UnixNano()),
		cfg.Telegraph.UserAgents,
		cfg.Telegraph.Referer,
	)
	if err != nil {
		return nil, err
	}

	httpClient := &http.Client{Timeout: cfg.Download.Timeout}
	return NewClient(httpClient, headers, cfg.Telegraph.BaseURL, log)
}

// BaseURL returns the origin references are resolved against
func (c *Client) BaseURL() string {
	return c.baseURL
}

// ArticlePath extracts the path segment of an article URL on this client's site
func (c *Client) ArticlePath(articleURL string) (string, error) {
	return ArticlePath(articleURL, c.host)
}

// Resolve maps a raw reference against the client's origin
func (c *Client) Resolve(raw string) ImageInfo {
	return resolve(c.baseURL, raw)
}

// FetchPage returns the body of the article page as text
func (c *Client) FetchPage(ctx context.Context, pageURL string) (string, error) {
	body, err := c.get(ctx, "fetch_page", pageURL)
	if err != nil {
		return "", err
	}
	return string(body), nil
}

// FetchImage returns the raw bytes of an image
func (c *Client) FetchImage(ctx context.Context, imageURL string) ([]byte, error) {
	return c.get(ctx, "fetch_image", imageURL)
}

// ArticleImages fetches the page, extracts its image references and resolves
// each of them, keeping page order.
func (c *Client) ArticleImages(ctx context.Context, pageURL string) ([]ImageInfo, error) {
	html, err := c.FetchPage(ctx, pageURL)
	if err != nil {
		return nil, err
	}

	refs := ExtractImageRefs(html)
	images := make([]ImageInfo, 0, len(refs))
	for _, ref := range refs {
		images = append(images, c.Resolve(ref))
	}

	c.logger.DebugWithFields("extracted image references", map[string]interface{}{
		"url":    pageURL,
		"images": len(images),
	})

	return images, nil
}

// get performs one GET with fresh headers. There are no retries; any
// transport failure is returned. A non-2xx status is an error as well, so an
// error page is never saved in place of an image.
func (c *Client) get(ctx context.Context, op, target string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, errors.New(errors.ErrorTypeMalformedInput, op, target, err)
	}
	h := c.headers.Apply(req)

	c.logger.DebugWithFields("sending HTTP request", map[string]interface{}{
		"method":     req.Method,
		"url":        target,
		"user_agent": h.UserAgent,
	})

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.DebugWithFields("HTTP request failed", map[string]interface{}{
			"method":   req.Method,
			"url":      target,
			"error":    err.Error(),
			"duration": time.Since(start),
		})
		return nil, errors.New(errors.ErrorTypeNetwork, op, target, err)
	}
	defer resp.Body.Close()

	logger.LogRequest(c.logger, req.Method, target, resp.StatusCode, time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, errors.Status(op, target, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.New(errors.ErrorTypeNetwork, op, target, fmt.Errorf("failed to read response body: %w", err))
	}

	return body, nil
}
