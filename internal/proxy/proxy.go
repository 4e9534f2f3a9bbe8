package proxy

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httputil"
	"net/url"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/ptmnhat/grafana-proxy/internal/config"
	"github.com/ptmnhat/grafana-proxy/internal/utils"
	"github.com/ptmnhat/grafana-proxy/pkg/logger"
)

const cacheKeyPrefix = "proxy_cache"

// Proxy forwards authorized dashboard requests to the upstream Grafana
// instance. The tenant's API key never reaches the upstream: the credential
// header and query parameter are stripped before forwarding.
//
// GET responses are cached in Redis for a short window, keyed per tenant, so
// dashboard panel refreshes do not hammer the upstream. Cache faults fall
// back to forwarding.
type Proxy struct {
	upstream *httputil.ReverseProxy
	redis    *redis.Client
	config   *config.Config
	logger   *logger.Logger
}

func NewProxy(cfg *config.Config, redisClient *redis.Client, log *logger.Logger) (*Proxy, error) {
	target, err := url.Parse(cfg.UpstreamURL)
	if err != nil {
		return nil, fmt.Errorf("invalid upstream URL %q: %w", cfg.UpstreamURL, err)
	}

	upstream := httputil.NewSingleHostReverseProxy(target)
	maxAge := int(cfg.ProxyCacheTTL / time.Second)
	upstream.ModifyResponse = func(resp *http.Response) error {
		// Browsers and embedding pages may cache GET dashboard responses
		// for the same short window the server-side cache uses.
		if resp.Request != nil && resp.Request.Method == http.MethodGet {
			resp.Header.Set("Cache-Control", fmt.Sprintf("public, max-age=%d", maxAge))
		}
		return nil
	}
	upstream.ErrorHandler = func(w http.ResponseWriter, r *http.Request, err error) {
		log.Error("Upstream request failed", err,
			zap.String("path", r.URL.Path))
		w.WriteHeader(http.StatusBadGateway)
	}

	return &Proxy{
		upstream: upstream,
		redis:    redisClient,
		config:   cfg,
		logger:   log,
	}, nil
}

type cachedResponse struct {
	Status      int    `json:"status"`
	ContentType string `json:"content_type"`
	Body        []byte `json:"body"`
}

// Handle serves a single proxied request. It must run behind the tenant
// access middleware, which verifies the API key and sets the tenant on the
// gin context.
func (p *Proxy) Handle(c *gin.Context) {
	p.stripCredentials(c.Request)

	if c.Request.Method != http.MethodGet {
		p.upstream.ServeHTTP(c.Writer, c.Request)
		return
	}

	key := p.cacheKey(c)
	if key != "" && p.serveFromCache(c, key) {
		return
	}

	capture := &captureWriter{ResponseWriter: c.Writer}
	c.Writer = capture
	p.upstream.ServeHTTP(c.Writer, c.Request)

	if key != "" && capture.Status() == http.StatusOK {
		p.store(c.Request.Context(), key, cachedResponse{
			Status:      capture.Status(),
			ContentType: capture.Header().Get("Content-Type"),
			Body:        capture.body.Bytes(),
		})
	}
}

// stripCredentials removes the API key from the outgoing request. The
// upstream is trusted with dashboard data, not with tenant secrets.
func (p *Proxy) stripCredentials(r *http.Request) {
	r.Header.Del(p.config.APIKeyHeader)

	query := r.URL.Query()
	if query.Has(p.config.APIKeyQueryParam) {
		query.Del(p.config.APIKeyQueryParam)
		r.URL.RawQuery = query.Encode()
	}
}

// cacheKey builds the per-tenant cache key from the credential-free URL.
// Returns "" when the request has no tenant attached, which disables caching
// for that request rather than sharing entries across tenants.
func (p *Proxy) cacheKey(c *gin.Context) string {
	tenantID, err := utils.GetTenantIDFromContext(withGinValues(c))
	if err != nil {
		return ""
	}
	return fmt.Sprintf("%s:%d:%s?%s", cacheKeyPrefix, tenantID, c.Request.URL.Path, c.Request.URL.RawQuery)
}

func (p *Proxy) serveFromCache(c *gin.Context, key string) bool {
	raw, err := p.redis.Get(c.Request.Context(), key).Bytes()
	if err != nil {
		if err != redis.Nil {
			p.logger.Warn("Proxy cache read failed", zap.Error(err))
		}
		return false
	}

	var cached cachedResponse
	if err := json.Unmarshal(raw, &cached); err != nil {
		p.logger.Warn("Dropping corrupt proxy cache entry", zap.String("key", key))
		p.redis.Del(c.Request.Context(), key)
		return false
	}

	maxAge := int(p.config.ProxyCacheTTL / time.Second)
	c.Header("Cache-Control", fmt.Sprintf("public, max-age=%d", maxAge))
	c.Header("X-Cache", "HIT")
	c.Data(cached.Status, cached.ContentType, cached.Body)
	return true
}

func (p *Proxy) store(ctx context.Context, key string, resp cachedResponse) {
	raw, err := json.Marshal(resp)
	if err != nil {
		return
	}
	if err := p.redis.Set(ctx, key, raw, p.config.ProxyCacheTTL).Err(); err != nil {
		p.logger.Warn("Proxy cache write failed", zap.Error(err))
	}
}

// withGinValues exposes gin context keys through the context.Context lookup
// used by the utils helpers.
func withGinValues(c *gin.Context) context.Context {
	ctx := c.Request.Context()
	for k, v := range c.Keys {
		ctx = context.WithValue(ctx, utils.ContextKey(k), v)
	}
	return ctx
}

// captureWriter duplicates the response body into a buffer so a successful
// GET can be cached after it has been streamed to the caller.
type captureWriter struct {
	gin.ResponseWriter
	body bytes.Buffer
}

func (w *captureWriter) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

func (w *captureWriter) WriteString(s string) (int, error) {
	w.body.WriteString(s)
	return w.ResponseWriter.WriteString(s)
}
