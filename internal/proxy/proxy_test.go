package proxy

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/suite"

	"github.com/ptmnhat/grafana-proxy/internal/config"
	"github.com/ptmnhat/grafana-proxy/pkg/logger"
)

type ProxyTestSuite struct {
	suite.Suite
	upstream    *httptest.Server
	lastRequest *http.Request
	router      *gin.Engine
}

func (s *ProxyTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)

	s.upstream = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.lastRequest = r.Clone(r.Context())
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"dashboard":"ok"}`))
	}))

	cfg := &config.Config{
		UpstreamURL:      s.upstream.URL,
		APIKeyHeader:     "X-Api-Key",
		APIKeyQueryParam: "apiKey",
		ProxyCacheTTL:    5 * time.Second,
	}

	p, err := NewProxy(cfg, nil, logger.NewLogger("test"))
	s.Require().NoError(err)

	s.router = gin.New()
	s.router.Any("/grafana/public/dashboards/:dashboardUid/*remainder", p.Handle)
}

func (s *ProxyTestSuite) TearDownTest() {
	s.upstream.Close()
}

func TestProxy(t *testing.T) {
	suite.Run(t, new(ProxyTestSuite))
}

func (s *ProxyTestSuite) TestStripsCredentialHeader() {
	req := httptest.NewRequest(http.MethodGet, "/grafana/public/dashboards/dash-42/panels", nil)
	req.Header.Set("X-Api-Key", "secret-key")
	w := httptest.NewRecorder()

	s.router.ServeHTTP(w, req)

	s.Equal(http.StatusOK, w.Code)
	s.Require().NotNil(s.lastRequest)
	s.Empty(s.lastRequest.Header.Get("X-Api-Key"))
}

func (s *ProxyTestSuite) TestStripsCredentialQueryParam() {
	req := httptest.NewRequest(http.MethodGet, "/grafana/public/dashboards/dash-42/panels?apiKey=secret-key&from=now-6h", nil)
	w := httptest.NewRecorder()

	s.router.ServeHTTP(w, req)

	s.Equal(http.StatusOK, w.Code)
	s.Require().NotNil(s.lastRequest)
	s.Empty(s.lastRequest.URL.Query().Get("apiKey"))
	s.Equal("now-6h", s.lastRequest.URL.Query().Get("from"), "unrelated query params must survive")
}

func (s *ProxyTestSuite) TestSetsCacheControlOnGet() {
	req := httptest.NewRequest(http.MethodGet, "/grafana/public/dashboards/dash-42/panels", nil)
	w := httptest.NewRecorder()

	s.router.ServeHTTP(w, req)

	s.Equal("public, max-age=5", w.Header().Get("Cache-Control"))
}

func (s *ProxyTestSuite) TestNoCacheControlOnPost() {
	req := httptest.NewRequest(http.MethodPost, "/grafana/public/dashboards/dash-42/query", nil)
	w := httptest.NewRecorder()

	s.router.ServeHTTP(w, req)

	s.Equal(http.StatusOK, w.Code)
	s.Empty(w.Header().Get("Cache-Control"))
}

func (s *ProxyTestSuite) TestForwardsUpstreamBody() {
	req := httptest.NewRequest(http.MethodGet, "/grafana/public/dashboards/dash-42/panels", nil)
	w := httptest.NewRecorder()

	s.router.ServeHTTP(w, req)

	s.JSONEq(`{"dashboard":"ok"}`, w.Body.String())
}
