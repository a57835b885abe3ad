package httptransport

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/stretchr/testify/suite"

	agecheckhandler "ageutil/internal/agecheck/handler"
	"ageutil/internal/agecheck/metrics"
	"ageutil/internal/agecheck/service"
	"ageutil/internal/bracket"
	"ageutil/internal/platform/health"
	request "ageutil/pkg/platform/middleware/request"
)

// RouterSuite drives the assembled router end to end against the default
// bracket catalog with a pinned clock.
type RouterSuite struct {
	suite.Suite
	server *httptest.Server
}

func TestRouterSuite(t *testing.T) {
	suite.Run(t, new(RouterSuite))
}

func (s *RouterSuite) SetupTest() {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	reg := prometheus.NewRegistry()

	svc, err := service.New(bracket.Defaults(),
		service.WithLogger(logger),
		service.WithMetrics(metrics.NewWith(reg)),
	)
	s.Require().NoError(err)

	router := NewRouter(Dependencies{
		Logger:   logger,
		AgeCheck: agecheckhandler.New(svc, logger),
		Health:   health.New("test"),
		Latency:  request.NewMetricsWith(reg),
		Metrics:  promhttp.HandlerFor(reg, promhttp.HandlerOpts{}),
		Clock: func() time.Time {
			return time.Date(2024, time.June, 1, 9, 30, 0, 0, time.UTC)
		},
	})
	s.server = httptest.NewServer(router)
}

func (s *RouterSuite) TearDownTest() {
	s.server.Close()
}

func (s *RouterSuite) post(path, contentType, body string) *http.Response {
	resp, err := http.Post(s.server.URL+path, contentType, strings.NewReader(body))
	s.Require().NoError(err)
	return resp
}

func (s *RouterSuite) get(path string) *http.Response {
	resp, err := http.Get(s.server.URL + path)
	s.Require().NoError(err)
	return resp
}

func decode[T any](s *RouterSuite, resp *http.Response) T {
	defer resp.Body.Close()
	var v T
	s.Require().NoError(json.NewDecoder(resp.Body).Decode(&v))
	return v
}

func (s *RouterSuite) TestEvaluateUsesRequestDate() {
	resp := s.post("/age/evaluate", "application/json", `{"date_of_birth":"2006-06-01","bracket":"adult"}`)
	s.Equal(http.StatusOK, resp.StatusCode)
	s.NotEmpty(resp.Header.Get("X-Request-ID"))

	body := decode[map[string]any](s, resp)
	s.Equal("2024-06-01", body["reference_date"])
	s.Equal(true, body["eligible"])
	s.Equal(map[string]any{"years": 18.0, "months": 0.0, "days": 0.0}, body["age"])
}

func (s *RouterSuite) TestBatch() {
	resp := s.post("/age/evaluate/batch", "application/json",
		`{"bracket":"teen","reference_date":"2024-06-01","dates_of_birth":["2010-01-01","2007-06-01","2006-06-01"]}`)
	s.Equal(http.StatusOK, resp.StatusCode)

	body := decode[map[string]any](s, resp)
	s.Equal(2.0, body["eligible_count"])
	s.Len(body["results"], 3)
}

func (s *RouterSuite) TestBounds() {
	resp := s.get("/brackets/senior/bounds?on=2024-06-01")
	s.Equal(http.StatusOK, resp.StatusCode)

	body := decode[map[string]any](s, resp)
	s.Equal(map[string]any{"earliest": nil, "latest": "1959-06-01"}, body["birth_bounds"])
}

func (s *RouterSuite) TestErrors() {
	s.Run("wrong content type", func() {
		resp := s.post("/age/evaluate", "text/plain", `{}`)
		defer resp.Body.Close()
		s.Equal(http.StatusUnsupportedMediaType, resp.StatusCode)
	})

	s.Run("unknown bracket", func() {
		resp := s.get("/brackets/retiree/bounds")
		defer resp.Body.Close()
		s.Equal(http.StatusNotFound, resp.StatusCode)
	})

	s.Run("leap day reference date", func() {
		resp := s.get("/brackets/adult/bounds?on=2024-02-29")
		defer resp.Body.Close()
		s.Equal(http.StatusBadRequest, resp.StatusCode)
	})
}

func (s *RouterSuite) TestHealthAndMetrics() {
	resp := s.get("/health/live")
	resp.Body.Close()
	s.Equal(http.StatusOK, resp.StatusCode)

	resp = s.get("/brackets/adult/bounds")
	resp.Body.Close()

	resp = s.get("/metrics")
	defer resp.Body.Close()
	s.Equal(http.StatusOK, resp.StatusCode)
	var buf bytes.Buffer
	_, err := buf.ReadFrom(resp.Body)
	s.Require().NoError(err)
	s.Contains(buf.String(), `ageutil_endpoint_latency_seconds_count{endpoint="/brackets/{name}/bounds"} 1`)
	s.Contains(buf.String(), `ageutil_bracket_bounds_lookups_total{bracket="adult"} 1`)
}
