package geolocate_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"statuskit/weatherbar/internal/geolocate"
)

type ResolverTestSuite struct {
	suite.Suite
	ipinfoServer    *httptest.Server
	freeipapiServer *httptest.Server
	ipapiServer     *httptest.Server
	client          *http.Client
	ctx             context.Context

	ipinfoStatus    int
	freeipapiStatus int
	ipapiStatus     int
}

func (s *ResolverTestSuite) SetupTest() {
	s.ipinfoStatus = http.StatusOK
	s.freeipapiStatus = http.StatusOK
	s.ipapiStatus = http.StatusOK

	s.ipinfoServer = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.ipinfoStatus != http.StatusOK {
			w.WriteHeader(s.ipinfoStatus)
			return
		}
		json.NewEncoder(w).Encode(map[string]interface{}{
			"city": "Bengaluru",
			"loc":  "12.9716,77.5946",
		})
	}))

	s.freeipapiServer = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.freeipapiStatus != http.StatusOK {
			w.WriteHeader(s.freeipapiStatus)
			return
		}
		json.NewEncoder(w).Encode(map[string]interface{}{
			"cityName":  "Mumbai",
			"latitude":  19.076,
			"longitude": 72.8777,
		})
	}))

	s.ipapiServer = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.ipapiStatus != http.StatusOK {
			w.WriteHeader(s.ipapiStatus)
			return
		}
		json.NewEncoder(w).Encode(map[string]interface{}{
			"city": "Delhi",
			"lat":  28.7041,
			"lon":  77.1025,
		})
	}))

	s.client = &http.Client{Timeout: time.Second}
	s.ctx = context.Background()
}

func (s *ResolverTestSuite) TearDownTest() {
	s.ipinfoServer.Close()
	s.freeipapiServer.Close()
	s.ipapiServer.Close()
}

func (s *ResolverTestSuite) newResolver() *geolocate.Resolver {
	return geolocate.NewResolver(
		geolocate.NewIPInfoProvider(s.ipinfoServer.URL, s.client),
		geolocate.NewFreeIPAPIProvider(s.freeipapiServer.URL, s.client),
		geolocate.NewIPAPIProvider(s.ipapiServer.URL, s.client),
	)
}

func (s *ResolverTestSuite) TestFirstProviderWins() {
	loc, err := s.newResolver().Resolve(s.ctx)

	s.NoError(err)
	s.Equal("Bengaluru", loc.Place)
	s.InDelta(12.9716, loc.Latitude, 0.0001)
	s.InDelta(77.5946, loc.Longitude, 0.0001)
}

func (s *ResolverTestSuite) TestFallsThroughToSecondProvider() {
	s.ipinfoStatus = http.StatusInternalServerError

	loc, err := s.newResolver().Resolve(s.ctx)

	s.NoError(err)
	s.Equal("Mumbai", loc.Place)
	s.InDelta(19.076, loc.Latitude, 0.0001)
	s.InDelta(72.8777, loc.Longitude, 0.0001)
}

func (s *ResolverTestSuite) TestFallsThroughToLastProvider() {
	s.ipinfoStatus = http.StatusTooManyRequests
	s.freeipapiStatus = http.StatusBadGateway

	loc, err := s.newResolver().Resolve(s.ctx)

	s.NoError(err)
	s.Equal("Delhi", loc.Place)
}

func (s *ResolverTestSuite) TestAllProvidersFail() {
	s.ipinfoStatus = http.StatusInternalServerError
	s.freeipapiStatus = http.StatusInternalServerError
	s.ipapiStatus = http.StatusInternalServerError

	loc, err := s.newResolver().Resolve(s.ctx)

	s.Nil(loc)
	s.True(errors.Is(err, geolocate.ErrAllProvidersFailed))
}

func (s *ResolverTestSuite) TestUnreachableProviderDoesNotContaminateNext() {
	// Closing the first server makes its call fail at the transport
	// level rather than with an HTTP status.
	s.ipinfoServer.Close()

	loc, err := s.newResolver().Resolve(s.ctx)

	s.NoError(err)
	s.Equal("Mumbai", loc.Place)
}

func (s *ResolverTestSuite) TestStaticResolver() {
	loc, err := geolocate.NewStatic("Pune", 18.5204, 73.8567).Resolve(s.ctx)

	s.NoError(err)
	s.Equal("Pune", loc.Place)
	s.InDelta(18.5204, loc.Latitude, 0.0001)
	s.InDelta(73.8567, loc.Longitude, 0.0001)
}

func TestResolverTestSuite(t *testing.T) {
	suite.Run(t, new(ResolverTestSuite))
}
