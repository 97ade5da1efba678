package httpapi

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/hdbmap/geoquery/v1/resale"
)

// decodeRequest reads a resale.Request, rejecting unknown fields and
// trailing data. An empty body is an empty request.
func (s *Server) decodeRequest(r *http.Request) (resale.Request, error) {
	var req resale.Request
	body := io.Reader(r.Body)
	if s.cfg.MaxBodyBytes > 0 {
		body = io.LimitReader(r.Body, s.cfg.MaxBodyBytes)
	}

	dec := json.NewDecoder(body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		if err == io.EOF {
			return resale.Request{}, nil
		}
		return req, fmt.Errorf("%w: %v", ErrBadRequest, err)
	}
	if dec.More() {
		return req, fmt.Errorf("%w: unexpected data after request body", ErrBadRequest)
	}
	return req, nil
}

func (s *Server) getRecord(r *http.Request) (interface{}, error) {
	return s.service.GetRecord(r.Context(), mux.Vars(r)["id"])
}

func (s *Server) getListing(r *http.Request) (interface{}, error) {
	return s.service.GetListing(r.Context(), mux.Vars(r)["id"])
}

func (s *Server) searchRecords(r *http.Request) (interface{}, error) {
	req, err := s.decodeRequest(r)
	if err != nil {
		return nil, err
	}
	return s.service.GetRecords(r.Context(), req)
}

func (s *Server) searchListings(r *http.Request) (interface{}, error) {
	req, err := s.decodeRequest(r)
	if err != nil {
		return nil, err
	}
	return s.service.GetListings(r.Context(), req)
}

func (s *Server) averagePrice(r *http.Request) (interface{}, error) {
	req, err := s.decodeRequest(r)
	if err != nil {
		return nil, err
	}
	return s.service.GetRecordsAveragePrice(r.Context(), req)
}

func (s *Server) latestPostals(r *http.Request) (interface{}, error) {
	return s.service.GetLatestPostals(r.Context())
}

func (s *Server) towns(r *http.Request) (interface{}, error) {
	return s.service.GetDistinctTowns(r.Context())
}

func (s *Server) flatTypes(r *http.Request) (interface{}, error) {
	return s.service.GetDistinctFlatTypes(r.Context())
}

func (s *Server) filterOptions(r *http.Request) (interface{}, error) {
	return s.service.GetFilterOptions(r.Context())
}

func (s *Server) healthz(r *http.Request) (interface{}, error) {
	if s.health != nil {
		if err := s.health.HealthCheck(r.Context()); err != nil {
			return nil, err
		}
	}
	return map[string]string{"status": "ok"}, nil
}
