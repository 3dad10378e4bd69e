// Package server handles HTTP requests and middleware.
package server

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/woozymasta/gjs/internal/config"
	"github.com/woozymasta/gjs/internal/geo"
	"github.com/woozymasta/gjs/internal/processor"

	"github.com/rs/zerolog/log"
)

// HandleConvert converts the request body to a GeoJSON FeatureCollection.
// Query parameters "format", "minify" and "precision" override the defaults.
func (s *ServerContext) HandleConvert(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	opts, err := s.requestOptions(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	body := http.MaxBytesReader(w, r.Body, s.Config.Server.MaxBodySize)
	w.Header().Set("Content-Type", "application/geo+json")

	count, err := processor.Convert(body, w, opts)
	if err != nil {
		var writeErr *geo.WriteError
		if errors.As(err, &writeErr) {
			// Ignoring as we cannot handle client disconnects
			log.Warn().Err(err).Str("path", r.URL.Path).Msg("Response write failed")
			return
		}

		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			http.Error(w, err.Error(), http.StatusRequestEntityTooLarge)
			return
		}

		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	recordConversion(r, opts.Format, count)
}

// HandleHealth reports liveness.
func (s *ServerContext) HandleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("ok\n"))
}

func (s *ServerContext) requestOptions(r *http.Request) (processor.Options, error) {
	opts := s.Defaults
	q := r.URL.Query()

	if format := q.Get("format"); format != "" {
		switch format {
		case config.FormatYAML, config.FormatWKT:
			opts.Format = format
		default:
			return opts, fmt.Errorf("unknown format %q", format)
		}
	}

	if v := q.Get("minify"); v != "" {
		minify, err := strconv.ParseBool(v)
		if err != nil {
			return opts, fmt.Errorf("invalid minify %q", v)
		}
		opts.Minify = minify
	}

	if v := q.Get("precision"); v != "" {
		precision, err := strconv.Atoi(v)
		if err != nil || precision > geo.MaxPrecision {
			return opts, fmt.Errorf("invalid precision %q", v)
		}
		opts.Encode = []geo.EncodeOption{geo.WithPrecision(precision)}
	}

	return opts, nil
}
