package server

import (
	"github.com/woozymasta/gjs/internal/config"
	"github.com/woozymasta/gjs/internal/processor"

	"github.com/rs/zerolog/log"
)

// ServerContext holds dependencies for request handlers.
type ServerContext struct {
	Config   *config.Config
	Defaults processor.Options
}

// NewServerContext initializes the context from the loaded configuration.
func NewServerContext(cfg *config.Config) *ServerContext {
	defaults := processor.OptionsFromConfig(cfg)

	log.Info().
		Str("default_format", defaults.Format).
		Bool("minify", defaults.Minify).
		Int64("max_body_size", cfg.Server.MaxBodySize).
		Msg("Server context initialized")

	return &ServerContext{
		Config:   cfg,
		Defaults: defaults,
	}
}
