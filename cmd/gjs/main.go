package main

import (
	"os"

	"github.com/woozymasta/gjs/internal/config"
	"github.com/woozymasta/gjs/internal/geo"
	"github.com/woozymasta/gjs/internal/logger"
	"github.com/woozymasta/gjs/internal/processor"

	"github.com/jessevdk/go-flags"
	"github.com/rs/zerolog/log"
)

type Options struct {
	Logger logger.Logger `group:"Logger options"`

	Args struct {
		Input   string `positional-arg-name:"INFILE"  description:"Input file, same as --in"`
		LogFile string `positional-arg-name:"LOGFILE" description:"Log file, same as --log-file"`
		Output  string `positional-arg-name:"OUTFILE" description:"Output file, same as --out"`
	} `positional-args:"yes"`

	ConfigFile string `short:"c" long:"config"    env:"CONFIG_FILE" description:"Path to configuration file"`
	Input      string `short:"i" long:"in"        description:"Input file path. Reads from stdin if empty"`
	Output     string `short:"o" long:"out"       description:"Output file path. Writes to stdout if empty"`
	Format     string `short:"f" long:"format"    description:"Input format" choice:"yaml" choice:"wkt"`
	Precision  int    `short:"p" long:"precision" description:"Fractional digits per coordinate (max 17), negative for shortest round-trip"`
	Minify     bool   `short:"m" long:"minify"    description:"Write compact JSON"`
}

func main() {
	var opts Options
	parser := flags.NewParser(&opts, flags.Default)
	if _, err := parser.Parse(); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		os.Exit(1)
	}

	// go-flags cannot tell an explicit zero from an unset int
	precisionSet := parser.FindOptionByLongName("precision").IsSet()

	if opts.Args.LogFile != "" {
		opts.Logger.File = opts.Args.LogFile
	}
	opts.Logger.Setup()
	defer opts.Logger.Close()

	if err := run(opts, precisionSet); err != nil {
		log.Error().Err(err).Msg("Conversion failed")
		opts.Logger.Close()
		os.Exit(1)
	}
}

func run(opts Options, precisionSet bool) error {
	cfg := config.Default()
	if opts.ConfigFile != "" {
		loaded, err := config.Load(opts.ConfigFile)
		if err != nil {
			return err
		}
		cfg = loaded
	}

	// Flags override the configuration file
	if opts.Format != "" {
		cfg.Format = opts.Format
	}
	if precisionSet {
		cfg.Precision = &opts.Precision
	}
	if opts.Minify {
		cfg.Minify = true
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	in := firstNonEmpty(opts.Input, opts.Args.Input)
	out := firstNonEmpty(opts.Output, opts.Args.Output)

	count, err := processor.ConvertFile(in, out, processor.OptionsFromConfig(cfg))
	if err != nil {
		return err
	}

	log.Info().
		Int("features", count).
		Str("out", out).
		Int("precision", precisionOf(cfg)).
		Msg("Successfully converted")

	return nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func precisionOf(cfg *config.Config) int {
	if cfg.Precision == nil {
		return geo.DefaultPrecision
	}
	return *cfg.Precision
}
