package processor

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/woozymasta/gjs/internal/config"
	"github.com/woozymasta/gjs/internal/geo"

	"github.com/rs/zerolog/log"
	"github.com/tdewolff/minify/v2"
	mjson "github.com/tdewolff/minify/v2/json"
)

const jsonMediaType = "application/json"

// ReadFunc parses one input format into b.
type ReadFunc func(r io.Reader, b Builder) (int, error)

var readers = map[string]ReadFunc{
	config.FormatYAML: ReadYAML,
	config.FormatWKT:  ReadWKT,
}

// Options control a single conversion.
type Options struct {
	Format string
	Encode []geo.EncodeOption
	Minify bool
}

// OptionsFromConfig derives conversion options from cfg.
func OptionsFromConfig(cfg *config.Config) Options {
	return Options{
		Format: cfg.Format,
		Encode: cfg.EncodeOptions(),
		Minify: cfg.Minify,
	}
}

// Convert reads the whole input from r, then writes it to w as a GeoJSON
// FeatureCollection. Nothing is written to w when reading fails. It returns
// the number of features written.
func Convert(r io.Reader, w io.Writer, opts Options) (int, error) {
	read, ok := readers[opts.Format]
	if !ok {
		return 0, fmt.Errorf("unknown input format %q", opts.Format)
	}

	fc, err := geo.NewFeatureCollection()
	if err != nil {
		return 0, err
	}
	defer fc.Destroy()

	start := time.Now()
	if _, err := read(r, fc); err != nil {
		return 0, err
	}

	if err := encode(fc, w, opts); err != nil {
		return 0, err
	}

	log.Debug().
		Str("format", opts.Format).
		Int("features", fc.Len()).
		Bool("minify", opts.Minify).
		Dur("duration", time.Since(start)).
		Msg("Conversion finished")

	return fc.Len(), nil
}

func encode(fc *geo.FeatureCollection, w io.Writer, opts Options) error {
	if !opts.Minify {
		return geo.NewEncoder(w, opts.Encode...).Encode(fc)
	}

	m := minify.New()
	m.AddFunc(jsonMediaType, mjson.Minify)

	mw := m.Writer(jsonMediaType, w)
	if err := geo.NewEncoder(mw, opts.Encode...).Encode(fc); err != nil {
		_ = mw.Close()
		return err
	}
	if err := mw.Close(); err != nil {
		return &geo.WriteError{Err: err}
	}
	return nil
}

// ConvertFile converts the file at inPath into outPath. Empty paths select
// stdin and stdout.
func ConvertFile(inPath, outPath string, opts Options) (count int, err error) {
	in := io.Reader(os.Stdin)
	if inPath != "" {
		f, openErr := os.Open(inPath)
		if openErr != nil {
			return 0, openErr
		}
		// Explicitly ignore close error as it's a read-only operation
		defer func() { _ = f.Close() }()
		in = f
	}

	out := io.Writer(os.Stdout)
	if outPath != "" {
		f, createErr := os.Create(outPath)
		if createErr != nil {
			return 0, createErr
		}

		// We care about write errors on close
		defer func() {
			if closeErr := f.Close(); closeErr != nil {
				log.Error().Err(closeErr).Str("path", outPath).Msg("Failed to close file")
				if err == nil {
					err = &geo.WriteError{Err: closeErr}
				}
			}
		}()
		out = f
	}

	log.Info().
		Str("in", displayPath(inPath, "stdin")).
		Str("out", displayPath(outPath, "stdout")).
		Str("format", opts.Format).
		Msg("Converting")

	return Convert(in, out, opts)
}

func displayPath(path, fallback string) string {
	if path == "" {
		return fallback
	}
	return path
}
