package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/heaviest/pkg/cache"
	errs "github.com/matzehuels/heaviest/pkg/errors"
)

// Layout engines accepted by [Render].
const (
	EngineDot   = "dot"
	EngineNeato = "neato"
	EngineCirco = "circo"
	EngineFdp   = "fdp"
)

// Output formats accepted by [Render].
const (
	FormatSVG = "svg"
	FormatPNG = "png"
)

var (
	engines = map[string]graphviz.Layout{
		EngineDot:   graphviz.DOT,
		EngineNeato: graphviz.NEATO,
		EngineCirco: graphviz.CIRCO,
		EngineFdp:   graphviz.FDP,
	}
	formats = map[string]graphviz.Format{
		FormatSVG: graphviz.SVG,
		FormatPNG: graphviz.PNG,
	}
)

// Engines lists the supported layout engines.
var Engines = []string{EngineDot, EngineNeato, EngineCirco, EngineFdp}

// Formats lists the supported output formats.
var Formats = []string{FormatSVG, FormatPNG}

// Render lays out dot with engine and encodes it as format.
func Render(ctx context.Context, dot, engine, format string) ([]byte, error) {
	layout, ok := engines[engine]
	if !ok {
		return nil, errs.New(errs.ErrCodeUnsupported, "layout engine %q (want one of %v)", engine, Engines)
	}
	f, ok := formats[format]
	if !ok {
		return nil, errs.ValidateFormat(format, Formats...)
	}

	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()
	gv.SetLayout(layout)

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, errs.Wrap(errs.ErrCodeInvalidFormat, err, "parse DOT")
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, f, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	if format == FormatSVG {
		return normalizeViewBox(buf.Bytes()), nil
	}
	return buf.Bytes(), nil
}

// RenderSVG renders dot to SVG with the given engine.
func RenderSVG(ctx context.Context, dot, engine string) ([]byte, error) {
	return Render(ctx, dot, engine, FormatSVG)
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox replaces Graphviz's point-based svg header with one whose
// width and height match the viewBox, so the image scales in browsers.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}
	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}
	header := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`, w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(header))
}

// Renderer renders DOT through a cache.
type Renderer struct {
	Cache  cache.Cache
	TTL    time.Duration
	Logger *log.Logger
}

// NewRenderer creates a renderer. A nil cache disables caching and a nil
// logger discards output.
func NewRenderer(c cache.Cache, ttl time.Duration, logger *log.Logger) *Renderer {
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return &Renderer{Cache: c, TTL: ttl, Logger: logger}
}

// Render returns the rendered bytes and whether they came from the cache.
// Cache read and write failures are logged and otherwise ignored.
func (r *Renderer) Render(ctx context.Context, dot, engine, format string) ([]byte, bool, error) {
	key := cache.RenderKey([]byte(dot), engine, format)

	data, hit, err := r.Cache.Get(ctx, key)
	if err != nil {
		r.Logger.Warn("render cache read failed", "err", err)
	}
	if hit {
		r.Logger.Debug("render cache hit", "engine", engine, "format", format, "bytes", len(data))
		return data, true, nil
	}

	start := time.Now()
	out, err := Render(ctx, dot, engine, format)
	if err != nil {
		return nil, false, err
	}
	r.Logger.Debug("rendered", "engine", engine, "format", format, "bytes", len(out), "duration", time.Since(start))

	if err := r.Cache.Set(ctx, key, out, r.TTL); err != nil {
		r.Logger.Warn("render cache write failed", "err", err)
	}
	return out, false, nil
}
