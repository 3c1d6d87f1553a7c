// Command gumshoe extracts contact details from a raw profile payload.
//
// Usage:
//
//	gumshoe -platform github profile.json
//	curl -s https://api.github.com/users/janedoe | gumshoe -platform github -
//	gumshoe -platform github -analyzer openai profile.json  # requires OPENAI_API_KEY
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/codeGROOVE-dev/gumshoe"
	"github.com/codeGROOVE-dev/gumshoe/analyze"
	"github.com/codeGROOVE-dev/gumshoe/fetch"
)

func main() {
	platform := flag.String("platform", "generic", "platform the profile came from (github, twitter, mastodon, ...)")
	depth := flag.Int("depth", 2, "maximum exploration depth")
	widths := flag.String("widths", "", "comma-separated frontier widths per level (e.g. 4,3,2); empty uses defaults")
	timeout := flag.Duration("timeout", 8*time.Second, "per-page fetch timeout")
	deny := flag.String("deny", "", "comma-separated extra deny-list patterns")
	analyzer := flag.String("analyzer", "", "content-analysis backend: openai, gemini, or empty for pattern-only")
	model := flag.String("model", "", "override the analysis model name")
	debug := flag.Bool("debug", false, "enable debug logging")
	noBrowser := flag.Bool("no-browser", false, "disable reading cookies from browser stores")
	noCache := flag.Bool("no-cache", false, "disable page caching")
	cacheTTL := flag.Duration("cache-ttl", 24*time.Hour, "cache time-to-live")
	flag.Parse()

	if flag.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "Usage: gumshoe [options] <profile.json | ->")
		fmt.Fprintln(os.Stderr, "\nReads a raw profile payload (JSON object) from a file or stdin and")
		fmt.Fprintln(os.Stderr, "prints the discovered contact record as JSON.")
		fmt.Fprintln(os.Stderr, "\nOptions:")
		flag.PrintDefaults()
		fmt.Fprintln(os.Stderr, "\nAnalyzers:")
		fmt.Fprintln(os.Stderr, "  openai  OpenAI-compatible chat endpoint (OPENAI_API_KEY, optional OPENAI_BASE_URL)")
		fmt.Fprintln(os.Stderr, "  gemini  Google Gemini (GEMINI_API_KEY)")
		os.Exit(1)
	}

	logLevel := slog.LevelInfo
	if *debug {
		logLevel = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel}))

	raw, err := readProfile(flag.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()

	opts := []gumshoe.Option{
		gumshoe.WithLogger(logger),
		gumshoe.WithMaxDepth(*depth),
		gumshoe.WithFetchTimeout(*timeout),
	}
	if ws, err := parseWidths(*widths); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	} else if len(ws) > 0 {
		opts = append(opts, gumshoe.WithFrontierWidths(ws...))
	}
	if *deny != "" {
		opts = append(opts, gumshoe.WithDenyList(strings.Split(*deny, ",")...))
	}
	if !*noBrowser {
		opts = append(opts, gumshoe.WithBrowserCookies())
	}

	if !*noCache {
		cache, err := fetch.NewCache(*cacheTTL)
		if err != nil {
			logger.Warn("failed to initialize cache, continuing without cache", "error", err)
		} else {
			defer func() {
				if err := cache.Close(); err != nil {
					logger.Warn("failed to close cache", "error", err)
				}
			}()
			opts = append(opts, gumshoe.WithCache(cache))
		}
	}

	a, err := buildAnalyzer(ctx, *analyzer, *model, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1) //nolint:gocritic // exitAfterDefer is acceptable in main
	}
	if a != nil {
		opts = append(opts, gumshoe.WithAnalyzer(a))
	}

	info, err := gumshoe.ExtractContacts(ctx, raw, *platform, opts...)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(info); err != nil {
		fmt.Fprintf(os.Stderr, "Output error: %v\n", err)
		os.Exit(1)
	}
}

func readProfile(path string) (map[string]any, error) {
	var data []byte
	var err error
	if path == "-" {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(path) //nolint:gosec // path comes from the CLI user
	}
	if err != nil {
		return nil, fmt.Errorf("read profile: %w", err)
	}

	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse profile JSON: %w", err)
	}
	return raw, nil
}

func parseWidths(s string) ([]int, error) {
	if s == "" {
		return nil, nil
	}
	parts := strings.Split(s, ",")
	widths := make([]int, 0, len(parts))
	for _, p := range parts {
		w, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return nil, fmt.Errorf("invalid width %q", p)
		}
		widths = append(widths, w)
	}
	return widths, nil
}

func buildAnalyzer(ctx context.Context, backend, model string, logger *slog.Logger) (analyze.Analyzer, error) {
	switch backend {
	case "":
		return nil, nil //nolint:nilnil // pattern-only mode needs no analyzer
	case "openai":
		key := os.Getenv("OPENAI_API_KEY")
		if key == "" {
			return nil, errors.New("analyzer openai requires OPENAI_API_KEY")
		}
		endpoint := os.Getenv("OPENAI_BASE_URL")
		if endpoint == "" {
			endpoint = "https://api.openai.com/v1/chat/completions"
		}
		opts := []analyze.ClientOption{analyze.WithClientLogger(logger)}
		if model != "" {
			opts = append(opts, analyze.WithModel(model))
		}
		return analyze.NewClient(endpoint, key, opts...)
	case "gemini":
		key := os.Getenv("GEMINI_API_KEY")
		if key == "" {
			return nil, errors.New("analyzer gemini requires GEMINI_API_KEY")
		}
		return analyze.NewGemini(ctx, key, model, logger)
	default:
		return nil, fmt.Errorf("unknown analyzer %q", backend)
	}
}
