package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptrace"
	"time"
)

type ResponseWrapper struct {
	*http.Response
	Text string
}

// client trace to log whether the request's underlying tcp connection was re-used
func trace_context(log *slog.Logger) context.Context {
	client_tracer := &httptrace.ClientTrace{
		GotConn: func(info httptrace.GotConnInfo) {
			log.Debug("HTTP connection reuse", "reused", info.Reused, "remote", info.Conn.RemoteAddr())
		},
	}
	return httptrace.WithClientTrace(context.Background(), client_tracer)
}

func download(cfg Config, url string, headers map[string]string) (ResponseWrapper, error) {
	cfg.Log.Debug("HTTP GET", "url", url)
	empty_response := ResponseWrapper{}

	// ---

	ctx, cancel := context.WithTimeout(trace_context(cfg.Log), cfg.Timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return empty_response, fmt.Errorf("failed to create request: %w", err)
	}
	for header, header_val := range headers {
		req.Header.Set(header, header_val)
	}

	// ---

	resp, err := cfg.Client.Do(req)
	if err != nil {
		return empty_response, fmt.Errorf("failed to fetch '%s': %w", url, err)
	}
	defer resp.Body.Close()

	// ---

	content_bytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return empty_response, fmt.Errorf("failed to read response body: %w", err)
	}

	return ResponseWrapper{
		Response: resp,
		Text:     string(content_bytes),
	}, nil
}

// just like `download` but adds an 'authorization' header to the request
// when a token is configured. absence of a token is not an error.
func github_download(cfg Config, url string) (ResponseWrapper, error) {
	headers := map[string]string{}
	if cfg.Token != "" {
		headers["Authorization"] = "token " + cfg.Token
	}
	return download(cfg, url, headers)
}

// accepts a response when the request succeeded outright.
func http_ok(resp ResponseWrapper) bool {
	return resp.StatusCode == 200
}

// runs `fn` up to `cfg.Retries` times with a fixed `cfg.RetryDelay` pause
// between attempts, until `ok` accepts the response. a transport error and an
// unacceptable response both count as failed attempts.
// returns false once the final attempt has failed.
func with_retries(cfg Config, op string, ok func(ResponseWrapper) bool, fn func() (ResponseWrapper, error)) (ResponseWrapper, bool) {
	for i := 1; i <= cfg.Retries; i++ {
		resp, err := fn()
		if err == nil && ok(resp) {
			return resp, true
		}
		if err != nil {
			cfg.Log.Error("request failed", "op", op, "attempt", i, "retries", cfg.Retries, "error", err)
		} else {
			cfg.Log.Warn("unsuccessful response", "op", op, "attempt", i, "retries", cfg.Retries, "status", resp.StatusCode)
		}
		if i < cfg.Retries {
			time.Sleep(cfg.RetryDelay)
		}
	}
	cfg.Log.Warn("giving up", "op", op, "retries", cfg.Retries)
	return ResponseWrapper{}, false
}
