// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package gpiohttp

import (
	"net/http"
	"runtime/debug"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
)

// LoggerMiddleware logs one access line per request and turns panics into
// a 500.
func LoggerMiddleware(logger *zerolog.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		fn := func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			t1 := time.Now()
			defer func() {
				if rec := recover(); rec != nil {
					logger.Error().
						Interface("recover_info", rec).
						Bytes("debug_stack", debug.Stack()).
						Msg("HTTP endpoint panic")
					http.Error(ww, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
				}
				ev := logger.Info()
				if ww.Status() >= http.StatusInternalServerError {
					ev = logger.Warn()
				}
				ev.Str("type", "access").
					Str("remote_ip", r.RemoteAddr).
					Str("url", r.URL.Path).
					Str("method", r.Method).
					Int("status", ww.Status()).
					Float64("latency_ms", float64(time.Since(t1).Nanoseconds())/1e6).
					Int("bytes_out", ww.BytesWritten()).
					Msg("HTTP request")
			}()
			next.ServeHTTP(ww, r)
		}
		return http.HandlerFunc(fn)
	}
}
