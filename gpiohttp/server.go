// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package gpiohttp

import (
	"encoding/json"
	"errors"
	"net/http"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"periph.io/x/sunxi/config"
	"periph.io/x/sunxi/pio"
)

// Pins is the subset of *pio.Driver served.
type Pins interface {
	SetFunction(p pio.Pin, f pio.Function) error
	Function(p pio.Pin) (pio.Function, error)
	Out(p pio.Pin, l pio.Level) error
	Read(p pio.Pin) (pio.Level, error)
	Latched(p pio.Pin) (pio.Level, error)
	SetPull(p pio.Pin, pull pio.Pull) error
	Pull(p pio.Pin) (pio.Pull, error)
}

// PinState is the JSON representation of a pin.
type PinState struct {
	Name     string   `json:"name"`
	Number   int      `json:"number"`
	Aliases  []string `json:"aliases,omitempty"`
	Function string   `json:"function"`
	Level    string   `json:"level"`
	Pull     string   `json:"pull"`
}

type server struct {
	pins Pins
	cfg  *config.Config

	// Register updates are read-modify-write.
	mu sync.Mutex
}

// New returns the HTTP handler over pins.
//
// cfg provides the aliases; it may be nil. logger may be nil, in which case
// the global zerolog logger is used.
func New(pins Pins, cfg *config.Config, logger *zerolog.Logger) http.Handler {
	if cfg == nil {
		cfg = config.Default()
	}
	if logger == nil {
		logger = &log.Logger
	}
	s := &server{pins: pins, cfg: cfg}
	r := chi.NewRouter()
	r.Use(LoggerMiddleware(logger))
	r.Get("/pins", s.listPins)
	r.Route("/pins/{pin}", func(r chi.Router) {
		r.Get("/", s.getPin)
		r.Put("/function", s.putFunction)
		r.Put("/level", s.putLevel)
		r.Put("/pull", s.putPull)
	})
	return r
}

func (s *server) listPins(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	all := pio.Pins()
	out := make([]PinState, 0, len(all))
	for _, p := range all {
		st, err := s.state(p)
		if err != nil {
			RespondError(w, err)
			return
		}
		out = append(out, st)
	}
	RespondJSON(w, http.StatusOK, out)
}

func (s *server) getPin(w http.ResponseWriter, r *http.Request) {
	p, ok := s.pin(w, r)
	if !ok {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.respondState(w, p)
}

func (s *server) putFunction(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Function string `json:"function"`
	}
	p, ok := s.decode(w, r, &body)
	if !ok {
		return
	}
	f, err := pio.ParseFunction(body.Function)
	if err != nil {
		RespondBadRequest(w, err.Error())
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.pins.SetFunction(p, f); err != nil {
		RespondError(w, err)
		return
	}
	s.respondState(w, p)
}

func (s *server) putLevel(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Level string `json:"level"`
	}
	p, ok := s.decode(w, r, &body)
	if !ok {
		return
	}
	l, err := pio.ParseLevel(body.Level)
	if err != nil {
		RespondBadRequest(w, err.Error())
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.pins.Out(p, l); err != nil {
		RespondError(w, err)
		return
	}
	s.respondState(w, p)
}

func (s *server) putPull(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Pull string `json:"pull"`
	}
	p, ok := s.decode(w, r, &body)
	if !ok {
		return
	}
	pull, err := pio.ParsePull(body.Pull)
	if err != nil {
		RespondBadRequest(w, err.Error())
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.pins.SetPull(p, pull); err != nil {
		RespondError(w, err)
		return
	}
	s.respondState(w, p)
}

// pin resolves the {pin} URL parameter, answering 404 when unknown.
func (s *server) pin(w http.ResponseWriter, r *http.Request) (pio.Pin, bool) {
	name := chi.URLParam(r, "pin")
	p, err := s.cfg.Resolve(name)
	if err != nil {
		RespondNotFoundError(w, err.Error())
		return pio.NoPin, false
	}
	return p, true
}

func (s *server) decode(w http.ResponseWriter, r *http.Request, body any) (pio.Pin, bool) {
	p, ok := s.pin(w, r)
	if !ok {
		return p, false
	}
	d := json.NewDecoder(r.Body)
	d.DisallowUnknownFields()
	if err := d.Decode(body); err != nil {
		RespondBadRequest(w, "invalid body: "+err.Error())
		return p, false
	}
	return p, true
}

func (s *server) respondState(w http.ResponseWriter, p pio.Pin) {
	st, err := s.state(p)
	if err != nil {
		RespondError(w, err)
		return
	}
	RespondJSON(w, http.StatusOK, st)
}

// state must be called with s.mu held.
func (s *server) state(p pio.Pin) (PinState, error) {
	st := PinState{Name: p.String(), Number: int(p), Aliases: s.cfg.Names(p)}
	f, err := s.pins.Function(p)
	if err != nil {
		return st, err
	}
	st.Function = f.String()
	var l pio.Level
	if f == pio.Input {
		l, err = s.pins.Read(p)
	} else {
		l, err = s.pins.Latched(p)
	}
	if err != nil {
		return st, err
	}
	st.Level = l.String()
	pull, err := s.pins.Pull(p)
	if err != nil {
		return st, err
	}
	st.Pull = pull.String()
	return st, nil
}

/////////////////////
// Response helpers

type errorBody struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

// StatusCode returns the HTTP status matching err.
func StatusCode(err error) int {
	var c pio.Code
	if !errors.As(err, &c) {
		return http.StatusInternalServerError
	}
	switch c {
	case pio.InvalidPin:
		return http.StatusNotFound
	case pio.NotOutput, pio.NotInput:
		return http.StatusConflict
	case pio.NotInitialized:
		return http.StatusServiceUnavailable
	}
	if c.Class() == pio.ClassConfig {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

// RespondError writes err as JSON with the status from StatusCode.
func RespondError(w http.ResponseWriter, err error) {
	body := errorBody{Error: err.Error()}
	var c pio.Code
	if errors.As(err, &c) {
		body.Code = codeName(c)
	}
	RespondJSON(w, StatusCode(err), body)
}

func RespondNotFoundError(w http.ResponseWriter, msg string) {
	RespondJSON(w, http.StatusNotFound, errorBody{Error: msg})
}

func RespondBadRequest(w http.ResponseWriter, msg string) {
	RespondJSON(w, http.StatusBadRequest, errorBody{Error: msg})
}

func RespondJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Err(err).Msg("gpiohttp: encoding response")
	}
}

var codeNames = map[pio.Code]string{
	pio.NoAccess:         "NoAccess",
	pio.OutOfMemory:      "OutOfMemory",
	pio.MapFailed:        "MapFailed",
	pio.InvalidDirection: "InvalidDirection",
	pio.InvalidLevel:     "InvalidLevel",
	pio.InvalidPull:      "InvalidPull",
	pio.InvalidDrive:     "InvalidDrive",
	pio.InvalidPin:       "InvalidPin",
	pio.NotOutput:        "NotOutput",
	pio.NotInput:         "NotInput",
	pio.ReadFailed:       "ReadFailed",
	pio.NotInitialized:   "NotInitialized",
}

func codeName(c pio.Code) string {
	if s, ok := codeNames[c]; ok {
		return s
	}
	return c.Error()
}
