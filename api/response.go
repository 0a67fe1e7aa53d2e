package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"

	"github.com/katalvlaran/greenroute/dijkstra"
	"github.com/katalvlaran/greenroute/energy"
	"github.com/katalvlaran/greenroute/flow"
	"github.com/katalvlaran/greenroute/network"
	"github.com/katalvlaran/greenroute/strategy"
)

const maxBodySize = 1 << 16

type errorResponse struct {
	Error string `json:"error"`
}

func newErrResp(msg string) errorResponse {
	return errorResponse{Error: msg}
}

// Respond writes v as JSON with the given status. A value that cannot be
// encoded turns into a 500 JSON error; nothing of it reaches the client.
func Respond(w http.ResponseWriter, code int, v any) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(v); err != nil {
		buf.Reset()
		code = http.StatusInternalServerError
		_ = json.NewEncoder(&buf).Encode(newErrResp(http.StatusText(code)))
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_, _ = w.Write(buf.Bytes())
}

// statusOf maps domain errors onto HTTP status codes and client messages.
func statusOf(err error) (int, string) {
	switch {
	case errors.Is(err, network.ErrNotLoaded):
		return http.StatusServiceUnavailable, "no network loaded"
	case errors.Is(err, dijkstra.ErrNoRoute):
		return http.StatusNotFound, "no route"
	case errors.Is(err, dijkstra.ErrUnknownEndpoint),
		errors.Is(err, flow.ErrSourceNotFound), errors.Is(err, flow.ErrSinkNotFound):
		return http.StatusNotFound, err.Error()
	case errors.Is(err, strategy.ErrInvalidStrategy), errors.Is(err, errBadRequest),
		errors.Is(err, flow.ErrSameEndpoints), errors.Is(err, flow.ErrOptionViolation):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, network.ErrNoSources):
		return http.StatusConflict, err.Error()
	case errors.Is(err, energy.ErrMalformedInput):
		return http.StatusUnprocessableEntity, err.Error()
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return http.StatusRequestTimeout, http.StatusText(http.StatusRequestTimeout)
	default:
		return http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError)
	}
}

var errBadRequest = errors.New("api: bad request")

// decode reads exactly one JSON value of type T from an application/json body.
func decode[T any](w http.ResponseWriter, r *http.Request) (T, error) {
	var data T
	if mt, _, err := mime.ParseMediaType(r.Header.Get("Content-Type")); err != nil || mt != "application/json" {
		return data, fmt.Errorf("%w: content type must be application/json", errBadRequest)
	}

	body := http.MaxBytesReader(w, r.Body, maxBodySize)
	defer body.Close()

	dec := json.NewDecoder(body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&data); err != nil {
		return data, fmt.Errorf("%w: %v", errBadRequest, err)
	}
	var trailing struct{}
	if err := dec.Decode(&trailing); err != io.EOF {
		return data, fmt.Errorf("%w: body must contain a single JSON value", errBadRequest)
	}

	return data, nil
}
