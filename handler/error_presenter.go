/**
 * Copyright (c) 2019, The Artemis Authors.
 *
 * Permission to use, copy, modify, and/or distribute this software for any
 * purpose with or without fee is hereby granted, provided that the above
 * copyright notice and this permission notice appear in all copies.
 *
 * THE SOFTWARE IS PROVIDED "AS IS" AND THE AUTHOR DISCLAIMS ALL WARRANTIES
 * WITH REGARD TO THIS SOFTWARE INCLUDING ALL IMPLIED WARRANTIES OF
 * MERCHANTABILITY AND FITNESS. IN NO EVENT SHALL THE AUTHOR BE LIABLE FOR
 * ANY SPECIAL, DIRECT, INDIRECT, OR CONSEQUENTIAL DAMAGES OR ANY DAMAGES
 * WHATSOEVER RESULTING FROM LOSS OF USE, DATA OR PROFITS, WHETHER IN AN
 * ACTION OF CONTRACT, NEGLIGENCE OR OTHER TORTIOUS ACTION, ARISING OUT OF
 * OR IN CONNECTION WITH THE USE OR PERFORMANCE OF THIS SOFTWARE.
 */

package handler

import (
	"errors"
	"net/http"

	"github.com/botobag/helios/crunch"

	"github.com/json-iterator/go"
)

// errorResponse is the body of response to a value that cannot be crunched or a pool that cannot be
// decompacted.
type errorResponse struct {
	Error string      `json:"error"`
	Kind  string      `json:"kind"`
	Path  crunch.Path `json:"path,omitempty"`
}

// errorPresenter presents an error to a http.ResponseWriter.
type errorPresenter struct{}

// Write sends err to w and returns the status code of the response.
func (errorPresenter) Write(w http.ResponseWriter, err error) int {
	switch err := err.(type) {
	case *ErrUnsupportedMediaType:
		http.Error(w, err.Error(), http.StatusUnsupportedMediaType)
		return http.StatusUnsupportedMediaType

	case *RequestError:
		http.Error(w, err.Error(), http.StatusBadRequest)
		return http.StatusBadRequest
	}

	var e *crunch.Error
	if !errors.As(err, &e) {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return http.StatusInternalServerError
	}

	body, marshalErr := jsoniter.ConfigCompatibleWithStandardLibrary.Marshal(errorResponse{
		Error: err.Error(),
		Kind:  e.Kind.String(),
		Path:  e.Path,
	})
	if marshalErr != nil {
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		return http.StatusUnprocessableEntity
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(http.StatusUnprocessableEntity)
	w.Write(body)
	return http.StatusUnprocessableEntity
}
