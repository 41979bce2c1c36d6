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
	"fmt"
	"io"
	"net/http"

	"github.com/botobag/helios/internal/input"
)

// RequestError is returned when a request cannot be read.
type RequestError struct {
	Request *http.Request
	Err     error
}

// Error implements Go's error interface.
func (err *RequestError) Error() string {
	return err.Err.Error()
}

// Unwrap returns the underlying error.
func (err *RequestError) Unwrap() error {
	return err.Err
}

// ErrUnsupportedMediaType describes a request with content type that is neither JSON nor YAML.
type ErrUnsupportedMediaType struct {
	Request     *http.Request
	ContentType string
}

// Error implements Go's error interface.
func (err *ErrUnsupportedMediaType) Error() string {
	return fmt.Sprintf(`unsupported content type "%s"`, err.ContentType)
}

var (
	errRequestBodyTooLarge = errors.New("request body is too large")
	errInvalidPoolDocument = errors.New("invalid JSON document")
)

// readBody reads the entire body of r up to maxBodySize bytes.
func readBody(r *http.Request, maxBodySize uint) ([]byte, error) {
	// Read one more byte to detect the overflow.
	body, err := io.ReadAll(io.LimitReader(r.Body, int64(maxBodySize)+1))
	if err != nil {
		return nil, &RequestError{
			Request: r,
			Err:     err,
		}
	}

	if uint(len(body)) > maxBodySize {
		return nil, &RequestError{
			Request: r,
			Err:     errRequestBodyTooLarge,
		}
	}

	return body, nil
}

// parseDocument reads the body of r and decodes the value tree according to its content type.
func parseDocument(r *http.Request, maxBodySize uint) (interface{}, error) {
	contentType := r.Header.Get("Content-Type")
	format, ok := input.FormatOfMediaType(contentType)
	if !ok {
		return nil, &ErrUnsupportedMediaType{
			Request:     r,
			ContentType: contentType,
		}
	}

	body, err := readBody(r, maxBodySize)
	if err != nil {
		return nil, err
	}

	value, err := input.Decode(body, format)
	if err != nil {
		return nil, &RequestError{
			Request: r,
			Err:     err,
		}
	}

	return value, nil
}
