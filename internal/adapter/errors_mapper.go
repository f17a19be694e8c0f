// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-resty/resty/v2"
)

type messageEnvelope struct {
	Success *bool  `json:"success"`
	Message string `json:"message"`
	Error   string `json:"error"`
}

func mapHTTPError(resp *resty.Response) error {
	status := resp.StatusCode()
	body := resp.Body()

	if status >= http.StatusOK && status < http.StatusMultipleChoices {
		var env messageEnvelope
		if json.Unmarshal(body, &env) == nil && env.Success != nil && !*env.Success {
			return NewServerError(status, env.Message)
		}
		return nil
	}

	return NewServerError(status, extractMessage(body))
}

// NewServerError classifies a response by status. A 2xx status means the
// envelope reported "success": false.
func NewServerError(status int, message string) *ServerError {
	se := &ServerError{Status: status, Message: message}

	switch {
	case status >= http.StatusOK && status < http.StatusMultipleChoices:
		se.kind = ErrUnsuccessful
	case status == http.StatusBadRequest:
		se.kind = ErrBadRequest
	case status == http.StatusUnauthorized:
		se.kind = ErrUnauthorized
	case status == http.StatusForbidden:
		se.kind = ErrForbidden
	case status == http.StatusNotFound:
		se.kind = ErrNotFound
	case status == http.StatusConflict:
		se.kind = ErrConflict
	case status == http.StatusUnprocessableEntity:
		se.kind = ErrUnprocessable
	case status == http.StatusBadGateway:
		se.kind = ErrBadGateway
	case status == http.StatusInternalServerError:
		se.kind = ErrInternalServerError
	default:
		if status >= http.StatusInternalServerError {
			se.kind = ErrInternalServerError
		} else {
			se.kind = ErrBadRequest
		}
		if se.Message == "" {
			se.Message = http.StatusText(status)
		}
	}

	return se
}

// extractMessage prefers the JSON "message" (then "error") field and falls
// back to the raw body text.
func extractMessage(body []byte) string {
	var env messageEnvelope
	if err := json.Unmarshal(body, &env); err == nil {
		if env.Message != "" {
			return env.Message
		}
		if env.Error != "" {
			return env.Error
		}
		return ""
	}
	return strings.TrimSpace(string(body))
}
