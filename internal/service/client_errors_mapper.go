// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"errors"
	"fmt"
	"strings"

	"github.com/MKhiriev/sim-sekolah/internal/adapter"
	"github.com/MKhiriev/sim-sekolah/internal/app"
)

// mapAdapterError translates the adapter's transport error into a service
// business error. The adapter error stays in the chain, so both
// errors.Is(err, ErrX) and adapter.ServerMessage(err) keep working.
func mapAdapterError(err error) error {
	if err == nil {
		return nil
	}

	msg := adapter.ServerMessage(err)

	switch {
	case errors.Is(err, adapter.ErrUnauthorized):
		switch msg {
		case app.MsgWrongCredentials:
			return wrap(ErrWrongPassword, err)
		case app.MsgTokenMissing:
			return wrap(ErrTokenMissing, err)
		default:
			return wrap(ErrTokenIsExpired, err)
		}

	case errors.Is(err, adapter.ErrForbidden):
		return wrap(ErrAccessDenied, err)

	case errors.Is(err, adapter.ErrNotFound):
		return wrap(ErrNotFound, err)

	case errors.Is(err, adapter.ErrConflict):
		if strings.Contains(msg, app.MsgScheduleClashMarker) {
			return wrap(ErrScheduleClash, err)
		}
		if msg == app.MsgEmailTaken {
			return wrap(ErrEmailTaken, err)
		}

	case errors.Is(err, adapter.ErrBadRequest),
		errors.Is(err, adapter.ErrUnprocessable),
		errors.Is(err, adapter.ErrUnsuccessful):
		switch {
		case msg == app.MsgValidationFailed:
			return wrap(ErrValidationFailed, err)
		case msg == app.MsgEmailTaken:
			return wrap(ErrEmailTaken, err)
		case msg == app.MsgInvalidTimeRange:
			return wrap(ErrInvalidTimeRange, err)
		case msg == app.MsgSemesterRequired:
			return wrap(ErrSemesterRequired, err)
		case msg == app.MsgNoChildren:
			return wrap(ErrNoChildren, err)
		case strings.Contains(msg, app.MsgScheduleClashMarker):
			return wrap(ErrScheduleClash, err)
		case strings.HasSuffix(msg, app.MsgNotFoundSuffix):
			return wrap(ErrNotFound, err)
		}

	case errors.Is(err, adapter.ErrInternalServerError),
		errors.Is(err, adapter.ErrBadGateway):
		return wrap(ErrServerUnavailable, err)
	}

	return err
}

func wrap(sentinel, cause error) error {
	return fmt.Errorf("%w: %w", sentinel, cause)
}
