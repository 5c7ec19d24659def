// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"errors"
	"fmt"

	"github.com/MKhiriev/go-blog-sync/internal/adapter"
)

// mapAdapterError translates the gateway's transport error into a service
// error. The adapter error stays in the chain so both sentinels match.
func mapAdapterError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, adapter.ErrUnauthorized):
		return fmt.Errorf("%w: %w", ErrUnauthorized, err)
	case errors.Is(err, adapter.ErrQueryUnsupported):
		return fmt.Errorf("%w: %w", ErrQueryUnsupported, err)
	case errors.Is(err, adapter.ErrNetworkFailure):
		return fmt.Errorf("%w: %w", ErrNetworkFailure, err)
	case errors.Is(err, adapter.ErrNotFound):
		return fmt.Errorf("%w: %w", ErrNotFound, err)
	case errors.Is(err, adapter.ErrDecode):
		return fmt.Errorf("%w: %w", ErrDecode, err)
	}

	return err
}

// syncFailure marks a recovered read path error.
func syncFailure(err error) error {
	if errors.Is(err, ErrSyncFailure) {
		return err
	}
	return fmt.Errorf("%w: %w", ErrSyncFailure, mapAdapterError(err))
}
