package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/MKhiriev/go-blog-sync/internal/adapter"
)

func TestMapAdapterError(t *testing.T) {
	tests := []struct {
		name string
		in   error
		want error
	}{
		{"unauthorized", fmt.Errorf("%w: token expired", adapter.ErrUnauthorized), ErrUnauthorized},
		{"query unsupported", fmt.Errorf("%w: requires an index", adapter.ErrQueryUnsupported), ErrQueryUnsupported},
		{"network", fmt.Errorf("%w: dial tcp", adapter.ErrNetworkFailure), ErrNetworkFailure},
		{"not found", adapter.ErrNotFound, ErrNotFound},
		{"decode", fmt.Errorf("%w: post p1: title missing", adapter.ErrDecode), ErrDecode},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := mapAdapterError(tt.in)
			assert.ErrorIs(t, got, tt.want)
			assert.ErrorIs(t, got, tt.in)
		})
	}
}

func TestMapAdapterError_PassThrough(t *testing.T) {
	assert.NoError(t, mapAdapterError(nil))
	assert.Equal(t, context.Canceled, mapAdapterError(context.Canceled))

	internal := fmt.Errorf("%w: boom", adapter.ErrInternalServerError)
	assert.Equal(t, internal, mapAdapterError(internal))
}

func TestSyncFailure(t *testing.T) {
	err := syncFailure(fmt.Errorf("%w: eof", adapter.ErrNetworkFailure))
	assert.ErrorIs(t, err, ErrSyncFailure)
	assert.ErrorIs(t, err, ErrNetworkFailure)

	// Already marked errors are not wrapped twice.
	assert.Equal(t, err, syncFailure(err))
	assert.False(t, errors.Is(syncFailure(adapter.ErrStream), ErrNetworkFailure))
}
