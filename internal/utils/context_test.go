// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package utils

import (
	"context"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"

	"github.com/MKhiriev/go-blog-sync/models"
)

func TestContextKeyString(t *testing.T) {
	assert.Equal(t, "testKey", contextKey("testKey").String())
	assert.Equal(t, "claims", ClaimsCtxKey.String())
}

func TestGetClaimsFromContext(t *testing.T) {
	claims := models.Claims{
		RegisteredClaims: jwt.RegisteredClaims{Subject: "u1"},
		Email:            "ana@example.com",
	}

	got, ok := GetClaimsFromContext(WithClaims(context.Background(), claims))
	assert.True(t, ok)
	assert.Equal(t, "u1", got.Subject)
	assert.Equal(t, "ana@example.com", got.Email)
}

func TestGetClaimsFromContext_Missing(t *testing.T) {
	_, ok := GetClaimsFromContext(context.Background())
	assert.False(t, ok)
}

func TestGetClaimsFromContext_WrongType(t *testing.T) {
	ctx := context.WithValue(context.Background(), ClaimsCtxKey, "u1")
	_, ok := GetClaimsFromContext(ctx)
	assert.False(t, ok)
}
