// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "github.com/golang-jwt/jwt/v5"

// Claims is the claim set carried by bearer tokens accepted by the document
// store. The subject is the user identifier.
type Claims struct {
	jwt.RegisteredClaims

	Email   string `json:"email,omitempty"`
	Name    string `json:"name,omitempty"`
	Picture string `json:"picture,omitempty"`
}

// Identity converts the claims into an [Identity].
func (c Claims) Identity() Identity {
	return Identity{
		UserID:   c.Subject,
		Email:    c.Email,
		Name:     c.Name,
		PhotoURL: c.Picture,
	}
}
