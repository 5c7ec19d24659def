// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// Identity describes the signed-in user as reported by the identity provider.
type Identity struct {
	UserID   string
	Email    string
	Name     string
	PhotoURL string
}

// DisplayName returns the name shown next to the user's comments: the profile
// name, then the email, then a generic label.
func (i Identity) DisplayName() string {
	switch {
	case i.Name != "":
		return i.Name
	case i.Email != "":
		return i.Email
	default:
		return "Anonymous"
	}
}
