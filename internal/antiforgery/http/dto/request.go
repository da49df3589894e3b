// Package dto provides data transfer objects for HTTP request and response handling.
package dto

import (
	validation "github.com/jellydator/validation"

	customValidation "github.com/allisson/antiforgery/internal/validation"
)

// GenerateTokenRequest contains the optional parameters for token generation.
// A zero entropy means "use the session registry's configured default".
type GenerateTokenRequest struct {
	Entropy int `json:"entropy"`
}

// Validate checks if the generate token request is valid.
func (r *GenerateTokenRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Entropy,
			validation.Min(0),
		),
	)
}

// VerifyTokenRequest contains the parameters for token verification.
// Keep disables single-use consumption: the token stays registered after a
// successful match.
type VerifyTokenRequest struct {
	Token string `json:"token" binding:"required"`
	Keep  bool   `json:"keep"`
}

// Validate checks if the verify token request is valid.
func (r *VerifyTokenRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Token,
			validation.Required,
			customValidation.URLSafeToken,
		),
	)
}
