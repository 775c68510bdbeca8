package validation

import (
	"net/url"
	"strings"

	apperrors "go-alpha-extractor/internal/errors"
)

// RefValidator handles source reference validation logic
type RefValidator struct {
	allowedSchemes []string
	allowedHosts   []string
}

// NewRefValidator creates a reference validator with default settings
func NewRefValidator() *RefValidator {
	return &RefValidator{
		allowedSchemes: []string{"http", "https"},
		allowedHosts:   []string{}, // empty means all hosts allowed
	}
}

// NewRefValidatorWithOptions creates a reference validator with custom options
func NewRefValidatorWithOptions(schemes []string, hosts []string) *RefValidator {
	return &RefValidator{
		allowedSchemes: schemes,
		allowedHosts:   hosts,
	}
}

// ValidateImageRef validates if the provided URL is acceptable as a source
// image reference
func (v *RefValidator) ValidateImageRef(ref string) error {
	if strings.TrimSpace(ref) == "" {
		return apperrors.NewValidationError("image reference cannot be empty", nil)
	}

	parsedURL, err := url.Parse(ref)
	if err != nil {
		return apperrors.NewValidationError("invalid URL format", err)
	}

	if !v.isSchemeAllowed(parsedURL.Scheme) {
		return apperrors.NewValidationError("URL scheme not allowed", nil)
	}

	if parsedURL.Host == "" {
		return apperrors.NewValidationError("URL must have a valid host", nil)
	}

	if len(v.allowedHosts) > 0 && !v.isHostAllowed(parsedURL.Host) {
		return apperrors.NewValidationError("URL host not allowed", nil)
	}

	return nil
}

// isSchemeAllowed checks if the URL scheme is in the allowed list
func (v *RefValidator) isSchemeAllowed(scheme string) bool {
	for _, allowed := range v.allowedSchemes {
		if scheme == allowed {
			return true
		}
	}
	return false
}

// isHostAllowed checks if the URL host is in the allowed list.
// Returns true if no host restrictions are set.
func (v *RefValidator) isHostAllowed(host string) bool {
	if len(v.allowedHosts) == 0 {
		return true
	}
	for _, allowed := range v.allowedHosts {
		if host == allowed {
			return true
		}
	}
	return false
}
