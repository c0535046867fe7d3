// In file: internal/llm/errors.go
package llm

import (
	"errors"
	"fmt"
	"net/http"
	"regexp"
	"strconv"
	"strings"
	"time"

	"google.golang.org/api/googleapi"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// ErrQuotaExhausted marks a failure caused by provider quota or rate limits.
// Callers treat it as "the model is unavailable right now", not as a server error.
var ErrQuotaExhausted = errors.New("llm quota exhausted")

// quotaMarkers are matched case-insensitively against error text when the
// error carries no structured status.
var quotaMarkers = []string{"429", "resource_exhausted", "resource exhausted", "quota", "rate limit"}

// IsQuotaExhausted reports whether err was caused by quota or rate-limit exhaustion.
// It understands REST (googleapi.Error) and gRPC status errors, and falls back to
// inspecting the message.
func IsQuotaExhausted(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, ErrQuotaExhausted) {
		return true
	}

	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) && apiErr.Code == http.StatusTooManyRequests {
		return true
	}
	if s, ok := status.FromError(err); ok && s.Code() == codes.ResourceExhausted {
		return true
	}

	msg := strings.ToLower(err.Error())
	for _, marker := range quotaMarkers {
		if strings.Contains(msg, marker) {
			return true
		}
	}
	return false
}

// retryDelayRegex matches "Please retry in Xs" or "retryDelay: Xs" patterns.
var retryDelayRegex = regexp.MustCompile(`(?i)(?:Please retry in |retryDelay[:\s]+)(\d+(?:\.\d+)?)\s*s`)

// ExtractRetryDelay parses the provider-suggested retry delay out of an error.
// It returns 0 when the error does not carry one.
//
// Example message:
// "Error 429, Message: ... Please retry in 45.387061394s., Status: RESOURCE_EXHAUSTED"
func ExtractRetryDelay(err error) time.Duration {
	if err == nil {
		return 0
	}
	matches := retryDelayRegex.FindStringSubmatch(err.Error())
	if len(matches) < 2 {
		return 0
	}
	seconds, parseErr := strconv.ParseFloat(matches[1], 64)
	if parseErr != nil {
		return 0
	}
	return time.Duration(seconds * float64(time.Second))
}

// wrapProviderError tags quota failures with ErrQuotaExhausted so callers can use errors.Is.
func wrapProviderError(provider string, err error) error {
	if IsQuotaExhausted(err) {
		return fmt.Errorf("%s API call failed: %w: %w", provider, ErrQuotaExhausted, err)
	}
	return fmt.Errorf("%s API call failed: %w", provider, err)
}
