package remote

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"strings"

	"github.com/aws/smithy-go"
	"github.com/platekeeper/platekeeper/internal/common"

	awshttp "github.com/aws/aws-sdk-go-v2/aws/transport/http"
)

var authErrorCodes = map[string]bool{
	"InvalidAccessKeyId":    true,
	"SignatureDoesNotMatch": true,
	"AccessDenied":          true,
	"ExpiredToken":          true,
	"InvalidToken":          true,
	"TokenRefreshRequired":  true,
}

var notFoundCodes = map[string]bool{
	"NoSuchKey": true,
	"NotFound":  true,
}

var transientCodes = map[string]bool{
	"SlowDown":            true,
	"RequestTimeout":      true,
	"InternalError":       true,
	"ServiceUnavailable":  true,
	"Throttling":          true,
	"ThrottlingException": true,
	"TooManyRequests":     true,
}

// classify maps a raw SDK or network error onto one of the package error
// classes. Object-level misses map to common.ErrNotFound so a single gone
// object never closes the availability gate.
func classify(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, context.Canceled) {
		return err
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %v", ErrTransient, err)
	}

	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		code := apiErr.ErrorCode()
		switch {
		case authErrorCodes[code]:
			return fmt.Errorf("%w: %s", ErrAuthRequired, code)
		case strings.Contains(code, "Quota"):
			return fmt.Errorf("%w: %s", ErrQuotaExceeded, code)
		case notFoundCodes[code]:
			return fmt.Errorf("object missing (%s): %w", code, common.ErrNotFound)
		case transientCodes[code] || apiErr.ErrorFault() == smithy.FaultServer:
			return fmt.Errorf("%w: %s", ErrTransient, code)
		}
	}

	var respErr *awshttp.ResponseError
	if errors.As(err, &respErr) {
		switch sc := respErr.HTTPStatusCode(); {
		case sc == 401 || sc == 403:
			return fmt.Errorf("%w: http %d", ErrAuthRequired, sc)
		case sc == 404:
			return fmt.Errorf("object missing (http %d): %w", sc, common.ErrNotFound)
		case sc == 429 || sc >= 500:
			return fmt.Errorf("%w: http %d", ErrTransient, sc)
		}
	}

	var nerr net.Error
	if errors.As(err, &nerr) || errors.Is(err, io.ErrUnexpectedEOF) {
		return fmt.Errorf("%w: %v", ErrTransient, err)
	}

	return fmt.Errorf("%w: %v", ErrUnavailable, err)
}
