package remote

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"testing"

	"github.com/aws/smithy-go"
	"github.com/platekeeper/platekeeper/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	awshttp "github.com/aws/aws-sdk-go-v2/aws/transport/http"
	smithyhttp "github.com/aws/smithy-go/transport/http"
)

func apiError(code string, fault smithy.ErrorFault) error {
	return &smithy.GenericAPIError{Code: code, Message: "simulated", Fault: fault}
}

func httpResponseError(status int) error {
	return &awshttp.ResponseError{
		ResponseError: &smithyhttp.ResponseError{
			Response: &smithyhttp.Response{Response: &http.Response{StatusCode: status}},
			Err:      fmt.Errorf("http status %d", status),
		},
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		in   error
		want error
	}{
		{name: "access denied", in: apiError("AccessDenied", smithy.FaultClient), want: ErrAuthRequired},
		{name: "bad access key", in: apiError("InvalidAccessKeyId", smithy.FaultClient), want: ErrAuthRequired},
		{name: "bad signature", in: apiError("SignatureDoesNotMatch", smithy.FaultClient), want: ErrAuthRequired},
		{name: "quota by code", in: apiError("QuotaExceeded", smithy.FaultClient), want: ErrQuotaExceeded},
		{name: "quota minio style", in: apiError("XMinioBucketQuotaExceeded", smithy.FaultClient), want: ErrQuotaExceeded},
		{name: "missing object", in: apiError("NoSuchKey", smithy.FaultClient), want: common.ErrNotFound},
		{name: "slow down", in: apiError("SlowDown", smithy.FaultServer), want: ErrTransient},
		{name: "internal error", in: apiError("InternalError", smithy.FaultServer), want: ErrTransient},
		{name: "unknown server fault", in: apiError("SomethingBroke", smithy.FaultServer), want: ErrTransient},
		{name: "unknown client fault", in: apiError("SomethingOdd", smithy.FaultClient), want: ErrUnavailable},
		{name: "http 401", in: httpResponseError(401), want: ErrAuthRequired},
		{name: "http 403", in: httpResponseError(403), want: ErrAuthRequired},
		{name: "http 404", in: httpResponseError(404), want: common.ErrNotFound},
		{name: "http 429", in: httpResponseError(429), want: ErrTransient},
		{name: "http 503", in: httpResponseError(503), want: ErrTransient},
		{name: "http 418", in: httpResponseError(418), want: ErrUnavailable},
		{name: "dns timeout", in: &net.DNSError{Err: "timeout", IsTimeout: true}, want: ErrTransient},
		{name: "deadline exceeded", in: context.DeadlineExceeded, want: ErrTransient},
		{name: "plain error", in: errors.New("wat"), want: ErrUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := classify(tt.in)
			require.Error(t, got)
			assert.ErrorIs(t, got, tt.want)
		})
	}
}

func TestClassify_Nil(t *testing.T) {
	assert.NoError(t, classify(nil))
}

func TestClassify_CanceledPassesThrough(t *testing.T) {
	got := classify(context.Canceled)
	assert.ErrorIs(t, got, context.Canceled)
	assert.NotErrorIs(t, got, ErrTransient)
	assert.NotErrorIs(t, got, ErrUnavailable)
}

func TestStatusGate(t *testing.T) {
	s := NewStatus()
	assert.False(t, s.Degraded())

	s.MarkDegraded()
	assert.True(t, s.Degraded())

	s.Reset()
	assert.False(t, s.Degraded())
}
