/*
   Copyright 2025 The DIRPX Authors

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

package grpcx

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"dirpx.dev/errconf/apis"
	"dirpx.dev/errconf/builder"
	"dirpx.dev/errconf/category"
	"dirpx.dev/errconf/entry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genproto/googleapis/rpc/errdetails"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func testConfig(t *testing.T) apis.Configuration {
	t.Helper()
	c, err := builder.Build([]entry.Entry{
		entry.New(category.Transient, entry.Group(int(codes.Unavailable)), entry.Group(2)),
		entry.New(category.Login, entry.Group(190, 463)),
	})
	require.NoError(t, err)
	return c
}

func statusWithCodes(t *testing.T, c codes.Code, md map[string]string) error {
	t.Helper()
	st, err := status.New(c, "upstream failed").WithDetails(&errdetails.ErrorInfo{
		Reason:   "UPSTREAM",
		Domain:   "example.com",
		Metadata: md,
	})
	require.NoError(t, err)
	return st.Err()
}

func TestParseCodes(t *testing.T) {
	t.Run("nil", func(t *testing.T) {
		_, _, ok := ParseCodes(nil)
		assert.False(t, ok)
	})
	t.Run("plain error", func(t *testing.T) {
		_, _, ok := ParseCodes(errors.New("boom"))
		assert.False(t, ok)
	})
	t.Run("bare status is not parsed", func(t *testing.T) {
		_, _, ok := ParseCodes(status.Error(codes.Unavailable, "down"))
		assert.False(t, ok)
	})
	t.Run("bare status with fallback uses grpc code", func(t *testing.T) {
		major, minor, ok := parseCodes(status.Error(codes.Unavailable, "down"), true)
		require.True(t, ok)
		assert.Equal(t, int(codes.Unavailable), major)
		assert.Nil(t, minor)
	})
	t.Run("error info with subcode", func(t *testing.T) {
		err := statusWithCodes(t, codes.Unauthenticated, map[string]string{"code": "190", "error_subcode": "463"})
		major, minor, ok := ParseCodes(err)
		require.True(t, ok)
		assert.Equal(t, 190, major)
		require.NotNil(t, minor)
		assert.Equal(t, 463, *minor)
	})
	t.Run("error info without subcode", func(t *testing.T) {
		err := statusWithCodes(t, codes.Unknown, map[string]string{"code": "2"})
		major, minor, ok := ParseCodes(err)
		require.True(t, ok)
		assert.Equal(t, 2, major)
		assert.Nil(t, minor)
	})
	t.Run("error info with malformed codes", func(t *testing.T) {
		for _, md := range []map[string]string{
			{"code": "x"},
			{"code": "190.7"},
			{"code": "99999999999999999999"},
			{"code": "190", "error_subcode": "463.2"},
			{"code": "190", "error_subcode": ""},
		} {
			_, _, ok := ParseCodes(statusWithCodes(t, codes.Aborted, md))
			assert.False(t, ok, md)
		}
	})
	t.Run("wrapped status", func(t *testing.T) {
		err := fmt.Errorf("call: %w", statusWithCodes(t, codes.Unknown, map[string]string{"code": "4"}))
		major, _, ok := ParseCodes(err)
		require.True(t, ok)
		assert.Equal(t, 4, major)
	})
}

func TestClassify(t *testing.T) {
	cfg := testConfig(t)

	orig := statusWithCodes(t, codes.Unauthenticated, map[string]string{"code": "190", "error_subcode": "463"})
	ce, ok := Classify(cfg, orig)
	require.True(t, ok)
	assert.True(t, ce.Found)
	assert.Equal(t, apis.MinorKey(190, 463), ce.Key)
	assert.Equal(t, category.Login, ce.Category)
	assert.ErrorIs(t, ce, orig)
	assert.Equal(t, codes.Unauthenticated, status.Code(ce), "status must survive wrapping")

	// specific miss, general hit on the fallback default for 190
	ce, ok = Classify(cfg, statusWithCodes(t, codes.Unknown, map[string]string{"code": "190", "error_subcode": "1"}))
	require.True(t, ok)
	assert.True(t, ce.Found)
	assert.Equal(t, apis.MajorKey(190), ce.Key)
	assert.Equal(t, category.Login, ce.Category)

	// both miss: default
	ce, ok = Classify(cfg, statusWithCodes(t, codes.Unknown, map[string]string{"code": "5"}), WithDefault(category.Transient))
	require.True(t, ok)
	assert.False(t, ce.Found)
	assert.Equal(t, category.Transient, ce.Category)
	assert.Equal(t, apis.MajorKey(5), ce.Key)

	_, ok = Classify(cfg, context.Canceled)
	assert.False(t, ok)
}

func TestClassify_StatusCodeFallbackIsOptIn(t *testing.T) {
	cfg := testConfig(t)
	bare := status.Error(codes.Unavailable, "down")

	_, ok := Classify(cfg, bare)
	assert.False(t, ok, "gRPC codes must not be matched against remote codes by default")

	ce, ok := Classify(cfg, bare, WithStatusCodeFallback())
	require.True(t, ok)
	assert.True(t, ce.Found)
	assert.Equal(t, apis.MajorKey(int(codes.Unavailable)), ce.Key)
	assert.Equal(t, category.Transient, ce.Category)

	// ErrorInfo still wins over the status code
	ce, ok = Classify(cfg, statusWithCodes(t, codes.Unavailable, map[string]string{"code": "2"}), WithStatusCodeFallback())
	require.True(t, ok)
	assert.Equal(t, apis.MajorKey(2), ce.Key)
}

func TestCategoryOf(t *testing.T) {
	ce, ok := Classify(testConfig(t), status.Error(codes.Unavailable, "down"), WithStatusCodeFallback())
	require.True(t, ok)

	got, ok := CategoryOf(fmt.Errorf("outer: %w", ce))
	require.True(t, ok)
	assert.Equal(t, category.Transient, got)

	_, ok = CategoryOf(errors.New("plain"))
	assert.False(t, ok)
}

func TestUnaryClientInterceptor(t *testing.T) {
	icpt := UnaryClientInterceptor(testConfig(t), WithDefault(category.AppNotInstalled), WithStatusCodeFallback())
	invoke := func(err error) error {
		return icpt(context.Background(), "/svc/Method", nil, nil, nil,
			func(context.Context, string, any, any, *grpc.ClientConn, ...grpc.CallOption) error { return err })
	}

	assert.NoError(t, invoke(nil))

	err := invoke(status.Error(codes.Unavailable, "down"))
	var ce *ClassifiedError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, category.Transient, ce.Category)
	assert.Equal(t, codes.Unavailable, status.Code(err))

	err = invoke(status.Error(codes.Internal, "boom"))
	require.ErrorAs(t, err, &ce)
	assert.False(t, ce.Found)
	assert.Equal(t, category.AppNotInstalled, ce.Category)

	plain := errors.New("dial failed")
	assert.Same(t, plain, invoke(plain))
}

func TestUnaryClientInterceptor_BareStatusPassesThrough(t *testing.T) {
	icpt := UnaryClientInterceptor(testConfig(t))
	bare := status.Error(codes.Unavailable, "down")
	err := icpt(context.Background(), "/svc/Method", nil, nil, nil,
		func(context.Context, string, any, any, *grpc.ClientConn, ...grpc.CallOption) error { return bare })
	assert.Same(t, bare, err)

	withInfo := statusWithCodes(t, codes.Unauthenticated, map[string]string{"code": "190", "error_subcode": "463"})
	err = icpt(context.Background(), "/svc/Method", nil, nil, nil,
		func(context.Context, string, any, any, *grpc.ClientConn, ...grpc.CallOption) error { return withInfo })
	var ce *ClassifiedError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, category.Login, ce.Category)
}

func TestUnaryServerInterceptor_RoundTrip(t *testing.T) {
	cfg := testConfig(t)
	upstream := statusWithCodes(t, codes.Unauthenticated, map[string]string{"code": "190", "error_subcode": "463"})
	ce, ok := Classify(cfg, upstream)
	require.True(t, ok)

	icpt := UnaryServerInterceptor()
	info := &grpc.UnaryServerInfo{FullMethod: "/gateway/Call"}
	_, err := icpt(context.Background(), nil, info, func(context.Context, any) (any, error) {
		return nil, fmt.Errorf("gateway: %w", ce)
	})
	require.Error(t, err)

	st, ok := status.FromError(err)
	require.True(t, ok)
	assert.Equal(t, codes.Unauthenticated, st.Code())

	detail, found := ErrorInfo(st)
	require.True(t, found)
	assert.Equal(t, Domain, detail.GetDomain())
	assert.Equal(t, "LOGIN", detail.GetReason())
	assert.Equal(t, "login", detail.GetMetadata()[MetadataCategory])

	// the client side reads the same codes back
	again, ok := Classify(cfg, err)
	require.True(t, ok)
	assert.Equal(t, apis.MinorKey(190, 463), again.Key)
	assert.Equal(t, category.Login, again.Category)
}

func TestUnaryServerInterceptor_PassThrough(t *testing.T) {
	icpt := UnaryServerInterceptor()
	plain := status.Error(codes.NotFound, "missing")

	resp, err := icpt(context.Background(), nil, nil, func(context.Context, any) (any, error) {
		return "ok", nil
	})
	require.NoError(t, err)
	assert.Equal(t, "ok", resp)

	_, err = icpt(context.Background(), nil, nil, func(context.Context, any) (any, error) {
		return nil, plain
	})
	assert.Same(t, plain, err)
}

func TestCodeFor(t *testing.T) {
	assert.Equal(t, codes.Unavailable, CodeFor(category.Transient))
	assert.Equal(t, codes.Unauthenticated, CodeFor(category.Login))
	assert.Equal(t, codes.FailedPrecondition, CodeFor(category.AppNotInstalled))
	assert.Equal(t, codes.Unknown, CodeFor(category.Other))
	assert.Equal(t, codes.Internal, CodeFor(category.Empty))
}
