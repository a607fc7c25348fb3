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
	"log/slog"
	"strconv"
	"strings"

	"dirpx.dev/errconf/apis"
	"dirpx.dev/errconf/category"
	"google.golang.org/genproto/googleapis/rpc/errdetails"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// defaultGRPC defines the built-in gRPC codes used when a classified error is
// exposed again by UnaryServerInterceptor.
var defaultGRPC = map[category.Category]codes.Code{
	category.Transient:       codes.Unavailable,        // Retry later.
	category.Login:           codes.Unauthenticated,    // Caller must re-authenticate.
	category.AppNotInstalled: codes.FailedPrecondition, // A companion app is required.
	category.Other:           codes.Unknown,            // Not actionable.
}

// CodeFor returns the default gRPC code for a category.
// Unknown categories map to codes.Internal.
func CodeFor(c category.Category) codes.Code {
	if v, ok := defaultGRPC[c]; ok {
		return v
	}
	return codes.Internal
}

// Option configures the interceptors.
type Option func(*options)

type options struct {
	logger         *slog.Logger
	def            category.Category
	statusFallback bool
}

func newOptions(opts []Option) *options {
	o := &options{logger: slog.New(slog.DiscardHandler), def: category.Other}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// WithLogger sets the structured logger; classifications are logged at debug level.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithDefault sets the category used when neither lookup hits.
func WithDefault(c category.Category) Option {
	return func(o *options) {
		if c != category.Empty {
			o.def = c
		}
	}
}

// WithStatusCodeFallback makes statuses without an ErrorInfo detail
// classifiable by using the numeric gRPC status code as the major code.
// Only use it when the configuration is keyed by gRPC codes.
func WithStatusCodeFallback() Option {
	return func(o *options) { o.statusFallback = true }
}

// UnaryClientInterceptor returns a client interceptor that wraps every error
// Classify can extract codes from into a *ClassifiedError resolved against
// cfg. Other errors (e.g. local context errors, or bare statuses without
// WithStatusCodeFallback) are returned unchanged.
func UnaryClientInterceptor(cfg apis.Configuration, opts ...Option) grpc.UnaryClientInterceptor {
	o := newOptions(opts)
	return func(ctx context.Context, method string, req, reply any, cc *grpc.ClientConn, invoker grpc.UnaryInvoker, callOpts ...grpc.CallOption) error {
		err := invoker(ctx, method, req, reply, cc, callOpts...)
		if err == nil {
			return nil
		}
		ce, ok := o.classify(cfg, err)
		if !ok {
			return err
		}
		o.logger.DebugContext(ctx, "errconf: classified grpc error",
			"method", method,
			"key", ce.Key.String(),
			"category", ce.Category.String(),
			"found", ce.Found,
		)
		return ce
	}
}

// UnaryServerInterceptor returns a server interceptor that converts handler
// errors implementing apis.CategorizedError into gRPC statuses. The status
// code is CodeFor(category) and the status carries an ErrorInfo detail with
// the original codes, readable by ParseCodes. Other errors pass through.
func UnaryServerInterceptor(opts ...Option) grpc.UnaryServerInterceptor {
	o := newOptions(opts)
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		resp, err := handler(ctx, req)
		if err == nil {
			return resp, nil
		}

		var ce apis.CategorizedError
		if !errors.As(err, &ce) {
			return nil, err
		}

		k, c := ce.ErrorKey(), ce.ErrorCategory()
		md := map[string]string{
			MetadataCode:     strconv.Itoa(k.Major()),
			MetadataCategory: c.String(),
		}
		if minor, ok := k.Minor(); ok {
			md[MetadataSubcode] = strconv.Itoa(minor)
		}

		method := ""
		if info != nil {
			method = info.FullMethod
		}
		base := status.New(CodeFor(c), err.Error())
		o.logger.DebugContext(ctx, "errconf: exposing classified error",
			"method", method,
			"key", k.String(),
			"category", c.String(),
			"code", base.Code().String(),
		)

		// Try to attach the ErrorInfo. If it fails, return the bare status.
		with, derr := base.WithDetails(&errdetails.ErrorInfo{
			Reason:   strings.ToUpper(c.String()),
			Domain:   Domain,
			Metadata: md,
		})
		if derr != nil {
			return nil, base.Err()
		}
		return nil, with.Err()
	}
}
