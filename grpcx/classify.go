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

// Package grpcx classifies gRPC errors against a resolved error
// configuration.
//
// Error codes are read from a google.rpc.ErrorInfo status detail whose
// metadata carries "code" and optionally "error_subcode". Statuses without
// such a detail are not classified: gRPC status codes live in a different
// number space than remote error codes. WithStatusCodeFallback opts into
// using the numeric gRPC status code as the major code instead.
//
// UnaryClientInterceptor wraps failed calls into *ClassifiedError so that
// call sites can branch on the category. It never retries.
// UnaryServerInterceptor does the reverse for gateways: classified errors
// returned by a handler are turned into gRPC statuses carrying an ErrorInfo
// detail that the client side can read back.
package grpcx

import (
	"errors"
	"fmt"
	"strconv"

	"dirpx.dev/errconf/apis"
	"dirpx.dev/errconf/category"
	"google.golang.org/genproto/googleapis/rpc/errdetails"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const (
	// Domain is the ErrorInfo domain written by UnaryServerInterceptor.
	Domain = "errconf.dirpx.dev"

	// MetadataCode, MetadataSubcode and MetadataCategory are the ErrorInfo
	// metadata keys read by ParseCodes and written by UnaryServerInterceptor.
	MetadataCode     = "code"
	MetadataSubcode  = "error_subcode"
	MetadataCategory = "category"
)

// ParseCodes extracts the major and optional minor code from the ErrorInfo
// detail of a gRPC status error. ok is false for nil errors, errors without
// a gRPC status and statuses without a well-formed ErrorInfo.
func ParseCodes(err error) (major int, minor *int, ok bool) {
	return parseCodes(err, false)
}

func parseCodes(err error, statusFallback bool) (int, *int, bool) {
	if err == nil {
		return 0, nil, false
	}
	st, ok := status.FromError(err)
	if !ok {
		return 0, nil, false
	}
	if info, found := ErrorInfo(st); found {
		md := info.GetMetadata()
		c, err := strconv.Atoi(md[MetadataCode])
		if err != nil {
			return 0, nil, false
		}
		sub, has := md[MetadataSubcode]
		if !has {
			return c, nil, true
		}
		s, err := strconv.Atoi(sub)
		if err != nil {
			return 0, nil, false
		}
		return c, &s, true
	}
	if statusFallback {
		return int(st.Code()), nil, true
	}
	return 0, nil, false
}

// ErrorInfo returns the first ErrorInfo detail of st that carries a "code"
// metadata key.
func ErrorInfo(st *status.Status) (*errdetails.ErrorInfo, bool) {
	if st == nil {
		return nil, false
	}
	for _, d := range st.Details() {
		info, ok := d.(*errdetails.ErrorInfo)
		if !ok {
			continue
		}
		if _, has := info.GetMetadata()[MetadataCode]; has {
			return info, true
		}
	}
	return nil, false
}

// ClassifiedError wraps an error together with its resolved classification.
type ClassifiedError struct {
	// Key is the key that matched, or the most specific key looked up when
	// nothing matched.
	Key apis.Key

	// Category is the resolved category, or the default when Found is false.
	Category category.Category

	// Rule is the matched rule. Zero when Found is false.
	Rule apis.Rule

	// Found reports whether the configuration had a rule for the error.
	Found bool

	err error
}

var _ apis.CategorizedError = (*ClassifiedError)(nil)

// Error implements the built-in error interface.
func (e *ClassifiedError) Error() string {
	return fmt.Sprintf("%v [category=%s key=%s]", e.err, e.Category, e.Key)
}

// Unwrap returns the original error.
func (e *ClassifiedError) Unwrap() error { return e.err }

// ErrorKey implements apis.CategorizedError.
func (e *ClassifiedError) ErrorKey() apis.Key { return e.Key }

// ErrorCategory implements apis.CategorizedError.
func (e *ClassifiedError) ErrorCategory() category.Category { return e.Category }

// GRPCStatus keeps status.FromError and status.Code working on wrapped
// errors: it returns the original status unchanged.
func (e *ClassifiedError) GRPCStatus() *status.Status {
	if st, ok := status.FromError(e.err); ok {
		return st
	}
	return status.New(codes.Unknown, e.err.Error())
}

// Classify resolves err against cfg using the two-step lookup convention.
// When neither lookup hits, the category is the WithDefault value
// (category.Other unless set). ok is false when no codes can be extracted
// from err.
func Classify(cfg apis.Configuration, err error, opts ...Option) (*ClassifiedError, bool) {
	return newOptions(opts).classify(cfg, err)
}

func (o *options) classify(cfg apis.Configuration, err error) (*ClassifiedError, bool) {
	major, minor, ok := parseCodes(err, o.statusFallback)
	if !ok {
		return nil, false
	}
	if k, r, found := apis.Resolve(cfg, major, minor); found {
		return &ClassifiedError{Key: k, Category: r.Category, Rule: r, Found: true, err: err}, true
	}
	return &ClassifiedError{Key: apis.KeyOf(major, minor), Category: o.def, err: err}, true
}

// CategoryOf returns the category of the first apis.CategorizedError in
// err's chain.
func CategoryOf(err error) (category.Category, bool) {
	var ce apis.CategorizedError
	if errors.As(err, &ce) {
		return ce.ErrorCategory(), true
	}
	return category.Empty, false
}
