// Copyright 2017 Amazon.com, Inc. or its affiliates. All Rights Reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License"). You may
// not use this file except in compliance with the License. A copy of the
// License is located at
//
//     http://aws.amazon.com/apache2.0/
//
// or in the "license" file accompanying this file. This file is distributed
// on an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either
// express or implied. See the License for the specific language governing
// permissions and limitations under the License.

package utils

import (
	"context"
	"time"
)

// Retriable is implemented by errors that know whether the failed
// operation is worth another attempt
type Retriable interface {
	Retry() bool
}

// RetriableError is an error carrying a retry decision
type RetriableError interface {
	Retriable
	error
}

type retriableError struct {
	retry bool
	error
}

func (err *retriableError) Retry() bool {
	return err.retry
}

// NewRetriableError wraps err with an explicit retry decision
func NewRetriableError(retry bool, err error) RetriableError {
	return &retriableError{
		retry: retry,
		error: err,
	}
}

// RetryWithBackoffCtx calls fn until it returns nil, returns an error that
// declares itself not retriable, or the context is done. It sleeps for
// backoff.Duration() between attempts and returns the last error seen
func RetryWithBackoffCtx(ctx context.Context, backoff Backoff, fn func() error) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		err := fn()
		retriableErr, isRetriableErr := err.(Retriable)
		if err == nil || (isRetriableErr && !retriableErr.Retry()) {
			return err
		}

		timer := time.NewTimer(backoff.Duration())
		select {
		case <-ctx.Done():
			timer.Stop()
			return err
		case <-timer.C:
		}
	}
}
