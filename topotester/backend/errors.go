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

package backend

// Error is returned when the backend fails to build, start, stop or
// change the emulated network
type Error struct {
	operation string
	origin    string
	err       error
}

func (err *Error) Error() string {
	return err.operation + " " + err.origin + ": " + err.err.Error()
}

// Cause returns the underlying error
func (err *Error) Cause() error {
	return err.err
}

// Operation returns the backend operation that failed
func (err *Error) Operation() string {
	return err.operation
}

func newError(operation string, origin string, err error) error {
	if err == nil {
		return nil
	}
	if _, ok := err.(*Error); ok {
		return err
	}
	return &Error{
		operation: operation,
		origin:    origin,
		err:       err,
	}
}
