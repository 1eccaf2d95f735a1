// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package backend

// Error codes mirror the CloudWatch Logs service error shapes. The HTTP
// layer writes them verbatim into the __type field of the AWS JSON error
// body.
const (
	CodeResourceNotFound      = "ResourceNotFoundException"
	CodeResourceAlreadyExists = "ResourceAlreadyExistsException"
	CodeInvalidParameter      = "InvalidParameterException"
	CodeUnsupportedOperation  = "UnsupportedOperationException"
)

// APIError is the single error type the backend surfaces. Every failure is
// a deterministic function of the inputs; no call corrupts state.
type APIError struct {
	Code    string
	Message string
}

func (e *APIError) Error() string { return e.Code + ": " + e.Message }

func groupNotFound() error {
	return &APIError{Code: CodeResourceNotFound, Message: "The specified log group does not exist."}
}

func streamNotFound() error {
	return &APIError{Code: CodeResourceNotFound, Message: "The specified log stream does not exist."}
}

func groupAlreadyExists() error {
	return &APIError{Code: CodeResourceAlreadyExists, Message: "The specified log group already exists"}
}

func streamAlreadyExists() error {
	return &APIError{Code: CodeResourceAlreadyExists, Message: "The specified log stream already exists"}
}

func invalidParameter(message string) error {
	return &APIError{Code: CodeInvalidParameter, Message: message}
}

func unsupported(message string) error {
	return &APIError{Code: CodeUnsupportedOperation, Message: message}
}
