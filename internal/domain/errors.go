package domain

import "errors"

var (
	ErrNotFound           = errors.New("resource not found")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserInactive       = errors.New("user is inactive")

	// ErrPermissionDenied is returned when the permission gate denies an
	// action for the actor's role.
	ErrPermissionDenied = errors.New("permission denied for this action")

	// ErrInvalidState is returned when an operation is not valid for the
	// document's current status.
	ErrInvalidState = errors.New("operation not valid for current document status")

	ErrDuplicateCode  = errors.New("document code already exists")
	ErrAlreadyDecided = errors.New("approval already processed")
	ErrNotAssigned    = errors.New("approval is not assigned to this user")
	ErrNotDistributed = errors.New("document was not distributed to this recipient")

	// ErrIntegrity signals a cross-entity mismatch, e.g. an approval that
	// does not belong to the addressed document.
	ErrIntegrity = errors.New("record does not belong to this document")

	ErrUnsupportedFileType = errors.New("unsupported file type")
	ErrFileTooLarge        = errors.New("file exceeds maximum allowed size")
	ErrUploadFailed        = errors.New("file upload to storage failed")
)
