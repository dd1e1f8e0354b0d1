package utils

import "errors"

var (
	ErrInvalidInput            = errors.New("invalid input")
	ErrInvalidAmount           = errors.New("amount must be greater than 0")
	ErrInvalidContributionType = errors.New("invalid contribution type")
	ErrSelfConnection          = errors.New("cannot connect a family to itself")
	ErrInvalidWebhookPayload   = errors.New("invalid webhook payload")
	ErrMissingUpload           = errors.New("upload file is missing or empty")
	ErrUploadTooLarge          = errors.New("upload exceeds the size limit")

	ErrUnauthorized       = errors.New("unauthorized")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrForbidden          = errors.New("forbidden")

	ErrFamilyNotFound       = errors.New("family not found")
	ErrChildNotFound        = errors.New("child not found")
	ErrContributionNotFound = errors.New("contribution not found")
	ErrMilestoneNotFound    = errors.New("milestone not found")
	ErrRegistryNotFound     = errors.New("gift registry not found")
	ErrModuleNotFound       = errors.New("literacy module not found")

	ErrEmailAlreadyExists = errors.New("email already registered")

	ErrPaymentGateway = errors.New("payment gateway error")
	ErrMailDelivery   = errors.New("mail delivery error")
	ErrDatabaseError  = errors.New("database error")
)
