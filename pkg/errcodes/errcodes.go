package errcodes

import "ah_market/pkg/failure"

const (
	InternalServerError failure.ErrorCode = "InternalServerError"
	ValidationError     failure.ErrorCode = "ValidationError"
	NotFound            failure.ErrorCode = "NotFound"

	// Auction module codes.
	ItemNotFound        failure.ErrorCode = "ItemNotFound"
	AttributeNotFound   failure.ErrorCode = "AttributeNotFound"
	PetAuctionsNotFound failure.ErrorCode = "PetAuctionsNotFound"
	InvalidLevel        failure.ErrorCode = "InvalidLevel"
	InvalidPiece        failure.ErrorCode = "InvalidPiece"
)
