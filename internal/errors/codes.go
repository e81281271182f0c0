package errors

import (
	stderrors "errors"
	"net/http"
)

// Code is a machine-readable error code.
type Code string

const (
	// CodeUnknown represents an unknown error.
	CodeUnknown Code = "UNKNOWN"

	// Lifecycle errors
	CodeMatchAlreadyRunning   Code = "MATCH_ALREADY_RUNNING"
	CodeMatchNotRunning       Code = "MATCH_NOT_RUNNING"
	CodeInsufficientPlayers   Code = "INSUFFICIENT_PLAYERS"
	CodeAlreadyJoined         Code = "ALREADY_JOINED"
	CodeNotJoined             Code = "NOT_JOINED"
	CodeInvalidPhaseForAction Code = "INVALID_PHASE_FOR_ACTION"

	// Voting errors
	CodeDuplicateVote          Code = "DUPLICATE_VOTE"
	CodeSelfTargetingForbidden Code = "SELF_TARGETING_FORBIDDEN"
	CodeNoVoteToCancel         Code = "NO_VOTE_TO_CANCEL"

	// Role action errors
	CodeSlotAlreadySet   Code = "SLOT_ALREADY_SET"
	CodeUnknownTarget    Code = "UNKNOWN_TARGET"
	CodeUnknownPlace     Code = "UNKNOWN_PLACE"
	CodeActionNotAllowed Code = "ACTION_NOT_ALLOWED"
	CodePlayerDead       Code = "PLAYER_DEAD"

	// Item errors
	CodeUnknownItem      Code = "UNKNOWN_ITEM"
	CodeItemAlreadyOwned Code = "ITEM_ALREADY_OWNED"
	CodeNotEnoughPoints  Code = "NOT_ENOUGH_POINTS"

	// Storage errors
	CodeNotFound Code = "NOT_FOUND"
)

// HTTPStatus maps domain codes to HTTP status codes for the API layer.
func (c Code) HTTPStatus() int {
	switch c {
	// Bad request - validation failures, bad input
	case CodeUnknownTarget,
		CodeUnknownPlace,
		CodeUnknownItem,
		CodeSelfTargetingForbidden:
		return http.StatusBadRequest

	// Conflict - state doesn't allow the operation
	case CodeMatchAlreadyRunning,
		CodeMatchNotRunning,
		CodeInvalidPhaseForAction,
		CodeDuplicateVote,
		CodeSlotAlreadySet,
		CodeAlreadyJoined,
		CodeActionNotAllowed,
		CodePlayerDead,
		CodeNoVoteToCancel,
		CodeInsufficientPlayers,
		CodeItemAlreadyOwned:
		return http.StatusConflict

	// Payment required - the shop said no
	case CodeNotEnoughPoints:
		return http.StatusPaymentRequired

	case CodeNotFound, CodeNotJoined:
		return http.StatusNotFound
	}
	return http.StatusInternalServerError
}

// GetCode extracts the error code from any error.
// Returns CodeUnknown if the error is not a domain error.
func GetCode(err error) Code {
	var e *Error
	if stderrors.As(err, &e) {
		return e.Code
	}
	return CodeUnknown
}

// IsCode checks if the error has the specified code.
func IsCode(err error, code Code) bool {
	return GetCode(err) == code
}
