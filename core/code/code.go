package code

import (
	"strconv"
)

// Codes for operation checks and delivery responses
const (
	// general
	OK          uint32 = 0
	DecodeError uint32 = 101

	// contribution
	InsufficientContribution uint32 = 102

	// withdrawal
	Unauthorized        uint32 = 103
	TransferFailure     uint32 = 104
	OperationInProgress uint32 = 105

	// oracle
	OracleFailure uint32 = 106
)

type insufficientContribution struct {
	Code            string `json:"code,omitempty"`
	Contributor     string `json:"contributor,omitempty"`
	Value           string `json:"value,omitempty"`
	ReferenceValue  string `json:"reference_value,omitempty"`
	MinimumRequired string `json:"minimum_required,omitempty"`
}

// NewInsufficientContribution returns the error info for a contribution whose
// converted value is below the minimum threshold.
func NewInsufficientContribution(contributor, value, referenceValue, minimumRequired string) *insufficientContribution {
	return &insufficientContribution{Code: strconv.Itoa(int(InsufficientContribution)), Contributor: contributor, Value: value, ReferenceValue: referenceValue, MinimumRequired: minimumRequired}
}

type unauthorized struct {
	Code   string `json:"code,omitempty"`
	Caller string `json:"caller,omitempty"`
	Owner  string `json:"owner,omitempty"`
}

// NewUnauthorized returns the error info for a guarded operation invoked by a
// caller other than the owner.
func NewUnauthorized(caller, owner string) *unauthorized {
	return &unauthorized{Code: strconv.Itoa(int(Unauthorized)), Caller: caller, Owner: owner}
}

type transferFailure struct {
	Code   string `json:"code,omitempty"`
	Owner  string `json:"owner,omitempty"`
	Value  string `json:"value,omitempty"`
	Reason string `json:"reason,omitempty"`
}

// NewTransferFailure returns the error info for a withdrawal whose value
// transfer was rejected by the receiving account.
func NewTransferFailure(owner, value, reason string) *transferFailure {
	return &transferFailure{Code: strconv.Itoa(int(TransferFailure)), Owner: owner, Value: value, Reason: reason}
}

type oracleFailure struct {
	Code   string `json:"code,omitempty"`
	Reason string `json:"reason,omitempty"`
}

// NewOracleFailure returns the error info for an unreachable oracle or an
// invalid reported price.
func NewOracleFailure(reason string) *oracleFailure {
	return &oracleFailure{Code: strconv.Itoa(int(OracleFailure)), Reason: reason}
}

type operationInProgress struct {
	Code string `json:"code,omitempty"`
}

// NewOperationInProgress returns the error info for an operation entered
// while another one has not finished yet.
func NewOperationInProgress() *operationInProgress {
	return &operationInProgress{Code: strconv.Itoa(int(OperationInProgress))}
}

type decodeError struct {
	Code string `json:"code,omitempty"`
}

// NewDecodeError returns the error info for a malformed operation.
func NewDecodeError() *decodeError {
	return &decodeError{Code: strconv.Itoa(int(DecodeError))}
}
