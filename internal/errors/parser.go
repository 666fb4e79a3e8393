package errors

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

// ErrorInfo is a parsed storage error: a stable code plus a message
// safe to show to the caller.
type ErrorInfo struct {
	Code    string
	Message string
}

// Postgres error classes (SQLSTATE prefixes).
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
	pgNotNullViolation    = "23502"
	pgCheckViolation      = "23514"
)

// ParseError converts a storage-layer error into a user-safe code and
// message. Raw driver detail (constraint names aside) never reaches the
// response; the full error is logged by the caller.
func ParseError(err error, context string) ErrorInfo {
	if err == nil {
		return ErrorInfo{Code: InternalServerError, Message: "Server error"}
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrorInfo{Code: ResourceNotFound, Message: notFoundMessage(context)}
	}

	// Typed postgres errors first, string matching as a fallback for the
	// sqlite test driver which reports constraints in text only.
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch string(pqErr.Code) {
		case pgUniqueViolation:
			return uniqueViolationInfo(pqErr.Constraint + " " + pqErr.Detail)
		case pgForeignKeyViolation:
			return ErrorInfo{Code: ResourceNotFound, Message: "Referenced record does not exist"}
		case pgNotNullViolation:
			return ErrorInfo{Code: ValidationInvalidInput, Message: "A required field is missing"}
		case pgCheckViolation:
			return ErrorInfo{Code: ValidationInvalidInput, Message: "Value out of allowed range"}
		}
	}

	errStr := strings.ToLower(err.Error())
	if strings.Contains(errStr, "duplicate key") || strings.Contains(errStr, "unique constraint") ||
		strings.Contains(errStr, "unique failed") {
		return uniqueViolationInfo(errStr)
	}
	if strings.Contains(errStr, "foreign key constraint") {
		return ErrorInfo{Code: ResourceNotFound, Message: "Referenced record does not exist"}
	}
	if strings.Contains(errStr, "check constraint") {
		return ErrorInfo{Code: ValidationInvalidInput, Message: "Value out of allowed range"}
	}

	if strings.Contains(errStr, "connection refused") ||
		strings.Contains(errStr, "no such host") ||
		strings.Contains(errStr, "timeout") {
		return ErrorInfo{Code: InternalDatabaseError, Message: "Storage unavailable, please try again later"}
	}

	return ErrorInfo{Code: InternalServerError, Message: "Server error, please try again later"}
}

func uniqueViolationInfo(detail string) ErrorInfo {
	detail = strings.ToLower(detail)

	if strings.Contains(detail, "email") {
		return ErrorInfo{Code: AuthEmailAlreadyExists, Message: "User already exists"}
	}
	if strings.Contains(detail, "owner_id") {
		return ErrorInfo{Code: StoreAlreadyOwned, Message: "You already have a store"}
	}
	if strings.Contains(detail, "store_user_rating") ||
		(strings.Contains(detail, "store_id") && strings.Contains(detail, "user_id")) {
		return ErrorInfo{Code: ResourceConflict, Message: "Rating already recorded, please retry"}
	}

	return ErrorInfo{Code: ResourceAlreadyExists, Message: "Record already exists"}
}

func notFoundMessage(context string) string {
	contextLower := strings.ToLower(context)

	switch {
	case strings.Contains(contextLower, "store"):
		return "Store not found"
	case strings.Contains(contextLower, "user"):
		return "User not found"
	case strings.Contains(contextLower, "rating"):
		return "Rating not found"
	}
	return "Not found"
}

// ParseAndRespond parses err and writes the failure envelope in one
// step, for controllers that have no more specific mapping.
func ParseAndRespond(c *gin.Context, statusCode int, err error, context string) {
	info := ParseError(err, context)
	if statusCode == http.StatusInternalServerError {
		// Let the parsed code refine the status where it clearly should.
		switch info.Code {
		case ResourceNotFound, StoreNotFound, UserNotFound:
			statusCode = http.StatusNotFound
		case AuthEmailAlreadyExists, StoreAlreadyOwned, ValidationInvalidInput:
			statusCode = http.StatusBadRequest
		}
	}
	RespondWithError(c, statusCode, info.Code, info.Message)
}
