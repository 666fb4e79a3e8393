package errors

// Error code constants returned in the "error" field of every failure
// response. Format: CATEGORY_SPECIFIC_DETAIL. The frontend maps these
// codes to display messages.

const (
	// ==================== Authentication (AUTH_) ====================
	AuthUnauthorized       = "AUTH_UNAUTHORIZED"
	AuthInvalidCredentials = "AUTH_INVALID_CREDENTIALS"
	AuthTokenExpired       = "AUTH_TOKEN_EXPIRED"
	AuthTokenInvalid       = "AUTH_TOKEN_INVALID"
	AuthEmailAlreadyExists = "AUTH_EMAIL_EXISTS"
	AuthInvalidAdminKey    = "AUTH_INVALID_ADMIN_KEY"
	AuthWrongRole          = "AUTH_WRONG_ROLE"
	AuthWrongPassword      = "AUTH_WRONG_PASSWORD"

	// ==================== Authorization (AUTHZ_) ====================
	AuthzForbidden    = "AUTHZ_FORBIDDEN"
	AuthzRoleNotFound = "AUTHZ_ROLE_NOT_FOUND"

	// ==================== Validation (VALIDATION_) ====================
	ValidationInvalidInput = "VALIDATION_INVALID_INPUT"
	ValidationInvalidID    = "VALIDATION_INVALID_ID"
	ValidationName         = "VALIDATION_NAME"
	ValidationEmail        = "VALIDATION_EMAIL"
	ValidationAddress      = "VALIDATION_ADDRESS"
	ValidationPassword     = "VALIDATION_PASSWORD"
	ValidationRole         = "VALIDATION_ROLE"
	ValidationSortField    = "VALIDATION_SORT_FIELD"

	// ==================== Resources (RESOURCE_) ====================
	ResourceNotFound      = "RESOURCE_NOT_FOUND"
	ResourceAlreadyExists = "RESOURCE_ALREADY_EXISTS"
	ResourceConflict      = "RESOURCE_CONFLICT"

	// ==================== Users (USER_) ====================
	UserNotFound = "USER_NOT_FOUND"

	// ==================== Stores (STORE_) ====================
	StoreNotFound      = "STORE_NOT_FOUND"
	StoreAlreadyOwned  = "STORE_ALREADY_OWNED"
	StoreOwnerNotFound = "STORE_OWNER_NOT_FOUND"

	// ==================== Ratings (RATING_) ====================
	RatingInvalidValue = "RATING_INVALID_VALUE"

	// ==================== Internal (INTERNAL_) ====================
	InternalServerError   = "INTERNAL_SERVER_ERROR"
	InternalDatabaseError = "INTERNAL_DATABASE_ERROR"
)
