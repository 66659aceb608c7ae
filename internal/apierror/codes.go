package apierror

// Error type URIs following the urn:driftwell:error:* pattern, used as the
// "type" field in RFC 9457 Problem Details.
const (
	// TypeValidation indicates request validation failed (400)
	TypeValidation = "urn:driftwell:error:validation"

	// TypeBadRequest indicates a malformed or invalid request (400)
	TypeBadRequest = "urn:driftwell:error:bad_request"

	// TypeUnauthorized indicates missing or invalid identity (401)
	TypeUnauthorized = "urn:driftwell:error:unauthorized"

	// TypeNotFound indicates the requested resource was not found (404)
	TypeNotFound = "urn:driftwell:error:not_found"

	// TypeProfileMissing indicates a daily sleep record arrived before any
	// sleep profile was saved for the user (412)
	TypeProfileMissing = "urn:driftwell:error:profile_missing"

	// TypeInsufficientData indicates analytics were requested with no
	// qualifying trend entries in the window, or no profile set (422)
	TypeInsufficientData = "urn:driftwell:error:insufficient_data"

	// TypeInternal indicates an unexpected server error (500)
	TypeInternal = "urn:driftwell:error:internal"

	// TypeStorageUnavailable indicates the persistence adapter failed (503)
	TypeStorageUnavailable = "urn:driftwell:error:storage_unavailable"
)

// Titles for each error type.
const (
	TitleValidation         = "Validation Error"
	TitleBadRequest         = "Bad Request"
	TitleUnauthorized       = "Authentication Required"
	TitleNotFound           = "Resource Not Found"
	TitleProfileMissing     = "Sleep Profile Missing"
	TitleInsufficientData   = "Insufficient Sleep Data"
	TitleInternal           = "Internal Server Error"
	TitleStorageUnavailable = "Storage Unavailable"
)
