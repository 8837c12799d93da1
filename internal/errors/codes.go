package errors

// Error code constants returned in the errorCode field of every error body.
// Clients key their handling off these, not off messages.

const (
	CodeResourceNotFound = "RESOURCE_NOT_FOUND" // entity/id lookup miss
	CodeBadRequest       = "BAD_REQUEST"        // malformed body or arguments
	CodeValidationError  = "VALIDATION_ERROR"   // field constraint violations
	CodeConflict         = "CONFLICT"           // uniqueness/state conflict
	CodeUnauthorized     = "UNAUTHORIZED"       // missing/failed authentication
	CodeForbidden        = "FORBIDDEN"          // authenticated but disallowed
	CodePaymentError     = "PAYMENT_ERROR"      // payment processing failure
	CodeEndpointNotFound = "ENDPOINT_NOT_FOUND" // route/method mismatch
	CodeInternalError    = "INTERNAL_ERROR"     // unclassified failure
)
