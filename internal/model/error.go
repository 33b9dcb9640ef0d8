package model

// Standard error codes surfaced to API clients.
const (
	ErrCodeInvalidJSON        = "INVALID_JSON"
	ErrCodeInvalidCoupon      = "INVALID_COUPON"
	ErrCodeCouponNotApplic    = "COUPON_NOT_APPLICABLE"
	ErrCodeIncompleteShipping = "INCOMPLETE_SHIPPING_INFO"
	ErrCodeUnauthenticated    = "UNAUTHENTICATED"
	ErrCodeForbidden          = "FORBIDDEN"
	ErrCodeAccountBlocked     = "ACCOUNT_BLOCKED"
	ErrCodeInvalidCredentials = "INVALID_CREDENTIALS"
	ErrCodeDuplicateRegistr   = "DUPLICATE_REGISTRATION"
	ErrCodeInvalidQuantity    = "INVALID_QUANTITY"
	ErrCodeEmptyCart          = "EMPTY_CART"
	ErrCodeProductNotFound    = "PRODUCT_NOT_FOUND"
	ErrCodeOrderNotFound      = "ORDER_NOT_FOUND"
	ErrCodeTicketNotFound     = "TICKET_NOT_FOUND"
	ErrCodeInvalidTransition  = "INVALID_STATUS_TRANSITION"
	ErrCodeInternalError      = "INTERNAL_ERROR"
)

// DomainError is an expected, recoverable business-rule failure. Handlers map
// its code onto an HTTP status and surface the message to the user inline;
// it is never treated as a crash condition.
type DomainError struct {
	Code    string
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

// NewDomainError creates a new domain error.
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// Common domain errors
var (
	ErrInvalidCoupon       = NewDomainError(ErrCodeInvalidCoupon, "Invalid or expired coupon code")
	ErrCouponNotApplicable = NewDomainError(ErrCodeCouponNotApplic, "This coupon only applies to a specific product not currently in your basket")
	ErrIncompleteShipping  = NewDomainError(ErrCodeIncompleteShipping, "Please ensure all shipping details are provided")
	ErrUnauthenticated     = NewDomainError(ErrCodeUnauthenticated, "You must be logged in to perform this action")
	ErrForbidden           = NewDomainError(ErrCodeForbidden, "You are not allowed to perform this action")
	ErrAccountBlocked      = NewDomainError(ErrCodeAccountBlocked, "Your account has been restricted by administration")
	ErrInvalidCredentials  = NewDomainError(ErrCodeInvalidCredentials, "Incorrect email or password")
	ErrDuplicateEmail      = NewDomainError(ErrCodeDuplicateRegistr, "An account with this email already exists")
	ErrInvalidQuantity     = NewDomainError(ErrCodeInvalidQuantity, "Quantity must be greater than zero")
	ErrEmptyCart           = NewDomainError(ErrCodeEmptyCart, "Your basket is empty")
	ErrProductNotFound     = NewDomainError(ErrCodeProductNotFound, "Product not found")
	ErrOrderNotFound       = NewDomainError(ErrCodeOrderNotFound, "Order not found")
	ErrTicketNotFound      = NewDomainError(ErrCodeTicketNotFound, "Ticket not found")
	ErrInvalidTransition   = NewDomainError(ErrCodeInvalidTransition, "Order cannot move to the requested status")
)
