package model

import "fmt"

// ErrorResponse represents a standardised error response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// Standard error codes for API responses
const (
	ErrCodeInvalidJSON          = "INVALID_JSON"
	ErrCodeEmptyCart            = "EMPTY_CART"
	ErrCodeIncompleteAddress    = "INCOMPLETE_ADDRESS"
	ErrCodeInvalidPaymentMethod = "INVALID_PAYMENT_METHOD"
	ErrCodeProductNotFound      = "PRODUCT_NOT_FOUND"
	ErrCodeInsufficientStock    = "INSUFFICIENT_STOCK"
	ErrCodeInvalidQuantity      = "INVALID_QUANTITY"
	ErrCodeNotAuthorized        = "NOT_AUTHORIZED"
	ErrCodeNotFound             = "NOT_FOUND"
	ErrCodeAlreadyRated         = "ALREADY_RATED"
	ErrCodeNotEligibleToRate    = "NOT_ELIGIBLE_TO_RATE"
	ErrCodeInvalidRating        = "INVALID_RATING"
	ErrCodeInvalidStatus        = "INVALID_STATUS"
	ErrCodeInvalidTransition    = "INVALID_TRANSITION"
	ErrCodeInvalidCredentials   = "INVALID_CREDENTIALS"
	ErrCodeEmailTaken           = "EMAIL_TAKEN"
	ErrCodeInvalidToken         = "INVALID_TOKEN"
	ErrCodeValidationError      = "VALIDATION_ERROR"
	ErrCodeInternalError        = "INTERNAL_ERROR"
)

// DomainError is a business-rule violation with a stable code.
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
	ErrEmptyCart            = NewDomainError(ErrCodeEmptyCart, "No order items")
	ErrIncompleteAddress    = NewDomainError(ErrCodeIncompleteAddress, "Incomplete shipping address")
	ErrInvalidPaymentMethod = NewDomainError(ErrCodeInvalidPaymentMethod, "Invalid or missing payment method")
	ErrInvalidQuantity      = NewDomainError(ErrCodeInvalidQuantity, "Quantity must be greater than zero")
	ErrNotAuthorized        = NewDomainError(ErrCodeNotAuthorized, "Not authorized")
	ErrOrderNotFound        = NewDomainError(ErrCodeNotFound, "Order not found")
	ErrProductNotFound      = NewDomainError(ErrCodeProductNotFound, "Product not found")
	ErrAlreadyRated         = NewDomainError(ErrCodeAlreadyRated, "You have already rated this product")
	ErrNotEligibleToRate    = NewDomainError(ErrCodeNotEligibleToRate, "You can only rate products you have purchased and received")
	ErrInvalidRating        = NewDomainError(ErrCodeInvalidRating, "Rating must be between 1 and 5")
	ErrInvalidStatus        = NewDomainError(ErrCodeInvalidStatus, "Unknown order status")
	ErrInvalidCredentials   = NewDomainError(ErrCodeInvalidCredentials, "Invalid email or password")
	ErrEmailTaken           = NewDomainError(ErrCodeEmailTaken, "User already exists")
	ErrInvalidToken         = NewDomainError(ErrCodeInvalidToken, "Not authorized, token failed")
)

// NewProductNotFoundError identifies which product reference failed to resolve.
func NewProductNotFoundError(id string) *DomainError {
	return NewDomainError(ErrCodeProductNotFound, fmt.Sprintf("Product %s not found", id))
}

// NewInsufficientStockError identifies the product and the shortfall.
func NewInsufficientStockError(name string, requested, available int) *DomainError {
	return NewDomainError(ErrCodeInsufficientStock,
		fmt.Sprintf("Insufficient stock for %s: requested %d, available %d", name, requested, available))
}

// NewInvalidTransitionError describes a rejected status change.
func NewInvalidTransitionError(from, to OrderStatus) *DomainError {
	return NewDomainError(ErrCodeInvalidTransition,
		fmt.Sprintf("Cannot transition order from %s to %s", from, to))
}
