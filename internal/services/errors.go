package services

import "errors"

// ValidationError is a client error carrying the status the front door should answer with.
type ValidationError struct {
	Status  int
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

var (
	ErrEmailTaken       = &ValidationError{Status: 461, Message: "This email is already used"}
	ErrUsernameRequired = &ValidationError{Status: 462, Message: "Username is required"}
	ErrPasswordRequired = &ValidationError{Status: 463, Message: "Password is required"}
	ErrEmailRequired    = &ValidationError{Status: 464, Message: "Email is required"}
	ErrPhoneRequired    = &ValidationError{Status: 465, Message: "Phone is required"}
)

var (
	ErrUnknownEmail       = errors.New("Unknown email")
	ErrWrongCredentials   = errors.New("Wrong credentials")
	ErrOfferNotFound      = errors.New("Offer not found")
	ErrUploadsUnavailable = errors.New("image uploads are not configured")
	ErrPaymentsDisabled   = errors.New("payments are not configured")
	ErrInvalidPrice       = errors.New("price must be a number")
)
