package repository

import "fmt"

// FallbackMessage is shown when the scrape service gives no usable message.
const FallbackMessage = "Something went wrong"

// NetworkError means no response was received from the scrape service.
type NetworkError struct {
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("scrape service unreachable: %v", e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// ServiceError means the scrape service answered with a failure.
// Message is the service's own error text, or FallbackMessage.
type ServiceError struct {
	StatusCode int
	Message    string
}

func (e *ServiceError) Error() string {
	return fmt.Sprintf("scrape service returned %d: %s", e.StatusCode, e.Message)
}
