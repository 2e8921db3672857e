package usecase

import (
	"errors"

	"github.com/user/vidmeta/internal/entity"
	"github.com/user/vidmeta/internal/repository"
)

// UserMessage turns an error from a submission cycle into the text shown to
// the user.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	var mismatch *PlatformMismatchError
	var svcErr *repository.ServiceError
	switch {
	case errors.Is(err, ErrMissingInput):
		return ErrMissingInput.Error()
	case errors.As(err, &mismatch):
		return mismatch.Error()
	case errors.As(err, &svcErr):
		if svcErr.Message != "" {
			return svcErr.Message
		}
		return repository.FallbackMessage
	default:
		return repository.FallbackMessage
	}
}

// outcome labels an error for metrics and logs.
func outcome(err error) string {
	var mismatch *PlatformMismatchError
	var netErr *repository.NetworkError
	var svcErr *repository.ServiceError
	switch {
	case err == nil:
		return entity.OutcomeSuccess
	case errors.Is(err, ErrMissingInput):
		return entity.OutcomeMissingInput
	case errors.As(err, &mismatch):
		return entity.OutcomePlatformMismatch
	case errors.As(err, &netErr):
		return entity.OutcomeNetworkError
	case errors.As(err, &svcErr):
		return entity.OutcomeServiceError
	default:
		return entity.OutcomeNetworkError
	}
}
