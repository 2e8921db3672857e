package usecase

import (
	"errors"
	"fmt"
	"strings"

	"github.com/user/vidmeta/internal/entity"
)

// ErrMissingInput is returned when the URL or the platform is not provided.
var ErrMissingInput = errors.New("Please provide a video URL and select a platform")

// PlatformMismatchError is returned when the URL does not belong to the
// selected platform.
type PlatformMismatchError struct {
	Platform entity.Platform
}

func (e *PlatformMismatchError) Error() string {
	return fmt.Sprintf("The URL is not a %s link, please check the URL or select %s platform.",
		e.Platform.Label(), e.Platform.Other().Label())
}

// Validate checks a URL against the selected platform. Matching is a plain,
// case-sensitive substring test on the platform's domain; the URL is not parsed.
func Validate(url string, platform entity.Platform) error {
	if url == "" || platform == entity.PlatformUnset {
		return ErrMissingInput
	}
	if !strings.Contains(url, platform.URLPattern()) {
		return &PlatformMismatchError{Platform: platform}
	}
	return nil
}
