package usecase

import (
	"errors"
	"fmt"
	"testing"

	"github.com/user/vidmeta/internal/entity"
	"github.com/user/vidmeta/internal/repository"
)

func TestUserMessage(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"nil", nil, ""},
		{"missing input", ErrMissingInput, "Please provide a video URL and select a platform"},
		{"mismatch", &PlatformMismatchError{Platform: entity.PlatformTikTok},
			"The URL is not a TikTok link, please check the URL or select YouTube platform."},
		{"service message", &repository.ServiceError{StatusCode: 400, Message: "Video not found"}, "Video not found"},
		{"wrapped service message", fmt.Errorf("fetch: %w", &repository.ServiceError{StatusCode: 500, Message: "boom"}), "boom"},
		{"service without message", &repository.ServiceError{StatusCode: 500}, repository.FallbackMessage},
		{"network", &repository.NetworkError{Err: errors.New("dial tcp: refused")}, repository.FallbackMessage},
		{"unknown", errors.New("weird"), repository.FallbackMessage},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := UserMessage(tt.err); got != tt.want {
				t.Errorf("UserMessage() = %q, want %q", got, tt.want)
			}
		})
	}
}
