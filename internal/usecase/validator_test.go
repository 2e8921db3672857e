package usecase

import (
	"errors"
	"testing"

	"github.com/user/vidmeta/internal/entity"
)

func TestValidateMissingInput(t *testing.T) {
	tests := []struct {
		name     string
		url      string
		platform entity.Platform
	}{
		{"empty url", "", entity.PlatformTikTok},
		{"unset platform", "https://youtube.com/watch?v=1", entity.PlatformUnset},
		{"both empty", "", entity.PlatformUnset},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.url, tt.platform)
			if !errors.Is(err, ErrMissingInput) {
				t.Fatalf("Validate() = %v, want ErrMissingInput", err)
			}
		})
	}
}

func TestValidateAccepts(t *testing.T) {
	tests := []struct {
		name     string
		url      string
		platform entity.Platform
	}{
		{"youtube", "https://youtube.com/watch?v=1", entity.PlatformYouTube},
		{"youtube www", "https://www.youtube.com/shorts/abc", entity.PlatformYouTube},
		{"tiktok", "https://www.tiktok.com/@user/video/123", entity.PlatformTikTok},
		{"both patterns as youtube", "https://tiktok.com/?next=youtube.com", entity.PlatformYouTube},
		{"both patterns as tiktok", "https://tiktok.com/?next=youtube.com", entity.PlatformTikTok},
		{"not a url but contains domain", "youtube.com", entity.PlatformYouTube},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := Validate(tt.url, tt.platform); err != nil {
				t.Fatalf("Validate(%q, %v) = %v, want nil", tt.url, tt.platform, err)
			}
		})
	}
}

func TestValidatePlatformMismatch(t *testing.T) {
	tests := []struct {
		name     string
		url      string
		platform entity.Platform
		want     string
	}{
		{
			"example.com as youtube", "https://example.com", entity.PlatformYouTube,
			"The URL is not a YouTube link, please check the URL or select TikTok platform.",
		},
		{
			"tiktok link as youtube", "https://www.tiktok.com/@u/video/1", entity.PlatformYouTube,
			"The URL is not a YouTube link, please check the URL or select TikTok platform.",
		},
		{
			"youtu.be short link", "https://youtu.be/abc", entity.PlatformYouTube,
			"The URL is not a YouTube link, please check the URL or select TikTok platform.",
		},
		{
			"case sensitive", "https://YouTube.com/watch?v=1", entity.PlatformYouTube,
			"The URL is not a YouTube link, please check the URL or select TikTok platform.",
		},
		{
			"youtube link as tiktok", "https://youtube.com/watch?v=1", entity.PlatformTikTok,
			"The URL is not a TikTok link, please check the URL or select YouTube platform.",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.url, tt.platform)
			var mismatch *PlatformMismatchError
			if !errors.As(err, &mismatch) {
				t.Fatalf("Validate() = %v, want *PlatformMismatchError", err)
			}
			if mismatch.Platform != tt.platform {
				t.Errorf("Platform = %v, want %v", mismatch.Platform, tt.platform)
			}
			if err.Error() != tt.want {
				t.Errorf("message = %q, want %q", err.Error(), tt.want)
			}
		})
	}
}
