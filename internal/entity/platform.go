package entity

import "strings"

// Platform is the video service a submission targets.
type Platform int

const (
	PlatformUnset Platform = iota
	PlatformYouTube
	PlatformTikTok
)

// ParsePlatform maps a wire name ("youtube", "tiktok") to a Platform.
// Anything else yields PlatformUnset.
func ParsePlatform(raw string) Platform {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "youtube":
		return PlatformYouTube
	case "tiktok":
		return PlatformTikTok
	default:
		return PlatformUnset
	}
}

// String returns the wire name sent to the scrape service.
func (p Platform) String() string {
	switch p {
	case PlatformYouTube:
		return "youtube"
	case PlatformTikTok:
		return "tiktok"
	default:
		return ""
	}
}

// Label is the human readable platform name.
func (p Platform) Label() string {
	switch p {
	case PlatformYouTube:
		return "YouTube"
	case PlatformTikTok:
		return "TikTok"
	default:
		return ""
	}
}

// URLPattern is the substring a URL must contain to belong to the platform.
func (p Platform) URLPattern() string {
	switch p {
	case PlatformYouTube:
		return "youtube.com"
	case PlatformTikTok:
		return "tiktok.com"
	default:
		return ""
	}
}

// Other returns the alternative platform to suggest on a mismatch.
func (p Platform) Other() Platform {
	switch p {
	case PlatformYouTube:
		return PlatformTikTok
	case PlatformTikTok:
		return PlatformYouTube
	default:
		return PlatformUnset
	}
}

func (p Platform) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

func (p *Platform) UnmarshalText(text []byte) error {
	*p = ParsePlatform(string(text))
	return nil
}

// Platforms lists the selectable platforms in display order.
func Platforms() []Platform {
	return []Platform{PlatformTikTok, PlatformYouTube}
}
