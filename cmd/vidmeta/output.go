package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/user/vidmeta/internal/delivery/http/response"
	"github.com/user/vidmeta/internal/entity"
)

type outputFormat string

const (
	outputText outputFormat = "text"
	outputJSON outputFormat = "json"
	outputYAML outputFormat = "yaml"
)

func parseOutputFormat(s string) (outputFormat, error) {
	switch f := outputFormat(strings.ToLower(s)); f {
	case outputText, outputJSON, outputYAML:
		return f, nil
	default:
		return "", fmt.Errorf("unknown output format %q (want text, json or yaml)", s)
	}
}

type yamlState struct {
	URL       string         `yaml:"url"`
	Platform  string         `yaml:"platform"`
	Phase     string         `yaml:"phase"`
	VideoData map[string]any `yaml:"videoData,omitempty"`
	Error     string         `yaml:"error,omitempty"`
	Outcome   string         `yaml:"outcome,omitempty"`
}

func writeState(w io.Writer, s entity.SubmissionState, format outputFormat) error {
	switch format {
	case outputJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(response.FromState(s))
	case outputYAML:
		out := yamlState{
			URL:      s.URL,
			Platform: s.Platform.String(),
			Phase:    string(s.Phase),
			Error:    s.Error,
			Outcome:  s.Outcome,
		}
		if s.Result != nil {
			out.VideoData = yamlValue(map[string]any(s.Result)).(map[string]any)
		}
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(out); err != nil {
			return err
		}
		return enc.Close()
	default:
		return writeText(w, s)
	}
}

// yamlValue turns decoded JSON numbers back into numbers so YAML does not
// quote them as strings.
func yamlValue(v any) any {
	switch t := v.(type) {
	case json.Number:
		if i, err := t.Int64(); err == nil {
			return i
		}
		if f, err := t.Float64(); err == nil {
			return f
		}
		return t.String()
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, e := range t {
			out[k] = yamlValue(e)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = yamlValue(e)
		}
		return out
	default:
		return v
	}
}

func writeText(w io.Writer, s entity.SubmissionState) error {
	var b strings.Builder
	if s.Error != "" {
		fmt.Fprintf(&b, "Error: %s\n", s.Error)
	}
	if s.Result != nil {
		if thumb := s.Result.Thumbnail(); thumb != "" {
			fmt.Fprintf(&b, "Thumbnail: %s\n", thumb)
		}
		for _, f := range s.Result.Fields() {
			fmt.Fprintf(&b, "%s: %s\n", f.Label, f.Value)
		}
		if u := s.Result.VideoURL(); u != "" {
			fmt.Fprintf(&b, "Watch Video: %s\n", u)
		}
	}
	_, err := io.WriteString(w, b.String())
	return err
}

// writeTransition prints one line per observed state change.
func writeTransition(w io.Writer, s entity.SubmissionState) {
	line := fmt.Sprintf("[%s] platform=%q loading=%t", s.Phase, s.Platform.String(), s.Loading)
	if s.Outcome != "" {
		line += " outcome=" + s.Outcome
	}
	fmt.Fprintln(w, line)
}
