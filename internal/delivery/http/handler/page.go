package handler

import (
	"bytes"
	"net/http"

	"go.uber.org/zap"

	"github.com/user/vidmeta/internal/entity"
)

type platformButton struct {
	Value    string
	Label    string
	Selected bool
}

type pageData struct {
	State     entity.SubmissionState
	Platforms []platformButton
	HasResult bool
	Fields    []entity.DisplayField
	VideoURL  string
	Thumbnail string
}

func newPageData(s entity.SubmissionState) pageData {
	d := pageData{State: s}
	for _, p := range entity.Platforms() {
		d.Platforms = append(d.Platforms, platformButton{
			Value:    p.String(),
			Label:    p.Label(),
			Selected: p == s.Platform,
		})
	}
	if s.Result != nil {
		d.HasResult = true
		d.Fields = s.Result.Fields()
		d.VideoURL = s.Result.VideoURL()
		d.Thumbnail = s.Result.Thumbnail()
	}
	return d
}

func (h *Handler) render(w http.ResponseWriter, s entity.SubmissionState) {
	var buf bytes.Buffer
	if err := h.page.Execute(&buf, newPageData(s)); err != nil {
		h.logger.Error("failed to render page", zap.Error(err))
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	w.Write(buf.Bytes())
}

const pageTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>Video Metadata Scraper</title>
    <style>
        body { font-family: Arial, sans-serif; background: #eef1f4; margin: 0; padding: 40px 12px; }
        .container { max-width: 500px; margin: 0 auto; padding: 20px; background: #f9f9f9; border-radius: 8px; box-shadow: 0 4px 8px rgba(0,0,0,0.1); }
        h1 { text-align: center; color: #333; font-size: 24px; margin: 0 0 10px; }
        .subtitle { text-align: center; color: #666; margin-bottom: 20px; }
        input[type=text] { width: 100%; box-sizing: border-box; padding: 12px; margin-bottom: 20px; border: 1px solid #ccc; border-radius: 4px; font-size: 16px; }
        .platforms { display: flex; justify-content: center; gap: 10px; margin-bottom: 20px; }
        .platform { padding: 10px 20px; background: #fff; border: 1px solid #ccc; border-radius: 4px; cursor: pointer; font-size: 16px; }
        .platform.selected.tiktok { background: #000; color: #fff; }
        .platform.selected.youtube { background: #f00; color: #fff; }
        .submit { display: block; width: 100%; padding: 12px; background: #007bff; color: #fff; border: none; border-radius: 4px; font-size: 16px; cursor: pointer; }
        .default-action { position: absolute; left: -9999px; }
        .loading { text-align: center; color: #666; }
        .result { margin-top: 20px; padding: 15px; background: #fff; border: 1px solid #ddd; border-radius: 4px; }
        .result h2 { margin-top: 0; color: #333; }
        .result img { max-width: 100%; border-radius: 4px; }
        .result a { color: #007bff; }
        .error { margin-top: 20px; color: #d00; text-align: center; }
    </style>
</head>
<body>
<div class="container">
    <h1>Video Metadata Scraper</h1>
    <p class="subtitle">Enter the video URL and choose a platform</p>
    <form method="post" action="/">
        <button type="submit" class="default-action" tabindex="-1" aria-hidden="true">Submit</button>
        <input type="text" id="url" name="url" value="{{.State.URL}}" placeholder="Enter video URL">
        <div class="platforms">
            {{- range .Platforms}}
            <button type="submit" name="platform" value="{{.Value}}" class="platform {{.Value}}{{if .Selected}} selected{{end}}">{{.Label}}</button>
            {{- end}}
        </div>
        <button type="submit" id="submit" class="submit">Submit</button>
    </form>
    {{- if .State.Loading}}
    <p id="loading" class="loading">Loading...</p>
    {{- end}}
    {{- if .HasResult}}
    <div id="result" class="result">
        <h2>Scraped Data</h2>
        {{- if .Thumbnail}}
        <img id="thumbnail" src="{{.Thumbnail}}" alt="Video thumbnail">
        {{- end}}
        {{- range .Fields}}
        <p data-field="{{.Key}}"><strong>{{.Label}}:</strong> {{.Value}}</p>
        {{- end}}
        {{- if .VideoURL}}
        <a id="watch" href="{{.VideoURL}}" target="_blank" rel="noopener noreferrer">Watch Video</a>
        {{- end}}
    </div>
    {{- end}}
    {{- if .State.Error}}
    <p id="error" class="error">{{.State.Error}}</p>
    {{- end}}
</div>
</body>
</html>
`
