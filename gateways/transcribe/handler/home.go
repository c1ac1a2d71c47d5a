package handler

import (
	_ "embed"
	"html/template"
	"log/slog"
	"net/http"
	"strings"

	"github.com/xilidan/audio-transcriber/services/transcribe/consts"
)

//go:embed home.html
var homeHTML string

var homeTemplate = template.Must(template.New("home").Parse(homeHTML))

type homeData struct {
	Service string
	Formats string
	BaseURL string
}

func (h *Handler) Home(w http.ResponseWriter, r *http.Request) {
	h.log.Debug("home page request received", slog.String("remote_addr", r.RemoteAddr))

	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	data := homeData{
		Service: serviceName,
		Formats: strings.ToUpper(strings.Join(consts.SupportedFormats, ", ")),
		BaseURL: scheme + "://" + r.Host,
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := homeTemplate.Execute(w, data); err != nil {
		h.log.Error("failed to render home page", slog.String("error", err.Error()))
	}
}
