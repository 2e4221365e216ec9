package server

import (
	"encoding/json"
	"io"
	"mime"
	"net/http"
	"strings"

	"github.com/AzureXuanVerse/Nebula-Tools/common"
	"github.com/AzureXuanVerse/Nebula-Tools/internal/api"
	"github.com/AzureXuanVerse/Nebula-Tools/pkg/logger"
)

const (
	maxRemoteBody     = 1 << 20
	proxyFailedPrefix = "proxy request failed: "
)

// remoteHandler serves the browser proxy route: it takes
// {serverUrl, token, command}, forwards the command to the admin endpoint
// under serverUrl and relays the admin server's envelope. Every outcome,
// including failures, is HTTP 200 with a {Code, Msg} JSON body.
func remoteHandler(ops Operations, l logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			writeResult(w, &api.Result{Code: http.StatusMethodNotAllowed, Msg: "method not allowed"})
			return
		}
		// a non-JSON content type would let any web page reach this route
		// with a simple cross-origin POST, skipping the CORS preflight
		if !isJSON(r.Header.Get("Content-Type")) {
			writeResult(w, &api.Result{Code: http.StatusUnsupportedMediaType, Msg: "content type must be application/json"})
			return
		}
		var p common.RemoteParams
		if err := json.NewDecoder(io.LimitReader(r.Body, maxRemoteBody)).Decode(&p); err != nil {
			writeResult(w, &api.Result{Code: http.StatusInternalServerError, Msg: proxyFailedPrefix + err.Error()})
			return
		}
		if strings.TrimSpace(p.ServerURL) == "" || p.Token == "" || p.Command == "" {
			writeResult(w, &api.Result{Code: http.StatusBadRequest, Msg: "missing required parameters"})
			return
		}

		body, err := ops.RemoteProxy(r.Context(), &common.RemoteParams{
			ServerURL: api.CommandURL(p.ServerURL),
			Token:     p.Token,
			Command:   p.Command,
		})
		if err != nil {
			l.Warning("proxy error: %v", err)
			writeResult(w, &api.Result{Code: http.StatusInternalServerError, Msg: proxyFailedPrefix + err.Error()})
			return
		}
		writeResult(w, api.ParseResult(body))
	}
}

func isJSON(contentType string) bool {
	mt, _, err := mime.ParseMediaType(contentType)
	return err == nil && mt == "application/json"
}

func writeResult(w http.ResponseWriter, res *api.Result) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(res)
}
