package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/MrSnakeDoc/cfxlookup/internal/domain"
	"github.com/MrSnakeDoc/cfxlookup/internal/httpserver/deps"
	"github.com/MrSnakeDoc/cfxlookup/internal/logger"
)

func requestID(r *http.Request) string { return middleware.GetReqID(r.Context()) }

// ChatProfile relays GET ?id= to the chat user directory and returns the
// upstream object unchanged.
func ChatProfile(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := domain.ParseUserID(r.URL.Query().Get("id"))
		if err != nil {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "Invalid user id"})
			return
		}

		body, err := d.Chat.Fetch(r.Context(), id)
		if err != nil {
			fail(w, r, d, "chat-profile", err)
			return
		}
		writeRaw(w, body)
	}
}

// PlatformProfile relays GET ?hex=steam:<hex> to the player summaries API
// with the server-held key and returns the first player.
func PlatformProfile(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := domain.ParsePlatformHex(r.URL.Query().Get("hex"))
		if err != nil {
			d.Logger.Debug("rejected platform hex", logger.String("request_id", requestID(r)))
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: domain.PublicMessage(err)})
			return
		}

		body, err := d.Platform.Fetch(r.Context(), id)
		if err != nil {
			fail(w, r, d, "platform-profile", err)
			return
		}
		writeRaw(w, body)
	}
}

// Avatar relays GET ?url= and streams the image back with a public cache
// lifetime.
func Avatar(d deps.Deps) http.HandlerFunc {
	maxAge := fmt.Sprintf("public, max-age=%d", int(d.AvatarMaxAge.Seconds()))

	return func(w http.ResponseWriter, r *http.Request) {
		raw := r.URL.Query().Get("url")
		if _, err := d.Avatars.ParseAvatarURL(raw); err != nil {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: domain.PublicMessage(err)})
			return
		}

		img, err := d.Avatars.Fetch(r.Context(), raw)
		if err != nil {
			fail(w, r, d, "avatar", err)
			return
		}

		w.Header().Set("Content-Type", img.ContentType)
		w.Header().Set("Content-Length", strconv.Itoa(len(img.Body)))
		w.Header().Set("Cache-Control", maxAge)
		w.WriteHeader(http.StatusOK)
		if r.Method != http.MethodHead {
			_, _ = w.Write(img.Body)
		}
	}
}
