package main

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"net/http"
	"time"

	"sealife/constants"

	log "github.com/sirupsen/logrus"
)

const sessionCookieName = "sealife_session"

type ctxKey int

const requestStateKey ctxKey = iota

// RequestState carries the per-request session, resolved language and
// signed-in admin. Handlers receive it through the request context instead
// of reading any ambient globals.
type RequestState struct {
	Session *Session
	Admin   *Admin
	Lang    string
}

func generateSessionToken() (string, error) {
	const tokenLength = 32
	tokenBytes := make([]byte, tokenLength)
	if _, err := rand.Read(tokenBytes); err != nil {
		return "", err
	}
	return base64.URLEncoding.EncodeToString(tokenBytes), nil
}

// SessionMiddleware loads (or creates) the visitor session and resolves the
// active language: an explicit ?lang= wins, then the session value, then
// the default. The resolved value is always written back to the session so
// later requests without the parameter keep the choice.
func SessionMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess := lookupSession(r)
		if sess == nil {
			var err error
			sess, err = createSession(w)
			if err != nil {
				log.WithError(err).Error("creating session")
				http.Error(w, "Internal server error", http.StatusInternalServerError)
				return
			}
		}

		lang := normalizeLang(r.URL.Query().Get("lang"))
		if lang == "" {
			lang = normalizeLang(sess.Lang)
		}
		if lang == "" {
			lang = constants.DEFAULT_LANG
		}
		if sess.Lang != lang {
			sess.Lang = lang
			db.Save(sess)
		}

		state := &RequestState{Session: sess, Lang: lang}
		if sess.AdminID != nil {
			var admin Admin
			if err := db.First(&admin, *sess.AdminID).Error; err == nil {
				state.Admin = &admin
			}
		}

		ctx := context.WithValue(r.Context(), requestStateKey, state)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func getRequestState(r *http.Request) *RequestState {
	state, _ := r.Context().Value(requestStateKey).(*RequestState)
	return state
}

func lookupSession(r *http.Request) *Session {
	cookie, err := r.Cookie(sessionCookieName)
	if err != nil || cookie.Value == "" {
		return nil
	}

	var sess Session
	if err := db.Where("token = ?", cookie.Value).First(&sess).Error; err != nil {
		return nil
	}
	if sess.IsExpired() {
		db.Delete(&sess)
		return nil
	}
	return &sess
}

func createSession(w http.ResponseWriter) (*Session, error) {
	token, err := generateSessionToken()
	if err != nil {
		return nil, err
	}

	sess := &Session{
		Token:     token,
		ExpiresAt: time.Now().Add(constants.SESSION_TTL_DAYS * 24 * time.Hour),
	}
	if err := db.Create(sess).Error; err != nil {
		return nil, err
	}

	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return sess, nil
}

func signInAdmin(state *RequestState, admin *Admin) {
	state.Session.AdminID = &admin.ID
	state.Admin = admin
	db.Save(state.Session)
}

func signOutAdmin(state *RequestState) {
	state.Session.AdminID = nil
	state.Admin = nil
	db.Save(state.Session)
}

func setFlash(state *RequestState, kind, message string) {
	state.Session.Flash = message
	state.Session.FlashKind = kind
	db.Save(state.Session)
}

// popFlash returns and clears the one-shot flash message.
func popFlash(state *RequestState) (message, kind string) {
	message, kind = state.Session.Flash, state.Session.FlashKind
	if message != "" {
		state.Session.Flash = ""
		state.Session.FlashKind = ""
		db.Save(state.Session)
	}
	return message, kind
}
