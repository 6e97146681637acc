// Package viewtrack dedupes posting view counts per browser.
//
// The view counter on a posting should grow when someone looks at it,
// not every time the same person refreshes the page. A signed cookie
// holds the recently viewed posting IDs; a detail request only
// increments the counter when the posting is not already in the cookie.
package viewtrack

import (
	"net/http"
	"time"

	"github.com/gorilla/securecookie"
)

const (
	cookieName = "crewboard-viewed"

	// maxTracked bounds the cookie payload; oldest entries fall off.
	maxTracked = 50

	ttl = 6 * time.Hour
)

// Tracker signs and verifies the recently-viewed cookie.
type Tracker struct {
	codec *securecookie.SecureCookie
}

// New builds a Tracker from the session hash key. The cookie carries no
// secrets, but signing stops clients from forging view resets.
func New(hashKey []byte) *Tracker {
	sc := securecookie.New(hashKey, nil)
	sc.MaxAge(int(ttl.Seconds()))
	return &Tracker{codec: sc}
}

// Seen reports whether jobID is already recorded in the request's cookie.
// A missing or tampered cookie reads as nothing seen.
func (t *Tracker) Seen(r *http.Request, jobID string) bool {
	for _, id := range t.decode(r) {
		if id == jobID {
			return true
		}
	}
	return false
}

// Record appends jobID to the viewed set and rewrites the cookie.
func (t *Tracker) Record(w http.ResponseWriter, r *http.Request, jobID string) {
	ids := t.decode(r)
	for _, id := range ids {
		if id == jobID {
			return
		}
	}
	ids = append(ids, jobID)
	if len(ids) > maxTracked {
		ids = ids[len(ids)-maxTracked:]
	}

	encoded, err := t.codec.Encode(cookieName, ids)
	if err != nil {
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     cookieName,
		Value:    encoded,
		Path:     "/",
		MaxAge:   int(ttl.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

func (t *Tracker) decode(r *http.Request) []string {
	c, err := r.Cookie(cookieName)
	if err != nil {
		return nil
	}
	var ids []string
	if err := t.codec.Decode(cookieName, c.Value, &ids); err != nil {
		return nil
	}
	return ids
}
