package xhttp

import (
	"net/http"
)

const (
	Authorization = "Authorization"
	Accept        = "Accept"
	ContentType   = "Content-Type"
	UserAgent     = "User-Agent"
	XAPIKey       = "X-Api-Key"
	XSessionID    = "X-Client-Session-ID"
)

const (
	applicationJSON = "application/json"
	bearerPrefix    = "Bearer "
)

func SetRequestHeaderBearer(req *http.Request, token string) {
	req.Header.Set(Authorization, bearerPrefix+token)
}

func SetRequestHeaderSessionID(req *http.Request, sessionID string) {
	req.Header.Set(XSessionID, sessionID)
}

func SetRequestHeaderAcceptJSON(req *http.Request) {
	req.Header.Set(Accept, applicationJSON)
}

func SetRequestHeaderContentTypeJSON(req *http.Request) {
	req.Header.Set(ContentType, applicationJSON)
}

// BearerHeader builds a header carrying only a bearer credential,
// for handshakes that do not go through an http.Request.
func BearerHeader(token string) http.Header {
	h := make(http.Header)
	h.Set(Authorization, bearerPrefix+token)
	return h
}

// MergeHeader copies every value of src onto req, replacing existing keys.
func MergeHeader(req *http.Request, src http.Header) {
	for key, values := range src {
		req.Header.Del(key)
		for _, v := range values {
			req.Header.Add(key, v)
		}
	}
}
