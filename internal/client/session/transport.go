package session

import (
	"io"
	"net/http"
	"strings"

	"github.com/dmitrijs2005/authkeeper/internal/api"
	"github.com/dmitrijs2005/authkeeper/internal/common"
)

// Transport is an http.RoundTripper that authenticates requests through a
// Session and replays a request once after renewing on 401.
//
// BasePath is the path prefix of the server URL (e.g. "/api"). It is
// stripped before a request path is compared with api.AnonymousRoutes.
type Transport struct {
	Session  *Session
	Base     http.RoundTripper
	BasePath string
}

func (t *Transport) base() http.RoundTripper {
	if t.Base != nil {
		return t.Base
	}
	return http.DefaultTransport
}

func (t *Transport) RoundTrip(req *http.Request) (*http.Response, error) {
	if t.anonymous(req.URL.Path) {
		return t.base().RoundTrip(req)
	}

	access := t.Session.AccessToken()
	resp, err := t.base().RoundTrip(withBearer(req, access))
	if err != nil || resp.StatusCode != http.StatusUnauthorized {
		return resp, err
	}
	if req.Body != nil && req.Body != http.NoBody && req.GetBody == nil {
		return resp, nil
	}

	fresh, err := t.Session.Renew(req.Context(), access)
	if err != nil {
		drain(resp)
		return nil, err
	}

	retry := withBearer(req, fresh)
	if req.GetBody != nil {
		body, err := req.GetBody()
		if err != nil {
			drain(resp)
			return nil, err
		}
		retry.Body = body
	}
	drain(resp)

	return t.base().RoundTrip(retry)
}

func (t *Transport) anonymous(path string) bool {
	if base := strings.TrimRight(t.BasePath, "/"); base != "" {
		rest, ok := strings.CutPrefix(path, base)
		if !ok {
			return false
		}
		path = rest
	}
	_, ok := api.AnonymousRoutes[path]
	return ok
}

func withBearer(req *http.Request, token string) *http.Request {
	r := req.Clone(req.Context())
	r.Header.Del(common.AuthorizationHeaderName)
	if token != "" {
		r.Header.Set(common.AuthorizationHeaderName, common.BearerPrefix+token)
	}
	return r
}

func drain(resp *http.Response) {
	_, _ = io.Copy(io.Discard, resp.Body)
	_ = resp.Body.Close()
}
