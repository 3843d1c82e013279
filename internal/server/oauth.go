package server

import (
	"fmt"
	"net/http"
	"sync"

	"golang.org/x/oauth2"
)

// CallbackPath is the path Spotify redirects the user back to after the
// consent screen. It must match the redirect URI registered on the Spotify
// developer dashboard.
const CallbackPath = "/callback"

// AuthResult is the outcome of one authorization attempt: a usable Spotify
// token, or the error that ended the flow.
type AuthResult struct {
	Token *oauth2.Token
	err   error
}

func (a AuthResult) Err() error {
	return a.err
}

// CallbackHandler serves the redirect Spotify issues once the user approves
// or denies access. It checks the state token, trades the authorization code
// for tokens, and delivers the outcome through [CallbackHandler.Result].
//
// The handler is one shot. The login server exists for a single
// authorization, so any request after the first is rejected.
type CallbackHandler struct {
	config  *oauth2.Config
	state   string
	results chan AuthResult
	once    sync.Once
	mu      sync.Mutex
	done    bool
}

// NewCallbackHandler creates a handler bound to the given OAuth2 config and
// state token. The state token should be cryptographically random.
func NewCallbackHandler(config *oauth2.Config, state string) *CallbackHandler {
	return &CallbackHandler{
		config:  config,
		state:   state,
		results: make(chan AuthResult, 1),
	}
}

// Routes returns the HTTP routes this handler serves.
func (h *CallbackHandler) Routes() []string {
	return []string{CallbackPath}
}

func (h *CallbackHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	seen := h.done
	h.done = true
	h.mu.Unlock()
	if seen {
		http.Error(w, "Authorization already completed", http.StatusBadRequest)
		return
	}

	token, err := h.exchange(r)
	if err != nil {
		h.deliver(AuthResult{err: err})
		http.Error(w, "Spotify authorization failed", http.StatusBadRequest)
		return
	}

	h.deliver(AuthResult{Token: token})

	w.Header().Set("Content-Type", "text/html")
	w.WriteHeader(http.StatusOK)
	fmt.Fprint(w, successPage)
}

// exchange validates the redirect parameters and trades the authorization
// code for a token.
func (h *CallbackHandler) exchange(r *http.Request) (*oauth2.Token, error) {
	query := r.URL.Query()

	if query.Get("state") != h.state {
		return nil, fmt.Errorf("state token mismatch")
	}
	if errParam := query.Get("error"); errParam != "" {
		return nil, fmt.Errorf("spotify denied authorization: %s (%s)", errParam, query.Get("error_description"))
	}
	code := query.Get("code")
	if code == "" {
		return nil, fmt.Errorf("redirect carried no authorization code")
	}

	token, err := h.config.Exchange(r.Context(), code)
	if err != nil {
		return nil, fmt.Errorf("token exchange failed: %w", err)
	}
	return token, nil
}

// deliver publishes the result exactly once and closes the channel.
func (h *CallbackHandler) deliver(result AuthResult) {
	h.once.Do(func() {
		h.results <- result
		close(h.results)
	})
}

// Result returns the channel carrying the flow's outcome. It receives exactly
// one result and is then closed.
func (h *CallbackHandler) Result() <-chan AuthResult {
	return h.results
}

const successPage = `
<!DOCTYPE html>
<html>
<head>
    <title>Spotify Connected</title>
    <style>
        body { font-family: -apple-system, BlinkMacSystemFont, "Segoe UI", Roboto, sans-serif;
               display: flex; align-items: center; justify-content: center; height: 100vh;
               margin: 0; background: #f5f5f5; }
        .card { text-align: center; background: white; padding: 2rem;
                border-radius: 8px; box-shadow: 0 2px 4px rgba(0,0,0,0.1); }
        h1 { color: #1DB954; margin: 0 0 1rem 0; }
        p { color: #666; margin: 0; }
    </style>
</head>
<body>
    <div class="card">
        <h1>✓ Spotify Connected</h1>
        <p>relative-artistry now has access to your account. Close this tab and head back to the terminal.</p>
    </div>
</body>
</html>
`
