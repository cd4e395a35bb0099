package e2e

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const sessionCookie = "USER-AUTH"

// TestContext drives a running server over HTTP. Each actor keeps its own session
// token so scenarios can switch between users.
type TestContext struct {
	baseURL  string
	client   *http.Client
	sessions map[string]string
	saved    map[string]string
	actor    string
	run      string

	status int
	body   []byte
}

func NewTestContext(baseURL string) *TestContext {
	tc := &TestContext{
		baseURL: baseURL,
		client:  &http.Client{Timeout: 10 * time.Second},
	}
	tc.Reset()
	return tc
}

// Reset clears everything a previous scenario left behind.
func (tc *TestContext) Reset() {
	tc.sessions = map[string]string{}
	tc.saved = map[string]string{}
	tc.actor = ""
	tc.run = fmt.Sprintf("%d", time.Now().UnixNano())
	tc.status = 0
	tc.body = nil
}

// Act makes subsequent requests on behalf of actor.
func (tc *TestContext) Act(actor string) {
	tc.actor = actor
}

func (tc *TestContext) Actor() string {
	return tc.actor
}

// Email gives actor an address unique to this scenario, so reruns against a
// long-lived server never collide.
func (tc *TestContext) Email(actor string) string {
	return fmt.Sprintf("%s+%s@example.com", actor, tc.run)
}

// Do sends a JSON request with the current actor's session, and remembers a session
// cookie set or cleared by the response.
func (tc *TestContext) Do(method, path string, body any) error {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode body: %w", err)
		}
		reader = bytes.NewReader(raw)
	}
	req, err := http.NewRequest(method, tc.baseURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := tc.sessions[tc.actor]; token != "" {
		req.AddCookie(&http.Cookie{Name: sessionCookie, Value: token})
	}

	resp, err := tc.client.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	tc.status = resp.StatusCode
	tc.body, err = io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read body: %w", err)
	}
	for _, c := range resp.Cookies() {
		if c.Name != sessionCookie {
			continue
		}
		if c.MaxAge < 0 || c.Value == "" {
			delete(tc.sessions, tc.actor)
		} else {
			tc.sessions[tc.actor] = c.Value
		}
	}
	return nil
}

// UseSession presents token as the current actor's session cookie.
func (tc *TestContext) UseSession(token string) {
	tc.sessions[tc.actor] = token
}

func (tc *TestContext) Session() string {
	return tc.sessions[tc.actor]
}

func (tc *TestContext) Status() int {
	return tc.status
}

func (tc *TestContext) Body() []byte {
	return tc.body
}

// ResponseField reads a top-level field of the last JSON object response.
func (tc *TestContext) ResponseField(field string) (any, error) {
	var obj map[string]any
	if err := json.Unmarshal(tc.body, &obj); err != nil {
		return nil, fmt.Errorf("response is not a JSON object: %s", tc.body)
	}
	v, ok := obj[field]
	if !ok {
		return nil, fmt.Errorf("field %q not in response %s", field, tc.body)
	}
	return v, nil
}

// ResponseLen counts the items of the last JSON array response.
func (tc *TestContext) ResponseLen() (int, error) {
	var items []json.RawMessage
	if err := json.Unmarshal(tc.body, &items); err != nil {
		return 0, fmt.Errorf("response is not a JSON array: %s", tc.body)
	}
	return len(items), nil
}

func (tc *TestContext) Save(name, value string) {
	tc.saved[name] = value
}

func (tc *TestContext) Recall(name string) (string, error) {
	v, ok := tc.saved[name]
	if !ok {
		return "", fmt.Errorf("nothing saved as %q", name)
	}
	return v, nil
}
