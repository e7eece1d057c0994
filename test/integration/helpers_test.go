package integration

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"os"
	"strings"
	"testing"
)

// testServer holds the base URL of a running formula engine for tests.
var testServer string

func init() {
	testServer = os.Getenv("FORMULA_ENGINE_URL")
	if testServer == "" {
		testServer = "http://localhost:8790"
	}
	if !strings.HasPrefix(testServer, "http://") && !strings.HasPrefix(testServer, "https://") {
		testServer = "http://" + testServer
	}
}

// requireServer skips the test when no engine is reachable, so the suite can
// run in environments without a live server.
func requireServer(t *testing.T) {
	t.Helper()
	resp, err := http.Get(apiURL("/healthz"))
	if err != nil {
		t.Skipf("formula engine not reachable at %s: %v", testServer, err)
	}
	resp.Body.Close()
	if resp.StatusCode != 200 {
		t.Skipf("formula engine unhealthy at %s: status %d", testServer, resp.StatusCode)
	}
}

// apiURL builds a full URL for the given path.
func apiURL(path string) string {
	return strings.TrimRight(testServer, "/") + path
}

// postJSON sends a JSON POST and decodes the JSON response.
func postJSON(t *testing.T, path string, body interface{}) (int, map[string]interface{}) {
	t.Helper()

	data, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal request: %v", err)
	}

	resp, err := http.Post(apiURL(path), "application/json", bytes.NewReader(data))
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	raw, _ := io.ReadAll(resp.Body)
	var parsed map[string]interface{}
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &parsed); err != nil {
			t.Fatalf("invalid JSON response %q: %v", raw, err)
		}
	}
	return resp.StatusCode, parsed
}

// doJSON sends a request with an arbitrary method.
func doJSON(t *testing.T, method, path string, body interface{}) (int, map[string]interface{}) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal request: %v", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, apiURL(path), reader)
	if err != nil {
		t.Fatalf("build request: %v", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	raw, _ := io.ReadAll(resp.Body)
	var parsed map[string]interface{}
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &parsed); err != nil {
			t.Fatalf("invalid JSON response %q: %v", raw, err)
		}
	}
	return resp.StatusCode, parsed
}
