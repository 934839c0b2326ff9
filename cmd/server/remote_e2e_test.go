//go:build e2e

package main

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"os"
	"strings"
	"testing"
	"time"
)

// Runs against a live server: E2E_BASE_URL=http://localhost:8080 go test -tags e2e ./cmd/server
func TestRemoteAPI_MainEndpoints(t *testing.T) {
	baseURL := strings.TrimRight(envOr("E2E_BASE_URL", "http://localhost:8080"), "/")
	client := &http.Client{Timeout: 20 * time.Second}

	t.Run("healthz", func(t *testing.T) {
		status, body := mustJSON(t, client, http.MethodGet, baseURL+"/healthz", nil)
		if status != http.StatusOK {
			t.Fatalf("healthz status=%d body=%s", status, string(body))
		}
	})

	t.Run("malformed action is rejected", func(t *testing.T) {
		status, body := mustJSON(t, client, http.MethodPost, baseURL+"/api/buddy/actions", map[string]any{"type": "dance"})
		if status != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d body=%s", status, string(body))
		}
	})

	t.Run("state action events ops", func(t *testing.T) {
		status, stateBody := mustJSON(t, client, http.MethodGet, baseURL+"/api/buddy/state", nil)
		if status != http.StatusOK {
			t.Fatalf("state status=%d body=%s", status, string(stateBody))
		}
		var before map[string]any
		if err := json.Unmarshal(stateBody, &before); err != nil {
			t.Fatalf("unmarshal state: %v body=%s", err, string(stateBody))
		}
		beforeStars := asNumber(asMap(before["state"])["total_stars"])

		status, actionBody := mustJSON(t, client, http.MethodPost, baseURL+"/api/buddy/actions", map[string]any{
			"type":   "add_stars",
			"amount": 5,
		})
		if status != http.StatusOK {
			t.Fatalf("action status=%d body=%s", status, string(actionBody))
		}
		var outcome map[string]any
		if err := json.Unmarshal(actionBody, &outcome); err != nil {
			t.Fatalf("unmarshal action: %v body=%s", err, string(actionBody))
		}
		if outcome["applied"] != true {
			t.Fatalf("expected applied outcome, got %v", outcome)
		}
		if got := asNumber(asMap(outcome["state"])["total_stars"]); got != beforeStars+5 {
			t.Fatalf("expected %v stars, got %v", beforeStars+5, got)
		}

		status, eventsBody := mustJSON(t, client, http.MethodGet, baseURL+"/api/buddy/events?limit=20&type=stars_added", nil)
		if status != http.StatusOK {
			t.Fatalf("events status=%d body=%s", status, string(eventsBody))
		}
		var rep map[string]any
		if err := json.Unmarshal(eventsBody, &rep); err != nil {
			t.Fatalf("unmarshal events: %v body=%s", err, string(eventsBody))
		}
		if len(asSlice(rep["events"])) == 0 {
			t.Fatalf("expected stars_added events in response")
		}

		status, kpiBody := mustJSON(t, client, http.MethodGet, baseURL+"/ops/kpi", nil)
		if status != http.StatusOK {
			t.Fatalf("kpi status=%d body=%s", status, string(kpiBody))
		}
		var kpi map[string]any
		if err := json.Unmarshal(kpiBody, &kpi); err != nil {
			t.Fatalf("unmarshal kpi: %v body=%s", err, string(kpiBody))
		}
		if _, ok := kpi["action_total"]; !ok {
			t.Fatalf("expected action_total in kpi response")
		}
	})
}

func mustJSON(t *testing.T, client *http.Client, method, url string, body map[string]any) (int, []byte) {
	t.Helper()
	status, respBody, err := doRequest(client, method, url, body)
	if err != nil {
		t.Fatalf("%s %s request failed: %v", method, url, err)
	}
	return status, respBody
}

func doRequest(client *http.Client, method, url string, body map[string]any) (int, []byte, error) {
	var payloadBytes []byte
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return 0, nil, err
		}
		payloadBytes = b
	}

	var lastStatus int
	var lastBody []byte
	var lastErr error
	for attempt := 0; attempt < 3; attempt++ {
		var payload io.Reader
		if len(payloadBytes) > 0 {
			payload = bytes.NewReader(payloadBytes)
		}
		req, err := http.NewRequest(method, url, payload)
		if err != nil {
			return 0, nil, err
		}
		if body != nil {
			req.Header.Set("Content-Type", "application/json")
		}
		resp, err := client.Do(req)
		if err != nil {
			lastErr = err
			time.Sleep(time.Duration(attempt+1) * 200 * time.Millisecond)
			continue
		}
		respBody, readErr := io.ReadAll(resp.Body)
		resp.Body.Close()
		if readErr != nil {
			lastErr = readErr
			time.Sleep(time.Duration(attempt+1) * 200 * time.Millisecond)
			continue
		}
		lastStatus, lastBody, lastErr = resp.StatusCode, respBody, nil
		if resp.StatusCode >= 500 {
			time.Sleep(time.Duration(attempt+1) * 200 * time.Millisecond)
			continue
		}
		return resp.StatusCode, respBody, nil
	}
	if lastErr != nil {
		return 0, nil, lastErr
	}
	return lastStatus, lastBody, nil
}

func envOr(k, def string) string {
	v := strings.TrimSpace(os.Getenv(k))
	if v == "" {
		return def
	}
	return v
}

func asMap(v any) map[string]any {
	if m, ok := v.(map[string]any); ok {
		return m
	}
	return map[string]any{}
}

func asSlice(v any) []any {
	if s, ok := v.([]any); ok {
		return s
	}
	return nil
}

func asNumber(v any) float64 {
	f, _ := v.(float64)
	return f
}
