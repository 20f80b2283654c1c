package integration

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"strings"
	"testing"
	"time"
)

// Exercises the whole trip lifecycle against a running API. Requires a
// reachable server and a seeded manager account:
//
//	FLEET_API_BASE_URL  (default http://localhost:8080)
//	FLEET_TEST_EMAIL    manager account email
//	FLEET_TEST_PASSWORD manager account password
func TestTripLifecycleAgainstRunningAPI(t *testing.T) {
	email := strings.TrimSpace(os.Getenv("FLEET_TEST_EMAIL"))
	password := os.Getenv("FLEET_TEST_PASSWORD")
	if email == "" || password == "" {
		t.Skip("FLEET_TEST_EMAIL / FLEET_TEST_PASSWORD not set")
	}
	baseURL := strings.TrimRight(envOrDefault("FLEET_API_BASE_URL", "http://localhost:8080"), "/")
	client := &http.Client{Timeout: 30 * time.Second}

	waitForAPIReady(t, client, baseURL)

	// Login.
	status, body := doJSON(t, client, http.MethodPost, baseURL+"/auth/login", "", map[string]any{
		"email": email, "password": password,
	})
	if status != http.StatusOK {
		t.Fatalf("login: %d %s", status, body)
	}
	var login struct {
		AccessToken string `json:"access_token"`
		Role        string `json:"role"`
	}
	mustUnmarshal(t, body, &login)
	if login.Role != "manager" {
		t.Fatalf("test account must be a manager, got %q", login.Role)
	}
	token := login.AccessToken

	// Register a vehicle and a driver.
	plate := fmt.Sprintf("IT-%d", time.Now().UnixNano())
	status, body = doJSON(t, client, http.MethodPost, baseURL+"/vehicles/", token, map[string]any{
		"license_plate": plate, "model": "Tata Ace", "vehicle_type": "mini_truck", "max_capacity_kg": 750,
	})
	if status != http.StatusCreated {
		t.Fatalf("register vehicle: %d %s", status, body)
	}
	var v struct {
		ID string `json:"id"`
	}
	mustUnmarshal(t, body, &v)
	t.Cleanup(func() { deleteQuietly(client, baseURL+"/vehicles/"+v.ID, token) })

	status, body = doJSON(t, client, http.MethodPost, baseURL+"/drivers/", token, map[string]any{
		"name": "Integration Driver", "license_category": "LMV",
	})
	if status != http.StatusCreated {
		t.Fatalf("add driver: %d %s", status, body)
	}
	var d struct {
		ID string `json:"id"`
	}
	mustUnmarshal(t, body, &d)
	t.Cleanup(func() { deleteQuietly(client, baseURL+"/drivers/"+d.ID, token) })

	status, body = doJSON(t, client, http.MethodPut, baseURL+"/drivers/"+d.ID+"/status", token, map[string]any{
		"status": "on_duty",
	})
	if status != http.StatusOK {
		t.Fatalf("driver on duty: %d %s", status, body)
	}

	// Draft, dispatch, complete.
	status, body = doJSON(t, client, http.MethodPost, baseURL+"/trips/", token, map[string]any{
		"vehicle_id": v.ID, "driver_id": d.ID,
		"origin": "Hubli", "destination": "Bengaluru", "cargo_weight_kg": 500,
	})
	if status != http.StatusCreated {
		t.Fatalf("create trip: %d %s", status, body)
	}
	var tr struct {
		ID     string `json:"id"`
		Status string `json:"status"`
	}
	mustUnmarshal(t, body, &tr)
	if tr.Status != "draft" {
		t.Fatalf("expected draft, got %s", tr.Status)
	}

	// The reserved vehicle must not be bookable again.
	status, body = doJSON(t, client, http.MethodPost, baseURL+"/trips/", token, map[string]any{
		"vehicle_id": v.ID, "driver_id": d.ID,
		"origin": "a", "destination": "b", "cargo_weight_kg": 10,
	})
	if status != http.StatusBadRequest {
		t.Fatalf("double booking: expected 400, got %d %s", status, body)
	}

	for _, next := range []string{"dispatched", "completed"} {
		status, body = doJSON(t, client, http.MethodPut, baseURL+"/trips/"+tr.ID, token, map[string]any{
			"status": next,
		})
		if status != http.StatusOK {
			t.Fatalf("transition to %s: %d %s", next, status, body)
		}
	}

	// Released driver shows up as available again.
	status, body = doJSON(t, client, http.MethodGet, baseURL+"/drivers/available", token, nil)
	if status != http.StatusOK {
		t.Fatalf("available drivers: %d %s", status, body)
	}
	if !strings.Contains(string(body), d.ID) {
		t.Fatalf("released driver %s missing from availability: %s", d.ID, body)
	}
}

func envOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func waitForAPIReady(t *testing.T, client *http.Client, baseURL string) {
	t.Helper()
	deadline := time.Now().Add(30 * time.Second)
	for time.Now().Before(deadline) {
		resp, err := client.Get(baseURL + "/health")
		if err == nil {
			resp.Body.Close()
			if resp.StatusCode == http.StatusOK {
				return
			}
		}
		time.Sleep(time.Second)
	}
	t.Skipf("API at %s not reachable", baseURL)
}

func doJSON(t *testing.T, client *http.Client, method, url, token string, payload any) (int, []byte) {
	t.Helper()
	var buf bytes.Buffer
	if payload != nil {
		if err := json.NewEncoder(&buf).Encode(payload); err != nil {
			t.Fatalf("encode payload: %v", err)
		}
	}
	req, err := http.NewRequest(method, url, &buf)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := client.Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, url, err)
	}
	defer resp.Body.Close()
	var out bytes.Buffer
	_, _ = out.ReadFrom(resp.Body)
	return resp.StatusCode, out.Bytes()
}

func mustUnmarshal(t *testing.T, data []byte, v any) {
	t.Helper()
	if err := json.Unmarshal(data, v); err != nil {
		t.Fatalf("unmarshal %q: %v", data, err)
	}
}

func deleteQuietly(client *http.Client, url, token string) {
	req, err := http.NewRequest(http.MethodDelete, url, nil)
	if err != nil {
		return
	}
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := client.Do(req)
	if err == nil {
		resp.Body.Close()
	}
}
