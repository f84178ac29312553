package cli

import (
	"errors"
	"net/http"
	"strings"
	"testing"
)

func TestShowAggregatesDetails(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/server/1.2.3.4", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"server": {"server_ip": "1.2.3.4", "server_number": 101, "server_name": "web1",
			"product": "EX40", "dc": "FSN1-DC8", "traffic": "unlimited", "flatrate": true,
			"status": "ready", "paid_until": "2026-12-31"}}`))
	})
	mux.HandleFunc("/ip", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"ip": {"ip": "1.2.3.5", "server_ip": "1.2.3.4", "locked": true}}]`))
	})
	mux.HandleFunc("/subnet", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"subnet": {"ip": "10.0.4.0", "mask": 22, "gateway": "1.2.3.4", "server_ip": "1.2.3.4"}}]`))
	})
	mux.HandleFunc("/rdns", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"rdns": {"ip": "1.2.3.4", "ptr": "web1.example.com"}}]`))
	})
	apiStub(t, mux.ServeHTTP)
	cfg := writeConfig(t, "[login]\nusername = \"u\"\npassword = \"p\"\n")

	out, _, err := execRoot(t, "--config", cfg, "show", "1.2.3.4")
	if err != nil {
		t.Fatalf("show: %v", err)
	}
	for _, want := range []string{
		"Server 1.2.3.4 (#101 EX40)",
		"web1",
		"FSN1-DC8",
		"2026-12-31",
		"1.2.3.5",
		"[locked]",
		"10.0.4.0/22",
		"range 10.0.4.0 - 10.0.7.255",
		"web1.example.com",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestShowToleratesMissingSubresources(t *testing.T) {
	notFound := `{"error": {"status": 404, "code": "NOT_FOUND", "message": "not found"}}`
	mux := http.NewServeMux()
	mux.HandleFunc("/server/1.2.3.4", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"server": {"server_ip": "1.2.3.4", "server_number": 101, "product": "EX40", "dc": "FSN1-DC8"}}`))
	})
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(notFound))
	})
	apiStub(t, mux.ServeHTTP)
	cfg := writeConfig(t, "[login]\nusername = \"u\"\npassword = \"p\"\n")

	out, _, err := execRoot(t, "--config", cfg, "show", "1.2.3.4")
	if err != nil {
		t.Fatalf("show: %v", err)
	}
	if !strings.Contains(out, "Server 1.2.3.4") {
		t.Errorf("output = %q", out)
	}
	if strings.Contains(out, "Subnets:") || strings.Contains(out, "Reverse DNS:") {
		t.Errorf("empty sections should be omitted:\n%s", out)
	}
}

func TestShowRequiresArgument(t *testing.T) {
	cfg := writeConfig(t, "[login]\nusername = \"u\"\npassword = \"p\"\n")
	_, _, err := execRoot(t, "--config", cfg, "show")
	var usageErr *UsageError
	if !errors.As(err, &usageErr) {
		t.Fatalf("err = %v (%T), want *UsageError", err, err)
	}
}
