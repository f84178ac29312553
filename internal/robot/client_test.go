package robot

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestClientBasicAuth(t *testing.T) {
	var gotUser, gotPass string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUser, gotPass, _ = r.BasicAuth()
		w.Write([]byte(`{"server": {"server_ip": "1.2.3.4"}}`))
	}))
	defer ts.Close()

	c := NewWithBaseURL("robotuser", "secret", ts.URL)
	if _, err := c.Server(context.Background(), "1.2.3.4"); err != nil {
		t.Fatalf("Server: %v", err)
	}
	if gotUser != "robotuser" || gotPass != "secret" {
		t.Errorf("basic auth = %q/%q, want robotuser/secret", gotUser, gotPass)
	}
}

func TestClientErrorEnvelope(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error": {"status": 400, "code": "INVALID_INPUT",
			"message": "invalid input", "missing": ["server_name"], "invalid": ["type"]}}`))
	}))
	defer ts.Close()

	c := NewWithBaseURL("u", "p", ts.URL)
	_, err := c.Server(context.Background(), "1.2.3.4")
	if err == nil {
		t.Fatal("expected error")
	}
	apiErr, ok := err.(*Error)
	if !ok {
		t.Fatalf("error type = %T, want *Error", err)
	}
	if apiErr.StatusCode != 400 {
		t.Errorf("StatusCode = %d, want 400", apiErr.StatusCode)
	}
	if apiErr.Code != "INVALID_INPUT" {
		t.Errorf("Code = %q, want INVALID_INPUT", apiErr.Code)
	}
	if len(apiErr.Fields) != 2 || apiErr.Fields[0] != "server_name" || apiErr.Fields[1] != "type" {
		t.Errorf("Fields = %v, want [server_name type]", apiErr.Fields)
	}
}

func TestClientErrorPlainBody(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte("Unauthorized"))
	}))
	defer ts.Close()

	c := NewWithBaseURL("u", "wrong", ts.URL)
	_, err := c.Servers(context.Background())
	apiErr, ok := err.(*Error)
	if !ok {
		t.Fatalf("error type = %T, want *Error", err)
	}
	if apiErr.StatusCode != http.StatusUnauthorized || apiErr.Message != "Unauthorized" {
		t.Errorf("got %d %q", apiErr.StatusCode, apiErr.Message)
	}
}

func TestIsNotFound(t *testing.T) {
	if !IsNotFound(&Error{StatusCode: 404}) {
		t.Error("404 should be not found")
	}
	if IsNotFound(&Error{StatusCode: 500}) {
		t.Error("500 should not be not found")
	}
	if IsNotFound(context.Canceled) {
		t.Error("non-API error should not be not found")
	}
}

func TestDateUnmarshal(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    string
		wantErr bool
		zero    bool
	}{
		{name: "date", in: `"2026-03-15"`, want: "2026-03-15"},
		{name: "null", in: `null`, zero: true},
		{name: "empty", in: `""`, zero: true},
		{name: "garbage", in: `"soon"`, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var d Date
			err := json.Unmarshal([]byte(tt.in), &d)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("unmarshal: %v", err)
			}
			if tt.zero {
				if !d.IsZero() {
					t.Errorf("got %v, want zero", d.Time)
				}
				return
			}
			if got := d.Format("2006-01-02"); got != tt.want {
				t.Errorf("got %s, want %s", got, tt.want)
			}
		})
	}
}

func TestDateMarshal(t *testing.T) {
	var d Date
	if err := json.Unmarshal([]byte(`"2026-03-15"`), &d); err != nil {
		t.Fatal(err)
	}
	out, err := json.Marshal(d)
	if err != nil {
		t.Fatal(err)
	}
	if string(out) != `"2026-03-15"` {
		t.Errorf("got %s", out)
	}

	zero, err := json.Marshal(Date{})
	if err != nil {
		t.Fatal(err)
	}
	if string(zero) != "null" {
		t.Errorf("zero date = %s, want null", zero)
	}
}
