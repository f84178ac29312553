package robot

import (
	"context"
	"errors"
	"net/http"
	"os"
	"net/http/httptest"
	"testing"
	"time"
)

func stubSSH(t *testing.T, fn func(ip string) bool) {
	t.Helper()
	orig := checkSSH
	checkSSH = fn
	t.Cleanup(func() { checkSSH = orig })
}

func TestActivateRescueAlreadyActive(t *testing.T) {
	var posts int
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			posts++
		}
		w.Write([]byte(`{"rescue": {"active": true, "password": "existing", "os": "linux"}}`))
	}))
	defer ts.Close()

	c := NewWithBaseURL("u", "p", ts.URL)
	state, err := c.ActivateRescue(context.Background(), "1.2.3.4")
	if err != nil {
		t.Fatalf("ActivateRescue: %v", err)
	}
	if posts != 0 {
		t.Errorf("activation POSTed %d times for an already-active rescue system", posts)
	}
	if state.Password != "existing" {
		t.Errorf("Password = %q, want the existing one", state.Password)
	}
}

func TestActivateRescueArms(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet {
			w.Write([]byte(`{"rescue": {"active": false}}`))
			return
		}
		if err := r.ParseForm(); err != nil {
			t.Fatal(err)
		}
		if r.PostFormValue("os") != "linux" || r.PostFormValue("arch") != "64" {
			t.Errorf("form = %v", r.PostForm)
		}
		w.Write([]byte(`{"rescue": {"active": true, "password": "fresh", "os": "linux"}}`))
	}))
	defer ts.Close()

	c := NewWithBaseURL("u", "p", ts.URL)
	state, err := c.ActivateRescue(context.Background(), "1.2.3.4")
	if err != nil {
		t.Fatalf("ActivateRescue: %v", err)
	}
	if !state.Active || state.Password != "fresh" {
		t.Errorf("state = %+v", state)
	}
}

// resetRecorder collects the reset types POSTed to /reset/.
func resetRecorder(t *testing.T, types *[]string) *httptest.Server {
	t.Helper()
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			t.Fatal(err)
		}
		*types = append(*types, r.PostFormValue("type"))
		w.Write([]byte(`{"reset": {}}`))
	}))
	t.Cleanup(ts.Close)
	return ts
}

func TestObservedRebootComesBack(t *testing.T) {
	var types []string
	ts := resetRecorder(t, &types)
	c := NewWithBaseURL("u", "p", ts.URL)

	calls := 0
	stubSSH(t, func(ip string) bool {
		calls++
		return calls > 1 // down once, then back up
	})

	srv := &Server{IP: "1.2.3.4", Product: "EX40"}
	if err := c.ObservedReboot(context.Background(), srv, 10*time.Second, false); err != nil {
		t.Fatalf("ObservedReboot: %v", err)
	}
	if len(types) != 1 || types[0] != "sw" {
		t.Errorf("reset types = %v, want [sw]", types)
	}
}

func TestObservedRebootEscalatesToManual(t *testing.T) {
	var types []string
	ts := resetRecorder(t, &types)
	c := NewWithBaseURL("u", "p", ts.URL)

	stubSSH(t, func(ip string) bool { return false })

	srv := &Server{IP: "1.2.3.4", Product: "EX40"}
	err := c.ObservedReboot(context.Background(), srv, 10*time.Millisecond, true)
	if !errors.Is(err, ErrManualReboot) {
		t.Fatalf("err = %v, want ErrManualReboot", err)
	}
	want := []string{"sw", "hw", "man"}
	if len(types) != len(want) {
		t.Fatalf("reset types = %v, want %v", types, want)
	}
	for i := range want {
		if types[i] != want[i] {
			t.Errorf("reset types = %v, want %v", types, want)
			break
		}
	}
}

func TestObservedRebootUnreachable(t *testing.T) {
	var types []string
	ts := resetRecorder(t, &types)
	c := NewWithBaseURL("u", "p", ts.URL)

	stubSSH(t, func(ip string) bool { return false })

	srv := &Server{IP: "5.6.7.8", Product: "VQ19"}
	err := c.ObservedReboot(context.Background(), srv, 10*time.Millisecond, false)
	if !errors.Is(err, ErrUnreachable) {
		t.Fatalf("err = %v, want ErrUnreachable", err)
	}
	// Virtual servers skip the soft attempt.
	if len(types) != 1 || types[0] != "hw" {
		t.Errorf("reset types = %v, want [hw]", types)
	}
}

func TestObservedRebootHonorsContext(t *testing.T) {
	var types []string
	ts := resetRecorder(t, &types)
	c := NewWithBaseURL("u", "p", ts.URL)

	stubSSH(t, func(ip string) bool { return false })

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	srv := &Server{IP: "1.2.3.4", Product: "EX40"}
	err := c.ObservedReboot(ctx, srv, time.Hour, false)
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("err = %v, want context deadline", err)
	}
}

func TestWriteAskPass(t *testing.T) {
	script, cleanup, err := writeAskPass("s3cr'et")
	if err != nil {
		t.Fatalf("writeAskPass: %v", err)
	}
	defer cleanup()

	info, err := os.Stat(script)
	if err != nil {
		t.Fatalf("stat: %v", err)
	}
	if info.Mode().Perm() != 0o700 {
		t.Errorf("mode = %o, want 700", info.Mode().Perm())
	}
}
