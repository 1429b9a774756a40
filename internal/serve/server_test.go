package serve

import (
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestServerServesDecks(t *testing.T) {
	dir := t.TempDir()
	deck := "<!DOCTYPE html><html><body>deck</body></html>"
	if err := os.WriteFile(filepath.Join(dir, "talk_deck.html"), []byte(deck), 0o644); err != nil {
		t.Fatal(err)
	}

	s := New(Config{Dir: dir, Port: 0})
	ts := httptest.NewServer(s.Router())
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/talk_deck.html")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	body, _ := io.ReadAll(resp.Body)
	if string(body) != deck {
		t.Errorf("body = %q", body)
	}
}

func TestServerHealthz(t *testing.T) {
	s := New(Config{Dir: t.TempDir(), Port: 0})
	ts := httptest.NewServer(s.Router())
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/healthz")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	if !strings.Contains(string(body), `"status":"ok"`) {
		t.Errorf("healthz body = %q", body)
	}
}
