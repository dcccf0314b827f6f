package viewer

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"

	"github.com/nanoncore/ont-cleaner/store"
)

func newTestServer(t *testing.T, s store.Store) *httptest.Server {
	t.Helper()
	log := logrus.New()
	log.SetOutput(io.Discard)

	h, err := NewHandler(NewService(s), log)
	if err != nil {
		t.Fatalf("NewHandler() error: %v", err)
	}
	srv := httptest.NewServer(h.Router())
	t.Cleanup(srv.Close)
	return srv
}

func get(t *testing.T, url string) (int, string) {
	t.Helper()
	resp, err := http.Get(url)
	if err != nil {
		t.Fatalf("GET %s: %v", url, err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatal(err)
	}
	return resp.StatusCode, string(body)
}

func TestHandleIndex(t *testing.T) {
	srv := newTestServer(t, seeded(t, 25))

	tests := []struct {
		name     string
		query    string
		contains []string
		excludes []string
	}{
		{
			name:     "first page",
			query:    "",
			contains: []string{"2024-01-01 00:24:00 UTC", "Mostrando registros <b>1</b> a <b>10</b> de <b>25</b>", "Siguiente", "Anterior", "bg-success"},
		},
		{
			name:     "invalid page reads as first",
			query:    "?page=abc",
			contains: []string{"2024-01-01 00:24:00 UTC"},
		},
		{
			name:     "last page",
			query:    "?page=3",
			contains: []string{"2024-01-01 00:00:00 UTC", "Mostrando registros <b>21</b> a <b>25</b> de <b>25</b>"},
			excludes: []string{"00:24:00"},
		},
		{
			name:     "past the end",
			query:    "?page=9",
			contains: []string{"No hay registros"},
		},
		{
			name:     "page number too large",
			query:    "?page=9223372036854775807",
			contains: []string{"No hay registros", "Mostrando registros <b>0</b> a <b>0</b> de <b>25</b>"},
			excludes: []string{"00:24:00", "<b>-"},
		},
		{
			name:     "timezone kept in links",
			query:    "?timezone=America/Bogota",
			contains: []string{"2023-12-31 19:24:00", "timezone=America%2fBogota", `value="America/Bogota" selected`},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, body := get(t, srv.URL+"/"+tt.query)
			if status != http.StatusOK {
				t.Fatalf("status = %d, body %q", status, body)
			}
			lower := strings.ToLower(body)
			for _, s := range tt.contains {
				if !strings.Contains(lower, strings.ToLower(s)) {
					t.Errorf("body missing %q", s)
				}
			}
			for _, s := range tt.excludes {
				if strings.Contains(body, s) {
					t.Errorf("body contains %q", s)
				}
			}
		})
	}
}

func TestHandleIndexEmptyStore(t *testing.T) {
	srv := newTestServer(t, store.NewMemory())

	status, body := get(t, srv.URL+"/")
	if status != http.StatusOK {
		t.Fatalf("status = %d", status)
	}
	if !strings.Contains(body, "No hay registros") || !strings.Contains(body, "pagination") {
		t.Error("empty listing should render the table and a single-page pagination block")
	}
}

func TestHandleIndexStoreError(t *testing.T) {
	srv := newTestServer(t, brokenStore{})

	if status, _ := get(t, srv.URL+"/"); status != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", status)
	}
}

func TestHandleHealth(t *testing.T) {
	status, body := get(t, newTestServer(t, store.NewMemory()).URL+"/healthz")
	if status != http.StatusOK || body != "ok" {
		t.Errorf("healthz = %d %q", status, body)
	}

	if status, _ := get(t, newTestServer(t, brokenStore{}).URL+"/healthz"); status != http.StatusServiceUnavailable {
		t.Errorf("healthz on a broken store = %d, want 503", status)
	}
}

func TestHandleIndexRejectsPost(t *testing.T) {
	srv := newTestServer(t, store.NewMemory())

	resp, err := http.Post(srv.URL+"/", "text/plain", strings.NewReader(""))
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusMethodNotAllowed {
		t.Errorf("POST / = %d, want 405", resp.StatusCode)
	}
}

func TestParsePage(t *testing.T) {
	tests := []struct {
		raw  string
		want int
	}{
		{"", 1},
		{"1", 1},
		{"7", 7},
		{"0", 1},
		{"-2", 1},
		{"abc", 1},
		{"2.5", 1},
		{"1073741824", MaxPage},
		{"9223372036854775807", MaxPage},
		{"99999999999999999999", MaxPage},
		{"-99999999999999999999", 1},
	}
	for _, tt := range tests {
		if got := ParsePage(tt.raw); got != tt.want {
			t.Errorf("ParsePage(%q) = %d, want %d", tt.raw, got, tt.want)
		}
	}
}
