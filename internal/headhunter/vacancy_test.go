package headhunter

import (
	"compress/gzip"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"reflect"
	"strconv"
	"sync/atomic"
	"testing"

	"github.com/spigell/hh-screener/internal/market"
)

func newTestClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client := New(context.Background(), nil, "secret")
	client.APIURL = server.URL
	return client
}

func writeJSON(t *testing.T, w http.ResponseWriter, gzipped bool, v any) {
	t.Helper()

	w.Header().Set("Content-Type", "application/json")
	if !gzipped {
		if err := json.NewEncoder(w).Encode(v); err != nil {
			t.Errorf("encode: %v", err)
		}
		return
	}

	w.Header().Set("Content-Encoding", "gzip")
	gz := gzip.NewWriter(w)
	defer gz.Close()
	if err := json.NewEncoder(gz).Encode(v); err != nil {
		t.Errorf("encode: %v", err)
	}
}

func TestMarketSnapshot(t *testing.T) {
	var searches, details atomic.Int32

	mux := http.NewServeMux()
	mux.HandleFunc("/vacancies", func(w http.ResponseWriter, r *http.Request) {
		searches.Add(1)
		if got := r.Header.Get("Authorization"); got != "Bearer secret" {
			t.Errorf("unexpected authorization header %q", got)
		}
		if got := r.URL.Query().Get("text"); got != "golang" {
			t.Errorf("unexpected text param %q", got)
		}
		if r.URL.Query().Has("pages") {
			t.Errorf("pages must not be sent to the api")
		}

		page := r.URL.Query().Get("page")
		id := "1"
		if page == "1" {
			id = "2"
		}
		if page == "2" {
			t.Errorf("page limit was not respected")
		}

		item := map[string]any{
			"id":       id,
			"name":     "Go developer " + id,
			"area":     map[string]any{"name": "Moscow"},
			"employer": map[string]any{"id": "e" + id, "name": "Acme"},
			"salary":   map[string]any{"from": 200000, "to": nil, "currency": "RUR"},
		}
		if id == "2" {
			item["snippet"] = map[string]any{
				"requirement": "Experience with <highlighttext>Golang</highlighttext> and Docker",
			}
		}

		writeJSON(t, w, page == "1", map[string]any{
			"found":    250,
			"pages":    3,
			"page":     map[string]int{"": 0, "1": 1}[page],
			"per_page": 1,
			"items":    []map[string]any{item},
		})
	})
	mux.HandleFunc("/vacancies/", func(w http.ResponseWriter, r *http.Request) {
		details.Add(1)
		if r.URL.Path == "/vacancies/2" {
			http.Error(w, "boom", http.StatusInternalServerError)
			return
		}
		writeJSON(t, w, false, map[string]any{
			"id":         "1",
			"key_skills": []map[string]string{{"name": "Go"}, {"name": "PostgreSQL"}},
		})
	})

	client := newTestClient(t, mux)

	snapshot, err := client.MarketSnapshot(&SearchParams{Text: "golang", Pages: 2}, SnapshotOptions{DetailLimit: 5})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if searches.Load() != 2 {
		t.Fatalf("expected 2 search requests, got %d", searches.Load())
	}
	if details.Load() != 2 {
		t.Fatalf("expected 2 detail requests, got %d", details.Load())
	}

	if snapshot.TotalFound != 250 {
		t.Fatalf("expected total found 250, got %d", snapshot.TotalFound)
	}
	if snapshot.Source != "hh.ru" {
		t.Fatalf("unexpected source %q", snapshot.Source)
	}
	if len(snapshot.Items) != 2 {
		t.Fatalf("expected 2 listings, got %d", len(snapshot.Items))
	}

	first := snapshot.Items[0]
	if !reflect.DeepEqual(first.Skills, []string{"Go", "PostgreSQL"}) {
		t.Fatalf("unexpected skills: %v", first.Skills)
	}
	if first.Company != "Acme" || first.Location != "Moscow" || first.Currency != "RUR" {
		t.Fatalf("unexpected listing: %+v", first)
	}
	if first.SalaryFrom == nil || *first.SalaryFrom != 200000 || first.SalaryTo != nil {
		t.Fatalf("unexpected salary: %v - %v", first.SalaryFrom, first.SalaryTo)
	}

	if got := snapshot.Items[1].Skills; !reflect.DeepEqual(got, []string{"docker", "go"}) {
		t.Fatalf("expected snippet skills for the failed detail request, got %v", got)
	}
}

func TestMarketSnapshotImportanceOverDetailedListings(t *testing.T) {
	const hits, detailLimit = 100, 50

	mux := http.NewServeMux()
	mux.HandleFunc("/vacancies", func(w http.ResponseWriter, _ *http.Request) {
		items := make([]map[string]any, 0, hits)
		for i := range hits {
			items = append(items, map[string]any{"id": strconv.Itoa(i), "name": "Backend developer"})
		}
		writeJSON(t, w, false, map[string]any{
			"found":    hits,
			"pages":    1,
			"page":     0,
			"per_page": hits,
			"items":    items,
		})
	})
	mux.HandleFunc("/vacancies/", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(t, w, false, map[string]any{
			"key_skills": []map[string]string{{"name": "Python"}},
		})
	})

	client := newTestClient(t, mux)

	snapshot, err := client.MarketSnapshot(&SearchParams{Text: "python"}, SnapshotOptions{DetailLimit: detailLimit})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if snapshot.TotalFound != hits {
		t.Fatalf("expected total found %d, got %d", hits, snapshot.TotalFound)
	}
	if snapshot.Len() != detailLimit {
		t.Fatalf("expected %d listings with skills, got %d", detailLimit, snapshot.Len())
	}

	if got := market.Importance(snapshot, []string{"python"})["python"]; got != 1 {
		t.Fatalf("expected python importance 1, got %v", got)
	}
}

func TestSearchBadStatus(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "forbidden", http.StatusForbidden)
	}))

	if _, err := client.Search(&SearchParams{Text: "go"}); err == nil {
		t.Fatalf("expected error for bad status")
	}
}

func TestBuildParams(t *testing.T) {
	params := &SearchParams{
		Text:           "golang",
		Areas:          []int{1, 2},
		Schedules:      []string{"remote"},
		PerPage:        "50",
		Salary:         300000,
		OnlyWithSalary: true,
		Pages:          3,
	}

	q := buildParams(params)

	expect := map[string][]string{
		"text":             {"golang"},
		"area":             {"1", "2"},
		"schedule":         {"remote"},
		"per_page":         {"50"},
		"salary":           {"300000"},
		"only_with_salary": {"true"},
	}
	if !reflect.DeepEqual(map[string][]string(q), expect) {
		t.Fatalf("unexpected params: %v", q)
	}
}

func TestListingWithoutSalary(t *testing.T) {
	var vacancy Vacancy
	if err := decode(map[string]any{"id": "7", "name": "QA", "salary": nil}, &vacancy); err != nil {
		t.Fatalf("decode: %v", err)
	}

	listing := vacancy.Listing()
	if listing.ID != "7" || listing.Title != "QA" {
		t.Fatalf("unexpected listing: %+v", listing)
	}
	if listing.SalaryFrom != nil || listing.SalaryTo != nil || listing.Currency != "" {
		t.Fatalf("expected empty salary, got %+v", listing)
	}

	snapshot := (&Vacancies{Items: []*Vacancy{&vacancy}}).ToSnapshot()
	if snapshot.TotalFound != 1 {
		t.Fatalf("expected total found to fall back to items count, got %d", snapshot.TotalFound)
	}
	if snapshot.Len() != 0 {
		t.Fatalf("expected listing without skills to be left out, got %d", snapshot.Len())
	}

	if got := fmt.Sprint(vacancy.Skills()); got != "[]" {
		t.Fatalf("expected no skills, got %s", got)
	}
}
