package feed

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func testDetailFetcher() *DetailFetcher {
	return NewDetailFetcher(DetailConfig{Timeout: 5 * time.Second, UserAgent: "Mozilla/5.0", Selector: ".news-content"})
}

func TestFetchArticleBody(t *testing.T) {
	page := `<html><body>
<div class="header"><p>Menü</p></div>
<div class="news-content">
  <p>Birinci paragraf</p>
  <p>   </p>
  <p>İkinci "paragraf"</p>
</div>
<div class="news-content"><p>Yok sayılır</p></div>
</body></html>`

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write([]byte(page))
	}))
	defer srv.Close()

	body, err := testDetailFetcher().FetchArticleBody(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("FetchArticleBody returned error: %v", err)
	}
	want := "Birinci paragraf\n\nİkinci paragraf"
	if body != want {
		t.Errorf("body = %q, want %q", body, want)
	}
}

func TestFetchArticleBodyWithoutContainer(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html><body><p>Başka bir düzen</p></body></html>`))
	}))
	defer srv.Close()

	body, err := testDetailFetcher().FetchArticleBody(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("FetchArticleBody returned error: %v", err)
	}
	if body != "" {
		t.Errorf("expected empty body, got %q", body)
	}
}

func TestFetchArticleBodyHTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	if _, err := testDetailFetcher().FetchArticleBody(context.Background(), srv.URL); err == nil {
		t.Fatal("expected error for 500 response")
	}
}

func TestFetchArticleBodyUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	if _, err := testDetailFetcher().FetchArticleBody(context.Background(), url); err == nil {
		t.Fatal("expected error for unreachable host")
	}
}
