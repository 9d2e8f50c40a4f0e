package feed

import "testing"

func TestExtractImageAndText(t *testing.T) {
	tests := []struct {
		name      string
		html      string
		wantImage string
		wantText  string
	}{
		{
			name:      "image and paragraph",
			html:      `<img src="https://cdn.trthaber.com/a.jpg" /><p>Merhaba &amp; dünya</p>`,
			wantImage: "https://cdn.trthaber.com/a.jpg",
			wantText:  "Merhaba & dünya",
		},
		{
			name:      "no image",
			html:      `<p>Sadece metin</p>`,
			wantImage: "",
			wantText:  "Sadece metin",
		},
		{
			name:      "uppercase tag and single quotes",
			html:      `<IMG alt="x" SRC='https://cdn.trthaber.com/b.png'>Özet`,
			wantImage: "https://cdn.trthaber.com/b.png",
			wantText:  "Özet",
		},
		{
			name:      "first image wins and all are removed",
			html:      `<img src="one.jpg"> metin <img src="two.jpg">`,
			wantImage: "one.jpg",
			wantText:  "metin",
		},
		{
			name:      "empty description",
			html:      "",
			wantImage: "",
			wantText:  "",
		},
		{
			name:      "text is not normalized",
			html:      `<img src="a.jpg"/><p>Ankara'da  "toplantı"</p>`,
			wantImage: "a.jpg",
			wantText:  `Ankara'da  "toplantı"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ExtractImageAndText(tt.html)
			if got.ImageURL != tt.wantImage {
				t.Errorf("ImageURL = %q, want %q", got.ImageURL, tt.wantImage)
			}
			if got.ShortText != tt.wantText {
				t.Errorf("ShortText = %q, want %q", got.ShortText, tt.wantText)
			}
			if got.HasImage() != (tt.wantImage != "") {
				t.Errorf("HasImage() = %v", got.HasImage())
			}
		})
	}
}

func TestDefaultCategories(t *testing.T) {
	cats := DefaultCategories()
	if len(cats) != 18 {
		t.Fatalf("expected 18 categories, got %d", len(cats))
	}
	if cats[0].Name != "Manşet" || cats[len(cats)-1].Name != "Dosya Haber" {
		t.Errorf("unexpected order: first %q, last %q", cats[0].Name, cats[len(cats)-1].Name)
	}
	seen := make(map[string]bool)
	for _, c := range cats {
		if c.URL == "" || seen[c.URL] {
			t.Errorf("bad or repeated feed URL for %q: %q", c.Name, c.URL)
		}
		seen[c.URL] = true
	}
}
