package textnorm

import (
	"strings"
	"testing"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "", ""},
		{"blank", "  \n\t ", ""},
		{"bom", "\uFEFFMerhaba dünya", "Merhaba dünya"},
		{"glued words", "BakanlıkAçıkladı", "Bakanlık Açıkladı"},
		{"turkish lowercase", "yağışŞiddetli", "yağış Şiddetli"},
		{"newlines and tabs", "satır\nbir\tiki", "satır bir iki"},
		{"symbols", `"Ankara" (AA) | [son] {dakika} <b>*yeni*</b> a/b \c`, "Ankara AA son dakika byenib ab c"},
		{"escaped backslashes", `yol\\\\ayrımı`, "yolayrımı"},
		{"space runs", "çok    fazla   boşluk", "çok fazla boşluk"},
		{"symbol hides boundary", "a(B", "a B"},
		{"trailing symbol", "haber )", "haber"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Normalize(tt.in); got != tt.want {
				t.Errorf("Normalize(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	inputs := []string{
		"BakanlıkAçıkladı",
		"  (  abc",
		"a(B",
		"x\\\\Y",
		" \uFEFFbaşlık\uFEFF ",
		"İstanbul'da\n\n\"yoğun\" trafikÇileden çıkardı",
		"a \r b",
		"<p>Ankara</p><p>İzmir</p>",
		"iPhone ve iPad",
	}

	for _, in := range inputs {
		once := Normalize(in)
		twice := Normalize(once)
		if once != twice {
			t.Errorf("Normalize not idempotent for %q: %q then %q", in, once, twice)
		}
	}
}

func TestNormalizeStripsSymbols(t *testing.T) {
	in := `|*"'\[](){}<>/ karışık \\ metin // [x] (y) {z} <w>`
	got := Normalize(in)
	if strings.ContainsAny(got, `|*"'\[](){}<>/`) {
		t.Fatalf("Normalize(%q) = %q still contains a stripped symbol", in, got)
	}
}

func TestIsBlank(t *testing.T) {
	if !IsBlank(" \t\n\uFEFF") {
		t.Errorf("expected whitespace and BOM to be blank")
	}
	if IsBlank(" a ") {
		t.Errorf("expected text not to be blank")
	}
}
