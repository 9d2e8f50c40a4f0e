// Package gazetteer tags text with the Turkish provinces it mentions.
package gazetteer

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// provinces lists all 81 provinces; match results follow this order
var provinces = [...]string{
	"Adana", "Adıyaman", "Afyonkarahisar", "Ağrı", "Aksaray", "Amasya",
	"Ankara", "Antalya", "Ardahan", "Artvin", "Aydın", "Balıkesir", "Bartın",
	"Batman", "Bayburt", "Bilecik", "Bingöl", "Bitlis", "Bolu", "Burdur",
	"Bursa", "Çanakkale", "Çankırı", "Çorum", "Denizli", "Diyarbakır",
	"Düzce", "Edirne", "Elazığ", "Erzincan", "Erzurum", "Eskişehir",
	"Gaziantep", "Giresun", "Gümüşhane", "Hakkâri", "Hatay", "Iğdır",
	"Isparta", "İstanbul", "İzmir", "Kahramanmaraş", "Karabük", "Karaman",
	"Kars", "Kastamonu", "Kayseri", "Kilis", "Kırıkkale", "Kırklareli",
	"Kırşehir", "Kocaeli", "Konya", "Kütahya", "Malatya", "Manisa", "Mardin",
	"Mersin", "Muğla", "Muş", "Nevşehir", "Niğde", "Ordu", "Osmaniye",
	"Rize", "Sakarya", "Samsun", "Siirt", "Sinop", "Sivas", "Şanlıurfa",
	"Şırnak", "Tekirdağ", "Tokat", "Trabzon", "Tunceli", "Uşak", "Van",
	"Yalova", "Yozgat", "Zonguldak",
}

var folded = func() [len(provinces)]string {
	var out [len(provinces)]string
	lower := cases.Lower(language.Turkish)
	for i, p := range provinces {
		out[i] = lower.String(p)
	}
	return out
}()

// Provinces returns a copy of the gazetteer in match order
func Provinces() []string {
	return append([]string(nil), provinces[:]...)
}

// DetectCities returns every province whose name occurs in text, in
// gazetteer order. Matching is a Turkish case-insensitive substring test
// without word boundaries, so "Van" also matches inside "avantaj".
func DetectCities(text string) []string {
	found := []string{}
	if text == "" {
		return found
	}

	// A Caser keeps state and must not be shared between goroutines
	haystack := cases.Lower(language.Turkish).String(text)
	for i, needle := range folded {
		if strings.Contains(haystack, needle) {
			found = append(found, provinces[i])
		}
	}
	return found
}
