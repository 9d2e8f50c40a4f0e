package dates

import (
	"testing"
	"time"
)

func TestFormatPublishDate(t *testing.T) {
	tests := []struct {
		name   string
		raw    string
		want   string
		wantOK bool
	}{
		{"empty", "", "", false},
		{"rfc822 with offset", "Tue, 05 Mar 2024 14:30:00 +0300", "5 Mart 2024, 14:30", true},
		{"rfc822 gmt", "Sun, 01 Dec 2024 09:05:00 GMT", "1 Aralık 2024, 09:05", true},
		{"bom and whitespace", "\uFEFF  Mon, 19 Aug 2024 23:59:00 +0300 \n", "19 Ağustos 2024, 23:59", true},
		{"iso 8601", "2024-05-20T08:15:00+03:00", "20 Mayıs 2024, 08:15", true},
		{"unparseable", "not a date", "not a date", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := FormatPublishDate(tt.raw)
			if got != tt.want || ok != tt.wantOK {
				t.Errorf("FormatPublishDate(%q) = (%q, %v), want (%q, %v)", tt.raw, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestTurkishMonth(t *testing.T) {
	want := []string{"Ocak", "Şubat", "Mart", "Nisan", "Mayıs", "Haziran", "Temmuz", "Ağustos", "Eylül", "Ekim", "Kasım", "Aralık"}
	for i, name := range want {
		if got := TurkishMonth(time.Month(i + 1)); got != name {
			t.Errorf("TurkishMonth(%d) = %q, want %q", i+1, got, name)
		}
	}
}

func TestFormatKeepsLocation(t *testing.T) {
	ist := time.FixedZone("TRT", 3*3600)
	at := time.Date(2024, time.March, 5, 14, 30, 0, 0, ist)
	if got := Format(at); got != "5 Mart 2024, 14:30" {
		t.Fatalf("Format() = %q", got)
	}
}
