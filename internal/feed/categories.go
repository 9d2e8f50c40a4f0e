package feed

// Category is a named TRT Haber RSS feed
type Category struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// DefaultCategories returns the feeds polled on every run, in the order
// they are processed
func DefaultCategories() []Category {
	return []Category{
		{Name: "Manşet", URL: "https://www.trthaber.com/manset_articles.rss"},
		{Name: "Son Dakika", URL: "https://www.trthaber.com/sondakika_articles.rss"},
		{Name: "Koronavirüs", URL: "https://www.trthaber.com/koronavirus_articles.rss"},
		{Name: "Gündem", URL: "https://www.trthaber.com/gundem_articles.rss"},
		{Name: "Türkiye", URL: "https://www.trthaber.com/turkiye_articles.rss"},
		{Name: "Dünya", URL: "https://www.trthaber.com/dunya_articles.rss"},
		{Name: "Ekonomi", URL: "https://www.trthaber.com/ekonomi_articles.rss"},
		{Name: "Spor", URL: "https://www.trthaber.com/spor_articles.rss"},
		{Name: "Yaşam", URL: "https://www.trthaber.com/yasam_articles.rss"},
		{Name: "Sağlık", URL: "https://www.trthaber.com/saglik_articles.rss"},
		{Name: "Kültür Sanat", URL: "https://www.trthaber.com/kultur_sanat_articles.rss"},
		{Name: "Bilim Teknoloji", URL: "https://www.trthaber.com/bilim_teknoloji_articles.rss"},
		{Name: "Güncel", URL: "https://www.trthaber.com/guncel_articles.rss"},
		{Name: "Eğitim", URL: "https://www.trthaber.com/egitim_articles.rss"},
		{Name: "İnfografik", URL: "https://www.trthaber.com/infografik_articles.rss"},
		{Name: "İnteraktif", URL: "https://www.trthaber.com/interaktif_articles.rss"},
		{Name: "Özel Haber", URL: "https://www.trthaber.com/ozel_haber_articles.rss"},
		{Name: "Dosya Haber", URL: "https://www.trthaber.com/dosya_haber_articles.rss"},
	}
}
