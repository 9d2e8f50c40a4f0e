package models

// FeedItem is one <item> of a category feed, as read from the wire
type FeedItem struct {
	Title           string `json:"title"`
	Link            string `json:"link"`
	DescriptionHTML string `json:"description"`
	PubDateRaw      string `json:"pub_date"`
}

// ExtractedContent is what the feed description yields before the detail
// page is consulted. ImageURL is empty when the description had no <img>.
type ExtractedContent struct {
	ImageURL  string
	ShortText string
}

// HasImage reports whether an image was found in the description
func (e ExtractedContent) HasImage() bool {
	return e.ImageURL != ""
}
