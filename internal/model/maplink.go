package model

import "net/url"

// MapLink returns an outbound map search URL for the item's location, or the
// empty string when no location is set. The location text is URL-encoded
// verbatim.
func (it StructuredItem) MapLink() string {
	if it.Location == "" {
		return ""
	}
	return "https://www.google.com/maps/search/?api=1&query=" + url.QueryEscape(it.Location)
}
