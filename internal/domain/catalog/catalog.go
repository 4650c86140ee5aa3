// Package catalog holds the fixed, ordered list of link types a page can
// display. Rendering always follows catalog order, not the order the account
// selected them in.
package catalog

type Link struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	URL   string `json:"url"`
	Icon  string `json:"icon"`
	Color string `json:"color"`
}

var links = []Link{
	{ID: "website", Title: "Website", URL: "https://example.com", Icon: "globe", Color: "bg-blue-500"},
	{ID: "youtube", Title: "YouTube", URL: "https://youtube.com", Icon: "youtube", Color: "bg-red-500"},
	{ID: "twitter", Title: "Twitter", URL: "https://twitter.com", Icon: "twitter", Color: "bg-sky-500"},
	{ID: "instagram", Title: "Instagram", URL: "https://instagram.com", Icon: "instagram", Color: "bg-pink-600"},
	{ID: "github", Title: "GitHub", URL: "https://github.com", Icon: "github", Color: "bg-gray-800"},
	{ID: "blog", Title: "Blog", URL: "https://example.com/blog", Icon: "file-text", Color: "bg-green-500"},
	{ID: "store", Title: "Store", URL: "https://example.com/store", Icon: "shopping-bag", Color: "bg-purple-500"},
	{ID: "support", Title: "Support", URL: "https://patreon.com", Icon: "heart", Color: "bg-pink-500"},
	{ID: "music", Title: "Music", URL: "https://spotify.com", Icon: "music", Color: "bg-green-600"},
	{ID: "twitch", Title: "Twitch", URL: "https://twitch.tv", Icon: "twitch", Color: "bg-purple-600"},
	{ID: "linkedin", Title: "LinkedIn", URL: "https://linkedin.com", Icon: "linkedin", Color: "bg-blue-700"},
	{ID: "email", Title: "Email", URL: "mailto:example@example.com", Icon: "mail", Color: "bg-yellow-500"},
	{ID: "buymeacoffee", Title: "Buy Me a Coffee", URL: "https://buymeacoffee.com", Icon: "coffee", Color: "bg-yellow-600"},
	{ID: "donate", Title: "Donate", URL: "https://example.com/donate", Icon: "dollar-sign", Color: "bg-green-700"},
}

// All returns the catalog in its fixed order.
func All() []Link {
	out := make([]Link, len(links))
	copy(out, links)
	return out
}

func KnownID(id string) bool {
	for _, l := range links {
		if l.ID == id {
			return true
		}
	}
	return false
}

// Filter returns the catalog entries whose ID appears in selected, preserving
// catalog order. Unknown IDs are silently excluded.
func Filter(selected []string) []Link {
	set := make(map[string]struct{}, len(selected))
	for _, id := range selected {
		set[id] = struct{}{}
	}

	out := make([]Link, 0, len(set))
	for _, l := range links {
		if _, ok := set[l.ID]; ok {
			out = append(out, l)
		}
	}
	return out
}
