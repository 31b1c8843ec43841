package domain

import "time"

// ShortLink represents a shortened URL entry.
type ShortLink struct {
	Code      string
	URL       string
	CreatedAt time.Time
	Clicks    int64
}

// Clone creates a copy of the link.
func (l *ShortLink) Clone() *ShortLink {
	return &ShortLink{
		Code:      l.Code,
		URL:       l.URL,
		CreatedAt: l.CreatedAt,
		Clicks:    l.Clicks,
	}
}
