package activity

const (
	ContentTypeThumbnailCard = "application/vnd.microsoft.card.thumbnail"
	ContentTypeAdaptiveCard  = "application/vnd.microsoft.card.adaptive"
)

type CardImage struct {
	URL string `json:"url"`
	Alt string `json:"alt,omitempty"`
}

type ThumbnailCard struct {
	Title    string       `json:"title,omitempty"`
	Subtitle string       `json:"subtitle,omitempty"`
	Text     string       `json:"text,omitempty"`
	Images   []CardImage  `json:"images,omitempty"`
	Buttons  []CardAction `json:"buttons,omitempty"`
}

// AdaptiveCard is a minimal adaptive card document.
type AdaptiveCard struct {
	Schema  string        `json:"$schema"`
	Version string        `json:"version"`
	Type    string        `json:"type"`
	Body    []CardElement `json:"body"`
}

// CardElement covers the TextBlock, ColumnSet, Column and Image elements.
type CardElement struct {
	Type                string        `json:"type"`
	Text                string        `json:"text,omitempty"`
	Weight              string        `json:"weight,omitempty"`
	Size                string        `json:"size,omitempty"`
	Spacing             string        `json:"spacing,omitempty"`
	IsSubtle            *bool         `json:"isSubtle,omitempty"`
	Separator           bool          `json:"separator,omitempty"`
	HorizontalAlignment string        `json:"horizontalAlignment,omitempty"`
	Width               string        `json:"width,omitempty"`
	URL                 string        `json:"url,omitempty"`
	Columns             []CardElement `json:"columns,omitempty"`
	Items               []CardElement `json:"items,omitempty"`
}

func NewAdaptiveCard(body ...CardElement) *AdaptiveCard {
	return &AdaptiveCard{
		Schema:  "http://adaptivecards.io/schemas/adaptive-card.json",
		Version: "1.0",
		Type:    "AdaptiveCard",
		Body:    body,
	}
}

func ThumbnailAttachment(card *ThumbnailCard) Attachment {
	return Attachment{ContentType: ContentTypeThumbnailCard, Content: card}
}

func AdaptiveAttachment(card *AdaptiveCard) Attachment {
	return Attachment{ContentType: ContentTypeAdaptiveCard, Content: card}
}
