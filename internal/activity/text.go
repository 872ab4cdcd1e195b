package activity

import "strings"

// PlainText renders an activity for channels that only display text.
func PlainText(a Activity) string {
	var parts []string
	if a.Text != "" {
		parts = append(parts, a.Text)
	}
	for _, att := range a.Attachments {
		switch card := att.Content.(type) {
		case *ThumbnailCard:
			parts = append(parts, thumbnailText(card))
		case *AdaptiveCard:
			var lines []string
			for _, el := range card.Body {
				lines = appendElementText(lines, el)
			}
			parts = append(parts, strings.Join(lines, "\n"))
		}
	}
	return strings.Join(parts, "\n\n")
}

func thumbnailText(card *ThumbnailCard) string {
	var lines []string
	for _, s := range []string{card.Title, card.Subtitle, card.Text} {
		if s != "" {
			lines = append(lines, s)
		}
	}
	for _, b := range card.Buttons {
		if b.Type == ActionOpenURL {
			lines = append(lines, b.Title+": "+b.Value)
		}
	}
	return strings.Join(lines, "\n")
}

// ColumnSets are flattened onto one line.
func appendElementText(lines []string, el CardElement) []string {
	switch el.Type {
	case "TextBlock":
		return append(lines, el.Text)
	case "ColumnSet":
		var cells []string
		for _, col := range el.Columns {
			for _, item := range col.Items {
				if item.Type == "TextBlock" {
					cells = append(cells, item.Text)
				}
			}
		}
		return append(lines, strings.Join(cells, " | "))
	}
	return lines
}
