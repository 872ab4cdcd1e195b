package dialogs

import (
	"fmt"
	"strings"

	"github.com/ruralpay/assistant/internal/activity"
	"github.com/ruralpay/assistant/internal/models"
)

func imageURL(base, name string) string {
	return strings.TrimRight(base, "/") + "/" + name
}

// accountCard renders the balance card with a login button.
func accountCard(account models.Account, imageBase, loginURL string) activity.Attachment {
	return activity.ThumbnailAttachment(&activity.ThumbnailCard{
		Title:    account.Username,
		Subtitle: accountCardSubtitle,
		Text:     fmt.Sprintf(accountCardBalance, account.Balance.String()),
		Images:   []activity.CardImage{{URL: imageURL(imageBase, accountCardImageName)}},
		Buttons: []activity.CardAction{{
			Type:  activity.ActionOpenURL,
			Title: accountCardLoginTitle,
			Value: loginURL,
		}},
	})
}

// transactionCard lists ledger entries in the order given.
func transactionCard(username string, txs []models.Transaction, imageBase string) activity.Attachment {
	subtle := true
	body := []activity.CardElement{
		{Type: "TextBlock", Text: fmt.Sprintf(transactionCardUser, username), Weight: "bolder", Size: "medium"},
		{Type: "TextBlock", Text: transactionCardHeader, IsSubtle: &subtle, Spacing: "none"},
	}

	for _, tx := range txs {
		body = append(body,
			activity.CardElement{Type: "TextBlock", Text: tx.Date(), Weight: "bolder", Separator: true},
			activity.CardElement{
				Type: "ColumnSet",
				Columns: []activity.CardElement{
					{Type: "Column", Width: "auto", Items: []activity.CardElement{
						{Type: "TextBlock", Text: fmt.Sprintf(transactionCardID, tx.ID), Size: "medium"},
						{Type: "TextBlock", Text: fmt.Sprintf(transactionCardAmount, tx.Amount.String()), IsSubtle: &subtle, Spacing: "none"},
					}},
					{Type: "Column", Width: "auto", Items: []activity.CardElement{
						{Type: "Image", URL: imageURL(imageBase, transactionCardIconName), Size: "small"},
					}},
					{Type: "Column", Width: "stretch", Items: []activity.CardElement{
						{Type: "TextBlock", Text: tx.Status.String(), HorizontalAlignment: "right"},
					}},
				},
			},
		)
	}

	return activity.AdaptiveAttachment(activity.NewAdaptiveCard(body...))
}
