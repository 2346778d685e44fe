package domain

import (
	"fmt"
	"net/url"
	"strings"
)

// ContactSellerLink composes a mailto URL addressed to the listing's
// seller. senderName is used in the message signature. The link is handed
// to the platform's mail facility as-is; nothing is sent by this package.
func ContactSellerLink(l Listing, senderName string) string {
	subject := "VBay Inquiry: " + l.Title
	body := fmt.Sprintf(
		"Hi,\n\nI found your listing for %q on VBay and I am interested in purchasing it.\n\nIs it still available?\n\nThanks,\n%s",
		l.Title, senderName,
	)
	return "mailto:" + l.SellerEmail + "?subject=" + mailtoEscape(subject) + "&body=" + mailtoEscape(body)
}

// ContactAllSellersLink composes a single mailto URL addressed to every
// distinct seller in the cart, preserving first-seen order. Returns ""
// for an empty cart.
func ContactAllSellersLink(items []CartItem) string {
	if len(items) == 0 {
		return ""
	}
	seen := make(map[string]bool, len(items))
	emails := make([]string, 0, len(items))
	for _, item := range items {
		if !seen[item.SellerEmail] {
			seen[item.SellerEmail] = true
			emails = append(emails, item.SellerEmail)
		}
	}
	subject := "VBay Inquiries"
	body := "Hi,\n\nI am interested in several items you have listed on VBay."
	return "mailto:" + strings.Join(emails, ",") + "?subject=" + mailtoEscape(subject) + "&body=" + mailtoEscape(body)
}

// mailtoEscape percent-encodes a mailto header value. url.QueryEscape
// encodes spaces as "+", which mail clients render literally, so they are
// rewritten to %20.
func mailtoEscape(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}
