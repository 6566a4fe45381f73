// Package handoff builds the pre-filled messaging deep link a customer opens
// to confirm an order with the boutique.
package handoff

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/mgluxury/boutique/internal/core/money"
)

// BaseURL is the click-to-chat endpoint.
const BaseURL = "https://wa.me/"

var ErrNoRecipient = errors.New("handoff: recipient number is not configured")

// Customer holds the checkout form fields echoed in the message.
type Customer struct {
	Name    string
	Phone   string
	Address string
	Notes   string
}

// Item is one itemized line of the message.
type Item struct {
	Name      string
	Quantity  int
	LineTotal int64
}

// Summary is everything the message renders.
type Summary struct {
	Customer Customer
	Items    []Item
	Total    int64
}

// Message renders the order summary as multi-line text.
func Message(s Summary, f money.Formatter) string {
	var b strings.Builder
	b.WriteString("Bonjour MG LUXURY 👋\n")
	b.WriteString("\n📦 *NOUVELLE COMMANDE*\n")
	b.WriteString("\n")
	fmt.Fprintf(&b, "*Client:* %s\n", s.Customer.Name)
	fmt.Fprintf(&b, "*Téléphone:* %s\n", s.Customer.Phone)
	fmt.Fprintf(&b, "*Adresse:* %s\n", s.Customer.Address)
	if s.Customer.Notes != "" {
		fmt.Fprintf(&b, "*Notes:* %s\n", s.Customer.Notes)
	}
	b.WriteString("\n*Produits:*\n")
	for _, it := range s.Items {
		fmt.Fprintf(&b, "- %s x%d = %s\n", it.Name, it.Quantity, f.Format(it.LineTotal))
	}
	fmt.Fprintf(&b, "\n*TOTAL: %s*\n", f.Format(s.Total))
	b.WriteString("\nMerci de confirmer ma commande ! 🙏")
	return b.String()
}

// Link returns the deep link opening a chat with recipient, pre-filled with
// text. Spaces are encoded as %20.
func Link(recipient, text string) (string, error) {
	recipient = strings.TrimPrefix(strings.TrimSpace(recipient), "+")
	if recipient == "" {
		return "", ErrNoRecipient
	}
	encoded := strings.ReplaceAll(url.QueryEscape(text), "+", "%20")
	return BaseURL + recipient + "?text=" + encoded, nil
}
