package notifier

import (
	"fmt"
	"net/url"
	"strings"

	"tailorshop/internal/model"
)

// BookingMessage renders the booking summary sent to the shop owner.
func BookingMessage(shopName string, b *model.Booking) string {
	address := b.Address
	if strings.TrimSpace(address) == "" {
		address = "Shop Visit"
	}
	lines := []string{
		fmt.Sprintf("*New Booking Request - %s*", shopName),
		"------------------",
		"👤 *Name:* " + b.CustomerName,
		"📞 *Phone:* " + b.Phone,
		"✂️ *Service:* " + string(b.ServiceType),
		"📍 *Type:* " + string(b.AppointmentType),
		"📅 *Date:* " + b.Date,
		"🏠 *Address:* " + address,
		"📝 *Notes:* " + b.Notes,
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}

// WhatsAppLink returns a wa.me deep link that opens a chat with shopNumber
// prefilled with the booking summary. Nothing is sent.
func WhatsAppLink(shopNumber, shopName string, b *model.Booking) string {
	text := url.QueryEscape(BookingMessage(shopName, b))
	// wa.me expects %20, QueryEscape emits +
	text = strings.ReplaceAll(text, "+", "%20")
	return fmt.Sprintf("https://wa.me/%s?text=%s", strings.TrimPrefix(shopNumber, "+"), text)
}
