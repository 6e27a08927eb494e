package notify

import (
	"fmt"
	"html"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/pzf-studio/MAshop-sub000/internal/domain/order"
)

// FormatOrderHTML renders the order message sent through the Bot API,
// HTML parse mode. User-supplied text is escaped.
func FormatOrderHTML(p order.Payload) string {
	var b strings.Builder

	b.WriteString("<b>🛒 НОВЫЙ ЗАКАЗ MA FURNITURE</b>\n\n")
	b.WriteString("<b>📦 Состав заказа:</b>\n")
	for i, line := range p.Lines {
		fmt.Fprintf(&b, "%d. <b>%s</b>\n", i+1, html.EscapeString(line.Name))
		fmt.Fprintf(&b, "   Количество: %d шт.\n", line.Quantity)
		fmt.Fprintf(&b, "   Цена за шт: %s\n", FormatPrice(line.UnitPrice))
		fmt.Fprintf(&b, "   Сумма: %s\n\n", FormatPrice(line.Subtotal()))
	}
	fmt.Fprintf(&b, "<b>💰 ОБЩАЯ СУММА: %s</b>\n\n", FormatPrice(p.Total))

	b.WriteString("<b>👤 Данные клиента:</b>\n")
	fmt.Fprintf(&b, "ФИО: %s\n", html.EscapeString(p.CustomerName))
	fmt.Fprintf(&b, "Телефон: %s\n", html.EscapeString(p.CustomerPhone))
	if p.CustomerEmail != "" {
		fmt.Fprintf(&b, "Email: %s\n", html.EscapeString(p.CustomerEmail))
	}
	if p.CustomerAddress != "" {
		fmt.Fprintf(&b, "Адрес: %s\n", html.EscapeString(p.CustomerAddress))
	}
	if p.CustomerComment != "" {
		fmt.Fprintf(&b, "Комментарий: %s\n", html.EscapeString(p.CustomerComment))
	}

	fmt.Fprintf(&b, "\n📅 %s", p.SubmittedAt.Format("02.01.2006 15:04"))
	b.WriteString("\n\n🌐 <i>Заказ с сайта: MA Furniture</i>")
	return b.String()
}

// FormatOrderText renders the plain-text variant used for the fallback
// deep link.
func FormatOrderText(p order.Payload) string {
	var b strings.Builder

	b.WriteString("🛒 НОВЫЙ ЗАКАЗ MA FURNITURE\n\n")
	b.WriteString("📦 Состав заказа:\n")
	for i, line := range p.Lines {
		fmt.Fprintf(&b, "%d. %s\n", i+1, line.Name)
		fmt.Fprintf(&b, "   Количество: %d шт.\n", line.Quantity)
		fmt.Fprintf(&b, "   Цена за шт: %s\n", FormatPrice(line.UnitPrice))
		fmt.Fprintf(&b, "   Сумма: %s\n\n", FormatPrice(line.Subtotal()))
	}
	fmt.Fprintf(&b, "💰 ОБЩАЯ СУММА: %s\n\n", FormatPrice(p.Total))

	b.WriteString("👤 Данные клиента:\n")
	fmt.Fprintf(&b, "ФИО: %s\n", p.CustomerName)
	fmt.Fprintf(&b, "Телефон: %s\n", p.CustomerPhone)
	if p.CustomerEmail != "" {
		fmt.Fprintf(&b, "Email: %s\n", p.CustomerEmail)
	}
	if p.CustomerAddress != "" {
		fmt.Fprintf(&b, "Адрес: %s\n", p.CustomerAddress)
	}
	if p.CustomerComment != "" {
		fmt.Fprintf(&b, "Комментарий: %s\n", p.CustomerComment)
	}

	fmt.Fprintf(&b, "\n📅 %s", p.SubmittedAt.Format("02.01.2006 15:04"))
	b.WriteString("\n\n🌐 Заказ с сайта: MA Furniture")
	return b.String()
}

// FormatPrice renders a minor-unit amount as roubles, dropping the
// fraction when it is zero.
func FormatPrice(minorUnits int64) string {
	d := decimal.New(minorUnits, -2)
	if d.IsInteger() {
		return d.StringFixed(0) + " ₽"
	}
	return d.StringFixed(2) + " ₽"
}
