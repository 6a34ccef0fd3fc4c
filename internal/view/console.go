// Package view renders the cart, notices and prompts on a terminal.
package view

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/nikolayk812/cartsync-demo/internal/domain"
	"github.com/nikolayk812/cartsync-demo/internal/notify"
	"github.com/nikolayk812/cartsync-demo/internal/port"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var (
	colorSuccess = lipgloss.Color("#8BC34A")
	colorInfo    = lipgloss.Color("#2196F3")
	colorWarning = lipgloss.Color("#FFC107")
	colorDanger  = lipgloss.Color("#e53935")
	colorMuted   = lipgloss.Color("#6b7280")
	colorBorder  = lipgloss.Color("#2a3850")
)

type Styles struct {
	Title  lipgloss.Style
	Header lipgloss.Style
	Cell   lipgloss.Style
	Muted  lipgloss.Style
	Total  lipgloss.Style
	Badge  lipgloss.Style
	Border lipgloss.Style
	Notice map[domain.NoticeLevel]lipgloss.Style
}

func DefaultStyles() Styles {
	notice := func(c lipgloss.Color) lipgloss.Style {
		return lipgloss.NewStyle().Foreground(c).Bold(true)
	}
	return Styles{
		Title:  lipgloss.NewStyle().Bold(true).MarginBottom(1),
		Header: lipgloss.NewStyle().Bold(true).Padding(0, 1),
		Cell:   lipgloss.NewStyle().Padding(0, 1),
		Muted:  lipgloss.NewStyle().Foreground(colorMuted),
		Total:  lipgloss.NewStyle().Bold(true).Foreground(colorSuccess),
		Badge:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#ffffff")).Background(colorDanger).Padding(0, 1),
		Border: lipgloss.NewStyle().Foreground(colorBorder),
		Notice: map[domain.NoticeLevel]lipgloss.Style{
			domain.NoticeSuccess: notice(colorSuccess),
			domain.NoticeInfo:    notice(colorInfo),
			domain.NoticeWarning: notice(colorWarning),
			domain.NoticeDanger:  notice(colorDanger),
		},
	}
}

// Console is the terminal implementation of every view port. Writes are
// serialised since notices are dismissed from timer goroutines.
type Console struct {
	styles  Styles
	printer *message.Printer

	mu  sync.Mutex
	out io.Writer
	in  *bufio.Reader
}

var (
	_ port.Renderer  = (*Console)(nil)
	_ port.Notifier  = (*Console)(nil)
	_ port.BadgeSink = (*Console)(nil)
	_ port.Confirmer = (*Console)(nil)
	_ notify.Display = (*Console)(nil)
)

func NewConsole(out io.Writer, in io.Reader) *Console {
	c := &Console{
		styles:  DefaultStyles(),
		printer: message.NewPrinter(language.English),
		out:     out,
	}
	if in != nil {
		c.in = bufio.NewReader(in)
	}
	return c
}

// FormatMoney renders an amount with its currency symbol, e.g. ₹ 449.97.
func (c *Console) FormatMoney(m domain.Money) string {
	unit := m.Currency
	if unit == (currency.Unit{}) {
		unit = domain.DefaultCurrency
	}
	return c.printer.Sprint(currency.NarrowSymbol(unit.Amount(m.Amount.InexactFloat64())))
}

func (c *Console) RenderCart(lines []domain.CartLine, total domain.Money) {
	var b strings.Builder
	b.WriteString(c.styles.Title.Render("Shopping Cart"))
	b.WriteString("\n")

	if len(lines) == 0 {
		b.WriteString(c.styles.Muted.Render("Your cart is empty"))
		b.WriteString("\n")
		c.write(b.String())
		return
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(c.styles.Border).
		Headers("Code", "Product", "Qty", "Price", "Subtotal").
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return c.styles.Header
			}
			return c.styles.Cell
		})
	for _, line := range lines {
		t.Row(
			line.Code,
			line.Name,
			strconv.Itoa(line.Quantity),
			c.FormatMoney(line.UnitPrice),
			c.FormatMoney(line.Subtotal()),
		)
	}

	b.WriteString(t.Render())
	b.WriteString("\n")
	b.WriteString(c.styles.Total.Render("Total: " + c.FormatMoney(total)))
	b.WriteString("\n")
	c.write(b.String())
}

func (c *Console) RenderProducts(products []domain.Product) {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(c.styles.Border).
		Headers("ID", "Name", "Price", "Stock").
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return c.styles.Header
			}
			return c.styles.Cell
		})
	for _, p := range products {
		t.Row(strconv.FormatInt(p.ID, 10), p.Name, c.FormatMoney(p.Price), strconv.Itoa(p.StockQuantity))
	}
	c.write(t.Render() + "\n")
}

func (c *Console) RenderOrders(orders []domain.Order) {
	if len(orders) == 0 {
		c.write(c.styles.Muted.Render("No orders yet") + "\n")
		return
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(c.styles.Border).
		Headers("Order", "Date", "Items", "Total", "Status", "Payment").
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return c.styles.Header
			}
			return c.styles.Cell
		})
	for _, o := range orders {
		date := ""
		if !o.OrderDate.IsZero() {
			date = o.OrderDate.Format("2006-01-02")
		}
		t.Row(
			"#"+strconv.FormatInt(o.ID, 10),
			date,
			strconv.Itoa(len(o.Items)),
			c.FormatMoney(o.TotalAmount),
			string(o.Status),
			string(o.PaymentStatus),
		)
	}
	c.write(t.Render() + "\n")
}

func (c *Console) RenderUsers(users []domain.User) {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(c.styles.Border).
		Headers("ID", "Username", "Email", "Role").
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return c.styles.Header
			}
			return c.styles.Cell
		})
	for _, u := range users {
		t.Row(strconv.FormatInt(u.ID, 10), u.Username, u.Email, string(u.Role))
	}
	c.write(t.Render() + "\n")
}

func (c *Console) RenderPayment(p domain.Payment) {
	c.write(fmt.Sprintf("Payment #%d for order #%d: %s %s (%s)\n",
		p.ID, p.OrderID, c.FormatMoney(p.Amount), p.Status, p.Method))
}

func (c *Console) Notify(n domain.Notice) {
	if n.IsZero() {
		return
	}
	c.write(c.noticeStyle(n.Level).Render(n.Message) + "\n")
}

// Show implements notify.Display.
func (c *Console) Show(_ uint64, n domain.Notice) {
	c.Notify(n)
}

// Dismiss implements notify.Display. Printed lines stay in the scrollback.
func (c *Console) Dismiss(uint64) {}

func (c *Console) ShowBadge(count int) {
	c.write(c.styles.Badge.Render("cart "+strconv.Itoa(count)) + "\n")
}

func (c *Console) HideBadge() {}

// Confirm asks a yes/no question; anything but y or yes declines, as does
// a console without input.
func (c *Console) Confirm(ctx context.Context, prompt string) bool {
	if c.in == nil || ctx.Err() != nil {
		return false
	}

	c.write(c.noticeStyle(domain.NoticeWarning).Render(prompt) + " [y/N] ")

	answer, err := c.in.ReadString('\n')
	if err != nil && answer == "" {
		return false
	}
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes":
		return true
	}
	return false
}

func (c *Console) noticeStyle(level domain.NoticeLevel) lipgloss.Style {
	if s, ok := c.styles.Notice[level]; ok {
		return s
	}
	return c.styles.Notice[domain.NoticeInfo]
}

func (c *Console) write(s string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, _ = io.WriteString(c.out, s)
}
