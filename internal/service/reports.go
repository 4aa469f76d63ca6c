package service

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/shopspring/decimal"

	"github.com/vi13x/shop-lite-cli/internal/domain"
)

// Invoice is what checkout prints: every order of the customer and the sum.
type Invoice struct {
	CustomerName string
	Email        string
	Orders       []domain.Order
	Total        decimal.Decimal
	IssuedAt     time.Time
}

func (s *Shop) Invoice(id domain.CustomerID) (*Invoice, error) {
	c, err := s.ledger.Get(id)
	if err != nil {
		return nil, err
	}
	inv := &Invoice{CustomerName: c.Name, Email: c.Email, Orders: c.Orders, Total: decimal.Zero, IssuedAt: s.now()}
	for _, o := range c.Orders {
		inv.Total = inv.Total.Add(o.Total)
	}
	return inv, nil
}

func RenderInvoice(w io.Writer, inv *Invoice) error {
	if len(inv.Orders) == 0 {
		_, err := fmt.Fprintln(w, "Заказов нет.")
		return err
	}
	fmt.Fprintf(w, "Счёт для %s <%s> от %s\n", inv.CustomerName, inv.Email, inv.IssuedAt.Format("2006-01-02"))
	for _, o := range inv.Orders {
		fmt.Fprintf(w, "Номер заказа: %s\n", o.ID)
		fmt.Fprintf(w, "  Дата: %s\n", o.Date())
		fmt.Fprintf(w, "  Товар: %s\n", o.ProductName)
		fmt.Fprintf(w, "  Количество: %s x %s\n", o.Quantity, o.UnitPrice.StringFixed(2))
		fmt.Fprintf(w, "  Сумма: %s\n", o.Total.StringFixed(2))
	}
	_, err := fmt.Fprintf(w, "Итого: %s\n", inv.Total.StringFixed(2))
	return err
}

// ExportOrdersCSV writes the customer's order history to outPath.
func (s *Shop) ExportOrdersCSV(id domain.CustomerID, outPath string) (string, error) {
	orders, err := s.Orders(id)
	if err != nil {
		return "", err
	}
	rows := [][]string{{"order_id", "date", "product", "unit_price", "quantity", "total"}}
	for _, o := range orders {
		rows = append(rows, []string{
			string(o.ID), o.Date(), o.ProductName, o.UnitPrice.String(), o.Quantity.String(), o.Total.String(),
		})
	}
	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		return "", err
	}
	f, err := os.Create(outPath)
	if err != nil {
		return "", err
	}
	if err := writeCSV(f, rows); err != nil {
		f.Close()
		return "", fmt.Errorf("failed to write %s: %w", outPath, err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", outPath, err)
	}
	return outPath, nil
}

func writeCSV(w io.Writer, rows [][]string) error {
	return csv.NewWriter(w).WriteAll(rows)
}
