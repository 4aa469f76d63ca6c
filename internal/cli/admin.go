package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/vi13x/shop-lite-cli/internal/domain"
	"github.com/vi13x/shop-lite-cli/internal/messages"
)

// HandleAdmin asks for the admin password, then runs the admin menu.
func (ui *UI) HandleAdmin() {
	fmt.Fprint(ui.out, "Пароль администратора: ")
	if ui.cfg.AdminPassword == "" || ui.readPassword() != ui.cfg.AdminPassword {
		fmt.Fprintln(ui.out, "Доступ запрещён.")
		return
	}
	for {
		fmt.Fprintln(ui.out, "\n=== Админ-панель ===")
		fmt.Fprintln(ui.out, "1) Список покупателей")
		fmt.Fprintln(ui.out, "2) Добавить товар")
		fmt.Fprintln(ui.out, "3) Пополнить кредит покупателя")
		fmt.Fprintln(ui.out, "4) Заказы покупателя")
		fmt.Fprintln(ui.out, "5) Экспорт заказов покупателя (CSV)")
		fmt.Fprintln(ui.out, "6) Снимок магазина (JSON)")
		fmt.Fprintln(ui.out, "0) Выход")
		fmt.Fprint(ui.out, "> ")
		switch strings.TrimSpace(ui.readLine()) {
		case "1":
			ui.adminListCustomers()
		case "2":
			ui.adminAddProduct()
		case "3":
			ui.adminTopUp()
		case "4":
			if c := ui.adminPickCustomer(); c != nil {
				ui.orders(c.ID)
			}
		case "5":
			ui.adminExport()
		case "6":
			ui.adminSnapshot()
		default:
			return
		}
	}
}

func (ui *UI) adminListCustomers() {
	customers := ui.shop.Customers()
	if len(customers) == 0 {
		fmt.Fprintln(ui.out, "Покупателей нет.")
		return
	}
	fmt.Fprintln(ui.out, "Покупатели:")
	for _, c := range customers {
		fmt.Fprintf(ui.out, "- %s  %s  кредит: %s  заказов: %d\n", c.Email, c.Name, formatMoney(c.Credit), len(c.Orders))
	}
}

func (ui *UI) adminPickCustomer() *domain.Customer {
	fmt.Fprint(ui.out, "Email покупателя: ")
	c, err := ui.shop.CustomerByEmail(ui.readLine())
	if err != nil {
		fmt.Fprintln(ui.out, messages.Error(err))
		return nil
	}
	return c
}

func (ui *UI) adminAddProduct() {
	fmt.Fprint(ui.out, "Название: ")
	name := ui.readLine()
	price := ui.readDecimal("Цена:")
	stock := ui.readDecimal("Количество на складе:")
	p, err := ui.shop.AddProduct(context.Background(), name, price, stock)
	if err != nil {
		fmt.Fprintln(ui.out, messages.Error(err))
		return
	}
	fmt.Fprintf(ui.out, "Товар %s добавлен.\n", p.Name)
}

func (ui *UI) adminTopUp() {
	c := ui.adminPickCustomer()
	if c == nil {
		return
	}
	amt := ui.readDecimal("Сумма пополнения:")
	c, err := ui.shop.TopUp(context.Background(), c.ID, amt)
	if err != nil {
		fmt.Fprintln(ui.out, messages.Error(err))
		return
	}
	fmt.Fprintf(ui.out, "Кредит %s: %s\n", c.Email, formatMoney(c.Credit))
}

func (ui *UI) adminExport() {
	c := ui.adminPickCustomer()
	if c == nil {
		return
	}
	path := filepath.Join(ui.cfg.ReportsDir, fmt.Sprintf("orders_%s.csv", c.ID))
	p, err := ui.shop.ExportOrdersCSV(c.ID, path)
	if err != nil {
		fmt.Fprintln(ui.out, messages.Error(err))
		return
	}
	fmt.Fprintln(ui.out, "Сохранено:", p)
}

func (ui *UI) adminSnapshot() {
	path := filepath.Join(ui.cfg.ReportsDir, fmt.Sprintf("snapshot_%s.json", time.Now().Format("20060102_150405")))
	p, err := ui.shop.ExportSnapshot(path)
	if err != nil {
		fmt.Fprintln(ui.out, messages.Error(err))
		return
	}
	fmt.Fprintln(ui.out, "Сохранено:", p)
}
