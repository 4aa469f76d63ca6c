package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/vi13x/shop-lite-cli/internal/domain"
	"github.com/vi13x/shop-lite-cli/internal/messages"
	"github.com/vi13x/shop-lite-cli/internal/service"
)

type Mode int

const (
	ModeExit Mode = iota
	ModeRegister
	ModeLogin
	ModeBrowse
	ModeSearch
	ModeAdmin
)

type Config struct {
	ReportsDir    string
	AdminPassword string
}

type UI struct {
	shop *service.Shop
	in   *bufio.Reader
	out  io.Writer
	cfg  Config
}

func NewUI(shop *service.Shop, in *bufio.Reader, out io.Writer, cfg Config) *UI {
	if cfg.ReportsDir == "" {
		cfg.ReportsDir = "reports"
	}
	return &UI{shop: shop, in: in, out: out, cfg: cfg}
}

// Run drives the top-level menu until the user exits or input ends.
func (ui *UI) Run() {
	fmt.Fprintln(ui.out, "=== Shop Lite ===")
	for {
		switch ui.SelectMode() {
		case ModeRegister:
			if c := ui.HandleRegister(); c != nil {
				ui.HandleSession(c)
			}
		case ModeLogin:
			if c := ui.HandleLogin(); c != nil {
				ui.HandleSession(c)
			}
		case ModeBrowse:
			ui.listProducts()
		case ModeSearch:
			ui.search()
		case ModeAdmin:
			ui.HandleAdmin()
		default:
			fmt.Fprintln(ui.out, "Спасибо, что выбрали нас. До свидания!")
			return
		}
	}
}

func (ui *UI) SelectMode() Mode {
	fmt.Fprintln(ui.out, "\nВыберите режим:")
	fmt.Fprintln(ui.out, "1) Регистрация")
	fmt.Fprintln(ui.out, "2) Вход")
	fmt.Fprintln(ui.out, "3) Каталог товаров")
	fmt.Fprintln(ui.out, "4) Поиск товара / наличие")
	fmt.Fprintln(ui.out, "5) Админ-панель")
	fmt.Fprintln(ui.out, "0) Выход")
	fmt.Fprint(ui.out, "> ")
	switch strings.TrimSpace(ui.readLine()) {
	case "1":
		return ModeRegister
	case "2":
		return ModeLogin
	case "3":
		return ModeBrowse
	case "4":
		return ModeSearch
	case "5":
		return ModeAdmin
	default:
		return ModeExit
	}
}

// HandleRegister creates an account and logs the new customer in.
func (ui *UI) HandleRegister() *domain.Customer {
	fmt.Fprintln(ui.out, "\n=== Регистрация ===")
	fmt.Fprint(ui.out, "Имя: ")
	name := ui.readLine()
	fmt.Fprint(ui.out, "Email: ")
	email := ui.readLine()
	fmt.Fprint(ui.out, "Пароль: ")
	pass := ui.readPassword()
	credit := ui.readDecimal("Начальный кредит (например 100000):")

	c, err := ui.shop.Register(context.Background(), name, pass, email, credit)
	if err != nil {
		fmt.Fprintln(ui.out, messages.Error(err))
		return nil
	}
	fmt.Fprintf(ui.out, "Регистрация прошла успешно! Вы вошли как %s\n", c.Name)
	return c
}

func (ui *UI) HandleLogin() *domain.Customer {
	fmt.Fprintln(ui.out, "\n=== Вход ===")
	fmt.Fprint(ui.out, "Email: ")
	email := ui.readLine()
	fmt.Fprint(ui.out, "Пароль: ")
	pass := ui.readPassword()

	c, err := ui.shop.Login(email, pass)
	if err != nil {
		fmt.Fprintln(ui.out, messages.Error(err))
		return nil
	}
	fmt.Fprintf(ui.out, "Добро пожаловать, %s!\n", c.Name)
	return c
}

func (ui *UI) HandleSession(c *domain.Customer) {
	for {
		fmt.Fprintln(ui.out, "\n=== Меню покупателя ===")
		fmt.Fprintln(ui.out, "1) Каталог товаров")
		fmt.Fprintln(ui.out, "2) Купить товар")
		fmt.Fprintln(ui.out, "3) Мои заказы")
		fmt.Fprintln(ui.out, "4) Поиск товара / наличие")
		fmt.Fprintln(ui.out, "5) Данные аккаунта")
		fmt.Fprintln(ui.out, "6) Изменить профиль")
		fmt.Fprintln(ui.out, "7) Оформить счёт")
		fmt.Fprintln(ui.out, "8) Экспорт заказов (CSV)")
		fmt.Fprintln(ui.out, "0) Выход из аккаунта")
		fmt.Fprint(ui.out, "> ")
		switch strings.TrimSpace(ui.readLine()) {
		case "1":
			ui.listProducts()
		case "2":
			ui.purchase(c.ID)
		case "3":
			ui.orders(c.ID)
		case "4":
			ui.search()
		case "5":
			ui.account(c.ID)
		case "6":
			ui.editProfile(c.ID)
		case "7":
			ui.checkout(c.ID)
		case "8":
			ui.exportOrders(c.ID)
		default:
			return
		}
	}
}

func (ui *UI) listProducts() {
	products := ui.shop.Products()
	if len(products) == 0 {
		fmt.Fprintln(ui.out, "Каталог пуст.")
		return
	}
	fmt.Fprintln(ui.out, "Товары:")
	for _, p := range products {
		ui.printProduct(p)
	}
}

func (ui *UI) printProduct(p *domain.Product) {
	fmt.Fprintf(ui.out, "- %s  цена: %s  в наличии: %s\n", p.Name, formatMoney(p.UnitPrice), p.Stock)
}

func (ui *UI) search() {
	fmt.Fprint(ui.out, "Название товара: ")
	q := strings.TrimSpace(ui.readLine())
	if q == "" {
		return
	}
	if p, err := ui.shop.Product(q); err == nil {
		ui.printProduct(p)
		return
	}
	found := ui.shop.Search(q)
	if len(found) == 0 {
		fmt.Fprintln(ui.out, "Товар не найден.")
		return
	}
	fmt.Fprintln(ui.out, "Похожие товары:")
	for _, p := range found {
		ui.printProduct(p)
	}
}

func (ui *UI) purchase(cid domain.CustomerID) {
	ui.listProducts()
	fmt.Fprint(ui.out, "Название товара: ")
	name := strings.TrimSpace(ui.readLine())
	qty := ui.readDecimal("Количество (например 2 или 1.5):")
	order, err := ui.shop.PlaceOrder(context.Background(), cid, name, qty)
	if err != nil {
		fmt.Fprintln(ui.out, messages.Error(err))
		return
	}
	fmt.Fprintf(ui.out, "Заказ оформлен: %s x %s по %s. Итого: %s\n",
		order.ProductName, order.Quantity, formatMoney(order.UnitPrice), formatMoney(order.Total))
}

func (ui *UI) orders(cid domain.CustomerID) {
	orders, err := ui.shop.Orders(cid)
	if err != nil {
		fmt.Fprintln(ui.out, messages.Error(err))
		return
	}
	if len(orders) == 0 {
		fmt.Fprintln(ui.out, "Заказов нет.")
		return
	}
	fmt.Fprintln(ui.out, "Ваши заказы:")
	for _, o := range orders {
		fmt.Fprintf(ui.out, "- %s  %s  %s x %s = %s\n",
			o.ID, o.CreatedAt.Format(time.RFC3339), o.ProductName, o.Quantity, formatMoney(o.Total))
	}
}

func (ui *UI) account(cid domain.CustomerID) {
	c, err := ui.shop.Customer(cid)
	if err != nil {
		fmt.Fprintln(ui.out, messages.Error(err))
		return
	}
	fmt.Fprintf(ui.out, "Имя: %s\n", c.Name)
	fmt.Fprintf(ui.out, "Email: %s\n", c.Email)
	fmt.Fprintf(ui.out, "Кредит: %s\n", formatMoney(c.Credit))
	fmt.Fprintf(ui.out, "Заказов: %d\n", len(c.Orders))
}

func (ui *UI) editProfile(cid domain.CustomerID) {
	fmt.Fprint(ui.out, "Новое имя (пусто — оставить): ")
	name := ui.readLine()
	fmt.Fprint(ui.out, "Новый пароль (пусто — оставить): ")
	pass := ui.readPassword()
	if _, err := ui.shop.UpdateProfile(context.Background(), cid, name, pass); err != nil {
		fmt.Fprintln(ui.out, messages.Error(err))
		return
	}
	fmt.Fprintln(ui.out, "Профиль обновлён.")
}

func (ui *UI) checkout(cid domain.CustomerID) {
	inv, err := ui.shop.Invoice(cid)
	if err != nil {
		fmt.Fprintln(ui.out, messages.Error(err))
		return
	}
	fmt.Fprintln(ui.out, "Формируем счёт...")
	if err := service.RenderInvoice(ui.out, inv); err != nil {
		fmt.Fprintln(ui.out, messages.Error(err))
		return
	}
	fmt.Fprintln(ui.out, "Спасибо за покупки!")
}

func (ui *UI) exportOrders(cid domain.CustomerID) {
	path := filepath.Join(ui.cfg.ReportsDir, fmt.Sprintf("orders_%s.csv", cid))
	p, err := ui.shop.ExportOrdersCSV(cid, path)
	if err != nil {
		fmt.Fprintln(ui.out, messages.Error(err))
		return
	}
	fmt.Fprintln(ui.out, "Сохранено:", p)
}

func (ui *UI) readLine() string {
	s, _ := ui.in.ReadString('\n')
	return strings.TrimRight(s, "\r\n")
}

func (ui *UI) readPassword() string {
	// echo stays on; the shell also runs under plain pipes
	return ui.readLine()
}

// readDecimal asks until it gets a number. Empty input gives zero.
func (ui *UI) readDecimal(prompt string) decimal.Decimal {
	for {
		fmt.Fprint(ui.out, prompt+" ")
		raw := strings.TrimSpace(ui.readLine())
		if raw == "" {
			return decimal.Zero
		}
		d, err := domain.ParseAmount(raw)
		if err != nil {
			fmt.Fprintln(ui.out, "Неверный формат. Пример: 1.5")
			continue
		}
		return d
	}
}

func formatMoney(d decimal.Decimal) string { return d.StringFixed(2) }
