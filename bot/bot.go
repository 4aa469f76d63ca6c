package bot

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v5"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/vi13x/shop-lite-cli/internal/domain"
	"github.com/vi13x/shop-lite-cli/internal/messages"
	"github.com/vi13x/shop-lite-cli/internal/service"
)

const helpText = `🛒 Доступные команды:
/products
/search <название>
/register <email> <пароль> <кредит> <имя>
/login <email> <пароль>
/buy <количество> <товар>
/orders
/me
/invoice
/logout`

// Router answers shop commands. Each chat holds at most one logged-in customer.
type Router struct {
	shop *service.Shop

	mu       sync.Mutex
	sessions map[int64]domain.CustomerID
}

func NewRouter(shop *service.Shop) *Router {
	return &Router{shop: shop, sessions: make(map[int64]domain.CustomerID)}
}

func (r *Router) session(chatID int64) (domain.CustomerID, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	id, ok := r.sessions[chatID]
	return id, ok
}

func (r *Router) setSession(chatID int64, id domain.CustomerID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if id == "" {
		delete(r.sessions, chatID)
		return
	}
	r.sessions[chatID] = id
}

// Handle runs one command for a chat and returns the reply text.
func (r *Router) Handle(ctx context.Context, chatID int64, command, args string) string {
	args = strings.TrimSpace(args)
	switch command {
	case "start", "help":
		return helpText
	case "products":
		return productList(r.shop.Products(), "📭 Каталог пуст")
	case "search":
		if args == "" {
			return "Формат: /search Название"
		}
		if p, err := r.shop.Product(args); err == nil {
			return productLine(p)
		}
		return productList(r.shop.Search(args), "❌ Товар не найден.")
	case "register":
		f := strings.Fields(args)
		if len(f) < 4 {
			return "Формат: /register Email Пароль Кредит Имя"
		}
		credit, err := domain.ParseAmount(f[2])
		if err != nil {
			return "❌ Неверная сумма кредита. Пример: 100000"
		}
		c, err := r.shop.Register(ctx, strings.Join(f[3:], " "), f[1], f[0], credit)
		if err != nil {
			return "❌ " + messages.Error(err)
		}
		r.setSession(chatID, c.ID)
		return fmt.Sprintf("✅ Регистрация прошла успешно! Вы вошли как %s", c.Name)
	case "login":
		f := strings.Fields(args)
		if len(f) != 2 {
			return "Формат: /login Email Пароль"
		}
		c, err := r.shop.Login(f[0], f[1])
		if err != nil {
			return "❌ " + messages.Error(err)
		}
		r.setSession(chatID, c.ID)
		return fmt.Sprintf("✅ Добро пожаловать, %s!", c.Name)
	case "logout":
		r.setSession(chatID, "")
		return "👋 Вы вышли из аккаунта"
	case "buy", "orders", "me", "invoice":
		cid, ok := r.session(chatID)
		if !ok {
			return "🔒 Сначала выполните /login или /register"
		}
		return r.customerCommand(ctx, cid, command, args)
	default:
		return "Неизвестная команда"
	}
}

func (r *Router) customerCommand(ctx context.Context, cid domain.CustomerID, command, args string) string {
	switch command {
	case "buy":
		qtyRaw, name, _ := strings.Cut(args, " ")
		name = strings.TrimSpace(name)
		qty, err := domain.ParseAmount(qtyRaw)
		if err != nil || name == "" {
			return "Формат: /buy Количество Товар"
		}
		o, err := r.shop.PlaceOrder(ctx, cid, name, qty)
		if err != nil {
			return "❌ " + messages.Error(err)
		}
		return fmt.Sprintf("✅ Заказ оформлен: %s x %s по %s. Итого: %s",
			o.ProductName, o.Quantity, o.UnitPrice.StringFixed(2), o.Total.StringFixed(2))
	case "orders":
		orders, err := r.shop.Orders(cid)
		if err != nil {
			return "❌ " + messages.Error(err)
		}
		if len(orders) == 0 {
			return "📭 Заказов нет"
		}
		var b strings.Builder
		b.WriteString("📜 Ваши заказы:\n")
		for _, o := range orders {
			fmt.Fprintf(&b, "%s: %s x %s = %s\n",
				o.CreatedAt.Format("02.01.2006 15:04"), o.ProductName, o.Quantity, o.Total.StringFixed(2))
		}
		return b.String()
	case "me":
		c, err := r.shop.Customer(cid)
		if err != nil {
			return "❌ " + messages.Error(err)
		}
		return fmt.Sprintf("💰 %s <%s>\nКредит: %s\nЗаказов: %d", c.Name, c.Email, c.Credit.StringFixed(2), len(c.Orders))
	default: // invoice
		inv, err := r.shop.Invoice(cid)
		if err != nil {
			return "❌ " + messages.Error(err)
		}
		var b strings.Builder
		if err := service.RenderInvoice(&b, inv); err != nil {
			return "❌ " + messages.Error(err)
		}
		return b.String()
	}
}

func productLine(p *domain.Product) string {
	return fmt.Sprintf("%s: %s (в наличии %s)", p.Name, p.UnitPrice.StringFixed(2), p.Stock)
}

func productList(products []*domain.Product, empty string) string {
	if len(products) == 0 {
		return empty
	}
	lines := make([]string, 0, len(products))
	for _, p := range products {
		lines = append(lines, productLine(p))
	}
	return strings.Join(lines, "\n")
}

// Connect authorizes the bot, retrying network failures until maxElapsed.
// A token Telegram rejects is not retried.
func Connect(ctx context.Context, token string, maxElapsed time.Duration, log *slog.Logger) (*tgbotapi.BotAPI, error) {
	operation := func() (*tgbotapi.BotAPI, error) {
		api, err := tgbotapi.NewBotAPI(token)
		if err == nil {
			return api, nil
		}
		var apiErr *tgbotapi.Error
		if errors.As(err, &apiErr) {
			return nil, backoff.Permanent(err)
		}
		log.WarnContext(ctx, "telegram unreachable, retrying", "error", err)
		return nil, err
	}
	return backoff.Retry(ctx, operation,
		backoff.WithBackOff(backoff.NewExponentialBackOff()), backoff.WithMaxElapsedTime(maxElapsed))
}

// Start polls Telegram until ctx is done.
func Start(ctx context.Context, api *tgbotapi.BotAPI, r *Router, log *slog.Logger) {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60
	updates := api.GetUpdatesChan(u)
	defer api.StopReceivingUpdates()

	for {
		select {
		case <-ctx.Done():
			return
		case update, ok := <-updates:
			if !ok {
				return
			}
			if update.Message == nil {
				continue
			}
			msg := update.Message
			text := "ℹ️ Используйте /help для списка команд"
			if msg.IsCommand() {
				start := time.Now()
				text = r.Handle(ctx, msg.Chat.ID, msg.Command(), msg.CommandArguments())
				log.Debug("command handled", "chat", msg.Chat.ID, "command", msg.Command(), "took", time.Since(start))
			}
			if _, err := api.Send(tgbotapi.NewMessage(msg.Chat.ID, text)); err != nil {
				log.Warn("send failed", "chat", msg.Chat.ID, "error", err)
			}
		}
	}
}
