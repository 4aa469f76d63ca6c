// Package messages holds the Russian texts both shells show for shop errors.
package messages

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/vi13x/shop-lite-cli/internal/domain"
)

// Error turns a shop error into the text shown to a customer or an admin.
func Error(err error) string {
	var oe *domain.OrderError
	switch {
	case errors.As(err, &oe) && oe.Kind == domain.FailureOutOfStock:
		return fmt.Sprintf("Недостаточно товара %q: запрошено %s, в наличии %s.", oe.Product, oe.Requested, oe.Available)
	case errors.As(err, &oe) && oe.Kind == domain.FailureInsufficientCredit:
		return fmt.Sprintf("Недостаточно кредитов: нужно %s, доступно %s.", money(oe.Requested), money(oe.Available))
	case errors.Is(err, domain.ErrProductNotFound):
		return "Товар не найден."
	case errors.Is(err, domain.ErrInvalidQuantity):
		return "Количество должно быть больше нуля."
	case errors.Is(err, domain.ErrDuplicateCustomer):
		return "Покупатель с таким email уже существует. Выполните вход."
	case errors.Is(err, domain.ErrAuthenticationFailed):
		return "Неверный email или пароль."
	case errors.Is(err, domain.ErrInvalidCustomer):
		return "Некорректные данные: нужны имя, email, пароль и неотрицательный кредит."
	case errors.Is(err, domain.ErrCustomerNotFound):
		return "Покупатель не найден."
	case errors.Is(err, domain.ErrDuplicateProduct):
		return "Товар с таким названием уже есть."
	case errors.Is(err, domain.ErrInvalidProduct):
		return "Некорректный товар: нужны название, неотрицательные цена и количество."
	case errors.Is(err, domain.ErrBadNumber):
		return "Неверный формат числа."
	case errors.Is(err, domain.ErrInvalidAmount):
		return "Сумма должна быть больше нуля."
	default:
		return "Ошибка: " + err.Error()
	}
}

func money(d decimal.Decimal) string { return d.StringFixed(2) }
