package models

import (
	"time"

	"github.com/shopspring/decimal"
)

func init() {
	// Стоимость подписки сериализуется как число, а не строка.
	decimal.MarshalJSONWithoutQuotes = true
}

// Допустимые значения валюты и цикла оплаты.
const (
	CurrencyJPY = "JPY"
	CurrencyUSD = "USD"

	CycleMonthly = "monthly"
	CycleYearly  = "yearly"
)

// Subscription представляет собой основную модель подписки,
// используемую в бизнес-логике и хранилище. PaymentMonth заполняется
// при годовом цикле оплаты, nil означает отсутствие месяца; значение
// сохраняется как прислано и при месячном цикле.
type Subscription struct {
	UID          string          `json:"id"`           // Уникальный идентификатор подписки (uuid)
	Name         string          `json:"name"`         // Название сервиса
	Fee          decimal.Decimal `json:"fee"`          // Стоимость, неотрицательная
	Currency     string          `json:"currency"`     // Валюта: JPY или USD
	Cycle        string          `json:"cycle"`        // Цикл оплаты: monthly или yearly
	PaymentDay   int             `json:"paymentDay"`   // День месяца списания
	PaymentMonth *int            `json:"paymentMonth"` // Месяц списания (1-12), только для yearly
	UserUID      string          `json:"-"`            // Владелец подписки
	CreatedAt    time.Time       `json:"-"`            // Дата создания записи
}

// DummySubscription используется для приёма данных из JSON-запроса,
// прежде чем конвертировать их в Subscription. Отсутствующая валюта
// трактуется как JPY, отсутствующий paymentMonth — как NULL.
// Нулевая стоимость допустима (бесплатный тариф), поэтому у Fee
// нет тега required: он срабатывал бы на нулевом значении.
type DummySubscription struct {
	Name         string          `json:"name" validate:"required"`
	Fee          decimal.Decimal `json:"fee" validate:"gte=0"`
	Currency     string          `json:"currency" validate:"omitempty,oneof=JPY USD"`
	Cycle        string          `json:"cycle" validate:"required,oneof=monthly yearly"`
	PaymentDay   int             `json:"paymentDay" validate:"required,min=1,max=31"`
	PaymentMonth *int            `json:"paymentMonth" validate:"omitempty,min=1,max=12"`
}
