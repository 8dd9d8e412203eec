package pricing

import "errors"

var ErrUnknownPlan = errors.New("unknown plan")

type Plan struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	Description   string  `json:"description"`
	Consultations int     `json:"consultations"`
	STCoins       int64   `json:"stcoins"`
	Price         float64 `json:"price"`
	PriceRub      int64   `json:"price_rub"`
	PriceKop      int64   `json:"price_kop"`
	Discount      int     `json:"discount"`
	Popular       bool    `json:"popular"`
	Temporary     bool    `json:"temporary"`
	Color         string  `json:"color"`
}

var catalog = []Plan{
	{
		ID:            "basic",
		Name:          "🌟 Базовый",
		Description:   "Отличный старт для регулярных консультаций",
		Consultations: 10,
		STCoins:       100,
		Price:         150,
		PriceRub:      150,
		PriceKop:      15000,
		Discount:      25,
		Color:         "🔵",
	},
	{
		ID:            "premium",
		Name:          "💎 Премиум",
		Description:   "Для настоящих ценителей стиля",
		Consultations: 25,
		STCoins:       250,
		Price:         300,
		PriceRub:      300,
		PriceKop:      30000,
		Discount:      40,
		Popular:       true,
		Color:         "🟣",
	},
	{
		ID:            "vip",
		Name:          "👑 VIP",
		Description:   "Максимум возможностей для идеального стиля",
		Consultations: 50,
		STCoins:       500,
		Price:         500,
		PriceRub:      500,
		PriceKop:      50000,
		Discount:      50,
		Color:         "🟡",
	},
}

// Plans returns a copy of the catalog in display order.
func Plans() []Plan {
	out := make([]Plan, len(catalog))
	copy(out, catalog)
	return out
}

func Find(id string) (Plan, error) {
	for _, p := range catalog {
		if p.ID == id {
			return p, nil
		}
	}
	return Plan{}, ErrUnknownPlan
}
