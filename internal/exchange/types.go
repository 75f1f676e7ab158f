// Package exchange реализует клиент внешнего провайдера курсов валют (база USD).
package exchange

// Rates — результат запроса курсов с базой USD.
type Rates struct {
	JPY         float64 // Курс USD -> JPY
	UpdatedUnix int64   // Unix-время последнего обновления у провайдера
	UpdatedUTC  string  // Человеко-читаемая дата обновления
}

// providerResponse — формат ответа провайдера.
type providerResponse struct {
	Result             string             `json:"result"`
	Rates              map[string]float64 `json:"rates"`
	TimeLastUpdateUnix int64              `json:"time_last_update_unix"`
	TimeLastUpdateUTC  string             `json:"time_last_update_utc"`
}
