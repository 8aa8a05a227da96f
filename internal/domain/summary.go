package domain

import "github.com/shopspring/decimal"

// Summary holds the aggregates computed over all transactions inside a
// date range. Null SQL aggregates (sum/avg over zero rows) are mapped to
// literal zero values before this struct is built.
type Summary struct {
	TotalTransactions int64           `json:"total_transactions"`
	TotalValue        decimal.Decimal `json:"total_value"`
	UniqueCustomers   int64           `json:"unique_customers"`
	TotalQuantity     int64           `json:"total_quantity"`
	AverageUnitPrice  decimal.Decimal `json:"average_unit_price"`
	UniqueCountries   int64           `json:"unique_countries"`
	UniqueCategories  int64           `json:"unique_categories"`
}

// CategorySummary is one per-category aggregate row. Categoria is nil for
// the group of rows without a product category.
type CategorySummary struct {
	Categoria       *string         `json:"categoria"`
	TotalVendas     int64           `json:"total_vendas"`
	ValorTotal      decimal.Decimal `json:"valor_total"`
	QuantidadeTotal int64           `json:"quantidade_total"`
	TicketMedio     decimal.Decimal `json:"ticket_medio"`
}

// CountrySummary is one per-country aggregate row. QuantidadeClientes is
// the distinct customer count within the group; null customer ids do not
// contribute to it.
type CountrySummary struct {
	Pais               string          `json:"pais"`
	TotalVendas        int64           `json:"total_vendas"`
	ValorTotal         decimal.Decimal `json:"valor_total"`
	QuantidadeClientes int64           `json:"quantidade_clientes"`
	TicketMedio        decimal.Decimal `json:"ticket_medio"`
}
