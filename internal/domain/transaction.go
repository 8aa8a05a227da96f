package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction is one line item of a retail invoice, read from the
// transactions_sample table. JSON field names mirror the ingested column
// names and are a stable API contract.
type Transaction struct {
	ID        int64     `json:"id"`
	CreatedAt time.Time `json:"created_at"`

	// Invoice identity and product description
	NumeroFatura  string `json:"NumeroFatura"`
	CodigoProduto string `json:"CodigoProduto"`
	Descricao     string `json:"Descricao"`

	// Quantities and money (fixed-point, 2 decimal places)
	Quantidade       int64           `json:"Quantidade"`
	PrecoUnitario    decimal.Decimal `json:"PrecoUnitario"`
	ValorTotalFatura decimal.Decimal `json:"ValorTotalFatura"`

	// Business date used for all range filtering
	DataFatura time.Time `json:"DataFatura"`

	// IDCliente is nullable: anonymous purchases carry no customer id.
	IDCliente *string `json:"IDCliente"`

	Pais             string  `json:"Pais"`
	CategoriaProduto *string `json:"CategoriaProduto"`
	CategoriaPreco   string  `json:"CategoriaPreco"`
	FaturaUnica      bool    `json:"FaturaUnica"`

	// Calendar attributes precomputed at ingestion time
	Ano       int64 `json:"Ano"`
	Mes       int64 `json:"Mes"`
	Dia       int64 `json:"Dia"`
	DiaSemana int64 `json:"DiaSemana"`
}
