package repository

// Schema for the transactions table. Column names match the external
// ingestion process exactly (mixed case, hence the quoting) and are
// compatible with both SQLite and PostgreSQL.
const schemaTransactions = `
CREATE TABLE IF NOT EXISTS transactions_sample (
    id BIGINT PRIMARY KEY,
    created_at TIMESTAMP,
    "NumeroFatura" TEXT,
    "CodigoProduto" TEXT,
    "Descricao" TEXT,
    "Quantidade" BIGINT,
    "DataFatura" TIMESTAMP NOT NULL,
    "PrecoUnitario" NUMERIC(10,2),
    "IDCliente" TEXT,
    "Pais" TEXT,
    "CategoriaProduto" TEXT,
    "CategoriaPreco" TEXT,
    "ValorTotalFatura" NUMERIC(10,2),
    "FaturaUnica" BOOLEAN,
    "Ano" BIGINT,
    "Mes" BIGINT,
    "Dia" BIGINT,
    "DiaSemana" BIGINT
);

CREATE INDEX IF NOT EXISTS idx_transactions_sample_data_fatura ON transactions_sample("DataFatura");
CREATE INDEX IF NOT EXISTS idx_transactions_sample_pais ON transactions_sample("Pais", "DataFatura");
CREATE INDEX IF NOT EXISTS idx_transactions_sample_categoria ON transactions_sample("CategoriaProduto", "DataFatura");
`

// AllSchemas returns every schema statement block to apply at startup.
func AllSchemas() []string {
	return []string{schemaTransactions}
}
