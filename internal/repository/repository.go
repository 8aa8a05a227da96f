// Package repository provides the SQL-backed query and aggregation layer.
package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/retail-insights/transactions-api/internal/domain"
)

// transactionColumns is the select list for full transaction records,
// in scan order.
const transactionColumns = `id, created_at, "NumeroFatura", "CodigoProduto", "Descricao",
	"Quantidade", "DataFatura", "PrecoUnitario", "IDCliente", "Pais",
	"CategoriaProduto", "CategoriaPreco", "ValorTotalFatura", "FaturaUnica",
	"Ano", "Mes", "Dia", "DiaSemana"`

// SQLRepository implements domain.Repository using database/sql.
// Works with both the SQLite and PostgreSQL drivers.
type SQLRepository struct {
	db             *sql.DB
	driver         string
	acquireTimeout time.Duration
}

// New creates a repository from configuration, applies pool settings and
// materializes the schema. Any failure here is fatal for the process.
func New(cfg domain.RepositoryConfig) (*SQLRepository, error) {
	var db *sql.DB
	var err error

	switch cfg.Driver {
	case "sqlite":
		db, err = openSQLite(cfg)
	case "postgres":
		db, err = openPostgres(cfg)
	default:
		return nil, fmt.Errorf("unsupported driver: %s", cfg.Driver)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(cfg.MaxOpenConns())
	db.SetMaxIdleConns(cfg.PoolSize)
	if cfg.ConnMaxLifetime > 0 {
		db.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	}

	repo := &SQLRepository{
		db:             db,
		driver:         cfg.Driver,
		acquireTimeout: cfg.AcquireTimeout,
	}
	if repo.acquireTimeout <= 0 {
		repo.acquireTimeout = 30 * time.Second
	}

	if err := repo.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to materialize schema: %w", err)
	}

	return repo, nil
}

func (r *SQLRepository) migrate() error {
	for _, schema := range AllSchemas() {
		if _, err := r.db.Exec(schema); err != nil {
			return err
		}
	}
	return nil
}

// acquire checks out a dedicated pooled connection under the checkout
// timeout. The returned context bounds the whole operation; the caller
// must close the connection and cancel on every exit path.
func (r *SQLRepository) acquire(ctx context.Context) (*sql.Conn, context.Context, context.CancelFunc, error) {
	ctx, cancel := context.WithTimeout(ctx, r.acquireTimeout)
	conn, err := r.db.Conn(ctx)
	if err != nil {
		cancel()
		return nil, nil, nil, fmt.Errorf("connection checkout: %w", err)
	}
	return conn, ctx, cancel, nil
}

// ListTransactions returns the filtered, insertion-ordered page of
// transactions. An empty page is domain.ErrNotFound.
func (r *SQLRepository) ListTransactions(ctx context.Context, q domain.ListQuery) ([]*domain.Transaction, error) {
	if err := q.Validate(); err != nil {
		return nil, err
	}

	conn, ctx, cancel, err := r.acquire(ctx)
	if err != nil {
		return nil, err
	}
	defer cancel()
	defer conn.Close()

	where, args := buildWhere(listPredicates(q))
	query := "SELECT " + transactionColumns + " FROM transactions_sample" +
		where + " ORDER BY id LIMIT ? OFFSET ?"
	args = append(args, q.Limit, q.Skip)

	rows, err := conn.QueryContext(ctx, rebind(r.driver, query), args...)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	defer rows.Close()

	var transactions []*domain.Transaction
	for rows.Next() {
		tx, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("list transactions: %w", err)
		}
		transactions = append(transactions, tx)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}

	if len(transactions) == 0 {
		return nil, domain.ErrNotFound
	}
	return transactions, nil
}

// Summary computes the aggregate record over the date range. Sum and
// average come back null over zero rows; they are mapped to literal
// zeros here rather than propagated into the response contract.
func (r *SQLRepository) Summary(ctx context.Context, dr domain.DateRange) (*domain.Summary, error) {
	if err := dr.Validate(); err != nil {
		return nil, err
	}

	conn, ctx, cancel, err := r.acquire(ctx)
	if err != nil {
		return nil, err
	}
	defer cancel()
	defer conn.Close()

	where, args := buildWhere(rangePredicates(dr))
	query := `SELECT COUNT(id), SUM("ValorTotalFatura"), COUNT(DISTINCT "IDCliente"),
		SUM("Quantidade"), AVG("PrecoUnitario"), COUNT(DISTINCT "Pais"),
		COUNT(DISTINCT "CategoriaProduto") FROM transactions_sample` + where

	var (
		s             domain.Summary
		totalValue    decimal.NullDecimal
		totalQuantity sql.NullInt64
		avgUnitPrice  decimal.NullDecimal
	)
	err = conn.QueryRowContext(ctx, rebind(r.driver, query), args...).Scan(
		&s.TotalTransactions, &totalValue, &s.UniqueCustomers,
		&totalQuantity, &avgUnitPrice, &s.UniqueCountries, &s.UniqueCategories,
	)
	if err != nil {
		return nil, fmt.Errorf("summarize transactions: %w", err)
	}

	if s.TotalTransactions == 0 {
		return nil, domain.ErrNotFound
	}

	s.TotalValue = totalValue.Decimal
	s.TotalQuantity = totalQuantity.Int64
	s.AverageUnitPrice = avgUnitPrice.Decimal
	return &s, nil
}

// SummaryByCategory computes one aggregate row per product category.
// Rows without a category form their own group. The average ticket is
// divided in decimal arithmetic, never integer truncation.
func (r *SQLRepository) SummaryByCategory(ctx context.Context, dr domain.DateRange) ([]*domain.CategorySummary, error) {
	if err := dr.Validate(); err != nil {
		return nil, err
	}

	conn, ctx, cancel, err := r.acquire(ctx)
	if err != nil {
		return nil, err
	}
	defer cancel()
	defer conn.Close()

	where, args := buildWhere(rangePredicates(dr))
	query := `SELECT "CategoriaProduto", COUNT(id), SUM("ValorTotalFatura"),
		SUM("Quantidade") FROM transactions_sample` + where +
		` GROUP BY "CategoriaProduto"
		ORDER BY SUM("ValorTotalFatura") DESC, "CategoriaProduto" ASC`

	rows, err := conn.QueryContext(ctx, rebind(r.driver, query), args...)
	if err != nil {
		return nil, fmt.Errorf("summarize by category: %w", err)
	}
	defer rows.Close()

	summaries := []*domain.CategorySummary{}
	for rows.Next() {
		var (
			cs        domain.CategorySummary
			categoria sql.NullString
			quantity  sql.NullInt64
		)
		if err := rows.Scan(&categoria, &cs.TotalVendas, &cs.ValorTotal, &quantity); err != nil {
			return nil, fmt.Errorf("summarize by category: %w", err)
		}
		if categoria.Valid {
			cs.Categoria = &categoria.String
		}
		cs.QuantidadeTotal = quantity.Int64
		cs.TicketMedio = averageTicket(cs.ValorTotal, cs.TotalVendas)
		summaries = append(summaries, &cs)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("summarize by category: %w", err)
	}

	return summaries, nil
}

// SummaryByCountry computes one aggregate row per country, with distinct
// customer counts instead of summed quantities.
func (r *SQLRepository) SummaryByCountry(ctx context.Context, dr domain.DateRange) ([]*domain.CountrySummary, error) {
	if err := dr.Validate(); err != nil {
		return nil, err
	}

	conn, ctx, cancel, err := r.acquire(ctx)
	if err != nil {
		return nil, err
	}
	defer cancel()
	defer conn.Close()

	where, args := buildWhere(rangePredicates(dr))
	query := `SELECT "Pais", COUNT(id), SUM("ValorTotalFatura"),
		COUNT(DISTINCT "IDCliente") FROM transactions_sample` + where +
		` GROUP BY "Pais"
		ORDER BY SUM("ValorTotalFatura") DESC, "Pais" ASC`

	rows, err := conn.QueryContext(ctx, rebind(r.driver, query), args...)
	if err != nil {
		return nil, fmt.Errorf("summarize by country: %w", err)
	}
	defer rows.Close()

	summaries := []*domain.CountrySummary{}
	for rows.Next() {
		var cs domain.CountrySummary
		if err := rows.Scan(&cs.Pais, &cs.TotalVendas, &cs.ValorTotal, &cs.QuantidadeClientes); err != nil {
			return nil, fmt.Errorf("summarize by country: %w", err)
		}
		cs.TicketMedio = averageTicket(cs.ValorTotal, cs.TotalVendas)
		summaries = append(summaries, &cs)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("summarize by country: %w", err)
	}

	return summaries, nil
}

// Ping verifies database reachability.
func (r *SQLRepository) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, r.acquireTimeout)
	defer cancel()
	return r.db.PingContext(ctx)
}

// Close closes the database connection pool.
func (r *SQLRepository) Close() error {
	return r.db.Close()
}

// InsertTransaction writes one row. Not part of domain.Repository: the
// HTTP surface is read-only and rows normally arrive through the external
// ingestion process. Used by fixtures and local seeding.
func (r *SQLRepository) InsertTransaction(ctx context.Context, tx *domain.Transaction) error {
	conn, ctx, cancel, err := r.acquire(ctx)
	if err != nil {
		return err
	}
	defer cancel()
	defer conn.Close()

	query := `INSERT INTO transactions_sample (` + transactionColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	_, err = conn.ExecContext(ctx, rebind(r.driver, query),
		tx.ID, tx.CreatedAt, tx.NumeroFatura, tx.CodigoProduto, tx.Descricao,
		tx.Quantidade, tx.DataFatura, tx.PrecoUnitario, tx.IDCliente, tx.Pais,
		tx.CategoriaProduto, tx.CategoriaPreco, tx.ValorTotalFatura, tx.FaturaUnica,
		tx.Ano, tx.Mes, tx.Dia, tx.DiaSemana,
	)
	if err != nil {
		return fmt.Errorf("insert transaction: %w", err)
	}
	return nil
}

// averageTicket is sum(valor_total) / count(*) for one group, in decimal
// arithmetic, rounded to 2 decimal places.
func averageTicket(total decimal.Decimal, count int64) decimal.Decimal {
	if count == 0 {
		return decimal.Zero
	}
	return total.Div(decimal.NewFromInt(count)).Round(2)
}

// scanner is satisfied by *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanTransaction(row scanner) (*domain.Transaction, error) {
	var (
		tx        domain.Transaction
		createdAt sql.NullTime
		idCliente sql.NullString
		categoria sql.NullString
	)

	err := row.Scan(
		&tx.ID, &createdAt, &tx.NumeroFatura, &tx.CodigoProduto, &tx.Descricao,
		&tx.Quantidade, &tx.DataFatura, &tx.PrecoUnitario, &idCliente, &tx.Pais,
		&categoria, &tx.CategoriaPreco, &tx.ValorTotalFatura, &tx.FaturaUnica,
		&tx.Ano, &tx.Mes, &tx.Dia, &tx.DiaSemana,
	)
	if err != nil {
		return nil, err
	}

	tx.CreatedAt = createdAt.Time
	if idCliente.Valid {
		tx.IDCliente = &idCliente.String
	}
	if categoria.Valid {
		tx.CategoriaProduto = &categoria.String
	}
	return &tx, nil
}
