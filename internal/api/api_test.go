package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/retail-insights/transactions-api/internal/domain"
	"github.com/retail-insights/transactions-api/internal/repository"
)

func createTestServer(t *testing.T, rateCfg domain.RateLimitConfig) (*Server, *repository.SQLRepository) {
	t.Helper()

	tmpFile, err := os.CreateTemp("", "api-test-*.db")
	if err != nil {
		t.Fatalf("failed to create temp file: %v", err)
	}
	tmpPath := tmpFile.Name()
	tmpFile.Close()
	t.Cleanup(func() { os.Remove(tmpPath) })

	repo, err := repository.New(domain.RepositoryConfig{
		Driver:         "sqlite",
		SQLitePath:     tmpPath,
		PoolSize:       5,
		PoolOverflow:   10,
		AcquireTimeout: 30 * time.Second,
	})
	if err != nil {
		t.Fatalf("failed to create repository: %v", err)
	}
	t.Cleanup(func() { repo.Close() })

	cfg := domain.ServerConfig{
		Host:         "localhost",
		Port:         8080,
		ReadTimeout:  30,
		WriteTimeout: 30,
	}
	return NewServer(cfg, rateCfg, repo, "test-v1"), repo
}

func seedTestData(t *testing.T, repo *repository.SQLRepository) {
	t.Helper()
	ctx := context.Background()

	c1, c2 := "C1", "C2"
	papelaria, cozinha := "Papelaria", "Cozinha"

	rows := []*domain.Transaction{
		{
			ID: 1, NumeroFatura: "536365", CodigoProduto: "85123A", Descricao: "WHITE HANGING HEART",
			Quantidade: 2, DataFatura: time.Date(2011, 3, 1, 10, 0, 0, 0, time.UTC),
			PrecoUnitario: decimal.RequireFromString("10.00"), IDCliente: &c1,
			Pais: "United Kingdom", CategoriaProduto: &papelaria, CategoriaPreco: "Medio",
			ValorTotalFatura: decimal.RequireFromString("10.00"),
			Ano:              2011, Mes: 3, Dia: 1, DiaSemana: 2,
		},
		{
			ID: 2, NumeroFatura: "536366", CodigoProduto: "71053", Descricao: "WHITE METAL LANTERN",
			Quantidade: 3, DataFatura: time.Date(2011, 3, 2, 9, 0, 0, 0, time.UTC),
			PrecoUnitario: decimal.RequireFromString("20.00"), IDCliente: &c2,
			Pais: "United Kingdom", CategoriaProduto: &papelaria, CategoriaPreco: "Alto",
			ValorTotalFatura: decimal.RequireFromString("20.00"), FaturaUnica: true,
			Ano:              2011, Mes: 3, Dia: 2, DiaSemana: 3,
		},
		{
			ID: 3, NumeroFatura: "536367", CodigoProduto: "84406B", Descricao: "CREAM CUPID HEARTS",
			Quantidade: 1, DataFatura: time.Date(2011, 3, 3, 18, 0, 0, 0, time.UTC),
			PrecoUnitario: decimal.RequireFromString("30.00"),
			Pais:          "Germany", CategoriaProduto: &cozinha, CategoriaPreco: "Alto",
			ValorTotalFatura: decimal.RequireFromString("30.00"), FaturaUnica: true,
			Ano:              2011, Mes: 3, Dia: 3, DiaSemana: 4,
		},
	}
	for _, tx := range rows {
		if err := repo.InsertTransaction(ctx, tx); err != nil {
			t.Fatalf("seed failed: %v", err)
		}
	}
}

func doGet(t *testing.T, server *Server, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rr := httptest.NewRecorder()
	server.Router().ServeHTTP(rr, req)
	return rr
}

func TestListTransactionsEndpoint(t *testing.T) {
	server, repo := createTestServer(t, domain.RateLimitConfig{})
	seedTestData(t, repo)

	t.Run("ListAll", func(t *testing.T) {
		rr := doGet(t, server, "/api/v1/transactions/")
		if rr.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rr.Code, rr.Body.String())
		}

		var transactions []domain.Transaction
		if err := json.Unmarshal(rr.Body.Bytes(), &transactions); err != nil {
			t.Fatalf("failed to parse response: %v", err)
		}
		if len(transactions) != 3 {
			t.Fatalf("expected 3 transactions, got %d", len(transactions))
		}
		if transactions[0].NumeroFatura != "536365" {
			t.Errorf("expected NumeroFatura 536365, got %s", transactions[0].NumeroFatura)
		}
	})

	t.Run("StableFieldNames", func(t *testing.T) {
		rr := doGet(t, server, "/api/v1/transactions/?limit=1")

		var raw []map[string]json.RawMessage
		if err := json.Unmarshal(rr.Body.Bytes(), &raw); err != nil {
			t.Fatalf("failed to parse response: %v", err)
		}
		record := raw[0]
		for _, field := range []string{
			"id", "created_at", "NumeroFatura", "CodigoProduto", "Descricao",
			"Quantidade", "DataFatura", "PrecoUnitario", "IDCliente", "Pais",
			"CategoriaProduto", "CategoriaPreco", "ValorTotalFatura",
			"FaturaUnica", "Ano", "Mes", "Dia", "DiaSemana",
		} {
			if _, ok := record[field]; !ok {
				t.Errorf("missing field %q in transaction record", field)
			}
		}
	})

	t.Run("CountryFilter", func(t *testing.T) {
		rr := doGet(t, server, "/api/v1/transactions/?pais=Germany")
		if rr.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rr.Code)
		}
		var transactions []domain.Transaction
		json.Unmarshal(rr.Body.Bytes(), &transactions)
		if len(transactions) != 1 || transactions[0].Pais != "Germany" {
			t.Errorf("expected 1 German transaction, got %d", len(transactions))
		}
	})

	t.Run("Pagination", func(t *testing.T) {
		rr := doGet(t, server, "/api/v1/transactions/?skip=1&limit=1")
		var transactions []domain.Transaction
		json.Unmarshal(rr.Body.Bytes(), &transactions)
		if len(transactions) != 1 || transactions[0].ID != 2 {
			t.Errorf("expected page [2], got %d rows", len(transactions))
		}
	})

	t.Run("NoMatchesIs404", func(t *testing.T) {
		rr := doGet(t, server, "/api/v1/transactions/?pais=Brazil")
		if rr.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rr.Code)
		}
		var body map[string]string
		json.Unmarshal(rr.Body.Bytes(), &body)
		if body["detail"] == "" {
			t.Error("expected a detail message in 404 body")
		}
	})

	t.Run("InvertedRangeIs400", func(t *testing.T) {
		rr := doGet(t, server, "/api/v1/transactions/?data_inicio=2011-06-01&data_fim=2011-05-01")
		if rr.Code != http.StatusBadRequest {
			t.Errorf("expected 400, got %d", rr.Code)
		}
	})

	t.Run("OutOfWindowIs400", func(t *testing.T) {
		for _, path := range []string{
			"/api/v1/transactions/?data_inicio=2010-12-31",
			"/api/v1/transactions/?data_fim=2012-01-01",
			"/api/v1/transactions/?data_inicio=2011-01-03",
		} {
			if rr := doGet(t, server, path); rr.Code != http.StatusBadRequest {
				t.Errorf("%s: expected 400, got %d", path, rr.Code)
			}
		}
	})

	t.Run("BadPaginationIs400", func(t *testing.T) {
		for _, path := range []string{
			"/api/v1/transactions/?limit=0",
			"/api/v1/transactions/?limit=1001",
			"/api/v1/transactions/?limit=abc",
			"/api/v1/transactions/?skip=-1",
		} {
			if rr := doGet(t, server, path); rr.Code != http.StatusBadRequest {
				t.Errorf("%s: expected 400, got %d", path, rr.Code)
			}
		}
	})

	t.Run("MalformedDateIs400", func(t *testing.T) {
		rr := doGet(t, server, "/api/v1/transactions/?data_inicio=01-03-2011")
		if rr.Code != http.StatusBadRequest {
			t.Errorf("expected 400, got %d", rr.Code)
		}
	})
}

func TestSummaryEndpoint(t *testing.T) {
	server, repo := createTestServer(t, domain.RateLimitConfig{})
	seedTestData(t, repo)

	t.Run("Aggregates", func(t *testing.T) {
		rr := doGet(t, server, "/api/v1/transactions/summary")
		if rr.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rr.Code, rr.Body.String())
		}

		var s domain.Summary
		if err := json.Unmarshal(rr.Body.Bytes(), &s); err != nil {
			t.Fatalf("failed to parse response: %v", err)
		}
		if s.TotalTransactions != 3 {
			t.Errorf("expected 3 transactions, got %d", s.TotalTransactions)
		}
		if !s.TotalValue.Equal(decimal.RequireFromString("60.00")) {
			t.Errorf("expected total value 60.00, got %s", s.TotalValue)
		}
		if s.UniqueCustomers != 2 {
			t.Errorf("expected 2 unique customers, got %d", s.UniqueCustomers)
		}
		if !s.AverageUnitPrice.Equal(decimal.RequireFromString("20")) {
			t.Errorf("expected average unit price 20, got %s", s.AverageUnitPrice)
		}
	})

	t.Run("EmptyRangeIs404", func(t *testing.T) {
		rr := doGet(t, server, "/api/v1/transactions/summary?data_inicio=2011-05-01&data_fim=2011-05-02")
		if rr.Code != http.StatusNotFound {
			t.Errorf("expected 404, got %d", rr.Code)
		}
	})

	t.Run("InvertedRangeIs400", func(t *testing.T) {
		rr := doGet(t, server, "/api/v1/transactions/summary?data_inicio=2011-06-01&data_fim=2011-05-01")
		if rr.Code != http.StatusBadRequest {
			t.Errorf("expected 400, got %d", rr.Code)
		}
	})
}

func TestGroupedSummaryEndpoints(t *testing.T) {
	server, repo := createTestServer(t, domain.RateLimitConfig{})
	seedTestData(t, repo)

	t.Run("ByCategory", func(t *testing.T) {
		rr := doGet(t, server, "/api/v1/transactions/by-category")
		if rr.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rr.Code, rr.Body.String())
		}

		var summaries []domain.CategorySummary
		if err := json.Unmarshal(rr.Body.Bytes(), &summaries); err != nil {
			t.Fatalf("failed to parse response: %v", err)
		}
		if len(summaries) != 2 {
			t.Fatalf("expected 2 groups, got %d", len(summaries))
		}
		papelaria := summaries[1]
		if papelaria.Categoria == nil || *papelaria.Categoria != "Papelaria" {
			t.Fatalf("expected Papelaria second, got %v", papelaria.Categoria)
		}
		if !papelaria.TicketMedio.Equal(decimal.RequireFromString("15.00")) {
			t.Errorf("expected average ticket 15.00, got %s", papelaria.TicketMedio)
		}
	})

	t.Run("ByCategoryEmptyRangeIsEmptyList", func(t *testing.T) {
		rr := doGet(t, server, "/api/v1/transactions/by-category?data_inicio=2011-05-01&data_fim=2011-05-02")
		if rr.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rr.Code)
		}
		var summaries []domain.CategorySummary
		json.Unmarshal(rr.Body.Bytes(), &summaries)
		if len(summaries) != 0 {
			t.Errorf("expected empty list, got %d groups", len(summaries))
		}
	})

	t.Run("ByCountry", func(t *testing.T) {
		rr := doGet(t, server, "/api/v1/transactions/by-country")
		if rr.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rr.Code, rr.Body.String())
		}

		var summaries []domain.CountrySummary
		if err := json.Unmarshal(rr.Body.Bytes(), &summaries); err != nil {
			t.Fatalf("failed to parse response: %v", err)
		}
		if len(summaries) != 2 {
			t.Fatalf("expected 2 groups, got %d", len(summaries))
		}
		if summaries[0].Pais != "Germany" || summaries[1].Pais != "United Kingdom" {
			t.Errorf("unexpected order: %s, %s", summaries[0].Pais, summaries[1].Pais)
		}
		if summaries[0].QuantidadeClientes != 0 {
			t.Errorf("expected 0 customers for Germany (null id), got %d", summaries[0].QuantidadeClientes)
		}
	})

	t.Run("ByCountryInvertedRangeIs400", func(t *testing.T) {
		rr := doGet(t, server, "/api/v1/transactions/by-country?data_inicio=2011-06-01&data_fim=2011-05-01")
		if rr.Code != http.StatusBadRequest {
			t.Errorf("expected 400, got %d", rr.Code)
		}
	})
}

func TestHealthAndMetadataEndpoints(t *testing.T) {
	server, repo := createTestServer(t, domain.RateLimitConfig{})

	t.Run("Root", func(t *testing.T) {
		rr := doGet(t, server, "/")
		if rr.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rr.Code)
		}
		var body map[string]string
		json.Unmarshal(rr.Body.Bytes(), &body)
		if body["message"] == "" || body["version"] != "test-v1" {
			t.Errorf("unexpected metadata: %v", body)
		}
	})

	t.Run("HealthV1Timestamp", func(t *testing.T) {
		rr := doGet(t, server, "/api/v1/health")
		if rr.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rr.Code)
		}
		var body map[string]string
		json.Unmarshal(rr.Body.Bytes(), &body)
		if body["status"] != "healthy" {
			t.Errorf("expected healthy, got %q", body["status"])
		}
		if _, err := time.Parse(time.RFC3339, body["timestamp"]); err != nil {
			t.Errorf("timestamp %q is not RFC3339: %v", body["timestamp"], err)
		}
	})

	t.Run("HealthDatabaseConnected", func(t *testing.T) {
		rr := doGet(t, server, "/health")
		if rr.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rr.Code)
		}
		var body map[string]string
		json.Unmarshal(rr.Body.Bytes(), &body)
		if body["database"] != "connected" || body["go_version"] == "" {
			t.Errorf("unexpected health body: %v", body)
		}
	})

	t.Run("HealthUnavailableWhenDatabaseDown", func(t *testing.T) {
		repo.Close()

		rr := doGet(t, server, "/health")
		if rr.Code != http.StatusServiceUnavailable {
			t.Fatalf("expected 503, got %d", rr.Code)
		}
		var body map[string]map[string]string
		json.Unmarshal(rr.Body.Bytes(), &body)
		if body["detail"]["status"] != "unhealthy" || body["detail"]["error"] == "" {
			t.Errorf("expected unhealthy detail with error, got %v", body)
		}
	})
}

func TestRateLimiting(t *testing.T) {
	server, _ := createTestServer(t, domain.RateLimitConfig{
		Enabled: true,
		RPS:     1,
		Burst:   1,
	})

	first := doGet(t, server, "/")
	if first.Code != http.StatusOK {
		t.Fatalf("expected first request to pass, got %d", first.Code)
	}

	second := doGet(t, server, "/")
	if second.Code != http.StatusTooManyRequests {
		t.Errorf("expected 429 after burst, got %d", second.Code)
	}
}
