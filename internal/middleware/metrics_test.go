package middleware

import (
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
)

func TestMetricsCountsRequests(t *testing.T) {
	app := fiber.New()
	app.Use(Metrics())
	app.Get("/balance", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"balance": 0})
	})
	app.Get("/metrics", MetricsHandler())

	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/balance", nil))
	if err != nil {
		t.Fatalf("balance request: %v", err)
	}
	resp.Body.Close()

	scrape, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/metrics", nil))
	if err != nil {
		t.Fatalf("metrics request: %v", err)
	}
	defer scrape.Body.Close()

	if scrape.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200 from /metrics, got %d", scrape.StatusCode)
	}

	body, err := io.ReadAll(scrape.Body)
	if err != nil {
		t.Fatalf("read metrics body: %v", err)
	}

	if !strings.Contains(string(body), `finbook_http_requests_total{method="GET",status="200"}`) {
		t.Fatalf("expected request counter in scrape output, got:\n%s", body)
	}
}

func TestMetricsRecordsErrorStatus(t *testing.T) {
	app := fiber.New()
	app.Use(Metrics())
	app.Get("/missing", func(c *fiber.Ctx) error {
		return fiber.NewError(fiber.StatusNotFound, "statement not found")
	})
	app.Get("/metrics", MetricsHandler())

	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/missing", nil))
	if err != nil {
		t.Fatalf("missing request: %v", err)
	}
	resp.Body.Close()

	scrape, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/metrics", nil))
	if err != nil {
		t.Fatalf("metrics request: %v", err)
	}
	defer scrape.Body.Close()

	body, err := io.ReadAll(scrape.Body)
	if err != nil {
		t.Fatalf("read metrics body: %v", err)
	}

	if !strings.Contains(string(body), `finbook_http_requests_total{method="GET",status="404"}`) {
		t.Fatalf("expected 404 counter in scrape output, got:\n%s", body)
	}
}
