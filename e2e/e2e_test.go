//go:build e2e
// +build e2e

package e2e_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"sync"
	"testing"
	"time"

	"dealer-app-go/internal/config"
	"dealer-app-go/internal/db"
	annotationsdomain "dealer-app-go/internal/domain/annotations"
	authdomain "dealer-app-go/internal/domain/auth"
	depositsdomain "dealer-app-go/internal/domain/deposits"
	"dealer-app-go/internal/repository/inmemory"
	annotationsrepo "dealer-app-go/internal/repository/postgres/annotations"
	depositsrepo "dealer-app-go/internal/repository/postgres/deposits"
	"dealer-app-go/internal/transport/httpserver"
	"dealer-app-go/internal/transport/httpserver/handler"
	"dealer-app-go/pkg/logger"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type testEnv struct {
	server *httptest.Server
	db     *gorm.DB
	token  string
}

type owners struct {
	clientID  int64
	vehicleID int64
	dealID    int64
}

func setupE2E(t *testing.T) *testEnv {
	t.Helper()

	dsn := os.Getenv("E2E_DB_DSN")
	if dsn == "" {
		t.Skip("E2E_DB_DSN not set; skipping e2e tests")
	}

	log := logger.NewNop()
	cfg := config.Config{DB: config.DBConfig{DSN: dsn}}

	dbConn, err := db.NewPostgres(cfg.DB, log)
	if err != nil {
		t.Fatalf("db connect: %v", err)
	}
	if err := db.Migrate(context.Background(), dbConn); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	if err := cleanDB(dbConn); err != nil {
		t.Fatalf("clean db: %v", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte("secret"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	verifier, err := authdomain.NewStaticVerifier([]string{"ana:" + string(hash)})
	if err != nil {
		t.Fatalf("verifier: %v", err)
	}
	authService := authdomain.NewService(verifier, authdomain.NewTokenIssuer("e2e-secret", time.Hour))

	feeds := inmemory.NewInMemoryFeedCache()
	stores := annotationsrepo.NewPostgresStores(dbConn)
	handlers := handler.New(
		authService,
		depositsdomain.NewService(depositsrepo.NewPostgres(dbConn), feeds),
		annotationsdomain.NewService(stores, feeds),
		annotationsdomain.NewAggregator(stores, feeds, time.Minute),
		log,
	)

	router := httpserver.NewRouter(cfg, handlers, authService, nil, log)
	env := &testEnv{server: httptest.NewServer(router), db: dbConn}

	client := &http.Client{Timeout: 5 * time.Second}
	resp, body := requestJSON(t, client, http.MethodPost, env.server.URL+"/api/auth/login", "", map[string]string{
		"username": "ana",
		"password": "secret",
	})
	if resp.StatusCode != http.StatusOK {
		env.Close()
		t.Fatalf("login: expected 200, got %d: %s", resp.StatusCode, string(body))
	}
	var login struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal(body, &login); err != nil {
		env.Close()
		t.Fatalf("decode login: %v", err)
	}
	env.token = login.Token

	return env
}

func (e *testEnv) Close() {
	e.server.Close()
	sqlDB, err := e.db.DB()
	if err == nil {
		_ = sqlDB.Close()
	}
}

func (e *testEnv) seed(t *testing.T) owners {
	t.Helper()

	var o owners
	if err := e.db.Raw("INSERT INTO clients (name) VALUES (?) RETURNING id", "Lucía Romero").Scan(&o.clientID).Error; err != nil {
		t.Fatalf("seed client: %v", err)
	}
	if err := e.db.Raw("INSERT INTO vehicles (plate, brand, model) VALUES (?, ?, ?) RETURNING id", "1234ABC", "Seat", "León").Scan(&o.vehicleID).Error; err != nil {
		t.Fatalf("seed vehicle: %v", err)
	}
	if err := e.db.Raw("INSERT INTO deals (number, client_id, vehicle_id) VALUES (?, ?, ?) RETURNING id", "D-0001", o.clientID, o.vehicleID).Scan(&o.dealID).Error; err != nil {
		t.Fatalf("seed deal: %v", err)
	}
	return o
}

func cleanDB(dbConn *gorm.DB) error {
	return dbConn.WithContext(context.Background()).Exec(
		"TRUNCATE TABLE deposits, deals, vehicles, clients, investors RESTART IDENTITY CASCADE",
	).Error
}

func requestJSON(t *testing.T, client *http.Client, method, url, token string, payload interface{}) (*http.Response, []byte) {
	t.Helper()

	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			t.Fatalf("marshal payload: %v", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, url, body)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := client.Do(req)
	if err != nil {
		t.Fatalf("do request: %v", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read response: %v", err)
	}

	return resp, respBody
}

type errorEnvelope struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

type depositResponse struct {
	ID     int64  `json:"id"`
	Status string `json:"status"`
}

func TestE2EOneActiveDepositPerVehicle(t *testing.T) {
	env := setupE2E(t)
	defer env.Close()

	o := env.seed(t)
	client := &http.Client{Timeout: 10 * time.Second}

	const attempts = 10
	statuses := make([]int, attempts)
	var wg sync.WaitGroup
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			resp, _ := requestJSON(t, client, http.MethodPost, env.server.URL+"/api/deposits", env.token, map[string]interface{}{
				"client_id":  o.clientID,
				"vehicle_id": o.vehicleID,
				"status":     "ACTIVO",
			})
			statuses[i] = resp.StatusCode
		}(i)
	}
	wg.Wait()

	created, conflicts := 0, 0
	for _, status := range statuses {
		switch status {
		case http.StatusCreated:
			created++
		case http.StatusConflict:
			conflicts++
		default:
			t.Fatalf("unexpected status %d", status)
		}
	}
	if created != 1 || conflicts != attempts-1 {
		t.Fatalf("expected 1 created and %d conflicts, got %d and %d", attempts-1, created, conflicts)
	}

	var active int64
	if err := env.db.Table("deposits").Where("vehicle_id = ? AND status = ?", o.vehicleID, "ACTIVO").Count(&active).Error; err != nil {
		t.Fatalf("count active: %v", err)
	}
	if active != 1 {
		t.Fatalf("expected 1 active deposit, got %d", active)
	}

	resp, body := requestJSON(t, client, http.MethodPost, env.server.URL+"/api/deposits", env.token, map[string]interface{}{
		"client_id":  o.clientID,
		"vehicle_id": o.vehicleID,
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected draft to be accepted, got %d: %s", resp.StatusCode, string(body))
	}
	var draft depositResponse
	if err := json.Unmarshal(body, &draft); err != nil {
		t.Fatalf("decode draft: %v", err)
	}

	resp, body = requestJSON(t, client, http.MethodPatch, fmt.Sprintf("%s/api/deposits/%d", env.server.URL, draft.ID), env.token, map[string]string{
		"status": "ACTIVO",
	})
	if resp.StatusCode != http.StatusConflict {
		t.Fatalf("expected 409, got %d: %s", resp.StatusCode, string(body))
	}
	var errResp errorEnvelope
	if err := json.Unmarshal(body, &errResp); err != nil {
		t.Fatalf("decode error: %v", err)
	}
	if errResp.Error.Code != "active_deposit_exists" {
		t.Fatalf("expected active_deposit_exists, got %q", errResp.Error.Code)
	}
}

func TestE2EPendingRemindersFeed(t *testing.T) {
	env := setupE2E(t)
	defer env.Close()

	o := env.seed(t)
	client := &http.Client{Timeout: 5 * time.Second}

	reminders := []struct {
		path  string
		title string
		due   string
	}{
		{fmt.Sprintf("/api/reminders/clients/%d", o.clientID), "Llamar", "2026-03-03T10:00:00Z"},
		{fmt.Sprintf("/api/reminders/vehicles/%d", o.vehicleID), "ITV", "2026-03-01T09:00:00Z"},
		{fmt.Sprintf("/api/reminders/deals/%d", o.dealID), "Firma", "2026-03-02T12:00:00Z"},
	}
	for _, reminder := range reminders {
		resp, body := requestJSON(t, client, http.MethodPost, env.server.URL+reminder.path, env.token, map[string]string{
			"title":  reminder.title,
			"due_at": reminder.due,
		})
		if resp.StatusCode != http.StatusCreated {
			t.Fatalf("create %s: expected 201, got %d: %s", reminder.title, resp.StatusCode, string(body))
		}
	}

	resp, body := requestJSON(t, client, http.MethodGet, env.server.URL+"/api/dashboard/reminders", env.token, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", resp.StatusCode, string(body))
	}
	var feed struct {
		Items []struct {
			Kind  string `json:"kind"`
			ID    int64  `json:"id"`
			Title string `json:"title"`
			Label string `json:"label"`
		} `json:"items"`
		Total int `json:"total"`
	}
	if err := json.Unmarshal(body, &feed); err != nil {
		t.Fatalf("decode feed: %v", err)
	}
	if feed.Total != 3 {
		t.Fatalf("expected 3 pending reminders, got %d", feed.Total)
	}
	want := []string{"ITV", "Firma", "Llamar"}
	for i, title := range want {
		if feed.Items[i].Title != title {
			t.Fatalf("position %d: expected %s, got %s", i, title, feed.Items[i].Title)
		}
	}
	if feed.Items[0].Label != "Vehículo · 1234ABC Seat León" {
		t.Fatalf("unexpected label %q", feed.Items[0].Label)
	}

	first := feed.Items[0]
	completeURL := fmt.Sprintf("%s/api/dashboard/reminders/%s/%d/complete", env.server.URL, first.Kind, first.ID)
	for i := 0; i < 2; i++ {
		resp, body = requestJSON(t, client, http.MethodPost, completeURL, env.token, nil)
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("complete #%d: expected 200, got %d: %s", i+1, resp.StatusCode, string(body))
		}
	}

	resp, body = requestJSON(t, client, http.MethodGet, env.server.URL+"/api/dashboard/reminders", env.token, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", resp.StatusCode, string(body))
	}
	if err := json.Unmarshal(body, &feed); err != nil {
		t.Fatalf("decode feed: %v", err)
	}
	if feed.Total != 2 || feed.Items[0].Title != "Firma" {
		t.Fatalf("expected Firma to lead 2 pending reminders, got %+v", feed.Items)
	}
}
