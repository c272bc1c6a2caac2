// feectl — консольная утилита оператора платформы. Логинится в API,
// держит токен свежим через клиентский менеджер и раз в минуту печатает
// оставшееся время жизни токена.
package main

import (
	"bytes"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/magabrotheeeer/school-fees-platform/internal/clientauth"
	"github.com/magabrotheeeer/school-fees-platform/internal/config"
)

type loginResponse struct {
	Status string `json:"status"`
	Error  string `json:"error"`
	Data   struct {
		Token string `json:"token"`
		Role  string `json:"role"`
	} `json:"data"`
}

func login(apiAddress, username, password string) (string, error) {
	body, err := json.Marshal(map[string]string{
		"username": username,
		"password": password,
	})
	if err != nil {
		return "", err
	}

	resp, err := http.Post(
		strings.TrimRight(apiAddress, "/")+"/api/v1/login",
		"application/json",
		bytes.NewReader(body),
	)
	if err != nil {
		return "", err
	}
	defer func() { _ = resp.Body.Close() }()

	var parsed loginResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", err
	}
	if resp.StatusCode != http.StatusOK || parsed.Data.Token == "" {
		return "", fmt.Errorf("login failed: %s", parsed.Error)
	}
	return parsed.Data.Token, nil
}

func main() {
	username := flag.String("username", "", "имя пользователя платформы")
	password := flag.String("password", "", "пароль пользователя")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	cfg := config.MustLoad()

	if *username == "" || *password == "" {
		fmt.Fprintln(os.Stderr, "usage: feectl -username <name> -password <pass>")
		os.Exit(2)
	}

	token, err := login(cfg.APIAddress, *username, *password)
	if err != nil {
		logger.Error("login failed", slog.Any("err", err))
		os.Exit(1)
	}
	logger.Info("logged in", slog.String("username", *username))

	store := clientauth.NewMemoryStore()
	store.SetToken(token)

	manager, err := clientauth.New(cfg.TokenManager, cfg.Env, store, func() {
		logger.Info("session expired, please log in again")
	}, logger)
	if err != nil {
		logger.Error("failed to build token manager", slog.Any("err", err))
		os.Exit(1)
	}
	manager.Subscribe(func() {
		logger.Info("auth state changed")
	})

	manager.Start()
	defer manager.Stop()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info("feectl stopped")
			return
		case <-ticker.C:
			manager.RefreshOnActivity(ctx)
			if remaining, ok := manager.TokenTimeRemaining(); ok {
				logger.Info("token status", slog.Duration("remaining", remaining))
			} else {
				logger.Info("no valid token")
			}
		}
	}
}
