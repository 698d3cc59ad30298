package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"math/rand"
	"net/http"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/SergeyBogomolovv/shop-service/internal/config"
	"github.com/SergeyBogomolovv/shop-service/internal/entities"
	"github.com/SergeyBogomolovv/shop-service/internal/handler"
	"github.com/SergeyBogomolovv/shop-service/internal/middleware"
	"github.com/joho/godotenv"
)

const (
	baseURL  = "http://localhost:8080"
	users    = 20
	tokenTTL = time.Hour
)

var productIDs = []string{"P1", "P2", "P3", "P4", "P5"}

type client struct {
	http   *http.Client
	tokens []string
}

func main() {
	godotenv.Load()
	conf := config.New()

	c := &client{http: &http.Client{Timeout: 5 * time.Second}}
	for i := range users {
		token, err := middleware.SignToken([]byte(conf.Auth.JWTSecret), entities.Principal{
			ID:   fmt.Sprintf("loadgen-user-%d", i),
			Role: entities.RoleUser,
		}, tokenTTL)
		if err != nil {
			log.Fatalln("failed to sign token:", err)
		}
		c.tokens = append(c.tokens, token)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	for ctx.Err() == nil {
		var wg sync.WaitGroup
		for range rand.Intn(10) {
			wg.Go(func() { c.doRequest(ctx) })
		}
		wg.Wait()
		time.Sleep(20 * time.Millisecond)
	}
}

func (c *client) doRequest(ctx context.Context) {
	token := c.tokens[rand.Intn(len(c.tokens))]
	productID := productIDs[rand.Intn(len(productIDs))]

	switch rand.Intn(6) {
	case 0:
		c.send(ctx, token, http.MethodPost, "/orders", handler.CreateOrderRequest{
			Products: []handler.OrderItemRequest{{ProductID: productID, Quantity: 1}},
		})
	case 1:
		c.send(ctx, token, http.MethodDelete, "/cart/items/"+productID, nil)
	case 2:
		c.send(ctx, token, http.MethodGet, "/orders", nil)
	case 3, 4:
		c.send(ctx, token, http.MethodPost, "/cart/items", handler.AddItemRequest{
			ProductID: productID,
			Quantity:  rand.Intn(3) + 1,
		})
	default:
		c.send(ctx, token, http.MethodGet, "/cart", nil)
	}
}

func (c *client) send(ctx context.Context, token, method, path string, body any) {
	var buf bytes.Buffer
	if body != nil {
		json.NewEncoder(&buf).Encode(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, baseURL+path, &buf)
	if err != nil {
		log.Println("failed to build request:", err)
		return
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		log.Println("request failed:", err)
		return
	}
	defer resp.Body.Close()
	log.Println(method, path, "->", resp.Status)
}
