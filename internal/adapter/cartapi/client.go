// Package cartapi is the HTTP client for the platform cart and
// wishlist services.
package cartapi

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/google/uuid"
	"github.com/niksmo/storefront/internal/core/domain"
	"github.com/niksmo/storefront/pkg/retry"
)

var (
	// ErrRemote marks a request the service processed and rejected.
	ErrRemote = errors.New("cart service rejected request")

	errTransient = errors.New("transient cart service error")
)

const (
	defaultTimeout     = 10 * time.Second
	defaultMaxAttempts = 3
	retryDelay         = 50 * time.Millisecond
)

type Config struct {
	BaseURL     string
	Timeout     time.Duration
	MaxAttempts int
	TLSConfig   *tls.Config
}

type Client struct {
	httpClient  *http.Client
	baseURL     string
	maxAttempts int
}

func New(config Config) (Client, error) {
	const op = "cartapi.New"

	if config.BaseURL == "" {
		return Client{}, fmt.Errorf("%s: base url is empty string", op)
	}
	if config.Timeout == 0 {
		config.Timeout = defaultTimeout
	}
	if config.MaxAttempts == 0 {
		config.MaxAttempts = defaultMaxAttempts
	}

	httpClient := &http.Client{Timeout: config.Timeout}
	if config.TLSConfig != nil {
		httpClient.Transport = &http.Transport{
			TLSClientConfig: config.TLSConfig,
		}
	}

	return Client{
		httpClient:  httpClient,
		baseURL:     config.BaseURL,
		maxAttempts: config.MaxAttempts,
	}, nil
}

// FetchCart returns the authoritative remote cart lines.
func (c Client) FetchCart(
	ctx context.Context, customerID string,
) ([]domain.LineItem, error) {
	const op = "Client.FetchCart"

	var data cartData
	err := c.call(ctx, http.MethodGet, "/cart", nil, customerID, nil, &data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	items := make([]domain.LineItem, 0, len(data.Items))
	for _, v := range data.Items {
		items = append(items, domain.LineItem{
			ProductID:    v.ProductID,
			Variant:      v.Variant,
			UnitPrice:    v.UnitPrice,
			Quantity:     v.Quantity,
			TotalPrice:   v.UnitPrice * float64(v.Quantity),
			RemoteItemID: v.ItemID,
		})
	}
	return items, nil
}

// AddItem creates the line remotely and returns the server-assigned
// item id.
func (c Client) AddItem(
	ctx context.Context, customerID string, item domain.LineItem,
) (string, error) {
	const op = "Client.AddItem"

	body := addRequest{
		ProductID: item.ProductID,
		Variant:   item.Variant,
		Quantity:  item.Quantity,
		UnitPrice: item.UnitPrice,
	}

	var created cartItem
	err := c.call(
		ctx, http.MethodPost, "/cart/add", nil, customerID, body, &created,
	)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return created.ItemID, nil
}

func (c Client) UpdateQuantity(
	ctx context.Context, customerID, itemID string, quantity int,
) error {
	const op = "Client.UpdateQuantity"

	body := updateRequest{ItemID: itemID, Quantity: quantity}
	err := c.call(
		ctx, http.MethodPost, "/cart/update", nil, customerID, body, nil,
	)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (c Client) RemoveItem(
	ctx context.Context, customerID, productID string,
) error {
	const op = "Client.RemoveItem"

	q := url.Values{"product_id": {productID}}
	err := c.call(
		ctx, http.MethodDelete, "/cart/remove", q, customerID, nil, nil,
	)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (c Client) AddWishlistItem(
	ctx context.Context, customerID, productID string,
) error {
	const op = "Client.AddWishlistItem"

	body := wishlistRequest{ProductID: productID}
	err := c.call(ctx, http.MethodPost, "/wishlist", nil, customerID, body, nil)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (c Client) RemoveWishlistItem(
	ctx context.Context, customerID, productID string,
) error {
	const op = "Client.RemoveWishlistItem"

	q := url.Values{"product_id": {productID}}
	err := c.call(ctx, http.MethodDelete, "/wishlist", q, customerID, nil, nil)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// call runs one logical request with retries on transport and 5xx
// failures. The idempotency key is fixed for all attempts of the
// same logical request.
func (c Client) call(
	ctx context.Context,
	method, path string,
	query url.Values,
	customerID string,
	body, out any,
) error {
	idempotencyKey := uuid.NewString()

	rc := retry.Config{
		MaxAttempts: c.maxAttempts,
		Backoff:     retry.ExponentialBackoff(retryDelay),
		ShouldRetry: func(err error) bool {
			return errors.Is(err, errTransient)
		},
	}

	return retry.Do(ctx, rc, func() error {
		return c.doOnce(
			ctx, method, path, query, customerID, idempotencyKey, body, out,
		)
	})
}

func (c Client) doOnce(
	ctx context.Context,
	method, path string,
	query url.Values,
	customerID, idempotencyKey string,
	body, out any,
) error {
	u := c.baseURL + path
	if len(query) != 0 {
		u += "?" + query.Encode()
	}

	var reqBody *bytes.Buffer
	if body != nil {
		reqBody = new(bytes.Buffer)
		if err := json.NewEncoder(reqBody).Encode(body); err != nil {
			return err
		}
	} else {
		reqBody = bytes.NewBuffer(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reqBody)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("X-Customer-Id", customerID)
	req.Header.Set("Idempotency-Key", idempotencyKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %w", errTransient, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusInternalServerError {
		return fmt.Errorf("%w: status %d", errTransient, resp.StatusCode)
	}

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	if !env.Success {
		return fmt.Errorf("%w: %s", ErrRemote, env.Message)
	}

	if out != nil && len(env.Data) != 0 {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return fmt.Errorf("failed to decode response data: %w", err)
		}
	}
	return nil
}
