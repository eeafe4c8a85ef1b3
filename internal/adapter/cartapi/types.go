package cartapi

import "encoding/json"

// The remote service answers every call with a tagged envelope;
// payloads are never trusted beyond this boundary.
type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

type (
	cartItem struct {
		ItemID    string  `json:"item_id"`
		ProductID string  `json:"product_id"`
		Variant   string  `json:"variant"`
		Quantity  int     `json:"quantity"`
		UnitPrice float64 `json:"unit_price"`
	}

	cartData struct {
		Items []cartItem `json:"items"`
	}

	addRequest struct {
		ProductID string  `json:"product_id"`
		Variant   string  `json:"variant"`
		Quantity  int     `json:"quantity"`
		UnitPrice float64 `json:"unit_price"`
	}

	updateRequest struct {
		ItemID   string `json:"item_id"`
		Quantity int    `json:"quantity"`
	}

	wishlistRequest struct {
		ProductID string `json:"product_id"`
	}
)
