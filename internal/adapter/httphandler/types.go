package httphandler

type (
	Product struct {
		ProductID   string   `json:"product_id"`
		Variant     string   `json:"variant,omitempty"`
		DisplayName string   `json:"display_name"`
		ImageRef    string   `json:"image_ref"`
		Rating      float64  `json:"rating"`
		Price       float64  `json:"price"`
		Discount    Discount `json:"discount"`
	}

	Discount struct {
		Kind   string  `json:"kind"`
		Amount float64 `json:"amount"`
	}

	LineItem struct {
		ProductID   string  `json:"product_id"`
		Variant     string  `json:"variant,omitempty"`
		DisplayName string  `json:"display_name"`
		ImageRef    string  `json:"image_ref"`
		Rating      float64 `json:"rating"`
		UnitPrice   float64 `json:"unit_price"`
		Quantity    int     `json:"quantity"`
		TotalPrice  float64 `json:"total_price"`
	}

	CartView struct {
		Items []LineItem `json:"items"`
	}

	WishlistItem struct {
		ProductID   string  `json:"product_id"`
		DisplayName string  `json:"display_name"`
		ImageRef    string  `json:"image_ref"`
		Rating      float64 `json:"rating"`
		UnitPrice   float64 `json:"unit_price"`
	}

	WishlistView struct {
		Items []WishlistItem `json:"items"`
	}

	ItemKey struct {
		ProductID string `json:"product_id"`
		Variant   string `json:"variant,omitempty"`
	}

	BindCustomer struct {
		CustomerID string `json:"customer_id"`
	}

	ToggleResult struct {
		Present bool `json:"present"`
	}

	Notice struct {
		Message    string `json:"message"`
		OccurredAt int64  `json:"occurred_at"`
	}

	NoticesView struct {
		Notices []Notice `json:"notices"`
	}

	ActivityView struct {
		CustomerID string `json:"customer_id"`
		Count      int64  `json:"count"`
	}
)
