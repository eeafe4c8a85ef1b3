package schema

import "github.com/hamba/avro/v2"

const CartEventSchemaTextV1 = `{
	"type": "record",
	"namespace": "storefront",
	"name": "cart_event",
	"fields": [
		{"name": "event_id", "type": "string"},
		{"name": "session_id", "type": "string"},
		{"name": "customer_id", "type": "string"},
		{"name": "kind", "type": "string"},
		{"name": "product_id", "type": "string"},
		{"name": "variant", "type": "string"},
		{"name": "quantity", "type": "long"},
		{"name": "unit_price", "type": "double"},
		{"name": "total_price", "type": "double"},
		{"name": "occurred_at", "type": "long"}
	]
}`

// A CartEventV1 is the wire shape of one cart activity event.
// OccurredAt is unix milliseconds.
type CartEventV1 struct {
	EventID    string  `avro:"event_id"`
	SessionID  string  `avro:"session_id"`
	CustomerID string  `avro:"customer_id"`
	Kind       string  `avro:"kind"`
	ProductID  string  `avro:"product_id"`
	Variant    string  `avro:"variant"`
	Quantity   int64   `avro:"quantity"`
	UnitPrice  float64 `avro:"unit_price"`
	TotalPrice float64 `avro:"total_price"`
	OccurredAt int64   `avro:"occurred_at"`
}

func CartEventV1Avro() avro.Schema {
	return avro.MustParse(CartEventSchemaTextV1)
}
