package job

import (
	"encoding/json"
	"strconv"
	"time"

	"github.com/deppfellow/product-catalog/internal/model"
	"github.com/hibiken/asynq"
)

// ProductEvent names a change to a product. It doubles as the asynq task type.
type ProductEvent string

const (
	TaskProductCreated ProductEvent = "product:created"
	TaskProductUpdated ProductEvent = "product:updated"
	TaskProductDeleted ProductEvent = "product:deleted"
)

// Action returns the past-tense verb of the event ("created", ...).
func (e ProductEvent) Action() string {
	switch e {
	case TaskProductCreated:
		return "created"
	case TaskProductUpdated:
		return "updated"
	case TaskProductDeleted:
		return "deleted"
	}
	return string(e)
}

// ProductEventPayload is the JSON payload stored in Redis for a product event.
// Price is kept as its decimal string so no precision is lost in transit.
type ProductEventPayload struct {
	ProductID  int64     `json:"product_id"`
	Name       string    `json:"name"`
	Price      string    `json:"price"`
	Stock      int       `json:"stock"`
	OccurredAt time.Time `json:"occurred_at"`
}

// NewProductEventPayload snapshots product at the time of the event.
func NewProductEventPayload(product *model.Product, at time.Time) ProductEventPayload {
	return ProductEventPayload{
		ProductID:  product.ID,
		Name:       product.Name,
		Price:      product.Price.StringFixed(2),
		Stock:      product.Stock,
		OccurredAt: at.UTC(),
	}
}

// TemplateData flattens the payload into the variables used by the email template.
func (p ProductEventPayload) TemplateData(event ProductEvent) map[string]string {
	data := map[string]string{
		"Action":      event.Action(),
		"ProductID":   strconv.FormatInt(p.ProductID, 10),
		"ProductName": p.Name,
		"OccurredAt":  p.OccurredAt.Format(time.RFC3339),
	}
	if event != TaskProductDeleted {
		data["Price"] = p.Price
		data["Stock"] = strconv.Itoa(p.Stock)
	}
	return data
}

// NewProductEventTask constructs an asynq task for a product event.
//
// Task options:
//   - MaxRetry(3): retry up to 3 times on failure
//   - Queue("low"): notifications never compete with anything urgent
//   - Timeout(30s): kill the task if the handler runs longer than 30 seconds
func NewProductEventTask(event ProductEvent, payload ProductEventPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	return asynq.NewTask(
		string(event),
		data,
		asynq.MaxRetry(3),
		asynq.Queue("low"),
		asynq.Timeout(30*time.Second),
	), nil
}
