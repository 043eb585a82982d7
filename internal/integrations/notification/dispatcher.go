package notification

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"
)

const (
	defaultQueueSize   = 256
	defaultSendTimeout = 5 * time.Second
)

// Dispatcher асинхронный диспетчер уведомлений.
// Уведомления ставятся в буферизованную очередь и отправляются фоновым
// воркером во внешний сервис. Доставка best-effort: ошибки отправки и
// переполнение очереди логируются, но никогда не влияют на основную операцию
type Dispatcher struct {
	baseURL    string
	httpClient *http.Client
	logger     Logger

	queue  chan Notification
	stopCh chan struct{}
	wg     sync.WaitGroup
}

// NewDispatcher создает диспетчер и запускает фоновый воркер отправки
func NewDispatcher(baseURL string, logger Logger) *Dispatcher {
	d := &Dispatcher{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: defaultSendTimeout},
		logger:     logger,
		queue:      make(chan Notification, defaultQueueSize),
		stopCh:     make(chan struct{}),
	}

	d.wg.Add(1)
	go d.worker()

	return d
}

// Dispatch ставит уведомление в очередь отправки.
// При переполненной очереди уведомление отбрасывается
func (d *Dispatcher) Dispatch(n Notification) {
	select {
	case d.queue <- n:
	default:
		d.logger.Warn("notification queue full, dropping notification for user %s: %s", n.UserID, n.Title)
	}
}

// Stop останавливает воркер, дожидаясь отправки уже поставленных уведомлений
func (d *Dispatcher) Stop() {
	close(d.stopCh)
	d.wg.Wait()
}

func (d *Dispatcher) worker() {
	defer d.wg.Done()

	for {
		select {
		case n := <-d.queue:
			d.send(n)
		case <-d.stopCh:
			// Добираем хвост очереди перед выходом
			for {
				select {
				case n := <-d.queue:
					d.send(n)
				default:
					return
				}
			}
		}
	}
}

func (d *Dispatcher) send(n Notification) {
	ctx, cancel := context.WithTimeout(context.Background(), defaultSendTimeout)
	defer cancel()

	body, err := json.Marshal(n)
	if err != nil {
		d.logger.Error("failed to marshal notification for user %s: %v", n.UserID, err)
		return
	}

	url := fmt.Sprintf("%s/api/notifications", d.baseURL)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		d.logger.Error("failed to build notification request: %v", err)
		return
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := d.httpClient.Do(req)
	if err != nil {
		d.logger.Warn("failed to send notification to user %s: %v", n.UserID, err)
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		d.logger.Warn("notification service returned status %d for user %s", resp.StatusCode, n.UserID)
		return
	}

	d.logger.Debug("notification delivered to user %s: %s", n.UserID, n.Title)
}
