package ws

import (
	"log"
	"net/http"
	"sync"

	"foodhub/repository"
	"foodhub/utils"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

// OrderHub pushes order status changes to subscribed clients, one
// subscription per order id.
type OrderHub struct {
	clients    map[uint]map[*websocket.Conn]bool // orderID -> set of clients
	broadcast  chan StatusUpdate
	register   chan Subscription
	unregister chan Subscription
	mu         sync.Mutex

	orderRepo *repository.OrderRepository
}

type Subscription struct {
	Conn    *websocket.Conn
	OrderID uint
	UserID  uint
}

type StatusUpdate struct {
	OrderID uint   `json:"orderId"`
	Status  string `json:"status"`
}

func NewOrderHub(orderRepo *repository.OrderRepository) *OrderHub {
	return &OrderHub{
		clients:    make(map[uint]map[*websocket.Conn]bool),
		broadcast:  make(chan StatusUpdate, 64),
		register:   make(chan Subscription),
		unregister: make(chan Subscription),
		orderRepo:  orderRepo,
	}
}

// OrderStatusChanged implements the services notifier contract. Must not
// block the request path; drops the update if the hub is saturated.
func (h *OrderHub) OrderStatusChanged(orderID uint, status string) {
	select {
	case h.broadcast <- StatusUpdate{OrderID: orderID, Status: status}:
	default:
		log.Printf("ws: dropped status update for order %d", orderID)
	}
}

func (h *OrderHub) Run() {
	for {
		select {
		case sub := <-h.register:
			h.mu.Lock()
			if h.clients[sub.OrderID] == nil {
				h.clients[sub.OrderID] = make(map[*websocket.Conn]bool)
			}
			h.clients[sub.OrderID][sub.Conn] = true
			h.mu.Unlock()

		case sub := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[sub.OrderID][sub.Conn]; ok {
				delete(h.clients[sub.OrderID], sub.Conn)
				sub.Conn.Close()
			}
			h.mu.Unlock()

		case upd := <-h.broadcast:
			h.mu.Lock()
			for conn := range h.clients[upd.OrderID] {
				if err := conn.WriteJSON(upd); err != nil {
					log.Printf("ws write error: %v", err)
					conn.Close()
					delete(h.clients[upd.OrderID], conn)
				}
			}
			h.mu.Unlock()
		}
	}
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// WS route: /ws/orders/:id
func (h *OrderHub) HandleWebSocket(c *gin.Context) {
	orderID := utils.ParamUint(c, "id")
	userID := utils.CurrentUserID(c)
	role := utils.CurrentRole(c)

	// customers may only watch their own orders
	if role != "admin" {
		if _, err := h.orderRepo.GetOrderForUser(userID, orderID); err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
			return
		}
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("ws upgrade error: %v", err)
		return
	}

	// send the current status before registering: once registered, the
	// hub's Run loop owns writes to this conn
	if o, err := h.orderRepo.GetOrder(orderID); err == nil {
		if name, err := h.orderRepo.GetStatusNameByID(o.OrderStatusID); err == nil {
			conn.WriteJSON(StatusUpdate{OrderID: orderID, Status: name})
		}
	}

	sub := Subscription{Conn: conn, OrderID: orderID, UserID: userID}
	h.register <- sub

	go func() {
		defer func() { h.unregister <- sub }()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}
