// internal/api/websocket.go
package api

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/Corphon/LifePlayModStudio/internal/services"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

// WebSocket 升级器配置
var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// 单用户本地工具，放开同源检查
		return true
	},
}

// progressClient 一个订阅生成进度的 WebSocket 客户端连接
type progressClient struct {
	conn *websocket.Conn
	send chan []byte
}

// ProgressHub 管理进度订阅连接并向所有客户端广播运行进度。
// 实现 services.ProgressNotifier
type ProgressHub struct {
	clients map[*progressClient]bool
	mutex   sync.RWMutex
}

// NewProgressHub 创建进度广播中心
func NewProgressHub() *ProgressHub {
	return &ProgressHub{
		clients: make(map[*progressClient]bool),
	}
}

// NotifyProgress 把运行进度事件广播给所有已连接客户端
func (h *ProgressHub) NotifyProgress(update services.ProgressUpdate) {
	data, err := json.Marshal(update)
	if err != nil {
		log.Printf("警告: 序列化进度事件失败: %v", err)
		return
	}

	h.mutex.RLock()
	defer h.mutex.RUnlock()

	for client := range h.clients {
		select {
		case client.send <- data:
		default:
			// 慢客户端直接丢弃本条消息，不阻塞运行
		}
	}
}

// ClientCount 当前连接数（调试用）
func (h *ProgressHub) ClientCount() int {
	h.mutex.RLock()
	defer h.mutex.RUnlock()
	return len(h.clients)
}

// HandleProgress 处理 /ws/progress 连接升级
func (h *ProgressHub) HandleProgress(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("警告: WebSocket升级失败: %v", err)
		return
	}

	client := &progressClient{
		conn: conn,
		send: make(chan []byte, 64),
	}

	h.mutex.Lock()
	h.clients[client] = true
	h.mutex.Unlock()

	go h.writeLoop(client)
	go h.readLoop(client)
}

// writeLoop 把广播消息写给客户端，定期发送ping保活
func (h *ProgressHub) writeLoop(client *progressClient) {
	ticker := time.NewTicker(30 * time.Second)
	defer func() {
		ticker.Stop()
		client.conn.Close()
	}()

	for {
		select {
		case data, ok := <-client.send:
			if !ok {
				return
			}
			client.conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if err := client.conn.WriteMessage(websocket.TextMessage, data); err != nil {
				h.remove(client)
				return
			}
		case <-ticker.C:
			client.conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if err := client.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				h.remove(client)
				return
			}
		}
	}
}

// readLoop 只为感知连接关闭，收到的消息全部忽略
func (h *ProgressHub) readLoop(client *progressClient) {
	defer h.remove(client)

	client.conn.SetReadLimit(512)
	for {
		if _, _, err := client.conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (h *ProgressHub) remove(client *progressClient) {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	if _, exists := h.clients[client]; exists {
		delete(h.clients, client)
		close(client.send)
		client.conn.Close()
	}
}
