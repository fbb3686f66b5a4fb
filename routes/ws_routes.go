package routes

import (
	"github.com/lokiedu/yoga_admin/events"
	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
)

// EventRoutes exposes the live event stream connected admin clients use to
// keep their list views current.
func EventRoutes(app *fiber.App) {
	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})

	app.Get("/ws", websocket.New(func(conn *websocket.Conn) {
		client := &events.Client{
			UserID: conn.Query("user_id"),
			Conn:   conn,
		}
		events.Register <- client
		defer func() {
			events.Unregister <- client
		}()

		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				break
			}
		}
	}))
}
