package handlers

import (
	"bufio"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/valyala/fasthttp"

	"github.com/biosecret/todopages/middleware"
	"github.com/biosecret/todopages/notify"
)

const keepAliveInterval = 15 * time.Second

// HandleEvents godoc
// @Summary Luồng sự kiện todo của người dùng (text/event-stream)
// @Tags events
// @Produce text/event-stream
// @Security BearerAuth
// @Router /events [get]
func (h *Handler) HandleEvents(c *fiber.Ctx) error {
	if h.hub == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "not found"})
	}

	c.Set("Content-Type", "text/event-stream")
	c.Set("Cache-Control", "no-cache")
	c.Set("Connection", "keep-alive")
	c.Set("Transfer-Encoding", "chunked")

	userID := middleware.UserID(c)
	s := h.hub.Subscribe(userID)
	log := h.log.With().Int64("user_id", userID).Logger()
	log.Debug().Msg("event stream opened")

	c.Context().SetBodyStreamWriter(fasthttp.StreamWriter(func(w *bufio.Writer) {
		keepAliveTickler := time.NewTicker(keepAliveInterval)
		defer keepAliveTickler.Stop()
		defer h.hub.Unsubscribe(s)

		for {
			select {
			case ev := <-s.Events():
				sseMessage, err := notify.FormatSSEMessage(string(ev.Kind), ev)
				if err != nil {
					log.Warn().Err(err).Msg("error formatting sse message")
					continue
				}

				// gửi message định dạng sse
				if _, err := w.WriteString(sseMessage); err != nil {
					log.Debug().Err(err).Msg("event stream closed")
					return
				}
				if err := w.Flush(); err != nil {
					log.Debug().Err(err).Msg("event stream closed")
					return
				}
			case <-keepAliveTickler.C:
				if _, err := w.WriteString(":keepalive\n\n"); err != nil {
					return
				}
				if err := w.Flush(); err != nil {
					log.Debug().Err(err).Msg("event stream closed")
					return
				}
			}
		}
	}))

	return nil
}
