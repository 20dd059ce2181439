package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/acarlier/ticketeer/internal/mailer"
)

func MailerMiddleware(m *mailer.Mailer) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("mailer", m)
		c.Next()
	}
}

func GetMailer(c *gin.Context) *mailer.Mailer {
	m, exists := c.Get("mailer")
	if !exists {
		return nil
	}
	return m.(*mailer.Mailer)
}
