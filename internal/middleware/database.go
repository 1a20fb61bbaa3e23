package middleware

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/ticketchain/ticketchain/internal/auth"
	"github.com/ticketchain/ticketchain/internal/notify"
	"github.com/ticketchain/ticketchain/internal/settlement"
)

// Context keys for injected dependencies.
const (
	ContextDB         = "db"
	ContextSettlement = "settlement"
	ContextNotify     = "notify"
	ContextTokens     = "tokens"
)

func DatabaseMiddleware(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(ContextDB, db)
		c.Next()
	}
}

func SettlementMiddleware(engine *settlement.Engine) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(ContextSettlement, engine)
		c.Next()
	}
}

func NotifyMiddleware(queue *notify.Queue) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(ContextNotify, queue)
		c.Next()
	}
}

func TokensMiddleware(tokens *auth.TokenService) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(ContextTokens, tokens)
		c.Next()
	}
}

func GetDB(c *gin.Context) *gorm.DB {
	db, exists := c.Get(ContextDB)
	if !exists {
		return nil
	}
	return db.(*gorm.DB)
}

func GetSettlement(c *gin.Context) *settlement.Engine {
	engine, exists := c.Get(ContextSettlement)
	if !exists {
		return nil
	}
	return engine.(*settlement.Engine)
}

func GetNotify(c *gin.Context) *notify.Queue {
	queue, exists := c.Get(ContextNotify)
	if !exists {
		return nil
	}
	return queue.(*notify.Queue)
}

func GetTokens(c *gin.Context) *auth.TokenService {
	tokens, exists := c.Get(ContextTokens)
	if !exists {
		return nil
	}
	return tokens.(*auth.TokenService)
}
