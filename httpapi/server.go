// Package httpapi is the request layer: it deserializes order requests,
// routes them by symbol to the exchange, and serializes results. Order
// ids are always assigned by the engine; caller-supplied ids are ignored
// by construction (the request body has no id field).
package httpapi

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"microexchange/broadcast"
	"microexchange/domain"
	"microexchange/exchange"
	"microexchange/orderbook"
)

// Server wires the HTTP handlers to the exchange. publisher may be nil,
// which disables execution reports.
type Server struct {
	ex        *exchange.Exchange
	publisher broadcast.Publisher
	logger    *slog.Logger
}

func NewServer(ex *exchange.Exchange, publisher broadcast.Publisher, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{ex: ex, publisher: publisher, logger: logger}
}

// Routes builds the gin engine with all endpoints registered.
func (s *Server) Routes() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())

	api := router.Group("/api/v1")
	{
		api.POST("/orders", s.placeOrder)
		api.DELETE("/orders/:id", s.cancelOrder)
		api.GET("/orderbook", s.getOrderBook)
		api.GET("/symbols", s.getSymbols)
	}

	return router
}

type placeOrderRequest struct {
	Symbol   string `json:"symbol" binding:"required"`
	Side     string `json:"side" binding:"required"`
	Price    int64  `json:"price" binding:"required,gt=0"`
	Quantity int64  `json:"quantity" binding:"required,gt=0"`
}

// placeOrder attempts an immediate match against the opposite book and
// falls back to resting the order on its own side.
func (s *Server) placeOrder(c *gin.Context) {
	var req placeOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
		return
	}

	side, err := domain.ParseSide(req.Side)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	market, err := s.ex.Market(domain.Symbol(req.Symbol))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown symbol " + req.Symbol})
		return
	}

	result, err := market.Place(domain.Order{
		Quantity: req.Quantity,
		Symbol:   domain.Symbol(req.Symbol),
		Price:    req.Price,
		Side:     side,
	})
	if err != nil {
		s.logger.Error("place order failed",
			"symbol", req.Symbol, "side", req.Side, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	if result.Filled {
		s.publishFill(broadcast.FillEvent{
			Symbol:    domain.Symbol(req.Symbol),
			Side:      side,
			AvgPrice:  result.Fill.AvgPrice,
			Quantity:  result.Fill.Quantity,
			Timestamp: time.Now().UTC(),
		})
		c.JSON(http.StatusOK, gin.H{
			"status":          "filled",
			"avg_price":       result.Fill.AvgPrice,
			"filled_quantity": result.Fill.Quantity,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "resting",
		"order":  result.Resting,
	})
}

// cancelOrder removes a resting order by id.
func (s *Server) cancelOrder(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid order id"})
		return
	}

	side, err := domain.ParseSide(c.Query("side"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	symbol := c.Query("symbol")
	market, err := s.ex.Market(domain.Symbol(symbol))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown symbol " + symbol})
		return
	}

	if err := market.Cancel(side, id); err != nil {
		if errors.Is(err, orderbook.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "no resting order with that id"})
			return
		}
		s.logger.Error("cancel failed", "id", id, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.Status(http.StatusNoContent)
}

// getOrderBook returns a depth snapshot of one side of a market.
func (s *Server) getOrderBook(c *gin.Context) {
	side, err := domain.ParseSide(c.Query("side"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	symbol := c.Query("symbol")
	market, err := s.ex.Market(domain.Symbol(symbol))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown symbol " + symbol})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"symbol": symbol,
		"side":   side,
		"levels": market.Depth(side),
	})
}

func (s *Server) getSymbols(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"symbols": s.ex.Symbols()})
}

// publishFill emits the execution report without blocking the response.
func (s *Server) publishFill(event broadcast.FillEvent) {
	if s.publisher == nil {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.publisher.PublishFill(ctx, event); err != nil {
			s.logger.Error("publish fill event failed",
				"symbol", event.Symbol, "error", err)
		}
	}()
}
