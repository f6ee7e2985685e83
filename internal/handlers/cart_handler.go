package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/imrishuroy/go-cart-engine/internal/aws"
	"github.com/imrishuroy/go-cart-engine/internal/cart"
	"github.com/imrishuroy/go-cart-engine/internal/catalog"
	"github.com/imrishuroy/go-cart-engine/internal/pricing"
	"github.com/imrishuroy/go-cart-engine/internal/validation"
)

// HandlerConfig groups dependencies for the cart handlers.
type HandlerConfig struct {
	Store     cart.Store
	SQSClient aws.SQSAPI
	QueueURL  string
}

// lineItemView is the wire shape of a cart line. Money renders as 2-decimal
// strings; rounding happens here and nowhere earlier.
type lineItemView struct {
	ProductID       string `json:"product_id"`
	Name            string `json:"name"`
	Image           string `json:"image,omitempty"`
	UnitPrice       string `json:"unit_price"`
	DiscountPercent string `json:"discount_percent"`
	Quantity        int    `json:"quantity"`
	LineTotal       string `json:"line_total"`
}

type totalsView struct {
	Subtotal      string `json:"subtotal"`
	Shipping      string `json:"shipping"`
	PromoDiscount string `json:"promo_discount"`
	Tax           string `json:"tax"`
	Total         string `json:"total"`
}

func toLineItemViews(items []cart.LineItem) []lineItemView {
	out := make([]lineItemView, 0, len(items))
	for _, li := range items {
		out = append(out, lineItemView{
			ProductID:       li.ProductID,
			Name:            li.Name,
			Image:           li.Image,
			UnitPrice:       li.UnitPrice.StringFixed(2),
			DiscountPercent: li.DiscountPercent.String(),
			Quantity:        li.Quantity,
			LineTotal:       li.LineTotal().StringFixed(2),
		})
	}
	return out
}

func toTotalsView(t pricing.OrderTotals) totalsView {
	return totalsView{
		Subtotal:      t.Subtotal.StringFixed(2),
		Shipping:      t.Shipping.StringFixed(2),
		PromoDiscount: t.PromoDiscount.StringFixed(2),
		Tax:           t.Tax.StringFixed(2),
		Total:         t.Total.StringFixed(2),
	}
}

// promoRate returns the applied promo rate for e, zero when none.
func promoRate(e *cart.Engine) decimal.Decimal {
	if p, ok := e.Promo(); ok {
		return p.Rate
	}
	return decimal.Zero
}

// RegisterCartRoutes registers routes for the cart API.
func RegisterCartRoutes(r *gin.Engine, cfg HandlerConfig) {
	v := validation.New()
	sessions := cart.NewSessions(cfg.Store)
	publisher := aws.NewPublisher(cfg.SQSClient, cfg.QueueURL)

	r.GET("/products", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"products": catalog.List()})
	})

	r.POST("/carts", func(c *gin.Context) {
		e := sessions.Create()
		c.Header("Location", fmt.Sprintf("/carts/%s", e.ID()))
		c.JSON(http.StatusCreated, gin.H{"cart_id": e.ID()})
	})

	r.GET("/carts/:id", func(c *gin.Context) {
		e := sessions.Get(c.Request.Context(), c.Param("id"))
		resp := gin.H{
			"cart_id": e.ID(),
			"items":   toLineItemViews(e.Items()),
		}
		if p, ok := e.Promo(); ok {
			resp["promo"] = gin.H{"code": p.Code, "rate": p.Rate.String()}
		}
		c.JSON(http.StatusOK, resp)
	})

	r.POST("/carts/:id/items", func(c *gin.Context) {
		ctx := c.Request.Context()

		var req validation.AddItemRequest
		if err := validation.BindAndValidate(c, &req, v); err != nil {
			// BindAndValidate already wrote a 400
			return
		}

		product, err := catalog.Get(req.ProductID)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "unknown_product", "product_id": req.ProductID})
			return
		}

		qty := req.Quantity
		if qty == 0 {
			qty = 1
		}

		e := sessions.Get(ctx, c.Param("id"))
		e.AddItem(ctx, product, qty)
		c.JSON(http.StatusOK, gin.H{"cart_id": e.ID(), "items": toLineItemViews(e.Items())})
	})

	r.PUT("/carts/:id/items/:productID", func(c *gin.Context) {
		ctx := c.Request.Context()

		var req validation.SetQuantityRequest
		if err := validation.BindAndValidate(c, &req, v); err != nil {
			return
		}

		e := sessions.Get(ctx, c.Param("id"))
		if !e.SetQuantity(ctx, c.Param("productID"), req.Quantity) {
			// not in the cart: a no-op, reported as such
			c.JSON(http.StatusOK, gin.H{"cart_id": e.ID(), "updated": false, "items": toLineItemViews(e.Items())})
			return
		}
		c.JSON(http.StatusOK, gin.H{"cart_id": e.ID(), "updated": true, "items": toLineItemViews(e.Items())})
	})

	r.DELETE("/carts/:id/items/:productID", func(c *gin.Context) {
		ctx := c.Request.Context()
		e := sessions.Get(ctx, c.Param("id"))
		e.RemoveItem(ctx, c.Param("productID"))
		c.JSON(http.StatusOK, gin.H{"cart_id": e.ID(), "items": toLineItemViews(e.Items())})
	})

	r.DELETE("/carts/:id", func(c *gin.Context) {
		ctx := c.Request.Context()
		e := sessions.Get(ctx, c.Param("id"))
		e.Clear(ctx)
		c.JSON(http.StatusOK, gin.H{"cart_id": e.ID(), "items": []lineItemView{}})
	})

	r.POST("/carts/:id/promo", func(c *gin.Context) {
		ctx := c.Request.Context()

		var req validation.ApplyPromoRequest
		if err := validation.BindAndValidate(c, &req, v); err != nil {
			return
		}

		e := sessions.Get(ctx, c.Param("id"))
		p, err := e.ApplyPromo(req.Code)
		switch {
		case errors.Is(err, cart.ErrPromoNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "promo_not_found"})
			return
		case errors.Is(err, cart.ErrPromoAlreadyApplied):
			c.JSON(http.StatusConflict, gin.H{"error": "promo_already_applied"})
			return
		case err != nil:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "promo_failed", "detail": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"code": p.Code, "rate": p.Rate.String()})
	})

	r.GET("/carts/:id/totals", func(c *gin.Context) {
		ctx := c.Request.Context()
		pctx := pricing.Context(c.DefaultQuery("context", string(pricing.ContextCart)))
		if pctx != pricing.ContextCart && pctx != pricing.ContextCheckout {
			c.JSON(http.StatusBadRequest, gin.H{"error": "unknown_context"})
			return
		}

		e := sessions.Get(ctx, c.Param("id"))
		totals := pricing.ComputeTotals(e.Items(), promoRate(e), pctx)
		c.JSON(http.StatusOK, toTotalsView(totals))
	})

	r.POST("/carts/:id/checkout", func(c *gin.Context) {
		ctx := c.Request.Context()

		var req validation.CheckoutRequest
		if err := validation.BindAndValidate(c, &req, v); err != nil {
			return
		}

		e := sessions.Get(ctx, c.Param("id"))
		items := e.Items()
		if len(items) == 0 {
			c.JSON(http.StatusConflict, gin.H{"error": "cart_empty"})
			return
		}

		totals := pricing.ComputeTotals(items, promoRate(e), pricing.ContextCheckout)
		orderID := uuid.NewString()

		// Order placement is mocked: the only downstream action is the
		// order-placed event. The cart is cleared only after a successful send.
		msgPayload := map[string]string{
			"order_id": orderID,
			"cart_id":  e.ID(),
			"email":    req.Email,
			"total":    totals.Total.StringFixed(2),
		}
		payloadBytes, _ := json.Marshal(msgPayload)

		attrs := map[string]string{
			"order_id":       orderID,
			"cart_id":        e.ID(),
			"correlation_id": c.GetHeader("X-Request-Id"),
		}
		if err := publisher.SendOrderPlaced(ctx, string(payloadBytes), attrs); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "order_publish_failed", "detail": err.Error()})
			return
		}

		e.Clear(ctx)

		c.Header("Location", fmt.Sprintf("/orders/%s", orderID))
		c.JSON(http.StatusCreated, gin.H{"order_id": orderID, "totals": toTotalsView(totals)})
	})
}
