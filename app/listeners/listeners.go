// Package listeners wires domain events to their side effects.
package listeners

import (
	"fmt"

	"github.com/buildmaster/storefront/app/jobs"
	"github.com/buildmaster/storefront/app/models"
	"github.com/buildmaster/storefront/config"
	"github.com/buildmaster/storefront/pkg/event"
	"github.com/buildmaster/storefront/pkg/logger"
	"github.com/buildmaster/storefront/pkg/mail"
	"github.com/buildmaster/storefront/pkg/queue"
)

// Register hooks up all event listeners. Call once at boot.
func Register() {
	event.Listen("component.created", vectorizeComponent)
	event.Listen("component.updated", vectorizeComponent)
	event.Listen("order.paid", sendOrderReceipt)
}

// vectorizeComponent queues an embedding refresh whenever a component's
// searchable content may have changed.
func vectorizeComponent(payload interface{}) {
	component, ok := payload.(models.Component)
	if !ok {
		return
	}
	if err := queue.Dispatch(&jobs.VectorizeComponentJob{ComponentID: component.ID}); err != nil {
		logger.Error("listeners: vectorize dispatch failed", "component_id", component.ID, "error", err)
	}
}

// sendOrderReceipt mails a plain-text receipt for a paid order. Disabled
// unless MAIL_ENABLED is set.
func sendOrderReceipt(payload interface{}) {
	if !config.MailEnabled() {
		return
	}
	order, ok := payload.(models.Order)
	if !ok {
		return
	}
	recipient := orderEmail(order)
	if recipient == "" {
		return
	}

	body := fmt.Sprintf("Thanks for your order #%d!\n\n", order.ID)
	for _, item := range order.Items {
		name := fmt.Sprintf("component %d", item.ComponentID)
		if item.Component != nil {
			name = item.Component.Name
		}
		body += fmt.Sprintf("  %dx %s — $%s\n", item.Quantity, name, item.LineTotal().StringFixed(2))
	}
	body += fmt.Sprintf("\nTotal: $%s\n", order.Total.StringFixed(2))

	err := mail.To(recipient).
		Subject(fmt.Sprintf("Your Build Master order #%d", order.ID)).
		Text(body).
		Send()
	if err != nil {
		logger.Error("listeners: receipt mail failed", "order_id", order.ID, "error", err)
	}
}

func orderEmail(order models.Order) string {
	if order.User != nil {
		return order.User.Email
	}
	return ""
}
