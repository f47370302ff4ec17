// Package notify contiene los canales de entrega de mensajes de cobro.
package notify

import (
	"context"
	"fmt"
	"strings"

	"github.com/jhoicas/dairybook-api/internal/application/billing"
	"github.com/jhoicas/dairybook-api/pkg/logger"
)

var _ billing.MessageSender = (*WhatsAppMockSender)(nil)

// WhatsAppMockSender simula el envío por WhatsApp: no sale ningún mensaje, solo queda una línea de log.
type WhatsAppMockSender struct {
	log *logger.Logger
}

// NewWhatsAppMockSender construye el sender mock.
func NewWhatsAppMockSender(log *logger.Logger) *WhatsAppMockSender {
	if log == nil {
		log = logger.Nop()
	}
	return &WhatsAppMockSender{log: log.Component("whatsapp_mock")}
}

// Send registra el mensaje. Un teléfono vacío no impide el registro: el cliente pudo darse de alta sin él.
func (s *WhatsAppMockSender) Send(ctx context.Context, phone, message string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if strings.TrimSpace(message) == "" {
		return fmt.Errorf("whatsapp mock: mensaje vacío")
	}
	s.log.Info().
		Str("phone", phone).
		Int("length", len(message)).
		Str("message", message).
		Msg("whatsapp (mock) enviado")
	return nil
}
