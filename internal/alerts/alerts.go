// Package alerts provides the fire-and-forget alerting channel used by the
// batch scheduler.
package alerts

import (
	"io"
	stdlog "log"

	"github.com/charmbracelet/log"
	shoutrrr "github.com/nicholas-fedor/shoutrrr"
	"github.com/nicholas-fedor/shoutrrr/pkg/router"
	stypes "github.com/nicholas-fedor/shoutrrr/pkg/types"
)

// Notifier delivers a text notification. Implementations never surface
// delivery errors to callers.
type Notifier interface {
	Notify(text string)
}

// Nop discards notifications. Used when no alert URLs are configured.
type Nop struct{}

func (Nop) Notify(string) {}

// ShoutrrrNotifier delivers notifications to one or more shoutrrr service
// URLs (Slack, Discord, generic webhooks, ...).
type ShoutrrrNotifier struct {
	sender *router.ServiceRouter
	logger *log.Logger
}

// NewShoutrrrNotifier creates a notifier for the given service URLs.
// Returns an error when any URL fails validation.
func NewShoutrrrNotifier(urls []string, logger *log.Logger) (*ShoutrrrNotifier, error) {
	sender, err := shoutrrr.CreateSender(urls...)
	if err != nil {
		return nil, err
	}
	sender.SetLogger(stdlog.New(io.Discard, "", 0))

	return &ShoutrrrNotifier{sender: sender, logger: logger}, nil
}

// Notify sends text to every configured service. Delivery failures are
// logged and otherwise dropped.
func (n *ShoutrrrNotifier) Notify(text string) {
	params := stypes.Params{}
	for _, err := range n.sender.Send(text, &params) {
		if err != nil && n.logger != nil {
			n.logger.Warn("alert delivery failed", "err", err)
		}
	}
}
