package bot

import (
	"context"
	"sync/atomic"

	"store-ticket-bot/internal/discord/requests"
	"store-ticket-bot/internal/logger"
)

// WelcomeSwitch is the process-wide on/off flag for greeting new members.
type WelcomeSwitch struct {
	enabled atomic.Bool
}

func NewWelcomeSwitch(enabled bool) *WelcomeSwitch {
	w := &WelcomeSwitch{}
	w.enabled.Store(enabled)
	return w
}

func (w *WelcomeSwitch) Enabled() bool {
	return w.enabled.Load()
}

// Toggle flips the flag and returns the new value.
func (w *WelcomeSwitch) Toggle() bool {
	for {
		old := w.enabled.Load()
		if w.enabled.CompareAndSwap(old, !old) {
			return !old
		}
	}
}

// HandleMemberJoin gives the member role and posts the greeting while the
// switch is on. Missing role or channel are skipped silently.
func (r *Router) HandleMemberJoin(ctx context.Context, ev requests.MemberJoinEvent) {
	if !r.welcome.Enabled() {
		return
	}

	w := r.store.Get().Welcome

	roleID, found, err := r.gw.ResolveRole(ctx, ev.GuildID, w.MemberRole)
	switch {
	case err != nil:
		logger.Warning("Error while resolve member role", w.MemberRole, err)
	case !found:
		logger.Debug("Member role not found:", w.MemberRole)
	default:
		if err := r.gw.AddMemberRole(ctx, ev.GuildID, ev.Member.ID, roleID); err != nil {
			logger.Warning("Error while add member role to", ev.Member.ID, err)
		}
	}

	channelID, found, err := r.gw.ResolveTextChannel(ctx, ev.GuildID, w.Channel)
	switch {
	case err != nil:
		logger.Warning("Error while resolve welcome channel", w.Channel, err)
	case !found:
		logger.Debug("Welcome channel not found:", w.Channel)
	default:
		if err := r.gw.SendMessage(ctx, channelID, r.render.MemberGreeting(ev.Member.ID)); err != nil {
			logger.Warning("Error while send greeting for", ev.Member.ID, err)
		}
	}
}
