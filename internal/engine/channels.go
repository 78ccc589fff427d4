package engine

import (
	"github.com/doktu-co/notify/internal/model"
	"github.com/doktu-co/notify/internal/trigger"
)

// ChannelSet is the outcome of channel routing for one request.
type ChannelSet struct {
	Email       bool
	SMS         bool
	Push        bool
	InAppBanner bool
	InAppInbox  bool
}

// slice returns the queue channels in delivery order. Banner and inbox
// share one in_app row; presentation splits at delivery time.
func (c ChannelSet) slice() []string {
	var out []string
	if c.Email {
		out = append(out, model.ChannelEmail)
	}
	if c.SMS {
		out = append(out, model.ChannelSMS)
	}
	if c.Push {
		out = append(out, model.ChannelPush)
	}
	if c.InAppBanner || c.InAppInbox {
		out = append(out, model.ChannelInApp)
	}
	return out
}

// selectChannels computes channel eligibility for a trigger under the
// user's preferences. Email covers nearly everything minus a small
// in-app-only exclusion list; SMS and push are allowlist-only; in-app
// surfaces come from the catalog. An empty set is a valid outcome, not an
// error.
func selectChannels(def trigger.Definition, prefs *model.Preference) ChannelSet {
	return ChannelSet{
		Email:       prefs.EmailEnabled && trigger.EmailEligible(def.Code),
		SMS:         prefs.SMSEnabled && trigger.SMSEligible(def.Code),
		Push:        prefs.PushEnabled && trigger.PushEligible(def.Code),
		InAppBanner: def.InApp.Banner,
		InAppInbox:  def.InApp.Inbox,
	}
}
