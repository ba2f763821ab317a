package inventory

import "time"

const (
	viewIdleTTL   = 30 * time.Minute
	viewSweepSize = 1024
)

// view is one viewer's form and pending notice.
type view struct {
	draft    Draft
	notice   *Notice
	lastSeen time.Time
}

// viewLocked returns the viewer's state, creating it on first use. c.mu must
// be held.
func (c *Controller) viewLocked(viewer string) *view {
	now := c.now()

	v, ok := c.views[viewer]
	if !ok {
		if len(c.views) >= viewSweepSize {
			c.sweepViewsLocked(now)
		}
		v = &view{}
		c.views[viewer] = v
	}
	v.lastSeen = now
	return v
}

func (c *Controller) sweepViewsLocked(now time.Time) {
	for id, v := range c.views {
		if now.Sub(v.lastSeen) > viewIdleTTL {
			delete(c.views, id)
		}
	}
}

// A viewer with nothing pending is indistinguishable from a new one.
func (c *Controller) dropIfEmptyLocked(viewer string, v *view) {
	if v.notice == nil && v.draft == (Draft{}) {
		delete(c.views, viewer)
	}
}
