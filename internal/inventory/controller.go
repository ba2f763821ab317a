// Package inventory owns the UI state: the displayed product list, the form
// draft and the load/mutation transitions between them.
package inventory

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"

	"Inventario/internal/cache"
	"Inventario/internal/productos"
)

var ErrUnknownProduct = errors.New("product not displayed")

// API is the remote product service.
type API interface {
	List(ctx context.Context) ([]productos.Product, error)
	Create(ctx context.Context, p productos.Payload) error
	Update(ctx context.Context, id int, p productos.Payload) error
	Remove(ctx context.Context, id int) error
}

// Invalidator runs after every successful mutation. The default re-fetches
// the whole list.
type Invalidator interface {
	Invalidate(ctx context.Context)
}

type InvalidatorFunc func(ctx context.Context)

func (f InvalidatorFunc) Invalidate(ctx context.Context) { f(ctx) }

// Controller serializes access to the state but never holds its lock across
// a network or cache call. Overlapping loads are not fenced: the last one to
// finish wins.
//
// The list, phase and banner are shared by every viewer. Each viewer (one
// browser session) has its own draft and pending notice.
type Controller struct {
	api   API
	cache cache.Store
	log   *zap.Logger

	invalidator Invalidator

	mu    sync.Mutex
	st    state
	views map[string]*view
	now   func() time.Time
}

func NewController(api API, store cache.Store, log *zap.Logger) *Controller {
	if log == nil {
		log = zap.NewNop()
	}
	c := &Controller{
		api:   api,
		cache: store,
		log:   log,
		st: state{
			phase:     PhaseIdle,
			productos: []productos.Product{},
		},
		views: make(map[string]*view),
		now:   time.Now,
	}
	c.invalidator = InvalidatorFunc(func(ctx context.Context) { _ = c.Load(ctx, false) })
	return c
}

// SetInvalidator replaces the post-mutation strategy.
func (c *Controller) SetInvalidator(inv Invalidator) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.invalidator = inv
}

// Mount is the first load of the view: paint from cache, then fetch.
func (c *Controller) Mount(ctx context.Context) error {
	return c.Load(ctx, true)
}

// Load fetches the list. With useCache a non-empty cached list is displayed
// first. A failed fetch only raises the banner when nothing is displayed.
func (c *Controller) Load(ctx context.Context, useCache bool) error {
	c.mu.Lock()
	c.st.loading = true
	c.st.err = ""
	c.st.phase = PhaseLoading
	c.mu.Unlock()

	if useCache {
		c.paintFromCache(ctx)
	}

	list, err := c.api.List(ctx)

	c.mu.Lock()
	c.st.loading = false
	if err != nil {
		shown := len(c.st.productos)
		if shown == 0 {
			c.st.phase = PhaseError
			c.st.err = MsgLoadFailed
		} else {
			c.st.phase = PhaseLoaded
		}
		c.mu.Unlock()

		c.log.Error("load productos failed", zap.Error(err), zap.Int("displayed", shown))
		return err
	}
	c.st.productos = list
	c.st.phase = PhaseLoaded
	c.mu.Unlock()

	if err := c.cache.Save(ctx, list); err != nil {
		c.log.Warn("cache save failed", zap.Error(err))
	}
	return nil
}

func (c *Controller) paintFromCache(ctx context.Context) {
	cached, err := c.cache.Load(ctx)
	if err != nil {
		c.log.Warn("cache load failed", zap.Error(err))
		return
	}
	if len(cached) == 0 {
		return
	}

	c.mu.Lock()
	c.st.productos = cached
	c.mu.Unlock()
}

// Edit switches the viewer's form to edit mode for a displayed product.
func (c *Controller) Edit(viewer string, id int) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, p := range c.st.productos {
		if p.ID == id {
			c.viewLocked(viewer).draft = DraftFrom(p)
			return nil
		}
	}
	return ErrUnknownProduct
}

// Cancel drops the viewer's draft and returns to create mode.
func (c *Controller) Cancel(viewer string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if v, ok := c.views[viewer]; ok {
		v.draft = Draft{}
		c.dropIfEmptyLocked(viewer, v)
	}
}

// Submit creates or updates depending on the mode of d, the draft the viewer
// sent. On failure d is kept as the viewer's draft and the list is left as
// it was.
func (c *Controller) Submit(ctx context.Context, viewer string, d Draft) error {
	c.mu.Lock()
	c.viewLocked(viewer).draft = d
	c.mu.Unlock()

	p, err := d.Payload()
	if err != nil {
		c.notify(viewer, NoticeError, err.Error())
		return err
	}

	msg := MsgCreated
	if d.Editing() {
		msg = MsgUpdated
		err = c.api.Update(ctx, *d.ID, p)
	} else {
		err = c.api.Create(ctx, p)
	}
	if err != nil {
		c.log.Error("save producto failed", zap.Error(err), zap.Bool("editing", d.Editing()))
		c.notify(viewer, NoticeError, MsgSaveFailed)
		return err
	}

	c.mu.Lock()
	v := c.viewLocked(viewer)
	v.notice = &Notice{Kind: NoticeSuccess, Text: msg}
	v.draft = Draft{}
	inv := c.invalidator
	c.mu.Unlock()

	inv.Invalidate(ctx)
	return nil
}

// Delete removes a product once the user confirmed. Without confirmation
// nothing happens. A failed delete is only logged.
func (c *Controller) Delete(ctx context.Context, id int, confirmed bool) error {
	if !confirmed {
		return nil
	}

	if err := c.api.Remove(ctx, id); err != nil {
		c.log.Error("delete producto failed", zap.Error(err), zap.Int("id", id))
		return err
	}

	c.mu.Lock()
	inv := c.invalidator
	c.mu.Unlock()

	inv.Invalidate(ctx)
	return nil
}

// Snapshot is the shared list state plus the viewer's draft.
func (c *Controller) Snapshot(viewer string) Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	s := c.st.snapshot()
	if v, ok := c.views[viewer]; ok {
		s.Draft = v.draft.clone()
	}
	return s
}

// TakeNotice returns the viewer's pending notice and clears it.
func (c *Controller) TakeNotice(viewer string) (Notice, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	v, ok := c.views[viewer]
	if !ok || v.notice == nil {
		return Notice{}, false
	}
	n := *v.notice
	v.notice = nil
	c.dropIfEmptyLocked(viewer, v)
	return n, true
}

// Product returns the displayed product with id.
func (c *Controller) Product(id int) (productos.Product, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, p := range c.st.productos {
		if p.ID == id {
			return p, true
		}
	}
	return productos.Product{}, false
}

func (c *Controller) notify(viewer string, kind NoticeKind, text string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.viewLocked(viewer).notice = &Notice{Kind: kind, Text: text}
}
