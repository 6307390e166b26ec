package runtime

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/odvcencio/furry-motion/backend"
	"github.com/odvcencio/furry-motion/motion"
	"github.com/odvcencio/furry-motion/state"
)

// ErrNoBackend is returned by Run when the app has no backend.
var ErrNoBackend = errors.New("backend is required")

// DefaultTickRate is used when AppConfig.TickRate is zero.
const DefaultTickRate = 16 * time.Millisecond

// UpdateFunc handles a message and reports whether a render is needed.
type UpdateFunc func(app *App, msg Message) bool

// CommandHandler handles commands the runtime does not know. It reports
// whether a render is needed.
type CommandHandler func(cmd Command) bool

// AppConfig configures an App.
type AppConfig struct {
	Backend        backend.Backend
	Root           Widget
	Update         UpdateFunc
	CommandHandler CommandHandler
	MessageBuffer  int
	TickRate       time.Duration
	StateQueue     *state.Queue
	FlushPolicy    QueueFlushPolicy
	// Driver is the frame clock stepped on every tick. One is created when
	// nil.
	Driver         *motion.Driver
	RenderObserver RenderObserver
	Logger         *zap.Logger
}

// App runs a widget tree against a backend.
type App struct {
	backend        backend.Backend
	screen         *Screen
	root           Widget
	update         UpdateFunc
	commandHandler CommandHandler
	messages       chan Message
	tickRate       time.Duration
	stateQueue     *state.Queue
	queueScheduler *QueueScheduler
	flushPolicy    QueueFlushPolicy
	invalidator    *Invalidator
	driver         *motion.Driver
	renderObserver RenderObserver
	logger         *zap.Logger

	taskMu         sync.Mutex
	taskCtx        context.Context
	taskCancel     context.CancelFunc
	pendingEffects []Effect

	running     bool
	dirty       bool
	renderFrame int64
}

// NewApp creates an app from cfg.
func NewApp(cfg AppConfig) *App {
	bufferSize := cfg.MessageBuffer
	if bufferSize <= 0 {
		bufferSize = 128
	}
	queue := cfg.StateQueue
	if queue == nil {
		queue = state.NewQueue()
	}
	tick := cfg.TickRate
	if tick <= 0 {
		tick = DefaultTickRate
	}
	driver := cfg.Driver
	if driver == nil {
		driver = motion.NewDriver()
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	app := &App{
		backend:        cfg.Backend,
		root:           cfg.Root,
		update:         cfg.Update,
		commandHandler: cfg.CommandHandler,
		messages:       make(chan Message, bufferSize),
		tickRate:       tick,
		stateQueue:     queue,
		flushPolicy:    cfg.FlushPolicy,
		driver:         driver,
		renderObserver: cfg.RenderObserver,
		logger:         logger,
	}
	if app.update == nil {
		app.update = DefaultUpdate
	}
	app.queueScheduler = NewQueueScheduler(queue, app.TryPost)
	app.invalidator = NewInvalidator(app.TryPost)
	return app
}

// Screen returns the active screen once Run has started.
func (a *App) Screen() *Screen {
	return a.screen
}

// Driver returns the app's frame clock.
func (a *App) Driver() *motion.Driver {
	return a.driver
}

// StateScheduler returns a scheduler that defers work to the loop.
func (a *App) StateScheduler() state.Scheduler {
	if a == nil {
		return nil
	}
	return a.queueScheduler
}

// InvalidateScheduler returns a scheduler that requests a render.
func (a *App) InvalidateScheduler() state.Scheduler {
	if a == nil {
		return nil
	}
	return a.invalidator
}

// Invalidate requests a render pass.
func (a *App) Invalidate() {
	if a != nil {
		a.invalidator.Invalidate()
	}
}

// SetRoot swaps the root widget.
func (a *App) SetRoot(root Widget) {
	a.root = root
	if a.screen != nil {
		a.screen.SetRoot(root)
		a.dirty = true
	}
}

// Post sends a message to the loop, dropping it when the queue is full.
func (a *App) Post(msg Message) {
	if !a.TryPost(msg) {
		a.logger.Debug("message dropped", zap.String("type", fmt.Sprintf("%T", msg)))
	}
}

// TryPost sends a message without blocking and reports whether it was
// queued.
func (a *App) TryPost(msg Message) bool {
	if a == nil || a.messages == nil || msg == nil {
		return false
	}
	select {
	case a.messages <- msg:
		return true
	default:
		return false
	}
}

// Spawn starts an effect on the app task context. Effects spawned before
// Run are held until it starts.
func (a *App) Spawn(effect Effect) {
	if a == nil || effect.Run == nil {
		return
	}
	a.taskMu.Lock()
	ctx := a.taskCtx
	if ctx == nil {
		a.pendingEffects = append(a.pendingEffects, effect)
		a.taskMu.Unlock()
		return
	}
	a.taskMu.Unlock()
	go effect.Run(ctx, a.TryPost)
}

// Run drives the loop until Quit or ctx is cancelled.
func (a *App) Run(ctx context.Context) error {
	if a.backend == nil {
		return ErrNoBackend
	}
	taskCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	if err := a.backend.Init(); err != nil {
		return fmt.Errorf("init backend: %w", err)
	}
	defer a.backend.Fini()
	a.backend.HideCursor()

	w, h := a.backend.Size()
	a.screen = NewScreen(w, h)
	a.screen.SetServices(a.Services())
	if a.root != nil {
		a.screen.SetRoot(a.root)
	}
	a.startTasks(taskCtx, cancel)
	go a.pollEvents(taskCtx)

	ticker := time.NewTicker(a.tickRate)
	defer ticker.Stop()

	a.logger.Debug("app started", zap.Int("width", w), zap.Int("height", h), zap.Duration("tick", a.tickRate))
	a.running = true
	a.dirty = true
	for a.running {
		var msg Message
		select {
		case <-ctx.Done():
			a.running = false
			continue
		case msg = <-a.messages:
		case now := <-ticker.C:
			msg = TickMsg{Time: now}
		}
		if a.update(a, msg) {
			a.dirty = true
		}
		if !a.running {
			break
		}
		if shouldFlushQueue(a.flushPolicy, msg) {
			a.queueScheduler.resetPending()
			if a.stateQueue.Flush() > 0 {
				a.dirty = true
			}
		}
		if _, ok := msg.(InvalidateMsg); ok {
			a.invalidator.resetPending()
		}
		if a.dirty {
			a.render()
			a.dirty = false
		}
	}
	a.logger.Debug("app stopped", zap.Int64("frames", a.renderFrame))
	return ctx.Err()
}

func (a *App) startTasks(ctx context.Context, cancel context.CancelFunc) {
	a.taskMu.Lock()
	a.taskCtx, a.taskCancel = ctx, cancel
	pending := a.pendingEffects
	a.pendingEffects = nil
	a.taskMu.Unlock()
	for _, effect := range pending {
		go effect.Run(ctx, a.TryPost)
	}
}

func (a *App) cancelTasks() {
	a.taskMu.Lock()
	cancel := a.taskCancel
	a.taskMu.Unlock()
	if cancel != nil {
		cancel()
	}
}

// DefaultUpdate steps springs on ticks, resizes the screen and dispatches
// everything else to the widget tree.
func DefaultUpdate(app *App, msg Message) bool {
	if app == nil || app.screen == nil {
		return false
	}
	switch m := msg.(type) {
	case TickMsg:
		animating := !app.driver.Idle()
		app.driver.Tick(m.Time)
		return app.dispatchMessage(msg) || animating
	case ResizeMsg:
		app.screen.Resize(m.Width, m.Height)
		app.dispatchMessage(msg)
		return true
	case QueueFlushMsg:
		return false
	case InvalidateMsg:
		return true
	default:
		return app.dispatchMessage(msg)
	}
}

func (a *App) dispatchMessage(msg Message) bool {
	result := a.screen.HandleMessage(msg)
	dirty := result.Handled
	for _, cmd := range result.Commands {
		if a.handleCommand(cmd) {
			dirty = true
		}
	}
	return dirty
}

// ExecuteCommand runs cmd as if a widget had returned it.
func (a *App) ExecuteCommand(cmd Command) bool {
	if a == nil {
		return false
	}
	return a.handleCommand(cmd)
}

func (a *App) handleCommand(cmd Command) bool {
	switch c := cmd.(type) {
	case Quit:
		a.running = false
		a.cancelTasks()
		return false
	case Refresh:
		if a.screen != nil {
			a.screen.Buffer().MarkAllDirty()
		}
		return true
	case SendMsg:
		if c.Message != nil {
			a.Post(c.Message)
		}
		return false
	case Effect:
		a.Spawn(c)
		return false
	case PushOverlay:
		if a.screen != nil {
			a.screen.PushLayer(c.Widget, c.Modal)
		}
		return true
	case PopOverlay:
		return a.screen != nil && a.screen.PopLayer()
	default:
		if a.commandHandler != nil {
			return a.commandHandler(cmd)
		}
		return false
	}
}

func (a *App) pollEvents(ctx context.Context) {
	for {
		ev := a.backend.PollEvent()
		if ev == nil || ctx.Err() != nil {
			return
		}
		msg := messageFromEvent(ev)
		if msg == nil {
			continue
		}
		select {
		case a.messages <- msg:
		case <-ctx.Done():
			return
		}
	}
}

func (a *App) render() {
	if a.screen == nil {
		return
	}
	observe := a.renderObserver != nil
	a.renderFrame++
	stats := RenderStats{Frame: a.renderFrame, Started: time.Now()}

	a.screen.Render()
	stats.RenderDuration = time.Since(stats.Started)

	buf := a.screen.Buffer()
	w, h := buf.Size()
	stats.TotalCells = w * h
	if buf.IsDirty() {
		flushStart := time.Now()
		stats.DirtyCells = buf.DirtyCount()
		stats.FullRedraw = stats.DirtyCells > stats.TotalCells/2
		stats.FlushedCells = a.flush(buf, stats.FullRedraw)
		stats.FlushDuration = time.Since(flushStart)
		buf.ClearDirty()
	}
	a.backend.Show()

	if observe {
		stats.TotalDuration = time.Since(stats.Started)
		stats.Animating = a.driver.Active()
		a.renderObserver.ObserveRender(stats)
	}
}

// flush writes dirty cells to the backend and returns how many it wrote.
// Bulk writers are used when the backend offers them.
func (a *App) flush(buf *Buffer, full bool) int {
	w, h := buf.Size()
	cells := buf.Cells()
	rows, hasRows := a.backend.(backend.RowWriter)
	if full {
		if rect, ok := a.backend.(backend.RectWriter); ok {
			rect.SetRect(0, 0, w, h, cells)
			return w * h
		}
		for y := 0; y < h; y++ {
			a.writeSpan(rows, hasRows, y, 0, cells[y*w:(y+1)*w])
		}
		return w * h
	}
	flushed := 0
	buf.ForEachDirtySpan(func(y, startX, endX int) {
		a.writeSpan(rows, hasRows, y, startX, cells[y*w+startX:y*w+endX])
		flushed += endX - startX
	})
	return flushed
}

func (a *App) writeSpan(rows backend.RowWriter, hasRows bool, y, x int, span []Cell) {
	if hasRows {
		rows.SetRow(y, x, span)
		return
	}
	for i, cell := range span {
		if cell.Rune == 0 {
			continue
		}
		a.backend.SetContent(x+i, y, cell.Rune, nil, cell.Style)
	}
}
