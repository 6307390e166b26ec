package site

import (
	"strings"
	"testing"

	"github.com/odvcencio/furry-motion/comments"
	"github.com/odvcencio/furry-motion/motion"
	"github.com/odvcencio/furry-motion/pencil"
	"github.com/odvcencio/furry-motion/runtime"
	"github.com/odvcencio/furry-motion/scroll"
	"github.com/odvcencio/furry-motion/terminal"
)

func newTestPage(t *testing.T) (*Page, *runtime.App, *runtime.Screen) {
	t.Helper()
	page := NewPage(Config{
		Content:  DefaultContent(),
		Theme:    DefaultTheme(),
		Comments: comments.NewMemoryStore(),
	})
	app, screen := mount(t, page, 100, 40)
	return page, app, screen
}

func TestPage_SectionsAreBuiltOnce(t *testing.T) {
	page := NewPage(Config{Content: DefaultContent(), Theme: DefaultTheme()})
	portfolio, ok := page.Section(SectionPortfolio).(*Portfolio)
	if !ok {
		t.Fatalf("expected a portfolio section, got %T", page.Section(SectionPortfolio))
	}
	if page.Section(SectionPortfolio) != portfolio {
		t.Fatalf("expected the same section on every lookup")
	}
	if got := len(page.stack.Children); got != len(SectionOrder) {
		t.Fatalf("expected %d sections, got %d", len(SectionOrder), got)
	}
	if page.Line() != nil || page.Cursor() != nil {
		t.Fatalf("expected no animations before binding")
	}
}

func TestPage_PencilFollowsScroll(t *testing.T) {
	page, app, screen := newTestPage(t)

	if page.Tracker().State() != scroll.Tracking {
		t.Fatalf("expected document tracking while mounted")
	}
	vp := page.View().Viewport()
	if vp.ViewportHeight() != 39 || vp.DocumentHeight() <= 39 {
		t.Fatalf("unexpected sizes view=%v doc=%v", vp.ViewportHeight(), vp.DocumentHeight())
	}
	line := page.Line()
	if line == nil || line.DocHeight() != vp.DocumentHeight()*RowPixels {
		t.Fatalf("expected the pencil sized to the document")
	}
	if line.Progress().(*motion.Spring).Config() != pencil.LineSpring.WithDefaults() {
		t.Fatalf("expected the default pencil spring")
	}

	page.View().ScrollToEnd()
	if page.Progress() != 1 {
		t.Fatalf("expected full progress at the end, got %v", page.Progress())
	}
	app.Driver().Settle(motion.DefaultFrame, 10000)
	if got := line.Y().Get(); got != line.DocHeight() {
		t.Fatalf("expected the tip at the bottom, got %v of %v", got, line.DocHeight())
	}

	screen.Render()
	status := screen.Buffer().Row(39)
	if !strings.Contains(status, "Amy Simpson") || !strings.Contains(status, "100%") {
		t.Fatalf("unexpected status bar %q", status)
	}

	screen.SetRoot(nil)
	if page.Tracker().State() != scroll.Idle || page.Line() != nil {
		t.Fatalf("expected everything released on unmount")
	}
}

func TestPage_OverlaysAndQuit(t *testing.T) {
	page, _, screen := newTestPage(t)

	screen.HandleMessage(key('c'))
	if screen.LayerCount() != 2 {
		t.Fatalf("expected the assistant overlay, got %d layers", screen.LayerCount())
	}
	if _, ok := screen.TopLayer().Root.(*ChatPanel); !ok {
		t.Fatalf("expected a chat panel, got %T", screen.TopLayer().Root)
	}
	screen.HandleMessage(key('q'))
	if screen.LayerCount() != 2 {
		t.Fatalf("expected typing in the prompt not to quit")
	}
	screen.HandleMessage(runtime.KeyMsg{Key: terminal.KeyEscape})
	if screen.LayerCount() != 1 {
		t.Fatalf("expected escape to close the assistant")
	}

	screen.HandleMessage(key('d'))
	if _, ok := screen.TopLayer().Root.(*Deconstruction); !ok {
		t.Fatalf("expected d to open the deconstruction, got %T", screen.TopLayer().Root)
	}
	screen.HandleMessage(key('q'))
	screen.HandleMessage(runtime.KeyMsg{Key: terminal.KeyEnter})
	panel, ok := screen.TopLayer().Root.(*CommentsPanel)
	if !ok {
		t.Fatalf("expected enter to open the comments, got %T", screen.TopLayer().Root)
	}
	if panel.Board().ProjectID() != 1 {
		t.Fatalf("expected the first project's thread, got %d", panel.Board().ProjectID())
	}
	screen.HandleMessage(runtime.KeyMsg{Key: terminal.KeyEscape})

	res := screen.HandleMessage(key('q'))
	if len(res.Commands) != 1 {
		t.Fatalf("expected quit from the page, got %v", res.Commands)
	}
	if _, ok := res.Commands[0].(runtime.Quit); !ok {
		t.Fatalf("expected Quit, got %T", res.Commands[0])
	}
	if page.Cursor().Visible() {
		t.Fatalf("expected no cursor before mouse input")
	}
}

func TestPage_CursorTracksMouse(t *testing.T) {
	page, _, screen := newTestPage(t)
	screen.HandleMessage(runtime.MouseMsg{X: 50, Y: 10, Action: terminal.MouseMove})
	if !page.Cursor().Visible() {
		t.Fatalf("expected the cursor shown after mouse input")
	}
	screen.Render()
	if got := screen.Buffer().Get(50, 10).Rune; got != '●' {
		t.Fatalf("expected the cursor dot under the mouse, got %q", got)
	}
}

func TestPage_NavbarJumpsAndThemes(t *testing.T) {
	page, _, screen := newTestPage(t)
	nav, vp := page.Navbar(), page.View().Viewport()
	if nav.Condensed() || !nav.Dark() {
		t.Fatalf("expected an expanded dark bar at the top")
	}

	screen.HandleMessage(key('3'))
	timeline := page.Section(SectionTimeline).(*Timeline)
	if got, want := vp.Offset().Y, timeline.Bounds().Y-1; got != want {
		t.Fatalf("expected the timeline one row under the bar, offset %d want %d", got, want)
	}
	if !nav.Condensed() {
		t.Fatalf("expected the bar condensed after the jump")
	}

	portfolio := page.Section(SectionPortfolio)
	offset := vp.Offset().Y
	screen.HandleMessage(key('t'))
	if page.Theme().Dark || nav.Dark() {
		t.Fatalf("expected the light theme")
	}
	if page.Section(SectionPortfolio) == portfolio {
		t.Fatalf("expected the sections rebuilt with the new theme")
	}
	if got := len(page.stack.Children); got != len(SectionOrder) {
		t.Fatalf("expected %d sections after the rebuild, got %d", len(SectionOrder), got)
	}
	if vp.Offset().Y != offset {
		t.Fatalf("expected the scroll position kept, got %d want %d", vp.Offset().Y, offset)
	}
	if page.Section(SectionTimeline).(*Timeline).Tracker().State() != scroll.Tracking {
		t.Fatalf("expected the rebuilt sections bound")
	}
	if timeline.Tracker().State() != scroll.Idle {
		t.Fatalf("expected the old sections released")
	}

	screen.HandleMessage(key('t'))
	if !page.Theme().Dark {
		t.Fatalf("expected t to switch back to dark")
	}
	page.Jump(SectionHero)
	if vp.Offset().Y != 0 || nav.Condensed() {
		t.Fatalf("expected the hero jump to return to the top")
	}
}
