package telemetry

import (
	"fmt"
	"log/slog"
)

// BookmarkType identifies why a bookmark was taken.
type BookmarkType string

const (
	BookmarkManual      BookmarkType = "manual"
	BookmarkFrameSpike  BookmarkType = "frame_spike"
	BookmarkBusyWindow  BookmarkType = "busy_window"
	BookmarkIdleStretch BookmarkType = "idle_stretch"
	BookmarkSceneChange BookmarkType = "scene_change"
)

// Bookmark marks a moment worth revisiting.
type Bookmark struct {
	Type        BookmarkType `csv:"type" yaml:"type"`
	Frame       uint64       `csv:"frame" yaml:"frame"`
	Scene       string       `csv:"scene" yaml:"scene"`
	Description string       `csv:"description" yaml:"description"`
}

// LogBookmark logs the bookmark using slog.
func (b Bookmark) LogBookmark() {
	slog.Info("bookmark",
		"type", string(b.Type),
		"frame", b.Frame,
		"scene", b.Scene,
		"description", b.Description,
	)
}

// idleWindows is how many quiet windows in a row make an idle stretch.
const idleWindows = 5

// BookmarkDetector flags windows that stand out from recent history.
type BookmarkDetector struct {
	history     []WindowStats
	historySize int
	historyIdx  int
	historyFull bool

	lastScene  string
	quietCount int
}

// NewBookmarkDetector creates a detector with the given history size.
func NewBookmarkDetector(historySize int) *BookmarkDetector {
	if historySize < 3 {
		historySize = 3
	}
	return &BookmarkDetector{
		history:     make([]WindowStats, historySize),
		historySize: historySize,
	}
}

// Check analyzes the latest window and returns any triggered bookmarks.
func (bd *BookmarkDetector) Check(stats WindowStats) []Bookmark {
	var bookmarks []Bookmark

	if b := bd.checkFrameSpike(stats); b != nil {
		bookmarks = append(bookmarks, *b)
	}
	if b := bd.checkBusyWindow(stats); b != nil {
		bookmarks = append(bookmarks, *b)
	}
	if b := bd.checkIdleStretch(stats); b != nil {
		bookmarks = append(bookmarks, *b)
	}
	if b := bd.checkSceneChange(stats); b != nil {
		bookmarks = append(bookmarks, *b)
	}

	bd.addToHistory(stats)
	return bookmarks
}

func (bd *BookmarkDetector) addToHistory(stats WindowStats) {
	bd.history[bd.historyIdx] = stats
	bd.historyIdx = (bd.historyIdx + 1) % bd.historySize
	if bd.historyIdx == 0 {
		bd.historyFull = true
	}
}

func (bd *BookmarkDetector) getHistory() []WindowStats {
	if bd.historyFull {
		return bd.history
	}
	return bd.history[:bd.historyIdx]
}

// checkFrameSpike fires when p95 frame time doubles the rolling average.
func (bd *BookmarkDetector) checkFrameSpike(stats WindowStats) *Bookmark {
	history := bd.getHistory()
	if len(history) < 3 {
		return nil
	}
	var sum float64
	for _, h := range history {
		sum += h.FrameP95MS
	}
	avg := sum / float64(len(history))
	if avg <= 0 || stats.FrameP95MS <= 2*avg {
		return nil
	}
	return &Bookmark{
		Type:        BookmarkFrameSpike,
		Frame:       stats.WindowEndFrame,
		Scene:       stats.Scene,
		Description: fmt.Sprintf("p95 frame %.1fms vs %.1fms average", stats.FrameP95MS, avg),
	}
}

// checkBusyWindow fires when interactions double the rolling average.
func (bd *BookmarkDetector) checkBusyWindow(stats WindowStats) *Bookmark {
	history := bd.getHistory()
	if len(history) < 3 || stats.Interactions() < 3 {
		return nil
	}
	var total int
	for _, h := range history {
		total += h.Interactions()
	}
	avg := float64(total) / float64(len(history))
	if float64(stats.Interactions()) <= 2*avg {
		return nil
	}
	return &Bookmark{
		Type:        BookmarkBusyWindow,
		Frame:       stats.WindowEndFrame,
		Scene:       stats.Scene,
		Description: fmt.Sprintf("%d interactions vs %.1f average", stats.Interactions(), avg),
	}
}

// checkIdleStretch fires once when the viewer has been left alone.
func (bd *BookmarkDetector) checkIdleStretch(stats WindowStats) *Bookmark {
	if stats.Interactions() > 0 || stats.Hovers > 0 {
		bd.quietCount = 0
		return nil
	}
	bd.quietCount++
	if bd.quietCount != idleWindows {
		return nil
	}
	return &Bookmark{
		Type:        BookmarkIdleStretch,
		Frame:       stats.WindowEndFrame,
		Scene:       stats.Scene,
		Description: fmt.Sprintf("no interaction for %d windows", idleWindows),
	}
}

func (bd *BookmarkDetector) checkSceneChange(stats WindowStats) *Bookmark {
	prev := bd.lastScene
	bd.lastScene = stats.Scene
	if prev == "" || prev == stats.Scene {
		return nil
	}
	return &Bookmark{
		Type:        BookmarkSceneChange,
		Frame:       stats.WindowEndFrame,
		Scene:       stats.Scene,
		Description: fmt.Sprintf("switched from %s", prev),
	}
}
