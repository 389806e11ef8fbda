package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/x/ansi"

	"github.com/abelbrown/hnbar/internal/otel"
)

// debugPanelChrome is the number of lines DebugPanel adds around its
// content: border and vertical padding.
const debugPanelChrome = 4

// debugOverlay renders journal stats and recent events. It returns an empty
// string when there is no ring.
func debugOverlay(ring *otel.RingBuffer, dropped uint64, width, height int) string {
	if ring == nil {
		return ""
	}

	stats := ring.Stats()
	lines := []string{
		DebugHeaderStyle.Render("Activity"),
		fmt.Sprintf("  Fetches:    %d rankings, %d items, %d errors",
			stats[otel.KindFetchTop], stats[otel.KindFetchItem], stats[otel.KindFetchError]),
		fmt.Sprintf("  Browser:    %d opened, %d failed",
			stats[otel.KindShellOpen], stats[otel.KindShellError]),
		fmt.Sprintf("  Notices:    %d", stats[otel.KindThresholdNotice]),
		fmt.Sprintf("  Store:      %d errors", stats[otel.KindStoreError]),
		fmt.Sprintf("  Journal:    %d / %d buffered, %d total, %d dropped", ring.Len(), ring.Cap(), ring.Total(), dropped),
		"",
		DebugHeaderStyle.Render("Recent Events"),
	}

	panelWidth := min(max(width-4, 20), 90)
	for _, e := range ring.Last(20) {
		lines = append(lines, "  "+ansi.Truncate(e.Summary(), panelWidth-8, "…"))
	}

	maxLines := max(height-debugPanelChrome, 1)
	if len(lines) > maxLines {
		lines = lines[:maxLines]
	}
	return DebugPanel.Width(panelWidth).Render(strings.Join(lines, "\n"))
}
