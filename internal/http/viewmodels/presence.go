package viewmodels

import (
	"fmt"
	"strings"
	"time"

	"github.com/prismtrack/console/internal/backend"
)

const onlineWindow = 5 * time.Minute

// AgentOnline reports whether an agent should carry the online badge: the
// backend marked it ONLINE and it was seen within the last five minutes.
// A stale ONLINE row renders as offline.
func AgentOnline(status string, lastSeen, now time.Time) bool {
	return status == "ONLINE" && now.Sub(lastSeen) < onlineWindow
}

// RelativeLastSeen renders a last-seen timestamp the way the agent pages
// show it. Anything in the future or under a minute old is "Just now".
func RelativeLastSeen(lastSeen, now time.Time) string {
	minutes := int(now.Sub(lastSeen).Minutes())
	if minutes <= 0 {
		return "Just now"
	}
	if minutes < 60 {
		return fmt.Sprintf("%d min ago", minutes)
	}
	hours := minutes / 60
	if hours < 24 {
		return fmt.Sprintf("%d %s ago", hours, plural("hour", hours))
	}
	days := hours / 24
	return fmt.Sprintf("%d %s ago", days, plural("day", days))
}

func plural(unit string, n int) string {
	if n == 1 {
		return unit
	}
	return unit + "s"
}

// ActivityStats summarizes one page of telemetry for the agent details view.
type ActivityStats struct {
	TotalRecords    int
	ActiveRecords   int
	IdleRecords     int
	UniqueProcesses []string
}

// SummarizeActivity derives activity statistics from telemetry rows.
// Process names are deduplicated in first-seen order; empty names do not
// count.
func SummarizeActivity(records []backend.TelemetryRecord) ActivityStats {
	stats := ActivityStats{TotalRecords: len(records)}
	seen := make(map[string]struct{}, len(records))
	for _, rec := range records {
		if rec.IsIdle {
			stats.IdleRecords++
		}
		if rec.ProcessName == "" {
			continue
		}
		if _, ok := seen[rec.ProcessName]; ok {
			continue
		}
		seen[rec.ProcessName] = struct{}{}
		stats.UniqueProcesses = append(stats.UniqueProcesses, rec.ProcessName)
	}
	stats.ActiveRecords = stats.TotalRecords - stats.IdleRecords
	return stats
}

// TruncateTitle caps a window title at 60 characters, appending "..." when
// something was cut. Counting is by rune so multibyte titles are not split.
func TruncateTitle(title string) string {
	const max = 60
	runes := []rune(title)
	if len(runes) <= max {
		return title
	}
	return string(runes[:max]) + "..."
}

// FormatDate renders a timestamp for table cells.
func FormatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Local().Format("Jan 2, 2006")
}

// FormatDateTime renders a timestamp with clock time for telemetry rows.
func FormatDateTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Local().Format("Jan 2, 2006 3:04:05 PM")
}

// StatusBadgeClass picks the pill styling for an agent status chip.
func StatusBadgeClass(online bool) string {
	if online {
		return "badge badge-online"
	}
	return "badge badge-offline"
}

// ActiveBadge renders the active flag the tenant tables show.
func ActiveBadge(active bool) string {
	if active {
		return "Active"
	}
	return "Inactive"
}

// DisplayOrDash substitutes a dash for blank backend text.
func DisplayOrDash(s string) string {
	if strings.TrimSpace(s) == "" {
		return "-"
	}
	return s
}
