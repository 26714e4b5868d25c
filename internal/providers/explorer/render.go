package explorer

import (
	"fmt"
	"strconv"
)

// FormatLong renders one ls-style line per entry: permissions, owner,
// human-readable size, modified time, display name. Presentation layers
// show these columns but commit back plain name lines.
func FormatLong(snap *Snapshot) []string {
	lines := make([]string, len(snap.Entries))
	for i, e := range snap.Entries {
		lines[i] = fmt.Sprintf("%s %6s %8s %s %s",
			e.Mode.String(),
			strconv.FormatUint(uint64(e.OwnerID), 10),
			humanSize(e.Size),
			e.ModTime.Format("Jan _2 15:04"),
			e.DisplayName(),
		)
	}
	return lines
}

// humanSize formats a byte count with binary units.
func humanSize(n uint64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%dB", n)
	}
	div, exp := uint64(unit), 0
	for v := n / unit; v >= unit; v /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f%cB", float64(n)/float64(div), "KMGTPE"[exp])
}
