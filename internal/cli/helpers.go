package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"github.com/thenoetrevino/clubhouse/internal/validate"
)

// AddOutputFlags registers the agent-friendly --json and --quiet flags
func AddOutputFlags(cmd *cobra.Command) {
	cmd.Flags().Bool("json", false, "Output in JSON format")
	cmd.Flags().Bool("quiet", false, "Minimal output (ID only)")
}

// ParseID parses a positional record identifier
func ParseID(kind, arg string) (int, error) {
	id, err := strconv.Atoi(strings.TrimSpace(arg))
	if err != nil {
		return 0, fmt.Errorf("%s ID %q: %w", kind, arg, &validate.ValidationError{Field: kind + "_id", Reason: validate.ReasonNotAnInteger})
	}
	if id < 0 {
		return 0, fmt.Errorf("%s ID %d: %w", kind, id, &validate.ValidationError{Field: kind + "_id", Reason: validate.ReasonNegative})
	}
	return id, nil
}

// Count formats n with thousands separators
func Count(n int) string {
	return humanize.Comma(int64(n))
}

// StringFlags copies the changed string flags of cmd into the fields they
// name and reports whether any flag was set.
func StringFlags(cmd *cobra.Command, fields map[string]*string) bool {
	changed := false
	for name, dst := range fields {
		flag := cmd.Flags().Lookup(name)
		if flag == nil || !flag.Changed {
			continue
		}
		*dst = flag.Value.String()
		changed = true
	}
	return changed
}
