package options

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"estuday/pkg/dateutil"
)

// DateOptions captures the common --date flag. Both the storage form
// (2025-03-10) and the display form (10/03/2025) are accepted.
type DateOptions struct {
	DateString string
}

func AddDateArgs(cmd *cobra.Command, o *DateOptions) {
	cmd.Flags().StringVarP(&o.DateString, "date", "d", "",
		`Specify a date, example: --date="2025-03-10" or --date="10/03/2025".`)
}

// GetDate normalizes the flag to the ISO storage form. Empty input resolves
// to today.
func (o *DateOptions) GetDate() (string, error) {
	raw := strings.TrimSpace(o.DateString)
	if raw == "" {
		return dateutil.Format(time.Now()), nil
	}
	if strings.Contains(raw, "/") {
		if !dateutil.ValidBR(raw) {
			return "", fmt.Errorf("invalid date %q, expected DD/MM/YYYY", raw)
		}
		return dateutil.FromBR(raw), nil
	}
	if _, err := dateutil.Parse(raw); err != nil {
		return "", fmt.Errorf("invalid date %q, expected YYYY-MM-DD", raw)
	}
	return raw, nil
}
