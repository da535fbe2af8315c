package scoring

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/SscSPs/site_safety_app/internal/apperrors"
	"github.com/SscSPs/site_safety_app/internal/core/domain"
)

// DefaultWindow is used when no window is requested.
const DefaultWindow = 30 * 24 * time.Hour

// MaxWindow bounds how much history a single request may scan.
const MaxWindow = 366 * 24 * time.Hour

// ParseWindow accepts "<n>d" or a Go duration such as "72h" and returns the
// window ending at asOf.
func ParseWindow(raw string, asOf time.Time) (domain.ScoreWindow, error) {
	length, err := parseLength(strings.TrimSpace(raw))
	if err != nil {
		return domain.ScoreWindow{}, err
	}
	return domain.ScoreWindow{From: asOf.Add(-length), To: asOf}, nil
}

func parseLength(raw string) (time.Duration, error) {
	if raw == "" {
		return DefaultWindow, nil
	}
	var length time.Duration
	if days, ok := strings.CutSuffix(raw, "d"); ok {
		n, err := strconv.Atoi(days)
		if err != nil {
			return 0, apperrors.NewValidationFailedError(fmt.Sprintf("invalid window %q", raw))
		}
		if n > int(MaxWindow/(24*time.Hour)) {
			return 0, outOfRange(raw)
		}
		length = time.Duration(n) * 24 * time.Hour
	} else {
		d, err := time.ParseDuration(raw)
		if err != nil {
			return 0, apperrors.NewValidationFailedError(fmt.Sprintf("invalid window %q: use e.g. 30d or 72h", raw))
		}
		length = d
	}
	if length <= 0 || length > MaxWindow {
		return 0, outOfRange(raw)
	}
	return length, nil
}

func outOfRange(raw string) error {
	return apperrors.NewValidationFailedError(fmt.Sprintf("window %q must be positive and at most 366d", raw))
}
