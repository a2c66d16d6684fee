// Package report renders lookup results as human-readable lines
package report

import (
	"fmt"
	"io"
	"time"

	"github.com/evyataryagoni/issflyover/internal/models"
)

// DateLayout is a long human-readable date with offset and zone name
const DateLayout = "Mon Jan 02 2006 15:04:05 GMT-0700 (MST)"

// PrintPassTimes writes one line per pass, rise time shown in loc
// A nil loc means time.Local
func PrintPassTimes(w io.Writer, passes []models.PassTime, loc *time.Location) error {
	if loc == nil {
		loc = time.Local
	}

	for _, pass := range passes {
		date := pass.Rise().In(loc).Format(DateLayout)
		if _, err := fmt.Fprintf(w, "Next pass at %s for %d seconds!\n", date, pass.Duration); err != nil {
			return err
		}
	}
	return nil
}

// Success writes the "It worked!" line for a single result
func Success(w io.Writer, what string, value any) {
	fmt.Fprintf(w, "It worked! Returned %s: %v\n", what, value)
}

// Failure writes the diagnostic line for a failed step
func Failure(w io.Writer, err error) {
	fmt.Fprintf(w, "It didn't work! %v\n", err)
}
