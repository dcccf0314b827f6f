package cleaner

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/nanoncore/ont-cleaner/types"
)

// SuccessMarker precedes the deleted ONT count in the confirmation output
const SuccessMarker = "success:"

// ParseDeletedCount extracts the number after the success marker.
// ok is false when the marker is absent, which is not an error. A marker
// followed by anything other than a non-negative integer is an error.
func ParseDeletedCount(output string) (count int, ok bool, err error) {
	i := strings.Index(output, SuccessMarker)
	if i < 0 {
		return 0, false, nil
	}

	rest := output[i+len(SuccessMarker):]
	if j := strings.Index(rest, SuccessMarker); j >= 0 {
		rest = rest[:j]
	}
	rest = strings.TrimSpace(rest)

	n, convErr := strconv.Atoi(rest)
	if convErr != nil || n < 0 {
		return 0, true, types.NewError(types.ErrUnexpectedOutput, "parse deleted count",
			fmt.Errorf("%q after %q is not a count", rest, SuccessMarker))
	}
	return n, true, nil
}
