package publish

import (
	"github.com/dmitrijs2005/placebot/internal/roblox"
)

// ParseTargetID interprets the optional place id argument. Anything that is
// not a plain run of digits, including an empty string, means "create a new
// place" and yields 0.
func ParseTargetID(raw string) int64 {
	id, err := roblox.ParsePlaceID(raw)
	if err != nil {
		return 0
	}
	return id
}
