// Package resolver decides which internal line a real-time feed entity
// belongs to and what direction and train number it carries, when the
// feed itself leaves route_id blank — a standing quirk of the upstream
// GTFS-RT TripUpdate feed this service consumes.
package resolver

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/yamanote-live/trainpos/internal/config"
)

// BelongsToRoute decides whether a feed entity belongs to targetRouteID.
// An explicit, non-blank routeIDFromFeed is trusted outright; otherwise
// the trip id's trailing character is looked up in the closed
// suffix->candidate-routes table.
func BelongsToRoute(tripID, routeIDFromFeed, targetRouteID string) bool {
	if routeIDFromFeed != "" {
		return routeIDFromFeed == targetRouteID
	}

	if tripID == "" {
		return false
	}
	suffix := strings.ToUpper(tripID[len(tripID)-1:])
	for _, candidate := range config.SuffixToRoutes[suffix] {
		if candidate == targetRouteID {
			return true
		}
	}
	return false
}

// loop-line direction prefixes; specific to the system's one loop line.
const (
	outerLoopPrefix = "4201"
	innerLoopPrefix = "4211"
)

var trainNumberPattern = regexp.MustCompile(`(\d{3,4})([A-Z])$`)

// Direction derives a trip's running direction. The loop line is
// identified by a fixed numeric prefix; every other line falls back to
// the odd/even convention on the trip id's numeric body (odd =
// outbound-equivalent, even = inbound-equivalent), mapped to the
// target route's own direction-name pair.
func Direction(tripID string, lineConfig config.LineConfig) string {
	if lineConfig.IsLoop {
		switch {
		case strings.HasPrefix(tripID, outerLoopPrefix):
			return lineConfig.OuterLoopName
		case strings.HasPrefix(tripID, innerLoopPrefix):
			return lineConfig.InnerLoopName
		}
	}

	isOdd, ok := oddEvenFromTripID(tripID)
	if !ok {
		return "Unknown"
	}

	outbound, inbound := lineConfig.OutboundName, lineConfig.InboundName
	if outbound == "" {
		outbound = "Outbound"
	}
	if inbound == "" {
		inbound = "Inbound"
	}
	if isOdd {
		return outbound
	}
	return inbound
}

// oddEvenFromTripID extracts the digits after the fixed 4-character
// prefix and reports whether the resulting number is odd.
func oddEvenFromTripID(tripID string) (isOdd bool, ok bool) {
	if len(tripID) <= 4 {
		return false, false
	}
	var digits strings.Builder
	for _, r := range tripID[4:] {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}
	if digits.Len() == 0 {
		return false, false
	}
	num, err := strconv.Atoi(digits.String())
	if err != nil {
		return false, false
	}
	return num%2 == 1, true
}

// TrainNumber extracts and normalizes the public train number from a
// trip id: the trailing 3-or-4-digit run followed by one uppercase
// letter, with leading zeros on the digits stripped. Trip ids that
// don't match the pattern are returned unchanged rather than truncated
// — an unrecognized shape is safer left whole than sliced blindly.
//
// A trip id carrying one of the loop line's direction prefixes has
// that prefix stripped before the pattern is applied. Without this,
// a train number whose leading digits happen to extend the prefix's
// own trailing digits gets folded into the match — e.g. "4201301G"
// would otherwise yield "1301G" instead of the correct "301G", since
// the pattern alone can't tell where the prefix ends and the train
// number begins.
func TrainNumber(tripID string) string {
	body := tripID
	switch {
	case strings.HasPrefix(tripID, outerLoopPrefix):
		body = tripID[len(outerLoopPrefix):]
	case strings.HasPrefix(tripID, innerLoopPrefix):
		body = tripID[len(innerLoopPrefix):]
	}

	m := trainNumberPattern.FindStringSubmatch(body)
	if m == nil {
		return tripID
	}
	digits, letter := m[1], m[2]
	n, err := strconv.Atoi(digits)
	if err != nil {
		return tripID
	}
	return strconv.Itoa(n) + letter
}
