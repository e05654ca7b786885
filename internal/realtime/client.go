package realtime

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"sort"
	"time"

	gtfs "github.com/MobilityData/gtfs-realtime-bindings/golang/gtfs"
	"google.golang.org/protobuf/proto"

	"github.com/yamanote-live/trainpos/internal/apierr"
	"github.com/yamanote-live/trainpos/internal/config"
	"github.com/yamanote-live/trainpos/internal/resolver"
)

// Fetcher retrieves the GTFS-RT TripUpdate feed over a shared
// *http.Client (created once at startup, closed at shutdown per
// spec.md §5).
type Fetcher struct {
	client  *http.Client
	baseURL string
	apiKey  string
}

// NewFetcher builds a Fetcher against baseURL, authenticating every
// request with apiKey as the "acl:consumerKey" query parameter.
func NewFetcher(client *http.Client, baseURL, apiKey string) *Fetcher {
	return &Fetcher{client: client, baseURL: baseURL, apiKey: apiKey}
}

// fetchFeed performs the GET and parses the protobuf body. Any
// transport, HTTP-status, or parse failure is reported as a
// FeedUnavailable so the caller degrades rather than propagates a 5xx.
func (f *Fetcher) fetchFeed(ctx context.Context) (*gtfs.FeedMessage, error) {
	u, err := url.Parse(f.baseURL)
	if err != nil {
		return nil, apierr.NewFeedUnavailable("invalid feed URL", err)
	}
	q := u.Query()
	q.Set("acl:consumerKey", f.apiKey)
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, apierr.NewFeedUnavailable("building feed request", err)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, apierr.NewFeedUnavailable("fetching feed", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, apierr.NewFeedUnavailable("feed returned non-200 status", nil)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, apierr.NewFeedUnavailable("reading feed body", err)
	}

	feed := &gtfs.FeedMessage{}
	if err := proto.Unmarshal(body, feed); err != nil {
		return nil, apierr.NewFeedUnavailable("parsing feed protobuf", err)
	}

	return feed, nil
}

// NormalizeParams carries the per-line inputs the normalization pass
// needs beyond the raw feed.
type NormalizeParams struct {
	TargetRouteID string
	LineConfig    config.LineConfig
	ServiceType   string
	ServiceDate   string
	Resolver      StopResolver
}

// FetchAndNormalize fetches the feed and returns one TrainSchedule per
// surviving trip for the target line. A feed fetch/parse failure
// propagates as *apierr.FeedUnavailable with a nil schedule slice; the
// caller is expected to turn that into a degraded status=error response.
func (f *Fetcher) FetchAndNormalize(ctx context.Context, p NormalizeParams) ([]TrainSchedule, error) {
	feed, err := f.fetchFeed(ctx)
	if err != nil {
		return nil, err
	}
	return Normalize(feed, p), nil
}

// Normalize is the pure filtering/resolution pass over an
// already-fetched feed, split out from FetchAndNormalize so it can be
// exercised directly against hand-built FeedMessage fixtures.
func Normalize(feed *gtfs.FeedMessage, p NormalizeParams) []TrainSchedule {
	var feedTimestamp int64
	if feed.Header != nil && feed.Header.Timestamp != nil {
		feedTimestamp = int64(*feed.Header.Timestamp)
	} else {
		feedTimestamp = time.Now().Unix()
	}

	var schedules []TrainSchedule

	for _, entity := range feed.Entity {
		tu := entity.TripUpdate
		if tu == nil || tu.Trip == nil || tu.Trip.TripId == nil {
			continue
		}
		trip := tu.Trip
		tripID := *trip.TripId

		if trip.ScheduleRelationship != nil && int32(*trip.ScheduleRelationship) == tripScheduleRelationshipCanceled {
			continue
		}

		var routeID string
		if trip.RouteId != nil {
			routeID = *trip.RouteId
		}
		if !resolver.BelongsToRoute(tripID, routeID, p.TargetRouteID) {
			continue
		}

		direction := resolver.Direction(tripID, p.LineConfig)
		trainNumber := resolver.TrainNumber(tripID)

		schedulesBySeq := make(map[int]RealtimeStationSchedule)
		for _, stu := range tu.StopTimeUpdate {
			if stu.StopSequence == nil {
				continue
			}
			seq := int(*stu.StopSequence)

			if stu.ScheduleRelationship != nil && int32(*stu.ScheduleRelationship) == stopScheduleRelationshipSkipped {
				continue
			}

			var rawStopID string
			if stu.StopId != nil {
				rawStopID = *stu.StopId
			}

			var arrival, departure *int64
			var delay int
			var delaySet bool
			if stu.Arrival != nil {
				if stu.Arrival.Time != nil {
					t := *stu.Arrival.Time
					arrival = &t
				}
				if stu.Arrival.Delay != nil {
					delay = int(*stu.Arrival.Delay)
					delaySet = true
				}
			}
			if stu.Departure != nil {
				if stu.Departure.Time != nil {
					t := *stu.Departure.Time
					departure = &t
				}
				if !delaySet && stu.Departure.Delay != nil {
					delay = int(*stu.Departure.Delay)
				}
			}

			if arrival == nil && departure == nil {
				continue
			}

			stationID, resolved := p.Resolver.Resolve(rawStopID, seq, trainNumber, p.ServiceType, direction)

			schedulesBySeq[seq] = RealtimeStationSchedule{
				StopSequence:  seq,
				StationID:     stationID,
				RawStopID:     rawStopID,
				ArrivalTime:   arrival,
				DepartureTime: departure,
				DelaySeconds:  delay,
				Resolved:      resolved,
			}
		}

		if len(schedulesBySeq) < 2 {
			continue
		}

		ordered := make([]int, 0, len(schedulesBySeq))
		for seq := range schedulesBySeq {
			ordered = append(ordered, seq)
		}
		sort.Ints(ordered)

		schedules = append(schedules, TrainSchedule{
			TripID:           tripID,
			TrainNumber:      trainNumber,
			ServiceDate:      p.ServiceDate,
			Direction:        direction,
			FeedTimestamp:    feedTimestamp,
			SchedulesBySeq:   schedulesBySeq,
			OrderedSequences: ordered,
		})
	}

	return schedules
}
