package segment

import (
	"sort"

	"github.com/pkg/errors"

	"github.com/crimson-sun/funnelscope/internal/model"
)

// Join builds one FunnelRecord per aggregated user by attaching the
// attributes of the user's chronologically earliest event: device, city
// and first event time, plus the derived hour and late-night flag.
// Timestamp ties keep the first event in input order (the replacement
// test is strictly-before). The drop-stage label is left unset; the
// caller classifies records after joining.
//
// Returns an error if a user has funnel state but no event, which would
// mean the aggregation and the join disagree on the user set.
func Join(states map[int]model.FunnelState, events []model.Event) ([]model.FunnelRecord, error) {
	earliest := make(map[int]model.Event, len(states))
	for _, e := range events {
		cur, ok := earliest[e.UserID]
		if !ok || e.Timestamp.Before(cur.Timestamp) {
			earliest[e.UserID] = e
		}
	}

	records := make([]model.FunnelRecord, 0, len(states))
	for userID, state := range states {
		first, ok := earliest[userID]
		if !ok {
			return nil, errors.Errorf("segment: user %d has funnel state but no events", userID)
		}
		hour := first.Timestamp.Hour()
		records = append(records, model.FunnelRecord{
			UserID:         userID,
			State:          state,
			Device:         first.Device,
			City:           first.City,
			FirstEventTime: first.Timestamp,
			Hour:           hour,
			LateNight:      model.IsLateNight(hour),
		})
	}

	sort.Slice(records, func(i, j int) bool { return records[i].UserID < records[j].UserID })
	return records, nil
}
