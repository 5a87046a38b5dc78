// Package meetup maps the entities the meetup.com API exposes onto paginator queries.
package meetup

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/scan-io-git/meetup-data/internal/paginator"
	"github.com/scan-io-git/meetup-data/pkg/shared/errors"
)

// Entity names accepted on the command line.
const (
	EntityMembers      = "members"
	EntityActivity     = "activity"
	EntityPastEvents   = "past-events"
	EntityFutureEvents = "future-events"
	EntityAttendance   = "attendance"

	// EntityEvents is kept as an alias of past-events.
	EntityEvents = "events"
)

// Entity describes one fetchable collection.
type Entity struct {
	Name        string
	Description string
	Params      string // human readable positional parameters
	build       func(params []string) (paginator.Query, error)
}

// Query validates params and returns the query fetching the entity.
func (e Entity) Query(params []string) (paginator.Query, error) {
	return e.build(params)
}

var catalog = map[string]Entity{
	EntityMembers: {
		Name:        EntityMembers,
		Description: "members of a group",
		Params:      "GROUP",
		build:       membersQuery,
	},
	EntityActivity: {
		Name:        EntityActivity,
		Description: "activity of all groups you are a member of",
		build:       activityQuery,
	},
	EntityPastEvents: {
		Name:        EntityPastEvents,
		Description: "past events of a group",
		Params:      "GROUP",
		build:       eventsQuery(true),
	},
	EntityFutureEvents: {
		Name:        EntityFutureEvents,
		Description: "future events of a group",
		Params:      "GROUP",
		build:       eventsQuery(false),
	},
	EntityAttendance: {
		Name:        EntityAttendance,
		Description: "attendance of a single past event of a group",
		Params:      "GROUP EVENT_ID",
		build:       attendanceQuery,
	},
}

var aliases = map[string]string{
	EntityEvents: EntityPastEvents,
}

// Lookup resolves an entity name or alias.
func Lookup(name string) (Entity, bool) {
	if target, ok := aliases[name]; ok {
		name = target
	}
	e, ok := catalog[name]
	return e, ok
}

// Entities returns every entity sorted by name. Aliases are not listed.
func Entities() []Entity {
	out := make([]Entity, 0, len(catalog))
	for _, e := range catalog {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// BuildQuery looks up name and builds its query. Unknown entities and wrong
// parameters are reported as usage errors.
func BuildQuery(name string, params []string) (paginator.Query, error) {
	e, ok := Lookup(name)
	if !ok {
		return paginator.Query{}, errors.NewUsageError("unknown entity type %s", name)
	}
	return e.Query(params)
}

func membersQuery(params []string) (paginator.Query, error) {
	if len(params) == 0 {
		return paginator.Query{}, errors.NewUsageError("members requires a group name (from its URL)")
	}
	return paginator.NewQuery(
		"/2/members",
		map[string]string{"group_urlname": params[0]},
		[]string{"name"},
		"joined",
	), nil
}

func activityQuery(params []string) (paginator.Query, error) {
	if len(params) > 0 {
		return paginator.Query{}, errors.NewUsageError("activity does not take any parameter")
	}
	return paginator.NewQuery("/activity", nil, []string{"member_name"}, "updated"), nil
}

func eventsQuery(hasEnded bool) func([]string) (paginator.Query, error) {
	return func(params []string) (paginator.Query, error) {
		if len(params) == 0 {
			return paginator.Query{}, errors.NewUsageError("events requires a group name (from its URL)")
		}
		return paginator.NewQuery(
			fmt.Sprintf("/%s/events", params[0]),
			map[string]string{"has_ended": strconv.FormatBool(hasEnded)},
			nil,
			"updated",
		), nil
	}
}

func attendanceQuery(params []string) (paginator.Query, error) {
	if len(params) != 2 {
		return paginator.Query{}, errors.NewUsageError("attendance requires a group name and an event id")
	}
	return paginator.NewQuery(
		fmt.Sprintf("/%s/events/%s/attendance", params[0], params[1]),
		nil,
		[]string{"name"},
		"time",
	), nil
}
