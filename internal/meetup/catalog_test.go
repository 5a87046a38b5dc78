package meetup

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	sharederrors "github.com/scan-io-git/meetup-data/pkg/shared/errors"
)

func TestBuildQuery(t *testing.T) {
	tests := []struct {
		name     string
		entity   string
		params   []string
		endpoint string
		query    map[string]string
		piFields []string
		order    string
	}{
		{
			name:     "members",
			entity:   EntityMembers,
			params:   []string{"PyData-Edinburgh"},
			endpoint: "/2/members",
			query:    map[string]string{"group_urlname": "PyData-Edinburgh"},
			piFields: []string{"name"},
			order:    "joined",
		},
		{
			name:     "activity",
			entity:   EntityActivity,
			endpoint: "/activity",
			query:    map[string]string{},
			piFields: []string{"member_name"},
			order:    "updated",
		},
		{
			name:     "past events",
			entity:   EntityPastEvents,
			params:   []string{"PyData-Edinburgh"},
			endpoint: "/PyData-Edinburgh/events",
			query:    map[string]string{"has_ended": "true"},
			piFields: []string{},
			order:    "updated",
		},
		{
			name:     "events alias",
			entity:   EntityEvents,
			params:   []string{"PyData-Edinburgh"},
			endpoint: "/PyData-Edinburgh/events",
			query:    map[string]string{"has_ended": "true"},
			piFields: []string{},
			order:    "updated",
		},
		{
			name:     "future events",
			entity:   EntityFutureEvents,
			params:   []string{"PyData-Edinburgh"},
			endpoint: "/PyData-Edinburgh/events",
			query:    map[string]string{"has_ended": "false"},
			piFields: []string{},
			order:    "updated",
		},
		{
			name:     "attendance",
			entity:   EntityAttendance,
			params:   []string{"PyData-Edinburgh", "245151789"},
			endpoint: "/PyData-Edinburgh/events/245151789/attendance",
			query:    map[string]string{},
			piFields: []string{"name"},
			order:    "time",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q, err := BuildQuery(tt.entity, tt.params)
			require.NoError(t, err)

			assert.Equal(t, tt.endpoint, q.Endpoint())
			assert.Equal(t, tt.query, q.Params())
			assert.ElementsMatch(t, tt.piFields, q.PIFields())
			assert.Equal(t, tt.order, q.Order())
		})
	}
}

func TestBuildQueryUsageErrors(t *testing.T) {
	tests := []struct {
		name    string
		entity  string
		params  []string
		wantMsg string
	}{
		{name: "unknown entity", entity: "groups", wantMsg: "unknown entity type groups"},
		{name: "members without group", entity: EntityMembers, wantMsg: "members requires a group name (from its URL)"},
		{name: "activity with params", entity: EntityActivity, params: []string{"x"}, wantMsg: "activity does not take any parameter"},
		{name: "events without group", entity: EntityFutureEvents, wantMsg: "events requires a group name (from its URL)"},
		{name: "attendance with one param", entity: EntityAttendance, params: []string{"group"}, wantMsg: "attendance requires a group name and an event id"},
		{name: "attendance with three params", entity: EntityAttendance, params: []string{"a", "b", "c"}, wantMsg: "attendance requires a group name and an event id"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := BuildQuery(tt.entity, tt.params)

			var usage *sharederrors.UsageError
			require.True(t, errors.As(err, &usage))
			assert.Equal(t, tt.wantMsg, err.Error())
		})
	}
}

func TestMembersUsesFirstParamOnly(t *testing.T) {
	q, err := BuildQuery(EntityMembers, []string{"one", "two"})
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"group_urlname": "one"}, q.Params())
}

func TestEntities(t *testing.T) {
	var names []string
	for _, e := range Entities() {
		names = append(names, e.Name)
	}
	assert.Equal(t, []string{"activity", "attendance", "future-events", "members", "past-events"}, names)

	e, ok := Lookup(EntityEvents)
	require.True(t, ok)
	assert.Equal(t, EntityPastEvents, e.Name)

	_, ok = Lookup("help")
	assert.False(t, ok)
}

func TestTokenHelp(t *testing.T) {
	help := TokenHelp("https://secure.example.com/authorize")
	assert.Contains(t, help, "https://secure.example.com/authorize?client_id=CONSUMER_KEY&response_type=token")
}
