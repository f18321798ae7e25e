package model

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gigcircle.com/gigcircle/internal/constants"
	"gigcircle.com/gigcircle/internal/util"
)

func at(s string) time.Time {
	t, err := time.ParseInLocation("2006-01-02 15:04", s, util.Location())
	if err != nil {
		panic(err)
	}
	return t
}

func TestParseReward(t *testing.T) {
	v, err := ParseReward(" 25 ")
	require.NoError(t, err)
	assert.EqualValues(t, 25, v)

	for _, bad := range []string{"", "abc", "0", "-3", "2.5"} {
		_, err := ParseReward(bad)
		assert.Error(t, err, bad)
	}
}

func TestTask_EffectiveStatus(t *testing.T) {
	now := at("2025-06-01 12:00")

	open := Task{Status: constants.TaskPending, Deadline: "2025-06-01 11:59"}
	assert.Equal(t, constants.TaskExpired, open.EffectiveStatus(now))
	assert.False(t, open.IsOpen(now))
	assert.Equal(t, constants.TaskPending, open.Status)

	accepted := Task{Status: constants.TaskAccepted, Deadline: "2025-05-30"}
	assert.Equal(t, constants.TaskExpired, accepted.EffectiveStatus(now))

	submitted := Task{Status: constants.TaskSubmitted, Deadline: "2025-05-30"}
	assert.Equal(t, constants.TaskSubmitted, submitted.EffectiveStatus(now))

	sameDay := Task{Status: constants.TaskActive, Deadline: "2025-06-01"}
	assert.Equal(t, constants.TaskActive, sameDay.EffectiveStatus(now))
	assert.True(t, sameDay.IsOpen(now))

	unparseable := Task{Status: constants.TaskPending, Deadline: "soon"}
	assert.Equal(t, constants.TaskPending, unparseable.EffectiveStatus(now))
}

func TestTask_JSONCarriesDerivedFlags(t *testing.T) {
	cases := map[constants.TaskStatus][2]bool{
		constants.TaskPending:   {false, false},
		constants.TaskAccepted:  {false, false},
		constants.TaskSubmitted: {true, false},
		constants.TaskCompleted: {true, true},
	}

	for status, want := range cases {
		raw, err := json.Marshal(&Task{ID: "t1", Status: status})
		require.NoError(t, err)

		var out map[string]interface{}
		require.NoError(t, json.Unmarshal(raw, &out))
		assert.Equal(t, "t1", out["id"])
		assert.Equal(t, want[0], out["completedByUser"], status)
		assert.Equal(t, want[1], out["completedByCreator"], status)
	}
}

func TestStatusPriority(t *testing.T) {
	assert.Less(t, StatusPriority(constants.TaskPending), StatusPriority(constants.TaskActive))
	assert.Equal(t, StatusPriority(constants.TaskAccepted), StatusPriority(constants.TaskSubmitted))
	assert.Less(t, StatusPriority(constants.TaskSubmitted), StatusPriority(constants.TaskCompleted))
	assert.Less(t, StatusPriority(constants.TaskCompleted), StatusPriority(constants.TaskExpired))
	assert.Equal(t, 999, StatusPriority("unknown"))
}

func TestGroup_Expiry(t *testing.T) {
	now := at("2025-06-01 12:00")

	g := Group{Status: constants.GroupActive, ExpiryDate: "2025-06-01", ExpiryTime: "11:00"}
	assert.True(t, g.IsExpiredAt(now))
	assert.Equal(t, constants.GroupExpired, g.EffectiveStatus(now))

	g.ExpiryTime = ""
	assert.False(t, g.IsExpiredAt(now))

	never := Group{Status: constants.GroupActive}
	assert.Equal(t, constants.GroupActive, never.EffectiveStatus(now))

	stored := Group{Status: constants.GroupExpired, ExpiryDate: "2030-01-01"}
	assert.True(t, stored.IsExpiredAt(now))
}

func TestGroup_IsFull(t *testing.T) {
	g := Group{MaxMembers: 2, MemberCount: 1}
	assert.False(t, g.IsFull())
	g.MemberCount = 2
	assert.True(t, g.IsFull())
}

func TestIDSet(t *testing.T) {
	set := NewIDSet("a", "b", "a")
	assert.Equal(t, IDSet{"a", "b"}, set)

	added := SetAdd(set, "c")
	assert.Len(t, set, 2)
	assert.True(t, SetContains(added, "c"))
	assert.Same(t, &added[0], &SetAdd(added, "c")[0])

	removed := SetRemove(added, "a")
	assert.Equal(t, IDSet{"b", "c"}, removed)
	assert.False(t, SetContains(removed, "a"))
	assert.Equal(t, IDSet{}, SetRemove(IDSet{}, "x"))
}

func TestTask_ApplyEffectiveStatusClearsAssignee(t *testing.T) {
	now := at("2025-06-01 12:00")

	late := Task{Status: constants.TaskAccepted, AssignedTo: "worker", Deadline: "2025-06-01 11:00"}
	late.ApplyEffectiveStatus(now)
	assert.Equal(t, constants.TaskExpired, late.Status)
	assert.Empty(t, late.AssignedTo)

	delivered := Task{Status: constants.TaskSubmitted, AssignedTo: "worker", Deadline: "2025-06-01 11:00"}
	delivered.ApplyEffectiveStatus(now)
	assert.Equal(t, constants.TaskSubmitted, delivered.Status)
	assert.Equal(t, "worker", delivered.AssignedTo)
}
