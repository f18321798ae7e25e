package services

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dto "gigcircle.com/gigcircle/internal/data_models"
)

const fixturesYAML = `
users:
  - id: asha
    name: Asha
    email: asha@example.com
    wallet: 200
  - id: ravi
    name: Ravi
groups:
  - title: Morning run
    description: 5k around the lake
    category: sports
    location: Ulsoor
    maxMembers: 10
    creator: asha
    members: [ravi]
tasks:
  - title: Fix my bike
    description: Flat tyre
    reward: "40"
    deadline: "2025-06-05 18:00"
    creator: asha
    applicants: [ravi]
`

func TestSeeder_LoadsFixturesThroughServices(t *testing.T) {
	env := setupEnv(t, true)
	ctx := context.Background()

	fixtures, err := ParseFixtures(strings.NewReader(fixturesYAML))
	require.NoError(t, err)
	require.Len(t, fixtures.Users, 2)
	assert.Equal(t, 10, fixtures.Groups[0].MaxMembers)

	seeder := NewSeeder(env.users, env.wallet, env.groups, env.tasks)
	report, err := seeder.Load(ctx, fixtures)
	require.NoError(t, err)
	assert.Equal(t, SeedReport{Users: 2, Groups: 1, Tasks: 1}, report)

	assert.EqualValues(t, 160, env.balance(t, "asha"))
	assert.EqualValues(t, 10, env.balance(t, "ravi"))
	env.assertLedgerMatches(t, "asha")

	groups, err := env.groups.ListGroups(ctx, "ravi", dto.GroupFilter{})
	require.NoError(t, err)
	require.Len(t, groups, 1)
	assert.True(t, groups[0].Joined)
	assert.Equal(t, []string{"Ravi"}, groups[0].JoinedUserNames)

	applied, err := env.tasks.ListAppliedTasks(ctx, "ravi")
	require.NoError(t, err)
	assert.Len(t, applied, 1)
}

func TestParseFixtures_RejectsUnknownKeys(t *testing.T) {
	_, err := ParseFixtures(strings.NewReader("users:\n  - id: a\n    karma: 5\n"))
	assert.Error(t, err)

	empty, err := ParseFixtures(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, empty.Users)
}
