package http

import (
	"testing"

	"github.com/confidence-group/hr-analytics-go/internal/domain/hierarchy"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildForestRendersSupervisorCycle(t *testing.T) {
	// Mutual supervisors: the builder promotes both to level N but leaves
	// ParentEmail set, so neither node is parentless.
	m := hierarchy.Map{
		"alpha@cg-bd.com": {Email: "alpha@cg-bd.com", Name: "Alpha", Level: "N", ParentEmail: "beta@cg-bd.com"},
		"beta@cg-bd.com":  {Email: "beta@cg-bd.com", Name: "Beta", Level: "N", ParentEmail: "alpha@cg-bd.com"},
	}

	forest := buildForest(m, nil)

	require.Len(t, forest, 1)
	assert.Equal(t, "alpha@cg-bd.com", forest[0].Email)
	require.Len(t, forest[0].Children, 1)
	assert.Equal(t, "beta@cg-bd.com", forest[0].Children[0].Email)
	assert.Empty(t, forest[0].Children[0].Children)
}

func TestBuildForestCycleBesideNormalTree(t *testing.T) {
	m := hierarchy.Map{
		"ceo@cg-bd.com":  {Email: "ceo@cg-bd.com", Name: "Chief", Level: "N"},
		"mgr@cg-bd.com":  {Email: "mgr@cg-bd.com", Name: "Manager", Level: "N-1", ParentEmail: "ceo@cg-bd.com"},
		"loop@cg-bd.com": {Email: "loop@cg-bd.com", Name: "Loop", Level: "N-2", ParentEmail: "pool@cg-bd.com"},
		"pool@cg-bd.com": {Email: "pool@cg-bd.com", Name: "Pool", Level: "N-2", ParentEmail: "loop@cg-bd.com"},
	}

	forest := buildForest(m, nil)

	require.Len(t, forest, 2)
	emails := []string{forest[0].Email, forest[1].Email}
	assert.ElementsMatch(t, []string{"ceo@cg-bd.com", "loop@cg-bd.com"}, emails)
}

func TestBuildForestSortsSiblingsByName(t *testing.T) {
	m := hierarchy.Map{
		"boss@cg-bd.com": {Email: "boss@cg-bd.com", Name: "Boss", Level: "N"},
		"zoe@cg-bd.com":  {Email: "zoe@cg-bd.com", Name: "Anna", Level: "N-1", ParentEmail: "boss@cg-bd.com"},
		"amy@cg-bd.com":  {Email: "amy@cg-bd.com", Name: "Zara", Level: "N-1", ParentEmail: "boss@cg-bd.com"},
	}

	forest := buildForest(m, nil)

	require.Len(t, forest, 1)
	require.Len(t, forest[0].Children, 2)
	assert.Equal(t, "Anna", forest[0].Children[0].Name)
	assert.Equal(t, "Zara", forest[0].Children[1].Name)
}

func TestBuildForestAnnotatesCXOAndRosterFields(t *testing.T) {
	m := hierarchy.Map{
		"boss@cg-bd.com": {
			Email:                 "boss@cg-bd.com",
			Name:                  "Boss",
			Level:                 "N",
			SupervisorName:        "Chairman",
			LineManagerEmployeeID: "42",
			SourceFilename:        "roster.xlsx",
		},
	}

	forest := buildForest(m, map[string]struct{}{"boss@cg-bd.com": {}})

	require.Len(t, forest, 1)
	assert.True(t, forest[0].IsCXO)
	assert.Equal(t, "Chairman", forest[0].SupervisorName)
	assert.Equal(t, "42", forest[0].LineManagerEmployeeID)
	assert.Equal(t, "roster.xlsx", forest[0].SourceFilename)
}
