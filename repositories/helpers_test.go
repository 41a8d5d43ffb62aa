package repositories

import (
	"errors"
	"fmt"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
)

func TestIsUniqueViolation(t *testing.T) {
	dup := &pq.Error{Code: pqUniqueViolation, Constraint: "teams_team_code_key"}

	assert.True(t, isUniqueViolation(dup, "teams_team_code_key"))
	assert.True(t, isUniqueViolation(fmt.Errorf("insert: %w", dup), ""))
	assert.False(t, isUniqueViolation(dup, "players_pkey"))
	assert.False(t, isUniqueViolation(&pq.Error{Code: "23503"}, ""))
	assert.False(t, isUniqueViolation(errors.New("plain"), ""))
}

type fakeResult struct{ n int64 }

func (r fakeResult) LastInsertId() (int64, error) { return 0, nil }
func (r fakeResult) RowsAffected() (int64, error) { return r.n, nil }

func TestCheckAffectedRows(t *testing.T) {
	notFound := errors.New("not found")
	assert.NoError(t, checkAffectedRows(fakeResult{n: 1}, notFound))
	assert.ErrorIs(t, checkAffectedRows(fakeResult{n: 0}, notFound), notFound)
}
