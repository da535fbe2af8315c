package pgsql

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/SscSPs/site_safety_app/internal/apperrors"
	"github.com/SscSPs/site_safety_app/internal/core/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestConditionsNumbersPlaceholdersInOrder(t *testing.T) {
	var c conditions
	c.add("tenant_id = ?", "t1")
	c.addIf("site_id = ?", "")
	c.addIf("status = ?", "open")
	limit := c.bind(21)

	assert.Equal(t, " WHERE tenant_id = $1 AND status = $2", c.where())
	assert.Equal(t, "$3", limit)
	assert.Equal(t, []any{"t1", "open", 21}, c.args)
}

func TestInsertErrorMapsConstraintViolations(t *testing.T) {
	dup := fmt.Errorf("exec: %w", &pgconn.PgError{Code: pgUniqueViolation})
	assert.ErrorIs(t, insertError(dup, "site", "s1"), apperrors.ErrDuplicate)

	fk := &pgconn.PgError{Code: pgForeignKeyViolation, ConstraintName: "hazards_site_id_fkey"}
	err := insertError(fk, "hazard", "h1")
	assert.ErrorIs(t, err, apperrors.ErrValidation)
	assert.Contains(t, err.Error(), "hazards_site_id_fkey")

	other := errors.New("connection reset")
	assert.ErrorIs(t, insertError(other, "hazard", "h1"), other)
}

func TestFindErrorMapsNoRows(t *testing.T) {
	assert.ErrorIs(t, findError(pgx.ErrNoRows, "permit", "p1"), apperrors.ErrNotFound)
	assert.NotErrorIs(t, findError(errors.New("boom"), "permit", "p1"), apperrors.ErrNotFound)
}

func TestExpectSwappedReportsConcurrentModification(t *testing.T) {
	assert.ErrorIs(t, expectSwapped(pgconn.NewCommandTag("UPDATE 0"), "incident", "i1"), apperrors.ErrConcurrentModification)
	assert.NoError(t, expectSwapped(pgconn.NewCommandTag("UPDATE 1"), "incident", "i1"))
	assert.ErrorIs(t, expectOneRow(pgconn.NewCommandTag("UPDATE 0"), "site", "s1"), apperrors.ErrNotFound)
}

func TestAddPermitStatusFiltersOnObservedStatus(t *testing.T) {
	asOf := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)

	var expired conditions
	expired.add("tenant_id = ?", "t1")
	addPermitStatus(&expired, domain.PermitExpired, asOf)
	assert.Equal(t, " WHERE tenant_id = $1 AND (status = 'expired' OR (status = 'approved' AND end_date < $2))", expired.where())
	assert.Equal(t, []any{"t1", asOf}, expired.args)

	var approved conditions
	addPermitStatus(&approved, domain.PermitApproved, asOf)
	assert.Equal(t, " WHERE (status = 'approved' AND end_date >= $1)", approved.where())
	assert.Equal(t, []any{asOf}, approved.args)

	var denied conditions
	addPermitStatus(&denied, domain.PermitDenied, asOf)
	assert.Equal(t, " WHERE status = $1", denied.where())
	assert.Equal(t, []any{"denied"}, denied.args)

	var none conditions
	addPermitStatus(&none, "", asOf)
	assert.Empty(t, none.clauses)
	assert.Empty(t, none.args)
}
