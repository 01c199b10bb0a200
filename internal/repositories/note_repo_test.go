package repositories

import (
	"context"
	"errors"
	"testing"
	"time"

	"saasnotes/internal/models"

	"github.com/google/uuid"
	pgx "github.com/jackc/pgx/v5"
	pgxmock "github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
)

type NoteRepoTestSuite struct {
	suite.Suite
	mock      pgxmock.PgxPoolIface
	repo      NoteRepository
	tenantID1 uuid.UUID
	tenantID2 uuid.UUID
	authorID  uuid.UUID
	noteID    uuid.UUID
	context   context.Context
}

func (suite *NoteRepoTestSuite) SetupTest() {
	mock, err := pgxmock.NewPool()
	assert.NoError(suite.T(), err)
	suite.mock = mock

	suite.repo = NewNoteRepo(mock)
	suite.tenantID1 = uuid.New()
	suite.tenantID2 = uuid.New()
	suite.authorID = uuid.New()
	suite.noteID = uuid.New()
	suite.context = context.Background()
}

func (suite *NoteRepoTestSuite) TearDownTest() {
	suite.mock.Close()
}

func TestNoteRepoTestSuite(t *testing.T) {
	suite.Run(t, new(NoteRepoTestSuite))
}

func (suite *NoteRepoTestSuite) newNote() *models.Note {
	return &models.Note{
		ID:       suite.noteID,
		TenantID: suite.tenantID1,
		AuthorID: suite.authorID,
		Title:    "Q3 planning",
		Content:  "Draft agenda for the quarterly review.",
	}
}

const (
	lockTenantSQL = `SELECT id, plan FROM tenants WHERE id = \$1 FOR UPDATE`
	countNotesSQL = `SELECT COUNT\(\*\) FROM notes WHERE tenant_id = \$1`
	insertNoteSQL = `INSERT INTO notes \(id, tenant_id, author_id, title, content, created_at, updated_at\)`
	deleteNoteSQL = `DELETE FROM notes WHERE tenant_id = \$1 AND id = \$2`
)

func (suite *NoteRepoTestSuite) TestCreateEnforcingQuota_FreeUnderLimit() {
	note := suite.newNote()
	now := time.Now()

	suite.mock.ExpectBegin()
	suite.mock.ExpectQuery(lockTenantSQL).WithArgs(note.TenantID).
		WillReturnRows(pgxmock.NewRows([]string{"id", "plan"}).AddRow(note.TenantID, models.PlanFree))
	suite.mock.ExpectQuery(countNotesSQL).WithArgs(note.TenantID).
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(2))
	suite.mock.ExpectQuery(insertNoteSQL).
		WithArgs(note.ID, note.TenantID, note.AuthorID, note.Title, note.Content).
		WillReturnRows(pgxmock.NewRows([]string{"created_at", "updated_at"}).AddRow(now, now))
	suite.mock.ExpectCommit()
	suite.mock.ExpectRollback()

	err := suite.repo.CreateEnforcingQuota(suite.context, note)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), now, note.CreatedAt)
	assert.NoError(suite.T(), suite.mock.ExpectationsWereMet())
}

func (suite *NoteRepoTestSuite) TestCreateEnforcingQuota_FreeAtLimit() {
	note := suite.newNote()

	suite.mock.ExpectBegin()
	suite.mock.ExpectQuery(lockTenantSQL).WithArgs(note.TenantID).
		WillReturnRows(pgxmock.NewRows([]string{"id", "plan"}).AddRow(note.TenantID, models.PlanFree))
	suite.mock.ExpectQuery(countNotesSQL).WithArgs(note.TenantID).
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(models.FreeNoteLimit))
	suite.mock.ExpectRollback()

	err := suite.repo.CreateEnforcingQuota(suite.context, note)
	assert.True(suite.T(), errors.Is(err, models.ErrNoteLimitReached))
	assert.NoError(suite.T(), suite.mock.ExpectationsWereMet())
}

func (suite *NoteRepoTestSuite) TestCreateEnforcingQuota_ProSkipsCount() {
	note := suite.newNote()
	now := time.Now()

	suite.mock.ExpectBegin()
	suite.mock.ExpectQuery(lockTenantSQL).WithArgs(note.TenantID).
		WillReturnRows(pgxmock.NewRows([]string{"id", "plan"}).AddRow(note.TenantID, models.PlanPro))
	suite.mock.ExpectQuery(insertNoteSQL).
		WithArgs(note.ID, note.TenantID, note.AuthorID, note.Title, note.Content).
		WillReturnRows(pgxmock.NewRows([]string{"created_at", "updated_at"}).AddRow(now, now))
	suite.mock.ExpectCommit()
	suite.mock.ExpectRollback()

	err := suite.repo.CreateEnforcingQuota(suite.context, note)
	assert.NoError(suite.T(), err)
	assert.NoError(suite.T(), suite.mock.ExpectationsWereMet())
}

func (suite *NoteRepoTestSuite) TestCreateEnforcingQuota_TenantMissing() {
	note := suite.newNote()

	suite.mock.ExpectBegin()
	suite.mock.ExpectQuery(lockTenantSQL).WithArgs(note.TenantID).
		WillReturnError(pgx.ErrNoRows)
	suite.mock.ExpectRollback()

	err := suite.repo.CreateEnforcingQuota(suite.context, note)
	assert.True(suite.T(), errors.Is(err, models.ErrTenantNotFound))
	assert.NoError(suite.T(), suite.mock.ExpectationsWereMet())
}

func (suite *NoteRepoTestSuite) TestCreateEnforcingQuota_BeginError() {
	note := suite.newNote()

	suite.mock.ExpectBegin().WillReturnError(errors.New("connection refused"))

	err := suite.repo.CreateEnforcingQuota(suite.context, note)
	assert.Error(suite.T(), err)
	assert.Contains(suite.T(), err.Error(), "connection refused")
}

func (suite *NoteRepoTestSuite) TestGetByID_Success() {
	now := time.Now()
	suite.mock.ExpectQuery(`SELECT n.id, n.tenant_id, n.author_id, n.title, n.content, u.email, n.created_at, n.updated_at`).
		WithArgs(suite.tenantID1, suite.noteID).
		WillReturnRows(pgxmock.NewRows([]string{"id", "tenant_id", "author_id", "title", "content", "email", "created_at", "updated_at"}).
			AddRow(suite.noteID, suite.tenantID1, suite.authorID, "Q3 planning", "Draft agenda.", "user@acme.test", now, now))

	note, err := suite.repo.GetByID(suite.context, suite.tenantID1, suite.noteID)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), suite.noteID, note.ID)
	assert.Equal(suite.T(), "user@acme.test", note.AuthorEmail)
}

func (suite *NoteRepoTestSuite) TestGetByID_WrongTenantLooksMissing() {
	suite.mock.ExpectQuery(`SELECT n.id, n.tenant_id, n.author_id, n.title, n.content, u.email, n.created_at, n.updated_at`).
		WithArgs(suite.tenantID2, suite.noteID).
		WillReturnError(pgx.ErrNoRows)

	note, err := suite.repo.GetByID(suite.context, suite.tenantID2, suite.noteID)
	assert.Nil(suite.T(), note)
	assert.True(suite.T(), errors.Is(err, models.ErrNoteNotFound))
}

func (suite *NoteRepoTestSuite) TestList_OnlyTenantRows() {
	now := time.Now()
	suite.mock.ExpectQuery(`FROM notes n`).
		WithArgs(suite.tenantID1).
		WillReturnRows(pgxmock.NewRows([]string{"id", "tenant_id", "author_id", "title", "content", "email", "created_at", "updated_at"}).
			AddRow(uuid.New(), suite.tenantID1, suite.authorID, "Second", "b", "user@acme.test", now, now).
			AddRow(uuid.New(), suite.tenantID1, suite.authorID, "First", "a", "user@acme.test", now.Add(-time.Hour), now.Add(-time.Hour)))

	notes, err := suite.repo.List(suite.context, suite.tenantID1)
	assert.NoError(suite.T(), err)
	assert.Len(suite.T(), notes, 2)
	assert.Equal(suite.T(), "Second", notes[0].Title)
}

func (suite *NoteRepoTestSuite) TestList_Empty() {
	suite.mock.ExpectQuery(`FROM notes n`).
		WithArgs(suite.tenantID1).
		WillReturnRows(pgxmock.NewRows([]string{"id", "tenant_id", "author_id", "title", "content", "email", "created_at", "updated_at"}))

	notes, err := suite.repo.List(suite.context, suite.tenantID1)
	assert.NoError(suite.T(), err)
	assert.NotNil(suite.T(), notes)
	assert.Len(suite.T(), notes, 0)
}

func (suite *NoteRepoTestSuite) TestUpdate_Success() {
	note := suite.newNote()
	now := time.Now()

	suite.mock.ExpectQuery(`UPDATE notes`).
		WithArgs(note.Title, note.Content, note.TenantID, note.ID).
		WillReturnRows(pgxmock.NewRows([]string{"updated_at"}).AddRow(now))

	err := suite.repo.Update(suite.context, note)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), now, note.UpdatedAt)
}

func (suite *NoteRepoTestSuite) TestUpdate_NotFound() {
	note := suite.newNote()
	note.TenantID = suite.tenantID2

	suite.mock.ExpectQuery(`UPDATE notes`).
		WithArgs(note.Title, note.Content, note.TenantID, note.ID).
		WillReturnError(pgx.ErrNoRows)

	err := suite.repo.Update(suite.context, note)
	assert.True(suite.T(), errors.Is(err, models.ErrNoteNotFound))
}

func (suite *NoteRepoTestSuite) TestDelete_Success() {
	suite.mock.ExpectExec(deleteNoteSQL).
		WithArgs(suite.tenantID1, suite.noteID).
		WillReturnResult(pgxmock.NewResult("DELETE", 1))

	err := suite.repo.Delete(suite.context, suite.tenantID1, suite.noteID)
	assert.NoError(suite.T(), err)
}

func (suite *NoteRepoTestSuite) TestDelete_NoRows() {
	suite.mock.ExpectExec(deleteNoteSQL).
		WithArgs(suite.tenantID2, suite.noteID).
		WillReturnResult(pgxmock.NewResult("DELETE", 0))

	err := suite.repo.Delete(suite.context, suite.tenantID2, suite.noteID)
	assert.True(suite.T(), errors.Is(err, models.ErrNoteNotFound))
}

func (suite *NoteRepoTestSuite) TestCountByTenant() {
	suite.mock.ExpectQuery(countNotesSQL).
		WithArgs(suite.tenantID1).
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(3))

	count, err := suite.repo.CountByTenant(suite.context, suite.tenantID1)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), 3, count)
}
