package employee_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"employee-api/internal/employee"
	"employee-api/internal/shared/connection"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

const testSchema = `
CREATE TABLE department (id INTEGER PRIMARY KEY AUTOINCREMENT, name TEXT NOT NULL);
CREATE TABLE project (id INTEGER PRIMARY KEY AUTOINCREMENT, name TEXT NOT NULL);
CREATE TABLE employee (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	name TEXT NOT NULL,
	salary REAL NOT NULL,
	department_id INTEGER NOT NULL REFERENCES department(id),
	project_id INTEGER NOT NULL REFERENCES project(id)
);
INSERT INTO department (id, name) VALUES (1, 'Engineering'), (2, 'Marketing'), (3, 'Research_Lab');
INSERT INTO project (id, name) VALUES (1, 'Apollo'), (2, 'Gemini'), (3, '100% Uptime');
`

type repoFixture struct {
	db   *gorm.DB
	repo employee.Repository
	ids  map[string]int64
}

func setupRepoTest(t *testing.T) *repoFixture {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:?_foreign_keys=on"), connection.GormConfig())
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// every connection to :memory: is a fresh database
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	for _, stmt := range splitStatements(testSchema) {
		require.NoError(t, db.Exec(stmt).Error)
	}

	return &repoFixture{
		db:   db,
		repo: employee.NewRepository(db),
		ids:  map[string]int64{},
	}
}

func splitStatements(schema string) []string {
	var out []string
	for _, stmt := range strings.Split(schema, ";") {
		if strings.TrimSpace(stmt) != "" {
			out = append(out, stmt)
		}
	}
	return out
}

func (f *repoFixture) seed(t *testing.T) {
	t.Helper()
	rows := []employee.Employee{
		{Name: "Alice", Salary: 50000, DepartmentID: 1, ProjectID: 1},
		{Name: "Bob", Salary: 60000, DepartmentID: 2, ProjectID: 2},
		{Name: "Carol", Salary: 50000, DepartmentID: 3, ProjectID: 1},
		{Name: "Dave", Salary: 70000, DepartmentID: 1, ProjectID: 3},
		{Name: "Eve", Salary: 55000, DepartmentID: 2, ProjectID: 2},
	}
	for i := range rows {
		require.NoError(t, f.repo.Create(context.Background(), &rows[i]))
		f.ids[rows[i].Name] = rows[i].ID
	}
}

func names(rows []employee.EmployeeDetail) []string {
	out := make([]string, len(rows))
	for i, r := range rows {
		out[i] = r.Name
	}
	return out
}

func TestRepository_CreateAndFind(t *testing.T) {
	ctx := context.Background()

	t.Run("store assigns unique ids", func(t *testing.T) {
		f := setupRepoTest(t)
		f.seed(t)

		seen := map[int64]bool{}
		for _, id := range f.ids {
			assert.NotZero(t, id)
			assert.False(t, seen[id], "duplicate id %d", id)
			seen[id] = true
		}
	})

	t.Run("joined read resolves names", func(t *testing.T) {
		f := setupRepoTest(t)
		alice := employee.Employee{Name: "Alice", Salary: 50000, DepartmentID: 1, ProjectID: 1}
		require.NoError(t, f.repo.Create(ctx, &alice))

		got, err := f.repo.FindByIDWithJoin(ctx, alice.ID)

		require.NoError(t, err)
		assert.Equal(t, "Alice", got.Name)
		assert.Equal(t, 50000.0, got.Salary)
		assert.Equal(t, "Engineering", got.DepartmentName)
		assert.Equal(t, "Apollo", got.ProjectName)
	})

	t.Run("raw read has foreign keys", func(t *testing.T) {
		f := setupRepoTest(t)
		f.seed(t)

		got, err := f.repo.FindByID(ctx, f.ids["Dave"])

		require.NoError(t, err)
		assert.Equal(t, int64(1), got.DepartmentID)
		assert.Equal(t, int64(3), got.ProjectID)
	})

	t.Run("missing id", func(t *testing.T) {
		f := setupRepoTest(t)

		_, err := f.repo.FindByID(ctx, 9999)
		assert.True(t, errors.Is(err, gorm.ErrRecordNotFound))

		_, err = f.repo.FindByIDWithJoin(ctx, 9999)
		assert.True(t, errors.Is(err, gorm.ErrRecordNotFound))
	})

	t.Run("unknown department is rejected by the store", func(t *testing.T) {
		f := setupRepoTest(t)
		bad := employee.Employee{Name: "Ghost", Salary: 1, DepartmentID: 42, ProjectID: 1}

		err := f.repo.Create(ctx, &bad)

		assert.Error(t, err)
		all, err := f.repo.FindAllWithJoin(ctx)
		require.NoError(t, err)
		assert.Empty(t, all)
	})
}

func TestRepository_Update(t *testing.T) {
	ctx := context.Background()

	t.Run("overwrites all mutable fields", func(t *testing.T) {
		f := setupRepoTest(t)
		f.seed(t)
		id := f.ids["Bob"]

		n, err := f.repo.Update(ctx, &employee.Employee{ID: id, Name: "Robert", Salary: 61000, DepartmentID: 3, ProjectID: 3})

		require.NoError(t, err)
		assert.Equal(t, int64(1), n)
		got, err := f.repo.FindByIDWithJoin(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, "Robert", got.Name)
		assert.Equal(t, 61000.0, got.Salary)
		assert.Equal(t, "Research_Lab", got.DepartmentName)
		assert.Equal(t, "100% Uptime", got.ProjectName)
	})

	t.Run("applying the same update twice is stable", func(t *testing.T) {
		f := setupRepoTest(t)
		f.seed(t)
		upd := employee.Employee{ID: f.ids["Eve"], Name: "Eve", Salary: 99000, DepartmentID: 1, ProjectID: 1}

		_, err := f.repo.Update(ctx, &upd)
		require.NoError(t, err)
		first, err := f.repo.FindByIDWithJoin(ctx, upd.ID)
		require.NoError(t, err)

		_, err = f.repo.Update(ctx, &upd)
		require.NoError(t, err)
		second, err := f.repo.FindByIDWithJoin(ctx, upd.ID)
		require.NoError(t, err)

		assert.Equal(t, first, second)
	})

	t.Run("missing id affects nothing and creates nothing", func(t *testing.T) {
		f := setupRepoTest(t)

		n, err := f.repo.Update(ctx, &employee.Employee{ID: 9999, Name: "Ghost", Salary: 1, DepartmentID: 1, ProjectID: 1})

		require.NoError(t, err)
		assert.Zero(t, n)
		_, err = f.repo.FindByID(ctx, 9999)
		assert.True(t, errors.Is(err, gorm.ErrRecordNotFound))
	})
}

func TestRepository_Delete(t *testing.T) {
	ctx := context.Background()
	f := setupRepoTest(t)
	f.seed(t)
	id := f.ids["Carol"]

	n, err := f.repo.Delete(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	_, err = f.repo.FindByIDWithJoin(ctx, id)
	assert.True(t, errors.Is(err, gorm.ErrRecordNotFound))

	n, err = f.repo.Delete(ctx, id)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestRepository_FindAllWithJoin(t *testing.T) {
	f := setupRepoTest(t)
	f.seed(t)

	rows, err := f.repo.FindAllWithJoin(context.Background())

	require.NoError(t, err)
	assert.Equal(t, []string{"Alice", "Bob", "Carol", "Dave", "Eve"}, names(rows))
	assert.Equal(t, "Marketing", rows[1].DepartmentName)
	assert.Equal(t, "Gemini", rows[1].ProjectName)
}

func TestRepository_Search(t *testing.T) {
	ctx := context.Background()
	f := setupRepoTest(t)
	f.seed(t)

	search := func(c employee.SearchCriteria) []string {
		t.Helper()
		if c.Limit == 0 {
			c.Limit = 100
		}
		rows, err := f.repo.Search(ctx, c)
		require.NoError(t, err)
		return names(rows)
	}

	t.Run("matches employee name case-insensitively", func(t *testing.T) {
		assert.Equal(t, []string{"Alice"}, search(employee.SearchCriteria{Search: "aLiC"}))
	})

	t.Run("matches department name", func(t *testing.T) {
		assert.Equal(t, []string{"Alice", "Dave"}, search(employee.SearchCriteria{Search: "engin"}))
	})

	t.Run("matches project name", func(t *testing.T) {
		assert.Equal(t, []string{"Alice", "Carol"}, search(employee.SearchCriteria{Search: "APOLLO"}))
	})

	t.Run("no match yields empty", func(t *testing.T) {
		assert.Empty(t, search(employee.SearchCriteria{Search: "zzz"}))
	})

	t.Run("whitespace in the term is matched as typed", func(t *testing.T) {
		assert.Equal(t, []string{"Dave"}, search(employee.SearchCriteria{Search: " "}))
		assert.Empty(t, search(employee.SearchCriteria{Search: " Ali"}))
	})

	t.Run("wildcards in input are literal", func(t *testing.T) {
		assert.Equal(t, []string{"Dave"}, search(employee.SearchCriteria{Search: "%"}))
		assert.Equal(t, []string{"Carol"}, search(employee.SearchCriteria{Search: "_"}))
	})

	t.Run("sort by salary breaks ties by id", func(t *testing.T) {
		assert.Equal(t, []string{"Alice", "Carol", "Eve", "Bob", "Dave"},
			search(employee.SearchCriteria{SortBy: "salary", SortOrder: "asc"}))
		assert.Equal(t, []string{"Dave", "Bob", "Eve", "Alice", "Carol"},
			search(employee.SearchCriteria{SortBy: "salary", SortOrder: "desc"}))
	})

	t.Run("sort by joined department name", func(t *testing.T) {
		assert.Equal(t, []string{"Alice", "Dave", "Bob", "Eve", "Carol"},
			search(employee.SearchCriteria{SortBy: "departmentName"}))
	})

	t.Run("sort by joined project name descending", func(t *testing.T) {
		assert.Equal(t, []string{"Bob", "Eve", "Alice", "Carol", "Dave"},
			search(employee.SearchCriteria{SortBy: "projectName", SortOrder: "DESC"}))
	})

	t.Run("unknown sort key falls back to id", func(t *testing.T) {
		assert.Equal(t, []string{"Alice", "Bob", "Carol", "Dave", "Eve"},
			search(employee.SearchCriteria{SortBy: "name; DROP TABLE employee"}))
		all, err := f.repo.FindAllWithJoin(ctx)
		require.NoError(t, err)
		assert.Len(t, all, 5)
	})

	t.Run("pages concatenate without gaps or duplicates", func(t *testing.T) {
		full := search(employee.SearchCriteria{SortBy: "name"})

		var paged []string
		for page := 1; page <= 3; page++ {
			c := employee.BuildSearchCriteria("", "name", "asc", page, 2)
			got := search(c)
			assert.LessOrEqual(t, len(got), 2)
			paged = append(paged, got...)
		}

		assert.Equal(t, full, paged)
	})

	t.Run("page past the end is empty", func(t *testing.T) {
		c := employee.BuildSearchCriteria("", "id", "asc", 10, 5)
		assert.Empty(t, search(c))
	})
}

func TestRepository_WithTx(t *testing.T) {
	ctx := context.Background()
	f := setupRepoTest(t)
	sqlDB, err := f.db.DB()
	require.NoError(t, err)

	t.Run("rollback discards the insert", func(t *testing.T) {
		tx, err := sqlDB.BeginTx(ctx, nil)
		require.NoError(t, err)

		e := employee.Employee{Name: "Temp", Salary: 1, DepartmentID: 1, ProjectID: 1}
		require.NoError(t, f.repo.WithTx(tx).Create(ctx, &e))
		inTx, err := f.repo.WithTx(tx).FindByIDWithJoin(ctx, e.ID)
		require.NoError(t, err)
		assert.Equal(t, "Temp", inTx.Name)

		require.NoError(t, tx.Rollback())

		_, err = f.repo.FindByID(ctx, e.ID)
		assert.True(t, errors.Is(err, gorm.ErrRecordNotFound))
	})

	t.Run("commit keeps the insert", func(t *testing.T) {
		tx, err := sqlDB.BeginTx(ctx, nil)
		require.NoError(t, err)

		e := employee.Employee{Name: "Kept", Salary: 1, DepartmentID: 2, ProjectID: 2}
		require.NoError(t, f.repo.WithTx(tx).Create(ctx, &e))
		require.NoError(t, tx.Commit())

		got, err := f.repo.FindByIDWithJoin(ctx, e.ID)
		require.NoError(t, err)
		assert.Equal(t, "Marketing", got.DepartmentName)
	})
}
