package employee

import (
	"context"
	"database/sql"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const detailColumns = "e.id, e.name, e.salary, e.department_id, e.project_id, " +
	"d.name AS department_name, p.name AS project_name"

// sortColumns is the only source of ORDER BY identifiers; caller input is a
// key into it, never part of the SQL text.
var sortColumns = map[string]clause.Column{
	"id":             {Table: "e", Name: "id"},
	"name":           {Table: "e", Name: "name"},
	"salary":         {Table: "e", Name: "salary"},
	"departmentName": {Table: "d", Name: "name"},
	"projectName":    {Table: "p", Name: "name"},
}

const defaultSortKey = "id"

func SortKeys() []string {
	return []string{"id", "name", "salary", "departmentName", "projectName"}
}

func IsSortKey(key string) bool {
	_, ok := sortColumns[key]
	return ok
}

//go:generate mockgen -source=employee_repo.go -destination=mock/employee_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, empl *Employee) error
	Update(ctx context.Context, empl *Employee) (int64, error)
	Delete(ctx context.Context, id int64) (int64, error)
	FindByID(ctx context.Context, id int64) (*Employee, error)
	FindByIDWithJoin(ctx context.Context, id int64) (*EmployeeDetail, error)
	FindAllWithJoin(ctx context.Context) ([]EmployeeDetail, error)
	Search(ctx context.Context, criteria SearchCriteria) ([]EmployeeDetail, error)
}

type repository struct {
	db *gorm.DB
	tx *sql.Tx
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

// WithTx returns a repository whose statements run on tx. It clones the
// session the same way gorm.DB.Begin does and swaps the connection pool.
func (r *repository) WithTx(tx *sql.Tx) Repository {
	conn := r.db.Session(&gorm.Session{
		Context:                context.Background(),
		NewDB:                  true,
		SkipDefaultTransaction: true,
	})
	conn.Statement.ConnPool = tx
	return &repository{
		db: conn,
		tx: tx,
	}
}

func (r *repository) Create(ctx context.Context, empl *Employee) error {
	return r.db.WithContext(ctx).
		Select("name", "salary", "department_id", "project_id").
		Create(empl).Error
}

func (r *repository) Update(ctx context.Context, empl *Employee) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&Employee{}).
		Where("id = ?", empl.ID).
		Updates(map[string]any{
			"name":          empl.Name,
			"salary":        empl.Salary,
			"department_id": empl.DepartmentID,
			"project_id":    empl.ProjectID,
		})
	return res.RowsAffected, res.Error
}

func (r *repository) Delete(ctx context.Context, id int64) (int64, error) {
	res := r.db.WithContext(ctx).Delete(&Employee{}, "id = ?", id)
	return res.RowsAffected, res.Error
}

func (r *repository) FindByID(ctx context.Context, id int64) (*Employee, error) {
	var empl Employee
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		Take(&empl).Error
	if err != nil {
		return nil, err
	}
	return &empl, nil
}

func (r *repository) joined(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Table("employee AS e").
		Select(detailColumns).
		Joins("JOIN department AS d ON d.id = e.department_id").
		Joins("JOIN project AS p ON p.id = e.project_id")
}

func (r *repository) FindByIDWithJoin(ctx context.Context, id int64) (*EmployeeDetail, error) {
	var detail EmployeeDetail
	err := r.joined(ctx).
		Where("e.id = ?", id).
		Take(&detail).Error
	if err != nil {
		return nil, err
	}
	return &detail, nil
}

func (r *repository) FindAllWithJoin(ctx context.Context) ([]EmployeeDetail, error) {
	var rows []EmployeeDetail
	err := r.joined(ctx).
		Order(clause.OrderByColumn{Column: sortColumns[defaultSortKey]}).
		Find(&rows).Error
	return rows, err
}

func (r *repository) Search(ctx context.Context, criteria SearchCriteria) ([]EmployeeDetail, error) {
	q := r.joined(ctx)

	if criteria.Search != "" {
		pattern := "%" + escapeLike(strings.ToLower(criteria.Search)) + "%"
		q = q.Where(
			`LOWER(e.name) LIKE ? ESCAPE '\' OR LOWER(d.name) LIKE ? ESCAPE '\' OR LOWER(p.name) LIKE ? ESCAPE '\'`,
			pattern, pattern, pattern,
		)
	}

	key := criteria.SortBy
	col, ok := sortColumns[key]
	if !ok {
		key = defaultSortKey
		col = sortColumns[key]
	}
	q = q.Order(clause.OrderByColumn{Column: col, Desc: strings.EqualFold(criteria.SortOrder, "desc")})
	if key != defaultSortKey {
		q = q.Order(clause.OrderByColumn{Column: sortColumns[defaultSortKey]})
	}

	var rows []EmployeeDetail
	err := q.Offset(criteria.Offset).
		Limit(criteria.Limit).
		Find(&rows).Error
	return rows, err
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
