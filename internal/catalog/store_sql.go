package catalog

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"strconv"
	"strings"
	"time"
)

type SQLStore struct {
	db *sql.DB
}

func NewSQLStore(db *sql.DB) *SQLStore { return &SQLStore{db: db} }

// PutCourse upserts the course header and, when the course document carries
// lessons/blocks, replaces them wholesale (import semantics).
func (s *SQLStore) PutCourse(ctx context.Context, c Course) error {
	cj, err := json.Marshal(c.Categories)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx, `INSERT INTO courses (id,title,level,categories_json,created_at)
		VALUES ($1,$2,$3,$4,$5)
		ON CONFLICT (id) DO UPDATE SET title=EXCLUDED.title, level=EXCLUDED.level, categories_json=EXCLUDED.categories_json`,
		c.ID, c.Title, c.Level, string(cj), time.Now().Unix())
	if err != nil {
		return err
	}
	if len(c.Lessons) == 0 {
		return nil
	}
	if _, err := s.db.ExecContext(ctx, `DELETE FROM lessons WHERE course_id=$1`, c.ID); err != nil {
		return err
	}
	for i, l := range c.Lessons {
		pos := l.Position
		if pos == 0 {
			pos = i + 1
		}
		if _, err := s.db.ExecContext(ctx, `INSERT INTO lessons (id,course_id,title,position) VALUES ($1,$2,$3,$4)`,
			l.ID, c.ID, l.Title, pos); err != nil {
			return err
		}
		for j, b := range l.Blocks {
			bpos := b.Position
			if bpos == 0 {
				bpos = j + 1
			}
			btype := b.Type
			if btype == "" {
				btype = BlockText
			}
			if _, err := s.db.ExecContext(ctx, `INSERT INTO content_blocks (id,lesson_id,title,content,btype,is_required,position)
				VALUES ($1,$2,$3,$4,$5,$6,$7)`,
				b.ID, l.ID, b.Title, b.Content, btype, b.IsRequired, bpos); err != nil {
				return err
			}
		}
	}
	return nil
}

func (s *SQLStore) GetCourse(ctx context.Context, id string) (Course, error) {
	row := s.db.QueryRowContext(ctx, `SELECT id,title,level,categories_json,created_at FROM courses WHERE id=$1`, id)
	var c Course
	var cjson string
	if err := row.Scan(&c.ID, &c.Title, &c.Level, &cjson, &c.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Course{}, ErrNotFound
		}
		return Course{}, err
	}
	if err := json.Unmarshal([]byte(cjson), &c.Categories); err != nil {
		c.Categories = nil
	}
	return c, nil
}

// ListCourses scans every course matching the level filter. The category
// filter and pagination run in Go after the scan: categories live in a JSON
// column, and cutting the set in SQL first would drop matches the caller
// never sees. An unset Limit returns the full set, as the scorer requires.
func (s *SQLStore) ListCourses(ctx context.Context, opts CourseListOpts) ([]Course, error) {
	sqlStr := `SELECT id,title,level,categories_json,created_at FROM courses`
	args := []any{}
	if opts.Level != "" {
		args = append(args, opts.Level)
		sqlStr += ` WHERE level=$` + strconv.Itoa(len(args))
	}
	sqlStr += ` ORDER BY created_at, id`

	rows, err := s.db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Course{}
	for rows.Next() {
		var c Course
		var cjson string
		if err := rows.Scan(&c.ID, &c.Title, &c.Level, &cjson, &c.CreatedAt); err != nil {
			return nil, err
		}
		_ = json.Unmarshal([]byte(cjson), &c.Categories)
		if opts.Category != "" && !hasCategory(c.Categories, opts.Category) {
			continue
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if opts.Offset > 0 {
		if opts.Offset >= len(out) {
			return []Course{}, nil
		}
		out = out[opts.Offset:]
	}
	if opts.Limit > 0 && len(out) > opts.Limit {
		out = out[:opts.Limit]
	}
	return out, nil
}

func (s *SQLStore) ListLessons(ctx context.Context, courseID string) ([]Lesson, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id,course_id,title,position FROM lessons WHERE course_id=$1 ORDER BY position, id`, courseID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []Lesson{}
	for rows.Next() {
		var l Lesson
		if err := rows.Scan(&l.ID, &l.CourseID, &l.Title, &l.Position); err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	return out, rows.Err()
}

func (s *SQLStore) ListContentBlocks(ctx context.Context, lessonID string) ([]ContentBlock, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id,lesson_id,title,content,btype,is_required,position FROM content_blocks
		 WHERE lesson_id=$1 ORDER BY position, id`, lessonID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanBlocks(rows)
}

func (s *SQLStore) ListCourseContentBlocks(ctx context.Context, courseID string) ([]ContentBlock, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT b.id,b.lesson_id,b.title,b.content,b.btype,b.is_required,b.position
		   FROM content_blocks b
		   JOIN lessons l ON l.id=b.lesson_id
		  WHERE l.course_id=$1
		  ORDER BY l.position, l.id, b.position, b.id`, courseID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanBlocks(rows)
}

func (s *SQLStore) EnrolledCourseIDs(ctx context.Context, studentID string) (map[string]bool, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT course_id FROM course_students WHERE student_id=$1 AND status='active'`, studentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := map[string]bool{}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		out[id] = true
	}
	return out, rows.Err()
}

func (s *SQLStore) Enroll(ctx context.Context, courseID, studentID string) error {
	_, err := s.db.ExecContext(ctx, `INSERT INTO course_students (course_id, student_id, status) VALUES ($1, $2, 'active')
		ON CONFLICT (course_id, student_id) DO UPDATE SET status='active'`, courseID, studentID)
	return err
}

func scanBlocks(rows *sql.Rows) ([]ContentBlock, error) {
	out := []ContentBlock{}
	for rows.Next() {
		var b ContentBlock
		if err := rows.Scan(&b.ID, &b.LessonID, &b.Title, &b.Content, &b.Type, &b.IsRequired, &b.Position); err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

func hasCategory(cats []Category, name string) bool {
	for _, c := range cats {
		if strings.EqualFold(c.Name, name) {
			return true
		}
	}
	return false
}
